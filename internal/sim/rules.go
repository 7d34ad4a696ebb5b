package sim

import (
	"errors"
	"fmt"

	"github.com/Garsondee/hex-outbreak/internal/hexgrid"
)

// Rules are the fixed numbers of a game. Two engines with equal rules and
// equal random streams play out identically.
type Rules struct {
	StartingResources int
	FactoryCost       int
	LabCost           int
	WallCost          int
	MaxLabs           int
	ResearchRate      int // progress per lab per tick
	ResearchTarget    int
	SpreadCoefficient float64 // spread chance = source infection rate * coefficient
	MapRadius         int
	Start             hexgrid.StartingStats
}

// DefaultRules returns the stock game constants.
func DefaultRules() Rules {
	return Rules{
		StartingResources: 200,
		FactoryCost:       50,
		LabCost:           100,
		WallCost:          20,
		MaxLabs:           2,
		ResearchRate:      1,
		ResearchTarget:    100,
		SpreadCoefficient: 0.05,
		MapRadius:         5,
		Start:             hexgrid.DefaultStats,
	}
}

// ErrInvalidRules wraps every Rules.Validate failure.
var ErrInvalidRules = errors.New("sim: invalid rules")

// Validate checks the rules for values the engine cannot run with.
func (r Rules) Validate() error {
	switch {
	case r.MapRadius < 0:
		return fmt.Errorf("%w: map radius %d", ErrInvalidRules, r.MapRadius)
	case r.StartingResources < 0:
		return fmt.Errorf("%w: starting resources %d", ErrInvalidRules, r.StartingResources)
	case r.FactoryCost < 0 || r.LabCost < 0 || r.WallCost < 0:
		return fmt.Errorf("%w: negative cost (factory=%d lab=%d wall=%d)", ErrInvalidRules, r.FactoryCost, r.LabCost, r.WallCost)
	case r.MaxLabs < 0:
		return fmt.Errorf("%w: max labs %d", ErrInvalidRules, r.MaxLabs)
	case r.ResearchRate < 0:
		return fmt.Errorf("%w: research rate %d", ErrInvalidRules, r.ResearchRate)
	case r.ResearchTarget <= 0:
		return fmt.Errorf("%w: research target %d", ErrInvalidRules, r.ResearchTarget)
	case r.SpreadCoefficient < 0 || r.SpreadCoefficient > 1:
		return fmt.Errorf("%w: spread coefficient %.3f outside [0,1]", ErrInvalidRules, r.SpreadCoefficient)
	case r.Start.SurvivorsMin < 0 || r.Start.SurvivorsMin > r.Start.SurvivorsMax:
		return fmt.Errorf("%w: survivors range [%d,%d]", ErrInvalidRules, r.Start.SurvivorsMin, r.Start.SurvivorsMax)
	case r.Start.ResourcesMin < 0 || r.Start.ResourcesMin > r.Start.ResourcesMax:
		return fmt.Errorf("%w: resources range [%d,%d]", ErrInvalidRules, r.Start.ResourcesMin, r.Start.ResourcesMax)
	}
	return nil
}
