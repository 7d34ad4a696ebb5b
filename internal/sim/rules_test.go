package sim

import (
	"errors"
	"testing"
)

func TestDefaultRules(t *testing.T) {
	r := DefaultRules()
	if err := r.Validate(); err != nil {
		t.Fatalf("defaults invalid: %v", err)
	}
	if r.StartingResources != 200 || r.FactoryCost != 50 || r.LabCost != 100 || r.WallCost != 20 {
		t.Errorf("unexpected economy constants: %+v", r)
	}
	if r.MaxLabs != 2 || r.ResearchRate != 1 || r.ResearchTarget != 100 {
		t.Errorf("unexpected research constants: %+v", r)
	}
	if r.SpreadCoefficient != 0.05 || r.MapRadius != 5 {
		t.Errorf("unexpected map constants: %+v", r)
	}
}

func TestRulesValidate(t *testing.T) {
	cases := map[string]func(*Rules){
		"negative radius":   func(r *Rules) { r.MapRadius = -1 },
		"negative cost":     func(r *Rules) { r.WallCost = -5 },
		"zero target":       func(r *Rules) { r.ResearchTarget = 0 },
		"coefficient above": func(r *Rules) { r.SpreadCoefficient = 1.5 },
		"inverted range":    func(r *Rules) { r.Start.ResourcesMin = 200 },
		"negative max labs": func(r *Rules) { r.MaxLabs = -1 },
	}
	for name, mutate := range cases {
		r := DefaultRules()
		mutate(&r)
		if err := r.Validate(); !errors.Is(err, ErrInvalidRules) {
			t.Errorf("%s: expected ErrInvalidRules, got %v", name, err)
		}
	}
}
