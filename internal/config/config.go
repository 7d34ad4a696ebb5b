package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Garsondee/hex-outbreak/internal/hexgrid"
	"github.com/Garsondee/hex-outbreak/internal/sim"
)

// Config holds all game configuration
type Config struct {
	Seed    int64         `yaml:"seed"`
	Rules   RulesConfig   `yaml:"rules"`
	Display DisplayConfig `yaml:"display"`
}

// RulesConfig holds the simulation constants
type RulesConfig struct {
	StartingResources int     `yaml:"starting_resources"`
	FactoryCost       int     `yaml:"factory_cost"`
	LabCost           int     `yaml:"lab_cost"`
	WallCost          int     `yaml:"wall_cost"`
	MaxLabs           int     `yaml:"max_labs"`
	ResearchRate      int     `yaml:"research_rate"`
	ResearchTarget    int     `yaml:"research_target"`
	SpreadCoefficient float64 `yaml:"spread_coefficient"`
	MapRadius         int     `yaml:"map_radius"`
	SurvivorsMin      int     `yaml:"survivors_min"`
	SurvivorsMax      int     `yaml:"survivors_max"`
	ResourcesMin      int     `yaml:"resources_min"`
	ResourcesMax      int     `yaml:"resources_max"`
}

// DisplayConfig holds window settings
type DisplayConfig struct {
	HexSize float64 `yaml:"hex_size"` // centre-to-corner, pixels
	Width   int     `yaml:"width"`
	Height  int     `yaml:"height"`
	TPS     int     `yaml:"tps"` // simulation ticks per second
}

// Default returns the stock configuration. Seed 0 means "pick one at start".
func Default() *Config {
	r := sim.DefaultRules()
	return &Config{
		Rules: RulesConfig{
			StartingResources: r.StartingResources,
			FactoryCost:       r.FactoryCost,
			LabCost:           r.LabCost,
			WallCost:          r.WallCost,
			MaxLabs:           r.MaxLabs,
			ResearchRate:      r.ResearchRate,
			ResearchTarget:    r.ResearchTarget,
			SpreadCoefficient: r.SpreadCoefficient,
			MapRadius:         r.MapRadius,
			SurvivorsMin:      r.Start.SurvivorsMin,
			SurvivorsMax:      r.Start.SurvivorsMax,
			ResourcesMin:      r.Start.ResourcesMin,
			ResourcesMax:      r.Start.ResourcesMax,
		},
		Display: DisplayConfig{
			HexSize: 40,
			Width:   1200,
			Height:  800,
			TPS:     30,
		},
	}
}

// Load reads configuration from a YAML file. Keys absent from the file keep
// their Default value.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data)
}

// LoadOptional is Load, except that a missing file yields Default.
func LoadOptional(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}
	cfg, err := Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

// Parse decodes YAML over the defaults and validates the result.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks rules and display settings.
func (c *Config) Validate() error {
	if err := c.SimRules().Validate(); err != nil {
		return err
	}
	if c.Display.HexSize <= 0 {
		return fmt.Errorf("config: display.hex_size must be > 0, got %.1f", c.Display.HexSize)
	}
	if c.Display.Width <= 0 || c.Display.Height <= 0 {
		return fmt.Errorf("config: display size %dx%d", c.Display.Width, c.Display.Height)
	}
	if c.Display.TPS <= 0 {
		return fmt.Errorf("config: display.tps must be > 0, got %d", c.Display.TPS)
	}
	return nil
}

// SimRules converts the rules section for the engine.
func (c *Config) SimRules() sim.Rules {
	r := c.Rules
	return sim.Rules{
		StartingResources: r.StartingResources,
		FactoryCost:       r.FactoryCost,
		LabCost:           r.LabCost,
		WallCost:          r.WallCost,
		MaxLabs:           r.MaxLabs,
		ResearchRate:      r.ResearchRate,
		ResearchTarget:    r.ResearchTarget,
		SpreadCoefficient: r.SpreadCoefficient,
		MapRadius:         r.MapRadius,
		Start: hexgrid.StartingStats{
			SurvivorsMin: r.SurvivorsMin,
			SurvivorsMax: r.SurvivorsMax,
			ResourcesMin: r.ResourcesMin,
			ResourcesMax: r.ResourcesMax,
		},
	}
}
