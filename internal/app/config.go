package app

import (
	"errors"
	"fmt"

	"github.com/specialistvlad/stimforge/internal/i18n"
	"github.com/specialistvlad/stimforge/internal/model"
)

// TargetAll selects every target. DescribeAll describes every component
// type.
const (
	TargetAll   = "all"
	DescribeAll = "all"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	DesignPaths []string // .hcl files or directories
	Target      string   // "native", "web" or "all"
	// OutPath is the output directory of generated code, or the output file
	// of an init skeleton. Empty writes to the app's output writer.
	OutPath string

	// Describe names a component type to describe instead of generating.
	Describe string
	// Init is a comma separated list of component types to write a design
	// skeleton for instead of generating.
	Init   string
	Locale string

	LogFormat string
	LogLevel  string
	Workers   int
}

// NewConfig validates cfg and fills in defaults.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.Describe != "" && cfg.Init != "" {
		return nil, errors.New("describe and init cannot be combined")
	}
	if cfg.Describe == "" && cfg.Init == "" && len(cfg.DesignPaths) == 0 {
		return nil, errors.New("DesignPaths is a required configuration field and cannot be empty")
	}
	if cfg.Target == "" {
		cfg.Target = TargetAll
	}
	if _, err := cfg.Targets(); err != nil {
		return nil, err
	}
	if cfg.Workers < 0 {
		return nil, fmt.Errorf("workers must not be negative, got %d", cfg.Workers)
	}
	if cfg.Locale == "" {
		cfg.Locale = i18n.BaseLocale
	}
	return &cfg, nil
}

// Targets returns the targets selected by Target.
func (c *Config) Targets() ([]model.Target, error) {
	if c.Target == TargetAll {
		return model.AllTargets, nil
	}
	t, err := model.ParseTarget(c.Target)
	if err != nil {
		return nil, err
	}
	return []model.Target{t}, nil
}
