// Package config provides YAML-based battlefield configuration loading.
package config

import (
	"time"

	"github.com/vovakirdan/battlefield/internal/battlefield"
	"github.com/vovakirdan/battlefield/internal/engine"
)

// File is the on-disk battlefield configuration.
type File struct {
	Surface   SurfaceConfig         `yaml:"surface"`
	Field     FieldConfig           `yaml:"battlefield"`
	Renderer  string                `yaml:"renderer"`
	RngSeed   *int64                `yaml:"rng_seed,omitempty"`
	TimeLimit time.Duration         `yaml:"time_limit"`
	Speed     float64               `yaml:"speed"`
	Quality   engine.Quality        `yaml:"quality"`
	TeamMode  bool                  `yaml:"team_mode"`
	Tanks     []engine.AiDefinition `yaml:"tanks"`
}

// SurfaceConfig defines the display surface.
type SurfaceConfig struct {
	Width      float64 `yaml:"width"`
	Height     float64 `yaml:"height"`
	AutoResize bool    `yaml:"auto_resize"`
}

// FieldConfig defines the simulated battlefield area.
type FieldConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// Battlefield converts the file into a controller configuration. Missing
// values fall back to battlefield.DefaultConfig. Every call allocates new
// AiDefinition values, so two calls never compare equal for restarts.
func (f File) Battlefield() battlefield.Config {
	cfg := battlefield.DefaultConfig()

	if f.Surface.Width > 0 {
		cfg.Width = f.Surface.Width
	}
	if f.Surface.Height > 0 {
		cfg.Height = f.Surface.Height
	}
	cfg.AutoResize = f.Surface.AutoResize
	if f.Field.Width > 0 {
		cfg.BattlefieldWidth = f.Field.Width
	}
	if f.Field.Height > 0 {
		cfg.BattlefieldHeight = f.Field.Height
	}
	if f.Renderer != "" {
		cfg.Renderer = f.Renderer
	}
	if f.RngSeed != nil {
		cfg.RngSeed = battlefield.Seed(*f.RngSeed)
	}
	if f.TimeLimit > 0 {
		cfg.TimeLimit = f.TimeLimit
	}
	if f.Speed > 0 {
		cfg.Speed = f.Speed
	}
	cfg.Quality = f.Quality
	cfg.TeamMode = f.TeamMode

	cfg.AiDefList = make([]*engine.AiDefinition, len(f.Tanks))
	for i := range f.Tanks {
		def := f.Tanks[i]
		cfg.AiDefList[i] = &def
	}
	return cfg
}
