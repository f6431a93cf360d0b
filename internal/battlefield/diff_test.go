package battlefield

import (
	"testing"
	"time"

	"github.com/vovakirdan/battlefield/internal/engine"
)

func TestDiff(t *testing.T) {
	base := testConfig("alpha", "beta")
	base.RngSeed = Seed(1)
	base.Modifier = &Modifier{Name: "m"}

	tests := []struct {
		name   string
		mutate func(*Config)
		want   Change
	}{
		{"identical", func(*Config) {}, Change{}},
		{"speed", func(c *Config) { c.Speed = 3 }, Change{Speed: true}},
		{"quality", func(c *Config) { c.Quality = engine.FixedQuality(0.2) }, Change{Quality: true}},
		{"speed and quality", func(c *Config) {
			c.Speed = 2
			c.Quality = engine.FixedQuality(1)
		}, Change{Speed: true, Quality: true}},
		{"speed and ai list", func(c *Config) {
			c.Speed = 2
			c.AiDefList = defs("alpha", "beta")
		}, Change{Speed: true, Restart: true}},
		{"same definitions, new slice", func(c *Config) {
			c.AiDefList = append([]*engine.AiDefinition(nil), c.AiDefList...)
		}, Change{}},
		{"shorter ai list", func(c *Config) { c.AiDefList = c.AiDefList[:1] }, Change{Restart: true}},
		{"renderer", func(c *Config) { c.Renderer = "bw" }, Change{Restart: true}},
		{"seed value", func(c *Config) { c.RngSeed = Seed(2) }, Change{Restart: true}},
		{"same seed, new pointer", func(c *Config) { c.RngSeed = Seed(1) }, Change{}},
		{"seed cleared", func(c *Config) { c.RngSeed = nil }, Change{Restart: true}},
		{"team mode", func(c *Config) { c.TeamMode = true }, Change{Restart: true}},
		{"battlefield width", func(c *Config) { c.BattlefieldWidth = 1 }, Change{Restart: true}},
		{"battlefield height", func(c *Config) { c.BattlefieldHeight = 1 }, Change{Restart: true}},
		{"modifier replaced", func(c *Config) { c.Modifier = &Modifier{Name: "m"} }, Change{Restart: true}},
		{"time limit", func(c *Config) { c.TimeLimit = time.Minute }, Change{Restart: true}},
		{"surface size", func(c *Config) {
			c.Width = 10
			c.Height = 10
		}, Change{}},
		{"auto resize", func(c *Config) { c.AutoResize = true }, Change{}},
		{"observers", func(c *Config) { c.OnFinish = func(Result) {} }, Change{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next := base
			tt.mutate(&next)
			got := Diff(base, next)
			if got != tt.want {
				t.Errorf("Diff() = %+v, want %+v", got, tt.want)
			}
			if got.None() != (tt.want == Change{}) {
				t.Errorf("None() = %v", got.None())
			}
		})
	}
}

func TestConfigValidate(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != ErrNoAiDefinitions {
		t.Errorf("Validate() on defaults = %v, want ErrNoAiDefinitions", err)
	}
	cfg.AiDefList = defs("alpha")
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() = %v, want nil", err)
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Width != 900 || cfg.Height != 600 {
		t.Errorf("surface = %gx%g, want 900x600", cfg.Width, cfg.Height)
	}
	if cfg.BattlefieldWidth != 900 || cfg.BattlefieldHeight != 600 {
		t.Errorf("battlefield = %dx%d, want 900x600", cfg.BattlefieldWidth, cfg.BattlefieldHeight)
	}
	if cfg.Renderer != "debug" || cfg.TimeLimit != 30*time.Second || cfg.Speed != 1 {
		t.Errorf("defaults = %q %v %g", cfg.Renderer, cfg.TimeLimit, cfg.Speed)
	}
	if !cfg.Quality.IsAuto() || cfg.TeamMode || cfg.AutoResize {
		t.Errorf("quality %v, team mode %v, auto resize %v", cfg.Quality, cfg.TeamMode, cfg.AutoResize)
	}
}

func TestStateString(t *testing.T) {
	if StateRunning.String() == "" || State(42).String() == "" {
		t.Error("State.String() returned empty")
	}
}
