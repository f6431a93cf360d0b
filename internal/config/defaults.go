package config

import (
	_ "embed"
	"time"

	"github.com/vovakirdan/battlefield/internal/engine"
)

//go:embed defaults/battlefield.yaml
var defaultYAML []byte

// DefaultFile returns the built-in configuration, used when the embedded
// YAML cannot be parsed.
func DefaultFile() File {
	return File{
		Surface: SurfaceConfig{
			Width:      900,
			Height:     600,
			AutoResize: true,
		},
		Field: FieldConfig{
			Width:  900,
			Height: 600,
		},
		Renderer:  "debug",
		TimeLimit: 30 * time.Second,
		Speed:     1,
		Quality:   engine.QualityAuto,
		Tanks: []engine.AiDefinition{
			{Name: "chicken", Code: "aggression: 0.05"},
			{Name: "crawler"},
			{Name: "dodge", Code: "aggression: 0.2"},
			{Name: "sniper", Code: "aggression: 0.3"},
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultYAML
}
