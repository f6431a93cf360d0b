package sandbox

import (
	_ "embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed assets/theme.yaml
var themeYAML []byte

// Theme holds the glyph set renderers draw with.
type Theme struct {
	TankGlyphs []string `yaml:"tank_glyphs"`
	WreckGlyph string   `yaml:"wreck_glyph"`
	ShotGlyph  string   `yaml:"shot_glyph"`
	Border     bool     `yaml:"border"`
	HUD        bool     `yaml:"hud"`
}

var (
	themeOnce   sync.Once
	loadedTheme Theme
	themeErr    error
)

// loadTheme parses the embedded theme once.
func loadTheme() (Theme, error) {
	themeOnce.Do(func() {
		if err := yaml.Unmarshal(themeYAML, &loadedTheme); err != nil {
			themeErr = fmt.Errorf("sandbox: cannot parse theme: %w", err)
			return
		}
		if len(loadedTheme.TankGlyphs) != 4 {
			themeErr = fmt.Errorf("sandbox: theme needs 4 tank glyphs, got %d", len(loadedTheme.TankGlyphs))
		}
	})
	return loadedTheme, themeErr
}

func firstRune(s string, fallback rune) rune {
	for _, r := range s {
		return r
	}
	return fallback
}
