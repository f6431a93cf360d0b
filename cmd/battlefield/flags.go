package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/battlefield/internal/battlefield"
	"github.com/vovakirdan/battlefield/internal/config"
	"github.com/vovakirdan/battlefield/internal/engine"
)

// loadFile reads the configuration file and applies the flags the user set.
func loadFile(cmd *cobra.Command) (config.File, error) {
	f, err := config.Load(flagConfig)
	if err != nil {
		return config.File{}, err
	}

	flags := cmd.Flags()
	if flags.Changed("seed") {
		seed := flagSeed
		f.RngSeed = &seed
	}
	if flags.Changed("renderer") {
		if !engine.RendererExists(flagRenderer) {
			return config.File{}, fmt.Errorf("unknown renderer %q, run 'battlefield renderers' to see available ones", flagRenderer)
		}
		f.Renderer = flagRenderer
	}
	if flags.Changed("speed") {
		f.Speed = flagSpeed
	}
	if flags.Changed("quality") {
		q, qErr := engine.ParseQuality(flagQuality)
		if qErr != nil {
			return config.File{}, qErr
		}
		f.Quality = q
	}
	if flags.Changed("time-limit") {
		d, dErr := time.ParseDuration(flagTimeLimit)
		if dErr != nil {
			return config.File{}, fmt.Errorf("invalid time limit %q: %w", flagTimeLimit, dErr)
		}
		f.TimeLimit = d
	}
	if flags.Changed("team-mode") {
		f.TeamMode = flagTeamMode
	}
	if flags.Changed("auto-resize") {
		f.Surface.AutoResize = flagAutoResize
	}
	return f, nil
}

// loadBattle is loadFile converted to a controller configuration.
func loadBattle(cmd *cobra.Command) (battlefield.Config, error) {
	f, err := loadFile(cmd)
	if err != nil {
		return battlefield.Config{}, err
	}
	return f.Battlefield(), nil
}

// newLogger builds the command-line logger at the --log-level level.
func newLogger() *log.Logger {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		level = log.WarnLevel
	}
	return log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "battlefield",
		Level:           level,
	})
}
