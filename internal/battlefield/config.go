// Package battlefield mounts, drives and tears down a battle simulation
// inside a host UI. It sequences surface creation, asynchronous asset
// loading, simulation construction and callback wiring, reacts to
// configuration changes with in-place updates or full restarts, and turns
// the engine's finish notification into a Result for the host.
package battlefield

import (
	"errors"
	"time"

	"github.com/vovakirdan/battlefield/internal/engine"
)

var (
	// ErrNoAiDefinitions is returned when a configuration has no tanks.
	ErrNoAiDefinitions = errors.New("battlefield: AiDefList is not defined")

	// ErrNoSimulation is returned by Stop when no simulation is live.
	ErrNoSimulation = errors.New("battlefield: no simulation to stop")

	// ErrNotMounted is returned for operations that need a mounted controller.
	ErrNotMounted = errors.New("battlefield: controller is not mounted")

	// ErrAlreadyMounted is returned by Initialize on a mounted controller.
	ErrAlreadyMounted = errors.New("battlefield: controller is already mounted")
)

// Defaults applied by DefaultConfig.
const (
	DefaultWidth       = 900
	DefaultHeight      = 600
	DefaultRenderer    = "debug"
	DefaultTimeLimit   = 30 * time.Second
	DefaultSpeed       = 1.0
	DefaultGraceWindow = 500 * time.Millisecond
	DefaultGraceTick   = 30 * time.Millisecond
)

// Modifier mutates a freshly configured simulation right before it starts.
// Modifiers are compared by pointer: hand the controller the same *Modifier
// across updates unless a restart is intended.
type Modifier struct {
	Name  string
	Apply func(sim engine.Simulation)
}

// Observers are the optional host callbacks. Nil entries are skipped.
type Observers struct {
	// OnInit runs when the battlefield is mounted and after every restart.
	OnInit func()
	// OnReady runs once assets are loaded and the simulation is configured,
	// before tanks are added.
	OnReady func(sim engine.Simulation)
	OnStart func()
	// OnRender runs on every render step of the simulation.
	OnRender func(sim engine.Simulation)
	// OnFinish receives the battle result after the grace window.
	OnFinish func(res Result)
	OnError  func(msg string)
}

// Config is the host-supplied snapshot of battlefield properties. The
// controller keeps its own copy and never writes back to it.
type Config struct {
	Width  float64 // surface width
	Height float64 // surface height

	BattlefieldWidth  int
	BattlefieldHeight int

	Renderer string

	// RngSeed fixes the simulation seed. Nil picks a fresh seed every time
	// a simulation is built.
	RngSeed *int64

	// TimeLimit is the battle duration; zero means no limit.
	TimeLimit time.Duration

	// Speed multiplies simulation speed. Zero means 1.
	Speed float64

	Quality    engine.Quality
	TeamMode   bool
	AutoResize bool

	// AiDefList is required and must not be empty. Entries are compared by
	// identity when deciding on restarts.
	AiDefList []*engine.AiDefinition

	Modifier *Modifier

	Observers
}

// DefaultConfig returns a configuration with the standard battlefield
// defaults and no tanks.
func DefaultConfig() Config {
	return Config{
		Width:             DefaultWidth,
		Height:            DefaultHeight,
		BattlefieldWidth:  DefaultWidth,
		BattlefieldHeight: DefaultHeight,
		Renderer:          DefaultRenderer,
		TimeLimit:         DefaultTimeLimit,
		Speed:             DefaultSpeed,
		Quality:           engine.QualityAuto,
	}
}

// Seed is a convenience for filling Config.RngSeed.
func Seed(v int64) *int64 {
	return &v
}

// Validate reports configuration errors that make a battle impossible.
func (c Config) Validate() error {
	if len(c.AiDefList) == 0 {
		return ErrNoAiDefinitions
	}
	return nil
}

func (c Config) effectiveSpeed() float64 {
	if c.Speed == 0 {
		return DefaultSpeed
	}
	return c.Speed
}
