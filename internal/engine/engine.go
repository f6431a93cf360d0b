// Package engine defines the contract between a battlefield and the
// simulation/rendering engine that actually runs battles. The battlefield
// only calls these operations and reacts to the callbacks registered here;
// it owns no simulation internals.
package engine

import (
	"time"

	"github.com/vovakirdan/battlefield/internal/surface"
)

// Engine creates renderers and simulations.
type Engine interface {
	// CreateRenderer returns a renderer of the named type.
	CreateRenderer(name string) (Renderer, error)

	// CreateSimulation returns a new simulation bound to r.
	CreateSimulation(r Renderer) Simulation
}

// Renderer translates simulation state into output on a Surface.
type Renderer interface {
	// LoadAssets starts loading assets and returns immediately. onDone is
	// called exactly once, on the host's callback loop, when loading ends.
	LoadAssets(onDone func())

	// Init binds the renderer to s. Only valid after assets are loaded.
	Init(s *surface.Surface)

	// Dispose releases renderer resources. The renderer is unusable after.
	Dispose()

	// Quality returns the effective quality in [0, 1]. For QualityAuto it
	// is the value the renderer currently settled on.
	Quality() float64

	// SetQuality changes the requested quality.
	SetQuality(q Quality)

	PreRender()
	PostRender()
}

// Simulation is a single run of a battle.
type Simulation interface {
	SetRngSeed(seed int64)
	SetTimeLimit(d time.Duration)
	TimeLimit() time.Duration
	TimeElapsed() time.Duration

	OnError(fn func(msg string))
	OnStart(fn func())
	OnRender(fn func())
	OnFinish(fn func())

	// Init prepares a battlefield of the given size.
	Init(width, height int)

	// AddTank creates a tank from def. It may fail for a single definition.
	AddTank(def *AiDefinition) error

	SetSpeed(multiplier float64)
	SetRendererQuality(q Quality)

	Start()
	Stop()

	TankList() []Tank
	TeamList() []Team

	CreateUltimateBattleDescriptor() *UltimateBattleDescriptor
}

// Tank is a read-only view of one combatant.
type Tank interface {
	ID() int
	Name() string
	Team() string
	Score() float64
	Energy() float64
}

// Team is a read-only view of a group of tanks.
type Team interface {
	Name() string
	Score() float64
	Size() int
}
