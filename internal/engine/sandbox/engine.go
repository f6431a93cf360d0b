// Package sandbox is a small stand-in battle engine. Tanks wander the
// battlefield and trade random hits; it exists so the battlefield hosts
// have something to drive, not to simulate anything faithfully.
package sandbox

import (
	"time"

	"github.com/vovakirdan/battlefield/internal/engine"
	"github.com/vovakirdan/battlefield/internal/loop"
)

// Defaults for New.
const (
	DefaultFrameInterval = 33 * time.Millisecond
	DefaultStepDuration  = 33 * time.Millisecond
	MaxTanks             = 32
)

// Engine creates sandbox renderers and simulations.
type Engine struct {
	post          loop.Poster
	sched         loop.Scheduler
	frameInterval time.Duration
	stepDuration  time.Duration
}

// Option configures an Engine.
type Option func(*Engine)

// WithFrameInterval sets how often a running simulation steps and renders.
func WithFrameInterval(d time.Duration) Option {
	return func(e *Engine) {
		e.frameInterval = d
	}
}

// WithStepDuration sets how much simulated time one step covers.
func WithStepDuration(d time.Duration) Option {
	return func(e *Engine) {
		e.stepDuration = d
	}
}

// New creates a sandbox engine. post delivers asset-load completions and
// sched drives running simulations; both must belong to the host's loop.
func New(post loop.Poster, sched loop.Scheduler, opts ...Option) *Engine {
	e := &Engine{
		post:          post,
		sched:         sched,
		frameInterval: DefaultFrameInterval,
		stepDuration:  DefaultStepDuration,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Engine) CreateRenderer(name string) (engine.Renderer, error) {
	return engine.NewRenderer(name, e.post)
}

func (e *Engine) CreateSimulation(r engine.Renderer) engine.Simulation {
	return newSimulation(r, e.sched, e.frameInterval, e.stepDuration)
}

var _ engine.Engine = (*Engine)(nil)
