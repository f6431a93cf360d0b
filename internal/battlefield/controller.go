package battlefield

import (
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/battlefield/internal/engine"
	"github.com/vovakirdan/battlefield/internal/loop"
	"github.com/vovakirdan/battlefield/internal/surface"
)

// Controller owns the surface, renderer and simulation of one battlefield.
// All methods, and all callbacks it registers, must run on the same
// callback loop; the controller does no locking of its own.
type Controller struct {
	engine   engine.Engine
	surfaces *surface.Manager
	window   surface.Window
	sched    loop.Scheduler
	logger   *log.Logger
	newSeed  func() int64

	graceWindow time.Duration
	graceTick   time.Duration

	cfg   Config
	state State

	// generation identifies the current surface/renderer/simulation triple.
	// Callbacks carry the generation they were created for and are ignored
	// once it is superseded.
	generation uint64
	renderer   engine.Renderer
	sim        engine.Simulation
	seed       int64
	grace      *grace
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the logger. By default warnings and errors go to stderr.
func WithLogger(l *log.Logger) Option {
	return func(c *Controller) {
		c.logger = l
	}
}

// WithSeedSource replaces the generator used when no seed is configured.
func WithSeedSource(fn func() int64) Option {
	return func(c *Controller) {
		c.newSeed = fn
	}
}

// WithGraceWindow changes how long, and how often, the last frame keeps
// being rendered after the battle finishes.
func WithGraceWindow(window, tick time.Duration) Option {
	return func(c *Controller) {
		c.graceWindow = window
		c.graceTick = tick
	}
}

// New creates an unmounted controller. mount receives the surface, window
// provides resize events (may be nil) and sched runs the finish grace
// window on the callback loop.
func New(eng engine.Engine, mount surface.Mount, window surface.Window, sched loop.Scheduler, opts ...Option) *Controller {
	c := &Controller{
		engine:   eng,
		surfaces: surface.NewManager(mount),
		window:   window,
		sched:    sched,
		logger: log.NewWithOptions(os.Stderr, log.Options{
			Prefix: "battlefield",
			Level:  log.WarnLevel,
		}),
		newSeed: func() int64 {
			return time.Now().UnixNano()
		},
		graceWindow: DefaultGraceWindow,
		graceTick:   DefaultGraceTick,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Initialize mounts the battlefield: it creates the surface, starts loading
// assets and subscribes to window resizes. A simulation left over from an
// earlier mount is stopped and its renderer disposed first.
func (c *Controller) Initialize(cfg Config) error {
	if c.state != StateUnmounted {
		return ErrAlreadyMounted
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	c.release()
	c.cfg = cfg
	c.surfaces.SetAutoResize(cfg.AutoResize)
	if err := c.build(); err != nil {
		return err
	}
	c.surfaces.Listen(c.window)
	c.notifyInit()
	return nil
}

// Reconcile applies a new configuration. Speed and quality changes are
// pushed to the live simulation; battle-defining changes restart it.
func (c *Controller) Reconcile(next Config) error {
	if c.state == StateUnmounted {
		return ErrNotMounted
	}

	change := Diff(c.cfg, next)
	if change.Restart {
		if err := next.Validate(); err != nil {
			return err
		}
	}

	c.cfg = next
	c.surfaces.SetAutoResize(next.AutoResize)

	if c.sim != nil {
		if change.Speed {
			c.sim.SetSpeed(next.effectiveSpeed())
		}
		if change.Quality {
			c.sim.SetRendererQuality(next.Quality)
		}
	}
	if change.Restart {
		c.logger.Debug("configuration change requires restart", "generation", c.generation)
		return c.rebuild()
	}
	return nil
}

// Teardown unmounts the battlefield. It drops the resize subscription and
// invalidates pending callbacks, but leaves the simulation alone; call Stop
// first to halt it.
func (c *Controller) Teardown() {
	if c.state == StateUnmounted {
		return
	}
	c.surfaces.Release()
	c.cancelGrace()
	c.generation++
	c.setState(StateUnmounted)
}

// Stop halts the live simulation. A stopped battle can only be resumed by
// Restart. On an unmounted controller the simulation is halted but the
// controller stays unmounted.
func (c *Controller) Stop() error {
	if c.sim == nil {
		return ErrNoSimulation
	}
	c.sim.Stop()
	if c.state != StateUnmounted {
		c.setState(StateStopped)
	}
	return nil
}

// Restart tears down the current simulation and renderer, if any, and
// builds a fresh battle from the current configuration. On an unmounted
// controller it only releases leftovers and returns ErrNotMounted.
func (c *Controller) Restart() error {
	if c.state == StateUnmounted {
		c.release()
		return ErrNotMounted
	}
	if err := c.cfg.Validate(); err != nil {
		return err
	}
	return c.rebuild()
}

func (c *Controller) rebuild() error {
	c.release()
	if err := c.build(); err != nil {
		return err
	}
	c.notifyInit()
	return nil
}

// release stops the simulation, then disposes the renderer. References are
// cleared right away so nothing uses them after this point.
func (c *Controller) release() {
	c.cancelGrace()
	if c.sim != nil {
		c.sim.Stop()
		c.sim = nil
	}
	if c.renderer != nil {
		c.renderer.Dispose()
		c.renderer = nil
	}
}

// build creates a new surface and starts a new generation on it.
func (c *Controller) build() error {
	surf := c.surfaces.Create(c.cfg.Width, c.cfg.Height)
	c.setState(StateCreated)
	c.generation++
	return c.bootstrap(c.generation, surf)
}

func (c *Controller) notifyInit() {
	if c.cfg.OnInit != nil {
		c.cfg.OnInit()
	}
}

func (c *Controller) setState(s State) {
	if c.state == s {
		return
	}
	c.logger.Debug("state change", "from", c.state, "to", s, "generation", c.generation)
	c.state = s
}

func (c *Controller) stale(gen uint64) bool {
	return gen != c.generation
}

// State returns the current lifecycle phase.
func (c *Controller) State() State {
	return c.state
}

// Generation returns the identifier of the current build.
func (c *Controller) Generation() uint64 {
	return c.generation
}

// Config returns the controller's copy of the current configuration.
func (c *Controller) Config() Config {
	return c.cfg
}

// Surface returns the live surface, or nil before mounting.
func (c *Controller) Surface() *surface.Surface {
	return c.surfaces.Current()
}

// ApplyResize re-applies the resize policy to the live surface. Hosts
// without a Window can call it directly.
func (c *Controller) ApplyResize() {
	c.surfaces.ApplyResize()
}

// RngSeed returns the seed the current simulation was built with.
func (c *Controller) RngSeed() int64 {
	return c.seed
}

// Simulation returns the live simulation, or nil. It is an escape hatch for
// hosts that need direct engine access.
func (c *Controller) Simulation() engine.Simulation {
	return c.sim
}

// TankList returns every tank added to the battle. Only valid once the
// battle is running or finished.
func (c *Controller) TankList() []engine.Tank {
	return c.sim.TankList()
}

// TeamList returns the teams of the battle. Only valid once the battle is
// running or finished.
func (c *Controller) TeamList() []engine.Team {
	return c.sim.TeamList()
}

// ActualRendererQuality returns the renderer's effective quality. With
// automatic quality this is the value the renderer currently settled on.
// Only valid once the battle is running or finished.
func (c *Controller) ActualRendererQuality() float64 {
	return c.renderer.Quality()
}
