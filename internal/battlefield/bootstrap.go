package battlefield

import (
	"fmt"

	"github.com/vovakirdan/battlefield/internal/engine"
	"github.com/vovakirdan/battlefield/internal/surface"
)

// bootstrap creates the renderer for generation gen and starts loading its
// assets. The simulation is built later, in onAssetsLoaded.
func (c *Controller) bootstrap(gen uint64, surf *surface.Surface) error {
	r, err := c.engine.CreateRenderer(c.cfg.Renderer)
	if err != nil {
		return fmt.Errorf("battlefield: cannot create renderer: %w", err)
	}
	c.renderer = r
	c.setState(StateLoading)
	r.LoadAssets(func() {
		c.onAssetsLoaded(gen, r, surf)
	})
	return nil
}

// onAssetsLoaded builds, configures and starts the simulation. It reads the
// configuration as it is now, not as it was when loading began.
func (c *Controller) onAssetsLoaded(gen uint64, r engine.Renderer, surf *surface.Surface) {
	if c.stale(gen) {
		c.logger.Debug("discarding stale asset load", "generation", gen, "current", c.generation)
		return
	}
	cfg := c.cfg

	r.Init(surf)
	sim := c.engine.CreateSimulation(r)
	c.sim = sim

	c.seed = c.resolveSeed(cfg)
	sim.SetRngSeed(c.seed)
	sim.SetTimeLimit(cfg.TimeLimit)

	if cfg.OnError != nil {
		sim.OnError(func(msg string) {
			if !c.stale(gen) && c.cfg.OnError != nil {
				c.cfg.OnError(msg)
			}
		})
	}
	if cfg.OnStart != nil {
		sim.OnStart(func() {
			if !c.stale(gen) && c.cfg.OnStart != nil {
				c.cfg.OnStart()
			}
		})
	}
	sim.Init(cfg.BattlefieldWidth, cfg.BattlefieldHeight)

	if cfg.OnRender != nil {
		sim.OnRender(func() {
			if !c.stale(gen) && c.cfg.OnRender != nil {
				c.cfg.OnRender(sim)
			}
		})
	}
	sim.SetSpeed(cfg.effectiveSpeed())
	sim.SetRendererQuality(cfg.Quality)
	sim.OnFinish(func() {
		c.handleFinish(gen)
	})

	if cfg.OnReady != nil {
		cfg.OnReady(sim)
		if c.stale(gen) {
			return
		}
	}
	surf.Visible = true

	for _, def := range cfg.AiDefList {
		tank := *def
		if cfg.TeamMode {
			tank.AssignToTeam(tank.Name)
		}
		c.addTank(sim, &tank)
	}

	if cfg.Modifier != nil && cfg.Modifier.Apply != nil {
		cfg.Modifier.Apply(sim)
		if c.stale(gen) {
			return
		}
	}

	sim.Start()
	if !c.stale(gen) && c.state == StateLoading {
		c.setState(StateRunning)
	}
}

func (c *Controller) resolveSeed(cfg Config) int64 {
	if cfg.RngSeed != nil {
		return *cfg.RngSeed
	}
	return c.newSeed()
}

// addTank adds one tank. A failure is reported and logged but never stops
// the remaining tanks from being added.
func (c *Controller) addTank(sim engine.Simulation, def *engine.AiDefinition) {
	err := safeAddTank(sim, def)
	if err == nil {
		return
	}
	msg := fmt.Sprintf("Cannot add tank '%s': %v", def.Name, err)
	if c.cfg.OnError != nil {
		c.cfg.OnError(msg)
	}
	c.logger.Error("cannot add tank", "tank", def.Name, "error", err)
}

func safeAddTank(sim engine.Simulation, def *engine.AiDefinition) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%v", r)
		}
	}()
	return sim.AddTank(def)
}
