package battlefield

import (
	"time"

	"github.com/vovakirdan/battlefield/internal/engine"
	"github.com/vovakirdan/battlefield/internal/loop"
)

// Result is a snapshot of a finished battle.
type Result struct {
	TankWinner engine.Tank // nil when there are no tanks
	TeamWinner engine.Team // nil when there are no teams
	TankList   []engine.Tank
	TeamList   []engine.Team

	// TimeLeft is TimeLimit minus TimeElapsed at the moment the battle
	// finished. It is negative when the battle overran its limit.
	TimeLeft time.Duration

	// UBD is the encoded ultimate battle descriptor.
	UBD string
}

type scorer interface {
	Score() float64
}

// topScorer returns the element with the strictly greatest score. Ties go
// to the earliest element.
func topScorer[T scorer](list []T) (best T, ok bool) {
	for i, item := range list {
		if i == 0 || item.Score() > best.Score() {
			best = item
			ok = true
		}
	}
	return best, ok
}

// Aggregate builds the finish result for sim.
func Aggregate(sim engine.Simulation) (Result, error) {
	tanks := sim.TankList()
	teams := sim.TeamList()

	res := Result{
		TankList: tanks,
		TeamList: teams,
		TimeLeft: sim.TimeLimit() - sim.TimeElapsed(),
	}
	if t, ok := topScorer(tanks); ok {
		res.TankWinner = t
	}
	if t, ok := topScorer(teams); ok {
		res.TeamWinner = t
	}

	ubd, err := sim.CreateUltimateBattleDescriptor().Encode()
	if err != nil {
		return res, err
	}
	res.UBD = ubd
	return res, nil
}

// grace keeps the last frame alive between the finish notification and
// the delivery of the result.
type grace struct {
	ticker loop.Timer
	done   loop.Timer
}

func (g *grace) stop() {
	g.ticker.Stop()
	g.done.Stop()
}

func (c *Controller) handleFinish(gen uint64) {
	if c.stale(gen) || c.sim == nil {
		return
	}
	res, err := Aggregate(c.sim)
	if err != nil {
		c.logger.Error("cannot encode battle descriptor", "error", err)
	}
	if c.state == StateRunning || c.state == StateLoading {
		c.setState(StateFinished)
	}

	c.cancelGrace()
	r := c.renderer
	g := &grace{}
	g.ticker = c.sched.Every(c.graceTick, func() {
		r.PreRender()
		r.PostRender()
	})
	g.done = c.sched.AfterFunc(c.graceWindow, func() {
		g.ticker.Stop()
		if c.grace == g {
			c.grace = nil
		}
		if c.stale(gen) {
			return
		}
		if c.cfg.OnFinish != nil {
			c.cfg.OnFinish(res)
		}
	})
	c.grace = g
}

func (c *Controller) cancelGrace() {
	if c.grace == nil {
		return
	}
	c.grace.stop()
	c.grace = nil
}
