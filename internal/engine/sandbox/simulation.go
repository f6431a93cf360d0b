package sandbox

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/battlefield/internal/core"
	"github.com/vovakirdan/battlefield/internal/engine"
	"github.com/vovakirdan/battlefield/internal/loop"
)

// Tuning for the stand-in combat model.
const (
	tankEnergy   = 100.0
	shotRange    = 300.0
	shotDamage   = 10.0
	killBonus    = 10.0
	cruiseSpeed  = 60.0 // battlefield units per simulated second
	defaultAggro = 0.15
)

var (
	errAlreadyStarted = errors.New("battle already started")
	errTooManyTanks   = fmt.Errorf("battle is limited to %d tanks", MaxTanks)
	errNoName         = errors.New("tank has no name")
)

// behavior is the tiny YAML dialect accepted in AiDefinition.Code.
type behavior struct {
	Aggression float64 `yaml:"aggression"`
}

type tank struct {
	id         int
	name       string
	team       string
	x, y       float64
	heading    float64
	energy     float64
	score      float64
	aggression float64
}

func (t *tank) ID() int         { return t.id }
func (t *tank) Name() string    { return t.name }
func (t *tank) Team() string    { return t.team }
func (t *tank) Score() float64  { return t.score }
func (t *tank) Energy() float64 { return t.energy }
func (t *tank) alive() bool     { return t.energy > 0 }

type team struct {
	name    string
	members []*tank
}

func (t *team) Name() string { return t.name }
func (t *team) Size() int    { return len(t.members) }

func (t *team) Score() float64 {
	sum := 0.0
	for _, m := range t.members {
		sum += m.score
	}
	return sum
}

func (t *team) alive() bool {
	for _, m := range t.members {
		if m.alive() {
			return true
		}
	}
	return false
}

// Simulation is a sandbox battle.
type Simulation struct {
	renderer      engine.Renderer
	sched         loop.Scheduler
	frameInterval time.Duration
	stepDuration  time.Duration

	rng       *rand.Rand
	seed      int64
	timeLimit time.Duration
	elapsed   time.Duration
	speed     float64
	stepAcc   float64

	width, height int
	tanks         []*tank
	teams         []*team
	defs          []engine.AiDefinition

	onError  func(string)
	onStart  func()
	onRender func()
	onFinish func()

	timer    loop.Timer
	started  bool
	finished bool
	stopped  bool
}

func newSimulation(r engine.Renderer, sched loop.Scheduler, frame, step time.Duration) *Simulation {
	return &Simulation{
		renderer:      r,
		sched:         sched,
		frameInterval: frame,
		stepDuration:  step,
		rng:           rand.New(rand.NewSource(0)),
		speed:         1,
	}
}

func (s *Simulation) SetRngSeed(seed int64) {
	s.seed = seed
	s.rng = rand.New(rand.NewSource(seed))
}

func (s *Simulation) SetTimeLimit(d time.Duration) { s.timeLimit = d }
func (s *Simulation) TimeLimit() time.Duration     { return s.timeLimit }
func (s *Simulation) TimeElapsed() time.Duration   { return s.elapsed }

func (s *Simulation) OnError(fn func(string)) { s.onError = fn }
func (s *Simulation) OnStart(fn func())       { s.onStart = fn }
func (s *Simulation) OnRender(fn func())      { s.onRender = fn }
func (s *Simulation) OnFinish(fn func())      { s.onFinish = fn }

func (s *Simulation) Init(width, height int) {
	s.width = width
	s.height = height
}

func (s *Simulation) AddTank(def *engine.AiDefinition) error {
	switch {
	case s.started:
		return errAlreadyStarted
	case def.Name == "":
		return errNoName
	case len(s.tanks) >= MaxTanks:
		return errTooManyTanks
	}

	b := behavior{Aggression: defaultAggro}
	if def.Code != "" {
		if err := yaml.Unmarshal([]byte(def.Code), &b); err != nil {
			return fmt.Errorf("invalid code: %w", err)
		}
	}

	teamName := def.Team
	if teamName == "" {
		teamName = def.Name
	}
	t := &tank{
		id:         len(s.tanks) + 1,
		name:       def.Name,
		team:       teamName,
		x:          s.rng.Float64() * float64(s.width),
		y:          s.rng.Float64() * float64(s.height),
		heading:    s.rng.Float64() * 2 * math.Pi,
		energy:     tankEnergy,
		aggression: b.Aggression,
	}
	s.tanks = append(s.tanks, t)
	s.defs = append(s.defs, *def)

	for _, tm := range s.teams {
		if tm.name == teamName {
			tm.members = append(tm.members, t)
			return nil
		}
	}
	s.teams = append(s.teams, &team{name: teamName, members: []*tank{t}})
	return nil
}

func (s *Simulation) SetSpeed(multiplier float64) {
	s.speed = multiplier
}

func (s *Simulation) SetRendererQuality(q engine.Quality) {
	s.renderer.SetQuality(q)
}

func (s *Simulation) Start() {
	if s.started || s.stopped {
		return
	}
	s.started = true
	if len(s.tanks) == 0 {
		s.emitError("No tanks in the battle")
	}
	if s.onStart != nil {
		s.onStart()
	}
	s.timer = s.sched.Every(s.frameInterval, s.frame)
}

func (s *Simulation) Stop() {
	s.stopped = true
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

// Running reports whether the simulation is stepping.
func (s *Simulation) Running() bool {
	return s.started && !s.stopped && !s.finished
}

func (s *Simulation) TankList() []engine.Tank {
	list := make([]engine.Tank, len(s.tanks))
	for i, t := range s.tanks {
		list[i] = t
	}
	return list
}

func (s *Simulation) TeamList() []engine.Team {
	list := make([]engine.Team, len(s.teams))
	for i, t := range s.teams {
		list[i] = t
	}
	return list
}

func (s *Simulation) CreateUltimateBattleDescriptor() *engine.UltimateBattleDescriptor {
	teamMode := false
	for _, d := range s.defs {
		if d.Team != "" {
			teamMode = true
			break
		}
	}
	return &engine.UltimateBattleDescriptor{
		Version:     engine.DescriptorVersion,
		RngSeed:     s.seed,
		TeamMode:    teamMode,
		TimeLimitMs: s.timeLimit.Milliseconds(),
		AiList:      append([]engine.AiDefinition(nil), s.defs...),
	}
}

func (s *Simulation) teamIndex(name string) int {
	for i, t := range s.teams {
		if t.name == name {
			return i
		}
	}
	return 0
}

func (s *Simulation) emitError(msg string) {
	if s.onError != nil {
		s.onError(msg)
	}
}

// frame runs the steps owed at the current speed, then renders once.
func (s *Simulation) frame() {
	if !s.Running() {
		return
	}
	s.stepAcc += s.speed
	for s.stepAcc >= 1 && !s.finished {
		s.stepAcc--
		s.step()
	}

	s.renderer.PreRender()
	if r, ok := s.renderer.(*Renderer); ok {
		r.draw(s)
	}
	s.renderer.PostRender()
	if s.onRender != nil {
		s.onRender()
	}

	if s.finished {
		if s.timer != nil {
			s.timer.Stop()
			s.timer = nil
		}
		if s.onFinish != nil {
			s.onFinish()
		}
	}
}

func (s *Simulation) step() {
	dt := s.stepDuration.Seconds()
	for _, t := range s.tanks {
		if !t.alive() {
			continue
		}
		t.heading += (s.rng.Float64() - 0.5) * 0.6
		t.x = core.ClampF(t.x+math.Sin(t.heading)*cruiseSpeed*dt, 0, float64(s.width))
		t.y = core.ClampF(t.y-math.Cos(t.heading)*cruiseSpeed*dt, 0, float64(s.height))
	}
	for _, t := range s.tanks {
		if !t.alive() || s.rng.Float64() > t.aggression {
			continue
		}
		if target := s.nearestEnemy(t); target != nil {
			target.energy -= shotDamage
			t.score += 1
			if !target.alive() {
				t.score += killBonus
			}
		}
	}

	s.elapsed += s.stepDuration
	if s.timeLimit > 0 && s.elapsed >= s.timeLimit {
		s.finished = true
	}
	if s.aliveTeams() <= 1 && len(s.teams) > 1 {
		s.finished = true
	}
}

func (s *Simulation) nearestEnemy(t *tank) *tank {
	var best *tank
	bestDist := shotRange
	for _, o := range s.tanks {
		if o == t || !o.alive() || o.team == t.team {
			continue
		}
		if d := math.Hypot(o.x-t.x, o.y-t.y); d <= bestDist {
			best = o
			bestDist = d
		}
	}
	return best
}

func (s *Simulation) aliveTeams() int {
	n := 0
	for _, t := range s.teams {
		if t.alive() {
			n++
		}
	}
	return n
}

var _ engine.Simulation = (*Simulation)(nil)
