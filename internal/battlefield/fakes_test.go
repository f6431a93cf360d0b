package battlefield

import (
	"errors"
	"fmt"
	"time"

	"github.com/vovakirdan/battlefield/internal/engine"
	"github.com/vovakirdan/battlefield/internal/surface"
)

// recorder collects the calls made on fakes, in order.
type recorder struct {
	events []string
}

func (r *recorder) add(format string, args ...any) {
	r.events = append(r.events, fmt.Sprintf(format, args...))
}

func (r *recorder) index(event string) int {
	for i, e := range r.events {
		if e == event {
			return i
		}
	}
	return -1
}

func (r *recorder) count(event string) int {
	n := 0
	for _, e := range r.events {
		if e == event {
			n++
		}
	}
	return n
}

type fakeEngine struct {
	rec         *recorder
	renderers   []*fakeRenderer
	sims        []*fakeSim
	rendererErr error

	// configure runs on every new simulation before it is returned.
	configure func(*fakeSim)
}

func newFakeEngine() *fakeEngine {
	return &fakeEngine{rec: &recorder{}}
}

func (e *fakeEngine) CreateRenderer(name string) (engine.Renderer, error) {
	if e.rendererErr != nil {
		return nil, e.rendererErr
	}
	r := &fakeRenderer{rec: e.rec, id: len(e.renderers) + 1, name: name, quality: 1}
	e.renderers = append(e.renderers, r)
	e.rec.add("renderer%d.create(%s)", r.id, name)
	return r, nil
}

func (e *fakeEngine) CreateSimulation(r engine.Renderer) engine.Simulation {
	s := &fakeSim{rec: e.rec, id: len(e.sims) + 1, renderer: r, failTanks: map[string]error{}}
	e.sims = append(e.sims, s)
	e.rec.add("sim%d.create", s.id)
	if e.configure != nil {
		e.configure(s)
	}
	return s
}

func (e *fakeEngine) lastRenderer() *fakeRenderer {
	if len(e.renderers) == 0 {
		return nil
	}
	return e.renderers[len(e.renderers)-1]
}

func (e *fakeEngine) lastSim() *fakeSim {
	if len(e.sims) == 0 {
		return nil
	}
	return e.sims[len(e.sims)-1]
}

type fakeRenderer struct {
	rec      *recorder
	id       int
	name     string
	onDone   func()
	surface  *surface.Surface
	disposed bool
	quality  float64

	preRenders  int
	postRenders int
}

// finishLoading delivers the asset-loaded callback.
func (r *fakeRenderer) finishLoading() {
	r.onDone()
}

func (r *fakeRenderer) LoadAssets(onDone func()) {
	r.rec.add("renderer%d.loadAssets", r.id)
	r.onDone = onDone
}

func (r *fakeRenderer) Init(s *surface.Surface) {
	r.rec.add("renderer%d.init", r.id)
	r.surface = s
}

func (r *fakeRenderer) Dispose() {
	r.rec.add("renderer%d.dispose", r.id)
	r.disposed = true
}

func (r *fakeRenderer) Quality() float64 {
	return r.quality
}

func (r *fakeRenderer) SetQuality(q engine.Quality) {
	if !q.IsAuto() {
		r.quality = q.Value()
	}
}

func (r *fakeRenderer) PreRender()  { r.preRenders++ }
func (r *fakeRenderer) PostRender() { r.postRenders++ }

type fakeTank struct {
	id     int
	name   string
	team   string
	score  float64
	energy float64
}

func (t *fakeTank) ID() int         { return t.id }
func (t *fakeTank) Name() string    { return t.name }
func (t *fakeTank) Team() string    { return t.team }
func (t *fakeTank) Score() float64  { return t.score }
func (t *fakeTank) Energy() float64 { return t.energy }

type fakeTeam struct {
	name  string
	score float64
	size  int
}

func (t *fakeTeam) Name() string   { return t.name }
func (t *fakeTeam) Score() float64 { return t.score }
func (t *fakeTeam) Size() int      { return t.size }

type fakeSim struct {
	rec      *recorder
	id       int
	renderer engine.Renderer

	seed      int64
	timeLimit time.Duration
	elapsed   time.Duration
	speed     float64
	quality   engine.Quality
	width     int
	height    int
	started   bool
	stopped   bool

	onError  func(string)
	onStart  func()
	onRender func()
	onFinish func()

	added     []engine.AiDefinition
	failTanks map[string]error
	panicTank string

	tanks []engine.Tank
	teams []engine.Team
}

func (s *fakeSim) SetRngSeed(seed int64) {
	s.rec.add("sim%d.seed(%d)", s.id, seed)
	s.seed = seed
}

func (s *fakeSim) SetTimeLimit(d time.Duration) {
	s.rec.add("sim%d.timeLimit(%s)", s.id, d)
	s.timeLimit = d
}

func (s *fakeSim) TimeLimit() time.Duration   { return s.timeLimit }
func (s *fakeSim) TimeElapsed() time.Duration { return s.elapsed }

func (s *fakeSim) OnError(fn func(string)) {
	s.rec.add("sim%d.onError", s.id)
	s.onError = fn
}

func (s *fakeSim) OnStart(fn func()) {
	s.rec.add("sim%d.onStart", s.id)
	s.onStart = fn
}

func (s *fakeSim) OnRender(fn func()) {
	s.rec.add("sim%d.onRender", s.id)
	s.onRender = fn
}

func (s *fakeSim) OnFinish(fn func()) {
	s.rec.add("sim%d.onFinish", s.id)
	s.onFinish = fn
}

func (s *fakeSim) Init(width, height int) {
	s.rec.add("sim%d.init(%d,%d)", s.id, width, height)
	s.width, s.height = width, height
}

func (s *fakeSim) AddTank(def *engine.AiDefinition) error {
	s.rec.add("sim%d.addTank(%s)", s.id, def.Name)
	if def.Name == s.panicTank {
		panic("tank exploded")
	}
	if err, ok := s.failTanks[def.Name]; ok {
		return err
	}
	s.added = append(s.added, *def)
	return nil
}

func (s *fakeSim) SetSpeed(multiplier float64) {
	s.rec.add("sim%d.speed(%g)", s.id, multiplier)
	s.speed = multiplier
}

func (s *fakeSim) SetRendererQuality(q engine.Quality) {
	s.rec.add("sim%d.quality(%s)", s.id, q)
	s.quality = q
	s.renderer.SetQuality(q)
}

func (s *fakeSim) Start() {
	s.rec.add("sim%d.start", s.id)
	s.started = true
}

func (s *fakeSim) Stop() {
	s.rec.add("sim%d.stop", s.id)
	s.stopped = true
}

func (s *fakeSim) TankList() []engine.Tank { return s.tanks }
func (s *fakeSim) TeamList() []engine.Team { return s.teams }

func (s *fakeSim) CreateUltimateBattleDescriptor() *engine.UltimateBattleDescriptor {
	return &engine.UltimateBattleDescriptor{
		Version:     engine.DescriptorVersion,
		RngSeed:     s.seed,
		TimeLimitMs: s.timeLimit.Milliseconds(),
		AiList:      s.added,
	}
}

// finish emits the engine's finish notification.
func (s *fakeSim) finish() {
	s.onFinish()
}

var errBoom = errors.New("boom")

var (
	_ engine.Engine     = (*fakeEngine)(nil)
	_ engine.Renderer   = (*fakeRenderer)(nil)
	_ engine.Simulation = (*fakeSim)(nil)
)
