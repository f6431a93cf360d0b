package tui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/battlefield/internal/battlefield"
	"github.com/vovakirdan/battlefield/internal/engine"
	"github.com/vovakirdan/battlefield/internal/engine/sandbox"
	"github.com/vovakirdan/battlefield/internal/loop"
	"github.com/vovakirdan/battlefield/internal/storage"
	"github.com/vovakirdan/battlefield/internal/surface"
)

const (
	// maxErrors is how many simulation errors the battle screen keeps.
	maxErrors = 4
	// chromeRows are the terminal rows taken by the header and help lines.
	chromeRows = 4
)

// speedSteps are the speed multipliers the +/- keys walk through.
var speedSteps = []float64{0.25, 0.5, 1, 2, 4, 8}

// qualitySteps are the renderer qualities the quality key cycles through.
var qualitySteps = []engine.Quality{
	engine.QualityAuto,
	engine.FixedQuality(0.3),
	engine.FixedQuality(0.6),
	engine.FixedQuality(1),
}

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("229"))
	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))
	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9"))
	resultStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)
	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

// BattleOptions configures a BattleModel.
type BattleOptions struct {
	// Config is the battle to mount. Observers are replaced by the model.
	Config battlefield.Config

	// Store receives every delivered result. Nil disables history.
	Store *storage.Store

	Logger *log.Logger

	// Width and Height are the initial terminal size in cells.
	Width  int
	Height int
}

// battleSession is the mutable state shared by copies of a BattleModel.
// Controller callbacks write into it from the loop drained in Update.
type battleSession struct {
	loop      *loop.Loop
	container *surface.Container
	window    *surface.Broadcaster
	ctrl      *battlefield.Controller
	store     *storage.Store
	logger    *log.Logger

	cfg battlefield.Config

	ready   bool
	errors  []string
	result  *battlefield.Result
	savedID string
	initErr error
}

// BattleModel is the Bubble Tea model that hosts one battlefield.
type BattleModel struct {
	s        *battleSession
	keys     BattleKeyMap
	help     help.Model
	width    int
	height   int
	quitting bool
}

// NewBattleModel creates a battle model. The battlefield is mounted in Init.
func NewBattleModel(opts BattleOptions) BattleModel {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	l := loop.New()
	s := &battleSession{
		loop:      l,
		container: surface.NewContainer(float64(opts.Width * sandbox.CellWidth)),
		window:    surface.NewBroadcaster(),
		store:     opts.Store,
		logger:    logger,
	}
	s.ctrl = battlefield.New(sandbox.New(l, l), s.container, s.window, l, battlefield.WithLogger(logger))

	cfg := opts.Config
	cfg.Observers = s.observers()
	s.cfg = cfg

	h := help.New()
	h.ShowAll = false

	return BattleModel{
		s:      s,
		keys:   DefaultBattleKeyMap(),
		help:   h,
		width:  opts.Width,
		height: opts.Height,
	}
}

func (s *battleSession) observers() battlefield.Observers {
	return battlefield.Observers{
		OnInit: func() {
			s.ready = false
			s.result = nil
			s.savedID = ""
			s.errors = nil
		},
		OnReady: func(engine.Simulation) {
			s.ready = true
		},
		OnError: func(msg string) {
			s.errors = append(s.errors, msg)
			if len(s.errors) > maxErrors {
				s.errors = s.errors[len(s.errors)-maxErrors:]
			}
		},
		OnFinish: s.finished,
	}
}

func (s *battleSession) finished(res battlefield.Result) {
	s.result = &res
	if s.store == nil {
		return
	}
	rec := storage.RecordFromResult(res, s.ctrl.Config(), s.ctrl.RngSeed())
	id, err := s.store.SaveBattle(rec)
	if err != nil {
		s.logger.Warn("could not save battle", "error", err)
		return
	}
	s.savedID = id
}

// reconcile pushes an updated configuration to the controller.
func (s *battleSession) reconcile(next battlefield.Config) {
	if err := s.ctrl.Reconcile(next); err != nil {
		s.errors = append(s.errors, err.Error())
		return
	}
	s.cfg = next
}

// close unmounts the battlefield and releases its simulation and renderer.
// Timers already queued on the loop are dropped. The final no-op wakes a
// waitForLoop command that would otherwise block forever.
func (s *battleSession) close() {
	s.ctrl.Teardown()
	//nolint:errcheck // Always ErrNotMounted here; the call only releases leftovers
	s.ctrl.Restart()
	s.loop.Drain()
	s.loop.Post(func() {})
}

// Init mounts the battlefield and starts draining its loop.
func (m BattleModel) Init() tea.Cmd {
	if err := m.s.ctrl.Initialize(m.s.cfg); err != nil {
		m.s.initErr = err
		return nil
	}
	return waitForLoop(m.s.loop)
}

// Update handles messages.
func (m BattleModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loopMsg:
		m.s.loop.Drain()
		return m, waitForLoop(m.s.loop)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.s.container.SetClientWidth(float64(msg.Width * sandbox.CellWidth))
		m.s.window.Resize()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m BattleModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	s := m.s
	if m.s.initErr != nil {
		if key.Matches(msg, m.keys.Quit) {
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		s.close()
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Faster):
		next := s.cfg
		next.Speed = stepSpeed(next.Speed, 1)
		s.reconcile(next)

	case key.Matches(msg, m.keys.Slower):
		next := s.cfg
		next.Speed = stepSpeed(next.Speed, -1)
		s.reconcile(next)

	case key.Matches(msg, m.keys.Quality):
		next := s.cfg
		next.Quality = nextQuality(next.Quality)
		s.reconcile(next)

	case key.Matches(msg, m.keys.TeamMode):
		next := s.cfg
		next.TeamMode = !next.TeamMode
		s.reconcile(next)

	case key.Matches(msg, m.keys.NewSeed):
		next := s.cfg
		next.RngSeed = battlefield.Seed(time.Now().UnixNano())
		s.reconcile(next)

	case key.Matches(msg, m.keys.Restart):
		if err := s.ctrl.Restart(); err != nil {
			s.errors = append(s.errors, err.Error())
		}

	case key.Matches(msg, m.keys.Stop):
		if err := s.ctrl.Stop(); err != nil {
			s.errors = append(s.errors, err.Error())
		}

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return m, nil
}

// stepSpeed moves speed dir steps along speedSteps, snapping unknown
// values to the nearest step first.
func stepSpeed(current float64, dir int) float64 {
	if current == 0 {
		current = battlefield.DefaultSpeed
	}
	idx := 0
	for i, v := range speedSteps {
		if v <= current {
			idx = i
		}
	}
	idx += dir
	if idx < 0 {
		idx = 0
	}
	if idx >= len(speedSteps) {
		idx = len(speedSteps) - 1
	}
	return speedSteps[idx]
}

func nextQuality(q engine.Quality) engine.Quality {
	for i, v := range qualitySteps {
		if v == q {
			return qualitySteps[(i+1)%len(qualitySteps)]
		}
	}
	return qualitySteps[0]
}

// View renders the battle screen.
func (m BattleModel) View() string {
	if m.quitting {
		return ""
	}
	s := m.s

	var b strings.Builder
	b.WriteString(headerStyle.Render("BATTLEFIELD"))
	b.WriteString("  ")
	b.WriteString(statusStyle.Render(m.status()))
	b.WriteString("\n\n")

	switch {
	case s.initErr != nil:
		b.WriteString(errorStyle.Render(s.initErr.Error()))
		b.WriteString("\n")
	case !s.ready:
		b.WriteString("Loading assets...\n")
	default:
		if field := RenderSurface(s.ctrl.Surface(), m.width, m.height-chromeRows); field != "" {
			b.WriteString(field)
			b.WriteString("\n")
		}
	}

	for _, e := range s.errors {
		b.WriteString(errorStyle.Render("! " + e))
		b.WriteString("\n")
	}

	if s.result != nil {
		b.WriteString(resultStyle.Render(formatResult(*s.result, s.savedID)))
		b.WriteString("\n")
	}

	b.WriteString(helpStyle.Render(m.help.View(m.keys)))
	return b.String()
}

func (m BattleModel) status() string {
	s := m.s
	speed := s.cfg.Speed
	if speed == 0 {
		speed = battlefield.DefaultSpeed
	}
	parts := []string{
		s.ctrl.State().String(),
		fmt.Sprintf("speed x%g", speed),
		"quality " + s.cfg.Quality.String(),
	}
	if st := s.ctrl.State(); st == battlefield.StateRunning || st == battlefield.StateFinished {
		parts = append(parts, fmt.Sprintf("(%.2f)", s.ctrl.ActualRendererQuality()))
	}
	if s.cfg.TeamMode {
		parts = append(parts, "teams")
	}
	if s.ctrl.Simulation() != nil {
		parts = append(parts, fmt.Sprintf("seed %d", s.ctrl.RngSeed()))
	}
	return strings.Join(parts, " | ")
}

func formatResult(res battlefield.Result, savedID string) string {
	var b strings.Builder
	b.WriteString("Battle over")
	if res.TankWinner != nil {
		fmt.Fprintf(&b, "\nWinner: %s (%.0f)", res.TankWinner.Name(), res.TankWinner.Score())
	} else {
		b.WriteString("\nWinner: none")
	}
	if res.TeamWinner != nil && res.TeamWinner.Size() > 1 {
		fmt.Fprintf(&b, "\nTeam: %s (%.0f)", res.TeamWinner.Name(), res.TeamWinner.Score())
	}
	fmt.Fprintf(&b, "\nTime left: %s", res.TimeLeft.Round(time.Millisecond))
	if savedID != "" {
		fmt.Fprintf(&b, "\nSaved as %s", savedID)
	}
	return b.String()
}

// Controller exposes the hosted controller.
func (m BattleModel) Controller() *battlefield.Controller {
	return m.s.ctrl
}

// Result returns the last delivered result, if any.
func (m BattleModel) Result() *battlefield.Result {
	return m.s.result
}

// Close releases the battle of a program that has exited without the quit
// key, such as an SSH session whose connection dropped. It must not be
// called while the program is still running.
func (m BattleModel) Close() {
	m.s.close()
}
