package web

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/battlefield/internal/battlefield"
	"github.com/vovakirdan/battlefield/internal/engine"
	"github.com/vovakirdan/battlefield/internal/engine/sandbox"
	"github.com/vovakirdan/battlefield/internal/loop"
	"github.com/vovakirdan/battlefield/internal/storage"
	"github.com/vovakirdan/battlefield/internal/surface"
)

// Message types sent to the viewer.
const (
	msgInit   = "init"
	msgFrame  = "frame"
	msgError  = "error"
	msgResult = "result"
)

// message is one server-to-viewer frame.
type message struct {
	Type      string     `json:"type"`
	State     string     `json:"state,omitempty"`
	Seed      int64      `json:"seed,omitempty"`
	Screen    string     `json:"screen,omitempty"`
	ElapsedMs int64      `json:"elapsedMs,omitempty"`
	Quality   float64    `json:"quality,omitempty"`
	Error     string     `json:"error,omitempty"`
	Result    *resultDTO `json:"result,omitempty"`
}

type resultDTO struct {
	TankWinner string    `json:"tankWinner,omitempty"`
	TeamWinner string    `json:"teamWinner,omitempty"`
	TimeLeftMs int64     `json:"timeLeftMs"`
	Tanks      []tankDTO `json:"tanks"`
	UBD        string    `json:"ubd"`
	SavedID    string    `json:"savedId,omitempty"`
}

type tankDTO struct {
	ID     int     `json:"id"`
	Name   string  `json:"name"`
	Team   string  `json:"team"`
	Score  float64 `json:"score"`
	Energy float64 `json:"energy"`
}

// command is one viewer-to-server request.
type command struct {
	Type  string  `json:"type"` // speed, quality, team, restart, stop, resize
	Value float64 `json:"value,omitempty"`
	Auto  bool    `json:"auto,omitempty"`
}

// battle is the battlefield of one connection. Everything but Post on its
// loop runs on the loop goroutine, which is also the only writer to conn.
type battle struct {
	conn      *websocket.Conn
	store     *storage.Store
	logger    *log.Logger
	throttle  time.Duration
	lastFrame time.Time

	loop      *loop.Loop
	container *surface.Container
	window    *surface.Broadcaster
	ctrl      *battlefield.Controller
}

func newBattle(conn *websocket.Conn, store *storage.Store, logger *log.Logger, throttle time.Duration) *battle {
	l := loop.New()
	b := &battle{
		conn:      conn,
		store:     store,
		logger:    logger,
		throttle:  throttle,
		loop:      l,
		container: surface.NewContainer(surface.ReferenceWidth),
		window:    surface.NewBroadcaster(),
	}
	b.ctrl = battlefield.New(sandbox.New(l, l), b.container, b.window, l, battlefield.WithLogger(logger))
	return b
}

func (b *battle) mount(cfg battlefield.Config) error {
	cfg.Observers = battlefield.Observers{
		OnInit: func() {
			b.send(message{Type: msgInit, State: b.ctrl.State().String()})
		},
		OnError: func(msg string) {
			b.send(message{Type: msgError, Error: msg})
		},
		OnRender: b.frame,
		OnFinish: b.finished,
	}
	return b.ctrl.Initialize(cfg)
}

func (b *battle) frame(sim engine.Simulation) {
	now := time.Now()
	if now.Sub(b.lastFrame) < b.throttle {
		return
	}
	b.lastFrame = now

	surf := b.ctrl.Surface()
	if surf == nil || !surf.Visible {
		return
	}
	b.send(message{
		Type:      msgFrame,
		State:     b.ctrl.State().String(),
		Seed:      b.ctrl.RngSeed(),
		Screen:    surf.Screen().String(),
		ElapsedMs: sim.TimeElapsed().Milliseconds(),
		Quality:   b.ctrl.ActualRendererQuality(),
	})
}

func (b *battle) finished(res battlefield.Result) {
	dto := &resultDTO{
		TimeLeftMs: res.TimeLeft.Milliseconds(),
		UBD:        res.UBD,
	}
	if res.TankWinner != nil {
		dto.TankWinner = res.TankWinner.Name()
	}
	if res.TeamWinner != nil {
		dto.TeamWinner = res.TeamWinner.Name()
	}
	for _, t := range res.TankList {
		dto.Tanks = append(dto.Tanks, tankDTO{
			ID:     t.ID(),
			Name:   t.Name(),
			Team:   t.Team(),
			Score:  t.Score(),
			Energy: t.Energy(),
		})
	}

	if b.store != nil {
		rec := storage.RecordFromResult(res, b.ctrl.Config(), b.ctrl.RngSeed())
		if id, err := b.store.SaveBattle(rec); err != nil {
			b.logger.Warn("could not save battle", "error", err)
		} else {
			dto.SavedID = id
		}
	}
	b.send(message{Type: msgResult, Result: dto})
}

// handle applies a viewer command. Invalid commands are reported back.
func (b *battle) handle(cmd command) {
	if (cmd.Type == "speed" || cmd.Type == "resize") && cmd.Value <= 0 {
		b.send(message{Type: msgError, Error: fmt.Sprintf("%s must be positive, got %g", cmd.Type, cmd.Value)})
		return
	}

	next := b.ctrl.Config()
	var err error
	switch cmd.Type {
	case "speed":
		next.Speed = cmd.Value
		err = b.ctrl.Reconcile(next)
	case "quality":
		next.Quality = engine.QualityAuto
		if !cmd.Auto {
			next.Quality = engine.FixedQuality(cmd.Value)
		}
		err = b.ctrl.Reconcile(next)
	case "team":
		next.TeamMode = !next.TeamMode
		err = b.ctrl.Reconcile(next)
	case "restart":
		err = b.ctrl.Restart()
	case "stop":
		err = b.ctrl.Stop()
	case "resize":
		b.container.SetClientWidth(cmd.Value)
		b.window.Resize()
	default:
		b.send(message{Type: msgError, Error: "unknown command " + cmd.Type})
		return
	}
	if err != nil {
		b.send(message{Type: msgError, Error: err.Error()})
	}
}

func (b *battle) send(m message) {
	if err := b.conn.WriteJSON(m); err != nil {
		b.logger.Debug("send failed", "type", m.Type, "error", err)
	}
}

// close unmounts the battlefield and releases the simulation so its
// timers stop posting to the loop.
func (b *battle) close() {
	b.ctrl.Teardown()
	//nolint:errcheck // Always ErrNotMounted here; the call only releases leftovers
	b.ctrl.Restart()
	b.loop.Drain()
}
