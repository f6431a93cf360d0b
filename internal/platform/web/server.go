// Package web serves battles to browsers over WebSocket. Every connection
// mounts its own battlefield; frames are streamed as text and the viewer
// can adjust speed and quality or restart the battle.
package web

import (
	"context"
	_ "embed"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/battlefield/internal/battlefield"
	"github.com/vovakirdan/battlefield/internal/storage"
)

//go:embed index.html
var indexHTML []byte

// DefaultFrameInterval is the minimum time between two streamed frames.
const DefaultFrameInterval = 50 * time.Millisecond

// Options configures a Server.
type Options struct {
	// Battle is the configuration every connection mounts. Observers are
	// replaced per connection.
	Battle battlefield.Config

	// Store receives delivered results. Nil disables history.
	Store *storage.Store

	Logger *log.Logger

	// FrameInterval throttles streamed frames. Zero uses the default.
	FrameInterval time.Duration
}

// Server is an http.Handler hosting one battlefield per WebSocket.
type Server struct {
	opts     Options
	logger   *log.Logger
	upgrader websocket.Upgrader
	mux      *http.ServeMux
}

// NewServer creates a server.
func NewServer(opts Options) *Server {
	if opts.FrameInterval <= 0 {
		opts.FrameInterval = DefaultFrameInterval
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default().WithPrefix("battlefield-web")
	}

	s := &Server{
		opts:   opts,
		logger: logger,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		mux: http.NewServeMux(),
	}
	s.mux.HandleFunc("/", s.serveIndex)
	s.mux.HandleFunc("/ws", s.serveWS)
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) serveIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(indexHTML) //nolint:errcheck // Nothing to do for a failed write
}

// battleConfig applies the query overrides a viewer may pass:
// seed, speed and team=1.
func (s *Server) battleConfig(r *http.Request) battlefield.Config {
	cfg := s.opts.Battle
	q := r.URL.Query()
	if v, err := strconv.ParseInt(q.Get("seed"), 10, 64); err == nil {
		cfg.RngSeed = battlefield.Seed(v)
	}
	if v, err := strconv.ParseFloat(q.Get("speed"), 64); err == nil && v > 0 {
		cfg.Speed = v
	}
	if q.Get("team") == "1" {
		cfg.TeamMode = true
	}
	return cfg
}

func (s *Server) serveWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("upgrade failed", "remote", r.RemoteAddr, "error", err)
		return
	}
	defer conn.Close()

	logger := s.logger.With("remote", r.RemoteAddr)
	logger.Info("viewer connected")
	defer logger.Info("viewer disconnected")

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	b := newBattle(conn, s.opts.Store, logger, s.opts.FrameInterval)
	if err := b.mount(s.battleConfig(r)); err != nil {
		b.send(message{Type: msgError, Error: err.Error()})
		return
	}
	defer b.close()

	go func() {
		defer cancel()
		for {
			var cmd command
			if err := conn.ReadJSON(&cmd); err != nil {
				return
			}
			b.loop.Post(func() { b.handle(cmd) })
		}
	}()

	b.loop.Run(ctx) //nolint:errcheck // Always the context error
}
