package web

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/battlefield/internal/battlefield"
	"github.com/vovakirdan/battlefield/internal/engine"
)

func testServer(t *testing.T, cfg battlefield.Config) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(NewServer(Options{
		Battle:        cfg,
		Logger:        log.New(io.Discard),
		FrameInterval: time.Nanosecond,
	}))
	t.Cleanup(srv.Close)
	return srv
}

func shortBattle() battlefield.Config {
	cfg := battlefield.DefaultConfig()
	cfg.TimeLimit = 200 * time.Millisecond
	cfg.AiDefList = []*engine.AiDefinition{
		{Name: "alpha", Code: "aggression: 0"},
		{Name: "beta", Code: "aggression: 0"},
	}
	return cfg
}

func dial(t *testing.T, srv *httptest.Server, query string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws" + query
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("Dial() failed: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	conn.SetReadDeadline(time.Now().Add(10 * time.Second))
	return conn
}

// readUntil reads messages until one of type typ arrives and returns every
// message read.
func readUntil(t *testing.T, conn *websocket.Conn, typ string) []message {
	t.Helper()
	var got []message
	for {
		var m message
		if err := conn.ReadJSON(&m); err != nil {
			t.Fatalf("ReadJSON() failed after %d messages: %v", len(got), err)
		}
		got = append(got, m)
		if m.Type == typ {
			return got
		}
	}
}

func TestStreamsBattleToResult(t *testing.T) {
	srv := testServer(t, shortBattle())
	conn := dial(t, srv, "?seed=9")

	msgs := readUntil(t, conn, msgResult)
	if msgs[0].Type != msgInit {
		t.Errorf("first message = %s, want init", msgs[0].Type)
	}

	frames := 0
	for _, m := range msgs {
		if m.Type != msgFrame {
			continue
		}
		frames++
		if m.Seed != 9 {
			t.Errorf("frame seed = %d, want 9", m.Seed)
		}
		if !strings.Contains(m.Screen, "┌") {
			t.Error("frame is missing the border")
		}
	}
	if frames == 0 {
		t.Error("no frames streamed")
	}

	res := msgs[len(msgs)-1].Result
	if res == nil {
		t.Fatal("result message has no result")
	}
	if len(res.Tanks) != 2 || res.TankWinner == "" {
		t.Errorf("result = %+v", res)
	}
	if res.TimeLeftMs > 0 {
		t.Errorf("TimeLeftMs = %d, want the limit reached", res.TimeLeftMs)
	}
	if _, err := engine.DecodeDescriptor(res.UBD); err != nil {
		t.Errorf("DecodeDescriptor() failed: %v", err)
	}
}

func TestCommands(t *testing.T) {
	cfg := shortBattle()
	cfg.TimeLimit = time.Minute
	srv := testServer(t, cfg)
	conn := dial(t, srv, "")
	readUntil(t, conn, msgFrame)

	if err := conn.WriteJSON(command{Type: "bogus"}); err != nil {
		t.Fatalf("WriteJSON() failed: %v", err)
	}
	msgs := readUntil(t, conn, msgError)
	if got := msgs[len(msgs)-1].Error; got != "unknown command bogus" {
		t.Errorf("error = %q", got)
	}

	if err := conn.WriteJSON(command{Type: "restart"}); err != nil {
		t.Fatalf("WriteJSON() failed: %v", err)
	}
	readUntil(t, conn, msgInit)

	for _, cmd := range []command{{Type: "speed", Value: 4}, {Type: "quality", Auto: true}, {Type: "bogus"}} {
		if err := conn.WriteJSON(cmd); err != nil {
			t.Fatalf("WriteJSON() failed: %v", err)
		}
	}
	msgs = readUntil(t, conn, msgError)
	if got := msgs[len(msgs)-1].Error; got != "unknown command bogus" {
		t.Errorf("valid commands reported an error: %q", got)
	}
}

func TestRejectsNonPositiveValues(t *testing.T) {
	cfg := shortBattle()
	cfg.TimeLimit = time.Minute
	srv := testServer(t, cfg)
	conn := dial(t, srv, "")
	readUntil(t, conn, msgFrame)

	tests := []struct {
		cmd  command
		want string
	}{
		{command{Type: "speed", Value: -2}, "speed must be positive, got -2"},
		{command{Type: "speed"}, "speed must be positive, got 0"},
		{command{Type: "resize", Value: -300}, "resize must be positive, got -300"},
	}
	for _, tt := range tests {
		if err := conn.WriteJSON(tt.cmd); err != nil {
			t.Fatalf("WriteJSON() failed: %v", err)
		}
		msgs := readUntil(t, conn, msgError)
		if got := msgs[len(msgs)-1].Error; got != tt.want {
			t.Errorf("%s %g: error = %q, want %q", tt.cmd.Type, tt.cmd.Value, got, tt.want)
		}
	}
}

func TestMountErrorIsReported(t *testing.T) {
	srv := testServer(t, battlefield.DefaultConfig())
	conn := dial(t, srv, "")

	msgs := readUntil(t, conn, msgError)
	if got := msgs[len(msgs)-1].Error; got != battlefield.ErrNoAiDefinitions.Error() {
		t.Errorf("error = %q, want %q", got, battlefield.ErrNoAiDefinitions)
	}
}

func TestServesIndex(t *testing.T) {
	srv := testServer(t, shortBattle())

	resp, err := http.Get(srv.URL + "/")
	if err != nil {
		t.Fatalf("GET / failed: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK || !strings.Contains(string(body), "/ws") {
		t.Errorf("GET / = %d", resp.StatusCode)
	}

	resp, err = http.Get(srv.URL + "/missing")
	if err != nil {
		t.Fatalf("GET /missing failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("GET /missing = %d, want 404", resp.StatusCode)
	}
}
