package sandbox

import (
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/battlefield/internal/battlefield"
	"github.com/vovakirdan/battlefield/internal/engine"
	"github.com/vovakirdan/battlefield/internal/loop"
	"github.com/vovakirdan/battlefield/internal/surface"
)

func TestBattlefieldRunsSandboxBattle(t *testing.T) {
	m := loop.NewManual()
	mount := surface.NewContainer(900)
	ctrl := battlefield.New(New(m, m), mount, surface.NewBroadcaster(), m,
		battlefield.WithLogger(log.New(io.Discard)))

	cfg := battlefield.DefaultConfig()
	cfg.RngSeed = battlefield.Seed(3)
	cfg.TimeLimit = time.Second
	cfg.TeamMode = true
	cfg.AiDefList = []*engine.AiDefinition{
		{Name: "alpha", Code: "aggression: 0.3"},
		{Name: "beta"},
		{Name: "broken", Code: "aggression: [1"},
	}

	var results []battlefield.Result
	var errs []string
	cfg.OnFinish = func(res battlefield.Result) { results = append(results, res) }
	cfg.OnError = func(msg string) { errs = append(errs, msg) }

	if err := ctrl.Initialize(cfg); err != nil {
		t.Fatalf("Initialize() failed: %v", err)
	}
	m.Drain()
	if ctrl.State() != battlefield.StateRunning {
		t.Fatalf("State() = %v, want Running", ctrl.State())
	}
	if len(errs) != 1 {
		t.Errorf("errors = %v, want one tank failure", errs)
	}

	m.Advance(3 * time.Second)
	if len(results) != 1 {
		t.Fatalf("results = %d, want 1", len(results))
	}
	res := results[0]
	if len(res.TankList) != 2 || len(res.TeamList) != 2 {
		t.Errorf("tanks/teams = %d/%d, want 2/2", len(res.TankList), len(res.TeamList))
	}
	if res.TankWinner == nil || res.TeamWinner == nil {
		t.Fatal("missing winners")
	}
	if res.TimeLeft > 0 {
		alive := 0
		for _, tk := range res.TankList {
			if tk.Energy() > 0 {
				alive++
			}
		}
		if alive > 1 {
			t.Errorf("finished with %v left and %d tanks alive", res.TimeLeft, alive)
		}
	}

	ubd, err := engine.DecodeDescriptor(res.UBD)
	if err != nil {
		t.Fatalf("DecodeDescriptor() failed: %v", err)
	}
	if ubd.RngSeed != 3 || !ubd.TeamMode || len(ubd.AiList) != 2 {
		t.Errorf("descriptor = %+v", ubd)
	}
	if ctrl.State() != battlefield.StateFinished {
		t.Errorf("State() = %v, want Finished", ctrl.State())
	}
}
