package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/battlefield/internal/platform/tui"
	"github.com/vovakirdan/battlefield/internal/storage"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Watch a battle in the terminal",
	Long: `Mount the battlefield in the terminal and watch the battle.

Controls:
  +/-        - Faster/slower (applied in place)
  Q          - Cycle renderer quality (applied in place)
  T          - Toggle team mode (restarts the battle)
  N          - New random seed (restarts the battle)
  R          - Restart
  S          - Stop the simulation
  ?          - More keys
  Esc/Ctrl+C - Quit

Examples:
  battlefield run
  battlefield run --speed 2 --quality 0.5
  battlefield run --renderer bw --team-mode
  battlefield run --config ./duel.yaml --seed 7`,
	Args: cobra.NoArgs,
	Run:  runBattle,
}

func runBattle(cmd *cobra.Command, _ []string) {
	cfg, err := loadBattle(cmd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open results database: %v\n", err)
		// Continue without storage - battles still run
		store = nil
	}

	model := tui.NewBattleModel(tui.BattleOptions{
		Config: cfg,
		Store:  store,
		Width:  width,
		Height: height,
	})

	_, runErr := tea.NewProgram(model, tea.WithAltScreen()).Run()

	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running battle: %v\n", runErr)
		os.Exit(1)
	}
}
