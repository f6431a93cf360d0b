package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/battlefield/internal/battlefield"
	"github.com/vovakirdan/battlefield/internal/engine"
	"github.com/vovakirdan/battlefield/internal/engine/sandbox"
	"github.com/vovakirdan/battlefield/internal/loop"
	"github.com/vovakirdan/battlefield/internal/storage"
	"github.com/vovakirdan/battlefield/internal/surface"
)

var (
	flagNoSave  bool
	flagShowUBD bool
)

var headlessCmd = &cobra.Command{
	Use:   "headless",
	Short: "Run a battle without UI and print the result",
	Long: `Run one battle on the callback loop without a terminal UI.
The result is printed and stored in the results database.

Examples:
  battlefield headless
  battlefield headless --seed 42 --speed 8
  battlefield headless --ubd > replay.json`,
	Args: cobra.NoArgs,
	Run:  runHeadless,
}

func init() {
	headlessCmd.Flags().BoolVar(&flagNoSave, "no-save", false, "Do not store the result")
	headlessCmd.Flags().BoolVar(&flagShowUBD, "ubd", false, "Print only the battle descriptor JSON")
}

func runHeadless(cmd *cobra.Command, _ []string) {
	cfg, err := loadBattle(cmd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	logger := newLogger()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	l := loop.New()
	mount := surface.NewContainer(cfg.Width)
	ctrl := battlefield.New(sandbox.New(l, l), mount, surface.NewBroadcaster(), l, battlefield.WithLogger(logger))

	var result *battlefield.Result
	cfg.OnStart = func() {
		logger.Info("battle started", "seed", ctrl.RngSeed(), "tanks", len(ctrl.TankList()))
	}
	cfg.OnError = func(msg string) {
		fmt.Fprintf(os.Stderr, "Error: %s\n", msg)
	}
	cfg.OnFinish = func(res battlefield.Result) {
		result = &res
		cancel()
	}

	if err := ctrl.Initialize(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	runErr := l.Run(ctx)
	ctrl.Teardown()
	if result == nil {
		if runErr != nil && !errors.Is(runErr, context.Canceled) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", runErr)
		}
		fmt.Fprintln(os.Stderr, "Battle interrupted.")
		os.Exit(1)
	}

	if flagShowUBD {
		fmt.Println(result.UBD)
	} else {
		printResult(*result, ctrl.RngSeed())
	}

	if flagNoSave {
		return
	}
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open results database: %v\n", err)
		return
	}
	defer store.Close()
	if _, err := store.SaveBattle(storage.RecordFromResult(*result, ctrl.Config(), ctrl.RngSeed())); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not save result: %v\n", err)
	}
}

func printResult(res battlefield.Result, seed int64) {
	fmt.Printf("Battle over (seed %d, %s left)\n\n", seed, res.TimeLeft)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "  ID\tTank\tTeam\tScore\tEnergy")
	fmt.Fprintln(w, "  --\t----\t----\t-----\t------")
	for _, t := range res.TankList {
		fmt.Fprintf(w, "  %d\t%s\t%s\t%.0f\t%.0f\n", t.ID(), t.Name(), t.Team(), t.Score(), t.Energy())
	}
	w.Flush()
	fmt.Println()

	fmt.Printf("Tank winner: %s\n", tankName(res.TankWinner))
	if res.TeamWinner != nil {
		fmt.Printf("Team winner: %s (%.0f)\n", res.TeamWinner.Name(), res.TeamWinner.Score())
	}
}

func tankName(t engine.Tank) string {
	if t == nil {
		return "none"
	}
	return fmt.Sprintf("%s (%.0f)", t.Name(), t.Score())
}
