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

var (
	flagCSV    bool
	flagBattle string
	flagLimit  int
	flagClear  bool
	flagStats  bool
)

var resultsCmd = &cobra.Command{
	Use:   "results",
	Short: "Show stored battle results",
	Long: `Browse the results of finished battles.

With --csv the results are written to stdout as CSV instead. Combine
--csv with --battle <id> to export the tanks of a single battle.
--stats summarizes the last --limit battles.

Examples:
  battlefield results
  battlefield results --csv > battles.csv
  battlefield results --csv --battle 1b4e28ba-2fa1-11d2-883f-0016d3cca427
  battlefield results --stats --limit 500
  battlefield results --clear`,
	Args: cobra.NoArgs,
	Run:  runResults,
}

func init() {
	resultsCmd.Flags().BoolVar(&flagCSV, "csv", false, "Export as CSV to stdout")
	resultsCmd.Flags().StringVar(&flagBattle, "battle", "", "Battle ID whose tanks to export")
	resultsCmd.Flags().IntVar(&flagLimit, "limit", 100, "Maximum number of battles to export")
	resultsCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete all stored results")
	resultsCmd.Flags().BoolVar(&flagStats, "stats", false, "Print statistics over stored battles")
}

func runResults(cmd *cobra.Command, _ []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	switch {
	case flagClear:
		if err := store.ClearBattles(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("All results deleted.")

	case flagStats:
		battles, err := store.RecentBattles(flagLimit)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		sum := storage.Summarize(battles)
		if flagCSV {
			if err := storage.ExportSummaryCSV(os.Stdout, sum); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
			return
		}
		printSummary(sum)

	case flagCSV && flagBattle != "":
		tanks, err := store.BattleTanks(flagBattle)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		if err := storage.ExportTanksCSV(os.Stdout, tanks); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

	case flagCSV:
		battles, err := store.RecentBattles(flagLimit)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		if err := storage.ExportCSV(os.Stdout, battles); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

	default:
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width = w
			height = h
		}
		model := tui.NewResultsModel(store, width, height)
		if _, err := tea.NewProgram(model, tea.WithAltScreen()).Run(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}
}

func printSummary(sum storage.Summary) {
	if sum.Battles == 0 {
		fmt.Println("No battles stored yet.")
		return
	}
	fmt.Printf("Battles:        %d (%d in team mode)\n", sum.Battles, sum.TeamBattles)
	fmt.Printf("Tanks per battle: %.1f\n", sum.TanksMean)
	fmt.Printf("Winner score:   mean %.1f, std %.1f, p50 %.0f, p90 %.0f\n",
		sum.WinnerScoreMean, sum.WinnerScoreStd, sum.WinnerScoreP50, sum.WinnerScoreP90)
	fmt.Printf("Time left:      mean %.1fs\n", sum.TimeLeftMeanMs/1000)
	fmt.Printf("Overruns:       %d\n", sum.Overruns)
}
