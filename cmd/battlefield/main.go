// battlefield runs tank battles in the terminal.
//
// Usage:
//
//	battlefield run          - Watch a battle in the terminal
//	battlefield headless     - Run a battle without UI and print the result
//	battlefield renderers    - List available renderers
//	battlefield results      - Browse or export stored battle results
//	battlefield config       - Print or write the effective configuration
//	battlefield serve        - Start SSH server, one battle per session
//	battlefield web          - Serve battles to browsers over WebSocket
//
// Global flags:
//
//	--config <path>     - Battlefield YAML configuration
//	--seed <value>      - RNG seed for reproducible battles
//	--db <path>         - Results database (default: ~/.battlefield/results.db)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import the sandbox engine to register its renderers
	_ "github.com/vovakirdan/battlefield/internal/engine/sandbox"
)

var (
	// Global flags
	flagConfig     string
	flagSeed       int64
	flagDBPath     string
	flagRenderer   string
	flagSpeed      float64
	flagQuality    string
	flagTimeLimit  string
	flagTeamMode   bool
	flagAutoResize bool
	flagLogLevel   string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "battlefield",
	Short: "Battlefield - watch AI tanks fight in your terminal",
	Long: `Battlefield mounts a tank battle simulation, drives it to the end
and reports the winners.

Available commands:
  run        - Watch a battle in the terminal
  headless   - Run a battle without UI and print the result
  renderers  - Show all available renderers
  results    - View stored battle results
  config     - Print or write the configuration
  serve      - Start SSH server for remote viewing
  web        - Serve battles to browsers

Examples:
  battlefield run
  battlefield run --seed 42 --team-mode
  battlefield headless --config ./duel.yaml
  battlefield results --csv > battles.csv
  battlefield serve --ssh :2222`,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagConfig, "config", "", "Path to battlefield config YAML")
	pf.Int64Var(&flagSeed, "seed", 0, "RNG seed (random when not set)")
	pf.StringVar(&flagDBPath, "db", "~/.battlefield/results.db", "Path to results database")
	pf.StringVar(&flagRenderer, "renderer", "", "Renderer name (see 'battlefield renderers')")
	pf.Float64Var(&flagSpeed, "speed", 0, "Simulation speed multiplier")
	pf.StringVar(&flagQuality, "quality", "", "Renderer quality: auto or 0..1")
	pf.StringVar(&flagTimeLimit, "time-limit", "", "Battle duration, e.g. 30s")
	pf.BoolVar(&flagTeamMode, "team-mode", false, "Group tanks into teams by name")
	pf.BoolVar(&flagAutoResize, "auto-resize", true, "Follow terminal width")
	pf.StringVar(&flagLogLevel, "log-level", "warn", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(headlessCmd)
	rootCmd.AddCommand(renderersCmd)
	rootCmd.AddCommand(resultsCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(webCmd)
}
