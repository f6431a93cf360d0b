package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/battlefield/internal/config"
)

var flagWrite string

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print or write the effective configuration",
	Long: `Print the configuration a battle would use, after the config file
lookup and command-line overrides. With --write it is saved as YAML instead.

Config lookup order:
  --config <path>
  ~/.battlefield/configs/battlefield.yaml
  ./configs/battlefield.yaml
  built-in defaults

Examples:
  battlefield config
  battlefield config --seed 42 --write ~/.battlefield/configs/battlefield.yaml`,
	Args: cobra.NoArgs,
	Run:  runConfig,
}

func init() {
	configCmd.Flags().StringVar(&flagWrite, "write", "", "Write the configuration to this path")
}

func runConfig(cmd *cobra.Command, _ []string) {
	f, err := loadFile(cmd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if flagWrite != "" {
		if err := config.Write(flagWrite, f); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Configuration written to %s\n", flagWrite)
		return
	}

	data, err := yaml.Marshal(f)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	os.Stdout.Write(data)
}
