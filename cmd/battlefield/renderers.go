package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/battlefield/internal/engine"
)

var renderersCmd = &cobra.Command{
	Use:   "renderers",
	Short: "List all available renderers",
	Long:  `Shows a list of all renderers registered with the engine.`,
	Run:   runRenderers,
}

func runRenderers(cmd *cobra.Command, args []string) {
	renderers := engine.Renderers()

	if len(renderers) == 0 {
		fmt.Println("No renderers available.")
		return
	}

	fmt.Println("Available renderers:")
	fmt.Println()

	maxNameLen := 4 // "Name" header
	for _, r := range renderers {
		if len(r.Name) > maxNameLen {
			maxNameLen = len(r.Name)
		}
	}

	fmt.Printf("  %-*s  %s\n", maxNameLen, "Name", "Title")
	fmt.Printf("  %-*s  %s\n", maxNameLen, "----", "-----")
	for _, r := range renderers {
		fmt.Printf("  %-*s  %s\n", maxNameLen, r.Name, r.Title)
	}

	fmt.Println()
	fmt.Println("Run 'battlefield run --renderer <name>' to use one.")
}
