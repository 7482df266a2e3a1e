package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-tiles/internal/registry"
)

var sourcesCmd = &cobra.Command{
	Use:   "sources",
	Short: "List beat sources",
	Long:  `Shows the registered beat sources and the file types each one reads.`,
	Run:   runSources,
}

func runSources(cmd *cobra.Command, args []string) {
	sources := registry.List()

	if len(sources) == 0 {
		fmt.Println("No beat sources available.")
		return
	}

	fmt.Println("Beat sources:")
	fmt.Println()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	maxTitleLen := 5
	for _, s := range sources {
		maxIDLen = max(maxIDLen, len(s.ID))
		maxTitleLen = max(maxTitleLen, len(s.Title))
	}

	fmt.Printf("  %-*s  %-*s  %s\n", maxIDLen, "ID", maxTitleLen, "Title", "Files")
	fmt.Printf("  %-*s  %-*s  %s\n", maxIDLen, "--", maxTitleLen, "-----", "-----")

	for _, s := range sources {
		fmt.Printf("  %-*s  %-*s  %s\n", maxIDLen, s.ID, maxTitleLen, s.Title, strings.Join(s.Extensions, " "))
	}

	fmt.Println()
	fmt.Println("Run 'tiles play <song>' with any of these files.")
}
