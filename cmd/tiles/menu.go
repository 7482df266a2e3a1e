package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-tiles/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu [dir]",
	Short: "Pick a song from a folder",
	Long: `List the playable files in a folder (default: current directory)
and play them one after another. After a song ends you return to the menu.

Controls:
  Up/Down/j/k     - Navigate
  Tab/Left/Right  - Change difficulty
  Enter           - Play
  Q               - Quit

Examples:
  tiles menu
  tiles menu ~/Music
  tiles menu ./maps --difficulty hard`,
	Args: cobra.MaximumNArgs(1),
	Run:  runMenu,
}

func init() {
	menuCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	menuCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Initial difficulty preset (default normal)")
	menuCmd.Flags().BoolVar(&flagNoAudio, "no-audio", false, "Play without sound")
	menuCmd.Flags().BoolVar(&flagNoCache, "no-cache", false, "Do not use the analysis cache")
}

func runMenu(_ *cobra.Command, args []string) {
	dir := "."
	if len(args) == 1 {
		dir = expandHome(args[0])
	}

	songs, err := tui.FindSongs(dir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	cfg := runtimeConfig()
	difficulty := flagDifficulty

	// Menu loop
	for {
		result, err := tui.RunMenu(songs, difficulty, cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			break
		}
		if result.Quit {
			break
		}

		// Update config with any size changes
		cfg = result.Config
		difficulty = result.Difficulty

		if err := playSong(result.Song.Path, "", difficulty, cfg); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			fmt.Fprintln(os.Stderr, "Press Enter to return to the menu.")
			//nolint:errcheck // Any input returns to the menu
			fmt.Scanln()
		}
	}
}
