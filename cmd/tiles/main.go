// tiles is a terminal rhythm game: tap the lane keys as tiles fall onto the
// hit line in time with a song's beats.
//
// Usage:
//
//	tiles play <song>        - Play along with a song or beatmap
//	tiles beats <song>       - Analyze a song and print or export its beats
//	tiles sources            - List the beat sources and their file types
//	tiles cache              - Browse or clear cached analyses
//	tiles menu [dir]         - Pick songs from a folder
//
// Global flags:
//
//	--fps <rate>         - Set tick rate (default: 60)
//	--seed <value>       - Set RNG seed for reproducible levels
//	--db <path>          - Set cache database path (default: ~/.tiles/tiles.db)
//	--log-level <level>  - debug, info, warn or error (default: info)
//	--log-file <path>    - Log destination (default: ~/.tiles/tiles.log)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import beat sources to register them
	_ "github.com/vovakirdan/tui-tiles/internal/beats"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagLogLevel string
	flagLogFile  string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "tiles",
	Short: "Tiles - a rhythm game for your terminal",
	Long: `Tiles turns the beats of a song into falling tiles across a few lanes.
Tap a lane's key while its tile crosses the hit line.

Available commands:
  play     - Play along with a song or beatmap
  beats    - Analyze a song and print or export its beats
  sources  - List beat sources and the files they read
  cache    - Browse or clear cached analyses
  menu     - Pick songs from a folder

Examples:
  tiles play song.mp3
  tiles play song.wav --difficulty easy
  tiles play song.ogg --beats song.beats.yaml
  tiles beats song.mp3 --out song.beats.yaml
  tiles sources`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if err := setupLogging(flagLogLevel, flagLogFile); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		}
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		closeLogging()
	},
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.tiles/tiles.db", "Path to analysis cache database")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "~/.tiles/tiles.log", "Path to log file")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(beatsCmd)
	rootCmd.AddCommand(sourcesCmd)
	rootCmd.AddCommand(cacheCmd)
	rootCmd.AddCommand(menuCmd)
}
