package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-tiles/internal/audio"
	"github.com/vovakirdan/tui-tiles/internal/beats"
	"github.com/vovakirdan/tui-tiles/internal/config"
)

// clickRate is the sample rate of exported click tracks.
const clickRate = 44100

var (
	flagOut   string
	flagClick string
)

var beatsCmd = &cobra.Command{
	Use:   "beats <song>",
	Short: "Analyze a song and print its beats",
	Long: `Find the tempo and beat times of a song.

--out saves the result as a YAML beatmap that can be edited by hand and
played with 'tiles play --beats'. --click renders the beats as a WAV click
track to check them by ear.

Examples:
  tiles beats song.mp3
  tiles beats song.mp3 --out song.beats.yaml
  tiles beats song.wav --click clicks.wav`,
	Args: cobra.ExactArgs(1),
	Run:  runBeats,
}

func init() {
	beatsCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	beatsCmd.Flags().StringVar(&flagOut, "out", "", "Write the beats to a YAML beatmap")
	beatsCmd.Flags().StringVar(&flagClick, "click", "", "Write a WAV click track of the beats")
	beatsCmd.Flags().BoolVar(&flagNoCache, "no-cache", false, "Do not use the analysis cache")
}

func runBeats(cmd *cobra.Command, args []string) {
	songPath := args[0]

	cfg, err := config.LoadTiles(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	store := openCache(flagNoCache)
	a, sourceID, err := analyze(songPath, cfg.Analysis, store)
	if store != nil {
		store.Close()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Source:   %s\n", sourceID)
	if a.Tempo > 0 {
		fmt.Printf("Tempo:    %.1f BPM\n", a.Tempo)
	}
	if a.Duration > 0 {
		fmt.Printf("Duration: %.2fs\n", a.Duration)
	}
	fmt.Printf("Beats:    %d\n", len(a.Beats))
	fmt.Println()

	// Print beats, eight per row
	for i := 0; i < len(a.Beats); i += 8 {
		row := a.Beats[i:min(i+8, len(a.Beats))]
		parts := make([]string, len(row))
		for j, bt := range row {
			parts[j] = fmt.Sprintf("%7.3f", bt)
		}
		fmt.Println(strings.Join(parts, " "))
	}

	if flagOut != "" {
		if err := beats.WriteBeatmap(flagOut, a); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("\nBeatmap written to %s\n", flagOut)
	}

	if flagClick != "" {
		samples := audio.ClickTrack(a.Beats, a.Duration, clickRate)
		if err := audio.WriteWAV(flagClick, samples, clickRate); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("\nClick track written to %s\n", flagClick)
	}
}
