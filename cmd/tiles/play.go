package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-tiles/internal/audio"
	"github.com/vovakirdan/tui-tiles/internal/config"
	"github.com/vovakirdan/tui-tiles/internal/core"
	"github.com/vovakirdan/tui-tiles/internal/games/tiles"
	"github.com/vovakirdan/tui-tiles/internal/platform/tui"
	"github.com/vovakirdan/tui-tiles/internal/registry"
)

var (
	flagConfig     string
	flagDifficulty string
	flagStride     int
	flagBeats      string
	flagNoAudio    bool
	flagNoCache    bool
)

var playCmd = &cobra.Command{
	Use:   "play <song>",
	Short: "Play along with a song",
	Long: `Analyze the song's beats and start playing.

The song may be an audio file (.wav, .mp3, .ogg) or a YAML beatmap, which is
played without sound. Use --beats to pair an audio file with a beatmap.

Controls:
  D F J K    - Tap lanes (configurable)
  P          - Pause
  R          - Restart (after the song ends)
  Q          - Quit (after the song ends)
  Esc/Ctrl+C - Quit at any time

Difficulty options:
  easy   - Slower tiles, every other beat, 8 misses allowed
  normal - Config defaults
  hard   - Faster tiles, tighter window, 3 misses allowed
  fixed  - No speed progression

Examples:
  tiles play song.mp3
  tiles play song.wav --difficulty hard
  tiles play song.mp3 --stride 2 --seed 42
  tiles play song.ogg --beats song.beats.yaml
  tiles play song.beats.yaml
  tiles play song.mp3 --config ./my-tiles.yaml`,
	Args: cobra.ExactArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	playCmd.Flags().IntVar(&flagStride, "stride", 0, "Use every Nth beat (0 = config value)")
	playCmd.Flags().StringVar(&flagBeats, "beats", "", "Beatmap to use instead of analyzing the song")
	playCmd.Flags().BoolVar(&flagNoAudio, "no-audio", false, "Play without sound")
	playCmd.Flags().BoolVar(&flagNoCache, "no-cache", false, "Do not use the analysis cache")
}

func runPlay(cmd *cobra.Command, args []string) {
	if err := playSong(args[0], flagBeats, flagDifficulty, runtimeConfig()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// runtimeConfig sizes the game to the terminal.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

// playSong finds the beats of songPath, or reads them from beatsPath when set,
// and runs the game until the player quits.
func playSong(songPath, beatsPath, difficulty string, rc core.RuntimeConfig) error {
	cfg, err := loadConfig(difficulty)
	if err != nil {
		return err
	}

	// Analyze before taking over the terminal
	if beatsPath == "" {
		beatsPath = songPath
	}
	store := openCache(flagNoCache)
	fmt.Fprintf(os.Stderr, "Finding beats in %s...\n", beatsPath)
	analysis, _, err := analyze(beatsPath, cfg.Analysis, store)
	if store != nil {
		store.Close()
	}
	if err != nil {
		return err
	}

	track := openTrack(songPath, cfg, analysis)
	defer track.Close()

	game := tiles.New(cfg, analysis.Beats, track)
	if err := tui.Run(game, track, tui.NewKeyMap(cfg.Lanes.Keys), rc); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}

// loadConfig loads the config and applies the difficulty preset and stride flag.
func loadConfig(difficulty string) (config.TilesConfig, error) {
	cfg, err := config.LoadTiles(flagConfig)
	if err != nil {
		return config.TilesConfig{}, err
	}

	if difficulty != "" {
		preset, err := config.ParsePreset(difficulty)
		if err != nil {
			return config.TilesConfig{}, err
		}
		config.ApplyTilesPreset(&cfg, preset)
	}
	if flagStride > 0 {
		cfg.Level.BeatStride = flagStride
	}
	if err := cfg.Validate(); err != nil {
		return config.TilesConfig{}, err
	}
	return cfg, nil
}

// playTrack is what the game needs from a song, plus cleanup.
type playTrack interface {
	tui.Track
	Close() error
}

// openTrack opens the song for playback, or a silent stand-in when sound is
// off, the song is a beatmap, or the audio device is unavailable.
func openTrack(songPath string, cfg config.TilesConfig, a core.BeatAnalysis) playTrack {
	if !flagNoAudio && cfg.Audio.Enabled {
		if src, err := registry.ForPath(songPath, cfg.Analysis); err == nil && src.ID() == "audio" {
			player, err := audio.Open(songPath, audio.Options{
				BufferMS: cfg.Audio.BufferMS,
				SFX:      cfg.Audio.SFX,
			})
			if err == nil {
				return player
			}
			log.Warn("playing without sound", "err", err)
			fmt.Fprintf(os.Stderr, "Warning: %v, playing without sound\n", err)
		}
	}

	return audio.NewSilent(silentDuration(a, cfg.Timing.HitTime))
}

// silentDuration is the song length, or long enough for the last tile to land.
func silentDuration(a core.BeatAnalysis, hitTime float64) time.Duration {
	seconds := a.Duration
	if seconds <= 0 && len(a.Beats) > 0 {
		seconds = a.Beats[len(a.Beats)-1] + hitTime + 1
	}
	return time.Duration(seconds * float64(time.Second))
}
