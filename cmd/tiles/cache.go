package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-tiles/internal/platform/tui"
	"github.com/vovakirdan/tui-tiles/internal/storage"
)

var (
	flagClear bool
	flagPlain bool
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Browse or clear cached analyses",
	Long: `Songs are analyzed once and the result is cached by file content.
Without flags an interactive browser opens; --plain prints a table instead.
Clear the cache after changing the analysis settings.

Examples:
  tiles cache
  tiles cache --plain
  tiles cache --clear`,
	Args: cobra.NoArgs,
	Run:  runCache,
}

func init() {
	cacheCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete all cached analyses")
	cacheCmd.Flags().BoolVar(&flagPlain, "plain", false, "Print a plain table")
}

func runCache(cmd *cobra.Command, args []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening analysis cache: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagClear {
		n, err := store.ClearAnalyses()
		if err != nil {
			store.Close()
			fmt.Fprintf(os.Stderr, "Error clearing cache: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Removed %d cached analyses.\n", n)
		return
	}

	fd := int(os.Stdout.Fd())
	if !flagPlain && term.IsTerminal(fd) {
		width, height := 80, 24
		if w, h, termErr := term.GetSize(fd); termErr == nil {
			width, height = w, h
		}
		if err := tui.RunCache(store, width, height); err != nil {
			store.Close()
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	entries, err := store.RecentAnalyses(50)
	if err != nil {
		store.Close()
		fmt.Fprintf(os.Stderr, "Error reading cache: %v\n", err)
		os.Exit(1)
	}

	if len(entries) == 0 {
		fmt.Println("Nothing cached yet.")
		return
	}

	fmt.Printf("  %-30s  %-8s  %6s  %5s  %s\n", "Song", "Source", "BPM", "Beats", "Cached")
	fmt.Printf("  %-30s  %-8s  %6s  %5s  %s\n", "----", "------", "---", "-----", "------")
	for _, e := range entries {
		fmt.Printf("  %-30s  %-8s  %6.1f  %5d  %s\n",
			truncate(filepath.Base(e.Path), 30), e.Source, e.Tempo, e.BeatCount,
			e.CreatedAt.Format("2006-01-02 15:04"))
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
