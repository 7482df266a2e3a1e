package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
)

var logFile *os.File

// setupLogging installs the default logger. The TUI owns the terminal while
// playing, so logs go to a file; if it cannot be opened they are discarded.
func setupLogging(level, path string) error {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		lvl = log.InfoLevel
	}

	var w io.Writer = io.Discard
	var openErr error
	if path != "" {
		path = expandHome(path)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			openErr = fmt.Errorf("cannot create log directory: %w", err)
		} else if f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644); err != nil {
			openErr = fmt.Errorf("cannot open log file: %w", err)
		} else {
			logFile = f
			w = f
		}
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "tiles",
		Level:           lvl,
	})
	log.SetDefault(logger)
	return openErr
}

func closeLogging() {
	if logFile != nil {
		logFile.Close()
		logFile = nil
	}
}

// expandHome replaces a leading ~ with the home directory.
func expandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
