// Package storage provides a SQLite cache of beat analyses.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/tui-tiles/internal/core"
)

// Store manages the SQLite database connection for the analysis cache.
type Store struct {
	db *sql.DB
}

// AnalysisEntry describes one cached analysis.
type AnalysisEntry struct {
	Hash      string
	Source    string
	Path      string
	Tempo     float64
	Duration  float64
	BeatCount int
	CreatedAt time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS analyses (
			hash TEXT PRIMARY KEY,
			source TEXT NOT NULL,
			path TEXT NOT NULL,
			tempo REAL NOT NULL DEFAULT 0,
			duration REAL NOT NULL DEFAULT 0,
			beat_count INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS beats (
			hash TEXT NOT NULL REFERENCES analyses(hash) ON DELETE CASCADE,
			idx INTEGER NOT NULL,
			time REAL NOT NULL,
			PRIMARY KEY (hash, idx)
		);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveAnalysis stores an analysis under the content hash, replacing any previous one.
func (s *Store) SaveAnalysis(hash, source, path string, a core.BeatAnalysis) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM beats WHERE hash = ?", hash); err != nil {
		return fmt.Errorf("storage: cannot clear beats: %w", err)
	}

	_, err = tx.Exec(
		`INSERT OR REPLACE INTO analyses (hash, source, path, tempo, duration, beat_count)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		hash, source, path, a.Tempo, a.Duration, len(a.Beats),
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save analysis: %w", err)
	}

	stmt, err := tx.Prepare("INSERT INTO beats (hash, idx, time) VALUES (?, ?, ?)")
	if err != nil {
		return fmt.Errorf("storage: cannot prepare beat insert: %w", err)
	}
	defer stmt.Close()

	for i, bt := range a.Beats {
		if _, err := stmt.Exec(hash, i, bt); err != nil {
			return fmt.Errorf("storage: cannot save beat %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit analysis: %w", err)
	}
	return nil
}

// LoadAnalysis returns the cached analysis for a hash.
// The boolean is false when nothing is cached.
func (s *Store) LoadAnalysis(hash string) (core.BeatAnalysis, bool, error) {
	var a core.BeatAnalysis
	var count int

	err := s.db.QueryRow(
		"SELECT tempo, duration, beat_count FROM analyses WHERE hash = ?",
		hash,
	).Scan(&a.Tempo, &a.Duration, &count)
	if errors.Is(err, sql.ErrNoRows) {
		return core.BeatAnalysis{}, false, nil
	}
	if err != nil {
		return core.BeatAnalysis{}, false, fmt.Errorf("storage: cannot query analysis: %w", err)
	}

	rows, err := s.db.Query("SELECT time FROM beats WHERE hash = ? ORDER BY idx", hash)
	if err != nil {
		return core.BeatAnalysis{}, false, fmt.Errorf("storage: cannot query beats: %w", err)
	}
	defer rows.Close()

	a.Beats = make([]float64, 0, count)
	for rows.Next() {
		var bt float64
		if err := rows.Scan(&bt); err != nil {
			return core.BeatAnalysis{}, false, fmt.Errorf("storage: cannot scan beat: %w", err)
		}
		a.Beats = append(a.Beats, bt)
	}
	if err := rows.Err(); err != nil {
		return core.BeatAnalysis{}, false, fmt.Errorf("storage: row iteration error: %w", err)
	}

	// A partial write is treated as a miss.
	if len(a.Beats) != count {
		return core.BeatAnalysis{}, false, nil
	}
	return a, true, nil
}

// RecentAnalyses lists cached analyses, newest first.
func (s *Store) RecentAnalyses(limit int) ([]AnalysisEntry, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT hash, source, path, tempo, duration, beat_count, created_at
		 FROM analyses
		 ORDER BY created_at DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query analyses: %w", err)
	}
	defer rows.Close()

	var entries []AnalysisEntry
	for rows.Next() {
		var e AnalysisEntry
		var createdAt any
		if err := rows.Scan(&e.Hash, &e.Source, &e.Path, &e.Tempo, &e.Duration, &e.BeatCount, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}

		// Parse the datetime - handle both time.Time and string
		switch v := createdAt.(type) {
		case time.Time:
			e.CreatedAt = v
		case string:
			if parsed, err := time.Parse("2006-01-02 15:04:05", v); err == nil {
				e.CreatedAt = parsed
			}
		}
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// ClearAnalyses deletes every cached analysis and returns how many were removed.
func (s *Store) ClearAnalyses() (int64, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM beats"); err != nil {
		return 0, fmt.Errorf("storage: cannot clear beats: %w", err)
	}
	res, err := tx.Exec("DELETE FROM analyses")
	if err != nil {
		return 0, fmt.Errorf("storage: cannot clear analyses: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot count cleared rows: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("storage: cannot commit clear: %w", err)
	}
	return n, nil
}
