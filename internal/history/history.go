// Package history implements the conversion-run ledger: a user-local
// SQLite database recording each batch conversion, so past runs can be
// listed and compared. The core engines never touch this store;
// persistence is strictly an adapter concern.
package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"skillport/internal/logging"
)

// Run is one recorded batch conversion.
type Run struct {
	ID        string
	StartedAt time.Time
	Source    string
	Target    string
	Files     int
	Warnings  int
	Failures  int
}

// FileRecord is one converted document within a run.
type FileRecord struct {
	Path     string
	Output   string
	Warnings int
	Err      string
}

// Store manages the ledger database.
type Store struct {
	db   *sql.DB
	path string
	mu   sync.Mutex
}

// Open creates or opens the ledger at path, initializing the schema.
func Open(path string) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("history database path required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create history directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open history database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("verify history database: %w", err)
	}

	s := &Store{db: db, path: path}
	if err := s.initializeSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("initialize history schema: %w", err)
	}

	logging.Get(logging.CategoryHistory).Debug("history ledger opened")
	return s, nil
}

func (s *Store) initializeSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		started_at DATETIME NOT NULL,
		source TEXT NOT NULL,
		target TEXT NOT NULL,
		files INTEGER NOT NULL,
		warnings INTEGER NOT NULL,
		failures INTEGER NOT NULL
	);
	CREATE TABLE IF NOT EXISTS run_files (
		run_id TEXT NOT NULL REFERENCES runs(id),
		path TEXT NOT NULL,
		output TEXT,
		warnings INTEGER NOT NULL,
		error TEXT
	);
	CREATE INDEX IF NOT EXISTS idx_run_files_run ON run_files(run_id);
	CREATE INDEX IF NOT EXISTS idx_runs_started ON runs(started_at);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Close releases the database handle.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.Close()
}

// Record persists one run and its per-file rows atomically.
func (s *Store) Record(run Run, files []FileRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin history transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(
		`INSERT INTO runs (id, started_at, source, target, files, warnings, failures) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.StartedAt.UTC(), run.Source, run.Target, run.Files, run.Warnings, run.Failures,
	); err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	for _, f := range files {
		if _, err := tx.Exec(
			`INSERT INTO run_files (run_id, path, output, warnings, error) VALUES (?, ?, ?, ?, ?)`,
			run.ID, f.Path, f.Output, f.Warnings, f.Err,
		); err != nil {
			return fmt.Errorf("insert run file: %w", err)
		}
	}

	return tx.Commit()
}

// Recent returns the most recent runs, newest first.
func (s *Store) Recent(limit int) ([]Run, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.Query(
		`SELECT id, started_at, source, target, files, warnings, failures FROM runs ORDER BY started_at DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		if err := rows.Scan(&r.ID, &r.StartedAt, &r.Source, &r.Target, &r.Files, &r.Warnings, &r.Failures); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// Files returns the per-file rows for a run.
func (s *Store) Files(runID string) ([]FileRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.Query(
		`SELECT path, output, warnings, error FROM run_files WHERE run_id = ? ORDER BY path`,
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("query run files: %w", err)
	}
	defer rows.Close()

	var files []FileRecord
	for rows.Next() {
		var f FileRecord
		if err := rows.Scan(&f.Path, &f.Output, &f.Warnings, &f.Err); err != nil {
			return nil, fmt.Errorf("scan run file: %w", err)
		}
		files = append(files, f)
	}
	return files, rows.Err()
}
