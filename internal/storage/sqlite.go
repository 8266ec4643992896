// Package storage provides SQLite-based persistence for finished runs.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// DefaultPath is where the run log lives unless --db says otherwise.
const DefaultPath = "~/.cuberunner/runs.db"

const sqliteTime = "2006-01-02 15:04:05"

// Store manages the SQLite database connection for the run log.
type Store struct {
	db *sql.DB
}

// Run is a single finished run: how long the player survived in one mode.
type Run struct {
	ID         string
	Mode       string
	Seconds    float64
	Ticks      int64
	Autonomous bool
	ConfigHash string
	CreatedAt  time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	if dbPath == "" {
		dbPath = DefaultPath
	}

	// Expand ~ to home directory
	if dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

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

func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			mode TEXT NOT NULL,
			seconds REAL NOT NULL,
			ticks INTEGER NOT NULL DEFAULT 0,
			autonomous INTEGER NOT NULL DEFAULT 0,
			config_hash TEXT NOT NULL DEFAULT '',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_mode ON runs(mode);
		CREATE INDEX IF NOT EXISTS idx_runs_top ON runs(mode, seconds DESC);
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

// SaveRun records a finished run and returns its generated ID.
// A zero CreatedAt is stamped by the database.
func (s *Store) SaveRun(run Run) (string, error) {
	if run.Mode == "" {
		return "", errors.New("storage: run has no mode")
	}
	if run.ID == "" {
		run.ID = uuid.NewString()
	}

	var err error
	if run.CreatedAt.IsZero() {
		_, err = s.db.Exec(
			`INSERT INTO runs (id, mode, seconds, ticks, autonomous, config_hash)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			run.ID, run.Mode, run.Seconds, run.Ticks, run.Autonomous, run.ConfigHash,
		)
	} else {
		_, err = s.db.Exec(
			`INSERT INTO runs (id, mode, seconds, ticks, autonomous, config_hash, created_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			run.ID, run.Mode, run.Seconds, run.Ticks, run.Autonomous, run.ConfigHash,
			run.CreatedAt.UTC().Format(sqliteTime),
		)
	}
	if err != nil {
		return "", fmt.Errorf("storage: cannot save run: %w", err)
	}

	return run.ID, nil
}

// TopRuns retrieves the longest runs for the given mode, or for every mode
// when mode is empty. Results are ordered by survival time descending.
func (s *Store) TopRuns(mode string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, mode, seconds, ticks, autonomous, config_hash, created_at
		 FROM runs
		 WHERE ? = '' OR mode = ?
		 ORDER BY seconds DESC, created_at ASC
		 LIMIT ?`,
		mode, mode, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return runs, nil
}

// BestRun returns the longest run for the mode. ok is false when the mode
// has no runs yet.
func (s *Store) BestRun(mode string) (run Run, ok bool, err error) {
	runs, err := s.TopRuns(mode, 1)
	if err != nil {
		return Run{}, false, err
	}
	if len(runs) == 0 {
		return Run{}, false, nil
	}
	return runs[0], true, nil
}

// RunCount returns how many runs are recorded for the mode (all modes when
// empty).
func (s *Store) RunCount(mode string) (int, error) {
	var n int
	err := s.db.QueryRow(
		"SELECT COUNT(*) FROM runs WHERE ? = '' OR mode = ?",
		mode, mode,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot count runs: %w", err)
	}
	return n, nil
}

// DeleteRuns deletes all runs for the mode (all modes when empty) and
// reports how many were removed.
func (s *Store) DeleteRuns(mode string) (int64, error) {
	res, err := s.db.Exec("DELETE FROM runs WHERE ? = '' OR mode = ?", mode, mode)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot delete runs: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot count deleted runs: %w", err)
	}
	return n, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (Run, error) {
	var r Run
	var createdAt any
	if err := row.Scan(&r.ID, &r.Mode, &r.Seconds, &r.Ticks, &r.Autonomous, &r.ConfigHash, &createdAt); err != nil {
		return Run{}, fmt.Errorf("storage: cannot scan row: %w", err)
	}

	// The driver hands back either time.Time or the raw text.
	switch v := createdAt.(type) {
	case time.Time:
		r.CreatedAt = v
	case string:
		if parsed, err := time.Parse(sqliteTime, v); err == nil {
			r.CreatedAt = parsed
		}
	}
	return r, nil
}
