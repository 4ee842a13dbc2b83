// Package metrics persists crew run records and writes the per-run
// report files (cost, usage, Gantt chart, plan details).
package metrics

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/planforge/planforge/pkg/models"
)

// Store wraps an SQLite database holding run history.
type Store struct {
	conn *sql.DB
	path string
	mu   sync.RWMutex
}

// RunRecord is a persisted crew run.
type RunRecord struct {
	ID           string
	Project      string
	Provider     string
	Model        string
	Status       models.RunStatus
	InputTokens  int64
	OutputTokens int64
	Calls        int
	Cost         float64
	StartedAt    time.Time
	CompletedAt  *time.Time
	Error        string
}

// ProjectDBPath returns the path to the project-local run database.
func ProjectDBPath(projectRoot string) string {
	return filepath.Join(projectRoot, ".planforge", "runs.db")
}

// Open opens an SQLite database at the given path.
// It creates the parent directories if they don't exist.
// WAL mode is enabled for concurrent reads.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("enable WAL mode: %w", err)
	}
	if _, err := conn.Exec("PRAGMA foreign_keys=ON"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}

	return &Store{conn: conn, path: path}, nil
}

// OpenProject opens the project-local run database and applies migrations.
func OpenProject(projectRoot string) (*Store, error) {
	store, err := Open(ProjectDBPath(projectRoot))
	if err != nil {
		return nil, err
	}
	if err := store.Migrate(); err != nil {
		store.Close()
		return nil, err
	}
	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conn.Close()
}

// Path returns the path to the database file.
func (s *Store) Path() string {
	return s.path
}

// Migrate applies all pending schema migrations.
func (s *Store) Migrate() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.conn.Exec(`
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("create schema_version table: %w", err)
	}

	var currentVersion int
	row := s.conn.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_version")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("get schema version: %w", err)
	}

	migrations := []struct {
		version int
		sql     string
	}{
		{1, migrationV1Runs},
	}

	for _, m := range migrations {
		if m.version <= currentVersion {
			continue
		}

		tx, err := s.conn.Begin()
		if err != nil {
			return fmt.Errorf("begin transaction: %w", err)
		}

		if _, err := tx.Exec(m.sql); err != nil {
			tx.Rollback()
			return fmt.Errorf("apply migration v%d: %w", m.version, err)
		}

		if _, err := tx.Exec("INSERT INTO schema_version (version) VALUES (?)", m.version); err != nil {
			tx.Rollback()
			return fmt.Errorf("record migration v%d: %w", m.version, err)
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit migration v%d: %w", m.version, err)
		}
	}

	return nil
}

const migrationV1Runs = `
CREATE TABLE IF NOT EXISTS runs (
	id TEXT PRIMARY KEY,
	project TEXT NOT NULL,
	provider TEXT NOT NULL,
	model TEXT NOT NULL,
	status TEXT NOT NULL DEFAULT 'pending',
	input_tokens INTEGER NOT NULL DEFAULT 0,
	output_tokens INTEGER NOT NULL DEFAULT 0,
	calls INTEGER NOT NULL DEFAULT 0,
	cost REAL NOT NULL DEFAULT 0,
	started_at DATETIME NOT NULL,
	completed_at DATETIME,
	error TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_runs_started_at ON runs(started_at);
`

// CreateRun inserts a new run record.
func (s *Store) CreateRun(r *RunRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.conn.Exec(`
		INSERT INTO runs (id, project, provider, model, status, input_tokens, output_tokens, calls, cost, started_at, completed_at, error)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, r.ID, r.Project, r.Provider, r.Model, string(r.Status),
		r.InputTokens, r.OutputTokens, r.Calls, r.Cost,
		formatTime(r.StartedAt), formatTimePtr(r.CompletedAt), r.Error)
	if err != nil {
		return fmt.Errorf("create run: %w", err)
	}
	return nil
}

// FinishRun updates a run's terminal state and usage totals.
func (s *Store) FinishRun(r *RunRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.conn.Exec(`
		UPDATE runs
		SET status = ?, input_tokens = ?, output_tokens = ?, calls = ?, cost = ?, completed_at = ?, error = ?
		WHERE id = ?
	`, string(r.Status), r.InputTokens, r.OutputTokens, r.Calls, r.Cost,
		formatTimePtr(r.CompletedAt), r.Error, r.ID)
	if err != nil {
		return fmt.Errorf("finish run: %w", err)
	}
	return nil
}

// GetRun retrieves a run by ID. Returns nil if not found.
func (s *Store) GetRun(id string) (*RunRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.conn.QueryRow(`
		SELECT id, project, provider, model, status, input_tokens, output_tokens, calls, cost, started_at, completed_at, error
		FROM runs WHERE id = ?
	`, id)

	r, err := scanRun(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get run: %w", err)
	}
	return r, nil
}

// ListRecent returns the most recent runs, newest first.
func (s *Store) ListRecent(limit int) ([]*RunRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.conn.Query(`
		SELECT id, project, provider, model, status, input_tokens, output_tokens, calls, cost, started_at, completed_at, error
		FROM runs ORDER BY started_at DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []*RunRecord
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// TotalCost returns the summed cost of all recorded runs.
func (s *Store) TotalCost() (float64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var total float64
	row := s.conn.QueryRow("SELECT COALESCE(SUM(cost), 0) FROM runs")
	if err := row.Scan(&total); err != nil {
		return 0, fmt.Errorf("total cost: %w", err)
	}
	return total, nil
}

type scannable interface {
	Scan(dest ...any) error
}

func scanRun(row scannable) (*RunRecord, error) {
	var r RunRecord
	var status, startedAt string
	var completedAt sql.NullString

	err := row.Scan(&r.ID, &r.Project, &r.Provider, &r.Model, &status,
		&r.InputTokens, &r.OutputTokens, &r.Calls, &r.Cost,
		&startedAt, &completedAt, &r.Error)
	if err != nil {
		return nil, err
	}

	r.Status = models.RunStatus(status)
	r.StartedAt, _ = parseTime(startedAt)
	if completedAt.Valid && completedAt.String != "" {
		t, err := parseTime(completedAt.String)
		if err == nil {
			r.CompletedAt = &t
		}
	}
	return &r, nil
}

const timeLayout = time.RFC3339Nano

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func formatTimePtr(t *time.Time) any {
	if t == nil {
		return nil
	}
	return formatTime(*t)
}

func parseTime(s string) (time.Time, error) {
	return time.Parse(timeLayout, s)
}
