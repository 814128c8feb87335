// Package store keeps the run history: one row per pipeline invocation.
// The content pipeline itself is stateless; this is orchestration-side
// bookkeeping only.
package store

import (
	"database/sql"
	"errors"
	"fmt"

	"recast/internal/model"
)

// RunRecorder is the interface the orchestrator needs from the store.
type RunRecorder interface {
	SaveRun(run model.Run) error
}

var _ RunRecorder = (*Store)(nil)

// Store provides data access to the SQLite database.
type Store struct {
	db *sql.DB
}

// New creates a new Store and initialises the schema.
func New(db *sql.DB) (*Store, error) {
	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

func (s *Store) migrate() error {
	if _, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS schema_version (version INTEGER NOT NULL)`); err != nil {
		return fmt.Errorf("create schema_version table: %w", err)
	}

	var version int
	err := s.db.QueryRow(`SELECT version FROM schema_version LIMIT 1`).Scan(&version)
	if errors.Is(err, sql.ErrNoRows) {
		if _, err := s.db.Exec(`INSERT INTO schema_version (version) VALUES (0)`); err != nil {
			return fmt.Errorf("init schema version: %w", err)
		}
		version = 0
	} else if err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}

	// migrations is an ordered list of migration functions.
	// Index 0 = migration from v0 to v1, etc.
	migrations := []func() error{
		s.migrateV1, // v0 → v1: initial schema
	}

	for i := version; i < len(migrations); i++ {
		if err := migrations[i](); err != nil {
			return fmt.Errorf("migration v%d→v%d: %w", i, i+1, err)
		}
		if _, err := s.db.Exec(`UPDATE schema_version SET version = ?`, i+1); err != nil {
			return fmt.Errorf("update schema version to %d: %w", i+1, err)
		}
	}

	return nil
}

// migrateV1 creates the initial schema (v0 → v1).
func (s *Store) migrateV1() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id           TEXT PRIMARY KEY,
		source       TEXT NOT NULL,
		name         TEXT NOT NULL,
		content_type TEXT NOT NULL,
		tone         TEXT NOT NULL,
		length       TEXT NOT NULL,
		status       TEXT NOT NULL,
		output       TEXT,
		error        TEXT,
		created_at   TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at DESC);
	CREATE INDEX IF NOT EXISTS idx_runs_status ON runs(status, created_at DESC);
	`
	_, err := s.db.Exec(schema)
	return err
}

// SaveRun inserts one completed or failed run.
func (s *Store) SaveRun(run model.Run) error {
	_, err := s.db.Exec(`
		INSERT INTO runs (id, source, name, content_type, tone, length, status, output, error, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.Source, run.Name, run.ContentType, run.Tone, run.Length,
		run.Status, run.Output, run.ErrorText, run.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	return nil
}

// GetRun loads one run by ID.
func (s *Store) GetRun(id string) (model.Run, error) {
	var run model.Run
	err := s.db.QueryRow(`
		SELECT id, source, name, content_type, tone, length, status, output, error, created_at
		FROM runs WHERE id = ?`, id).Scan(
		&run.ID, &run.Source, &run.Name, &run.ContentType, &run.Tone, &run.Length,
		&run.Status, &run.Output, &run.ErrorText, &run.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Run{}, fmt.Errorf("run %s not found", id)
	}
	if err != nil {
		return model.Run{}, fmt.Errorf("query run: %w", err)
	}
	return run, nil
}

// ListRuns returns the most recent runs, newest first.
func (s *Store) ListRuns(limit int) ([]model.Run, error) {
	rows, err := s.db.Query(`
		SELECT id, source, name, content_type, tone, length, status, output, error, created_at
		FROM runs ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []model.Run
	for rows.Next() {
		var run model.Run
		if err := rows.Scan(
			&run.ID, &run.Source, &run.Name, &run.ContentType, &run.Tone, &run.Length,
			&run.Status, &run.Output, &run.ErrorText, &run.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}
