// Package store persists ingestion run history in SQLite.
package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"
)

// IngestRun is one recorded ingestion run.
type IngestRun struct {
	ID             string    `json:"id"`
	StartedAt      time.Time `json:"started_at"`
	FinishedAt     time.Time `json:"finished_at"`
	FilesProcessed int       `json:"files_processed"`
	FilesFailed    int       `json:"files_failed"`
	Companies      int       `json:"companies"`
	SnapshotPath   string    `json:"snapshot_path"`
}

// Store wraps the SQLite run-log database.
type Store struct {
	db *sql.DB
}

// NewSQLite opens the run-log database and configures WAL mode.
func NewSQLite(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "store: open sqlite")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "store: exec %s", pragma)
		}
	}
	return &Store{db: db}, nil
}

const migration = `
CREATE TABLE IF NOT EXISTS ingest_runs (
	id              TEXT PRIMARY KEY,
	started_at      DATETIME NOT NULL,
	finished_at     DATETIME NOT NULL,
	files_processed INTEGER NOT NULL,
	files_failed    INTEGER NOT NULL,
	companies       INTEGER NOT NULL,
	snapshot_path   TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_ingest_runs_started_at ON ingest_runs(started_at);
`

// Migrate creates the schema if needed.
func (s *Store) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, migration)
	return eris.Wrap(err, "store: migrate")
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// RecordRun inserts a finished run.
func (s *Store) RecordRun(ctx context.Context, run *IngestRun) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO ingest_runs (id, started_at, finished_at, files_processed, files_failed, companies, snapshot_path)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.StartedAt.UTC(), run.FinishedAt.UTC(),
		run.FilesProcessed, run.FilesFailed, run.Companies, run.SnapshotPath,
	)
	return eris.Wrap(err, "store: insert run")
}

// GetRun fetches one run by id.
func (s *Store) GetRun(ctx context.Context, id string) (*IngestRun, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, started_at, finished_at, files_processed, files_failed, companies, snapshot_path
		 FROM ingest_runs WHERE id = ?`, id)

	var run IngestRun
	err := row.Scan(&run.ID, &run.StartedAt, &run.FinishedAt,
		&run.FilesProcessed, &run.FilesFailed, &run.Companies, &run.SnapshotPath)
	if err == sql.ErrNoRows {
		return nil, eris.Errorf("store: run %s not found", id)
	}
	if err != nil {
		return nil, eris.Wrap(err, "store: get run")
	}
	return &run, nil
}

// ListRuns returns the most recent runs, newest first.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]IngestRun, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, started_at, finished_at, files_processed, files_failed, companies, snapshot_path
		 FROM ingest_runs ORDER BY started_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, eris.Wrap(err, "store: list runs")
	}
	defer rows.Close()

	var runs []IngestRun
	for rows.Next() {
		var run IngestRun
		if err := rows.Scan(&run.ID, &run.StartedAt, &run.FinishedAt,
			&run.FilesProcessed, &run.FilesFailed, &run.Companies, &run.SnapshotPath); err != nil {
			return nil, eris.Wrap(err, "store: scan run")
		}
		runs = append(runs, run)
	}
	return runs, eris.Wrap(rows.Err(), "store: iterate runs")
}
