// Package history persists run summaries and per-file operation records so
// past runs can be audited with `sortd history`.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Run is one invocation of the organize engine.
type Run struct {
	ID         string
	Target     string
	Mode       string
	DryRun     bool
	StartedAt  time.Time
	FinishedAt time.Time
	Moved      int
	Deleted    int
	Skipped    int
	Failed     int
}

// Operation is the persisted outcome of one attempted mutation.
type Operation struct {
	Path    string
	Action  string
	Dest    string
	Outcome string
	Note    string
	Error   string
}

// Store manages run history backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the history database and applies migrations.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("ensure history directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: path}
	if err := store.applyMigrations(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the on-disk database location.
func (s *Store) Path() string {
	if s == nil {
		return ""
	}
	return s.path
}

func (s *Store) applyMigrations(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			target TEXT NOT NULL,
			mode TEXT NOT NULL,
			dry_run INTEGER NOT NULL DEFAULT 0,
			started_at TEXT NOT NULL,
			finished_at TEXT NOT NULL,
			moved INTEGER NOT NULL DEFAULT 0,
			deleted INTEGER NOT NULL DEFAULT 0,
			skipped INTEGER NOT NULL DEFAULT 0,
			failed INTEGER NOT NULL DEFAULT 0
		)`,
		`CREATE TABLE IF NOT EXISTS operations (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
			path TEXT NOT NULL,
			action TEXT NOT NULL,
			dest TEXT,
			outcome TEXT NOT NULL,
			note TEXT,
			error TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_operations_run ON operations(run_id)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_started ON runs(started_at)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("apply migration: %w", err)
		}
	}
	return nil
}

// RecordRun inserts a run and its operations in one transaction.
func (s *Store) RecordRun(ctx context.Context, run Run, ops []Operation) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	_, err = tx.ExecContext(
		ctx,
		`INSERT INTO runs (id, target, mode, dry_run, started_at, finished_at, moved, deleted, skipped, failed)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID,
		run.Target,
		run.Mode,
		boolToInt(run.DryRun),
		run.StartedAt.UTC().Format(time.RFC3339Nano),
		run.FinishedAt.UTC().Format(time.RFC3339Nano),
		run.Moved,
		run.Deleted,
		run.Skipped,
		run.Failed,
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	for _, op := range ops {
		_, err = tx.ExecContext(
			ctx,
			`INSERT INTO operations (run_id, path, action, dest, outcome, note, error)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			run.ID,
			op.Path,
			op.Action,
			nullableString(op.Dest),
			op.Outcome,
			nullableString(op.Note),
			nullableString(op.Error),
		)
		if err != nil {
			return fmt.Errorf("insert operation for %s: %w", op.Path, err)
		}
	}

	return tx.Commit()
}

// RecentRuns returns the most recent runs, newest first. A non-positive
// limit defaults to 20.
func (s *Store) RecentRuns(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT id, target, mode, dry_run, started_at, finished_at, moved, deleted, skipped, failed
		 FROM runs ORDER BY started_at DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// RunOperations returns the operations recorded for one run, in insertion order.
func (s *Store) RunOperations(ctx context.Context, runID string) ([]Operation, error) {
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT path, action, dest, outcome, note, error FROM operations WHERE run_id = ? ORDER BY id`,
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("query operations: %w", err)
	}
	defer rows.Close()

	var ops []Operation
	for rows.Next() {
		var op Operation
		var dest, note, opErr sql.NullString
		if err := rows.Scan(&op.Path, &op.Action, &dest, &op.Outcome, &note, &opErr); err != nil {
			return nil, fmt.Errorf("scan operation: %w", err)
		}
		op.Dest = dest.String
		op.Note = note.String
		op.Error = opErr.String
		ops = append(ops, op)
	}
	return ops, rows.Err()
}

func scanRun(rows *sql.Rows) (Run, error) {
	var run Run
	var dryRun int
	var started, finished string
	if err := rows.Scan(&run.ID, &run.Target, &run.Mode, &dryRun, &started, &finished,
		&run.Moved, &run.Deleted, &run.Skipped, &run.Failed); err != nil {
		return Run{}, fmt.Errorf("scan run: %w", err)
	}
	run.DryRun = dryRun != 0
	var err error
	if run.StartedAt, err = time.Parse(time.RFC3339Nano, started); err != nil {
		return Run{}, fmt.Errorf("parse started_at: %w", err)
	}
	if run.FinishedAt, err = time.Parse(time.RFC3339Nano, finished); err != nil {
		return Run{}, fmt.Errorf("parse finished_at: %w", err)
	}
	return run, nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

func boolToInt(v bool) int {
	if v {
		return 1
	}
	return 0
}
