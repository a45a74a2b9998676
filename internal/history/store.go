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

// Run is one recorded batch conversion.
type Run struct {
	ID          string
	StartedAt   time.Time
	FinishedAt  time.Time
	Database    string
	Destination string
	Format      string
	Total       int
	Succeeded   int
	Failed      int
}

// Entry is the outcome for a single database record within a run.
type Entry struct {
	RunID      string
	SongID     string
	Difficulty string
	ScriptPath string
	OutputPath string
	Status     string // "ok" or "failed"
	Detail     string // error text for failed entries
}

// Store manages run persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the history database.
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
	if err := store.applySchema(context.Background()); err != nil {
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

// Path returns the database file location.
func (s *Store) Path() string { return s.path }

func (s *Store) applySchema(ctx context.Context) error {
	const schema = `
CREATE TABLE IF NOT EXISTS runs (
    id TEXT PRIMARY KEY,
    started_at TEXT NOT NULL,
    finished_at TEXT NOT NULL,
    database_path TEXT NOT NULL,
    destination TEXT NOT NULL,
    format TEXT NOT NULL,
    total INTEGER NOT NULL,
    succeeded INTEGER NOT NULL,
    failed INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS run_entries (
    run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
    song_id TEXT NOT NULL,
    difficulty TEXT NOT NULL,
    script_path TEXT NOT NULL,
    output_path TEXT,
    status TEXT NOT NULL,
    detail TEXT
);
CREATE INDEX IF NOT EXISTS idx_run_entries_run ON run_entries(run_id);
`
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}

// SaveRun stores a run and its entries in one transaction.
func (s *Store) SaveRun(ctx context.Context, run Run, entries []Entry) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(
		ctx,
		`INSERT INTO runs (id, started_at, finished_at, database_path, destination, format, total, succeeded, failed)
         VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID,
		run.StartedAt.UTC().Format(time.RFC3339Nano),
		run.FinishedAt.UTC().Format(time.RFC3339Nano),
		run.Database,
		run.Destination,
		run.Format,
		run.Total,
		run.Succeeded,
		run.Failed,
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	for _, entry := range entries {
		_, err = tx.ExecContext(
			ctx,
			`INSERT INTO run_entries (run_id, song_id, difficulty, script_path, output_path, status, detail)
             VALUES (?, ?, ?, ?, ?, ?, ?)`,
			run.ID,
			entry.SongID,
			entry.Difficulty,
			entry.ScriptPath,
			nullableString(entry.OutputPath),
			entry.Status,
			nullableString(entry.Detail),
		)
		if err != nil {
			return fmt.Errorf("insert run entry: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit run: %w", err)
	}
	return nil
}

// RecentRuns returns up to limit runs, newest first.
func (s *Store) RecentRuns(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT id, started_at, finished_at, database_path, destination, format, total, succeeded, failed
         FROM runs ORDER BY started_at DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var run Run
		var started, finished string
		if err := rows.Scan(&run.ID, &started, &finished, &run.Database, &run.Destination, &run.Format, &run.Total, &run.Succeeded, &run.Failed); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		run.StartedAt, _ = time.Parse(time.RFC3339Nano, started)
		run.FinishedAt, _ = time.Parse(time.RFC3339Nano, finished)
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// RunEntries returns the per-song outcomes of a run in insertion order.
func (s *Store) RunEntries(ctx context.Context, runID string) ([]Entry, error) {
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT run_id, song_id, difficulty, script_path, output_path, status, detail
         FROM run_entries WHERE run_id = ? ORDER BY rowid`,
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("query run entries: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var entry Entry
		var output, detail sql.NullString
		if err := rows.Scan(&entry.RunID, &entry.SongID, &entry.Difficulty, &entry.ScriptPath, &output, &entry.Status, &detail); err != nil {
			return nil, fmt.Errorf("scan run entry: %w", err)
		}
		entry.OutputPath = output.String
		entry.Detail = detail.String
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}
