// Package storage provides SQLite-based persistence for experiment summaries.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
// Individual games are never stored.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/peterkuimelis/onirim/internal/experiment"
)

// ErrNotFound is returned when a run ID is unknown.
var ErrNotFound = errors.New("storage: run not found")

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// Run is the stored summary of one experiment.
type Run struct {
	ID        string
	Actor     string
	Deck      string
	Seed      int64
	Workers   int
	Statistic experiment.Statistic
	Elapsed   time.Duration
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
		CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			actor TEXT NOT NULL,
			deck TEXT NOT NULL,
			seed INTEGER NOT NULL,
			workers INTEGER NOT NULL,
			win INTEGER NOT NULL,
			lose INTEGER NOT NULL,
			success INTEGER NOT NULL,
			total INTEGER NOT NULL,
			opened INTEGER NOT NULL,
			elapsed_ms INTEGER NOT NULL,
			created_at TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at DESC);
		CREATE INDEX IF NOT EXISTS idx_runs_actor ON runs(actor);
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

// SaveRun records an experiment summary. An empty ID is replaced by a new
// UUID and a zero CreatedAt by the current time. Returns the stored ID.
func (s *Store) SaveRun(ctx context.Context, r Run) (string, error) {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now()
	}
	st := r.Statistic
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs
		 (id, actor, deck, seed, workers, win, lose, success, total, opened, elapsed_ms, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.Actor, r.Deck, r.Seed, r.Workers,
		st.Win, st.Lose, st.Success, st.Total, st.Opened,
		r.Elapsed.Milliseconds(),
		r.CreatedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot save run: %w", err)
	}
	return r.ID, nil
}

const runColumns = `id, actor, deck, seed, workers, win, lose, success, total, opened, elapsed_ms, created_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (Run, error) {
	var (
		r         Run
		elapsedMS int64
		createdAt string
	)
	err := row.Scan(
		&r.ID, &r.Actor, &r.Deck, &r.Seed, &r.Workers,
		&r.Statistic.Win, &r.Statistic.Lose, &r.Statistic.Success, &r.Statistic.Total, &r.Statistic.Opened,
		&elapsedMS, &createdAt,
	)
	if err != nil {
		return Run{}, err
	}
	r.Elapsed = time.Duration(elapsedMS) * time.Millisecond
	if parsed, err := time.Parse(time.RFC3339Nano, createdAt); err == nil {
		r.CreatedAt = parsed
	}
	return r, nil
}

// RunByID retrieves a run by its ID.
func (s *Store) RunByID(ctx context.Context, id string) (Run, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+runColumns+` FROM runs WHERE id = ?`, id)
	r, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, ErrNotFound
	}
	if err != nil {
		return Run{}, fmt.Errorf("storage: cannot query run: %w", err)
	}
	return r, nil
}

// RecentRuns retrieves the most recent runs, optionally only those of one actor.
func (s *Store) RecentRuns(ctx context.Context, actor string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `SELECT ` + runColumns + ` FROM runs`
	args := []any{}
	if actor != "" {
		query += ` WHERE actor = ?`
		args = append(args, actor)
	}
	query += ` ORDER BY created_at DESC LIMIT ?`
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return runs, nil
}

// ActorTotals sums the statistics of every stored run of one actor.
func (s *Store) ActorTotals(ctx context.Context, actor string) (experiment.Statistic, error) {
	var st experiment.Statistic
	err := s.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(win), 0), COALESCE(SUM(lose), 0), COALESCE(SUM(success), 0),
		        COALESCE(SUM(total), 0), COALESCE(SUM(opened), 0)
		 FROM runs WHERE actor = ?`,
		actor,
	).Scan(&st.Win, &st.Lose, &st.Success, &st.Total, &st.Opened)
	if err != nil {
		return experiment.Statistic{}, fmt.Errorf("storage: cannot sum runs: %w", err)
	}
	return st, nil
}

// DeleteRun removes a run. Deleting an unknown ID returns ErrNotFound.
func (s *Store) DeleteRun(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM runs WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("storage: cannot delete run: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("storage: cannot delete run: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
