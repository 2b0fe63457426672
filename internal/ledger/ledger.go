// Package ledger keeps the history of every run in a SQLite database:
// one row per run and one row per reviewed patient.
package ledger

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Ledger is an open run history.
type Ledger struct {
	db *sql.DB
}

// RunStart is written when a run begins.
type RunStart struct {
	ID        string
	Seed      uint64
	StartedAt time.Time
}

// RunEnd is written when a run reaches an ending.
type RunEnd struct {
	ID      string
	Verdict string
	Average float64
	EndedAt time.Time
}

// ReviewRecord is one reviewed patient.
type ReviewRecord struct {
	RunID       string
	Day         int
	Sequence    int
	Patient     string
	Condition   string
	Personality string
	Medication  string
	Admitted    bool
	TimedOut    bool
	Stars       int
	Reason      string
	ReviewedAt  time.Time
}

// Run is a row of the history. EndedAt is zero and Verdict empty for a
// run that was abandoned or is still going.
type Run struct {
	ID        string
	Seed      uint64
	StartedAt time.Time
	EndedAt   time.Time
	Verdict   string
	Average   float64
	Patients  int
}

// Finished reports whether the run reached an ending.
func (r Run) Finished() bool {
	return r.Verdict != ""
}

// NewRunID returns a fresh run identifier.
func NewRunID() string {
	return uuid.NewString()
}

// Open opens or creates the database at path and makes sure the schema exists.
func Open(ctx context.Context, path string) (*Ledger, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create ledger directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open ledger: %w", err)
	}
	// One connection keeps writes serialized.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping ledger: %w", err)
	}
	if err := createSchemas(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schemas: %w", err)
	}
	return &Ledger{db: db}, nil
}

func createSchemas(ctx context.Context, db *sql.DB) error {
	schemas := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			run_id TEXT PRIMARY KEY,
			seed INTEGER NOT NULL,
			started_at DATETIME NOT NULL,
			ended_at DATETIME,
			verdict TEXT NOT NULL DEFAULT '',
			average REAL NOT NULL DEFAULT 0
		);`,
		`CREATE TABLE IF NOT EXISTS reviews (
			run_id TEXT NOT NULL,
			day INTEGER NOT NULL,
			sequence INTEGER NOT NULL,
			patient TEXT NOT NULL,
			condition TEXT NOT NULL,
			personality TEXT NOT NULL,
			medication TEXT NOT NULL,
			admitted BOOLEAN NOT NULL DEFAULT 0,
			timed_out BOOLEAN NOT NULL DEFAULT 0,
			stars INTEGER NOT NULL,
			reason TEXT NOT NULL DEFAULT '',
			reviewed_at DATETIME NOT NULL,
			PRIMARY KEY (run_id, day, sequence),
			FOREIGN KEY (run_id) REFERENCES runs(run_id)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_runs_started_at ON runs(started_at);`,
	}

	for _, query := range schemas {
		if _, err := db.ExecContext(ctx, query); err != nil {
			return err
		}
	}
	return nil
}

// Close closes the database.
func (l *Ledger) Close() error {
	return l.db.Close()
}

// StartRun records a new run.
func (l *Ledger) StartRun(ctx context.Context, r RunStart) error {
	query := `INSERT INTO runs (run_id, seed, started_at) VALUES (?, ?, ?)`
	if _, err := l.db.ExecContext(ctx, query, r.ID, int64(r.Seed), r.StartedAt.UTC()); err != nil {
		return fmt.Errorf("failed to start run %s: %w", r.ID, err)
	}
	return nil
}

// RecordReview appends a reviewed patient to its run. Recording the same
// day and sequence twice replaces the earlier row.
func (l *Ledger) RecordReview(ctx context.Context, r ReviewRecord) error {
	query := `
		INSERT INTO reviews (run_id, day, sequence, patient, condition, personality, medication, admitted, timed_out, stars, reason, reviewed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(run_id, day, sequence) DO UPDATE SET
			patient=excluded.patient,
			condition=excluded.condition,
			personality=excluded.personality,
			medication=excluded.medication,
			admitted=excluded.admitted,
			timed_out=excluded.timed_out,
			stars=excluded.stars,
			reason=excluded.reason,
			reviewed_at=excluded.reviewed_at
	`
	_, err := l.db.ExecContext(ctx, query,
		r.RunID, r.Day, r.Sequence, r.Patient, r.Condition, r.Personality,
		r.Medication, r.Admitted, r.TimedOut, r.Stars, r.Reason, r.ReviewedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to record review: %w", err)
	}
	return nil
}

// EndRun stores how a run ended.
func (l *Ledger) EndRun(ctx context.Context, r RunEnd) error {
	query := `UPDATE runs SET ended_at = ?, verdict = ?, average = ? WHERE run_id = ?`
	res, err := l.db.ExecContext(ctx, query, r.EndedAt.UTC(), r.Verdict, r.Average, r.ID)
	if err != nil {
		return fmt.Errorf("failed to end run %s: %w", r.ID, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("failed to end run %s: no such run", r.ID)
	}
	return nil
}

// RecentRuns returns up to limit runs, newest first.
func (l *Ledger) RecentRuns(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 10
	}
	query := `
		SELECT r.run_id, r.seed, r.started_at, r.ended_at, r.verdict, r.average,
			(SELECT COUNT(*) FROM reviews v WHERE v.run_id = r.run_id)
		FROM runs r
		ORDER BY r.started_at DESC, r.rowid DESC
		LIMIT ?
	`
	rows, err := l.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var (
			r     Run
			seed  int64
			ended sql.NullTime
		)
		if err := rows.Scan(&r.ID, &seed, &r.StartedAt, &ended, &r.Verdict, &r.Average, &r.Patients); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		r.Seed = uint64(seed)
		if ended.Valid {
			r.EndedAt = ended.Time
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// Reviews returns the reviews of a run in play order.
func (l *Ledger) Reviews(ctx context.Context, runID string) ([]ReviewRecord, error) {
	query := `
		SELECT run_id, day, sequence, patient, condition, personality, medication, admitted, timed_out, stars, reason, reviewed_at
		FROM reviews WHERE run_id = ? ORDER BY day ASC, sequence ASC
	`
	rows, err := l.db.QueryContext(ctx, query, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	defer rows.Close()

	var reviews []ReviewRecord
	for rows.Next() {
		var r ReviewRecord
		err := rows.Scan(
			&r.RunID, &r.Day, &r.Sequence, &r.Patient, &r.Condition, &r.Personality,
			&r.Medication, &r.Admitted, &r.TimedOut, &r.Stars, &r.Reason, &r.ReviewedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan review: %w", err)
		}
		reviews = append(reviews, r)
	}
	return reviews, rows.Err()
}
