// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package history persists batch-run summaries and per-file outcomes in a
// local SQLite database. The store is observability only: a store failure is
// reported as a warning by callers and never fails a conversion run.
// Implements: prd003-history; docs/ARCHITECTURE § Run History.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/polar-engine/pkg/types"
)

const dbFile = "history.db"

// defaultMaxRuns bounds ListRuns when the caller passes no limit.
const defaultMaxRuns = 20

// Store manages the run-history SQLite database.
type Store struct {
	db         *sql.DB
	historyDir string
	maxRuns    int
}

// NewStore opens or creates the history database at historyDir/history.db,
// creating the schema if it does not exist.
func NewStore(cfg types.HistoryConfig) (*Store, error) {
	if err := os.MkdirAll(cfg.HistoryDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating history directory: %w", err)
	}

	dbPath := filepath.Join(cfg.HistoryDir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	maxRuns := cfg.MaxRuns
	if maxRuns <= 0 {
		maxRuns = defaultMaxRuns
	}

	s := &Store{db: db, historyDir: cfg.HistoryDir, maxRuns: maxRuns}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			started_at TEXT NOT NULL,
			input_dir TEXT NOT NULL,
			pattern TEXT NOT NULL,
			converted INTEGER NOT NULL,
			warned INTEGER NOT NULL,
			skipped INTEGER NOT NULL,
			failed INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS outcomes (
			run_id INTEGER NOT NULL REFERENCES runs(id),
			file TEXT NOT NULL,
			outcome TEXT NOT NULL,
			label TEXT,
			reynolds REAL,
			aoa_min REAL,
			aoa_max REAL,
			detail TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_outcomes_run_id ON outcomes(run_id)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// RunRecord is one stored batch run.
type RunRecord struct {
	ID        int64     `json:"id" yaml:"id"`
	StartedAt time.Time `json:"started_at" yaml:"started_at"`
	InputDir  string    `json:"input_dir" yaml:"input_dir"`
	Pattern   string    `json:"pattern" yaml:"pattern"`
	Converted int       `json:"converted" yaml:"converted"`
	Warned    int       `json:"warned" yaml:"warned"`
	Skipped   int       `json:"skipped" yaml:"skipped"`
	Failed    int       `json:"failed" yaml:"failed"`
}

// RecordRun stores one batch run and its per-file outcomes in a single
// transaction, returning the new run's ID.
func (s *Store) RecordRun(ctx context.Context, cfg types.ConvertConfig, started time.Time, summary types.BatchSummary) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx,
		`INSERT INTO runs (started_at, input_dir, pattern, converted, warned, skipped, failed)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		started.UTC().Format(time.RFC3339), cfg.InputDir, cfg.Pattern,
		summary.Converted, summary.Warned, summary.Skipped, summary.Failed,
	)
	if err != nil {
		return 0, fmt.Errorf("inserting run: %w", err)
	}
	runID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading run id: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO outcomes (run_id, file, outcome, label, reynolds, aoa_min, aoa_max, detail)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, r := range summary.Results {
		_, err := stmt.ExecContext(ctx,
			runID, r.File, string(r.Outcome), r.Label, r.Reynolds, r.AOAMin, r.AOAMax, r.Detail)
		if err != nil {
			return 0, fmt.Errorf("inserting outcome for %s: %w", r.File, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing run: %w", err)
	}
	return runID, nil
}

// ListRuns returns the most recent runs, newest first. A non-positive limit
// uses the store default.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = s.maxRuns
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, started_at, input_dir, pattern, converted, warned, skipped, failed
		 FROM runs ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var records []RunRecord
	for rows.Next() {
		var r RunRecord
		var started string
		if err := rows.Scan(&r.ID, &started, &r.InputDir, &r.Pattern,
			&r.Converted, &r.Warned, &r.Skipped, &r.Failed); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		if t, err := time.Parse(time.RFC3339, started); err == nil {
			r.StartedAt = t
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// RunOutcomes returns the per-file outcomes of one run in insertion order.
func (s *Store) RunOutcomes(ctx context.Context, runID int64) ([]types.FileResult, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT file, outcome, label, reynolds, aoa_min, aoa_max, detail
		 FROM outcomes WHERE run_id = ? ORDER BY rowid`, runID)
	if err != nil {
		return nil, fmt.Errorf("querying outcomes: %w", err)
	}
	defer rows.Close()

	var results []types.FileResult
	for rows.Next() {
		var r types.FileResult
		var outcome string
		if err := rows.Scan(&r.File, &outcome, &r.Label, &r.Reynolds,
			&r.AOAMin, &r.AOAMax, &r.Detail); err != nil {
			return nil, fmt.Errorf("scanning outcome: %w", err)
		}
		r.Outcome = types.OutcomeCode(outcome)
		results = append(results, r)
	}
	return results, rows.Err()
}
