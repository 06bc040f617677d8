// Package runstore persists run outcomes and metrics to a local SQLite
// database so operators can compare agent runs over time. Only the
// terminal status and the counters are stored, never conversation
// content.
package runstore

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// RunRecord is one completed (or failed) agent run.
type RunRecord struct {
	ID              string
	Task            string
	Status          string
	Message         string
	StartedAt       int64 // unix seconds
	DurationSeconds float64
	LLMCalls        int
	Cost            float64
	InputTokens     int
	OutputTokens    int
	ReasoningTokens int
	ToolCalls       int
	ToolErrors      int
	AvgToolLatency  float64
}

// Store provides database operations for run history.
type Store struct {
	db *sql.DB
}

// New opens (or creates) the run database at dbPath and initializes the
// schema.
func New(ctx context.Context, dbPath string) (*Store, error) {
	// WAL mode allows a reader while a run is being written.
	dsn := dbPath + "?_journal_mode=WAL&_busy_timeout=5000"

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite does not handle multiple writers well.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	s := &Store{db: db}
	if err := s.initSchema(ctx); err != nil {
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) initSchema(ctx context.Context) error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		run_id           TEXT PRIMARY KEY,
		task             TEXT NOT NULL,
		status           TEXT NOT NULL,
		message          TEXT,
		started_at       INTEGER NOT NULL,
		duration_seconds REAL NOT NULL,
		llm_calls        INTEGER NOT NULL,
		cost             REAL NOT NULL,
		input_tokens     INTEGER NOT NULL,
		output_tokens    INTEGER NOT NULL,
		reasoning_tokens INTEGER NOT NULL,
		tool_calls       INTEGER NOT NULL,
		tool_errors      INTEGER NOT NULL,
		avg_tool_latency REAL NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_runs_started_at ON runs(started_at);
	`
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return err
	}
	return nil
}

// Save persists a run record. A missing ID is filled in; the generated ID
// is returned.
func (s *Store) Save(ctx context.Context, rec RunRecord) (string, error) {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.StartedAt == 0 {
		rec.StartedAt = time.Now().Unix()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO runs (
			run_id, task, status, message, started_at, duration_seconds,
			llm_calls, cost, input_tokens, output_tokens, reasoning_tokens,
			tool_calls, tool_errors, avg_tool_latency
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.Task, rec.Status, rec.Message, rec.StartedAt, rec.DurationSeconds,
		rec.LLMCalls, rec.Cost, rec.InputTokens, rec.OutputTokens, rec.ReasoningTokens,
		rec.ToolCalls, rec.ToolErrors, rec.AvgToolLatency,
	)
	if err != nil {
		return "", fmt.Errorf("failed to insert run: %w", err)
	}
	return rec.ID, nil
}

// List returns the most recent runs, newest first.
func (s *Store) List(ctx context.Context, limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT run_id, task, status, message, started_at, duration_seconds,
		       llm_calls, cost, input_tokens, output_tokens, reasoning_tokens,
		       tool_calls, tool_errors, avg_tool_latency
		FROM runs ORDER BY started_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var records []RunRecord
	for rows.Next() {
		var rec RunRecord
		if err := rows.Scan(
			&rec.ID, &rec.Task, &rec.Status, &rec.Message, &rec.StartedAt, &rec.DurationSeconds,
			&rec.LLMCalls, &rec.Cost, &rec.InputTokens, &rec.OutputTokens, &rec.ReasoningTokens,
			&rec.ToolCalls, &rec.ToolErrors, &rec.AvgToolLatency,
		); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
