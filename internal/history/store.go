package history

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"reelcast/internal/logging"
	"reelcast/internal/workflow"
)

// Store persists run history in a SQLite database. It implements
// workflow.HistoryRecorder.
type Store struct {
	db     *sql.DB
	logger *slog.Logger
}

// Open creates or opens the history database at path.
func Open(path string, logger *slog.Logger) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create history directory: %w", err)
	}

	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open history database: %w", err)
	}
	// SQLite serializes writers; a single connection avoids lock contention.
	db.SetMaxOpenConns(1)

	store := &Store{db: db, logger: logging.NewComponentLogger(logger, "history")}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return store, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id          TEXT PRIMARY KEY,
			preset      TEXT NOT NULL,
			sources     TEXT NOT NULL,
			status      TEXT NOT NULL,
			error       TEXT NOT NULL DEFAULT '',
			started_at  TEXT NOT NULL,
			finished_at TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE TABLE IF NOT EXISTS run_steps (
			run_id     TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
			step       TEXT NOT NULL,
			success    INTEGER NOT NULL,
			critical   INTEGER NOT NULL,
			elapsed_ms INTEGER NOT NULL,
			error      TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE INDEX IF NOT EXISTS idx_run_steps_run ON run_steps(run_id)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_started ON runs(started_at DESC)`,
	}
	for _, stmt := range schema {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("apply history schema: %w", err)
		}
	}
	return nil
}

// RecordRunStart inserts the run row in its initial running state.
func (s *Store) RecordRunStart(ctx context.Context, run *workflow.RunContext, preset string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (id, preset, sources, status, started_at) VALUES (?, ?, ?, ?, ?)`,
		run.RunID, preset, strings.Join(run.Sources, " "),
		workflow.StatusRunning.String(), run.StartedAt.UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("record run start: %w", err)
	}
	return nil
}

// RecordStep appends one step outcome for a run.
func (s *Store) RecordStep(ctx context.Context, runID string, result workflow.StepResult) error {
	errText := ""
	if result.Err != nil {
		errText = result.Err.Error()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO run_steps (run_id, step, success, critical, elapsed_ms, error) VALUES (?, ?, ?, ?, ?, ?)`,
		runID, result.StepID, boolToInt(result.Success), boolToInt(result.Critical),
		result.Elapsed.Milliseconds(), errText)
	if err != nil {
		return fmt.Errorf("record step: %w", err)
	}
	return nil
}

// FinishRun stamps the run's terminal status and finish time.
func (s *Store) FinishRun(ctx context.Context, runID string, status workflow.Status, runErr error) error {
	errText := ""
	if runErr != nil {
		errText = runErr.Error()
	}
	_, err := s.db.ExecContext(ctx,
		`UPDATE runs SET status = ?, error = ?, finished_at = ? WHERE id = ?`,
		status.String(), errText, time.Now().UTC().Format(time.RFC3339), runID)
	if err != nil {
		return fmt.Errorf("finish run: %w", err)
	}
	return nil
}

// RunRecord is one row of run history.
type RunRecord struct {
	RunID      string
	Preset     string
	Sources    string
	Status     string
	Error      string
	StartedAt  time.Time
	FinishedAt time.Time
}

// StepRecord is one recorded step outcome.
type StepRecord struct {
	StepID  string
	Success bool
	Elapsed time.Duration
	Error   string
}

// RecentRuns returns up to limit runs, newest first.
func (s *Store) RecentRuns(ctx context.Context, limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, preset, sources, status, error, started_at, finished_at
		 FROM runs ORDER BY started_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var records []RunRecord
	for rows.Next() {
		var rec RunRecord
		var started, finished string
		if err := rows.Scan(&rec.RunID, &rec.Preset, &rec.Sources, &rec.Status, &rec.Error, &started, &finished); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		rec.StartedAt, _ = time.Parse(time.RFC3339, started)
		if finished != "" {
			rec.FinishedAt, _ = time.Parse(time.RFC3339, finished)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// RunSteps returns the recorded step outcomes for a run in execution order.
func (s *Store) RunSteps(ctx context.Context, runID string) ([]StepRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT step, success, elapsed_ms, error FROM run_steps WHERE run_id = ? ORDER BY rowid`, runID)
	if err != nil {
		return nil, fmt.Errorf("query steps: %w", err)
	}
	defer rows.Close()

	var records []StepRecord
	for rows.Next() {
		var rec StepRecord
		var success int
		var elapsedMS int64
		if err := rows.Scan(&rec.StepID, &success, &elapsedMS, &rec.Error); err != nil {
			return nil, fmt.Errorf("scan step: %w", err)
		}
		rec.Success = success != 0
		rec.Elapsed = time.Duration(elapsedMS) * time.Millisecond
		records = append(records, rec)
	}
	return records, rows.Err()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
