package paymenter

import (
	"database/sql"
	"fmt"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// History persists pipeline runs and their step results so the operator can
// review what the tool did and when.
type History struct {
	db *sql.DB
}

func OpenHistory(dbPath string) (*History, error) {
	if err := ensureDir(filepath.Dir(dbPath), 0o750); err != nil {
		return nil, fmt.Errorf("create history dir: %w", err)
	}
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open history db: %w", err)
	}
	h := &History{db: db}
	if err := h.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("init history schema: %w", err)
	}
	return h, nil
}

func (h *History) initSchema() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			operation TEXT NOT NULL,
			outcome TEXT NOT NULL,
			failed_step TEXT NOT NULL DEFAULT '',
			started_at DATETIME NOT NULL,
			finished_at DATETIME
		)`,
		`CREATE TABLE IF NOT EXISTS step_executions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id INTEGER NOT NULL,
			name TEXT NOT NULL,
			ok INTEGER NOT NULL,
			exit_code INTEGER NOT NULL DEFAULT 0,
			message TEXT NOT NULL DEFAULT '',
			started_at DATETIME NOT NULL,
			FOREIGN KEY(run_id) REFERENCES runs(id) ON DELETE CASCADE
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_started_at ON runs(started_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_step_executions_run_id ON step_executions(run_id)`,
	}
	for _, q := range queries {
		if _, err := h.db.Exec(q); err != nil {
			return err
		}
	}
	return nil
}

func (h *History) Close() error {
	return h.db.Close()
}

func (h *History) CreateRun(kind Operation, startedAt time.Time) (int64, error) {
	res, err := h.db.Exec(
		`INSERT INTO runs (operation, outcome, started_at) VALUES (?, ?, ?)`,
		string(kind), string(OutcomeRunning), startedAt,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (h *History) RecordStep(runID int64, name string, result StepResult, startedAt time.Time) error {
	ok := 0
	if result.OK {
		ok = 1
	}
	_, err := h.db.Exec(
		`INSERT INTO step_executions (run_id, name, ok, exit_code, message, started_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		runID, name, ok, result.ExitCode, result.Message, startedAt,
	)
	return err
}

func (h *History) FinishRun(runID int64, outcome Outcome, failedStep string, finishedAt time.Time) error {
	_, err := h.db.Exec(
		`UPDATE runs SET outcome = ?, failed_step = ?, finished_at = ? WHERE id = ?`,
		string(outcome), failedStep, finishedAt, runID,
	)
	return err
}

// RunSummary is one row of the history listing.
type RunSummary struct {
	ID         int64
	Operation  Operation
	Outcome    Outcome
	FailedStep string
	StartedAt  time.Time
	FinishedAt *time.Time
}

// RecentRuns returns the latest runs, newest first.
func (h *History) RecentRuns(limit int) ([]RunSummary, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := h.db.Query(
		`SELECT id, operation, outcome, failed_step, started_at, finished_at
		 FROM runs ORDER BY started_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []RunSummary
	for rows.Next() {
		var s RunSummary
		var op, outcome string
		if err := rows.Scan(&s.ID, &op, &outcome, &s.FailedStep, &s.StartedAt, &s.FinishedAt); err != nil {
			return nil, err
		}
		s.Operation = Operation(op)
		s.Outcome = Outcome(outcome)
		out = append(out, s)
	}
	return out, rows.Err()
}
