// Package history provides SQLite-backed persistence of run outcomes. One
// row per run; the stream itself is never persisted. Recording is best
// effort and sits behind the orchestrator's Recorder interface.
package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/tengxufei/bedrockbio/internal/orchestrator"
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id          TEXT PRIMARY KEY,
	task        TEXT NOT NULL,
	branch      TEXT NOT NULL,
	topic       TEXT NOT NULL,
	status      TEXT NOT NULL,
	error       TEXT NOT NULL DEFAULT '',
	report_path TEXT NOT NULL DEFAULT '',
	started_at  TEXT NOT NULL,
	finished_at TEXT NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS idx_runs_started_at ON runs(started_at);
`

// Store wraps an SQLite database holding run history.
type Store struct {
	conn *sql.DB
	mu   sync.Mutex
}

// Open opens (and if needed creates) the history database at path. Parent
// directories are created; WAL mode is enabled for concurrent readers.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create history directory: %w", err)
	}
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open history database: %w", err)
	}
	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("enable WAL mode: %w", err)
	}
	if _, err := conn.Exec(schema); err != nil {
		conn.Close()
		return nil, fmt.Errorf("create history schema: %w", err)
	}
	return &Store{conn: conn}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conn.Close()
}

// RecordStart inserts the run row when the producer is launched.
func (s *Store) RecordStart(rec orchestrator.RunRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.conn.Exec(`
		INSERT INTO runs (id, task, branch, topic, status, started_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, rec.ID, rec.Task, string(rec.Branch), rec.Topic, rec.Status, formatTime(rec.StartedAt))
	if err != nil {
		return fmt.Errorf("record run start: %w", err)
	}
	return nil
}

// RecordFinish updates the row with the run's outcome.
func (s *Store) RecordFinish(rec orchestrator.RunRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.conn.Exec(`
		UPDATE runs SET status = ?, error = ?, report_path = ?, finished_at = ?
		WHERE id = ?
	`, rec.Status, rec.Error, rec.ReportPath, formatTime(rec.FinishedAt), rec.ID)
	if err != nil {
		return fmt.Errorf("record run finish: %w", err)
	}
	return nil
}

// Recent returns the most recently started runs, newest first.
func (s *Store) Recent(n int) ([]orchestrator.RunRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rows, err := s.conn.Query(`
		SELECT id, task, branch, topic, status, error, report_path, started_at, finished_at
		FROM runs ORDER BY started_at DESC, id LIMIT ?
	`, n)
	if err != nil {
		return nil, fmt.Errorf("query recent runs: %w", err)
	}
	defer rows.Close()

	var recs []orchestrator.RunRecord
	for rows.Next() {
		var rec orchestrator.RunRecord
		var branch, started, finished string
		if err := rows.Scan(&rec.ID, &rec.Task, &branch, &rec.Topic, &rec.Status, &rec.Error, &rec.ReportPath, &started, &finished); err != nil {
			return nil, fmt.Errorf("scan run row: %w", err)
		}
		rec.Branch = orchestrator.Branch(branch)
		rec.StartedAt = parseTime(started)
		rec.FinishedAt = parseTime(finished)
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
