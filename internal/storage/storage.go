package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/yourusername/linkedin-connect/internal/connection"
	_ "modernc.org/sqlite"
)

// Store keeps the history of runs and invitation outcomes
type Store struct {
	db *sql.DB
}

// Run is one execution of the page loop
type Run struct {
	ID           int64
	Keywords     string
	StartedAt    time.Time
	FinishedAt   *time.Time
	PagesVisited int
	StopReason   string
}

// Invitation is one recorded connection attempt
type Invitation struct {
	ID        int64
	RunID     int64
	Page      int
	Name      string
	Status    string
	Reason    string
	Note      string
	CreatedAt time.Time
}

// Open opens (creating if needed) the database at path
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path+"?_pragma=busy_timeout(5000)&_time_format=sqlite")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if err := createTables(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return &Store{db: db}, nil
}

func createTables(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		keywords TEXT NOT NULL,
		started_at TIMESTAMP NOT NULL,
		finished_at TIMESTAMP,
		pages_visited INTEGER NOT NULL DEFAULT 0,
		stop_reason TEXT
	);

	CREATE TABLE IF NOT EXISTS invitations (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id INTEGER NOT NULL REFERENCES runs(id),
		page INTEGER NOT NULL,
		name TEXT,
		status TEXT NOT NULL CHECK (status IN ('sent','skipped','failed')),
		reason TEXT,
		note TEXT,
		created_at TIMESTAMP NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_invitations_run ON invitations(run_id);
	CREATE INDEX IF NOT EXISTS idx_invitations_status ON invitations(status);
	CREATE INDEX IF NOT EXISTS idx_invitations_created_at ON invitations(created_at);
	`

	_, err := db.Exec(schema)
	return err
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.db.Close()
}

// StartRun inserts a new run and returns its id
func (s *Store) StartRun(keywords string, startedAt time.Time) (int64, error) {
	res, err := s.db.Exec(`INSERT INTO runs (keywords, started_at) VALUES (?, ?)`, keywords, startedAt.UTC())
	if err != nil {
		return 0, fmt.Errorf("failed to start run: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read run id: %w", err)
	}
	return id, nil
}

// FinishRun stores how a run ended
func (s *Store) FinishRun(id int64, pagesVisited int, stopReason string, finishedAt time.Time) error {
	res, err := s.db.Exec(`
		UPDATE runs SET finished_at = ?, pages_visited = ?, stop_reason = ?
		WHERE id = ?
	`, finishedAt.UTC(), pagesVisited, stopReason, id)
	if err != nil {
		return fmt.Errorf("failed to finish run: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("no run found with id %d", id)
	}
	return nil
}

// GetRun loads a run by id
func (s *Store) GetRun(id int64) (Run, error) {
	var run Run
	var finishedAt sql.NullTime
	var stopReason sql.NullString

	err := s.db.QueryRow(`
		SELECT id, keywords, started_at, finished_at, pages_visited, stop_reason
		FROM runs WHERE id = ?
	`, id).Scan(&run.ID, &run.Keywords, &run.StartedAt, &finishedAt, &run.PagesVisited, &stopReason)
	if err != nil {
		return Run{}, fmt.Errorf("failed to load run %d: %w", id, err)
	}

	if finishedAt.Valid {
		run.FinishedAt = &finishedAt.Time
	}
	run.StopReason = stopReason.String
	return run, nil
}

// RecordInvitation stores one connection attempt
func (s *Store) RecordInvitation(inv Invitation) error {
	_, err := s.db.Exec(`
		INSERT INTO invitations (run_id, page, name, status, reason, note, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, inv.RunID, inv.Page, inv.Name, inv.Status, inv.Reason, inv.Note, inv.CreatedAt.UTC())
	if err != nil {
		return fmt.Errorf("failed to record invitation: %w", err)
	}
	return nil
}

// Invitations returns the attempts of a run in insertion order
func (s *Store) Invitations(runID int64) ([]Invitation, error) {
	rows, err := s.db.Query(`
		SELECT id, run_id, page, name, status, reason, note, created_at
		FROM invitations WHERE run_id = ? ORDER BY id
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query invitations: %w", err)
	}
	defer rows.Close()

	var out []Invitation
	for rows.Next() {
		var inv Invitation
		var name, reason, note sql.NullString
		if err := rows.Scan(&inv.ID, &inv.RunID, &inv.Page, &name, &inv.Status, &reason, &note, &inv.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan invitation: %w", err)
		}
		inv.Name, inv.Reason, inv.Note = name.String, reason.String, note.String
		out = append(out, inv)
	}
	return out, rows.Err()
}

// Recorder returns a recorder bound to one run
func (s *Store) Recorder(runID int64) *RunRecorder {
	return &RunRecorder{store: s, runID: runID, now: time.Now}
}

// RunRecorder persists outcomes for a single run
type RunRecorder struct {
	store *Store
	runID int64
	now   func() time.Time
}

// Record stores the outcome of one profile on the given results page
func (r *RunRecorder) Record(page int, o connection.Outcome) error {
	return r.store.RecordInvitation(Invitation{
		RunID:     r.runID,
		Page:      page,
		Name:      o.Name,
		Status:    o.Status.String(),
		Reason:    o.Reason,
		Note:      o.Note,
		CreatedAt: r.now(),
	})
}

// GetStats returns counters over the whole history
func (s *Store) GetStats() (map[string]int, error) {
	queries := []struct {
		key   string
		query string
	}{
		{"total_runs", "SELECT COUNT(*) FROM runs"},
		{"total_sent", "SELECT COUNT(*) FROM invitations WHERE status = 'sent'"},
		{"total_skipped", "SELECT COUNT(*) FROM invitations WHERE status = 'skipped'"},
		{"total_failed", "SELECT COUNT(*) FROM invitations WHERE status = 'failed'"},
		{"sent_today", "SELECT COUNT(*) FROM invitations WHERE status = 'sent' AND DATE(created_at) = DATE('now')"},
	}

	stats := make(map[string]int, len(queries))
	for _, q := range queries {
		var n int
		if err := s.db.QueryRow(q.query).Scan(&n); err != nil {
			return nil, fmt.Errorf("failed to compute %s: %w", q.key, err)
		}
		stats[q.key] = n
	}
	return stats, nil
}
