// Package store keeps the local history of completed submissions so a
// citizen can look up past reports and letters by tracking id and follow
// their status over time.
package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"janconnect/internal/logging"
	"janconnect/internal/report"
)

// Status values a submission moves through after intake.
const (
	StatusSubmitted    = "submitted"
	StatusAcknowledged = "acknowledged"
	StatusInProgress   = "in_progress"
	StatusResolved     = "resolved"
	StatusClosed       = "closed"
)

var validStatuses = map[string]bool{
	StatusSubmitted:    true,
	StatusAcknowledged: true,
	StatusInProgress:   true,
	StatusResolved:     true,
	StatusClosed:       true,
}

// ErrNotFound is returned when no submission matches a tracking id.
var ErrNotFound = errors.New("submission not found")

// Submission is one completed wizard session as stored in history.
type Submission struct {
	ID          string         `json:"id"`
	Flow        string         `json:"flow"` // "report" or "letter"
	TrackingID  string         `json:"trackingId"`
	Status      string         `json:"status"`
	Record      *report.Record `json:"record"`
	SubmittedAt time.Time      `json:"submittedAt"`
}

// StatusEvent is one entry in a submission's status timeline.
type StatusEvent struct {
	Status string    `json:"status"`
	Note   string    `json:"note,omitempty"`
	At     time.Time `json:"at"`
}

// ListFilter narrows List results. Zero values mean "any".
type ListFilter struct {
	Flow     string
	Status   string
	Category string
	Limit    int
}

// Store manages the submission history database.
type Store struct {
	db     *sql.DB
	dbPath string
	mu     sync.RWMutex
}

// NewStore creates or opens the history store under stateDir.
func NewStore(stateDir string) (*Store, error) {
	dbPath := filepath.Join(stateDir, "submissions.db")

	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	s := &Store{db: db, dbPath: dbPath}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	logging.Store("history store open at %s", dbPath)
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.dbPath
}

func (s *Store) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS submissions (
		id TEXT PRIMARY KEY,
		flow TEXT NOT NULL,
		tracking_id TEXT NOT NULL UNIQUE,
		status TEXT NOT NULL,
		category TEXT,
		record_json TEXT NOT NULL,
		submitted_at DATETIME NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_submissions_flow ON submissions(flow);
	CREATE INDEX IF NOT EXISTS idx_submissions_status ON submissions(status);
	CREATE INDEX IF NOT EXISTS idx_submissions_submitted ON submissions(submitted_at);

	CREATE TABLE IF NOT EXISTS status_events (
		id TEXT PRIMARY KEY,
		tracking_id TEXT NOT NULL,
		status TEXT NOT NULL,
		note TEXT,
		at DATETIME NOT NULL,
		FOREIGN KEY(tracking_id) REFERENCES submissions(tracking_id)
	);
	CREATE INDEX IF NOT EXISTS idx_events_tracking ON status_events(tracking_id);
	`
	_, err := s.db.Exec(schema)
	return err
}

// SaveSubmission records a freshly submitted record. The record must
// carry its tracking id and submission timestamp already.
func (s *Store) SaveSubmission(flow string, rec *report.Record) (*Submission, error) {
	if !rec.Submitted() {
		return nil, errors.New("record has not been submitted")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	recordJSON, err := json.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal record: %w", err)
	}

	sub := &Submission{
		ID:          uuid.NewString(),
		Flow:        flow,
		TrackingID:  rec.TrackingID,
		Status:      StatusSubmitted,
		Record:      rec,
		SubmittedAt: *rec.SubmittedAt,
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`INSERT INTO submissions (id, flow, tracking_id, status, category, record_json, submitted_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		sub.ID, sub.Flow, sub.TrackingID, sub.Status, rec.Category, string(recordJSON), sub.SubmittedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert submission: %w", err)
	}

	_, err = tx.Exec(
		`INSERT INTO status_events (id, tracking_id, status, note, at) VALUES (?, ?, ?, ?, ?)`,
		uuid.NewString(), sub.TrackingID, StatusSubmitted, "Submission received", sub.SubmittedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert status event: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	logging.Store("saved submission %s (%s)", sub.TrackingID, flow)
	return sub, nil
}

// GetByTrackingID looks up one submission.
func (s *Store) GetByTrackingID(trackingID string) (*Submission, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRow(
		`SELECT id, flow, tracking_id, status, record_json, submitted_at
		 FROM submissions WHERE tracking_id = ?`, trackingID)
	return scanSubmission(row)
}

// List returns submissions matching the filter, newest first.
func (s *Store) List(filter ListFilter) ([]*Submission, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `SELECT id, flow, tracking_id, status, record_json, submitted_at FROM submissions WHERE 1=1`
	var args []any
	if filter.Flow != "" {
		query += ` AND flow = ?`
		args = append(args, filter.Flow)
	}
	if filter.Status != "" {
		query += ` AND status = ?`
		args = append(args, filter.Status)
	}
	if filter.Category != "" {
		query += ` AND category = ?`
		args = append(args, filter.Category)
	}
	query += ` ORDER BY submitted_at DESC`
	if filter.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, filter.Limit)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list submissions: %w", err)
	}
	defer rows.Close()

	var subs []*Submission
	for rows.Next() {
		sub, err := scanSubmission(rows)
		if err != nil {
			return nil, err
		}
		subs = append(subs, sub)
	}
	return subs, rows.Err()
}

// UpdateStatus advances a submission's status and appends a timeline
// event.
func (s *Store) UpdateStatus(trackingID, status, note string) error {
	if !validStatuses[status] {
		return fmt.Errorf("unknown status %q", status)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.Exec(`UPDATE submissions SET status = ? WHERE tracking_id = ?`, status, trackingID)
	if err != nil {
		return fmt.Errorf("failed to update status: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}

	_, err = tx.Exec(
		`INSERT INTO status_events (id, tracking_id, status, note, at) VALUES (?, ?, ?, ?, ?)`,
		uuid.NewString(), trackingID, status, note, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert status event: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	logging.Store("submission %s -> %s", trackingID, status)
	return nil
}

// Timeline returns a submission's status events in chronological order.
func (s *Store) Timeline(trackingID string) ([]StatusEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(
		`SELECT status, note, at FROM status_events WHERE tracking_id = ? ORDER BY at ASC`, trackingID)
	if err != nil {
		return nil, fmt.Errorf("failed to load timeline: %w", err)
	}
	defer rows.Close()

	var events []StatusEvent
	for rows.Next() {
		var ev StatusEvent
		var note sql.NullString
		if err := rows.Scan(&ev.Status, &note, &ev.At); err != nil {
			return nil, err
		}
		ev.Note = note.String
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(events) == 0 {
		return nil, ErrNotFound
	}
	return events, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSubmission(row rowScanner) (*Submission, error) {
	var sub Submission
	var recordJSON string
	err := row.Scan(&sub.ID, &sub.Flow, &sub.TrackingID, &sub.Status, &recordJSON, &sub.SubmittedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(recordJSON), &sub.Record); err != nil {
		return nil, fmt.Errorf("corrupt record for %s: %w", sub.TrackingID, err)
	}
	return &sub, nil
}
