package spool

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// Job statuses.
const (
	StatusPending = "pending"
	StatusPrinted = "printed"
	StatusFailed  = "failed"
)

// Statuses lists all job statuses in lifecycle order.
var Statuses = []string{StatusPending, StatusPrinted, StatusFailed}

// ErrNotFound is returned when a job ID does not exist.
var ErrNotFound = errors.New("spool: job not found")

// Job is one spooled print job.
type Job struct {
	ID        int64
	UUID      string
	Profile   string
	Text      string
	Status    string
	Error     string
	CreatedAt time.Time
	UpdatedAt time.Time
	PrintedAt time.Time // zero until the job prints
}

// Store manages spool persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

const schema = `
CREATE TABLE IF NOT EXISTS spool_jobs (
    id         INTEGER PRIMARY KEY AUTOINCREMENT,
    uuid       TEXT NOT NULL UNIQUE,
    profile    TEXT NOT NULL,
    body       TEXT NOT NULL,
    status     TEXT NOT NULL,
    error      TEXT NOT NULL DEFAULT '',
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL,
    printed_at TEXT NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS idx_spool_jobs_status ON spool_jobs(status);
`

// Open initializes or connects to the spool database at path and
// applies the schema.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create spool directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open spool db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply spool schema: %w", err)
	}

	return &Store{db: db, path: path}, nil
}

// Path returns the database file path.
func (s *Store) Path() string { return s.path }

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Add enqueues text for later printing under the given profile.
func (s *Store) Add(ctx context.Context, profileName, text string) (*Job, error) {
	now := time.Now().UTC().Format(time.RFC3339Nano)
	res, err := s.db.ExecContext(
		ctx,
		`INSERT INTO spool_jobs (uuid, profile, body, status, created_at, updated_at)
         VALUES (?, ?, ?, ?, ?, ?)`,
		uuid.NewString(),
		profileName,
		text,
		StatusPending,
		now,
		now,
	)
	if err != nil {
		return nil, fmt.Errorf("insert job: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetByID(ctx, id)
}

// GetByID fetches a single job.
func (s *Store) GetByID(ctx context.Context, id int64) (*Job, error) {
	row := s.db.QueryRowContext(ctx, selectColumns+` WHERE id = ?`, id)
	job, err := scanJob(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: id %d", ErrNotFound, id)
	}
	return job, err
}

// List returns jobs filtered by status, oldest first. With no statuses
// every job is returned.
func (s *Store) List(ctx context.Context, statuses ...string) ([]*Job, error) {
	query := selectColumns
	args := make([]any, 0, len(statuses))
	if len(statuses) > 0 {
		placeholders := make([]string, len(statuses))
		for i, status := range statuses {
			placeholders[i] = "?"
			args = append(args, status)
		}
		query += ` WHERE status IN (` + strings.Join(placeholders, ",") + `)`
	}
	query += ` ORDER BY id ASC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}
	defer rows.Close()

	var jobs []*Job
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, job)
	}
	return jobs, rows.Err()
}

// NextPending returns the oldest pending job, or nil when the spool is
// drained.
func (s *Store) NextPending(ctx context.Context) (*Job, error) {
	row := s.db.QueryRowContext(ctx, selectColumns+` WHERE status = ? ORDER BY id ASC LIMIT 1`, StatusPending)
	job, err := scanJob(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return job, err
}

// MarkPrinted records a successful print.
func (s *Store) MarkPrinted(ctx context.Context, id int64) error {
	now := time.Now().UTC().Format(time.RFC3339Nano)
	return s.update(ctx, id,
		`UPDATE spool_jobs SET status = ?, error = '', updated_at = ?, printed_at = ? WHERE id = ?`,
		StatusPrinted, now, now, id)
}

// MarkFailed records a failed print attempt with its error message.
// Failed jobs stay in the spool for inspection and retry.
func (s *Store) MarkFailed(ctx context.Context, id int64, message string) error {
	now := time.Now().UTC().Format(time.RFC3339Nano)
	return s.update(ctx, id,
		`UPDATE spool_jobs SET status = ?, error = ?, updated_at = ? WHERE id = ?`,
		StatusFailed, message, now, id)
}

// Retry moves a failed job back to pending.
func (s *Store) Retry(ctx context.Context, id int64) error {
	now := time.Now().UTC().Format(time.RFC3339Nano)
	return s.update(ctx, id,
		`UPDATE spool_jobs SET status = ?, error = '', updated_at = ? WHERE id = ? AND status = ?`,
		StatusPending, now, id, StatusFailed)
}

// Remove deletes a job regardless of status.
func (s *Store) Remove(ctx context.Context, id int64) error {
	return s.update(ctx, id, `DELETE FROM spool_jobs WHERE id = ?`, id)
}

// Clear deletes jobs by status and reports how many rows went away.
// With no statuses the whole spool is emptied.
func (s *Store) Clear(ctx context.Context, statuses ...string) (int64, error) {
	query := `DELETE FROM spool_jobs`
	args := make([]any, 0, len(statuses))
	if len(statuses) > 0 {
		placeholders := make([]string, len(statuses))
		for i, status := range statuses {
			placeholders[i] = "?"
			args = append(args, status)
		}
		query += ` WHERE status IN (` + strings.Join(placeholders, ",") + `)`
	}
	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("clear jobs: %w", err)
	}
	return res.RowsAffected()
}

// Stats returns the number of jobs per status.
func (s *Store) Stats(ctx context.Context) (map[string]int, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT status, COUNT(*) FROM spool_jobs GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("spool stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]int, len(Statuses))
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		stats[status] = count
	}
	return stats, rows.Err()
}

func (s *Store) update(ctx context.Context, id int64, query string, args ...any) error {
	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update job %d: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("%w: id %d", ErrNotFound, id)
	}
	return nil
}

const selectColumns = `SELECT id, uuid, profile, body, status, error, created_at, updated_at, printed_at FROM spool_jobs`

type scanner interface {
	Scan(dest ...any) error
}

func scanJob(row scanner) (*Job, error) {
	var job Job
	var createdAt, updatedAt, printedAt string
	if err := row.Scan(&job.ID, &job.UUID, &job.Profile, &job.Text, &job.Status, &job.Error,
		&createdAt, &updatedAt, &printedAt); err != nil {
		return nil, err
	}
	var err error
	if job.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if job.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}
	if printedAt != "" {
		if job.PrintedAt, err = parseTime(printedAt); err != nil {
			return nil, err
		}
	}
	return &job, nil
}

func parseTime(value string) (time.Time, error) {
	ts, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse timestamp %q: %w", value, err)
	}
	return ts, nil
}
