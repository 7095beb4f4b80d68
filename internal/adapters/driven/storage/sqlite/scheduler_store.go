package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/shubhraaj/sitecms/internal/core/domain"
	"github.com/shubhraaj/sitecms/internal/core/ports/driven"
)

type schedulerStore struct {
	store *Store
}

var _ driven.SchedulerStore = (*schedulerStore)(nil)

// timeFormat is fixed-width so stored timestamps sort lexically.
const timeFormat = "2006-01-02T15:04:05.000000000Z07:00"

func (s *schedulerStore) LoadJob(ctx context.Context, id string) (*domain.PullJob, error) {
	var (
		job                     = domain.PullJob{ID: id}
		every                   int64
		next, last, ok, lastErr sql.NullString
	)
	err := s.store.db.QueryRowContext(ctx, `
		SELECT every_seconds, next_run, last_run, last_ok, last_error
		FROM pull_jobs WHERE id = ?
	`, id).Scan(&every, &next, &last, &ok, &lastErr)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading pull job: %w", err)
	}

	job.Every = time.Duration(every) * time.Second
	job.NextRun = parseTime(next.String)
	job.LastRun = parseTime(last.String)
	job.LastOK = parseTime(ok.String)
	job.LastError = lastErr.String
	return &job, nil
}

func (s *schedulerStore) SaveJob(ctx context.Context, job *domain.PullJob) error {
	if job == nil {
		return domain.ErrInvalidInput
	}
	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO pull_jobs (id, every_seconds, next_run, last_run, last_ok, last_error)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			every_seconds = excluded.every_seconds,
			next_run = excluded.next_run,
			last_run = excluded.last_run,
			last_ok = excluded.last_ok,
			last_error = excluded.last_error
	`, job.ID, int64(job.Every/time.Second),
		nullTime(job.NextRun), nullTime(job.LastRun), nullTime(job.LastOK),
		nullString(job.LastError))
	if err != nil {
		return fmt.Errorf("saving pull job: %w", err)
	}
	return nil
}

// AppendRun inserts run and drops all but the newest keep runs of its job.
func (s *schedulerStore) AppendRun(ctx context.Context, run domain.PullRun, keep int) error {
	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO pull_runs (job_id, started, finished, err, projects, testimonials)
		VALUES (?, ?, ?, ?, ?, ?)
	`, run.JobID,
		run.Started.UTC().Format(timeFormat),
		run.Finished.UTC().Format(timeFormat),
		nullString(run.Err), run.Projects, run.Testimonials); err != nil {
		return fmt.Errorf("recording pull run: %w", err)
	}

	if keep > 0 {
		if _, err := tx.ExecContext(ctx, `
			DELETE FROM pull_runs
			WHERE job_id = ? AND id NOT IN (
				SELECT id FROM pull_runs WHERE job_id = ? ORDER BY id DESC LIMIT ?
			)
		`, run.JobID, run.JobID, keep); err != nil {
			return fmt.Errorf("trimming pull runs: %w", err)
		}
	}
	return tx.Commit()
}

func (s *schedulerStore) Runs(ctx context.Context, jobID string, limit int) ([]domain.PullRun, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT started, finished, err, projects, testimonials
		FROM pull_runs WHERE job_id = ?
		ORDER BY id DESC LIMIT ?
	`, jobID, limit)
	if err != nil {
		return nil, fmt.Errorf("querying pull runs: %w", err)
	}
	defer rows.Close()

	var runs []domain.PullRun
	for rows.Next() {
		run := domain.PullRun{JobID: jobID}
		var started, finished string
		var msg sql.NullString
		if err := rows.Scan(&started, &finished, &msg, &run.Projects, &run.Testimonials); err != nil {
			return nil, fmt.Errorf("scanning pull run: %w", err)
		}
		run.Started = parseTime(started)
		run.Finished = parseTime(finished)
		run.Err = msg.String
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// nullTime formats t in UTC, or nil for the zero time.
func nullTime(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t.UTC().Format(timeFormat)
}

// parseTime returns the zero time for empty or invalid values.
func parseTime(s string) time.Time {
	t, err := time.Parse(timeFormat, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
