package driven

import (
	"context"

	"github.com/shubhraaj/sitecms/internal/core/domain"
)

// SchedulerStore keeps the background pull schedule and its recent runs
// across restarts.
type SchedulerStore interface {
	// LoadJob returns the stored job, or nil and no error if it was never saved.
	LoadJob(ctx context.Context, id string) (*domain.PullJob, error)

	// SaveJob creates or replaces the job with the same ID.
	SaveJob(ctx context.Context, job *domain.PullJob) error

	// AppendRun records a finished run and keeps only the newest keep runs
	// of its job.
	AppendRun(ctx context.Context, run domain.PullRun, keep int) error

	// Runs returns up to limit runs of a job, newest first.
	// A limit of zero or less returns every stored run.
	Runs(ctx context.Context, jobID string, limit int) ([]domain.PullRun, error)
}
