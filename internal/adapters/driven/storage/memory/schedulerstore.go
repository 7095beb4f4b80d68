package memory

import (
	"context"
	"sync"

	"github.com/shubhraaj/sitecms/internal/core/domain"
	"github.com/shubhraaj/sitecms/internal/core/ports/driven"
)

var _ driven.SchedulerStore = (*SchedulerStore)(nil)

// SchedulerStore keeps the pull schedule in memory. It backs the scheduler
// for the redis and memory cache drivers, so schedules restart each run.
type SchedulerStore struct {
	mu   sync.RWMutex
	jobs map[string]domain.PullJob
	runs map[string][]domain.PullRun // oldest first
}

// NewSchedulerStore creates an empty store.
func NewSchedulerStore() *SchedulerStore {
	return &SchedulerStore{
		jobs: make(map[string]domain.PullJob),
		runs: make(map[string][]domain.PullRun),
	}
}

// LoadJob returns a copy of the job, or nil if it was never saved.
func (s *SchedulerStore) LoadJob(_ context.Context, id string) (*domain.PullJob, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	job, ok := s.jobs[id]
	if !ok {
		return nil, nil
	}
	return &job, nil
}

// SaveJob stores a copy of job.
func (s *SchedulerStore) SaveJob(_ context.Context, job *domain.PullJob) error {
	if job == nil {
		return domain.ErrInvalidInput
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs[job.ID] = *job
	return nil
}

// AppendRun records run and trims its job's history to keep entries.
func (s *SchedulerStore) AppendRun(_ context.Context, run domain.PullRun, keep int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	runs := append(s.runs[run.JobID], run)
	if keep > 0 && len(runs) > keep {
		runs = append([]domain.PullRun(nil), runs[len(runs)-keep:]...)
	}
	s.runs[run.JobID] = runs
	return nil
}

// Runs returns up to limit runs, newest first.
func (s *SchedulerStore) Runs(_ context.Context, jobID string, limit int) ([]domain.PullRun, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	all := s.runs[jobID]
	if limit <= 0 || limit > len(all) {
		limit = len(all)
	}
	out := make([]domain.PullRun, 0, limit)
	for i := len(all) - 1; len(out) < limit; i-- {
		out = append(out, all[i])
	}
	return out, nil
}
