package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/shubhraaj/sitecms/internal/core/domain"
	"github.com/shubhraaj/sitecms/internal/core/ports/driven"
	"github.com/shubhraaj/sitecms/internal/core/ports/driving"
	"github.com/shubhraaj/sitecms/internal/logger"
	"github.com/shubhraaj/sitecms/internal/metrics"
)

var _ driving.Scheduler = (*Scheduler)(nil)

// runRetention is how many background pulls are kept in history.
const runRetention = 100

// Scheduler pulls content on a fixed interval. A failed pull is logged and
// recorded; readers keep getting the cached snapshot.
type Scheduler struct {
	config  domain.SchedulerConfig
	store   driven.SchedulerStore
	content driving.ContentService
	tick    time.Duration
	now     func() time.Time
	log     zerolog.Logger

	mu   sync.Mutex
	stop chan struct{}
	done chan struct{}
}

// NewScheduler creates a scheduler. A nil store or content service
// leaves it idle.
func NewScheduler(
	config domain.SchedulerConfig,
	store driven.SchedulerStore,
	content driving.ContentService,
) *Scheduler {
	return &Scheduler{
		config:  config,
		store:   store,
		content: content,
		tick:    time.Minute,
		now:     time.Now,
		log:     logger.WithComponent("scheduler"),
	}
}

// SetTickInterval changes how often the schedule is checked.
func (s *Scheduler) SetTickInterval(d time.Duration) {
	if d > 0 {
		s.tick = d
	}
}

// Start blocks until ctx is cancelled or Stop is called. It returns at once
// when the scheduler is disabled, idle or already running.
func (s *Scheduler) Start(ctx context.Context) error {
	if !s.config.Enabled || s.store == nil || s.content == nil {
		return nil
	}

	s.mu.Lock()
	if s.stop != nil {
		s.mu.Unlock()
		return nil
	}
	stop, done := make(chan struct{}), make(chan struct{})
	s.stop, s.done = stop, done
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		if s.done == done {
			s.stop, s.done = nil, nil
		}
		s.mu.Unlock()
		close(done)
	}()

	job, err := s.loadJob(ctx)
	if err != nil {
		s.log.Warn().Err(err).Msg("loading pull schedule")
		job = &domain.PullJob{ID: domain.PullJobID, Every: s.config.Interval()}
	}

	ticker := time.NewTicker(s.tick)
	defer ticker.Stop()

	for {
		if job.Due(s.now()) {
			s.runPull(ctx, job)
		}
		select {
		case <-ctx.Done():
			return nil
		case <-stop:
			return nil
		case <-ticker.C:
		}
	}
}

// Stop ends a running Start and waits for it to return.
func (s *Scheduler) Stop() error {
	s.mu.Lock()
	stop, done := s.stop, s.done
	s.stop, s.done = nil, nil
	s.mu.Unlock()

	if stop == nil {
		return nil
	}
	close(stop)
	<-done
	return nil
}

// History returns recent background pulls, newest first.
func (s *Scheduler) History(ctx context.Context, limit int) ([]domain.PullRun, error) {
	if s.store == nil {
		return nil, nil
	}
	runs, err := s.store.Runs(ctx, domain.PullJobID, limit)
	if err != nil {
		return nil, errors.Join(domain.ErrStorage, err)
	}
	return runs, nil
}

// loadJob returns the stored schedule, creating it on first start and
// rescheduling it when the configured interval changed.
func (s *Scheduler) loadJob(ctx context.Context) (*domain.PullJob, error) {
	every := s.config.Interval()

	job, err := s.store.LoadJob(ctx, domain.PullJobID)
	if err != nil {
		return nil, err
	}
	switch {
	case job == nil:
		job = &domain.PullJob{ID: domain.PullJobID, Every: every}
	case job.Every != every:
		job.Every = every
		job.NextRun = s.now().Add(every)
	default:
		return job, nil
	}
	return job, s.store.SaveJob(ctx, job)
}

func (s *Scheduler) runPull(ctx context.Context, job *domain.PullJob) {
	run := domain.PullRun{JobID: job.ID, Started: s.now()}

	snap, err := s.content.TryPull(ctx)
	run.Finished = s.now()

	if err != nil {
		run.Err = err.Error()
		metrics.BackgroundPulls.WithLabelValues(job.ID, "error").Inc()
		s.log.Debug().Err(err).Msg("background pull failed")
	} else {
		run.Projects = len(snap.Projects)
		run.Testimonials = len(snap.Testimonials)
		metrics.BackgroundPulls.WithLabelValues(job.ID, "ok").Inc()
		s.log.Debug().Dur("took", run.Duration()).Msg("background pull done")
	}

	job.Record(run)
	if err := s.store.SaveJob(ctx, job); err != nil {
		s.log.Warn().Err(err).Msg("saving pull schedule")
	}
	if err := s.store.AppendRun(ctx, run, runRetention); err != nil {
		s.log.Warn().Err(err).Msg("recording pull")
	}
}
