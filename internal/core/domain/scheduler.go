package domain

import "time"

// PullJobID identifies the background content pull.
const PullJobID = "content-pull"

// DefaultPullInterval is how often the background pull runs.
const DefaultPullInterval = 15 * time.Minute

// PullJob is the persisted schedule of the background pull.
type PullJob struct {
	ID        string        `json:"id"`
	Every     time.Duration `json:"every"`
	NextRun   time.Time     `json:"next_run"`
	LastRun   time.Time     `json:"last_run"`
	LastOK    time.Time     `json:"last_ok"`
	LastError string        `json:"last_error,omitempty"`
}

// Due reports whether the job should run at now.
// A job that was never scheduled is due immediately.
func (j PullJob) Due(now time.Time) bool {
	return j.NextRun.IsZero() || !now.Before(j.NextRun)
}

// Record applies the outcome of run and schedules the next run.
func (j *PullJob) Record(run PullRun) {
	j.LastRun = run.Started
	j.NextRun = run.Finished.Add(j.Every)
	if run.OK() {
		j.LastOK = run.Finished
		j.LastError = ""
		return
	}
	j.LastError = run.Err
}

// PullRun is the outcome of one background pull.
type PullRun struct {
	JobID        string    `json:"job_id"`
	Started      time.Time `json:"started"`
	Finished     time.Time `json:"finished"`
	Err          string    `json:"err,omitempty"`
	Projects     int       `json:"projects"`
	Testimonials int       `json:"testimonials"`
}

// OK reports whether the pull reached the server and was cached.
func (r PullRun) OK() bool { return r.Err == "" }

// Duration is how long the pull took.
func (r PullRun) Duration() time.Duration { return r.Finished.Sub(r.Started) }

// SchedulerConfig controls background pulls.
type SchedulerConfig struct {
	Enabled      bool
	PullInterval time.Duration
}

// Interval returns the configured pull interval, or the default when unset.
func (c SchedulerConfig) Interval() time.Duration {
	if c.PullInterval <= 0 {
		return DefaultPullInterval
	}
	return c.PullInterval
}

// DefaultSchedulerConfig enables a pull every DefaultPullInterval.
func DefaultSchedulerConfig() SchedulerConfig {
	return SchedulerConfig{Enabled: true, PullInterval: DefaultPullInterval}
}
