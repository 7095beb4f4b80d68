package rediscache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/shubhraaj/sitecms/internal/core/domain"
	"github.com/shubhraaj/sitecms/internal/core/ports/driven"
)

// schedulerStore keeps each job as a JSON string and its runs in a list,
// newest at the head.
type schedulerStore struct {
	client *redis.Client
	prefix string
}

var _ driven.SchedulerStore = (*schedulerStore)(nil)

// SchedulerStore returns a scheduler store sharing the cache's connection,
// so editors on one Redis see the same pull history.
func (s *Store) SchedulerStore() driven.SchedulerStore {
	return &schedulerStore{client: s.client, prefix: s.prefix}
}

func (s *schedulerStore) jobKey(id string) string  { return s.prefix + "job:" + id }
func (s *schedulerStore) runsKey(id string) string { return s.prefix + "runs:" + id }

func (s *schedulerStore) LoadJob(ctx context.Context, id string) (*domain.PullJob, error) {
	data, err := s.client.Get(ctx, s.jobKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, &domain.StorageError{Op: "load job " + id, Err: err}
	}

	job := &domain.PullJob{}
	if err := json.Unmarshal(data, job); err != nil {
		return nil, fmt.Errorf("decode job %s: %w", id, err)
	}
	return job, nil
}

func (s *schedulerStore) SaveJob(ctx context.Context, job *domain.PullJob) error {
	if job == nil {
		return domain.ErrInvalidInput
	}
	data, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("encode job: %w", err)
	}
	if err := s.client.Set(ctx, s.jobKey(job.ID), data, 0).Err(); err != nil {
		return &domain.StorageError{Op: "save job " + job.ID, Err: err}
	}
	return nil
}

func (s *schedulerStore) AppendRun(ctx context.Context, run domain.PullRun, keep int) error {
	data, err := json.Marshal(run)
	if err != nil {
		return fmt.Errorf("encode run: %w", err)
	}

	key := s.runsKey(run.JobID)
	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.LPush(ctx, key, data)
		if keep > 0 {
			pipe.LTrim(ctx, key, 0, int64(keep-1))
		}
		return nil
	})
	if err != nil {
		return &domain.StorageError{Op: "append run " + run.JobID, Err: err}
	}
	return nil
}

func (s *schedulerStore) Runs(ctx context.Context, jobID string, limit int) ([]domain.PullRun, error) {
	stop := int64(-1)
	if limit > 0 {
		stop = int64(limit - 1)
	}

	items, err := s.client.LRange(ctx, s.runsKey(jobID), 0, stop).Result()
	if err != nil {
		return nil, &domain.StorageError{Op: "runs of " + jobID, Err: err}
	}

	runs := make([]domain.PullRun, 0, len(items))
	for _, item := range items {
		var run domain.PullRun
		if err := json.Unmarshal([]byte(item), &run); err != nil {
			return nil, fmt.Errorf("decode run of %s: %w", jobID, err)
		}
		runs = append(runs, run)
	}
	return runs, nil
}
