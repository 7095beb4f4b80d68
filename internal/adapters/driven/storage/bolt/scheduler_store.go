package bolt

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/shubhraaj/sitecms/internal/core/domain"
	"github.com/shubhraaj/sitecms/internal/core/ports/driven"
)

// schedulerStore keeps jobs as JSON under their ID in the jobs bucket and
// runs in one nested bucket per job, keyed by sequence.
type schedulerStore struct {
	db *bbolt.DB
}

var _ driven.SchedulerStore = (*schedulerStore)(nil)

func (s *schedulerStore) LoadJob(_ context.Context, id string) (*domain.PullJob, error) {
	var job *domain.PullJob
	err := s.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(bucketJobs).Get([]byte(id))
		if data == nil {
			return nil
		}
		job = &domain.PullJob{}
		return json.Unmarshal(data, job)
	})
	if err != nil {
		return nil, fmt.Errorf("load job %s: %w", id, err)
	}
	return job, nil
}

func (s *schedulerStore) SaveJob(_ context.Context, job *domain.PullJob) error {
	if job == nil {
		return domain.ErrInvalidInput
	}
	data, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("encode job: %w", err)
	}
	return s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketJobs).Put([]byte(job.ID), data)
	})
}

func (s *schedulerStore) AppendRun(_ context.Context, run domain.PullRun, keep int) error {
	data, err := json.Marshal(run)
	if err != nil {
		return fmt.Errorf("encode run: %w", err)
	}
	return s.db.Update(func(tx *bbolt.Tx) error {
		b, err := tx.Bucket(bucketRuns).CreateBucketIfNotExists([]byte(run.JobID))
		if err != nil {
			return err
		}
		seq, err := b.NextSequence()
		if err != nil {
			return err
		}
		if err := b.Put(seqKey(seq), data); err != nil {
			return err
		}
		if keep <= 0 {
			return nil
		}

		// Keys sort oldest first. Collect before deleting so the cursor stays valid.
		var keys [][]byte
		c := b.Cursor()
		for k, _ := c.First(); k != nil; k, _ = c.Next() {
			keys = append(keys, append([]byte(nil), k...))
		}
		if len(keys) <= keep {
			return nil
		}
		for _, k := range keys[:len(keys)-keep] {
			if err := b.Delete(k); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *schedulerStore) Runs(_ context.Context, jobID string, limit int) ([]domain.PullRun, error) {
	var runs []domain.PullRun
	err := s.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketRuns).Bucket([]byte(jobID))
		if b == nil {
			return nil
		}
		c := b.Cursor()
		for k, v := c.Last(); k != nil && (limit <= 0 || len(runs) < limit); k, v = c.Prev() {
			var run domain.PullRun
			if err := json.Unmarshal(v, &run); err != nil {
				return err
			}
			runs = append(runs, run)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("runs of %s: %w", jobID, err)
	}
	return runs, nil
}

// seqKey encodes a sequence number so keys sort in insertion order.
func seqKey(v uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, v)
	return b
}
