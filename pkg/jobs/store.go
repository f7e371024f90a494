package jobs

import (
	"context"
	"sync"
	"time"
)

// Store keeps jobs by task id.
type Store interface {
	// Insert adds a new job; ErrExists if the id is taken.
	Insert(ctx context.Context, job Job) error
	// Update replaces a processing job with its final state; ErrNotFound / ErrAlreadyFinished otherwise.
	Update(ctx context.Context, job Job) error
	Get(ctx context.Context, taskID string) (Job, error)
	// ReapExpired removes finished jobs older than the retention window and returns how many went away.
	ReapExpired(ctx context.Context, now time.Time) (int, error)
}

// MemoryStore is an in-process Store. Jobs are stored as immutable values, so
// readers never lock.
type MemoryStore struct {
	jobs      sync.Map // task id -> Job
	retention time.Duration
}

func NewMemoryStore(retention time.Duration) *MemoryStore {
	return &MemoryStore{retention: retention}
}

func (s *MemoryStore) Insert(_ context.Context, job Job) error {
	if _, loaded := s.jobs.LoadOrStore(job.TaskID, job); loaded {
		return ErrExists
	}
	return nil
}

func (s *MemoryStore) Update(_ context.Context, job Job) error {
	v, ok := s.jobs.Load(job.TaskID)
	if !ok {
		return ErrNotFound
	}
	old := v.(Job)
	if old.Finished() {
		return ErrAlreadyFinished
	}
	if !s.jobs.CompareAndSwap(job.TaskID, old, job) {
		return ErrAlreadyFinished
	}
	return nil
}

func (s *MemoryStore) Get(_ context.Context, taskID string) (Job, error) {
	v, ok := s.jobs.Load(taskID)
	if !ok {
		return Job{}, ErrNotFound
	}
	return v.(Job), nil
}

func (s *MemoryStore) ReapExpired(_ context.Context, now time.Time) (int, error) {
	n := 0
	s.jobs.Range(func(key, v any) bool {
		if v.(Job).Expired(now, s.retention) {
			if s.jobs.CompareAndDelete(key, v) {
				n++
			}
		}
		return true
	})
	return n, nil
}
