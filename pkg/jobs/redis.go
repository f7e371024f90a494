package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	keyPrefix = "icebreaker:job:"
	// unfinished jobs of a crashed process must not live forever
	processingTTL = 24 * time.Hour
)

// RedisStore shares jobs between several server instances. Expiry is delegated
// to key TTLs, so ReapExpired has nothing to do.
type RedisStore struct {
	rdb       *redis.Client
	retention time.Duration
}

func NewRedisStore(rdb *redis.Client, retention time.Duration) *RedisStore {
	return &RedisStore{rdb: rdb, retention: retention}
}

// NewRedisClient parses redisURL and verifies connectivity.
func NewRedisClient(ctx context.Context, redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("redis.ParseURL: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	return client, nil
}

func (s *RedisStore) Insert(ctx context.Context, job Job) error {
	data, err := json.Marshal(job)
	if err != nil {
		return err
	}
	ok, err := s.rdb.SetNX(ctx, keyPrefix+job.TaskID, data, processingTTL).Result()
	if err != nil {
		return fmt.Errorf("redis setnx: %w", err)
	}
	if !ok {
		return ErrExists
	}
	return nil
}

func (s *RedisStore) Update(ctx context.Context, job Job) error {
	old, err := s.Get(ctx, job.TaskID)
	if err != nil {
		return err
	}
	if old.Finished() {
		return ErrAlreadyFinished
	}
	data, err := json.Marshal(job)
	if err != nil {
		return err
	}
	// the retention window starts at completion
	ttl := s.retention
	if job.CompletedAt != nil {
		ttl = time.Until(job.CompletedAt.Add(s.retention))
	}
	if ttl <= 0 {
		ttl = time.Second
	}
	err = s.rdb.SetArgs(ctx, keyPrefix+job.TaskID, data, redis.SetArgs{Mode: "XX", TTL: ttl}).Err()
	if errors.Is(err, redis.Nil) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

func (s *RedisStore) Get(ctx context.Context, taskID string) (Job, error) {
	data, err := s.rdb.Get(ctx, keyPrefix+taskID).Bytes()
	if errors.Is(err, redis.Nil) {
		return Job{}, ErrNotFound
	}
	if err != nil {
		return Job{}, fmt.Errorf("redis get: %w", err)
	}
	var job Job
	if err := json.Unmarshal(data, &job); err != nil {
		return Job{}, fmt.Errorf("decode job %s: %w", taskID, err)
	}
	return job, nil
}

func (s *RedisStore) ReapExpired(context.Context, time.Time) (int, error) { return 0, nil }
