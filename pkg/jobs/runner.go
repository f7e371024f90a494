package jobs

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/artem13815/icebreaker/pkg/agent"
)

// UseCase: асинхронный вариант пайплайна: задача ставится в очередь,
// статус опрашивается по task_id.
type UseCase interface {
	SubmitAsync(ctx context.Context, name string) (string, error)
	GetStatus(ctx context.Context, taskID string) (Job, error)
}

type RunnerConfig struct {
	Workers   int
	QueueSize int
	Retention time.Duration
	// Deadline bounds one background pipeline run; zero means no extra bound.
	Deadline time.Duration
}

type RunnerOption func(*Runner)

// WithClock replaces time.Now for job timestamps and expiry checks.
func WithClock(now func() time.Time) RunnerOption {
	return func(r *Runner) { r.now = now }
}

// Runner executes submitted jobs on a fixed pool of workers.
type Runner struct {
	store    Store
	pipeline agent.UseCase
	cfg      RunnerConfig
	log      *slog.Logger
	now      func() time.Time

	// mu: отправка в очередь не пересекается с закрытием stop
	mu       sync.RWMutex
	queue    chan string
	stop     chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

func NewRunner(store Store, pipeline agent.UseCase, cfg RunnerConfig, log *slog.Logger, opts ...RunnerOption) *Runner {
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = 64
	}
	if cfg.Retention <= 0 {
		cfg.Retention = time.Hour
	}
	if log == nil {
		log = slog.Default()
	}
	r := &Runner{
		store:    store,
		pipeline: pipeline,
		cfg:      cfg,
		log:      log.With("module", "jobs"),
		now:      time.Now,
		queue:    make(chan string, cfg.QueueSize),
		stop:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Start launches the workers. They run until Stop or until ctx is cancelled.
func (r *Runner) Start(ctx context.Context) {
	for i := 0; i < r.cfg.Workers; i++ {
		r.wg.Add(1)
		go r.worker(ctx, i)
	}
	r.log.Info("workers started", "workers", r.cfg.Workers, "queue", r.cfg.QueueSize)
}

// Stop signals the workers and waits for in-flight jobs to finish.
// Jobs still queued are closed with ErrStopped, so they expire and get reaped.
func (r *Runner) Stop() {
	r.stopOnce.Do(func() {
		r.mu.Lock()
		close(r.stop)
		r.mu.Unlock()
	})
	r.wg.Wait()
	drained := r.drain()
	r.log.Info("workers stopped", "drained", drained)
}

// drain closes every job left in the queue after the workers exited.
func (r *Runner) drain() int {
	n := 0
	for {
		select {
		case taskID := <-r.queue:
			ctx := context.Background()
			job, err := r.store.Get(ctx, taskID)
			if err != nil {
				r.log.Error("drain: load job", "task_id", taskID, "error", err)
				continue
			}
			r.finish(ctx, job, nil, ErrStopped)
			n++
		default:
			return n
		}
	}
}

func (r *Runner) SubmitAsync(ctx context.Context, name string) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	select {
	case <-r.stop:
		return "", ErrStopped
	default:
	}

	job := Job{
		TaskID:    "task_" + uuid.NewString(),
		Status:    StatusProcessing,
		Name:      name,
		CreatedAt: r.now(),
	}
	// вставка строго до отправки в очередь: воркер всегда находит задачу
	if err := r.store.Insert(ctx, job); err != nil {
		return "", fmt.Errorf("insert job: %w", err)
	}

	select {
	case r.queue <- job.TaskID:
		r.log.Info("job submitted", "task_id", job.TaskID, "name", name)
		return job.TaskID, nil
	default:
	}

	r.finish(ctx, job, nil, ErrQueueFull)
	return "", ErrQueueFull
}

func (r *Runner) GetStatus(ctx context.Context, taskID string) (Job, error) {
	job, err := r.store.Get(ctx, taskID)
	if err != nil {
		return Job{}, err
	}
	if job.Expired(r.now(), r.cfg.Retention) {
		return Job{}, ErrExpired
	}
	return job, nil
}

func (r *Runner) worker(ctx context.Context, id int) {
	defer r.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case <-r.stop:
			return
		case taskID := <-r.queue:
			r.process(ctx, taskID, id)
		}
	}
}

func (r *Runner) process(ctx context.Context, taskID string, workerID int) {
	job, err := r.store.Get(ctx, taskID)
	if err != nil {
		r.log.Error("load job", "task_id", taskID, "error", err)
		return
	}
	r.log.Debug("job started", "task_id", taskID, "worker", workerID)

	result, err := r.run(ctx, job.Name)
	r.finish(ctx, job, result, err)
}

func (r *Runner) run(ctx context.Context, name string) (res *agent.Result, err error) {
	defer func() {
		if p := recover(); p != nil {
			res, err = nil, fmt.Errorf("pipeline panic: %v", p)
		}
	}()
	if r.cfg.Deadline > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.cfg.Deadline)
		defer cancel()
	}
	out := r.pipeline.RunPipeline(ctx, name)
	return &out, nil
}

// finish is the single processing -> completed|error transition of a job.
func (r *Runner) finish(ctx context.Context, job Job, result *agent.Result, runErr error) {
	done := r.now()
	job.CompletedAt = &done
	if runErr != nil {
		job.Status = StatusError
		job.Error = runErr.Error()
	} else {
		job.Status = StatusCompleted
		job.Result = result
	}

	// задача должна закрыться даже при отменённом контексте запроса
	err := r.store.Update(context.WithoutCancel(ctx), job)
	switch {
	case errors.Is(err, ErrAlreadyFinished):
		r.log.Warn("job already finished", "task_id", job.TaskID)
	case err != nil:
		r.log.Error("update job", "task_id", job.TaskID, "error", err)
	default:
		r.log.Info("job finished", "task_id", job.TaskID, "status", string(job.Status))
	}
}
