package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// Reaper periodically drops finished jobs whose retention window has passed.
type Reaper struct {
	cron  *cron.Cron
	store Store
	spec  string
	log   *slog.Logger
	now   func() time.Time
}

func NewReaper(store Store, interval time.Duration, log *slog.Logger) *Reaper {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	if log == nil {
		log = slog.Default()
	}
	log = log.With("module", "reaper")
	return &Reaper{
		cron:  cron.New(cron.WithLogger(cron.PrintfLogger(slog.NewLogLogger(log.Handler(), slog.LevelDebug)))),
		store: store,
		spec:  fmt.Sprintf("@every %s", interval),
		log:   log,
		now:   time.Now,
	}
}

func (r *Reaper) Start(ctx context.Context) error {
	if _, err := r.cron.AddFunc(r.spec, func() { r.Reap(ctx) }); err != nil {
		return fmt.Errorf("cron.AddFunc: %w", err)
	}
	r.cron.Start()
	r.log.Info("reaper started", "spec", r.spec)
	return nil
}

// Stop waits for a running reap to complete.
func (r *Reaper) Stop() {
	<-r.cron.Stop().Done()
	r.log.Info("reaper stopped")
}

// Reap runs one cleanup pass and returns the number of removed jobs.
func (r *Reaper) Reap(ctx context.Context) int {
	n, err := r.store.ReapExpired(ctx, r.now())
	if err != nil {
		r.log.Error("reap expired jobs", "error", err)
		return 0
	}
	if n > 0 {
		r.log.Info("expired jobs reaped", "count", n)
	}
	return n
}
