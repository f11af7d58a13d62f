package worker

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/robfig/cron/v3"
)

// Scheduler submits named jobs to the pool on cron expressions. The billing
// run is wired here at startup; the pool's workers execute it off the cron
// goroutine so a slow run never delays the next tick.
type Scheduler struct {
	cron *cron.Cron
	pool *WorkingPool
}

func NewScheduler(pool *WorkingPool) *Scheduler {
	return &Scheduler{
		cron: cron.New(),
		pool: pool,
	}
}

// Register schedules job under the given cron spec.
func (s *Scheduler) Register(name, spec string, job Job) error {
	_, err := s.cron.AddFunc(spec, func() {
		slog.Info("scheduler submitting job", "job", name, "spec", spec)
		if !s.pool.SubmitJob(job) {
			slog.Warn("job dropped, pool is shutting down", "job", name)
		}
	})
	if err != nil {
		return fmt.Errorf("failed to schedule job %s: %w", name, err)
	}
	return nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop halts scheduling and waits for in-flight cron callbacks.
func (s *Scheduler) Stop(ctx context.Context) {
	stopped := s.cron.Stop()
	select {
	case <-stopped.Done():
	case <-ctx.Done():
		slog.Warn("scheduler stop timed out")
	}
}
