package worker

import (
	"context"
	"log/slog"
	"sync"
)

// Job is a unit of background work executed by the pool.
type Job func(ctx context.Context) error

type WorkingPool struct {
	NumWorkers int
	jobChan    chan Job
	quit       chan struct{}
}

func NewWorkingPool(numWorkers int, queueSize int) *WorkingPool {
	return &WorkingPool{
		NumWorkers: numWorkers,
		jobChan:    make(chan Job, queueSize),
		quit:       make(chan struct{}),
	}
}

// SubmitJob queues the job for a worker and reports whether it was accepted.
// Jobs submitted once shutdown has begun are dropped; the job channel is
// never closed, so a submit racing shutdown cannot panic.
func (p *WorkingPool) SubmitJob(job Job) bool {
	select {
	case <-p.quit:
		return false
	default:
	}

	select {
	case p.jobChan <- job:
		return true
	case <-p.quit:
		return false
	}
}

func (p *WorkingPool) Start(ctx context.Context, managerWg *sync.WaitGroup) {
	defer managerWg.Done()

	var workerWg sync.WaitGroup
	for i := range p.NumWorkers {
		workerWg.Add(1)
		go p.worker(ctx, &workerWg, i+1)
	}

	<-ctx.Done()

	slog.Info("working pool shutdown signaled, rejecting new jobs")
	close(p.quit)

	workerWg.Wait()
	slog.Info("all workers stopped")
}

func (p *WorkingPool) worker(ctx context.Context, wg *sync.WaitGroup, id int) {
	defer wg.Done()

	for {
		select {
		case job := <-p.jobChan:
			p.safeExecution(ctx, job, id)

		case <-ctx.Done():
			// Exit immediately, queued jobs are dropped.
			return
		}
	}
}

func (p *WorkingPool) safeExecution(ctx context.Context, job Job, workerID int) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("panic recovered in job", "worker", workerID, "panic", r)
		}
	}()

	if err := job(ctx); err != nil {
		slog.Error("job failed", "worker", workerID, "error", err)
	}
}
