package refresh

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
)

const (
	defaultWorkers   = 2
	defaultQueueSize = 64
)

// Runner executes a single job.
type Runner interface {
	Run(ctx context.Context, job Job) error
}

// Dispatcher runs refresh jobs on a fixed pool of workers fed by a bounded
// queue. Jobs are detached from the request that scheduled them.
type Dispatcher struct {
	runner Runner
	logger zerolog.Logger
	queue  chan Job

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu     sync.RWMutex
	closed bool
}

// NewDispatcher starts the worker pool.
func NewDispatcher(workers, queueSize int, runner Runner, logger zerolog.Logger) *Dispatcher {
	if workers < 1 {
		workers = defaultWorkers
	}
	if queueSize < 1 {
		queueSize = defaultQueueSize
	}

	ctx, cancel := context.WithCancel(context.Background())
	d := &Dispatcher{
		runner: runner,
		logger: logger,
		queue:  make(chan Job, queueSize),
		ctx:    ctx,
		cancel: cancel,
	}

	logger.Info().Int("workers", workers).Int("queue_size", queueSize).Msg("starting refresh workers")
	for i := 0; i < workers; i++ {
		d.wg.Add(1)
		go d.loop(i + 1)
	}
	return d
}

// Schedule enqueues a job without blocking. It reports false when the queue is
// full or the dispatcher has shut down.
func (d *Dispatcher) Schedule(job Job) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		d.logger.Warn().Int64("faculty_id", job.FacultyID).Msg("refresh dropped: dispatcher closed")
		return false
	}

	select {
	case d.queue <- job:
		d.logger.Debug().Int64("faculty_id", job.FacultyID).Str("reason", job.Reason).Msg("refresh scheduled")
		return true
	default:
		d.logger.Warn().Int64("faculty_id", job.FacultyID).Str("reason", job.Reason).Msg("refresh dropped: queue full")
		return false
	}
}

// Shutdown stops accepting jobs and waits for queued work to drain. When ctx
// expires first, in-flight jobs are cancelled and ctx.Err is returned.
func (d *Dispatcher) Shutdown(ctx context.Context) error {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.queue)
	}
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		d.cancel()
		return nil
	case <-ctx.Done():
		d.cancel()
		<-done
		return ctx.Err()
	}
}

func (d *Dispatcher) loop(workerID int) {
	defer d.wg.Done()
	for job := range d.queue {
		d.execute(workerID, job)
	}
}

func (d *Dispatcher) execute(workerID int, job Job) {
	defer func() {
		if rec := recover(); rec != nil {
			d.logger.Error().
				Int("worker_id", workerID).
				Int64("faculty_id", job.FacultyID).
				Interface("panic", rec).
				Msg("refresh job panicked")
		}
	}()

	if err := d.runner.Run(d.ctx, job); err != nil {
		d.logger.Error().
			Err(err).
			Int("worker_id", workerID).
			Int64("faculty_id", job.FacultyID).
			Msg("refresh job failed")
	}
}
