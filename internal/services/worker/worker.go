// Package worker provides a bounded pool of goroutines for conversions.
//
// Go Pattern: Goroutines and channels are Go's concurrency primitives.
// This worker pool pattern is very common in Go:
// 1. Create a buffered channel as a job queue
// 2. Spawn N worker goroutines that read from the channel
// 3. Send jobs to the channel from your HTTP handlers
// 4. Workers process jobs concurrently
//
// The pool caps how many PDFs are parsed at once, so a burst of uploads
// queues (or is turned away) instead of exhausting memory.
package worker

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"
)

var (
	// ErrQueueFull is returned when every worker is busy and the queue is full.
	ErrQueueFull = errors.New("job queue is full")
	// ErrStopped is returned after Stop has been called.
	ErrStopped = errors.New("worker pool is stopped")
)

// Job is a unit of work. Run receives the pool's context, which is
// cancelled when the pool stops.
type Job struct {
	ID  string
	Run func(ctx context.Context)
}

// Pool manages a pool of worker goroutines.
type Pool struct {
	// Buffered channel acting as the job queue.
	jobs    chan Job
	workers int

	mu      sync.RWMutex // guards stopped against sends on a closed channel
	stopped bool

	wg     sync.WaitGroup
	ctx    context.Context
	cancel context.CancelFunc
}

// NewPool creates a pool of workers goroutines fed by a queue of queueSize.
// Call Start before submitting.
func NewPool(workers, queueSize int) *Pool {
	if workers < 1 {
		workers = 1
	}
	if queueSize < 0 {
		queueSize = 0
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Pool{
		jobs:    make(chan Job, queueSize),
		workers: workers,
		ctx:     ctx,
		cancel:  cancel,
	}
}

// Start launches the worker goroutines.
func (p *Pool) Start() {
	log.Info().Int("workers", p.workers).Int("queue", cap(p.jobs)).Msg("🚀 Starting conversion workers")
	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.worker(i)
	}
}

// Stop closes the queue, lets workers drain what is already queued, and
// waits for them. The pool context is cancelled first so long jobs can
// bail out early.
func (p *Pool) Stop() {
	p.mu.Lock()
	if p.stopped {
		p.mu.Unlock()
		return
	}
	p.stopped = true
	p.mu.Unlock()

	log.Info().Msg("⏹️  Stopping workers...")
	p.cancel()
	close(p.jobs)
	p.wg.Wait()
	log.Info().Msg("✅ All workers stopped")
}

// Submit adds a job to the queue without blocking.
func (p *Pool) Submit(job Job) error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.stopped {
		return ErrStopped
	}

	// Go Pattern: `select` with `default` makes channel sends non-blocking.
	select {
	case p.jobs <- job:
		log.Debug().Str("job_id", job.ID).Msg("📥 Job queued")
		return nil
	default:
		return ErrQueueFull
	}
}

// Do runs fn on the pool and waits for it to finish or for ctx to end.
// fn gets the caller's ctx, so a client that disconnects stops its own
// conversion. A panic inside fn is returned as an error.
func (p *Pool) Do(ctx context.Context, id string, fn func(ctx context.Context) error) error {
	done := make(chan error, 1)

	err := p.Submit(Job{ID: id, Run: func(context.Context) {
		defer func() {
			if r := recover(); r != nil {
				done <- fmt.Errorf("job %s panicked: %v", id, r)
			}
		}()
		if err := ctx.Err(); err != nil {
			done <- err
			return
		}
		done <- fn(ctx)
	}})
	if err != nil {
		return err
	}

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// WorkerCount returns the number of workers in the pool.
func (p *Pool) WorkerCount() int {
	return p.workers
}

// QueueLength returns how many jobs are waiting for a worker.
func (p *Pool) QueueLength() int {
	return len(p.jobs)
}

// worker is the main loop for a single worker goroutine.
// Go Pattern: `for job := range ch` reads until the channel is closed.
func (p *Pool) worker(id int) {
	defer p.wg.Done()
	log.Debug().Int("worker", id).Msg("🔧 Worker started")

	for job := range p.jobs {
		p.run(id, job)
	}

	log.Debug().Int("worker", id).Msg("🔧 Worker stopped")
}

// run executes one job, keeping the worker alive if it panics.
func (p *Pool) run(workerID int, job Job) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Int("worker", workerID).Str("job_id", job.ID).Interface("panic", r).Msg("❌ Job panicked")
		}
	}()
	job.Run(p.ctx)
}
