package task

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
)

// Common errors returned by the Executor.
var (
	ErrQueueFull      = errors.New("task queue is full")
	ErrExecutorClosed = errors.New("executor is closed")
)

// Job is a unit of work submitted for background execution. The context it
// receives is the executor's lifecycle context, not the submitting request's,
// so a job survives its request being cancelled.
type Job func(ctx context.Context) (any, error)

// ExecutorConfig holds configuration for the executor.
type ExecutorConfig struct {
	// WorkerCount determines how many concurrent workers process jobs.
	// If zero or negative, defaults to 2.
	WorkerCount int

	// QueueSize determines the buffer size for the in-memory job queue.
	// If zero or negative, defaults to 100.
	QueueSize int
}

// DefaultExecutorConfig returns an ExecutorConfig with reasonable defaults.
func DefaultExecutorConfig() ExecutorConfig {
	return ExecutorConfig{
		WorkerCount: 2,
		QueueSize:   100,
	}
}

type queuedJob struct {
	job      Job
	deferred *Deferred
}

// Executor runs submitted jobs on a fixed pool of worker goroutines.
type Executor struct {
	jobChan    chan queuedJob
	ctx        context.Context
	cancelFunc context.CancelFunc
	wg         sync.WaitGroup
	config     ExecutorConfig
	logger     *slog.Logger

	mu     sync.Mutex
	closed bool
}

// NewExecutor creates a new Executor.
func NewExecutor(config ExecutorConfig, logger *slog.Logger) *Executor {
	if config.WorkerCount <= 0 {
		config.WorkerCount = 2
		logger.Warn("invalid worker count specified, using default",
			"default_count", config.WorkerCount)
	}
	if config.QueueSize <= 0 {
		config.QueueSize = 100
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Executor{
		jobChan:    make(chan queuedJob, config.QueueSize),
		ctx:        ctx,
		cancelFunc: cancel,
		config:     config,
		logger:     logger.With("component", "task_executor"),
	}
}

// Start launches the worker goroutines.
func (e *Executor) Start() {
	for i := 0; i < e.config.WorkerCount; i++ {
		e.wg.Add(1)
		go e.worker(i)
	}

	e.logger.Info("executor started",
		"worker_count", e.config.WorkerCount,
		"queue_size", e.config.QueueSize)
}

// Stop shuts the executor down. Submission is refused immediately; workers
// drain jobs already queued, then exit. Stop blocks until they have.
func (e *Executor) Stop() {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return
	}
	e.closed = true
	close(e.jobChan)
	e.mu.Unlock()

	e.wg.Wait()
	e.cancelFunc()
	e.logger.Info("executor stopped")
}

// Submit enqueues a job and returns a Deferred handle for its result.
// Returns ErrQueueFull when the queue has no capacity and ErrExecutorClosed
// after Stop.
func (e *Executor) Submit(job Job) (*Deferred, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return nil, ErrExecutorClosed
	}

	d := newDeferred()
	select {
	case e.jobChan <- queuedJob{job: job, deferred: d}:
		e.logger.Debug("job enqueued",
			"job_id", d.ID(),
			"queue_len", len(e.jobChan),
			"queue_cap", cap(e.jobChan))
		return d, nil
	default:
		return nil, fmt.Errorf("%w: queue capacity %d reached", ErrQueueFull, cap(e.jobChan))
	}
}

// worker processes jobs from the queue until it is closed.
func (e *Executor) worker(id int) {
	defer e.wg.Done()

	e.logger.Debug("starting worker", "worker_id", id)

	for qj := range e.jobChan {
		e.runJob(qj, id)
	}

	e.logger.Debug("job channel closed, stopping worker", "worker_id", id)
}

// runJob executes a single job and resolves its deferred. A panicking job
// resolves with an error instead of taking the worker down.
func (e *Executor) runJob(qj queuedJob, workerID int) {
	logger := e.logger.With(
		"job_id", qj.deferred.ID(),
		"worker_id", workerID,
	)

	defer func() {
		if p := recover(); p != nil {
			logger.Error("job panicked", "panic", p)
			qj.deferred.resolve(nil, fmt.Errorf("job panicked: %v", p))
		}
	}()

	logger.Debug("processing job")

	value, err := qj.job(e.ctx)
	if err != nil {
		logger.Debug("job finished with error", "error", err)
	} else {
		logger.Debug("job completed")
	}

	qj.deferred.resolve(value, err)
}
