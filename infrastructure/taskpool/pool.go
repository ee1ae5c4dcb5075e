// Package taskpool runs blocking jobs on a fixed set of workers so request
// goroutines never execute the extraction binary themselves.
package taskpool

import (
	"context"
	"sync"

	"media-gateway/infrastructure/logger"
)

// Task is one blocking unit of work. Tasks must honor ctx cancellation; a
// task that ignores it keeps its worker busy until it finishes naturally.
type Task func(ctx context.Context) (interface{}, error)

// Result carries a task outcome back to the submitter.
type Result struct {
	Value interface{}
	Err   error
}

type job struct {
	ctx  context.Context
	task Task
	out  chan Result
}

// Pool is a fixed-size worker pool. Submissions past the queue depth block
// until a slot frees or the submitting context is done.
type Pool struct {
	jobs      chan job
	wg        sync.WaitGroup
	closeOnce sync.Once
}

const queueDepth = 64

// New starts a pool with the given number of workers.
func New(size int) *Pool {
	if size <= 0 {
		size = 1
	}
	p := &Pool{jobs: make(chan job, queueDepth)}
	for i := 0; i < size; i++ {
		p.wg.Add(1)
		go p.worker(i)
	}
	logger.GetLogger().WithField("workers", size).Info("Task pool started")
	return p
}

func (p *Pool) worker(id int) {
	defer p.wg.Done()
	for j := range p.jobs {
		// Skip work whose submitter already gave up while queued.
		if err := j.ctx.Err(); err != nil {
			j.out <- Result{Err: err}
			continue
		}
		value, err := j.task(j.ctx)
		j.out <- Result{Value: value, Err: err}
	}
}

// Execute runs the task on a pool worker and waits for the result or for ctx
// to be done, whichever happens first. When ctx wins, the task context is the
// same ctx, so a cooperative task stops shortly after; its result is
// discarded either way (the out channel is buffered).
func (p *Pool) Execute(ctx context.Context, task Task) (interface{}, error) {
	out := make(chan Result, 1)

	select {
	case p.jobs <- job{ctx: ctx, task: task, out: out}:
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	select {
	case res := <-out:
		return res.Value, res.Err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Close stops accepting jobs and waits for in-flight tasks to finish.
func (p *Pool) Close() {
	p.closeOnce.Do(func() {
		close(p.jobs)
	})
	p.wg.Wait()
}
