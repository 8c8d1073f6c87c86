package executor

import (
	"context"
	"sync"

	"github.com/zeromicro/go-zero/core/threading"
)

type Executor[P interface{}] struct {
	ctx     context.Context
	tasks   chan P
	handler func(task P)
	workers int
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

func NewExecutor[P interface{}](ctx context.Context, workers int, queueSize int, handler func(task P)) *Executor[P] {
	if workers < 1 {
		workers = 1
	}
	ret := &Executor[P]{
		tasks:   make(chan P, queueSize),
		handler: handler,
		workers: workers,
	}
	ret.ctx, ret.cancel = context.WithCancel(ctx)
	return ret
}

func (e *Executor[P]) Start() {
	for i := 0; i < e.workers; i++ {
		go func() {
			for {
				select {
				case <-e.ctx.Done():
					e.drain()
					return
				case task := <-e.tasks:
					threading.RunSafe(func() {
						defer e.wg.Done()
						e.handler(task)
					})
				}
			}
		}()
	}
}

// Stop cancels the executor. Queued tasks that have not started are dropped.
func (e *Executor[P]) Stop() {
	e.cancel()
}

// drain drops every queued task so Wait does not hang on them.
func (e *Executor[P]) drain() {
	for {
		select {
		case <-e.tasks:
			e.wg.Done()
		default:
			return
		}
	}
}

func (e *Executor[P]) QueueSize() int {
	return len(e.tasks)
}

// Commit queues a task, blocking while the queue is full. Tasks committed
// after Stop are dropped.
func (e *Executor[P]) Commit(task P) {
	e.wg.Add(1)
	select {
	case e.tasks <- task:
		// lost the race with Stop: the workers may already have drained
		if e.ctx.Err() != nil {
			e.drain()
		}
	case <-e.ctx.Done():
		e.wg.Done()
	}
}

// Wait blocks until every committed task has run or the executor is stopped.
// After Stop, dropped tasks are released so the helper goroutine exits too.
func (e *Executor[P]) Wait() error {
	done := make(chan struct{})
	go func() {
		e.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-e.ctx.Done():
	}
	return e.ctx.Err()
}

// Map runs fn over tasks on a pool of workers and returns the results in
// input order. Slots whose task did not run keep the zero value.
func Map[P, R interface{}](ctx context.Context, workers int, tasks []P, fn func(task P) R) ([]R, error) {
	results := make([]R, len(tasks))
	e := NewExecutor[int](ctx, workers, len(tasks), func(i int) {
		results[i] = fn(tasks[i])
	})
	e.Start()
	defer e.Stop()
	for i := range tasks {
		e.Commit(i)
	}
	if err := e.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
