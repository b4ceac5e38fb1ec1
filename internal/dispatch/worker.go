package dispatch

import (
	"context"
	"errors"
	"sync"
)

// ErrWorkerClosed is returned by Do after Close.
var ErrWorkerClosed = errors.New("dispatch: worker closed")

// Worker runs store pipelines one at a time on a single goroutine. Every
// store access made by the dispatcher goes through it, so two requests never
// query the store concurrently.
type Worker struct {
	tasks chan task
	done  chan struct{}
	once  sync.Once
	wg    sync.WaitGroup
}

type task struct {
	ctx    context.Context
	fn     func(context.Context) error
	result chan error
}

// NewWorker starts a worker whose queue holds up to depth waiting tasks.
func NewWorker(depth int) *Worker {
	w := &Worker{
		tasks: make(chan task, depth),
		done:  make(chan struct{}),
	}
	w.wg.Add(1)
	go w.run()
	return w
}

func (w *Worker) run() {
	defer w.wg.Done()
	for {
		select {
		case <-w.done:
			return
		case t := <-w.tasks:
			// Abandoned while queued.
			if err := t.ctx.Err(); err != nil {
				t.result <- err
				continue
			}
			t.result <- t.fn(t.ctx)
		}
	}
}

// Do queues fn and waits for its result. When ctx ends first Do returns the
// context error; a queued fn is then skipped and a running fn sees ctx done.
func (w *Worker) Do(ctx context.Context, fn func(context.Context) error) error {
	t := task{ctx: ctx, fn: fn, result: make(chan error, 1)}
	select {
	case w.tasks <- t:
	case <-ctx.Done():
		return ctx.Err()
	case <-w.done:
		return ErrWorkerClosed
	}
	select {
	case err := <-t.result:
		return err
	case <-ctx.Done():
		return ctx.Err()
	case <-w.done:
		return ErrWorkerClosed
	}
}

// Close stops the worker after the running task, if any, returns. Tasks still
// queued fail with ErrWorkerClosed.
func (w *Worker) Close() {
	w.once.Do(func() { close(w.done) })
	w.wg.Wait()
}
