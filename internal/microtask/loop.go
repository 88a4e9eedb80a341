package microtask

import (
	"context"
	"fmt"
	"runtime/debug"

	"github.com/turnloop/promise/internal/linkedbuffer"
)

// Loop executes scheduled tasks serially on a single goroutine, in FIFO
// order. A task is never executed on the goroutine that scheduled it during
// the same call: scheduling from within a running task queues it to run after
// the current task returns.
type Loop struct {
	tasks             *linkedbuffer.LinkedBuffer[func()]
	bufferHasElements chan struct{}
	panicHandler      func(any)
}

// New creates a loop bound to the given context and starts its goroutine.
// The loop runs until the context is cancelled.
func New(ctx context.Context) *Loop {
	loop := &Loop{
		tasks:             linkedbuffer.New[func()](32, 1024),
		bufferHasElements: make(chan struct{}, 1),
		panicHandler:      defaultPanicHandler,
	}

	go loop.run(ctx)

	return loop
}

// Schedule enqueues a task to run after all previously scheduled tasks have
// completed. It is safe to call from any goroutine.
func (l *Loop) Schedule(task func()) {
	l.tasks.Push(task)

	// Notify there are elements in the buffer
	select {
	case l.bufferHasElements <- struct{}{}:
	default:
	}
}

// Len returns the number of tasks waiting to be executed.
func (l *Loop) Len() uint64 {
	return l.tasks.Len()
}

// run reads tasks from the buffer and executes them one at a time
func (l *Loop) run(ctx context.Context) {
	batch := make([]func(), 64)

	for {

		// Prioritize context cancellation over draining
		select {
		case <-ctx.Done():
			return
		default:
		}

		select {
		case <-ctx.Done():
			return
		case <-l.bufferHasElements:

			// Attempt to drain all pending tasks
			for {
				batchSize := l.tasks.Read(batch)

				if batchSize == 0 {
					break
				}

				for _, task := range batch[0:batchSize] {
					l.invoke(task)
				}
			}
		}
	}
}

// invoke runs a single task, keeping the loop alive if the task panics.
func (l *Loop) invoke(task func()) {
	defer func() {
		if p := recover(); p != nil {
			l.panicHandler(p)
		}
	}()

	task()
}

func defaultPanicHandler(p any) {
	fmt.Printf("Scheduled task exits from a panic: %v\nStack trace: %s\n", p, string(debug.Stack()))
}
