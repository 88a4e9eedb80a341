package promise

import (
	"context"

	"github.com/turnloop/promise/internal/microtask"
)

// defaultScheduler backs every promise created without the WithScheduler
// option. It is a single microtask loop shared across the package, so
// handlers of unrelated promises run serially on one goroutine.
var defaultScheduler Scheduler = microtask.New(context.Background())

// Option customizes a promise at creation time.
type Option func(*Promise)

// WithScheduler makes the promise defer its handlers on the given scheduler
// instead of the package-level one. Promises derived via Then, Catch and
// Finally inherit their source's scheduler.
func WithScheduler(scheduler Scheduler) Option {
	return func(p *Promise) {
		p.scheduler = scheduler
	}
}
