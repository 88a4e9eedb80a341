package promise

import "sync/atomic"

// Thenable is a future-like value: anything that can register a pair of
// settlement callbacks. Values implementing it are adopted by the resolution
// procedure instead of being delivered as plain results, so foreign
// deferred-value types compose transparently with Promise chains.
//
// Implementations may call the callbacks synchronously or later, but each
// adoption honors only the first invocation of either callback.
type Thenable interface {
	Subscribe(onFulfilled func(value any), onRejected func(err error))
}

// Resolve returns a promise settled successfully with the given value.
// A *Promise is returned unchanged. Any other Thenable is adopted on a later
// scheduler turn. Plain values produce an already-fulfilled promise.
func Resolve(value any, options ...Option) *Promise {
	if resolved, ok := value.(*Promise); ok {
		return resolved
	}

	p := newPromise(defaultScheduler)
	for _, option := range options {
		option(p)
	}

	if thenable, ok := value.(Thenable); ok {
		p.scheduler.Schedule(func() {
			adopt(p, thenable)
		})
	} else {
		p.fulfill(value)
	}

	return p
}

// Reject returns a promise already settled as failed with the given error,
// unmodified. Unlike Resolve, no unwrapping takes place.
func Reject(err error, options ...Option) *Promise {
	p := newPromise(defaultScheduler)
	for _, option := range options {
		option(p)
	}

	p.reject(err)

	return p
}

// resolvePromise settles p from a produced value x, deciding whether x is a
// future-like value to adopt or a plain value to fulfill with directly.
// Adoption recurses: a thenable that produces another thenable is unwrapped
// until a terminal value or error is reached.
func resolvePromise(p *Promise, x any) {
	if same, ok := x.(*Promise); ok && same == p {
		p.reject(ErrCycle)
		return
	}

	if thenable, ok := x.(Thenable); ok {
		adopt(p, thenable)
		return
	}

	p.fulfill(x)
}

// adopt settles p from the eventual outcome of a thenable. A one-shot latch
// shared by both callbacks ensures that only the first invocation of either
// has effect, even if the thenable calls both, calls one repeatedly, or
// panics after calling one.
func adopt(p *Promise, thenable Thenable) {
	var settled atomic.Bool

	defer func() {
		if r := recover(); r != nil && settled.CompareAndSwap(false, true) {
			p.reject(panicError(r))
		}
	}()

	thenable.Subscribe(func(value any) {
		if settled.CompareAndSwap(false, true) {
			resolvePromise(p, value)
		}
	}, func(err error) {
		if settled.CompareAndSwap(false, true) {
			p.reject(err)
		}
	})
}
