// Package promise implements a deferred-value primitive with chained,
// non-blocking composition of callbacks, in the style of JavaScript promises.
//
// All callbacks run on a cooperative, single-goroutine scheduler: a handler is
// never invoked on the stack of the call that registered it, even when the
// promise was already settled at subscription time. This makes callback
// ordering deterministic and lets callers finish wiring a chain before any
// handler observes its state.
package promise

import (
	"errors"
	"fmt"
	"sync"
)

var (
	// ErrCycle is the rejection reason used when a promise would adopt itself.
	ErrCycle = errors.New("chaining cycle detected")

	// ErrPanic is the rejection reason used when a setup routine, handler or
	// thenable panics. The recovered value is attached to the error message.
	ErrPanic = errors.New("callback panicked")
)

// Scheduler queues tasks for deferred execution. Implementations must run each
// task after the caller's current stack unwinds, in FIFO order relative to
// other tasks scheduled on the same Scheduler.
type Scheduler interface {
	Schedule(task func())
}

// ResolveFunc settles a promise successfully. Resolving with a *Promise or a
// Thenable adopts its eventual outcome instead of delivering it as a value.
type ResolveFunc func(value any)

// RejectFunc settles a promise as failed with the given error, unmodified.
type RejectFunc func(err error)

type state int

const (
	statePending state = iota
	stateFulfilled
	stateRejected
)

// Promise represents the eventual result of an asynchronous operation. It
// settles at most once, either with a value or with an error, and notifies
// its subscribers on later scheduler turns.
//
// The zero value is not usable; promises are created by New, Deferred,
// Resolve, Reject or by subscription on another promise.
type Promise struct {
	scheduler Scheduler

	mutex sync.Mutex
	state state

	// Exactly one of value and err is meaningful, determined by state.
	value any
	err   error

	// Scheduling closures queued while pending, drained exactly once at
	// settlement. Queue order defines handler scheduling order.
	fulfillQueue []func()
	rejectQueue  []func()

	// closed when the promise settles
	done chan struct{}
}

func newPromise(scheduler Scheduler) *Promise {
	return &Promise{
		scheduler: scheduler,
		done:      make(chan struct{}),
	}
}

// New creates a promise and invokes setup synchronously with the two
// settlement entry points. A panic raised by setup is recovered and rejects
// the promise; it is never propagated to the caller. The entry points may be
// called synchronously from setup or retained and called later, from any
// goroutine.
func New(setup func(resolve ResolveFunc, reject RejectFunc), options ...Option) *Promise {
	p := newPromise(defaultScheduler)
	for _, option := range options {
		option(p)
	}

	p.runSetup(setup)

	return p
}

func (p *Promise) runSetup(setup func(resolve ResolveFunc, reject RejectFunc)) {
	defer func() {
		if r := recover(); r != nil {
			p.reject(panicError(r))
		}
	}()

	setup(func(value any) {
		resolvePromise(p, value)
	}, p.reject)
}

// Deferred creates a pending promise and returns it along with its two
// settlement entry points, for callers that need to control settlement
// externally (e.g. when wrapping callback-style APIs).
func Deferred(options ...Option) (*Promise, ResolveFunc, RejectFunc) {
	p := newPromise(defaultScheduler)
	for _, option := range options {
		option(p)
	}

	return p, func(value any) {
		resolvePromise(p, value)
	}, p.reject
}

// Subscribe registers raw settlement callbacks without creating a derived
// promise. The matching callback is invoked exactly once, on a later
// scheduler turn, with the settled value or error. Nil callbacks are ignored.
//
// Subscribe is also the Thenable implementation, which lets a promise be
// adopted by the resolution procedure of another promise.
func (p *Promise) Subscribe(onFulfilled func(value any), onRejected func(err error)) {
	if onFulfilled == nil {
		onFulfilled = func(any) {}
	}
	if onRejected == nil {
		onRejected = func(error) {}
	}

	p.mutex.Lock()

	switch p.state {
	case stateFulfilled:
		value := p.value
		p.mutex.Unlock()
		p.scheduler.Schedule(func() {
			onFulfilled(value)
		})
	case stateRejected:
		err := p.err
		p.mutex.Unlock()
		p.scheduler.Schedule(func() {
			onRejected(err)
		})
	default:
		p.fulfillQueue = append(p.fulfillQueue, func() {
			value := p.value
			p.scheduler.Schedule(func() {
				onFulfilled(value)
			})
		})
		p.rejectQueue = append(p.rejectQueue, func() {
			err := p.err
			p.scheduler.Schedule(func() {
				onRejected(err)
			})
		})
		p.mutex.Unlock()
	}
}

// fulfill settles the promise with a plain value. It is a no-op if the
// promise has already settled.
func (p *Promise) fulfill(value any) {
	p.mutex.Lock()

	if p.state != statePending {
		p.mutex.Unlock()
		return
	}

	p.state = stateFulfilled
	p.value = value
	callbacks := p.fulfillQueue
	p.fulfillQueue, p.rejectQueue = nil, nil
	close(p.done)

	p.mutex.Unlock()

	// Drain the queue synchronously. Each entry only schedules its handler,
	// so no handler runs on this stack.
	for _, callback := range callbacks {
		callback()
	}
}

// reject settles the promise as failed. It is a no-op if the promise has
// already settled.
func (p *Promise) reject(err error) {
	p.mutex.Lock()

	if p.state != statePending {
		p.mutex.Unlock()
		return
	}

	p.state = stateRejected
	p.err = err
	callbacks := p.rejectQueue
	p.fulfillQueue, p.rejectQueue = nil, nil
	close(p.done)

	p.mutex.Unlock()

	for _, callback := range callbacks {
		callback()
	}
}

// Done returns a channel that is closed when the promise settles.
func (p *Promise) Done() <-chan struct{} {
	return p.done
}

// Wait blocks until the promise settles and returns its value or error.
// It must not be called from a scheduler turn, as that would block the
// scheduler itself.
func (p *Promise) Wait() (any, error) {
	<-p.done

	if p.state == stateRejected {
		return nil, p.err
	}
	return p.value, nil
}

// Pending reports whether the promise has not settled yet.
func (p *Promise) Pending() bool {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	return p.state == statePending
}

func panicError(p any) error {
	return fmt.Errorf("%w: %v", ErrPanic, p)
}
