package promise

// OnFulfilled transforms a settled value. Returning a non-nil error rejects
// the derived promise; returning a *Promise or Thenable chains its outcome.
type OnFulfilled func(value any) (any, error)

// OnRejected handles a settlement error. Returning a value with a nil error
// recovers the chain; returning a non-nil error keeps it rejected.
type OnRejected func(err error) (any, error)

// Then registers handlers for the promise's settlement and returns a new
// promise settled from the matching handler's outcome. Both handlers are
// optional: a nil onFulfilled passes the value through unchanged and a nil
// onRejected re-raises the error.
//
// Then never blocks and the handlers always run on a later scheduler turn,
// regardless of whether the promise was already settled when Then was called.
// A panic inside a handler is recovered and rejects the derived promise.
func (p *Promise) Then(onFulfilled OnFulfilled, onRejected OnRejected) *Promise {
	derived := newPromise(p.scheduler)

	p.Subscribe(func(value any) {
		if onFulfilled == nil {
			resolvePromise(derived, value)
			return
		}
		derived.complete(func() (any, error) {
			return onFulfilled(value)
		})
	}, func(err error) {
		if onRejected == nil {
			derived.reject(err)
			return
		}
		derived.complete(func() (any, error) {
			return onRejected(err)
		})
	})

	return derived
}

// Catch registers a handler for the promise's rejection. It is shorthand for
// Then with no fulfillment handler.
func (p *Promise) Catch(onRejected OnRejected) *Promise {
	return p.Then(nil, onRejected)
}

// Finally runs callback once the promise settles, regardless of outcome, and
// waits for the callback's own result (which may be a promise) before
// re-emitting the original value or re-raising the original error. A failure
// of the callback itself supersedes the original outcome.
func (p *Promise) Finally(callback func() (any, error)) *Promise {
	return p.Then(func(value any) (any, error) {
		out, err := callback()
		if err != nil {
			return nil, err
		}
		return Resolve(out, WithScheduler(p.scheduler)).Then(func(any) (any, error) {
			return value, nil
		}, nil), nil
	}, func(cause error) (any, error) {
		out, err := callback()
		if err != nil {
			return nil, err
		}
		return Resolve(out, WithScheduler(p.scheduler)).Then(func(any) (any, error) {
			return nil, cause
		}, nil), nil
	})
}

// complete settles the promise from a handler's outcome: a non-nil error
// (or a panic) rejects it, otherwise the returned value is fed through the
// resolution procedure.
func (p *Promise) complete(handler func() (any, error)) {
	defer func() {
		if r := recover(); r != nil {
			p.reject(panicError(r))
		}
	}()

	value, err := handler()

	if err != nil {
		p.reject(err)
		return
	}

	resolvePromise(p, value)
}
