package promise

import "sync"

// All returns a promise that fulfills with the results of all inputs, in
// input order (not completion order), once every input has fulfilled. It
// rejects with the first rejection observed, without waiting for the
// remaining inputs. Non-thenable entries count as already-fulfilled values.
// An empty input fulfills immediately with an empty slice.
func All(values ...any) *Promise {
	p := newPromise(schedulerOf(values))

	results := make([]any, len(values))

	remaining := 0
	for i, value := range values {
		if _, ok := value.(Thenable); ok {
			remaining++
		} else {
			results[i] = value
		}
	}

	if remaining == 0 {
		p.fulfill(results)
		return p
	}

	var mutex sync.Mutex

	for i, value := range values {
		thenable, ok := value.(Thenable)
		if !ok {
			continue
		}

		index := i

		// Normalize through Resolve so adversarial thenables cannot deliver
		// more than one result per input.
		Resolve(thenable, WithScheduler(p.scheduler)).Subscribe(func(value any) {
			mutex.Lock()
			results[index] = value
			remaining--
			done := remaining == 0
			mutex.Unlock()

			if done {
				p.fulfill(results)
			}
		}, p.reject)
	}

	return p
}

// Race returns a promise that settles identically to whichever input settles
// first; later settlements are ignored by the promise's own single-settlement
// guard. Non-thenable entries settle the race on the first free scheduler
// turn. An empty input returns a promise that remains pending forever.
func Race(values ...any) *Promise {
	p := newPromise(schedulerOf(values))

	for _, value := range values {
		Resolve(value, WithScheduler(p.scheduler)).Subscribe(p.fulfill, p.reject)
	}

	return p
}

// schedulerOf picks the scheduler for a combinator's promise: the scheduler
// of the first promise input, or the default one if there is none.
func schedulerOf(values []any) Scheduler {
	for _, value := range values {
		if p, ok := value.(*Promise); ok {
			return p.scheduler
		}
	}
	return defaultScheduler
}
