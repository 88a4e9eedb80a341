package promise

import (
	"errors"
	"testing"
	"time"

	"github.com/turnloop/promise/internal/assert"
)

func TestAllWithEmptyInput(t *testing.T) {

	value, err := All().Wait()

	assert.Equal(t, nil, err)
	assert.Equal(t, 0, len(value.([]any)))
}

func TestAllWithPlainValuesOnly(t *testing.T) {

	value, err := All(1, 2, 3).Wait()

	assert.Equal(t, nil, err)

	results := value.([]any)
	assert.Equal(t, 3, len(results))
	assert.Equal(t, 1, results[0])
	assert.Equal(t, 2, results[1])
	assert.Equal(t, 3, results[2])
}

func TestAllMixesValuesAndPromises(t *testing.T) {

	value, err := All(1, Resolve(2), 3).Wait()

	assert.Equal(t, nil, err)

	results := value.([]any)
	assert.Equal(t, 3, len(results))
	assert.Equal(t, 1, results[0])
	assert.Equal(t, 2, results[1])
	assert.Equal(t, 3, results[2])
}

func TestAllPreservesInputOrder(t *testing.T) {

	first, resolveFirst, _ := Deferred()
	second, resolveSecond, _ := Deferred()

	p := All(first, second)

	// Settle in reverse order
	resolveSecond("second")
	resolveFirst("first")

	value, err := p.Wait()

	assert.Equal(t, nil, err)

	results := value.([]any)
	assert.Equal(t, "first", results[0])
	assert.Equal(t, "second", results[1])
}

func TestAllRejectsWithFirstFailure(t *testing.T) {

	sampleErr := errors.New("sample error")

	failing, _, rejectFailing := Deferred()
	neverSettling, _, _ := Deferred()

	p := All(failing, neverSettling, 3)

	rejectFailing(sampleErr)

	_, err := p.Wait()

	assert.Equal(t, sampleErr, err)
}

func TestAllAdoptsThenableInputs(t *testing.T) {

	value, err := All(syncThenable{value: 1}, syncThenable{value: 2}).Wait()

	assert.Equal(t, nil, err)

	results := value.([]any)
	assert.Equal(t, 1, results[0])
	assert.Equal(t, 2, results[1])
}

func TestRaceWithEmptyInputNeverSettles(t *testing.T) {

	p := Race()

	time.Sleep(50 * time.Millisecond)

	assert.True(t, p.Pending())
}

func TestRaceSettlesWithFirstWinner(t *testing.T) {

	slow, resolveSlow, _ := Deferred()
	fast, _, rejectFast := Deferred()

	p := Race(slow, fast)

	fastErr := errors.New("fast failure")
	rejectFast(fastErr)
	resolveSlow("slow success")

	_, err := p.Wait()

	assert.Equal(t, fastErr, err)
}

func TestRaceWithSettledInputsPicksFirstListed(t *testing.T) {

	p := Race(Resolve(1), Reject(errors.New("second")))

	value, err := p.Wait()

	assert.Equal(t, 1, value)
	assert.Equal(t, nil, err)
}

func TestRaceWithPlainValue(t *testing.T) {

	neverSettling, _, _ := Deferred()

	p := Race(neverSettling, "fast")

	value, err := p.Wait()

	assert.Equal(t, "fast", value)
	assert.Equal(t, nil, err)
}
