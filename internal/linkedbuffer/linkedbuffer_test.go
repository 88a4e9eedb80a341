package linkedbuffer

import (
	"testing"

	"github.com/turnloop/promise/internal/assert"
)

func TestLinkedBufferPushAndRead(t *testing.T) {

	buf := New[int](4, 16)

	for i := 0; i < 100; i++ {
		buf.Push(i)
	}

	assert.Equal(t, uint64(100), buf.Len())
	assert.Equal(t, uint64(100), buf.WriteCount())

	var values []int
	batch := make([]int, 7)
	for {
		n := buf.Read(batch)
		if n == 0 {
			break
		}
		values = append(values, batch[0:n]...)
	}

	assert.Equal(t, 100, len(values))
	for i, got := range values {
		assert.Equal(t, i, got)
	}
	assert.Equal(t, uint64(0), buf.Len())
	assert.Equal(t, uint64(100), buf.ReadCount())
}

func TestLinkedBufferReadWhenEmpty(t *testing.T) {

	buf := New[string](4, 16)

	batch := make([]string, 8)

	assert.Equal(t, 0, buf.Read(batch))
}

func TestLinkedBufferInterleavedPushAndRead(t *testing.T) {

	buf := New[int](2, 8)
	batch := make([]int, 3)

	buf.Push(1)
	buf.Push(2)
	buf.Push(3)

	n := buf.Read(batch)

	assert.True(t, n > 0)

	buf.Push(4)

	var values []int
	values = append(values, batch[0:n]...)
	for {
		n = buf.Read(batch)
		if n == 0 {
			break
		}
		values = append(values, batch[0:n]...)
	}

	assert.Equal(t, 4, len(values))
	for i, got := range values {
		assert.Equal(t, i+1, got)
	}
}
