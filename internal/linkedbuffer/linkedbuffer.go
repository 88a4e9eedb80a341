package linkedbuffer

import (
	"sync"
	"sync/atomic"
)

// LinkedBuffer implements an unbounded FIFO buffer that can be written to and
// read from concurrently. It is implemented using a linked list of
// fixed-capacity chunks that grow as elements are written.
type LinkedBuffer[T any] struct {
	// Reader points to the chunk that is currently being read
	readBuffer *buffer[T]

	// Writer points to the chunk that is currently being written
	writeBuffer *buffer[T]

	maxCapacity int
	writeCount  atomic.Uint64
	readCount   atomic.Uint64
	mutex       sync.Mutex
}

func New[T any](initialCapacity, maxCapacity int) *LinkedBuffer[T] {
	initialBuffer := newBuffer[T](initialCapacity)

	return &LinkedBuffer[T]{
		readBuffer:  initialBuffer,
		writeBuffer: initialBuffer,
		maxCapacity: maxCapacity,
	}
}

// Push appends a value to the buffer.
func (b *LinkedBuffer[T]) Push(value T) {
	b.mutex.Lock()

	if b.writeBuffer.full() {
		// Increase next chunk capacity
		var newCapacity int
		capacity := b.writeBuffer.Cap()
		if capacity < 1024 {
			newCapacity = capacity * 2
		} else {
			newCapacity = capacity + capacity/2
		}
		if b.maxCapacity > 0 && newCapacity > b.maxCapacity {
			newCapacity = b.maxCapacity
		}

		b.writeBuffer.next = newBuffer[T](newCapacity)
		b.writeBuffer = b.writeBuffer.next
	}

	b.writeBuffer.write(value)

	b.mutex.Unlock()

	b.writeCount.Add(1)
}

// Read reads values from the buffer into the given slice and returns the
// number of elements read. It returns 0 when the buffer is empty.
func (b *LinkedBuffer[T]) Read(values []T) int {
	var n int

	b.mutex.Lock()

	for {
		n = b.readBuffer.read(values)

		if n > 0 || b.readBuffer.next == nil {
			break
		}

		// Chunk read completely, move to the next one
		b.readBuffer = b.readBuffer.next
	}

	b.mutex.Unlock()

	if n > 0 {
		b.readCount.Add(uint64(n))
	}

	return n
}

// WriteCount returns the number of elements written to the buffer since it was created.
func (b *LinkedBuffer[T]) WriteCount() uint64 {
	return b.writeCount.Load()
}

// ReadCount returns the number of elements read from the buffer since it was created.
func (b *LinkedBuffer[T]) ReadCount() uint64 {
	return b.readCount.Load()
}

// Len returns the number of elements currently stored in the buffer.
func (b *LinkedBuffer[T]) Len() uint64 {
	writeCount := b.writeCount.Load()
	readCount := b.readCount.Load()

	if writeCount < readCount {
		// The read count was incremented before the write count
		return 0
	}

	return writeCount - readCount
}
