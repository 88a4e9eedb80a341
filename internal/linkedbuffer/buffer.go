package linkedbuffer

// buffer is a fixed-capacity chunk with an independent read position.
// It is not thread-safe; LinkedBuffer guards it with its own mutex.
type buffer[T any] struct {
	data      []T
	readIndex int
	next      *buffer[T]
}

func newBuffer[T any](capacity int) *buffer[T] {
	return &buffer[T]{
		data: make([]T, 0, capacity),
	}
}

// Cap returns the capacity of the buffer.
func (b *buffer[T]) Cap() int {
	return cap(b.data)
}

func (b *buffer[T]) full() bool {
	return len(b.data) == cap(b.data)
}

// write appends a value to the buffer. The caller must ensure it is not full.
func (b *buffer[T]) write(value T) {
	b.data = append(b.data, value)
}

// read copies unread values into the given slice and returns the number of
// elements read. It returns 0 when the buffer has been read completely.
func (b *buffer[T]) read(values []T) int {
	n := copy(values, b.data[b.readIndex:])
	b.readIndex += n
	return n
}
