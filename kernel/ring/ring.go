// Package ring provides a generic fixed-capacity circular buffer, the
// Go-native form of the original kernel's ring_buffer_t: a single flat array
// with head/tail indices and a count used to disambiguate the full-vs-empty
// case (the same array position means empty when count==0 and full when
// count==capacity). It backs the keyboard scancode queue and any other
// producer/consumer relationship that must never allocate after boot.
package ring

// Buffer is a fixed-capacity FIFO of T. The zero value is not usable; build
// one with New.
type Buffer[T any] struct {
	data       []T
	head, tail int
	count      int
}

// New creates a Buffer that can hold up to capacity elements.
func New[T any](capacity int) *Buffer[T] {
	return &Buffer[T]{data: make([]T, capacity)}
}

// Len returns the number of queued elements.
func (b *Buffer[T]) Len() int {
	return b.count
}

// Cap returns the buffer's fixed capacity.
func (b *Buffer[T]) Cap() int {
	return len(b.data)
}

// Full reports whether the buffer has no free slots.
func (b *Buffer[T]) Full() bool {
	return b.count == len(b.data)
}

// Empty reports whether the buffer holds no elements.
func (b *Buffer[T]) Empty() bool {
	return b.count == 0
}

// Push appends value at the tail. It returns false without modifying the
// buffer if it is full; callers that must never drop data (e.g. a keyboard
// ISR that cannot block) should check Full first and decide how to react.
func (b *Buffer[T]) Push(value T) bool {
	if b.Full() {
		return false
	}
	b.data[b.tail] = value
	b.tail = (b.tail + 1) % len(b.data)
	b.count++
	return true
}

// Pop removes and returns the head element. ok is false on an empty buffer.
func (b *Buffer[T]) Pop() (value T, ok bool) {
	if b.Empty() {
		return value, false
	}
	value = b.data[b.head]
	b.head = (b.head + 1) % len(b.data)
	b.count--
	return value, true
}
