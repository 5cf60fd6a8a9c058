package utils

// -----------------------------------------------------------------------------
// RingBuffer is a fixed-size circular buffer. True ring buffer - no resizing!
// It is not safe for concurrent use.
// -----------------------------------------------------------------------------

type RingBuffer[T any] struct {
	data     []T
	capacity int
	index    int // Next write position
	size     int // Current number of elements
}

// -----------------------------------------------------------------------------

// NewRingBuffer creates a new buffer with fixed capacity
func NewRingBuffer[T any](capacity int) *RingBuffer[T] {
	if capacity <= 0 {
		capacity = 1000 // Default reasonable size
	}
	return &RingBuffer[T]{
		data:     make([]T, capacity),
		capacity: capacity,
	}
}

// -----------------------------------------------------------------------------

// Append adds an item, overwriting the oldest once full.
func (rb *RingBuffer[T]) Append(item T) {
	rb.data[rb.index] = item
	rb.index = (rb.index + 1) % rb.capacity

	// Update size (never exceeds capacity)
	if rb.size < rb.capacity {
		rb.size++
	}
}

// -----------------------------------------------------------------------------

// GetLatest returns up to n items, newest first.
func (rb *RingBuffer[T]) GetLatest(n int) []T {
	if rb.size == 0 || n <= 0 {
		return []T{}
	}
	if n > rb.size {
		n = rb.size
	}

	result := make([]T, n)
	for i := 0; i < n; i++ {
		idx := (rb.index - 1 - i + rb.capacity) % rb.capacity
		result[i] = rb.data[idx]
	}
	return result
}

// -----------------------------------------------------------------------------

// GetAll returns all items in insertion order (oldest to newest)
func (rb *RingBuffer[T]) GetAll() []T {
	result := make([]T, rb.size)

	// Buffer full: oldest sits at the write position
	startIdx := 0
	if rb.size == rb.capacity {
		startIdx = rb.index
	}
	for i := 0; i < rb.size; i++ {
		result[i] = rb.data[(startIdx+i)%rb.capacity]
	}
	return result
}

// -----------------------------------------------------------------------------

// Retain keeps only the items for which keep returns true, preserving order.
func (rb *RingBuffer[T]) Retain(keep func(T) bool) int {
	all := rb.GetAll()
	rb.Clear()
	removed := 0
	for _, item := range all {
		if keep(item) {
			rb.Append(item)
		} else {
			removed++
		}
	}
	return removed
}

// -----------------------------------------------------------------------------

func (rb *RingBuffer[T]) Clear() {
	var zero T
	for i := range rb.data {
		rb.data[i] = zero
	}
	rb.index = 0
	rb.size = 0
}

// -----------------------------------------------------------------------------

func (rb *RingBuffer[T]) Len() int      { return rb.size }
func (rb *RingBuffer[T]) Capacity() int { return rb.capacity }
