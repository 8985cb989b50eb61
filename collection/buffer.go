package collection

// Buffer is a growable array for per-frame transient lists. Clear keeps the
// backing storage so steady-state frames do not allocate.
type Buffer[T any] struct {
	data []T
	n    int
}

// NewBuffer creates a buffer with room for size elements.
func NewBuffer[T any](size int) *Buffer[T] {
	return &Buffer[T]{data: make([]T, max(size, 0))}
}

// Clear resets the logical length to zero and retains capacity.
func (b *Buffer[T]) Clear() {
	if b == nil {
		return
	}
	b.n = 0
}

// Append adds v, doubling the capacity (minimum 1) when full.
func (b *Buffer[T]) Append(v T) {
	if b.n >= len(b.data) {
		grown := make([]T, max(2*len(b.data), 1))
		copy(grown, b.data[:b.n])
		b.data = grown
	}
	b.data[b.n] = v
	b.n++
}

// At returns a pointer to element i. The pointer is invalidated by the next
// Append that grows the buffer.
func (b *Buffer[T]) At(i int) *T {
	if i < 0 || i >= b.n {
		panic("collection: buffer index out of range")
	}
	return &b.data[i]
}

// Last returns a pointer to the final element, or nil when empty.
func (b *Buffer[T]) Last() *T {
	if b == nil || b.n == 0 {
		return nil
	}
	return &b.data[b.n-1]
}

// Len returns the logical length.
func (b *Buffer[T]) Len() int {
	if b == nil {
		return 0
	}
	return b.n
}

// Cap returns the allocated capacity.
func (b *Buffer[T]) Cap() int {
	if b == nil {
		return 0
	}
	return len(b.data)
}

// Slice returns the live elements.
func (b *Buffer[T]) Slice() []T {
	if b == nil {
		return nil
	}
	return b.data[:b.n]
}
