package ring

// Buffer is a fixed-capacity circular buffer that evicts the oldest element
// once full. Iteration order is insertion order. The zero value is not
// usable; use New.
type Buffer[T any] struct {
	items []T
	head  int
	count int
}

// New creates a buffer with the given capacity. Capacities below 1 are
// raised to 1.
func New[T any](capacity int) *Buffer[T] {
	if capacity < 1 {
		capacity = 1
	}
	return &Buffer[T]{items: make([]T, capacity)}
}

// Push appends an element. When the buffer is full the oldest element is
// dropped.
func (b *Buffer[T]) Push(item T) {
	if b.count < len(b.items) {
		b.items[(b.head+b.count)%len(b.items)] = item
		b.count++
		return
	}
	b.items[b.head] = item
	b.head = (b.head + 1) % len(b.items)
}

// Len returns the number of retained elements.
func (b *Buffer[T]) Len() int { return b.count }

// Cap returns the fixed capacity.
func (b *Buffer[T]) Cap() int { return len(b.items) }

// At returns the i-th retained element in insertion order (0 = oldest).
// i must be in [0, Len()).
func (b *Buffer[T]) At(i int) T {
	return b.items[(b.head+i)%len(b.items)]
}

// Replace overwrites the i-th retained element in insertion order.
func (b *Buffer[T]) Replace(i int, item T) {
	b.items[(b.head+i)%len(b.items)] = item
}

// Values returns a copy of the retained elements in insertion order.
func (b *Buffer[T]) Values() []T {
	out := make([]T, b.count)
	for i := 0; i < b.count; i++ {
		out[i] = b.items[(b.head+i)%len(b.items)]
	}
	return out
}

// TrimTo drops the oldest elements until at most n remain. It returns the
// number of dropped elements.
func (b *Buffer[T]) TrimTo(n int) int {
	if n < 0 {
		n = 0
	}
	if b.count <= n {
		return 0
	}
	dropped := b.count - n
	b.head = (b.head + dropped) % len(b.items)
	b.count = n
	return dropped
}

// Filter removes elements for which keep returns false, preserving order.
// It returns the number of removed elements.
func (b *Buffer[T]) Filter(keep func(T) bool) int {
	kept := make([]T, 0, b.count)
	for i := 0; i < b.count; i++ {
		item := b.items[(b.head+i)%len(b.items)]
		if keep(item) {
			kept = append(kept, item)
		}
	}
	removed := b.count - len(kept)
	b.head = 0
	b.count = len(kept)
	copy(b.items, kept)
	return removed
}

// Clear drops all retained elements.
func (b *Buffer[T]) Clear() {
	var zero T
	for i := range b.items {
		b.items[i] = zero
	}
	b.head = 0
	b.count = 0
}
