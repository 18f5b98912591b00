// Package history provides the bounded frame history used for playback.
package history

// Ring is a fixed-capacity FIFO. Pushing onto a full ring evicts the oldest
// element. Index 0 is always the oldest retained element.
type Ring[T any] struct {
	buf   []T
	start int
	n     int
}

// New returns a ring holding at most capacity elements. It panics if
// capacity < 1.
func New[T any](capacity int) *Ring[T] {
	if capacity < 1 {
		panic("history: capacity must be positive")
	}
	return &Ring[T]{buf: make([]T, capacity)}
}

// Push appends v and reports whether an element was evicted.
func (r *Ring[T]) Push(v T) (evicted bool) {
	if r.n == len(r.buf) {
		var zero T
		r.buf[r.start] = zero
		r.start = (r.start + 1) % len(r.buf)
		r.n--
		evicted = true
	}
	r.buf[(r.start+r.n)%len(r.buf)] = v
	r.n++
	return evicted
}

// At returns the i-th oldest element. It panics if i is out of range.
func (r *Ring[T]) At(i int) T {
	if i < 0 || i >= r.n {
		panic("history: index out of range")
	}
	return r.buf[(r.start+i)%len(r.buf)]
}

// Len returns the number of retained elements.
func (r *Ring[T]) Len() int { return r.n }

// Cap returns the capacity.
func (r *Ring[T]) Cap() int { return len(r.buf) }

// Last returns the index of the newest element, or -1 when empty.
func (r *Ring[T]) Last() int { return r.n - 1 }
