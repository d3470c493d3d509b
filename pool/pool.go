// Package pool recycles short-lived values such as bullets and particles.
package pool

// Pool hands out values from a FIFO free list, calling New when the list is
// empty. It is not safe for concurrent use.
type Pool[T any] struct {
	New   func() T
	Reset func(T)

	free []T
}

// New builds a pool and pre-fills it with initial values.
func New[T any](newFn func() T, reset func(T), initial int) *Pool[T] {
	p := &Pool[T]{New: newFn, Reset: reset}
	if newFn != nil && initial > 0 {
		p.free = make([]T, 0, initial)
		for range initial {
			p.free = append(p.free, newFn())
		}
	}
	return p
}

// Obtain returns the oldest freed value or a new one.
func (p *Pool[T]) Obtain() T {
	if len(p.free) > 0 {
		v := p.free[0]
		var zero T
		p.free[0] = zero
		p.free = p.free[1:]
		return v
	}
	if p.New == nil {
		var zero T
		return zero
	}
	return p.New()
}

// Free resets v and returns it to the pool.
func (p *Pool[T]) Free(v T) {
	if p.Reset != nil {
		p.Reset(v)
	}
	p.free = append(p.free, v)
}

func (p *Pool[T]) FreeAll(values []T) {
	for _, v := range values {
		p.Free(v)
	}
}

// Clear drops every pooled value.
func (p *Pool[T]) Clear() {
	clear(p.free)
	p.free = p.free[:0]
}

// Size is the number of values waiting to be obtained.
func (p *Pool[T]) Size() int {
	return len(p.free)
}
