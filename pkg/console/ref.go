package console

import "sync"

// Ref is a mutable cell shared between goroutines. The push merge path reads
// the selected conversation through a Ref so it always sees the current
// selection instead of the value captured when the loop started.
type Ref[T any] struct {
	mu sync.RWMutex
	v  T
}

func NewRef[T any](v T) *Ref[T] {
	return &Ref[T]{v: v}
}

func (r *Ref[T]) Get() T {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.v
}

func (r *Ref[T]) Set(v T) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.v = v
}
