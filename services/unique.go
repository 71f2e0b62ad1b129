// services/unique.go
package services

import (
	"fmt"
)

// UniqueSet collects distinct values drawn from a generator. Its lifetime is
// the uniqueness scope: one per run for global keys, one per parent for keys
// that only need to be distinct within that parent.
type UniqueSet[T comparable] struct {
	seen        map[T]struct{}
	items       []T
	maxAttempts int
}

func NewUniqueSet[T comparable](maxAttempts int) *UniqueSet[T] {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	return &UniqueSet[T]{seen: make(map[T]struct{}), maxAttempts: maxAttempts}
}

// Draw calls gen until it yields a value not yet in the set and adds it.
// It gives up with ErrCandidateSpaceExhausted after maxAttempts duplicates.
func (u *UniqueSet[T]) Draw(gen func() T) (T, error) {
	for i := 0; i < u.maxAttempts; i++ {
		v := gen()
		if u.Add(v) {
			return v, nil
		}
	}
	var zero T
	return zero, fmt.Errorf("%w after %d attempts (%d distinct values drawn)", ErrCandidateSpaceExhausted, u.maxAttempts, len(u.items))
}

// Add inserts v and reports whether it was new.
func (u *UniqueSet[T]) Add(v T) bool {
	if _, ok := u.seen[v]; ok {
		return false
	}
	u.seen[v] = struct{}{}
	u.items = append(u.items, v)
	return true
}

func (u *UniqueSet[T]) Contains(v T) bool {
	_, ok := u.seen[v]
	return ok
}

func (u *UniqueSet[T]) Len() int { return len(u.items) }

// Items returns the values in insertion order.
func (u *UniqueSet[T]) Items() []T { return u.items }
