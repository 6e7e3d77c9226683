package hashmap

import (
	"iter"

	"github.com/pavanmanishd/memkit"
)

// Set is an open-addressing hash set. It is a Map without values and shares
// its probing, growth and removal.
type Set[K any] struct {
	m Map[K, struct{}]
}

// NewSet returns an initialized Set allocating from a (Heap when nil).
func NewSet[K any](a memkit.Allocator, opts ...Option[K]) *Set[K] {
	s := new(Set[K])
	s.Init(a, opts...)
	return s
}

// Init sets up s to allocate from a.
func (s *Set[K]) Init(a memkit.Allocator, opts ...Option[K]) {
	s.m.Init(a, opts...)
}

// Add inserts k and reports whether it was absent.
func (s *Set[K]) Add(k K) bool {
	_, added := s.m.Add(k)
	return added
}

// Has reports whether k is present.
func (s *Set[K]) Has(k K) bool { return s.m.Has(k) }

// Remove deletes k and reports whether it was present.
func (s *Set[K]) Remove(k K) bool { return s.m.Remove(k) }

// Len returns the number of keys.
func (s *Set[K]) Len() int { return s.m.Len() }

// Cap returns the number of slots.
func (s *Set[K]) Cap() int { return s.m.Cap() }

// All iterates over the keys in slot order.
func (s *Set[K]) All() iter.Seq[K] {
	return func(yield func(K) bool) {
		for k := range s.m.All() {
			if !yield(k) {
				return
			}
		}
	}
}

// Clear removes every key and keeps the slots.
func (s *Set[K]) Clear() { s.m.Clear() }

// Deinit returns the slots to the allocator.
func (s *Set[K]) Deinit() { s.m.Deinit() }
