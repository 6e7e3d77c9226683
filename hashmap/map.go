// Package hashmap provides open-addressing hash maps and sets whose slots
// live in memory obtained from a memkit.Allocator.
//
// Tables use linear probing over a power-of-two slot array and grow to twice
// their size (at least 8) before an insert would push the load past 70%.
// A slot is empty when its stored hash is zero; stored hashes always have
// the top bit set. Removal repairs the probe run with backward shifting, so
// there are no tombstones.
//
// Pointers returned by Add and GetPtr are invalidated by any later Add or
// Remove on the same table.
package hashmap

import (
	"fmt"
	"iter"

	"github.com/rs/zerolog"

	"github.com/pavanmanishd/memkit"
	"github.com/pavanmanishd/memkit/hashing"
)

const (
	minCapacity = 8
	maxLoad     = 70 // percent
)

type slot[K, V any] struct {
	hash uint32 // 0 when empty
	key  K
	val  V
}

// Map is an open-addressing hash map from K to V. The zero Map must be
// initialized with Init before use.
type Map[K, V any] struct {
	slots  []slot[K, V]
	count  int
	hasher hashing.Hasher[K]
	alloc  memkit.Allocator
	log    zerolog.Logger
	scrub  bool
}

// New returns an initialized Map allocating from a (Heap when nil).
func New[K, V any](a memkit.Allocator, opts ...Option[K]) *Map[K, V] {
	m := new(Map[K, V])
	m.Init(a, opts...)
	return m
}

// Init sets up m to allocate from a. The hasher defaults to hashing.For[K],
// which panics if K is not hashable. Previous storage is abandoned.
func (m *Map[K, V]) Init(a memkit.Allocator, opts ...Option[K]) {
	o := buildOptions(opts)
	*m = Map[K, V]{
		hasher: o.hasher,
		alloc:  memkit.OrHeap(a),
		log:    o.log,
	}
	if _, heap := m.alloc.(memkit.HeapAllocator); !heap {
		m.scrub = o.scrub
	}
}

// Len returns the number of entries.
func (m *Map[K, V]) Len() int { return m.count }

// Cap returns the number of slots.
func (m *Map[K, V]) Cap() int { return len(m.slots) }

// Add returns a pointer to the value for k, inserting a zero value first if
// k is absent. The boolean reports whether k was inserted.
func (m *Map[K, V]) Add(k K) (*V, bool) {
	m.mustInit()
	h := hashing.Tag(m.hasher.Hash(k))
	if i, ok := m.find(k, h); ok {
		return &m.slots[i].val, false
	}
	if 100*(m.count+1) > maxLoad*len(m.slots) {
		m.grow()
	}
	s := &m.slots[m.place(h)]
	*s = slot[K, V]{hash: h, key: k}
	m.count++
	return &s.val, true
}

// Set stores v under k.
func (m *Map[K, V]) Set(k K, v V) {
	p, _ := m.Add(k)
	*p = v
}

// Get returns the value stored under k.
func (m *Map[K, V]) Get(k K) (V, bool) {
	if p := m.GetPtr(k); p != nil {
		return *p, true
	}
	var zero V
	return zero, false
}

// GetPtr returns a pointer to the value stored under k, or nil.
func (m *Map[K, V]) GetPtr(k K) *V {
	m.mustInit()
	if m.count == 0 {
		return nil
	}
	if i, ok := m.find(k, hashing.Tag(m.hasher.Hash(k))); ok {
		return &m.slots[i].val
	}
	return nil
}

// Has reports whether k is present.
func (m *Map[K, V]) Has(k K) bool {
	return m.GetPtr(k) != nil
}

// Remove deletes k and reports whether it was present.
func (m *Map[K, V]) Remove(k K) bool {
	m.mustInit()
	if m.count == 0 {
		return false
	}
	i, ok := m.find(k, hashing.Tag(m.hasher.Hash(k)))
	if !ok {
		return false
	}
	m.vacate(i)
	m.count--

	// Re-place every entry of the run after i so that no key sits behind
	// the hole it probed past.
	mask := uint32(len(m.slots) - 1)
	for j := (uint32(i) + 1) & mask; m.slots[j].hash != 0; j = (j + 1) & mask {
		e := m.slots[j]
		m.vacate(int(j))
		m.slots[m.place(e.hash)] = e
	}
	return true
}

// All iterates over the entries in slot order.
func (m *Map[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for i := range m.slots {
			s := &m.slots[i]
			if s.hash != 0 && !yield(s.key, s.val) {
				return
			}
		}
	}
}

// Clear removes every entry and keeps the slots.
func (m *Map[K, V]) Clear() {
	if m.scrub {
		memkit.ScrubSlice(m.slots)
		for i := range m.slots {
			m.slots[i].hash = 0
		}
	} else {
		clear(m.slots)
	}
	m.count = 0
}

// Deinit returns the slots to the allocator. The map must be initialized
// again before reuse.
func (m *Map[K, V]) Deinit() {
	if m.alloc != nil {
		if m.scrub {
			memkit.ScrubSlice(m.slots)
		}
		memkit.FreeSlice(m.alloc, m.slots)
	}
	*m = Map[K, V]{}
}

// find probes for k under the tagged hash h.
func (m *Map[K, V]) find(k K, h uint32) (int, bool) {
	if len(m.slots) == 0 {
		return 0, false
	}
	mask := uint32(len(m.slots) - 1)
	for i := h & mask; ; i = (i + 1) & mask {
		s := &m.slots[i]
		if s.hash == 0 {
			return int(i), false
		}
		if s.hash == h && m.hasher.Equal(s.key, k) {
			return int(i), true
		}
	}
}

// place returns the first empty slot on the probe path of h.
func (m *Map[K, V]) place(h uint32) int {
	mask := uint32(len(m.slots) - 1)
	i := h & mask
	for m.slots[i].hash != 0 {
		i = (i + 1) & mask
	}
	return int(i)
}

// vacate empties slot i.
func (m *Map[K, V]) vacate(i int) {
	if m.scrub {
		memkit.ScrubSlice(m.slots[i : i+1])
		m.slots[i].hash = 0
		return
	}
	m.slots[i] = slot[K, V]{}
}

func (m *Map[K, V]) grow() {
	old := m.slots
	n := max(minCapacity, 2*len(old))
	m.slots = memkit.MakeSliceZeroed[slot[K, V]](m.alloc, n)
	for i := range old {
		if old[i].hash != 0 {
			m.slots[m.place(old[i].hash)] = old[i]
		}
	}
	if m.scrub {
		memkit.ScrubSlice(old)
	}
	memkit.FreeSlice(m.alloc, old)

	m.log.Trace().
		Int("from", len(old)).
		Int("to", n).
		Int("count", m.count).
		Msg("hashmap: grew table")
}

func (m *Map[K, V]) mustInit() {
	if m.alloc == nil {
		panic("hashmap: use of uninitialized Map")
	}
}

// checkInvariants returns an error describing the first broken table
// invariant, or nil.
func (m *Map[K, V]) checkInvariants() error {
	n := len(m.slots)
	if n != 0 && (n < minCapacity || n&(n-1) != 0) {
		return fmt.Errorf("capacity %d is not a power of two >= %d", n, minCapacity)
	}
	if 100*m.count > maxLoad*n {
		return fmt.Errorf("load %d/%d exceeds %d%%", m.count, n, maxLoad)
	}
	occupied := 0
	for i := range m.slots {
		s := &m.slots[i]
		if s.hash == 0 {
			continue
		}
		occupied++
		if s.hash&(1<<31) == 0 {
			return fmt.Errorf("slot %d: hash %#x is not tagged", i, s.hash)
		}
		if want := hashing.Tag(m.hasher.Hash(s.key)); s.hash != want {
			return fmt.Errorf("slot %d: stored hash %#x, key hashes to %#x", i, s.hash, want)
		}
		if j, ok := m.find(s.key, s.hash); !ok || j != i {
			return fmt.Errorf("slot %d: key not reachable by probing (found %d, %v)", i, j, ok)
		}
	}
	if occupied != m.count {
		return fmt.Errorf("count %d, occupied slots %d", m.count, occupied)
	}
	return nil
}
