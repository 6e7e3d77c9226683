package memkit

import (
	"sync"
	"unsafe"
)

// SafeArena is a mutex-protected wrapper around Arena. Arena itself does no
// locking; SafeArena is the external lock for an arena shared between
// goroutines. Containers built on a SafeArena still need their own locking.
type SafeArena struct {
	mu sync.Mutex
	a  *Arena
}

// NewSafeArena creates a new thread-safe arena with the specified block size.
// If blockSize <= 0, DefaultBlockSize is used.
func NewSafeArena(blockSize int, opts ...Option) *SafeArena {
	return &SafeArena{a: NewArena(blockSize, opts...)}
}

// Realloc implements Allocator.
func (s *SafeArena) Realloc(ptr unsafe.Pointer, oldSize, size, align uintptr) unsafe.Pointer {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.a.Realloc(ptr, oldSize, size, align)
}

// AllocBytes thread-safely allocates n bytes and returns a slice pointing to them.
// Returns nil if n <= 0.
func (s *SafeArena) AllocBytes(n int) []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.a.AllocBytes(n)
}

// EnsureCapacity thread-safely makes room for n more bytes.
func (s *SafeArena) EnsureCapacity(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.a.EnsureCapacity(n)
}

// Mark thread-safely returns a checkpoint of the cursor.
func (s *SafeArena) Mark() Mark {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.a.Mark()
}

// SetMark thread-safely rewinds to m.
func (s *SafeArena) SetMark(m Mark) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.a.SetMark(m)
}

// Reset thread-safely resets the arena for reuse.
func (s *SafeArena) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.a.Reset()
}

// Release thread-safely drops all blocks and makes the arena unusable.
func (s *SafeArena) Release() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.a.Release()
}

// Metrics thread-safely returns a snapshot of arena statistics.
func (s *SafeArena) Metrics() ArenaMetrics {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.a.Metrics()
}
