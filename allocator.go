package memkit

import (
	"sync/atomic"
	"unsafe"
)

// Allocator is the single capability every container in this module is
// built on.
//
// Realloc with size > 0 returns a region of at least size bytes aligned to
// align. When ptr is non-nil its first min(oldSize, size) bytes are carried
// over into the returned region. Realloc with size == 0 releases ptr (of
// oldSize bytes) and returns nil.
//
// Allocator memory is untyped and not scanned by the garbage collector:
// values stored in it must not be the only reference to Go heap memory.
type Allocator interface {
	Realloc(ptr unsafe.Pointer, oldSize, size, align uintptr) unsafe.Pointer
}

// Allocate returns size uninitialized bytes aligned to align. A nil a means
// Heap, here and in every helper below.
func Allocate(a Allocator, size, align uintptr) unsafe.Pointer {
	return OrHeap(a).Realloc(nil, 0, size, align)
}

// Reallocate grows or shrinks ptr, preserving min(oldSize, size) bytes.
func Reallocate(a Allocator, ptr unsafe.Pointer, oldSize, size, align uintptr) unsafe.Pointer {
	return OrHeap(a).Realloc(ptr, oldSize, size, align)
}

// Deallocate releases ptr, which must have been obtained from a with the
// given size. A nil ptr is ignored.
func Deallocate(a Allocator, ptr unsafe.Pointer, size uintptr) {
	if ptr == nil {
		return
	}
	OrHeap(a).Realloc(ptr, size, 0, 1)
}

// OrHeap returns a, or Heap when a is nil.
func OrHeap(a Allocator) Allocator {
	if a == nil {
		return Heap
	}
	return a
}

// HeapAllocator allocates from the Go heap. Freed regions are left to the
// garbage collector.
type HeapAllocator struct{}

// Heap is the default allocator.
var Heap HeapAllocator

// Realloc implements Allocator.
func (HeapAllocator) Realloc(ptr unsafe.Pointer, oldSize, size, align uintptr) unsafe.Pointer {
	checkAlign(align)
	if size == 0 {
		return nil
	}

	// Over-allocate so that an aligned start always exists and a pointer
	// one past the region stays inside the same object.
	buf := make([]byte, size+align)
	base := uintptr(unsafe.Pointer(unsafe.SliceData(buf)))
	off := alignUp(base, align) - base
	p := unsafe.Pointer(&buf[off])

	if ptr != nil && oldSize > 0 {
		copyBytes(p, ptr, min(oldSize, size))
	}
	return p
}

// AllocatorStats is a snapshot of a CountingAllocator.
type AllocatorStats struct {
	Allocations uint64 // Realloc calls with a nil ptr
	Resizes     uint64 // Realloc calls moving an existing region
	Frees       uint64 // Realloc calls with size == 0
	LiveBytes   int64  // Bytes handed out and not yet released
}

// CountingAllocator wraps another Allocator and counts the calls made
// through it. Counters are atomic so a metrics scrape may read them from
// another goroutine.
type CountingAllocator struct {
	inner       Allocator
	allocations atomic.Uint64
	resizes     atomic.Uint64
	frees       atomic.Uint64
	live        atomic.Int64
}

// NewCountingAllocator wraps inner (Heap when nil).
func NewCountingAllocator(inner Allocator) *CountingAllocator {
	return &CountingAllocator{inner: OrHeap(inner)}
}

// Realloc implements Allocator.
func (c *CountingAllocator) Realloc(ptr unsafe.Pointer, oldSize, size, align uintptr) unsafe.Pointer {
	switch {
	case size == 0:
		if ptr != nil {
			c.frees.Add(1)
			c.live.Add(-int64(oldSize))
		}
	case ptr == nil:
		c.allocations.Add(1)
		c.live.Add(int64(size))
	default:
		c.resizes.Add(1)
		c.live.Add(int64(size) - int64(oldSize))
	}
	return c.inner.Realloc(ptr, oldSize, size, align)
}

// Stats returns the current counters.
func (c *CountingAllocator) Stats() AllocatorStats {
	return AllocatorStats{
		Allocations: c.allocations.Load(),
		Resizes:     c.resizes.Load(),
		Frees:       c.frees.Load(),
		LiveBytes:   c.live.Load(),
	}
}

func checkAlign(align uintptr) {
	if align == 0 || align&(align-1) != 0 {
		panic("memkit: alignment must be a power of two")
	}
}

// alignUp rounds x up to a multiple of align, which must be a power of two.
func alignUp(x, align uintptr) uintptr {
	return (x + align - 1) &^ (align - 1)
}

func copyBytes(dst, src unsafe.Pointer, n uintptr) {
	if n == 0 {
		return
	}
	copy(unsafe.Slice((*byte)(dst), n), unsafe.Slice((*byte)(src), n))
}
