package memkit

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeapRealloc(t *testing.T) {
	for _, align := range []uintptr{1, 2, 4, 8, 16, 64} {
		p := Allocate(Heap, 24, align)
		require.NotNil(t, p)
		assert.Zero(t, uintptr(p)%align, "align %d", align)
	}

	p := Allocate(Heap, 5, 1)
	copy(unsafe.Slice((*byte)(p), 5), "hello")

	grown := Reallocate(Heap, p, 5, 64, 8)
	assert.Equal(t, "hello", string(unsafe.Slice((*byte)(grown), 5)))

	shrunk := Reallocate(Heap, grown, 64, 2, 8)
	assert.Equal(t, "he", string(unsafe.Slice((*byte)(shrunk), 2)))

	assert.Nil(t, Heap.Realloc(shrunk, 2, 0, 1))
}

func TestHeapBadAlignment(t *testing.T) {
	assert.Panics(t, func() { Allocate(Heap, 8, 0) })
	assert.Panics(t, func() { Allocate(Heap, 8, 12) })
}

func TestOrHeap(t *testing.T) {
	assert.Equal(t, Allocator(Heap), OrHeap(nil))

	a := NewArena(64)
	assert.Same(t, a, OrHeap(a))
}

func TestCountingAllocator(t *testing.T) {
	c := NewCountingAllocator(nil)

	p := Allocate(c, 16, 8)
	p = Reallocate(c, p, 16, 48, 8)
	q := Allocate(c, 8, 8)
	Deallocate(c, p, 48)
	Deallocate(c, nil, 100)

	s := c.Stats()
	assert.Equal(t, uint64(2), s.Allocations)
	assert.Equal(t, uint64(1), s.Resizes)
	assert.Equal(t, uint64(1), s.Frees)
	assert.Equal(t, int64(8), s.LiveBytes)

	Deallocate(c, q, 8)
	assert.Zero(t, c.Stats().LiveBytes)
}

func TestCountingAllocatorOverArena(t *testing.T) {
	backing := NewCountingAllocator(nil)
	a := NewArena(1024, WithBacking(backing))
	front := NewCountingAllocator(a)

	for i := 0; i < 10; i++ {
		Allocate(front, 64, 8)
	}
	assert.Equal(t, uint64(10), front.Stats().Allocations)
	assert.Equal(t, uint64(1), backing.Stats().Allocations)

	a.Release()
	assert.Equal(t, uint64(1), backing.Stats().Frees)
	assert.Zero(t, backing.Stats().LiveBytes)
}
