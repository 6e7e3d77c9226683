package memkit

import (
	"fmt"
	"testing"
	"unsafe"
)

func TestNewArena(t *testing.T) {
	tests := []struct {
		name      string
		blockSize int
		expected  int
	}{
		{"default block size", 0, DefaultBlockSize},
		{"negative block size", -1, DefaultBlockSize},
		{"custom block size", 8192, 8192},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := NewArena(tt.blockSize)
			if a.BlockSize() != tt.expected {
				t.Errorf("NewArena(%d) block size = %d, want %d", tt.blockSize, a.BlockSize(), tt.expected)
			}
			if a.NumBlocks() != 0 {
				t.Errorf("NewArena(%d) blocks = %d, want 0 before first allocation", tt.blockSize, a.NumBlocks())
			}
		})
	}
}

func TestArenaInitZeroValue(t *testing.T) {
	var a Arena
	a.Init(nil, nil, 256, 8)
	p := a.Push(16, 8)
	if p == nil {
		t.Fatal("Push returned nil")
	}
	if a.NumBlocks() != 1 {
		t.Errorf("NumBlocks = %d, want 1", a.NumBlocks())
	}
}

func TestArenaUninitialized(t *testing.T) {
	var a Arena
	defer func() {
		if r := recover(); r == nil {
			t.Error("Expected panic on uninitialized Arena")
		}
	}()
	a.Push(8, 8)
}

func TestArenaAllocBytes(t *testing.T) {
	a := NewArena(1024)

	// Test normal allocation
	b1 := a.AllocBytes(100)
	if len(b1) != 100 {
		t.Errorf("AllocBytes(100) length = %d, want 100", len(b1))
	}

	// Test zero allocation
	b2 := a.AllocBytes(0)
	if b2 != nil {
		t.Errorf("AllocBytes(0) = %v, want nil", b2)
	}

	// Test negative allocation
	b3 := a.AllocBytes(-1)
	if b3 != nil {
		t.Errorf("AllocBytes(-1) = %v, want nil", b3)
	}

	// Test allocation that forces block growth
	b4 := a.AllocBytes(2000) // Larger than the block size
	if len(b4) != 2000 {
		t.Errorf("AllocBytes(2000) length = %d, want 2000", len(b4))
	}
	if a.NumBlocks() != 2 {
		t.Errorf("NumBlocks after large allocation = %d, want 2", a.NumBlocks())
	}
}

func TestArenaPushAlignment(t *testing.T) {
	aligns := []uintptr{1, 2, 4, 8, 16}
	sizes := []uintptr{0, 1, 7, 4096, 100000}

	a := NewArena(4096)
	defer a.Release()
	for _, align := range aligns {
		for _, size := range sizes {
			p := a.Push(size, align)
			if uintptr(p)%align != 0 {
				t.Errorf("Push(%d, %d) = %p, not aligned", size, align, p)
			}
		}
	}
}

func TestArenaPushInvalidAlignment(t *testing.T) {
	tests := []struct {
		name  string
		align uintptr
	}{
		{"zero", 0},
		{"not power of two", 3},
		{"exceeds block alignment", 32},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := NewArena(1024)
			defer func() {
				if r := recover(); r == nil {
					t.Errorf("Push(8, %d) did not panic", tt.align)
				}
			}()
			a.Push(8, tt.align)
		})
	}
}

func TestArenaBlockAlignmentMustBePowerOfTwo(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("Expected panic for block alignment 24")
		}
	}()
	NewArena(1024, WithBlockAlignment(24))
}

func TestArenaOversizedAllocationGetsOwnBlock(t *testing.T) {
	counting := NewCountingAllocator(nil)
	a := NewArena(64, WithBacking(counting))
	defer a.Release()

	a.Push(10000, 8)
	if a.NumBlocks() != 1 {
		t.Fatalf("NumBlocks = %d, want 1", a.NumBlocks())
	}
	if a.Capacity() != 10000 {
		t.Errorf("Capacity = %d, want 10000", a.Capacity())
	}
	if got := counting.Stats().Allocations; got != 1 {
		t.Errorf("backing allocations = %d, want 1", got)
	}
}

func TestArenaMarkReuse(t *testing.T) {
	for _, n := range []uintptr{16, 64, 1000} {
		t.Run(fmt.Sprintf("n=%d", n), func(t *testing.T) {
			counting := NewCountingAllocator(nil)
			a := NewArena(256, WithBacking(counting))
			defer a.Release()

			a.Push(200, 8)
			m := a.Mark()
			a.Push(n, 8)
			before := counting.Stats().Allocations

			a.SetMark(m)
			a.Push(n, 8)
			if got := counting.Stats().Allocations; got != before {
				t.Errorf("backing allocations after rewind = %d, want %d", got, before)
			}
		})
	}
}

func TestArenaEndToEnd(t *testing.T) {
	counting := NewCountingAllocator(nil)
	a := NewArena(64, WithBacking(counting), WithBlockAlignment(16))
	defer a.Release()

	p1 := a.Push(40, 1)
	m := a.Mark()
	p2 := a.Push(40, 1)
	if a.NumBlocks() != 2 {
		t.Fatalf("NumBlocks = %d, want 2 after second 40-byte push", a.NumBlocks())
	}
	if p1 == p2 {
		t.Fatal("second push returned the first pointer")
	}
	if got := counting.Stats().Allocations; got != 2 {
		t.Fatalf("backing allocations = %d, want 2", got)
	}

	a.SetMark(m)
	p3 := a.Push(40, 1)
	if p3 != p2 {
		t.Errorf("third push = %p, want reused block at %p", p3, p2)
	}
	if got := counting.Stats().Allocations; got != 2 {
		t.Errorf("backing allocations after reuse = %d, want 2", got)
	}
}

func TestArenaSetMarkZero(t *testing.T) {
	a := NewArena(128)
	m := a.Mark() // empty arena
	p1 := a.Push(32, 8)
	a.Push(32, 8)

	a.SetMark(m)
	if a.SizeInUse() != 0 {
		t.Errorf("SizeInUse after SetMark(zero) = %d, want 0", a.SizeInUse())
	}
	if p := a.Push(32, 8); p != p1 {
		t.Errorf("Push after SetMark(zero) = %p, want start of first block %p", p, p1)
	}
}

func TestArenaMarkSkipsSmallUnusedBlock(t *testing.T) {
	counting := NewCountingAllocator(nil)
	a := NewArena(64, WithBacking(counting))
	defer a.Release()

	a.Push(60, 1)
	m := a.Mark()
	a.Push(60, 1) // second 64-byte block
	a.SetMark(m)

	a.Push(500, 1) // does not fit the unused 64-byte block
	if got := counting.Stats().Allocations; got != 3 {
		t.Errorf("backing allocations = %d, want 3", got)
	}
	if a.NumBlocks() != 3 {
		t.Errorf("NumBlocks = %d, want 3", a.NumBlocks())
	}

	// The big block was inserted before the small one, which stays reusable
	a.Push(60, 1)
	if got := counting.Stats().Allocations; got != 3 {
		t.Errorf("backing allocations after reuse = %d, want 3", got)
	}
}

func TestArenaEnsureCapacity(t *testing.T) {
	a := NewArena(1024)
	a.Push(1, 1)
	initialBlocks := a.NumBlocks()

	// Ensure capacity within current block
	a.EnsureCapacity(100)
	if a.NumBlocks() != initialBlocks {
		t.Errorf("EnsureCapacity(100) changed block count")
	}

	// Ensure capacity that requires new block
	a.EnsureCapacity(2000)
	if a.NumBlocks() != initialBlocks+1 {
		t.Errorf("EnsureCapacity(2000) blocks = %d, want %d", a.NumBlocks(), initialBlocks+1)
	}
	a.Push(2000, 1)
	if a.NumBlocks() != initialBlocks+1 {
		t.Errorf("Push after EnsureCapacity grew the arena")
	}
}

func TestArenaReset(t *testing.T) {
	counting := NewCountingAllocator(nil)
	a := NewArena(1024, WithBacking(counting))

	// Allocate some data
	a.AllocBytes(100)
	a.AllocBytes(2000)
	a.AllocBytes(1000)

	if a.SizeInUse() == 0 {
		t.Error("Expected non-zero size in use after allocations")
	}

	// Reset and check
	a.Reset()
	if a.SizeInUse() != 0 {
		t.Errorf("SizeInUse after Reset() = %d, want 0", a.SizeInUse())
	}
	if a.NumBlocks() != 1 {
		t.Errorf("NumBlocks after Reset() = %d, want 1", a.NumBlocks())
	}
	if got := counting.Stats().Frees; got != 2 {
		t.Errorf("frees after Reset() = %d, want 2", got)
	}
}

func TestArenaResetDropsOversizedFirstBlock(t *testing.T) {
	a := NewArena(64)
	a.Push(1000, 8)
	a.Reset()
	if a.NumBlocks() != 0 {
		t.Errorf("NumBlocks after Reset() = %d, want 0", a.NumBlocks())
	}
	a.Push(8, 8)
	if a.Capacity() != 64 {
		t.Errorf("Capacity = %d, want 64", a.Capacity())
	}
}

func TestArenaInitialBlock(t *testing.T) {
	counting := NewCountingAllocator(nil)
	buf := make([]byte, 256)
	a := NewStackArena(buf, WithBacking(counting))

	p := a.Push(64, 8)
	start := uintptr(unsafe.Pointer(&buf[0]))
	if uintptr(p) < start || uintptr(p) >= start+256 {
		t.Errorf("Push did not use the initial block")
	}
	if got := counting.Stats().Allocations; got != 0 {
		t.Errorf("backing allocations = %d, want 0", got)
	}

	a.Push(1000, 8)
	if got := counting.Stats().Allocations; got != 1 {
		t.Errorf("backing allocations = %d, want 1", got)
	}

	a.Reset()
	if a.NumBlocks() != 1 {
		t.Errorf("NumBlocks after Reset() = %d, want 1 (initial block kept)", a.NumBlocks())
	}

	a.Release()
	if got := counting.Stats().Frees; got != 1 {
		t.Errorf("frees = %d, want 1 (initial block is not owned)", got)
	}
}

func TestArenaRealloc(t *testing.T) {
	a := NewArena(1024)
	p := Allocate(a, 4, 4)
	copy(unsafe.Slice((*byte)(p), 4), "abcd")

	q := Reallocate(a, p, 4, 8, 4)
	if got := string(unsafe.Slice((*byte)(q), 4)); got != "abcd" {
		t.Errorf("Reallocate contents = %q, want %q", got, "abcd")
	}
	if r := a.Realloc(q, 8, 0, 1); r != nil {
		t.Errorf("Realloc(size 0) = %p, want nil", r)
	}
}

func TestArenaScrub(t *testing.T) {
	a := NewArena(128, WithScrub(true))
	b := a.AllocBytes(16)
	m := a.Mark()
	c := a.AllocBytes(16)
	for i := range c {
		c[i] = 1
	}

	a.SetMark(m)
	for i, v := range c {
		if v != ScrubByte {
			t.Fatalf("byte %d after SetMark = %#x, want %#x", i, v, ScrubByte)
		}
	}

	a.Reset()
	for i, v := range b {
		if v != ScrubByte {
			t.Fatalf("byte %d after Reset = %#x, want %#x", i, v, ScrubByte)
		}
	}
}

func TestArenaRelease(t *testing.T) {
	a := NewArena(1024)
	a.AllocBytes(100)

	a.Release()

	if a.first != nil {
		t.Error("Expected blocks to be nil after Release()")
	}

	// Multiple releases should be safe
	a.Release()

	// Test panic on use after release
	defer func() {
		if r := recover(); r == nil {
			t.Error("Expected panic on use after Release()")
		}
	}()
	a.AllocBytes(100)
}

func TestAlignUp(t *testing.T) {
	tests := []struct {
		input    uintptr
		align    uintptr
		expected uintptr
	}{
		{0, 8, 0},
		{1, 8, 8},
		{8, 8, 8},
		{30, 16, 32},
		{33, 1, 33},
	}

	for _, tt := range tests {
		result := alignUp(tt.input, tt.align)
		if result != tt.expected {
			t.Errorf("alignUp(%d, %d) = %d, want %d", tt.input, tt.align, result, tt.expected)
		}
	}
}

func BenchmarkArenaAllocBytes(b *testing.B) {
	a := NewArena(1024 * 1024) // 1MB blocks
	sizes := []int{8, 64, 256, 1024}

	for _, size := range sizes {
		b.Run(fmt.Sprintf("size-%d", size), func(b *testing.B) {
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				a.AllocBytes(size)
				if i%1000 == 999 { // Reset periodically to avoid growing too much
					a.Reset()
				}
			}
		})
	}
}

func BenchmarkArenaMark(b *testing.B) {
	a := NewArena(64 * 1024)
	m := a.Mark()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for j := 0; j < 100; j++ {
			a.Push(64, 8)
		}
		a.SetMark(m)
	}
}
