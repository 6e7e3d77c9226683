package memkit

// SizeInUse returns the number of bytes between the start of the arena and
// its cursor. This includes alignment padding and the unused tails of blocks
// the cursor has moved past.
func (a *Arena) SizeInUse() int {
	if a.cur == nil {
		return 0
	}
	sum := uintptr(0)
	for b := a.first; b != nil && b != a.cur; b = b.next {
		sum += b.used
	}
	return int(sum + a.off)
}

// NumBlocks returns the number of blocks currently held by the arena.
func (a *Arena) NumBlocks() int {
	n := 0
	for b := a.first; b != nil; b = b.next {
		n++
	}
	return n
}

// Capacity returns the total size in bytes of all blocks in the arena.
func (a *Arena) Capacity() int {
	sum := uintptr(0)
	for b := a.first; b != nil; b = b.next {
		sum += b.size
	}
	return int(sum)
}

// Utilization returns the ratio of bytes in use to total capacity (0.0 to 1.0).
// Returns 0.0 if the arena has no capacity.
func (a *Arena) Utilization() float64 {
	capacity := a.Capacity()
	if capacity == 0 {
		return 0
	}
	return float64(a.SizeInUse()) / float64(capacity)
}

// BlockSize returns the configured block size.
func (a *Arena) BlockSize() int {
	return int(a.blockSize)
}

// Reserved returns the bytes currently reserved by the arena, including
// caller-supplied initial memory.
func (a *Arena) Reserved() int {
	return int(a.reserved)
}

// Metrics returns a snapshot of arena statistics.
func (a *Arena) Metrics() ArenaMetrics {
	return ArenaMetrics{
		SizeInUse:   a.SizeInUse(),
		Capacity:    a.Capacity(),
		NumBlocks:   a.NumBlocks(),
		BlockSize:   a.BlockSize(),
		Reserved:    a.Reserved(),
		Utilization: a.Utilization(),
	}
}

// ArenaMetrics contains statistical information about an arena.
type ArenaMetrics struct {
	SizeInUse   int     // Bytes between arena start and cursor
	Capacity    int     // Total block capacity in bytes
	NumBlocks   int     // Number of blocks
	BlockSize   int     // Configured block size
	Reserved    int     // Bytes reserved, initial memory included
	Utilization float64 // Ratio of used to total capacity (0.0-1.0)
}
