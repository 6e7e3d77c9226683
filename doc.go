// Package memkit implements a block-chained memory arena and the allocator
// capability that the containers in this module are built on.
//
// # Overview
//
// Every container (array.Array, hashmap.Map, hashmap.Set, str.Builder)
// takes an Allocator. Heap is the default; an *Arena is an Allocator too,
// so a caller can put everything for one unit of work in a single arena and
// drop it all at once:
//
//	a := memkit.NewArena(0) // DefaultBlockSize
//	defer a.Release()
//
//	names := array.New[int](a, 0)
//	seen := hashmap.NewSet[int](a)
//
// # Marks
//
// Mark and SetMark checkpoint and rewind the cursor. Rewinding frees
// everything allocated since the mark but keeps the blocks, so the next
// allocations reuse them without asking the backing allocator:
//
//	m := a.Mark()
//	tmp := memkit.MakeSlice[byte](a, 1<<20)
//	// ...
//	a.SetMark(m)
//
// # Memory Layout
//
// The arena allocates blocks of at least the configured block size from its
// backing allocator. A single allocation larger than the block size gets a
// block of its own. Block bases are aligned to the block alignment
// (16 by default), which bounds the alignment of every allocation.
//
// # Important Notes
//
//   - Not goroutine-safe. Use one arena per goroutine, or SafeArena.
//   - Allocated memory is only valid until Release, Reset or a SetMark that
//     rewinds past it.
//   - Memory is not zeroed unless using Alloc or MakeSliceZeroed.
//   - Arena memory is not scanned by the garbage collector. Values stored in
//     it must not be the only reference to Go heap memory.
//   - Contract violations (bad alignment, use after Release) panic.
//
// # Metrics and Monitoring
//
//	m := a.Metrics()
//	fmt.Printf("Utilization: %.2f%%\n", m.Utilization*100)
//	fmt.Printf("Memory in use: %d bytes\n", m.SizeInUse)
//	fmt.Printf("Total capacity: %d bytes\n", m.Capacity)
//
// The telemetry package exports the same numbers to Prometheus, and the
// config package builds arenas from a TOML file.
package memkit
