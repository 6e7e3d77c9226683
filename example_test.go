package memkit

import (
	"fmt"
	"sync"
	"unsafe"
)

// Example demonstrates basic arena usage
func Example() {
	// Create a new arena with the default block size
	a := NewArena(0)
	defer a.Release() // Always clean up

	// Allocate raw bytes
	buf := a.AllocBytes(1024)
	fmt.Printf("Allocated buffer of size: %d\n", len(buf))

	// Allocate a typed value
	ptr := New(a, 42)
	fmt.Printf("Allocated int with value: %d\n", *ptr)

	// Allocate a slice
	slice := MakeSlice[int](a, 5)
	for i := range slice {
		slice[i] = i * 2
	}
	fmt.Printf("Allocated slice: %v\n", slice)

	// Check memory usage
	fmt.Printf("Memory in use: %d bytes\n", a.SizeInUse())
	fmt.Printf("Utilization: %.2f%%\n", a.Utilization()*100)

	// Reset for reuse
	a.Reset()
	fmt.Printf("After reset, memory in use: %d bytes\n", a.SizeInUse())

	// Output:
	// Allocated buffer of size: 1024
	// Allocated int with value: 42
	// Allocated slice: [0 2 4 6 8]
	// Memory in use: 1072 bytes
	// Utilization: 26.17%
	// After reset, memory in use: 0 bytes
}

// ExampleArena_SetMark shows that rewinding keeps blocks for reuse.
func ExampleArena_SetMark() {
	a := NewArena(64)
	defer a.Release()

	a.AllocBytes(40)
	m := a.Mark()

	a.AllocBytes(40) // does not fit, opens a second block
	fmt.Println(a.NumBlocks(), a.SizeInUse())

	a.SetMark(m)
	a.AllocBytes(40) // lands in the second block again
	fmt.Println(a.NumBlocks(), a.SizeInUse())

	// Output:
	// 2 80
	// 2 80
}

// ExampleSafeArena demonstrates thread-safe arena usage
func ExampleSafeArena() {
	s := NewSafeArena(1024)
	defer s.Release()

	var wg sync.WaitGroup
	const numWorkers = 3

	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()

			// SafeArena is an Allocator, so the generic helpers work on it
			buf := s.AllocBytes(100)
			ptr := New(s, id)

			fmt.Printf("Worker %d allocated %d bytes\n", *ptr, len(buf))
		}(i)
	}

	wg.Wait()
	fmt.Printf("Total memory in use: %d bytes\n", s.Metrics().SizeInUse)
	// Output varies due to goroutine scheduling, but shows concurrent allocation
}

// ExampleArena_webServer demonstrates arena usage in a web server context
func ExampleArena_webServer() {
	// Simulate a request handler that uses arena for temporary allocations
	handleRequest := func(requestID int) {
		a := NewArena(4096)
		defer a.Release()

		requestData := MakeSlice[byte](a, 1024)
		responseBuffer := MakeSlice[byte](a, 2048)

		copy(requestData, "request data")
		copy(responseBuffer, "response data")

		fmt.Printf("Request %d processed\n", requestID)
		fmt.Printf("Arena utilization: %.1f%%\n", a.Utilization()*100)
	}

	for i := 1; i <= 3; i++ {
		handleRequest(i)
	}

	// Output:
	// Request 1 processed
	// Arena utilization: 75.0%
	// Request 2 processed
	// Arena utilization: 75.0%
	// Request 3 processed
	// Arena utilization: 75.0%
}

// ExampleArena_Reset demonstrates arena reuse with Reset
func ExampleArena_Reset() {
	a := NewArena(1024)
	defer a.Release()

	for round := 1; round <= 3; round++ {
		for i := 0; i < 5; i++ {
			Alloc[int64](a)
		}

		fmt.Printf("Round %d - Memory in use: %d bytes\n", round, a.SizeInUse())
		a.Reset()
	}

	// Output:
	// Round 1 - Memory in use: 40 bytes
	// Round 2 - Memory in use: 40 bytes
	// Round 3 - Memory in use: 40 bytes
}

// ExampleArenaMetrics demonstrates monitoring arena performance
func ExampleArenaMetrics() {
	a := NewArena(1024)
	defer a.Release()

	a.AllocBytes(100)
	Alloc[int64](a)
	MakeSlice[int32](a, 50)

	metrics := a.Metrics()
	fmt.Printf("Metrics:\n")
	fmt.Printf("  Size in use: %d bytes\n", metrics.SizeInUse)
	fmt.Printf("  Capacity: %d bytes\n", metrics.Capacity)
	fmt.Printf("  Blocks: %d\n", metrics.NumBlocks)
	fmt.Printf("  Block size: %d bytes\n", metrics.BlockSize)
	fmt.Printf("  Utilization: %.1f%%\n", metrics.Utilization*100)

	// Output:
	// Metrics:
	//   Size in use: 312 bytes
	//   Capacity: 1024 bytes
	//   Blocks: 1
	//   Block size: 1024 bytes
	//   Utilization: 30.5%
}

// ExampleArena_alignment demonstrates that allocations are properly aligned
func ExampleArena_alignment() {
	a := NewArena(1024)
	defer a.Release()

	ptr1 := Alloc[int8](a)
	ptr2 := Alloc[int64](a)
	ptr3 := Alloc[int32](a)

	fmt.Printf("int8 address alignment: %d\n", uintptr(unsafe.Pointer(ptr1))%8)
	fmt.Printf("int64 address alignment: %d\n", uintptr(unsafe.Pointer(ptr2))%8)
	fmt.Printf("int32 address alignment: %d\n", uintptr(unsafe.Pointer(ptr3))%8)

	// Output:
	// int8 address alignment: 0
	// int64 address alignment: 0
	// int32 address alignment: 0
}
