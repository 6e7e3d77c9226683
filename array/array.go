// Package array provides a growable array whose storage comes from a
// memkit.Allocator.
package array

import (
	"fmt"
	"unsafe"

	"github.com/pavanmanishd/memkit"
)

// minCapacity is the capacity of the first allocation.
const minCapacity = 8

// Array is a contiguous, typed, growable sequence. Storage is obtained from
// the allocator given to Init or New; capacity doubles from 8.
//
// The zero Array must be initialized with Init before use. Unless the
// allocator is memkit.Heap, T should not hold the only reference to Go heap
// memory.
type Array[T any] struct {
	data  []T // len(data) == capacity
	size  int
	alloc memkit.Allocator
}

// New returns an initialized Array with room for initialCapacity elements.
func New[T any](a memkit.Allocator, initialCapacity int) *Array[T] {
	arr := new(Array[T])
	arr.Init(a, initialCapacity)
	return arr
}

// Init sets up arr to allocate from a (Heap when nil). Any previous storage
// is abandoned, not freed.
func (arr *Array[T]) Init(a memkit.Allocator, initialCapacity int) {
	arr.data = nil
	arr.size = 0
	arr.alloc = memkit.OrHeap(a)
	if initialCapacity > 0 {
		arr.Reserve(initialCapacity)
	}
}

// Len returns the number of elements.
func (arr *Array[T]) Len() int { return arr.size }

// Cap returns the number of elements the array can hold without growing.
func (arr *Array[T]) Cap() int { return len(arr.data) }

// Slice returns the elements as a slice aliasing the array's storage. It is
// invalidated by any call that grows the array.
func (arr *Array[T]) Slice() []T { return arr.data[:arr.size:arr.size] }

// At returns the element at i.
func (arr *Array[T]) At(i int) T {
	arr.check(i)
	return arr.data[i]
}

// Ptr returns a pointer to the element at i. Valid until the array grows.
func (arr *Array[T]) Ptr(i int) *T {
	arr.check(i)
	return &arr.data[i]
}

// Set overwrites the element at i.
func (arr *Array[T]) Set(i int, v T) {
	arr.check(i)
	arr.data[i] = v
}

// Back returns the last element.
func (arr *Array[T]) Back() T {
	if arr.size == 0 {
		panic("array: Back on empty array")
	}
	return arr.data[arr.size-1]
}

// Reserve grows the capacity to at least n elements, doubling from 8.
func (arr *Array[T]) Reserve(n int) {
	arr.mustInit()
	oldCap := len(arr.data)
	if n <= oldCap {
		return
	}
	newCap := oldCap
	for newCap < n {
		if newCap == 0 {
			newCap = minCapacity
		} else {
			newCap *= 2
		}
	}

	arr.data = memkit.ResizeSlice(arr.alloc, arr.data, newCap)
}

// Resize sets the length to n. New elements are set to fill; shrinking
// just drops the tail.
func (arr *Array[T]) Resize(n int, fill T) {
	if n < 0 {
		panic(fmt.Sprintf("array: negative size %d", n))
	}
	if n > arr.size {
		arr.Reserve(n)
		for i := arr.size; i < n; i++ {
			arr.data[i] = fill
		}
	}
	arr.size = n
}

// Add appends v.
func (arr *Array[T]) Add(v T) {
	arr.Reserve(arr.size + 1)
	arr.data[arr.size] = v
	arr.size++
}

// AddSlice appends every element of vs.
func (arr *Array[T]) AddSlice(vs []T) {
	arr.Reserve(arr.size + len(vs))
	copy(arr.data[arr.size:], vs)
	arr.size += len(vs)
}

// Insert inserts n copies of v at index at, shifting later elements up.
// at may equal Len.
func (arr *Array[T]) Insert(at int, v T, n int) {
	if at < 0 || at > arr.size || n < 0 {
		panic(fmt.Sprintf("array: insert at %d (n %d) out of range [0:%d]", at, n, arr.size))
	}
	arr.Reserve(arr.size + n)
	copy(arr.data[at+n:arr.size+n], arr.data[at:arr.size])
	for i := at; i < at+n; i++ {
		arr.data[i] = v
	}
	arr.size += n
}

// Remove deletes n elements starting at i, shifting later elements down.
func (arr *Array[T]) Remove(i, n int) {
	if i < 0 || n < 0 || i+n > arr.size {
		panic(fmt.Sprintf("array: remove [%d:%d] out of range [0:%d]", i, i+n, arr.size))
	}
	copy(arr.data[i:], arr.data[i+n:arr.size])
	arr.size -= n
}

// PopBack removes the last n elements and returns the first of them.
func (arr *Array[T]) PopBack(n int) T {
	if n <= 0 || n > arr.size {
		panic(fmt.Sprintf("array: pop %d of %d", n, arr.size))
	}
	arr.size -= n
	return arr.data[arr.size]
}

// Clear sets the length to zero and keeps the storage.
func (arr *Array[T]) Clear() { arr.size = 0 }

// Reverse reverses the elements in place.
func (arr *Array[T]) Reverse() {
	for i, j := 0, arr.size-1; i < j; i, j = i+1, j-1 {
		arr.data[i], arr.data[j] = arr.data[j], arr.data[i]
	}
}

// SizeInBytes returns Len times the element size.
func (arr *Array[T]) SizeInBytes() int {
	var zero T
	return arr.size * int(unsafe.Sizeof(zero))
}

// Deinit returns the storage to the allocator. The array must be
// initialized again before reuse.
func (arr *Array[T]) Deinit() {
	memkit.FreeSlice(arr.alloc, arr.data)
	*arr = Array[T]{}
}

func (arr *Array[T]) check(i int) {
	if i < 0 || i >= arr.size {
		panic(fmt.Sprintf("array: index %d out of range [0:%d]", i, arr.size))
	}
}

func (arr *Array[T]) mustInit() {
	if arr.alloc == nil {
		panic("array: use of uninitialized Array")
	}
}
