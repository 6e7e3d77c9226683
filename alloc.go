package memkit

import (
	"unsafe"
)

// New stores v in memory obtained from a and returns a pointer to it.
// On Heap the value is an ordinary Go allocation.
func New[T any](a Allocator, v T) *T {
	a = OrHeap(a)
	if _, ok := a.(HeapAllocator); ok {
		p := new(T)
		*p = v
		return p
	}
	p := (*T)(Allocate(a, sizeOf[T](), unsafe.Alignof(v)))
	*p = v
	return p
}

// Alloc returns a pointer to a zeroed T obtained from a.
func Alloc[T any](a Allocator) *T {
	var zero T
	return New(a, zero)
}

// AllocUninitialized returns a *T obtained from a without zeroing memory.
// Use with caution - ensure proper initialization before use.
func AllocUninitialized[T any](a Allocator) *T {
	var zero T
	return (*T)(Allocate(a, sizeOf[T](), unsafe.Alignof(zero)))
}

// MakeSlice allocates a slice of n elements of type T from a.
// The elements are not initialized. Returns nil if n <= 0.
func MakeSlice[T any](a Allocator, n int) []T {
	if n <= 0 {
		return nil
	}
	a = OrHeap(a)
	if _, ok := a.(HeapAllocator); ok {
		return make([]T, n)
	}
	var zero T
	p := Allocate(a, uintptr(n)*unsafe.Sizeof(zero)+zeroSizePad[T](), unsafe.Alignof(zero))
	return unsafe.Slice((*T)(p), n)
}

// MakeSliceZeroed allocates a slice of n zeroed elements of type T from a.
func MakeSliceZeroed[T any](a Allocator, n int) []T {
	s := MakeSlice[T](a, n)
	clear(s)
	return s
}

// Clone copies src into memory obtained from a.
func Clone[T any](a Allocator, src []T) []T {
	dst := MakeSlice[T](a, len(src))
	copy(dst, src)
	return dst
}

// ResizeSlice returns a slice of n elements from a holding the first
// min(len(s), n) elements of s; the rest are zero. s must be nil or have
// been obtained from a with its current length.
func ResizeSlice[T any](a Allocator, s []T, n int) []T {
	a = OrHeap(a)
	if n <= 0 {
		FreeSlice(a, s)
		return nil
	}
	if _, ok := a.(HeapAllocator); ok {
		grown := make([]T, n)
		copy(grown, s)
		return grown
	}
	if len(s) == 0 {
		return MakeSliceZeroed[T](a, n)
	}

	var zero T
	elem := unsafe.Sizeof(zero)
	pad := zeroSizePad[T]()
	p := Reallocate(a, unsafe.Pointer(unsafe.SliceData(s)),
		uintptr(len(s))*elem+pad, uintptr(n)*elem+pad, unsafe.Alignof(zero))
	grown := unsafe.Slice((*T)(p), n)
	if n > len(s) {
		clear(grown[len(s):])
	}
	return grown
}

// FreeSlice returns s, obtained from a with its current length, to a.
func FreeSlice[T any](a Allocator, s []T) {
	if len(s) == 0 {
		return
	}
	var zero T
	Deallocate(a, unsafe.Pointer(unsafe.SliceData(s)), uintptr(len(s))*unsafe.Sizeof(zero)+zeroSizePad[T]())
}

// CloneString copies s into memory obtained from a, followed by a zero
// byte, and returns the copy.
func CloneString(a Allocator, s string) string {
	p := Allocate(a, uintptr(len(s))+1, 1)
	b := unsafe.Slice((*byte)(p), len(s)+1)
	copy(b, s)
	b[len(s)] = 0
	return unsafe.String((*byte)(p), len(s))
}

// ScrubByte is the fill pattern for released memory when scrubbing is on.
const ScrubByte = 0xCC

// ScrubSlice overwrites the memory of s with ScrubByte. s must not be typed
// Go heap memory when T holds pointers.
func ScrubSlice[T any](s []T) {
	if len(s) == 0 {
		return
	}
	var zero T
	b := unsafe.Slice((*byte)(unsafe.Pointer(unsafe.SliceData(s))), uintptr(len(s))*unsafe.Sizeof(zero))
	for i := range b {
		b[i] = ScrubByte
	}
}

// sizeOf is unsafe.Sizeof for T, at least one byte so that every
// allocation gets a distinct address.
func sizeOf[T any]() uintptr {
	var zero T
	return max(unsafe.Sizeof(zero), 1)
}

func zeroSizePad[T any]() uintptr {
	var zero T
	if unsafe.Sizeof(zero) == 0 {
		return 1
	}
	return 0
}
