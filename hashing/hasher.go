// Package hashing provides the 32-bit hash functions and the Hasher
// resolution used by the hash containers.
//
// Scalars hash as Fmix32(bits ^ Seed) when they are four bytes or smaller
// and as the low 32 bits of Fmix64(bits ^ Seed) otherwise. Strings hash with
// Murmur3 under Seed. Compound values combine the hashes of their fields
// left to right with h = 2*h + field, so field order matters.
package hashing

import (
	"bytes"
	"math"
	"reflect"
	"sync"
	"unsafe"

	"golang.org/x/exp/constraints"
)

// Hasher hashes and compares keys of type K. Equal keys must hash equally.
type Hasher[K any] interface {
	Hash(k K) uint32
	Equal(a, b K) bool
}

// Hashable is implemented by key types that hash themselves.
type Hashable[T any] interface {
	Hash() uint32
	Equal(other T) bool
}

// Of returns the Hasher for a Hashable type.
func Of[K Hashable[K]]() Hasher[K] {
	return hashable[K]{}
}

type hashable[K Hashable[K]] struct{}

func (hashable[K]) Hash(k K) uint32 { return k.Hash() }
func (hashable[K]) Equal(a, b K) bool { return a.Equal(b) }

// dynHashable serves For when K is only known to implement Hashable at
// run time.
type dynHashable[K any] struct{}

func (dynHashable[K]) Hash(k K) uint32 { return any(k).(Hashable[K]).Hash() }
func (dynHashable[K]) Equal(a, b K) bool { return any(a).(Hashable[K]).Equal(b) }

// Int hashes any integer type.
type Int[T constraints.Integer] struct{}

func (Int[T]) Hash(v T) uint32 {
	if unsafe.Sizeof(v) <= 4 {
		return Fmix32(uint32(v) ^ Seed)
	}
	return uint32(Fmix64(uint64(v) ^ uint64(Seed)))
}

func (Int[T]) Equal(a, b T) bool { return a == b }

// Float hashes floating point values by their bits, with -0 folded into +0
// so that values comparing equal hash equally.
type Float[T constraints.Float] struct{}

func (Float[T]) Hash(v T) uint32 {
	if v == 0 {
		v = 0
	}
	if unsafe.Sizeof(v) == 4 {
		return Fmix32(math.Float32bits(float32(v)) ^ Seed)
	}
	return uint32(Fmix64(math.Float64bits(float64(v)) ^ uint64(Seed)))
}

func (Float[T]) Equal(a, b T) bool { return a == b }

// Bool hashes booleans as the integers 0 and 1.
type Bool struct{}

func (Bool) Hash(v bool) uint32 {
	var x uint32
	if v {
		x = 1
	}
	return Fmix32(x ^ Seed)
}

func (Bool) Equal(a, b bool) bool { return a == b }

// String hashes strings with Murmur3.
type String struct{}

func (String) Hash(s string) uint32 { return Murmur3String(s, Seed) }
func (String) Equal(a, b string) bool { return a == b }

// Bytes hashes byte slices by content with Murmur3.
type Bytes struct{}

func (Bytes) Hash(b []byte) uint32 { return Murmur3(b, Seed) }
func (Bytes) Equal(a, b []byte) bool { return bytes.Equal(a, b) }

// reinterpret adapts a Hasher for U to a named type K with the same
// underlying representation.
type reinterpret[K, U any] struct {
	h Hasher[U]
}

func (r reinterpret[K, U]) Hash(k K) uint32 {
	return r.h.Hash(*(*U)(unsafe.Pointer(&k)))
}

func (r reinterpret[K, U]) Equal(a, b K) bool {
	return r.h.Equal(*(*U)(unsafe.Pointer(&a)), *(*U)(unsafe.Pointer(&b)))
}

var resolved sync.Map // reflect.Type -> any(Hasher[K])

// For returns a Hasher for K. Types implementing Hashable[K] use their own
// methods. Otherwise K must be a boolean, integer, float or string type, or
// a struct or array of at most eight such fields (nested structs and arrays
// included). For panics on any other type.
func For[K any]() Hasher[K] {
	t := reflect.TypeFor[K]()
	if h, ok := resolved.Load(t); ok {
		return h.(Hasher[K])
	}
	h := resolve[K](t)
	resolved.Store(t, h)
	return h
}

func resolve[K any](t reflect.Type) Hasher[K] {
	var zero K
	if tk, ok := any(zero).(tupleKey[K]); ok {
		return tk.newHasher()
	}
	if _, ok := any(zero).(Hashable[K]); ok {
		return dynHashable[K]{}
	}

	switch t.Kind() {
	case reflect.Bool:
		return reinterpret[K, bool]{Bool{}}
	case reflect.Int8:
		return reinterpret[K, int8]{Int[int8]{}}
	case reflect.Int16:
		return reinterpret[K, int16]{Int[int16]{}}
	case reflect.Int32:
		return reinterpret[K, int32]{Int[int32]{}}
	case reflect.Int64:
		return reinterpret[K, int64]{Int[int64]{}}
	case reflect.Int:
		return reinterpret[K, int]{Int[int]{}}
	case reflect.Uint8:
		return reinterpret[K, uint8]{Int[uint8]{}}
	case reflect.Uint16:
		return reinterpret[K, uint16]{Int[uint16]{}}
	case reflect.Uint32:
		return reinterpret[K, uint32]{Int[uint32]{}}
	case reflect.Uint64:
		return reinterpret[K, uint64]{Int[uint64]{}}
	case reflect.Uint:
		return reinterpret[K, uint]{Int[uint]{}}
	case reflect.Uintptr:
		return reinterpret[K, uintptr]{Int[uintptr]{}}
	case reflect.Float32:
		return reinterpret[K, float32]{Float[float32]{}}
	case reflect.Float64:
		return reinterpret[K, float64]{Float[float64]{}}
	case reflect.String:
		return reinterpret[K, string]{String{}}
	case reflect.Struct, reflect.Array:
		hash, eq := structural(t)
		return compound[K]{hash: hash, eq: eq}
	}
	panic("hashing: no hasher for type " + t.String())
}
