package hashing

import (
	"fmt"
	"reflect"
	"unsafe"
)

// maxFields is the widest compound value that can be hashed structurally.
const maxFields = 8

type (
	hashFn  func(p unsafe.Pointer) uint32
	equalFn func(a, b unsafe.Pointer) bool
)

// compound hashes structs and arrays field by field.
type compound[K any] struct {
	hash hashFn
	eq   equalFn
}

func (c compound[K]) Hash(k K) uint32 {
	return c.hash(unsafe.Pointer(&k))
}

func (c compound[K]) Equal(a, b K) bool {
	return c.eq(unsafe.Pointer(&a), unsafe.Pointer(&b))
}

// structural builds hash and equality functions over a value of type t
// addressed by pointer.
func structural(t reflect.Type) (hashFn, equalFn) {
	switch t.Kind() {
	case reflect.Bool:
		return scalar[bool](Bool{})
	case reflect.Int8:
		return scalar[int8](Int[int8]{})
	case reflect.Int16:
		return scalar[int16](Int[int16]{})
	case reflect.Int32:
		return scalar[int32](Int[int32]{})
	case reflect.Int64:
		return scalar[int64](Int[int64]{})
	case reflect.Int:
		return scalar[int](Int[int]{})
	case reflect.Uint8:
		return scalar[uint8](Int[uint8]{})
	case reflect.Uint16:
		return scalar[uint16](Int[uint16]{})
	case reflect.Uint32:
		return scalar[uint32](Int[uint32]{})
	case reflect.Uint64:
		return scalar[uint64](Int[uint64]{})
	case reflect.Uint:
		return scalar[uint](Int[uint]{})
	case reflect.Uintptr:
		return scalar[uintptr](Int[uintptr]{})
	case reflect.Float32:
		return scalar[float32](Float[float32]{})
	case reflect.Float64:
		return scalar[float64](Float[float64]{})
	case reflect.String:
		return scalar[string](String{})
	case reflect.Struct:
		if t.NumField() == 0 || t.NumField() > maxFields {
			panic(fmt.Sprintf("hashing: %s has %d fields, want 1 to %d", t, t.NumField(), maxFields))
		}
		offs := make([]uintptr, t.NumField())
		fields := make([]fieldFns, t.NumField())
		for i := range fields {
			f := t.Field(i)
			offs[i] = f.Offset
			fields[i].hash, fields[i].eq = structural(f.Type)
		}
		return combineFields(offs, fields)
	case reflect.Array:
		if t.Len() == 0 || t.Len() > maxFields {
			panic(fmt.Sprintf("hashing: %s has %d elements, want 1 to %d", t, t.Len(), maxFields))
		}
		h, e := structural(t.Elem())
		offs := make([]uintptr, t.Len())
		fields := make([]fieldFns, t.Len())
		for i := range fields {
			offs[i] = uintptr(i) * t.Elem().Size()
			fields[i] = fieldFns{h, e}
		}
		return combineFields(offs, fields)
	}
	panic("hashing: no hasher for type " + t.String())
}

func scalar[T any](h Hasher[T]) (hashFn, equalFn) {
	return func(p unsafe.Pointer) uint32 { return h.Hash(*(*T)(p)) },
		func(a, b unsafe.Pointer) bool { return h.Equal(*(*T)(a), *(*T)(b)) }
}

type fieldFns struct {
	hash hashFn
	eq   equalFn
}

func combineFields(offs []uintptr, fields []fieldFns) (hashFn, equalFn) {
	hash := func(p unsafe.Pointer) uint32 {
		var h uint32
		for i, f := range fields {
			h = 2*h + f.hash(unsafe.Add(p, offs[i]))
		}
		return h
	}
	eq := func(a, b unsafe.Pointer) bool {
		for i, f := range fields {
			if !f.eq(unsafe.Add(a, offs[i]), unsafe.Add(b, offs[i])) {
				return false
			}
		}
		return true
	}
	return hash, eq
}

// Combine folds field hashes left to right as h = 2*h + x. It accepts one
// to eight hashes and panics otherwise.
func Combine(hashes ...uint32) uint32 {
	if len(hashes) == 0 || len(hashes) > maxFields {
		panic(fmt.Sprintf("hashing: cannot combine %d hashes", len(hashes)))
	}
	var h uint32
	for _, x := range hashes {
		h = 2*h + x
	}
	return h
}
