package hashing

// Tuple2 through Tuple8 are compound keys whose fields hash with For and
// combine in order. Equality is field-wise.
//
// For resolves the field hashers of a tuple type once and caches the
// result, so maps keyed by tuples do no per-field lookups.

// tupleKey is implemented by the tuple types.
type tupleKey[K any] interface {
	newHasher() Hasher[K]
}

// Tuple2 is a 2-field compound key.
type Tuple2[T1, T2 any] struct {
	V1 T1
	V2 T2
}

// NewTuple2 builds a Tuple2.
func NewTuple2[T1, T2 any](v1 T1, v2 T2) Tuple2[T1, T2] {
	return Tuple2[T1, T2]{v1, v2}
}

func (t Tuple2[T1, T2]) Hash() uint32 { return For[Tuple2[T1, T2]]().Hash(t) }
func (t Tuple2[T1, T2]) Equal(o Tuple2[T1, T2]) bool { return For[Tuple2[T1, T2]]().Equal(t, o) }

func (Tuple2[T1, T2]) newHasher() Hasher[Tuple2[T1, T2]] {
	return tuple2Hasher[T1, T2]{For[T1](), For[T2]()}
}

type tuple2Hasher[T1, T2 any] struct {
	h1 Hasher[T1]
	h2 Hasher[T2]
}

func (h tuple2Hasher[T1, T2]) Hash(t Tuple2[T1, T2]) uint32 {
	return Combine(
		h.h1.Hash(t.V1),
		h.h2.Hash(t.V2),
	)
}

func (h tuple2Hasher[T1, T2]) Equal(a, b Tuple2[T1, T2]) bool {
	return h.h1.Equal(a.V1, b.V1) &&
		h.h2.Equal(a.V2, b.V2)
}

// Tuple3 is a 3-field compound key.
type Tuple3[T1, T2, T3 any] struct {
	V1 T1
	V2 T2
	V3 T3
}

// NewTuple3 builds a Tuple3.
func NewTuple3[T1, T2, T3 any](v1 T1, v2 T2, v3 T3) Tuple3[T1, T2, T3] {
	return Tuple3[T1, T2, T3]{v1, v2, v3}
}

func (t Tuple3[T1, T2, T3]) Hash() uint32 { return For[Tuple3[T1, T2, T3]]().Hash(t) }
func (t Tuple3[T1, T2, T3]) Equal(o Tuple3[T1, T2, T3]) bool { return For[Tuple3[T1, T2, T3]]().Equal(t, o) }

func (Tuple3[T1, T2, T3]) newHasher() Hasher[Tuple3[T1, T2, T3]] {
	return tuple3Hasher[T1, T2, T3]{For[T1](), For[T2](), For[T3]()}
}

type tuple3Hasher[T1, T2, T3 any] struct {
	h1 Hasher[T1]
	h2 Hasher[T2]
	h3 Hasher[T3]
}

func (h tuple3Hasher[T1, T2, T3]) Hash(t Tuple3[T1, T2, T3]) uint32 {
	return Combine(
		h.h1.Hash(t.V1),
		h.h2.Hash(t.V2),
		h.h3.Hash(t.V3),
	)
}

func (h tuple3Hasher[T1, T2, T3]) Equal(a, b Tuple3[T1, T2, T3]) bool {
	return h.h1.Equal(a.V1, b.V1) &&
		h.h2.Equal(a.V2, b.V2) &&
		h.h3.Equal(a.V3, b.V3)
}

// Tuple4 is a 4-field compound key.
type Tuple4[T1, T2, T3, T4 any] struct {
	V1 T1
	V2 T2
	V3 T3
	V4 T4
}

// NewTuple4 builds a Tuple4.
func NewTuple4[T1, T2, T3, T4 any](v1 T1, v2 T2, v3 T3, v4 T4) Tuple4[T1, T2, T3, T4] {
	return Tuple4[T1, T2, T3, T4]{v1, v2, v3, v4}
}

func (t Tuple4[T1, T2, T3, T4]) Hash() uint32 { return For[Tuple4[T1, T2, T3, T4]]().Hash(t) }
func (t Tuple4[T1, T2, T3, T4]) Equal(o Tuple4[T1, T2, T3, T4]) bool { return For[Tuple4[T1, T2, T3, T4]]().Equal(t, o) }

func (Tuple4[T1, T2, T3, T4]) newHasher() Hasher[Tuple4[T1, T2, T3, T4]] {
	return tuple4Hasher[T1, T2, T3, T4]{For[T1](), For[T2](), For[T3](), For[T4]()}
}

type tuple4Hasher[T1, T2, T3, T4 any] struct {
	h1 Hasher[T1]
	h2 Hasher[T2]
	h3 Hasher[T3]
	h4 Hasher[T4]
}

func (h tuple4Hasher[T1, T2, T3, T4]) Hash(t Tuple4[T1, T2, T3, T4]) uint32 {
	return Combine(
		h.h1.Hash(t.V1),
		h.h2.Hash(t.V2),
		h.h3.Hash(t.V3),
		h.h4.Hash(t.V4),
	)
}

func (h tuple4Hasher[T1, T2, T3, T4]) Equal(a, b Tuple4[T1, T2, T3, T4]) bool {
	return h.h1.Equal(a.V1, b.V1) &&
		h.h2.Equal(a.V2, b.V2) &&
		h.h3.Equal(a.V3, b.V3) &&
		h.h4.Equal(a.V4, b.V4)
}

// Tuple5 is a 5-field compound key.
type Tuple5[T1, T2, T3, T4, T5 any] struct {
	V1 T1
	V2 T2
	V3 T3
	V4 T4
	V5 T5
}

// NewTuple5 builds a Tuple5.
func NewTuple5[T1, T2, T3, T4, T5 any](v1 T1, v2 T2, v3 T3, v4 T4, v5 T5) Tuple5[T1, T2, T3, T4, T5] {
	return Tuple5[T1, T2, T3, T4, T5]{v1, v2, v3, v4, v5}
}

func (t Tuple5[T1, T2, T3, T4, T5]) Hash() uint32 { return For[Tuple5[T1, T2, T3, T4, T5]]().Hash(t) }
func (t Tuple5[T1, T2, T3, T4, T5]) Equal(o Tuple5[T1, T2, T3, T4, T5]) bool { return For[Tuple5[T1, T2, T3, T4, T5]]().Equal(t, o) }

func (Tuple5[T1, T2, T3, T4, T5]) newHasher() Hasher[Tuple5[T1, T2, T3, T4, T5]] {
	return tuple5Hasher[T1, T2, T3, T4, T5]{For[T1](), For[T2](), For[T3](), For[T4](), For[T5]()}
}

type tuple5Hasher[T1, T2, T3, T4, T5 any] struct {
	h1 Hasher[T1]
	h2 Hasher[T2]
	h3 Hasher[T3]
	h4 Hasher[T4]
	h5 Hasher[T5]
}

func (h tuple5Hasher[T1, T2, T3, T4, T5]) Hash(t Tuple5[T1, T2, T3, T4, T5]) uint32 {
	return Combine(
		h.h1.Hash(t.V1),
		h.h2.Hash(t.V2),
		h.h3.Hash(t.V3),
		h.h4.Hash(t.V4),
		h.h5.Hash(t.V5),
	)
}

func (h tuple5Hasher[T1, T2, T3, T4, T5]) Equal(a, b Tuple5[T1, T2, T3, T4, T5]) bool {
	return h.h1.Equal(a.V1, b.V1) &&
		h.h2.Equal(a.V2, b.V2) &&
		h.h3.Equal(a.V3, b.V3) &&
		h.h4.Equal(a.V4, b.V4) &&
		h.h5.Equal(a.V5, b.V5)
}

// Tuple6 is a 6-field compound key.
type Tuple6[T1, T2, T3, T4, T5, T6 any] struct {
	V1 T1
	V2 T2
	V3 T3
	V4 T4
	V5 T5
	V6 T6
}

// NewTuple6 builds a Tuple6.
func NewTuple6[T1, T2, T3, T4, T5, T6 any](v1 T1, v2 T2, v3 T3, v4 T4, v5 T5, v6 T6) Tuple6[T1, T2, T3, T4, T5, T6] {
	return Tuple6[T1, T2, T3, T4, T5, T6]{v1, v2, v3, v4, v5, v6}
}

func (t Tuple6[T1, T2, T3, T4, T5, T6]) Hash() uint32 { return For[Tuple6[T1, T2, T3, T4, T5, T6]]().Hash(t) }
func (t Tuple6[T1, T2, T3, T4, T5, T6]) Equal(o Tuple6[T1, T2, T3, T4, T5, T6]) bool { return For[Tuple6[T1, T2, T3, T4, T5, T6]]().Equal(t, o) }

func (Tuple6[T1, T2, T3, T4, T5, T6]) newHasher() Hasher[Tuple6[T1, T2, T3, T4, T5, T6]] {
	return tuple6Hasher[T1, T2, T3, T4, T5, T6]{For[T1](), For[T2](), For[T3](), For[T4](), For[T5](), For[T6]()}
}

type tuple6Hasher[T1, T2, T3, T4, T5, T6 any] struct {
	h1 Hasher[T1]
	h2 Hasher[T2]
	h3 Hasher[T3]
	h4 Hasher[T4]
	h5 Hasher[T5]
	h6 Hasher[T6]
}

func (h tuple6Hasher[T1, T2, T3, T4, T5, T6]) Hash(t Tuple6[T1, T2, T3, T4, T5, T6]) uint32 {
	return Combine(
		h.h1.Hash(t.V1),
		h.h2.Hash(t.V2),
		h.h3.Hash(t.V3),
		h.h4.Hash(t.V4),
		h.h5.Hash(t.V5),
		h.h6.Hash(t.V6),
	)
}

func (h tuple6Hasher[T1, T2, T3, T4, T5, T6]) Equal(a, b Tuple6[T1, T2, T3, T4, T5, T6]) bool {
	return h.h1.Equal(a.V1, b.V1) &&
		h.h2.Equal(a.V2, b.V2) &&
		h.h3.Equal(a.V3, b.V3) &&
		h.h4.Equal(a.V4, b.V4) &&
		h.h5.Equal(a.V5, b.V5) &&
		h.h6.Equal(a.V6, b.V6)
}

// Tuple7 is a 7-field compound key.
type Tuple7[T1, T2, T3, T4, T5, T6, T7 any] struct {
	V1 T1
	V2 T2
	V3 T3
	V4 T4
	V5 T5
	V6 T6
	V7 T7
}

// NewTuple7 builds a Tuple7.
func NewTuple7[T1, T2, T3, T4, T5, T6, T7 any](v1 T1, v2 T2, v3 T3, v4 T4, v5 T5, v6 T6, v7 T7) Tuple7[T1, T2, T3, T4, T5, T6, T7] {
	return Tuple7[T1, T2, T3, T4, T5, T6, T7]{v1, v2, v3, v4, v5, v6, v7}
}

func (t Tuple7[T1, T2, T3, T4, T5, T6, T7]) Hash() uint32 { return For[Tuple7[T1, T2, T3, T4, T5, T6, T7]]().Hash(t) }
func (t Tuple7[T1, T2, T3, T4, T5, T6, T7]) Equal(o Tuple7[T1, T2, T3, T4, T5, T6, T7]) bool { return For[Tuple7[T1, T2, T3, T4, T5, T6, T7]]().Equal(t, o) }

func (Tuple7[T1, T2, T3, T4, T5, T6, T7]) newHasher() Hasher[Tuple7[T1, T2, T3, T4, T5, T6, T7]] {
	return tuple7Hasher[T1, T2, T3, T4, T5, T6, T7]{For[T1](), For[T2](), For[T3](), For[T4](), For[T5](), For[T6](), For[T7]()}
}

type tuple7Hasher[T1, T2, T3, T4, T5, T6, T7 any] struct {
	h1 Hasher[T1]
	h2 Hasher[T2]
	h3 Hasher[T3]
	h4 Hasher[T4]
	h5 Hasher[T5]
	h6 Hasher[T6]
	h7 Hasher[T7]
}

func (h tuple7Hasher[T1, T2, T3, T4, T5, T6, T7]) Hash(t Tuple7[T1, T2, T3, T4, T5, T6, T7]) uint32 {
	return Combine(
		h.h1.Hash(t.V1),
		h.h2.Hash(t.V2),
		h.h3.Hash(t.V3),
		h.h4.Hash(t.V4),
		h.h5.Hash(t.V5),
		h.h6.Hash(t.V6),
		h.h7.Hash(t.V7),
	)
}

func (h tuple7Hasher[T1, T2, T3, T4, T5, T6, T7]) Equal(a, b Tuple7[T1, T2, T3, T4, T5, T6, T7]) bool {
	return h.h1.Equal(a.V1, b.V1) &&
		h.h2.Equal(a.V2, b.V2) &&
		h.h3.Equal(a.V3, b.V3) &&
		h.h4.Equal(a.V4, b.V4) &&
		h.h5.Equal(a.V5, b.V5) &&
		h.h6.Equal(a.V6, b.V6) &&
		h.h7.Equal(a.V7, b.V7)
}

// Tuple8 is a 8-field compound key.
type Tuple8[T1, T2, T3, T4, T5, T6, T7, T8 any] struct {
	V1 T1
	V2 T2
	V3 T3
	V4 T4
	V5 T5
	V6 T6
	V7 T7
	V8 T8
}

// NewTuple8 builds a Tuple8.
func NewTuple8[T1, T2, T3, T4, T5, T6, T7, T8 any](v1 T1, v2 T2, v3 T3, v4 T4, v5 T5, v6 T6, v7 T7, v8 T8) Tuple8[T1, T2, T3, T4, T5, T6, T7, T8] {
	return Tuple8[T1, T2, T3, T4, T5, T6, T7, T8]{v1, v2, v3, v4, v5, v6, v7, v8}
}

func (t Tuple8[T1, T2, T3, T4, T5, T6, T7, T8]) Hash() uint32 { return For[Tuple8[T1, T2, T3, T4, T5, T6, T7, T8]]().Hash(t) }
func (t Tuple8[T1, T2, T3, T4, T5, T6, T7, T8]) Equal(o Tuple8[T1, T2, T3, T4, T5, T6, T7, T8]) bool { return For[Tuple8[T1, T2, T3, T4, T5, T6, T7, T8]]().Equal(t, o) }

func (Tuple8[T1, T2, T3, T4, T5, T6, T7, T8]) newHasher() Hasher[Tuple8[T1, T2, T3, T4, T5, T6, T7, T8]] {
	return tuple8Hasher[T1, T2, T3, T4, T5, T6, T7, T8]{For[T1](), For[T2](), For[T3](), For[T4](), For[T5](), For[T6](), For[T7](), For[T8]()}
}

type tuple8Hasher[T1, T2, T3, T4, T5, T6, T7, T8 any] struct {
	h1 Hasher[T1]
	h2 Hasher[T2]
	h3 Hasher[T3]
	h4 Hasher[T4]
	h5 Hasher[T5]
	h6 Hasher[T6]
	h7 Hasher[T7]
	h8 Hasher[T8]
}

func (h tuple8Hasher[T1, T2, T3, T4, T5, T6, T7, T8]) Hash(t Tuple8[T1, T2, T3, T4, T5, T6, T7, T8]) uint32 {
	return Combine(
		h.h1.Hash(t.V1),
		h.h2.Hash(t.V2),
		h.h3.Hash(t.V3),
		h.h4.Hash(t.V4),
		h.h5.Hash(t.V5),
		h.h6.Hash(t.V6),
		h.h7.Hash(t.V7),
		h.h8.Hash(t.V8),
	)
}

func (h tuple8Hasher[T1, T2, T3, T4, T5, T6, T7, T8]) Equal(a, b Tuple8[T1, T2, T3, T4, T5, T6, T7, T8]) bool {
	return h.h1.Equal(a.V1, b.V1) &&
		h.h2.Equal(a.V2, b.V2) &&
		h.h3.Equal(a.V3, b.V3) &&
		h.h4.Equal(a.V4, b.V4) &&
		h.h5.Equal(a.V5, b.V5) &&
		h.h6.Equal(a.V6, b.V6) &&
		h.h7.Equal(a.V7, b.V7) &&
		h.h8.Equal(a.V8, b.V8)
}
