// Package str provides a non-owning byte string view with UTF-8 codepoint
// iteration, and a null-terminated string builder whose buffer comes from a
// memkit.Allocator.
package str

import (
	"bytes"
	"fmt"
	"unicode/utf8"
	"unsafe"

	"github.com/pavanmanishd/memkit"
	"github.com/pavanmanishd/memkit/hashing"
)

// View is a borrowed run of bytes. The bytes are not copied and must
// outlive the View. Offsets are byte offsets.
type View struct {
	p *byte
	n int
}

// V returns a view of s.
func V(s string) View {
	return View{unsafe.StringData(s), len(s)}
}

// FromBytes returns a view of b.
func FromBytes(b []byte) View {
	return View{unsafe.SliceData(b), len(b)}
}

// FromCStr returns a view of the null-terminated string at p, excluding the
// terminator. A nil p gives the empty view.
func FromCStr(p *byte) View {
	if p == nil {
		return View{}
	}
	n := 0
	for *(*byte)(unsafe.Add(unsafe.Pointer(p), n)) != 0 {
		n++
	}
	return View{p, n}
}

// Len returns the length in bytes.
func (v View) Len() int { return v.n }

// Bytes returns the viewed bytes without copying. They must not be
// modified if the view was made from a string.
func (v View) Bytes() []byte {
	if v.n == 0 {
		return nil
	}
	return unsafe.Slice(v.p, v.n)
}

// String returns the viewed bytes as a string without copying.
func (v View) String() string {
	if v.n == 0 {
		return ""
	}
	return unsafe.String(v.p, v.n)
}

// At returns the byte at offset i.
func (v View) At(i int) byte {
	if i < 0 || i >= v.n {
		panic(fmt.Sprintf("str: index %d out of range [0:%d]", i, v.n))
	}
	return *(*byte)(unsafe.Add(unsafe.Pointer(v.p), i))
}

// NextCodepoint decodes the codepoint at *offset and advances *offset past
// it. At the end of the view it returns 0 and leaves *offset alone.
func (v View) NextCodepoint(offset *int) rune {
	if *offset >= v.n {
		return 0
	}
	r, size := utf8.DecodeRune(v.Bytes()[*offset:])
	*offset += size
	return r
}

// PrevCodepoint moves *offset back over one codepoint and returns it. At
// the start of the view it returns 0.
func (v View) PrevCodepoint(offset *int) rune {
	if *offset <= 0 {
		return 0
	}
	r, size := utf8.DecodeLastRune(v.Bytes()[:*offset])
	*offset -= size
	return r
}

// CodepointCount counts codepoints up to the end of the view or the first
// NUL, whichever comes first.
func (v View) CodepointCount() int {
	count, off := 0, 0
	for v.NextCodepoint(&off) != 0 {
		count++
	}
	return count
}

// Find returns the offset of the first occurrence of needle at or after
// start, or Len if there is none.
func (v View) Find(needle View, start int) int {
	if start < 0 || start > v.n {
		panic(fmt.Sprintf("str: find start %d out of range [0:%d]", start, v.n))
	}
	i := bytes.Index(v.Bytes()[start:], needle.Bytes())
	if i < 0 {
		return v.n
	}
	return start + i
}

// RFind returns the offset of the last occurrence of needle that ends at or
// before start, or Len if there is none. A start of Len or more searches
// the whole view.
func (v View) RFind(needle View, start int) int {
	end := min(max(start, 0), v.n)
	i := bytes.LastIndex(v.Bytes()[:end], needle.Bytes())
	if i < 0 {
		return v.n
	}
	return i
}

// Split returns the part of v before the first delim and moves v past that
// delim. If delim does not occur, Split returns all of v and leaves v empty.
func (v *View) Split(delim View) View {
	i := v.Find(delim, 0)
	head := View{v.p, i}
	adv := min(i+delim.n, v.n)
	v.p = (*byte)(unsafe.Add(unsafe.Pointer(v.p), adv))
	v.n -= adv
	return head
}

// Slice returns bytes [from, to) of v.
func (v View) Slice(from, to int) View {
	if from < 0 || to > v.n || from > to {
		panic(fmt.Sprintf("str: slice [%d:%d] out of range [0:%d]", from, to, v.n))
	}
	return View{(*byte)(unsafe.Add(unsafe.Pointer(v.p), from)), to - from}
}

// From returns bytes [from, Len) of v.
func (v View) From(from int) View {
	return v.Slice(from, v.n)
}

// Equal reports whether v and o hold the same bytes.
func (v View) Equal(o View) bool {
	return v.n == o.n && bytes.Equal(v.Bytes(), o.Bytes())
}

// Hash returns the Murmur3 hash of the bytes, so Views can key a
// hashmap.Map directly.
func (v View) Hash() uint32 {
	return hashing.Murmur3(v.Bytes(), hashing.Seed)
}

// Clone copies v into memory from a, null-terminated.
func (v View) Clone(a memkit.Allocator) String {
	b := memkit.MakeSlice[byte](memkit.OrHeap(a), v.n+1)
	copy(b, v.Bytes())
	b[v.n] = 0
	return String{View{unsafe.SliceData(b), v.n}}
}

// String is a View followed by a zero byte.
type String struct {
	View
}

// CStr returns a pointer to the null-terminated bytes. The empty String
// returns a pointer to a static terminator.
func (s String) CStr() *byte {
	if s.p == nil {
		return &nul
	}
	return s.p
}

var nul byte
