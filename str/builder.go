package str

import (
	"fmt"
	"unsafe"

	"github.com/pavanmanishd/memkit"
)

// Builder is a growable byte string that is always followed by a zero
// byte. Capacity doubles from 8 and counts the terminator.
//
// The zero Builder must be initialized with Init before use.
type Builder struct {
	buf   []byte // len(buf) == capacity
	n     int
	alloc memkit.Allocator
}

// NewBuilder returns an initialized Builder allocating from a (Heap when
// nil).
func NewBuilder(a memkit.Allocator, initialCap int) *Builder {
	b := new(Builder)
	b.Init(a, initialCap)
	return b
}

// Init sets up b to allocate from a. Previous storage is abandoned.
func (b *Builder) Init(a memkit.Allocator, initialCap int) {
	*b = Builder{alloc: memkit.OrHeap(a)}
	if initialCap > 0 {
		b.Reserve(initialCap)
	}
}

// Len returns the length in bytes, excluding the terminator.
func (b *Builder) Len() int { return b.n }

// Cap returns the buffer size, including room for the terminator.
func (b *Builder) Cap() int { return len(b.buf) }

// Reserve grows the buffer to at least n bytes.
func (b *Builder) Reserve(n int) {
	if b.alloc == nil {
		panic("str: use of uninitialized Builder")
	}
	c := len(b.buf)
	if n <= c {
		return
	}
	for c < n {
		if c == 0 {
			c = 8
		} else {
			c *= 2
		}
	}
	b.buf = memkit.ResizeSlice(b.alloc, b.buf, c)
}

// Add appends the bytes of v.
func (b *Builder) Add(v View) {
	b.Reserve(b.n + v.n + 1)
	b.n += copy(b.buf[b.n:], v.Bytes())
	b.buf[b.n] = 0
}

// AddString appends s.
func (b *Builder) AddString(s string) { b.Add(V(s)) }

// AddByte appends c.
func (b *Builder) AddByte(c byte) {
	b.Reserve(b.n + 2)
	b.buf[b.n] = c
	b.n++
	b.buf[b.n] = 0
}

// Addf appends a string formatted as by fmt.Sprintf.
func (b *Builder) Addf(format string, args ...any) {
	fmt.Fprintf(b, format, args...)
}

// Write implements io.Writer. It never fails.
func (b *Builder) Write(p []byte) (int, error) {
	b.Add(FromBytes(p))
	return len(p), nil
}

// View returns a view of the built bytes. It is invalidated by growth.
func (b *Builder) View() View {
	if b.n == 0 {
		return View{}
	}
	return View{unsafe.SliceData(b.buf), b.n}
}

// Str returns the built bytes as a null-terminated String. It is
// invalidated by growth.
func (b *Builder) Str() String {
	b.Reserve(b.n + 1)
	b.buf[b.n] = 0
	return String{View{unsafe.SliceData(b.buf), b.n}}
}

// String returns a copy of the built bytes.
func (b *Builder) String() string {
	return string(b.buf[:b.n])
}

// Reset empties the builder and keeps the buffer.
func (b *Builder) Reset() {
	b.n = 0
	if len(b.buf) > 0 {
		b.buf[0] = 0
	}
}

// Deinit returns the buffer to the allocator. The builder must be
// initialized again before reuse.
func (b *Builder) Deinit() {
	if b.alloc != nil {
		memkit.FreeSlice(b.alloc, b.buf)
	}
	*b = Builder{}
}
