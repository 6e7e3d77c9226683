package memkit

import (
	"unsafe"

	"github.com/rs/zerolog"
)

const (
	// DefaultBlockSize is the block size used when none is given (4 KiB).
	DefaultBlockSize = 4096
	// DefaultBlockAlignment bounds the alignment of every arena allocation.
	DefaultBlockAlignment = 16
)


// block is one contiguous region owned by an arena. Its metadata is kept
// out of line so the garbage collector can see base and next.
type block struct {
	base  unsafe.Pointer
	size  uintptr
	used  uintptr // cursor when the arena last moved past this block
	owned bool    // obtained from the backing allocator
	next  *block
}

// Mark is a checkpoint of an arena's cursor. The zero Mark stands for an
// arena that had no blocks when it was taken.
type Mark struct {
	b   *block
	off uintptr
}

// Arena is a block-chained bump allocator. It implements Allocator, so
// containers can allocate from it directly. Not goroutine-safe; use
// SafeArena when an arena must be shared.
type Arena struct {
	backing   Allocator
	first     *block
	cur       *block
	off       uintptr
	blockSize uintptr
	align     uintptr
	reserved  uintptr
	scrub     bool
	released  bool
	log       zerolog.Logger
}

type options struct {
	backing Allocator
	initial []byte
	align   uintptr
	scrub   bool
	log     zerolog.Logger
}

// Option configures an Arena created by NewArena.
type Option func(*options)

// WithBacking sets the allocator blocks are obtained from (Heap by default).
func WithBacking(a Allocator) Option {
	return func(o *options) { o.backing = a }
}

// WithInitialBlock seeds the arena with caller-owned memory. The arena uses
// it before asking the backing allocator for anything and never frees it.
func WithInitialBlock(buf []byte) Option {
	return func(o *options) { o.initial = buf }
}

// WithBlockAlignment sets the block alignment, a power of two.
func WithBlockAlignment(align uintptr) Option {
	return func(o *options) { o.align = align }
}

// WithScrub fills released memory with 0xCC so use-after-reset shows up.
func WithScrub(enabled bool) Option {
	return func(o *options) { o.scrub = enabled }
}

// WithLogger sets the logger for block lifecycle events.
func WithLogger(l zerolog.Logger) Option {
	return func(o *options) { o.log = l }
}

// NewArena creates an arena with the given block size.
// If blockSize <= 0, DefaultBlockSize is used. No memory is requested until
// the first allocation.
func NewArena(blockSize int, opts ...Option) *Arena {
	o := options{align: DefaultBlockAlignment, log: zerolog.Nop()}
	for _, opt := range opts {
		opt(&o)
	}
	a := &Arena{scrub: o.scrub, log: o.log}
	a.Init(o.backing, o.initial, blockSize, o.align)
	return a
}

// NewStackArena creates an arena whose first block is buf, sized to buf.
// Allocations stay in buf until it is exhausted.
func NewStackArena(buf []byte, opts ...Option) *Arena {
	return NewArena(len(buf), append(opts, WithInitialBlock(buf))...)
}

// Init sets up a zero Arena. A nil backing allocator means Heap,
// blockSize <= 0 means DefaultBlockSize and blockAlignment 0 means
// DefaultBlockAlignment. When initial is non-empty it becomes the first
// block; its start is rounded up to blockAlignment.
func (a *Arena) Init(backing Allocator, initial []byte, blockSize int, blockAlignment uintptr) {
	if blockSize <= 0 {
		blockSize = DefaultBlockSize
	}
	if blockAlignment == 0 {
		blockAlignment = DefaultBlockAlignment
	}
	if blockAlignment&(blockAlignment-1) != 0 {
		panic("arena: block alignment must be a power of two")
	}

	a.backing = OrHeap(backing)
	a.blockSize = uintptr(blockSize)
	a.align = blockAlignment
	a.first, a.cur, a.off = nil, nil, 0
	a.reserved = 0
	a.released = false

	if len(initial) > 0 {
		base := uintptr(unsafe.Pointer(unsafe.SliceData(initial)))
		skip := alignUp(base, blockAlignment) - base
		if skip < uintptr(len(initial)) {
			usable := initial[skip:]
			a.first = &block{
				base: unsafe.Pointer(unsafe.SliceData(usable)),
				size: uintptr(len(usable)),
			}
			a.cur = a.first
			a.reserved = a.first.size
		}
	}
}

// Push returns size uninitialized bytes aligned to align, which must be a
// power of two no larger than the block alignment. Push never fails; it
// panics if the backing allocator is exhausted.
func (a *Arena) Push(size, align uintptr) unsafe.Pointer {
	a.panicIfReleased()
	if align == 0 || align&(align-1) != 0 {
		panic("arena: alignment must be a power of two")
	}
	if align > a.align {
		panic("arena: alignment exceeds block alignment")
	}

	// Fast path: bump within the current block
	if c := a.cur; c != nil {
		off := alignUp(a.off, align)
		if off <= c.size && size <= c.size-off {
			a.off = off + size
			return unsafe.Add(c.base, off)
		}
	}

	// Slow path: block bases are aligned to a.align, so offset 0 fits
	c := a.nextBlock(size)
	a.off = size
	return c.base
}

// Realloc implements Allocator. Growing always pushes a fresh region and
// copies; frees are no-ops until Reset, SetMark or Release.
func (a *Arena) Realloc(ptr unsafe.Pointer, oldSize, size, align uintptr) unsafe.Pointer {
	if size == 0 {
		return nil
	}
	p := a.Push(size, align)
	if ptr != nil {
		copyBytes(p, ptr, min(oldSize, size))
	}
	return p
}

// AllocBytes returns a []byte of n bytes pointing into the arena, aligned
// to pointer size. The contents are not zeroed. Returns nil if n <= 0.
func (a *Arena) AllocBytes(n int) []byte {
	if n <= 0 {
		a.panicIfReleased()
		return nil
	}
	p := a.Push(uintptr(n), min(unsafe.Sizeof(uintptr(0)), a.align))
	return unsafe.Slice((*byte)(p), n)
}

// EnsureCapacity makes sure the next n bytes (alignment 1) can be pushed
// without touching the backing allocator.
func (a *Arena) EnsureCapacity(n int) {
	a.panicIfReleased()
	if n <= 0 {
		return
	}
	if a.cur == nil || a.off+uintptr(n) > a.cur.size {
		a.nextBlock(uintptr(n))
		a.off = 0
	}
}

// nextBlock makes a block with at least size free bytes current. A block
// left unused after a rewind is taken if it is large enough; otherwise a
// new one is inserted after the current block.
func (a *Arena) nextBlock(size uintptr) *block {
	var next *block
	if c := a.cur; c != nil {
		c.used = a.off
		next = c.next
		if next != nil && size <= next.size {
			a.cur = next
			a.log.Trace().Uint64("size", uint64(next.size)).Msg("arena: reusing block")
			return next
		}
	}

	n := max(a.blockSize, size)
	p := a.backing.Realloc(nil, 0, n, a.align)
	if p == nil {
		panic("arena: backing allocator exhausted")
	}
	if uintptr(p)&(a.align-1) != 0 {
		panic("arena: backing allocator returned misaligned block")
	}

	b := &block{base: p, size: n, owned: true, next: next}
	if a.cur != nil {
		a.cur.next = b
	} else {
		a.first = b
	}
	a.cur = b
	a.reserved += n

	a.log.Debug().
		Uint64("size", uint64(n)).
		Uint64("reserved", uint64(a.reserved)).
		Msg("arena: acquired block")
	return b
}

// Mark returns a checkpoint of the current cursor.
func (a *Arena) Mark() Mark {
	return Mark{b: a.cur, off: a.off}
}

// SetMark rewinds the arena to m, releasing in bulk everything allocated
// since m was taken. Blocks are kept and reused by later allocations.
func (a *Arena) SetMark(m Mark) {
	a.panicIfReleased()
	if m.b == nil {
		m = Mark{b: a.first}
	}
	if a.scrub {
		a.scrubRange(m, a.cur, a.off)
	}
	a.cur, a.off = m.b, m.off
}

// Reset drops every block after the first and rewinds to the start of the
// first block. The first block is dropped too if it is larger than the
// configured block size.
func (a *Arena) Reset() {
	a.panicIfReleased()
	if f := a.first; f != nil {
		dropped := 0
		for b := f.next; b != nil; {
			next := b.next
			a.freeBlock(b)
			dropped++
			b = next
		}
		f.next = nil

		if f.size > a.blockSize {
			a.freeBlock(f)
			a.first = nil
			dropped++
		} else {
			f.used = 0
			if a.scrub {
				fill(f.base, f.size)
			}
		}
		if dropped > 0 {
			a.log.Debug().Int("dropped", dropped).Msg("arena: reset")
		}
	}
	a.cur, a.off = a.first, 0
}

// Release returns every block obtained from the backing allocator and makes
// the arena unusable. Caller-supplied initial memory is left alone.
// Any subsequent allocation panics.
func (a *Arena) Release() {
	if a.released {
		return
	}
	for b := a.first; b != nil; {
		next := b.next
		a.freeBlock(b)
		b = next
	}
	a.first, a.cur, a.off = nil, nil, 0
	a.released = true
	a.log.Debug().Msg("arena: released")
}

func (a *Arena) freeBlock(b *block) {
	if b.owned {
		a.backing.Realloc(b.base, b.size, 0, a.align)
	}
	a.reserved -= b.size
	b.next = nil
}

// scrubRange fills everything between m and the cursor (to, toOff).
func (a *Arena) scrubRange(m Mark, to *block, toOff uintptr) {
	if m.b == nil || to == nil {
		return
	}
	for b, off := m.b, m.off; b != nil; b, off = b.next, 0 {
		end := b.size
		if b == to {
			end = toOff
		}
		if end > off {
			fill(unsafe.Add(b.base, off), end-off)
		}
		if b == to {
			return
		}
	}
}

func fill(p unsafe.Pointer, n uintptr) {
	buf := unsafe.Slice((*byte)(p), n)
	for i := range buf {
		buf[i] = ScrubByte
	}
}

// panicIfReleased panics if the arena has been released.
func (a *Arena) panicIfReleased() {
	if a.released {
		panic("arena: use after Release()")
	}
	if a.backing == nil {
		panic("arena: use of uninitialized Arena")
	}
}
