package hashing

import (
	"bytes"

	"github.com/cespare/xxhash/v2"
)

// XXString hashes strings with xxHash64 folded to 32 bits. It is faster
// than String for long keys.
type XXString struct{}

func (XXString) Hash(s string) uint32 { return fold(xxhash.Sum64String(s)) }
func (XXString) Equal(a, b string) bool { return a == b }

// XXBytes is XXString for byte slices.
type XXBytes struct{}

func (XXBytes) Hash(b []byte) uint32 { return fold(xxhash.Sum64(b)) }
func (XXBytes) Equal(a, b []byte) bool { return bytes.Equal(a, b) }

func fold(h uint64) uint32 {
	return uint32(h ^ h>>32)
}
