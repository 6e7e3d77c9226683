package hashing

import (
	"math/bits"
	"unsafe"
)

// Seed is mixed into every scalar and string hash so that a zero key never
// reaches the mixer as zero.
const Seed uint32 = 2607369547

// Fmix32 is the MurmurHash3 32-bit finalizer.
func Fmix32(h uint32) uint32 {
	h ^= h >> 16
	h *= 0x85ebca6b
	h ^= h >> 13
	h *= 0xc2b2ae35
	h ^= h >> 16
	return h
}

// Fmix64 is the MurmurHash3 64-bit finalizer.
func Fmix64(k uint64) uint64 {
	k ^= k >> 33
	k *= 0xff51afd7ed558ccd
	k ^= k >> 33
	k *= 0xc4ceb9fe1a85ec53
	k ^= k >> 33
	return k
}

// Tag sets the top bit of h. Containers store tagged hashes so that zero
// can mark an empty slot.
func Tag(h uint32) uint32 {
	return h | 1<<31
}

const (
	c1 = 0xcc9e2d51
	c2 = 0x1b873593
)

// Murmur3 returns the 32-bit MurmurHash3 (x86_32) of data.
func Murmur3(data []byte, seed uint32) uint32 {
	h := seed
	n := len(data)

	i := 0
	for ; i+4 <= n; i += 4 {
		k := uint32(data[i]) | uint32(data[i+1])<<8 | uint32(data[i+2])<<16 | uint32(data[i+3])<<24
		k *= c1
		k = bits.RotateLeft32(k, 15)
		k *= c2

		h ^= k
		h = bits.RotateLeft32(h, 13)
		h = h*5 + 0xe6546b64
	}

	var k uint32
	switch n & 3 {
	case 3:
		k ^= uint32(data[i+2]) << 16
		fallthrough
	case 2:
		k ^= uint32(data[i+1]) << 8
		fallthrough
	case 1:
		k ^= uint32(data[i])
		k *= c1
		k = bits.RotateLeft32(k, 15)
		k *= c2
		h ^= k
	}

	h ^= uint32(n)
	return Fmix32(h)
}

// Murmur3String is Murmur3 over the bytes of s, without copying.
func Murmur3String(s string, seed uint32) uint32 {
	return Murmur3(unsafe.Slice(unsafe.StringData(s), len(s)), seed)
}
