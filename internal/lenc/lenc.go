// Package lenc implements the wire format's little-endian, minimal-width
// length codec (spec §4.1): an unsigned integer v is written as k bytes,
// byte i holding (v >> 8i) & 0xFF, with k chosen minimal.
//
// Grounded on the teacher's inline varint-width calculation
// (encoding/tag.go's varintLen), adapted from a base-128 uvarint ladder
// to this format's fixed byte-width ladder since the wire format calls
// for raw little-endian bytes, not uvarint, as the length encoding.
package lenc

// Width returns the minimal number of bytes needed to hold v, i.e.
// ceil(log256(v+1)), with Width(0) == 0.
func Width(v uint64) int {
	if v == 0 {
		return 0
	}

	n := 0
	for v > 0 {
		n++
		v >>= 8
	}

	return n
}

// MaxD1 is the largest byte-width D1 can express in its single length-of-
// -length byte (spec §4.1: "1 ≤ k ≤ 255").
const MaxD1 = 255

// PutUint writes v into dst[:width] in little-endian order. dst must have
// length >= width. width must equal Width(v) truncated/extended by the
// caller (callers always pass the exact ladder width selected for the
// tag variant in use, e.g. 1 or 2 for the "1"/"2" tags, or Width(v) for
// D1/D2).
func PutUint(dst []byte, v uint64, width int) {
	for i := 0; i < width; i++ {
		dst[i] = byte(v >> (8 * i))
	}
}

// Uint reads a little-endian unsigned integer from the first width bytes
// of src. src must have length >= width.
func Uint(src []byte, width int) uint64 {
	var v uint64
	for i := 0; i < width; i++ {
		v |= uint64(src[i]) << (8 * i)
	}

	return v
}

// AppendUint appends the little-endian width-byte encoding of v to dst
// and returns the extended slice.
func AppendUint(dst []byte, v uint64, width int) []byte {
	start := len(dst)
	dst = append(dst, make([]byte, width)...)
	PutUint(dst[start:], v, width)

	return dst
}
