// Package sbs provides a self-describing binary wire format for a closed
// set of dynamically-typed values, plus a shared-memory segment manager
// for passing encoded values between processes.
//
// # Basic usage
//
// Encoding and decoding a value:
//
//	b, err := sbs.Encode(value.List{value.NewInt(1), value.Str("x")})
//	v, err := sbs.Decode(b)
//
// Passing a value through a named shared-memory segment:
//
//	sbs.CreateMemory("my-channel", 0, false)
//	sbs.WriteMemory("my-channel", value.NewInt(42), false)
//	v, err := sbs.ReadMemory("my-channel")
//	sbs.RemoveMemory("my-channel", false)
//
// # Package structure
//
// This package provides convenient top-level wrappers around the codec
// and segment packages. For advanced usage — a reusable Encoder, custom
// segment options — use those packages directly.
package sbs

import (
	"github.com/kelbyrg/sbs/codec"
	"github.com/kelbyrg/sbs/segment"
	"github.com/kelbyrg/sbs/value"
)

// Encode serializes v into the current wire format.
func Encode(v value.Value) ([]byte, error) {
	return codec.Encode(v)
}

// Decode parses an encoded buffer back into a Value, dispatching to the
// legacy v1 decoder when the buffer is stamped with the legacy protocol
// marker.
func Decode(b []byte) (value.Value, error) {
	return codec.Decode(b)
}

// CreateMemory creates a new named shared-memory segment with the given
// initial payload capacity.
func CreateMemory(name string, preallocSize int, errorIfExists bool) (bool, error) {
	return segment.CreateMemory(name, preallocSize, errorIfExists)
}

// RemoveMemory unlinks the named shared-memory segment.
func RemoveMemory(name string, throwError bool) (bool, error) {
	return segment.RemoveMemory(name, throwError)
}

// ReadMemory decodes and returns the value currently stored in the named
// segment.
func ReadMemory(name string) (value.Value, error) {
	return segment.ReadMemory(name)
}

// WriteMemory encodes v and writes it into the named segment, growing
// the segment (and optionally creating it) as needed.
func WriteMemory(name string, v value.Value, create bool) (bool, error) {
	return segment.WriteMemory(name, v, create)
}
