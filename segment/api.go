//go:build unix

package segment

import (
	"github.com/kelbyrg/sbs/codec"
	"github.com/kelbyrg/sbs/value"
)

// withLock opens (optionally auto-creating) and sizes the named segment,
// runs fn while the lock is held, and always releases the lock and
// mapping afterward — the single call site both ReadMemory and
// WriteMemory route through (spec §5).
func withLock(name string, newSize int, autoCreate bool, fn func(seg *Segment) error) error {
	seg, err := openAndSize(name, newSize, autoCreate)
	if err != nil {
		return err
	}
	defer seg.close()

	return fn(seg)
}

// CreateMemory creates a new named shared-memory segment with the given
// initial payload capacity (spec §6). Returns (false, nil) if the
// segment already exists and errorIfExists is false.
func CreateMemory(name string, preallocSize int, errorIfExists bool) (bool, error) {
	return Create(name, WithPreallocSize(preallocSize), WithErrorIfExists(errorIfExists))
}

// RemoveMemory unlinks the named segment (spec §6). Returns (false, nil)
// if the segment doesn't exist and throwError is false.
func RemoveMemory(name string, throwError bool) (bool, error) {
	return remove(name, throwError)
}

// ReadMemory opens the named segment, decodes its payload, and returns
// the decoded value (spec §6). A segment whose recorded capacity is zero
// decodes to a canonical None, matching spec §4.5's "never-written
// segment" boundary case.
func ReadMemory(name string) (value.Value, error) {
	var v value.Value

	err := withLock(name, 0, false, func(seg *Segment) error {
		if seg.maxCapacity() == 0 {
			v = value.None{}
			return nil
		}

		b := make([]byte, seg.maxCapacity())
		copy(b, seg.payload())

		decoded, err := codec.Decode(b)
		if err != nil {
			return err
		}
		v = decoded

		return nil
	})
	if err != nil {
		return nil, err
	}

	return v, nil
}

// WriteMemory encodes v and writes it into the named segment, growing
// the segment (with headroom) if the encoded form doesn't fit, and
// auto-creating the segment first when create is true (spec §6).
func WriteMemory(name string, v value.Value, create bool) (bool, error) {
	b, err := codec.Encode(v)
	if err != nil {
		return false, err
	}

	err = withLock(name, len(b), create, func(seg *Segment) error {
		copy(seg.payload(), b)
		return nil
	})
	if err != nil {
		return false, err
	}

	return true, nil
}
