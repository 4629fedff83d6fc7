// Package value implements V, the abstract sum type spec §3 describes:
// the closed set of dynamic values the wire format can carry. Rather than
// modeling it as a single tagged struct (as format.EncodingType/
// CompressionType do in the teacher for a 2-variant enum), this package
// follows the shape og-rek's pickle decoder uses for a much larger,
// Python-shaped dynamic value set: a marker interface plus one concrete
// Go type per variant, so the encoder and decoder dispatch with a plain
// exhaustive type switch instead of hand-rolled tag-field bookkeeping.
package value

import "math/big"

// Value is the marker interface every supported variant implements. The
// variant set is closed: encoding a type outside this set is always an
// error (errs.ErrUnsupported), and the interface's unexported method
// prevents external packages from growing the set.
type Value interface {
	sbsValue()
}

// Kind enumerates the variants for diagnostics and dispatch tables that
// need a comparable, switchable value instead of a type switch (e.g.
// Equal's same-variant check).
type Kind uint8

const (
	KindStr Kind = iota
	KindInt
	KindFloat
	KindBool
	KindComplex
	KindNone
	KindEllipsis
	KindBytes
	KindByteArray
	KindMemoryView
	KindDecimal
	KindUUID
	KindDateTime
	KindDate
	KindTime
	KindTimeDelta
	KindRange
	KindList
	KindTuple
	KindDeque
	KindNamedTuple
	KindSet
	KindFrozenSet
	KindDict
	KindCounter
)

// KindOf returns the Kind of v, or a false second return if v is nil or
// (should the interface ever be implemented outside this package, which
// it cannot be) unrecognized.
func KindOf(v Value) (Kind, bool) {
	switch v.(type) {
	case Str:
		return KindStr, true
	case Int:
		return KindInt, true
	case Float:
		return KindFloat, true
	case Bool:
		return KindBool, true
	case Complex:
		return KindComplex, true
	case None:
		return KindNone, true
	case Ellipsis:
		return KindEllipsis, true
	case Bytes:
		return KindBytes, true
	case ByteArray:
		return KindByteArray, true
	case MemoryView:
		return KindMemoryView, true
	case Decimal:
		return KindDecimal, true
	case UUID:
		return KindUUID, true
	case DateTime:
		return KindDateTime, true
	case Date:
		return KindDate, true
	case Time:
		return KindTime, true
	case TimeDelta:
		return KindTimeDelta, true
	case Range:
		return KindRange, true
	case List:
		return KindList, true
	case Tuple:
		return KindTuple, true
	case Deque:
		return KindDeque, true
	case NamedTuple:
		return KindNamedTuple, true
	case Set:
		return KindSet, true
	case FrozenSet:
		return KindFrozenSet, true
	case Dict:
		return KindDict, true
	case Counter:
		return KindCounter, true
	default:
		return 0, false
	}
}

// Str is a UTF-8 text value.
type Str string

func (Str) sbsValue() {}

// Int is a signed, arbitrary-precision integer (spec §3). math/big is the
// natural stdlib fit: no arbitrary-precision integer library appears
// anywhere in the example pack, and the wire format's own width ladder
// (1..5 bytes, D1, D2) is what actually bounds practical encoded sizes.
type Int struct {
	V *big.Int
}

func (Int) sbsValue() {}

// NewInt wraps an int64 as an Int value.
func NewInt(v int64) Int { return Int{V: big.NewInt(v)} }

// Float is a 64-bit IEEE 754 value.
type Float float64

func (Float) sbsValue() {}

// Bool is a boolean value.
type Bool bool

func (Bool) sbsValue() {}

// Complex is a complex number with 64-bit IEEE 754 real and imaginary
// parts.
type Complex struct {
	Re, Im float64
}

func (Complex) sbsValue() {}

// None is the singleton absent-value marker.
type None struct{}

func (None) sbsValue() {}

// Ellipsis is the singleton "..." marker.
type Ellipsis struct{}

func (Ellipsis) sbsValue() {}

// Bytes is an immutable byte blob.
type Bytes []byte

func (Bytes) sbsValue() {}

// ByteArray is a mutable byte blob. The wire format treats it identically
// to Bytes (same payload shape); the distinction exists only so decoded
// values round-trip to the same Go type the producer used.
type ByteArray []byte

func (ByteArray) sbsValue() {}

// MemoryView is an opaque byte-addressable view. Per spec §9 Open
// Question 3, this format treats it as an opaque byte blob; the source's
// richer buffer/stride fidelity is out of scope.
type MemoryView []byte

func (MemoryView) sbsValue() {}

// Decimal holds decimal text verbatim, never parsed into a float. The
// wire format is not in the business of choosing a decimal
// representation; that is left to the consumer's arbitrary-precision
// decimal constructor (spec §4.3, Decimal_* tag action).
type Decimal string

func (Decimal) sbsValue() {}

// UUID holds exactly 32 ASCII hex characters (no dashes), per spec §3/§4.1.
type UUID string

func (UUID) sbsValue() {}
