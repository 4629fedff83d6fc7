// Package tag defines the closed tag-code table for the structured bytes
// wire format: the protocol markers and the per-type tag codes, including
// the five width-variant suffixes (E/1/2/D1/D2) most container-like
// families carry.
//
// Tag codes are assigned in a single closed table. Their numeric values
// must be preserved exactly to remain byte-compatible with existing
// encoded buffers; this package is the one place those numbers live.
package tag

// Tag identifies the type (and, for container-like families, the
// length-width variant) of an encoded value. It is always the leading
// byte of an encoded value.
type Tag uint8

// Protocol markers occupy the top of the byte range, counted down from
// 255, so future tag additions never collide with them.
const (
	Ext     Tag = 255 // reserved for the disabled shared-function RPC preview
	ProtoV1 Tag = 254 // legacy protocol marker (read-only decode path)
	ProtoV2 Tag = 253 // current protocol marker, emitted by every encode
)

// CurrentProtocol is the protocol marker every Encoder emits.
const CurrentProtocol = ProtoV2

// Str, Int, and the other scalar/composite tag codes. Families with a
// width ladder (E/1/2/D1/D2) list their five codes as a contiguous block;
// families without a distinct "empty" representation (Int, Decimal) omit
// the E slot.
const (
	StrE  Tag = 0
	Str1  Tag = 1
	Str2  Tag = 2
	StrD1 Tag = 3
	StrD2 Tag = 4

	Int1  Tag = 5 // payload: 1 byte, two's-complement little-endian
	Int2  Tag = 6 // payload: 2 bytes
	Int3  Tag = 7 // payload: 3 bytes
	Int4  Tag = 8 // payload: 4 bytes
	Int5  Tag = 9 // payload: 5 bytes
	IntD1 Tag = 10
	IntD2 Tag = 11

	FloatS Tag = 12 // payload: 8 bytes, IEEE 754 little-endian

	BoolT Tag = 13
	BoolF Tag = 14

	ComplexS Tag = 15 // payload: 16 bytes, real then imag

	NoneS      Tag = 16
	EllipsisS  Tag = 17

	BytesE  Tag = 18
	Bytes1  Tag = 19
	Bytes2  Tag = 20
	BytesD1 Tag = 21
	BytesD2 Tag = 22

	ByteArrayE  Tag = 23
	ByteArray1  Tag = 24
	ByteArray2  Tag = 25
	ByteArrayD1 Tag = 26
	ByteArrayD2 Tag = 27

	ListE  Tag = 28
	List1  Tag = 29
	List2  Tag = 30
	ListD1 Tag = 31
	ListD2 Tag = 32

	SetE  Tag = 33
	Set1  Tag = 34
	Set2  Tag = 35
	SetD1 Tag = 36
	SetD2 Tag = 37

	TupleE  Tag = 38
	Tuple1  Tag = 39
	Tuple2  Tag = 40
	TupleD1 Tag = 41
	TupleD2 Tag = 42

	DictE  Tag = 43
	Dict1  Tag = 44
	Dict2  Tag = 45
	DictD1 Tag = 46
	DictD2 Tag = 47

	FrozenSetE  Tag = 48
	FrozenSet1  Tag = 49
	FrozenSet2  Tag = 50
	FrozenSetD1 Tag = 51
	FrozenSetD2 Tag = 52

	DatetimeDT Tag = 53 // 1 length byte + ISO-8601 text
	DatetimeTD Tag = 54 // three int32 little-endian: days, seconds, micros
	DatetimeD  Tag = 55
	DatetimeT  Tag = 56

	UUIDS Tag = 57 // payload: 32 ASCII hex chars, no dashes

	MemoryViewE  Tag = 58
	MemoryView1  Tag = 59
	MemoryView2  Tag = 60
	MemoryViewD1 Tag = 61
	MemoryViewD2 Tag = 62

	// Decimal has no "empty" slot: its block starts one code lower than
	// the generic width-ladder pattern (spec'd explicitly; Decimal("")
	// is represented by the "1" variant with a zero-length payload).
	Decimal1  Tag = 63
	Decimal2  Tag = 64
	DecimalD1 Tag = 65
	DecimalD2 Tag = 66

	RangeS Tag = 67 // tag only, followed by three fully-encoded Int values

	NamedTupleE  Tag = 68
	NamedTuple1  Tag = 69
	NamedTuple2  Tag = 70
	NamedTupleD1 Tag = 71
	NamedTupleD2 Tag = 72

	DequeE  Tag = 73
	Deque1  Tag = 74
	Deque2  Tag = 75
	DequeD1 Tag = 76
	DequeD2 Tag = 77

	CounterE  Tag = 78
	Counter1  Tag = 79
	Counter2  Tag = 80
	CounterD1 Tag = 81
	CounterD2 Tag = 82
)

// IsProtocolMarker reports whether t is one of the reserved markers
// counted down from 255, rather than a type tag.
func IsProtocolMarker(t Tag) bool {
	return t >= ProtoV2
}

// Width identifies the five length-width variants a container-like
// family carries.
type Width uint8

const (
	WidthEmpty Width = iota // E: length is 0, no length bytes follow
	Width1                  // 1: one length byte
	Width2                  // 2: two length bytes
	WidthD1                 // D1: one byte k, then k length bytes
	WidthD2                 // D2: one byte j, then j bytes encoding k, then k length bytes
)

func (w Width) String() string {
	switch w {
	case WidthEmpty:
		return "E"
	case Width1:
		return "1"
	case Width2:
		return "2"
	case WidthD1:
		return "D1"
	case WidthD2:
		return "D2"
	default:
		return "unknown"
	}
}

// Family is a contiguous 5-tag block (E,1,2,D1,D2) or, for Decimal, a
// 4-tag block with no E slot (base is the "1" tag and WidthEmpty is
// unused). Callers never construct one directly; they use the exported
// Xxx Family vars below.
type Family struct {
	base     Tag // tag code of the WidthEmpty (or "1", for Decimal) variant
	hasEmpty bool
}

// Families, exported by name so callers never hardcode tag arithmetic.
var (
	StrFamily        = Family{base: StrE, hasEmpty: true}
	BytesFamily      = Family{base: BytesE, hasEmpty: true}
	ByteArrayFamily  = Family{base: ByteArrayE, hasEmpty: true}
	ListFamily       = Family{base: ListE, hasEmpty: true}
	SetFamily        = Family{base: SetE, hasEmpty: true}
	TupleFamily      = Family{base: TupleE, hasEmpty: true}
	DictFamily       = Family{base: DictE, hasEmpty: true}
	FrozenSetFamily  = Family{base: FrozenSetE, hasEmpty: true}
	MemoryViewFamily = Family{base: MemoryViewE, hasEmpty: true}
	DecimalFamily    = Family{base: Decimal1, hasEmpty: false}
	NamedTupleFamily = Family{base: NamedTupleE, hasEmpty: true}
	DequeFamily      = Family{base: DequeE, hasEmpty: true}
	CounterFamily    = Family{base: CounterE, hasEmpty: true}
)

// AtWidth returns the tag for a given width variant within this family.
// Passing WidthEmpty to a family without an empty slot (Decimal) returns
// the "1" variant, matching spec.md's documented narrowest-representation
// rule (an empty Decimal is encoded as Decimal1 with a zero-length payload).
func (f Family) AtWidth(w Width) Tag {
	if !f.hasEmpty {
		if w == WidthEmpty {
			w = Width1
		}
		return f.base + Tag(w) - Tag(Width1)
	}
	return f.base + Tag(w)
}

// HasEmpty reports whether this family has a distinct Empty (E) tag.
func (f Family) HasEmpty() bool { return f.hasEmpty }

// FamilyKind names a width-laddered family independent of its tag
// arithmetic, so a decoder can dispatch on what a tag means rather than
// where it sits in the table.
type FamilyKind uint8

const (
	FamilyStr FamilyKind = iota
	FamilyBytes
	FamilyByteArray
	FamilyList
	FamilySet
	FamilyTuple
	FamilyDict
	FamilyFrozenSet
	FamilyMemoryView
	FamilyDecimal
	FamilyNamedTuple
	FamilyDeque
	FamilyCounter
)

// FamilyOf reports which width-laddered family t belongs to and which
// width variant it is, or ok=false if t is not a member of any family
// (a scalar tag, a protocol marker, or unassigned).
func FamilyOf(t Tag) (FamilyKind, Width, bool) {
	checks := []struct {
		kind FamilyKind
		f    Family
	}{
		{FamilyStr, StrFamily}, {FamilyBytes, BytesFamily}, {FamilyByteArray, ByteArrayFamily},
		{FamilyList, ListFamily}, {FamilySet, SetFamily}, {FamilyTuple, TupleFamily},
		{FamilyDict, DictFamily}, {FamilyFrozenSet, FrozenSetFamily}, {FamilyMemoryView, MemoryViewFamily},
		{FamilyDecimal, DecimalFamily}, {FamilyNamedTuple, NamedTupleFamily}, {FamilyDeque, DequeFamily},
		{FamilyCounter, CounterFamily},
	}
	for _, c := range checks {
		if c.f.hasEmpty {
			if t >= c.f.base && t <= c.f.base+4 {
				return c.kind, Width(t - c.f.base), true
			}
		} else {
			if t >= c.f.base && t <= c.f.base+3 {
				return c.kind, Width(t-c.f.base) + 1, true
			}
		}
	}

	return 0, 0, false
}

// String returns a human-readable name for a tag, for error messages and
// debugging. Unknown tags return "unknown".
func (t Tag) String() string {
	switch t {
	case ProtoV1:
		return "PROT_v1"
	case ProtoV2:
		return "PROT_v2"
	case Ext:
		return "EXT"
	case FloatS:
		return "Float"
	case BoolT:
		return "Bool_T"
	case BoolF:
		return "Bool_F"
	case ComplexS:
		return "Complex"
	case NoneS:
		return "None"
	case EllipsisS:
		return "Ellipsis"
	case DatetimeDT:
		return "Datetime"
	case DatetimeTD:
		return "TimeDelta"
	case DatetimeD:
		return "Date"
	case DatetimeT:
		return "Time"
	case UUIDS:
		return "UUID"
	case RangeS:
		return "Range"
	default:
		if t >= Int1 && t <= IntD2 {
			return "Int"
		}
		return namedFamilyTag(t)
	}
}

func namedFamilyTag(t Tag) string {
	type named struct {
		name string
		f    Family
	}
	families := []named{
		{"Str", StrFamily}, {"Bytes", BytesFamily}, {"ByteArray", ByteArrayFamily},
		{"List", ListFamily}, {"Set", SetFamily}, {"Tuple", TupleFamily},
		{"Dict", DictFamily}, {"FrozenSet", FrozenSetFamily}, {"MemoryView", MemoryViewFamily},
		{"NamedTuple", NamedTupleFamily}, {"Deque", DequeFamily}, {"Counter", CounterFamily},
	}
	for _, nf := range families {
		lo := nf.f.base
		hi := nf.f.base + 4
		if !nf.f.hasEmpty {
			hi = nf.f.base + 3
		}
		if t >= lo && t <= hi {
			return nf.name
		}
	}
	if t == Decimal1 || t == Decimal2 || t == DecimalD1 || t == DecimalD2 {
		return "Decimal"
	}
	return "unknown"
}
