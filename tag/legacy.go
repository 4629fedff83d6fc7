package tag

// Legacy v1 tag table. v1 predates the D2 (dynamic-length-of-length)
// width variant (spec §4.1/§9): every container-like family carries only
// E/1/2/D1, with D1's length-of-length byte already able to address any
// realistic length. Encoders never emit v1; it exists purely as a
// read-only decode path (spec §9: "Legacy (v1) support is preserved as a
// read-only decoder path").
const (
	V1StrE  Tag = 0
	V1Str1  Tag = 1
	V1Str2  Tag = 2
	V1StrD1 Tag = 3

	V1Int1  Tag = 4
	V1Int2  Tag = 5
	V1Int3  Tag = 6
	V1Int4  Tag = 7
	V1IntD1 Tag = 8

	V1FloatS    Tag = 9
	V1BoolT     Tag = 10
	V1BoolF     Tag = 11
	V1ComplexS  Tag = 12
	V1NoneS     Tag = 13
	V1EllipsisS Tag = 14

	V1BytesE  Tag = 15
	V1Bytes1  Tag = 16
	V1Bytes2  Tag = 17
	V1BytesD1 Tag = 18

	V1ByteArrayE  Tag = 19
	V1ByteArray1  Tag = 20
	V1ByteArray2  Tag = 21
	V1ByteArrayD1 Tag = 22

	V1ListE  Tag = 23
	V1List1  Tag = 24
	V1List2  Tag = 25
	V1ListD1 Tag = 26

	V1SetE  Tag = 27
	V1Set1  Tag = 28
	V1Set2  Tag = 29
	V1SetD1 Tag = 30

	V1TupleE  Tag = 31
	V1Tuple1  Tag = 32
	V1Tuple2  Tag = 33
	V1TupleD1 Tag = 34

	V1DictE  Tag = 35
	V1Dict1  Tag = 36
	V1Dict2  Tag = 37
	V1DictD1 Tag = 38

	V1FrozenSetE  Tag = 39
	V1FrozenSet1  Tag = 40
	V1FrozenSet2  Tag = 41
	V1FrozenSetD1 Tag = 42

	V1DatetimeDT Tag = 43
	V1DatetimeTD Tag = 44
	V1DatetimeD  Tag = 45
	V1DatetimeT  Tag = 46

	V1UUIDS Tag = 47

	V1MemoryViewE  Tag = 48
	V1MemoryView1  Tag = 49
	V1MemoryView2  Tag = 50
	V1MemoryViewD1 Tag = 51

	V1Decimal1  Tag = 52
	V1Decimal2  Tag = 53
	V1DecimalD1 Tag = 54

	V1RangeS Tag = 55

	// NamedTuple, Deque, and Counter were added after v1 shipped; a v1
	// buffer never contains these tags, and a v1 decoder that encounters
	// one treats it as any other unrecognized byte (ErrInvalidTag).
)

// v1Family mirrors Family but for the legacy table, which stops at D1
// (v1Family itself is unexported; callers use V1AtWidth/V1FamilyOf).
type v1Family struct {
	base     Tag
	hasEmpty bool
}

// atWidth mirrors family.AtWidth but the ladder stops at WidthD1; v1 has
// no D2 variant.
func (f v1Family) atWidth(w Width) Tag {
	if !f.hasEmpty {
		if w == WidthEmpty {
			w = Width1
		}
		return f.base + Tag(w) - Tag(Width1)
	}
	return f.base + Tag(w)
}

var (
	v1StrFamily        = v1Family{base: V1StrE, hasEmpty: true}
	v1BytesFamily      = v1Family{base: V1BytesE, hasEmpty: true}
	v1ByteArrayFamily  = v1Family{base: V1ByteArrayE, hasEmpty: true}
	v1ListFamily       = v1Family{base: V1ListE, hasEmpty: true}
	v1SetFamily        = v1Family{base: V1SetE, hasEmpty: true}
	v1TupleFamily      = v1Family{base: V1TupleE, hasEmpty: true}
	v1DictFamily       = v1Family{base: V1DictE, hasEmpty: true}
	v1FrozenSetFamily  = v1Family{base: V1FrozenSetE, hasEmpty: true}
	v1MemoryViewFamily = v1Family{base: V1MemoryViewE, hasEmpty: true}
	v1DecimalFamily    = v1Family{base: V1Decimal1, hasEmpty: false}
)

// V1AtWidth returns the v1 tag for the given family kind and width. Width
// must not be WidthD2; v1 has no such variant.
func V1AtWidth(k FamilyKind, w Width) (Tag, bool) {
	f, ok := v1FamilyFor(k)
	if !ok || w == WidthD2 {
		return 0, false
	}

	return f.atWidth(w), true
}

// V1FamilyOf is the legacy-table counterpart of FamilyOf: given a v1 tag
// byte, returns which family it belongs to and its width variant
// (WidthEmpty..WidthD1; v1 never reports WidthD2).
func V1FamilyOf(t Tag) (FamilyKind, Width, bool) {
	checks := []struct {
		kind FamilyKind
		f    v1Family
	}{
		{FamilyStr, v1StrFamily}, {FamilyBytes, v1BytesFamily}, {FamilyByteArray, v1ByteArrayFamily},
		{FamilyList, v1ListFamily}, {FamilySet, v1SetFamily}, {FamilyTuple, v1TupleFamily},
		{FamilyDict, v1DictFamily}, {FamilyFrozenSet, v1FrozenSetFamily}, {FamilyMemoryView, v1MemoryViewFamily},
		{FamilyDecimal, v1DecimalFamily},
	}
	for _, c := range checks {
		if c.f.hasEmpty {
			if t >= c.f.base && t <= c.f.base+3 {
				return c.kind, Width(t - c.f.base), true
			}
		} else {
			if t >= c.f.base && t <= c.f.base+2 {
				return c.kind, Width(t-c.f.base) + 1, true
			}
		}
	}

	return 0, 0, false
}

func v1FamilyFor(k FamilyKind) (v1Family, bool) {
	switch k {
	case FamilyStr:
		return v1StrFamily, true
	case FamilyBytes:
		return v1BytesFamily, true
	case FamilyByteArray:
		return v1ByteArrayFamily, true
	case FamilyList:
		return v1ListFamily, true
	case FamilySet:
		return v1SetFamily, true
	case FamilyTuple:
		return v1TupleFamily, true
	case FamilyDict:
		return v1DictFamily, true
	case FamilyFrozenSet:
		return v1FrozenSetFamily, true
	case FamilyMemoryView:
		return v1MemoryViewFamily, true
	case FamilyDecimal:
		return v1DecimalFamily, true
	default:
		return v1Family{}, false
	}
}
