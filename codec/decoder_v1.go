package codec

import (
	"fmt"
	"math"
	"unicode/utf8"

	"github.com/kelbyrg/sbs/internal/errs"
	"github.com/kelbyrg/sbs/tag"
	"github.com/kelbyrg/sbs/value"
)

// decodeValueV1 decodes a buffer written under the legacy v1 tag table
// (spec §9: "Legacy (v1) support is preserved as a read-only decoder
// path"). v1 differs from the current protocol in its tag numbering, in
// lacking Int5/IntD2 and the D2 width variant, and in having no
// NamedTuple, Deque or Counter families; the grammar shape otherwise
// matches decodeValue exactly.
func decodeValueV1(c *cursor, depth int) (value.Value, error) {
	t, err := readTag(c)
	if err != nil {
		return nil, err
	}

	if fk, w, ok := tag.V1FamilyOf(t); ok {
		return decodeFamilyValueV1(c, depth, fk, w)
	}

	switch t {
	case tag.V1Int1, tag.V1Int2, tag.V1Int3, tag.V1Int4:
		return decodeFixedInt(c, int(t-tag.V1Int1)+1)
	case tag.V1IntD1:
		return decodeD1Int(c)
	case tag.V1FloatS:
		bits, err := c.readUint(8)
		if err != nil {
			return nil, err
		}
		return value.Float(math.Float64frombits(bits)), nil
	case tag.V1BoolT:
		return value.Bool(true), nil
	case tag.V1BoolF:
		return value.Bool(false), nil
	case tag.V1ComplexS:
		reb, err := c.readUint(8)
		if err != nil {
			return nil, err
		}
		imb, err := c.readUint(8)
		if err != nil {
			return nil, err
		}
		return value.Complex{Re: math.Float64frombits(reb), Im: math.Float64frombits(imb)}, nil
	case tag.V1NoneS:
		return value.None{}, nil
	case tag.V1EllipsisS:
		return value.Ellipsis{}, nil
	case tag.V1UUIDS:
		b, err := c.readBytes(32)
		if err != nil {
			return nil, err
		}
		for _, ch := range b {
			if !isHexDigit(ch) {
				return nil, fmt.Errorf("%w: UUID contains non-hex byte %q", errs.ErrConstructFailure, ch)
			}
		}
		return value.UUID(string(b)), nil
	case tag.V1DatetimeDT:
		s, err := readISOText(c)
		if err != nil {
			return nil, err
		}
		return decodeDateTime(s)
	case tag.V1DatetimeD:
		s, err := readISOText(c)
		if err != nil {
			return nil, err
		}
		return decodeDate(s)
	case tag.V1DatetimeT:
		s, err := readISOText(c)
		if err != nil {
			return nil, err
		}
		return decodeTimeOfDay(s)
	case tag.V1DatetimeTD:
		days, err := c.readUint(4)
		if err != nil {
			return nil, err
		}
		secs, err := c.readUint(4)
		if err != nil {
			return nil, err
		}
		micros, err := c.readUint(4)
		if err != nil {
			return nil, err
		}
		return value.TimeDelta{Days: int32(days), Seconds: int32(secs), Micros: int32(micros)}, nil
	case tag.V1RangeS:
		start, err := decodeIntOperandV1(c)
		if err != nil {
			return nil, err
		}
		stop, err := decodeIntOperandV1(c)
		if err != nil {
			return nil, err
		}
		step, err := decodeIntOperandV1(c)
		if err != nil {
			return nil, err
		}
		return value.Range{Start: start, Stop: stop, Step: step}, nil
	default:
		return nil, errs.ErrInvalidTag
	}
}

func decodeIntOperandV1(c *cursor) (value.Int, error) {
	t, err := readTag(c)
	if err != nil {
		return value.Int{}, err
	}
	switch t {
	case tag.V1Int1, tag.V1Int2, tag.V1Int3, tag.V1Int4:
		v, err := decodeFixedInt(c, int(t-tag.V1Int1)+1)
		iv, _ := v.(value.Int)
		return iv, err
	case tag.V1IntD1:
		v, err := decodeD1Int(c)
		iv, _ := v.(value.Int)
		return iv, err
	default:
		return value.Int{}, fmt.Errorf("%w: expected v1 Int tag inside Range", errs.ErrInvalidTag)
	}
}

// readLengthV1 mirrors readLength but stops at D1; v1 has no D2 variant.
func readLengthV1(c *cursor, w tag.Width) (int, error) {
	if w == tag.WidthD2 {
		return 0, fmt.Errorf("%w: v1 has no D2 width variant", errs.ErrInvalidTag)
	}

	return readLength(c, w)
}

func decodeFamilyValueV1(c *cursor, depth int, fk tag.FamilyKind, w tag.Width) (value.Value, error) {
	switch fk {
	case tag.FamilyStr:
		s, err := readTextV1(c, w)
		if err != nil {
			return nil, err
		}
		return value.Str(s), nil
	case tag.FamilyBytes:
		b, err := readBlobV1(c, w)
		if err != nil {
			return nil, err
		}
		return value.Bytes(b), nil
	case tag.FamilyByteArray:
		b, err := readBlobV1(c, w)
		if err != nil {
			return nil, err
		}
		return value.ByteArray(b), nil
	case tag.FamilyMemoryView:
		b, err := readBlobV1(c, w)
		if err != nil {
			return nil, err
		}
		return value.MemoryView(b), nil
	case tag.FamilyDecimal:
		s, err := readTextV1(c, w)
		if err != nil {
			return nil, err
		}
		return value.Decimal(s), nil
	case tag.FamilyList:
		return decodeSequenceV1(c, depth, w, func(elems []value.Value) value.Value { return value.List(elems) })
	case tag.FamilyTuple:
		return decodeSequenceV1(c, depth, w, func(elems []value.Value) value.Value { return value.Tuple(elems) })
	case tag.FamilySet:
		return decodeSequenceV1(c, depth, w, func(elems []value.Value) value.Value { return value.Set(elems) })
	case tag.FamilyFrozenSet:
		return decodeSequenceV1(c, depth, w, func(elems []value.Value) value.Value { return value.FrozenSet(elems) })
	case tag.FamilyDict:
		return decodeDictV1(c, depth, w)
	default:
		return nil, errs.ErrInvalidTag
	}
}

func readBlobV1(c *cursor, w tag.Width) ([]byte, error) {
	n, err := readLengthV1(c, w)
	if err != nil {
		return nil, err
	}

	return c.readBytes(n)
}

// readTextV1 mirrors readText for the legacy path: v1 Str/Decimal
// payloads carry the same UTF-8 invariant as the current protocol.
func readTextV1(c *cursor, w tag.Width) (string, error) {
	b, err := readBlobV1(c, w)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(b) {
		return "", fmt.Errorf("%w: not valid UTF-8", errs.ErrInvalidEncoding)
	}

	return string(b), nil
}

func decodeSequenceV1(c *cursor, depth int, w tag.Width, wrap func([]value.Value) value.Value) (value.Value, error) {
	depth, err := enterDecodeComposite(depth)
	if err != nil {
		return nil, err
	}

	n, err := readLengthV1(c, w)
	if err != nil {
		return nil, err
	}

	elems := make([]value.Value, 0, n)
	for i := 0; i < n; i++ {
		el, err := decodeValueV1(c, depth)
		if err != nil {
			return nil, err
		}
		elems = append(elems, el)
	}

	return wrap(elems), nil
}

func decodeDictV1(c *cursor, depth int, w tag.Width) (value.Value, error) {
	depth, err := enterDecodeComposite(depth)
	if err != nil {
		return nil, err
	}

	n, err := readLengthV1(c, w)
	if err != nil {
		return nil, err
	}

	d := make(value.Dict, 0, n)
	for i := 0; i < n; i++ {
		key, err := decodeValueV1(c, depth)
		if err != nil {
			return nil, err
		}
		val, err := decodeValueV1(c, depth)
		if err != nil {
			return nil, err
		}
		d = append(d, value.Pair{Key: key, Val: val})
	}

	return d, nil
}
