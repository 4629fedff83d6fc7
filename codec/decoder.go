package codec

import (
	"fmt"
	"math"
	"math/big"
	"time"
	"unicode/utf8"

	"github.com/kelbyrg/sbs/internal/errs"
	"github.com/kelbyrg/sbs/internal/lenc"
	"github.com/kelbyrg/sbs/tag"
	"github.com/kelbyrg/sbs/value"
)

// cursor is a bounds-checked read position into a decode buffer.
// Grounded on the teacher's blob/numeric_decoder.go offset-validated
// read loop: every multi-byte read goes through ensure first, so a
// truncated buffer always fails with ErrTruncated instead of panicking
// on a slice out-of-range (spec §8 Testable Property 5: "decoder safety
// on truncated/corrupted input").
type cursor struct {
	data []byte
	off  int
}

func (c *cursor) ensure(n int) error {
	if n < 0 || c.off+n > len(c.data) {
		return errs.ErrTruncated
	}

	return nil
}

func (c *cursor) readByte() (byte, error) {
	if err := c.ensure(1); err != nil {
		return 0, err
	}
	b := c.data[c.off]
	c.off++

	return b, nil
}

func (c *cursor) readBytes(n int) ([]byte, error) {
	if err := c.ensure(n); err != nil {
		return nil, err
	}
	b := c.data[c.off : c.off+n]
	c.off += n

	return b, nil
}

func (c *cursor) readUint(width int) (uint64, error) {
	b, err := c.readBytes(width)
	if err != nil {
		return 0, err
	}

	return lenc.Uint(b, width), nil
}

// Decode parses a single protocol-stamped buffer back into a value.Value.
// It dispatches on the leading protocol byte: the current protocol is
// decoded by decodeValue; the legacy v1 marker is decoded by the
// read-only decodeValueV1 path (spec §9: "Legacy (v1) support is
// preserved as a read-only decoder path"); anything else is
// ErrInvalidProtocol.
func Decode(b []byte) (value.Value, error) {
	if len(b) < 1 {
		return nil, errs.ErrInvalidProtocol
	}

	switch tag.Tag(b[0]) {
	case tag.ProtoV2:
		c := &cursor{data: b[1:]}
		return decodeValue(c, 0)
	case tag.ProtoV1:
		c := &cursor{data: b[1:]}
		return decodeValueV1(c, 0)
	default:
		return nil, errs.ErrInvalidProtocol
	}
}

// readLength decodes the length that follows a tag already known to be
// at width w, per the same E/1/2/D1/D2 ladder writeLength emits.
func readLength(c *cursor, w tag.Width) (int, error) {
	switch w {
	case tag.WidthEmpty:
		return 0, nil
	case tag.Width1:
		n, err := c.readUint(1)
		return int(n), err
	case tag.Width2:
		n, err := c.readUint(2)
		return int(n), err
	case tag.WidthD1:
		k, err := c.readByte()
		if err != nil {
			return 0, err
		}
		n, err := c.readUint(int(k))
		return int(n), err
	case tag.WidthD2:
		j, err := c.readByte()
		if err != nil {
			return 0, err
		}
		k, err := c.readUint(int(j))
		if err != nil {
			return 0, err
		}
		n, err := c.readUint(int(k))
		return int(n), err
	default:
		return 0, errs.ErrInvalidTag
	}
}

func decodeValue(c *cursor, depth int) (value.Value, error) {
	t, err := readTag(c)
	if err != nil {
		return nil, err
	}

	if fk, w, ok := tag.FamilyOf(t); ok {
		return decodeFamilyValue(c, depth, fk, w)
	}

	switch t {
	case tag.Int1, tag.Int2, tag.Int3, tag.Int4, tag.Int5:
		return decodeFixedInt(c, int(t-tag.Int1)+1)
	case tag.IntD1:
		return decodeD1Int(c)
	case tag.IntD2:
		return decodeD2Int(c)
	case tag.FloatS:
		bits, err := c.readUint(8)
		if err != nil {
			return nil, err
		}
		return value.Float(math.Float64frombits(bits)), nil
	case tag.BoolT:
		return value.Bool(true), nil
	case tag.BoolF:
		return value.Bool(false), nil
	case tag.ComplexS:
		reb, err := c.readUint(8)
		if err != nil {
			return nil, err
		}
		imb, err := c.readUint(8)
		if err != nil {
			return nil, err
		}
		return value.Complex{Re: math.Float64frombits(reb), Im: math.Float64frombits(imb)}, nil
	case tag.NoneS:
		return value.None{}, nil
	case tag.EllipsisS:
		return value.Ellipsis{}, nil
	case tag.UUIDS:
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
	case tag.DatetimeDT:
		s, err := readISOText(c)
		if err != nil {
			return nil, err
		}
		return decodeDateTime(s)
	case tag.DatetimeD:
		s, err := readISOText(c)
		if err != nil {
			return nil, err
		}
		return decodeDate(s)
	case tag.DatetimeT:
		s, err := readISOText(c)
		if err != nil {
			return nil, err
		}
		return decodeTimeOfDay(s)
	case tag.DatetimeTD:
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
	case tag.RangeS:
		start, err := decodeIntOperand(c)
		if err != nil {
			return nil, err
		}
		stop, err := decodeIntOperand(c)
		if err != nil {
			return nil, err
		}
		step, err := decodeIntOperand(c)
		if err != nil {
			return nil, err
		}
		return value.Range{Start: start, Stop: stop, Step: step}, nil
	default:
		return nil, errs.ErrInvalidTag
	}
}

func readTag(c *cursor) (tag.Tag, error) {
	b, err := c.readByte()
	return tag.Tag(b), err
}

// decodeIntOperand decodes a full Int encoding (tag + payload) at the
// current position, used by Range's three concatenated operands.
func decodeIntOperand(c *cursor) (value.Int, error) {
	t, err := readTag(c)
	if err != nil {
		return value.Int{}, err
	}
	switch t {
	case tag.Int1, tag.Int2, tag.Int3, tag.Int4, tag.Int5:
		v, err := decodeFixedInt(c, int(t-tag.Int1)+1)
		iv, _ := v.(value.Int)
		return iv, err
	case tag.IntD1:
		v, err := decodeD1Int(c)
		iv, _ := v.(value.Int)
		return iv, err
	case tag.IntD2:
		v, err := decodeD2Int(c)
		iv, _ := v.(value.Int)
		return iv, err
	default:
		return value.Int{}, fmt.Errorf("%w: expected Int tag inside Range", errs.ErrInvalidTag)
	}
}

func decodeFixedInt(c *cursor, width int) (value.Value, error) {
	b, err := c.readBytes(width)
	if err != nil {
		return nil, err
	}

	return value.Int{V: leBytesToInt(b)}, nil
}

func decodeD1Int(c *cursor) (value.Value, error) {
	k, err := c.readByte()
	if err != nil {
		return nil, err
	}
	b, err := c.readBytes(int(k))
	if err != nil {
		return nil, err
	}

	return value.Int{V: leBytesToInt(b)}, nil
}

func decodeD2Int(c *cursor) (value.Value, error) {
	j, err := c.readByte()
	if err != nil {
		return nil, err
	}
	kv, err := c.readUint(int(j))
	if err != nil {
		return nil, err
	}
	b, err := c.readBytes(int(kv))
	if err != nil {
		return nil, err
	}

	return value.Int{V: leBytesToInt(b)}, nil
}

// leBytesToInt reconstructs a signed big.Int from its two's-complement
// little-endian byte representation.
func leBytesToInt(b []byte) *big.Int {
	width := len(b)
	be := make([]byte, width)
	for i := 0; i < width; i++ {
		be[i] = b[width-1-i]
	}

	v := new(big.Int).SetBytes(be)
	if width > 0 && be[0]&0x80 != 0 {
		mod := new(big.Int).Lsh(big.NewInt(1), uint(8*width))
		v.Sub(v, mod)
	}

	return v
}

func readISOText(c *cursor) (string, error) {
	n, err := c.readByte()
	if err != nil {
		return "", err
	}
	b, err := c.readBytes(int(n))
	if err != nil {
		return "", err
	}

	return string(b), nil
}

func decodeDateTime(s string) (value.Value, error) {
	t, err := time.Parse("2006-01-02T15:04:05.999999Z07:00", s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrInvalidEncoding, err)
	}

	return value.DateTime{T: t}, nil
}

func decodeDate(s string) (value.Value, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrInvalidEncoding, err)
	}

	return value.Date{T: t}, nil
}

func decodeTimeOfDay(s string) (value.Value, error) {
	t, err := time.Parse("15:04:05.999999", s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrInvalidEncoding, err)
	}

	return value.Time{T: t}, nil
}

// decodeFamilyValue handles every width-laddered family. depth is the
// current composite nesting level; it is checked (and incremented) only
// for the container kinds (List/Set/Tuple/Dict/FrozenSet/NamedTuple/
// Deque/Counter), not for the text/blob kinds, mirroring the encoder's
// enterComposite/exitComposite scope.
func decodeFamilyValue(c *cursor, depth int, fk tag.FamilyKind, w tag.Width) (value.Value, error) {
	switch fk {
	case tag.FamilyStr:
		s, err := readText(c, w)
		if err != nil {
			return nil, err
		}
		return value.Str(s), nil
	case tag.FamilyBytes:
		b, err := readBlob(c, w)
		if err != nil {
			return nil, err
		}
		return value.Bytes(b), nil
	case tag.FamilyByteArray:
		b, err := readBlob(c, w)
		if err != nil {
			return nil, err
		}
		return value.ByteArray(b), nil
	case tag.FamilyMemoryView:
		b, err := readBlob(c, w)
		if err != nil {
			return nil, err
		}
		return value.MemoryView(b), nil
	case tag.FamilyDecimal:
		s, err := readText(c, w)
		if err != nil {
			return nil, err
		}
		return value.Decimal(s), nil
	case tag.FamilyList:
		return decodeSequence(c, depth, w, func(elems []value.Value) value.Value { return value.List(elems) })
	case tag.FamilyTuple:
		return decodeSequence(c, depth, w, func(elems []value.Value) value.Value { return value.Tuple(elems) })
	case tag.FamilyDeque:
		return decodeSequence(c, depth, w, func(elems []value.Value) value.Value { return value.Deque(elems) })
	case tag.FamilySet:
		return decodeSequence(c, depth, w, func(elems []value.Value) value.Value { return value.Set(elems) })
	case tag.FamilyFrozenSet:
		return decodeSequence(c, depth, w, func(elems []value.Value) value.Value { return value.FrozenSet(elems) })
	case tag.FamilyDict:
		return decodeDict(c, depth, w)
	case tag.FamilyCounter:
		return decodeCounter(c, depth, w)
	case tag.FamilyNamedTuple:
		return decodeNamedTuple(c, depth, w)
	default:
		return nil, errs.ErrInvalidTag
	}
}

func readBlob(c *cursor, w tag.Width) ([]byte, error) {
	n, err := readLength(c, w)
	if err != nil {
		return nil, err
	}

	return c.readBytes(n)
}

// readText reads a width-laddered blob and validates it as UTF-8, per
// spec §4.3: "Str_*: read length bytes, then decode UTF-8. Invalid UTF-8
// ⇒ InvalidEncoding." The same rule applies to Decimal's ASCII/UTF-8
// digit text.
func readText(c *cursor, w tag.Width) (string, error) {
	b, err := readBlob(c, w)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(b) {
		return "", fmt.Errorf("%w: not valid UTF-8", errs.ErrInvalidEncoding)
	}

	return string(b), nil
}

func enterDecodeComposite(depth int) (int, error) {
	depth++
	if depth > MaxNestDepth {
		return depth, errs.ErrNestDepth
	}

	return depth, nil
}

func decodeSequence(c *cursor, depth int, w tag.Width, wrap func([]value.Value) value.Value) (value.Value, error) {
	depth, err := enterDecodeComposite(depth)
	if err != nil {
		return nil, err
	}

	n, err := readLength(c, w)
	if err != nil {
		return nil, err
	}

	elems := make([]value.Value, 0, n)
	for i := 0; i < n; i++ {
		el, err := decodeValue(c, depth)
		if err != nil {
			return nil, err
		}
		elems = append(elems, el)
	}

	return wrap(elems), nil
}

func decodeDict(c *cursor, depth int, w tag.Width) (value.Value, error) {
	depth, err := enterDecodeComposite(depth)
	if err != nil {
		return nil, err
	}

	n, err := readLength(c, w)
	if err != nil {
		return nil, err
	}

	d := make(value.Dict, 0, n)
	for i := 0; i < n; i++ {
		key, err := decodeValue(c, depth)
		if err != nil {
			return nil, err
		}
		val, err := decodeValue(c, depth)
		if err != nil {
			return nil, err
		}
		d = append(d, value.Pair{Key: key, Val: val})
	}

	return d, nil
}

func decodeCounter(c *cursor, depth int, w tag.Width) (value.Value, error) {
	depth, err := enterDecodeComposite(depth)
	if err != nil {
		return nil, err
	}

	n, err := readLength(c, w)
	if err != nil {
		return nil, err
	}

	cnt := make(value.Counter, 0, n)
	for i := 0; i < n; i++ {
		key, err := decodeValue(c, depth)
		if err != nil {
			return nil, err
		}
		count, err := decodeIntOperand(c)
		if err != nil {
			return nil, err
		}
		cnt = append(cnt, value.CounterPair{Key: key, Count: count})
	}

	return cnt, nil
}

func decodeNamedTuple(c *cursor, depth int, w tag.Width) (value.Value, error) {
	depth, err := enterDecodeComposite(depth)
	if err != nil {
		return nil, err
	}

	n, err := readLength(c, w)
	if err != nil {
		return nil, err
	}

	typeNameTag, err := readTag(c)
	if err != nil {
		return nil, err
	}
	fk, tw, ok := tag.FamilyOf(typeNameTag)
	if !ok || fk != tag.FamilyStr {
		return nil, fmt.Errorf("%w: NamedTuple type name must be a Str", errs.ErrInvalidEncoding)
	}
	typeName, err := readText(c, tw)
	if err != nil {
		return nil, err
	}

	fields := make([]value.NamedField, 0, n)
	for i := 0; i < n; i++ {
		nameTag, err := readTag(c)
		if err != nil {
			return nil, err
		}
		nfk, nw, ok := tag.FamilyOf(nameTag)
		if !ok || nfk != tag.FamilyStr {
			return nil, fmt.Errorf("%w: NamedTuple field name must be a Str", errs.ErrInvalidEncoding)
		}
		name, err := readText(c, nw)
		if err != nil {
			return nil, err
		}
		fv, err := decodeValue(c, depth)
		if err != nil {
			return nil, err
		}
		fields = append(fields, value.NamedField{Name: name, Value: fv})
	}

	return value.NamedTuple{TypeName: typeName, Fields: fields}, nil
}
