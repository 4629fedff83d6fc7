// Package codec implements the encoder and decoder for the structured
// bytes wire format: a protocol byte followed by a self-describing,
// depth-bounded tagged value, per spec §4.2/§4.3.
//
// Grounded on the teacher's blob/numeric_encoder.go and
// blob/text_encoder.go: a pooled growable buffer, a minimal-width length
// prefix chosen per value, and an explicit nesting counter instead of
// relying on the Go call stack alone to enforce a depth bound.
package codec

import (
	"fmt"
	"math"
	"math/big"

	"github.com/kelbyrg/sbs/internal/errs"
	"github.com/kelbyrg/sbs/internal/lenc"
	"github.com/kelbyrg/sbs/internal/pool"
	"github.com/kelbyrg/sbs/tag"
	"github.com/kelbyrg/sbs/value"
)

// MaxNestDepth bounds composite nesting during encode (spec §8 Testable
// Property 6, §9: "cycle detection ... depth bound is the defense").
const MaxNestDepth = 100

// Encoder serializes a value.Value into the structured bytes wire
// format. An Encoder is not safe for concurrent use; callers needing
// concurrency use one Encoder per goroutine (the package-level Encode
// does this for them).
type Encoder struct {
	buf   *pool.ByteBuffer
	depth int
}

// NewEncoder returns an Encoder backed by a pooled buffer. Call Release
// when done with it to return the buffer to the pool.
func NewEncoder() *Encoder {
	return &Encoder{buf: pool.GetEncodeBuffer()}
}

// Release returns the Encoder's buffer to the pool. The Encoder must not
// be used afterward.
func (e *Encoder) Release() {
	pool.PutEncodeBuffer(e.buf)
	e.buf = nil
}

// Encode writes the current protocol marker followed by v's encoding,
// returning a freshly allocated copy of the result. The Encoder's
// internal buffer is reset and reused on every call.
func (e *Encoder) Encode(v value.Value) ([]byte, error) {
	e.buf.Reset()
	e.depth = 0
	e.buf.MustWrite([]byte{byte(tag.CurrentProtocol)})

	if err := e.encodeValue(v); err != nil {
		return nil, err
	}

	out := make([]byte, e.buf.Len())
	copy(out, e.buf.Bytes())

	return out, nil
}

// Encode is a package-level convenience that encodes a single value
// without requiring the caller to manage an Encoder's lifetime.
func Encode(v value.Value) ([]byte, error) {
	e := NewEncoder()
	defer e.Release()

	return e.Encode(v)
}

func (e *Encoder) enterComposite() error {
	e.depth++
	if e.depth > MaxNestDepth {
		return errs.ErrNestDepth
	}

	return nil
}

func (e *Encoder) exitComposite() {
	e.depth--
}

func (e *Encoder) writeTag(t tag.Tag) {
	e.buf.MustWrite([]byte{byte(t)})
}

func (e *Encoder) appendUint(v uint64, width int) {
	e.buf.ExtendOrGrow(width)
	lenc.PutUint(e.buf.Bytes()[e.buf.Len()-width:], v, width)
}

func (e *Encoder) appendByte(b byte) {
	e.buf.ExtendOrGrow(1)
	e.buf.Bytes()[e.buf.Len()-1] = b
}

// writeLength emits the tag for family f at the narrowest width that can
// hold n, followed by that width's length bytes (spec §4.1 width
// selection: E when n==0 and the family has an empty slot, else 1/2
// direct bytes, else D1 (one length-of-length byte), else D2 (one
// length-of-length-of-length byte) for the practically unreachable case
// where even the D1 length-of-length byte can't hold n's own byte width.
func (e *Encoder) writeLength(f tag.Family, n int) error {
	k := lenc.Width(uint64(n))

	switch {
	case k == 0:
		if f.HasEmpty() {
			e.writeTag(f.AtWidth(tag.WidthEmpty))
			return nil
		}
		// No empty slot (Decimal): fall through to a zero-length "1" payload.
		e.writeTag(f.AtWidth(tag.Width1))
		e.appendUint(0, 1)
		return nil
	case k == 1:
		e.writeTag(f.AtWidth(tag.Width1))
		e.appendUint(uint64(n), 1)
		return nil
	case k == 2:
		e.writeTag(f.AtWidth(tag.Width2))
		e.appendUint(uint64(n), 2)
		return nil
	case k < 256:
		e.writeTag(f.AtWidth(tag.WidthD1))
		e.appendByte(byte(k))
		e.appendUint(uint64(n), k)
		return nil
	default:
		j := lenc.Width(uint64(k))
		if j == 0 {
			j = 1
		}
		e.writeTag(f.AtWidth(tag.WidthD2))
		e.appendByte(byte(j))
		e.appendUint(uint64(k), j)
		e.appendUint(uint64(n), k)
		return nil
	}
}

func (e *Encoder) encodeValue(v value.Value) error {
	if v == nil {
		return errs.ErrUnsupported
	}

	switch val := v.(type) {
	case value.Str:
		return e.encodeBlob(tag.StrFamily, []byte(val))
	case value.Int:
		return e.encodeInt(val)
	case value.Float:
		e.writeTag(tag.FloatS)
		e.appendUint(math.Float64bits(float64(val)), 8)
		return nil
	case value.Bool:
		if val {
			e.writeTag(tag.BoolT)
		} else {
			e.writeTag(tag.BoolF)
		}
		return nil
	case value.Complex:
		e.writeTag(tag.ComplexS)
		e.appendUint(math.Float64bits(val.Re), 8)
		e.appendUint(math.Float64bits(val.Im), 8)
		return nil
	case value.None:
		e.writeTag(tag.NoneS)
		return nil
	case value.Ellipsis:
		e.writeTag(tag.EllipsisS)
		return nil
	case value.Bytes:
		return e.encodeBlob(tag.BytesFamily, []byte(val))
	case value.ByteArray:
		return e.encodeBlob(tag.ByteArrayFamily, []byte(val))
	case value.MemoryView:
		return e.encodeBlob(tag.MemoryViewFamily, []byte(val))
	case value.Decimal:
		return e.encodeBlob(tag.DecimalFamily, []byte(val))
	case value.UUID:
		return e.encodeUUID(val)
	case value.DateTime:
		return e.encodeISOText(tag.DatetimeDT, val.T.Format("2006-01-02T15:04:05.999999Z07:00"))
	case value.Date:
		return e.encodeISOText(tag.DatetimeD, val.T.Format("2006-01-02"))
	case value.Time:
		return e.encodeISOText(tag.DatetimeT, val.T.Format("15:04:05.999999"))
	case value.TimeDelta:
		e.writeTag(tag.DatetimeTD)
		e.appendUint(uint64(uint32(val.Days)), 4)
		e.appendUint(uint64(uint32(val.Seconds)), 4)
		e.appendUint(uint64(uint32(val.Micros)), 4)
		return nil
	case value.Range:
		e.writeTag(tag.RangeS)
		if err := e.encodeInt(val.Start); err != nil {
			return err
		}
		if err := e.encodeInt(val.Stop); err != nil {
			return err
		}
		return e.encodeInt(val.Step)
	case value.List:
		return e.encodeSequence(tag.ListFamily, val)
	case value.Tuple:
		return e.encodeSequence(tag.TupleFamily, val)
	case value.Deque:
		return e.encodeSequence(tag.DequeFamily, val)
	case value.Set:
		return e.encodeSequence(tag.SetFamily, val)
	case value.FrozenSet:
		return e.encodeSequence(tag.FrozenSetFamily, val)
	case value.Dict:
		return e.encodeDict(val)
	case value.Counter:
		return e.encodeCounter(val)
	case value.NamedTuple:
		return e.encodeNamedTuple(val)
	default:
		return errs.ErrUnsupported
	}
}

func (e *Encoder) encodeBlob(f tag.Family, data []byte) error {
	if err := e.writeLength(f, len(data)); err != nil {
		return err
	}
	e.buf.MustWrite(data)

	return nil
}

func (e *Encoder) encodeUUID(u value.UUID) error {
	if len(u) != 32 {
		return fmt.Errorf("%w: UUID must be 32 hex characters, got %d", errs.ErrIncorrect, len(u))
	}
	for _, c := range []byte(u) {
		if !isHexDigit(c) {
			return fmt.Errorf("%w: UUID contains non-hex byte %q", errs.ErrIncorrect, c)
		}
	}
	e.writeTag(tag.UUIDS)
	e.buf.MustWrite([]byte(u))

	return nil
}

func isHexDigit(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

func (e *Encoder) encodeISOText(t tag.Tag, text string) error {
	if len(text) > 255 {
		return fmt.Errorf("%w: ISO-8601 text exceeds 255 bytes", errs.ErrEncodeInvariant)
	}
	e.writeTag(t)
	e.appendByte(byte(len(text)))
	e.buf.MustWrite([]byte(text))

	return nil
}

func (e *Encoder) encodeSequence(f tag.Family, elems []value.Value) error {
	if err := e.enterComposite(); err != nil {
		return err
	}
	defer e.exitComposite()

	if err := e.writeLength(f, len(elems)); err != nil {
		return err
	}
	for _, el := range elems {
		if err := e.encodeValue(el); err != nil {
			return err
		}
	}

	return nil
}

func (e *Encoder) encodeDict(d value.Dict) error {
	if err := e.enterComposite(); err != nil {
		return err
	}
	defer e.exitComposite()

	if err := e.writeLength(tag.DictFamily, len(d)); err != nil {
		return err
	}
	for _, p := range d {
		if err := e.encodeValue(p.Key); err != nil {
			return err
		}
		if err := e.encodeValue(p.Val); err != nil {
			return err
		}
	}

	return nil
}

func (e *Encoder) encodeCounter(c value.Counter) error {
	if err := e.enterComposite(); err != nil {
		return err
	}
	defer e.exitComposite()

	if err := e.writeLength(tag.CounterFamily, len(c)); err != nil {
		return err
	}
	for i, p := range c {
		if p.Count.V == nil {
			return fmt.Errorf("counter entry %d: %w: nil Int count", i, errs.ErrIncorrect)
		}
		if err := e.encodeValue(p.Key); err != nil {
			return err
		}
		if err := e.encodeInt(p.Count); err != nil {
			return err
		}
	}

	return nil
}

func (e *Encoder) encodeNamedTuple(nt value.NamedTuple) error {
	if err := e.enterComposite(); err != nil {
		return err
	}
	defer e.exitComposite()

	if err := e.writeLength(tag.NamedTupleFamily, len(nt.Fields)); err != nil {
		return err
	}
	if err := e.encodeBlob(tag.StrFamily, []byte(nt.TypeName)); err != nil {
		return err
	}
	for _, f := range nt.Fields {
		if err := e.encodeBlob(tag.StrFamily, []byte(f.Name)); err != nil {
			return err
		}
		if err := e.encodeValue(f.Value); err != nil {
			return err
		}
	}

	return nil
}

// encodeInt writes iv using the narrowest two's-complement little-endian
// width that represents it: a direct Int1..Int5 tag for widths 1..5, an
// IntD1 (one byte holding the payload width) for widths up to 255, and an
// IntD2 for widths of 256 bytes or more, where the width itself needs
// more than one byte: one byte j, then j bytes holding the width, then
// the payload -- spec §9 Open Question 1 resolves Int_D2 to the same
// generic length-of-length-then-length shape every other D2 family uses.
func (e *Encoder) encodeInt(iv value.Int) error {
	if iv.V == nil {
		return fmt.Errorf("%w: nil Int value", errs.ErrIncorrect)
	}

	width := minimalSignedWidth(iv.V)
	switch {
	case width <= 5:
		e.writeTag(intTagForWidth(width))
		e.buf.MustWrite(intToLEBytes(iv.V, width))
		return nil
	case width < 256:
		e.writeTag(tag.IntD1)
		e.appendByte(byte(width))
		e.buf.MustWrite(intToLEBytes(iv.V, width))
		return nil
	default:
		j := lenc.Width(uint64(width))
		if j == 0 {
			j = 1
		}
		e.writeTag(tag.IntD2)
		e.appendByte(byte(j))
		e.appendUint(uint64(width), j)
		e.buf.MustWrite(intToLEBytes(iv.V, width))
		return nil
	}
}

func intTagForWidth(w int) tag.Tag {
	switch w {
	case 1:
		return tag.Int1
	case 2:
		return tag.Int2
	case 3:
		return tag.Int3
	case 4:
		return tag.Int4
	default:
		return tag.Int5
	}
}

// minimalSignedWidth returns the fewest bytes needed to hold v as a
// two's-complement signed integer, i.e. the smallest w such that
// -2^(8w-1) <= v <= 2^(8w-1)-1. Zero needs one byte (spec boundary
// scenario: encode(Int(0)) produces tag Int_1 with a single 0x00 byte).
func minimalSignedWidth(v *big.Int) int {
	for w := 1; ; w++ {
		bits := uint(8*w - 1)
		lo := new(big.Int).Neg(new(big.Int).Lsh(big.NewInt(1), bits))
		hi := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), bits), big.NewInt(1))
		if v.Cmp(lo) >= 0 && v.Cmp(hi) <= 0 {
			return w
		}
	}
}

// intToLEBytes returns v's two's-complement representation in width
// little-endian bytes.
func intToLEBytes(v *big.Int, width int) []byte {
	buf := make([]byte, width)

	if v.Sign() >= 0 {
		be := v.Bytes()
		for i := 0; i < len(be); i++ {
			buf[i] = be[len(be)-1-i]
		}
		return buf
	}

	mod := new(big.Int).Lsh(big.NewInt(1), uint(8*width))
	twosComp := new(big.Int).Add(mod, v)
	be := twosComp.Bytes()

	full := make([]byte, width)
	copy(full[width-len(be):], be)
	for i := 0; i < width; i++ {
		buf[i] = full[width-1-i]
	}

	return buf
}
