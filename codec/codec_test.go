package codec

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kelbyrg/sbs/internal/errs"
	"github.com/kelbyrg/sbs/tag"
	"github.com/kelbyrg/sbs/value"
)

func roundTrip(t *testing.T, v value.Value) value.Value {
	t.Helper()
	b, err := Encode(v)
	require.NoError(t, err)
	require.Equal(t, byte(tag.CurrentProtocol), b[0], "every encode stamps the current protocol byte")

	got, err := Decode(b)
	require.NoError(t, err)

	return got
}

func TestRoundTrip_Scalars(t *testing.T) {
	cases := []value.Value{
		value.NewInt(0),
		value.NewInt(-1),
		value.NewInt(127),
		value.NewInt(128),
		value.NewInt(1 << 40),
		value.Str(""),
		value.Str("A"),
		value.Float(3.5),
		value.Bool(true),
		value.Bool(false),
		value.Complex{Re: 1, Im: -2},
		value.None{},
		value.Ellipsis{},
		value.Bytes("xyz"),
		value.ByteArray("xyz"),
		value.MemoryView("xyz"),
		value.Decimal("3.14"),
		value.UUID("0123456789abcdef0123456789abcdef"),
	}

	for _, c := range cases {
		got := roundTrip(t, c)
		assert.True(t, value.Equal(c, got), "round-trip mismatch for %#v: got %#v", c, got)
	}
}

func TestRoundTrip_Composites(t *testing.T) {
	cases := []value.Value{
		value.List{},
		value.List{value.Bool(true), value.Bool(false)},
		value.Tuple{value.NewInt(1), value.Str("x")},
		value.Set{value.NewInt(1), value.NewInt(2), value.NewInt(3)},
		value.FrozenSet{value.NewInt(1)},
		value.Dict{{Key: value.Str("a"), Val: value.NewInt(1)}},
		value.Range{Start: value.NewInt(0), Stop: value.NewInt(10), Step: value.NewInt(2)},
		value.NamedTuple{TypeName: "Point", Fields: []value.NamedField{
			{Name: "x", Value: value.NewInt(1)},
			{Name: "y", Value: value.NewInt(2)},
		}},
	}

	for _, c := range cases {
		got := roundTrip(t, c)
		assert.True(t, value.Equal(c, got), "round-trip mismatch for %#v: got %#v", c, got)
	}

	must, err := value.NewCounter(value.CounterPair{Key: value.Str("a"), Count: value.NewInt(3)})
	require.NoError(t, err)
	got := roundTrip(t, must)
	assert.True(t, value.Equal(must, got))
}

func TestEncode_Int0ProducesInt1TagWithZeroByte(t *testing.T) {
	b, err := Encode(value.NewInt(0))
	require.NoError(t, err)
	require.Len(t, b, 3) // protocol byte + Int1 tag + one payload byte
	assert.Equal(t, byte(tag.Int1), b[1])
	assert.Equal(t, byte(0x00), b[2])
}

func TestEncode_EmptyStrProducesETag(t *testing.T) {
	b, err := Encode(value.Str(""))
	require.NoError(t, err)
	require.Len(t, b, 2) // protocol byte + StrE tag, no length bytes, no payload
	assert.Equal(t, byte(tag.StrE), b[1])
}

func TestEncode_WidthMinimality(t *testing.T) {
	// A 1-byte string picks the "1" width, not D1/D2.
	b, err := Encode(value.Str("A"))
	require.NoError(t, err)
	assert.Equal(t, byte(tag.Str1), b[1])
	assert.Equal(t, byte(1), b[2]) // one length byte
	assert.Equal(t, byte('A'), b[3])
}

func TestEncode_EmptyListProducesETag(t *testing.T) {
	b, err := Encode(value.List{})
	require.NoError(t, err)
	require.Len(t, b, 2)
	assert.Equal(t, byte(tag.ListE), b[1])
}

func TestDecode_TruncatedBufferFails(t *testing.T) {
	b, err := Encode(value.Str("hello"))
	require.NoError(t, err)

	for n := 1; n < len(b); n++ {
		_, err := Decode(b[:n])
		assert.ErrorIs(t, err, errs.ErrTruncated, "truncating to %d bytes should fail with ErrTruncated", n)
	}
}

func TestDecode_EmptyBufferFails(t *testing.T) {
	_, err := Decode(nil)
	assert.ErrorIs(t, err, errs.ErrInvalidProtocol)
}

func TestDecode_UnrecognizedProtocolByte(t *testing.T) {
	_, err := Decode([]byte{0x01, 0x00})
	assert.ErrorIs(t, err, errs.ErrInvalidProtocol)
}

func TestDecode_UnrecognizedTagByte(t *testing.T) {
	_, err := Decode([]byte{byte(tag.ProtoV2), 0x90})
	assert.ErrorIs(t, err, errs.ErrInvalidTag)
}

func TestDecode_InvalidUTF8InStrFails(t *testing.T) {
	buf := []byte{byte(tag.ProtoV2), byte(tag.Str1), 0x01, 0xFF}
	_, err := Decode(buf)
	assert.ErrorIs(t, err, errs.ErrInvalidEncoding)
}

func TestDecode_InvalidUTF8InDecimalFails(t *testing.T) {
	buf := []byte{byte(tag.ProtoV2), byte(tag.Decimal1), 0x01, 0xFF}
	_, err := Decode(buf)
	assert.ErrorIs(t, err, errs.ErrInvalidEncoding)
}

func TestDecode_UUIDRejectsNonHexBytes(t *testing.T) {
	payload := make([]byte, 32)
	for i := range payload {
		payload[i] = '0'
	}
	payload[5] = 'g' // not a hex digit

	buf := append([]byte{byte(tag.ProtoV2), byte(tag.UUIDS)}, payload...)
	_, err := Decode(buf)
	assert.ErrorIs(t, err, errs.ErrConstructFailure)
}

func TestEncode_NestDepthExceeded(t *testing.T) {
	var v value.Value = value.List{}
	for i := 0; i < MaxNestDepth+1; i++ {
		v = value.List{v}
	}

	_, err := Encode(v)
	assert.ErrorIs(t, err, errs.ErrNestDepth)
}

func TestEncode_NestDepthAtLimitSucceeds(t *testing.T) {
	// One List{} plus (MaxNestDepth-1) wraps totals exactly MaxNestDepth
	// nested composites, the boundary that must still succeed.
	var v value.Value = value.List{}
	for i := 0; i < MaxNestDepth-1; i++ {
		v = value.List{v}
	}

	_, err := Encode(v)
	assert.NoError(t, err)
}

func TestEncode_CounterRejectsNilCount(t *testing.T) {
	_, err := Encode(value.Counter{{Key: value.Str("a"), Count: value.Int{}}})
	assert.ErrorIs(t, err, errs.ErrIncorrect)
}

func TestEncode_NilValueUnsupported(t *testing.T) {
	_, err := Encode(nil)
	assert.True(t, errors.Is(err, errs.ErrUnsupported))
}

func TestEncode_UUIDRejectsWrongLength(t *testing.T) {
	_, err := Encode(value.UUID("too-short"))
	assert.ErrorIs(t, err, errs.ErrIncorrect)
}

func TestLegacyV1_DecodesHandAssembledStr(t *testing.T) {
	// v1 buffers are hand-assembled here (no v1 encoder exists; spec §9
	// documents it as read-only) to exercise decodeValueV1 directly.
	buf := []byte{byte(tag.ProtoV1), byte(tag.V1Str1), 0x01, 'A'}
	got, err := Decode(buf)
	require.NoError(t, err)
	assert.True(t, value.Equal(value.Str("A"), got))
}

func TestLegacyV1_ListOfInts(t *testing.T) {
	buf := []byte{
		byte(tag.ProtoV1),
		byte(tag.V1List1), 0x02,
		byte(tag.V1Int1), 0x01,
		byte(tag.V1Int1), 0x02,
	}
	got, err := Decode(buf)
	require.NoError(t, err)
	assert.True(t, value.Equal(value.List{value.NewInt(1), value.NewInt(2)}, got))
}

func TestLegacyV1_UnknownModernTagFails(t *testing.T) {
	// NamedTuple/Deque/Counter tags never appear in v1 buffers.
	buf := []byte{byte(tag.ProtoV1), byte(tag.NamedTuple1)}
	_, err := Decode(buf)
	assert.ErrorIs(t, err, errs.ErrInvalidTag)
}

func TestEncode_IntWideValueUsesD1(t *testing.T) {
	big := value.NewInt(0)
	big.V.SetString("123456789012345678901234567890", 10)

	b, err := Encode(big)
	require.NoError(t, err)
	assert.Equal(t, byte(tag.IntD1), b[1])

	got, err := Decode(b)
	require.NoError(t, err)
	assert.True(t, value.Equal(big, got))
}
