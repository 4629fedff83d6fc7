package value

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	cases := []struct {
		v    Value
		want Kind
	}{
		{Str("a"), KindStr},
		{NewInt(1), KindInt},
		{Float(1.5), KindFloat},
		{Bool(true), KindBool},
		{Complex{Re: 1, Im: 2}, KindComplex},
		{None{}, KindNone},
		{Ellipsis{}, KindEllipsis},
		{Bytes("a"), KindBytes},
		{ByteArray("a"), KindByteArray},
		{MemoryView("a"), KindMemoryView},
		{Decimal("1.5"), KindDecimal},
		{UUID("0123456789abcdef0123456789abcdef"), KindUUID},
		{DateTime{T: time.Now()}, KindDateTime},
		{Date{T: time.Now()}, KindDate},
		{Time{T: time.Now()}, KindTime},
		{TimeDelta{Days: 1}, KindTimeDelta},
		{Range{Start: NewInt(0), Stop: NewInt(1), Step: NewInt(1)}, KindRange},
		{List{}, KindList},
		{Tuple{}, KindTuple},
		{Deque{}, KindDeque},
		{NamedTuple{TypeName: "P"}, KindNamedTuple},
		{Set{}, KindSet},
		{FrozenSet{}, KindFrozenSet},
		{Dict{}, KindDict},
		{Counter{}, KindCounter},
	}

	for _, c := range cases {
		got, ok := KindOf(c.v)
		assert.True(t, ok)
		assert.Equal(t, c.want, got)
	}
}

func TestEqual_Scalars(t *testing.T) {
	assert.True(t, Equal(Str("a"), Str("a")))
	assert.False(t, Equal(Str("a"), Str("b")))
	assert.True(t, Equal(NewInt(5), NewInt(5)))
	assert.False(t, Equal(NewInt(5), NewInt(6)))
	assert.True(t, Equal(Bool(true), Bool(true)))
	assert.True(t, Equal(None{}, None{}))
}

func TestEqual_SetIgnoresOrder(t *testing.T) {
	a := Set{NewInt(1), NewInt(2), NewInt(3)}
	b := Set{NewInt(3), NewInt(1), NewInt(2)}
	assert.True(t, Equal(a, b))

	c := Set{NewInt(3), NewInt(1), NewInt(1)}
	assert.False(t, Equal(a, c))
}

func TestEqual_ListPreservesOrder(t *testing.T) {
	a := List{NewInt(1), NewInt(2)}
	b := List{NewInt(2), NewInt(1)}
	assert.False(t, Equal(a, b))
}

func TestEqual_Dict(t *testing.T) {
	a := Dict{{Key: Str("a"), Val: NewInt(1)}}
	b := Dict{{Key: Str("a"), Val: NewInt(1)}}
	assert.True(t, Equal(a, b))

	c := Dict{{Key: Str("a"), Val: NewInt(2)}}
	assert.False(t, Equal(a, c))
}

func TestNewCounter_RejectsNilInt(t *testing.T) {
	_, err := NewCounter(CounterPair{Key: Str("a"), Count: Int{}})
	assert.Error(t, err)
}

func TestNewCounter_Accepts(t *testing.T) {
	c, err := NewCounter(CounterPair{Key: Str("a"), Count: NewInt(3)})
	assert.NoError(t, err)
	assert.Len(t, c, 1)
}
