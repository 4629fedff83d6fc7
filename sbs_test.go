package sbs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kelbyrg/sbs/value"
)

func TestEncodeDecode_RoundTrip(t *testing.T) {
	v := value.Dict{{Key: value.Str("a"), Val: value.NewInt(1)}}

	b, err := Encode(v)
	require.NoError(t, err)

	got, err := Decode(b)
	require.NoError(t, err)
	assert.True(t, value.Equal(v, got))
}

func TestMemory_CreateWriteReadRemove(t *testing.T) {
	name := "sbs-root-test-memory"
	t.Cleanup(func() { _, _ = RemoveMemory(name, false) })

	_, err := CreateMemory(name, 0, false)
	require.NoError(t, err)

	ok, err := WriteMemory(name, value.Str("hello"), false)
	require.NoError(t, err)
	assert.True(t, ok)

	got, err := ReadMemory(name)
	require.NoError(t, err)
	assert.True(t, value.Equal(value.Str("hello"), got))

	removed, err := RemoveMemory(name, true)
	require.NoError(t, err)
	assert.True(t, removed)
}
