//go:build unix

package segment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kelbyrg/sbs/internal/errs"
	"github.com/kelbyrg/sbs/value"
)

func cleanupSegment(t *testing.T, name string) {
	t.Helper()
	t.Cleanup(func() { _, _ = RemoveMemory(name, false) })
}

func TestCreateMemory_ErrorIfExists(t *testing.T) {
	name := "sbs-test-create-exists"
	cleanupSegment(t, name)

	created, err := CreateMemory(name, 0, false)
	require.NoError(t, err)
	assert.True(t, created)

	created, err = CreateMemory(name, 0, true)
	assert.False(t, created)
	assert.ErrorIs(t, err, errs.ErrAlreadyExists)

	created, err = CreateMemory(name, 0, false)
	assert.False(t, created)
	assert.NoError(t, err)
}

func TestReadMemory_NeverWrittenSegmentReturnsNone(t *testing.T) {
	name := "sbs-test-read-never-written"
	cleanupSegment(t, name)

	_, err := CreateMemory(name, 0, true)
	require.NoError(t, err)

	got, err := ReadMemory(name)
	require.NoError(t, err)
	assert.True(t, value.Equal(value.None{}, got))
}

func TestReadMemory_MissingSegmentFails(t *testing.T) {
	_, err := ReadMemory("sbs-test-definitely-does-not-exist")
	assert.ErrorIs(t, err, errs.ErrNotFound)
}

func TestWriteMemory_ReadMemory_RoundTrip(t *testing.T) {
	name := "sbs-test-write-read-roundtrip"
	cleanupSegment(t, name)

	v := value.List{value.NewInt(1), value.Str("hello")}
	ok, err := WriteMemory(name, v, true)
	require.NoError(t, err)
	assert.True(t, ok)

	got, err := ReadMemory(name)
	require.NoError(t, err)
	assert.True(t, value.Equal(v, got))
}

func TestWriteMemory_GrowsSegmentOnLargerValue(t *testing.T) {
	name := "sbs-test-write-grow"
	cleanupSegment(t, name)

	small := value.Str("x")
	ok, err := WriteMemory(name, small, true)
	require.NoError(t, err)
	require.True(t, ok)

	got, err := ReadMemory(name)
	require.NoError(t, err)
	assert.True(t, value.Equal(small, got))

	large := value.Bytes(make([]byte, 4096))
	ok, err = WriteMemory(name, large, false)
	require.NoError(t, err)
	require.True(t, ok)

	got, err = ReadMemory(name)
	require.NoError(t, err)
	assert.True(t, value.Equal(large, got))
}

func TestWriteMemory_WithoutCreateFailsOnMissingSegment(t *testing.T) {
	_, err := WriteMemory("sbs-test-write-no-autocreate", value.NewInt(1), false)
	assert.ErrorIs(t, err, errs.ErrNotFound)
}

func TestRemoveMemory_IdempotentWithoutThrowError(t *testing.T) {
	name := "sbs-test-remove-idempotent"
	_, err := CreateMemory(name, 0, true)
	require.NoError(t, err)

	removed, err := RemoveMemory(name, false)
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = RemoveMemory(name, false)
	assert.False(t, removed)
	assert.NoError(t, err)
}

func TestRemoveMemory_ThrowErrorOnMissing(t *testing.T) {
	_, err := RemoveMemory("sbs-test-remove-missing-throws", true)
	assert.ErrorIs(t, err, errs.ErrNotFound)
}

func TestWriteMemory_LastWriterWins(t *testing.T) {
	name := "sbs-test-last-writer-wins"
	cleanupSegment(t, name)

	_, err := WriteMemory(name, value.NewInt(1), true)
	require.NoError(t, err)
	_, err = WriteMemory(name, value.NewInt(2), false)
	require.NoError(t, err)

	got, err := ReadMemory(name)
	require.NoError(t, err)
	assert.True(t, value.Equal(value.NewInt(2), got))
}
