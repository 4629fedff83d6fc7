package pool

import (
	"bytes"
	"io"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewByteBuffer(t *testing.T) {
	bb := NewByteBuffer(64)

	require.NotNil(t, bb)
	assert.Equal(t, 0, bb.Len())
	assert.Equal(t, 64, cap(bb.B))
}

func TestByteBuffer_MustWrite(t *testing.T) {
	bb := NewByteBuffer(EncodeBufferDefaultSize)

	bb.MustWrite([]byte("hello"))
	assert.Equal(t, []byte("hello"), bb.Bytes())

	bb.MustWrite([]byte(" world"))
	assert.Equal(t, []byte("hello world"), bb.Bytes())
}

func TestByteBuffer_Reset(t *testing.T) {
	bb := NewByteBuffer(EncodeBufferDefaultSize)
	bb.MustWrite([]byte("some data"))
	originalCap := cap(bb.B)

	bb.Reset()

	assert.Equal(t, 0, bb.Len())
	assert.Equal(t, originalCap, cap(bb.B))
}

func TestByteBuffer_ExtendOrGrow(t *testing.T) {
	bb := NewByteBuffer(4)
	bb.ExtendOrGrow(16)

	assert.Equal(t, 16, bb.Len())
	assert.GreaterOrEqual(t, cap(bb.B), 16)
}

func TestByteBuffer_Grow_SufficientCapacity(t *testing.T) {
	bb := NewByteBuffer(EncodeBufferDefaultSize)
	originalCap := cap(bb.B)

	bb.Grow(10)

	assert.Equal(t, originalCap, cap(bb.B))
}

func TestByteBuffer_Grow_Overflow(t *testing.T) {
	bb := NewByteBuffer(4)
	bb.MustWrite([]byte{1, 2, 3, 4})

	bb.Grow(1000)

	assert.GreaterOrEqual(t, cap(bb.B), 1004)
	assert.Equal(t, 4, bb.Len(), "Grow must not change length")
}

func TestByteBuffer_Grow_PreservesData(t *testing.T) {
	bb := NewByteBuffer(4)
	testData := []byte("important data that must be preserved")
	bb.MustWrite(testData)

	bb.Grow(1000)

	assert.Equal(t, testData, bb.Bytes())
}

func TestByteBuffer_WriteTo(t *testing.T) {
	bb := NewByteBuffer(EncodeBufferDefaultSize)
	bb.MustWrite([]byte("test data"))

	var buf bytes.Buffer
	n, err := bb.WriteTo(&buf)

	require.NoError(t, err)
	assert.Equal(t, int64(9), n)
	assert.Equal(t, "test data", buf.String())
}

func TestByteBuffer_WriteTo_ErrorPropagation(t *testing.T) {
	bb := NewByteBuffer(EncodeBufferDefaultSize)
	bb.MustWrite([]byte("test"))

	ew := &errorWriter{err: io.ErrShortWrite}
	n, err := bb.WriteTo(ew)

	assert.ErrorIs(t, err, io.ErrShortWrite)
	assert.Equal(t, int64(0), n)
}

func TestGetPutEncodeBuffer(t *testing.T) {
	bb := GetEncodeBuffer()
	require.NotNil(t, bb)
	assert.Equal(t, 0, bb.Len())
	assert.GreaterOrEqual(t, cap(bb.B), EncodeBufferDefaultSize)

	bb.MustWrite([]byte("sensitive"))
	PutEncodeBuffer(bb)

	assert.Equal(t, 0, bb.Len(), "Put should reset the buffer")
}

func TestPutEncodeBuffer_Nil(t *testing.T) {
	assert.NotPanics(t, func() {
		PutEncodeBuffer(nil)
	})
}

func TestByteBufferPool_MaxThreshold_Discard(t *testing.T) {
	pool := NewByteBufferPool(1024, 4096)

	bb := pool.Get()
	bb.Grow(10000)
	assert.Greater(t, cap(bb.B), 4096)

	pool.Put(bb)

	bb2 := pool.Get()
	assert.LessOrEqual(t, cap(bb2.B), 4096*2, "should not reuse buffer larger than threshold")
}

func TestByteBufferPool_NoThreshold(t *testing.T) {
	pool := NewByteBufferPool(1024, 0)

	bb := pool.Get()
	bb.Grow(1024 * 1024)
	pool.Put(bb)

	bb2 := pool.Get()
	assert.NotNil(t, bb2)
}

func TestPool_ConcurrentAccess(t *testing.T) {
	const numGoroutines = 32
	const numIterations = 200

	var wg sync.WaitGroup
	wg.Add(numGoroutines)

	for i := 0; i < numGoroutines; i++ {
		go func() {
			defer wg.Done()
			for j := 0; j < numIterations; j++ {
				bb := GetEncodeBuffer()
				bb.MustWrite([]byte("data"))
				assert.Equal(t, 4, bb.Len())
				PutEncodeBuffer(bb)
			}
		}()
	}

	wg.Wait()
}

type errorWriter struct {
	err error
}

func (ew *errorWriter) Write(p []byte) (int, error) {
	return 0, ew.err
}
