// Package pool provides a reusable growable byte buffer for the encoder,
// backed by a sync.Pool to avoid reallocating on every Encode call.
package pool

import (
	"io"
	"sync"
)

// EncodeBufferDefaultSize is the starting capacity handed out by the pool.
// It covers the 128-byte headroom the encoder grows by (spec §4.2) plus a
// typical small-to-medium encoded value without a single reallocation.
const (
	EncodeBufferDefaultSize  = 256
	EncodeBufferMaxThreshold = 1024 * 256 // 256KiB; larger buffers are discarded, not pooled
	growStep                 = 128        // minimum growth increment per spec §4.2
)

// ByteBuffer is a growable byte slice wrapper with amortized growth.
type ByteBuffer struct {
	// B is the underlying byte slice.
	B []byte
}

// NewByteBuffer creates a new ByteBuffer with the specified default size.
func NewByteBuffer(defaultSize int) *ByteBuffer {
	return &ByteBuffer{
		B: make([]byte, 0, defaultSize),
	}
}

// Bytes returns the underlying byte slice.
func (bb *ByteBuffer) Bytes() []byte {
	return bb.B
}

// Reset resets the buffer to be empty, but retains the allocated memory for reuse.
func (bb *ByteBuffer) Reset() {
	bb.B = bb.B[:0]
}

// Len returns the length of the buffer.
func (bb *ByteBuffer) Len() int {
	return len(bb.B)
}

// Cap returns the capacity of the buffer.
func (bb *ByteBuffer) Cap() int {
	return cap(bb.B)
}

// MustWrite appends data to the buffer, growing it if necessary.
func (bb *ByteBuffer) MustWrite(data []byte) {
	bb.B = append(bb.B, data...)
}

// Extend extends the buffer by n bytes if there is sufficient capacity.
func (bb *ByteBuffer) Extend(n int) bool {
	curLen := len(bb.B)
	if cap(bb.B)-curLen < n {
		return false
	}

	bb.B = bb.B[:curLen+n]

	return true
}

// ExtendOrGrow extends the buffer by n bytes, growing it if necessary.
func (bb *ByteBuffer) ExtendOrGrow(n int) {
	if bb.Extend(n) {
		return
	}

	start := len(bb.B)
	bb.Grow(n)
	bb.B = bb.B[:start+n]
}

// Grow ensures the buffer can hold requiredBytes more bytes without reallocating.
//
// Growth strategy (spec §4.2): grow by max(requiredBytes, growStep) bytes on
// each overflow, a single reallocation per overflow.
func (bb *ByteBuffer) Grow(requiredBytes int) {
	available := cap(bb.B) - len(bb.B)
	if available >= requiredBytes {
		return
	}

	growBy := growStep
	if growBy < requiredBytes {
		growBy = requiredBytes
	}

	newBuf := make([]byte, len(bb.B), len(bb.B)+growBy)
	copy(newBuf, bb.B)
	bb.B = newBuf
}

// Write appends the contents of data to the buffer, growing it as needed.
func (bb *ByteBuffer) Write(data []byte) (int, error) {
	bb.B = append(bb.B, data...)
	return len(data), nil
}

// WriteTo writes the contents of the buffer to w.
func (bb *ByteBuffer) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(bb.B)
	return int64(n), err
}

// ByteBufferPool is a sync.Pool of ByteBuffers.
type ByteBufferPool struct {
	pool         sync.Pool
	maxThreshold int
}

// NewByteBufferPool creates a new ByteBufferPool with buffers of the specified default size.
func NewByteBufferPool(defaultSize int, maxThreshold int) *ByteBufferPool {
	return &ByteBufferPool{
		pool: sync.Pool{
			New: func() any {
				return NewByteBuffer(defaultSize)
			},
		},
		maxThreshold: maxThreshold,
	}
}

// Get retrieves a ByteBuffer from the pool.
func (bbp *ByteBufferPool) Get() *ByteBuffer {
	bb, _ := bbp.pool.Get().(*ByteBuffer)
	return bb
}

// Put returns a ByteBuffer to the pool for reuse.
func (bbp *ByteBufferPool) Put(bb *ByteBuffer) {
	if bb == nil {
		return
	}

	if bbp.maxThreshold > 0 && cap(bb.B) > bbp.maxThreshold {
		return
	}

	bb.Reset()
	bbp.pool.Put(bb)
}

var encodeBufferPool = NewByteBufferPool(EncodeBufferDefaultSize, EncodeBufferMaxThreshold)

// GetEncodeBuffer retrieves a ByteBuffer from the default encoder pool.
func GetEncodeBuffer() *ByteBuffer {
	return encodeBufferPool.Get()
}

// PutEncodeBuffer returns a ByteBuffer to the default encoder pool.
func PutEncodeBuffer(bb *ByteBuffer) {
	encodeBufferPool.Put(bb)
}
