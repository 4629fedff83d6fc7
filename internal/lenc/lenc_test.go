package lenc

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWidth(t *testing.T) {
	cases := []struct {
		v    uint64
		want int
	}{
		{0, 0},
		{1, 1},
		{255, 1},
		{256, 2},
		{65535, 2},
		{65536, 3},
		{1 << 32, 5},
	}

	for _, c := range cases {
		assert.Equal(t, c.want, Width(c.v), "Width(%d)", c.v)
	}
}

func TestPutUintAndUint_RoundTrip(t *testing.T) {
	values := []uint64{0, 1, 255, 256, 65535, 1 << 20, 1 << 40}

	for _, v := range values {
		w := Width(v)
		if w == 0 {
			w = 1 // zero-width values still need a buffer to round-trip through Uint
		}
		buf := make([]byte, w)
		PutUint(buf, v, w)
		got := Uint(buf, w)
		assert.Equal(t, v, got)
	}
}

func TestPutUint_LittleEndian(t *testing.T) {
	buf := make([]byte, 2)
	PutUint(buf, 0x0102, 2)
	assert.Equal(t, []byte{0x02, 0x01}, buf)
}

func TestAppendUint(t *testing.T) {
	dst := []byte{0xFF}
	dst = AppendUint(dst, 0x0102, 2)
	assert.Equal(t, []byte{0xFF, 0x02, 0x01}, dst)
}
