package leb128

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corewasm/vertexvm/util"
)

// encodeU32/encodeI64 are test-only encoders used to exercise the
// roundtrip property spec.md §8 names: readU32(encodeU32(x)) = x, etc.

func encodeU32(x uint32) []byte {
	var out []byte
	v := uint64(x)
	for {
		b := byte(v & 0x7f)
		v >>= 7
		if v != 0 {
			out = append(out, b|0x80)
		} else {
			out = append(out, b)
			break
		}
	}
	return out
}

func encodeI64(x int64) []byte {
	var out []byte
	v := x
	for {
		b := byte(v & 0x7f)
		v >>= 7
		signBitSet := b&0x40 != 0
		if (v == 0 && !signBitSet) || (v == -1 && signBitSet) {
			out = append(out, b)
			break
		}
		out = append(out, b|0x80)
	}
	return out
}

func TestReadU32Basic(t *testing.T) {
	tests := []struct {
		in   []byte
		want uint32
	}{
		{[]byte{0x00}, 0},
		{[]byte{0x7f}, 127},
		{[]byte{0xe5, 0x8e, 0x26}, 624485},
	}
	for _, tt := range tests {
		got, err := ReadU32(util.NewCursor(tt.in))
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}
}

func TestReadI64Basic(t *testing.T) {
	tests := []struct {
		in   []byte
		want int64
	}{
		{[]byte{0x00}, 0},
		{[]byte{0x7f}, -1},
		{[]byte{0x9b, 0xf1, 0x59}, -624485},
	}
	for _, tt := range tests {
		got, err := ReadI64(util.NewCursor(tt.in))
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}
}

func TestReadU32RoundTrip(t *testing.T) {
	values := []uint32{0, 1, 127, 128, 300, 1 << 20, 1<<32 - 1}
	for _, v := range values {
		got, err := ReadU32(util.NewCursor(encodeU32(v)))
		require.NoError(t, err)
		assert.Equal(t, v, got, "roundtrip for %d", v)
	}
}

func TestReadI64RoundTrip(t *testing.T) {
	values := []int64{0, 1, -1, 127, -128, 1 << 40, -(1 << 40), 1<<63 - 1, -(1 << 63)}
	for _, v := range values {
		got, err := ReadI64(util.NewCursor(encodeI64(v)))
		require.NoError(t, err)
		assert.Equal(t, v, got, "roundtrip for %d", v)
	}
}

func TestReadTruncated(t *testing.T) {
	_, err := ReadU32(util.NewCursor([]byte{0x80}))
	assert.Error(t, err)
}

func TestReadOverlong(t *testing.T) {
	// Six continuation-marked groups for a 32-bit read exceeds the 5-group
	// bound: reject rather than silently wrap.
	in := []byte{0x80, 0x80, 0x80, 0x80, 0x80, 0x01}
	_, err := ReadU32(util.NewCursor(in))
	assert.ErrorIs(t, err, ErrOverlong)
}

func TestReadSingleByteEdgeCases(t *testing.T) {
	zero, err := ReadI64(util.NewCursor([]byte{0x00}))
	require.NoError(t, err)
	assert.Equal(t, int64(0), zero)

	negOne, err := ReadI64(util.NewCursor([]byte{0x7f}))
	require.NoError(t, err)
	assert.Equal(t, int64(-1), negOne)
}
