// Package leb128 decodes LEB128 (Little-Endian Base-128) variable-length
// integers, the encoding used throughout the Wasm binary format for section
// sizes, vector counts, indices, and integer constants.
package leb128

import (
	"github.com/pkg/errors"

	"github.com/corewasm/vertexvm/util"
)

// ErrOverlong is returned when a LEB128 encoding uses more bytes than its
// declared width permits.
var ErrOverlong = errors.New("leb128: overlong encoding")

// maxBytes returns the maximum number of 7-bit groups needed to encode a
// value of the given bit width.
func maxBytes(width uint32) uint32 {
	return (width + 6) / 7
}

// read decodes a LEB128 integer of at most width bits from c. Bytes are
// consumed least-significant group first; each byte contributes its low 7
// bits shifted by 7*k, and the high bit signals continuation. When signed is
// true and the sign bit of the terminating byte is set, the result is
// sign-extended by OR-ing in ^0<<shift, provided shift is still less than 64.
func read(c *util.Cursor, width uint32, signed bool) (uint64, error) {
	var (
		result uint64
		shift  uint32
		n      uint32
		limit  = maxBytes(width)
	)
	for {
		b, err := c.ReadByte()
		if err != nil {
			return 0, errors.Wrap(err, "leb128: truncated encoding")
		}
		n++
		if n > limit {
			return 0, ErrOverlong
		}
		result |= uint64(b&0x7f) << shift
		shift += 7

		if b&0x80 == 0 {
			if signed && shift < 64 && b&0x40 != 0 {
				result |= ^uint64(0) << shift
			}
			return result, nil
		}
	}
}

// ReadU32 reads an unsigned 32-bit LEB128 integer.
func ReadU32(c *util.Cursor) (uint32, error) {
	v, err := read(c, 32, false)
	return uint32(v), err
}

// ReadI32 reads a signed 32-bit LEB128 integer.
func ReadI32(c *util.Cursor) (int32, error) {
	v, err := read(c, 32, true)
	return int32(v), err
}

// ReadU64 reads an unsigned 64-bit LEB128 integer.
func ReadU64(c *util.Cursor) (uint64, error) {
	return read(c, 64, false)
}

// ReadI64 reads a signed 64-bit LEB128 integer.
func ReadI64(c *util.Cursor) (int64, error) {
	v, err := read(c, 64, true)
	return int64(v), err
}
