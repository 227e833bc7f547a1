// Package util provides the byte cursor primitive shared by the leb128 and
// wasm decoders.
package util

import "io"

// Cursor is a position-tracking view over an in-memory byte slice. It is the
// single read primitive the decoder is built on: every length prefix, index,
// and constant in the module format is read through one of its methods so
// that LEB128 decoding (see package leb128) never has to reach around it.
type Cursor struct {
	b   []byte
	pos uint32
}

// NewCursor wraps b for sequential reading starting at offset 0.
func NewCursor(b []byte) *Cursor {
	return &Cursor{b: b}
}

// ReadByte reads and returns the next byte, advancing the cursor by one.
func (c *Cursor) ReadByte() (byte, error) {
	if c.pos >= uint32(len(c.b)) {
		return 0, io.EOF
	}
	b := c.b[c.pos]
	c.pos++
	return b, nil
}

// Read reads exactly n bytes and advances the cursor by n. It returns io.EOF
// if fewer than n bytes remain.
func (c *Cursor) Read(n uint32) ([]byte, error) {
	if uint64(c.pos)+uint64(n) > uint64(len(c.b)) {
		return nil, io.EOF
	}
	b := c.b[c.pos : c.pos+n]
	c.pos += n
	return b, nil
}

// Pos returns the current read offset, used by callers that want to report
// where in the byte stream a decoding error occurred.
func (c *Cursor) Pos() uint32 {
	return c.pos
}

// Len returns the total length of the wrapped byte slice.
func (c *Cursor) Len() uint32 {
	return uint32(len(c.b))
}

// Remaining returns the number of unread bytes.
func (c *Cursor) Remaining() uint32 {
	return c.Len() - c.pos
}

// Rest returns a view over all unread bytes without advancing the cursor.
func (c *Cursor) Rest() []byte {
	return c.b[c.pos:]
}
