package util

import (
	"io"
	"testing"
)

func TestCursorReadByte(t *testing.T) {
	c := NewCursor([]byte{0x01, 0x02})
	b, err := c.ReadByte()
	if err != nil || b != 0x01 {
		t.Fatalf("ReadByte() = %v, %v; want 0x01, nil", b, err)
	}
	b, err = c.ReadByte()
	if err != nil || b != 0x02 {
		t.Fatalf("ReadByte() = %v, %v; want 0x02, nil", b, err)
	}
	if _, err := c.ReadByte(); err != io.EOF {
		t.Fatalf("ReadByte() at end = %v; want io.EOF", err)
	}
}

func TestCursorRead(t *testing.T) {
	c := NewCursor([]byte{0xde, 0xad, 0xbe, 0xef})
	b, err := c.Read(2)
	if err != nil {
		t.Fatalf("Read(2) err = %v", err)
	}
	if b[0] != 0xde || b[1] != 0xad {
		t.Fatalf("Read(2) = %x; want dead", b)
	}
	if _, err := c.Read(3); err != io.EOF {
		t.Fatalf("Read(3) past end = %v; want io.EOF", err)
	}
	if rem := c.Remaining(); rem != 2 {
		t.Fatalf("Remaining() = %d; want 2", rem)
	}
}

func TestCursorPosAndLen(t *testing.T) {
	c := NewCursor([]byte{1, 2, 3})
	if c.Len() != 3 || c.Pos() != 0 {
		t.Fatalf("Len/Pos = %d/%d; want 3/0", c.Len(), c.Pos())
	}
	c.ReadByte()
	if c.Pos() != 1 {
		t.Fatalf("Pos() after one read = %d; want 1", c.Pos())
	}
}
