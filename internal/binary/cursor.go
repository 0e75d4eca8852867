// Package binary provides bounds-checked binary reads over an in-memory
// packed experiment archive.
package binary

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
)

// ErrShortBuffer is returned when a read extends past the end of the buffer.
var ErrShortBuffer = errors.New("read past end of buffer")

// Cursor tracks a read position over an immutable byte buffer.
// Multi-byte reads honor the cursor's byte order.
type Cursor struct {
	buf   []byte
	order binary.ByteOrder
	pos   int
}

// NewCursor creates a cursor over buf starting at position 0.
func NewCursor(buf []byte, order binary.ByteOrder) *Cursor {
	return &Cursor{buf: buf, order: order}
}

// At returns a new cursor positioned at the given offset.
// The new cursor shares the underlying buffer but has independent position.
func (c *Cursor) At(offset int) *Cursor {
	return &Cursor{buf: c.buf, order: c.order, pos: offset}
}

// Pos returns the current read position.
func (c *Cursor) Pos() int {
	return c.pos
}

// Len returns the total buffer length.
func (c *Cursor) Len() int {
	return len(c.buf)
}

// Remaining returns the number of unread bytes.
func (c *Cursor) Remaining() int {
	if c.pos >= len(c.buf) {
		return 0
	}
	return len(c.buf) - c.pos
}

// EOF reports whether the cursor has consumed the whole buffer.
func (c *Cursor) EOF() bool {
	return c.pos >= len(c.buf)
}

// Skip advances the position by n bytes.
func (c *Cursor) Skip(n int) {
	c.pos += n
}

// ByteOrder returns the cursor's byte order.
func (c *Cursor) ByteOrder() binary.ByteOrder {
	return c.order
}

// Bytes reads exactly n bytes from the current position.
// The returned slice aliases the underlying buffer.
func (c *Cursor) Bytes(n int) ([]byte, error) {
	if n < 0 || c.pos < 0 || c.pos+n > len(c.buf) {
		return nil, fmt.Errorf("%w: %d bytes at offset %d (buffer %d)",
			ErrShortBuffer, n, c.pos, len(c.buf))
	}
	b := c.buf[c.pos : c.pos+n]
	c.pos += n
	return b, nil
}

// Slice returns the bytes in [from, to) without moving the cursor.
func (c *Cursor) Slice(from, to int) ([]byte, error) {
	if from < 0 || to < from || to > len(c.buf) {
		return nil, fmt.Errorf("%w: range [%d:%d] (buffer %d)",
			ErrShortBuffer, from, to, len(c.buf))
	}
	return c.buf[from:to], nil
}

// Uint8 reads an unsigned 8-bit integer.
func (c *Cursor) Uint8() (uint8, error) {
	b, err := c.Bytes(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

// Uint16 reads an unsigned 16-bit integer.
func (c *Cursor) Uint16() (uint16, error) {
	b, err := c.Bytes(2)
	if err != nil {
		return 0, err
	}
	return c.order.Uint16(b), nil
}

// Uint32 reads an unsigned 32-bit integer.
func (c *Cursor) Uint32() (uint32, error) {
	b, err := c.Bytes(4)
	if err != nil {
		return 0, err
	}
	return c.order.Uint32(b), nil
}

// Uint64 reads an unsigned 64-bit integer.
func (c *Cursor) Uint64() (uint64, error) {
	b, err := c.Bytes(8)
	if err != nil {
		return 0, err
	}
	return c.order.Uint64(b), nil
}

// Int16 reads a signed 16-bit integer.
func (c *Cursor) Int16() (int16, error) {
	v, err := c.Uint16()
	return int16(v), err
}

// Int32 reads a signed 32-bit integer.
func (c *Cursor) Int32() (int32, error) {
	v, err := c.Uint32()
	return int32(v), err
}

// Float32 reads an IEEE 754 32-bit float.
func (c *Cursor) Float32() (float32, error) {
	v, err := c.Uint32()
	return math.Float32frombits(v), err
}

// Float64 reads an IEEE 754 64-bit float.
func (c *Cursor) Float64() (float64, error) {
	v, err := c.Uint64()
	return math.Float64frombits(v), err
}

// CString reads a fixed-size slot and returns the bytes up to (but not
// including) the first null byte. The cursor advances by the full slot size
// regardless of where the terminator falls.
func (c *Cursor) CString(slot int) ([]byte, error) {
	b, err := c.Bytes(slot)
	if err != nil {
		return nil, err
	}
	return CutNull(b), nil
}

// CutNull returns b truncated at its first null byte, or b unchanged if it
// contains none.
func CutNull(b []byte) []byte {
	for i, v := range b {
		if v == 0 {
			return b[:i]
		}
	}
	return b
}
