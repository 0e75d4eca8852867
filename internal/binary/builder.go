package binary

import (
	"encoding/binary"
	"math"
)

// Builder accumulates binary data in a chosen byte order. It is the write
// counterpart of Cursor and is used to assemble synthetic records.
type Builder struct {
	buf   []byte
	order binary.ByteOrder
}

// NewBuilder creates an empty builder using the given byte order.
func NewBuilder(order binary.ByteOrder) *Builder {
	return &Builder{order: order}
}

// Bytes returns the accumulated buffer.
func (b *Builder) Bytes() []byte {
	return b.buf
}

// Len returns the number of bytes written so far.
func (b *Builder) Len() int {
	return len(b.buf)
}

// ByteOrder returns the builder's byte order.
func (b *Builder) ByteOrder() binary.ByteOrder {
	return b.order
}

// Raw appends data verbatim.
func (b *Builder) Raw(data []byte) *Builder {
	b.buf = append(b.buf, data...)
	return b
}

// Zeros appends n zero bytes.
func (b *Builder) Zeros(n int) *Builder {
	b.buf = append(b.buf, make([]byte, n)...)
	return b
}

// PadTo appends zero bytes until the buffer reaches length n.
// It panics if the buffer is already longer than n.
func (b *Builder) PadTo(n int) *Builder {
	if len(b.buf) > n {
		panic("binary: PadTo target before current length")
	}
	return b.Zeros(n - len(b.buf))
}

// Uint8 appends an unsigned 8-bit integer.
func (b *Builder) Uint8(v uint8) *Builder {
	b.buf = append(b.buf, v)
	return b
}

// Uint16 appends an unsigned 16-bit integer.
func (b *Builder) Uint16(v uint16) *Builder {
	var tmp [2]byte
	b.order.PutUint16(tmp[:], v)
	return b.Raw(tmp[:])
}

// Uint32 appends an unsigned 32-bit integer.
func (b *Builder) Uint32(v uint32) *Builder {
	var tmp [4]byte
	b.order.PutUint32(tmp[:], v)
	return b.Raw(tmp[:])
}

// Uint64 appends an unsigned 64-bit integer.
func (b *Builder) Uint64(v uint64) *Builder {
	var tmp [8]byte
	b.order.PutUint64(tmp[:], v)
	return b.Raw(tmp[:])
}

// Int16 appends a signed 16-bit integer.
func (b *Builder) Int16(v int16) *Builder {
	return b.Uint16(uint16(v))
}

// Int32 appends a signed 32-bit integer.
func (b *Builder) Int32(v int32) *Builder {
	return b.Uint32(uint32(v))
}

// Float32 appends an IEEE 754 32-bit float.
func (b *Builder) Float32(v float32) *Builder {
	return b.Uint32(math.Float32bits(v))
}

// Float64 appends an IEEE 754 64-bit float.
func (b *Builder) Float64(v float64) *Builder {
	return b.Uint64(math.Float64bits(v))
}

// CString appends s into a fixed-size null-padded slot.
// It panics if s does not fit with a terminator.
func (b *Builder) CString(s string, slot int) *Builder {
	if len(s) >= slot {
		panic("binary: string does not fit slot")
	}
	b.Raw([]byte(s))
	return b.Zeros(slot - len(s))
}
