package binary

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCursorScalarReads(t *testing.T) {
	b := NewBuilder(binary.LittleEndian)
	b.Uint8(0x42)
	b.Uint16(0x0102)
	b.Uint32(0xDEADBEEF)
	b.Int16(-7)
	b.Int32(-100000)
	b.Float32(1.5)
	b.Float64(-2.25)

	c := NewCursor(b.Bytes(), binary.LittleEndian)

	v8, err := c.Uint8()
	require.NoError(t, err)
	assert.Equal(t, uint8(0x42), v8)

	v16, err := c.Uint16()
	require.NoError(t, err)
	assert.Equal(t, uint16(0x0102), v16)

	v32, err := c.Uint32()
	require.NoError(t, err)
	assert.Equal(t, uint32(0xDEADBEEF), v32)

	i16, err := c.Int16()
	require.NoError(t, err)
	assert.Equal(t, int16(-7), i16)

	i32, err := c.Int32()
	require.NoError(t, err)
	assert.Equal(t, int32(-100000), i32)

	f32, err := c.Float32()
	require.NoError(t, err)
	assert.Equal(t, float32(1.5), f32)

	f64, err := c.Float64()
	require.NoError(t, err)
	assert.Equal(t, -2.25, f64)

	assert.True(t, c.EOF())
}

func TestCursorBigEndian(t *testing.T) {
	c := NewCursor([]byte{0x01, 0x02, 0x03, 0x04}, binary.BigEndian)
	v, err := c.Uint32()
	require.NoError(t, err)
	assert.Equal(t, uint32(0x01020304), v)
}

func TestCursorBoundsChecks(t *testing.T) {
	tests := []struct {
		name string
		read func(c *Cursor) error
	}{
		{"bytes past end", func(c *Cursor) error { _, err := c.Bytes(5); return err }},
		{"uint32 past end", func(c *Cursor) error { _, err := c.Uint32(); return err }},
		{"negative count", func(c *Cursor) error { _, err := c.Bytes(-1); return err }},
		{"slice past end", func(c *Cursor) error { _, err := c.Slice(0, 10); return err }},
		{"slice inverted", func(c *Cursor) error { _, err := c.Slice(3, 1); return err }},
		{"slice negative", func(c *Cursor) error { _, err := c.Slice(-1, 2); return err }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCursor([]byte{1, 2, 3}, binary.LittleEndian)
			require.ErrorIs(t, tt.read(c), ErrShortBuffer)
		})
	}
}

func TestCursorAtIsIndependent(t *testing.T) {
	c := NewCursor([]byte{0, 1, 2, 3, 4, 5}, binary.LittleEndian)

	c2 := c.At(3)
	v, err := c2.Uint8()
	require.NoError(t, err)
	assert.Equal(t, uint8(3), v)

	v, err = c.Uint8()
	require.NoError(t, err)
	assert.Equal(t, uint8(0), v)
	assert.Equal(t, 5, c.Remaining())
}

func TestCursorSkipAndPos(t *testing.T) {
	c := NewCursor(make([]byte, 10), binary.LittleEndian)
	c.Skip(4)
	assert.Equal(t, 4, c.Pos())
	assert.Equal(t, 6, c.Remaining())
	c.Skip(20)
	assert.True(t, c.EOF())
	assert.Equal(t, 0, c.Remaining())

	_, err := c.Bytes(1)
	assert.ErrorIs(t, err, ErrShortBuffer)
}

func TestCursorCString(t *testing.T) {
	c := NewCursor([]byte{'h', 'i', 0, 'x', 'n', 'o', 'n', 'u', 'l', 'l'}, binary.LittleEndian)

	s, err := c.CString(4)
	require.NoError(t, err)
	assert.Equal(t, []byte("hi"), s)
	// Slot fully consumed even though the terminator came early.
	assert.Equal(t, 4, c.Pos())

	s, err = c.CString(6)
	require.NoError(t, err)
	assert.Equal(t, []byte("nonull"), s)
}

func TestBuilderPadTo(t *testing.T) {
	b := NewBuilder(binary.LittleEndian)
	b.Uint16(7).PadTo(8)
	assert.Equal(t, 8, b.Len())
	assert.Equal(t, []byte{7, 0, 0, 0, 0, 0, 0, 0}, b.Bytes())

	assert.Panics(t, func() { b.PadTo(4) })
}

func TestBuilderCString(t *testing.T) {
	b := NewBuilder(binary.LittleEndian)
	b.CString("abc", 5)
	assert.Equal(t, []byte{'a', 'b', 'c', 0, 0}, b.Bytes())

	assert.Panics(t, func() { NewBuilder(binary.LittleEndian).CString("abcde", 5) })
}

func TestBuilderCursorRoundTrip(t *testing.T) {
	for _, order := range []binary.ByteOrder{binary.LittleEndian, binary.BigEndian} {
		b := NewBuilder(order)
		b.Int32(-42).Float64(3.75).CString("name", 8)

		c := NewCursor(b.Bytes(), order)
		i, err := c.Int32()
		require.NoError(t, err)
		assert.Equal(t, int32(-42), i)
		f, err := c.Float64()
		require.NoError(t, err)
		assert.Equal(t, 3.75, f)
		s, err := c.CString(8)
		require.NoError(t, err)
		assert.Equal(t, []byte("name"), s)
	}
}
