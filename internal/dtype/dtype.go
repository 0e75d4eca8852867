// Package dtype maps Igor numeric type codes to element kinds and decodes
// raw data regions into typed Go slices.
//
// The code table comes from the wave and variable record layouts documented
// in Igor technical notes PTN003/TN003 and is shared, read-only, by every
// decode.
package dtype

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
)

// ErrUnknownCode is returned when a numeric type code has no table entry.
var ErrUnknownCode = errors.New("unknown numeric type code")

// Code is a numeric type code as stored in wave and variable records.
// A code of 0 marks text data rather than numeric.
type Code int16

// Text is the code marking a text wave.
const Text Code = 0

// Kind identifies the element kind of a numeric type.
type Kind int

// Element kinds.
const (
	Complex64 Kind = iota
	Complex128
	Float32
	Float64
	Int8
	Int16
	Int32
	Uint8
	Uint16
	Uint32
)

// Type describes a resolved numeric type: its element kind and byte width.
type Type struct {
	Kind Kind
	Size int
}

// types is the fixed code table. Codes 1 and 3 are historical aliases for
// the same 64-bit complex layout; 64 added to an integer code makes it
// unsigned.
var types = map[Code]Type{
	1:       {Complex64, 8},
	2:       {Float32, 4},
	3:       {Complex64, 8},
	4:       {Float64, 8},
	5:       {Complex128, 16},
	8:       {Int8, 1},
	16:      {Int16, 2},
	32:      {Int32, 4},
	64 + 8:  {Uint8, 1},
	64 + 16: {Uint16, 2},
	64 + 32: {Uint32, 4},
}

// Lookup resolves a numeric type code.
func Lookup(code Code) (Type, error) {
	t, ok := types[code]
	if !ok {
		return Type{}, fmt.Errorf("%w: %d", ErrUnknownCode, code)
	}
	return t, nil
}

// IsComplex reports whether the type holds complex elements.
func (t Type) IsComplex() bool {
	return t.Kind == Complex64 || t.Kind == Complex128
}

// Decode reinterprets raw as n elements of type t under the given byte order
// and returns a flat typed slice ([]float32, []complex128, ...).
func Decode(t Type, raw []byte, n int, order binary.ByteOrder) (interface{}, error) {
	if len(raw) < n*t.Size {
		return nil, fmt.Errorf("data region holds %d bytes, need %d", len(raw), n*t.Size)
	}
	switch t.Kind {
	case Complex64:
		out := make([]complex64, n)
		for i := range out {
			re := math.Float32frombits(order.Uint32(raw[i*8:]))
			im := math.Float32frombits(order.Uint32(raw[i*8+4:]))
			out[i] = complex(re, im)
		}
		return out, nil
	case Complex128:
		out := make([]complex128, n)
		for i := range out {
			re := math.Float64frombits(order.Uint64(raw[i*16:]))
			im := math.Float64frombits(order.Uint64(raw[i*16+8:]))
			out[i] = complex(re, im)
		}
		return out, nil
	case Float32:
		out := make([]float32, n)
		for i := range out {
			out[i] = math.Float32frombits(order.Uint32(raw[i*4:]))
		}
		return out, nil
	case Float64:
		out := make([]float64, n)
		for i := range out {
			out[i] = math.Float64frombits(order.Uint64(raw[i*8:]))
		}
		return out, nil
	case Int8:
		out := make([]int8, n)
		for i := range out {
			out[i] = int8(raw[i])
		}
		return out, nil
	case Int16:
		out := make([]int16, n)
		for i := range out {
			out[i] = int16(order.Uint16(raw[i*2:]))
		}
		return out, nil
	case Int32:
		out := make([]int32, n)
		for i := range out {
			out[i] = int32(order.Uint32(raw[i*4:]))
		}
		return out, nil
	case Uint8:
		out := make([]uint8, n)
		copy(out, raw[:n])
		return out, nil
	case Uint16:
		out := make([]uint16, n)
		for i := range out {
			out[i] = order.Uint16(raw[i*2:])
		}
		return out, nil
	case Uint32:
		out := make([]uint32, n)
		for i := range out {
			out[i] = order.Uint32(raw[i*4:])
		}
		return out, nil
	default:
		return nil, fmt.Errorf("unhandled kind %d", t.Kind)
	}
}

// Scalar converts a real/imaginary pair read from a variable record into a
// single value of type t: a complex value for complex kinds, the imaginary
// part discarded otherwise. Integer kinds truncate toward zero.
func Scalar(t Type, real, imag float64) interface{} {
	switch t.Kind {
	case Complex64:
		return complex64(complex(real, imag))
	case Complex128:
		return complex(real, imag)
	case Float32:
		return float32(real)
	case Float64:
		return real
	case Int8:
		return int8(real)
	case Int16:
		return int16(real)
	case Int32:
		return int32(real)
	case Uint8:
		return uint8(real)
	case Uint16:
		return uint16(real)
	case Uint32:
		return uint32(real)
	default:
		return real
	}
}
