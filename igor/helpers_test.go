package igor

import (
	"encoding/binary"

	bin "github.com/robert-malhotra/go-igor/internal/binary"
	"github.com/robert-malhotra/go-igor/internal/dtype"
)

// record assembles one [header][payload] unit. The byte-order inference in
// the header decoder reads bits of the first byte, so the caller must pick a
// (type, order) combination the heuristic can represent; every documented
// type code except 8 works little-endian, and all work big-endian.
func record(t RecordType, order binary.ByteOrder, payload []byte) []byte {
	b := bin.NewBuilder(order)
	b.Int16(int16(t))
	b.Int16(0) // reserved
	b.Int32(int32(len(payload)))
	b.Raw(payload)
	return b.Bytes()
}

// archive concatenates records into a single buffer.
func archive(records ...[]byte) []byte {
	var out []byte
	for _, r := range records {
		out = append(out, r...)
	}
	return out
}

func folderStartRecord(order binary.ByteOrder, name string) []byte {
	return record(TypeFolderStart, order, append([]byte(name), 0))
}

func folderEndRecord(order binary.ByteOrder) []byte {
	return record(TypeFolderEnd, order, nil)
}

// waveV5 describes a synthetic version 5 wave payload.
type waveV5 struct {
	name      string
	code      dtype.Code
	dims      [4]int32
	start     [4]float64
	step      [4]float64
	units     string
	axisUnits [4]string
	data      []byte // raw data region (numeric values or concatenated text)
	textIndex []int32
	formula   []byte
	note      []byte
	extUnits  []string // 5 regions: data units + 4 axis units (empty = absent)
}

// payload lays out the wave with the bit-exact version 5 offsets.
func (w waveV5) payload(order binary.ByteOrder) []byte {
	b := bin.NewBuilder(order)

	extraOffset := 320 + len(w.data) // relative to the end of the prelude

	b.Int16(5)
	b.Int16(0) // checksum
	b.Int32(int32(extraOffset))
	b.Int32(int32(len(w.formula)))
	b.Int32(int32(len(w.note)))
	for i := 0; i < 9; i++ {
		if i < len(w.extUnits) {
			b.Int32(int32(len(w.extUnits[i])))
		} else {
			b.Int32(0)
		}
	}
	b.Int32(int32(4 * len(w.textIndex)))
	b.PadTo(64)

	// WaveHeader5, 320 bytes.
	b.Zeros(4) // next-wave pointer
	b.Uint32(0)
	b.Uint32(0)
	b.Int32(0) // total points, readers derive from dims
	b.Int16(int16(w.code))
	b.PadTo(64 + 28)
	b.CString(w.name, 32)
	b.PadTo(64 + 68)
	for _, d := range w.dims {
		b.Int32(d)
	}
	for _, v := range w.start {
		b.Float64(v)
	}
	for _, v := range w.step {
		b.Float64(v)
	}
	b.CString(w.units, 4)
	for _, u := range w.axisUnits {
		b.CString(u, 4)
	}
	b.PadTo(64 + 172)
	b.Int16(1) // fsValid
	b.Int16(0)
	b.Float64(0)
	b.Float64(0)
	b.PadTo(64 + 320)

	b.Raw(w.data)
	b.Raw(w.formula)
	b.Raw(w.note)
	for _, u := range w.extUnits {
		b.Raw([]byte(u))
	}
	for _, off := range w.textIndex {
		b.Int32(off)
	}
	return b.Bytes()
}

// waveV123 describes a synthetic wave payload in one of the legacy format
// versions, which share a fixed header and differ only in their preludes.
type waveV123 struct {
	version int16 // 1, 2, or 3
	name    string
	code    dtype.Code
	points  int32
	start   float64
	step    float64
	units   string
	xUnits  string
	data    []byte
	note    []byte
	formula []byte
}

func (w waveV123) payload(order binary.ByteOrder) []byte {
	b := bin.NewBuilder(order)

	extra := int32(110 + len(w.data)) // extra-data offset, relative
	var base int
	switch w.version {
	case 1:
		b.Int16(1)
		b.Int32(extra)
		b.Int16(0) // checksum
		base = 8
	case 2:
		b.Int16(2)
		b.Int32(extra)
		b.Int32(int32(len(w.note)))
		b.Int32(0) // picture size
		b.Int16(0) // checksum
		base = 16
	case 3:
		b.Int16(3)
		b.Int32(extra)
		b.Int32(int32(len(w.note)))
		b.Int32(int32(len(w.formula)))
		b.Int32(0) // picture size
		b.Int16(0) // checksum
		base = 20
	default:
		panic("version must be 1, 2, or 3")
	}

	// Legacy WaveHeader, 110 bytes.
	b.Int16(int16(w.code))
	b.PadTo(base + 6)
	b.CString(w.name, 20)
	b.PadTo(base + 34)
	b.CString(w.units, 4)
	b.CString(w.xUnits, 4)
	b.Int32(w.points)
	b.PadTo(base + 48)
	b.Float64(w.start)
	b.Float64(w.step)
	b.PadTo(base + 70)
	b.Int16(1) // fsValid
	b.Float64(12.5)
	b.Float64(-2.5)
	b.PadTo(base + 98)
	b.Uint32(1000)
	b.Int16(0)
	b.Uint32(2000)
	b.PadTo(base + 110)

	b.Raw(w.data)
	b.Raw(w.formula)
	b.Raw(w.note)
	return b.Bytes()
}
