package igor

import (
	"encoding/binary"
	"fmt"
	"strconv"
	"strings"

	bin "github.com/robert-malhotra/go-igor/internal/binary"
	"github.com/robert-malhotra/go-igor/internal/dtype"
)

// Wave is a named numeric array or text-fragment sequence with associated
// units and axis scaling.
//
// For numeric waves Data holds a flat typed slice ([]float64, []int16,
// []complex64, ...) in row-major order over Dims; Text is nil. For text waves
// Text holds one byte string per point and Data is nil.
type Wave struct {
	RawName []byte
	Version int
	Type    dtype.Code // numeric type code; dtype.Text for text waves

	Dims []int       // non-zero dimension sizes, in order
	Data interface{} // flat typed slice, nil for text waves
	Text [][]byte    // text fragments, nil for numeric waves

	DataUnits []byte
	AxisUnits [4][]byte
	Axis      [4][]float64 // per-axis coordinates, empty for absent dimensions

	Formula []byte // raw dependency formula, if any
	Note    []byte // raw wave note, if any

	FSValid  bool // full-scale values below are meaningful
	FSTop    float64
	FSBottom float64

	Created  uint32 // Igor timestamps (seconds since 1904-01-01)
	Modified uint32

	order binary.ByteOrder
}

// Name returns the wave name decoded from its raw bytes.
func (w *Wave) Name() string { return string(w.RawName) }

// ByteOrder returns the byte order the wave was stored in.
func (w *Wave) ByteOrder() binary.ByteOrder { return w.order }

// IsText reports whether the wave holds text fragments rather than numbers.
func (w *Wave) IsText() bool { return w.Type == dtype.Text }

// NumPoints returns the total element count over all non-zero dimensions.
func (w *Wave) NumPoints() int {
	if w.IsText() {
		return len(w.Text)
	}
	n := 1
	for _, d := range w.Dims {
		n *= d
	}
	if len(w.Dims) == 0 {
		return 0
	}
	return n
}

// Float64s returns the wave data widened to float64. It fails for text and
// complex waves.
func (w *Wave) Float64s() ([]float64, error) {
	switch v := w.Data.(type) {
	case []float64:
		return v, nil
	case []float32:
		out := make([]float64, len(v))
		for i, x := range v {
			out[i] = float64(x)
		}
		return out, nil
	case []int8:
		out := make([]float64, len(v))
		for i, x := range v {
			out[i] = float64(x)
		}
		return out, nil
	case []int16:
		out := make([]float64, len(v))
		for i, x := range v {
			out[i] = float64(x)
		}
		return out, nil
	case []int32:
		out := make([]float64, len(v))
		for i, x := range v {
			out[i] = float64(x)
		}
		return out, nil
	case []uint8:
		out := make([]float64, len(v))
		for i, x := range v {
			out[i] = float64(x)
		}
		return out, nil
	case []uint16:
		out := make([]float64, len(v))
		for i, x := range v {
			out[i] = float64(x)
		}
		return out, nil
	case []uint32:
		out := make([]float64, len(v))
		for i, x := range v {
			out[i] = float64(x)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("wave %q: data is %T, not real-valued numeric", w.Name(), w.Data)
	}
}

// Format renders a one-line summary in the form "name data (10x3)".
func (w *Wave) Format(indent int) string {
	if w.IsText() {
		return fmt.Sprintf("%s%s text (%d)", pad(indent), w.Name(), len(w.Text))
	}
	ds := make([]string, len(w.Dims))
	for i, d := range w.Dims {
		ds[i] = strconv.Itoa(d)
	}
	return fmt.Sprintf("%s%s data (%s)", pad(indent), w.Name(), strings.Join(ds, "x"))
}

// waveHeader carries the fields shared by all wave format versions once the
// version-specific prelude and fixed header have been consumed.
type waveHeader struct {
	typ      dtype.Code
	name     []byte
	units    []byte
	axisUnit [4][]byte
	dims     [4]int
	start    [4]float64
	step     [4]float64
	fsValid  bool
	fsTop    float64
	fsBottom float64
	created  uint32
	modified uint32
	dataPos  int
}

// decodeWave parses a wave record payload. Field offsets are bit-exact per
// the BinHeader/WaveHeader layouts in TN003 and must not be adjusted.
func decodeWave(data []byte, order binary.ByteOrder) (Record, error) {
	c := bin.NewCursor(data, order)

	version, err := c.Int16()
	if err != nil {
		return nil, waveErr(err)
	}

	var (
		base          int
		extraOffset   int
		formulaSize   int
		noteSize      int
		extSizes      [9]int
		textIndexSize int
	)

	readInt32 := func(dst *int) {
		if err != nil {
			return
		}
		var v int32
		v, err = c.Int32()
		*dst = int(v)
	}

	switch version {
	case 1:
		readInt32(&extraOffset)
		c.Skip(2) // checksum
		base = 8
	case 2:
		readInt32(&extraOffset)
		readInt32(&noteSize)
		c.Skip(4 + 2) // picture size, checksum
		base = 16
	case 3:
		readInt32(&extraOffset)
		readInt32(&noteSize)
		readInt32(&formulaSize)
		c.Skip(4 + 2) // picture size, checksum
		base = 20
	case 5:
		c.Skip(2) // checksum
		readInt32(&extraOffset)
		readInt32(&formulaSize)
		readInt32(&noteSize)
		for i := range extSizes {
			readInt32(&extSizes[i])
		}
		readInt32(&textIndexSize)
		base = 64
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedWaveVersion, version)
	}
	if err != nil {
		return nil, waveErr(err)
	}

	// The extra-data offset is relative to the end of the version prelude.
	extraOffset += base

	var hdr waveHeader
	if version == 5 {
		err = decodeWaveHeader5(c.At(base), &hdr)
	} else {
		err = decodeWaveHeader123(c.At(base), &hdr)
	}
	if err != nil {
		return nil, waveErr(err)
	}

	for _, d := range hdr.dims {
		if d < 0 {
			return nil, fmt.Errorf("%w: wave %q declares negative dimension %d",
				ErrTruncatedWave, string(hdr.name), d)
		}
	}

	w := &Wave{
		RawName:   hdr.name,
		Version:   int(version),
		Type:      hdr.typ,
		DataUnits: hdr.units,
		AxisUnits: hdr.axisUnit,
		FSValid:   hdr.fsValid,
		FSTop:     hdr.fsTop,
		FSBottom:  hdr.fsBottom,
		Created:   hdr.created,
		Modified:  hdr.modified,
		order:     order,
	}

	if hdr.typ == dtype.Text {
		if version != 5 {
			return nil, fmt.Errorf("%w: text wave in version %d record", ErrUnsupportedWaveVersion, version)
		}
		if err := decodeTextWave(c, w, hdr.dataPos, extraOffset, textIndexSize); err != nil {
			return nil, err
		}
	} else {
		if err := decodeNumericWave(c, w, &hdr); err != nil {
			return nil, err
		}
	}

	for i, n := range hdr.dims {
		axis := make([]float64, n)
		for j := range axis {
			axis[j] = hdr.start[i] + hdr.step[i]*float64(j)
		}
		w.Axis[i] = axis
	}

	pos := extraOffset
	if w.Formula, err = c.Slice(pos, pos+formulaSize); err != nil {
		return nil, waveErr(err)
	}
	pos += formulaSize
	if w.Note, err = c.Slice(pos, pos+noteSize); err != nil {
		return nil, waveErr(err)
	}
	pos += noteSize

	if version == 5 {
		if err := decodeExtendedUnits(c, w, pos, extSizes); err != nil {
			return nil, err
		}
	}

	return w, nil
}

// decodeWaveHeader123 reads the fixed header shared by wave versions 1-3.
// The cursor is positioned at the start of the header.
func decodeWaveHeader123(c *bin.Cursor, hdr *waveHeader) error {
	typ, err := c.Int16()
	if err != nil {
		return err
	}
	hdr.typ = dtype.Code(typ)

	c.Skip(4)
	if hdr.name, err = c.CString(20); err != nil {
		return err
	}
	c.Skip(8)
	if hdr.units, err = c.CString(4); err != nil {
		return err
	}
	if hdr.axisUnit[0], err = c.CString(4); err != nil {
		return err
	}
	points, err := c.Int32()
	if err != nil {
		return err
	}
	hdr.dims[0] = int(points)

	c.Skip(2)
	if hdr.start[0], err = c.Float64(); err != nil {
		return err
	}
	if hdr.step[0], err = c.Float64(); err != nil {
		return err
	}

	c.Skip(6)
	fsValid, err := c.Int16()
	if err != nil {
		return err
	}
	hdr.fsValid = fsValid != 0
	if hdr.fsTop, err = c.Float64(); err != nil {
		return err
	}
	if hdr.fsBottom, err = c.Float64(); err != nil {
		return err
	}

	c.Skip(10)
	if hdr.created, err = c.Uint32(); err != nil {
		return err
	}
	c.Skip(2)
	if hdr.modified, err = c.Uint32(); err != nil {
		return err
	}

	hdr.dataPos = c.Pos() + 2
	return nil
}

// decodeWaveHeader5 reads the expanded version 5 fixed header.
// The cursor is positioned at the start of the header.
func decodeWaveHeader5(c *bin.Cursor, hdr *waveHeader) error {
	headerStart := c.Pos()

	c.Skip(4) // next-wave pointer, meaningless on disk
	var err error
	if hdr.created, err = c.Uint32(); err != nil {
		return err
	}
	if hdr.modified, err = c.Uint32(); err != nil {
		return err
	}
	c.Skip(4) // total point count, derivable from dims
	typ, err := c.Int16()
	if err != nil {
		return err
	}
	hdr.typ = dtype.Code(typ)

	c.Skip(10)
	if hdr.name, err = c.CString(32); err != nil {
		return err
	}

	c.Skip(8)
	for i := range hdr.dims {
		d, err := c.Int32()
		if err != nil {
			return err
		}
		hdr.dims[i] = int(d)
	}
	for i := range hdr.start {
		if hdr.start[i], err = c.Float64(); err != nil {
			return err
		}
	}
	for i := range hdr.step {
		if hdr.step[i], err = c.Float64(); err != nil {
			return err
		}
	}

	if hdr.units, err = c.CString(4); err != nil {
		return err
	}
	for i := range hdr.axisUnit {
		if hdr.axisUnit[i], err = c.CString(4); err != nil {
			return err
		}
	}

	c.Skip(4)
	fsValid, err := c.Int16()
	if err != nil {
		return err
	}
	hdr.fsValid = fsValid != 0
	c.Skip(2)
	if hdr.fsTop, err = c.Float64(); err != nil {
		return err
	}
	if hdr.fsBottom, err = c.Float64(); err != nil {
		return err
	}

	hdr.dataPos = headerStart + 320
	return nil
}

// decodeTextWave slices the text region into per-point fragments using the
// index table at the very end of the payload. The stored table omits the
// leading zero offset.
func decodeTextWave(c *bin.Cursor, w *Wave, dataPos, extraOffset, indexSize int) error {
	region, err := c.Slice(dataPos, extraOffset)
	if err != nil {
		return waveErr(err)
	}
	if indexSize < 0 || indexSize%4 != 0 {
		return fmt.Errorf("%w: text index table size %d", ErrTruncatedWave, indexSize)
	}
	index, err := c.Slice(c.Len()-indexSize, c.Len())
	if err != nil {
		return waveErr(err)
	}

	n := indexSize / 4
	w.Text = make([][]byte, 0, n)
	prev := 0
	for i := 0; i < n; i++ {
		off := int(int32(c.ByteOrder().Uint32(index[i*4:])))
		if off < prev || off > len(region) {
			return fmt.Errorf("%w: text index entry %d out of range", ErrTruncatedWave, i)
		}
		w.Text = append(w.Text, region[prev:off])
		prev = off
	}
	w.Dims = []int{n}
	return nil
}

// decodeNumericWave reinterprets the main data region as the wave's element
// type, shaped over the non-zero dimensions.
func decodeNumericWave(c *bin.Cursor, w *Wave, hdr *waveHeader) error {
	t, err := dtype.Lookup(hdr.typ)
	if err != nil {
		return fmt.Errorf("wave %q: %w", string(hdr.name), err)
	}

	dims := make([]int, 0, 4)
	n := 1
	for _, d := range hdr.dims {
		if d != 0 {
			dims = append(dims, d)
			n *= d
		}
	}
	if len(dims) == 0 {
		n = 0
	}

	region, err := c.Slice(hdr.dataPos, hdr.dataPos+n*t.Size)
	if err != nil {
		return waveErr(err)
	}
	if w.Data, err = dtype.Decode(t, region, n, c.ByteOrder()); err != nil {
		return fmt.Errorf("%w: wave %q: %v", ErrTruncatedWave, string(hdr.name), err)
	}
	w.Dims = dims
	return nil
}

// decodeExtendedUnits consumes the version 5 trailing regions. The first
// region is an extended data-units string and the next four are extended
// axis-unit strings; non-empty values override the fixed header slots. The
// remaining four regions (dimension labels) are consumed positionally.
func decodeExtendedUnits(c *bin.Cursor, w *Wave, pos int, sizes [9]int) error {
	for i, size := range sizes {
		region, err := c.Slice(pos, pos+size)
		if err != nil {
			return waveErr(err)
		}
		pos += size
		if len(region) == 0 {
			continue
		}
		switch {
		case i == 0:
			w.DataUnits = region
		case i <= 4:
			w.AxisUnits[i-1] = region
		}
	}
	return nil
}

// waveErr converts a cursor bounds failure into a truncated-wave error.
func waveErr(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %v", ErrTruncatedWave, err)
}
