package igor

import (
	"encoding/binary"
	"fmt"

	bin "github.com/robert-malhotra/go-igor/internal/binary"
	"github.com/robert-malhotra/go-igor/internal/dtype"
)

// Formula is a dependency expression paired with its last-evaluated value.
// Value is a numeric scalar for dependent numeric variables and the empty
// string for dependent string variables.
type Formula struct {
	Expr  []byte
	Value interface{}
}

// Variables bundles the scalar variables of an experiment: system numerics
// (keyed K0, K1, ...), user numerics (real or complex per their type code),
// user strings, and dependent variables wrapped as formulas.
type Variables struct {
	Version int

	SysVars  map[string]float32
	UserVars map[string]interface{}
	UserStrs map[string][]byte
	DepVars  map[string]*Formula
	DepStrs  map[string]*Formula

	order binary.ByteOrder
}

// ByteOrder returns the byte order the record was stored in.
func (v *Variables) ByteOrder() binary.ByteOrder { return v.order }

// Format renders a one-line summary of the variable counts.
func (v *Variables) Format(indent int) string {
	return fmt.Sprintf("%s<Variables: system %d, user %d, dependent %d>",
		pad(indent),
		len(v.SysVars),
		len(v.UserVars)+len(v.UserStrs),
		len(v.DepVars)+len(v.DepStrs))
}

// decodeVariables parses a variables record payload. Version 1 headers carry
// three entry counts, version 2 five; the only other structural difference is
// the user-string length prefix width.
func decodeVariables(data []byte, order binary.ByteOrder) (Record, error) {
	c := bin.NewCursor(data, order)

	version, err := c.Int16()
	if err != nil {
		return nil, varErr(err)
	}
	if version != 1 && version != 2 {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVariablesVersion, version)
	}

	counts := make([]int, 5)
	numCounts := 3
	if version == 2 {
		numCounts = 5
	}
	for i := 0; i < numCounts; i++ {
		n, err := c.Int16()
		if err != nil {
			return nil, varErr(err)
		}
		counts[i] = int(n)
	}

	v := &Variables{Version: int(version), order: order}

	if v.SysVars, err = parseSysNumeric(c, counts[0]); err != nil {
		return nil, err
	}
	if v.UserVars, err = parseUserNumeric(c, counts[1]); err != nil {
		return nil, err
	}
	if v.UserStrs, err = parseUserString(c, counts[2], version == 2); err != nil {
		return nil, err
	}
	if v.DepVars, err = parseDependent(c, counts[3], true); err != nil {
		return nil, err
	}
	if v.DepStrs, err = parseDependent(c, counts[4], false); err != nil {
		return nil, err
	}

	return v, nil
}

// parseSysNumeric reads n consecutive 32-bit floats keyed K0, K1, ...
func parseSysNumeric(c *bin.Cursor, n int) (map[string]float32, error) {
	vars := make(map[string]float32, n)
	for i := 0; i < n; i++ {
		f, err := c.Float32()
		if err != nil {
			return nil, varErr(err)
		}
		vars[fmt.Sprintf("K%d", i)] = f
	}
	return vars, nil
}

// parseUserNumeric reads n fixed 56-byte user numeric entries.
func parseUserNumeric(c *bin.Cursor, n int) (map[string]interface{}, error) {
	vars := make(map[string]interface{}, n)
	for i := 0; i < n; i++ {
		start := c.Pos()
		name, code, real, imag, err := parseNumericEntry(c)
		if err != nil {
			return nil, err
		}
		t, err := dtype.Lookup(code)
		if err != nil {
			return nil, fmt.Errorf("user variable %q: %w", name, err)
		}
		vars[string(name)] = dtype.Scalar(t, real, imag)
		c.Skip(start + 56 - c.Pos())
	}
	return vars, nil
}

// parseNumericEntry reads the name slot, numeric type code, and
// real/imaginary pair shared by user and dependent numeric entries.
func parseNumericEntry(c *bin.Cursor) ([]byte, dtype.Code, float64, float64, error) {
	name, err := c.CString(32)
	if err != nil {
		return nil, 0, 0, 0, varErr(err)
	}
	c.Skip(2) // VarHeader type field, unused
	code, err := c.Int16()
	if err != nil {
		return nil, 0, 0, 0, varErr(err)
	}
	real, err := c.Float64()
	if err != nil {
		return nil, 0, 0, 0, varErr(err)
	}
	imag, err := c.Float64()
	if err != nil {
		return nil, 0, 0, 0, varErr(err)
	}
	return name, dtype.Code(code), real, imag, nil
}

// parseUserString reads n user string entries. The value length prefix is
// 16-bit in version 1 records and 32-bit in version 2.
func parseUserString(c *bin.Cursor, n int, wide bool) (map[string][]byte, error) {
	vars := make(map[string][]byte, n)
	for i := 0; i < n; i++ {
		name, err := c.CString(32)
		if err != nil {
			return nil, varErr(err)
		}
		var length int
		if wide {
			v, err := c.Int32()
			if err != nil {
				return nil, varErr(err)
			}
			length = int(v)
		} else {
			v, err := c.Int16()
			if err != nil {
				return nil, varErr(err)
			}
			length = int(v)
		}
		value, err := c.Bytes(length)
		if err != nil {
			return nil, varErr(err)
		}
		vars[string(name)] = value
	}
	return vars, nil
}

// parseDependent reads n dependent variable entries. Numeric entries carry a
// type code and real/imaginary pair before the formula; string entries skip
// straight from the name slot to the formula. The stored formula length
// includes a trailing terminator that is stripped.
func parseDependent(c *bin.Cursor, n int, numeric bool) (map[string]*Formula, error) {
	vars := make(map[string]*Formula, n)
	for i := 0; i < n; i++ {
		var (
			name  []byte
			value interface{}
			err   error
		)
		if numeric {
			var (
				code       dtype.Code
				real, imag float64
			)
			name, code, real, imag, err = parseNumericEntry(c)
			if err != nil {
				return nil, err
			}
			t, err := dtype.Lookup(code)
			if err != nil {
				return nil, fmt.Errorf("dependent variable %q: %w", name, err)
			}
			value = dtype.Scalar(t, real, imag)
			c.Skip(4) // pad to the DepData formula length field
		} else {
			if name, err = c.CString(32); err != nil {
				return nil, varErr(err)
			}
			c.Skip(16) // unused numeric slot in DepData
			value = ""
		}

		length, err := c.Int16()
		if err != nil {
			return nil, varErr(err)
		}
		if length < 1 {
			return nil, fmt.Errorf("%w: dependent formula length %d", ErrTruncatedVariables, length)
		}
		expr, err := c.Bytes(int(length))
		if err != nil {
			return nil, varErr(err)
		}
		vars[string(name)] = &Formula{Expr: expr[:length-1], Value: value}
	}
	return vars, nil
}

// varErr converts a cursor bounds failure into a truncated-variables error.
func varErr(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %v", ErrTruncatedVariables, err)
}
