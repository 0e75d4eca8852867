package igor

import (
	"encoding/binary"
	"fmt"
	"os"

	"go.uber.org/zap"

	bin "github.com/robert-malhotra/go-igor/internal/binary"
)

// recordHeaderSize is the fixed size of the record header preceding every
// payload.
const recordHeaderSize = 8

// decoderFunc turns a record payload into a typed record.
type decoderFunc func(data []byte, order binary.ByteOrder) (Record, error)

// decoders maps record type codes to their decoders. The table is read-only
// and shared by all loads.
var decoders = map[RecordType]decoderFunc{
	TypeVariables: decodeVariables,
	TypeHistory: func(data []byte, order binary.ByteOrder) (Record, error) {
		return &History{blob{data, order}}, nil
	},
	TypeWave: decodeWave,
	TypeRecreation: func(data []byte, order binary.ByteOrder) (Record, error) {
		return &Recreation{blob{data, order}}, nil
	},
	TypeProcedure: func(data []byte, order binary.ByteOrder) (Record, error) {
		return &Procedure{blob{data, order}}, nil
	},
	TypeGetHistory: func(data []byte, order binary.ByteOrder) (Record, error) {
		return &GetHistory{blob{data, order}}, nil
	},
	TypePackedFile: func(data []byte, order binary.ByteOrder) (Record, error) {
		return &PackedFile{blob{data, order}}, nil
	},
	TypeFolderStart: func(data []byte, order binary.ByteOrder) (Record, error) {
		return &folderStart{name: bin.CutNull(data), order: order}, nil
	},
	TypeFolderEnd: func(data []byte, order binary.ByteOrder) (Record, error) {
		return &folderEnd{order: order}, nil
	},
}

// Load reads the named packed experiment file fully into memory and decodes
// it, returning the root folder.
func Load(path string, opts ...Option) (*Folder, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading experiment file: %w", err)
	}
	root, err := LoadBytes(data, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return root, nil
}

// LoadBytes decodes a packed experiment archive held in memory and returns
// the root folder. The archive is a flat sequence of records; folder
// start/end markers rebuild the hierarchy and must balance exactly.
//
// Records whose type code has no decoder are skipped unless
// WithUnknownRecords is given. Any decode error aborts the whole load; no
// partial tree is ever returned.
func LoadBytes(data []byte, opts ...Option) (*Folder, error) {
	var cfg loadOptions
	for _, opt := range opts {
		opt(&cfg)
	}

	log := Logger()
	stack := []*Folder{newFolder([]string{"root"}, binary.LittleEndian)}
	pos := 0

	for pos < len(data) {
		if pos+recordHeaderSize > len(data) {
			return nil, fmt.Errorf("%w: %d bytes left at offset %d",
				ErrTruncatedHeader, len(data)-pos, pos)
		}

		// Bit 7 of the first header byte flags a record to skip outright.
		// The byte order test below is the format's own self-description: a
		// record is little-endian if any of bits 0-2 or 4-6 of that byte are
		// set, big-endian otherwise. The mask is historical and deliberately
		// not a single flag bit.
		b0 := data[pos]
		skip := b0&0x80 != 0
		var order binary.ByteOrder = binary.BigEndian
		if b0&0x77 != 0 {
			order = binary.LittleEndian
		}

		typ := RecordType(int16(order.Uint16(data[pos : pos+2])))
		length := int(int32(order.Uint32(data[pos+4 : pos+8])))
		pos += recordHeaderSize

		if length < 0 || pos+length > len(data) {
			return nil, fmt.Errorf("%w: record type %d declares %d bytes at offset %d",
				ErrTruncatedPayload, typ, length, pos)
		}
		payload := data[pos : pos+length]
		pos += length

		if skip {
			log.Debug("skipping flagged record",
				zap.Int16("type", int16(typ)), zap.Int("length", length))
			continue
		}

		decode, ok := decoders[typ]
		if !ok {
			if !cfg.keepUnknown {
				log.Debug("skipping unknown record type",
					zap.Int16("type", int16(typ)), zap.Int("length", length))
				continue
			}
			stack[len(stack)-1].append(&Unknown{Type: typ, blob: blob{payload, order}})
			continue
		}

		rec, err := decode(payload, order)
		if err != nil {
			return nil, err
		}

		switch r := rec.(type) {
		case *folderStart:
			top := stack[len(stack)-1]
			path := make([]string, len(top.Path)+1)
			copy(path, top.Path)
			path[len(top.Path)] = string(r.name)
			child := newFolder(path, order)
			top.append(child)
			stack = append(stack, child)
		case *folderEnd:
			if len(stack) == 1 {
				return nil, fmt.Errorf("%w: folder end with no open folder at offset %d",
					ErrUnbalancedFolders, pos)
			}
			stack = stack[:len(stack)-1]
		default:
			stack[len(stack)-1].append(rec)
		}
	}

	if len(stack) != 1 {
		return nil, fmt.Errorf("%w: %d folders left open at end of archive",
			ErrUnbalancedFolders, len(stack)-1)
	}
	return stack[0], nil
}
