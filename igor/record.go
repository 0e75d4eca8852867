package igor

import (
	"encoding/binary"
	"fmt"
	"strings"
)

// RecordType is the numeric type code from a record header.
type RecordType int16

// Record type codes from PTN003.
const (
	TypeVariables   RecordType = 1
	TypeHistory     RecordType = 2
	TypeWave        RecordType = 3
	TypeRecreation  RecordType = 4
	TypeProcedure   RecordType = 5
	TypeGetHistory  RecordType = 7
	TypePackedFile  RecordType = 8
	TypeFolderStart RecordType = 9
	TypeFolderEnd   RecordType = 10
)

// Record is implemented by every item a decoded archive can contain.
type Record interface {
	// ByteOrder returns the byte order the record was stored in.
	ByteOrder() binary.ByteOrder

	// Format renders a one-line (or, for folders, recursive) summary of the
	// record, indented by the given number of spaces.
	Format(indent int) string
}

// namer is implemented by records that expose a human-readable name.
// Only named records participate in a folder's name index.
type namer interface {
	Name() string
}

func pad(indent int) string {
	return strings.Repeat(" ", indent)
}

// blob holds an opaque byte payload. The text record kinds below differ only
// in what the bytes mean to Igor, not in how they are decoded.
type blob struct {
	Data  []byte
	order binary.ByteOrder
}

func (b blob) ByteOrder() binary.ByteOrder { return b.order }

// History contains the experiment's history as plain text.
type History struct{ blob }

func (h *History) Format(indent int) string { return pad(indent) + "<History>" }

// Recreation contains the experiment's recreation procedures as plain text.
type Recreation struct{ blob }

func (r *Recreation) Format(indent int) string { return pad(indent) + "<Recreation>" }

// Procedure contains the main procedure window text.
type Procedure struct{ blob }

func (p *Procedure) Format(indent int) string { return pad(indent) + "<Procedure>" }

// GetHistory marks that the recreation procedures have run and the history
// should be restored from the previously saved History record. It is a
// message to the reader rather than data in its own right.
type GetHistory struct{ blob }

func (g *GetHistory) Format(indent int) string { return pad(indent) + "<GetHistory>" }

// PackedFile contains a procedure file or notebook in packed form.
type PackedFile struct{ blob }

func (p *PackedFile) Format(indent int) string { return pad(indent) + "<PackedFile>" }

// Unknown preserves a record whose type code has no registered decoder.
// It is only produced when loading with WithUnknownRecords.
type Unknown struct {
	Type RecordType
	blob
}

func (u *Unknown) Format(indent int) string {
	return fmt.Sprintf("%s<Unknown type %d>", pad(indent), u.Type)
}

// folderStart and folderEnd are structural markers consumed by the tree
// builder; they never appear in the final tree.
type folderStart struct {
	name  []byte
	order binary.ByteOrder
}

func (f *folderStart) ByteOrder() binary.ByteOrder { return f.order }
func (f *folderStart) Format(indent int) string    { return pad(indent) + "<FolderStart>" }

type folderEnd struct {
	order binary.ByteOrder
}

func (f *folderEnd) ByteOrder() binary.ByteOrder { return f.order }
func (f *folderEnd) Format(indent int) string    { return pad(indent) + "<FolderEnd>" }
