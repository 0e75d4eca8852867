package igor

import (
	"encoding/binary"
	"fmt"
	"strings"
	"unicode"
)

// Folder is a named node in the experiment hierarchy holding an ordered
// sequence of child records, which may themselves be folders.
//
// Children keep their decode order and may share names; name lookup always
// resolves to the first match. A folder owns its children outright: the tree
// is built once by Load/LoadBytes and is read-only thereafter.
type Folder struct {
	// Path holds the ancestor names plus this folder's own name, starting at
	// the synthetic root. A child folder's Path is always its parent's Path
	// plus the child's name.
	Path []string

	// Children holds the folder's records in decode order.
	Children []Record

	// named indexes children whose names are valid bare identifiers,
	// first writer wins. Maintained explicitly; never via reflection.
	named map[string]Record

	order binary.ByteOrder
}

func newFolder(path []string, order binary.ByteOrder) *Folder {
	return &Folder{
		Path:  path,
		named: make(map[string]Record),
		order: order,
	}
}

// Name returns the folder's own name (the last path component).
func (f *Folder) Name() string { return f.Path[len(f.Path)-1] }

// ByteOrder returns the byte order of the record that opened this folder.
func (f *Folder) ByteOrder() binary.ByteOrder { return f.order }

// NumChildren returns the number of direct children.
func (f *Folder) NumChildren() int { return len(f.Children) }

// Child returns the i'th child in decode order.
func (f *Folder) Child(i int) Record { return f.Children[i] }

// Get returns the first child folder or wave whose name equals key.
// Records stored under duplicate names stay reachable through Child.
func (f *Folder) Get(key string) (Record, error) {
	for _, r := range f.Children {
		switch r := r.(type) {
		case *Folder:
			if r.Name() == key {
				return r, nil
			}
		case *Wave:
			if r.Name() == key {
				return r, nil
			}
		}
	}
	return nil, fmt.Errorf("%w: %q in folder %q", ErrNotFound, key, f.Name())
}

// Named returns the child exposed under the given identifier, mirroring the
// first-writer-wins name index described in the package documentation.
func (f *Folder) Named(key string) (Record, bool) {
	r, ok := f.named[key]
	return r, ok
}

// append adds a record to the folder and exposes it in the name index when
// its name is a valid identifier not already taken.
func (f *Folder) append(r Record) {
	f.Children = append(f.Children, r)
	n, ok := r.(namer)
	if !ok {
		return
	}
	name := n.Name()
	if !validIdentifier(name) {
		return
	}
	if _, taken := f.named[name]; !taken {
		f.named[name] = r
	}
}

// Format renders the folder and its children as an indented tree.
func (f *Folder) Format(indent int) string {
	lines := make([]string, 0, len(f.Children)+1)
	lines = append(lines, pad(indent)+f.Name())
	for _, r := range f.Children {
		lines = append(lines, r.Format(indent+2))
	}
	return strings.Join(lines, "\n")
}

// String summarizes the folder by its path.
func (f *Folder) String() string {
	return "<igor.Folder " + strings.Join(f.Path, "/") + ">"
}

// validIdentifier reports whether s is a bare identifier: a letter or
// underscore followed by letters, digits, or underscores.
func validIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		if r == '_' || unicode.IsLetter(r) {
			continue
		}
		if i > 0 && unicode.IsDigit(r) {
			continue
		}
		return false
	}
	return true
}
