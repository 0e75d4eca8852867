package igor

import "errors"

// WalkFunc is called for each record during traversal.
// path holds the owning folder's path plus the record's name; records
// without a name get the folder path unchanged.
// Return nil to continue walking, or an error to stop.
type WalkFunc func(path []string, rec Record) error

// Walk traverses the tree rooted at f in decode order, depth first.
// The callback is called for every record including the starting folder.
//
// Example:
//
//	igor.Walk(root, func(path []string, rec igor.Record) error {
//	    if w, ok := rec.(*igor.Wave); ok {
//	        fmt.Println(strings.Join(path, "/"), w.Dims)
//	    }
//	    return nil
//	})
func Walk(f *Folder, fn WalkFunc) error {
	if err := fn(f.Path, f); err != nil {
		if IsStopWalk(err) {
			return nil
		}
		return err
	}
	if err := walkChildren(f, fn); err != nil && !IsStopWalk(err) {
		return err
	}
	return nil
}

func walkChildren(f *Folder, fn WalkFunc) error {
	for _, rec := range f.Children {
		if sub, ok := rec.(*Folder); ok {
			if err := fn(sub.Path, sub); err != nil {
				return err
			}
			if err := walkChildren(sub, fn); err != nil {
				return err
			}
			continue
		}

		path := f.Path
		if n, ok := rec.(namer); ok {
			path = append(append([]string{}, f.Path...), n.Name())
		}
		if err := fn(path, rec); err != nil {
			return err
		}
	}
	return nil
}

// ErrStopWalk can be returned from a WalkFunc to stop walking without an
// error.
var ErrStopWalk = errors.New("walk stopped")

// IsStopWalk reports whether the error stops the walk.
func IsStopWalk(err error) bool {
	return errors.Is(err, ErrStopWalk)
}
