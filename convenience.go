package nbt

import (
	"os"

	"github.com/scigolib/nbt/internal/utils"
)

// OpenFile opens the named file and wraps it with Open: a thin path-to-
// stream convenience with no logic beyond os.Open.
func OpenFile(path string, compressed Compression) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, utils.WrapError(utils.KindIO, "opening "+path, err)
	}
	r, err := Open(f, compressed)
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	if r.closer == nil {
		r.closer = f
	} else {
		gzCloser := r.closer
		r.closer = multiCloser{gzCloser, f}
	}
	return r, nil
}

// CreateFile creates (or truncates) the named file and wraps it with Create.
func CreateFile(path string, compressed bool) (*Writer, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, utils.WrapError(utils.KindIO, "creating "+path, err)
	}
	w, err := Create(f, compressed)
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	if w.closer == nil {
		w.closer = f
	} else {
		gzCloser := w.closer
		w.closer = multiCloser{gzCloser, f}
	}
	return w, nil
}

// multiCloser closes each member in order, returning the first error, so a
// GZip wrapper and the underlying file both get released exactly once.
type multiCloser []interface{ Close() error }

func (m multiCloser) Close() error {
	var first error
	for _, c := range m {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
