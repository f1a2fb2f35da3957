package nbt

import (
	"io"

	"github.com/scigolib/nbt/internal/utils"
)

// Reader decodes NBT data from a byte stream into in-memory trees, XML
// elements, or a filtered lazy sequence of nodes. A Reader owns its
// underlying stream exclusively for its lifetime and is not safe for
// concurrent use from multiple goroutines.
type Reader struct {
	br     *byteReader
	closer io.Closer
}

// Open opens a Reader over src. AutoDetect requires src to additionally
// implement io.Seeker, since detecting GZip framing peeks two bytes and
// rewinds.
func Open(src io.Reader, compressed Compression) (*Reader, error) {
	switch compressed {
	case Uncompressed:
		return &Reader{br: newByteReader(src)}, nil

	case Compressed:
		gr, err := newGzipReader(src)
		if err != nil {
			return nil, err
		}
		return &Reader{br: newByteReader(gr), closer: gr}, nil

	case AutoDetect:
		seeker, ok := src.(io.ReadSeeker)
		if !ok {
			return nil, utils.NewError(utils.KindIO, "AutoDetect compression requires a seekable source")
		}
		isGzip, err := detectGzip(seeker)
		if err != nil {
			return nil, err
		}
		if !isGzip {
			return &Reader{br: newByteReader(seeker)}, nil
		}
		gr, err := newGzipReader(seeker)
		if err != nil {
			return nil, err
		}
		return &Reader{br: newByteReader(gr), closer: gr}, nil

	default:
		return nil, utils.NewError(utils.KindFormatError, "unknown compression mode %d", int(compressed))
	}
}

// Close releases the underlying stream (and any GZip wrapper). Idempotent.
func (r *Reader) Close() error {
	if r.closer == nil {
		return nil
	}
	c := r.closer
	r.closer = nil
	if err := c.Close(); err != nil {
		return utils.WrapError(utils.KindIO, "closing reader", err)
	}
	return nil
}

// ReadTree fully materializes the root tag and its entire subtree. When
// hasName is false, no name field is read for the root: embedded NBT in
// network frames often carries no root name.
func (r *Reader) ReadTree(hasName bool) (*Node, error) {
	kind, err := readTagKindByte(r.br)
	if err != nil {
		return nil, err
	}
	if kind == End {
		return nil, utils.NewError(utils.KindFormatError, "root tag cannot be End")
	}

	var name string
	if hasName {
		name, err = readName(r.br)
		if err != nil {
			return nil, err
		}
	}

	node, err := readFullNode(r.br, kind)
	if err != nil {
		return nil, err
	}
	node.Name = name
	return node, nil
}

// ReadFiltered returns a lazy, pull-style iterator that yields only the
// nodes filter accepts, descending into or skipping containers as it goes.
// Resource ownership transfers to the returned FilteredReader: call its
// Close instead of the Reader's once this returns successfully.
func (r *Reader) ReadFiltered(filter NodeFilter, hasName bool) (*FilteredReader, error) {
	fr, err := newFilteredReader(r.br, r.closer, filter, hasName)
	if err != nil {
		return nil, err
	}
	r.closer = nil
	return fr, nil
}
