package nbt

import (
	"io"
	"math"

	"github.com/scigolib/nbt/internal/utils"
)

// Writer emits a conforming NBT byte stream from in-memory trees or XML
// elements. A Writer owns its underlying sink exclusively for its lifetime
// and is not safe for concurrent use.
type Writer struct {
	bw     *byteWriter
	closer io.Closer
}

// Create opens a Writer over dst. When compressed is true, writes are
// wrapped in a GZip compressor (klauspost/compress gzip, see gzip.go).
func Create(dst io.Writer, compressed bool) (*Writer, error) {
	if compressed {
		gw := newGzipWriter(dst)
		return &Writer{bw: newByteWriter(gw), closer: gw}, nil
	}
	return &Writer{bw: newByteWriter(dst)}, nil
}

// Close flushes and releases any wrapping (e.g. GZip) resources. Idempotent.
func (w *Writer) Close() error {
	if w.closer == nil {
		return nil
	}
	c := w.closer
	w.closer = nil
	if err := c.Close(); err != nil {
		return utils.WrapError(utils.KindIO, "closing writer", err)
	}
	return nil
}

// WriteTree writes root as a named top-level tag: kind byte, name, payload.
func (w *Writer) WriteTree(root *Node, name string) error {
	if root == nil {
		return utils.NewError(utils.KindFormatError, "nil root node")
	}
	if root.Kind == End {
		return utils.NewError(utils.KindFormatError, "cannot write End as a value")
	}
	if err := w.bw.writeU8(byte(root.Kind)); err != nil {
		return err
	}
	if err := writeName(w.bw, name); err != nil {
		return err
	}
	return writePayload(w.bw, root)
}

// WriteTreeNoName writes root's kind byte and payload without any name
// field, the write-side counterpart of Reader.ReadTree(hasName=false) for
// embedded NBT in network frames that carry no root name.
func (w *Writer) WriteTreeNoName(root *Node) error {
	if root == nil {
		return utils.NewError(utils.KindFormatError, "nil root node")
	}
	if root.Kind == End {
		return utils.NewError(utils.KindFormatError, "cannot write End as a value")
	}
	if err := w.bw.writeU8(byte(root.Kind)); err != nil {
		return err
	}
	return writePayload(w.bw, root)
}

// writeName writes a length-prefixed Modified UTF-8 name, refusing names
// whose encoded length exceeds the 16-bit length prefix.
func writeName(bw *byteWriter, name string) error {
	enc := EncodeModifiedUTF8(name)
	if len(enc) > math.MaxUint16 {
		return utils.NewError(utils.KindValueOutOfRange, "name encodes to %d bytes, exceeds 65535", len(enc))
	}
	if err := bw.writeU16(uint16(len(enc))); err != nil {
		return err
	}
	if len(enc) == 0 {
		return nil
	}
	return bw.writeBytes(enc)
}

// writeListElement writes a bare payload with no kind byte and no name, the
// shape List children take on the wire.
func writeListElement(bw *byteWriter, n *Node) error {
	return writePayload(bw, n)
}

// writeNamedChild writes a Compound child: kind byte, name, payload.
func writeNamedChild(bw *byteWriter, n *Node) error {
	if n.Kind == End {
		return utils.NewError(utils.KindFormatError, "cannot write End as a value")
	}
	if err := bw.writeU8(byte(n.Kind)); err != nil {
		return err
	}
	if err := writeName(bw, n.Name); err != nil {
		return err
	}
	return writePayload(bw, n)
}

// writePayload emits the bytes for n's value, dispatching on n.Kind.
func writePayload(bw *byteWriter, n *Node) error {
	switch n.Kind {
	case Int8:
		return bw.writeI8(n.i8)
	case Int16:
		return bw.writeI16(n.i16)
	case Int32:
		return bw.writeI32(n.i32)
	case Int64:
		return bw.writeI64(n.i64)
	case Float32:
		return bw.writeF32(n.f32)
	case Float64:
		return bw.writeF64(n.f64)

	case String:
		enc := EncodeModifiedUTF8(n.str)
		if len(enc) > math.MaxUint16 {
			return utils.NewError(utils.KindValueOutOfRange, "string encodes to %d bytes, exceeds 65535", len(enc))
		}
		if err := bw.writeU16(uint16(len(enc))); err != nil {
			return err
		}
		if len(enc) == 0 {
			return nil
		}
		return bw.writeBytes(enc)

	case Int8Array:
		if len(n.i8arr) > math.MaxInt32 {
			return utils.NewError(utils.KindValueOutOfRange, "Int8Array length %d exceeds int32 range", len(n.i8arr))
		}
		if err := bw.writeI32(int32(len(n.i8arr))); err != nil {
			return err
		}
		buf := make([]byte, len(n.i8arr))
		for i, v := range n.i8arr {
			buf[i] = byte(v)
		}
		return bw.writeBytes(buf)

	case Int32Array:
		if len(n.i32arr) > math.MaxInt32 {
			return utils.NewError(utils.KindValueOutOfRange, "Int32Array length %d exceeds int32 range", len(n.i32arr))
		}
		if err := bw.writeI32(int32(len(n.i32arr))); err != nil {
			return err
		}
		for _, v := range n.i32arr {
			if err := bw.writeI32(v); err != nil {
				return err
			}
		}
		return nil

	case Int64Array:
		if len(n.i64arr) > math.MaxInt32 {
			return utils.NewError(utils.KindValueOutOfRange, "Int64Array length %d exceeds int32 range", len(n.i64arr))
		}
		if err := bw.writeI32(int32(len(n.i64arr))); err != nil {
			return err
		}
		for _, v := range n.i64arr {
			if err := bw.writeI64(v); err != nil {
				return err
			}
		}
		return nil

	case List:
		return writeListPayload(bw, n)

	case Compound:
		seen := make(map[string]bool, len(n.children))
		for _, c := range n.children {
			if seen[c.Name] {
				return utils.NewError(utils.KindDuplicateName, "%s", c.Name)
			}
			seen[c.Name] = true
			if err := writeNamedChild(bw, c); err != nil {
				return err
			}
		}
		return bw.writeU8(byte(End))

	default:
		return utils.NewError(utils.KindInvalidTagKind, "byte 0x%02x", byte(n.Kind))
	}
}

// writeListPayload writes a List's content-kind byte, length, and elements.
// An empty list is always written with content-kind End regardless of the
// node's declared ListKind, matching the most widely deployed reference
// behavior for this format.
func writeListPayload(bw *byteWriter, n *Node) error {
	if len(n.children) > math.MaxInt32 {
		return utils.NewError(utils.KindValueOutOfRange, "List length %d exceeds int32 range", len(n.children))
	}

	contentKind := n.ListKind
	if len(n.children) == 0 {
		contentKind = End
	}
	if err := bw.writeU8(byte(contentKind)); err != nil {
		return err
	}
	if err := bw.writeI32(int32(len(n.children))); err != nil {
		return err
	}
	for _, c := range n.children {
		if c.Kind != n.ListKind {
			return utils.NewError(utils.KindListContentMismatch,
				"element kind %s disagrees with declared content kind %s", c.Kind, n.ListKind)
		}
		if err := writeListElement(bw, c); err != nil {
			return err
		}
	}
	return nil
}
