// Package nbt implements the Named Binary Tag (NBT) format: the
// self-describing, tagged binary tree used by Minecraft save data. It reads
// and writes the classic big-endian NBT wire format, optionally GZip-wrapped,
// to and from an in-memory tree or an XML materialization, and exposes a
// filtered streaming reader that can skip or descend into subtrees without
// fully materializing them.
package nbt

import "fmt"

// TagKind identifies the wire type of an NBT tag. It is a closed enumeration;
// values outside End..Int64Array are not valid NBT.
type TagKind byte

// The thirteen wire tag kinds, exactly as laid out in the classic NBT
// specification.
const (
	End        TagKind = 0  // no payload; terminates a Compound
	Int8       TagKind = 1  // 1 byte, signed
	Int16      TagKind = 2  // 2 bytes, big-endian signed
	Int32      TagKind = 3  // 4 bytes, big-endian signed
	Int64      TagKind = 4  // 8 bytes, big-endian signed
	Float32    TagKind = 5  // 4 bytes, big-endian IEEE 754
	Float64    TagKind = 6  // 8 bytes, big-endian IEEE 754
	Int8Array  TagKind = 7  // int32 length, then that many signed bytes
	String     TagKind = 8  // uint16 length, then that many Modified UTF-8 bytes
	List       TagKind = 9  // content kind byte, int32 length, then bare payloads
	Compound   TagKind = 10 // (kind, name, payload)... terminated by End
	Int32Array TagKind = 11 // int32 length, then that many big-endian int32
	Int64Array TagKind = 12 // int32 length, then that many big-endian int64
)

var tagNames = map[TagKind]string{
	End:        "End",
	Int8:       "Int8",
	Int16:      "Int16",
	Int32:      "Int32",
	Int64:      "Int64",
	Float32:    "Float32",
	Float64:    "Float64",
	Int8Array:  "Int8Array",
	String:     "String",
	List:       "List",
	Compound:   "Compound",
	Int32Array: "Int32Array",
	Int64Array: "Int64Array",
}

// String implements fmt.Stringer, rendering the kind's name and wire byte.
func (k TagKind) String() string {
	name, ok := tagNames[k]
	if !ok {
		name = "Unknown"
	}
	return fmt.Sprintf("%s (0x%02x)", name, byte(k))
}

// Valid reports whether k is one of the thirteen defined tag kinds.
func (k TagKind) Valid() bool {
	_, ok := tagNames[k]
	return ok
}

// IsContainer reports whether k carries children rather than a scalar/array value.
func (k TagKind) IsContainer() bool {
	return k == List || k == Compound
}

// elemSize returns the wire size in bytes of one element of a fixed-width
// kind, or of one element of an array kind's payload. It is 0 for kinds with
// no fixed per-element width (String, List, Compound, End).
func (k TagKind) elemSize() int {
	switch k {
	case Int8, Int8Array:
		return 1
	case Int16:
		return 2
	case Int32, Float32, Int32Array:
		return 4
	case Int64, Float64, Int64Array:
		return 8
	default:
		return 0
	}
}
