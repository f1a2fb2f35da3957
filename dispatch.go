package nbt

import (
	"encoding/binary"

	"github.com/scigolib/nbt/internal/utils"
)

// readTagKindByte reads one wire byte and validates it against the closed
// set of tag kinds.
func readTagKindByte(br *byteReader) (TagKind, error) {
	b, err := br.readU8()
	if err != nil {
		return 0, err
	}
	k := TagKind(b)
	if !k.Valid() {
		return 0, utils.NewError(utils.KindInvalidTagKind, "byte 0x%02x", b)
	}
	return k, nil
}

// readName reads a length-prefixed Modified UTF-8 name.
func readName(br *byteReader) (string, error) {
	l, err := br.readU16()
	if err != nil {
		return "", err
	}
	if l == 0 {
		return "", nil
	}
	data, err := br.readExact(int(l))
	if err != nil {
		return "", err
	}
	return DecodeModifiedUTF8(data)
}

// readListMetadata reads a List payload's header: the content kind byte and
// the element count. An End content-kind with nonzero length is always a
// format error; a zero-length list may declare any content-kind, since
// writers disagree about which placeholder kind an empty list should use.
func readListMetadata(br *byteReader) (TagKind, int32, error) {
	kind, err := readTagKindByte(br)
	if err != nil {
		return 0, 0, err
	}
	length, err := br.readI32()
	if err != nil {
		return 0, 0, err
	}
	if length < 0 {
		return 0, 0, utils.NewError(utils.KindValueOutOfRange, "negative list length %d", length)
	}
	if kind == End && length > 0 {
		return 0, 0, utils.NewError(utils.KindListContentMismatch, "End content-kind with length %d", length)
	}
	return kind, length, nil
}

// readFullNode reads a node whose kind is already known (a List element, or
// a Compound child after its kind byte has been consumed): it reads List
// metadata when needed, then the payload.
func readFullNode(br *byteReader, kind TagKind) (*Node, error) {
	var listKind TagKind
	var listLen int32
	if kind == List {
		lk, ll, err := readListMetadata(br)
		if err != nil {
			return nil, err
		}
		listKind, listLen = lk, ll
	}
	return readPayload(br, kind, listKind, listLen)
}

// readPayload fully materializes the value for kind, given List metadata
// already read by the caller (ignored for non-List kinds).
func readPayload(br *byteReader, kind, listKind TagKind, listLen int32) (*Node, error) {
	switch kind {
	case Int8:
		v, err := br.readI8()
		return &Node{Kind: Int8, i8: v}, err

	case Int16:
		v, err := br.readI16()
		return &Node{Kind: Int16, i16: v}, err

	case Int32:
		v, err := br.readI32()
		return &Node{Kind: Int32, i32: v}, err

	case Int64:
		v, err := br.readI64()
		return &Node{Kind: Int64, i64: v}, err

	case Float32:
		v, err := br.readF32()
		return &Node{Kind: Float32, f32: v}, err

	case Float64:
		v, err := br.readF64()
		return &Node{Kind: Float64, f64: v}, err

	case String:
		l, err := br.readU16()
		if err != nil {
			return nil, err
		}
		data, err := br.readExact(int(l))
		if err != nil {
			return nil, err
		}
		s, err := DecodeModifiedUTF8(data)
		if err != nil {
			return nil, err
		}
		return &Node{Kind: String, str: s}, nil

	case Int8Array:
		n, err := br.readI32()
		if err != nil {
			return nil, err
		}
		size, err := utils.CheckPayloadSize(n, 1)
		if err != nil {
			return nil, utils.WrapError(utils.KindValueOutOfRange, "Int8Array length", err)
		}
		data, err := br.readExact(size)
		if err != nil {
			return nil, err
		}
		arr := make([]int8, n)
		for i, b := range data {
			arr[i] = int8(b)
		}
		return &Node{Kind: Int8Array, i8arr: arr}, nil

	case Int32Array:
		n, err := br.readI32()
		if err != nil {
			return nil, err
		}
		size, err := utils.CheckPayloadSize(n, 4)
		if err != nil {
			return nil, utils.WrapError(utils.KindValueOutOfRange, "Int32Array length", err)
		}
		data, err := br.readExact(size)
		if err != nil {
			return nil, err
		}
		arr := make([]int32, n)
		for i := range arr {
			arr[i] = int32(binary.BigEndian.Uint32(data[i*4:]))
		}
		return &Node{Kind: Int32Array, i32arr: arr}, nil

	case Int64Array:
		n, err := br.readI32()
		if err != nil {
			return nil, err
		}
		size, err := utils.CheckPayloadSize(n, 8)
		if err != nil {
			return nil, utils.WrapError(utils.KindValueOutOfRange, "Int64Array length", err)
		}
		data, err := br.readExact(size)
		if err != nil {
			return nil, err
		}
		arr := make([]int64, n)
		for i := range arr {
			arr[i] = int64(binary.BigEndian.Uint64(data[i*8:]))
		}
		return &Node{Kind: Int64Array, i64arr: arr}, nil

	case List:
		children := make([]*Node, 0, listLen)
		for i := int32(0); i < listLen; i++ {
			child, err := readFullNode(br, listKind)
			if err != nil {
				return nil, err
			}
			children = append(children, child)
		}
		return &Node{Kind: List, ListKind: listKind, children: children}, nil

	case Compound:
		children := make([]*Node, 0)
		seen := make(map[string]bool)
		for {
			childKind, err := readTagKindByte(br)
			if err != nil {
				return nil, err
			}
			if childKind == End {
				break
			}
			name, err := readName(br)
			if err != nil {
				return nil, err
			}
			if seen[name] {
				return nil, utils.NewError(utils.KindDuplicateName, "%s", name)
			}
			seen[name] = true

			child, err := readFullNode(br, childKind)
			if err != nil {
				return nil, err
			}
			child.Name = name
			children = append(children, child)
		}
		return &Node{Kind: Compound, children: children}, nil

	default:
		return nil, utils.NewError(utils.KindInvalidTagKind, "byte 0x%02x", byte(kind))
	}
}

// skipPayload advances past kind's payload without materializing a value.
func skipPayload(br *byteReader, kind, listKind TagKind, listLen int32) error {
	switch kind {
	case Int8:
		return br.skip(1)
	case Int16:
		return br.skip(2)
	case Int32, Float32:
		return br.skip(4)
	case Int64, Float64:
		return br.skip(8)

	case String:
		l, err := br.readU16()
		if err != nil {
			return err
		}
		return br.skip(int64(l))

	case Int8Array:
		n, err := br.readI32()
		if err != nil {
			return err
		}
		if n < 0 {
			return utils.NewError(utils.KindValueOutOfRange, "negative Int8Array length %d", n)
		}
		return br.skip(int64(n))

	case Int32Array:
		n, err := br.readI32()
		if err != nil {
			return err
		}
		size, err := utils.CheckPayloadSize(n, 4)
		if err != nil {
			return utils.WrapError(utils.KindValueOutOfRange, "Int32Array length", err)
		}
		return br.skip(int64(size))

	case Int64Array:
		n, err := br.readI32()
		if err != nil {
			return err
		}
		size, err := utils.CheckPayloadSize(n, 8)
		if err != nil {
			return utils.WrapError(utils.KindValueOutOfRange, "Int64Array length", err)
		}
		return br.skip(int64(size))

	case List:
		for i := int32(0); i < listLen; i++ {
			var childListKind TagKind
			var childListLen int32
			if listKind == List {
				lk, ll, err := readListMetadata(br)
				if err != nil {
					return err
				}
				childListKind, childListLen = lk, ll
			}
			if err := skipPayload(br, listKind, childListKind, childListLen); err != nil {
				return err
			}
		}
		return nil

	case Compound:
		seen := make(map[string]bool)
		for {
			childKind, err := readTagKindByte(br)
			if err != nil {
				return err
			}
			if childKind == End {
				return nil
			}
			name, err := readName(br)
			if err != nil {
				return err
			}
			if seen[name] {
				return utils.NewError(utils.KindDuplicateName, "%s", name)
			}
			seen[name] = true

			var lk TagKind
			var ll int32
			if childKind == List {
				lk, ll, err = readListMetadata(br)
				if err != nil {
					return err
				}
			}
			if err := skipPayload(br, childKind, lk, ll); err != nil {
				return err
			}
		}

	default:
		return utils.NewError(utils.KindInvalidTagKind, "byte 0x%02x", byte(kind))
	}
}
