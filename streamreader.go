package nbt

import (
	"errors"
	"io"

	"github.com/scigolib/nbt/internal/utils"
)

// ErrStreamDone is returned by FilteredReader.Next once iteration is
// exhausted, mirroring io.EOF's role for a pull-style iterator.
var ErrStreamDone = errors.New("nbt: no more nodes")

// streamFrame is one level of the filtered reader's explicit parent stack:
// a container whose metadata has been read, together with the cursor state
// needed to resume fetching its next child.
type streamFrame struct {
	header *Node // Kind/Name/ListKind known; no payload or children yet

	listLen int32           // valid when header.Kind == List
	listIdx int32           // next List child index to fetch
	seen    map[string]bool // Compound dedup tracking; nil otherwise
}

// FilteredReader lazily yields nodes matching a NodeFilter, holding no more
// memory than the active ancestor stack plus the node currently being
// emitted. It reifies recursive descent as an explicit stack of frames plus
// a single cursor, rather than cooperative recursion, so consumers can skip
// arbitrarily large subtrees without ever materializing them.
type FilteredReader struct {
	br      *byteReader
	filter  NodeFilter
	closer  io.Closer
	stack   []*streamFrame
	cur     *streamFrame
	pending FilterResult
	done    bool
}

func newFilteredReader(br *byteReader, closer io.Closer, filter NodeFilter, hasName bool) (*FilteredReader, error) {
	kind, err := readTagKindByte(br)
	if err != nil {
		return nil, err
	}
	if kind == End {
		return nil, utils.NewError(utils.KindFormatError, "root tag cannot be End")
	}

	var name string
	if hasName {
		name, err = readName(br)
		if err != nil {
			return nil, err
		}
	}

	header := &Node{Kind: kind, Name: name}
	var listLen int32
	if kind == List {
		lk, ll, err := readListMetadata(br)
		if err != nil {
			return nil, err
		}
		header.ListKind = lk
		listLen = ll
	}

	cur := &streamFrame{header: header, listLen: listLen}
	if kind == Compound {
		cur.seen = make(map[string]bool)
	}

	fr := &FilteredReader{br: br, closer: closer, filter: filter, cur: cur}
	fr.pending = filter(nil, header)
	return fr, nil
}

// Next advances the state machine until a node is Accepted or the stream is
// exhausted, returning ErrStreamDone in the latter case. After an error
// other than ErrStreamDone, the reader is left in an unspecified state and
// the caller must Close it.
func (fr *FilteredReader) Next() (*Node, error) {
	for {
		if fr.done {
			return nil, ErrStreamDone
		}

		switch fr.pending {
		case Accept:
			node, err := readPayload(fr.br, fr.cur.header.Kind, fr.cur.header.ListKind, fr.cur.listLen)
			if err != nil {
				fr.done = true
				return nil, err
			}
			node.Name = fr.cur.header.Name
			fr.popToParent()
			return node, nil

		case TestChildren:
			if !fr.cur.header.Kind.IsContainer() {
				if err := skipPayload(fr.br, fr.cur.header.Kind, fr.cur.header.ListKind, fr.cur.listLen); err != nil {
					fr.done = true
					return nil, err
				}
				fr.popToParent()
				continue
			}

			child, ok, err := fr.tryNextChild()
			if err != nil {
				fr.done = true
				return nil, err
			}
			if !ok {
				fr.popToParent()
				continue
			}
			fr.stack = append(fr.stack, fr.cur)
			fr.cur = child
			fr.pending = fr.filter(fr.parentNodes(), child.header)

		case Ignore:
			if err := skipPayload(fr.br, fr.cur.header.Kind, fr.cur.header.ListKind, fr.cur.listLen); err != nil {
				fr.done = true
				return nil, err
			}
			fr.popToParent()
		}
	}
}

// popToParent pops the ancestor stack, making the parent "current" again so
// it resumes fetching its own next child; an empty stack ends iteration.
func (fr *FilteredReader) popToParent() {
	if len(fr.stack) == 0 {
		fr.done = true
		return
	}
	fr.cur = fr.stack[len(fr.stack)-1]
	fr.stack = fr.stack[:len(fr.stack)-1]
	fr.pending = TestChildren
}

// parentNodes returns the read-only ancestor chain root-to-immediate-parent.
func (fr *FilteredReader) parentNodes() []*Node {
	if len(fr.stack) == 0 {
		return nil
	}
	out := make([]*Node, len(fr.stack))
	for i, f := range fr.stack {
		out[i] = f.header
	}
	return out
}

// tryNextChild produces cur's next child with its metadata already read, or
// reports exhaustion. For a List this is governed purely by the element
// count read in metadata; for a Compound, by the next kind byte being End.
func (fr *FilteredReader) tryNextChild() (*streamFrame, bool, error) {
	cur := fr.cur

	switch cur.header.Kind {
	case List:
		if cur.listIdx >= cur.listLen {
			return nil, false, nil
		}
		kind := cur.header.ListKind
		childHeader := &Node{Kind: kind}
		var listLen int32
		if kind == List {
			lk, ll, err := readListMetadata(fr.br)
			if err != nil {
				return nil, false, err
			}
			childHeader.ListKind = lk
			listLen = ll
		}
		cur.listIdx++

		child := &streamFrame{header: childHeader, listLen: listLen}
		if kind == Compound {
			child.seen = make(map[string]bool)
		}
		return child, true, nil

	case Compound:
		kind, err := readTagKindByte(fr.br)
		if err != nil {
			return nil, false, err
		}
		if kind == End {
			return nil, false, nil
		}
		name, err := readName(fr.br)
		if err != nil {
			return nil, false, err
		}
		if cur.seen[name] {
			return nil, false, utils.NewError(utils.KindDuplicateName, "%s", name)
		}
		cur.seen[name] = true

		childHeader := &Node{Kind: kind, Name: name}
		var listLen int32
		if kind == List {
			lk, ll, err := readListMetadata(fr.br)
			if err != nil {
				return nil, false, err
			}
			childHeader.ListKind = lk
			listLen = ll
		}

		child := &streamFrame{header: childHeader, listLen: listLen}
		if kind == Compound {
			child.seen = make(map[string]bool)
		}
		return child, true, nil

	default:
		return nil, false, nil
	}
}

// Close releases the underlying stream (and any GZip wrapper). Idempotent.
func (fr *FilteredReader) Close() error {
	if fr.closer == nil {
		return nil
	}
	c := fr.closer
	fr.closer = nil
	if err := c.Close(); err != nil {
		return utils.WrapError(utils.KindIO, "closing filtered reader", err)
	}
	return nil
}
