package nbt

import (
	"encoding/xml"
	"strconv"
	"strings"

	"github.com/scigolib/nbt/internal/utils"
)

// elementNames maps each tag kind to its XML local name
// ("element local-name = tag-kind identifier"). TEnd is only valid as the
// ContentType of an empty List; FromXML rejects it as an element.
var elementNames = map[TagKind]string{
	End:        "TEnd",
	Int8:       "TInt8",
	Int16:      "TInt16",
	Int32:      "TInt32",
	Int64:      "TInt64",
	Float32:    "TFloat32",
	Float64:    "TFloat64",
	Int8Array:  "TInt8Array",
	String:     "TString",
	List:       "TList",
	Compound:   "TCompound",
	Int32Array: "TInt32Array",
	Int64Array: "TInt64Array",
}

var elementKinds = func() map[string]TagKind {
	m := make(map[string]TagKind, len(elementNames))
	for k, n := range elementNames {
		m[n] = k
	}
	return m
}()

func elementName(kind TagKind) string {
	return elementNames[kind]
}

func parseElementKind(name string) (TagKind, bool) {
	k, ok := elementKinds[name]
	return k, ok
}

// elemAttr is one XML attribute, kept as an ordered pair rather than a map
// so attribute order on write is deterministic (Name before ContentType).
type elemAttr struct {
	Key, Value string
}

// Element is the XML materialization of a Node: its local name identifies
// the tag kind, its attributes carry Name/ContentType, and its text or
// children carry the payload. It implements xml.Marshaler and
// xml.Unmarshaler directly so the element name can vary per node — something
// struct-tag-driven (un)marshaling can't express.
type Element struct {
	LocalName string
	Attrs     []elemAttr
	Text      string
	Children  []*Element
}

// Attr returns the value of the named attribute and whether it was present.
func (e *Element) Attr(key string) (string, bool) {
	for _, a := range e.Attrs {
		if a.Key == key {
			return a.Value, true
		}
	}
	return "", false
}

func (e *Element) setAttr(key, value string) {
	e.Attrs = append(e.Attrs, elemAttr{Key: key, Value: value})
}

// MarshalXML implements xml.Marshaler.
func (e *Element) MarshalXML(enc *xml.Encoder, start xml.StartElement) error {
	start.Name = xml.Name{Local: e.LocalName}
	start.Attr = start.Attr[:0]
	for _, a := range e.Attrs {
		start.Attr = append(start.Attr, xml.Attr{Name: xml.Name{Local: a.Key}, Value: a.Value})
	}
	if err := enc.EncodeToken(start); err != nil {
		return err
	}
	if e.Text != "" {
		if err := enc.EncodeToken(xml.CharData(e.Text)); err != nil {
			return err
		}
	}
	for _, c := range e.Children {
		if err := enc.Encode(c); err != nil {
			return err
		}
	}
	return enc.EncodeToken(xml.EndElement{Name: start.Name})
}

// UnmarshalXML implements xml.Unmarshaler.
func (e *Element) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	e.LocalName = start.Name.Local
	for _, a := range start.Attr {
		e.setAttr(a.Name.Local, a.Value)
	}
	var text strings.Builder
	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			child := &Element{}
			if err := child.UnmarshalXML(d, t); err != nil {
				return err
			}
			e.Children = append(e.Children, child)
		case xml.CharData:
			text.Write(t)
		case xml.EndElement:
			e.Text = text.String()
			return nil
		}
	}
}

// ToXML converts n into its Element materialization. withName controls
// whether the Name attribute is emitted for n itself; Compound children are
// always recursed into with withName=true and List children with
// withName=false.
func ToXML(n *Node, withName bool) *Element {
	el := &Element{LocalName: elementName(n.Kind)}
	if withName {
		el.setAttr("Name", n.Name)
	}

	switch n.Kind {
	case Int8:
		el.Text = strconv.FormatInt(int64(n.i8), 10)
	case Int16:
		el.Text = strconv.FormatInt(int64(n.i16), 10)
	case Int32:
		el.Text = strconv.FormatInt(int64(n.i32), 10)
	case Int64:
		el.Text = strconv.FormatInt(n.i64, 10)
	case Float32:
		el.Text = strconv.FormatFloat(float64(n.f32), 'g', -1, 32)
	case Float64:
		el.Text = strconv.FormatFloat(n.f64, 'g', -1, 64)
	case String:
		el.Text = n.str

	case Int8Array:
		el.Children = make([]*Element, len(n.i8arr))
		for i, v := range n.i8arr {
			el.Children[i] = &Element{LocalName: "TInt8", Text: strconv.FormatInt(int64(v), 10)}
		}
	case Int32Array:
		el.Children = make([]*Element, len(n.i32arr))
		for i, v := range n.i32arr {
			el.Children[i] = &Element{LocalName: "TInt32", Text: strconv.FormatInt(int64(v), 10)}
		}
	case Int64Array:
		el.Children = make([]*Element, len(n.i64arr))
		for i, v := range n.i64arr {
			el.Children[i] = &Element{LocalName: "TInt64", Text: strconv.FormatInt(v, 10)}
		}

	case List:
		el.setAttr("ContentType", elementName(n.ListKind))
		el.Children = make([]*Element, len(n.children))
		for i, c := range n.children {
			el.Children[i] = ToXML(c, false)
		}

	case Compound:
		el.Children = make([]*Element, len(n.children))
		for i, c := range n.children {
			el.Children[i] = ToXML(c, true)
		}
	}

	return el
}

// FromXML parses el back into a Node, enforcing the writer-side rules: the
// element name must parse to a known kind, Compound children must carry a
// Name attribute and be pairwise distinct, and a List must carry
// ContentType with every child agreeing with it.
func FromXML(el *Element) (*Node, error) {
	kind, ok := parseElementKind(el.LocalName)
	if !ok {
		return nil, utils.NewError(utils.KindFormatError, "unrecognized element %q", el.LocalName)
	}
	name, _ := el.Attr("Name")

	switch kind {
	case Int8:
		v, err := strconv.ParseInt(el.Text, 10, 8)
		if err != nil {
			return nil, utils.WrapError(utils.KindFormatError, "parsing TInt8 text", err)
		}
		return &Node{Kind: Int8, Name: name, i8: int8(v)}, nil

	case Int16:
		v, err := strconv.ParseInt(el.Text, 10, 16)
		if err != nil {
			return nil, utils.WrapError(utils.KindFormatError, "parsing TInt16 text", err)
		}
		return &Node{Kind: Int16, Name: name, i16: int16(v)}, nil

	case Int32:
		v, err := strconv.ParseInt(el.Text, 10, 32)
		if err != nil {
			return nil, utils.WrapError(utils.KindFormatError, "parsing TInt32 text", err)
		}
		return &Node{Kind: Int32, Name: name, i32: int32(v)}, nil

	case Int64:
		v, err := strconv.ParseInt(el.Text, 10, 64)
		if err != nil {
			return nil, utils.WrapError(utils.KindFormatError, "parsing TInt64 text", err)
		}
		return &Node{Kind: Int64, Name: name, i64: v}, nil

	case Float32:
		v, err := strconv.ParseFloat(el.Text, 32)
		if err != nil {
			return nil, utils.WrapError(utils.KindFormatError, "parsing TFloat32 text", err)
		}
		return &Node{Kind: Float32, Name: name, f32: float32(v)}, nil

	case Float64:
		v, err := strconv.ParseFloat(el.Text, 64)
		if err != nil {
			return nil, utils.WrapError(utils.KindFormatError, "parsing TFloat64 text", err)
		}
		return &Node{Kind: Float64, Name: name, f64: v}, nil

	case String:
		return &Node{Kind: String, Name: name, str: el.Text}, nil

	case Int8Array:
		arr := make([]int8, len(el.Children))
		for i, c := range el.Children {
			if c.LocalName != "TInt8" {
				return nil, utils.NewError(utils.KindFormatError, "TInt8Array child %q, want TInt8", c.LocalName)
			}
			v, err := strconv.ParseInt(c.Text, 10, 8)
			if err != nil {
				return nil, utils.WrapError(utils.KindFormatError, "parsing TInt8Array element", err)
			}
			arr[i] = int8(v)
		}
		return &Node{Kind: Int8Array, Name: name, i8arr: arr}, nil

	case Int32Array:
		arr := make([]int32, len(el.Children))
		for i, c := range el.Children {
			if c.LocalName != "TInt32" {
				return nil, utils.NewError(utils.KindFormatError, "TInt32Array child %q, want TInt32", c.LocalName)
			}
			v, err := strconv.ParseInt(c.Text, 10, 32)
			if err != nil {
				return nil, utils.WrapError(utils.KindFormatError, "parsing TInt32Array element", err)
			}
			arr[i] = int32(v)
		}
		return &Node{Kind: Int32Array, Name: name, i32arr: arr}, nil

	case Int64Array:
		arr := make([]int64, len(el.Children))
		for i, c := range el.Children {
			if c.LocalName != "TInt64" {
				return nil, utils.NewError(utils.KindFormatError, "TInt64Array child %q, want TInt64", c.LocalName)
			}
			v, err := strconv.ParseInt(c.Text, 10, 64)
			if err != nil {
				return nil, utils.WrapError(utils.KindFormatError, "parsing TInt64Array element", err)
			}
			arr[i] = v
		}
		return &Node{Kind: Int64Array, Name: name, i64arr: arr}, nil

	case List:
		ct, ok := el.Attr("ContentType")
		if !ok {
			return nil, utils.NewError(utils.KindFormatError, "TList missing ContentType attribute")
		}
		listKind, ok := parseElementKind(ct)
		if !ok {
			return nil, utils.NewError(utils.KindFormatError, "TList ContentType %q unrecognized", ct)
		}
		children := make([]*Node, len(el.Children))
		for i, c := range el.Children {
			child, err := FromXML(c)
			if err != nil {
				return nil, err
			}
			if child.Kind != listKind {
				return nil, utils.NewError(utils.KindListContentMismatch,
					"element kind %s disagrees with ContentType %s", child.Kind, listKind)
			}
			children[i] = child
		}
		return &Node{Kind: List, Name: name, ListKind: listKind, children: children}, nil

	case Compound:
		seen := make(map[string]bool, len(el.Children))
		children := make([]*Node, 0, len(el.Children))
		for _, c := range el.Children {
			childName, hasName := c.Attr("Name")
			if !hasName {
				return nil, utils.NewError(utils.KindFormatError, "compound child %q missing Name attribute", c.LocalName)
			}
			if seen[childName] {
				return nil, utils.NewError(utils.KindDuplicateName, "%s", childName)
			}
			seen[childName] = true
			child, err := FromXML(c)
			if err != nil {
				return nil, err
			}
			children = append(children, child)
		}
		return &Node{Kind: Compound, Name: name, children: children}, nil

	default:
		return nil, utils.NewError(utils.KindFormatError, "element %q materializes End as a value", el.LocalName)
	}
}

// ReadXML fully materializes the root tag as an Element tree, alongside its
// tag kind (the root Element's local name already encodes this, but callers
// often want it directly without parsing the name back out).
func (r *Reader) ReadXML(hasName bool) (*Element, TagKind, error) {
	node, err := r.ReadTree(hasName)
	if err != nil {
		return nil, 0, err
	}
	return ToXML(node, hasName), node.Kind, nil
}

// WriteXML converts root back to a Node and writes it as the top-level tag.
func (w *Writer) WriteXML(root *Element) error {
	node, err := FromXML(root)
	if err != nil {
		return err
	}
	return w.WriteTree(node, node.Name)
}
