package nbt

import (
	"encoding/xml"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestToXMLFromXMLPrimitiveRoundTrip(t *testing.T) {
	n := Int32Node("x", 42)
	el := ToXML(n, true)
	require.Equal(t, "TInt32", el.LocalName)
	name, ok := el.Attr("Name")
	require.True(t, ok)
	require.Equal(t, "x", name)
	require.Equal(t, "42", el.Text)

	back, err := FromXML(el)
	require.NoError(t, err)
	require.Equal(t, n.Kind, back.Kind)
	require.Equal(t, n.Name, back.Name)
	v, _ := back.Int32()
	require.Equal(t, int32(42), v)
}

func TestToXMLFromXMLFloatRoundTrip(t *testing.T) {
	n := Float64Node("f", 3.14159265358979)
	el := ToXML(n, true)
	back, err := FromXML(el)
	require.NoError(t, err)
	v, _ := back.Float64()
	require.InDelta(t, 3.14159265358979, v, 1e-12)
}

func TestToXMLFromXMLStringRoundTrip(t *testing.T) {
	n := StringNode("s", "hello\x00world")
	el := ToXML(n, true)
	require.Equal(t, "hello\x00world", el.Text)

	back, err := FromXML(el)
	require.NoError(t, err)
	s, _ := back.Str()
	require.Equal(t, "hello\x00world", s)
}

func TestToXMLFromXMLArrayRoundTrip(t *testing.T) {
	n := Int32ArrayNode("arr", []int32{1, 2, 3})
	el := ToXML(n, true)
	require.Len(t, el.Children, 3)
	require.Equal(t, "TInt32", el.Children[0].LocalName)

	back, err := FromXML(el)
	require.NoError(t, err)
	arr, _ := back.Int32Slice()
	require.Equal(t, []int32{1, 2, 3}, arr)
}

func TestToXMLFromXMLListRoundTrip(t *testing.T) {
	n := ListNode("items", Int32, Int32Node("", 1), Int32Node("", 2))
	el := ToXML(n, true)
	ct, ok := el.Attr("ContentType")
	require.True(t, ok)
	require.Equal(t, "TInt32", ct)
	for _, c := range el.Children {
		_, hasName := c.Attr("Name")
		require.False(t, hasName)
	}

	back, err := FromXML(el)
	require.NoError(t, err)
	require.Equal(t, Int32, back.ListKind)
	children, _ := back.Children()
	require.Len(t, children, 2)
}

func TestToXMLFromXMLCompoundRoundTrip(t *testing.T) {
	root := CompoundNode("hello", StringNode("name", "Banana"), Int32Node("x", 42))
	el := ToXML(root, true)
	require.Equal(t, "TCompound", el.LocalName)
	for _, c := range el.Children {
		_, hasName := c.Attr("Name")
		require.True(t, hasName)
	}

	back, err := FromXML(el)
	require.NoError(t, err)
	require.Equal(t, "hello", back.Name)
	child, ok := back.Get("name")
	require.True(t, ok)
	v, _ := child.Str()
	require.Equal(t, "Banana", v)
}

func TestFromXMLRejectsUnrecognizedElement(t *testing.T) {
	el := &Element{LocalName: "TBogus"}
	_, err := FromXML(el)
	require.Error(t, err)
}

func TestFromXMLRejectsListWithoutContentType(t *testing.T) {
	el := &Element{LocalName: "TList"}
	_, err := FromXML(el)
	require.Error(t, err)
}

func TestFromXMLRejectsListContentMismatch(t *testing.T) {
	el := &Element{LocalName: "TList"}
	el.setAttr("ContentType", "TInt32")
	el.Children = []*Element{{LocalName: "TString", Text: "oops"}}
	_, err := FromXML(el)
	require.Error(t, err)
}

func TestFromXMLRejectsCompoundChildMissingName(t *testing.T) {
	el := &Element{LocalName: "TCompound"}
	el.Children = []*Element{{LocalName: "TInt8", Text: "1"}}
	_, err := FromXML(el)
	require.Error(t, err)
}

func TestFromXMLRejectsDuplicateCompoundChildNames(t *testing.T) {
	child1 := &Element{LocalName: "TInt8", Text: "1"}
	child1.setAttr("Name", "x")
	child2 := &Element{LocalName: "TInt8", Text: "2"}
	child2.setAttr("Name", "x")
	el := &Element{LocalName: "TCompound", Children: []*Element{child1, child2}}

	_, err := FromXML(el)
	require.Error(t, err)
}

func TestElementMarshalUnmarshalXML(t *testing.T) {
	root := CompoundNode("hello", StringNode("name", "Banana"))
	el := ToXML(root, true)

	data, err := xml.Marshal(el)
	require.NoError(t, err)

	var parsed Element
	require.NoError(t, xml.Unmarshal(data, &parsed))

	back, err := FromXML(&parsed)
	require.NoError(t, err)
	require.Equal(t, "hello", back.Name)
	child, ok := back.Get("name")
	require.True(t, ok)
	v, _ := child.Str()
	require.Equal(t, "Banana", v)
}
