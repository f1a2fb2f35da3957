package nbt

// Node is the polymorphic unit of an NBT tree. Every node carries its Kind;
// Name is meaningful only for a Compound's children and for a root node —
// list elements carry no name on the wire and Name is ignored for them.
//
// A Node's value lives in exactly one of the fields below, selected by Kind.
// Unlike a boxed interface{}, this keeps accessors allocation-free and
// exhaustive-switchable.
type Node struct {
	Kind TagKind
	Name string

	i8     int8
	i16    int16
	i32    int32
	i64    int64
	f32    float32
	f64    float64
	str    string
	i8arr  []int8
	i32arr []int32
	i64arr []int64

	// ListKind is the declared content-kind of a List node (meaningful only
	// when Kind == List).
	ListKind TagKind
	children []*Node
}

// Int8 returns the node's value if Kind == Int8.
func (n *Node) Int8() (int8, bool) {
	if n.Kind != Int8 {
		return 0, false
	}
	return n.i8, true
}

// Int16 returns the node's value if Kind == Int16.
func (n *Node) Int16() (int16, bool) {
	if n.Kind != Int16 {
		return 0, false
	}
	return n.i16, true
}

// Int32 returns the node's value if Kind == Int32.
func (n *Node) Int32() (int32, bool) {
	if n.Kind != Int32 {
		return 0, false
	}
	return n.i32, true
}

// Int64 returns the node's value if Kind == Int64.
func (n *Node) Int64() (int64, bool) {
	if n.Kind != Int64 {
		return 0, false
	}
	return n.i64, true
}

// Float32 returns the node's value if Kind == Float32.
func (n *Node) Float32() (float32, bool) {
	if n.Kind != Float32 {
		return 0, false
	}
	return n.f32, true
}

// Float64 returns the node's value if Kind == Float64.
func (n *Node) Float64() (float64, bool) {
	if n.Kind != Float64 {
		return 0, false
	}
	return n.f64, true
}

// Str returns the node's value if Kind == String.
func (n *Node) Str() (string, bool) {
	if n.Kind != String {
		return "", false
	}
	return n.str, true
}

// Int8Slice returns the node's backing array if Kind == Int8Array.
func (n *Node) Int8Slice() ([]int8, bool) {
	if n.Kind != Int8Array {
		return nil, false
	}
	return n.i8arr, true
}

// Int32Slice returns the node's backing array if Kind == Int32Array.
func (n *Node) Int32Slice() ([]int32, bool) {
	if n.Kind != Int32Array {
		return nil, false
	}
	return n.i32arr, true
}

// Int64Slice returns the node's backing array if Kind == Int64Array.
func (n *Node) Int64Slice() ([]int64, bool) {
	if n.Kind != Int64Array {
		return nil, false
	}
	return n.i64arr, true
}

// Children returns the ordered children of a List or Compound node.
func (n *Node) Children() ([]*Node, bool) {
	if !n.Kind.IsContainer() {
		return nil, false
	}
	return n.children, true
}

// Get returns the named child of a Compound node, or (nil, false) if this
// node isn't a Compound or has no child with that name.
func (n *Node) Get(name string) (*Node, bool) {
	if n.Kind != Compound {
		return nil, false
	}
	for _, c := range n.children {
		if c.Name == name {
			return c, true
		}
	}
	return nil, false
}

// Int8Node constructs a named Int8 leaf.
func Int8Node(name string, v int8) *Node { return &Node{Kind: Int8, Name: name, i8: v} }

// Int16Node constructs a named Int16 leaf.
func Int16Node(name string, v int16) *Node { return &Node{Kind: Int16, Name: name, i16: v} }

// Int32Node constructs a named Int32 leaf.
func Int32Node(name string, v int32) *Node { return &Node{Kind: Int32, Name: name, i32: v} }

// Int64Node constructs a named Int64 leaf.
func Int64Node(name string, v int64) *Node { return &Node{Kind: Int64, Name: name, i64: v} }

// Float32Node constructs a named Float32 leaf.
func Float32Node(name string, v float32) *Node { return &Node{Kind: Float32, Name: name, f32: v} }

// Float64Node constructs a named Float64 leaf.
func Float64Node(name string, v float64) *Node { return &Node{Kind: Float64, Name: name, f64: v} }

// StringNode constructs a named String leaf.
func StringNode(name, v string) *Node { return &Node{Kind: String, Name: name, str: v} }

// Int8ArrayNode constructs a named Int8Array leaf.
func Int8ArrayNode(name string, v []int8) *Node {
	return &Node{Kind: Int8Array, Name: name, i8arr: v}
}

// Int32ArrayNode constructs a named Int32Array leaf.
func Int32ArrayNode(name string, v []int32) *Node {
	return &Node{Kind: Int32Array, Name: name, i32arr: v}
}

// Int64ArrayNode constructs a named Int64Array leaf.
func Int64ArrayNode(name string, v []int64) *Node {
	return &Node{Kind: Int64Array, Name: name, i64arr: v}
}

// CompoundNode constructs a named Compound with the given children.
func CompoundNode(name string, children ...*Node) *Node {
	return &Node{Kind: Compound, Name: name, children: children}
}

// ListNode constructs a named List with the given content kind and children.
// Every child must share contentKind; WriteTree enforces this at write time.
func ListNode(name string, contentKind TagKind, children ...*Node) *Node {
	return &Node{Kind: List, Name: name, ListKind: contentKind, children: children}
}
