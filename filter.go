package nbt

// FilterResult is the three-way decision a NodeFilter makes about a visited
// node: materialize it whole, skip its payload entirely, or descend into
// its children one at a time.
type FilterResult int

const (
	// Ignore skips the node's payload without materializing it.
	Ignore FilterResult = iota
	// Accept fully materializes the node (and, for a container, its entire
	// subtree) and yields it to the consumer.
	Accept
	// TestChildren descends into a container's children one at a time,
	// re-applying the filter to each. On a non-container it behaves like
	// Ignore.
	TestChildren
)

// NodeFilter decides, for the node currently being visited, what the
// streaming reader should do with it. parents is the read-only ancestor
// stack from the root to the immediate parent (empty for the root itself).
// current carries Kind, Name, and (for a List) ListKind, but not yet its
// payload or children.
type NodeFilter func(parents []*Node, current *Node) FilterResult

// NoneFilter accepts every node, fully materializing the tree exactly like
// ReadTree would — useful for driving a filtered read when no filtering is
// actually wanted.
func NoneFilter() NodeFilter {
	return func(_ []*Node, _ *Node) FilterResult {
		return Accept
	}
}

// AbsolutePathFilter accepts only the node whose full name path (starting
// from the root's own name) equals parts, descending along matching
// prefixes and ignoring everything else.
func AbsolutePathFilter(parts ...string) NodeFilter {
	path := append([]string(nil), parts...)
	return func(parents []*Node, current *Node) FilterResult {
		depth := len(parents)
		if depth+1 > len(path) {
			return Ignore
		}
		for i, p := range parents {
			if p.Name != path[i] {
				return Ignore
			}
		}
		if current.Name != path[depth] {
			return Ignore
		}
		if depth+1 == len(path) {
			return Accept
		}
		return TestChildren
	}
}

// NameAnywhereFilter accepts any node whose name matches, and descends into
// everything else looking for a match.
func NameAnywhereFilter(name string) NodeFilter {
	return func(_ []*Node, current *Node) FilterResult {
		if current.Name == name {
			return Accept
		}
		return TestChildren
	}
}
