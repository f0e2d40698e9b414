package node

// Direction is a traversal direction among siblings.
type Direction int

const (
	// Previous moves toward the start of the child list.
	Previous Direction = -1
	// Next moves toward the end of the child list.
	Next Direction = 1
)

// FindSibling returns the next sibling of n in dir that shares n's role and
// satisfies match, wrapping around the parent's child list. It returns nil
// when traversal comes back to n without a match. A nil match accepts any
// same-role sibling.
func FindSibling(n *Node, dir Direction, match func(*Node) bool) *Node {
	if n == nil || n.parent == nil || dir == 0 {
		return nil
	}
	step := 1
	if dir < 0 {
		step = -1
	}
	siblings := n.parent.children
	count := len(siblings)
	start := n.Index()
	for i := 1; i < count; i++ {
		candidate := siblings[wrapIndex(start+step*i, count)]
		if candidate.role != n.role {
			continue
		}
		if match == nil || match(candidate) {
			return candidate
		}
	}
	return nil
}

// wrapIndex wraps an index to stay within [0, count).
func wrapIndex(index, count int) int {
	index = index % count
	if index < 0 {
		index += count
	}
	return index
}
