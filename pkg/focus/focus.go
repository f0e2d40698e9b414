// Package focus tracks keyboard focus within a control tree.
package focus

import (
	"github.com/go-drift/controls/pkg/node"
)

// naturallyFocusable roles accept focus without a tabindex attribute.
var naturallyFocusable = map[node.Role]bool{
	node.RoleTrigger:         true,
	node.RoleTextInterface:   true,
	node.RoleSliderInterface: true,
}

// CanFocus reports whether n may receive focus. A node is focusable when it
// is live, naturally focusable or carries a tabindex, and neither it nor an
// ancestor is disabled or hidden.
func CanFocus(n *node.Node) bool {
	if n == nil || !n.Attached() {
		return false
	}
	if !naturallyFocusable[n.Role()] && !n.HasAttr("tabindex") {
		return false
	}
	for cur := n; cur != nil; cur = cur.Parent() {
		if cur.HasAttr("disabled") || cur.HasAttr("hidden") {
			return false
		}
	}
	return true
}

// InTraversal reports whether n takes part in sequential (Tab) traversal.
// Nodes with tabindex="-1" are focusable only programmatically.
func InTraversal(n *node.Node) bool {
	if !CanFocus(n) {
		return false
	}
	v, ok := n.Attr("tabindex")
	return !ok || v != "-1"
}

// Manager owns primary focus for one tree.
type Manager struct {
	root    *node.Node
	primary *node.Node
	cancel  func()

	// OnFocusChange is called after primary focus moves.
	OnFocusChange func(prev, next *node.Node)
}

// NewManager creates a manager for the tree rooted at root.
func NewManager(root *node.Node) *Manager {
	m := &Manager{root: root}
	m.cancel = root.Observe(m.onMutation)
	return m
}

// Dispose stops watching the tree.
func (m *Manager) Dispose() {
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
}

// Primary returns the focused node, or nil.
func (m *Manager) Primary() *node.Node {
	return m.primary
}

// Focus moves primary focus to n. It returns false and leaves focus alone
// when n cannot be focused.
func (m *Manager) Focus(n *node.Node) bool {
	if !CanFocus(n) || !m.root.Contains(n) {
		return false
	}
	m.setPrimary(n)
	return true
}

// Blur clears primary focus.
func (m *Manager) Blur() {
	m.setPrimary(nil)
}

// Within reports whether primary focus is n or one of its descendants.
func (m *Manager) Within(n *node.Node) bool {
	return m.primary != nil && n != nil && n.Contains(m.primary)
}

// Traversable returns the nodes in Tab order.
func (m *Manager) Traversable() []*node.Node {
	var nodes []*node.Node
	m.root.Walk(func(n *node.Node) bool {
		if InTraversal(n) {
			nodes = append(nodes, n)
		}
		return true
	})
	return nodes
}

// MoveFocus moves focus by delta positions in Tab order, wrapping around.
func (m *Manager) MoveFocus(delta int) bool {
	candidates := m.Traversable()
	count := len(candidates)
	if count == 0 || delta == 0 {
		return false
	}

	current := -1
	for i, n := range candidates {
		if n == m.primary {
			current = i
			break
		}
	}
	if current < 0 && delta < 0 {
		current = 0
	}

	for step := 1; step <= count; step++ {
		candidate := candidates[wrapIndex(current+delta*step, count)]
		if candidate == m.primary {
			return false
		}
		if CanFocus(candidate) {
			m.setPrimary(candidate)
			return true
		}
	}
	return false
}

// wrapIndex wraps an index to stay within [0, count).
func wrapIndex(index, count int) int {
	index = index % count
	if index < 0 {
		index += count
	}
	return index
}

// setPrimary updates primary focus and dispatches focusout on the previous
// node followed by focusin on the next. Listeners may move focus again; a
// superseded move does not deliver its focusin.
func (m *Manager) setPrimary(next *node.Node) {
	prev := m.primary
	if prev == next {
		return
	}
	m.primary = next
	if prev != nil && prev.Attached() {
		prev.Dispatch(&node.Event{Type: node.EventFocusOut, Bubbles: true, Related: next})
	}
	if m.primary != next {
		return
	}
	if next != nil {
		next.Dispatch(&node.Event{Type: node.EventFocusIn, Bubbles: true, Related: prev})
	}
	if m.OnFocusChange != nil && m.primary == next {
		m.OnFocusChange(prev, next)
	}
}

func (m *Manager) onMutation(mu node.Mutation) {
	if m.primary == nil {
		return
	}
	switch mu.Kind {
	case node.MutationChildRemoved:
		// A detached node loses focus without events.
		if !m.primary.Attached() {
			prev := m.primary
			m.primary = nil
			if m.OnFocusChange != nil {
				m.OnFocusChange(prev, nil)
			}
		}
	case node.MutationAttribute:
		if mu.Target.Contains(m.primary) && !CanFocus(m.primary) {
			m.setPrimary(nil)
		}
	}
}
