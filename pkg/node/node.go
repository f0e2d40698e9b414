// Package node provides the typed control tree.
//
// A Node has a [Role], a text label, string attributes, and an ordered list
// of children. Roles constrain which parents a node may live under (see
// [CanContain]). Controls attach to nodes as a [Behavior] and are told when
// their node enters or leaves a live tree, which is any subtree reachable
// from a document node created with [NewDocument].
//
// Nodes communicate upward through bubbling events ([Node.Dispatch]) and
// observe structural changes through [Node.Observe]. The package is not safe
// for concurrent use; a tree is driven from a single goroutine.
package node

import (
	"slices"
	"sort"

	"github.com/google/uuid"

	"github.com/go-drift/controls/pkg/errors"
)

// Behavior is implemented by controls bound to a node.
type Behavior interface {
	// Attached is called after the node enters a live tree.
	Attached()
	// Detached is called after the node leaves a live tree.
	Detached()
}

// Node is a single element of the control tree.
type Node struct {
	id       uuid.UUID
	role     Role
	text     string
	attrs    map[string]string
	parent   *Node
	children []*Node
	behavior Behavior
	attached bool

	listeners map[EventType][]*listener
	observers []*observer
}

// Option configures a node at construction.
type Option func(*Node)

// WithText sets the node's text label.
func WithText(text string) Option {
	return func(n *Node) { n.text = text }
}

// WithAttr sets an attribute.
func WithAttr(name, value string) Option {
	return func(n *Node) { n.attrs[name] = value }
}

// WithFlag sets a presence-only attribute.
func WithFlag(name string) Option {
	return func(n *Node) { n.attrs[name] = "" }
}

// WithChildren appends children in order. Children whose role may not live
// under this node are reported and skipped.
func WithChildren(children ...*Node) Option {
	return func(n *Node) {
		for _, child := range children {
			var ce *errors.ControlError
			if err := n.Append(child); errors.As(err, &ce) {
				errors.Report(ce)
			}
		}
	}
}

// New creates a detached node.
func New(role Role, opts ...Option) *Node {
	n := &Node{
		id:    uuid.New(),
		role:  role,
		attrs: make(map[string]string),
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// NewDocument creates an attached document root.
func NewDocument(opts ...Option) *Node {
	n := New(RoleDocument, opts...)
	n.attach()
	return n
}

// ID returns the node's stable identifier.
func (n *Node) ID() uuid.UUID {
	return n.id
}

// Role returns the node's role.
func (n *Node) Role() Role {
	return n.role
}

// Text returns the node's text label.
func (n *Node) Text() string {
	return n.text
}

// SetText replaces the node's text label.
func (n *Node) SetText(text string) {
	if n.text == text {
		return
	}
	old := n.text
	n.text = text
	n.notify(Mutation{Kind: MutationText, Target: n, OldValue: old, HadValue: true})
}

func (n *Node) String() string {
	if n == nil {
		return "<nil>"
	}
	if n.text != "" {
		return n.role.String() + "(" + n.text + ")"
	}
	return n.role.String() + "#" + n.id.String()[:8]
}

// Parent returns the node's parent, or nil.
func (n *Node) Parent() *Node {
	return n.parent
}

// Children returns a copy of the node's children.
func (n *Node) Children() []*Node {
	return slices.Clone(n.children)
}

// ChildCount returns the number of children.
func (n *Node) ChildCount() int {
	return len(n.children)
}

// Index returns the node's position among its parent's children, or -1.
func (n *Node) Index() int {
	if n.parent == nil {
		return -1
	}
	return slices.Index(n.parent.children, n)
}

// Attached reports whether the node is part of a live tree.
func (n *Node) Attached() bool {
	return n.attached
}

// Behavior returns the control bound to the node, or nil.
func (n *Node) Behavior() Behavior {
	return n.behavior
}

// SetBehavior binds b to the node. If the node is already live, the old
// behavior is detached and b is attached.
func (n *Node) SetBehavior(b Behavior) {
	if n.behavior == b {
		return
	}
	if n.attached && n.behavior != nil {
		n.behavior.Detached()
	}
	n.behavior = b
	if n.attached && b != nil {
		b.Attached()
	}
}

// Root returns the topmost ancestor of the node.
func (n *Node) Root() *Node {
	cur := n
	for cur.parent != nil {
		cur = cur.parent
	}
	return cur
}

// Contains reports whether other is n or one of its descendants.
func (n *Node) Contains(other *Node) bool {
	for cur := other; cur != nil; cur = cur.parent {
		if cur == n {
			return true
		}
	}
	return false
}

// Closest returns the nearest node with role, starting at n itself.
func (n *Node) Closest(role Role) *Node {
	for cur := n; cur != nil; cur = cur.parent {
		if cur.role == role {
			return cur
		}
	}
	return nil
}

// FirstChild returns the first direct child with role, or nil.
func (n *Node) FirstChild(role Role) *Node {
	for _, child := range n.children {
		if child.role == role {
			return child
		}
	}
	return nil
}

// ChildrenOf returns the direct children with role.
func (n *Node) ChildrenOf(role Role) []*Node {
	var out []*Node
	for _, child := range n.children {
		if child.role == role {
			out = append(out, child)
		}
	}
	return out
}

// Walk visits n and its descendants in tree order until visit returns false.
func (n *Node) Walk(visit func(*Node) bool) bool {
	if !visit(n) {
		return false
	}
	for _, child := range slices.Clone(n.children) {
		if !child.Walk(visit) {
			return false
		}
	}
	return true
}

// Find returns the first node in tree order, n included, matching pred.
func (n *Node) Find(pred func(*Node) bool) *Node {
	var found *Node
	n.Walk(func(cur *Node) bool {
		if pred(cur) {
			found = cur
			return false
		}
		return true
	})
	return found
}

// Append adds child as the last child of n.
func (n *Node) Append(child *Node) error {
	return n.Insert(child, len(n.children))
}

// Insert adds child at index, moving it from any previous parent.
func (n *Node) Insert(child *Node, index int) error {
	if child == nil {
		return nil
	}
	if !CanContain(n.role, child.role) {
		return &errors.ControlError{
			Op:   "node.Insert",
			Kind: errors.KindStructure,
			Node: child.role.String() + " under " + n.role.String(),
			Err:  errors.ErrIllegalChild,
		}
	}
	if child.Contains(n) {
		return &errors.ControlError{
			Op:   "node.Insert",
			Kind: errors.KindStructure,
			Node: child.String(),
			Err:  errors.ErrCycle,
		}
	}
	if child.parent != nil {
		child.Remove()
	}
	index = max(0, min(index, len(n.children)))
	n.children = slices.Insert(n.children, index, child)
	child.parent = n
	if n.attached {
		child.attach()
	}
	n.notify(Mutation{Kind: MutationChildAdded, Target: n, Child: child})
	return nil
}

// Remove detaches n from its parent.
func (n *Node) Remove() {
	parent := n.parent
	if parent == nil {
		return
	}
	if i := slices.Index(parent.children, n); i >= 0 {
		parent.children = slices.Delete(parent.children, i, i+1)
	}
	n.parent = nil
	n.detach()
	parent.notify(Mutation{Kind: MutationChildRemoved, Target: parent, Child: n})
}

func (n *Node) attach() {
	if n.attached {
		return
	}
	n.attached = true
	if n.behavior != nil {
		n.behavior.Attached()
	}
	for _, child := range slices.Clone(n.children) {
		if child.parent == n {
			child.attach()
		}
	}
}

func (n *Node) detach() {
	if !n.attached {
		return
	}
	n.attached = false
	if n.behavior != nil {
		n.behavior.Detached()
	}
	for _, child := range slices.Clone(n.children) {
		child.detach()
	}
}

// Attr returns the value of an attribute and whether it is present.
func (n *Node) Attr(name string) (string, bool) {
	v, ok := n.attrs[name]
	return v, ok
}

// AttrOr returns the attribute value, or def when absent.
func (n *Node) AttrOr(name, def string) string {
	if v, ok := n.attrs[name]; ok {
		return v
	}
	return def
}

// HasAttr reports whether an attribute is present.
func (n *Node) HasAttr(name string) bool {
	_, ok := n.attrs[name]
	return ok
}

// AttrNames returns the present attribute names, sorted.
func (n *Node) AttrNames() []string {
	names := make([]string, 0, len(n.attrs))
	for name := range n.attrs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// SetAttr sets an attribute. Writing the current value does nothing.
func (n *Node) SetAttr(name, value string) {
	old, had := n.attrs[name]
	if had && old == value {
		return
	}
	n.attrs[name] = value
	n.notify(Mutation{Kind: MutationAttribute, Target: n, Name: name, OldValue: old, HadValue: had})
}

// RemoveAttr removes an attribute if present.
func (n *Node) RemoveAttr(name string) {
	old, had := n.attrs[name]
	if !had {
		return
	}
	delete(n.attrs, name)
	n.notify(Mutation{Kind: MutationAttribute, Target: n, Name: name, OldValue: old, HadValue: true})
}

// SetFlag adds a presence-only attribute when on, removes it otherwise.
// An existing value is kept when on.
func (n *Node) SetFlag(name string, on bool) {
	if !on {
		n.RemoveAttr(name)
		return
	}
	if !n.HasAttr(name) {
		n.SetAttr(name, "")
	}
}
