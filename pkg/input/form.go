package input

import (
	"go.uber.org/zap"

	"github.com/go-drift/controls/pkg/node"
)

// AttrID names a form so coordinators outside it can join through their
// form attribute.
const AttrID = "id"

// Form groups coordinators and provides coordinated values, validation and
// reset.
//
// A coordinator belongs to a form when it names the form's id in its form
// attribute, or when it has no form attribute and lives under the form node.
type Form struct {
	node *node.Node

	// OnReset is called after Reset restores every coordinator.
	OnReset func()
}

// NewForm binds a form to n and returns it.
func NewForm(n *node.Node) *Form {
	f := &Form{node: n}
	n.SetBehavior(f)
	return f
}

// FormOf returns the form bound to n, or nil.
func FormOf(n *node.Node) *Form {
	if n == nil {
		return nil
	}
	f, _ := n.Behavior().(*Form)
	return f
}

// Node returns the form node.
func (f *Form) Node() *node.Node {
	return f.node
}

// Attached implements node.Behavior.
func (f *Form) Attached() {}

// Detached implements node.Behavior.
func (f *Form) Detached() {}

// Coordinators returns the associated coordinators in tree order.
func (f *Form) Coordinators() []*Coordinator {
	var out []*Coordinator
	f.node.Root().Walk(func(n *node.Node) bool {
		if c := CoordinatorOf(n); c != nil && c.Form() == f {
			out = append(out, c)
		}
		return true
	})
	return out
}

// Values returns name to value for every named, enabled coordinator.
func (f *Form) Values() map[string]string {
	values := make(map[string]string)
	for _, c := range f.Coordinators() {
		if c.Name() == "" || c.State().Disabled {
			continue
		}
		values[c.Name()] = c.Value()
	}
	return values
}

// Validate reports whether every enabled coordinator is valid.
func (f *Form) Validate() bool {
	return len(f.Invalid()) == 0
}

// Invalid returns the enabled coordinators that fail validation.
func (f *Form) Invalid() []*Coordinator {
	var out []*Coordinator
	for _, c := range f.Coordinators() {
		if !c.State().Disabled && !c.Valid() {
			out = append(out, c)
		}
	}
	return out
}

// Reset restores every coordinator to its initial value.
func (f *Form) Reset() {
	coords := f.Coordinators()
	for _, c := range coords {
		c.Reset()
	}
	logger().Debug("form reset", zap.Int("coordinators", len(coords)))
	if f.OnReset != nil {
		f.OnReset()
	}
}

func findForm(root *node.Node, id string) *node.Node {
	if id == "" {
		return nil
	}
	return root.Find(func(n *node.Node) bool {
		return n.Role() == node.RoleForm && n.AttrOr(AttrID, "") == id
	})
}
