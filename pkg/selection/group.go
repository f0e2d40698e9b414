package selection

import (
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/go-drift/controls/internal/logging"
	"github.com/go-drift/controls/pkg/host"
	"github.com/go-drift/controls/pkg/node"
)

// Attributes read or reflected by a selection group.
const (
	AttrOpen        = "open"
	AttrValue       = "value"
	AttrSelected    = "selected"
	AttrDisabled    = "disabled"
	AttrPlaceholder = "placeholder"
	// AttrActive marks the option holding focus while open.
	AttrActive = "active"
)

// focusCheckKey identifies the deferred focus-loss check of one group.
type focusCheckKey struct{ g *Group }

// openKey identifies a deferred open requested by markup.
type openKey struct{ g *Group }

// Group is the behavior of a select node.
type Group struct {
	node *node.Node
	host *host.Host

	open     bool
	selected uuid.UUID
	focused  uuid.UUID

	// syncing is set while the group writes its own attributes so the
	// mutation observer does not react to them.
	syncing bool
	cleanup []func()
}

// New binds a selection group to a select node and returns it. If the node
// is already live the group initializes immediately.
func New(n *node.Node) *Group {
	g := &Group{node: n}
	n.SetBehavior(g)
	return g
}

// Of returns the group bound to n, or nil.
func Of(n *node.Node) *Group {
	if n == nil {
		return nil
	}
	g, _ := n.Behavior().(*Group)
	return g
}

// Node returns the select node.
func (g *Group) Node() *node.Node {
	return g.node
}

// Trigger returns the trigger node, or nil when the markup has none.
func (g *Group) Trigger() *node.Node {
	return g.node.FirstChild(node.RoleTrigger)
}

// List returns the group node holding the options, or nil.
func (g *Group) List() *node.Node {
	return g.node.FirstChild(node.RoleGroup)
}

// Options returns the option nodes in order.
func (g *Group) Options() []*node.Node {
	list := g.List()
	if list == nil {
		return nil
	}
	return list.ChildrenOf(node.RoleOption)
}

// IsOpen reports whether the option list is showing.
func (g *Group) IsOpen() bool {
	return g.open
}

// Selected returns the selected option, or nil.
func (g *Group) Selected() *node.Node {
	return g.resolve(g.selected)
}

// Focused returns the option holding focus while open, or nil.
func (g *Group) Focused() *node.Node {
	if !g.open {
		return nil
	}
	return g.resolve(g.focused)
}

// Value returns the value of the selected option, or "" when none is selected.
func (g *Group) Value() string {
	return OptionValue(g.Selected())
}

// OptionValue returns an option's value attribute, falling back to its text.
func OptionValue(o *node.Node) string {
	if o == nil {
		return ""
	}
	return o.AttrOr(AttrValue, o.Text())
}

// Disabled reports whether the whole group is disabled.
func (g *Group) Disabled() bool {
	return g.node.HasAttr(AttrDisabled)
}

// Attached implements node.Behavior.
func (g *Group) Attached() {
	g.host = host.Of(g.node)
	g.cleanup = append(g.cleanup,
		g.node.AddListener(node.EventKeyDown, g.onKeyDown),
		g.node.AddListener(node.EventClick, g.onClick),
		g.node.AddListener(node.EventFocusOut, g.onFocusOut),
		g.node.AddListener(node.EventFocusIn, g.onFocusIn),
		g.node.Observe(g.onMutation),
	)

	g.sync(func() {
		for _, o := range g.Options() {
			g.prepareOption(o)
		}
		if list := g.List(); list != nil {
			list.SetFlag("hidden", true)
		}
	})
	g.refreshLabel()
	// Options attach after the select, so an authored open waits a tick
	// until they can take focus.
	if g.node.HasAttr(AttrOpen) {
		g.sync(func() { g.node.RemoveAttr(AttrOpen) })
		if g.host != nil {
			g.host.Scheduler().Defer(openKey{g}, g.Open)
		}
	}
	logger().Debug("attached",
		zap.Int("options", len(g.Options())),
		zap.String("value", g.Value()))
}

// Detached implements node.Behavior. Listeners registered at attach are
// removed, an open list is closed without moving focus and state references
// are dropped.
func (g *Group) Detached() {
	for _, fn := range g.cleanup {
		fn()
	}
	g.cleanup = nil
	if g.host != nil {
		g.host.Scheduler().Cancel(focusCheckKey{g})
		g.host.Scheduler().Cancel(openKey{g})
	}
	g.host = nil
	if g.open {
		g.open = false
		prev := g.resolve(g.focused)
		g.sync(func() {
			if prev != nil {
				prev.SetFlag(AttrActive, false)
			}
			if list := g.List(); list != nil {
				list.SetFlag("hidden", true)
			}
			g.node.RemoveAttr(AttrOpen)
		})
	}
	g.selected = uuid.Nil
	g.focused = uuid.Nil
}

// prepareOption takes an option out of Tab order and settles its selected
// marker: the first eligible marked option wins, any other marker is removed.
// Callers hold the sync guard.
func (g *Group) prepareOption(o *node.Node) {
	o.SetAttr("tabindex", "-1")
	o.SetFlag(AttrActive, false)
	if !o.HasAttr(AttrSelected) {
		return
	}
	if g.selected == uuid.Nil && eligible(o) {
		g.selected = o.ID()
		return
	}
	if o.ID() != g.selected {
		o.RemoveAttr(AttrSelected)
	}
}

// Open shows the option list and focuses the selected option, or the first
// eligible one. A disabled group or one without eligible options stays closed.
func (g *Group) Open() {
	if g.open || g.Disabled() || !g.node.Attached() {
		return
	}
	target := g.Selected()
	if !eligible(target) {
		target = g.firstEligible()
	}
	if target == nil {
		return
	}
	g.open = true
	g.sync(func() {
		g.node.SetFlag(AttrOpen, true)
		if list := g.List(); list != nil {
			list.SetFlag("hidden", false)
		}
	})
	logger().Debug("open", zap.String("focus", target.String()))
	g.focusOption(target)
}

// Close hides the option list. Focus returns to the trigger if it was on an
// option.
func (g *Group) Close() {
	list := g.List()
	g.close(g.host != nil && list != nil && g.host.Focus().Within(list))
}

// Toggle opens a closed group and closes an open one.
func (g *Group) Toggle() {
	if g.open {
		g.close(true)
		return
	}
	g.Open()
}

func (g *Group) close(restoreFocus bool) {
	if !g.open {
		return
	}
	if g.host != nil {
		g.host.Scheduler().Cancel(focusCheckKey{g})
	}
	// Focus moves before the list is hidden so it never passes through
	// an unfocusable option.
	if restoreFocus {
		g.focusTrigger()
	}
	g.open = false
	prev := g.resolve(g.focused)
	g.focused = uuid.Nil
	g.sync(func() {
		if prev != nil {
			prev.SetFlag(AttrActive, false)
		}
		if list := g.List(); list != nil {
			list.SetFlag("hidden", true)
		}
		g.node.SetFlag(AttrOpen, false)
	})
	logger().Debug("close", zap.Bool("restoreFocus", restoreFocus))
}

// SetValue selects the eligible option whose value is v without emitting a
// change notification. An empty v clears the selection. It reports whether
// the selection changed.
func (g *Group) SetValue(v string) bool {
	if v == "" {
		return g.clearSelection()
	}
	for _, o := range g.Options() {
		if OptionValue(o) == v && eligible(o) {
			return g.selectOption(o, false)
		}
	}
	return false
}

// selectOption makes o the selected option. Absent, disabled and already
// selected options are ignored.
func (g *Group) selectOption(o *node.Node, notify bool) bool {
	if !eligible(o) || !g.owns(o) || o.ID() == g.selected {
		return false
	}
	prev := g.resolve(g.selected)
	g.selected = o.ID()
	g.sync(func() {
		if prev != nil {
			prev.RemoveAttr(AttrSelected)
		}
		o.SetFlag(AttrSelected, true)
	})
	g.refreshLabel()
	value := OptionValue(o)
	logger().Debug("select", zap.String("value", value), zap.Bool("notify", notify))
	if notify {
		g.node.Dispatch(&node.Event{Type: node.EventChange, Bubbles: true, Value: value})
	}
	return true
}

func (g *Group) clearSelection() bool {
	prev := g.resolve(g.selected)
	if prev == nil {
		g.selected = uuid.Nil
		return false
	}
	g.selected = uuid.Nil
	g.sync(func() { prev.RemoveAttr(AttrSelected) })
	g.refreshLabel()
	return true
}

// focusOption moves the focused option to o and, when the host allows it,
// primary focus with it.
func (g *Group) focusOption(o *node.Node) {
	if o == nil || !g.open {
		return
	}
	prev := g.resolve(g.focused)
	g.focused = o.ID()
	g.sync(func() {
		if prev != nil && prev != o {
			prev.SetFlag(AttrActive, false)
		}
		o.SetFlag(AttrActive, true)
	})
	if g.host != nil {
		g.host.Focus().Focus(o)
	}
}

func (g *Group) focusTrigger() {
	if t := g.Trigger(); t != nil && g.host != nil {
		g.host.Focus().Focus(t)
	}
}

// step returns the eligible option after from in dir, wrapping. With no
// starting option it returns the first (or last) eligible option.
func (g *Group) step(from *node.Node, dir node.Direction) *node.Node {
	if from == nil {
		if dir == node.Previous {
			return g.lastEligible()
		}
		return g.firstEligible()
	}
	return node.FindSibling(from, dir, eligible)
}

func (g *Group) firstEligible() *node.Node {
	for _, o := range g.Options() {
		if eligible(o) {
			return o
		}
	}
	return nil
}

func (g *Group) lastEligible() *node.Node {
	options := g.Options()
	for i := len(options) - 1; i >= 0; i-- {
		if eligible(options[i]) {
			return options[i]
		}
	}
	return nil
}

// resolve finds the option with id among the live options.
func (g *Group) resolve(id uuid.UUID) *node.Node {
	if id == uuid.Nil {
		return nil
	}
	for _, o := range g.Options() {
		if o.ID() == id {
			return o
		}
	}
	return nil
}

func (g *Group) owns(o *node.Node) bool {
	list := g.List()
	return list != nil && o.Parent() == list
}

// refreshLabel shows the selected option's text on the trigger, or the
// placeholder when nothing is selected.
func (g *Group) refreshLabel() {
	t := g.Trigger()
	selected := g.Selected()
	g.sync(func() {
		if selected != nil {
			g.node.SetAttr(AttrValue, OptionValue(selected))
		} else {
			g.node.RemoveAttr(AttrValue)
		}
		if t == nil {
			return
		}
		if selected != nil {
			t.SetText(selected.Text())
			return
		}
		t.SetText(g.node.AttrOr(AttrPlaceholder, ""))
	})
}

func (g *Group) sync(fn func()) {
	if g.syncing {
		fn()
		return
	}
	g.syncing = true
	defer func() { g.syncing = false }()
	fn()
}

func eligible(o *node.Node) bool {
	return o != nil && !o.HasAttr(AttrDisabled)
}

func logger() *zap.Logger {
	return logging.Named("selection")
}
