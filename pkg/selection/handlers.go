package selection

import (
	"github.com/google/uuid"

	"github.com/go-drift/controls/pkg/node"
)

func (g *Group) onKeyDown(e *node.Event) {
	if g.Disabled() {
		return
	}
	if g.open {
		g.openKey(e)
		return
	}
	// Closed keys only apply to the trigger.
	if t := g.Trigger(); t == nil || !t.Contains(e.Target) {
		return
	}
	switch e.Key {
	case node.KeyArrowDown:
		g.selectOption(g.step(g.Selected(), node.Next), true)
	case node.KeyArrowUp:
		g.selectOption(g.step(g.Selected(), node.Previous), true)
	case node.KeyEnter, node.KeySpace:
		g.Open()
	default:
		return
	}
	e.PreventDefault()
}

func (g *Group) openKey(e *node.Event) {
	focused := g.Focused()
	switch e.Key {
	case node.KeyArrowDown:
		g.focusOption(g.step(focused, node.Next))
	case node.KeyArrowUp:
		g.focusOption(g.step(focused, node.Previous))
	case node.KeyTab:
		if e.Shift {
			g.focusOption(g.step(focused, node.Previous))
		} else {
			g.focusOption(g.step(focused, node.Next))
		}
	case node.KeyHome:
		g.focusOption(g.firstEligible())
	case node.KeyEnd:
		g.focusOption(g.lastEligible())
	case node.KeyEnter, node.KeySpace:
		g.selectOption(focused, true)
		g.close(true)
	case node.KeyEscape:
		g.close(true)
	default:
		return
	}
	e.PreventDefault()
}

func (g *Group) onClick(e *node.Event) {
	if g.Disabled() {
		return
	}
	if o := e.Target.Closest(node.RoleOption); o != nil && g.owns(o) {
		if !eligible(o) {
			return
		}
		g.selectOption(o, true)
		g.close(true)
		e.PreventDefault()
		return
	}
	if t := g.Trigger(); t != nil && t.Contains(e.Target) {
		g.Toggle()
		e.PreventDefault()
	}
}

// onFocusOut defers the focus-loss check by one tick so the host can finish
// moving focus before the group looks where it went.
func (g *Group) onFocusOut(e *node.Event) {
	if !g.open || g.host == nil {
		return
	}
	g.host.Scheduler().Defer(focusCheckKey{g}, g.checkFocus)
}

func (g *Group) onFocusIn(e *node.Event) {
	if g.host != nil {
		g.host.Scheduler().Cancel(focusCheckKey{g})
	}
}

func (g *Group) checkFocus() {
	if !g.open || g.host == nil {
		return
	}
	if g.host.Focus().Within(g.node) {
		return
	}
	logger().Debug("focus left the group")
	g.close(false)
}

func (g *Group) onMutation(m node.Mutation) {
	if g.syncing {
		return
	}
	switch m.Kind {
	case node.MutationAttribute:
		g.attributeChanged(m)
	case node.MutationText:
		if m.Target == g.Selected() || m.Target == g.node {
			g.refreshLabel()
		}
	case node.MutationChildAdded:
		g.childAdded(m.Child)
	case node.MutationChildRemoved:
		g.childRemoved()
	}
}

func (g *Group) attributeChanged(m node.Mutation) {
	if m.Target == g.node {
		switch m.Name {
		case AttrOpen:
			if g.node.HasAttr(AttrOpen) {
				g.Open()
				// A group that cannot open drops the external attribute.
				if !g.open {
					g.sync(func() { g.node.RemoveAttr(AttrOpen) })
				}
			} else {
				g.Close()
			}
		case AttrDisabled:
			if g.Disabled() {
				g.close(false)
			}
		case AttrPlaceholder:
			g.refreshLabel()
		case AttrValue:
			if v := g.node.AttrOr(AttrValue, ""); v != g.Value() && !g.SetValue(v) {
				g.refreshLabel()
			}
		}
		return
	}
	o := m.Target
	if o.Role() != node.RoleOption || !g.owns(o) {
		return
	}
	switch m.Name {
	case AttrDisabled:
		if o.HasAttr(AttrDisabled) && g.open && o.ID() == g.focused {
			next := g.step(o, node.Next)
			if next == nil {
				g.close(true)
				return
			}
			g.focusOption(next)
		}
	case AttrSelected:
		switch {
		case o.HasAttr(AttrSelected) && !g.selectOption(o, false) && o.ID() != g.selected:
			g.sync(func() { o.RemoveAttr(AttrSelected) })
		case !o.HasAttr(AttrSelected) && o.ID() == g.selected:
			g.selected = uuid.Nil
			g.refreshLabel()
		}
	case AttrValue:
		if o.ID() == g.selected {
			g.refreshLabel()
		}
	}
}

func (g *Group) childAdded(child *node.Node) {
	var added []*node.Node
	switch child.Role() {
	case node.RoleOption:
		if g.owns(child) {
			added = append(added, child)
		}
	case node.RoleGroup:
		if child == g.List() {
			added = g.Options()
			g.sync(func() { child.SetFlag("hidden", !g.open) })
		}
	case node.RoleTrigger:
		g.refreshLabel()
		return
	default:
		return
	}
	g.sync(func() {
		for _, o := range added {
			g.prepareOption(o)
		}
	})
	g.refreshLabel()
}

func (g *Group) childRemoved() {
	if g.selected != uuid.Nil && g.resolve(g.selected) == nil {
		g.selected = uuid.Nil
		g.refreshLabel()
	}
	if g.open && g.resolve(g.focused) == nil {
		g.focused = uuid.Nil
		if first := g.firstEligible(); first != nil {
			g.focusOption(first)
		} else {
			g.close(true)
		}
	}
}
