// Package host ties a control tree to the services controls rely on: focus
// tracking and one-tick deferral. A host application (terminal UI, test
// harness, embedding view) owns a Host and feeds it key and pointer input.
package host

import (
	"github.com/go-drift/controls/pkg/focus"
	"github.com/go-drift/controls/pkg/node"
	"github.com/go-drift/controls/pkg/scheduler"
)

// maxSettleTicks bounds Settle against tasks that keep rescheduling.
const maxSettleTicks = 16

// Host owns a document tree, its focus manager, and its scheduler.
type Host struct {
	root      *node.Node
	focus     *focus.Manager
	scheduler *scheduler.Scheduler
}

// New creates a host with an empty, attached document.
func New() *Host {
	h := &Host{scheduler: scheduler.New()}
	h.root = node.NewDocument()
	h.root.SetBehavior(h)
	h.focus = focus.NewManager(h.root)
	return h
}

// Of returns the host owning the tree n lives in, or nil.
func Of(n *node.Node) *Host {
	if n == nil {
		return nil
	}
	h, _ := n.Root().Behavior().(*Host)
	return h
}

// Attached implements node.Behavior for the document root.
func (h *Host) Attached() {}

// Detached implements node.Behavior for the document root.
func (h *Host) Detached() {}

// Root returns the document node.
func (h *Host) Root() *node.Node {
	return h.root
}

// Focus returns the focus manager.
func (h *Host) Focus() *focus.Manager {
	return h.focus
}

// Scheduler returns the deferral queue.
func (h *Host) Scheduler() *scheduler.Scheduler {
	return h.scheduler
}

// Mount appends n to the document, attaching its subtree.
func (h *Host) Mount(n *node.Node) error {
	return h.root.Append(n)
}

// DispatchKey delivers a keydown to the focused node, or the document when
// nothing is focused. An unhandled Tab moves focus in Tab order. It returns
// whether the key was consumed.
func (h *Host) DispatchKey(key node.Key, text string, shift bool) bool {
	target := h.focus.Primary()
	if target == nil {
		target = h.root
	}
	handled := target.Dispatch(&node.Event{
		Type:    node.EventKeyDown,
		Bubbles: true,
		Key:     key,
		Text:    text,
		Shift:   shift,
	})
	if handled || key != node.KeyTab {
		return handled
	}
	if shift {
		return h.focus.MoveFocus(-1)
	}
	return h.focus.MoveFocus(1)
}

// Click focuses the nearest focusable node at or above n, then dispatches
// a bubbling click to n.
func (h *Host) Click(n *node.Node) bool {
	if n == nil || !h.root.Contains(n) {
		return false
	}
	for cur := n; cur != nil; cur = cur.Parent() {
		if focus.CanFocus(cur) {
			h.focus.Focus(cur)
			break
		}
	}
	return n.Dispatch(&node.Event{Type: node.EventClick, Bubbles: true})
}

// PointerDown dispatches a pointerdown at host coordinates to n.
func (h *Host) PointerDown(n *node.Node, id int64, x, y float64) bool {
	return h.pointer(node.EventPointerDown, n, id, x, y)
}

// PointerMove dispatches a pointermove. A nil target means the pointer is
// outside every control and the event goes to the document.
func (h *Host) PointerMove(n *node.Node, id int64, x, y float64) bool {
	return h.pointer(node.EventPointerMove, n, id, x, y)
}

// PointerUp dispatches a pointerup.
func (h *Host) PointerUp(n *node.Node, id int64, x, y float64) bool {
	return h.pointer(node.EventPointerUp, n, id, x, y)
}

// PointerCancel dispatches a pointercancel.
func (h *Host) PointerCancel(n *node.Node, id int64) bool {
	return h.pointer(node.EventPointerCancel, n, id, 0, 0)
}

func (h *Host) pointer(t node.EventType, n *node.Node, id int64, x, y float64) bool {
	if n == nil || !h.root.Contains(n) {
		n = h.root
	}
	return n.Dispatch(&node.Event{Type: t, Bubbles: true, PointerID: id, X: x, Y: y})
}

// Tick runs one scheduling turn.
func (h *Host) Tick() int {
	return h.scheduler.Tick()
}

// Settle ticks until no deferred work remains and returns how many tasks ran.
func (h *Host) Settle() int {
	ran := 0
	for i := 0; i < maxSettleTicks && h.scheduler.Pending() > 0; i++ {
		ran += h.scheduler.Tick()
	}
	return ran
}
