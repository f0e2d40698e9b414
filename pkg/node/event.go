package node

import (
	"slices"

	"github.com/go-drift/controls/pkg/errors"
)

// EventType names an event.
type EventType string

// Host input events.
const (
	EventKeyDown       EventType = "keydown"
	EventClick         EventType = "click"
	EventPointerDown   EventType = "pointerdown"
	EventPointerMove   EventType = "pointermove"
	EventPointerUp     EventType = "pointerup"
	EventPointerCancel EventType = "pointercancel"
	EventFocusIn       EventType = "focusin"
	EventFocusOut      EventType = "focusout"
)

// Notifications emitted by controls for host application code.
const (
	EventChange EventType = "change"
	EventInput  EventType = "input"
	EventFocus  EventType = "focus"
	EventBlur   EventType = "blur"
)

// Key names a keyboard key. Printable keys use their text.
type Key string

const (
	KeyArrowUp    Key = "ArrowUp"
	KeyArrowDown  Key = "ArrowDown"
	KeyArrowLeft  Key = "ArrowLeft"
	KeyArrowRight Key = "ArrowRight"
	KeyEnter      Key = "Enter"
	KeySpace      Key = " "
	KeyEscape     Key = "Escape"
	KeyTab        Key = "Tab"
	KeyHome       Key = "Home"
	KeyEnd        Key = "End"
	KeyPageUp     Key = "PageUp"
	KeyPageDown   Key = "PageDown"
	KeyBackspace  Key = "Backspace"
	KeyDelete     Key = "Delete"
)

// Event is dispatched to a target node and, when it bubbles, to each ancestor.
type Event struct {
	Type EventType
	// Target is the node the event was dispatched to.
	Target *Node
	// CurrentTarget is the node whose listener is running.
	CurrentTarget *Node
	// Related is the other side of a focus move.
	Related *Node
	Bubbles bool

	// Value carries the control value for notifications.
	Value string

	// Key and Text describe keydown events. Text is the printable text the
	// key produces, empty for named keys.
	Key   Key
	Text  string
	Shift bool

	// X, Y and PointerID describe pointer events in host coordinates.
	X, Y      float64
	PointerID int64

	defaultPrevented bool
	stopped          bool
}

// PreventDefault marks the event as handled so the host skips its default action.
func (e *Event) PreventDefault() {
	e.defaultPrevented = true
}

// DefaultPrevented reports whether a listener handled the event.
func (e *Event) DefaultPrevented() bool {
	return e.defaultPrevented
}

// StopPropagation stops the event from reaching further ancestors.
// Remaining listeners on the current node still run.
func (e *Event) StopPropagation() {
	e.stopped = true
}

type listener struct {
	fn      func(*Event)
	removed bool
}

// AddListener registers fn for events of type t reaching n.
// The returned function removes the listener; calling it again does nothing.
func (n *Node) AddListener(t EventType, fn func(*Event)) (remove func()) {
	if n.listeners == nil {
		n.listeners = make(map[EventType][]*listener)
	}
	l := &listener{fn: fn}
	n.listeners[t] = append(n.listeners[t], l)
	return func() {
		if l.removed {
			return
		}
		l.removed = true
		list := n.listeners[t]
		if i := slices.Index(list, l); i >= 0 {
			n.listeners[t] = slices.Delete(list, i, i+1)
		}
		if len(n.listeners[t]) == 0 {
			delete(n.listeners, t)
		}
	}
}

// ListenerCount returns the number of listeners registered on n.
func (n *Node) ListenerCount() int {
	count := 0
	for _, list := range n.listeners {
		count += len(list)
	}
	return count
}

// Dispatch delivers e to n and, if e.Bubbles, to each ancestor in turn.
// A panicking listener is reported and the remaining listeners still run.
// Dispatch returns whether a listener called PreventDefault.
func (n *Node) Dispatch(e *Event) bool {
	if e.Target == nil {
		e.Target = n
	}
	for cur := n; cur != nil; cur = cur.parent {
		cur.deliver(e)
		if e.stopped || !e.Bubbles {
			break
		}
	}
	e.CurrentTarget = nil
	return e.defaultPrevented
}

func (n *Node) deliver(e *Event) {
	list := slices.Clone(n.listeners[e.Type])
	for _, l := range list {
		if l.removed {
			continue
		}
		e.CurrentTarget = n
		callListener(l.fn, e)
	}
}

func callListener(fn func(*Event), e *Event) {
	defer errors.Recover("node.Dispatch(" + string(e.Type) + ")")
	fn(e)
}
