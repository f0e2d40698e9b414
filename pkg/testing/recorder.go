package testing

import (
	"github.com/go-drift/controls/pkg/node"
)

// RecordedEvent is one event seen by a Recorder.
type RecordedEvent struct {
	Type   node.EventType
	Value  string
	Target *node.Node
}

// Recorder collects events reaching a node.
type Recorder struct {
	events  []RecordedEvent
	removes []func()
}

// Record starts recording events of the given types at n.
func Record(n *node.Node, types ...node.EventType) *Recorder {
	r := &Recorder{}
	for _, t := range types {
		r.removes = append(r.removes, n.AddListener(t, func(e *node.Event) {
			r.events = append(r.events, RecordedEvent{Type: e.Type, Value: e.Value, Target: e.Target})
		}))
	}
	return r
}

// Events returns everything recorded, in order.
func (r *Recorder) Events() []RecordedEvent {
	return r.events
}

// Types returns the recorded event types, in order.
func (r *Recorder) Types() []node.EventType {
	out := make([]node.EventType, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.Type)
	}
	return out
}

// Values returns the payloads of recorded events of type t.
func (r *Recorder) Values(t node.EventType) []string {
	var out []string
	for _, e := range r.events {
		if e.Type == t {
			out = append(out, e.Value)
		}
	}
	return out
}

// Count returns how many events of type t were recorded.
func (r *Recorder) Count(t node.EventType) int {
	return len(r.Values(t))
}

// Reset forgets recorded events.
func (r *Recorder) Reset() {
	r.events = nil
}

// Stop removes the recorder's listeners.
func (r *Recorder) Stop() {
	for _, fn := range r.removes {
		fn()
	}
	r.removes = nil
}
