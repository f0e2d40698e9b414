package testing

import (
	"slices"

	"github.com/go-drift/controls/pkg/input"
	"github.com/go-drift/controls/pkg/node"
)

// ProtocolSpy stands in for a coordinator. Interfaces under its node
// register with it and everything they report is recorded. The spy never
// pushes values back on its own.
type ProtocolSpy struct {
	node       *node.Node
	interfaces []input.Interface

	// Value and State are handed to interfaces when they register.
	Value string
	State input.State

	// Changes holds every ReportChange payload.
	Changes []string
	// Log holds every report in order: "change:<value>", "focus", "blur".
	Log []string
}

// NewProtocolSpy binds a spy to a coordinator node.
func NewProtocolSpy(n *node.Node) *ProtocolSpy {
	s := &ProtocolSpy{node: n}
	n.SetBehavior(s)
	return s
}

// Attached implements node.Behavior.
func (s *ProtocolSpy) Attached() {}

// Detached implements node.Behavior.
func (s *ProtocolSpy) Detached() {}

// Register implements input.Registrar.
func (s *ProtocolSpy) Register(i input.Interface) input.Reporter {
	if !slices.Contains(s.interfaces, i) {
		s.interfaces = append(s.interfaces, i)
	}
	i.SyncState(s.State)
	i.SyncValue(s.Value)
	return s
}

// Unregister implements input.Registrar.
func (s *ProtocolSpy) Unregister(i input.Interface) {
	if idx := slices.Index(s.interfaces, i); idx >= 0 {
		s.interfaces = slices.Delete(s.interfaces, idx, idx+1)
	}
}

// Interfaces returns the registered interfaces.
func (s *ProtocolSpy) Interfaces() []input.Interface {
	return slices.Clone(s.interfaces)
}

// ReportChange implements input.Reporter.
func (s *ProtocolSpy) ReportChange(value string) {
	s.Changes = append(s.Changes, value)
	s.Log = append(s.Log, "change:"+value)
}

// ReportFocus implements input.Reporter.
func (s *ProtocolSpy) ReportFocus() {
	s.Log = append(s.Log, "focus")
}

// ReportBlur implements input.Reporter.
func (s *ProtocolSpy) ReportBlur() {
	s.Log = append(s.Log, "blur")
}

// Push sends a value down to every registered interface.
func (s *ProtocolSpy) Push(value string) {
	s.Value = value
	for _, i := range s.Interfaces() {
		i.SyncValue(value)
	}
}

// PushState sends flags down to every registered interface.
func (s *ProtocolSpy) PushState(state input.State) {
	s.State = state
	for _, i := range s.Interfaces() {
		i.SyncState(state)
	}
}

// Reset forgets recorded reports.
func (s *ProtocolSpy) Reset() {
	s.Changes = nil
	s.Log = nil
}
