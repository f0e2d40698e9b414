package input

import (
	"github.com/go-drift/controls/pkg/node"
)

// State holds the coordinator flags pushed down to interfaces.
type State struct {
	Disabled bool
	Readonly bool
	Required bool
}

// Editable reports whether an interface may change the value.
func (s State) Editable() bool {
	return !s.Disabled && !s.Readonly
}

// Reporter is the upward channel an interface uses to reach its coordinator.
type Reporter interface {
	// ReportChange proposes a new value.
	ReportChange(value string)
	// ReportFocus signals that the interface gained focus.
	ReportFocus()
	// ReportBlur signals that the interface lost focus or ended a gesture.
	// It is the commit point.
	ReportBlur()
}

// Interface is implemented by interface variants.
type Interface interface {
	node.Behavior
	// Node returns the interface's node.
	Node() *node.Node
	// Value returns the value the interface currently mirrors.
	Value() string
	// SyncValue pushes the canonical value down.
	SyncValue(value string)
	// SyncState pushes the coordinator flags down.
	SyncState(state State)
}

// Validator is implemented by interfaces with local validity rules.
type Validator interface {
	// Valid reports whether the mirrored value passes local validation.
	Valid() bool
}

// Registrar is implemented by coordinators. Interfaces register when they
// attach and receive the Reporter they must use.
type Registrar interface {
	Register(i Interface) Reporter
	Unregister(i Interface)
}

// RegistrarOf returns the registrar an interface node belongs to: the
// behavior of its parent coordinator.
func RegistrarOf(n *node.Node) Registrar {
	if n == nil || n.Parent() == nil {
		return nil
	}
	r, _ := n.Parent().Behavior().(Registrar)
	return r
}

// nopReporter stands in until an interface is registered.
type nopReporter struct{}

func (nopReporter) ReportChange(string) {}
func (nopReporter) ReportFocus()        {}
func (nopReporter) ReportBlur()         {}

// connection is what an interface keeps of its coordinator between attach
// and detach.
type connection struct {
	registrar Registrar
	reporter  Reporter
}

func (c *connection) connect(i Interface) {
	c.registrar = RegistrarOf(i.Node())
	c.reporter = nopReporter{}
	if c.registrar != nil {
		c.reporter = c.registrar.Register(i)
	}
}

func (c *connection) disconnect(i Interface) {
	if c.registrar != nil {
		c.registrar.Unregister(i)
	}
	c.registrar = nil
	c.reporter = nopReporter{}
}

func (c *connection) report() Reporter {
	if c.reporter == nil {
		return nopReporter{}
	}
	return c.reporter
}
