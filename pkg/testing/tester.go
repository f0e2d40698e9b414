package testing

import (
	"errors"
	"testing"

	controlerrors "github.com/go-drift/controls/pkg/errors"
	"github.com/go-drift/controls/pkg/host"
	"github.com/go-drift/controls/pkg/markup"
	"github.com/go-drift/controls/pkg/node"
)

// MaxSettleTicks bounds PumpAndSettle.
const MaxSettleTicks = 64

// ErrSettleTimeout is returned when PumpAndSettle exceeds MaxSettleTicks.
var ErrSettleTimeout = errors.New("PumpAndSettle timed out: deferred work did not settle")

// ControlTester drives a host without a terminal. Errors and panics
// reported by controls while the tester is live are captured instead of
// logged.
type ControlTester struct {
	host        *host.Host
	prevHandler controlerrors.ErrorHandler
	capture     *controlerrors.Collector
}

// NewControlTester creates a tester with an empty document.
// Call Cleanup() when done, or use NewControlTesterWithT() instead.
func NewControlTester() *ControlTester {
	t := &ControlTester{
		host:    host.New(),
		capture: &controlerrors.Collector{},
	}
	t.prevHandler = controlerrors.SetHandler(t.capture)
	return t
}

// NewControlTesterWithT creates a tester that auto-cleans up via t.Cleanup().
// This is the recommended constructor for tests.
func NewControlTesterWithT(t *testing.T) *ControlTester {
	tester := NewControlTester()
	t.Cleanup(tester.Cleanup)
	return tester
}

// Cleanup restores the global error handler.
func (t *ControlTester) Cleanup() {
	controlerrors.SetHandler(t.prevHandler)
}

// Host returns the host under test.
func (t *ControlTester) Host() *host.Host {
	return t.host
}

// Root returns the document node.
func (t *ControlTester) Root() *node.Node {
	return t.host.Root()
}

// Mount binds behaviors throughout n, mounts it, and settles deferred work.
func (t *ControlTester) Mount(n *node.Node) error {
	markup.Bind(n)
	if err := t.host.Mount(n); err != nil {
		return err
	}
	return t.PumpAndSettle()
}

// MountMarkup loads a YAML document and mounts every tree it describes.
func (t *ControlTester) MountMarkup(src string) ([]*node.Node, error) {
	nodes, err := markup.Mount(t.host, []byte(src))
	if err != nil {
		return nil, err
	}
	return nodes, t.PumpAndSettle()
}

// Pump runs one scheduling tick and returns how many tasks ran.
func (t *ControlTester) Pump() int {
	return t.host.Tick()
}

// PumpAndSettle ticks until no deferred work remains.
// Returns ErrSettleTimeout if work is still pending after MaxSettleTicks.
func (t *ControlTester) PumpAndSettle() error {
	for i := 0; i < MaxSettleTicks; i++ {
		if t.host.Scheduler().Pending() == 0 {
			return nil
		}
		t.host.Tick()
	}
	if t.host.Scheduler().Pending() > 0 {
		return ErrSettleTimeout
	}
	return nil
}

// Find evaluates finder against the document.
func (t *ControlTester) Find(finder Finder) FinderResult {
	return FinderResult{nodes: finder.Evaluate(t.host.Root()), finder: finder}
}

// Focused returns the node holding primary focus, or nil.
func (t *ControlTester) Focused() *node.Node {
	return t.host.Focus().Primary()
}

// Errors returns the errors reported since the tester was created.
func (t *ControlTester) Errors() []*controlerrors.ControlError {
	return t.capture.Errors()
}

// Panics returns the panics recovered since the tester was created.
func (t *ControlTester) Panics() []*controlerrors.PanicError {
	return t.capture.Panics()
}
