// Package testing provides a headless testing harness for controls.
//
// # Quick Start
//
// Create a tester, mount markup, and drive it with keys and pointers:
//
//	func TestPicker(t *testing.T) {
//	    tester := controlstest.NewControlTesterWithT(t)
//	    tester.MountMarkup(`
//	role: select
//	children:
//	  - role: trigger
//	  - role: group
//	    children:
//	      - {role: option, text: A}
//	      - {role: option, text: B}
//	`)
//
//	    changes := controlstest.Record(tester.Root(), node.EventChange)
//	    tester.Focus(controlstest.ByRole(node.RoleTrigger))
//	    tester.Press(node.KeyArrowDown)
//
//	    if got := changes.Values(node.EventChange); len(got) != 1 || got[0] != "A" {
//	        t.Errorf("changes = %v", got)
//	    }
//	}
//
// # Protocol Testing
//
// [ProtocolSpy] stands in for a coordinator so an interface variant can be
// tested against the internal protocol alone.
//
// # Snapshot Testing
//
// Capture a tree as YAML and compare it against a golden file:
//
//	snap, _ := controlstest.CaptureSnapshot(tester.Root())
//	snap.MatchesFile(t, "testdata/picker.snapshot.yaml")
//
// Update snapshots with:
//
//	CONTROLS_UPDATE_SNAPSHOTS=1 go test ./...
//
// # Import Alias
//
// Since this package has the same name as the standard library testing
// package, import it with an alias:
//
//	import controlstest "github.com/go-drift/controls/pkg/testing"
package testing
