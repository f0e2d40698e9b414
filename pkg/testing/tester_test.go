package testing

import (
	"testing"

	controlerrors "github.com/go-drift/controls/pkg/errors"
	"github.com/go-drift/controls/pkg/input"
	"github.com/go-drift/controls/pkg/node"
	"github.com/go-drift/controls/pkg/selection"
)

func TestTesterCapturesErrors(t *testing.T) {
	tester := NewControlTesterWithT(t)
	_, err := tester.MountMarkup(`
role: coordinator
attrs: {type: range}
children:
  - role: slider-interface
    attrs: {step: many}
`)
	if err != nil {
		t.Fatalf("MountMarkup: %v", err)
	}
	errs := tester.Errors()
	if len(errs) != 1 {
		t.Fatalf("got %d errors, want 1", len(errs))
	}
	if errs[0].Kind != controlerrors.KindAttribute {
		t.Errorf("Kind = %v, want attribute", errs[0].Kind)
	}
}

func TestTesterCapturesPanics(t *testing.T) {
	tester := NewControlTesterWithT(t)
	n := node.New(node.RoleContainer)
	if err := tester.Mount(n); err != nil {
		t.Fatalf("Mount: %v", err)
	}
	n.AddListener(node.EventClick, func(*node.Event) { panic("boom") })
	tester.Host().Click(n)

	if got := len(tester.Panics()); got != 1 {
		t.Fatalf("got %d panics, want 1", got)
	}
	if tester.Panics()[0].Value != "boom" {
		t.Errorf("Value = %v", tester.Panics()[0].Value)
	}
}

func TestTesterCleanupRestoresHandler(t *testing.T) {
	prev := controlerrors.Handler()
	tester := NewControlTester()
	if controlerrors.Handler() == prev {
		t.Fatal("tester should install its own handler")
	}
	tester.Cleanup()
	if controlerrors.Handler() != prev {
		t.Error("Cleanup should restore the previous handler")
	}
}

func TestMountBindsBehaviors(t *testing.T) {
	tester := NewControlTesterWithT(t)
	sel := node.New(node.RoleSelect, node.WithChildren(
		node.New(node.RoleTrigger),
		node.New(node.RoleGroup, node.WithChildren(node.New(node.RoleOption, node.WithText("Only")))),
	))
	if err := tester.Mount(sel); err != nil {
		t.Fatalf("Mount: %v", err)
	}
	if selection.Of(sel) == nil {
		t.Fatal("Mount should bind a selection group")
	}
}

func TestPumpAndSettle(t *testing.T) {
	tester := NewControlTesterWithT(t)
	s := tester.Host().Scheduler()

	ran := 0
	s.Defer("once", func() { ran++ })
	if err := tester.PumpAndSettle(); err != nil {
		t.Fatalf("PumpAndSettle: %v", err)
	}
	if ran != 1 {
		t.Errorf("task ran %d times, want 1", ran)
	}

	var again func()
	again = func() { s.Defer("forever", again) }
	s.Defer("forever", again)
	if err := tester.PumpAndSettle(); err != ErrSettleTimeout {
		t.Errorf("err = %v, want ErrSettleTimeout", err)
	}
	s.Cancel("forever")
}

func TestFocusAndTap(t *testing.T) {
	tester := mountPicker(t)

	if err := tester.Focus(ByRole(node.RoleTextInterface)); err != nil {
		t.Fatalf("Focus: %v", err)
	}
	if tester.Focused().Role() != node.RoleTextInterface {
		t.Errorf("Focused = %v", tester.Focused())
	}
	if err := tester.Focus(ByRole(node.RoleGroup)); err == nil {
		t.Error("a group should refuse focus")
	}
	if err := tester.Focus(ByText("Plum")); err == nil {
		t.Error("focusing nothing should fail")
	}

	if err := tester.Tap(ByRole(node.RoleTrigger)); err != nil {
		t.Fatalf("Tap: %v", err)
	}
	g := selection.Of(tester.Find(ByRole(node.RoleSelect)).First())
	if !g.IsOpen() {
		t.Error("tapping the trigger should open the select")
	}
	if err := tester.Blur(); err != nil {
		t.Fatalf("Blur: %v", err)
	}
	if g.IsOpen() {
		t.Error("losing focus should close the select")
	}
}

func TestTypeAndPress(t *testing.T) {
	tester := mountPicker(t)
	if err := tester.Focus(ByRole(node.RoleTextInterface)); err != nil {
		t.Fatal(err)
	}
	tester.Type("héllo👍🏽")
	tester.Press(node.KeyBackspace)

	c := input.CoordinatorOf(tester.Find(ByRole(node.RoleCoordinator)).First())
	if got := c.Value(); got != "héllo" {
		t.Errorf("Value = %q, want %q", got, "héllo")
	}

	if !tester.PressShift(node.KeyTab) {
		t.Error("shift+tab should move focus")
	}
	if tester.Focused().Role() != node.RoleTrigger {
		t.Errorf("Focused = %v, want the trigger", tester.Focused())
	}
}

func TestDragSliderErrors(t *testing.T) {
	tester := NewControlTesterWithT(t)
	if _, err := tester.MountMarkup(`
role: coordinator
attrs: {type: range}
children:
  - role: slider-interface
`); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name      string
		finder    Finder
		fractions []float64
	}{
		{"no match", ByText("none"), []float64{0.5}},
		{"not a slider", ByRole(node.RoleCoordinator), []float64{0.5}},
		{"no bounds", ByRole(node.RoleSliderInterface), []float64{0.5}},
	}
	for _, tt := range tests {
		if err := tester.DragSlider(tt.finder, tt.fractions...); err == nil {
			t.Errorf("%s: expected an error", tt.name)
		}
	}

	s := input.SliderOf(tester.Find(ByRole(node.RoleSliderInterface)).First())
	s.SetTrackBounds(0, 100)
	if err := tester.DragSlider(ByRole(node.RoleSliderInterface)); err == nil {
		t.Error("no fractions: expected an error")
	}
	if err := tester.DragSlider(ByRole(node.RoleSliderInterface), 0.2, 0.9); err != nil {
		t.Fatalf("DragSlider: %v", err)
	}
	if got := s.Value(); got != "90" {
		t.Errorf("Value = %q, want %q", got, "90")
	}
}
