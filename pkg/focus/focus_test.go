package focus

import (
	"testing"

	"github.com/go-drift/controls/pkg/node"
)

type fixture struct {
	doc      *node.Node
	manager  *Manager
	first    *node.Node
	second   *node.Node
	option   *node.Node
	disabled *node.Node
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	doc := node.NewDocument()
	sel := node.New(node.RoleSelect)
	first := node.New(node.RoleTrigger, node.WithText("first"))
	group := node.New(node.RoleGroup)
	option := node.New(node.RoleOption, node.WithAttr("tabindex", "-1"))
	must(t, sel.Append(first))
	must(t, sel.Append(group))
	must(t, group.Append(option))

	coord := node.New(node.RoleCoordinator)
	second := node.New(node.RoleTextInterface)
	must(t, coord.Append(second))

	off := node.New(node.RoleCoordinator, node.WithFlag("disabled"))
	disabled := node.New(node.RoleTextInterface)
	must(t, off.Append(disabled))

	for _, n := range []*node.Node{sel, coord, off} {
		must(t, doc.Append(n))
	}
	return &fixture{doc: doc, manager: NewManager(doc), first: first, second: second, option: option, disabled: disabled}
}

func must(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatal(err)
	}
}

func TestCanFocus(t *testing.T) {
	f := newFixture(t)
	tests := []struct {
		name string
		n    *node.Node
		want bool
	}{
		{"trigger", f.first, true},
		{"text interface", f.second, true},
		{"option with tabindex", f.option, true},
		{"under disabled coordinator", f.disabled, false},
		{"document", f.doc, false},
		{"detached", node.New(node.RoleTrigger), false},
		{"nil", nil, false},
	}
	for _, tt := range tests {
		if got := CanFocus(tt.n); got != tt.want {
			t.Errorf("%s: CanFocus = %v, want %v", tt.name, got, tt.want)
		}
	}
	if InTraversal(f.option) {
		t.Error("tabindex=-1 should be skipped in traversal")
	}
}

func TestFocusDispatchesFocusInAndOut(t *testing.T) {
	f := newFixture(t)
	var events []string
	f.doc.AddListener(node.EventFocusIn, func(e *node.Event) {
		events = append(events, "in:"+e.Target.Role().String())
	})
	f.doc.AddListener(node.EventFocusOut, func(e *node.Event) {
		if e.Related != f.second {
			t.Errorf("focusout Related = %v, want text interface", e.Related)
		}
		events = append(events, "out:"+e.Target.Role().String())
	})

	if !f.manager.Focus(f.first) {
		t.Fatal("Focus(trigger) failed")
	}
	f.manager.Focus(f.first)
	f.manager.Focus(f.second)

	want := []string{"in:trigger", "out:trigger", "in:text-interface"}
	if len(events) != len(want) {
		t.Fatalf("events = %v, want %v", events, want)
	}
	for i := range want {
		if events[i] != want[i] {
			t.Errorf("events[%d] = %q, want %q", i, events[i], want[i])
		}
	}
	if f.manager.Focus(f.disabled) {
		t.Error("disabled node should refuse focus")
	}
	if f.manager.Primary() != f.second {
		t.Error("refused focus should leave primary alone")
	}
}

func TestWithin(t *testing.T) {
	f := newFixture(t)
	f.manager.Focus(f.option)
	sel := f.first.Parent()
	if !f.manager.Within(sel) {
		t.Error("option focus should be within the select")
	}
	if f.manager.Within(f.second.Parent()) {
		t.Error("focus should not be within the coordinator")
	}
	f.manager.Blur()
	if f.manager.Within(sel) || f.manager.Primary() != nil {
		t.Error("Blur should clear focus")
	}
}

func TestMoveFocusWraps(t *testing.T) {
	f := newFixture(t)
	if !f.manager.MoveFocus(1) || f.manager.Primary() != f.first {
		t.Fatalf("first MoveFocus landed on %v", f.manager.Primary())
	}
	f.manager.MoveFocus(1)
	if f.manager.Primary() != f.second {
		t.Fatalf("second MoveFocus landed on %v", f.manager.Primary())
	}
	f.manager.MoveFocus(1)
	if f.manager.Primary() != f.first {
		t.Errorf("MoveFocus should wrap to the trigger, got %v", f.manager.Primary())
	}
	f.manager.MoveFocus(-1)
	if f.manager.Primary() != f.second {
		t.Errorf("MoveFocus(-1) should wrap back, got %v", f.manager.Primary())
	}
}

func TestMoveFocusBackwardFromNothing(t *testing.T) {
	f := newFixture(t)
	f.manager.MoveFocus(-1)
	if f.manager.Primary() != f.second {
		t.Errorf("MoveFocus(-1) from no focus = %v, want last traversable", f.manager.Primary())
	}
}

func TestDetachedNodeLosesFocusSilently(t *testing.T) {
	f := newFixture(t)
	f.manager.Focus(f.second)
	outs := 0
	f.doc.AddListener(node.EventFocusOut, func(*node.Event) { outs++ })
	f.second.Parent().Remove()
	if f.manager.Primary() != nil {
		t.Error("removed node should lose focus")
	}
	if outs != 0 {
		t.Errorf("removal dispatched %d focusout events", outs)
	}
}

func TestDisablingFocusedNodeBlurs(t *testing.T) {
	f := newFixture(t)
	f.manager.Focus(f.second)
	outs := 0
	f.doc.AddListener(node.EventFocusOut, func(*node.Event) { outs++ })
	f.second.Parent().SetFlag("disabled", true)
	if f.manager.Primary() != nil {
		t.Error("disabled subtree should lose focus")
	}
	if outs != 1 {
		t.Errorf("focusout count = %d, want 1", outs)
	}
}

func TestFocusMovedDuringFocusOut(t *testing.T) {
	f := newFixture(t)
	f.manager.Focus(f.first)
	f.first.AddListener(node.EventFocusOut, func(*node.Event) {
		f.manager.Focus(f.option)
	})
	gotIn := false
	f.second.AddListener(node.EventFocusIn, func(*node.Event) { gotIn = true })
	f.manager.Focus(f.second)
	if f.manager.Primary() != f.option {
		t.Errorf("primary = %v, want option", f.manager.Primary())
	}
	if gotIn {
		t.Error("superseded move should not deliver focusin")
	}
}
