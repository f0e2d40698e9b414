package input_test

import (
	"slices"
	"testing"

	"github.com/go-drift/controls/pkg/input"
	"github.com/go-drift/controls/pkg/node"
	controlstest "github.com/go-drift/controls/pkg/testing"
)

// fakeInterface records what its coordinator pushes down.
type fakeInterface struct {
	node   *node.Node
	value  string
	states []input.State
}

func (f *fakeInterface) Attached() {}
func (f *fakeInterface) Detached() {}
func (f *fakeInterface) Node() *node.Node { return f.node }
func (f *fakeInterface) Value() string { return f.value }
func (f *fakeInterface) SyncValue(value string) { f.value = value }
func (f *fakeInterface) SyncState(state input.State) { f.states = append(f.states, state) }

func newFake() *fakeInterface {
	return &fakeInterface{node: node.New(node.RoleTextInterface)}
}

const textField = `
role: coordinator
attrs: {name: email}
children:
  - role: text-interface
`

func mountOne(t *testing.T, src string) (*controlstest.ControlTester, *input.Coordinator) {
	t.Helper()
	tester := controlstest.NewControlTesterWithT(t)
	if _, err := tester.MountMarkup(src); err != nil {
		t.Fatal(err)
	}
	c := input.CoordinatorOf(tester.Find(controlstest.ByRole(node.RoleCoordinator)).First())
	if c == nil {
		t.Fatal("coordinator was not bound")
	}
	return tester, c
}

func TestCoordinatorExternalEvents(t *testing.T) {
	tester, c := mountOne(t, textField)
	rec := controlstest.Record(c.Node(), node.EventFocus, node.EventInput, node.EventChange, node.EventBlur)

	if err := tester.Focus(controlstest.ByRole(node.RoleTextInterface)); err != nil {
		t.Fatal(err)
	}
	tester.Type("hi")
	if err := tester.Blur(); err != nil {
		t.Fatal(err)
	}

	wantTypes := []node.EventType{node.EventFocus, node.EventInput, node.EventInput, node.EventChange, node.EventBlur}
	if !slices.Equal(rec.Types(), wantTypes) {
		t.Errorf("events = %v, want %v", rec.Types(), wantTypes)
	}
	if got := rec.Values(node.EventInput); !slices.Equal(got, []string{"h", "hi"}) {
		t.Errorf("input payloads = %v", got)
	}
	if got := rec.Values(node.EventChange); !slices.Equal(got, []string{"hi"}) {
		t.Errorf("change payloads = %v", got)
	}
	if c.Value() != "hi" || c.Node().AttrOr(input.AttrValue, "") != "hi" {
		t.Errorf("canonical = %q, attr = %q", c.Value(), c.Node().AttrOr(input.AttrValue, ""))
	}
}

func TestCoordinatorIgnoresChangesWhenDisabled(t *testing.T) {
	c := input.NewCoordinator(node.New(node.RoleCoordinator))
	fake := newFake()
	rep := c.Register(fake)
	rec := controlstest.Record(c.Node(), node.EventInput)

	c.SetDisabled(true)
	rep.ReportChange("x")
	if c.Value() != "" || rec.Count(node.EventInput) != 0 {
		t.Errorf("disabled coordinator accepted a change: value %q", c.Value())
	}
	if last := fake.states[len(fake.states)-1]; !last.Disabled {
		t.Error("disabled state was not pushed down")
	}

	c.SetDisabled(false)
	c.SetReadonly(true)
	rep.ReportChange("x")
	if c.Value() != "" {
		t.Errorf("readonly coordinator accepted a change: value %q", c.Value())
	}

	c.SetReadonly(false)
	rep.ReportChange("x")
	if c.Value() != "x" || rec.Count(node.EventInput) != 1 {
		t.Errorf("value = %q, inputs = %d", c.Value(), rec.Count(node.EventInput))
	}
}

func TestCoordinatorChangeIsIdempotent(t *testing.T) {
	c := input.NewCoordinator(node.New(node.RoleCoordinator))
	rep := c.Register(newFake())
	rec := controlstest.Record(c.Node(), node.EventInput)
	rep.ReportChange("a")
	rep.ReportChange("a")
	if rec.Count(node.EventInput) != 1 {
		t.Errorf("inputs = %d, want 1", rec.Count(node.EventInput))
	}
}

func TestCoordinatorBlurIsUnconditional(t *testing.T) {
	c := input.NewCoordinator(node.New(node.RoleCoordinator))
	rep := c.Register(newFake())
	rec := controlstest.Record(c.Node(), node.EventChange, node.EventBlur)
	rep.ReportBlur()
	want := []node.EventType{node.EventChange, node.EventBlur}
	if !slices.Equal(rec.Types(), want) {
		t.Errorf("events = %v, want %v", rec.Types(), want)
	}
}

func TestUnregisteredReporterIsInert(t *testing.T) {
	c := input.NewCoordinator(node.New(node.RoleCoordinator))
	fake := newFake()
	rep := c.Register(fake)
	c.Unregister(fake)
	rec := controlstest.Record(c.Node(), node.EventInput, node.EventFocus, node.EventBlur)
	rep.ReportChange("late")
	rep.ReportFocus()
	rep.ReportBlur()
	if c.Value() != "" || len(rec.Events()) != 0 {
		t.Errorf("stale reporter reached the coordinator: value %q, events %v", c.Value(), rec.Types())
	}
}

func TestRegisterPushesCurrentState(t *testing.T) {
	c := input.NewCoordinator(node.New(node.RoleCoordinator,
		node.WithAttr(input.AttrValue, "seed"), node.WithFlag(input.AttrRequired)))
	fake := newFake()
	c.Register(fake)
	if fake.value != "seed" {
		t.Errorf("pushed value = %q, want seed", fake.value)
	}
	if len(fake.states) != 1 || !fake.states[0].Required {
		t.Errorf("pushed states = %+v", fake.states)
	}
}

func TestPushDownConsistency(t *testing.T) {
	_, c := mountOne(t, `
role: coordinator
attrs: {type: range}
children:
  - role: text-interface
  - role: slider-interface
    attrs: {min: 0, max: 100, step: 25}
`)
	if len(c.Interfaces()) != 2 {
		t.Fatalf("registered %d interfaces, want 2", len(c.Interfaces()))
	}
	for _, v := range []string{"0", "25", "50", "75", "100", "50"} {
		c.SetValue(v)
		if c.Value() != v {
			t.Fatalf("canonical = %q, want %q", c.Value(), v)
		}
		for _, i := range c.Interfaces() {
			if i.Value() != v {
				t.Errorf("%s mirrors %q after SetValue(%q)", i.Node().Role(), i.Value(), v)
			}
		}
	}
}

func TestSetValueNormalizes(t *testing.T) {
	c := input.NewCoordinator(node.New(node.RoleCoordinator))
	fake := newFake()
	c.Register(fake)
	tests := []struct {
		in   any
		want string
	}{
		{42, "42"},
		{2.5, "2.5"},
		{true, "true"},
		{[]byte("raw"), "raw"},
		{nil, ""},
	}
	for _, tt := range tests {
		c.SetValue(tt.in)
		if c.Value() != tt.want || fake.value != tt.want {
			t.Errorf("SetValue(%v): canonical %q mirror %q, want %q", tt.in, c.Value(), fake.value, tt.want)
		}
	}
}

func TestSetValueEmitsNothing(t *testing.T) {
	c := input.NewCoordinator(node.New(node.RoleCoordinator))
	rec := controlstest.Record(c.Node(), node.EventInput, node.EventChange)
	c.SetValue("quiet")
	if len(rec.Events()) != 0 {
		t.Errorf("programmatic SetValue emitted %v", rec.Types())
	}
}

func TestAttributesFlowIntoSetters(t *testing.T) {
	tester, c := mountOne(t, textField)
	text := input.TextOf(tester.Find(controlstest.ByRole(node.RoleTextInterface)).First())

	c.Node().SetAttr(input.AttrValue, "from-attr")
	if c.Value() != "from-attr" || text.Value() != "from-attr" {
		t.Errorf("canonical %q mirror %q", c.Value(), text.Value())
	}

	c.Node().SetFlag(input.AttrDisabled, true)
	if !c.State().Disabled {
		t.Error("disabled attribute did not reach the coordinator")
	}
	if err := tester.Focus(controlstest.ByRole(node.RoleTextInterface)); err == nil {
		t.Error("interface under a disabled coordinator should refuse focus")
	}
	text.Input("blocked")
	if c.Value() != "from-attr" {
		t.Errorf("disabled input changed the value to %q", c.Value())
	}

	c.SetRequired(true)
	if !c.Node().HasAttr(input.AttrRequired) {
		t.Error("required flag should be reflected")
	}
}

func TestParseKind(t *testing.T) {
	tests := map[string]input.Kind{
		"":       input.KindText,
		"text":   input.KindText,
		"slider": input.KindSlider,
		"range":  input.KindSlider,
		"RANGE ": input.KindSlider,
		"email":  input.KindText,
	}
	for in, want := range tests {
		if got := input.ParseKind(in); got != want {
			t.Errorf("ParseKind(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestCoordinatorValid(t *testing.T) {
	_, c := mountOne(t, `
role: coordinator
attrs: {required: true}
children:
  - role: text-interface
    attrs: {pattern: "[a-z]+"}
`)
	if c.Valid() {
		t.Error("required and empty should be invalid")
	}
	c.SetValue("abc")
	if !c.Valid() {
		t.Error("matching value should be valid")
	}
	c.SetValue("ABC")
	if c.Valid() {
		t.Error("interface validation should count")
	}
}
