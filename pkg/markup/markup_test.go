package markup

import (
	"strings"
	"testing"

	"github.com/go-drift/controls/pkg/errors"
	"github.com/go-drift/controls/pkg/host"
	"github.com/go-drift/controls/pkg/input"
	"github.com/go-drift/controls/pkg/node"
	"github.com/go-drift/controls/pkg/selection"
)

const fruit = `
role: select
attrs: {placeholder: Pick one}
children:
  - role: trigger
  - role: group
    children:
      - {role: option, text: Apple, attrs: {value: apple}}
      - {role: option, text: Pear, attrs: {disabled: true}}
`

func TestParseSingleAndList(t *testing.T) {
	tests := []struct {
		name  string
		src   string
		roots []node.Role
	}{
		{"single element", fruit, []node.Role{node.RoleSelect}},
		{"list", "- role: container\n- role: form\n", []node.Role{node.RoleContainer, node.RoleForm}},
		{"empty", "", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nodes, err := Parse([]byte(tt.src))
			if err != nil {
				t.Fatalf("Parse: %v", err)
			}
			if len(nodes) != len(tt.roots) {
				t.Fatalf("got %d roots, want %d", len(nodes), len(tt.roots))
			}
			for i, role := range tt.roots {
				if nodes[i].Role() != role {
					t.Errorf("root %d role = %v, want %v", i, nodes[i].Role(), role)
				}
				if nodes[i].Attached() {
					t.Errorf("root %d should be detached", i)
				}
			}
		})
	}
}

func TestParseBuildsTree(t *testing.T) {
	nodes, err := Parse([]byte(fruit))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	sel := nodes[0]
	if got := sel.AttrOr("placeholder", ""); got != "Pick one" {
		t.Errorf("placeholder = %q", got)
	}
	options := sel.FirstChild(node.RoleGroup).ChildrenOf(node.RoleOption)
	if len(options) != 2 {
		t.Fatalf("got %d options, want 2", len(options))
	}
	if options[0].Text() != "Apple" || options[0].AttrOr("value", "") != "apple" {
		t.Errorf("first option = %v value=%q", options[0], options[0].AttrOr("value", ""))
	}
	if v, ok := options[1].Attr("disabled"); !ok || v != "" {
		t.Errorf("disabled = %q, %v; want a presence-only flag", v, ok)
	}
}

func TestAttributeConversion(t *testing.T) {
	src := `
role: coordinator
attrs:
  value: 42
  step: 0.5
  required: true
  readonly: false
  disabled: ~
  name: age
`
	nodes, err := Parse([]byte(src))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	n := nodes[0]
	tests := []struct {
		attr    string
		want    string
		present bool
	}{
		{"value", "42", true},
		{"step", "0.5", true},
		{"required", "", true},
		{"readonly", "", false},
		{"disabled", "", true},
		{"name", "age", true},
	}
	for _, tt := range tests {
		v, ok := n.Attr(tt.attr)
		if ok != tt.present || v != tt.want {
			t.Errorf("%s = %q, %v; want %q, %v", tt.attr, v, ok, tt.want, tt.present)
		}
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		kind     errors.ErrorKind
		sentinel error
		where    string
	}{
		{
			name:     "unknown role",
			src:      "role: container\nchildren:\n  - role: spinner\n",
			kind:     errors.KindMarkup,
			sentinel: errors.ErrUnknownRole,
			where:    "line 3",
		},
		{
			name:     "illegal nesting",
			src:      "role: select\nchildren:\n  - role: group\n    children:\n      - role: trigger\n",
			kind:     errors.KindStructure,
			sentinel: errors.ErrIllegalChild,
			where:    "line 5",
		},
		{
			name: "not an element",
			src:  "just a string\n",
			kind: errors.KindMarkup,
		},
		{
			name: "malformed yaml",
			src:  "role: [select\n",
			kind: errors.KindMarkup,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.src))
			var ce *errors.ControlError
			if !errors.As(err, &ce) {
				t.Fatalf("err = %v, want *ControlError", err)
			}
			if ce.Kind != tt.kind {
				t.Errorf("Kind = %v, want %v", ce.Kind, tt.kind)
			}
			if tt.sentinel != nil && !errors.Is(err, tt.sentinel) {
				t.Errorf("err = %v, want it to wrap %v", err, tt.sentinel)
			}
			if !strings.Contains(ce.Node, tt.where) {
				t.Errorf("Node = %q, want it to contain %q", ce.Node, tt.where)
			}
		})
	}
}

func TestBindByRole(t *testing.T) {
	src := `
role: form
children:
  - role: select
    children:
      - role: trigger
      - role: group
  - role: coordinator
    children:
      - role: text-interface
  - role: coordinator
    attrs: {type: range}
    children:
      - role: slider-interface
`
	nodes, err := Load([]byte(src))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	form := nodes[0]
	if input.FormOf(form) == nil {
		t.Error("form should be bound")
	}
	if selection.Of(form.FirstChild(node.RoleSelect)) == nil {
		t.Error("select should be bound")
	}
	coordinators := form.ChildrenOf(node.RoleCoordinator)
	for _, c := range coordinators {
		if input.CoordinatorOf(c) == nil {
			t.Errorf("%v should be bound", c)
		}
	}
	if input.TextOf(coordinators[0].FirstChild(node.RoleTextInterface)) == nil {
		t.Error("text interface should be bound")
	}
	if input.SliderOf(coordinators[1].FirstChild(node.RoleSliderInterface)) == nil {
		t.Error("slider interface should be bound")
	}
}

func TestBindKeepsExistingBehavior(t *testing.T) {
	n := node.New(node.RoleSelect)
	g := selection.New(n)
	Bind(n)
	if selection.Of(n) != g {
		t.Error("Bind replaced an existing behavior")
	}
}

func TestMountInitializesControls(t *testing.T) {
	h := host.New()
	nodes, err := Mount(h, []byte(fruit))
	if err != nil {
		t.Fatalf("Mount: %v", err)
	}
	sel := nodes[0]
	if !sel.Attached() {
		t.Fatal("mounted tree should be attached")
	}
	if got := sel.FirstChild(node.RoleTrigger).Text(); got != "Pick one" {
		t.Errorf("trigger label = %q, want the placeholder", got)
	}
}

func TestMountRejectsIllegalRoot(t *testing.T) {
	_, err := Mount(host.New(), []byte("role: option\n"))
	if !errors.Is(err, errors.ErrIllegalChild) {
		t.Errorf("err = %v, want ErrIllegalChild", err)
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	nodes, err := Parse([]byte(fruit))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	data, err := Marshal(nodes[0])
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if !strings.Contains(string(data), "disabled: true") {
		t.Errorf("flags should encode as true:\n%s", data)
	}

	again, err := Parse(data)
	if err != nil {
		t.Fatalf("re-Parse: %v", err)
	}
	second, err := Marshal(again[0])
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if string(second) != string(data) {
		t.Errorf("round trip changed the document:\n%s\nvs\n%s", data, second)
	}
}
