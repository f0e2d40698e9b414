// Package markup builds control trees from YAML documents.
//
// A document is one element or a list of elements:
//
//	role: select
//	attrs: {placeholder: Pick one}
//	children:
//	  - role: trigger
//	  - role: group
//	    children:
//	      - {role: option, text: Apple, attrs: {value: apple}}
//	      - {role: option, text: Pear, attrs: {disabled: true}}
//
// Attribute values may be any scalar. true and null set a presence-only
// attribute, false omits it, anything else is converted to a string.
package markup

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/spf13/cast"
	"gopkg.in/yaml.v3"

	"github.com/go-drift/controls/pkg/errors"
	"github.com/go-drift/controls/pkg/host"
	"github.com/go-drift/controls/pkg/input"
	"github.com/go-drift/controls/pkg/node"
	"github.com/go-drift/controls/pkg/selection"
)

// Element is the YAML shape of a node.
type Element struct {
	Role     string         `yaml:"role"`
	Text     string         `yaml:"text,omitempty"`
	Attrs    map[string]any `yaml:"attrs,omitempty"`
	Children []Element      `yaml:"children,omitempty"`

	// Line is the source line the element starts on, zero when built in code.
	Line int `yaml:"-"`
}

// UnmarshalYAML records the source line of each element.
func (e *Element) UnmarshalYAML(value *yaml.Node) error {
	type plain Element
	if err := value.Decode((*plain)(e)); err != nil {
		return err
	}
	e.Line = value.Line
	return nil
}

// Decode reads the elements of a document without building nodes.
func Decode(data []byte) ([]Element, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, markupError("markup.Decode", "", err)
	}
	if doc.Kind == 0 || len(doc.Content) == 0 {
		return nil, nil
	}
	top := doc.Content[0]
	switch top.Kind {
	case yaml.SequenceNode:
		var elems []Element
		if err := top.Decode(&elems); err != nil {
			return nil, markupError("markup.Decode", "", err)
		}
		return elems, nil
	case yaml.MappingNode:
		var elem Element
		if err := top.Decode(&elem); err != nil {
			return nil, markupError("markup.Decode", "", err)
		}
		return []Element{elem}, nil
	default:
		return nil, markupError("markup.Decode", fmt.Sprintf("line %d", top.Line),
			fmt.Errorf("document must be an element or a list of elements"))
	}
}

// Parse builds detached node trees from a document.
func Parse(data []byte) ([]*node.Node, error) {
	elems, err := Decode(data)
	if err != nil {
		return nil, err
	}
	nodes := make([]*node.Node, 0, len(elems))
	for _, el := range elems {
		n, err := Build(el)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, n)
	}
	return nodes, nil
}

// Build creates the detached node tree described by el.
func Build(el Element) (*node.Node, error) {
	role, ok := node.ParseRole(el.Role)
	if !ok {
		return nil, markupError("markup.Build", location(el)+" role="+el.Role, errors.ErrUnknownRole)
	}
	opts := []node.Option{node.WithText(el.Text)}
	names := make([]string, 0, len(el.Attrs))
	for name := range el.Attrs {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		switch v := el.Attrs[name].(type) {
		case nil:
			opts = append(opts, node.WithFlag(name))
		case bool:
			if v {
				opts = append(opts, node.WithFlag(name))
			}
		default:
			s, err := cast.ToStringE(v)
			if err != nil {
				return nil, markupError("markup.Build", location(el)+" attr="+name, err)
			}
			opts = append(opts, node.WithAttr(name, s))
		}
	}
	n := node.New(role, opts...)
	for _, childEl := range el.Children {
		child, err := Build(childEl)
		if err != nil {
			return nil, err
		}
		if err := n.Append(child); err != nil {
			var ce *errors.ControlError
			if errors.As(err, &ce) && childEl.Line > 0 {
				ce.Node = location(childEl) + " " + ce.Node
			}
			return nil, err
		}
	}
	return n, nil
}

// Bind attaches the behavior matching each node's role throughout the tree.
// Nodes that already have a behavior keep it.
func Bind(root *node.Node) {
	root.Walk(func(n *node.Node) bool {
		if n.Behavior() != nil {
			return true
		}
		switch n.Role() {
		case node.RoleSelect:
			selection.New(n)
		case node.RoleCoordinator:
			input.NewCoordinator(n)
		case node.RoleTextInterface:
			input.NewText(n)
		case node.RoleSliderInterface:
			input.NewSlider(n)
		case node.RoleForm:
			input.NewForm(n)
		}
		return true
	})
}

// Load parses a document and binds behaviors to the resulting trees.
func Load(data []byte) ([]*node.Node, error) {
	nodes, err := Parse(data)
	if err != nil {
		return nil, err
	}
	for _, n := range nodes {
		Bind(n)
	}
	return nodes, nil
}

// Mount loads a document and mounts every tree on h.
func Mount(h *host.Host, data []byte) ([]*node.Node, error) {
	nodes, err := Load(data)
	if err != nil {
		return nil, err
	}
	for _, n := range nodes {
		if err := h.Mount(n); err != nil {
			return nil, err
		}
	}
	return nodes, nil
}

// Encode converts a node tree back to its element form. Presence-only
// attributes become true.
func Encode(n *node.Node) Element {
	el := Element{Role: n.Role().String(), Text: n.Text()}
	for _, name := range n.AttrNames() {
		if el.Attrs == nil {
			el.Attrs = make(map[string]any)
		}
		v, _ := n.Attr(name)
		if v == "" {
			el.Attrs[name] = true
		} else {
			el.Attrs[name] = v
		}
	}
	for _, child := range n.Children() {
		el.Children = append(el.Children, Encode(child))
	}
	return el
}

// Marshal writes a node tree as a YAML document.
func Marshal(n *node.Node) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(Encode(n)); err != nil {
		return nil, markupError("markup.Marshal", n.String(), err)
	}
	if err := enc.Close(); err != nil {
		return nil, markupError("markup.Marshal", n.String(), err)
	}
	return buf.Bytes(), nil
}

func location(el Element) string {
	if el.Line == 0 {
		return ""
	}
	return fmt.Sprintf("line %d", el.Line)
}

func markupError(op, where string, err error) *errors.ControlError {
	return &errors.ControlError{Op: op, Kind: errors.KindMarkup, Node: where, Err: err}
}
