package input

import (
	"slices"
	"strings"

	"github.com/spf13/cast"
	"go.uber.org/zap"

	"github.com/go-drift/controls/internal/logging"
	"github.com/go-drift/controls/pkg/errors"
	"github.com/go-drift/controls/pkg/node"
)

// Coordinator attributes.
const (
	AttrValue    = "value"
	AttrDisabled = "disabled"
	AttrReadonly = "readonly"
	AttrRequired = "required"
	AttrType     = "type"
	AttrName     = "name"
	AttrForm     = "form"
	AttrInvalid  = "invalid"
)

// Kind is the kind of value a coordinator edits.
type Kind int

const (
	KindText Kind = iota
	KindSlider
)

func (k Kind) String() string {
	if k == KindSlider {
		return "slider"
	}
	return "text"
}

// ParseKind maps a type attribute to a kind. "range" is an alias of
// "slider"; anything unrecognized is text.
func ParseKind(s string) Kind {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "slider", "range":
		return KindSlider
	default:
		return KindText
	}
}

// Coordinator is the behavior of a coordinator node and the canonical owner
// of its value and flags.
type Coordinator struct {
	node    *node.Node
	value   string
	initial string
	state   State
	kind    Kind

	interfaces []Interface
	syncing    bool
	cancel     func()
}

// NewCoordinator binds a coordinator to n and returns it.
func NewCoordinator(n *node.Node) *Coordinator {
	c := &Coordinator{node: n}
	c.readAttrs()
	c.initial = c.value
	n.SetBehavior(c)
	return c
}

// CoordinatorOf returns the coordinator bound to n, or nil.
func CoordinatorOf(n *node.Node) *Coordinator {
	if n == nil {
		return nil
	}
	c, _ := n.Behavior().(*Coordinator)
	return c
}

// Node returns the coordinator node.
func (c *Coordinator) Node() *node.Node {
	return c.node
}

// Attached implements node.Behavior. Interfaces below attach after it and
// register themselves.
func (c *Coordinator) Attached() {
	c.readAttrs()
	c.cancel = c.node.Observe(c.onMutation)
}

// Detached implements node.Behavior.
func (c *Coordinator) Detached() {
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
}

func (c *Coordinator) readAttrs() {
	c.value = c.node.AttrOr(AttrValue, "")
	c.state = State{
		Disabled: c.node.HasAttr(AttrDisabled),
		Readonly: c.node.HasAttr(AttrReadonly),
		Required: c.node.HasAttr(AttrRequired),
	}
	c.kind = ParseKind(c.node.AttrOr(AttrType, ""))
}

// Value returns the canonical value.
func (c *Coordinator) Value() string {
	return c.value
}

// State returns the canonical flags.
func (c *Coordinator) State() State {
	return c.state
}

// Kind returns the value kind set by the type attribute.
func (c *Coordinator) Kind() Kind {
	return c.kind
}

// Name returns the name the value is submitted under.
func (c *Coordinator) Name() string {
	return c.node.AttrOr(AttrName, "")
}

// Interfaces returns the registered interfaces in registration order.
func (c *Coordinator) Interfaces() []Interface {
	return slices.Clone(c.interfaces)
}

// SetValue normalizes v to a string, stores it, and pushes it to every
// interface. Writing the current value does nothing. Values that cannot be
// represented as a string are reported and ignored.
func (c *Coordinator) SetValue(v any) {
	s, err := cast.ToStringE(v)
	if err != nil {
		errors.Report(&errors.ControlError{
			Op:   "input.SetValue",
			Kind: errors.KindAttribute,
			Node: c.node.String(),
			Err:  err,
		})
		return
	}
	if s == c.value {
		return
	}
	c.value = s
	c.reflectValue()
	c.pushValue()
}

// SetDisabled sets the disabled flag and pushes it down.
func (c *Coordinator) SetDisabled(on bool) {
	c.setState(func(s *State) { s.Disabled = on }, AttrDisabled, on)
}

// SetReadonly sets the readonly flag and pushes it down.
func (c *Coordinator) SetReadonly(on bool) {
	c.setState(func(s *State) { s.Readonly = on }, AttrReadonly, on)
}

// SetRequired sets the required flag and pushes it down.
func (c *Coordinator) SetRequired(on bool) {
	c.setState(func(s *State) { s.Required = on }, AttrRequired, on)
}

func (c *Coordinator) setState(apply func(*State), attr string, on bool) {
	next := c.state
	apply(&next)
	if next == c.state {
		return
	}
	c.state = next
	c.sync(func() { c.node.SetFlag(attr, on) })
	logger().Debug("state", zap.String("node", c.node.String()), zap.String("flag", attr), zap.Bool("on", on))
	for _, i := range c.Interfaces() {
		i.SyncState(c.state)
	}
}

// Valid reports whether the canonical value satisfies the required flag and
// every interface's local validation.
func (c *Coordinator) Valid() bool {
	if c.state.Required && c.value == "" {
		return false
	}
	for _, i := range c.interfaces {
		if v, ok := i.(Validator); ok && !v.Valid() {
			return false
		}
	}
	return true
}

// Reset restores the value the coordinator was created with.
func (c *Coordinator) Reset() {
	c.SetValue(c.initial)
}

// Form returns the form the coordinator belongs to: the form named by its
// form attribute, or else the nearest enclosing form.
func (c *Coordinator) Form() *Form {
	if id, ok := c.node.Attr(AttrForm); ok {
		return FormOf(findForm(c.node.Root(), id))
	}
	for cur := c.node.Parent(); cur != nil; cur = cur.Parent() {
		if cur.Role() == node.RoleForm {
			return FormOf(cur)
		}
	}
	return nil
}

// Register implements Registrar. The interface receives the current state
// and value before Register returns.
func (c *Coordinator) Register(i Interface) Reporter {
	if !slices.Contains(c.interfaces, i) {
		c.interfaces = append(c.interfaces, i)
	}
	i.SyncState(c.state)
	i.SyncValue(c.value)
	return &reporter{c: c, i: i}
}

// Unregister implements Registrar.
func (c *Coordinator) Unregister(i Interface) {
	if idx := slices.Index(c.interfaces, i); idx >= 0 {
		c.interfaces = slices.Delete(c.interfaces, idx, idx+1)
	}
}

func (c *Coordinator) registered(i Interface) bool {
	return slices.Contains(c.interfaces, i)
}

func (c *Coordinator) handleChange(value string) {
	if !c.state.Editable() {
		logger().Debug("change ignored", zap.String("node", c.node.String()),
			zap.Bool("disabled", c.state.Disabled), zap.Bool("readonly", c.state.Readonly))
		return
	}
	if value == c.value {
		return
	}
	c.value = value
	c.reflectValue()
	c.pushValue()
	c.emit(node.EventInput)
}

func (c *Coordinator) handleFocus() {
	c.emit(node.EventFocus)
}

func (c *Coordinator) handleBlur() {
	c.emit(node.EventChange)
	c.emit(node.EventBlur)
}

func (c *Coordinator) emit(t node.EventType) {
	c.node.Dispatch(&node.Event{Type: t, Bubbles: true, Value: c.value})
}

func (c *Coordinator) pushValue() {
	for _, i := range c.Interfaces() {
		if i.Value() != c.value {
			i.SyncValue(c.value)
		}
	}
}

func (c *Coordinator) reflectValue() {
	c.sync(func() { c.node.SetAttr(AttrValue, c.value) })
}

func (c *Coordinator) sync(fn func()) {
	c.syncing = true
	defer func() { c.syncing = false }()
	fn()
}

// onMutation routes external attribute writes on the coordinator node back
// into the setters.
func (c *Coordinator) onMutation(m node.Mutation) {
	if c.syncing || m.Kind != node.MutationAttribute || m.Target != c.node {
		return
	}
	switch m.Name {
	case AttrValue:
		c.SetValue(c.node.AttrOr(AttrValue, ""))
	case AttrDisabled:
		c.SetDisabled(c.node.HasAttr(AttrDisabled))
	case AttrReadonly:
		c.SetReadonly(c.node.HasAttr(AttrReadonly))
	case AttrRequired:
		c.SetRequired(c.node.HasAttr(AttrRequired))
	case AttrType:
		c.kind = ParseKind(c.node.AttrOr(AttrType, ""))
	}
}

// reporter is the Reporter handed to one registered interface. It goes
// inert once the interface unregisters.
type reporter struct {
	c *Coordinator
	i Interface
}

func (r *reporter) ReportChange(value string) {
	if r.c.registered(r.i) {
		r.c.handleChange(value)
	}
}

func (r *reporter) ReportFocus() {
	if r.c.registered(r.i) {
		r.c.handleFocus()
	}
}

func (r *reporter) ReportBlur() {
	if r.c.registered(r.i) {
		r.c.handleBlur()
	}
}

func logger() *zap.Logger {
	return logging.Named("input")
}
