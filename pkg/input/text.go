package input

import (
	"regexp"
	"strings"

	"github.com/rivo/uniseg"
	"github.com/spf13/cast"

	"github.com/go-drift/controls/pkg/errors"
	"github.com/go-drift/controls/pkg/node"
)

// Text interface attributes.
const (
	AttrPlaceholder = "placeholder"
	AttrMaxLength   = "maxlength"
	AttrMinLength   = "minlength"
	AttrPattern     = "pattern"
)

// Text edits a coordinator value as a line of text. Lengths and the caret
// are measured in grapheme clusters.
type Text struct {
	conn connection
	node *node.Node

	content  string
	caret    int
	upstream string
	state    State
	invalid  bool

	// Constraints parsed from attributes; a negative length means unset.
	maxLength int
	minLength int
	pattern   *regexp.Regexp

	cleanup []func()
}

// NewText binds a text interface to n and returns it.
func NewText(n *node.Node) *Text {
	t := &Text{node: n, maxLength: -1, minLength: -1}
	n.SetBehavior(t)
	return t
}

// TextOf returns the text interface bound to n, or nil.
func TextOf(n *node.Node) *Text {
	if n == nil {
		return nil
	}
	t, _ := n.Behavior().(*Text)
	return t
}

// Node implements Interface.
func (t *Text) Node() *node.Node { return t.node }

// Value implements Interface.
func (t *Text) Value() string { return t.content }

// Caret returns the caret position in grapheme clusters.
func (t *Text) Caret() int { return t.caret }

// Placeholder returns the text shown while the content is empty.
func (t *Text) Placeholder() string { return t.node.AttrOr(AttrPlaceholder, "") }

// Invalid reports whether the last commit failed validation.
func (t *Text) Invalid() bool { return t.invalid }

// Attached implements node.Behavior.
func (t *Text) Attached() {
	t.maxLength = t.lengthAttr(AttrMaxLength)
	t.minLength = t.lengthAttr(AttrMinLength)
	t.pattern = t.compilePattern()
	t.cleanup = append(t.cleanup,
		t.node.AddListener(node.EventKeyDown, t.onKeyDown),
		t.node.AddListener(node.EventFocusIn, t.onFocusIn),
		t.node.AddListener(node.EventFocusOut, t.onFocusOut),
		t.node.Observe(t.onMutation),
	)
	t.conn.connect(t)
}

// Detached implements node.Behavior.
func (t *Text) Detached() {
	for _, fn := range t.cleanup {
		fn()
	}
	t.cleanup = nil
	t.conn.disconnect(t)
}

// SyncValue implements Interface. The pushed value is mirrored as is and
// becomes the new upstream baseline.
func (t *Text) SyncValue(value string) {
	t.upstream = value
	t.setContent(value, graphemeCount(value))
}

// SyncState implements Interface.
func (t *Text) SyncState(state State) {
	t.state = state
}

// Input replaces the whole content, as a paste or an input method commit.
func (t *Text) Input(text string) {
	if !t.state.Editable() {
		return
	}
	t.edit(text, graphemeCount(text))
}

// Valid implements Validator.
func (t *Text) Valid() bool {
	if t.state.Required && t.content == "" {
		return false
	}
	if t.content == "" {
		return true
	}
	if t.minLength >= 0 && graphemeCount(t.content) < t.minLength {
		return false
	}
	if t.pattern != nil && !t.pattern.MatchString(t.content) {
		return false
	}
	return true
}

func (t *Text) onKeyDown(e *node.Event) {
	if e.Target != t.node {
		return
	}
	clusters := graphemes(t.content)
	switch e.Key {
	case node.KeyArrowLeft:
		t.moveCaret(t.caret - 1)
	case node.KeyArrowRight:
		t.moveCaret(t.caret + 1)
	case node.KeyHome:
		t.moveCaret(0)
	case node.KeyEnd:
		t.moveCaret(len(clusters))
	case node.KeyBackspace:
		if !t.state.Editable() || t.caret == 0 {
			return
		}
		t.edit(join(clusters[:t.caret-1], clusters[t.caret:]), t.caret-1)
	case node.KeyDelete:
		if !t.state.Editable() || t.caret >= len(clusters) {
			return
		}
		t.edit(join(clusters[:t.caret], clusters[t.caret+1:]), t.caret)
	default:
		if e.Text == "" || !t.state.Editable() {
			return
		}
		t.edit(join(clusters[:t.caret], []string{e.Text}, clusters[t.caret:]), t.caret+graphemeCount(e.Text))
	}
	e.PreventDefault()
}

func (t *Text) onFocusIn(e *node.Event) {
	if e.Target == t.node {
		t.conn.report().ReportFocus()
	}
}

// onFocusOut is the commit point: validation runs and the blur is reported
// whatever its outcome.
func (t *Text) onFocusOut(e *node.Event) {
	if e.Target != t.node {
		return
	}
	t.invalid = !t.Valid()
	t.node.SetFlag(AttrInvalid, t.invalid)
	t.conn.report().ReportBlur()
}

// edit applies a content change, truncating to maxlength, and reports it
// unless it matches what the coordinator already has.
func (t *Text) edit(content string, caret int) {
	if limit := t.maxLength; limit >= 0 {
		if clusters := graphemes(content); len(clusters) > limit {
			content = strings.Join(clusters[:limit], "")
			caret = limit
		}
	}
	t.setContent(content, caret)
	if t.content == t.upstream {
		return
	}
	t.upstream = t.content
	t.conn.report().ReportChange(t.content)
}

func (t *Text) setContent(content string, caret int) {
	t.content = content
	t.caret = max(0, min(caret, graphemeCount(content)))
	t.node.SetText(content)
}

func (t *Text) moveCaret(pos int) {
	t.caret = max(0, min(pos, graphemeCount(t.content)))
}

// onMutation re-parses a constraint when its attribute changes.
func (t *Text) onMutation(m node.Mutation) {
	if m.Kind != node.MutationAttribute || m.Target != t.node {
		return
	}
	switch m.Name {
	case AttrMaxLength:
		t.maxLength = t.lengthAttr(AttrMaxLength)
	case AttrMinLength:
		t.minLength = t.lengthAttr(AttrMinLength)
	case AttrPattern:
		t.pattern = t.compilePattern()
	}
}

// lengthAttr reads a non-negative integer attribute, or -1 when it is
// absent. Unusable values are reported and read as absent.
func (t *Text) lengthAttr(name string) int {
	raw, ok := t.node.Attr(name)
	if !ok {
		return -1
	}
	v, err := cast.ToIntE(strings.TrimSpace(raw))
	if err != nil || v < 0 {
		t.reportAttr(name, raw, err)
		return -1
	}
	return v
}

// compilePattern compiles the pattern attribute anchored to the whole value.
func (t *Text) compilePattern() *regexp.Regexp {
	raw, ok := t.node.Attr(AttrPattern)
	if !ok || raw == "" {
		return nil
	}
	re, err := regexp.Compile("^(?:" + raw + ")$")
	if err != nil {
		t.reportAttr(AttrPattern, raw, err)
		return nil
	}
	return re
}

func (t *Text) reportAttr(name, raw string, err error) {
	if err == nil {
		err = errors.ErrInvalidValue
	}
	errors.Report(&errors.ControlError{
		Op:   "input.Text",
		Kind: errors.KindAttribute,
		Node: t.node.String() + " " + name + "=" + raw,
		Err:  err,
	})
}

func graphemes(s string) []string {
	var out []string
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		out = append(out, g.Str())
	}
	return out
}

func graphemeCount(s string) int {
	return uniseg.GraphemeClusterCount(s)
}

func join(parts ...[]string) string {
	var b strings.Builder
	for _, p := range parts {
		for _, s := range p {
			b.WriteString(s)
		}
	}
	return b.String()
}
