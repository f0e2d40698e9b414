package tui

import (
	"math"
	"strings"

	"github.com/rivo/uniseg"

	"github.com/go-drift/controls/pkg/input"
	"github.com/go-drift/controls/pkg/node"
	"github.com/go-drift/controls/pkg/selection"
)

// Row is one rendered line and the node it stands for. Slider rows carry
// the columns of their track so mouse input can be mapped onto it.
type Row struct {
	Node       *node.Node
	Y          int
	TrackStart int
	TrackWidth int
}

// ContentColumn is the first column after the focus marker and label.
const ContentColumn = 2 + LabelWidth + 1

type renderer struct {
	m     Model
	lines []string
	rows  []Row
}

func (m Model) render() ([]string, []Row) {
	r := &renderer{m: m}
	for _, child := range m.host.Root().Children() {
		r.walk(child)
	}
	return r.lines, r.rows
}

func (r *renderer) add(n *node.Node, line string) int {
	r.rows = append(r.rows, Row{Node: n, Y: len(r.lines)})
	r.lines = append(r.lines, line)
	return len(r.rows) - 1
}

func (r *renderer) walk(n *node.Node) {
	switch n.Role() {
	case node.RoleSelect:
		r.selectRows(n)
	case node.RoleCoordinator:
		r.coordinatorRows(n)
	case node.RoleForm, node.RoleContainer:
		if n.Text() != "" {
			r.add(n, r.m.styles.Heading.Render(n.Text()))
		}
		for _, child := range n.Children() {
			r.walk(child)
		}
	}
}

// prefix renders the focus marker and label columns.
func (r *renderer) prefix(control *node.Node, label string) string {
	marker := "  "
	if r.m.host.Focus().Within(control) {
		marker = r.m.styles.FocusMarker.Render("›") + " "
	}
	return marker + r.m.styles.Label.Render(truncate(label, LabelWidth-1)) + " "
}

func (r *renderer) selectRows(n *node.Node) {
	g := selection.Of(n)
	trigger := n.FirstChild(node.RoleTrigger)
	if g == nil || trigger == nil {
		return
	}
	s := r.m.styles

	arrow := "▾"
	if g.IsOpen() {
		arrow = "▴"
	}
	box := "[ " + trigger.Text() + " " + arrow + " ]"
	switch {
	case g.Disabled():
		box = s.Disabled.Render(box)
	case r.m.host.Focus().Within(trigger):
		box = s.FocusedBox.Render(box)
	case g.Selected() == nil:
		box = s.Placeholder.Render(box)
	default:
		box = s.Control.Render(box)
	}
	r.add(trigger, r.prefix(n, label(n))+box)

	if !g.IsOpen() {
		return
	}
	indent := strings.Repeat(" ", ContentColumn)
	focused, selected := g.Focused(), g.Selected()
	for _, o := range g.Options() {
		marker := "  "
		style := s.Option
		if o == focused {
			marker = "› "
			style = s.ActiveOption
		}
		if o.HasAttr(selection.AttrDisabled) {
			style = s.Disabled
		}
		text := o.Text()
		if o == selected {
			text += " ✓"
		}
		r.add(o, indent+marker+style.Render(text))
	}
}

func (r *renderer) coordinatorRows(n *node.Node) {
	c := input.CoordinatorOf(n)
	if c == nil {
		return
	}
	for _, child := range n.Children() {
		switch child.Role() {
		case node.RoleTextInterface:
			if t := input.TextOf(child); t != nil {
				r.add(child, r.prefix(n, label(n))+r.textField(c, t))
			}
		case node.RoleSliderInterface:
			if sl := input.SliderOf(child); sl != nil {
				r.sliderRow(n, c, sl)
			}
		}
	}
}

func (r *renderer) textField(c *input.Coordinator, t *input.Text) string {
	s := r.m.styles
	focused := r.m.host.Focus().Primary() == t.Node()
	value := t.Value()

	var body string
	switch {
	case value == "" && !focused:
		body = s.Placeholder.Render(t.Placeholder())
	case focused:
		body = withCaret(value, t.Caret(), s)
	default:
		body = s.Control.Render(value)
	}
	if c.State().Disabled {
		body = s.Disabled.Render(value)
	}
	if t.Invalid() {
		body += " " + s.Invalid.Render("!")
	}
	return body
}

func withCaret(value string, caret int, s Styles) string {
	var b strings.Builder
	i := 0
	done := false
	g := uniseg.NewGraphemes(value)
	for g.Next() {
		if i == caret {
			b.WriteString(s.Caret.Render(g.Str()))
			done = true
		} else {
			b.WriteString(s.Control.Render(g.Str()))
		}
		i++
	}
	if !done {
		b.WriteString(s.Caret.Render(" "))
	}
	return b.String()
}

func (r *renderer) sliderRow(coordinator *node.Node, c *input.Coordinator, sl *input.Slider) {
	s := r.m.styles
	width := r.m.trackWidth()
	thumb := int(math.Round(sl.Fraction() * float64(width-1)))

	var track strings.Builder
	for i := 0; i < width; i++ {
		if i == thumb {
			track.WriteString(s.Thumb.Render("●"))
		} else {
			track.WriteString(s.Track.Render("─"))
		}
	}
	value := sl.Value()
	switch {
	case c.State().Disabled:
		value = s.Disabled.Render(value)
	case sl.Invalid():
		value = s.Invalid.Render(value + " !")
	default:
		value = s.Control.Render(value)
	}
	line := r.prefix(coordinator, label(coordinator)) + "[" + track.String() + "] " + value
	i := r.add(sl.Node(), line)
	r.rows[i].TrackStart = ContentColumn + 1
	r.rows[i].TrackWidth = width
}

func label(n *node.Node) string {
	if v, ok := n.Attr("label"); ok {
		return v
	}
	return n.AttrOr(input.AttrName, "")
}

// truncate cuts s to at most width terminal cells.
func truncate(s string, width int) string {
	if uniseg.StringWidth(s) <= width {
		return s
	}
	var b strings.Builder
	used := 0
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		w := g.Width()
		if used+w > width-1 {
			break
		}
		b.WriteString(g.Str())
		used += w
	}
	return b.String() + "…"
}
