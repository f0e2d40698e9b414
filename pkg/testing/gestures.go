package testing

import (
	"fmt"

	"github.com/rivo/uniseg"

	"github.com/go-drift/controls/pkg/input"
	"github.com/go-drift/controls/pkg/node"
)

// nextPointerID is incremented for each new pointer to avoid collisions.
var nextPointerID int64

func allocPointerID() int64 {
	nextPointerID++
	return nextPointerID
}

// Focus moves primary focus to the first node matched by finder.
func (t *ControlTester) Focus(finder Finder) error {
	result := t.Find(finder)
	if !result.Exists() {
		return fmt.Errorf("Focus: finder matched no nodes: %s", finder.Description())
	}
	if !t.host.Focus().Focus(result.First()) {
		return fmt.Errorf("Focus: node refused focus: %s", result.First())
	}
	return nil
}

// Blur clears primary focus and settles deferred work.
func (t *ControlTester) Blur() error {
	t.host.Focus().Blur()
	return t.PumpAndSettle()
}

// Press sends a named key to the focused node and reports whether it was handled.
func (t *ControlTester) Press(key node.Key) bool {
	return t.host.DispatchKey(key, "", false)
}

// PressShift sends a named key with Shift held.
func (t *ControlTester) PressShift(key node.Key) bool {
	return t.host.DispatchKey(key, "", true)
}

// Type sends one keydown per grapheme cluster of text.
func (t *ControlTester) Type(text string) {
	g := uniseg.NewGraphemes(text)
	for g.Next() {
		s := g.Str()
		t.host.DispatchKey(node.Key(s), s, false)
	}
}

// Tap focuses and clicks the first node matched by finder.
func (t *ControlTester) Tap(finder Finder) error {
	result := t.Find(finder)
	if !result.Exists() {
		return fmt.Errorf("Tap: finder matched no nodes: %s", finder.Description())
	}
	t.host.Click(result.First())
	return nil
}

// DragSlider drags the first slider matched by finder through the given
// track fractions: pointer down at the first, a move to each following
// fraction, and pointer up at the last. The slider needs track bounds.
func (t *ControlTester) DragSlider(finder Finder, fractions ...float64) error {
	result := t.Find(finder)
	if !result.Exists() {
		return fmt.Errorf("DragSlider: finder matched no nodes: %s", finder.Description())
	}
	n := result.First()
	s := input.SliderOf(n)
	if s == nil {
		return fmt.Errorf("DragSlider: node is not a slider: %s", n)
	}
	left, width := s.TrackBounds()
	if width <= 0 {
		return fmt.Errorf("DragSlider: slider has no track bounds: %s", n)
	}
	if len(fractions) == 0 {
		return fmt.Errorf("DragSlider: no positions given")
	}
	id := allocPointerID()
	x := func(f float64) float64 { return left + f*width }
	t.host.PointerDown(n, id, x(fractions[0]), 0)
	for _, f := range fractions[1:] {
		// Moves go to the document, as if the pointer left the slider.
		t.host.PointerMove(nil, id, x(f), 0)
	}
	t.host.PointerUp(nil, id, x(fractions[len(fractions)-1]), 0)
	return nil
}
