package input

import (
	"math"
	"strconv"
	"strings"

	"github.com/spf13/cast"
	"go.uber.org/zap"

	"github.com/go-drift/controls/pkg/errors"
	"github.com/go-drift/controls/pkg/host"
	"github.com/go-drift/controls/pkg/node"
)

// Slider interface attributes.
const (
	AttrMin  = "min"
	AttrMax  = "max"
	AttrStep = "step"
	// AttrOffset is reflected on the thumb as a percentage of the track.
	AttrOffset = "offset"
)

const (
	defaultMin  = 0
	defaultMax  = 100
	defaultStep = 1
	// pageSteps is how many steps PageUp and PageDown move.
	pageSteps = 10
)

// layoutKey identifies the deferred thumb layout pass of one slider.
type layoutKey struct{ s *Slider }

// Slider edits a numeric coordinator value along a track.
type Slider struct {
	conn connection
	node *node.Node
	host *host.Host

	min, max, step float64
	value          float64
	text           string
	state          State
	invalid        bool

	interacting bool
	pointerID   int64
	trackLeft   float64
	trackWidth  float64

	cleanup []func()
	session []func()
}

// NewSlider binds a slider interface to n and returns it.
func NewSlider(n *node.Node) *Slider {
	s := &Slider{node: n, min: defaultMin, max: defaultMax, step: defaultStep}
	n.SetBehavior(s)
	return s
}

// SliderOf returns the slider bound to n, or nil.
func SliderOf(n *node.Node) *Slider {
	if n == nil {
		return nil
	}
	s, _ := n.Behavior().(*Slider)
	return s
}

// Node implements Interface.
func (s *Slider) Node() *node.Node { return s.node }

// Value implements Interface.
func (s *Slider) Value() string { return s.text }

// Number returns the local numeric value.
func (s *Slider) Number() float64 { return s.value }

// Range returns min, max and step.
func (s *Slider) Range() (min, max, step float64) { return s.min, s.max, s.step }

// Interacting reports whether a pointer session is in progress.
func (s *Slider) Interacting() bool { return s.interacting }

// Invalid reports whether the canonical value could not be shown as is.
func (s *Slider) Invalid() bool { return s.invalid }

// Valid implements Validator.
func (s *Slider) Valid() bool { return !s.invalid }

// Fraction returns the thumb position along the track in [0, 1].
func (s *Slider) Fraction() float64 {
	return Fraction(s.value, s.min, s.max)
}

// Track returns the track decoration node.
func (s *Slider) Track() *node.Node { return s.node.FirstChild(node.RoleTrack) }

// Thumb returns the thumb decoration node.
func (s *Slider) Thumb() *node.Node { return s.node.FirstChild(node.RoleThumb) }

// Attached implements node.Behavior. Missing track and thumb leaves are
// created.
func (s *Slider) Attached() {
	s.host = host.Of(s.node)
	s.readRange()
	if s.Track() == nil {
		_ = s.node.Append(node.New(node.RoleTrack))
	}
	if s.Thumb() == nil {
		_ = s.node.Append(node.New(node.RoleThumb))
	}
	s.cleanup = append(s.cleanup,
		s.node.AddListener(node.EventKeyDown, s.onKeyDown),
		s.node.AddListener(node.EventPointerDown, s.onPointerDown),
		s.node.AddListener(node.EventFocusIn, s.onFocusIn),
		s.node.AddListener(node.EventFocusOut, s.onFocusOut),
		s.node.Observe(s.onMutation),
	)
	s.conn.connect(s)
}

// Detached implements node.Behavior. A pointer session in progress ends
// without a commit.
func (s *Slider) Detached() {
	s.endSession()
	for _, fn := range s.cleanup {
		fn()
	}
	s.cleanup = nil
	s.conn.disconnect(s)
	if s.host != nil {
		s.host.Scheduler().Cancel(layoutKey{s})
	}
	s.host = nil
}

// SetTrackBounds supplies the track's horizontal extent in host coordinates.
func (s *Slider) SetTrackBounds(left, width float64) {
	s.trackLeft, s.trackWidth = left, width
	s.deferLayout()
}

// TrackBounds returns the last bounds supplied by the host.
func (s *Slider) TrackBounds() (left, width float64) {
	return s.trackLeft, s.trackWidth
}

// SyncValue implements Interface. An empty value shows the midpoint. A value
// that does not parse, or does not sit on a step inside the range, is shown
// at its nearest valid position and marks the slider invalid.
func (s *Slider) SyncValue(value string) {
	s.applyCanonical(value)
	s.updateThumb()
	s.deferLayout()
}

// SyncState implements Interface.
func (s *Slider) SyncState(state State) {
	s.state = state
	if !state.Editable() && s.interacting {
		s.endSession()
	}
}

func (s *Slider) applyCanonical(value string) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		s.setLocal(Snap(s.min+(s.max-s.min)/2, s.min, s.max, s.step), false)
		return
	}
	f, err := cast.ToFloat64E(trimmed)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		s.setLocal(Snap(s.min+(s.max-s.min)/2, s.min, s.max, s.step), true)
		return
	}
	snapped := Snap(f, s.min, s.max, s.step)
	if math.Abs(snapped-f) > tolerance(s.step) {
		s.setLocal(snapped, true)
		return
	}
	s.value = snapped
	s.text = value
	s.setInvalid(false)
	s.reflectValue()
}

func (s *Slider) setLocal(v float64, invalid bool) {
	s.value = v
	s.text = formatNumber(v, decimals(s.min, s.step))
	s.setInvalid(invalid)
	s.reflectValue()
}

func (s *Slider) setInvalid(on bool) {
	s.invalid = on
	s.node.SetFlag(AttrInvalid, on)
}

func (s *Slider) reflectValue() {
	s.node.SetAttr(AttrValue, s.text)
}

// commitLocal moves the local value to v and reports it when it changed.
func (s *Slider) commitLocal(v float64) {
	v = Snap(v, s.min, s.max, s.step)
	if v == s.value && !s.invalid {
		return
	}
	s.setLocal(v, false)
	s.updateThumb()
	s.conn.report().ReportChange(s.text)
}

func (s *Slider) onKeyDown(e *node.Event) {
	if e.Target != s.node || !s.state.Editable() {
		return
	}
	v := s.value
	switch e.Key {
	case node.KeyArrowRight, node.KeyArrowUp:
		v += s.step
	case node.KeyArrowLeft, node.KeyArrowDown:
		v -= s.step
	case node.KeyPageUp:
		v += s.step * pageSteps
	case node.KeyPageDown:
		v -= s.step * pageSteps
	case node.KeyHome:
		v = s.min
	case node.KeyEnd:
		v = s.max
	default:
		return
	}
	s.commitLocal(v)
	e.PreventDefault()
}

func (s *Slider) onFocusIn(e *node.Event) {
	if e.Target == s.node {
		s.conn.report().ReportFocus()
	}
}

func (s *Slider) onFocusOut(e *node.Event) {
	if e.Target == s.node && !s.interacting {
		s.conn.report().ReportBlur()
	}
}

// onPointerDown starts a session. Until it ends, moves anywhere in the
// document keep updating the value.
func (s *Slider) onPointerDown(e *node.Event) {
	if !s.state.Editable() || s.interacting {
		return
	}
	s.interacting = true
	s.pointerID = e.PointerID
	root := s.node.Root()
	s.session = append(s.session,
		root.AddListener(node.EventPointerMove, s.onPointerMove),
		root.AddListener(node.EventPointerUp, s.onPointerEnd),
		root.AddListener(node.EventPointerCancel, s.onPointerEnd),
	)
	logger().Debug("slider session start", zap.String("node", s.node.String()), zap.Int64("pointer", e.PointerID))
	s.pointTo(e.X)
	e.PreventDefault()
}

func (s *Slider) onPointerMove(e *node.Event) {
	if e.PointerID == s.pointerID {
		s.pointTo(e.X)
	}
}

func (s *Slider) onPointerEnd(e *node.Event) {
	if e.PointerID != s.pointerID || !s.interacting {
		return
	}
	s.endSession()
	logger().Debug("slider session end", zap.String("value", s.text))
	s.conn.report().ReportBlur()
}

func (s *Slider) endSession() {
	for _, fn := range s.session {
		fn()
	}
	s.session = nil
	s.interacting = false
}

func (s *Slider) pointTo(x float64) {
	if s.trackWidth <= 0 {
		return
	}
	s.commitLocal(FromFraction((x-s.trackLeft)/s.trackWidth, s.min, s.max, s.step))
}

func (s *Slider) deferLayout() {
	if s.host != nil {
		s.host.Scheduler().Defer(layoutKey{s}, s.updateThumb)
	}
}

// updateThumb reflects the thumb position as a percentage.
func (s *Slider) updateThumb() {
	if thumb := s.Thumb(); thumb != nil {
		thumb.SetAttr(AttrOffset, formatNumber(s.Fraction()*100, 2))
	}
}

func (s *Slider) readRange() {
	s.min = s.floatAttr(AttrMin, defaultMin)
	s.max = s.floatAttr(AttrMax, defaultMax)
	s.step = s.floatAttr(AttrStep, defaultStep)
	if s.max < s.min {
		s.max = s.min
	}
	if s.step <= 0 {
		s.step = defaultStep
	}
}

func (s *Slider) floatAttr(name string, def float64) float64 {
	raw, ok := s.node.Attr(name)
	if !ok || strings.TrimSpace(raw) == "" {
		return def
	}
	v, err := cast.ToFloat64E(strings.TrimSpace(raw))
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		if err == nil {
			err = errors.ErrInvalidValue
		}
		errors.Report(&errors.ControlError{
			Op:   "input.Slider",
			Kind: errors.KindAttribute,
			Node: s.node.String() + " " + name + "=" + raw,
			Err:  err,
		})
		return def
	}
	return v
}

// onMutation re-reads the range when min, max or step change and shows the
// canonical value again under the new range.
func (s *Slider) onMutation(m node.Mutation) {
	if m.Kind != node.MutationAttribute || m.Target != s.node {
		return
	}
	switch m.Name {
	case AttrMin, AttrMax, AttrStep:
		s.readRange()
		canonical := s.text
		if c := CoordinatorOf(s.node.Parent()); c != nil {
			canonical = c.Value()
		}
		s.SyncValue(canonical)
	}
}

// Snap clamps v to [min, max] and moves it to the nearest multiple of step
// offset from min. A snapped value past max steps back down so it stays on
// a step.
func Snap(v, min, max, step float64) float64 {
	if max < min {
		max = min
	}
	if step <= 0 {
		step = defaultStep
	}
	if math.IsNaN(v) {
		v = min
	}
	v = math.Max(min, math.Min(v, max))
	d := decimals(min, step)
	n := math.Round((v - min) / step)
	snapped := roundTo(min+n*step, d)
	if snapped > max {
		snapped = roundTo(min+(n-1)*step, d)
	}
	return math.Max(min, snapped)
}

// FromFraction maps a fraction of the track to a snapped value. The
// fraction is clamped to [0, 1].
func FromFraction(f, min, max, step float64) float64 {
	if math.IsNaN(f) {
		f = 0
	}
	f = math.Max(0, math.Min(f, 1))
	return Snap(min+f*(max-min), min, max, step)
}

// Fraction returns (v-min)/(max-min) clamped to [0, 1], or 0 for an empty
// range.
func Fraction(v, min, max float64) float64 {
	if max <= min {
		return 0
	}
	return math.Max(0, math.Min((v-min)/(max-min), 1))
}

// decimals returns how many fractional digits values on the step grid need.
func decimals(values ...float64) int {
	d := 0
	for _, v := range values {
		s := strconv.FormatFloat(v, 'f', -1, 64)
		if i := strings.IndexByte(s, '.'); i >= 0 {
			d = max(d, len(s)-i-1)
		}
	}
	return d
}

// roundTo rounds v to d fractional digits through its decimal form.
func roundTo(v float64, d int) float64 {
	r, err := strconv.ParseFloat(strconv.FormatFloat(v, 'f', d, 64), 64)
	if err != nil {
		return v
	}
	return r
}

func tolerance(step float64) float64 {
	return step * 1e-9
}

func formatNumber(v float64, d int) string {
	return strconv.FormatFloat(roundTo(v, d), 'f', -1, 64)
}
