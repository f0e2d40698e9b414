package tui

import "github.com/charmbracelet/lipgloss"

// Layout constants
const (
	LabelWidth    = 14 // Label column, excluding the focus marker
	MinTrackWidth = 10
	MaxTrackWidth = 40
	DefaultWidth  = 80 // Used until the terminal reports its size
)

// Color palette
var (
	PrimaryColor   = lipgloss.Color("#7D56F4") // Purple
	HighlightColor = lipgloss.Color("#43BF6D") // Green
	ErrorColor     = lipgloss.Color("#FF5F5F") // Red
	TextColor      = lipgloss.Color("#FFFFFF") // White
	SubtleColor    = lipgloss.Color("#626262") // Gray
)

// Styles holds the lipgloss styles used to draw controls.
type Styles struct {
	Heading      lipgloss.Style
	Label        lipgloss.Style
	FocusMarker  lipgloss.Style
	Control      lipgloss.Style
	FocusedBox   lipgloss.Style
	Placeholder  lipgloss.Style
	Caret        lipgloss.Style
	Option       lipgloss.Style
	ActiveOption lipgloss.Style
	Disabled     lipgloss.Style
	Invalid      lipgloss.Style
	Track        lipgloss.Style
	Thumb        lipgloss.Style
	Help         lipgloss.Style
}

// DefaultStyles returns the standard palette.
func DefaultStyles() Styles {
	return Styles{
		Heading: lipgloss.NewStyle().
			Foreground(PrimaryColor).
			Bold(true),
		Label: lipgloss.NewStyle().
			Foreground(SubtleColor).
			Width(LabelWidth),
		FocusMarker: lipgloss.NewStyle().
			Foreground(HighlightColor).
			Bold(true),
		Control: lipgloss.NewStyle().
			Foreground(TextColor),
		FocusedBox: lipgloss.NewStyle().
			Foreground(HighlightColor).
			Bold(true),
		Placeholder: lipgloss.NewStyle().
			Foreground(SubtleColor).
			Italic(true),
		Caret: lipgloss.NewStyle().
			Reverse(true),
		Option: lipgloss.NewStyle().
			Foreground(TextColor),
		ActiveOption: lipgloss.NewStyle().
			Foreground(HighlightColor).
			Bold(true),
		Disabled: lipgloss.NewStyle().
			Foreground(SubtleColor).
			Faint(true),
		Invalid: lipgloss.NewStyle().
			Foreground(ErrorColor).
			Bold(true),
		Track: lipgloss.NewStyle().
			Foreground(SubtleColor),
		Thumb: lipgloss.NewStyle().
			Foreground(PrimaryColor).
			Bold(true),
		Help: lipgloss.NewStyle().
			Foreground(SubtleColor).
			PaddingTop(1),
	}
}
