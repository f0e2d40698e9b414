package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/go-drift/controls/internal/logging"
	"github.com/go-drift/controls/pkg/host"
	"github.com/go-drift/controls/pkg/input"
)

// mousePointer is the pointer id used for the terminal mouse.
const mousePointer int64 = 1

// Model is a bubbletea model that hosts a control tree.
type Model struct {
	host   *host.Host
	keys   KeyMap
	styles Styles
	help   help.Model
	width  int

	// dragging is set between a press on a slider track and the release.
	dragging bool
}

// New creates a model for h with the default bindings and styles.
func New(h *host.Host) Model {
	return Model{
		host:   h,
		keys:   DefaultKeyMap(),
		styles: DefaultStyles(),
		help:   help.New(),
		width:  DefaultWidth,
	}
}

// Host returns the hosted tree.
func (m Model) Host() *host.Host {
	return m.host
}

// Init focuses the first control in Tab order.
func (m Model) Init() tea.Cmd {
	if m.host.Focus().Primary() == nil {
		m.host.Focus().MoveFocus(1)
	}
	m.host.Settle()
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
	case tea.KeyMsg:
		m, cmd = m.updateKey(msg)
	case tea.MouseMsg:
		m = m.updateMouse(msg)
	}
	m.host.Settle()
	return m, cmd
}

func (m Model) updateKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}
	if k, text, shift, ok := m.keys.translate(msg); ok {
		handled := m.host.DispatchKey(k, text, shift)
		logger().Debug("key", zap.String("key", msg.String()), zap.Bool("handled", handled))
	}
	return m, nil
}

func (m Model) updateMouse(msg tea.MouseMsg) Model {
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return m
		}
		row, ok := m.rowAt(msg.Y)
		if !ok {
			return m
		}
		if sl := input.SliderOf(row.Node); sl != nil && inTrack(row, msg.X) {
			m.host.Focus().Focus(row.Node)
			sl.SetTrackBounds(float64(row.TrackStart), float64(row.TrackWidth-1))
			m.dragging = m.host.PointerDown(row.Node, mousePointer, float64(msg.X), float64(msg.Y))
			return m
		}
		m.host.Click(row.Node)
	case tea.MouseActionMotion:
		if m.dragging {
			m.host.PointerMove(nil, mousePointer, float64(msg.X), float64(msg.Y))
		}
	case tea.MouseActionRelease:
		if m.dragging {
			m.dragging = false
			m.host.PointerUp(nil, mousePointer, float64(msg.X), float64(msg.Y))
		}
	}
	return m
}

// Layout returns the rows as they are currently drawn.
func (m Model) Layout() []Row {
	_, rows := m.render()
	return rows
}

// View implements tea.Model.
func (m Model) View() string {
	lines, _ := m.render()
	return strings.Join(lines, "\n") + "\n" + m.styles.Help.Render(m.help.View(m.keys))
}

func (m Model) rowAt(y int) (Row, bool) {
	for _, row := range m.Layout() {
		if row.Y == y {
			return row, true
		}
	}
	return Row{}, false
}

func (m Model) trackWidth() int {
	return max(MinTrackWidth, min(MaxTrackWidth, m.width-ContentColumn-12))
}

func inTrack(row Row, x int) bool {
	return row.TrackWidth > 0 && x >= row.TrackStart && x < row.TrackStart+row.TrackWidth
}

// ProgramOptions returns the program options for a terminal session.
// Slider dragging needs mouse cell motion.
func ProgramOptions(altScreen, mouse bool) []tea.ProgramOption {
	var opts []tea.ProgramOption
	if altScreen {
		opts = append(opts, tea.WithAltScreen())
	}
	if mouse {
		opts = append(opts, tea.WithMouseCellMotion())
	}
	return opts
}

// Run starts a program hosting h and blocks until it exits.
func Run(h *host.Host, opts ...tea.ProgramOption) error {
	_, err := tea.NewProgram(New(h), opts...).Run()
	if err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}

func logger() *zap.Logger {
	return logging.Named("tui")
}

var _ tea.Model = Model{}
