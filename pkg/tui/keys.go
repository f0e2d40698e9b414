package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/go-drift/controls/pkg/node"
)

// KeyMap defines the terminal bindings forwarded to the control tree.
type KeyMap struct {
	Up        key.Binding
	Down      key.Binding
	Left      key.Binding
	Right     key.Binding
	Home      key.Binding
	End       key.Binding
	PageUp    key.Binding
	PageDown  key.Binding
	Enter     key.Binding
	Space     key.Binding
	Escape    key.Binding
	Backspace key.Binding
	Delete    key.Binding
	Next      key.Binding
	Prev      key.Binding
	Help      key.Binding
	Quit      key.Binding
}

// DefaultKeyMap returns the standard bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up"),
			key.WithHelp("↑", "previous"),
		),
		Down: key.NewBinding(
			key.WithKeys("down"),
			key.WithHelp("↓", "next"),
		),
		Left: key.NewBinding(
			key.WithKeys("left"),
			key.WithHelp("←", "decrease"),
		),
		Right: key.NewBinding(
			key.WithKeys("right"),
			key.WithHelp("→", "increase"),
		),
		Home: key.NewBinding(
			key.WithKeys("home"),
			key.WithHelp("home", "first"),
		),
		End: key.NewBinding(
			key.WithKeys("end"),
			key.WithHelp("end", "last"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup"),
			key.WithHelp("pgup", "big step up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown"),
			key.WithHelp("pgdn", "big step down"),
		),
		Enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open/choose"),
		),
		Space: key.NewBinding(
			key.WithKeys(" ", "space"),
			key.WithHelp("space", "open/choose"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "close"),
		),
		Backspace: key.NewBinding(
			key.WithKeys("backspace"),
		),
		Delete: key.NewBinding(
			key.WithKeys("delete"),
		),
		Next: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next field"),
		),
		Prev: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "previous field"),
		),
		Help: key.NewBinding(
			key.WithKeys("f1"),
			key.WithHelp("f1", "more keys"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
	}
}

// ShortHelp returns keybindings to be shown in the mini help view
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Enter, k.Escape, k.Help, k.Quit}
}

// FullHelp returns keybindings for the expanded help view
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Next, k.Prev, k.Up, k.Down},
		{k.Left, k.Right, k.PageUp, k.PageDown},
		{k.Home, k.End, k.Enter, k.Space},
		{k.Escape, k.Help, k.Quit},
	}
}

// nodeKey pairs a binding with the key it produces in the tree.
type nodeKey struct {
	binding key.Binding
	key     node.Key
	shift   bool
}

func (k KeyMap) table() []nodeKey {
	return []nodeKey{
		{k.Up, node.KeyArrowUp, false},
		{k.Down, node.KeyArrowDown, false},
		{k.Left, node.KeyArrowLeft, false},
		{k.Right, node.KeyArrowRight, false},
		{k.Home, node.KeyHome, false},
		{k.End, node.KeyEnd, false},
		{k.PageUp, node.KeyPageUp, false},
		{k.PageDown, node.KeyPageDown, false},
		{k.Enter, node.KeyEnter, false},
		{k.Escape, node.KeyEscape, false},
		{k.Backspace, node.KeyBackspace, false},
		{k.Delete, node.KeyDelete, false},
		{k.Next, node.KeyTab, false},
		{k.Prev, node.KeyTab, true},
	}
}

// translate maps a terminal key onto a tree key and its text. Space and
// rune keys carry text so text interfaces can insert them.
func (k KeyMap) translate(msg tea.KeyMsg) (nk node.Key, text string, shift, ok bool) {
	if key.Matches(msg, k.Space) {
		return node.KeySpace, " ", false, true
	}
	for _, entry := range k.table() {
		if key.Matches(msg, entry.binding) {
			return entry.key, "", entry.shift, true
		}
	}
	if msg.Type == tea.KeyRunes && !msg.Alt && len(msg.Runes) > 0 {
		s := string(msg.Runes)
		return node.Key(s), s, false, true
	}
	return "", "", false, false
}
