package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Some terminals do not report Shift+Up/Down, so Ctrl+K/J are accepted too.
func isMoveUp(msg tea.KeyMsg) bool {
	switch msg.Type {
	case tea.KeyShiftUp, tea.KeyCtrlK:
		return true
	}
	return msg.String() == "K"
}

func isMoveDown(msg tea.KeyMsg) bool {
	switch msg.Type {
	case tea.KeyShiftDown, tea.KeyCtrlJ:
		return true
	}
	return msg.String() == "J"
}

type keyMap struct {
	Up       key.Binding
	Down     key.Binding
	Select   key.Binding
	Clear    key.Binding
	MoveUp   key.Binding
	MoveDown key.Binding
	Open     key.Binding
	Markdown key.Binding
	Copy     key.Binding
	Grow     key.Binding
	Shrink   key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Quit     key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "prev")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "next")),
		Select:   key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "select")),
		Clear:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "deselect")),
		MoveUp:   key.NewBinding(key.WithKeys("shift+up", "ctrl+k", "K"), key.WithHelp("⇧↑", "move up")),
		MoveDown: key.NewBinding(key.WithKeys("shift+down", "ctrl+j", "J"), key.WithHelp("⇧↓", "move down")),
		Open:     key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "open")),
		Markdown: key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "markdown")),
		Copy:     key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy")),
		Grow:     key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+/-", "resize")),
		Shrink:   key.NewBinding(key.WithKeys("-", "_")),
		PageUp:   key.NewBinding(key.WithKeys("pgup", "ctrl+u")),
		PageDown: key.NewBinding(key.WithKeys("pgdown", "ctrl+d")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) helpBindings() []key.Binding {
	return []key.Binding{k.Up, k.Select, k.MoveUp, k.MoveDown, k.Open, k.Markdown, k.Copy, k.Grow, k.Quit}
}
