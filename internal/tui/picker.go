package tui

import (
	"os"
	"strings"

	"textmerge-cli/internal/logging"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"
)

func pickerHeight(termH int) int {
	h := termH - 4
	if h < 3 {
		h = 3
	}
	return h
}

// openPicker shows a file picker. Choosing a file ingests it alone; choosing a
// directory (enter on it, or "." for the current one) ingests its matching files.
func (m *appModel) openPicker() tea.Cmd {
	fp := filepicker.New()
	fp.AllowedTypes = nil
	fp.FileAllowed = true
	fp.DirAllowed = true
	fp.ShowHidden = false
	fp.ShowPermissions = false
	fp.ShowSize = true
	fp.AutoHeight = false
	fp.Height = pickerHeight(m.height)
	fp.Cursor = "›"
	fp.KeyMap.Back = key.NewBinding(
		key.WithKeys("h", "backspace", "left"),
		key.WithHelp("h", "up"),
	)

	fp.Styles.Cursor = lipgloss.NewStyle().Foreground(colorAccent)
	fp.Styles.Selected = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
	fp.Styles.Directory = lipgloss.NewStyle().Foreground(colorAccent)
	fp.Styles.Symlink = lipgloss.NewStyle().Foreground(colorAccent)
	fp.Styles.DisabledFile = styleMuted()
	fp.Styles.DisabledSelected = styleMuted()
	fp.Styles.FileSize = styleMuted().Width(fp.Styles.FileSize.GetWidth()).Align(lipgloss.Right)

	start := strings.TrimSpace(m.pickerDir)
	if start == "" {
		if wd, err := os.Getwd(); err == nil {
			start = wd
		}
	}
	if start == "" {
		start = "."
	}
	fp.CurrentDirectory = start

	// A drag in progress cannot finish once the picker owns the mouse.
	if m.split.Active() {
		logging.L().Debug("drag abandoned", zap.Int("rows", m.split.Size()))
	}
	m.bus.Abandon()
	m.relayout()

	m.picker = fp
	m.picking = true
	return fp.Init()
}

func (m appModel) updatePicker(msg tea.Msg) (tea.Model, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok {
		switch km.String() {
		case "esc", "q":
			m.picking = false
			return m, nil
		case "ctrl+c":
			return m.quit()
		case ".":
			m.picking = false
			m.pickerDir = m.picker.CurrentDirectory
			return m, m.startIngest([]string{m.picker.CurrentDirectory})
		}
	}

	var cmd tea.Cmd
	m.picker, cmd = m.picker.Update(msg)
	if ok, path := m.picker.DidSelectFile(msg); ok {
		m.picking = false
		m.pickerDir = m.picker.CurrentDirectory
		return m, m.startIngest([]string{path})
	}
	return m, cmd
}

func (m appModel) viewPicker() string {
	title := styleHeader().Render("Open") + styleMuted().Render("  enter: choose · .: this directory · esc: cancel")
	dir := styleMuted().Render(m.picker.CurrentDirectory)
	body := m.picker.View()
	return normalizePane(strings.Join([]string{title, dir, "", body}, "\n"), m.width, m.height)
}
