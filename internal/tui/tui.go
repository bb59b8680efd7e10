package tui

import (
	"textmerge-cli/internal/resize"

	tea "github.com/charmbracelet/bubbletea"
)

// Options configures one interactive session.
type Options struct {
	// Paths are ingested as the first batch when the program starts.
	Paths      []string
	Locale     string
	Extensions []string
	Viewport   resize.Config
	Theme      string
	Markdown   bool
}

func Run(opts Options) error {
	applyTerminalPreferences(opts.Theme)

	m := newAppModel(opts)
	_, err := tea.NewProgram(m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithReportFocus(),
	).Run()
	return err
}
