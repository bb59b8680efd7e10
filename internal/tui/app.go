package tui

import (
	"context"
	"fmt"
	"strings"

	"textmerge-cli/internal/fileset"
	"textmerge-cli/internal/ingest"
	"textmerge-cli/internal/logging"
	"textmerge-cli/internal/model"
	"textmerge-cli/internal/resize"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

const mergedPlaceholder = "Merged file contents appear here."

// ingestDoneMsg carries a whole batch. Names and contents are committed together
// in one Update, or not at all.
type ingestDoneMsg struct {
	seq     int
	paths   []string
	entries []model.FileEntry
	err     error
}

type copyDoneMsg struct{ err error }

type appModel struct {
	opts Options

	set   *fileset.Set
	split *resize.Controller
	bus   *resize.Bus
	keys  keyMap

	width  int
	height int
	frame  frame

	list     list.Model
	vp       viewport.Model
	contentW int
	markdown bool

	picking   bool
	picker    filepicker.Model
	pickerDir string

	// ingestSeq identifies the latest batch; older results are dropped.
	ingestSeq int

	status    string
	statusErr bool
}

func newAppModel(opts Options) appModel {
	opts.Extensions = append([]string(nil), opts.Extensions...)
	set := fileset.New(opts.Locale)

	split := resize.New(opts.Viewport)
	split.OnChange = func(rows int) {
		logging.L().Debug("viewport resized", zap.Int("rows", rows))
	}

	l := list.New(nil, newFileDelegate(set), 0, 0)
	l.SetShowTitle(false)
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	l.SetShowPagination(false)
	l.SetFilteringEnabled(false)
	l.DisableQuitKeybindings()

	vp := viewport.New(0, split.Size())

	m := appModel{
		opts:     opts,
		set:      set,
		split:    split,
		bus:      resize.NewBus(),
		keys:     defaultKeyMap(),
		list:     l,
		vp:       vp,
		markdown: opts.Markdown,
		contentW: -1,
	}
	if len(opts.Paths) > 0 {
		m.ingestSeq = 1
	}
	m.refreshContent()
	return m
}

func (m appModel) Init() tea.Cmd {
	if len(m.opts.Paths) == 0 {
		return nil
	}
	return ingestCmd(m.ingestSeq, m.opts.Paths, ingest.Options{Extensions: m.opts.Extensions})
}

func ingestCmd(seq int, paths []string, opts ingest.Options) tea.Cmd {
	paths = append([]string(nil), paths...)
	return func() tea.Msg {
		entries, err := ingest.Batch(context.Background(), paths, opts)
		return ingestDoneMsg{seq: seq, paths: paths, entries: entries, err: err}
	}
}

func (m *appModel) startIngest(paths []string) tea.Cmd {
	m.ingestSeq++
	m.setStatus("reading…", false)
	return ingestCmd(m.ingestSeq, paths, ingest.Options{Extensions: m.opts.Extensions})
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.picker.Height = pickerHeight(m.height)
		m.relayout()
		return m, nil

	case ingestDoneMsg:
		return m.applyIngest(msg), nil

	case copyDoneMsg:
		if msg.err != nil {
			m.setStatus("copy failed: "+msg.err.Error(), true)
		} else {
			m.setStatus("copied merged text", false)
		}
		return m, nil

	case tea.BlurMsg:
		if m.split.Active() {
			logging.L().Debug("drag abandoned", zap.Int("rows", m.split.Size()))
		}
		m.bus.Abandon()
		m.relayout()
		return m, nil
	}

	if m.picking {
		if mm, ok := msg.(tea.MouseMsg); ok && mm.Action == tea.MouseActionRelease {
			m.bus.End()
		}
		return m.updatePicker(msg)
	}

	switch msg := msg.(type) {
	case tea.MouseMsg:
		return m.updateMouse(msg)
	case tea.KeyMsg:
		return m.updateKey(msg)
	}
	return m, nil
}

func (m appModel) applyIngest(msg ingestDoneMsg) appModel {
	if msg.seq != m.ingestSeq {
		return m
	}
	if msg.err != nil {
		// The previous set stays as it was.
		logging.L().Debug("ingest failed", zap.Strings("paths", msg.paths), zap.Error(msg.err))
		m.setStatus(msg.err.Error(), true)
		return m
	}

	m.set.Ingest(msg.entries)
	logging.L().Debug("ingest committed", zap.Int("files", m.set.Len()), zap.Strings("order", m.set.Names()))
	m.refreshList()
	m.refreshContent()
	m.vp.GotoTop()
	m.relayout()
	m.setStatus(fmt.Sprintf("loaded %d files", m.set.Len()), false)
	return m
}

func (m appModel) quit() (tea.Model, tea.Cmd) {
	m.bus.Abandon()
	return m, tea.Quit
}

func (m appModel) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.quit()
	case isMoveUp(msg):
		m.move(fileset.Up)
		return m, nil
	case isMoveDown(msg):
		m.move(fileset.Down)
		return m, nil
	case key.Matches(msg, m.keys.Up):
		if _, ok := m.set.Selected(); ok {
			m.list.CursorUp()
		}
		m.set.Select(m.list.Index())
		return m, nil
	case key.Matches(msg, m.keys.Down):
		if _, ok := m.set.Selected(); ok {
			m.list.CursorDown()
		}
		m.set.Select(m.list.Index())
		return m, nil
	case key.Matches(msg, m.keys.Select):
		m.set.Select(m.list.Index())
		return m, nil
	case key.Matches(msg, m.keys.Clear):
		m.set.ClearSelection()
		return m, nil
	case key.Matches(msg, m.keys.Open):
		return m, m.openPicker()
	case key.Matches(msg, m.keys.Markdown):
		m.markdown = !m.markdown
		m.refreshContent()
		return m, nil
	case key.Matches(msg, m.keys.Copy):
		text := m.set.MergedText()
		return m, func() tea.Msg { return copyDoneMsg{err: copyToClipboard(text)} }
	case key.Matches(msg, m.keys.Grow):
		m.split.Nudge(1)
		m.relayout()
		return m, nil
	case key.Matches(msg, m.keys.Shrink):
		m.split.Nudge(-1)
		m.relayout()
		return m, nil
	case key.Matches(msg, m.keys.PageUp):
		m.vp.HalfViewUp()
		return m, nil
	case key.Matches(msg, m.keys.PageDown):
		m.vp.HalfViewDown()
		return m, nil
	}
	return m, nil
}

func (m *appModel) move(d fileset.Direction) {
	if !m.set.MoveSelected(d) {
		return
	}
	m.refreshList()
	m.refreshContent()
	if sel, ok := m.set.Selected(); ok {
		logging.L().Debug("file moved", zap.String("direction", d.String()), zap.Int("index", sel))
	}
}

func (m appModel) updateMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch msg.Action {
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonWheelUp, tea.MouseButtonWheelDown:
			var cmd tea.Cmd
			m.vp, cmd = m.vp.Update(msg)
			return m, cmd
		case tea.MouseButtonLeft:
			if msg.Y == m.frame.borderY {
				m.split.DragStart(msg.Y, m.bus)
				logging.L().Debug("drag start", zap.Int("y", msg.Y), zap.Int("rows", m.split.Size()))
				return m, nil
			}
			if row := msg.Y - m.frame.listTop; row >= 0 && row < m.frame.listRows {
				idx := m.list.Paginator.Page*m.list.Paginator.PerPage + row
				if idx < m.set.Len() {
					m.list.Select(idx)
					m.set.Select(idx)
				}
			}
		}
	case tea.MouseActionMotion:
		if m.split.Active() {
			m.bus.Move(msg.Y)
			m.relayout()
		}
	case tea.MouseActionRelease:
		if m.split.Active() {
			logging.L().Debug("drag end", zap.Int("y", msg.Y), zap.Int("rows", m.split.Size()))
		}
		m.bus.End()
		m.relayout()
	}
	return m, nil
}

func (m *appModel) setStatus(s string, isErr bool) {
	m.status = s
	m.statusErr = isErr
}

func (m *appModel) refreshList() {
	m.list.SetItems(fileItems(m.set))
	if sel, ok := m.set.Selected(); ok {
		m.list.Select(sel)
	} else if m.set.Len() > 0 {
		m.list.Select(0)
	}
}

func (m *appModel) refreshContent() {
	text := m.set.MergedText()
	switch {
	case text == "":
		text = styleMuted().Render(mergedPlaceholder)
	case m.markdown:
		text = renderMarkdown(text, m.width)
	}
	m.vp.SetContent(text)
	m.contentW = m.width
}

// relayout re-derives every region from the terminal size and the current
// viewport height. The viewport's ceiling shrinks with the terminal.
func (m *appModel) relayout() {
	if m.height <= 0 {
		return
	}
	listRows := listRowsFor(m.set.Len(), m.height)
	hi := maxViewportRows(m.height, listRows)
	if m.opts.Viewport.Max > 0 && m.opts.Viewport.Max < hi {
		hi = m.opts.Viewport.Max
	}
	if hi < 1 {
		hi = 1
	}
	m.split.SetBounds(m.opts.Viewport.Min, hi)

	m.frame = computeFrame(m.height, listRows, m.split.Size())
	m.list.SetSize(m.width, listRows)
	m.vp.Width = m.width
	m.vp.Height = m.split.Size()
	if m.contentW != m.width {
		m.refreshContent()
	}
}

func (m appModel) View() string {
	if m.width <= 0 || m.height <= 0 {
		return ""
	}
	if m.picking {
		return m.viewPicker()
	}

	lines := make([]string, 0, m.height)
	lines = append(lines, m.viewHeader())
	lines = append(lines, m.viewList())
	lines = append(lines, m.viewControls())
	lines = append(lines, normalizePane(m.vp.View(), m.width, m.frame.viewportRows))
	lines = append(lines, styleBorder(m.split.Active()).Render(strings.Repeat("━", m.width)))
	for i := 0; i < m.frame.fillerRows; i++ {
		lines = append(lines, "")
	}
	lines = append(lines, m.viewFooter())
	return normalizePane(strings.Join(lines, "\n"), m.width, m.height)
}

func (m appModel) viewHeader() string {
	title := styleHeader().Render("textmerge")
	meta := styleMuted().Render(fmt.Sprintf("  %d files · %s", m.set.Len(), m.set.Locale()))
	if m.markdown {
		meta += styleMuted().Render(" · markdown")
	}
	if m.status == "" {
		return title + meta
	}
	st := styleMuted()
	if m.statusErr {
		st = styleError()
	}
	return title + meta + "  " + st.Render(m.status)
}

func (m appModel) viewList() string {
	if m.set.Len() == 0 {
		hint := "Pass files on the command line or press o to open a file or directory."
		return normalizePane(styleMuted().Render(hint), m.width, m.frame.listRows)
	}
	return normalizePane(m.list.View(), m.width, m.frame.listRows)
}

func (m appModel) viewControls() string {
	arrow := func(glyph string, d fileset.Direction) string {
		if m.set.CanMove(d) {
			return styleHeader().Render(glyph)
		}
		return styleMuted().Render(glyph)
	}
	info := fmt.Sprintf("  drag the bar below to resize · %d rows", m.split.Size())
	return arrow("▲", fileset.Up) + " " + arrow("▼", fileset.Down) + styleMuted().Render(info)
}

func (m appModel) viewFooter() string {
	parts := make([]string, 0, len(m.keys.helpBindings()))
	for _, b := range m.keys.helpBindings() {
		h := b.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return styleMuted().Render(strings.Join(parts, " · "))
}
