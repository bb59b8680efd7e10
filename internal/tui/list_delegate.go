package tui

import (
	"fmt"
	"io"
	"strings"

	"textmerge-cli/internal/fileset"
	"textmerge-cli/internal/model"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
	"github.com/dustin/go-humanize"
)

type fileItem struct {
	entry model.FileEntry
}

func (it fileItem) FilterValue() string { return it.entry.Name }
func (it fileItem) Title() string       { return it.entry.Name }

func fileItems(set *fileset.Set) []list.Item {
	entries := set.Entries()
	out := make([]list.Item, 0, len(entries))
	for _, e := range entries {
		out = append(out, fileItem{entry: e})
	}
	return out
}

// fileDelegate renders one row per file. The highlight follows the set's
// selection, not the list cursor: before anything is selected no row is lit.
type fileDelegate struct {
	set      *fileset.Set
	normal   lipgloss.Style
	selected lipgloss.Style
	meta     lipgloss.Style
}

func newFileDelegate(set *fileset.Set) fileDelegate {
	return fileDelegate{
		set:      set,
		normal:   lipgloss.NewStyle(),
		selected: styleSelectedRow(),
		meta:     styleMuted(),
	}
}

func (d fileDelegate) Height() int                             { return 1 }
func (d fileDelegate) Spacing() int                            { return 0 }
func (d fileDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d fileDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	contentW := m.Width()
	it, ok := item.(fileItem)
	if !ok || contentW < 4 {
		fmt.Fprint(w, "")
		return
	}

	sel, hasSel := d.set.Selected()
	isSel := hasSel && sel == index

	marker := "  "
	if isSel {
		marker = "› "
	}
	size := humanize.Bytes(uint64(it.entry.Size()))
	name := fmt.Sprintf("%s%d. %s", marker, index+1, it.entry.Name)

	nameW := contentW - xansi.StringWidth(size) - 1
	if nameW < 1 {
		nameW = contentW
		size = ""
	}
	if xansi.StringWidth(name) > nameW {
		name = xansi.Truncate(name, nameW, "…")
	}
	gap := contentW - xansi.StringWidth(name) - xansi.StringWidth(size)
	if gap < 0 {
		gap = 0
	}

	if isSel {
		fmt.Fprint(w, d.selected.Render(name+strings.Repeat(" ", gap)+size))
		return
	}
	fmt.Fprint(w, d.normal.Render(name)+strings.Repeat(" ", gap)+d.meta.Render(size))
}
