// Package fileset holds the ordered collection of ingested text files and the
// adjacent-swap reordering that drives the merged view.
package fileset

import (
	"sort"
	"strings"

	"textmerge-cli/internal/model"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

type Direction int

const (
	Up Direction = iota
	Down
)

func (d Direction) String() string {
	if d == Up {
		return "up"
	}
	return "down"
}

// ParseDirection accepts "up" or "down" (case-insensitive).
func ParseDirection(s string) (Direction, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "up":
		return Up, true
	case "down":
		return Down, true
	default:
		return Down, false
	}
}

// Set is an ordered sequence of entries plus an optional selection cursor.
//
// The selection is either unset or a valid index into entries. The zero value is
// an empty set ordered with the root collation.
type Set struct {
	entries  []model.FileEntry
	selected int
	hasSel   bool

	tag language.Tag
}

// New returns an empty set whose ingest ordering follows the given BCP 47 tag.
// An unparseable tag falls back to the root collation.
func New(locale string) *Set {
	tag, err := language.Parse(strings.TrimSpace(locale))
	if err != nil {
		tag = language.Und
	}
	return &Set{tag: tag}
}

func (s *Set) Locale() string { return s.tag.String() }

// Ingest replaces the whole sequence with entries sorted by name and clears the
// selection. Ties keep their input order.
func (s *Set) Ingest(entries []model.FileEntry) {
	next := make([]model.FileEntry, len(entries))
	copy(next, entries)

	// Collators keep internal buffers, so each batch gets its own.
	c := collate.New(s.tag)
	sort.SliceStable(next, func(i, j int) bool {
		return c.CompareString(next[i].Name, next[j].Name) < 0
	})

	s.entries = next
	s.selected = 0
	s.hasSel = false
}

// Select moves the cursor to i. Out-of-range indexes are ignored.
func (s *Set) Select(i int) {
	if i < 0 || i >= len(s.entries) {
		return
	}
	s.selected = i
	s.hasSel = true
}

func (s *Set) ClearSelection() {
	s.selected = 0
	s.hasSel = false
}

// Selected reports the cursor; ok is false when nothing is selected.
func (s *Set) Selected() (idx int, ok bool) {
	if !s.hasSel {
		return 0, false
	}
	return s.selected, true
}

// CanMove reports whether MoveSelected(d) would swap anything.
func (s *Set) CanMove(d Direction) bool {
	_, ok := s.target(d)
	return ok
}

// MoveSelected swaps the selected entry with its neighbour in direction d and
// keeps the selection on the moved entry. It reports whether a swap happened;
// with no selection or at an edge it does nothing.
func (s *Set) MoveSelected(d Direction) bool {
	t, ok := s.target(d)
	if !ok {
		return false
	}
	s.entries[s.selected], s.entries[t] = s.entries[t], s.entries[s.selected]
	s.selected = t
	return true
}

func (s *Set) target(d Direction) (int, bool) {
	if !s.hasSel {
		return 0, false
	}
	t := s.selected + 1
	if d == Up {
		t = s.selected - 1
	}
	if t < 0 || t >= len(s.entries) {
		return 0, false
	}
	return t, true
}

// MergedText joins every entry's content, in order, with a single newline.
func (s *Set) MergedText() string {
	if len(s.entries) == 0 {
		return ""
	}
	var b strings.Builder
	n := len(s.entries) - 1
	for _, e := range s.entries {
		n += len(e.Content)
	}
	b.Grow(n)
	for i, e := range s.entries {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(e.Content)
	}
	return b.String()
}

func (s *Set) Len() int { return len(s.entries) }

func (s *Set) Names() []string {
	out := make([]string, len(s.entries))
	for i, e := range s.entries {
		out[i] = e.Name
	}
	return out
}

// Entries returns a copy of the current sequence.
func (s *Set) Entries() []model.FileEntry {
	out := make([]model.FileEntry, len(s.entries))
	copy(out, s.entries)
	return out
}

// IndexOf returns the position of the first entry with the given name, or -1.
func (s *Set) IndexOf(name string) int {
	for i, e := range s.entries {
		if e.Name == name {
			return i
		}
	}
	return -1
}

// Order describes the current sequence for scripted output.
func (s *Set) Order() model.Order {
	out := model.Order{Files: make([]model.OrderEntry, 0, len(s.entries)), Locale: s.Locale()}
	sel, hasSel := s.Selected()
	for i, e := range s.entries {
		lines := 0
		if e.Content != "" {
			lines = strings.Count(e.Content, "\n") + 1
		}
		out.Files = append(out.Files, model.OrderEntry{
			Index:    i,
			Name:     e.Name,
			Bytes:    e.Size(),
			Lines:    lines,
			Selected: hasSel && sel == i,
		})
		out.TotalBytes += e.Size()
	}
	return out
}
