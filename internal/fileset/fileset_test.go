package fileset

import (
	"reflect"
	"testing"

	"textmerge-cli/internal/model"
)

func entries(names ...string) []model.FileEntry {
	out := make([]model.FileEntry, 0, len(names))
	for _, n := range names {
		out = append(out, model.FileEntry{Name: n, Content: n})
	}
	return out
}

func TestIngest_SortsByNameAndMerges(t *testing.T) {
	t.Parallel()

	s := New("")
	s.Ingest([]model.FileEntry{{Name: "b.txt", Content: "B"}, {Name: "a.txt", Content: "A"}})

	if got, want := s.Names(), []string{"a.txt", "b.txt"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("names: got %v want %v", got, want)
	}
	if got := s.MergedText(); got != "A\nB" {
		t.Fatalf("merged: got %q want %q", got, "A\nB")
	}
	if _, ok := s.Selected(); ok {
		t.Fatalf("expected no selection after ingest")
	}
}

func TestIngest_LocaleAwareOrdering(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		locale string
		in     []string
		want   []string
	}{
		{
			name: "case folded at primary level",
			in:   []string{"b.txt", "B2.txt", "a.txt", "A1.txt"},
			want: []string{"a.txt", "A1.txt", "b.txt", "B2.txt"},
		},
		{
			name: "accents sort next to base letter",
			in:   []string{"f.txt", "é.txt", "e.txt"},
			want: []string{"e.txt", "é.txt", "f.txt"},
		},
		{
			name:   "swedish puts ä after z",
			locale: "sv",
			in:     []string{"ä.txt", "z.txt", "a.txt"},
			want:   []string{"a.txt", "z.txt", "ä.txt"},
		},
		{
			name:   "invalid tag falls back to root",
			locale: "!!",
			in:     []string{"b", "a"},
			want:   []string{"a", "b"},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			s := New(tt.locale)
			s.Ingest(entries(tt.in...))
			if got := s.Names(); !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("got %v want %v", got, tt.want)
			}
		})
	}
}

func TestIngest_StableForEqualNames(t *testing.T) {
	t.Parallel()

	s := New("")
	s.Ingest([]model.FileEntry{
		{Name: "same.txt", Content: "first"},
		{Name: "a.txt", Content: "a"},
		{Name: "same.txt", Content: "second"},
	})
	if got := s.MergedText(); got != "a\nfirst\nsecond" {
		t.Fatalf("got %q", got)
	}
}

func TestIngest_ReplacesPreviousBatchAndSelection(t *testing.T) {
	t.Parallel()

	s := New("")
	s.Ingest(entries("x", "y", "z"))
	s.Select(2)
	s.Ingest(entries("q"))

	if got := s.Names(); !reflect.DeepEqual(got, []string{"q"}) {
		t.Fatalf("got %v", got)
	}
	if _, ok := s.Selected(); ok {
		t.Fatalf("selection should be cleared by ingest")
	}

	s.Ingest(nil)
	if s.Len() != 0 || s.MergedText() != "" {
		t.Fatalf("empty ingest should yield empty set; len=%d merged=%q", s.Len(), s.MergedText())
	}
}

func TestIngest_DoesNotAliasCallerSlice(t *testing.T) {
	t.Parallel()

	in := entries("b", "a")
	s := New("")
	s.Ingest(in)
	if in[0].Name != "b" {
		t.Fatalf("caller slice was reordered: %v", in)
	}
}

func TestSelect_IgnoresOutOfRange(t *testing.T) {
	t.Parallel()

	s := New("")
	s.Ingest(entries("a", "b"))

	for _, i := range []int{-1, 2, 99} {
		s.Select(i)
		if _, ok := s.Selected(); ok {
			t.Fatalf("Select(%d) should be a no-op", i)
		}
	}

	s.Select(1)
	s.Select(5)
	if idx, ok := s.Selected(); !ok || idx != 1 {
		t.Fatalf("expected selection to stay at 1; got %d ok=%v", idx, ok)
	}

	empty := New("")
	empty.Select(0)
	if _, ok := empty.Selected(); ok {
		t.Fatalf("empty set cannot hold a selection")
	}
}

func TestMoveSelected_UpSwapsAndSelectionFollows(t *testing.T) {
	t.Parallel()

	s := New("")
	s.Ingest(entries("a", "b", "c"))
	s.Select(1)

	if !s.MoveSelected(Up) {
		t.Fatalf("expected swap")
	}
	if got, want := s.Names(), []string{"b", "a", "c"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v want %v", got, want)
	}
	if idx, ok := s.Selected(); !ok || idx != 0 {
		t.Fatalf("selected: got %d ok=%v want 0", idx, ok)
	}
}

func TestMoveSelected_NoOps(t *testing.T) {
	t.Parallel()

	t.Run("no selection", func(t *testing.T) {
		s := New("")
		s.Ingest(entries("a", "b"))
		if s.MoveSelected(Down) || s.CanMove(Down) {
			t.Fatalf("expected no move without selection")
		}
		if got := s.Names(); !reflect.DeepEqual(got, []string{"a", "b"}) {
			t.Fatalf("got %v", got)
		}
	})
	t.Run("up at first", func(t *testing.T) {
		s := New("")
		s.Ingest(entries("a", "b"))
		s.Select(0)
		if s.MoveSelected(Up) || s.CanMove(Up) {
			t.Fatalf("expected no move past first")
		}
		if idx, _ := s.Selected(); idx != 0 {
			t.Fatalf("selection moved to %d", idx)
		}
	})
	t.Run("down at last", func(t *testing.T) {
		s := New("")
		s.Ingest(entries("a", "b"))
		s.Select(1)
		if s.MoveSelected(Down) || s.CanMove(Down) {
			t.Fatalf("expected no move past last")
		}
		if got := s.Names(); !reflect.DeepEqual(got, []string{"a", "b"}) {
			t.Fatalf("got %v", got)
		}
	})
}

func TestMoveSelected_IsItsOwnInverse(t *testing.T) {
	t.Parallel()

	names := []string{"a", "b", "c", "d"}
	for start := 0; start < len(names); start++ {
		for _, pair := range [][2]Direction{{Up, Down}, {Down, Up}} {
			s := New("")
			s.Ingest(entries(names...))
			s.Select(start)
			if !s.MoveSelected(pair[0]) {
				continue
			}
			s.MoveSelected(pair[1])
			if got := s.Names(); !reflect.DeepEqual(got, names) {
				t.Fatalf("start=%d %v then %v: got %v", start, pair[0], pair[1], got)
			}
			if idx, ok := s.Selected(); !ok || idx != start {
				t.Fatalf("start=%d: selection %d ok=%v", start, idx, ok)
			}
		}
	}
}

func TestMoveSelected_PreservesMultisetAndBounds(t *testing.T) {
	t.Parallel()

	s := New("")
	s.Ingest(entries("a", "b", "c", "d", "e"))
	s.Select(2)

	moves := []Direction{Up, Up, Up, Down, Down, Down, Down, Down, Up, Down, Down}
	for i, d := range moves {
		s.MoveSelected(d)
		if s.Len() != 5 {
			t.Fatalf("move %d changed length to %d", i, s.Len())
		}
		idx, ok := s.Selected()
		if !ok || idx < 0 || idx >= s.Len() {
			t.Fatalf("move %d: selection out of bounds (%d, %v)", i, idx, ok)
		}
		seen := map[string]int{}
		for _, n := range s.Names() {
			seen[n]++
		}
		for _, n := range []string{"a", "b", "c", "d", "e"} {
			if seen[n] != 1 {
				t.Fatalf("move %d: multiset changed: %v", i, s.Names())
			}
		}
	}
	// "c" walked to the top and then all the way down.
	if got := s.Names()[4]; got != "c" {
		t.Fatalf("expected c at the end; got %v", s.Names())
	}
}

func TestMergedText_FollowsCurrentOrder(t *testing.T) {
	t.Parallel()

	s := New("")
	s.Ingest([]model.FileEntry{
		{Name: "1.txt", Content: "one\n"},
		{Name: "2.txt", Content: ""},
		{Name: "3.txt", Content: "three"},
	})
	if got := s.MergedText(); got != "one\n\n\nthree" {
		t.Fatalf("got %q", got)
	}
	s.Select(2)
	s.MoveSelected(Up)
	if got := s.MergedText(); got != "one\n\nthree\n" {
		t.Fatalf("got %q", got)
	}
}

func TestOrder_ReportsSizesAndSelection(t *testing.T) {
	t.Parallel()

	s := New("en")
	s.Ingest([]model.FileEntry{{Name: "b", Content: "x\ny"}, {Name: "a", Content: ""}})
	s.Select(1)

	o := s.Order()
	if o.Locale != "en" || o.TotalBytes != 3 || len(o.Files) != 2 {
		t.Fatalf("unexpected order: %+v", o)
	}
	if o.Files[0].Name != "a" || o.Files[0].Lines != 0 || o.Files[0].Selected {
		t.Fatalf("unexpected first entry: %+v", o.Files[0])
	}
	if o.Files[1].Lines != 2 || !o.Files[1].Selected {
		t.Fatalf("unexpected second entry: %+v", o.Files[1])
	}
}

func TestParseDirection(t *testing.T) {
	t.Parallel()

	if d, ok := ParseDirection(" UP "); !ok || d != Up {
		t.Fatalf("expected up")
	}
	if d, ok := ParseDirection("down"); !ok || d != Down {
		t.Fatalf("expected down")
	}
	if _, ok := ParseDirection("sideways"); ok {
		t.Fatalf("expected failure")
	}
}
