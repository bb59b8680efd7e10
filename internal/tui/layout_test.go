package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	xansi "github.com/charmbracelet/x/ansi"
)

func TestNormalizePane_FixedWidthAndHeight(t *testing.T) {
	t.Parallel()

	out := normalizePane("short\n"+strings.Repeat("x", 20)+"\nthird\nfourth", 8, 3)
	lines := strings.Split(out, "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines; got %d", len(lines))
	}
	for i, ln := range lines {
		if w := xansi.StringWidth(ln); w != 8 {
			t.Fatalf("line %d width %d: %q", i, w, ln)
		}
	}
	if !strings.HasSuffix(lines[1], "…") {
		t.Fatalf("expected ellipsis on long line: %q", lines[1])
	}
	if normalizePane("anything", 5, 0) != "" {
		t.Fatalf("zero height should render nothing")
	}
}

func TestComputeFrame(t *testing.T) {
	t.Parallel()

	f := computeFrame(30, 3, 10)
	if f.listTop != 1 || f.viewportTop != 5 || f.borderY != 15 || f.fillerRows != 13 {
		t.Fatalf("unexpected frame: %+v", f)
	}
	if f := computeFrame(10, 3, 10); f.fillerRows != 0 {
		t.Fatalf("filler should not go negative: %+v", f)
	}
}

func TestListRowsFor(t *testing.T) {
	t.Parallel()

	tests := []struct{ items, height, want int }{
		{0, 30, 1},
		{3, 30, 3},
		{50, 30, 10},
		{5, 2, 1},
	}
	for _, tt := range tests {
		if got := listRowsFor(tt.items, tt.height); got != tt.want {
			t.Fatalf("listRowsFor(%d, %d): got %d want %d", tt.items, tt.height, got, tt.want)
		}
	}
}

func TestMoveKeyFallbacks(t *testing.T) {
	t.Parallel()

	if !isMoveUp(tea.KeyMsg{Type: tea.KeyShiftUp}) || !isMoveUp(tea.KeyMsg{Type: tea.KeyCtrlK}) {
		t.Fatalf("expected Shift+Up and Ctrl+K to move up")
	}
	if !isMoveDown(tea.KeyMsg{Type: tea.KeyShiftDown}) || !isMoveDown(tea.KeyMsg{Type: tea.KeyCtrlJ}) {
		t.Fatalf("expected Shift+Down and Ctrl+J to move down")
	}
	if isMoveUp(tea.KeyMsg{Type: tea.KeyUp}) || isMoveDown(tea.KeyMsg{Type: tea.KeyDown}) {
		t.Fatalf("plain arrows must not reorder")
	}
}
