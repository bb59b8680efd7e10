package tui

import (
	"strings"

	xansi "github.com/charmbracelet/x/ansi"
)

// Fixed chrome rows around the two flexible regions.
const (
	headerRows   = 1
	controlRows  = 1
	borderRows   = 1
	footerRows   = 1
	minListRows  = 1
	chromeRows   = headerRows + controlRows + borderRows + footerRows
	listRowsFrac = 3 // the file list never takes more than 1/listRowsFrac of the screen
)

// frame is the resolved vertical layout for one render.
//
// Top to bottom: header, file list, controls, merged viewport, drag border,
// filler, footer.
type frame struct {
	listTop      int
	listRows     int
	viewportTop  int
	viewportRows int
	borderY      int
	fillerRows   int
}

func listRowsFor(items, height int) int {
	n := items
	if n < minListRows {
		n = minListRows
	}
	limit := height / listRowsFrac
	if limit < minListRows {
		limit = minListRows
	}
	if n > limit {
		n = limit
	}
	return n
}

// maxViewportRows is the tallest the merged view can be for a given list height.
func maxViewportRows(height, listRows int) int {
	return height - chromeRows - listRows
}

func computeFrame(height, listRows, viewportRows int) frame {
	f := frame{
		listTop:  headerRows,
		listRows: listRows,
	}
	f.viewportTop = f.listTop + listRows + controlRows
	f.viewportRows = viewportRows
	f.borderY = f.viewportTop + viewportRows
	f.fillerRows = height - (f.borderY + borderRows + footerRows)
	if f.fillerRows < 0 {
		f.fillerRows = 0
	}
	return f
}

// normalizePane forces s to be exactly width columns wide (ANSI-aware) and height
// lines tall.
func normalizePane(s string, width, height int) string {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}

	lines := strings.Split(s, "\n")
	if height > 0 {
		if len(lines) > height {
			lines = lines[:height]
		}
		for len(lines) < height {
			lines = append(lines, "")
		}
	} else {
		return ""
	}

	for i, ln := range lines {
		// Very long raw lines are cut before measuring so width computation stays bounded.
		if width > 0 && len(ln) > 8192 {
			ln = xansi.Truncate(ln, width, "…")
		}
		w := xansi.StringWidth(ln)
		switch {
		case w > width && width <= 1:
			ln = xansi.Truncate(ln, width, "")
		case w > width:
			ln = xansi.Truncate(ln, width, "…")
		}
		if w = xansi.StringWidth(ln); w < width {
			ln += strings.Repeat(" ", width-w)
		}
		lines[i] = ln
	}
	return strings.Join(lines, "\n")
}
