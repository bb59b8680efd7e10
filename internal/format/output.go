package format

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"textmerge-cli/internal/model"

	"github.com/dustin/go-humanize"
)

// Write writes output in the requested format.
//
// Supported formats:
// - json (default)
// - text (tab-aligned, for humans)
func Write(w io.Writer, v any, format string, pretty bool) error {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "json":
		return WriteJSON(w, v, pretty)
	case "text":
		return WriteText(w, v)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// WriteJSON writes strict JSON output for CLI commands.
func WriteJSON(w io.Writer, v any, pretty bool) error {
	var b []byte
	var err error
	if pretty {
		b, err = json.MarshalIndent(v, "", "  ")
	} else {
		b, err = json.Marshal(v)
	}
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, string(b))
	return err
}

// WriteText renders known payloads as aligned columns and falls back to JSON.
func WriteText(w io.Writer, v any) error {
	o, ok := v.(model.Order)
	if !ok {
		if p, isPtr := v.(*model.Order); isPtr && p != nil {
			o, ok = *p, true
		}
	}
	if !ok {
		return WriteJSON(w, v, true)
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, f := range o.Files {
		mark := " "
		if f.Selected {
			mark = "›"
		}
		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\t%d lines\n", mark, f.Index+1, f.Name, humanize.Bytes(uint64(f.Bytes)), f.Lines)
	}
	fmt.Fprintf(tw, "\t\t%d files\t%s\t\n", len(o.Files), humanize.Bytes(uint64(o.TotalBytes)))
	return tw.Flush()
}
