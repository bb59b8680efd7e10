package tui

import (
	"strings"

	"github.com/atotto/clipboard"
)

// copyToClipboard is a var so tests can stub the system clipboard.
var copyToClipboard = func(s string) error {
	return clipboard.WriteAll(strings.ReplaceAll(s, "\r\n", "\n"))
}
