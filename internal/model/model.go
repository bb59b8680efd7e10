package model

// FileEntry is one ingested text file. Entries are immutable once created; a new
// ingest batch replaces them wholesale.
type FileEntry struct {
	Name    string `json:"name"`
	Content string `json:"content"`
}

// Size is the content length in bytes.
func (e FileEntry) Size() int { return len(e.Content) }

// OrderEntry is the scriptable view of one position in a merged set.
type OrderEntry struct {
	Index    int    `json:"index"`
	Name     string `json:"name"`
	Bytes    int    `json:"bytes"`
	Lines    int    `json:"lines"`
	Selected bool   `json:"selected,omitempty"`
}

// Order is the payload printed by `textmerge order`.
type Order struct {
	Files      []OrderEntry `json:"files"`
	TotalBytes int          `json:"totalBytes"`
	Locale     string       `json:"locale"`
}
