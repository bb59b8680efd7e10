// Package ingest reads one batch of files into entries. A batch is atomic: either
// every file is read or the whole batch fails with a single error.
package ingest

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"textmerge-cli/internal/logging"
	"textmerge-cli/internal/model"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// sniffLen is how much of each file is checked for NUL bytes.
const sniffLen = 8 << 10

var ErrBinary = errors.New("binary content")

// BatchError reports the file that aborted a batch.
type BatchError struct {
	Path string
	Err  error
}

func (e *BatchError) Error() string { return fmt.Sprintf("ingest %s: %v", e.Path, e.Err) }
func (e *BatchError) Unwrap() error { return e.Err }

type Options struct {
	// Extensions filters files found inside directories (".txt", "*" for any).
	// Files named explicitly are always read.
	Extensions []string
	// Concurrency caps parallel reads; <= 0 means unbounded.
	Concurrency int
}

// Batch expands paths and reads every resulting file concurrently. The returned
// entries are in expansion order; callers sort them.
func Batch(ctx context.Context, paths []string, opts Options) ([]model.FileEntry, error) {
	files, err := Expand(paths, opts.Extensions)
	if err != nil {
		return nil, err
	}

	out := make([]model.FileEntry, len(files))
	g, gctx := errgroup.WithContext(ctx)
	if opts.Concurrency > 0 {
		g.SetLimit(opts.Concurrency)
	}
	for i, path := range files {
		i, path := i, path
		g.Go(func() error {
			content, err := readText(gctx, path)
			if err != nil {
				return &BatchError{Path: path, Err: err}
			}
			out[i] = model.FileEntry{Name: filepath.Base(path), Content: content}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		logging.L().Debug("ingest batch aborted", zap.Int("files", len(files)), zap.Error(err))
		return nil, err
	}

	logging.L().Debug("ingest batch read", zap.Int("files", len(files)))
	return out, nil
}

func readText(ctx context.Context, path string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	b, err := io.ReadAll(f)
	if err != nil {
		return "", err
	}
	if IsBinary(b) {
		return "", ErrBinary
	}
	return string(b), nil
}

// IsBinary reports whether the leading bytes contain a NUL.
func IsBinary(b []byte) bool {
	if len(b) > sniffLen {
		b = b[:sniffLen]
	}
	return bytes.IndexByte(b, 0) >= 0
}

// Expand turns paths into a list of regular files. Directories contribute their
// direct children whose extension matches exts; explicit files are kept as-is.
// Duplicate paths are dropped. A directory with no matching files contributes
// nothing, which yields an empty batch rather than an error.
func Expand(paths []string, exts []string) ([]string, error) {
	var out []string
	seen := map[string]bool{}
	add := func(p string) {
		key := filepath.Clean(p)
		if seen[key] {
			return
		}
		seen[key] = true
		out = append(out, p)
	}

	for _, p := range paths {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		st, err := os.Stat(p)
		if err != nil {
			return nil, &BatchError{Path: p, Err: err}
		}
		if !st.IsDir() {
			add(p)
			continue
		}
		ents, err := os.ReadDir(p)
		if err != nil {
			return nil, &BatchError{Path: p, Err: err}
		}
		var names []string
		for _, e := range ents {
			if !e.Type().IsRegular() || strings.HasPrefix(e.Name(), ".") {
				continue
			}
			if !MatchExt(e.Name(), exts) {
				continue
			}
			names = append(names, e.Name())
		}
		sort.Strings(names)
		for _, n := range names {
			add(filepath.Join(p, n))
		}
	}
	return out, nil
}

// MatchExt reports whether name carries one of exts. An empty list or "*"
// matches everything.
func MatchExt(name string, exts []string) bool {
	if len(exts) == 0 {
		return true
	}
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range exts {
		if e == "*" || strings.EqualFold(e, ext) {
			return true
		}
	}
	return false
}
