// Package config resolves user preferences from ~/.textmerge/config.json.
//
// Precedence is flags > TEXTMERGE_* environment > config file > defaults. This
// package handles the last two; the CLI layers flags and env on top.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	DefaultSensitivity = 2
	DefaultMinHeight   = 3
	DefaultHeight      = 12
	DefaultExtension   = ".txt"
)

type Config struct {
	// Locale is the BCP 47 tag used to order ingested names (e.g. "en", "sv").
	Locale string `json:"locale,omitempty"`
	// Extensions filters files found when a directory is ingested.
	Extensions []string `json:"extensions,omitempty"`

	Viewport ViewportConfig `json:"viewport"`
	TUI      TUIConfig      `json:"tui"`
}

type ViewportConfig struct {
	// Height is the initial merged-view height in rows.
	Height int `json:"height,omitempty"`
	// MinHeight is the floor the drag border cannot shrink past.
	MinHeight int `json:"minHeight,omitempty"`
	// Sensitivity is the number of rows of pointer travel per row of resize.
	Sensitivity int `json:"sensitivity,omitempty"`
}

type TUIConfig struct {
	// Theme forces the background variant: "auto" (default), "light" or "dark".
	Theme string `json:"theme,omitempty"`
	// Markdown starts the merged view rendered through glamour.
	Markdown bool `json:"markdown,omitempty"`
}

func Default() Config {
	return Config{
		Locale:     "und",
		Extensions: []string{DefaultExtension},
		Viewport: ViewportConfig{
			Height:      DefaultHeight,
			MinHeight:   DefaultMinHeight,
			Sensitivity: DefaultSensitivity,
		},
		TUI: TUIConfig{Theme: "auto"},
	}
}

func Dir() (string, error) {
	// Test/advanced override (keeps unit tests from touching ~/.textmerge).
	if v := strings.TrimSpace(os.Getenv("TEXTMERGE_CONFIG_DIR")); v != "" {
		return v, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".textmerge"), nil
}

func Path() (string, error) {
	if v := strings.TrimSpace(os.Getenv("TEXTMERGE_CONFIG")); v != "" {
		return v, nil
	}
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// Load reads the config file over the defaults. A missing file is not an error.
func Load() (Config, error) {
	path, err := Path()
	if err != nil {
		return Default(), err
	}
	return LoadFile(path)
}

func LoadFile(path string) (Config, error) {
	cfg := Default()
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, err
	}
	if err := json.Unmarshal(b, &cfg); err != nil {
		return Default(), fmt.Errorf("config %s: %w", path, err)
	}
	cfg.Normalize()
	return cfg, nil
}

// Normalize fills zero values with defaults and canonicalizes extensions.
func (c *Config) Normalize() {
	d := Default()
	if strings.TrimSpace(c.Locale) == "" {
		c.Locale = d.Locale
	}
	c.Extensions = NormalizeExtensions(c.Extensions)
	if len(c.Extensions) == 0 {
		c.Extensions = d.Extensions
	}
	if c.Viewport.Sensitivity <= 0 {
		c.Viewport.Sensitivity = d.Viewport.Sensitivity
	}
	if c.Viewport.MinHeight <= 0 {
		c.Viewport.MinHeight = d.Viewport.MinHeight
	}
	if c.Viewport.Height <= 0 {
		c.Viewport.Height = d.Viewport.Height
	}
	if c.Viewport.Height < c.Viewport.MinHeight {
		c.Viewport.Height = c.Viewport.MinHeight
	}
	switch strings.ToLower(strings.TrimSpace(c.TUI.Theme)) {
	case "light", "dark":
		c.TUI.Theme = strings.ToLower(strings.TrimSpace(c.TUI.Theme))
	default:
		c.TUI.Theme = "auto"
	}
}

// NormalizeExtensions lowercases, adds a leading dot and drops blanks and
// duplicates. "*" is kept as the match-anything marker.
func NormalizeExtensions(in []string) []string {
	seen := map[string]bool{}
	out := make([]string, 0, len(in))
	for _, e := range in {
		e = strings.ToLower(strings.TrimSpace(e))
		if e == "" {
			continue
		}
		if e != "*" && !strings.HasPrefix(e, ".") {
			e = "." + e
		}
		if seen[e] {
			continue
		}
		seen[e] = true
		out = append(out, e)
	}
	return out
}
