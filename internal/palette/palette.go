// Package palette maps marker categories to colors. The table is loaded
// from configuration and can be swapped while the server is running.
package palette

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"sync/atomic"

	"gopkg.in/yaml.v3"
)

// DefaultFallback is used when a table does not name its own fallback.
const DefaultFallback = "gray"

// Palette is an immutable Category→color table.
type Palette struct {
	Fallback string            `yaml:"fallback" json:"fallback"`
	Colors   map[string]string `yaml:"colors" json:"colors"`
}

// Default is the table used when no palette file is configured.
func Default() *Palette {
	return &Palette{
		Fallback: DefaultFallback,
		Colors: map[string]string{
			"Parking":       "blue",
			"Accessibility": "green",
			"Mobility":      "purple",
			"Safety":        "red",
			"Lighting":      "orange",
			"Green areas":   "darkgreen",
			"Public space":  "cadetblue",
			"Other":         "lightgray",
		},
	}
}

// Color returns the color for category, or the fallback.
func (p *Palette) Color(category string) string {
	if c, ok := p.Colors[category]; ok && c != "" {
		return c
	}
	return p.Fallback
}

// Parse decodes a YAML table. Category keys and colors are trimmed.
func Parse(data []byte) (*Palette, error) {
	var raw Palette
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode palette: %w", err)
	}
	if len(raw.Colors) == 0 {
		return nil, errors.New("palette has no colors")
	}
	p := &Palette{
		Fallback: strings.TrimSpace(raw.Fallback),
		Colors:   make(map[string]string, len(raw.Colors)),
	}
	if p.Fallback == "" {
		p.Fallback = DefaultFallback
	}
	for k, v := range raw.Colors {
		p.Colors[strings.TrimSpace(k)] = strings.TrimSpace(v)
	}
	return p, nil
}

// ReadFile loads a table from path.
func ReadFile(path string) (*Palette, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Store holds the active palette and is safe for concurrent use.
type Store struct {
	current atomic.Pointer[Palette]
}

// NewStore returns a store serving p, or the default table when p is nil.
func NewStore(p *Palette) *Store {
	if p == nil {
		p = Default()
	}
	s := &Store{}
	s.current.Store(p)
	return s
}

// Current returns the active palette.
func (s *Store) Current() *Palette {
	return s.current.Load()
}

// Replace swaps in p.
func (s *Store) Replace(p *Palette) {
	if p != nil {
		s.current.Store(p)
	}
}

// Color looks category up in the active palette.
func (s *Store) Color(category string) string {
	return s.Current().Color(category)
}
