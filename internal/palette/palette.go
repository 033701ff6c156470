// Package palette matches sampled colors against ordered tables of named colors.
package palette

import (
	"errors"
	"fmt"
	"strings"

	"github.com/codr1/chromapick/internal/models"
)

var (
	// ErrInvalidConfiguration is returned when a palette cannot produce a match,
	// e.g. because it has no entries.
	ErrInvalidConfiguration = errors.New("invalid configuration")
	// ErrInvalidInput is returned for malformed hex colors.
	ErrInvalidInput = models.ErrInvalidInput
)

// Entry is one named reference color.
type Entry struct {
	Name  string `json:"name"`
	Hex   string `json:"hex"`
	Value uint32 `json:"-"`
}

// NewEntry validates hexColor and normalizes it to uppercase.
func NewEntry(name, hexColor string) (Entry, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Entry{}, fmt.Errorf("%w: color name is required", ErrInvalidConfiguration)
	}
	value, err := models.ParsePacked(hexColor)
	if err != nil {
		return Entry{}, fmt.Errorf("color %q: %w", name, err)
	}
	return Entry{
		Name:  name,
		Hex:   fmt.Sprintf("#%06X", value),
		Value: value,
	}, nil
}

// Palette is an immutable, ordered table of entries. Order only matters as a
// tie-break: the first of several equally near entries wins.
type Palette struct {
	name    string
	entries []Entry
}

// New builds a palette. Duplicate colors are allowed, duplicate names are not.
func New(name string, entries []Entry) (*Palette, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: palette name is required", ErrInvalidConfiguration)
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("%w: palette %q has no colors", ErrInvalidConfiguration, name)
	}

	seen := make(map[string]struct{}, len(entries))
	copied := make([]Entry, 0, len(entries))
	for _, entry := range entries {
		normalized, err := NewEntry(entry.Name, entry.Hex)
		if err != nil {
			return nil, fmt.Errorf("palette %q: %w", name, err)
		}
		key := strings.ToLower(normalized.Name)
		if _, ok := seen[key]; ok {
			return nil, fmt.Errorf("%w: palette %q lists %q twice", ErrInvalidConfiguration, name, normalized.Name)
		}
		seen[key] = struct{}{}
		copied = append(copied, normalized)
	}

	return &Palette{name: name, entries: copied}, nil
}

func (p *Palette) Name() string { return p.name }

func (p *Palette) Len() int {
	if p == nil {
		return 0
	}
	return len(p.entries)
}

// Entries returns a copy of the table in order.
func (p *Palette) Entries() []Entry {
	if p == nil {
		return nil
	}
	out := make([]Entry, len(p.entries))
	copy(out, p.entries)
	return out
}

// Nearest returns the entry whose packed 0xRRGGBB value is numerically closest
// to hexColor. The distance is |target - entry| over the whole 24-bit integer,
// so the red byte dominates; it is not a perceptual metric.
func (p *Palette) Nearest(hexColor string) (Entry, error) {
	if p.Len() == 0 {
		return Entry{}, fmt.Errorf("%w: palette has no colors", ErrInvalidConfiguration)
	}
	target, err := models.ParsePacked(hexColor)
	if err != nil {
		return Entry{}, err
	}

	best := 0
	bestDiff := packedDistance(target, p.entries[0].Value)
	for i := 1; i < len(p.entries); i++ {
		if diff := packedDistance(target, p.entries[i].Value); diff < bestDiff {
			best = i
			bestDiff = diff
		}
	}
	return p.entries[best], nil
}

func (p *Palette) NearestName(hexColor string) (string, error) {
	entry, err := p.Nearest(hexColor)
	if err != nil {
		return "", err
	}
	return entry.Name, nil
}

func packedDistance(a, b uint32) uint32 {
	if a > b {
		return a - b
	}
	return b - a
}
