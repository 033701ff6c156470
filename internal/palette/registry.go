package palette

import (
	"fmt"
	"os"
)

// DefaultName is the palette used when none is configured.
const DefaultName = "css"

// Registry holds the palettes loaded at startup. It is never mutated after
// NewRegistry returns, so it can be shared freely.
type Registry struct {
	palettes    map[string]*Palette
	order       []string
	defaultName string
}

// NewRegistry indexes palettes by name. Later palettes with the same name
// replace earlier ones, which lets a configured file override a builtin.
func NewRegistry(defaultName string, palettes ...*Palette) (*Registry, error) {
	r := &Registry{palettes: make(map[string]*Palette, len(palettes))}
	for _, p := range palettes {
		if p == nil {
			continue
		}
		if _, ok := r.palettes[p.Name()]; !ok {
			r.order = append(r.order, p.Name())
		}
		r.palettes[p.Name()] = p
	}
	if len(r.palettes) == 0 {
		return nil, fmt.Errorf("%w: no palettes loaded", ErrInvalidConfiguration)
	}

	if defaultName == "" {
		defaultName = DefaultName
	}
	if _, ok := r.palettes[defaultName]; !ok {
		return nil, fmt.Errorf("%w: default palette %q not found", ErrInvalidConfiguration, defaultName)
	}
	r.defaultName = defaultName
	return r, nil
}

// LoadRegistry loads the builtin palettes plus any extra ones.
func LoadRegistry(defaultName string, extra ...*Palette) (*Registry, error) {
	builtins, err := LoadBuiltins()
	if err != nil {
		return nil, err
	}
	return NewRegistry(defaultName, append(builtins, extra...)...)
}

// LoadRegistryFile is LoadRegistry plus an optional YAML palette file.
func LoadRegistryFile(defaultName, path string) (*Registry, error) {
	if path == "" {
		return LoadRegistry(defaultName)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open palette file: %w", err)
	}
	defer f.Close()

	custom, err := LoadYAML(f)
	if err != nil {
		return nil, fmt.Errorf("load palette file %s: %w", path, err)
	}
	return LoadRegistry(defaultName, custom)
}

func (r *Registry) Get(name string) (*Palette, bool) {
	p, ok := r.palettes[name]
	return p, ok
}

func (r *Registry) Default() *Palette {
	return r.palettes[r.defaultName]
}

func (r *Registry) DefaultName() string {
	return r.defaultName
}

// Names lists palettes in load order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}
