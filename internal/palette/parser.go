package palette

import (
	"bufio"
	"fmt"
	"io"
	"io/fs"
	"path"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/codr1/chromapick/assets"
)

const paletteFileExt = ".txt"

// Parse reads a palette in the plain-text format: non-empty lines in pairs,
// a color name followed by its #RRGGBB value.
func Parse(name string, r io.Reader) (*Palette, error) {
	lines, err := readNonEmptyLines(r)
	if err != nil {
		return nil, err
	}
	if len(lines)%2 != 0 {
		return nil, fmt.Errorf("%w: palette %q has %d non-empty lines, expected pairs of name and color", ErrInvalidConfiguration, name, len(lines))
	}

	entries := make([]Entry, 0, len(lines)/2)
	for i := 0; i < len(lines); i += 2 {
		entry, err := NewEntry(lines[i].text, lines[i+1].text)
		if err != nil {
			return nil, fmt.Errorf("palette %q line %d: %w", name, lines[i+1].number, err)
		}
		entries = append(entries, entry)
	}

	return New(name, entries)
}

type yamlPalette struct {
	Name   string `yaml:"name"`
	Colors []struct {
		Name string `yaml:"name"`
		Hex  string `yaml:"hex"`
	} `yaml:"colors"`
}

// LoadYAML reads a palette of the form
//
//	name: brand
//	colors:
//	  - name: Ink
//	    hex: "#101820"
func LoadYAML(r io.Reader) (*Palette, error) {
	var doc yamlPalette
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("%w: palette file is empty", ErrInvalidConfiguration)
		}
		return nil, fmt.Errorf("error parsing palette file: %w", err)
	}

	entries := make([]Entry, 0, len(doc.Colors))
	for _, c := range doc.Colors {
		entries = append(entries, Entry{Name: c.Name, Hex: c.Hex})
	}
	return New(doc.Name, entries)
}

// LoadBuiltins parses every palette embedded under assets/palettes, sorted by name.
func LoadBuiltins() ([]*Palette, error) {
	return loadDir(assets.PalettesFS, assets.PalettesDir)
}

func loadDir(fsys fs.FS, dir string) ([]*Palette, error) {
	files, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("read palette directory: %w", err)
	}
	sort.Slice(files, func(i, j int) bool { return files[i].Name() < files[j].Name() })

	palettes := make([]*Palette, 0, len(files))
	for _, file := range files {
		if file.IsDir() || path.Ext(file.Name()) != paletteFileExt {
			continue
		}
		p, err := loadFile(fsys, path.Join(dir, file.Name()))
		if err != nil {
			return nil, err
		}
		palettes = append(palettes, p)
	}
	return palettes, nil
}

func loadFile(fsys fs.FS, filename string) (*Palette, error) {
	file, err := fsys.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("open palette file: %w", err)
	}
	defer file.Close()

	name := strings.TrimSuffix(path.Base(filename), paletteFileExt)
	return Parse(name, file)
}

type line struct {
	text   string
	number int
}

func readNonEmptyLines(r io.Reader) ([]line, error) {
	scanner := bufio.NewScanner(r)
	lines := []line{}
	number := 0
	for scanner.Scan() {
		number++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		lines = append(lines, line{text: text, number: number})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read palette file: %w", err)
	}
	return lines, nil
}
