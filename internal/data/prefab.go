package data

import (
	"fmt"
	"os"
	"unicode/utf8"

	"github.com/l1jgo/delve/internal/component"
	"github.com/pixil98/go-errors"
	"golang.org/x/text/encoding/charmap"
	"gopkg.in/yaml.v3"
)

// PrefabEntry is one row of prefabs.yaml as written on disk.
type PrefabEntry struct {
	Name      string `yaml:"name"`
	Glyph     string `yaml:"glyph"` // single character, must exist in code page 437
	FG        string `yaml:"fg"`    // #rrggbb
	BG        string `yaml:"bg"`    // #rrggbb, defaults to black
	ViewRange int    `yaml:"view_range"`
}

// Prefab is a resolved entity template.
type Prefab struct {
	Name       string
	Renderable component.Renderable
	ViewRange  int
}

// PrefabTable holds entity templates by name.
type PrefabTable struct {
	prefabs map[string]*Prefab
	order   []string
}

// LoadPrefabTable loads prefabs.yaml.
func LoadPrefabTable(path string) (*PrefabTable, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read prefab list: %w", err)
	}
	t, err := ParsePrefabTable(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// ParsePrefabTable decodes and resolves a YAML prefab list. Every bad row is
// reported, not just the first.
func ParsePrefabTable(raw []byte) (*PrefabTable, error) {
	var entries []PrefabEntry
	if err := yaml.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("parse prefab list: %w", err)
	}

	t := &PrefabTable{prefabs: make(map[string]*Prefab, len(entries))}
	el := errors.NewErrorList()
	for i := range entries {
		p, err := entries[i].resolve()
		if err != nil {
			el.Add(fmt.Errorf("prefab %d (%q): %w", i, entries[i].Name, err))
			continue
		}
		if _, dup := t.prefabs[p.Name]; dup {
			el.Add(fmt.Errorf("prefab %d: duplicate name %q", i, p.Name))
			continue
		}
		t.prefabs[p.Name] = p
		t.order = append(t.order, p.Name)
	}
	if err := el.Err(); err != nil {
		return nil, err
	}
	return t, nil
}

func (e *PrefabEntry) resolve() (*Prefab, error) {
	if e.Name == "" {
		return nil, fmt.Errorf("name is required")
	}
	glyph, err := EncodeGlyph(e.Glyph)
	if err != nil {
		return nil, err
	}
	fg, err := component.ParseColor(e.FG)
	if err != nil {
		return nil, fmt.Errorf("fg: %w", err)
	}
	bg := component.Black
	if e.BG != "" {
		if bg, err = component.ParseColor(e.BG); err != nil {
			return nil, fmt.Errorf("bg: %w", err)
		}
	}
	if e.ViewRange < 0 {
		return nil, fmt.Errorf("view_range must not be negative")
	}
	return &Prefab{
		Name:       e.Name,
		Renderable: component.Renderable{Glyph: glyph, Foreground: fg, Background: bg},
		ViewRange:  e.ViewRange,
	}, nil
}

// EncodeGlyph converts a one-character string to its code page 437 code.
func EncodeGlyph(s string) (int, error) {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError || size != len(s) {
		return 0, fmt.Errorf("glyph %q: want exactly one character", s)
	}
	if code, ok := cp437PictureCodes[r]; ok {
		return code, nil
	}
	if isControl(r) {
		return 0, fmt.Errorf("glyph %q: control characters are not drawable", s)
	}
	b, ok := charmap.CodePage437.EncodeRune(r)
	if !ok {
		return 0, fmt.Errorf("glyph %q: not in code page 437", s)
	}
	return int(b), nil
}

// DecodeGlyph returns the character for a code page 437 code, using the
// picture glyphs for 0x00-0x1F and 0x7F. Codes outside 0..255 decode to '?'.
func DecodeGlyph(code int) rune {
	switch {
	case code < 0 || code > 255:
		return '?'
	case code < len(cp437Pictures):
		return cp437Pictures[code]
	case code == 0x7F:
		return cp437House
	}
	return charmap.CodePage437.DecodeByte(byte(code))
}

// Get returns the prefab with the given name, or nil if none.
func (t *PrefabTable) Get(name string) *Prefab {
	return t.prefabs[name]
}

// Names returns prefab names in file order.
func (t *PrefabTable) Names() []string {
	return append([]string(nil), t.order...)
}

// Count returns the total number of prefabs loaded.
func (t *PrefabTable) Count() int {
	return len(t.prefabs)
}
