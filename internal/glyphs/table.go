package glyphs

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/armon/go-radix"

	"github.com/jeffwilliams/sortbuf/internal/sorts"
)

// Glyph is one row of a glyph table.
type Glyph struct {
	Name string
	// Codepoint is sorts.NoCodepoint for unencoded glyphs such as contextual forms.
	Codepoint rune
	Advance   float32
}

// Table is an in-memory Provider. Names are kept in a radix tree so they come out
// sorted and variant forms ("beh-ar.init", "beh-ar.fina") can be found by prefix.
type Table struct {
	names   *radix.Tree
	runes   map[rune]string
	metrics Metrics
}

func NewTable(m Metrics) *Table {
	if m.IsZero() {
		m = DefaultMetrics()
	}
	return &Table{
		names:   radix.New(),
		runes:   make(map[rune]string),
		metrics: m,
	}
}

// Add inserts g, replacing a glyph with the same name. The first glyph added for a
// codepoint is the one NameForRune returns.
func (t *Table) Add(g Glyph) {
	t.names.Insert(g.Name, g)
	if g.Codepoint >= 0 {
		if _, ok := t.runes[g.Codepoint]; !ok {
			t.runes[g.Codepoint] = g.Name
		}
	}
}

func (t *Table) Glyph(name string) (g Glyph, ok bool) {
	v, ok := t.names.Get(name)
	if !ok {
		return
	}
	return v.(Glyph), true
}

func (t *Table) Len() int {
	return t.names.Len()
}

func (t *Table) GlyphExists(name string) bool {
	_, ok := t.names.Get(name)
	return ok
}

func (t *Table) AdvanceWidth(name string) float32 {
	g, ok := t.Glyph(name)
	if !ok {
		return 0
	}
	return g.Advance
}

func (t *Table) Metrics() Metrics {
	return t.metrics
}

func (t *Table) SetMetrics(m Metrics) {
	t.metrics = m
}

func (t *Table) GlyphNames() []string {
	names := make([]string, 0, t.names.Len())
	t.names.Walk(func(s string, v interface{}) bool {
		names = append(names, s)
		return false
	})
	return names
}

// NamesWithPrefix returns the sorted names that start with prefix.
func (t *Table) NamesWithPrefix(prefix string) []string {
	var names []string
	t.names.WalkPrefix(prefix, func(s string, v interface{}) bool {
		names = append(names, s)
		return false
	})
	return names
}

func (t *Table) NameForRune(r rune) (string, bool) {
	n, ok := t.runes[r]
	return n, ok
}

func (t *Table) CodepointForName(name string) (rune, bool) {
	g, ok := t.Glyph(name)
	if !ok || g.Codepoint < 0 {
		return sorts.NoCodepoint, false
	}
	return g.Codepoint, true
}

// UniName is the AGL style fallback name for a codepoint, e.g. uni0628.
func UniName(r rune) string {
	if r > 0xFFFF {
		return fmt.Sprintf("u%05X", r)
	}
	return fmt.Sprintf("uni%04X", r)
}

// ParseUniName is the inverse of UniName. As in the AGL, the hex digits must be
// uppercase and the value must be a Unicode scalar value, so names like "ubeef"
// are not codepoints.
func ParseUniName(name string) (rune, bool) {
	var hex string
	switch {
	case strings.HasPrefix(name, "uni") && len(name) == 7:
		hex = name[3:]
	case strings.HasPrefix(name, "u") && len(name) >= 5 && len(name) <= 7:
		hex = name[1:]
	default:
		return sorts.NoCodepoint, false
	}

	for _, c := range hex {
		if !(c >= '0' && c <= '9' || c >= 'A' && c <= 'F') {
			return sorts.NoCodepoint, false
		}
	}

	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil || v > unicode.MaxRune || v >= 0xD800 && v <= 0xDFFF {
		return sorts.NoCodepoint, false
	}
	return rune(v), true
}

// ParseCodepoint reads the codepoint notations used in glyph tables: "0628",
// "U+0628" or "0x628". An empty string means the glyph is unencoded.
func ParseCodepoint(s string) (rune, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return sorts.NoCodepoint, nil
	}

	hex := s
	for _, p := range []string{"U+", "u+", "0x", "0X"} {
		hex = strings.TrimPrefix(hex, p)
	}

	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return sorts.NoCodepoint, fmt.Errorf("bad codepoint %q: %w", s, err)
	}
	if v > unicode.MaxRune {
		return sorts.NoCodepoint, fmt.Errorf("bad codepoint %q: beyond U+%X", s, unicode.MaxRune)
	}
	return rune(v), nil
}
