package glyphs

import (
	"fmt"
	"io"
	"sort"

	"gioui.org/font"
	"gioui.org/font/opentype"
	"gioui.org/text"
	"github.com/ddkwork/golibrary/mylog"
	"golang.org/x/image/math/fixed"
)

const defaultUnitsPerEm = 1000

// gidMask selects the font's glyph index from a text.GlyphID; gio packs the size and
// face index into the bits above it.
const gidMask = 1<<16 - 1

// Face is a Provider backed by a real font. Gio does not expose glyph names or the
// font's design units, so a Face measures glyphs by shaping one rune at a time at
// UnitsPerEm pixels per em, which yields widths in a 1000 (or UnitsPerEm) unit em.
//
// Names are taken from an optional Table that maps runes to names; runes the table
// doesn't know are named uniXXXX.
type Face struct {
	fontFace   text.FontFace
	shaper     *text.Shaper
	unitsPerEm int
	names      *Table
	runes      []rune
	measured   map[rune]text.Glyph
	metrics    Metrics
}

// NewFace makes a Face for ff. The runes are the repertoire reported by GlyphNames;
// runes the font has no glyph for are left out.
func NewFace(ff text.FontFace, runes []rune, names *Table) *Face {
	f := &Face{
		fontFace:   ff,
		shaper:     text.NewShaper([]text.FontFace{ff}),
		unitsPerEm: defaultUnitsPerEm,
		names:      names,
		measured:   make(map[rune]text.Glyph),
	}
	f.initRunes(runes)
	f.initMetrics()
	return f
}

func (f *Face) initRunes(runes []rune) {
	seen := make(map[rune]bool)
	for _, r := range runes {
		if seen[r] {
			continue
		}
		seen[r] = true
		if f.hasGlyph(r) {
			f.runes = append(f.runes, r)
		}
	}
}

func (f *Face) initMetrics() {
	g := f.shapeOneRune('X')
	f.metrics = Metrics{
		UnitsPerEm: float32(f.unitsPerEm),
		Ascender:   fixedToFloat(g.Ascent),
		Descender:  -fixedToFloat(g.Descent),
	}
	debug("Face: metrics for %s are %+v\n", f.fontFace.Font.Typeface, f.metrics)
}

func (f *Face) shapeOneRune(r rune) text.Glyph {
	if g, ok := f.measured[r]; ok {
		return g
	}

	params := text.Parameters{
		Font:    f.fontFace.Font,
		PxPerEm: fixed.I(f.unitsPerEm),
	}

	f.shaper.LayoutString(params, string(r))
	g, ok := f.shaper.NextGlyph()
	if !ok {
		debug("Face: shaping %q produced no glyph\n", r)
		return text.Glyph{}
	}
	// Drain the rest of the line so the shaper is ready for the next call.
	for _, more := f.shaper.NextGlyph(); more; _, more = f.shaper.NextGlyph() {
	}

	f.measured[r] = g
	return g
}

// glyphIndex is the index of g in its font. Index 0 is .notdef, which the shaper
// returns for runes the font can't display.
func glyphIndex(g text.Glyph) uint16 {
	return uint16(g.ID & gidMask)
}

func (f *Face) hasGlyph(r rune) bool {
	return glyphIndex(f.shapeOneRune(r)) != 0
}

func (f *Face) CodepointForName(name string) (rune, bool) {
	if f.names != nil {
		if g, ok := f.names.Glyph(name); ok && g.Codepoint >= 0 {
			return g.Codepoint, true
		}
	}
	return ParseUniName(name)
}

func (f *Face) NameForRune(r rune) (string, bool) {
	if f.names != nil {
		if n, ok := f.names.NameForRune(r); ok {
			return n, true
		}
	}
	if !f.hasGlyph(r) {
		return "", false
	}
	return UniName(r), true
}

func (f *Face) GlyphExists(name string) bool {
	r, ok := f.CodepointForName(name)
	return ok && f.hasGlyph(r)
}

func (f *Face) AdvanceWidth(name string) float32 {
	r, ok := f.CodepointForName(name)
	if !ok {
		return 0
	}
	g := f.shapeOneRune(r)
	if glyphIndex(g) == 0 {
		return 0
	}
	return fixedToFloat(roundFixed(g.Advance))
}

func (f *Face) Metrics() Metrics {
	return f.metrics
}

func (f *Face) GlyphNames() []string {
	names := make([]string, 0, len(f.runes))
	for _, r := range f.runes {
		n, _ := f.NameForRune(r)
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// ParseTTFBytes parses a TrueType or OpenType font.
func ParseTTFBytes(b []byte) (opentype.Face, error) {
	return opentype.Parse(b)
}

// LoadFace reads a font from r and names it typeface.
func LoadFace(r io.Reader, typeface string) (ff text.FontFace, err error) {
	b := mylog.Check2(io.ReadAll(r))

	face, err := ParseTTFBytes(b)
	if err != nil {
		err = fmt.Errorf("parsing font %s: %w", typeface, err)
		return
	}

	ff = text.FontFace{
		Font: font.Font{
			Typeface: font.Typeface(typeface),
		},
		Face: face,
	}
	return
}

// BasicRepertoire is printable ASCII plus the Arabic letters.
func BasicRepertoire() []rune {
	var runes []rune
	for r := rune(0x21); r < 0x7F; r++ {
		runes = append(runes, r)
	}
	for r := rune(0x621); r <= 0x64A; r++ {
		runes = append(runes, r)
	}
	return runes
}

func fixedToFloat(i fixed.Int26_6) float32 {
	return float32(i) / 64
}

// roundFixed rounds to the nearest whole pixel.
func roundFixed(i fixed.Int26_6) fixed.Int26_6 {
	return (i + 32) &^ 63
}
