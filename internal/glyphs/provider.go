// Package glyphs supplies glyph names, advance widths and font metrics to the sort
// buffer. The buffer never reads font files itself; it asks a Provider.
package glyphs

// Provider answers questions about the glyphs of one font. Implementations must not
// block: they are queried synchronously while the buffer is being edited.
type Provider interface {
	GlyphExists(name string) bool
	// AdvanceWidth returns 0 for glyphs that don't exist.
	AdvanceWidth(name string) float32
	Metrics() Metrics
	// GlyphNames returns every glyph name, sorted.
	GlyphNames() []string
}

// RuneNamer is implemented by providers that know which glyph a unicode codepoint maps to.
type RuneNamer interface {
	NameForRune(r rune) (name string, ok bool)
}

// NameDecoder is implemented by providers that know the codepoint a glyph name encodes.
type NameDecoder interface {
	CodepointForName(name string) (r rune, ok bool)
}

// Metrics are the vertical font metrics, in font units. Descender is negative for
// fonts whose descenders go below the baseline.
type Metrics struct {
	UnitsPerEm float32 `toml:"units-per-em"`
	Ascender   float32 `toml:"ascender"`
	Descender  float32 `toml:"descender"`
}

func DefaultMetrics() Metrics {
	return Metrics{
		UnitsPerEm: 1024,
		Ascender:   768,
		Descender:  -256,
	}
}

// LineHeight is the distance between two baselines.
func (m Metrics) LineHeight() float32 {
	return m.Ascender - m.Descender
}

func (m Metrics) IsZero() bool {
	return m == Metrics{}
}

// NameForRune asks p for the glyph of r, if p knows how to map runes.
func NameForRune(p Provider, r rune) (string, bool) {
	if n, ok := p.(RuneNamer); ok {
		return n.NameForRune(r)
	}
	return "", false
}

// CodepointForName asks p for the codepoint of name, falling back to decoding uniXXXX
// names.
func CodepointForName(p Provider, name string) (rune, bool) {
	if d, ok := p.(NameDecoder); ok {
		if r, ok := d.CodepointForName(name); ok {
			return r, true
		}
	}
	return ParseUniName(name)
}
