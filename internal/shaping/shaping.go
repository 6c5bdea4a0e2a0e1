// Package shaping substitutes glyphs according to their neighbours. The only shaper
// implemented picks the contextual forms of Arabic letters; it is not a general
// OpenType shaper.
package shaping

import (
	"github.com/go-text/typesetting/di"
	"github.com/go-text/typesetting/language"
)

var Debug func(message string, args ...interface{})

func debug(message string, args ...interface{}) {
	if Debug != nil {
		Debug(message, args...)
	}
}

// Run is a sequence of glyphs of one flow in logical (typing) order. The slices are
// parallel.
type Run struct {
	Codepoints []rune
	Names      []string
	Advances   []float32
	Direction  di.Direction
}

func (r Run) Len() int {
	return len(r.Codepoints)
}

// Output is parallel to the Run that produced it. Clusters[i] is the index in the Run
// of the codepoint that glyph i came from.
type Output struct {
	Names    []string
	Advances []float32
	Clusters []int
}

// Changed reports whether o differs from the names and advances already in r.
func (o Output) Changed(r Run) bool {
	for i := range o.Names {
		c := o.Clusters[i]
		if o.Names[i] != r.Names[c] || o.Advances[i] != r.Advances[c] {
			return true
		}
	}
	return false
}

type Shaper interface {
	Shape(r Run) Output
}

// Identity returns the glyphs unchanged.
type Identity struct{}

func (Identity) Shape(r Run) Output {
	return unchanged(r)
}

func unchanged(r Run) Output {
	o := Output{
		Names:    make([]string, r.Len()),
		Advances: make([]float32, r.Len()),
		Clusters: make([]int, r.Len()),
	}
	copy(o.Names, r.Names)
	copy(o.Advances, r.Advances)
	for i := range o.Clusters {
		o.Clusters[i] = i
	}
	return o
}

// hasArabic reports if any codepoint is in the Arabic script.
func hasArabic(runes []rune) bool {
	for _, r := range runes {
		if language.LookupScript(r) == language.Arabic {
			return true
		}
	}
	return false
}
