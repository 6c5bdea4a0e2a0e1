// Package sorts defines the elements stored in a sort buffer. A sort is one placeable
// unit: an occurrence of a glyph, or a line break inside a text flow.
package sorts

import (
	"fmt"

	"gioui.org/f32"
)

type LayoutMode int

const (
	LTRText LayoutMode = iota
	RTLText
	Freeform
)

func (m LayoutMode) IsText() bool {
	return m == LTRText || m == RTLText
}

func (m LayoutMode) String() string {
	switch m {
	case LTRText:
		return "LTR"
	case RTLText:
		return "RTL"
	case Freeform:
		return "Freeform"
	}
	return fmt.Sprintf("LayoutMode(%d)", int(m))
}

// ParseLayoutMode accepts the names returned by String, case-sensitively, and the
// lower case forms "ltr", "rtl" and "free".
func ParseLayoutMode(s string) (LayoutMode, bool) {
	switch s {
	case "LTR", "ltr":
		return LTRText, true
	case "RTL", "rtl":
		return RTLText, true
	case "Freeform", "free", "freeform":
		return Freeform, true
	}
	return LTRText, false
}

const (
	NoCodepoint rune = -1
	NoCursor         = -1
)

// Kind is either a glyph or a line break. The glyph fields are empty for line breaks.
type Kind struct {
	lineBreak    bool
	Codepoint    rune
	GlyphName    string
	AdvanceWidth float32
}

// GlyphKind makes a glyph Kind. Pass NoCodepoint for glyphs that have no unicode value.
func GlyphKind(name string, advance float32, codepoint rune) Kind {
	return Kind{Codepoint: codepoint, GlyphName: name, AdvanceWidth: advance}
}

func LineBreakKind() Kind {
	return Kind{lineBreak: true, Codepoint: NoCodepoint}
}

func (k Kind) IsGlyph() bool {
	return !k.lineBreak
}

func (k Kind) IsLineBreak() bool {
	return k.lineBreak
}

func (k Kind) HasCodepoint() bool {
	return !k.lineBreak && k.Codepoint >= 0
}

// Advance is the glyph's advance width, or 0 for a line break.
func (k Kind) Advance() float32 {
	if k.lineBreak {
		return 0
	}
	return k.AdvanceWidth
}

// DisplayString prefers the codepoint over the glyph name.
func (k Kind) DisplayString() string {
	if k.lineBreak {
		return "↵"
	}
	if k.HasCodepoint() {
		return fmt.Sprintf("U+%04X", k.Codepoint)
	}
	return k.GlyphName
}

// Entry is one slot in the sort buffer.
type Entry struct {
	Kind   Kind
	Active bool
	Mode   LayoutMode
	// RootPosition is the anchor of a flow for roots and the absolute position for
	// freeform sorts. It is unused for the other members of a flow.
	RootPosition f32.Point
	IsRoot       bool
	// Cursor is the root's insertion point within its flow, or NoCursor.
	Cursor   int
	BufferID BufferID
	// Placeholder is set on a root whose glyph only marks where the flow starts.
	Placeholder bool
}

func (e Entry) IsText() bool {
	return e.Mode.IsText()
}

func (e Entry) HasCursor() bool {
	return e.Cursor >= 0
}

// InFlow reports whether e belongs to the flow id.
func (e Entry) InFlow(id BufferID) bool {
	return id.Valid() && e.BufferID == id
}

func (e Entry) String() string {
	s := fmt.Sprintf("%s %s", e.Kind.DisplayString(), e.Mode)
	if e.BufferID.Valid() {
		s += " " + e.BufferID.String()
	}
	if e.IsRoot {
		s += fmt.Sprintf(" root@(%.1f,%.1f) cursor=%d", e.RootPosition.X, e.RootPosition.Y, e.Cursor)
	}
	if e.Active {
		s += " active"
	}
	return s
}

// NewFreeform makes a freeform glyph sort positioned at p.
func NewFreeform(name string, advance float32, codepoint rune, p f32.Point) Entry {
	return Entry{
		Kind:         GlyphKind(name, advance, codepoint),
		Mode:         Freeform,
		RootPosition: p,
		Cursor:       NoCursor,
	}
}
