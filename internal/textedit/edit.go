package textedit

import (
	"gioui.org/f32"

	"github.com/jeffwilliams/sortbuf/internal/glyphs"
	"github.com/jeffwilliams/sortbuf/internal/shaping"
	"github.com/jeffwilliams/sortbuf/internal/sorts"
)

// CreateTextRoot starts a new flow anchored at p. The root holds a placeholder glyph
// for the flow's direction and becomes the focused flow. Freeform is not a text mode
// and is refused.
func (s *State) CreateTextRoot(p f32.Point, mode sorts.LayoutMode) (sorts.BufferID, bool) {
	if !mode.IsText() {
		debug("State.CreateTextRoot: refusing to create a root in mode %s\n", mode)
		return sorts.NoBufferID, false
	}

	name, r, cursor := ltrPlaceholderName, rune(ltrPlaceholderRune), 1
	if mode == sorts.RTLText {
		name, r, cursor = rtlPlaceholderName, rtlPlaceholderRune, 0
	}

	root := sorts.Entry{
		Kind:         sorts.GlyphKind(name, s.placeholderAdvance(name), r),
		Mode:         mode,
		RootPosition: p,
		IsRoot:       true,
		Cursor:       cursor,
		BufferID:     s.ids.Get(),
		Placeholder:  true,
	}

	s.buf.Append(root)
	s.focusRoot(s.buf.Len() - 1)
	debug("State.CreateTextRoot: created %s flow %s at (%.1f,%.1f)\n", mode, root.BufferID, p.X, p.Y)
	s.assert()
	return root.BufferID, true
}

func (s *State) placeholderAdvance(name string) float32 {
	if s.provider != nil && s.provider.GlyphExists(name) {
		return s.provider.AdvanceWidth(name)
	}
	return placeholderAdvance
}

// CreateTextRootWithGlyph starts a new LTR flow whose root is the glyph itself rather
// than a placeholder.
func (s *State) CreateTextRootWithGlyph(name string, advance float32, codepoint rune, p f32.Point) sorts.BufferID {
	root := sorts.Entry{
		Kind:         sorts.GlyphKind(name, advance, codepoint),
		Mode:         sorts.LTRText,
		RootPosition: p,
		IsRoot:       true,
		Cursor:       1,
		BufferID:     s.ids.Get(),
	}

	s.buf.Append(root)
	s.focusRoot(s.buf.Len() - 1)
	s.reshape(root.BufferID)
	debug("State.CreateTextRootWithGlyph: created flow %s with %s\n", root.BufferID, name)
	s.assert()
	return root.BufferID
}

// InsertSortAtCursor types a glyph into the active flow. The glyph is appended to the
// end of the buffer as a member of the flow; the root, placeholder or not, is never
// replaced. Pass sorts.NoCodepoint for glyphs with no unicode value.
func (s *State) InsertSortAtCursor(name string, advance float32, codepoint rune) {
	root, ok := s.activeRoot()
	if !ok {
		s.CreateTextRootWithGlyph(name, advance, codepoint, DefaultRootPosition)
		return
	}

	r := s.buf.At(root)
	id := r.BufferID
	s.buf.Append(sorts.Entry{
		Kind:     sorts.GlyphKind(name, advance, codepoint),
		Mode:     r.Mode,
		Cursor:   sorts.NoCursor,
		BufferID: id,
	})
	debug("State.InsertSortAtCursor: appended %s to flow %s at index %d\n", name, id, s.buf.Len()-1)

	s.advanceCursor(root, 1)
	s.reshape(id)
	s.assert()
}

// InsertLineBreakAtCursor ends the current line of the active flow.
func (s *State) InsertLineBreakAtCursor() {
	root, ok := s.activeRoot()
	if !ok {
		debug("State.InsertLineBreakAtCursor: no flow to break\n")
		return
	}

	r := s.buf.At(root)
	id := r.BufferID
	s.buf.Append(sorts.Entry{
		Kind:     sorts.LineBreakKind(),
		Mode:     r.Mode,
		Cursor:   sorts.NoCursor,
		BufferID: id,
	})

	s.advanceCursor(root, 1)
	s.reshape(id)
	s.assert()
}

// DeleteSortAtCursor removes the most recently stored sort of the active flow. When
// only the root is left the root itself is removed and its id retired.
func (s *State) DeleteSortAtCursor() {
	root, ok := s.activeRoot()
	if !ok {
		debug("State.DeleteSortAtCursor: nothing to delete\n")
		return
	}

	id := s.buf.At(root).BufferID
	last := -1
	for i := s.buf.Len() - 1; i > root; i-- {
		e := s.buf.At(i)
		if !e.IsRoot && e.InFlow(id) {
			last = i
			break
		}
	}

	if last < 0 {
		s.buf.Delete(root)
		s.ids.Retire(id)
		if s.focused == id {
			s.focused = sorts.NoBufferID
		}
		debug("State.DeleteSortAtCursor: deleted the root of flow %s\n", id)
		s.assert()
		return
	}

	removed, _ := s.buf.Delete(last)
	s.advanceCursor(root, -1)
	debug("State.DeleteSortAtCursor: deleted %s from flow %s\n", removed.Kind.DisplayString(), id)
	s.reshape(id)
	s.assert()
}

// advanceCursor moves the cursor of root by delta, keeping it within the flow.
func (s *State) advanceCursor(root, delta int) {
	r := s.buf.At(root)
	c := r.Cursor
	if c < 0 {
		c = 0
	}
	r.Cursor = clamp(c+delta, 0, len(s.members(root)))
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// AddFreeformSort places a glyph outside of any flow and makes it the active sort.
func (s *State) AddFreeformSort(name string, p f32.Point, advance float32) int {
	s.deactivateAll()
	s.focused = sorts.NoBufferID

	cp := sorts.NoCodepoint
	if s.provider != nil {
		if r, ok := glyphs.CodepointForName(s.provider, name); ok {
			cp = r
		}
	}

	e := sorts.NewFreeform(name, advance, cp, p)
	e.Active = true
	s.buf.Append(e)
	debug("State.AddFreeformSort: placed %s at (%.1f,%.1f)\n", name, p.X, p.Y)
	s.assert()
	return s.buf.Len() - 1
}

// PopulateFromGlyphs places every glyph of p, in name order, as a freeform sort on
// the overview grid. Each call continues in the grid cell after the last one used,
// whatever else the buffer holds. It returns the number of sorts added.
func (s *State) PopulateFromGlyphs(p glyphs.Provider) int {
	if p == nil {
		return 0
	}

	names := p.GlyphNames()
	for _, name := range names {
		cp, ok := glyphs.CodepointForName(p, name)
		if !ok {
			cp = sorts.NoCodepoint
		}
		pos := s.grid.Position(s.cells)
		s.cells++
		s.buf.Append(sorts.NewFreeform(name, p.AdvanceWidth(name), cp, pos))
	}
	debug("State.PopulateFromGlyphs: added %d sorts\n", len(names))
	s.assert()
	return len(names)
}

// TypeRune types r into the active flow using the provider's glyph for it. Without a
// glyph for r, Arabic letters get their conventional name and anything else its
// uniXXXX name.
func (s *State) TypeRune(r rune) {
	if r == '\n' {
		s.InsertLineBreakAtCursor()
		return
	}

	name, ok := "", false
	if s.provider != nil {
		name, ok = glyphs.NameForRune(s.provider, r)
	}
	if !ok {
		name = shaping.BaseName(r)
	}
	s.InsertSortAtCursor(name, s.advanceOf(name), r)
}

// TypeGlyph types the named glyph into the active flow.
func (s *State) TypeGlyph(name string) {
	cp := sorts.NoCodepoint
	if s.provider != nil {
		if r, ok := glyphs.CodepointForName(s.provider, name); ok {
			cp = r
		}
	}
	s.InsertSortAtCursor(name, s.advanceOf(name), cp)
}

func (s *State) advanceOf(name string) float32 {
	if s.provider == nil {
		return placeholderAdvance
	}
	if s.provider.GlyphExists(name) {
		return s.provider.AdvanceWidth(name)
	}
	return placeholderAdvance
}
