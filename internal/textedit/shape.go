package textedit

import (
	"github.com/go-text/typesetting/di"

	"github.com/jeffwilliams/sortbuf/internal/shaping"
	"github.com/jeffwilliams/sortbuf/internal/sorts"
)

// shapingRun is a shaping.Run together with the buffer indexes it was read from.
type shapingRun struct {
	shaping.Run
	indexes []int
}

// Runs splits the flow id into the runs handed to the shaper: maximal stretches of
// glyphs that have codepoints, in reading order. Line breaks, glyphs without a
// codepoint and placeholders end a run.
func (s *State) Runs(id sorts.BufferID) []shaping.Run {
	var runs []shaping.Run
	for _, r := range s.runs(id) {
		runs = append(runs, r.Run)
	}
	return runs
}

func (s *State) runs(id sorts.BufferID) []shapingRun {
	root, ok := s.rootIndex(id)
	if !ok {
		return nil
	}

	dir := di.DirectionLTR
	if s.buf.At(root).Mode == sorts.RTLText {
		dir = di.DirectionRTL
	}

	var (
		runs []shapingRun
		cur  = shapingRun{Run: shaping.Run{Direction: dir}}
	)
	flush := func() {
		if len(cur.indexes) > 0 {
			runs = append(runs, cur)
		}
		cur = shapingRun{Run: shaping.Run{Direction: dir}}
	}

	for _, i := range s.members(root) {
		e := s.buf.At(i)
		if !e.Kind.HasCodepoint() || e.Placeholder {
			flush()
			continue
		}
		cur.Codepoints = append(cur.Codepoints, e.Kind.Codepoint)
		cur.Names = append(cur.Names, e.Kind.GlyphName)
		cur.Advances = append(cur.Advances, e.Kind.AdvanceWidth)
		cur.indexes = append(cur.indexes, i)
	}
	flush()
	return runs
}

// reshape runs the shaper over the flow id and stores the substituted names and
// advances.
func (s *State) reshape(id sorts.BufferID) {
	if s.shaper == nil {
		return
	}

	for _, r := range s.runs(id) {
		o := s.shaper.Shape(r.Run)
		if !o.Changed(r.Run) {
			continue
		}
		for g, c := range o.Clusters {
			if c < 0 || c >= len(r.indexes) {
				continue
			}
			e := s.buf.At(r.indexes[c])
			e.Kind.GlyphName = o.Names[g]
			e.Kind.AdvanceWidth = o.Advances[g]
		}
		debug("State.reshape: reshaped a run of %d glyphs in flow %s\n", r.Len(), id)
	}
}
