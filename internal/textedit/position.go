package textedit

import (
	"math"

	"gioui.org/f32"

	"github.com/jeffwilliams/sortbuf/internal/glyphs"
	"github.com/jeffwilliams/sortbuf/internal/sorts"
)

// FlowPosition computes where the text sort at i sits. A root is at its anchor. Any
// other sort is at the anchor moved by the advances of the sorts of its flow that
// come after the root, up to and including itself: LTR flows move right, RTL flows
// move left, and a line break returns to the anchor's x one line lower.
//
// Only sorts whose BufferID equals the flow's are counted, wherever they are stored.
// Nothing is cached; the result is only valid until the next change.
func (s *State) FlowPosition(i int, m glyphs.Metrics) (f32.Point, bool) {
	e, ok := s.buf.Get(i)
	if !ok || !e.IsText() {
		return f32.Point{}, false
	}

	root, ok := s.ownerRoot(i)
	if !ok {
		return f32.Point{}, false
	}
	r := s.buf.At(root)
	if root == i {
		return r.RootPosition, true
	}

	var x, y float32
	for j := root + 1; j <= i; j++ {
		c := s.buf.At(j)
		if c.IsRoot || c.BufferID != r.BufferID {
			continue
		}
		if c.Kind.IsLineBreak() {
			x = 0
			y -= m.LineHeight()
			continue
		}
		if r.Mode == sorts.RTLText {
			x -= c.Kind.Advance()
		} else {
			x += c.Kind.Advance()
		}
	}

	return r.RootPosition.Add(f32.Pt(x, y)), true
}

// VisualPosition is where the sort at i is drawn.
func (s *State) VisualPosition(i int) (f32.Point, bool) {
	e, ok := s.buf.Get(i)
	if !ok {
		return f32.Point{}, false
	}
	if e.IsRoot || e.Mode == sorts.Freeform {
		return e.RootPosition, true
	}
	return s.FlowPosition(i, s.metrics)
}

// Caret is the insertion point of the focused flow. Top and Bottom are the vertical
// extent of the caret line.
type Caret struct {
	BufferID sorts.BufferID
	Cursor   int
	Position f32.Point
	Top      float32
	Bottom   float32
}

// Caret returns the caret of the active flow. Cursor stop 0 and 1 are both at the
// anchor; stop k is at the position of the k-th sort of the flow, counting the root
// as the first.
func (s *State) Caret() (c Caret, ok bool) {
	root, ok := s.activeRoot()
	if !ok {
		return
	}

	r := s.buf.At(root)
	m := s.members(root)
	cursor := clamp(r.Cursor, 0, len(m))

	p := r.RootPosition
	if cursor > 1 {
		p, _ = s.FlowPosition(m[cursor-1], s.metrics)
	}

	c = Caret{
		BufferID: r.BufferID,
		Cursor:   cursor,
		Position: p,
		Top:      p.Y + s.metrics.Ascender,
		Bottom:   p.Y + s.metrics.Descender,
	}
	return c, true
}

// FindSortHandleAt returns the first sort whose handle, which hangs at the
// descender below the sort, is closer to p than tolerance.
func (s *State) FindSortHandleAt(p f32.Point, tolerance float32) (int, bool) {
	offset := f32.Pt(0, s.metrics.Descender)
	return s.findNear(p, tolerance, offset)
}

// FindSortBodyAt returns the first sort whose position is closer to p than tolerance.
func (s *State) FindSortBodyAt(p f32.Point, tolerance float32) (int, bool) {
	return s.findNear(p, tolerance, f32.Point{})
}

func (s *State) findNear(p f32.Point, tolerance float32, offset f32.Point) (int, bool) {
	for i := 0; i < s.buf.Len(); i++ {
		pos, ok := s.VisualPosition(i)
		if !ok {
			continue
		}
		if distance(p, pos.Add(offset)) < tolerance {
			return i, true
		}
	}
	return -1, false
}

func distance(a, b f32.Point) float32 {
	d := a.Sub(b)
	return float32(math.Hypot(float64(d.X), float64(d.Y)))
}

// Grid lays sorts out in rows for an overview of a whole glyph set.
type Grid struct {
	Origin   f32.Point
	PerRow   int
	HSpacing float32
	VSpacing float32
}

const (
	gridCellWidth  = 1000
	gridCellHeight = 1200
)

func DefaultGrid() Grid {
	return Grid{PerRow: 16, HSpacing: 64, VSpacing: 400}
}

// Position is the position of cell i. Rows go downward.
func (g Grid) Position(i int) f32.Point {
	row, col := i/g.PerRow, i%g.PerRow
	x := float32(col) * (gridCellWidth + g.HSpacing)
	y := -float32(row) * (gridCellHeight + g.VSpacing)
	return g.Origin.Add(f32.Pt(x, y))
}

// Cell is the inverse of Position. Points left of the origin have no cell, and points
// above it are in the first row.
func (g Grid) Cell(p f32.Point) (int, bool) {
	rel := p.Sub(g.Origin)
	if rel.X < 0 {
		return -1, false
	}
	col := int(rel.X / (gridCellWidth + g.HSpacing))
	if col >= g.PerRow {
		return -1, false
	}
	row := 0
	if rel.Y <= 0 {
		row = int(-rel.Y / (gridCellHeight + g.VSpacing))
	}
	return row*g.PerRow + col, true
}

// GridIndexAt returns the freeform sort placed in the grid cell that contains p.
func (s *State) GridIndexAt(p f32.Point) (int, bool) {
	cell, ok := s.grid.Cell(p)
	if !ok || cell >= s.cells {
		return -1, false
	}

	want := s.grid.Position(cell)
	idx := -1
	s.buf.Each(func(i int, e sorts.Entry) bool {
		if e.Mode == sorts.Freeform && e.RootPosition == want {
			idx = i
			return false
		}
		return true
	})
	return idx, idx >= 0
}
