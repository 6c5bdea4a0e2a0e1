package textedit

import (
	"math"

	"github.com/jeffwilliams/sortbuf/internal/sorts"
)

func (s *State) MoveCursorLeft() {
	s.moveCursorBy(-1)
}

func (s *State) MoveCursorRight() {
	s.moveCursorBy(1)
}

func (s *State) moveCursorBy(delta int) {
	root, ok := s.activeRoot()
	if !ok {
		return
	}
	s.advanceCursor(root, delta)
	s.assert()
}

// MoveCursorTo puts the cursor of the active flow at pos, clamped to the flow.
func (s *State) MoveCursorTo(pos int) {
	root, ok := s.activeRoot()
	if !ok {
		return
	}
	s.buf.At(root).Cursor = clamp(pos, 0, len(s.members(root)))
	s.assert()
}

// Cursor returns the cursor of the active flow.
func (s *State) Cursor() (int, bool) {
	root, ok := s.activeRoot()
	if !ok {
		return sorts.NoCursor, false
	}
	return s.buf.At(root).Cursor, true
}

// MoveCursorUp moves to the line above within the flow in multiline mode, and to the
// end of the previous flow otherwise.
func (s *State) MoveCursorUp() {
	if s.multiline {
		s.moveCursorLine(-1)
		return
	}

	root, ok := s.activeRoot()
	if !ok {
		return
	}
	for i := root - 1; i >= 0; i-- {
		if s.buf.At(i).IsRoot {
			s.focusRoot(i)
			s.buf.At(i).Cursor = len(s.members(i))
			break
		}
	}
	s.assert()
}

// MoveCursorDown moves to the line below within the flow in multiline mode, and to the
// start of the next flow otherwise.
func (s *State) MoveCursorDown() {
	if s.multiline {
		s.moveCursorLine(1)
		return
	}

	root, ok := s.activeRoot()
	if !ok {
		return
	}
	for i := root + 1; i < s.buf.Len(); i++ {
		if s.buf.At(i).IsRoot {
			s.focusRoot(i)
			s.buf.At(i).Cursor = 0
			break
		}
	}
	s.assert()
}

// cursorStop is where a cursor stop of a flow is, relative to the flow's anchor.
type cursorStop struct {
	x    float32
	line int
}

// cursorStops returns the position of every cursor stop of the flow rooted at root.
// Stops 0 and 1 are at the anchor and stop k follows the k-th sort, counting the
// root as the first.
func (s *State) cursorStops(root int) []cursorStop {
	m := s.members(root)
	rtl := s.buf.At(root).Mode == sorts.RTLText

	stops := make([]cursorStop, 0, len(m)+1)
	stops = append(stops, cursorStop{}, cursorStop{})

	var x float32
	line := 0
	for _, i := range m[1:] {
		e := s.buf.At(i)
		switch {
		case e.Kind.IsLineBreak():
			x = 0
			line++
		case rtl:
			x -= e.Kind.Advance()
		default:
			x += e.Kind.Advance()
		}
		stops = append(stops, cursorStop{x, line})
	}
	return stops
}

// moveCursorLine moves the cursor dir lines down (positive) or up (negative) to the
// stop with the nearest horizontal offset.
func (s *State) moveCursorLine(dir int) {
	root, ok := s.activeRoot()
	if !ok {
		return
	}

	stops := s.cursorStops(root)
	r := s.buf.At(root)
	cur := stops[clamp(r.Cursor, 0, len(stops)-1)]
	target := cur.line + dir

	best, bestDist := -1, float32(math.MaxFloat32)
	for i, st := range stops {
		if st.line != target {
			continue
		}
		d := st.x - cur.x
		if d < 0 {
			d = -d
		}
		if d < bestDist {
			best, bestDist = i, d
		}
	}

	if best < 0 {
		debug("State.moveCursorLine: no line %d in flow %s\n", target, r.BufferID)
		return
	}
	r.Cursor = best
	s.assert()
}
