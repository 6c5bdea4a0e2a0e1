// Package scene is the view of a sort buffer used by whatever draws it: the sorts
// with their positions, the caret, and the objects created to display each sort.
package scene

import (
	"gioui.org/f32"

	"github.com/jeffwilliams/sortbuf/internal/sorts"
	"github.com/jeffwilliams/sortbuf/internal/textedit"
)

var Debug func(message string, args ...interface{})

func debug(message string, args ...interface{}) {
	if Debug != nil {
		Debug(message, args...)
	}
}

// Item is one sort as seen by the renderer.
type Item struct {
	Index       int
	Kind        sorts.Kind
	Mode        sorts.LayoutMode
	BufferID    sorts.BufferID
	IsRoot      bool
	Active      bool
	Placeholder bool
	Position    f32.Point
	// Cursor is the flow's cursor for roots, and sorts.NoCursor otherwise.
	Cursor int
}

// Items lists every sort of s in storage order with its visual position. Sorts whose
// position can't be computed are left out.
func Items(s *textedit.State) []Item {
	items := make([]Item, 0, s.Len())
	s.Each(func(i int, e sorts.Entry) bool {
		p, ok := s.VisualPosition(i)
		if !ok {
			debug("Items: sort %d has no position\n", i)
			return true
		}
		items = append(items, Item{
			Index:       i,
			Kind:        e.Kind,
			Mode:        e.Mode,
			BufferID:    e.BufferID,
			IsRoot:      e.IsRoot,
			Active:      e.Active,
			Placeholder: e.Placeholder,
			Position:    p,
			Cursor:      e.Cursor,
		})
		return true
	})
	return items
}

// CaretExtent is the vertical line the caret is drawn as.
type CaretExtent struct {
	X      float32
	Top    float32
	Bottom float32
}

func (c CaretExtent) Height() float32 {
	return c.Top - c.Bottom
}

func CaretExtentOf(s *textedit.State) (CaretExtent, bool) {
	c, ok := s.Caret()
	if !ok {
		return CaretExtent{}, false
	}
	return CaretExtent{X: c.Position.X, Top: c.Top, Bottom: c.Bottom}, true
}
