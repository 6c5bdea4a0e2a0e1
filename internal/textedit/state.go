// Package textedit edits a sort buffer holding several text flows at once.
//
// Every flow starts at a root entry that stores the flow's anchor and cursor. New
// sorts are appended to the end of the underlying buffer and tagged with their flow's
// BufferID, so the order in storage is not the reading order. The reading order and
// every position are rebuilt from the BufferID tags whenever they are asked for.
package textedit

import (
	"gioui.org/f32"

	"github.com/jeffwilliams/sortbuf/internal/gapbuf"
	"github.com/jeffwilliams/sortbuf/internal/glyphs"
	"github.com/jeffwilliams/sortbuf/internal/shaping"
	"github.com/jeffwilliams/sortbuf/internal/sorts"
)

var Debug func(message string, args ...interface{})

func debug(message string, args ...interface{}) {
	if Debug != nil {
		Debug(message, args...)
	}
}

// AssertInvariants makes every mutating operation check the buffer afterwards and
// panic if it is inconsistent. It is meant for tests and debugging.
var AssertInvariants = false

// DefaultRootPosition is where a flow is anchored when text is typed with no flow
// to type into.
var DefaultRootPosition = f32.Pt(500, 0)

const (
	ltrPlaceholderName = "a"
	ltrPlaceholderRune = 'a'
	rtlPlaceholderName = "alef-ar"
	rtlPlaceholderRune = 0x627
	placeholderAdvance = 500
)

type Options struct {
	// Provider is used for placeholder advances, typing runes and pre-population.
	// It may be nil.
	Provider glyphs.Provider
	// Shaper is run over the edited flow after each change. It may be nil.
	Shaper shaping.Shaper
	// Multiline makes up and down move between the lines of a flow instead of
	// between flows.
	Multiline bool
	// Metrics overrides the provider's metrics when not zero.
	Metrics glyphs.Metrics
	// IDs defaults to the process wide allocator.
	IDs *sorts.IdGen
	// Grid lays out pre-populated sorts. The zero value means DefaultGrid.
	Grid Grid
}

// State is the editing state of one session. It is not safe for concurrent use.
type State struct {
	buf       *gapbuf.GapBuffer[sorts.Entry]
	provider  glyphs.Provider
	shaper    shaping.Shaper
	multiline bool
	metrics   glyphs.Metrics
	ids       *sorts.IdGen
	grid      Grid
	// focused is the flow being typed into. When it names no live root the active
	// root is found by the fallback rules in activeRoot.
	focused sorts.BufferID
	// cells is the number of grid cells handed out by PopulateFromGlyphs.
	cells int
}

func New(opts Options) *State {
	s := &State{
		buf:       gapbuf.New[sorts.Entry](),
		provider:  opts.Provider,
		shaper:    opts.Shaper,
		multiline: opts.Multiline,
		metrics:   opts.Metrics,
		ids:       opts.IDs,
		grid:      opts.Grid,
	}

	if s.metrics.IsZero() && s.provider != nil {
		s.metrics = s.provider.Metrics()
	}
	if s.metrics.IsZero() {
		s.metrics = glyphs.DefaultMetrics()
	}
	if s.ids == nil {
		s.ids = sorts.ProcessIds()
	}
	if s.grid.PerRow == 0 {
		s.grid = DefaultGrid()
	}
	return s
}

func (s *State) Metrics() glyphs.Metrics {
	return s.metrics
}

func (s *State) Multiline() bool {
	return s.multiline
}

func (s *State) SetMultiline(b bool) {
	s.multiline = b
}

func (s *State) Len() int {
	return s.buf.Len()
}

// Get returns a copy of the entry at i. Indexes are only valid until the next change.
func (s *State) Get(i int) (sorts.Entry, bool) {
	return s.buf.Get(i)
}

func (s *State) Each(fn func(i int, e sorts.Entry) bool) {
	s.buf.Each(fn)
}

// Clear removes every sort and retires the ids of the flows that were still alive.
func (s *State) Clear() {
	s.buf.Each(func(i int, e sorts.Entry) bool {
		if e.IsRoot {
			s.ids.Retire(e.BufferID)
		}
		return true
	})
	s.buf.Clear()
	s.focused = sorts.NoBufferID
	s.cells = 0
	debug("State.Clear\n")
	s.assert()
}

// TextSorts returns the indexes of the sorts that belong to a flow.
func (s *State) TextSorts() []int {
	return s.indexes(func(e sorts.Entry) bool { return e.IsText() })
}

func (s *State) FreeformSorts() []int {
	return s.indexes(func(e sorts.Entry) bool { return e.Mode == sorts.Freeform })
}

// Roots returns the indexes of the flow roots in storage order.
func (s *State) Roots() []int {
	return s.indexes(func(e sorts.Entry) bool { return e.IsRoot })
}

func (s *State) indexes(match func(e sorts.Entry) bool) []int {
	var r []int
	s.buf.Each(func(i int, e sorts.Entry) bool {
		if match(e) {
			r = append(r, i)
		}
		return true
	})
	return r
}

// Flows returns the ids of the live flows in storage order of their roots.
func (s *State) Flows() []sorts.BufferID {
	var ids []sorts.BufferID
	for _, i := range s.Roots() {
		e, _ := s.buf.Get(i)
		ids = append(ids, e.BufferID)
	}
	return ids
}

func (s *State) rootIndex(id sorts.BufferID) (int, bool) {
	if !id.Valid() {
		return -1, false
	}
	idx := -1
	s.buf.Each(func(i int, e sorts.Entry) bool {
		if e.IsRoot && e.BufferID == id {
			idx = i
			return false
		}
		return true
	})
	return idx, idx >= 0
}

// members returns the indexes of the flow rooted at root in reading order, the
// root first.
func (s *State) members(root int) []int {
	r, ok := s.buf.Get(root)
	if !ok || !r.IsRoot {
		return nil
	}

	m := []int{root}
	for i := root + 1; i < s.buf.Len(); i++ {
		e := s.buf.At(i)
		if e.IsRoot || !e.InFlow(r.BufferID) {
			continue
		}
		m = append(m, i)
	}
	return m
}

// FlowLength is the number of cursor stops past the start of the flow: one for
// the root plus one for each sort after it.
func (s *State) FlowLength(id sorts.BufferID) int {
	root, ok := s.rootIndex(id)
	if !ok {
		return 0
	}
	return len(s.members(root))
}

// Focused returns the flow that typing goes to.
func (s *State) Focused() (sorts.BufferID, bool) {
	root, ok := s.activeRoot()
	if !ok {
		return sorts.NoBufferID, false
	}
	return s.buf.At(root).BufferID, true
}

// Focus makes id the flow that typing goes to and activates its root.
func (s *State) Focus(id sorts.BufferID) bool {
	root, ok := s.rootIndex(id)
	if !ok {
		return false
	}
	s.focusRoot(root)
	s.assert()
	return true
}

func (s *State) focusRoot(root int) {
	s.deactivateAll()
	e := s.buf.At(root)
	e.Active = true
	s.focused = e.BufferID
	debug("State: focused flow %s at index %d\n", e.BufferID, root)
}

// activeRoot finds the root of the flow being edited. The focused flow wins. Without
// one, the first active root is used, then the first root that has a cursor, and last
// of all the most recently created root.
func (s *State) activeRoot() (int, bool) {
	if root, ok := s.rootIndex(s.focused); ok {
		return root, true
	}

	active, withCursor, newest := -1, -1, -1
	var newestID sorts.BufferID
	s.buf.Each(func(i int, e sorts.Entry) bool {
		if !e.IsRoot {
			return true
		}
		if e.Active && active < 0 {
			active = i
		}
		if e.HasCursor() && withCursor < 0 {
			withCursor = i
		}
		if e.BufferID > newestID {
			newest, newestID = i, e.BufferID
		}
		return true
	})

	switch {
	case active >= 0:
		return active, true
	case withCursor >= 0:
		return withCursor, true
	case newest >= 0:
		return newest, true
	}
	return -1, false
}

func (s *State) deactivateAll() {
	for i := 0; i < s.buf.Len(); i++ {
		s.buf.At(i).Active = false
	}
}

// ActiveSort returns the first active sort.
func (s *State) ActiveSort() (idx int, e sorts.Entry, ok bool) {
	idx = -1
	s.buf.Each(func(i int, v sorts.Entry) bool {
		if v.Active {
			idx, e, ok = i, v, true
			return false
		}
		return true
	})
	return
}

// ActivateSort makes the sort at i the only active one. Activating a sort of a flow
// also focuses that flow.
func (s *State) ActivateSort(i int) bool {
	e, ok := s.buf.Get(i)
	if !ok {
		return false
	}

	s.deactivateAll()
	s.buf.At(i).Active = true
	if e.IsText() {
		s.focused = e.BufferID
	} else {
		s.focused = sorts.NoBufferID
	}
	debug("State.ActivateSort: activated %d (%s)\n", i, e.Kind.DisplayString())
	s.assert()
	return true
}

// ClearActiveState deactivates every sort and drops the focus.
func (s *State) ClearActiveState() {
	s.deactivateAll()
	s.focused = sorts.NoBufferID
}

func (s *State) assert() {
	if !AssertInvariants {
		return
	}
	if err := s.Check(); err != nil {
		panic(err)
	}
}
