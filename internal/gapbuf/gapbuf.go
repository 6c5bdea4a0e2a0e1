// Package gapbuf implements a generic gap buffer: a sequence with one contiguous unused
// region (the gap) that makes inserts and deletes near the most recent edit cheap.
package gapbuf

const DefaultCapacity = 1024

// GapBuffer holds its elements in buf, with buf[gapStart:gapEnd] unused.
type GapBuffer[T any] struct {
	buf              []T
	gapStart, gapEnd int
}

func New[T any]() *GapBuffer[T] {
	return NewWithCapacity[T](DefaultCapacity)
}

func NewWithCapacity[T any](capacity int) *GapBuffer[T] {
	if capacity < 0 {
		capacity = 0
	}
	return &GapBuffer[T]{
		buf:    make([]T, capacity),
		gapEnd: capacity,
	}
}

// FromSlice builds a gap buffer holding a copy of vals with the gap at the end.
func FromSlice[T any](vals []T) *GapBuffer[T] {
	capacity := DefaultCapacity
	for capacity < len(vals) {
		capacity *= 2
	}
	g := NewWithCapacity[T](capacity)
	copy(g.buf, vals)
	g.gapStart = len(vals)
	return g
}

func (g *GapBuffer[T]) Len() int {
	return len(g.buf) - g.gapWidth()
}

func (g *GapBuffer[T]) Cap() int {
	return len(g.buf)
}

func (g *GapBuffer[T]) Empty() bool {
	return g.Len() == 0
}

func (g *GapBuffer[T]) gapWidth() int {
	return g.gapEnd - g.gapStart
}

func (g *GapBuffer[T]) physical(index int) int {
	if index < g.gapStart {
		return index
	}
	return index + g.gapWidth()
}

// Get returns the element at the logical index, or false if index is out of range.
func (g *GapBuffer[T]) Get(index int) (v T, ok bool) {
	if index < 0 || index >= g.Len() {
		return
	}
	return g.buf[g.physical(index)], true
}

// At returns a pointer to the element at the logical index, or nil if index is out of range.
// The pointer is only valid until the next Insert, Delete or Clear.
func (g *GapBuffer[T]) At(index int) *T {
	if index < 0 || index >= g.Len() {
		return nil
	}
	return &g.buf[g.physical(index)]
}

func (g *GapBuffer[T]) Set(index int, v T) bool {
	p := g.At(index)
	if p == nil {
		return false
	}
	*p = v
	return true
}

// Insert places v so that it ends up at logical index. It is a no-op returning false
// unless 0 <= index <= Len().
func (g *GapBuffer[T]) Insert(index int, v T) bool {
	if index < 0 || index > g.Len() {
		return false
	}

	if g.gapWidth() == 0 {
		g.growGap()
	}

	g.moveGapTo(index)
	g.buf[g.gapStart] = v
	g.gapStart++
	return true
}

func (g *GapBuffer[T]) Append(v T) {
	g.Insert(g.Len(), v)
}

// Delete removes and returns the element at the logical index.
func (g *GapBuffer[T]) Delete(index int) (v T, ok bool) {
	if index < 0 || index >= g.Len() {
		return
	}

	g.moveGapTo(index)

	// The element to delete is now just after the gap; widening the gap swallows it.
	v = g.buf[g.gapEnd]
	var zero T
	g.buf[g.gapEnd] = zero
	g.gapEnd++
	return v, true
}

// moveGapTo moves the gap so that gapStart == pos. Only the elements between the old and
// new gap position are copied.
func (g *GapBuffer[T]) moveGapTo(pos int) {
	if pos == g.gapStart {
		return
	}

	width := g.gapWidth()

	if pos < g.gapStart {
		n := g.gapStart - pos
		copy(g.buf[g.gapEnd-n:g.gapEnd], g.buf[pos:g.gapStart])
		g.gapStart = pos
		g.gapEnd = pos + width
		clear(g.buf[pos : pos+min(n, width)])
		return
	}

	n := pos - g.gapStart
	oldGapEnd := g.gapEnd
	copy(g.buf[g.gapStart:g.gapStart+n], g.buf[g.gapEnd:g.gapEnd+n])
	g.gapStart = pos
	g.gapEnd = pos + width
	clear(g.buf[max(g.gapStart, oldGapEnd):g.gapEnd])
}

// growGap doubles the capacity. The elements after the gap are moved to the end of the
// new backing array so all of the added room becomes gap.
func (g *GapBuffer[T]) growGap() {
	oldCap := len(g.buf)
	newCap := oldCap * 2
	if newCap == 0 {
		newCap = DefaultCapacity
	}

	buf := make([]T, newCap)
	copy(buf, g.buf[:g.gapStart])
	after := oldCap - g.gapEnd
	copy(buf[newCap-after:], g.buf[g.gapEnd:])

	g.buf = buf
	g.gapEnd = newCap - after
}

// Clear removes all elements but keeps the capacity.
func (g *GapBuffer[T]) Clear() {
	clear(g.buf)
	g.gapStart = 0
	g.gapEnd = len(g.buf)
}

// Each calls fn for each element in logical order until fn returns false.
func (g *GapBuffer[T]) Each(fn func(index int, v T) bool) {
	for i := 0; i < g.gapStart; i++ {
		if !fn(i, g.buf[i]) {
			return
		}
	}
	w := g.gapWidth()
	for i := g.gapEnd; i < len(g.buf); i++ {
		if !fn(i-w, g.buf[i]) {
			return
		}
	}
}

func (g *GapBuffer[T]) ToSlice() []T {
	s := make([]T, 0, g.Len())
	s = append(s, g.buf[:g.gapStart]...)
	s = append(s, g.buf[g.gapEnd:]...)
	return s
}

func (g *GapBuffer[T]) Iter() *Iter[T] {
	return &Iter[T]{g: g}
}

// Iter walks a GapBuffer in logical order. It reads the buffer lazily, so it must not be
// used across a mutation of the buffer. Reset starts the walk over.
type Iter[T any] struct {
	g    *GapBuffer[T]
	next int
}

func (it *Iter[T]) Next() (index int, v T, ok bool) {
	v, ok = it.g.Get(it.next)
	if !ok {
		return
	}
	index = it.next
	it.next++
	return
}

func (it *Iter[T]) Reset() {
	it.next = 0
}
