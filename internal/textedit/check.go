package textedit

import (
	"github.com/jeffwilliams/sortbuf/internal/errs"
	"github.com/jeffwilliams/sortbuf/internal/sorts"
)

// Check verifies the consistency of the buffer and returns every problem found, or
// nil.
func (s *State) Check() error {
	var e errs.Errors

	roots := make(map[sorts.BufferID]int)
	for i := 0; i < s.buf.Len(); i++ {
		v := s.buf.At(i)

		if v.Mode == sorts.Freeform {
			if v.BufferID.Valid() {
				e.Addf("freeform sort %d has buffer id %s", i, v.BufferID)
			}
			if v.IsRoot {
				e.Addf("freeform sort %d is marked as a root", i)
			}
			if v.HasCursor() {
				e.Addf("freeform sort %d has a cursor", i)
			}
			continue
		}

		if !v.BufferID.Valid() {
			e.Addf("text sort %d has no buffer id", i)
			continue
		}

		if !v.IsRoot {
			if v.HasCursor() {
				e.Addf("sort %d has a cursor but is not a root", i)
			}
			if _, ok := s.ownerRoot(i); !ok {
				e.Addf("sort %d of flow %s has no root before it", i, v.BufferID)
			}
			continue
		}

		if prev, ok := roots[v.BufferID]; ok {
			e.Addf("flow %s has two roots, at %d and %d", v.BufferID, prev, i)
		}
		roots[v.BufferID] = i

		if s.ids.Retired(v.BufferID) {
			e.Addf("root %d uses the retired id %s", i, v.BufferID)
		}

		if l := len(s.members(i)); v.HasCursor() && v.Cursor > l {
			e.Addf("cursor %d of flow %s is past the flow length %d", v.Cursor, v.BufferID, l)
		}
	}

	return e.NilIfEmpty()
}

// ownerRoot walks backward from the sort at i to the root of its flow. Sorts of other
// flows are skipped, never counted.
func (s *State) ownerRoot(i int) (int, bool) {
	v, ok := s.buf.Get(i)
	if !ok || !v.BufferID.Valid() {
		return -1, false
	}
	if v.IsRoot {
		return i, true
	}

	for j := i - 1; j >= 0; j-- {
		c := s.buf.At(j)
		if c.BufferID != v.BufferID {
			continue
		}
		if c.IsRoot {
			return j, true
		}
	}
	return -1, false
}
