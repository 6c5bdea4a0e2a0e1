package sorts

import (
	"fmt"
	"sync"
	"sync/atomic"
)

// BufferID identifies one text flow. Ids are never reused, so an id that was retired
// along with its flow can never be confused with a later flow.
type BufferID uint32

const NoBufferID BufferID = 0

func (id BufferID) Valid() bool {
	return id != NoBufferID
}

func (id BufferID) String() string {
	if id == NoBufferID {
		return "none"
	}
	return fmt.Sprintf("#%d", uint32(id))
}

// IdGen hands out BufferIDs in increasing order starting at 1. Unlike a window id
// generator it has no free list: Retire only records that the id is dead.
// Get is safe to call from several goroutines.
type IdGen struct {
	last    atomic.Uint32
	lock    sync.Mutex
	retired map[BufferID]struct{}
}

func (g *IdGen) Get() BufferID {
	return BufferID(g.last.Add(1))
}

// Last returns the most recently allocated id, or NoBufferID if none was allocated.
func (g *IdGen) Last() BufferID {
	return BufferID(g.last.Load())
}

func (g *IdGen) Retire(id BufferID) {
	if !id.Valid() {
		return
	}
	g.lock.Lock()
	if g.retired == nil {
		g.retired = make(map[BufferID]struct{})
	}
	g.retired[id] = struct{}{}
	g.lock.Unlock()
}

func (g *IdGen) Retired(id BufferID) bool {
	g.lock.Lock()
	defer g.lock.Unlock()
	_, ok := g.retired[id]
	return ok
}

var processIds IdGen

// ProcessIds is the allocator shared by every editing session in the process.
func ProcessIds() *IdGen {
	return &processIds
}
