package sorts

import (
	"sync"
	"testing"

	"gioui.org/f32"
	"github.com/stretchr/testify/assert"
)

func TestKind(t *testing.T) {
	tests := []struct {
		name      string
		kind      Kind
		glyph     bool
		codepoint bool
		advance   float32
		display   string
	}{
		{"glyph with codepoint", GlyphKind("a", 500, 'a'), true, true, 500, "U+0061"},
		{"named glyph", GlyphKind("a.alt", 480, NoCodepoint), true, false, 480, "a.alt"},
		{"line break", LineBreakKind(), false, false, 0, "↵"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.glyph, tc.kind.IsGlyph())
			assert.Equal(t, !tc.glyph, tc.kind.IsLineBreak())
			assert.Equal(t, tc.codepoint, tc.kind.HasCodepoint())
			assert.Equal(t, tc.advance, tc.kind.Advance())
			assert.Equal(t, tc.display, tc.kind.DisplayString())
		})
	}
}

func TestParseLayoutMode(t *testing.T) {
	for _, m := range []LayoutMode{LTRText, RTLText, Freeform} {
		got, ok := ParseLayoutMode(m.String())
		if !ok || got != m {
			t.Fatalf("ParseLayoutMode(%q) = %v, %v", m.String(), got, ok)
		}
	}
	if _, ok := ParseLayoutMode("sideways"); ok {
		t.Fatalf("parsed an unknown layout mode")
	}
}

func TestFreeformHasNoFlow(t *testing.T) {
	e := NewFreeform("b", 600, 'b', f32.Pt(10, 20))

	assert.False(t, e.IsText())
	assert.False(t, e.HasCursor())
	assert.False(t, e.BufferID.Valid())
	assert.False(t, e.InFlow(NoBufferID))
	assert.Equal(t, f32.Pt(10, 20), e.RootPosition)
}

func TestIdsIncreaseAndAreNeverReused(t *testing.T) {
	var g IdGen
	a := g.Get()
	b := g.Get()
	g.Retire(a)
	c := g.Get()

	assert.Equal(t, BufferID(1), a)
	assert.True(t, b > a)
	assert.True(t, c > b)
	assert.True(t, g.Retired(a))
	assert.False(t, g.Retired(c))
	assert.Equal(t, c, g.Last())
}

func TestIdsAreUniqueAcrossGoroutines(t *testing.T) {
	var g IdGen
	var wg sync.WaitGroup
	ids := make([][]BufferID, 8)

	for i := range ids {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				ids[i] = append(ids[i], g.Get())
			}
		}(i)
	}
	wg.Wait()

	seen := map[BufferID]bool{}
	for _, l := range ids {
		for _, id := range l {
			if seen[id] {
				t.Fatalf("id %v handed out twice", id)
			}
			seen[id] = true
		}
	}
}
