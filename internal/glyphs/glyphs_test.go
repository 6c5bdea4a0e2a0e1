package glyphs

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/jeffwilliams/sortbuf/internal/sorts"
)

func TestTableNamesAreSortedAndPrefixable(t *testing.T) {
	tbl := NewTable(Metrics{})
	tbl.Add(Glyph{Name: "beh-ar.fina", Codepoint: sorts.NoCodepoint, Advance: 300})
	tbl.Add(Glyph{Name: "beh-ar", Codepoint: 0x628, Advance: 280})
	tbl.Add(Glyph{Name: "a", Codepoint: 'a', Advance: 500})
	tbl.Add(Glyph{Name: "beh-ar.init", Codepoint: sorts.NoCodepoint, Advance: 250})

	assert.Equal(t, []string{"a", "beh-ar", "beh-ar.fina", "beh-ar.init"}, tbl.GlyphNames())
	assert.Equal(t, []string{"beh-ar.fina", "beh-ar.init"}, tbl.NamesWithPrefix("beh-ar."))
	assert.Equal(t, DefaultMetrics(), tbl.Metrics())
	assert.Equal(t, float32(300), tbl.AdvanceWidth("beh-ar.fina"))
	assert.Equal(t, float32(0), tbl.AdvanceWidth("missing"))

	n, ok := tbl.NameForRune(0x628)
	if !ok || n != "beh-ar" {
		t.Fatalf("NameForRune(U+0628) = %q, %v", n, ok)
	}
	if _, ok := tbl.NameForRune(0x62A); ok {
		t.Fatalf("NameForRune found a glyph that was never added")
	}
}

func TestFirstGlyphForRuneWins(t *testing.T) {
	tbl := NewTable(Metrics{})
	tbl.Add(Glyph{Name: "a", Codepoint: 'a', Advance: 500})
	tbl.Add(Glyph{Name: "a.alt", Codepoint: 'a', Advance: 510})

	n, _ := NameForRune(tbl, 'a')
	assert.Equal(t, "a", n)
}

func TestUniNames(t *testing.T) {
	tests := []struct {
		r    rune
		name string
	}{
		{0x628, "uni0628"},
		{'A', "uni0041"},
		{0x1F600, "u1F600"},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.name, UniName(tc.r))
		r, ok := ParseUniName(tc.name)
		if !ok || r != tc.r {
			t.Fatalf("ParseUniName(%q) = %U, %v", tc.name, r, ok)
		}
	}

	for _, name := range []string{"beh-ar", "uface", "ubeef", "uni0a2b", "u110000", "uniD800", "uniXYZW"} {
		if r, ok := ParseUniName(name); ok {
			t.Fatalf("ParseUniName(%q) = %U, want no codepoint", name, r)
		}
	}
}

func TestParseCodepoint(t *testing.T) {
	tests := []struct {
		in   string
		want rune
		err  bool
	}{
		{"0628", 0x628, false},
		{"U+0627", 0x627, false},
		{"0x61", 'a', false},
		{"", sorts.NoCodepoint, false},
		{"zz", sorts.NoCodepoint, true},
		{"10FFFF", 0x10FFFF, false},
		{"110000", sorts.NoCodepoint, true},
		{"U+FFFFFFFF", sorts.NoCodepoint, true},
	}

	for _, tc := range tests {
		got, err := ParseCodepoint(tc.in)
		if (err != nil) != tc.err {
			t.Fatalf("ParseCodepoint(%q) error = %v", tc.in, err)
		}
		assert.Equal(t, tc.want, got, tc.in)
	}
}

const sampleTOML = `
[metrics]
units-per-em=1000.0
ascender=800.0
descender=-200.0

[[glyph]]
name="a"
unicode="0061"
advance=500.0

[[glyph]]
name="beh-ar"
unicode="U+0628"
advance=560.0

[[glyph]]
name="beh-ar.init"
advance=300.0
`

func TestLoadTOML(t *testing.T) {
	tbl, err := LoadTOML(strings.NewReader(sampleTOML))
	if err != nil {
		t.Fatalf("LoadTOML failed: %v", err)
	}

	assert.Equal(t, Metrics{UnitsPerEm: 1000, Ascender: 800, Descender: -200}, tbl.Metrics())
	assert.Equal(t, float32(1000), tbl.Metrics().LineHeight())
	assert.Equal(t, 3, tbl.Len())

	g, ok := tbl.Glyph("beh-ar.init")
	if !ok {
		t.Fatalf("beh-ar.init missing")
	}
	assert.Equal(t, sorts.NoCodepoint, g.Codepoint)
	assert.Equal(t, float32(560), tbl.AdvanceWidth("beh-ar"))
}

func TestLoadTOMLRejectsBadCodepoint(t *testing.T) {
	_, err := LoadTOML(strings.NewReader("[[glyph]]\nname=\"x\"\nunicode=\"nothex\"\n"))
	if err == nil {
		t.Fatalf("expected an error for a bad codepoint")
	}
}

func TestCSVRoundTrip(t *testing.T) {
	in := "name,unicode,advance\na,0061,500\nalef-ar,0627,230\nalef-ar.fina,,240\n"
	tbl, err := LoadCSV(strings.NewReader(in), Metrics{})
	if err != nil {
		t.Fatalf("LoadCSV failed: %v", err)
	}
	assert.Equal(t, []string{"a", "alef-ar", "alef-ar.fina"}, tbl.GlyphNames())
	assert.Equal(t, DefaultMetrics(), tbl.Metrics())

	var buf bytes.Buffer
	if err := WriteCSV(&buf, tbl); err != nil {
		t.Fatalf("WriteCSV failed: %v", err)
	}

	again, err := LoadCSV(&buf, Metrics{})
	if err != nil {
		t.Fatalf("reloading written CSV failed: %v", err)
	}
	assert.Equal(t, tbl.GlyphNames(), again.GlyphNames())
	assert.Equal(t, float32(240), again.AdvanceWidth("alef-ar.fina"))
	n, _ := again.NameForRune(0x627)
	assert.Equal(t, "alef-ar", n)
}

func TestLoadCSVRejectsUnnamedGlyph(t *testing.T) {
	_, err := LoadCSV(strings.NewReader("name,unicode,advance\n,0061,500\n"), Metrics{})
	if err == nil {
		t.Fatalf("expected an error for a glyph with no name")
	}
}

func goRegular(t *testing.T, names *Table) *Face {
	ff, err := LoadFace(bytes.NewReader(goregular.TTF), "goregular")
	if err != nil {
		t.Fatalf("loading Go Regular failed: %v", err)
	}
	return NewFace(ff, []rune("abcXi"), names)
}

func TestFaceMeasuresGlyphs(t *testing.T) {
	f := goRegular(t, nil)

	if !f.GlyphExists("uni0061") {
		t.Fatalf("Go Regular has no 'a'")
	}
	if f.GlyphExists("uni0628") {
		t.Fatalf("Go Regular unexpectedly has an Arabic beh")
	}
	assert.Equal(t, float32(0), f.AdvanceWidth("uni0628"))
	if _, ok := f.NameForRune(0x628); ok {
		t.Fatalf("named a rune Go Regular can't display")
	}

	a := f.AdvanceWidth("uni0061")
	i := f.AdvanceWidth("uni0069")
	if a <= 0 || i <= 0 || i >= a {
		t.Fatalf("expected 0 < advance(i) < advance(a), got i=%v a=%v", i, a)
	}

	m := f.Metrics()
	if m.Ascender <= 0 || m.Descender >= 0 {
		t.Fatalf("unexpected metrics %+v", m)
	}
	assert.Equal(t, float32(defaultUnitsPerEm), m.UnitsPerEm)
	assert.Equal(t, []string{"uni0058", "uni0061", "uni0062", "uni0063", "uni0069"}, f.GlyphNames())
}

func TestFaceLeavesOutMissingGlyphs(t *testing.T) {
	ff, err := LoadFace(bytes.NewReader(goregular.TTF), "goregular")
	if err != nil {
		t.Fatalf("loading Go Regular failed: %v", err)
	}
	f := NewFace(ff, []rune{'a', 0x628, 0x644, 'b'}, nil)

	assert.Equal(t, []string{"uni0061", "uni0062"}, f.GlyphNames())
}

func TestFaceUsesTableNames(t *testing.T) {
	names := NewTable(Metrics{})
	names.Add(Glyph{Name: "a", Codepoint: 'a'})
	f := goRegular(t, names)

	n, ok := f.NameForRune('a')
	if !ok || n != "a" {
		t.Fatalf("NameForRune('a') = %q, %v", n, ok)
	}
	assert.Equal(t, f.AdvanceWidth("uni0061"), f.AdvanceWidth("a"))
	assert.Contains(t, f.GlyphNames(), "a")
	assert.Contains(t, f.GlyphNames(), "uni0062")
}
