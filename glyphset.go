package main

import (
	"os"
	"path/filepath"

	"github.com/ddkwork/golibrary/mylog"
	"github.com/flopp/go-findfont"

	"github.com/jeffwilliams/sortbuf/internal/glyphs"
	"github.com/jeffwilliams/sortbuf/internal/shaping"
	"github.com/jeffwilliams/sortbuf/internal/sorts"
)

// loadGlyphProvider builds the provider described by the font settings. A font wins
// over a glyph table for measuring; the table then only supplies names. With neither,
// the built in table is used.
func loadGlyphProvider(fs FontSettings) (p glyphs.Provider, err error) {
	var table *glyphs.Table
	if fs.Glyphs != "" {
		table, err = glyphs.LoadFile(fs.Glyphs)
		if err != nil {
			return
		}
		log(LogCatgFont, "Loaded %d glyphs from %s\n", table.Len(), fs.Glyphs)
	}

	if fs.File != "" {
		face := loadFontFromFile(fs.File, table)
		p = face
		log(LogCatgFont, "Measuring glyphs with font %s\n", fs.File)
	} else if table != nil {
		p = table
	} else {
		p = defaultGlyphTable()
	}

	if !fs.Metrics.IsZero() {
		p = withMetrics{p, fs.Metrics}
	}
	return
}

func loadFontFromFile(filename string, names *glyphs.Table) *glyphs.Face {
	path := mylog.Check2(findfont.Find(filename))

	file := mylog.Check2(os.Open(path))
	defer func() { mylog.Check(file.Close()) }()

	ff := mylog.Check2(glyphs.LoadFace(file, filepath.Base(filename)))
	return glyphs.NewFace(ff, glyphs.BasicRepertoire(), names)
}

// withMetrics replaces the metrics of a provider.
type withMetrics struct {
	glyphs.Provider
	metrics glyphs.Metrics
}

func (w withMetrics) Metrics() glyphs.Metrics {
	return w.metrics
}

func (w withMetrics) NameForRune(r rune) (string, bool) {
	return glyphs.NameForRune(w.Provider, r)
}

func (w withMetrics) CodepointForName(name string) (rune, bool) {
	return glyphs.CodepointForName(w.Provider, name)
}

// defaultGlyphTable is a stand-in glyph set: latin letters and digits named after
// themselves and the Arabic letters with their contextual forms.
func defaultGlyphTable() *glyphs.Table {
	t := glyphs.NewTable(glyphs.DefaultMetrics())

	add := func(name string, cp rune, adv float32) {
		t.Add(glyphs.Glyph{Name: name, Codepoint: cp, Advance: adv})
	}

	add("space", ' ', 250)
	for r := 'a'; r <= 'z'; r++ {
		add(string(r), r, 500)
	}
	for r := 'A'; r <= 'Z'; r++ {
		add(string(r), r, 600)
	}
	for r := '0'; r <= '9'; r++ {
		add(glyphs.UniName(r), r, 550)
	}

	for r := rune(0x621); r <= 0x64A; r++ {
		base := shaping.BaseName(r)
		add(base, r, 500)
		for _, f := range []shaping.JoiningForm{shaping.Initial, shaping.Medial, shaping.Final} {
			add(base+f.Suffix(), sorts.NoCodepoint, 450)
		}
	}
	return t
}
