package glyphs

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ddkwork/golibrary/mylog"
	"github.com/jszwec/csvutil"
	"github.com/pelletier/go-toml"
)

var Debug func(message string, args ...interface{})

func debug(message string, args ...interface{}) {
	if Debug != nil {
		Debug(message, args...)
	}
}

// glyphRow is one glyph as written in a TOML or CSV glyph table. Unicode holds the
// codepoint in hex and is empty for unencoded glyphs.
type glyphRow struct {
	Name    string  `toml:"name" csv:"name"`
	Unicode string  `toml:"unicode" csv:"unicode,omitempty"`
	Advance float32 `toml:"advance" csv:"advance"`
}

func (r glyphRow) glyph() (g Glyph, err error) {
	if r.Name == "" {
		err = fmt.Errorf("glyph with no name")
		return
	}
	cp, err := ParseCodepoint(r.Unicode)
	if err != nil {
		err = fmt.Errorf("glyph %s: %w", r.Name, err)
		return
	}
	g = Glyph{Name: r.Name, Codepoint: cp, Advance: r.Advance}
	return
}

type tomlFile struct {
	Metrics Metrics    `toml:"metrics"`
	Glyph   []glyphRow `toml:"glyph"`
}

// LoadTOML reads a glyph table of the form
//
//	[metrics]
//	units-per-em=1000
//	ascender=800
//	descender=-200
//
//	[[glyph]]
//	name="beh-ar"
//	unicode="0628"
//	advance=560
//
// Missing metrics are replaced by DefaultMetrics.
func LoadTOML(r io.Reader) (t *Table, err error) {
	var f tomlFile
	dec := toml.NewDecoder(r)
	err = dec.Decode(&f)
	if err != nil {
		return
	}

	t = NewTable(f.Metrics)
	for _, row := range f.Glyph {
		var g Glyph
		g, err = row.glyph()
		if err != nil {
			return nil, err
		}
		t.Add(g)
	}
	debug("LoadTOML: loaded %d glyphs\n", t.Len())
	return
}

// LoadCSV reads a glyph table with the header name,unicode,advance. CSV tables carry
// no vertical metrics so they are passed in.
func LoadCSV(r io.Reader, m Metrics) (t *Table, err error) {
	dec, err := csvutil.NewDecoder(csv.NewReader(r))
	if err != nil {
		return
	}

	t = NewTable(m)
	for {
		var row glyphRow
		err = dec.Decode(&row)
		if err == io.EOF {
			err = nil
			break
		}
		if err != nil {
			return nil, err
		}

		var g Glyph
		g, err = row.glyph()
		if err != nil {
			return nil, err
		}
		t.Add(g)
	}
	debug("LoadCSV: loaded %d glyphs\n", t.Len())
	return
}

// WriteCSV writes the table in the format read by LoadCSV.
func WriteCSV(w io.Writer, t *Table) error {
	cw := csv.NewWriter(w)
	enc := csvutil.NewEncoder(cw)
	for _, name := range t.GlyphNames() {
		g, _ := t.Glyph(name)
		row := glyphRow{Name: g.Name, Advance: g.Advance}
		if g.Codepoint >= 0 {
			row.Unicode = fmt.Sprintf("%04X", g.Codepoint)
		}
		if err := enc.Encode(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// LoadFile loads a glyph table, choosing the format from the file extension.
func LoadFile(path string) (t *Table, err error) {
	f := mylog.Check2(os.Open(path))
	defer func() { mylog.Check(f.Close()) }()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return LoadTOML(f)
	case ".csv":
		return LoadCSV(f, DefaultMetrics())
	}
	err = fmt.Errorf("unknown glyph table format for %s", path)
	return
}
