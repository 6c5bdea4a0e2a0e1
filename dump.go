package main

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/jszwec/csvutil"

	"github.com/jeffwilliams/sortbuf/internal/scene"
)

const (
	formatTable = "table"
	formatCSV   = "csv"
)

// dumpRow is one sort in a buffer dump.
type dumpRow struct {
	Index   int     `csv:"index"`
	Handle  int     `csv:"handle"`
	Sort    string  `csv:"sort"`
	Glyph   string  `csv:"glyph"`
	Mode    string  `csv:"mode"`
	Flow    string  `csv:"flow,omitempty"`
	Root    bool    `csv:"root"`
	Active  bool    `csv:"active"`
	Cursor  string  `csv:"cursor,omitempty"`
	X       float32 `csv:"x"`
	Y       float32 `csv:"y"`
	Advance float32 `csv:"advance"`
}

func (s *Session) dumpRows() []dumpRow {
	items := scene.Items(s.state)
	rows := make([]dumpRow, 0, len(items))
	for _, it := range items {
		h, _ := s.handles.Handle(it.Index)
		r := dumpRow{
			Index:   it.Index,
			Handle:  h,
			Sort:    it.Kind.DisplayString(),
			Glyph:   it.Kind.GlyphName,
			Mode:    it.Mode.String(),
			Root:    it.IsRoot,
			Active:  it.Active,
			X:       it.Position.X,
			Y:       it.Position.Y,
			Advance: it.Kind.Advance(),
		}
		if it.BufferID.Valid() {
			r.Flow = it.BufferID.String()
		}
		if it.IsRoot && it.Cursor >= 0 {
			r.Cursor = fmt.Sprint(it.Cursor)
		}
		rows = append(rows, r)
	}
	return rows
}

// Dump prints the buffer in the configured format.
func (s *Session) Dump() error {
	s.dumped = true
	s.handles.Reconcile(s.state.Len())
	rows := s.dumpRows()

	if s.settings.Editor.Format == formatCSV {
		return writeCSVDump(s.out, rows)
	}
	return s.writeTableDump(rows)
}

func writeCSVDump(w io.Writer, rows []dumpRow) error {
	cw := csv.NewWriter(w)
	enc := csvutil.NewEncoder(cw)
	if len(rows) == 0 {
		if err := enc.EncodeHeader(dumpRow{}); err != nil {
			return err
		}
	}
	for _, r := range rows {
		if err := enc.Encode(r); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func (s *Session) writeTableDump(rows []dumpRow) error {
	const rowFmt = "%-5s %-6s %-10s %-16s %-8s %-5s %-4s %-6s %-6s %10s %10s\n"
	_, err := fmt.Fprintf(s.out, rowFmt, "index", "handle", "sort", "glyph", "mode", "flow", "root", "active", "cursor", "x", "y")
	if err != nil {
		return err
	}

	for _, r := range rows {
		_, err = fmt.Fprintf(s.out, rowFmt,
			fmt.Sprint(r.Index), fmt.Sprint(r.Handle), r.Sort, r.Glyph, r.Mode, r.Flow,
			yesNo(r.Root), yesNo(r.Active), r.Cursor,
			fmt.Sprintf("%.1f", r.X), fmt.Sprintf("%.1f", r.Y))
		if err != nil {
			return err
		}
	}

	if c, ok := scene.CaretExtentOf(s.state); ok {
		id, _ := s.state.Focused()
		cur, _ := s.state.Cursor()
		_, err = fmt.Fprintf(s.out, "caret %s cursor=%d x=%.1f top=%.1f bottom=%.1f\n", id, cur, c.X, c.Top, c.Bottom)
	}
	return err
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return ""
}
