package main

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"gioui.org/f32"

	"github.com/jeffwilliams/sortbuf/internal/errs"
	"github.com/jeffwilliams/sortbuf/internal/glyphs"
	"github.com/jeffwilliams/sortbuf/internal/scene"
	"github.com/jeffwilliams/sortbuf/internal/shaping"
	"github.com/jeffwilliams/sortbuf/internal/sorts"
	"github.com/jeffwilliams/sortbuf/internal/textedit"
)

// Session is one scripted editing session with its own flow ids. Each script line is
// one command; after every command the display handles are reconciled with the
// buffer, the way a UI would once per frame.
type Session struct {
	state     *textedit.State
	provider  glyphs.Provider
	settings  Settings
	out       io.Writer
	handles   *scene.Reconciler[int]
	handleIds scene.HandleIds
	dumped    bool
	commands  map[string]command
}

type command struct {
	minArgs int
	usage   string
	do      func(s *Session, args []string, rest string) error
}

func NewSession(p glyphs.Provider, set Settings, out io.Writer) *Session {
	opts := textedit.Options{
		Provider:  p,
		Multiline: set.Editor.Multiline,
		Metrics:   set.Font.Metrics,
		IDs:       new(sorts.IdGen),
	}
	if set.Editor.ArabicShaping {
		opts.Shaper = shaping.NewArabic(p)
	}

	s := &Session{
		state:    textedit.New(opts),
		provider: p,
		settings: set,
		out:      out,
	}
	s.handles = scene.NewReconciler(
		func(i int) int { return s.handleIds.Get() },
		func(h int) { s.handleIds.Free(h) },
	)
	s.commands = sessionCommands()
	return s
}

func (s *Session) State() *textedit.State {
	return s.state
}

// Dumped reports whether the buffer has been printed by a dump command.
func (s *Session) Dumped() bool {
	return s.dumped
}

// Run executes every line of r. A failing command doesn't stop the script; all
// failures are returned together.
func (s *Session) Run(r io.Reader, name string) error {
	var e errs.Errors
	scanner := bufio.NewScanner(r)
	lineno := 0
	for scanner.Scan() {
		lineno++
		if err := s.Exec(scanner.Text()); err != nil {
			e.Addf("%s:%d: %w", name, lineno, err)
		}
	}
	e.Add(scanner.Err())
	return e.NilIfEmpty()
}

// Exec runs one command line. Blank lines and lines starting with # do nothing.
func (s *Session) Exec(line string) error {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return nil
	}

	name, rest, _ := strings.Cut(line, " ")
	args := strings.Fields(rest)

	cmd, ok := s.commands[name]
	if !ok {
		return fmt.Errorf("unknown command %q", name)
	}
	if len(args) < cmd.minArgs {
		return fmt.Errorf("usage: %s", cmd.usage)
	}

	log(LogCatgScript, "exec: %s\n", line)
	err := cmd.do(s, args, rest)
	s.handles.Reconcile(s.state.Len())
	return err
}

func sessionCommands() map[string]command {
	return map[string]command{
		"root":     {3, "root ltr|rtl X Y", (*Session).cmdRoot},
		"free":     {3, "free NAME X Y", (*Session).cmdFree},
		"type":     {1, "type TEXT", (*Session).cmdType},
		"glyph":    {1, "glyph NAME", (*Session).cmdGlyph},
		"enter":    {0, "enter", (*Session).cmdEnter},
		"del":      {0, "del", (*Session).cmdDel},
		"left":     {0, "left", (*Session).cmdLeft},
		"right":    {0, "right", (*Session).cmdRight},
		"up":       {0, "up", (*Session).cmdUp},
		"down":     {0, "down", (*Session).cmdDown},
		"cursor":   {1, "cursor N", (*Session).cmdCursor},
		"focus":    {1, "focus ID", (*Session).cmdFocus},
		"activate": {1, "activate INDEX", (*Session).cmdActivate},
		"deselect": {0, "deselect", (*Session).cmdDeselect},
		"pick":     {2, "pick X Y", (*Session).cmdPick},
		"populate": {0, "populate", (*Session).cmdPopulate},
		"clear":    {0, "clear", (*Session).cmdClear},
		"check":    {0, "check", (*Session).cmdCheck},
		"dump":     {0, "dump", (*Session).cmdDump},
		"log":      {0, "log [CATEGORY...]", (*Session).cmdLog},
	}
}

func parsePoint(xs, ys string) (p f32.Point, err error) {
	x, err := strconv.ParseFloat(xs, 32)
	if err != nil {
		return
	}
	y, err := strconv.ParseFloat(ys, 32)
	if err != nil {
		return
	}
	p = f32.Pt(float32(x), float32(y))
	return
}

func (s *Session) cmdRoot(args []string, rest string) error {
	mode, ok := sorts.ParseLayoutMode(args[0])
	if !ok || !mode.IsText() {
		return fmt.Errorf("root mode must be ltr or rtl, not %q", args[0])
	}
	p, err := parsePoint(args[1], args[2])
	if err != nil {
		return err
	}
	id, _ := s.state.CreateTextRoot(p, mode)
	log(LogCatgEditor, "Created flow %s\n", id)
	return nil
}

func (s *Session) cmdFree(args []string, rest string) error {
	p, err := parsePoint(args[1], args[2])
	if err != nil {
		return err
	}
	name := args[0]
	if !s.provider.GlyphExists(name) {
		return fmt.Errorf("no glyph named %q", name)
	}
	s.state.AddFreeformSort(name, p, s.provider.AdvanceWidth(name))
	return nil
}

// cmdType types the text after the command name, spaces included.
func (s *Session) cmdType(args []string, rest string) error {
	for _, r := range rest {
		s.state.TypeRune(r)
	}
	return nil
}

func (s *Session) cmdGlyph(args []string, rest string) error {
	for _, name := range args {
		if !s.provider.GlyphExists(name) {
			return fmt.Errorf("no glyph named %q", name)
		}
		s.state.TypeGlyph(name)
	}
	return nil
}

func (s *Session) cmdEnter(args []string, rest string) error {
	s.state.InsertLineBreakAtCursor()
	return nil
}

func (s *Session) cmdDel(args []string, rest string) error {
	n := 1
	if len(args) > 0 {
		var err error
		n, err = strconv.Atoi(args[0])
		if err != nil {
			return err
		}
	}
	for i := 0; i < n; i++ {
		s.state.DeleteSortAtCursor()
	}
	return nil
}

func (s *Session) cmdLeft(args []string, rest string) error {
	s.state.MoveCursorLeft()
	return nil
}

func (s *Session) cmdRight(args []string, rest string) error {
	s.state.MoveCursorRight()
	return nil
}

func (s *Session) cmdUp(args []string, rest string) error {
	s.state.MoveCursorUp()
	return nil
}

func (s *Session) cmdDown(args []string, rest string) error {
	s.state.MoveCursorDown()
	return nil
}

func (s *Session) cmdCursor(args []string, rest string) error {
	n, err := strconv.Atoi(args[0])
	if err != nil {
		return err
	}
	s.state.MoveCursorTo(n)
	return nil
}

func (s *Session) cmdFocus(args []string, rest string) error {
	n, err := strconv.ParseUint(strings.TrimPrefix(args[0], "#"), 10, 32)
	if err != nil {
		return err
	}
	if !s.state.Focus(sorts.BufferID(n)) {
		return fmt.Errorf("no flow %s", args[0])
	}
	return nil
}

func (s *Session) cmdActivate(args []string, rest string) error {
	i, err := strconv.Atoi(args[0])
	if err != nil {
		return err
	}
	if !s.state.ActivateSort(i) {
		return fmt.Errorf("no sort at index %d", i)
	}
	return nil
}

func (s *Session) cmdDeselect(args []string, rest string) error {
	s.state.ClearActiveState()
	return nil
}

// cmdPick activates the sort whose handle or body is at X Y.
func (s *Session) cmdPick(args []string, rest string) error {
	p, err := parsePoint(args[0], args[1])
	if err != nil {
		return err
	}
	tol := s.settings.Editor.HitTolerance
	i, ok := s.state.FindSortHandleAt(p, tol)
	if !ok {
		i, ok = s.state.FindSortBodyAt(p, tol)
	}
	if !ok {
		return fmt.Errorf("no sort near (%.1f,%.1f)", p.X, p.Y)
	}
	s.state.ActivateSort(i)
	return nil
}

func (s *Session) cmdPopulate(args []string, rest string) error {
	n := s.state.PopulateFromGlyphs(s.provider)
	log(LogCatgEditor, "Populated %d glyphs\n", n)
	return nil
}

func (s *Session) cmdClear(args []string, rest string) error {
	s.state.Clear()
	return nil
}

func (s *Session) cmdCheck(args []string, rest string) error {
	return s.state.Check()
}

func (s *Session) cmdDump(args []string, rest string) error {
	return s.Dump()
}

func (s *Session) cmdLog(args []string, rest string) error {
	if len(args) == 0 {
		args = debugLogCategories
	}
	_, err := io.WriteString(s.out, debugLog.String(args...))
	return err
}
