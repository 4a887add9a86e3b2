package editor

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/kobzarvs/medit/internal/action"
	"github.com/kobzarvs/medit/internal/highlight"
	"github.com/kobzarvs/medit/internal/logger"
	"github.com/kobzarvs/medit/internal/theme"
)

type fakeHighlighter struct {
	infos []highlight.StyleInfo
	err   error
	calls int
}

func (f *fakeHighlighter) Highlight(text string) ([]highlight.StyleInfo, error) {
	f.calls++
	return f.infos, f.err
}

func newScreen(t *testing.T, w, h int) tcell.SimulationScreen {
	t.Helper()
	s := tcell.NewSimulationScreen("UTF-8")
	if err := s.Init(); err != nil {
		t.Fatalf("init screen: %v", err)
	}
	t.Cleanup(s.Fini)
	s.SetSize(w, h)
	return s
}

func screenRow(s tcell.SimulationScreen, y int) string {
	cells, w, _ := s.GetContents()
	out := make([]rune, 0, w)
	for x := 0; x < w; x++ {
		c := cells[y*w+x]
		if len(c.Runes) == 0 {
			out = append(out, ' ')
			continue
		}
		out = append(out, c.Runes[0])
	}
	return string(out)
}

func key(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

// newDrawnEditor attaches a w x h simulation screen and renders the first
// frame.
func newDrawnEditor(t *testing.T, w, h int, lines ...string) (*Editor, tcell.SimulationScreen) {
	t.Helper()
	e := newTestEditor(t, h, lines...)
	s := newScreen(t, w, h)
	e.attach(s)
	e.Render()
	return e, s
}

func TestRenderFirstFrame(t *testing.T) {
	_, s := newDrawnEditor(t, 20, 5, "ab", "cd")

	want := []string{
		"1 ab                ",
		"2 cd                ",
		"                    ",
	}
	for y, row := range want {
		if got := screenRow(s, y); got != row {
			t.Fatalf("row %d = %q, want %q", y, got, row)
		}
	}
	if got := screenRow(s, 4); got != strings.Repeat(" ", 20) {
		t.Fatalf("message row = %q", got)
	}
	x, y, visible := s.GetCursor()
	if !visible || x != 2 || y != 0 {
		t.Fatalf("cursor = %d, %d, %v, want 2, 0, visible", x, y, visible)
	}
}

func TestGutterWidthFollowsLineCount(t *testing.T) {
	e, s := newDrawnEditor(t, 20, 13, numbered(10)...)
	if e.vx != 3 {
		t.Fatalf("vx = %d, want 3", e.vx)
	}
	if got := screenRow(s, 0); !strings.HasPrefix(got, " 1 line a") {
		t.Fatalf("row 0 = %q", got)
	}
	if got := screenRow(s, 9); !strings.HasPrefix(got, "10 line j") {
		t.Fatalf("row 9 = %q", got)
	}
	if got := screenRow(s, 10); got != strings.Repeat(" ", 20) {
		t.Fatalf("row past the end = %q", got)
	}
	cells, w, _ := s.GetContents()
	fg, _, _ := cells[10*w].Style.Decompose()
	if wantFg := e.theme.Gutter.Fg; fg != wantFg {
		t.Fatalf("blank gutter fg = %v, want gutter fg %v", fg, wantFg)
	}

	// Deleting line 10 shrinks the gutter and shifts the text left.
	e.Execute(action.Simple(action.MoveToBottom))
	e.Execute(action.Simple(action.DeleteCurrentLine))
	e.Update()
	if e.vx != 2 {
		t.Fatalf("vx = %d after delete, want 2", e.vx)
	}
	if got := screenRow(s, 0); !strings.HasPrefix(got, "1 line a") {
		t.Fatalf("row 0 after delete = %q", got)
	}
}

func TestLineNumbersOff(t *testing.T) {
	e := New(newTestEditor(t, 5, "ab").buf, theme.Default(), nil, nil, Options{LineNumbers: "off"})
	s := newScreen(t, 10, 5)
	e.attach(s)
	e.Render()
	if got := screenRow(s, 0); got != "ab        " {
		t.Fatalf("row 0 = %q", got)
	}
}

func TestIncrementalUpdateTouchesOnlyEditedRow(t *testing.T) {
	e, s := newDrawnEditor(t, 20, 6, "abc", "def", "ghi")
	prev := e.grid.Clone()

	if e.HandleKey(key('x')) {
		t.Fatalf("x quit the editor")
	}
	if got := screenRow(s, 0); got != "1 bc                " {
		t.Fatalf("row 0 = %q", got)
	}
	changes := e.grid.Diff(prev)
	if len(changes) == 0 {
		t.Fatalf("no changes after delete")
	}
	for _, c := range changes {
		if c.Y != 0 {
			t.Fatalf("change outside the edited row: %+v", c)
		}
	}
}

func TestScrollRedrawsViewport(t *testing.T) {
	e, s := newDrawnEditor(t, 12, 4, "one", "two", "three") // two text rows
	e.HandleKey(key('j'))
	e.HandleKey(key('j'))
	if e.vtop != 1 {
		t.Fatalf("vtop = %d, want 1", e.vtop)
	}
	if got := screenRow(s, 0); got != "2 two       " {
		t.Fatalf("row 0 = %q", got)
	}
	if got := screenRow(s, 1); got != "3 three     " {
		t.Fatalf("row 1 = %q", got)
	}
	if x, y, _ := s.GetCursor(); x != 2 || y != 1 {
		t.Fatalf("cursor = %d, %d, want 2, 1", x, y)
	}
}

func TestStatuslineFrame(t *testing.T) {
	e, s := newDrawnEditor(t, 30, 5, "abc")
	row := []rune(screenRow(s, 3))
	sl := e.theme.Statusline
	if got := string(row[:8]); got != " NORMAL " {
		t.Fatalf("mode segment = %q", got)
	}
	if row[8] != sl.Glyphs[1] {
		t.Fatalf("separator = %q, want %q", row[8], sl.Glyphs[1])
	}
	if got := strings.TrimRight(string(row[9:]), " "); !strings.HasPrefix(got, " test.rs") {
		t.Fatalf("name segment = %q", got)
	}
	if got := string(row[len(row)-5:]); got != " 1:1 " {
		t.Fatalf("position segment = %q", got)
	}

	e.HandleKey(key('i'))
	if got := string([]rune(screenRow(s, 3))[:8]); got != " INSERT " {
		t.Fatalf("mode segment in insert = %q", got)
	}
	e.HandleKey(tcell.NewEventKey(tcell.KeyEnd, 0, tcell.ModNone))
	if got := screenRow(s, 3); !strings.HasSuffix(got, " 1:4 ") {
		t.Fatalf("status after end = %q", got)
	}
}

func TestCursorShapeFollowsMode(t *testing.T) {
	e, s := newDrawnEditor(t, 20, 5, "abc")
	e.HandleKey(key('i'))
	if e.mode != action.ModeInsert {
		t.Fatalf("mode = %v", e.mode)
	}
	e.HandleKey(key('z'))
	if got := screenRow(s, 0); got != "1 zabc              " {
		t.Fatalf("row 0 = %q", got)
	}
	if x, _, _ := s.GetCursor(); x != 3 {
		t.Fatalf("cursor x = %d, want 3", x)
	}
	e.HandleKey(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone))
	if e.mode != action.ModeNormal {
		t.Fatalf("esc left mode %v", e.mode)
	}
}

func TestPendingKeyOnMessageRow(t *testing.T) {
	e, s := newDrawnEditor(t, 20, 5, "abc", "def")
	e.HandleKey(key('d'))
	if got := screenRow(s, 4); got != strings.Repeat(" ", 18)+"d " {
		t.Fatalf("message row = %q", got)
	}
	e.HandleKey(key('d'))
	if got := screenRow(s, 4); got != strings.Repeat(" ", 20) {
		t.Fatalf("message row after dd = %q", got)
	}
	if got := e.buf.Content(); got != "def" {
		t.Fatalf("content after dd = %q", got)
	}
	if got := screenRow(s, 1); got != strings.Repeat(" ", 20) {
		t.Fatalf("row 1 after dd = %q", got)
	}
}

func TestHighlightedCells(t *testing.T) {
	red := theme.Style{Fg: tcell.ColorRed}
	hl := &fakeHighlighter{infos: []highlight.StyleInfo{
		{Start: 0, End: 2, Style: red},
		{Start: 3, End: 4, Style: red}, // "c" on the second row
	}}
	e := newTestEditor(t, 5, "ab", "cd")
	e.hl = hl
	e.attach(newScreen(t, 10, 5))
	e.Render()

	base := e.theme.Style
	want := base.Patch(red)
	cases := []struct {
		x, y int
		st   theme.Style
	}{
		{2, 0, want}, {3, 0, want}, {2, 1, want}, {3, 1, base},
	}
	for _, tt := range cases {
		if got := e.grid.Cell(tt.x, tt.y).Style; got != tt.st {
			t.Fatalf("cell(%d,%d) style = %+v, want %+v", tt.x, tt.y, got, tt.st)
		}
	}
	if hl.calls != 1 {
		t.Fatalf("highlight calls = %d, want 1", hl.calls)
	}
}

func TestHighlightFailureDrawsPlainText(t *testing.T) {
	var logs bytes.Buffer
	logger.InitWriter(&logs, false)
	t.Cleanup(func() { logger.L, logger.S = nil, nil })

	e := newTestEditor(t, 5, "ab")
	e.hl = &fakeHighlighter{err: errors.New("parse failed")}
	e.attach(newScreen(t, 10, 5))
	e.Render()

	if c := e.grid.Cell(2, 0); c.Rune != 'a' || c.Style != e.theme.Style {
		t.Fatalf("cell = %+v, want plain a", c)
	}
	if !strings.Contains(logs.String(), "highlight failed") {
		t.Fatalf("log = %q", logs.String())
	}
}

func TestResizeRendersFullFrame(t *testing.T) {
	e, s := newDrawnEditor(t, 10, 4, "abc")
	s.SetSize(14, 6)
	e.Update()
	if e.grid.Width != 14 || e.grid.Height != 6 {
		t.Fatalf("grid = %dx%d, want 14x6", e.grid.Width, e.grid.Height)
	}
	if got := screenRow(s, 0); got != "1 abc         " {
		t.Fatalf("row 0 = %q", got)
	}
}

func TestTinyScreens(t *testing.T) {
	for _, size := range [][2]int{{1, 1}, {3, 2}, {5, 3}} {
		e := newTestEditor(t, size[1], "hello", "world")
		e.attach(newScreen(t, size[0], size[1]))
		e.Render()
		e.HandleKey(key('j'))
		e.HandleKey(key('x'))
	}
}

func TestRunProcessesEventsUntilQuit(t *testing.T) {
	e := newTestEditor(t, 5, "abc")
	s := newScreen(t, 20, 5)
	for _, r := range "ihi" {
		s.InjectKey(tcell.KeyRune, r, tcell.ModNone)
	}
	s.InjectKey(tcell.KeyEscape, 0, tcell.ModNone)
	s.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)

	if err := e.Run(s); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got := e.buf.Content(); got != "hiabc" {
		t.Fatalf("content = %q", got)
	}
	if e.undo.Len() != 1 {
		t.Fatalf("undo log len = %d, want 1", e.undo.Len())
	}
}

func TestPainterSkipsRepeatedStyles(t *testing.T) {
	e, _ := newDrawnEditor(t, 20, 5, "abc")
	prev := e.grid.Clone()
	e.HandleKey(key('x'))
	changes := e.grid.Diff(prev)
	styles := map[theme.Style]bool{}
	for _, c := range changes {
		styles[c.Cell.Style] = true
	}
	if e.painter.StyleSwitches > len(changes) || e.painter.StyleSwitches < len(styles) {
		t.Fatalf("StyleSwitches = %d for %d changes in %d styles", e.painter.StyleSwitches, len(changes), len(styles))
	}
}
