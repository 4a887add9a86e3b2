package editor

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/kobzarvs/medit/internal/action"
	"github.com/kobzarvs/medit/internal/highlight"
	"github.com/kobzarvs/medit/internal/logger"
	"github.com/kobzarvs/medit/internal/render"
	"github.com/kobzarvs/medit/internal/theme"
)

// Render builds a complete frame and repaints the whole screen. It is used
// for the first frame and after a resize.
func (e *Editor) Render() {
	e.width, e.height = e.screen.Size()
	e.vx = e.gutterWidth()
	e.checkBounds()

	g := render.NewGrid(e.width, e.height, e.theme.Style)
	e.drawViewport(g)
	e.drawStatusline(g)
	e.drawMessage(g)

	e.painter.Full(g)
	e.finish(g)
}

// Update builds the next frame from the previous one, redrawing only the
// regions the executed actions touched, and writes the cells that changed.
func (e *Editor) Update() {
	if w, h := e.screen.Size(); e.grid == nil || w != e.width || h != e.height {
		e.Render()
		return
	}
	e.vx = e.gutterWidth()
	e.checkBounds()

	next := e.grid.Clone()
	switch {
	case e.redraw == redrawFull, e.vtop != e.drawnVtop, e.vx != e.drawnVx, e.buf.Len() != e.drawnLines:
		e.drawViewport(next)
	case e.redraw == redrawLine:
		if y := e.dirtyLine - e.vtop; y >= 0 && y < e.vheight() {
			e.drawRows(next, y, y+1)
		}
	}
	e.drawStatusline(next)
	e.drawMessage(next)

	changes := next.Diff(e.grid)
	e.painter.Reset()
	e.painter.Apply(changes)
	e.finish(next)
}

func (e *Editor) finish(g *render.Grid) {
	e.grid = g
	e.redraw = redrawNone
	e.drawnVtop = e.vtop
	e.drawnVx = e.vx
	e.drawnLines = e.buf.Len()
	e.placeCursor()
	e.screen.Show()
}

func (e *Editor) placeCursor() {
	x, y := e.vx+e.cx, e.cy
	if x >= e.width || y >= e.height {
		e.screen.HideCursor()
		return
	}
	shape := tcell.CursorStyleSteadyBlock
	if e.mode == action.ModeInsert {
		shape = tcell.CursorStyleSteadyBar
	}
	e.screen.SetCursorStyle(shape)
	e.screen.ShowCursor(x, y)
}

func (e *Editor) drawViewport(g *render.Grid) {
	e.drawRows(g, 0, e.vheight())
}

// drawRows redraws viewport rows [from, to). Highlighting always runs over
// the whole viewport text so style offsets stay viewport relative.
func (e *Editor) drawRows(g *render.Grid, from, to int) {
	text := e.buf.ViewportText(e.vtop, e.vheight())
	infos := e.styleInfos(text)

	offset := 0
	lines := strings.Split(text, "\n")
	for y := 0; y < to && y < g.Height; y++ {
		var line string
		inBuf := y < len(lines) && e.vtop+y < e.buf.Len()
		if inBuf {
			line = lines[y]
		}
		if y >= from {
			g.ClearRow(y, e.theme.Style)
			e.drawGutter(g, y, inBuf)
			if inBuf {
				e.drawText(g, y, line, offset, infos)
			}
		}
		offset += len(line) + 1
	}
}

func (e *Editor) styleInfos(text string) []highlight.StyleInfo {
	if e.hl == nil || text == "" {
		return nil
	}
	infos, err := e.hl.Highlight(text)
	if err != nil {
		logger.Warn("highlight failed", "file", e.buf.Name, "error", err)
		return nil
	}
	return infos
}

func (e *Editor) drawGutter(g *render.Grid, y int, inBuf bool) {
	if e.vx == 0 {
		return
	}
	label := strings.Repeat(" ", e.vx)
	if inBuf {
		label = fmt.Sprintf("%*d ", e.vx-1, e.vtop+y+1)
	}
	putText(g, 0, y, label, e.theme.Gutter)
}

// drawText draws one buffer line, one rune per cell. offset is the byte
// offset of the line within the viewport text.
func (e *Editor) drawText(g *render.Grid, y int, line string, offset int, infos []highlight.StyleInfo) {
	x := e.vx
	for i, r := range line {
		if x >= g.Width {
			return
		}
		st := e.theme.Style
		if s, ok := highlight.StyleAt(infos, offset+i); ok {
			st = st.Patch(s)
		}
		if r == '\t' || r < ' ' {
			r = ' '
		}
		g.SetChar(x, y, r, st)
		x++
	}
}

func (e *Editor) statusRow() int {
	return e.vheight()
}

func (e *Editor) drawStatusline(g *render.Grid) {
	y := e.statusRow()
	if y >= g.Height {
		return
	}
	g.ClearRow(y, e.theme.Statusline.Inner)
	col, line := e.Cursor()
	cells := composeStatusline(e.theme.Statusline, e.mode, e.buf.Name, line+1, col+1, g.Width)
	for x, c := range cells {
		g.SetChar(x, y, c.Rune, c.Style)
	}
}

// drawMessage fills the bottom row, showing a pending key prefix at its
// right edge.
func (e *Editor) drawMessage(g *render.Grid) {
	y := e.statusRow() + 1
	if y >= g.Height {
		return
	}
	g.ClearRow(y, e.theme.Style)
	if e.router == nil {
		return
	}
	if p := e.router.Pending(); p != "" {
		w := runewidth.StringWidth(p)
		putText(g, max(g.Width-w-1, 0), y, p, e.theme.Style)
	}
}

// putText writes text from (x, y), advancing by each rune's display width
// and clipping at the right edge.
func putText(g *render.Grid, x, y int, text string, st theme.Style) {
	for _, r := range text {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		if x+w > g.Width {
			return
		}
		g.SetChar(x, y, r, st)
		x += w
	}
}
