package editor

import (
	"github.com/kobzarvs/medit/internal/action"
	"github.com/kobzarvs/medit/internal/logger"
)

// Execute applies a to the editor state and reports whether the run loop
// should stop. Mutations push their inverse onto the undo log, or onto the
// open insert group while in insert mode. Bounds are not re-checked here;
// checkBounds runs once before each frame.
func (e *Editor) Execute(a action.Action) bool {
	logger.Debug("execute", "action", a.String(), "mutates", a.Mutates(), "mode", e.mode.String())

	switch a.Kind {
	case action.Quit:
		return true

	case action.MoveUp:
		if e.cy > 0 {
			e.cy--
		} else if e.vtop > 0 {
			e.vtop--
		}
	case action.MoveDown:
		if e.line()+1 >= e.buf.Len() {
			break
		}
		if e.cy < e.vheight()-1 {
			e.cy++
		} else {
			e.vtop++
		}
	case action.MoveLeft:
		if e.cx > e.vleft {
			e.cx--
		}
	case action.MoveRight:
		if e.cx < e.maxCol() {
			e.cx++
		}
	case action.MoveToLineStart:
		e.cx = e.vleft
	case action.MoveToLineEnd:
		e.cx = e.maxCol()

	case action.PageUp:
		e.vtop -= e.vheight()
		if e.vtop < 0 {
			e.vtop = 0
		}
	case action.PageDown:
		e.vtop += e.vheight()
		if last := e.buf.Len() - 1; e.vtop > last {
			e.vtop = max(last, 0)
		}
	case action.MoveToTop:
		e.vtop, e.cy = 0, 0
	case action.MoveToBottom:
		n := e.buf.Len()
		if n <= e.vheight() {
			e.vtop, e.cy = 0, max(n-1, 0)
		} else {
			e.vtop, e.cy = n-e.vheight(), e.vheight()-1
		}
	case action.MoveLineToViewportCenter:
		e.centerLine()

	case action.EnterMode:
		e.enterMode(a.Mode)

	case action.InsertCharAtCursorPos:
		if e.buf.Len() == 0 {
			e.buf.InsertLine(0, "")
			e.undo.Push(action.DeleteLine(0))
			e.markFull()
		}
		line := e.line()
		e.buf.InsertChar(e.cx, line, a.Char)
		e.undo.Push(action.RemoveChar(e.cx, line))
		e.cx++
		e.markLine(line)
	case action.DeleteCharAtCursorPos:
		// Forward delete records no inverse.
		line := e.line()
		if e.buf.LineLen(line) > 0 {
			e.buf.RemoveChar(e.cx, line)
			e.markLine(line)
		}
	case action.DeletePreviousChar:
		if e.cx > 0 {
			e.cx--
			e.buf.RemoveChar(e.cx, e.line())
			e.markLine(e.line())
		}
	case action.NewLine:
		// Moves to the start of the next row without splitting the line.
		e.cx = 0
		e.cy++

	case action.InsertLineAtCursor:
		at := min(e.line(), e.buf.Len())
		e.buf.InsertLine(at, "")
		e.undo.Push(action.DeleteLine(at))
		e.cx = 0
		e.markFull()
	case action.InsertLineBelowCursor:
		at := min(e.line()+1, e.buf.Len())
		e.buf.InsertLine(at, "")
		e.undo.Push(action.DeleteLine(at))
		e.cx = 0
		e.cy = at - e.vtop
		e.markFull()
	case action.DeleteCurrentLine:
		line := e.line()
		text, ok := e.buf.Line(line)
		if !ok {
			break
		}
		e.buf.RemoveLine(line)
		e.undo.Push(action.InsertLine(line, text))
		e.markFull()

	case action.InsertLineAt:
		e.buf.InsertLine(a.Y, a.Text)
		e.gotoLine(a.Y)
		e.markFull()
	case action.DeleteLineAt:
		e.buf.RemoveLine(a.Y)
		e.markFull()
	case action.RemoveCharAt:
		e.buf.RemoveChar(a.X, a.Y)
		e.gotoLine(a.Y)
		e.cx = a.X
		e.markLine(a.Y)

	case action.Undo:
		if inv, ok := e.undo.Pop(); ok {
			e.Execute(inv)
		}
	case action.UndoMultiple:
		for i := len(a.Actions) - 1; i >= 0; i-- {
			e.Execute(a.Actions[i])
		}
	case action.Multiple:
		for _, sub := range a.Actions {
			if e.Execute(sub) {
				return true
			}
		}

	case action.SetWaitingKeyAction:
		// The pending prefix lives in the router and is drawn on the
		// message row.
	}
	return false
}

func (e *Editor) enterMode(m action.Mode) {
	if m == e.mode {
		return
	}
	switch m {
	case action.ModeInsert:
		e.undo.Begin()
	case action.ModeNormal:
		e.undo.Commit()
	}
	e.mode = m
}

// maxCol is the last column the cursor may occupy on the current line:
// one past the end in insert mode, the last character otherwise.
func (e *Editor) maxCol() int {
	n := e.buf.LineLen(e.line())
	if e.mode == action.ModeInsert {
		return n
	}
	return max(n-1, 0)
}

// centerLine scrolls so the cursor line sits at the middle row. It does
// nothing unless there are enough lines above and below to fill the
// viewport around it.
func (e *Editor) centerLine() {
	line := e.line()
	half := e.vheight() / 2
	top := line - half
	if top < 0 || top+e.vheight() > e.buf.Len() {
		return
	}
	e.vtop, e.cy = top, half
}

// gotoLine puts the cursor on buffer line y, scrolling only when y is
// outside the viewport.
func (e *Editor) gotoLine(y int) {
	switch {
	case y < e.vtop:
		e.vtop, e.cy = y, 0
	case y >= e.vtop+e.vheight():
		e.vtop = y - e.vheight() + 1
		e.cy = e.vheight() - 1
	default:
		e.cy = y - e.vtop
	}
}

// checkBounds restores the cursor invariants: cy inside the viewport, the
// cursor on an existing line (or line 0 of an empty buffer) and cx within
// the line.
func (e *Editor) checkBounds() {
	vh := e.vheight()
	if e.vtop < 0 {
		e.vtop = 0
	}
	if e.cy < 0 {
		e.cy = 0
	}
	if e.cy >= vh {
		e.vtop += e.cy - vh + 1
		e.cy = vh - 1
	}
	last := max(e.buf.Len()-1, 0)
	if e.vtop > last {
		e.vtop = last
	}
	if e.line() > last {
		e.cy = last - e.vtop
	}
	if c := e.maxCol(); e.cx > c {
		e.cx = c
	}
	if e.cx < e.vleft {
		e.cx = e.vleft
	}
}

func (e *Editor) markFull() {
	e.redraw = redrawFull
}

// markLine asks for buffer line y to be redrawn. A second distinct line in
// the same frame escalates to a full viewport redraw.
func (e *Editor) markLine(y int) {
	switch e.redraw {
	case redrawNone:
		e.redraw = redrawLine
		e.dirtyLine = y
	case redrawLine:
		if e.dirtyLine != y {
			e.redraw = redrawFull
		}
	}
}
