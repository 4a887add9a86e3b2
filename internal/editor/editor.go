package editor

import (
	"strconv"

	"github.com/gdamore/tcell/v2"

	"github.com/kobzarvs/medit/internal/action"
	"github.com/kobzarvs/medit/internal/buffer"
	"github.com/kobzarvs/medit/internal/highlight"
	"github.com/kobzarvs/medit/internal/keymap"
	"github.com/kobzarvs/medit/internal/logger"
	"github.com/kobzarvs/medit/internal/render"
	"github.com/kobzarvs/medit/internal/theme"
	"github.com/kobzarvs/medit/internal/undo"
)

type redrawKind int

const (
	redrawNone redrawKind = iota
	redrawLine
	redrawFull
)

// Options are the engine settings taken from the [editor] config table.
type Options struct {
	// LineNumbers is "off" to hide the gutter; anything else shows it.
	LineNumbers string
}

// Editor owns the buffer, the cursor and viewport, the mode and the undo
// log. It executes actions and turns its state into frames.
type Editor struct {
	buf    *buffer.Buffer
	theme  *theme.Theme
	hl     highlight.Highlighter
	router *keymap.Router
	undo   *undo.Log
	mode   action.Mode

	vtop  int // first visible buffer line
	vleft int // left clamp for cx
	cx    int // cursor column, viewport relative
	cy    int // cursor row, viewport relative
	vx    int // column where text starts (gutter width)

	lineNumbers bool

	width  int
	height int

	screen  tcell.Screen
	painter *render.Painter
	grid    *render.Grid

	redraw     redrawKind
	dirtyLine  int
	drawnVtop  int
	drawnVx    int
	drawnLines int
}

// New builds an editor over buf. hl may be nil, in which case text is drawn
// in the base style.
func New(buf *buffer.Buffer, th *theme.Theme, router *keymap.Router, hl highlight.Highlighter, opts Options) *Editor {
	if buf == nil {
		buf = buffer.New("", "")
	}
	e := &Editor{
		buf:         buf,
		theme:       th,
		hl:          hl,
		router:      router,
		undo:        undo.New(),
		mode:        action.ModeNormal,
		lineNumbers: opts.LineNumbers != "off",
	}
	e.vx = e.gutterWidth()
	return e
}

func (e *Editor) Mode() action.Mode {
	return e.mode
}

func (e *Editor) Buffer() *buffer.Buffer {
	return e.buf
}

// Cursor returns the cursor as an absolute buffer position.
func (e *Editor) Cursor() (col, line int) {
	return e.cx, e.vtop + e.cy
}

// vheight is the number of text rows: everything but the status and
// message rows, and at least one.
func (e *Editor) vheight() int {
	if e.height-2 < 1 {
		return 1
	}
	return e.height - 2
}

func (e *Editor) line() int {
	return e.vtop + e.cy
}

func (e *Editor) gutterWidth() int {
	if !e.lineNumbers {
		return 0
	}
	n := e.buf.Len()
	if n < 1 {
		n = 1
	}
	return len(strconv.Itoa(n)) + 1
}

// HandleKey routes one key event and executes the result. It reports
// whether the editor should quit.
func (e *Editor) HandleKey(ev *tcell.EventKey) bool {
	a, ok := e.router.Resolve(e.mode, ev)
	if ok && e.Execute(a) {
		return true
	}
	if e.screen != nil {
		e.Update()
	}
	return false
}

// Run draws the first frame and then processes events until Quit. The
// caller owns the screen and must Fini it.
func (e *Editor) Run(s tcell.Screen) error {
	e.attach(s)
	e.Render()
	for {
		ev := s.PollEvent()
		switch ev := ev.(type) {
		case nil:
			return nil
		case *tcell.EventKey:
			if e.HandleKey(ev) {
				logger.Info("quit", "file", e.buf.Name)
				return nil
			}
		case *tcell.EventResize:
			s.Sync()
			e.Render()
		}
	}
}

func (e *Editor) attach(s tcell.Screen) {
	e.screen = s
	e.painter = render.NewPainter(s)
	e.width, e.height = s.Size()
}
