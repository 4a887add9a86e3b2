package render

import (
	"fmt"

	"github.com/kobzarvs/medit/internal/theme"
)

type Cell struct {
	Rune  rune
	Style theme.Style
}

// Change is one cell that differs from the previous frame.
type Change struct {
	X, Y int
	Cell Cell
}

// Grid is a frame of Width*Height cells in row-major order.
type Grid struct {
	Width  int
	Height int
	cells  []Cell
	def    theme.Style
}

// NewGrid returns a grid filled with blanks in the default style.
func NewGrid(width, height int, def theme.Style) *Grid {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	g := &Grid{Width: width, Height: height, def: def}
	g.cells = make([]Cell, width*height)
	for i := range g.cells {
		g.cells[i] = Cell{Rune: ' ', Style: def}
	}
	return g
}

func (g *Grid) Default() theme.Style {
	return g.def
}

// SetChar writes one cell. Writing outside the grid is a programming error
// and panics.
func (g *Grid) SetChar(x, y int, r rune, st theme.Style) {
	if x < 0 || y < 0 || x >= g.Width || y >= g.Height {
		panic(fmt.Sprintf("render: SetChar(%d, %d) outside %dx%d grid", x, y, g.Width, g.Height))
	}
	g.cells[y*g.Width+x] = Cell{Rune: r, Style: st}
}

// SetText writes text one rune per cell starting at (x, y). The whole text
// must fit on row y.
func (g *Grid) SetText(x, y int, text string, st theme.Style) {
	runes := []rune(text)
	if len(runes) == 0 {
		return
	}
	if x < 0 || y < 0 || y >= g.Height || x+len(runes) > g.Width {
		panic(fmt.Sprintf("render: SetText(%d, %d, %d runes) outside %dx%d grid", x, y, len(runes), g.Width, g.Height))
	}
	row := g.cells[y*g.Width:]
	for i, r := range runes {
		row[x+i] = Cell{Rune: r, Style: st}
	}
}

// ClearRow blanks row y in style st.
func (g *Grid) ClearRow(y int, st theme.Style) {
	if y < 0 || y >= g.Height {
		panic(fmt.Sprintf("render: ClearRow(%d) outside %dx%d grid", y, g.Width, g.Height))
	}
	row := g.cells[y*g.Width : (y+1)*g.Width]
	for i := range row {
		row[i] = Cell{Rune: ' ', Style: st}
	}
}

func (g *Grid) Cell(x, y int) Cell {
	if x < 0 || y < 0 || x >= g.Width || y >= g.Height {
		panic(fmt.Sprintf("render: Cell(%d, %d) outside %dx%d grid", x, y, g.Width, g.Height))
	}
	return g.cells[y*g.Width+x]
}

func (g *Grid) Clone() *Grid {
	c := *g
	c.cells = make([]Cell, len(g.cells))
	copy(c.cells, g.cells)
	return &c
}

// Diff returns, in row-major order, every cell of g whose rune or style
// differs from prev. Both grids must have the same size.
func (g *Grid) Diff(prev *Grid) []Change {
	if g.Width != prev.Width || g.Height != prev.Height {
		panic(fmt.Sprintf("render: Diff of %dx%d grid against %dx%d", g.Width, g.Height, prev.Width, prev.Height))
	}
	var changes []Change
	for i, c := range g.cells {
		if c != prev.cells[i] {
			changes = append(changes, Change{X: i % g.Width, Y: i / g.Width, Cell: c})
		}
	}
	return changes
}

// NonDefault returns the cells that differ from a blank in the default
// style, in row-major order. A full redraw clears the screen and paints
// only these.
func (g *Grid) NonDefault() []Change {
	blank := Cell{Rune: ' ', Style: g.def}
	var changes []Change
	for i, c := range g.cells {
		if c != blank {
			changes = append(changes, Change{X: i % g.Width, Y: i / g.Width, Cell: c})
		}
	}
	return changes
}
