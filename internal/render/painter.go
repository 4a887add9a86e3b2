package render

import (
	"github.com/gdamore/tcell/v2"

	"github.com/kobzarvs/medit/internal/theme"
)

// Painter writes changes to a screen, converting a style only when it
// differs from the one used for the previous cell.
type Painter struct {
	screen tcell.Screen
	last   theme.Style
	cur    tcell.Style
	valid  bool

	// StyleSwitches counts style conversions since the last Reset.
	StyleSwitches int
}

func NewPainter(s tcell.Screen) *Painter {
	return &Painter{screen: s}
}

func (p *Painter) Apply(changes []Change) {
	for _, ch := range changes {
		if !p.valid || ch.Cell.Style != p.last {
			p.last = ch.Cell.Style
			p.cur = ch.Cell.Style.TCell()
			p.valid = true
			p.StyleSwitches++
		}
		p.screen.SetContent(ch.X, ch.Y, ch.Cell.Rune, nil, p.cur)
	}
}

// Full repaints the screen from g: clear to the default style, then paint
// every cell that is not a default blank.
func (p *Painter) Full(g *Grid) {
	p.screen.SetStyle(g.Default().TCell())
	p.screen.Clear()
	p.Reset()
	p.Apply(g.NonDefault())
}

func (p *Painter) Reset() {
	p.valid = false
	p.StyleSwitches = 0
}
