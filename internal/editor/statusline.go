package editor

import (
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/kobzarvs/medit/internal/action"
	"github.com/kobzarvs/medit/internal/render"
	"github.com/kobzarvs/medit/internal/theme"
)

const scratchName = "[scratch]"

// composeStatusline lays out the status row as cells:
//
//	<pad>MODE <sep> name... <sep> line:col<pad>
//
// The mode and position segments use the outer style, the name segment the
// inner one. The name segment takes whatever width the other two leave,
// less the two separators, and is padded or truncated to fill it exactly.
func composeStatusline(sl theme.Statusline, mode action.Mode, name string, line, col, width int) []render.Cell {
	if width <= 0 {
		return nil
	}
	if name == "" {
		name = scratchName
	}
	modeSeg := string(sl.Glyphs[0]) + strings.ToUpper(mode.String()) + " "
	posSeg := " " + strconv.Itoa(line) + ":" + strconv.Itoa(col) + string(sl.Glyphs[3])
	nameW := width - runewidth.StringWidth(modeSeg) - runewidth.StringWidth(posSeg) - 2

	sep := theme.Style{Fg: sl.Outer.Bg, Bg: sl.Inner.Bg}

	cells := make([]render.Cell, 0, width)
	appendSeg := func(s string, st theme.Style) {
		for _, r := range s {
			if len(cells) >= width {
				return
			}
			cells = append(cells, render.Cell{Rune: r, Style: st})
			// Wide runes take two cells; the second is a blank in the same style.
			if runewidth.RuneWidth(r) == 2 && len(cells) < width {
				cells = append(cells, render.Cell{Rune: ' ', Style: st})
			}
		}
	}

	appendSeg(modeSeg, sl.Outer)
	appendSeg(string(sl.Glyphs[1]), sep)
	if nameW > 0 {
		seg := runewidth.Truncate(" "+name, nameW, "…")
		appendSeg(runewidth.FillRight(seg, nameW), sl.Inner)
	}
	appendSeg(string(sl.Glyphs[2]), sep)
	appendSeg(posSeg, sl.Outer)
	return cells
}
