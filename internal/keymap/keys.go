package keymap

import (
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"
)

// KeyString names a key event the way keymap tables spell it: the rune
// itself ("h", "G", "$"), a named key ("esc", "pgdn", "space"), or a
// "ctrl+"/"alt+" prefixed form.
func KeyString(ev *tcell.EventKey) string {
	mods := ev.Modifiers()
	if ev.Key() == tcell.KeyRune {
		name := string(ev.Rune())
		if ev.Rune() == ' ' {
			name = "space"
		}
		if mods&tcell.ModCtrl != 0 {
			return "ctrl+" + strings.ToLower(name)
		}
		if mods&tcell.ModAlt != 0 {
			return "alt+" + name
		}
		return name
	}

	// Enter, Tab, Backspace and Esc share codes with ctrl+m, ctrl+i, ctrl+h
	// and ctrl+[, so they are named before the ctrl table is consulted.
	name := ""
	switch ev.Key() {
	case tcell.KeyEnter:
		name = "enter"
	case tcell.KeyTab:
		if mods&tcell.ModShift != 0 {
			return "shift+tab"
		}
		name = "tab"
	case tcell.KeyBacktab:
		return "shift+tab"
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		name = "backspace"
	case tcell.KeyEscape:
		name = "esc"
	case tcell.KeyUp:
		name = "up"
	case tcell.KeyDown:
		name = "down"
	case tcell.KeyLeft:
		name = "left"
	case tcell.KeyRight:
		name = "right"
	case tcell.KeyPgUp:
		name = "pgup"
	case tcell.KeyPgDn:
		name = "pgdn"
	case tcell.KeyHome:
		name = "home"
	case tcell.KeyEnd:
		name = "end"
	case tcell.KeyDelete:
		name = "del"
	case tcell.KeyInsert:
		name = "ins"
	default:
		if c := ctrlKeyName(ev.Key()); c != "" {
			return c
		}
		if ev.Key() >= tcell.KeyF1 && ev.Key() <= tcell.KeyF12 {
			name = "f" + strconv.Itoa(int(ev.Key()-tcell.KeyF1)+1)
		}
	}
	if name == "" {
		return ""
	}
	prefix := ""
	if mods&tcell.ModCtrl != 0 {
		prefix += "ctrl+"
	}
	if mods&tcell.ModAlt != 0 {
		prefix += "alt+"
	}
	if mods&tcell.ModShift != 0 {
		prefix += "shift+"
	}
	return prefix + name
}

func ctrlKeyName(key tcell.Key) string {
	if key >= tcell.KeyCtrlA && key <= tcell.KeyCtrlZ {
		return "ctrl+" + string(rune('a'+int(key-tcell.KeyCtrlA)))
	}
	switch key {
	case tcell.KeyCtrlSpace:
		return "ctrl+space"
	case tcell.KeyCtrlBackslash:
		return "ctrl+\\"
	case tcell.KeyCtrlRightSq:
		return "ctrl+]"
	case tcell.KeyCtrlCarat:
		return "ctrl+^"
	case tcell.KeyCtrlUnderscore:
		return "ctrl+_"
	}
	return ""
}
