package config

import "strings"

// NormalizeKey rewrites a configured key into the spelling keymap.KeyString
// produces for an event: modifiers lowercased and ordered ctrl, alt, shift;
// "Ctrl-x" and "C-x" style separators accepted.
func NormalizeKey(key string) string {
	if len([]rune(key)) == 1 {
		return key
	}
	k := strings.ReplaceAll(key, "-", "+")
	if strings.HasSuffix(key, "-") || strings.HasSuffix(key, "+") {
		// "ctrl+-" or "alt--": the last character is the key itself.
		k = strings.ReplaceAll(key[:len(key)-1], "-", "+") + key[len(key)-1:]
	}
	parts := strings.Split(k, "+")
	base := parts[len(parts)-1]
	if base == "" && len(parts) > 1 {
		base = "+"
		parts = parts[:len(parts)-1]
	}
	var ctrl, alt, shift bool
	for _, p := range parts[:len(parts)-1] {
		switch strings.ToLower(p) {
		case "ctrl", "c", "control":
			ctrl = true
		case "alt", "a", "m", "meta":
			alt = true
		case "shift", "s":
			shift = true
		}
	}
	if len([]rune(base)) > 1 {
		base = strings.ToLower(base)
		switch base {
		case "escape":
			base = "esc"
		case "return", "ret", "cr":
			base = "enter"
		case "delete":
			base = "del"
		case "pageup":
			base = "pgup"
		case "pagedown":
			base = "pgdn"
		case "bs":
			base = "backspace"
		}
	} else if ctrl {
		base = strings.ToLower(base)
	}
	out := ""
	if ctrl {
		out += "ctrl+"
	}
	if alt {
		out += "alt+"
	}
	if shift {
		out += "shift+"
	}
	return out + base
}
