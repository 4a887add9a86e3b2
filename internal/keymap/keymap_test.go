package keymap

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"unicode"

	"github.com/gdamore/tcell/v2"

	"github.com/kobzarvs/medit/internal/action"
	"github.com/kobzarvs/medit/internal/config"
)

func eventForKeyString(t *testing.T, key string) *tcell.EventKey {
	t.Helper()
	if len([]rune(key)) == 1 {
		return tcell.NewEventKey(tcell.KeyRune, []rune(key)[0], tcell.ModNone)
	}
	parts := strings.Split(key, "+")
	base := parts[len(parts)-1]
	var mod tcell.ModMask
	for _, part := range parts[:len(parts)-1] {
		switch part {
		case "ctrl":
			mod |= tcell.ModCtrl
		case "alt":
			mod |= tcell.ModAlt
		case "shift":
			mod |= tcell.ModShift
		default:
			t.Fatalf("unknown modifier %q in %q", part, key)
		}
	}

	if mod == tcell.ModCtrl {
		if r := []rune(base); len(r) == 1 && unicode.IsLetter(r[0]) {
			k := tcell.KeyCtrlA + tcell.Key(unicode.ToLower(r[0])-'a')
			return tcell.NewEventKey(k, 0, tcell.ModCtrl)
		}
	}

	switch base {
	case "left":
		return tcell.NewEventKey(tcell.KeyLeft, 0, mod)
	case "right":
		return tcell.NewEventKey(tcell.KeyRight, 0, mod)
	case "up":
		return tcell.NewEventKey(tcell.KeyUp, 0, mod)
	case "down":
		return tcell.NewEventKey(tcell.KeyDown, 0, mod)
	case "home":
		return tcell.NewEventKey(tcell.KeyHome, 0, mod)
	case "end":
		return tcell.NewEventKey(tcell.KeyEnd, 0, mod)
	case "pgup":
		return tcell.NewEventKey(tcell.KeyPgUp, 0, mod)
	case "pgdn":
		return tcell.NewEventKey(tcell.KeyPgDn, 0, mod)
	case "enter":
		return tcell.NewEventKey(tcell.KeyEnter, 0, mod)
	case "backspace":
		return tcell.NewEventKey(tcell.KeyBackspace2, 0, mod)
	case "del":
		return tcell.NewEventKey(tcell.KeyDelete, 0, mod)
	case "tab":
		return tcell.NewEventKey(tcell.KeyTab, 0, mod)
	case "esc":
		return tcell.NewEventKey(tcell.KeyEscape, 0, mod)
	case "space":
		return tcell.NewEventKey(tcell.KeyRune, ' ', mod)
	}

	if r := []rune(base); len(r) == 1 {
		return tcell.NewEventKey(tcell.KeyRune, r[0], mod)
	}

	t.Fatalf("unsupported key %q", key)
	return nil
}

func TestKeyStringRoundTrip(t *testing.T) {
	for _, key := range []string{
		"h", "G", "$", "0", "space", "esc", "enter", "backspace", "del", "tab",
		"up", "down", "left", "right", "home", "end", "pgup", "pgdn",
		"ctrl+b", "ctrl+f", "ctrl+c", "alt+x",
	} {
		if got := KeyString(eventForKeyString(t, key)); got != key {
			t.Fatalf("KeyString(%s) = %q", key, got)
		}
	}
}

func defaultRouter(t *testing.T) *Router {
	t.Helper()
	km, err := FromConfig(config.Default().Keymap)
	if err != nil {
		t.Fatalf("FromConfig(defaults): %v", err)
	}
	return NewRouter(km)
}

func resolve(t *testing.T, r *Router, mode action.Mode, key string) (action.Action, bool) {
	t.Helper()
	return r.Resolve(mode, eventForKeyString(t, key))
}

func TestResolveSimple(t *testing.T) {
	r := defaultRouter(t)
	cases := map[string]action.Kind{
		"j":      action.MoveDown,
		"k":      action.MoveUp,
		"$":      action.MoveToLineEnd,
		"G":      action.MoveToBottom,
		"ctrl+f": action.PageDown,
		"x":      action.DeleteCharAtCursorPos,
		"u":      action.Undo,
		"q":      action.Quit,
	}
	for key, want := range cases {
		got, ok := resolve(t, r, action.ModeNormal, key)
		if !ok || got.Kind != want {
			t.Fatalf("normal %s = %v, %v, want %v", key, got, ok, want)
		}
	}
	if _, ok := resolve(t, r, action.ModeNormal, "Z"); ok {
		t.Fatalf("unbound normal key resolved")
	}
}

func TestResolveBundle(t *testing.T) {
	r := defaultRouter(t)
	got, ok := resolve(t, r, action.ModeNormal, "o")
	if !ok || got.Kind != action.Multiple {
		t.Fatalf("o = %v, %v, want bundle", got, ok)
	}
	if got.String() != "multiple[insert_line_below enter_insert]" {
		t.Fatalf("o = %s", got)
	}
}

func TestResolveNestedSequence(t *testing.T) {
	r := defaultRouter(t)

	got, ok := resolve(t, r, action.ModeNormal, "g")
	if !ok || got.Kind != action.SetWaitingKeyAction || got.Key != "g" {
		t.Fatalf("g = %v, %v, want waiting(g)", got, ok)
	}
	if r.Pending() != "g" {
		t.Fatalf("Pending = %q, want g", r.Pending())
	}
	got, ok = resolve(t, r, action.ModeNormal, "g")
	if !ok || got.Kind != action.MoveToTop {
		t.Fatalf("gg = %v, %v, want file_start", got, ok)
	}
	if r.Pending() != "" {
		t.Fatalf("Pending after sequence = %q", r.Pending())
	}

	for _, seq := range [][2]string{{"d", "d"}, {"z", "z"}} {
		resolve(t, r, action.ModeNormal, seq[0])
		got, _ = resolve(t, r, action.ModeNormal, seq[1])
		want := map[string]action.Kind{"d": action.DeleteCurrentLine, "z": action.MoveLineToViewportCenter}[seq[0]]
		if got.Kind != want {
			t.Fatalf("%s%s = %v, want %v", seq[0], seq[1], got, want)
		}
	}
}

func TestResolveNestedMissDropsAndClears(t *testing.T) {
	r := defaultRouter(t)
	resolve(t, r, action.ModeNormal, "g")

	// j is bound at top level, but the pending table does not know it.
	if got, ok := resolve(t, r, action.ModeNormal, "j"); ok {
		t.Fatalf("g j = %v, want dropped", got)
	}
	if r.Pending() != "" {
		t.Fatalf("Pending after miss = %q", r.Pending())
	}
	// Routing resumes on the next key.
	if got, ok := resolve(t, r, action.ModeNormal, "j"); !ok || got.Kind != action.MoveDown {
		t.Fatalf("j after miss = %v, %v", got, ok)
	}
	// g arms the sequence again.
	if got, ok := resolve(t, r, action.ModeNormal, "g"); !ok || got.Kind != action.SetWaitingKeyAction {
		t.Fatalf("g = %v", got)
	}
}

func TestNestedResultReplacesPending(t *testing.T) {
	km, err := FromConfig(config.Keymap{
		Normal: map[string]any{
			"g": map[string]any{
				"g": "file_start",
				"o": map[string]any{"e": "file_end"},
			},
		},
	})
	if err != nil {
		t.Fatalf("FromConfig: %v", err)
	}
	r := NewRouter(km)
	resolve(t, r, action.ModeNormal, "g")
	got, _ := resolve(t, r, action.ModeNormal, "o")
	if got.Kind != action.SetWaitingKeyAction || r.Pending() != "o" {
		t.Fatalf("g o = %v, pending %q, want waiting(o)", got, r.Pending())
	}
	got, _ = resolve(t, r, action.ModeNormal, "e")
	if got.Kind != action.MoveToBottom {
		t.Fatalf("g o e = %v, want file_end", got)
	}
}

func TestModeSwitchClearsPending(t *testing.T) {
	r := defaultRouter(t)
	resolve(t, r, action.ModeNormal, "g")
	got, ok := resolve(t, r, action.ModeInsert, "g")
	if !ok || got.Kind != action.InsertCharAtCursorPos || got.Char != 'g' {
		t.Fatalf("insert g after normal g = %v, %v, want insert_char", got, ok)
	}
	if r.Pending() != "" {
		t.Fatalf("Pending = %q after mode switch", r.Pending())
	}
}

func TestInsertMode(t *testing.T) {
	r := defaultRouter(t)
	cases := []struct {
		key  string
		want action.Action
	}{
		{"a", action.InsertChar('a')},
		{"G", action.InsertChar('G')},
		{"space", action.InsertChar(' ')},
		{"tab", action.InsertChar('\t')},
		{"esc", action.Enter(action.ModeNormal)},
		{"enter", action.Simple(action.NewLine)},
		{"backspace", action.Simple(action.DeletePreviousChar)},
	}
	for _, tt := range cases {
		got, ok := resolve(t, r, action.ModeInsert, tt.key)
		if !ok || got.String() != tt.want.String() {
			t.Fatalf("insert %s = %v, %v, want %v", tt.key, got, ok, tt.want)
		}
	}
	if _, ok := resolve(t, r, action.ModeInsert, "ctrl+x"); ok {
		t.Fatalf("ctrl+x inserted a character")
	}
}

func TestFromConfigErrors(t *testing.T) {
	cases := []map[string]any{
		{"x": "teleport"},
		{"x": []any{"move_up", "fly"}},
		{"x": []any{}},
		{"x": 42},
		{"g": map[string]any{"g": "nope"}},
	}
	for _, m := range cases {
		_, err := FromConfig(config.Keymap{Normal: m})
		if err == nil {
			t.Fatalf("FromConfig(%v) error = nil", m)
		}
	}
	_, err := FromConfig(config.Keymap{Insert: map[string]any{"x": "teleport"}})
	if !errors.Is(err, ErrUnknownAction) {
		t.Fatalf("error = %v, want ErrUnknownAction", err)
	}
}

func TestConfigOverridesInAnySpelling(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("MEDIT_CONFIG_HOME", dir)
	data := `
[keymap.normal]
"Ctrl-f" = "quit"
"C-b" = "quit"

[keymap.insert]
"Enter" = "enter_normal"
`
	if err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte(data), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	km, err := FromConfig(cfg.Keymap)
	if err != nil {
		t.Fatalf("FromConfig: %v", err)
	}
	r := NewRouter(km)

	cases := []struct {
		mode action.Mode
		key  string
		want action.Action
	}{
		{action.ModeNormal, "ctrl+f", action.Simple(action.Quit)},
		{action.ModeNormal, "ctrl+b", action.Simple(action.Quit)},
		{action.ModeInsert, "enter", action.Enter(action.ModeNormal)},
		{action.ModeNormal, "pgdn", action.Simple(action.PageDown)},
		{action.ModeNormal, "j", action.Simple(action.MoveDown)},
	}
	for _, c := range cases {
		a, ok := resolve(t, r, c.mode, c.key)
		if !ok || a.String() != c.want.String() {
			t.Fatalf("%s %s = %v (%v), want %v", c.mode, c.key, a, ok, c.want)
		}
	}
}
