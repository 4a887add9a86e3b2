package keymap

import (
	"errors"
	"fmt"
	"sort"

	"github.com/gdamore/tcell/v2"

	"github.com/kobzarvs/medit/internal/action"
	"github.com/kobzarvs/medit/internal/config"
	"github.com/kobzarvs/medit/internal/logger"
)

var ErrUnknownAction = errors.New("unknown action")

// Binding is either an action (possibly a bundle) or a nested table that
// the next key is looked up in.
type Binding struct {
	Action action.Action
	Nested Table
}

type Table map[string]Binding

type Keymap struct {
	Normal Table
	Insert Table
}

func FromConfig(c config.Keymap) (Keymap, error) {
	normal, err := buildTable(c.Normal)
	if err != nil {
		return Keymap{}, fmt.Errorf("keymap.normal: %w", err)
	}
	insert, err := buildTable(c.Insert)
	if err != nil {
		return Keymap{}, fmt.Errorf("keymap.insert: %w", err)
	}
	return Keymap{Normal: normal, Insert: insert}, nil
}

func buildTable(m map[string]any) (Table, error) {
	t := make(Table, len(m))
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, key := range keys {
		b, err := buildBinding(m[key])
		if err != nil {
			return nil, fmt.Errorf("%q: %w", key, err)
		}
		t[config.NormalizeKey(key)] = b
	}
	return t, nil
}

func buildBinding(v any) (Binding, error) {
	switch val := v.(type) {
	case string:
		a, err := parseAction(val)
		return Binding{Action: a}, err
	case []string:
		items := make([]any, len(val))
		for i, s := range val {
			items[i] = s
		}
		return buildBinding(items)
	case []any:
		if len(val) == 0 {
			return Binding{}, errors.New("empty action list")
		}
		acts := make([]action.Action, 0, len(val))
		for _, item := range val {
			name, ok := item.(string)
			if !ok {
				return Binding{}, fmt.Errorf("action list entries must be strings, got %T", item)
			}
			a, err := parseAction(name)
			if err != nil {
				return Binding{}, err
			}
			acts = append(acts, a)
		}
		return Binding{Action: action.Bundle(acts...)}, nil
	case map[string]any:
		nested, err := buildTable(val)
		if err != nil {
			return Binding{}, err
		}
		return Binding{Nested: nested}, nil
	default:
		return Binding{}, fmt.Errorf("unsupported binding type %T", v)
	}
}

func parseAction(name string) (action.Action, error) {
	a, err := action.Parse(name)
	if err != nil {
		return action.Action{}, fmt.Errorf("%w: %v", ErrUnknownAction, err)
	}
	return a, nil
}

// Router turns key events into actions. It holds at most one pending
// nested table: the next key is resolved against it alone.
type Router struct {
	keymap      Keymap
	pending     Table
	pendingKey  string
	pendingMode action.Mode
}

func NewRouter(km Keymap) *Router {
	return &Router{keymap: km}
}

func (r *Router) table(mode action.Mode) Table {
	if mode == action.ModeInsert {
		return r.keymap.Insert
	}
	return r.keymap.Normal
}

// Resolve maps one key event to an action. A key bound to a nested table
// yields a SetWaitingKeyAction and arms the table for the next event; a key
// the pending table does not know is dropped. Unbound printable keys insert
// themselves in Insert mode.
func (r *Router) Resolve(mode action.Mode, ev *tcell.EventKey) (action.Action, bool) {
	key := KeyString(ev)

	table := r.table(mode)
	waiting := r.pending != nil && r.pendingMode == mode
	if waiting {
		table = r.pending
	}
	r.Reset()

	b, ok := table[key]
	if !ok {
		if waiting {
			logger.Debug("key sequence dropped", "key", key)
			return action.Action{}, false
		}
		if mode == action.ModeInsert {
			if ch, ok := insertRune(ev); ok {
				return action.InsertChar(ch), true
			}
		}
		return action.Action{}, false
	}
	if b.Nested != nil {
		r.pending = b.Nested
		r.pendingKey = key
		r.pendingMode = mode
		return action.Waiting(key), true
	}
	return b.Action, true
}

func insertRune(ev *tcell.EventKey) (rune, bool) {
	switch ev.Key() {
	case tcell.KeyRune:
		if ev.Modifiers()&(tcell.ModCtrl|tcell.ModAlt|tcell.ModMeta) != 0 {
			return 0, false
		}
		return ev.Rune(), true
	case tcell.KeyTab:
		if ev.Modifiers() == 0 {
			return '\t', true
		}
	}
	return 0, false
}

// Pending returns the key that armed the pending table, or "".
func (r *Router) Pending() string {
	return r.pendingKey
}

func (r *Router) Reset() {
	r.pending = nil
	r.pendingKey = ""
}
