package action

import (
	"fmt"
	"strings"
)

type Mode int

const (
	ModeNormal Mode = iota
	ModeInsert
)

func (m Mode) String() string {
	switch m {
	case ModeInsert:
		return "insert"
	default:
		return "normal"
	}
}

type Kind int

const (
	Quit Kind = iota
	MoveUp
	MoveDown
	MoveLeft
	MoveRight
	MoveToLineStart
	MoveToLineEnd
	PageUp
	PageDown
	MoveToTop
	MoveToBottom
	MoveLineToViewportCenter
	EnterMode
	InsertCharAtCursorPos
	DeleteCharAtCursorPos
	DeletePreviousChar
	NewLine
	InsertLineAtCursor
	InsertLineBelowCursor
	DeleteCurrentLine
	InsertLineAt
	DeleteLineAt
	RemoveCharAt
	Undo
	UndoMultiple
	Multiple
	SetWaitingKeyAction
)

// Names used in keymap configuration and in serialised actions.
var kindNames = map[Kind]string{
	Quit:                     "quit",
	MoveUp:                   "move_up",
	MoveDown:                 "move_down",
	MoveLeft:                 "move_left",
	MoveRight:                "move_right",
	MoveToLineStart:          "line_start",
	MoveToLineEnd:            "line_end",
	PageUp:                   "page_up",
	PageDown:                 "page_down",
	MoveToTop:                "file_start",
	MoveToBottom:             "file_end",
	MoveLineToViewportCenter: "center_line",
	EnterMode:                "enter_mode",
	InsertCharAtCursorPos:    "insert_char",
	DeleteCharAtCursorPos:    "delete_char",
	DeletePreviousChar:       "backspace",
	NewLine:                  "newline",
	InsertLineAtCursor:       "insert_line_above",
	InsertLineBelowCursor:    "insert_line_below",
	DeleteCurrentLine:        "delete_line",
	InsertLineAt:             "insert_line_at",
	DeleteLineAt:             "delete_line_at",
	RemoveCharAt:             "remove_char_at",
	Undo:                     "undo",
	UndoMultiple:             "undo_multiple",
	Multiple:                 "multiple",
	SetWaitingKeyAction:      "waiting_key",
}

var kindsByName = func() map[string]Kind {
	m := make(map[string]Kind, len(kindNames))
	for k, name := range kindNames {
		m[name] = k
	}
	return m
}()

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

func (k Kind) MarshalText() ([]byte, error) {
	name, ok := kindNames[k]
	if !ok {
		return nil, fmt.Errorf("unknown action kind %d", int(k))
	}
	return []byte(name), nil
}

func (k *Kind) UnmarshalText(text []byte) error {
	v, ok := kindsByName[string(text)]
	if !ok {
		return fmt.Errorf("unknown action kind %q", string(text))
	}
	*k = v
	return nil
}

// Action is one editor operation. Only the fields relevant to Kind are set.
type Action struct {
	Kind    Kind     `json:"kind"`
	Mode    Mode     `json:"mode,omitempty"`
	Char    rune     `json:"char,omitempty"`
	X       int      `json:"x,omitempty"`
	Y       int      `json:"y,omitempty"`
	Text    string   `json:"text,omitempty"`
	Key     string   `json:"key,omitempty"`
	Actions []Action `json:"actions,omitempty"`
}

func Simple(k Kind) Action {
	return Action{Kind: k}
}

func Enter(m Mode) Action {
	return Action{Kind: EnterMode, Mode: m}
}

func InsertChar(r rune) Action {
	return Action{Kind: InsertCharAtCursorPos, Char: r}
}

func RemoveChar(x, y int) Action {
	return Action{Kind: RemoveCharAt, X: x, Y: y}
}

func InsertLine(y int, text string) Action {
	return Action{Kind: InsertLineAt, Y: y, Text: text}
}

func DeleteLine(y int) Action {
	return Action{Kind: DeleteLineAt, Y: y}
}

// Bundle runs acts in order as one keystroke.
func Bundle(acts ...Action) Action {
	return Action{Kind: Multiple, Actions: acts}
}

// UndoGroup replays acts last-first.
func UndoGroup(acts []Action) Action {
	return Action{Kind: UndoMultiple, Actions: acts}
}

func Waiting(key string) Action {
	return Action{Kind: SetWaitingKeyAction, Key: key}
}

// Parse resolves a keymap action name. Besides the kind names it accepts
// enter_insert and enter_normal for mode switches.
func Parse(name string) (Action, error) {
	name = strings.TrimSpace(name)
	switch name {
	case "enter_insert":
		return Enter(ModeInsert), nil
	case "enter_normal":
		return Enter(ModeNormal), nil
	}
	k, ok := kindsByName[name]
	if !ok {
		return Action{}, fmt.Errorf("unknown action %q", name)
	}
	switch k {
	case EnterMode, InsertCharAtCursorPos, InsertLineAt, DeleteLineAt, RemoveCharAt,
		UndoMultiple, Multiple, SetWaitingKeyAction:
		return Action{}, fmt.Errorf("action %q cannot be bound to a key", name)
	}
	return Simple(k), nil
}

func (a Action) String() string {
	switch a.Kind {
	case EnterMode:
		return "enter_" + a.Mode.String()
	case InsertCharAtCursorPos:
		return fmt.Sprintf("insert_char(%q)", a.Char)
	case RemoveCharAt:
		return fmt.Sprintf("remove_char_at(%d,%d)", a.X, a.Y)
	case InsertLineAt:
		return fmt.Sprintf("insert_line_at(%d,%q)", a.Y, a.Text)
	case DeleteLineAt:
		return fmt.Sprintf("delete_line_at(%d)", a.Y)
	case SetWaitingKeyAction:
		return fmt.Sprintf("waiting_key(%s)", a.Key)
	case Multiple, UndoMultiple:
		parts := make([]string, len(a.Actions))
		for i, sub := range a.Actions {
			parts[i] = sub.String()
		}
		return a.Kind.String() + "[" + strings.Join(parts, " ") + "]"
	default:
		return a.Kind.String()
	}
}

// Mutates reports whether executing a changes buffer text.
func (a Action) Mutates() bool {
	switch a.Kind {
	case InsertCharAtCursorPos, DeleteCharAtCursorPos, DeletePreviousChar,
		InsertLineAtCursor, InsertLineBelowCursor, DeleteCurrentLine,
		InsertLineAt, DeleteLineAt, RemoveCharAt, Undo, UndoMultiple:
		return true
	case Multiple:
		for _, sub := range a.Actions {
			if sub.Mutates() {
				return true
			}
		}
	}
	return false
}
