package theme

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/tidwall/gjson"
)

// vscodeScopes maps TextMate scopes used by VS Code themes onto the capture
// names our highlighters emit.
var vscodeScopes = map[string]string{
	"comment":                          "comment",
	"punctuation.definition.comment":   "comment",
	"string":                           "string",
	"string.quoted.double":             "string",
	"string.quoted.single":             "string",
	"constant":                         "constant",
	"constant.language":                "constant.builtin",
	"constant.numeric":                 "number",
	"constant.character":               "constant",
	"constant.character.escape":        "string.escape",
	"keyword":                          "keyword",
	"keyword.control":                  "keyword",
	"keyword.operator":                 "operator",
	"keyword.type":                     "type.builtin",
	"storage":                          "keyword",
	"storage.type":                     "keyword",
	"storage.modifier":                 "keyword",
	"entity.name.type":                 "type",
	"support.type":                     "type",
	"support.type.primitive":           "type.builtin",
	"entity.name.function":             "function",
	"entity.name.function.member":      "function.method",
	"entity.name.function.constructor": "function",
	"entity.name.function.macro":       "function.macro",
	"support.function":                 "builtin",
	"support.function.macro":           "function.macro",
	"meta.function-call":               "function",
	"variable":                         "variable",
	"variable.function":                "function.method",
	"variable.parameter":               "parameter",
	"variable.language":                "builtin",
	"variable.other.member":            "field",
	"variable.other.property":          "field",
	"variable.other.enummember":        "constant",
	"support.variable":                 "builtin",
	"entity.name.tag":                  "keyword",
	"entity.other.attribute-name":      "field",
	"punctuation":                      "punctuation",
	"punctuation.separator":            "punctuation.delimiter",
	"punctuation.accessor":             "punctuation.delimiter",
	"punctuation.section.block":        "punctuation.bracket",
	"punctuation.definition.brackets":  "punctuation.bracket",
}

// translateScope maps a TextMate scope to a capture name, trying ever shorter
// prefixes ("keyword.control.go" → "keyword.control"). Unknown scopes are kept.
func translateScope(scope string) string {
	s := strings.TrimSpace(scope)
	for s != "" {
		if name, ok := vscodeScopes[s]; ok {
			return name
		}
		i := strings.LastIndexByte(s, '.')
		if i < 0 {
			break
		}
		s = s[:i]
	}
	return strings.TrimSpace(scope)
}

// LoadVSCode reads a VS Code colour theme. editor.foreground and
// editor.background must be present.
func LoadVSCode(path string) (*Theme, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	t, err := ParseVSCode(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

func ParseVSCode(data []byte) (*Theme, error) {
	if !gjson.ValidBytes(data) {
		return nil, errors.New("theme: invalid JSON")
	}
	doc := gjson.ParseBytes(data)
	colors := doc.Get("colors")

	var errs []error
	color := func(r gjson.Result, what string) tcell.Color {
		if !r.Exists() {
			return tcell.ColorDefault
		}
		c, err := ParseColor(r.String())
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", what, err))
		}
		return c
	}

	t := &Theme{
		Name: doc.Get("name").String(),
		Style: Style{
			Fg: color(colors.Get(`editor\.foreground`), "editor.foreground"),
			Bg: color(colors.Get(`editor\.background`), "editor.background"),
		},
		Gutter: Style{
			Fg: color(colors.Get(`editorLineNumber\.foreground`), "editorLineNumber.foreground"),
			Bg: color(colors.Get(`editorLineNumber\.background`), "editorLineNumber.background"),
		},
		Statusline: defaultStatusline(),
	}
	if t.Name == "" {
		t.Name = "vscode"
	}

	doc.Get("tokenColors").ForEach(func(_, tc gjson.Result) bool {
		settings := tc.Get("settings")
		tok := TokenStyle{Name: tc.Get("name").String()}
		tok.Style.Fg = color(settings.Get("foreground"), "tokenColors foreground")
		tok.Style.Bg = color(settings.Get("background"), "tokenColors background")
		if fs := settings.Get("fontStyle"); fs.Exists() {
			tok.Style.Bold = strings.Contains(fs.String(), "bold")
			tok.Style.Italic = strings.Contains(fs.String(), "italic")
		}

		scope := tc.Get("scope")
		switch {
		case scope.IsArray():
			for _, s := range scope.Array() {
				tok.Scopes = append(tok.Scopes, translateScope(s.String()))
			}
		case scope.Exists():
			// "a, b" lists several scopes in one string.
			for _, s := range strings.Split(scope.String(), ",") {
				if s = strings.TrimSpace(s); s != "" {
					tok.Scopes = append(tok.Scopes, translateScope(s))
				}
			}
		}
		if len(tok.Scopes) > 0 {
			t.Tokens = append(t.Tokens, tok)
		}
		return true
	})

	if len(errs) > 0 {
		return nil, fmt.Errorf("theme %s: %w", t.Name, errors.Join(errs...))
	}
	if err := t.validate(); err != nil {
		return nil, fmt.Errorf("theme %s: %w", t.Name, err)
	}
	return t, nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
