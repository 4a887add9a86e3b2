package theme

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/kobzarvs/medit/internal/config"
)

// ErrMissingBase is returned when a theme does not define both base colours.
var ErrMissingBase = errors.New("theme: base foreground and background are required")

// Style is a cell style. tcell.ColorDefault marks an unset colour.
type Style struct {
	Fg     tcell.Color
	Bg     tcell.Color
	Bold   bool
	Italic bool
}

// Patch returns s with every field o sets laid over it.
func (s Style) Patch(o Style) Style {
	if o.Fg != tcell.ColorDefault {
		s.Fg = o.Fg
	}
	if o.Bg != tcell.ColorDefault {
		s.Bg = o.Bg
	}
	s.Bold = s.Bold || o.Bold
	s.Italic = s.Italic || o.Italic
	return s
}

func (s Style) TCell() tcell.Style {
	return tcell.StyleDefault.
		Foreground(s.Fg).
		Background(s.Bg).
		Bold(s.Bold).
		Italic(s.Italic)
}

// Statusline holds the two segment styles and the glyphs drawn around them:
// left padding, mode/name separator, name/position separator, right padding.
type Statusline struct {
	Outer  Style
	Inner  Style
	Glyphs [4]rune
}

// TokenStyle applies Style to every highlight scope in Scopes.
type TokenStyle struct {
	Name   string
	Scopes []string
	Style  Style
}

type Theme struct {
	Name       string
	Style      Style
	Gutter     Style
	Statusline Statusline
	Tokens     []TokenStyle
}

// GetStyle looks up the style for a highlight scope. A dotted scope falls
// back to its parents, so "function.method" uses "function" when no token
// names it directly.
func (t *Theme) GetStyle(scope string) (Style, bool) {
	for scope != "" {
		for _, tok := range t.Tokens {
			for _, s := range tok.Scopes {
				if s == scope {
					return tok.Style, true
				}
			}
		}
		i := strings.LastIndexByte(scope, '.')
		if i < 0 {
			break
		}
		scope = scope[:i]
	}
	return Style{}, false
}

func (t *Theme) validate() error {
	if t.Style.Fg == tcell.ColorDefault || t.Style.Bg == tcell.ColorDefault {
		return ErrMissingBase
	}
	return nil
}

func defaultStatusline() Statusline {
	return Statusline{
		Outer: Style{
			Fg:   tcell.NewRGBColor(0, 0, 0),
			Bg:   tcell.NewRGBColor(184, 144, 243),
			Bold: true,
		},
		Inner: Style{
			Fg:   tcell.NewRGBColor(255, 255, 255),
			Bg:   tcell.NewRGBColor(67, 70, 89),
			Bold: true,
		},
		Glyphs: [4]rune{' ', '\ue0b0', '\ue0b2', ' '},
	}
}

// Default is the built-in theme, the same one an empty config produces.
func Default() *Theme {
	t, err := FromConfig(config.Default().Theme)
	if err != nil {
		panic(err)
	}
	return t
}

// FromConfig builds a theme from the flat colour table of config.toml and
// any TOML theme file merged into it.
func FromConfig(c config.Theme) (*Theme, error) {
	var errs []error
	color := func(field, value string) tcell.Color {
		col, err := ParseColor(value)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", field, err))
		}
		return col
	}

	t := &Theme{Name: c.Theme}
	if t.Name == "" {
		t.Name = "default"
	}
	t.Style = Style{
		Fg: color("foreground", c.Foreground),
		Bg: color("background", c.Background),
	}
	t.Gutter = Style{
		Fg: color("line-number-foreground", c.LineNumberForeground),
		Bg: color("line-number-background", c.LineNumberBackground),
	}

	t.Statusline = defaultStatusline()
	if c.StatuslineForeground != "" {
		t.Statusline.Outer.Fg = color("statusline-foreground", c.StatuslineForeground)
	}
	if c.StatuslineBackground != "" {
		t.Statusline.Outer.Bg = color("statusline-background", c.StatuslineBackground)
	}
	if c.StatuslineInnerForeground != "" {
		t.Statusline.Inner.Fg = color("statusline-inner-foreground", c.StatuslineInnerForeground)
	}
	if c.StatuslineInnerBackground != "" {
		t.Statusline.Inner.Bg = color("statusline-inner-background", c.StatuslineInnerBackground)
	}
	if g := []rune(c.StatuslineGlyphs); len(g) == 4 {
		copy(t.Statusline.Glyphs[:], g)
	} else if len(g) != 0 {
		errs = append(errs, fmt.Errorf("statusline-glyphs: want 4 characters, got %d", len(g)))
	}

	syntax := []struct {
		scope, field, value string
	}{
		{"keyword", "syntax-keyword", c.SyntaxKeyword},
		{"string", "syntax-string", c.SyntaxString},
		{"comment", "syntax-comment", c.SyntaxComment},
		{"type", "syntax-type", c.SyntaxType},
		{"function", "syntax-function", c.SyntaxFunction},
		{"number", "syntax-number", c.SyntaxNumber},
		{"constant", "syntax-constant", c.SyntaxConstant},
		{"operator", "syntax-operator", c.SyntaxOperator},
		{"punctuation", "syntax-punctuation", c.SyntaxPunctuation},
		{"field", "syntax-field", c.SyntaxField},
		{"builtin", "syntax-builtin", c.SyntaxBuiltin},
		{"variable", "syntax-variable", c.SyntaxVariable},
		{"parameter", "syntax-parameter", c.SyntaxParameter},
	}
	for _, s := range syntax {
		if s.value == "" {
			continue
		}
		t.Tokens = append(t.Tokens, TokenStyle{
			Name:   s.field,
			Scopes: []string{s.scope},
			Style:  Style{Fg: color(s.field, s.value)},
		})
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("theme %s: %w", t.Name, errors.Join(errs...))
	}
	if err := t.validate(); err != nil {
		return nil, fmt.Errorf("theme %s: %w", t.Name, err)
	}
	return t, nil
}

// ParseColor accepts "#rgb", "#rrggbb", "default", an empty string (unset)
// and the colour names tcell knows.
func ParseColor(value string) (tcell.Color, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return tcell.ColorDefault, nil
	}
	if strings.HasPrefix(value, "#") {
		c, err := colorful.Hex(value)
		if err != nil {
			return tcell.ColorDefault, fmt.Errorf("invalid colour %q", value)
		}
		r, g, b := c.RGB255()
		return tcell.NewRGBColor(int32(r), int32(g), int32(b)), nil
	}
	value = strings.ToLower(value)
	if value == "default" {
		return tcell.ColorDefault, nil
	}
	c := tcell.GetColor(value)
	if c == tcell.ColorDefault {
		return tcell.ColorDefault, fmt.Errorf("unknown colour %q", value)
	}
	return c, nil
}

// Resolve picks the theme source named by the config: "chroma:<style>" for a
// built-in chroma style, a VS Code JSON theme found under the config dir,
// and otherwise the TOML colours already merged into c.
func Resolve(c config.Theme) (*Theme, error) {
	name := c.Theme
	if config.IsChromaTheme(name) {
		return FromChroma(strings.TrimPrefix(name, "chroma:"))
	}
	if name != "" {
		path, err := config.ThemeJSONPath(name)
		if err != nil {
			return nil, err
		}
		if fileExists(path) {
			return LoadVSCode(path)
		}
		if strings.HasSuffix(name, ".json") {
			return nil, fmt.Errorf("theme %s: file not found", name)
		}
	}
	return FromConfig(c)
}
