package theme

import (
	"fmt"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/gdamore/tcell/v2"
)

// ChromaScopes pairs the capture names used for highlighting with the chroma
// token type whose colours stand in for them.
var ChromaScopes = []struct {
	Scope string
	Type  chroma.TokenType
}{
	{"keyword", chroma.Keyword},
	{"string", chroma.LiteralString},
	{"comment", chroma.Comment},
	{"type", chroma.KeywordType},
	{"function", chroma.NameFunction},
	{"number", chroma.LiteralNumber},
	{"constant", chroma.NameConstant},
	{"operator", chroma.Operator},
	{"punctuation", chroma.Punctuation},
	{"field", chroma.NameAttribute},
	{"builtin", chroma.NameBuiltin},
	{"variable", chroma.NameVariable},
	{"parameter", chroma.NameVariable},
}

// FromChroma builds a theme from one of chroma's bundled styles.
func FromChroma(name string) (*Theme, error) {
	style, ok := styles.Registry[name]
	if !ok {
		return nil, fmt.Errorf("theme chroma:%s: unknown chroma style", name)
	}

	base := style.Get(chroma.Background)
	t := &Theme{
		Name:       "chroma:" + name,
		Style:      Style{Fg: chromaColour(base.Colour), Bg: chromaColour(base.Background)},
		Gutter:     entryStyle(style.Get(chroma.LineNumbers)),
		Statusline: defaultStatusline(),
	}
	for _, cs := range ChromaScopes {
		entry := style.Get(cs.Type)
		if !entry.Colour.IsSet() {
			continue
		}
		st := entryStyle(entry)
		// Token backgrounds equal to the page background add nothing.
		if st.Bg == t.Style.Bg {
			st.Bg = tcell.ColorDefault
		}
		t.Tokens = append(t.Tokens, TokenStyle{
			Name:   cs.Type.String(),
			Scopes: []string{cs.Scope},
			Style:  st,
		})
	}
	if err := t.validate(); err != nil {
		return nil, fmt.Errorf("theme %s: %w", t.Name, err)
	}
	return t, nil
}

func entryStyle(e chroma.StyleEntry) Style {
	return Style{
		Fg:     chromaColour(e.Colour),
		Bg:     chromaColour(e.Background),
		Bold:   e.Bold == chroma.Yes,
		Italic: e.Italic == chroma.Yes,
	}
}

func chromaColour(c chroma.Colour) tcell.Color {
	if !c.IsSet() {
		return tcell.ColorDefault
	}
	return tcell.NewRGBColor(int32(c.Red()), int32(c.Green()), int32(c.Blue()))
}
