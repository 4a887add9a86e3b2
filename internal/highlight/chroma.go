package highlight

import (
	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
)

// Chroma highlights with a chroma lexer, for file types that have no
// tree-sitter grammar.
type Chroma struct {
	lexer  chroma.Lexer
	styles Styles
}

// NewChroma picks a lexer by language name, then by file name. It returns
// nil when chroma knows neither.
func NewChroma(lang, filename string, styles Styles) *Chroma {
	var lexer chroma.Lexer
	if lang != "" {
		lexer = lexers.Get(lang)
	}
	if lexer == nil && filename != "" {
		lexer = lexers.Match(filename)
	}
	if lexer == nil {
		return nil
	}
	return &Chroma{lexer: chroma.Coalesce(lexer), styles: styles}
}

func (c *Chroma) Name() string {
	return c.lexer.Config().Name
}

func (c *Chroma) Highlight(text string) ([]StyleInfo, error) {
	tokens, err := chroma.Tokenise(c.lexer, nil, text)
	if err != nil {
		return nil, err
	}
	var out []StyleInfo
	pos := 0
	for _, tok := range tokens {
		if tok.Type == chroma.EOFType {
			break
		}
		start := pos
		pos += len(tok.Value)
		scope := ScopeForToken(tok.Type)
		if scope == "" {
			continue
		}
		style, ok := c.styles.GetStyle(scope)
		if !ok {
			continue
		}
		out = append(out, StyleInfo{Start: start, End: pos, Style: style})
	}
	return out, nil
}

// ScopeForToken maps a chroma token type onto a capture name, or "" for
// plain text.
func ScopeForToken(tt chroma.TokenType) string {
	switch tt {
	case chroma.KeywordType:
		return "type"
	case chroma.KeywordConstant:
		return "constant"
	case chroma.NameFunction, chroma.NameFunctionMagic:
		return "function"
	case chroma.NameBuiltin, chroma.NameBuiltinPseudo:
		return "builtin"
	case chroma.NameClass, chroma.NameNamespace:
		return "type"
	case chroma.NameConstant:
		return "constant"
	case chroma.NameAttribute, chroma.NameProperty, chroma.NameTag:
		return "field"
	case chroma.NameVariable, chroma.NameVariableClass, chroma.NameVariableGlobal, chroma.NameVariableInstance:
		return "variable"
	case chroma.NameDecorator:
		return "function.macro"
	case chroma.OperatorWord:
		return "keyword"
	}
	switch {
	case tt.InCategory(chroma.Comment):
		return "comment"
	case tt.InCategory(chroma.Keyword):
		return "keyword"
	case tt.InSubCategory(chroma.LiteralString):
		return "string"
	case tt.InSubCategory(chroma.LiteralNumber):
		return "number"
	case tt.InCategory(chroma.Operator):
		return "operator"
	case tt.InCategory(chroma.Punctuation):
		return "punctuation"
	}
	return ""
}
