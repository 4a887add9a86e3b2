package highlight

import "github.com/kobzarvs/medit/internal/theme"

// StyleInfo styles the half-open byte range [Start, End) of a highlighted
// text.
type StyleInfo struct {
	Start int
	End   int
	Style theme.Style
}

func (s StyleInfo) Contains(pos int) bool {
	return s.Start <= pos && pos < s.End
}

// StyleAt returns the style of the first range containing pos.
func StyleAt(infos []StyleInfo, pos int) (theme.Style, bool) {
	for _, info := range infos {
		if info.Contains(pos) {
			return info.Style, true
		}
	}
	return theme.Style{}, false
}

// Highlighter annotates a text with style ranges relative to that text.
type Highlighter interface {
	Highlight(text string) ([]StyleInfo, error)
}

// Styles resolves a capture name to a style. *theme.Theme implements it.
type Styles interface {
	GetStyle(scope string) (theme.Style, bool)
}

// Priority ranks capture names when ranges overlap; higher wins.
func Priority(scope string) int {
	switch scope {
	case "comment":
		return 7
	case "string":
		return 6
	case "keyword":
		return 5
	case "constant", "builtin":
		return 4
	case "parameter", "type", "function", "number":
		return 3
	case "field", "variable":
		return 2
	case "operator", "punctuation":
		return 1
	}
	for i := len(scope) - 1; i > 0; i-- {
		if scope[i] == '.' {
			return Priority(scope[:i])
		}
	}
	return 0
}
