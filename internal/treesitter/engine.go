package treesitter

import (
	"context"
	"fmt"
	"sort"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/bash"
	"github.com/smacker/go-tree-sitter/golang"
	tree_sitter_markdown "github.com/smacker/go-tree-sitter/markdown/tree-sitter-markdown"
	"github.com/smacker/go-tree-sitter/rust"
	"github.com/smacker/go-tree-sitter/toml"
	"github.com/smacker/go-tree-sitter/yaml"

	"github.com/kobzarvs/medit/internal/highlight"
)

type grammar struct {
	lang  func() *sitter.Language
	query string
}

var grammars = map[string]grammar{
	"go":       {golang.GetLanguage, goQuery},
	"rust":     {rust.GetLanguage, rustQuery},
	"yaml":     {yaml.GetLanguage, yamlQuery},
	"toml":     {toml.GetLanguage, tomlQuery},
	"bash":     {bash.GetLanguage, bashQuery},
	"markdown": {tree_sitter_markdown.GetLanguage, markdownQuery},
}

// Supported reports whether a grammar is bundled for the language name.
func Supported(language string) bool {
	_, ok := grammars[language]
	return ok
}

// Engine parses a whole text on every call and turns query captures into
// style ranges. Each call builds a fresh tree, so no edit tracking is needed.
type Engine struct {
	language string
	parser   *sitter.Parser
	query    *sitter.Query
	styles   highlight.Styles
}

func New(language string, styles highlight.Styles) (*Engine, error) {
	g, ok := grammars[language]
	if !ok {
		return nil, fmt.Errorf("treesitter: no grammar for %q", language)
	}
	lang := g.lang()
	query, err := sitter.NewQuery([]byte(g.query), lang)
	if err != nil {
		return nil, fmt.Errorf("treesitter: %s query: %w", language, err)
	}
	p := sitter.NewParser()
	p.SetLanguage(lang)
	return &Engine{
		language: language,
		parser:   p,
		query:    query,
		styles:   styles,
	}, nil
}

func (e *Engine) Language() string {
	return e.language
}

func (e *Engine) Highlight(text string) ([]highlight.StyleInfo, error) {
	source := []byte(text)
	tree, err := e.parser.ParseCtx(context.Background(), nil, source)
	if err != nil {
		return nil, fmt.Errorf("treesitter: parse %s: %w", e.language, err)
	}
	if tree == nil {
		return nil, fmt.Errorf("treesitter: parse %s: no tree", e.language)
	}
	defer tree.Close()

	cursor := sitter.NewQueryCursor()
	defer cursor.Close()
	cursor.Exec(e.query, tree.RootNode())

	type ranked struct {
		info     highlight.StyleInfo
		priority int
	}
	var spans []ranked
	for {
		match, ok := cursor.NextMatch()
		if !ok {
			break
		}
		match = cursor.FilterPredicates(match, source)
		if match == nil {
			continue
		}
		for _, capture := range match.Captures {
			name := e.query.CaptureNameForId(capture.Index)
			style, ok := e.styles.GetStyle(name)
			if !ok {
				continue
			}
			start, end := int(capture.Node.StartByte()), int(capture.Node.EndByte())
			if start >= end {
				continue
			}
			spans = append(spans, ranked{
				info:     highlight.StyleInfo{Start: start, End: end, Style: style},
				priority: highlight.Priority(name),
			})
		}
	}

	// Lookups take the first containing range, so stronger captures go first.
	sort.SliceStable(spans, func(i, j int) bool {
		return spans[i].priority > spans[j].priority
	})
	out := make([]highlight.StyleInfo, len(spans))
	for i, s := range spans {
		out[i] = s.info
	}
	return out, nil
}

// Close releases the parser and the compiled query.
func (e *Engine) Close() {
	e.query.Close()
	e.parser.Close()
}
