package app

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/kobzarvs/medit/internal/buffer"
	"github.com/kobzarvs/medit/internal/config"
	"github.com/kobzarvs/medit/internal/editor"
	"github.com/kobzarvs/medit/internal/highlight"
	"github.com/kobzarvs/medit/internal/keymap"
	"github.com/kobzarvs/medit/internal/logger"
	"github.com/kobzarvs/medit/internal/theme"
	"github.com/kobzarvs/medit/internal/treesitter"
)

// App is the top-level runtime for medit.
type App struct {
	args []string
}

func New(args []string) *App {
	return &App{args: args}
}

// Run loads configuration, opens the file named by the first argument and
// runs the editor until it quits. Everything that can fail on bad input
// fails before the terminal is taken over.
func (a *App) Run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := logger.Init(cfg.Editor.DebugLog); err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	defer logger.Close()

	th, err := theme.Resolve(cfg.Theme)
	if err != nil {
		return fmt.Errorf("theme %q: %w", cfg.Theme.Theme, err)
	}
	langs, err := config.LoadLanguages()
	if err != nil {
		return err
	}
	km, err := keymap.FromConfig(cfg.Keymap)
	if err != nil {
		return fmt.Errorf("keymap: %w", err)
	}

	var path string
	if len(a.args) > 0 {
		path = a.args[0]
	}
	buf := buffer.New("", "")
	if path != "" {
		if buf, err = buffer.Open(path); err != nil {
			return err
		}
	}

	hl, closeHL := newHighlighter(langs, path, th)
	defer closeHL()

	ed := editor.New(buf, th, keymap.NewRouter(km), hl, editor.Options{
		LineNumbers: cfg.Editor.LineNumbers,
	})

	s, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := s.Init(); err != nil {
		return err
	}
	defer s.Fini()

	logger.Info("editor started", "file", path, "lines", buf.Len(), "theme", th.Name)
	return ed.Run(s)
}

// newHighlighter picks a tree-sitter grammar when one exists for the file's
// language and falls back to a chroma lexer. It returns a nil Highlighter
// when neither knows the file.
func newHighlighter(langs config.Languages, path string, styles highlight.Styles) (highlight.Highlighter, func()) {
	noop := func() {}
	if path == "" {
		return nil, noop
	}
	var name string
	if lang := langs.Match(path); lang != nil {
		name = lang.Name
	}
	if treesitter.Supported(name) {
		ts, err := treesitter.New(name, styles)
		if err == nil {
			logger.Info("highlighter", "kind", "tree-sitter", "language", ts.Language())
			return ts, ts.Close
		}
		logger.Warn("tree-sitter unavailable", "language", name, "error", err)
	}
	if c := highlight.NewChroma(name, path, styles); c != nil {
		logger.Info("highlighter", "kind", "chroma", "lexer", c.Name())
		return c, noop
	}
	logger.Info("highlighter", "kind", "none", "file", path)
	return nil, noop
}
