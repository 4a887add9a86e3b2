package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// Keymap values are an action name, an array of action names run as one
// keystroke, or a table holding the second key of a two-key sequence.
type Keymap struct {
	Normal map[string]any `toml:"normal"`
	Insert map[string]any `toml:"insert"`
}

type EditorOptions struct {
	LineNumbers string `toml:"line-numbers"`
	DebugLog    bool   `toml:"debug-log"`
}

type Theme struct {
	Theme                     string `toml:"theme"`
	Foreground                string `toml:"foreground"`
	Background                string `toml:"background"`
	LineNumberForeground      string `toml:"line-number-foreground"`
	LineNumberBackground      string `toml:"line-number-background"`
	StatuslineForeground      string `toml:"statusline-foreground"`
	StatuslineBackground      string `toml:"statusline-background"`
	StatuslineInnerForeground string `toml:"statusline-inner-foreground"`
	StatuslineInnerBackground string `toml:"statusline-inner-background"`
	StatuslineGlyphs          string `toml:"statusline-glyphs"`
	SyntaxKeyword             string `toml:"syntax-keyword"`
	SyntaxString              string `toml:"syntax-string"`
	SyntaxComment             string `toml:"syntax-comment"`
	SyntaxType                string `toml:"syntax-type"`
	SyntaxFunction            string `toml:"syntax-function"`
	SyntaxNumber              string `toml:"syntax-number"`
	SyntaxConstant            string `toml:"syntax-constant"`
	SyntaxOperator            string `toml:"syntax-operator"`
	SyntaxPunctuation         string `toml:"syntax-punctuation"`
	SyntaxField               string `toml:"syntax-field"`
	SyntaxBuiltin             string `toml:"syntax-builtin"`
	SyntaxVariable            string `toml:"syntax-variable"`
	SyntaxParameter           string `toml:"syntax-parameter"`
}

type Config struct {
	Editor EditorOptions `toml:"editor"`
	Theme  Theme         `toml:"theme"`
	Keymap Keymap        `toml:"keymap"`
}

func Default() Config {
	return Config{
		Editor: EditorOptions{
			LineNumbers: "absolute",
			DebugLog:    false,
		},
		Theme: Theme{
			Theme:                     "",
			Foreground:                "#B3B1AD",
			Background:                "#0A0E14",
			LineNumberForeground:      "#3E4B59",
			LineNumberBackground:      "#0A0E14",
			StatuslineForeground:      "#000000",
			StatuslineBackground:      "#B890F3",
			StatuslineInnerForeground: "#FFFFFF",
			StatuslineInnerBackground: "#434659",
			StatuslineGlyphs:          " \ue0b0\ue0b2 ",
			SyntaxKeyword:             "#FFA759",
			SyntaxString:              "#BAE67E",
			SyntaxComment:             "#5C6773",
			SyntaxType:                "#5CCFE6",
			SyntaxFunction:            "#FFD173",
			SyntaxNumber:              "#D4BFFF",
			SyntaxConstant:            "#FFDD8E",
			SyntaxOperator:            "#F29668",
			SyntaxPunctuation:         "#C0C0C0",
			SyntaxField:               "#E6B673",
			SyntaxBuiltin:             "#73D0FF",
			SyntaxVariable:            "#B3B1AD",
			SyntaxParameter:           "#B3B1AD",
		},
		Keymap: Keymap{
			Normal: map[string]any{
				"h":      "move_left",
				"j":      "move_down",
				"k":      "move_up",
				"l":      "move_right",
				"left":   "move_left",
				"down":   "move_down",
				"up":     "move_up",
				"right":  "move_right",
				"0":      "line_start",
				"$":      "line_end",
				"home":   "line_start",
				"end":    "line_end",
				"ctrl+b": "page_up",
				"ctrl+f": "page_down",
				"pgup":   "page_up",
				"pgdn":   "page_down",
				"G":      "file_end",
				"i":      "enter_insert",
				"x":      "delete_char",
				"del":    "delete_char",
				"u":      "undo",
				"q":      "quit",
				"ctrl+c": "quit",
				"o":      []any{"insert_line_below", "enter_insert"},
				"O":      []any{"insert_line_above", "enter_insert"},

				// two-key sequences
				"g": map[string]any{"g": "file_start"},
				"d": map[string]any{"d": "delete_line"},
				"z": map[string]any{"z": "center_line"},
			},
			Insert: map[string]any{
				"esc":       "enter_normal",
				"backspace": "backspace",
				"enter":     "newline",
				"del":       "delete_char",
				"left":      "move_left",
				"down":      "move_down",
				"up":        "move_up",
				"right":     "move_right",
				"home":      "line_start",
				"end":       "line_end",
				"pgup":      "page_up",
				"pgdn":      "page_down",
				"ctrl+c":    "quit",
			},
		},
	}
}

func Load() (Config, error) {
	cfg := Default()
	path, err := ConfigPath()
	if err != nil {
		return cfg, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}

	var userCfg Config
	if _, err := toml.Decode(string(data), &userCfg); err != nil {
		return cfg, err
	}

	if userCfg.Editor.LineNumbers != "" {
		cfg.Editor.LineNumbers = userCfg.Editor.LineNumbers
	}
	if userCfg.Editor.DebugLog {
		cfg.Editor.DebugLog = userCfg.Editor.DebugLog
	}
	if userCfg.Theme.Theme != "" {
		cfg.Theme.Theme = userCfg.Theme.Theme
	}
	if name := cfg.Theme.Theme; name != "" && !IsChromaTheme(name) {
		themePath, err := ThemePath(name)
		if err != nil {
			return cfg, err
		}
		if _, err := os.Stat(themePath); err == nil {
			theme, err := LoadTheme(name)
			if err != nil {
				return cfg, err
			}
			mergeTheme(&cfg.Theme, theme)
		}
	}
	mergeTheme(&cfg.Theme, userCfg.Theme)
	mergeKeys(cfg.Keymap.Normal, userCfg.Keymap.Normal)
	mergeKeys(cfg.Keymap.Insert, userCfg.Keymap.Insert)

	return cfg, nil
}

// mergeKeys lays user bindings over dst under their normalized spelling, so
// "Ctrl-f" replaces the default "ctrl+f". When both sides hold a table for
// the same prefix key the tables are merged key by key; any other user
// value replaces the default one.
func mergeKeys(dst, src map[string]any) {
	for k, v := range src {
		k = NormalizeKey(k)
		sub, ok := v.(map[string]any)
		if !ok {
			dst[k] = v
			continue
		}
		cur, _ := dst[k].(map[string]any)
		merged := make(map[string]any, len(cur)+len(sub))
		mergeKeys(merged, cur)
		mergeKeys(merged, sub)
		dst[k] = merged
	}
}

func mergeTheme(dst *Theme, src Theme) {
	if src.Foreground != "" {
		dst.Foreground = src.Foreground
	}
	if src.Background != "" {
		dst.Background = src.Background
	}
	if src.LineNumberForeground != "" {
		dst.LineNumberForeground = src.LineNumberForeground
	}
	if src.LineNumberBackground != "" {
		dst.LineNumberBackground = src.LineNumberBackground
	}
	if src.StatuslineForeground != "" {
		dst.StatuslineForeground = src.StatuslineForeground
	}
	if src.StatuslineBackground != "" {
		dst.StatuslineBackground = src.StatuslineBackground
	}
	if src.StatuslineInnerForeground != "" {
		dst.StatuslineInnerForeground = src.StatuslineInnerForeground
	}
	if src.StatuslineInnerBackground != "" {
		dst.StatuslineInnerBackground = src.StatuslineInnerBackground
	}
	if src.StatuslineGlyphs != "" {
		dst.StatuslineGlyphs = src.StatuslineGlyphs
	}
	if src.SyntaxKeyword != "" {
		dst.SyntaxKeyword = src.SyntaxKeyword
	}
	if src.SyntaxString != "" {
		dst.SyntaxString = src.SyntaxString
	}
	if src.SyntaxComment != "" {
		dst.SyntaxComment = src.SyntaxComment
	}
	if src.SyntaxType != "" {
		dst.SyntaxType = src.SyntaxType
	}
	if src.SyntaxFunction != "" {
		dst.SyntaxFunction = src.SyntaxFunction
	}
	if src.SyntaxNumber != "" {
		dst.SyntaxNumber = src.SyntaxNumber
	}
	if src.SyntaxConstant != "" {
		dst.SyntaxConstant = src.SyntaxConstant
	}
	if src.SyntaxOperator != "" {
		dst.SyntaxOperator = src.SyntaxOperator
	}
	if src.SyntaxPunctuation != "" {
		dst.SyntaxPunctuation = src.SyntaxPunctuation
	}
	if src.SyntaxField != "" {
		dst.SyntaxField = src.SyntaxField
	}
	if src.SyntaxBuiltin != "" {
		dst.SyntaxBuiltin = src.SyntaxBuiltin
	}
	if src.SyntaxVariable != "" {
		dst.SyntaxVariable = src.SyntaxVariable
	}
	if src.SyntaxParameter != "" {
		dst.SyntaxParameter = src.SyntaxParameter
	}
}

// IsChromaTheme reports whether name refers to a built-in chroma style
// ("chroma:monokai").
func IsChromaTheme(name string) bool {
	return strings.HasPrefix(name, "chroma:")
}

func ThemePath(name string) (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "theme", name+".toml"), nil
}

// ThemeJSONPath is where a VS Code colour theme named name is looked up.
// A name ending in .json is used as a path as is.
func ThemeJSONPath(name string) (string, error) {
	if strings.HasSuffix(name, ".json") {
		return name, nil
	}
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "theme", name+".json"), nil
}

func LoadTheme(name string) (Theme, error) {
	path, err := ThemePath(name)
	if err != nil {
		return Theme{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Theme{}, err
	}
	var t Theme
	if _, err := toml.Decode(string(data), &t); err == nil {
		return t, nil
	}
	var wrap struct {
		Theme Theme `toml:"theme"`
	}
	if _, err := toml.Decode(string(data), &wrap); err != nil {
		return Theme{}, err
	}
	return wrap.Theme, nil
}

func ConfigDir() (string, error) {
	if v := os.Getenv("MEDIT_CONFIG_HOME"); v != "" {
		return filepath.Join(v), nil
	}
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return filepath.Join(v, "medit"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "medit"), nil
}

func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}
