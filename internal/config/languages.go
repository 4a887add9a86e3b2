package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

type Language struct {
	Name      string   `toml:"name"`
	FileTypes []string `toml:"file-types"`
}

type Languages struct {
	Languages []Language `toml:"language"`
}

func DefaultLanguages() Languages {
	return Languages{
		Languages: []Language{
			{Name: "go", FileTypes: []string{"go"}},
			{Name: "rust", FileTypes: []string{"rs"}},
			{Name: "yaml", FileTypes: []string{"yaml", "yml"}},
			{Name: "toml", FileTypes: []string{"toml", "Cargo.lock"}},
			{Name: "bash", FileTypes: []string{"sh", "bash", ".bashrc", ".zshrc"}},
			{Name: "markdown", FileTypes: []string{"md", "markdown"}},
		},
	}
}

func (l Languages) Match(path string) *Language {
	base := filepath.Base(path)
	baseLower := strings.ToLower(base)
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(base), "."))
	for i := range l.Languages {
		lang := &l.Languages[i]
		for _, ft := range lang.FileTypes {
			ftLower := strings.ToLower(ft)
			if ftLower == ext || ftLower == baseLower {
				return lang
			}
			if strings.HasPrefix(ftLower, ".") && strings.TrimPrefix(ftLower, ".") == ext {
				return lang
			}
		}
	}
	return nil
}

// LoadLanguages reads languages.toml. Entries replace the built-in language
// of the same name; new names are appended.
func LoadLanguages() (Languages, error) {
	langs := DefaultLanguages()
	path, err := LanguagesPath()
	if err != nil {
		return langs, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return langs, nil
		}
		return langs, err
	}

	var user Languages
	if _, err := toml.Decode(string(data), &user); err != nil {
		return langs, err
	}
	for _, u := range user.Languages {
		replaced := false
		for i := range langs.Languages {
			if langs.Languages[i].Name == u.Name {
				langs.Languages[i] = u
				replaced = true
				break
			}
		}
		if !replaced {
			langs.Languages = append(langs.Languages, u)
		}
	}
	return langs, nil
}

func LanguagesPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "languages.toml"), nil
}
