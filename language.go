package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// LanguageInfo holds details about a specific programming/markup language.
// Only the fields used to build extension presets are decoded.
type LanguageInfo struct {
	Type       string   `yaml:"type"` // e.g., programming, data, markup
	Extensions []string `yaml:"extensions"`
	Filenames  []string `yaml:"filenames"`
}

// LanguageMap maps language names (e.g., "Go") to their details.
type LanguageMap map[string]LanguageInfo

// LoadedLanguageData holds the parsed language map and a case-insensitive name index.
type LoadedLanguageData struct {
	Langs   LanguageMap
	nameMap map[string]string // lowercased name -> name as written in the file
}

// builtinLanguages backs the @preset tokens when no languages.yml is found.
var builtinLanguages = LanguageMap{
	"Go":         {Type: "programming", Extensions: []string{".go"}},
	"JavaScript": {Type: "programming", Extensions: []string{".js", ".mjs", ".cjs", ".jsx"}},
	"TypeScript": {Type: "programming", Extensions: []string{".ts", ".tsx"}},
	"Vue":        {Type: "markup", Extensions: []string{".vue"}},
	"Python":     {Type: "programming", Extensions: []string{".py", ".pyi"}},
	"Java":       {Type: "programming", Extensions: []string{".java"}},
	"Rust":       {Type: "programming", Extensions: []string{".rs"}},
	"CSS":        {Type: "markup", Extensions: []string{".css", ".scss", ".sass", ".less"}},
	"HTML":       {Type: "markup", Extensions: []string{".html", ".htm"}},
	"Markdown":   {Type: "prose", Extensions: []string{".md", ".markdown"}},
	"YAML":       {Type: "data", Extensions: []string{".yml", ".yaml"}},
	"Web":        {Type: "markup", Extensions: []string{".html", ".css", ".js", ".ts", ".vue"}},
}

// languageSearchPaths lists the directories probed for languages.yml, in order.
func languageSearchPaths() []string {
	var paths []string
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "filehunter"))
	}
	return append(paths, ".")
}

// loadLanguageData loads languages.yml from the first search path that has one.
// When none exists the built-in table is returned.
func loadLanguageData(searchPaths []string) (*LoadedLanguageData, error) {
	var langFilePath string
	for _, p := range searchPaths {
		testPath := filepath.Join(p, "languages.yml")
		if _, err := os.Stat(testPath); err == nil {
			langFilePath = testPath
			break
		}
	}

	if langFilePath == "" {
		return newLanguageData(builtinLanguages), nil
	}

	yamlFile, err := os.ReadFile(langFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading language file %s: %w", langFilePath, err)
	}

	var langs LanguageMap
	if err := yaml.Unmarshal(yamlFile, &langs); err != nil {
		return nil, fmt.Errorf("error parsing language file %s: %w", langFilePath, err)
	}

	logger.Sugar().Debugf("Loaded %d languages from %s", len(langs), langFilePath)
	return newLanguageData(langs), nil
}

func newLanguageData(langs LanguageMap) *LoadedLanguageData {
	data := &LoadedLanguageData{
		Langs:   langs,
		nameMap: make(map[string]string, len(langs)),
	}
	for name := range langs {
		data.nameMap[strings.ToLower(name)] = name
	}
	return data
}

// ExtensionsFor returns the normalized extensions of the named language.
// Names are matched case-insensitively. A nil receiver uses the built-in table.
func (ld *LoadedLanguageData) ExtensionsFor(name string) (Extensions, bool) {
	if ld == nil {
		ld = newLanguageData(builtinLanguages)
	}
	key, ok := ld.nameMap[strings.ToLower(name)]
	if !ok {
		return nil, false
	}
	info := ld.Langs[key]
	if len(info.Extensions) == 0 {
		return nil, false
	}
	exts := make(Extensions, len(info.Extensions))
	for i, ext := range info.Extensions {
		exts[i] = normalizeExtension(ext)
	}
	return exts, true
}

// Names returns the sorted language names, used in help output.
func (ld *LoadedLanguageData) Names() []string {
	if ld == nil {
		ld = newLanguageData(builtinLanguages)
	}
	names := make([]string, 0, len(ld.Langs))
	for name := range ld.Langs {
		names = append(names, strings.ToLower(name))
	}
	sort.Strings(names)
	return names
}
