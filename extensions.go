package main

import (
	"path/filepath"
	"strings"
)

const outputPrefix = "compiled_files_"

// parseExtensions splits a line of user input on whitespace and normalizes each token.
// Tokens starting with '@' are expanded through the language presets instead.
func parseExtensions(input string, langData *LoadedLanguageData) Extensions {
	var exts Extensions
	for _, token := range strings.Fields(input) {
		if strings.HasPrefix(token, "@") && len(token) > 1 {
			expanded, ok := langData.ExtensionsFor(token[1:])
			if !ok {
				logger.Sugar().Warnf("Unknown preset %q, skipping", token)
				continue
			}
			exts = append(exts, expanded...)
			continue
		}
		exts = append(exts, normalizeExtension(token))
	}
	return exts
}

// normalizeExtension makes sure ext starts with a dot.
func normalizeExtension(ext string) string {
	if strings.HasPrefix(ext, ".") {
		return ext
	}
	return "." + ext
}

// Matches reports whether name ends with any of the extensions.
func (e Extensions) Matches(name string) bool {
	for _, ext := range e {
		if strings.HasSuffix(name, ext) {
			return true
		}
	}
	return false
}

// String joins the extensions for display, e.g. ".vue, .js".
func (e Extensions) String() string {
	return strings.Join(e, ", ")
}

// OutputName derives the output file name from the extensions.
// All dots are dropped from each extension: [".vue", ".js"] -> compiled_files_vue_js.txt.
func (e Extensions) OutputName() string {
	parts := make([]string, len(e))
	for i, ext := range e {
		parts[i] = strings.ReplaceAll(ext, ".", "")
	}
	return outputPrefix + strings.Join(parts, "_") + ".txt"
}

// outputPath returns the absolute output file path inside dir.
func (e Extensions) outputPath(dir string) (string, error) {
	abs, err := filepath.Abs(filepath.Join(dir, e.OutputName()))
	if err != nil {
		return "", err
	}
	return abs, nil
}
