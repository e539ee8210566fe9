package main

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"

	fuzzyfinder "github.com/ktr0731/go-fuzzyfinder"
)

// collectExtensions walks root and returns the distinct file extensions found,
// sorted, along with how many files carry each one. Excluded directories are pruned.
func collectExtensions(root string, excludeDirs []string) ([]string, map[string]int, error) {
	excluded := make(map[string]bool, len(excludeDirs))
	for _, name := range excludeDirs {
		excluded[name] = true
	}

	counts := make(map[string]int)
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			return nil
		}
		if d.IsDir() {
			if path != root && excluded[d.Name()] {
				return fs.SkipDir
			}
			return nil
		}
		if ext := filepath.Ext(d.Name()); ext != "" {
			counts[ext]++
		}
		return nil
	})
	if err != nil {
		return nil, nil, fmt.Errorf("error scanning %s for extensions: %w", root, err)
	}

	exts := make([]string, 0, len(counts))
	for ext := range counts {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts, counts, nil
}

// pickExtensions lets the user multi-select extensions found under root.
// An aborted selection returns an empty list and no error.
func pickExtensions(root string, excludeDirs []string) (Extensions, error) {
	candidates, counts, err := collectExtensions(root, excludeDirs)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return nil, fmt.Errorf("no files with an extension found under %s", root)
	}

	idx, err := fuzzyfinder.FindMulti(
		candidates,
		func(i int) string {
			return candidates[i]
		},
		fuzzyfinder.WithPreviewWindow(func(i, w, h int) string {
			if i == -1 {
				return "Select extensions to compile. Press Tab to multi-select, Enter to confirm."
			}
			return fmt.Sprintf("Extension: %s\nFiles: %d", candidates[i], counts[candidates[i]])
		}),
	)
	if err != nil {
		if errors.Is(err, fuzzyfinder.ErrAbort) {
			return nil, nil
		}
		return nil, fmt.Errorf("fuzzy finder error: %w", err)
	}

	selected := make(Extensions, len(idx))
	for i, index := range idx {
		selected[i] = candidates[index]
	}
	return selected, nil
}
