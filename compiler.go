package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	gitignore "github.com/monochromegane/go-gitignore"
	"go.uber.org/zap"
)

var errNoExtensions = errors.New("no extensions provided")

// defaultExcludeDirs are pruned from every walk unless configured otherwise.
var defaultExcludeDirs = []string{"node_modules"}

// Compile walks opts.Root and writes every file whose name ends with one of
// opts.Extensions into a single output file, one block per file.
//
// The output file is truncated on each run and never includes itself. Files
// that cannot be read get an inline ERROR block and the walk continues. Failing
// to create or write the output, or to read the root directory, aborts the run
// and may leave a partial output file behind.
func Compile(ctx context.Context, opts Options) (result Result, err error) {
	if len(opts.Extensions) == 0 {
		return Result{}, errNoExtensions
	}

	root, err := filepath.Abs(opts.Root)
	if err != nil {
		return Result{}, fmt.Errorf("error resolving root %s: %w", opts.Root, err)
	}
	outputDir := opts.OutputDir
	if outputDir == "" {
		outputDir = root
	}
	outputPath, err := opts.Extensions.outputPath(outputDir)
	if err != nil {
		return Result{}, fmt.Errorf("error resolving output path: %w", err)
	}

	var ignoreMatcher gitignore.IgnoreMatcher
	if opts.RespectGitignore {
		ignoreMatcher = loadGitignore(root)
	}
	excluded := make(map[string]bool, len(opts.ExcludeDirs))
	for _, name := range opts.ExcludeDirs {
		excluded[name] = true
	}

	logger.Debug("Starting compile",
		zap.String("root", root),
		zap.String("output", outputPath),
		zap.Strings("extensions", opts.Extensions),
		zap.Strings("excludeDirs", opts.ExcludeDirs))

	out, err := os.Create(outputPath)
	if err != nil {
		return Result{}, fmt.Errorf("error creating output file %s: %w", outputPath, err)
	}
	defer func() {
		if closeErr := out.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("error closing output file %s: %w", outputPath, closeErr)
		}
	}()
	outInfo, err := out.Stat()
	if err != nil {
		return Result{}, fmt.Errorf("error inspecting output file %s: %w", outputPath, err)
	}

	bw := newBlockWriter(out)
	result.Root = root
	result.OutputPath = outputPath

	walkErr := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if err != nil {
			if path == root {
				return err
			}
			logger.Warn("Error accessing path, skipping", zap.String("path", path), zap.Error(err))
			return nil
		}

		// The root is never pruned, only what lies below it.
		if path == root {
			return nil
		}

		name := d.Name()
		if d.IsDir() {
			if excluded[name] {
				logger.Debug("Pruning excluded directory", zap.String("path", path))
				return fs.SkipDir
			}
			if ignoreMatcher != nil && ignoreMatcher.Match(path, true) {
				logger.Debug("Pruning gitignored directory", zap.String("path", path))
				return fs.SkipDir
			}
			return nil
		}

		if !opts.Extensions.Matches(name) {
			return nil
		}
		if isDirSymlink(path, d) {
			return nil
		}
		if ignoreMatcher != nil && ignoreMatcher.Match(path, false) {
			return nil
		}
		if isOutputFile(path, outputPath, outInfo) {
			logger.Debug("Skipping the output file itself", zap.String("path", path))
			return nil
		}

		if err := bw.writeFile(path); err != nil {
			return fmt.Errorf("error writing output file %s: %w", outputPath, err)
		}
		result.Count++
		result.Files = append(result.Files, path)
		return nil
	})
	if walkErr != nil {
		return result, fmt.Errorf("error walking directory %s: %w", root, walkErr)
	}

	if err := bw.Flush(); err != nil {
		return result, fmt.Errorf("error writing output file %s: %w", outputPath, err)
	}

	logger.Debug("Compile finished", zap.Int("files", result.Count), zap.String("output", outputPath))
	return result, nil
}

// loadGitignore returns a matcher for root/.gitignore, or nil when there is none.
func loadGitignore(root string) gitignore.IgnoreMatcher {
	gitIgnorePath := filepath.Join(root, ".gitignore")
	if _, err := os.Stat(gitIgnorePath); err != nil {
		return nil
	}
	matcher, err := gitignore.NewGitIgnore(gitIgnorePath)
	if err != nil {
		logger.Warn("Could not parse .gitignore", zap.String("file", gitIgnorePath), zap.Error(err))
		return nil
	}
	return matcher
}

// isDirSymlink reports whether a walk entry is a symlink pointing at a directory.
// Such links are neither followed nor read as files.
func isDirSymlink(path string, d fs.DirEntry) bool {
	if d.Type()&fs.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func isOutputFile(path, outputPath string, outInfo fs.FileInfo) bool {
	if path == outputPath {
		return true
	}
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return os.SameFile(info, outInfo)
}
