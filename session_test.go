package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func newTestSession(root, input string) (*Session, *bytes.Buffer) {
	var out bytes.Buffer
	return &Session{
		In:  strings.NewReader(input),
		Out: &out,
		Options: Options{
			Root:        root,
			ExcludeDirs: defaultExcludeDirs,
		},
	}, &out
}

func compiledFiles(t *testing.T, dir string) []string {
	t.Helper()
	matches, err := filepath.Glob(filepath.Join(dir, outputPrefix+"*"))
	if err != nil {
		t.Fatal(err)
	}
	return matches
}

func TestSessionEmptyInput(t *testing.T) {
	for _, input := range []string{"", "\n", "   \t\n"} {
		dir := setupTree(t)
		s, out := newTestSession(dir, input)

		if err := s.Run(context.Background()); err != nil {
			t.Fatalf("Run(%q): %v", input, err)
		}
		if !strings.Contains(out.String(), "No extensions provided.") {
			t.Errorf("Run(%q) output missing message:\n%s", input, out.String())
		}
		if files := compiledFiles(t, dir); len(files) != 0 {
			t.Errorf("Run(%q) created output files: %v", input, files)
		}
	}
}

func TestSessionCompiles(t *testing.T) {
	dir := setupTree(t)
	s, out := newTestSession(dir, "vue js\n")

	if err := s.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	got := out.String()
	for _, want := range []string{
		"File Content Compiler",
		extensionPrompt,
		"Searching for files with extensions: .vue, .js",
		"(Skipping node_modules directories)",
		"Found 3 files with extensions .vue, .js.",
		"Contents compiled to: " + filepath.Join(dir, "compiled_files_vue_js.txt"),
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
	if strings.Contains(got, "Press Enter to exit") {
		t.Errorf("exit gate shown without Wait:\n%s", got)
	}
}

func TestSessionNoMatches(t *testing.T) {
	dir := setupTree(t)
	s, out := newTestSession(dir, "py\n")

	if err := s.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !strings.Contains(out.String(), "No files with extensions .py found.") {
		t.Errorf("unexpected output:\n%s", out.String())
	}
}

func TestSessionArgsSkipPrompt(t *testing.T) {
	dir := setupTree(t)
	s, out := newTestSession(dir, "")
	s.Args = []string{"ts"}

	if err := s.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if strings.Contains(out.String(), extensionPrompt) {
		t.Errorf("prompt shown although extensions were given:\n%s", out.String())
	}
	if !strings.Contains(out.String(), "Found 1 files with extensions .ts.") {
		t.Errorf("unexpected output:\n%s", out.String())
	}
}

func TestSessionWaitsForEnter(t *testing.T) {
	dir := setupTree(t)
	s, out := newTestSession(dir, "vue\n\n")
	s.Wait = true

	if err := s.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !strings.HasSuffix(out.String(), "\nPress Enter to exit...") {
		t.Errorf("output should end with the exit gate:\n%s", out.String())
	}
}

func TestSessionPickAborted(t *testing.T) {
	dir := setupTree(t)
	s, out := newTestSession(dir, "")
	s.Pick = func() (Extensions, error) { return nil, nil }

	if err := s.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !strings.Contains(out.String(), "No extensions provided.") {
		t.Errorf("unexpected output:\n%s", out.String())
	}
}

func TestSessionTreeAndSummary(t *testing.T) {
	dir := setupTree(t)
	s, out := newTestSession(dir, "vue\n")
	s.Extras.Tree = true
	s.Extras.PDFPath = filepath.Join(t.TempDir(), "out.pdf")

	if err := s.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	got := out.String()
	for _, want := range []string{"├── App.vue", "└── src/", "    └── Button.vue", "Total size: ", "PDF saved to: "} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
	if _, err := os.Stat(s.Extras.PDFPath); err != nil {
		t.Errorf("PDF not written: %v", err)
	}
}

func TestSessionFatalError(t *testing.T) {
	dir := setupTree(t)
	s, out := newTestSession(dir, "vue\n")
	s.Options.OutputDir = filepath.Join(t.TempDir(), "missing")

	err := s.Run(context.Background())
	if err == nil {
		t.Fatal("expected an error")
	}
	var reported reportedError
	if !errors.As(err, &reported) {
		t.Errorf("error %v should be marked as reported", err)
	}
	if !strings.Contains(out.String(), "Error: ") {
		t.Errorf("error not printed:\n%s", out.String())
	}
}
