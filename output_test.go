package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
)

func TestBlockWriterMissingFile(t *testing.T) {
	var buf bytes.Buffer
	bw := newBlockWriter(&buf)

	missing := filepath.Join(t.TempDir(), "gone.js")
	if err := bw.writeFile(missing); err != nil {
		t.Fatalf("writeFile returned %v, read errors should be inline", err)
	}
	if err := bw.Flush(); err != nil {
		t.Fatal(err)
	}

	got := buf.String()
	if !strings.HasPrefix(got, delimiter+"\nFILE: "+missing+"\n"+delimiter+"\n\n") {
		t.Errorf("missing header, got %q", got)
	}
	if !strings.Contains(got, "ERROR: Could not read file "+missing+": ") {
		t.Errorf("missing ERROR line, got %q", got)
	}
	if !strings.HasSuffix(got, "\n\n") {
		t.Errorf("ERROR block should end with a blank line, got %q", got)
	}
}

func TestDecodeText(t *testing.T) {
	tests := []struct {
		name string
		raw  []byte
		want string
	}{
		{"plain", []byte("hello\n"), "hello\n"},
		{"crlf", []byte("a\r\nb\r\n"), "a\nb\n"},
		{"lone cr", []byte("a\rb"), "a\nb"},
		{"invalid byte", []byte{'x', 0xc3, 'y'}, "x�y"},
		{"utf8 kept", []byte("héllo ✓"), "héllo ✓"},
		{"empty", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := decodeText(tt.raw); got != tt.want {
				t.Errorf("decodeText(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestPrintTree(t *testing.T) {
	root := filepath.Join(t.TempDir(), "project")
	files := []string{
		filepath.Join(root, "sub", "deep", "c.go"),
		filepath.Join(root, "a.go"),
		filepath.Join(root, "sub", "b.go"),
		filepath.Join(t.TempDir(), "elsewhere.go"),
	}

	got := printTree(buildTree(files, root))
	want := `project
├── a.go
└── sub/
    ├── b.go
    └── deep/
        └── c.go
`
	if got != want {
		t.Errorf("printTree() =\n%s\nwant:\n%s", got, want)
	}
}
