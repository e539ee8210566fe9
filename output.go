package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

const delimiterWidth = 80

var delimiter = strings.Repeat("=", delimiterWidth)

// blockWriter writes one delimited block per included file.
type blockWriter struct {
	w *bufio.Writer
}

func newBlockWriter(w io.Writer) *blockWriter {
	return &blockWriter{w: bufio.NewWriter(w)}
}

// writeFile appends the block for path. A file that cannot be read gets an
// inline ERROR line after its header; only errors writing the output are returned.
func (b *blockWriter) writeFile(path string) error {
	if err := b.writeHeader(path); err != nil {
		return err
	}

	content, readErr := readText(path)
	if readErr != nil {
		logger.Sugar().Warnf("Could not read %s: %v", path, readErr)
		_, err := fmt.Fprintf(b.w, "ERROR: Could not read file %s: %v\n\n", path, readErr)
		return err
	}

	if _, err := b.w.WriteString(content); err != nil {
		return err
	}
	_, err := b.w.WriteString("\n\n")
	return err
}

func (b *blockWriter) writeHeader(path string) error {
	_, err := fmt.Fprintf(b.w, "%s\nFILE: %s\n%s\n\n", delimiter, path, delimiter)
	return err
}

func (b *blockWriter) Flush() error {
	return b.w.Flush()
}

// readText reads a whole file as text. Invalid UTF-8 is replaced with U+FFFD
// and line endings are translated to "\n"; decoding never fails.
func readText(path string) (string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return decodeText(raw), nil
}

func decodeText(raw []byte) string {
	decoded, _, err := transform.Bytes(unicode.UTF8.NewDecoder(), raw)
	if err != nil {
		decoded = raw
	}
	text := strings.ReplaceAll(string(decoded), "\r\n", "\n")
	return strings.ReplaceAll(text, "\r", "\n")
}

// Node represents an entry in the directory tree structure.
type Node struct {
	Name     string
	Path     string
	IsDir    bool
	Children []*Node
}

// buildTree constructs a hierarchical tree from the included file paths.
// Intermediate directories are created as needed.
func buildTree(files []string, rootPath string) *Node {
	cleanRootPath := filepath.Clean(rootPath)
	root := &Node{Name: filepath.Base(cleanRootPath), Path: cleanRootPath, IsDir: true}
	nodes := map[string]*Node{cleanRootPath: root}

	for _, file := range files {
		cleanPath := filepath.Clean(file)
		rel, err := filepath.Rel(cleanRootPath, cleanPath)
		if err != nil || strings.HasPrefix(rel, "..") {
			logger.Sugar().Debugf("Path %s is outside %s, skipping in tree view", cleanPath, cleanRootPath)
			continue
		}
		parent := dirNode(nodes, filepath.Dir(cleanPath))
		parent.Children = append(parent.Children, &Node{
			Name: filepath.Base(cleanPath),
			Path: cleanPath,
		})
	}

	sortChildren(root)
	return root
}

// dirNode returns the node registered for dir, creating it and its parents on demand.
// The root is always registered, so the recursion terminates there.
func dirNode(nodes map[string]*Node, dir string) *Node {
	if node, ok := nodes[dir]; ok {
		return node
	}
	parent := dirNode(nodes, filepath.Dir(dir))
	node := &Node{Name: filepath.Base(dir), Path: dir, IsDir: true}
	parent.Children = append(parent.Children, node)
	nodes[dir] = node
	return node
}

// sortChildren recursively sorts the children of a node alphabetically.
func sortChildren(node *Node) {
	if !node.IsDir || len(node.Children) == 0 {
		return
	}

	sort.Slice(node.Children, func(i, j int) bool {
		return node.Children[i].Name < node.Children[j].Name
	})

	for _, child := range node.Children {
		sortChildren(child)
	}
}

// printTree generates the string representation of the tree.
func printTree(root *Node) string {
	var builder strings.Builder
	builder.WriteString(root.Name)
	builder.WriteString("\n")
	printNode(&builder, root.Children, "")
	return builder.String()
}

func printNode(builder *strings.Builder, children []*Node, prefix string) {
	for i, node := range children {
		connector := "├── "
		newPrefix := prefix + "│   "
		if i == len(children)-1 {
			connector = "└── "
			newPrefix = prefix + "    "
		}

		builder.WriteString(prefix)
		builder.WriteString(connector)
		builder.WriteString(node.Name)
		if node.IsDir {
			builder.WriteString("/")
		}
		builder.WriteString("\n")

		if node.IsDir && len(node.Children) > 0 {
			printNode(builder, node.Children, newPrefix)
		}
	}
}
