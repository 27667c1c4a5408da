// Package syntax wraps the tree-sitter Rust grammar and exposes parsed contract source files to the
// extractor. Parsing is purely syntactic: the analyzed source does not need to type-check or compile,
// it only needs to be grammatically valid Rust.
package syntax

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/rust"
)

// File represents a single parsed Rust source file. It owns the underlying syntax tree for the
// duration of one extraction and must be released with Close once extraction is complete.
type File struct {
	tree *sitter.Tree
	src  []byte
}

// SyntaxError indicates the analyzed source is not a syntactically valid Rust module. It carries the
// position of the first malformed construct encountered in the tree.
type SyntaxError struct {
	// Line is the 1-indexed line of the first syntax error.
	Line uint32

	// Column is the 1-indexed column of the first syntax error.
	Column uint32
}

// Error returns the error message string, implementing the `error` interface.
func (e *SyntaxError) Error() string {
	return fmt.Sprintf("source is not valid Rust syntax (first error near line %d, column %d)", e.Line, e.Column)
}

// ParseFile parses the provided Rust source into a File. Returns the parsed File, or an error if the
// parser failed or the source is not syntactically valid.
func ParseFile(src []byte) (*File, error) {
	// Create a parser for the Rust grammar. Parsers are cheap and not thread-safe, so we create one
	// per call rather than sharing.
	parser := sitter.NewParser()
	parser.SetLanguage(rust.GetLanguage())

	tree, err := parser.ParseCtx(context.Background(), nil, src)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	// tree-sitter is error-tolerant and will hand back a tree with ERROR/missing nodes rather than
	// failing outright, so we scan for the first such node to decide validity.
	root := tree.RootNode()
	if root == nil {
		tree.Close()
		return nil, errors.New("parser returned no syntax tree")
	}
	if root.HasError() {
		line, column := firstErrorPosition(root)
		tree.Close()
		return nil, &SyntaxError{Line: line, Column: column}
	}

	return &File{tree: tree, src: src}, nil
}

// Root returns the root node of the parsed file's syntax tree.
func (f *File) Root() *sitter.Node {
	return f.tree.RootNode()
}

// Text returns the source text covered by the provided node.
func (f *File) Text(node *sitter.Node) string {
	return node.Content(f.src)
}

// Position returns the 1-indexed line and column where the provided node starts.
func (f *File) Position(node *sitter.Node) (uint32, uint32) {
	point := node.StartPoint()
	return point.Row + 1, point.Column + 1
}

// Close releases the underlying syntax tree. The File must not be used afterwards.
func (f *File) Close() {
	f.tree.Close()
}

// firstErrorPosition walks the tree depth-first and returns the 1-indexed position of the first
// ERROR or missing node. Falls back to the start of the file if none is found, which should not
// happen when the root reports an error.
func firstErrorPosition(node *sitter.Node) (uint32, uint32) {
	if node.Type() == "ERROR" || node.IsMissing() {
		point := node.StartPoint()
		return point.Row + 1, point.Column + 1
	}
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		if child == nil || !child.HasError() {
			continue
		}
		return firstErrorPosition(child)
	}
	return 1, 1
}
