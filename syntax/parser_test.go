package syntax

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestParseValidFile ensures a syntactically valid Rust file parses and exposes its tree.
func TestParseValidFile(t *testing.T) {
	source := []byte(`
struct Foo;

impl Foo {
    fn execute(&self) -> u64 {
        42
    }
}
`)
	parsedFile, err := ParseFile(source)
	assert.NoError(t, err)
	defer parsedFile.Close()

	root := parsedFile.Root()
	assert.Equal(t, "source_file", root.Type())
	assert.EqualValues(t, 2, root.NamedChildCount())

	// The first top-level item is the struct; its text spans the declaration.
	item := root.NamedChild(0)
	assert.Equal(t, "struct_item", item.Type())
	assert.Equal(t, "struct Foo;", parsedFile.Text(item))

	line, column := parsedFile.Position(item)
	assert.EqualValues(t, 2, line)
	assert.EqualValues(t, 1, column)
}

// TestParseInvalidFile ensures malformed source is rejected with a positioned SyntaxError rather
// than a partial tree.
func TestParseInvalidFile(t *testing.T) {
	source := []byte("struct Foo {\nfn\n")
	parsedFile, err := ParseFile(source)
	assert.Nil(t, parsedFile)
	assert.Error(t, err)

	var syntaxErr *SyntaxError
	assert.ErrorAs(t, err, &syntaxErr)
	assert.NotZero(t, syntaxErr.Line)
	assert.NotZero(t, syntaxErr.Column)
}

// TestParseEmptyFile ensures an empty source file is a valid, empty module.
func TestParseEmptyFile(t *testing.T) {
	parsedFile, err := ParseFile([]byte(""))
	assert.NoError(t, err)
	defer parsedFile.Close()
	assert.EqualValues(t, 0, parsedFile.Root().NamedChildCount())
}
