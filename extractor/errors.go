package extractor

import "fmt"

// UnresolvedTypeError indicates a responder trait implementation's self type has no terminal named
// path segment (e.g. a tuple or reference type), so no contract name can be derived from it. This is
// a fatal input condition: extraction aborts rather than silently substituting a default name.
type UnresolvedTypeError struct {
	// TypeText is the source text of the implementing type that could not be resolved.
	TypeText string

	// Line and Column describe the 1-indexed position of the implementing type in source.
	Line   uint32
	Column uint32
}

// Error returns the error message string, implementing the `error` interface.
func (e *UnresolvedTypeError) Error() string {
	return fmt.Sprintf("cannot derive a contract name from implementing type %q (line %d, column %d): type has no terminal named path segment", e.TypeText, e.Line, e.Column)
}

// LiteralRangeError indicates a dispatch arm's opcode literal does not fit an unsigned 64-bit
// integer (negative, malformed, or overflowing). This is fatal and terminates the whole run.
type LiteralRangeError struct {
	// Literal is the source text of the offending literal pattern.
	Literal string

	// Line and Column describe the 1-indexed position of the literal in source.
	Line   uint32
	Column uint32

	// err is the underlying parse error, if any.
	err error
}

// Error returns the error message string, implementing the `error` interface.
func (e *LiteralRangeError) Error() string {
	msg := fmt.Sprintf("opcode literal %q (line %d, column %d) does not fit an unsigned 64-bit integer", e.Literal, e.Line, e.Column)
	if e.err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.err)
	}
	return msg
}

// Unwrap returns the underlying parse error, supporting errors.Is/errors.As chains.
func (e *LiteralRangeError) Unwrap() error {
	return e.err
}
