// Package extractor implements the static ABI extraction algorithm: it walks a parsed Rust contract
// file, locates implementations of the responder trait, finds the entry-point method inside each,
// and records the integer opcodes handled by the entry point's dispatch match.
package extractor

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/alkanes-dev/alkanes-abi/abi"
	"github.com/alkanes-dev/alkanes-abi/config"
	"github.com/alkanes-dev/alkanes-abi/logging"
	"github.com/alkanes-dev/alkanes-abi/syntax"
)

// Extractor performs ABI extraction over parsed contract source files. It holds the nominal names
// the extraction matches on and a sub-logger for diagnostics.
type Extractor struct {
	// responderTrait is the trait name whose implementations mark a contract (matched against the
	// final path segment of the implemented trait, no alias or re-export resolution).
	responderTrait string

	// entryPoint is the name of the member function whose body is scanned for the dispatch match.
	entryPoint string

	// logger describes the Extractor's sub-logger used for debug diagnostics.
	logger *logging.Logger
}

// New creates an Extractor from the provided extraction configuration.
func New(extractionConfig config.ExtractionConfig) *Extractor {
	return &Extractor{
		responderTrait: extractionConfig.ResponderTrait,
		entryPoint:     extractionConfig.EntryPoint,
		logger:         logging.GlobalLogger.NewSubLogger("module", "extractor"),
	}
}

// ExtractABI walks the provided file's top-level declarations and assembles the contract's ABI
// description. Absence of expected structure (no responder implementation, no entry method, no
// dispatch match, non-literal arm patterns) is not an error: each simply contributes nothing, and an
// empty well-formed ABI is valid output. Returns the assembled ABI, or an error on one of the fatal
// conditions (unresolvable implementing type, out-of-range opcode literal).
func (e *Extractor) ExtractABI(file *syntax.File) (*abi.ContractABI, error) {
	contractABI := abi.NewContractABI()

	// Scan every top-level item. Declarations nested inside modules, functions, or other blocks are
	// deliberately not considered. Note that scanning does not stop at the first matching
	// implementation: if several exist, the last one's name wins while opcodes accumulate across
	// all of them. Downstream consumers depend on this behavior, so it is preserved as-is even
	// though it is a known quirk when a file defines multiple contracts.
	root := file.Root()
	for i := 0; i < int(root.NamedChildCount()); i++ {
		item := root.NamedChild(i)
		if item.Type() != "impl_item" {
			continue
		}

		// Inherent impls carry no trait reference and never match.
		traitNode := item.ChildByFieldName("trait")
		if traitNode == nil {
			continue
		}
		if lastPathSegment(traitNode, file) != e.responderTrait {
			continue
		}

		name, err := e.resolveContractName(item, file)
		if err != nil {
			return nil, err
		}
		contractABI.Name = name
		e.logger.Debug("Found responder trait implementation", logging.StructuredLogInfo{"contract": name})

		if err := e.extractImplOpcodes(item, file, contractABI); err != nil {
			return nil, err
		}
	}

	return contractABI, nil
}

// resolveContractName derives the contract name from a matching implementation's self type: the
// final named path segment of the implemented-on type. Returns an UnresolvedTypeError if the self
// type has no such segment (tuple, reference, slice types and the like).
func (e *Extractor) resolveContractName(implItem *sitter.Node, file *syntax.File) (string, error) {
	selfType := implItem.ChildByFieldName("type")
	if selfType == nil {
		line, column := file.Position(implItem)
		return "", &UnresolvedTypeError{TypeText: "", Line: line, Column: column}
	}

	segment := lastPathSegment(selfType, file)
	if segment == "" {
		line, column := file.Position(selfType)
		return "", &UnresolvedTypeError{TypeText: file.Text(selfType), Line: line, Column: column}
	}
	return segment, nil
}

// extractImplOpcodes scans a matching implementation's members for entry-point methods and appends
// the opcodes of their dispatch arms to the provided ABI, preserving source order.
func (e *Extractor) extractImplOpcodes(implItem *sitter.Node, file *syntax.File, contractABI *abi.ContractABI) error {
	body := implItem.ChildByFieldName("body")
	if body == nil {
		return nil
	}

	// Ordinarily there is exactly one entry method per implementation, but uniqueness is not
	// enforced: every member function carrying the entry-point name is processed.
	for i := 0; i < int(body.NamedChildCount()); i++ {
		member := body.NamedChild(i)
		if member.Type() != "function_item" {
			continue
		}
		nameNode := member.ChildByFieldName("name")
		if nameNode == nil || file.Text(nameNode) != e.entryPoint {
			continue
		}
		if err := e.extractEntryOpcodes(member, file, contractABI); err != nil {
			return err
		}
	}
	return nil
}

// extractEntryOpcodes scans the entry method's top-level statements for bare dispatch match
// expressions and appends each recognized arm's opcode to the ABI. Statements nested in conditionals
// or inner blocks are not considered.
func (e *Extractor) extractEntryOpcodes(method *sitter.Node, file *syntax.File, contractABI *abi.ContractABI) error {
	block := method.ChildByFieldName("body")
	if block == nil {
		return nil
	}

	for i := 0; i < int(block.NamedChildCount()); i++ {
		match := dispatchMatch(block.NamedChild(i))
		if match == nil {
			continue
		}

		armList := match.ChildByFieldName("body")
		if armList == nil {
			continue
		}
		for j := 0; j < int(armList.NamedChildCount()); j++ {
			arm := armList.NamedChild(j)
			if arm.Type() != "match_arm" {
				continue
			}

			opcode, ok, err := e.armOpcode(arm, file)
			if err != nil {
				return err
			}
			if !ok {
				continue
			}
			contractABI.AddMethod(opcode)
		}
	}
	return nil
}

// armOpcode classifies one dispatch arm's pattern. For a plain integer-literal pattern it returns
// the parsed opcode and true. Non-literal patterns (wildcards, bindings, ranges, or-patterns,
// destructuring) and guarded arms return false without error and contribute nothing. Negative or
// uint64-overflowing literals return a LiteralRangeError.
func (e *Extractor) armOpcode(arm *sitter.Node, file *syntax.File) (uint64, bool, error) {
	pattern := arm.ChildByFieldName("pattern")
	if pattern == nil || pattern.Type() != "match_pattern" {
		return 0, false, nil
	}

	// A guard turns the arm into a conditional dispatch, which the ABI cannot describe.
	if pattern.ChildByFieldName("condition") != nil {
		return 0, false, nil
	}

	// A recognized pattern is exactly one node: the wildcard `_` leaves no named child, while
	// or-patterns and destructuring produce other shapes.
	if pattern.NamedChildCount() != 1 {
		return 0, false, nil
	}

	literal := pattern.NamedChild(0)
	switch literal.Type() {
	case "integer_literal":
		opcode, err := parseIntegerLiteral(file.Text(literal))
		if err != nil {
			line, column := file.Position(literal)
			return 0, false, &LiteralRangeError{Literal: file.Text(literal), Line: line, Column: column, err: err}
		}
		return opcode, true, nil
	case "negative_literal":
		// Opcodes are unsigned; a negative literal can never fit.
		line, column := file.Position(literal)
		return 0, false, &LiteralRangeError{Literal: file.Text(literal), Line: line, Column: column}
	default:
		return 0, false, nil
	}
}

// dispatchMatch returns the match expression for a statement that is exactly a bare match used in
// statement position, or nil for any other statement shape. Assigned, returned, or otherwise
// embedded matches are not dispatch constructs.
func dispatchMatch(statement *sitter.Node) *sitter.Node {
	switch statement.Type() {
	case "expression_statement":
		inner := statement.NamedChild(0)
		if inner != nil && inner.Type() == "match_expression" {
			return inner
		}
	case "match_expression":
		// A match in trailing-expression position appears directly in the block.
		return statement
	}
	return nil
}

// lastPathSegment resolves the final named identifier segment of a type or path node: `Foo` yields
// Foo, `alkanes::runtime::AlkaneResponder` yields AlkaneResponder, and `Foo<T>` yields Foo. Returns
// the empty string for nodes with no terminal named segment.
func lastPathSegment(node *sitter.Node, file *syntax.File) string {
	switch node.Type() {
	case "type_identifier", "identifier":
		return file.Text(node)
	case "scoped_type_identifier", "scoped_identifier":
		if name := node.ChildByFieldName("name"); name != nil {
			return file.Text(name)
		}
		return ""
	case "generic_type":
		if inner := node.ChildByFieldName("type"); inner != nil {
			return lastPathSegment(inner, file)
		}
		return ""
	default:
		return ""
	}
}
