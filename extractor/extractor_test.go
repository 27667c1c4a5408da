package extractor

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/alkanes-dev/alkanes-abi/abi"
	"github.com/alkanes-dev/alkanes-abi/config"
	"github.com/alkanes-dev/alkanes-abi/syntax"
)

// extractSource is a test helper that parses the provided Rust source and runs ABI extraction over
// it with the default extraction configuration.
func extractSource(t *testing.T, source string) (*abi.ContractABI, error) {
	parsedFile, err := syntax.ParseFile([]byte(source))
	assert.NoError(t, err)
	defer parsedFile.Close()

	return New(config.GetDefaultProjectConfig().Extraction).ExtractABI(parsedFile)
}

// opcodesOf is a test helper that collects the opcodes of the provided ABI's methods in order.
func opcodesOf(contractABI *abi.ContractABI) []uint64 {
	opcodes := make([]uint64, 0, len(contractABI.Methods))
	for _, method := range contractABI.Methods {
		opcodes = append(opcodes, method.Opcode)
	}
	return opcodes
}

// TestExtractEmptyModule ensures a module without a responder trait implementation yields the
// default contract name and an empty (but non-nil) method list.
func TestExtractEmptyModule(t *testing.T) {
	source := `
struct Foo;

impl Foo {
    fn execute(&self) {
        match 0 {
            1 => {}
            _ => {}
        }
    }
}

fn helper() {}
`
	contractABI, err := extractSource(t, source)
	assert.NoError(t, err)
	assert.Equal(t, abi.DefaultContractName, contractABI.Name)
	assert.NotNil(t, contractABI.Methods)
	assert.Empty(t, contractABI.Methods)
}

// TestExtractSingleImplementation ensures a single responder implementation yields the implementing
// type's name and one method per integer-literal arm, with the wildcard arm contributing nothing.
func TestExtractSingleImplementation(t *testing.T) {
	source := `
struct Foo;

impl AlkaneResponder for Foo {
    fn execute(&self) {
        let opcode = 77u128;
        match opcode {
            0 => {}
            77 => {}
            _ => {}
        }
    }
}
`
	contractABI, err := extractSource(t, source)
	assert.NoError(t, err)
	assert.Equal(t, "Foo", contractABI.Name)
	assert.Equal(t, []uint64{0, 77}, opcodesOf(contractABI))
	assert.Equal(t, "method_0", contractABI.Methods[0].Name)
	assert.Equal(t, "method_77", contractABI.Methods[1].Name)
	for _, method := range contractABI.Methods {
		assert.NotNil(t, method.Inputs)
		assert.Empty(t, method.Inputs)
		assert.NotNil(t, method.Outputs)
		assert.Empty(t, method.Outputs)
	}
}

// TestExtractPreservesArmOrder ensures methods appear in declared arm order, not sorted by opcode.
func TestExtractPreservesArmOrder(t *testing.T) {
	source := `
struct Foo;

impl AlkaneResponder for Foo {
    fn execute(&self) {
        match 0 {
            5 => {}
            1 => {}
            3 => {}
        }
    }
}
`
	contractABI, err := extractSource(t, source)
	assert.NoError(t, err)
	assert.Equal(t, []uint64{5, 1, 3}, opcodesOf(contractABI))
}

// TestExtractSkipsNonLiteralPatterns ensures guarded, range, binding, or, and destructuring
// patterns contribute nothing while literal arms around them are still extracted.
func TestExtractSkipsNonLiteralPatterns(t *testing.T) {
	source := `
struct Foo;

impl AlkaneResponder for Foo {
    fn execute(&self) {
        match 0 {
            0 => {}
            n if n > 10 => {}
            1..=3 => {}
            4 | 5 => {}
            Some(x) => {}
            a => {}
        }
    }
}
`
	contractABI, err := extractSource(t, source)
	assert.NoError(t, err)
	assert.Equal(t, []uint64{0}, opcodesOf(contractABI))
}

// TestExtractAccumulatesAcrossImplementations ensures multiple matching implementations concatenate
// their opcodes in source order while the last implementation determines the contract name.
func TestExtractAccumulatesAcrossImplementations(t *testing.T) {
	source := `
struct X;
struct Y;

impl AlkaneResponder for X {
    fn execute(&self) {
        match 0 {
            1 => {}
            2 => {}
        }
    }
}

impl AlkaneResponder for Y {
    fn execute(&self) {
        match 0 {
            2 => {}
            9 => {}
        }
    }
}
`
	contractABI, err := extractSource(t, source)
	assert.NoError(t, err)
	assert.Equal(t, "Y", contractABI.Name)
	// Duplicate opcodes across implementations are deliberately not deduplicated.
	assert.Equal(t, []uint64{1, 2, 2, 9}, opcodesOf(contractABI))
}

// TestExtractFailsOnOverflowingLiteral ensures an opcode literal that does not fit an unsigned
// 64-bit integer terminates extraction with a LiteralRangeError.
func TestExtractFailsOnOverflowingLiteral(t *testing.T) {
	source := `
struct Foo;

impl AlkaneResponder for Foo {
    fn execute(&self) {
        match 0 {
            18446744073709551616 => {}
        }
    }
}
`
	contractABI, err := extractSource(t, source)
	assert.Nil(t, contractABI)
	assert.Error(t, err)
	var literalErr *LiteralRangeError
	assert.ErrorAs(t, err, &literalErr)
	assert.Equal(t, "18446744073709551616", literalErr.Literal)
}

// TestExtractFailsOnNegativeLiteral ensures a negative opcode literal is fatal.
func TestExtractFailsOnNegativeLiteral(t *testing.T) {
	source := `
struct Foo;

impl AlkaneResponder for Foo {
    fn execute(&self) {
        match 0 {
            -1 => {}
        }
    }
}
`
	contractABI, err := extractSource(t, source)
	assert.Nil(t, contractABI)
	var literalErr *LiteralRangeError
	assert.ErrorAs(t, err, &literalErr)
}

// TestExtractFailsOnUnresolvableSelfType ensures a matching implementation whose self type has no
// terminal named segment aborts extraction rather than substituting a default name.
func TestExtractFailsOnUnresolvableSelfType(t *testing.T) {
	sources := map[string]string{
		"tuple":     `impl AlkaneResponder for (u8, u8) { fn execute(&self) {} }`,
		"reference": `impl AlkaneResponder for &Foo { fn execute(&self) {} }`,
	}
	for name, source := range sources {
		t.Run(name, func(t *testing.T) {
			contractABI, err := extractSource(t, source)
			assert.Nil(t, contractABI)
			var typeErr *UnresolvedTypeError
			assert.ErrorAs(t, err, &typeErr)
		})
	}
}

// TestExtractMatchesScopedTraitPath ensures trait matching compares only the final path segment.
func TestExtractMatchesScopedTraitPath(t *testing.T) {
	source := `
struct Foo;

impl alkanes_runtime::runtime::AlkaneResponder for Foo {
    fn execute(&self) {
        match 0 {
            11 => {}
        }
    }
}
`
	contractABI, err := extractSource(t, source)
	assert.NoError(t, err)
	assert.Equal(t, "Foo", contractABI.Name)
	assert.Equal(t, []uint64{11}, opcodesOf(contractABI))
}

// TestExtractResolvesScopedSelfType ensures the contract name is the self type's final path segment.
func TestExtractResolvesScopedSelfType(t *testing.T) {
	source := `
impl AlkaneResponder for contracts::mintable::MintableAlkane {
    fn execute(&self) {
        match 0 {
            42 => {}
        }
    }
}
`
	contractABI, err := extractSource(t, source)
	assert.NoError(t, err)
	assert.Equal(t, "MintableAlkane", contractABI.Name)
}

// TestExtractResolvesGenericSelfType ensures a generic self type resolves to its base type name.
func TestExtractResolvesGenericSelfType(t *testing.T) {
	source := `
impl AlkaneResponder for Wrapper<u64> {
    fn execute(&self) {
        match 0 {
            7 => {}
        }
    }
}
`
	contractABI, err := extractSource(t, source)
	assert.NoError(t, err)
	assert.Equal(t, "Wrapper", contractABI.Name)
}

// TestExtractIgnoresOtherTraitsAndNestedItems ensures non-matching traits and implementations
// nested inside modules contribute nothing.
func TestExtractIgnoresOtherTraitsAndNestedItems(t *testing.T) {
	source := `
struct Foo;

impl Responder for Foo {
    fn execute(&self) {
        match 0 {
            1 => {}
        }
    }
}

mod inner {
    struct Bar;

    impl AlkaneResponder for Bar {
        fn execute(&self) {
            match 0 {
                2 => {}
            }
        }
    }
}
`
	contractABI, err := extractSource(t, source)
	assert.NoError(t, err)
	assert.Equal(t, abi.DefaultContractName, contractABI.Name)
	assert.Empty(t, contractABI.Methods)
}

// TestExtractIgnoresEmbeddedMatches ensures only bare statement-position matches inside the entry
// method are treated as dispatch constructs.
func TestExtractIgnoresEmbeddedMatches(t *testing.T) {
	source := `
struct Foo;

impl AlkaneResponder for Foo {
    fn execute(&self) {
        let result = match 0 {
            1 => 1,
            _ => 0,
        };
        if true {
            match 0 {
                2 => {}
                _ => {}
            }
        }
        match 0 {
            3 => {}
            _ => {}
        }
    }
}
`
	contractABI, err := extractSource(t, source)
	assert.NoError(t, err)
	// The assigned match and the match nested in the conditional are not dispatch constructs.
	assert.Equal(t, []uint64{3}, opcodesOf(contractABI))
}

// TestExtractIgnoresOtherMethods ensures dispatch matches in methods other than the entry point
// contribute nothing.
func TestExtractIgnoresOtherMethods(t *testing.T) {
	source := `
struct Foo;

impl AlkaneResponder for Foo {
    fn dispatch(&self) {
        match 0 {
            1 => {}
        }
    }

    fn execute(&self) {
        match 0 {
            2 => {}
        }
    }
}
`
	contractABI, err := extractSource(t, source)
	assert.NoError(t, err)
	assert.Equal(t, []uint64{2}, opcodesOf(contractABI))
}

// TestExtractLiteralForms ensures the Rust integer literal forms all parse to their decimal values.
func TestExtractLiteralForms(t *testing.T) {
	source := `
struct Foo;

impl AlkaneResponder for Foo {
    fn execute(&self) {
        match 0 {
            0xff => {}
            1_000 => {}
            42u128 => {}
            0b101 => {}
        }
    }
}
`
	contractABI, err := extractSource(t, source)
	assert.NoError(t, err)
	assert.Equal(t, []uint64{255, 1000, 42, 5}, opcodesOf(contractABI))
	assert.Equal(t, "method_255", contractABI.Methods[0].Name)
}

// TestExtractCustomNames ensures the configured trait and entry-point names drive the matching.
func TestExtractCustomNames(t *testing.T) {
	source := `
struct Foo;

impl MessageHandler for Foo {
    fn handle(&self) {
        match 0 {
            5 => {}
        }
    }
}
`
	parsedFile, err := syntax.ParseFile([]byte(source))
	assert.NoError(t, err)
	defer parsedFile.Close()

	contractABI, err := New(config.ExtractionConfig{ResponderTrait: "MessageHandler", EntryPoint: "handle"}).ExtractABI(parsedFile)
	assert.NoError(t, err)
	assert.Equal(t, "Foo", contractABI.Name)
	assert.Equal(t, []uint64{5}, opcodesOf(contractABI))
}

// TestExtractIsDeterministic ensures extraction over identical input yields byte-identical output.
func TestExtractIsDeterministic(t *testing.T) {
	source := `
struct Foo;

impl AlkaneResponder for Foo {
    fn execute(&self) {
        match 0 {
            0 => {}
            77 => {}
            _ => {}
        }
    }
}
`
	first, err := extractSource(t, source)
	assert.NoError(t, err)
	second, err := extractSource(t, source)
	assert.NoError(t, err)

	firstRendered, err := first.Render(false)
	assert.NoError(t, err)
	secondRendered, err := second.Render(false)
	assert.NoError(t, err)
	assert.Equal(t, firstRendered, secondRendered)
}
