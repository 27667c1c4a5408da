package extractor

import (
	"fmt"
	"strconv"
	"strings"
)

// integerSuffixes describes the Rust integer type suffixes that may trail an integer literal. Longer
// suffixes come first so that e.g. "u128" is not partially stripped as "u1" + "28".
var integerSuffixes = []string{
	"usize", "isize",
	"u128", "i128",
	"u64", "i64",
	"u32", "i32",
	"u16", "i16",
	"u8", "i8",
}

// parseIntegerLiteral parses the textual form of a Rust integer literal into an unsigned 64-bit
// value. It accepts the forms the Rust grammar does: optional base prefix (0x, 0o, 0b), underscore
// digit separators, and an optional integer type suffix. Returns an error if the literal is
// malformed or does not fit in a uint64.
func parseIntegerLiteral(text string) (uint64, error) {
	normalized := strings.TrimSpace(text)

	// Strip any type suffix (e.g. 77u128). The suffix does not widen the extracted opcode type:
	// values beyond uint64 range are rejected regardless of suffix.
	for _, suffix := range integerSuffixes {
		if len(normalized) > len(suffix) && strings.HasSuffix(normalized, suffix) {
			normalized = normalized[:len(normalized)-len(suffix)]
			break
		}
	}

	// Strip underscore separators (e.g. 1_000_000).
	normalized = strings.ReplaceAll(normalized, "_", "")

	// Determine the base from an optional prefix.
	base := 10
	switch {
	case strings.HasPrefix(normalized, "0x"), strings.HasPrefix(normalized, "0X"):
		base = 16
		normalized = normalized[2:]
	case strings.HasPrefix(normalized, "0o"), strings.HasPrefix(normalized, "0O"):
		base = 8
		normalized = normalized[2:]
	case strings.HasPrefix(normalized, "0b"), strings.HasPrefix(normalized, "0B"):
		base = 2
		normalized = normalized[2:]
	}

	if normalized == "" {
		return 0, fmt.Errorf("literal %q has no digits", text)
	}

	value, err := strconv.ParseUint(normalized, base, 64)
	if err != nil {
		return 0, err
	}
	return value, nil
}
