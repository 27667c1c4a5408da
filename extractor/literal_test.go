package extractor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestParseIntegerLiteral ensures the Rust integer literal forms parse to the expected values and
// that malformed or out-of-range literals are rejected.
func TestParseIntegerLiteral(t *testing.T) {
	valid := map[string]uint64{
		"0":                    0,
		"77":                   77,
		"1_000":                1000,
		"0xff":                 255,
		"0XFF":                 255,
		"0o17":                 15,
		"0b101":                5,
		"42u64":                42,
		"42u128":               42,
		"123usize":             123,
		"0x_1_0":               16,
		"18446744073709551615": 18446744073709551615,
	}
	for text, expected := range valid {
		value, err := parseIntegerLiteral(text)
		assert.NoError(t, err, "literal %q", text)
		assert.EqualValues(t, expected, value, "literal %q", text)
	}

	invalid := []string{
		"",
		"abc",
		"0x",
		"1.5",
		"18446744073709551616", // max uint64 + 1
		"0xffffffffffffffffff",
	}
	for _, text := range invalid {
		_, err := parseIntegerLiteral(text)
		assert.Error(t, err, "literal %q", text)
	}
}
