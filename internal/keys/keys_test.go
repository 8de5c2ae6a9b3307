package keys

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClean(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "removes non-letters",
			input:    `foo &8_\ bar`,
			expected: "foobar",
		},
		{
			name:     "lower-cases capital letters",
			input:    "fOoBAr",
			expected: "foobar",
		},
		{
			name:     "strips digits and punctuation from a bank reference",
			input:    "FP: J SMITH 123 - GIFT",
			expected: "fpjsmithgift",
		},
		{
			name:     "empty input yields empty output",
			input:    "",
			expected: "",
		},
		{
			name:     "input with no letters yields empty output",
			input:    "123 456-789",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Clean(tt.input))
		})
	}
}

func TestCleanIsIdempotent(t *testing.T) {
	inputs := []string{"FP: J SMITH 123", "foobar", "", "&&&", "MiXeD cAsE 42"}
	for _, input := range inputs {
		once := Clean(input)
		assert.Equal(t, once, Clean(once))
	}
}

func TestCleanIsCaseInsensitive(t *testing.T) {
	assert.Equal(t, Clean("abc"), Clean("AbC"))
}
