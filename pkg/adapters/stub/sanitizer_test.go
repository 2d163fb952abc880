package stub

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeInput(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"Normal Text", "Buy milk", "Buy milk"},
		{"Surrounding Space", "  Buy milk \n", "Buy milk"},
		{"ANSI Code", "\x1b[31mRed\x1b[0m", "[31mRed[0m"},
		{"Null Byte", "Null\x00Byte", "NullByte"},
		{"Inner Newline", "Line1\nLine2", "Line1Line2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SanitizeInput(tt.input, DefaultMaxInputSize)
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestSanitizeInput_SizeLimit(t *testing.T) {
	_, err := SanitizeInput(strings.Repeat("a", 11), 10)
	assert.ErrorIs(t, err, ErrInputTooLarge)

	got, err := SanitizeInput(strings.Repeat("a", 10), 10)
	assert.NoError(t, err)
	assert.Len(t, got, 10)
}

func TestSanitizeInput_InvalidUTF8(t *testing.T) {
	_, err := SanitizeInput("\xbd\xb2\x3d\xbc\x20\xe2\x8c\x98", DefaultMaxInputSize)
	assert.ErrorIs(t, err, ErrInvalidUTF8)
}
