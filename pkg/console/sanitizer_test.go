package console_test

import (
	"strings"
	"testing"

	"github.com/aretw0/taskflow/pkg/console"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeLine_SizeLimit(t *testing.T) {
	limit := console.DefaultMaxInputSize

	tests := []struct {
		name    string
		size    int
		limit   int
		wantErr bool
	}{
		{"Under Default", limit - 1, 0, false},
		{"Exact Default", limit, 0, false},
		{"Over Default", limit + 1, 0, true},
		{"Explicit Limit", 6, 5, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := console.SanitizeLine(strings.Repeat("a", tt.size), tt.limit)
			if tt.wantErr {
				assert.ErrorIs(t, err, console.ErrInputTooLarge)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSanitizeLine_Cleanup(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"Normal Text", "Buy milk", "Buy milk"},
		{"Diacritics", "Plătește factura", "Plătește factura"},
		{"Combining Marks Composed", "ma\u0302ine", "m\u00e2ine"},
		{"Whitespace Folded", "  Call\t the   plumber \r", "Call the plumber"},
		{"ANSI Colors", "\x1b[31mRed\x1b[0m alert", "Red alert"},
		{"OSC Title", "\x1b]0;title\x07Task", "Task"},
		{"Null Byte", "Null\x00Byte", "NullByte"},
		{"Bell", "Ding\x07", "Ding"},
		{"Zero Width", "Pay\u200b rent\ufeff", "Pay rent"},
		{"Only Noise", "\x1b[0m \u200b", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := console.SanitizeLine(tt.input, 0)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestSanitizeLine_InvalidUTF8(t *testing.T) {
	_, err := console.SanitizeLine("bad\xffbyte", 0)
	assert.ErrorIs(t, err, console.ErrInvalidUTF8)
}
