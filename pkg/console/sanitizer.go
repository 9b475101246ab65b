package console

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// DefaultMaxInputSize is the line limit in bytes when none is configured.
const DefaultMaxInputSize = 4096

var (
	ErrInputTooLarge = errors.New("input exceeds maximum allowed size")
	ErrInvalidUTF8   = errors.New("input contains invalid UTF-8 sequences")
)

// ansiEscape matches CSI and OSC sequences left behind by pasted terminal output.
var ansiEscape = regexp.MustCompile(`\x1b(?:\[[0-9;?]*[ -/]*[@-~]|\][^\x07\x1b]*(?:\x07|\x1b\\))`)

// SanitizeLine turns one raw console line into the text stored on the board.
// It rejects lines over limit bytes (DefaultMaxInputSize when limit <= 0) and
// invalid UTF-8, drops terminal escape sequences, control and zero-width
// characters, composes diacritics to NFC and folds whitespace runs to one space.
func SanitizeLine(line string, limit int) (string, error) {
	if limit <= 0 {
		limit = DefaultMaxInputSize
	}
	if len(line) > limit {
		return "", fmt.Errorf("%w: size=%d limit=%d", ErrInputTooLarge, len(line), limit)
	}
	if !utf8.ValidString(line) {
		return "", ErrInvalidUTF8
	}

	line = ansiEscape.ReplaceAllString(line, "")
	line = norm.NFC.String(line)
	line = strings.Map(func(r rune) rune {
		switch {
		case unicode.IsSpace(r):
			return ' '
		case unicode.IsControl(r), unicode.Is(unicode.Cf, r):
			return -1
		}
		return r
	}, line)

	return strings.Join(strings.Fields(line), " "), nil
}
