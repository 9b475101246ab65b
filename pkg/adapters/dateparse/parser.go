// Package dateparse turns free-form deadline hints into timestamps.
package dateparse

import (
	"strings"
	"time"

	dps "github.com/markusmobius/go-dateparser"
)

// DefaultLanguages are tried when none are configured.
var DefaultLanguages = []string{"ro", "en"}

// Parser implements ports.DateParser for natural-language dates such as
// "tomorrow at 5pm" or "mâine la ora 17".
type Parser struct {
	parser    *dps.Parser
	languages []string
}

// New creates a parser restricted to languages.
func New(languages ...string) *Parser {
	if len(languages) == 0 {
		languages = DefaultLanguages
	}
	return &Parser{
		parser:    &dps.Parser{},
		languages: append([]string(nil), languages...),
	}
}

// Parse resolves hint relative to now. Relative expressions use now's
// location. It reports false when the hint is blank or not understood.
func (p *Parser) Parse(hint string, now time.Time) (time.Time, bool) {
	hint = strings.TrimSpace(hint)
	if hint == "" {
		return time.Time{}, false
	}

	dt, err := p.parser.Parse(&dps.Configuration{
		Languages:       p.languages,
		CurrentTime:     now,
		DefaultTimezone: now.Location(),
	}, hint)
	if err != nil || dt.Time.IsZero() {
		return time.Time{}, false
	}
	return dt.Time.In(now.Location()), true
}

// Languages reports the languages hints are parsed in.
func (p *Parser) Languages() []string {
	return append([]string(nil), p.languages...)
}
