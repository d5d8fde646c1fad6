// Package limiter detects rate limit notices in agent CLI output and
// extracts the advertised reset time.
package limiter

import (
	"regexp"
	"strings"
)

// Indicator patterns for rate limit notices. These are searched, not
// matched: they must fire even when the phrase is buried inside a
// stringified JSON blob or a larger log line.
var indicators = []*regexp.Regexp{
	regexp.MustCompile(`(?i)hit your limit`),
	regexp.MustCompile(`(?i)usage limit`),
	regexp.MustCompile(`(?i)stop\s+and\s+wait\s+for\s+(?:limit|rate)`),
	regexp.MustCompile(`(?i)rate\s*limit`),
}

// resetPattern finds a clock time immediately followed by a parenthesized
// timezone, e.g. "4am (America/Los_Angeles)" or "11:30 pm (UTC)".
var resetPattern = regexp.MustCompile(`(?i)(\d{1,2}(?::\d{2})?\s*(?:am|pm))\s*\(([^)]+)\)`)

// Reset is the raw reset time advertised in a rate limit notice.
type Reset struct {
	Time     string // e.g. "4am", "11:30pm"
	Timezone string // verbatim text between the parentheses
}

// Detector checks text for rate limit signals.
type Detector struct {
	indicators []*regexp.Regexp
	reset      *regexp.Regexp
}

// New creates a Detector with the default indicator set.
func New() *Detector {
	return &Detector{indicators: indicators, reset: resetPattern}
}

// DetectLimit returns true if the text contains a rate limit signal.
// It never fails: arbitrary input (including garbage) classifies as
// either a match or a non-match.
func (d *Detector) DetectLimit(text string) bool {
	for _, p := range d.indicators {
		if p.MatchString(text) {
			return true
		}
	}
	return false
}

// ExtractReset searches the text for a reset time with timezone.
// The second return value is false when no such pattern is present.
func (d *Detector) ExtractReset(text string) (Reset, bool) {
	m := d.reset.FindStringSubmatch(text)
	if m == nil {
		return Reset{}, false
	}
	return Reset{
		Time:     strings.TrimSpace(m[1]),
		Timezone: m[2],
	}, true
}
