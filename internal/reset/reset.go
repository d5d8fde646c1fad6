// Package reset turns fuzzy human time expressions into absolute wake
// instants and wait durations.
//
// Two token grammars are understood:
//
//	durations:   "2h", "30 min", "0.5m", "45seconds"
//	clock times: "4am", "11:30pm", "12 AM"
//
// Grammar misses are reported with the sentinel errors ErrNotDuration and
// ErrNotClockTime so callers can try grammars in sequence. Tokens that
// match a grammar but name an impossible time ("25:00pm") fail with a
// regular error instead.
package reset

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Logger receives diagnostic notes, e.g. about timezone fallbacks.
type Logger interface {
	Logf(format string, args ...any)
}

// Sentinel results for tokens that simply don't look like the grammar.
var (
	ErrNotDuration  = errors.New("not a duration token")
	ErrNotClockTime = errors.New("not a clock time token")
)

var (
	durationPattern = regexp.MustCompile(`(?i)^(\d+(?:\.\d+)?)\s*(h|hr|hrs|hour|hours|m|min|mins|minute|minutes|s|sec|secs|second|seconds)$`)
	clockPattern    = regexp.MustCompile(`(?i)^(\d{1,2})(?::(\d{2}))?\s*(am|pm)$`)
)

// ParseDuration parses a relative duration token like "2h", "30m" or
// "1.5h". A bare number without a unit is rejected (ErrNotDuration).
// Fractional values truncate to whole seconds after unit multiplication.
func ParseDuration(token string) (time.Duration, error) {
	m := durationPattern.FindStringSubmatch(strings.TrimSpace(token))
	if m == nil {
		return 0, ErrNotDuration
	}
	value, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, ErrNotDuration
	}
	var mult float64
	switch strings.ToLower(m[2])[0] {
	case 'h':
		mult = 3600
	case 'm':
		mult = 60
	default:
		mult = 1
	}
	return time.Duration(int64(value*mult)) * time.Second, nil
}

// ParseClockTime parses a wall-clock token like "4am" or "11:30pm" and
// returns how long until that time next occurs in loc, measured from now.
// A time earlier than or equal to now rolls over to the next day.
//
// Tokens that don't look like a clock time at all return ErrNotClockTime;
// tokens that match the grammar but name an impossible time return a
// descriptive error.
func ParseClockTime(token string, loc *time.Location, now time.Time) (time.Duration, error) {
	hour, minute, err := parseClock(token)
	if err != nil {
		return 0, err
	}
	target := nextOccurrence(hour, minute, loc, now)
	d := target.Sub(now)
	return d - d%time.Second, nil
}

// ParseDurationOrTime accepts either grammar: durations win, clock times
// (in the local timezone) are the fallback. Used by manual invocation.
func ParseDurationOrTime(token string, now time.Time) (time.Duration, error) {
	d, err := ParseDuration(token)
	if err == nil {
		return d, nil
	}
	if !errors.Is(err, ErrNotDuration) {
		return 0, err
	}
	d, err = ParseClockTime(token, time.Local, now)
	if errors.Is(err, ErrNotClockTime) {
		return 0, fmt.Errorf("cannot parse %q: expected a duration like \"2h\" or a clock time like \"11:30pm\"", token)
	}
	return d, err
}

// ResolveResetInstant resolves a raw reset time and timezone (as extracted
// from a rate limit notice) to an absolute instant, always strictly in the
// future relative to now.
//
// The timezone text is normalized (trimmed, spaces to underscores). An
// unknown timezone never fails the resolution: it falls back to the local
// timezone and logs the fallback.
func ResolveResetInstant(timeTok, tzTok string, now time.Time, log Logger) (time.Time, error) {
	loc := resolveZone(tzTok, log)

	hour, minute, err := parseClock(timeTok)
	if errors.Is(err, ErrNotClockTime) {
		return time.Time{}, fmt.Errorf("reset.ResolveResetInstant: unparseable reset time %q", timeTok)
	}
	if err != nil {
		return time.Time{}, err
	}
	return nextOccurrence(hour, minute, loc, now), nil
}

// parseClock extracts 24-hour fields from a clock token.
func parseClock(token string) (hour, minute int, err error) {
	m := clockPattern.FindStringSubmatch(strings.TrimSpace(token))
	if m == nil {
		return 0, 0, ErrNotClockTime
	}
	hour, _ = strconv.Atoi(m[1])
	if m[2] != "" {
		minute, _ = strconv.Atoi(m[2])
	}
	switch strings.ToLower(m[3]) {
	case "pm":
		if hour != 12 {
			hour += 12
		}
	case "am":
		if hour == 12 {
			hour = 0
		}
	}
	if hour > 23 || minute > 59 {
		return 0, 0, fmt.Errorf("reset.parseClock: impossible time %q (%02d:%02d)", token, hour, minute)
	}
	return hour, minute, nil
}

// nextOccurrence constructs today's date at hour:minute in loc; if that
// instant has already passed, it advances by one calendar day. A single
// step suffices: clock tokens are always within one day.
func nextOccurrence(hour, minute int, loc *time.Location, now time.Time) time.Time {
	nowIn := now.In(loc)
	target := time.Date(nowIn.Year(), nowIn.Month(), nowIn.Day(), hour, minute, 0, 0, loc)
	if !target.After(nowIn) {
		target = time.Date(nowIn.Year(), nowIn.Month(), nowIn.Day()+1, hour, minute, 0, 0, loc)
	}
	return target
}

// resolveZone maps free-text timezone identifiers to a location.
func resolveZone(tzTok string, log Logger) *time.Location {
	norm := strings.ReplaceAll(strings.TrimSpace(tzTok), " ", "_")
	if norm == "" {
		if log != nil {
			log.Logf("No timezone in reset notice, using local timezone")
		}
		return time.Local
	}
	loc, err := time.LoadLocation(norm)
	if err != nil {
		if log != nil {
			log.Logf("Unknown timezone %q, falling back to local timezone", tzTok)
		}
		return time.Local
	}
	return loc
}
