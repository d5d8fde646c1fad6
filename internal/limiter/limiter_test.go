package limiter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectLimit_Triggers(t *testing.T) {
	d := New()

	positives := []string{
		"You've hit your limit, upgrade for more",
		"5-hour USAGE LIMIT reached",
		"stop and wait for limit reset",
		"please stop\tand\nwait   for rate window",
		"Error: rate limit exceeded, please try again",
		"ratelimit_error from upstream",
		`{"type":"system","message":"usage limit reached|4am (UTC)"}`,
	}
	for _, text := range positives {
		assert.True(t, d.DetectLimit(text), "should detect: %s", text)
	}

	negatives := []string{
		"task completed successfully",
		"",
		"stop and wait for the bus",
		"rate of change is high",
	}
	for _, text := range negatives {
		assert.False(t, d.DetectLimit(text), "should not detect: %s", text)
	}
}

func TestExtractReset(t *testing.T) {
	d := New()

	rst, ok := d.ExtractReset("hit your limit resets 4am (America/Los_Angeles)")
	require.True(t, ok)
	assert.Equal(t, "4am", rst.Time)
	assert.Equal(t, "America/Los_Angeles", rst.Timezone)

	rst, ok = d.ExtractReset("limit resets at 11:30 PM (America/New York) tonight")
	require.True(t, ok)
	assert.Equal(t, "11:30 PM", rst.Time)
	assert.Equal(t, "America/New York", rst.Timezone)

	// Embedded in a stringified JSON blob.
	rst, ok = d.ExtractReset(`map[message:You've hit your limit · resets 7pm (UTC)]`)
	require.True(t, ok)
	assert.Equal(t, "7pm", rst.Time)
	assert.Equal(t, "UTC", rst.Timezone)
}

func TestExtractReset_NoMatch(t *testing.T) {
	d := New()

	for _, text := range []string{
		"rate limit reached, try later",      // no time at all
		"resets 4am tomorrow",                // time but no parenthesized zone
		"resets at 16:00 (UTC)",              // no meridiem
		"",
	} {
		_, ok := d.ExtractReset(text)
		assert.False(t, ok, "should not extract from: %s", text)
	}
}

func TestDetector_Idempotent(t *testing.T) {
	d := New()
	text := "usage limit hit, resets 4am (UTC)"

	first := d.DetectLimit(text)
	second := d.DetectLimit(text)
	assert.Equal(t, first, second)

	r1, ok1 := d.ExtractReset(text)
	r2, ok2 := d.ExtractReset(text)
	assert.Equal(t, ok1, ok2)
	assert.Equal(t, r1, r2)
}
