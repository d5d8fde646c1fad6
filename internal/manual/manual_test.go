package manual

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Manjussha/ratewait/internal/hooklog"
	"github.com/Manjussha/ratewait/internal/waiter"
)

var testNow = time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)

func run(t *testing.T, token string, interactive bool) (*waiter.FakeClock, *bytes.Buffer, error) {
	t.Helper()
	clock := waiter.NewFakeClock(testNow)
	out := &bytes.Buffer{}
	err := Run(context.Background(), token, Options{
		Clock:            clock,
		Log:              hooklog.Nop{},
		Out:              out,
		ProgressInterval: 30 * time.Minute,
		Interactive:      interactive,
	})
	return clock, out, err
}

func TestRun_Duration(t *testing.T) {
	clock, out, err := run(t, "2h", false)
	require.NoError(t, err)

	assert.Equal(t, 2*time.Hour, clock.Slept())
	assert.Contains(t, out.String(), "Waiting 2h0m0s")
	assert.Contains(t, out.String(), "Done.")
}

func TestRun_InteractiveCountdown(t *testing.T) {
	_, out, err := run(t, "2h", true)
	require.NoError(t, err)

	// 2h at a 30m progress interval: 4 countdown lines.
	assert.Equal(t, 4, strings.Count(out.String(), "remaining"))
}

func TestRun_NonInteractiveIsQuiet(t *testing.T) {
	_, out, err := run(t, "2h", false)
	require.NoError(t, err)
	assert.NotContains(t, out.String(), "remaining")
}

func TestRun_ClockTimeToken(t *testing.T) {
	clock, out, err := run(t, "11:30pm", false)
	require.NoError(t, err)

	assert.Contains(t, out.String(), "Waiting")
	assert.Greater(t, clock.Slept(), time.Duration(0))
}

func TestRun_BadToken(t *testing.T) {
	clock, out, err := run(t, "garbage", false)
	require.Error(t, err)

	assert.Contains(t, err.Error(), "garbage")
	assert.Contains(t, err.Error(), "2h")
	assert.Zero(t, clock.SleepCount())
	assert.NotContains(t, out.String(), "Done.")
}

func TestRun_Interrupted(t *testing.T) {
	clock := waiter.NewFakeClock(testNow)
	out := &bytes.Buffer{}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := Run(ctx, "2h", Options{
		Clock:            clock,
		Log:              hooklog.Nop{},
		Out:              out,
		ProgressInterval: time.Minute,
	})
	// A user interrupt is a clean exit, not a failure.
	require.NoError(t, err)
	assert.Contains(t, out.String(), "Interrupted")
}
