// Package manual implements the interactive invocation: the user supplies
// a duration ("2h") or a clock time ("11:30pm") and ratewait waits it out,
// printing progress along the way.
package manual

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/Manjussha/ratewait/internal/hooklog"
	"github.com/Manjussha/ratewait/internal/reset"
	"github.com/Manjussha/ratewait/internal/waiter"
)

// Options configures a manual wait.
type Options struct {
	Clock waiter.Clock
	Log   hooklog.Logger
	Out   io.Writer

	// ProgressInterval is how often a countdown line is printed.
	ProgressInterval time.Duration

	// Interactive enables countdown lines. Off when stdout is not a
	// terminal so piped output stays clean.
	Interactive bool
}

// Run parses the token and blocks until the requested instant. A parse
// failure is returned to the caller (non-zero exit); an interrupted wait
// is a clean early exit and returns nil.
func Run(ctx context.Context, token string, opts Options) error {
	now := opts.Clock.Now()
	d, err := reset.ParseDurationOrTime(token, now)
	if err != nil {
		return err
	}

	target := now.Add(d)
	opts.Log.Logf("Manual wait: %q -> %d seconds", token, int(d.Seconds()))
	fmt.Fprintf(opts.Out, "Waiting %s — resuming at %s\n", d, target.Format("2006-01-02 15:04:05"))

	var progress func(remaining time.Duration)
	if opts.Interactive {
		progress = func(remaining time.Duration) {
			fmt.Fprintf(opts.Out, "  %s remaining\n", remaining.Truncate(time.Second))
		}
	}

	w := waiter.New(opts.Clock, opts.ProgressInterval, progress)
	if err := w.WaitUntil(ctx, target); err != nil {
		if errors.Is(err, context.Canceled) {
			fmt.Fprintln(opts.Out, "Interrupted — aborting wait.")
			opts.Log.Logf("Manual wait interrupted")
			return nil
		}
		return fmt.Errorf("manual.Run: %w", err)
	}

	fmt.Fprintln(opts.Out, "Done.")
	opts.Log.Logf("Manual wait complete")
	return nil
}
