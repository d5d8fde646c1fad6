// Package hook implements the stop-hook pipeline: read a JSON event from
// the caller, decide whether it represents a rate limit, and if so sleep
// past the advertised reset before telling the caller to keep going.
package hook

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/Manjussha/ratewait/internal/hooklog"
	"github.com/Manjussha/ratewait/internal/limiter"
	"github.com/Manjussha/ratewait/internal/reset"
	"github.com/Manjussha/ratewait/internal/transcript"
	"github.com/Manjussha/ratewait/internal/waiter"
)

// Decision is the single JSON object emitted on stdout.
//
// Exactly one schema is supported: {"decision": "allow"} lets the caller
// stop normally, {"decision": "block"} tells it to keep going (the rate
// limit has passed). The older {"continue": bool} form is deliberately
// not emitted; the two are not interchangeable with the same caller.
type Decision struct {
	Decision string `json:"decision"`
}

const (
	// DecisionAllow lets the caller proceed with its normal stop.
	DecisionAllow = "allow"
	// DecisionBlock blocks the stop: the caller should resume work.
	DecisionBlock = "block"
)

// Runner wires the detector, resolver, clock and log sink together.
type Runner struct {
	Detector *limiter.Detector
	Clock    waiter.Clock
	Log      hooklog.Logger

	// Buffer is added after the resolved reset instant before resuming.
	Buffer time.Duration

	// TranscriptTail bounds how many transcript lines are searched.
	TranscriptTail int

	// Out receives the decision JSON (stdout in production).
	Out io.Writer
}

// Run executes one hook invocation. It never fails on malformed input:
// anything that can't be understood resolves to an "allow" decision so
// the automation can't wedge its caller.
func (r *Runner) Run(ctx context.Context, stdin io.Reader) error {
	doc := decode(stdin)
	text := searchText(doc, r.TranscriptTail)

	if !r.Detector.DetectLimit(text) {
		return r.emit(DecisionAllow)
	}

	rst, ok := r.Detector.ExtractReset(text)
	if !ok {
		r.Log.Logf("Rate limit detected but no reset time found")
		return r.emit(DecisionAllow)
	}
	r.Log.Logf("Rate limit detected. Reset time: %s (%s)", rst.Time, rst.Timezone)

	instant, err := reset.ResolveResetInstant(rst.Time, rst.Timezone, r.Clock.Now(), r.Log)
	if err != nil {
		// A parsing bug must never block the caller indefinitely.
		r.Log.Logf("Error resolving reset time: %v", err)
		return r.emit(DecisionAllow)
	}

	wake := instant.Add(r.Buffer)
	if wait := wake.Sub(r.Clock.Now()); wait > 0 {
		r.Log.Logf("Sleeping until %s (%d seconds)", wake.Format("2006-01-02 15:04:05 MST"), int(wait.Seconds()))
		if err := r.Clock.Sleep(ctx, wait); err != nil {
			return fmt.Errorf("hook.Run: wait interrupted: %w", err)
		}
		r.Log.Logf("Waking up - resuming caller")
	} else {
		r.Log.Logf("Reset time already passed, continuing immediately")
	}

	return r.emit(DecisionBlock)
}

func (r *Runner) emit(decision string) error {
	return json.NewEncoder(r.Out).Encode(Decision{Decision: decision})
}

// decode reads the hook event. Unparseable input is treated as an empty
// document, never an error. The whole input must be one JSON value: a
// valid object followed by trailing garbage is garbage.
func decode(stdin io.Reader) map[string]any {
	data, err := io.ReadAll(stdin)
	if err != nil {
		return map[string]any{}
	}
	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil || doc == nil {
		return map[string]any{}
	}
	return doc
}

// searchText builds the flattened textual projection of the event that
// the detector searches. Stringifying the whole document is intentional:
// the event shape is not contractually stable, and searching everything
// maximizes recall. When the event names a transcript, its tail is
// appended too.
func searchText(doc map[string]any, tailLines int) string {
	text := fmt.Sprint(doc)
	if path, ok := doc["transcript_path"].(string); ok && path != "" {
		text += "\n" + transcript.Tail(path, tailLines)
	}
	return text
}
