// ratewait — rate-limit stop hook for agent CLIs.
// Entry point: dispatches between hook mode (stdin JSON) and manual mode
// (a single duration/time argument).
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	// Reset notices carry IANA timezone names; embed the tz database so
	// they resolve even on hosts without /usr/share/zoneinfo.
	_ "time/tzdata"

	"golang.org/x/term"

	"github.com/Manjussha/ratewait/internal/config"
	"github.com/Manjussha/ratewait/internal/hook"
	"github.com/Manjussha/ratewait/internal/hooklog"
	"github.com/Manjussha/ratewait/internal/limiter"
	"github.com/Manjussha/ratewait/internal/manual"
	"github.com/Manjussha/ratewait/internal/waiter"
)

// Version is set via -ldflags at build time.
var Version = "dev"

func main() {
	args := os.Args[1:]
	if len(args) > 0 {
		switch args[0] {
		case "version", "-version", "--version":
			fmt.Printf("ratewait %s\n", Version)
			return
		case "-h", "-help", "--help", "help":
			usage(os.Stdout)
			return
		}
	}
	if len(args) > 1 {
		usage(os.Stderr)
		os.Exit(2)
	}

	cfg := config.Load()
	sink := hooklog.NewFileSink(cfg.LogPath)

	if len(args) == 0 {
		runHook(cfg, sink)
		return
	}
	runManual(cfg, sink, args[0])
}

// runHook executes one non-interactive hook invocation. Interrupts are not
// handled specially here: if the caller kills us mid-wait, normal process
// termination is the right outcome.
func runHook(cfg *config.Config, sink *hooklog.FileSink) {
	runner := &hook.Runner{
		Detector:       limiter.New(),
		Clock:          waiter.System,
		Log:            sink,
		Buffer:         cfg.Buffer(),
		TranscriptTail: cfg.TranscriptTail,
		Out:            os.Stdout,
	}
	if err := runner.Run(context.Background(), os.Stdin); err != nil {
		fmt.Fprintf(os.Stderr, "ratewait: %v\n", err)
		os.Exit(1)
	}
}

// runManual waits out a user-supplied duration or clock time. Ctrl-C
// aborts the wait and exits cleanly.
func runManual(cfg *config.Config, sink *hooklog.FileSink, token string) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := manual.Run(ctx, token, manual.Options{
		Clock:            waiter.System,
		Log:              sink,
		Out:              os.Stdout,
		ProgressInterval: cfg.ProgressInterval,
		Interactive:      term.IsTerminal(int(os.Stdout.Fd())),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "ratewait: %v\n", err)
		os.Exit(1)
	}
}

func usage(w *os.File) {
	fmt.Fprintf(w, `ratewait %s — sleep through agent CLI rate limits

Usage:
  ratewait                 hook mode: read a JSON event on stdin, emit a
                           {"decision":"allow"|"block"} object on stdout
  ratewait <duration|time> manual mode: wait for "2h", "30m", "90s" or
                           until "4am", "11:30pm" (local time)
  ratewait version         print the version

Environment:
  RATEWAIT_LOG                log file (default ~/.claude/hooks/rate-limit.log)
  RATEWAIT_BUFFER_MINUTES     buffer after reset (default 5)
  RATEWAIT_TRANSCRIPT_TAIL    transcript lines searched (default 20)
  RATEWAIT_PROGRESS_INTERVAL  manual countdown interval (default 30s)
`, Version)
}
