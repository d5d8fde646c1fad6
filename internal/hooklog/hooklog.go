// Package hooklog writes the append-only diagnostic log.
//
// Every line is "[YYYY-MM-DD HH:MM:SS] message". The file is opened,
// appended, and closed on every write so concurrent hook invocations can
// interleave lines but never corrupt each other.
package hooklog

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/Manjussha/ratewait/internal/platform"
)

const timeFormat = "2006-01-02 15:04:05"

// Logger is the diagnostic sink injected into the hook pipeline.
// Implementations must be safe to call with arbitrary format strings.
type Logger interface {
	Logf(format string, args ...any)
}

// Nop is a Logger that discards everything. Used in tests.
type Nop struct{}

func (Nop) Logf(string, ...any) {}

// FileSink appends timestamped lines to a log file, creating parent
// directories on demand.
type FileSink struct {
	path string
}

// NewFileSink creates a sink for the given path. The file itself is not
// touched until the first write.
func NewFileSink(path string) *FileSink {
	return &FileSink{path: path}
}

// Logf formats and appends one line. Failures are swallowed: the log is
// diagnostic only and must never break the hook.
func (s *FileSink) Logf(format string, args ...any) {
	if err := s.append(fmt.Sprintf(format, args...)); err != nil {
		fmt.Fprintf(os.Stderr, "hooklog: %v\n", err)
	}
}

func (s *FileSink) append(msg string) error {
	if err := platform.EnsureParent(s.path); err != nil {
		return fmt.Errorf("hooklog.append: ensure dir: %w", err)
	}
	f, err := os.OpenFile(s.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("hooklog.append: open %s: %w", s.path, err)
	}
	defer f.Close()

	// The time field is supplied pre-formatted so the line format does
	// not depend on the process-global zerolog.TimeFieldFormat.
	logger := zerolog.New(lineWriter(f)).With().
		Str(zerolog.TimestampFieldName, time.Now().Format(timeFormat)).
		Logger()
	logger.Log().Msg(msg)
	return nil
}

// lineWriter renders zerolog events as "[ts] message" lines.
func lineWriter(f *os.File) zerolog.ConsoleWriter {
	return zerolog.ConsoleWriter{
		Out:        f,
		NoColor:    true,
		TimeFormat: timeFormat,
		PartsOrder: []string{zerolog.TimestampFieldName, zerolog.MessageFieldName},
		FormatTimestamp: func(i interface{}) string {
			ts, _ := i.(string)
			return "[" + ts + "]"
		},
		FormatMessage: func(i interface{}) string {
			msg, _ := i.(string)
			return msg
		},
	}
}
