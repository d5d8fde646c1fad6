// Package transcript extracts searchable text from agent session
// transcripts (line-delimited JSON, tolerant of anything else).
package transcript

import (
	"encoding/json"
	"os"
	"strings"
)

// textKeys are the record fields that commonly carry message text.
var textKeys = map[string]bool{
	"message": true,
	"content": true,
	"text":    true,
}

// Tail reads up to the last maxLines lines of the transcript at path and
// returns one text blob: extracted text fields plus the raw line for each
// record. The raw line keeps recall high when a notice hides in a field
// we don't know about.
//
// A missing or unreadable file returns an empty string: transcripts are a
// best-effort enrichment, never a failure.
func Tail(path string, maxLines int) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	if maxLines > 0 && len(lines) > maxLines {
		lines = lines[len(lines)-maxLines:]
	}

	var b strings.Builder
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		var record any
		if err := json.Unmarshal([]byte(line), &record); err == nil {
			for _, s := range collectText(record, false) {
				b.WriteString(s)
				b.WriteString("\n")
			}
		}
		// String form of the full record, JSON or not.
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

// collectText walks a decoded JSON value and gathers string values found
// under the known text keys, at any nesting depth.
func collectText(v any, underTextKey bool) []string {
	var out []string
	switch val := v.(type) {
	case string:
		if underTextKey {
			out = append(out, val)
		}
	case map[string]any:
		for k, child := range val {
			out = append(out, collectText(child, underTextKey || textKeys[k])...)
		}
	case []any:
		for _, child := range val {
			out = append(out, collectText(child, underTextKey)...)
		}
	}
	return out
}
