package screens

import (
	"strconv"
	"strings"

	"github.com/five82/mobileinfo/internal/logtail"
	"github.com/five82/mobileinfo/internal/rows"
)

// Logs shows the tail of the log file, oldest first. Row identities come from
// the entry text so new lines append without redrawing older ones.
func (b *Builder) Logs(path string, lines []string) []rows.Row {
	if path == "" {
		return []rows.Row{
			rows.Header{ID: "logs", Text: "Logs"},
			rows.KeyValue{ID: "logs/disabled", Key: "Log file", Value: "not configured"},
		}
	}
	out := []rows.Row{rows.Header{ID: "logs", Text: "Logs", Link: path}}
	seen := make(map[string]int)
	for _, e := range logtail.ParseAll(lines) {
		id := "log/" + e.Time + "/" + e.Message
		seen[id]++
		if n := seen[id]; n > 1 {
			id += "#" + strconv.Itoa(n)
		}
		out = append(out, rows.KeyValue{ID: id, Key: logKey(e), Value: logValue(e)})
	}
	return out
}

// logKey is the clock time and level, "09:14:02 INFO".
func logKey(e logtail.Entry) string {
	clock := e.Time
	if i := strings.IndexByte(clock, 'T'); i >= 0 {
		clock = clock[i+1:]
	}
	if len(clock) > 8 {
		clock = clock[:8]
	}
	return strings.TrimSpace(clock + " " + e.Level)
}

func logValue(e logtail.Entry) string {
	if e.Fields == "" {
		return e.Message
	}
	return e.Message + " " + e.Fields
}
