package logtail

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"
)

// Read returns at most maxLines from the end of the file at path. A
// non-positive maxLines returns every line. A missing file yields no lines and
// no error.
func Read(path string, maxLines int) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open log: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	if maxLines <= 0 {
		var lines []string
		for scanner.Scan() {
			lines = append(lines, scanner.Text())
		}
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("read log: %w", err)
		}
		return lines, nil
	}

	ring := make([]string, maxLines)
	count := 0
	idx := 0
	for scanner.Scan() {
		ring[idx] = scanner.Text()
		idx = (idx + 1) % maxLines
		if count < maxLines {
			count++
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}

	lines := make([]string, count)
	if count == maxLines {
		for i := 0; i < count; i++ {
			lines[i] = ring[(idx+i)%maxLines]
		}
	} else {
		copy(lines, ring[:count])
	}
	return lines, nil
}

// Entry is one line of a zap console log.
type Entry struct {
	Time    string
	Level   string
	Caller  string
	Message string
	Fields  string
}

// Parse splits a console-encoded line ("time\tLEVEL\tcaller\tmsg\t{json}").
// The caller and fields columns are optional. Lines that do not start with a
// time and a level are returned whole as the message.
func Parse(line string) Entry {
	parts := strings.Split(line, "\t")
	if len(parts) < 3 || !isLevel(parts[1]) {
		return Entry{Message: strings.TrimSpace(line)}
	}
	e := Entry{Time: parts[0], Level: strings.ToUpper(parts[1])}
	rest := parts[2:]
	if len(rest) > 1 && looksLikeCaller(rest[0]) {
		e.Caller, rest = rest[0], rest[1:]
	}
	e.Message = rest[0]
	if len(rest) > 1 {
		e.Fields = strings.Join(rest[1:], " ")
	}
	return e
}

// ParseAll parses lines, folding continuation lines (stack traces and other
// lines without a level) into the previous entry's fields.
func ParseAll(lines []string) []Entry {
	entries := make([]Entry, 0, len(lines))
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		e := Parse(line)
		if e.Level == "" && len(entries) > 0 {
			last := &entries[len(entries)-1]
			if last.Fields != "" {
				last.Fields += " "
			}
			last.Fields += strings.TrimSpace(line)
			continue
		}
		entries = append(entries, e)
	}
	return entries
}

func isLevel(s string) bool {
	switch strings.ToUpper(s) {
	case "DEBUG", "INFO", "WARN", "ERROR", "DPANIC", "PANIC", "FATAL":
		return true
	}
	return false
}

// looksLikeCaller matches "pkg/file.go:123".
func looksLikeCaller(s string) bool {
	i := strings.LastIndexByte(s, ':')
	return i > 0 && strings.HasSuffix(s[:i], ".go") && !strings.ContainsAny(s, " \t")
}
