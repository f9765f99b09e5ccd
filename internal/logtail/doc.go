// Package logtail reads the tail of the application's log file and splits
// zap console lines into entries for the Logs screen.
//
// Read keeps a ring buffer of the last maxLines lines, so memory stays
// proportional to the number of lines shown rather than to the file size. A
// missing file yields no lines and no error; the log file only exists once
// file logging has been enabled.
//
// Parse understands the console encoder layout:
//
//	2026-10-18T09:14:02.113+0200	INFO	app/poller.go:61	snapshot collected	{"batteries": 1}
//
// Lines that do not start with a timestamp and a level (stack traces, output
// from other writers) are kept as message-only entries, and ParseAll folds
// them into the entry they follow.
package logtail
