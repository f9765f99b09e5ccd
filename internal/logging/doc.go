// Package logging builds the zap logger shared by every component.
//
// Logging is silent unless a level is configured, either through the
// log_level setting or the MOBILEINFO_LOG_LEVEL environment variable, which
// takes precedence:
//
//	MOBILEINFO_LOG_LEVEL=debug mobileinfo
//
// Output goes to the configured log file in zap's console format because the
// TUI owns the terminal. The Logs screen reads the same file back.
//
// The logger is returned rather than stored globally; callers pass it to the
// components that log.
package logging
