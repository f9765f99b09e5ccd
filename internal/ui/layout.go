package ui

import "time"

// Terminal width thresholds for responsive layouts.
const (
	// LayoutCompactWidth is the threshold below which tabs drop their
	// numbers and the status bar drops the update time.
	LayoutCompactWidth = 80
)

// Chrome sizes.
const (
	headerHeight = 1
	statusHeight = 1
	filterHeight = 1
	helpWidth    = 44
	helpKeyWidth = 12
)

// Timing constants.
const (
	// DefaultUIInterval is the default UI refresh interval.
	DefaultUIInterval = time.Second

	// RefreshTimeout bounds a manual refresh.
	RefreshTimeout = 5 * time.Second

	statusTimeFormat = "15:04:05"
)
