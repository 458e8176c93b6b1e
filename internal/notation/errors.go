package notation

import "errors"

// Sentinel kinds for encoder errors.
var (
	// ErrEmptyChartSet is returned by the modern encoder when no charts
	// are supplied. The legacy encoder intentionally differs: it renders
	// a placeholder measure for an empty chart instead of failing.
	ErrEmptyChartSet = errors.New("at least one chart is required")
)
