package model

import (
	"github.com/okian/stepforge/internal/domain/profile"
)

// Timing anchors the chart to the song's tempo grid.
type Timing struct {
	BPMAtZero     float64
	OffsetSeconds float64
}

// Derived carries statistics computed from the sequenced notes.
type Derived struct {
	BeatCount   int
	StepCount   int
	StepDensity float64
}

// Chart is one fully sequenced difficulty of one song. It is built once
// per (analysis, profile) pair and never mutated afterwards; each tier
// owns its own Chart.
type Chart struct {
	// RunID identifies the generation run that produced this chart.
	RunID   string
	Meta    Metadata
	Timing  Timing
	Profile profile.Profile
	Credit  string
	Notes   []StepEvent
	Derived Derived
}
