package model

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Metadata describes the song behind an analysis or chart.
type Metadata struct {
	Title          string `json:"title"`
	Artist         string `json:"artist"`
	Album          string `json:"album"`
	Genre          string `json:"genre"`
	SourceFilename string `json:"source_filename"`
}

// Fallback metadata values used when the analysis carries none.
const (
	defaultArtist = "Unknown Artist"
	defaultTitle  = "Unknown Title"
)

// Normalized returns a copy with empty fields replaced by fallbacks:
// the title falls back to the source filename stem, the artist to a
// fixed placeholder.
func (m Metadata) Normalized() Metadata {
	out := m
	if out.Title == "" {
		if stem := filenameStem(out.SourceFilename); stem != "" {
			out.Title = stem
		} else {
			out.Title = defaultTitle
		}
	}
	if out.Artist == "" {
		out.Artist = defaultArtist
	}
	return out
}

func filenameStem(name string) string {
	base := filepath.Base(name)
	if base == "." || base == string(filepath.Separator) {
		return ""
	}
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// AudioAnalysis is the read-only record produced by the external beat
// analysis service: a tempo estimate plus the detected beat timestamps.
type AudioAnalysis struct {
	TempoBPM        float64   `json:"tempo_bpm"`
	BeatTimes       []float64 `json:"beat_times"`
	DurationSeconds float64   `json:"duration_seconds"`
	Confidence      float64   `json:"confidence"`
	Meta            Metadata  `json:"metadata"`
}

// Validate rejects malformed analyses before any sequencing happens.
// An empty beat list is valid and yields an empty chart downstream.
func (a *AudioAnalysis) Validate() error {
	if a == nil {
		return fmt.Errorf("%w: nil analysis", ErrInvalidInput)
	}
	if a.TempoBPM <= 0 {
		return fmt.Errorf("%w: tempo must be positive, got %g", ErrInvalidInput, a.TempoBPM)
	}
	for i := 1; i < len(a.BeatTimes); i++ {
		if a.BeatTimes[i] <= a.BeatTimes[i-1] {
			return fmt.Errorf("%w: beat times must be strictly increasing (index %d: %g after %g)",
				ErrInvalidInput, i, a.BeatTimes[i], a.BeatTimes[i-1])
		}
	}
	if a.Confidence < 0 || a.Confidence > 1 {
		return fmt.Errorf("%w: confidence must be in [0,1], got %g", ErrInvalidInput, a.Confidence)
	}
	return nil
}
