package notation

import (
	"fmt"

	"github.com/okian/stepforge/internal/domain/model"
	"github.com/okian/stepforge/internal/domain/quantize"
)

// legacyPlaceholder is rendered when a chart has no notes at all; the
// legacy format never fails on an empty chart.
const legacyPlaceholder = "0000\n,\n0000"

const radarPlaceholder = "0,0,0,0,0"

// LegacyEncoder renders one chart per file in the legacy
// single-difficulty format. Header numbers use three-decimal precision.
type LegacyEncoder struct{}

// NewLegacyEncoder creates a legacy format encoder.
func NewLegacyEncoder() *LegacyEncoder {
	return &LegacyEncoder{}
}

// Encode serializes a single chart, header plus one note block.
func (e *LegacyEncoder) Encode(chart *model.Chart) string {
	var b builder
	b.directives([]Directive{
		{"TITLE", chart.Meta.Title},
		{"SUBTITLE", ""},
		{"ARTIST", chart.Meta.Artist},
		{"TITLETRANSLIT", ""},
		{"SUBTITLETRANSLIT", ""},
		{"ARTISTTRANSLIT", ""},
		{"CREDIT", chart.Credit},
		{"BANNER", ""},
		{"BACKGROUND", ""},
		{"LYRICSPATH", ""},
		{"CDTITLE", ""},
		{"MUSIC", chart.Meta.SourceFilename},
		{"OFFSET", fmt.Sprintf("%.3f", chart.Timing.OffsetSeconds)},
		{"SAMPLESTART", "15.000"},
		{"SAMPLELENGTH", "15.000"},
		{"SELECTABLE", "YES"},
		{"BPMS", fmt.Sprintf("0.000=%.3f", chart.Timing.BPMAtZero)},
		{"STOPS", ""},
		{"BGCHANGES", ""},
		{"KEYSOUNDS", ""},
	})
	b.blank()

	b.raw("#NOTES:")
	b.raw("     " + chart.Profile.NotationTypeID + ":")
	b.raw("     " + chart.Credit + ":")
	b.raw("     " + string(chart.Profile.Tier) + ":")
	b.raw(fmt.Sprintf("     %d:", chart.Profile.FeetRating))
	b.raw("     " + radarPlaceholder + ":")
	b.raw(e.noteText(chart) + ";")
	b.blank()

	return b.String() + "\n"
}

// noteText renders the chart's notes under the sparse policy, or the
// placeholder measure when the chart is empty.
func (e *LegacyEncoder) noteText(chart *model.Chart) string {
	if len(chart.Notes) == 0 {
		return legacyPlaceholder
	}
	return measuresText(quantize.Sparse(chart.Notes, chart.Timing.BPMAtZero))
}

// WriteFile composes the whole document in memory and writes it with a
// single write, creating parent directories as needed.
func (e *LegacyEncoder) WriteFile(chart *model.Chart, path string) error {
	return writeArtifact(path, e.Encode(chart))
}
