package notation

import (
	"fmt"
	"strings"

	"github.com/okian/stepforge/internal/domain/model"
	"github.com/okian/stepforge/internal/domain/profile"
	"github.com/okian/stepforge/internal/domain/quantize"
)

// Format version emitted in the modern header.
const modernVersion = "0.83"

// ModernEncoder renders an ordered list of charts, one per difficulty,
// into a single multi-difficulty document. The charts share one global
// header taken from the first chart; header numbers use six-decimal
// precision.
type ModernEncoder struct{}

// NewModernEncoder creates a modern format encoder.
func NewModernEncoder() *ModernEncoder {
	return &ModernEncoder{}
}

// Encode serializes the chart set. It fails with ErrEmptyChartSet when
// no charts are given; a chart with no notes renders as a single empty
// measure rather than failing.
func (e *ModernEncoder) Encode(charts []*model.Chart) (string, error) {
	if len(charts) == 0 {
		return "", ErrEmptyChartSet
	}

	first := charts[0]
	var b builder
	b.directives([]Directive{
		{"VERSION", modernVersion},
		{"TITLE", first.Meta.Title},
		{"SUBTITLE", ""},
		{"ARTIST", first.Meta.Artist},
		{"TITLETRANSLIT", ""},
		{"SUBTITLETRANSLIT", ""},
		{"ARTISTTRANSLIT", ""},
		{"GENRE", ""},
		{"ORIGIN", ""},
		{"CREDIT", first.Credit},
		{"BANNER", "banner.png"},
		{"BACKGROUND", ""},
		{"PREVIEWVID", ""},
		{"JACKET", ""},
		{"CDIMAGE", ""},
		{"DISCIMAGE", ""},
		{"LYRICSPATH", ""},
		{"CDTITLE", ""},
		{"MUSIC", first.Meta.SourceFilename},
		{"OFFSET", fmt.Sprintf("%.6f", first.Timing.OffsetSeconds)},
		{"SAMPLESTART", "15.000000"},
		{"SAMPLELENGTH", "15.000000"},
		{"SELECTABLE", "YES"},
		{"BPMS", fmt.Sprintf("0.000=%.6f", first.Timing.BPMAtZero)},
		{"STOPS", ""},
		{"DELAYS", ""},
		{"WARPS", ""},
		{"TIMESIGNATURES", "0.000=4=4"},
		{"TICKCOUNTS", "0.000=4"},
		{"COMBOS", "0.000=1"},
		{"SPEEDS", "0.000=1.000=0.000=0"},
		{"SCROLLS", "0.000=1.000"},
		{"FAKES", ""},
		{"LABELS", "0.000=Song Start"},
		{"BGCHANGES", ""},
		{"KEYSOUNDS", ""},
		{"ATTACKS", ""},
	})
	b.blank()

	for _, chart := range charts {
		e.noteSection(&b, chart)
	}
	return b.String(), nil
}

// noteSection appends one per-difficulty note data section.
func (e *ModernEncoder) noteSection(b *builder, chart *model.Chart) {
	tier := chart.Profile.Tier
	b.raw(fmt.Sprintf("//---------------%s-----------------", tier))
	b.directive("NOTEDATA", "")
	b.directive("CHARTNAME", "")
	b.directive("STEPSTYPE", chart.Profile.NotationTypeID)
	b.directive("DESCRIPTION", capitalize(string(tier)))
	b.directive("CHARTSTYLE", "")
	b.directive("DIFFICULTY", profile.DisplayName(tier))
	b.directive("METER", fmt.Sprintf("%d", chart.Profile.FeetRating))
	b.directive("RADARVALUES", radarPlaceholder)
	b.directive("CREDIT", chart.Credit)
	b.raw("#NOTES:")
	b.raw(measuresText(quantize.Dense(chart.Notes, chart.Timing.BPMAtZero)) + ";")
	b.blank()
}

// WriteFile composes the whole document in memory and writes it with a
// single write, creating parent directories as needed.
func (e *ModernEncoder) WriteFile(charts []*model.Chart, path string) error {
	content, err := e.Encode(charts)
	if err != nil {
		return err
	}
	return writeArtifact(path, content)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
