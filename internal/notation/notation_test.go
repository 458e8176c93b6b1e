package notation_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/okian/stepforge/internal/domain/model"
	"github.com/okian/stepforge/internal/domain/profile"
	"github.com/okian/stepforge/internal/notation"
	. "github.com/smartystreets/goconvey/convey"
)

func chartFor(tier profile.Tier, notes []model.StepEvent) *model.Chart {
	return &model.Chart{
		RunID: "test-run",
		Meta: model.Metadata{
			Title:          "Test Song",
			Artist:         "Test Artist",
			Genre:          "Techno",
			SourceFilename: "test.mp3",
		},
		Timing:  model.Timing{BPMAtZero: 120, OffsetSeconds: 0},
		Profile: profile.For(tier),
		Credit:  "StepForge",
		Notes:   notes,
	}
}

func tap(beat float64, dir model.Direction) model.StepEvent {
	return model.StepEvent{
		TimeSeconds: beat / 2.0,
		Kind:        model.Tap,
		Directions:  []model.Direction{dir},
		Pattern:     model.PatternFor(dir),
	}
}

func TestLegacyEncoder(t *testing.T) {
	Convey("Given a chart with a few taps", t, func() {
		chart := chartFor(profile.Easy, []model.StepEvent{
			tap(0, model.Left),
			tap(1, model.Down),
			tap(2, model.Up),
		})
		enc := notation.NewLegacyEncoder()

		Convey("When encoded", func() {
			out := enc.Encode(chart)

			Convey("Then header directives carry three-decimal numbers", func() {
				So(out, ShouldContainSubstring, "#TITLE:Test Song;")
				So(out, ShouldContainSubstring, "#ARTIST:Test Artist;")
				So(out, ShouldContainSubstring, "#MUSIC:test.mp3;")
				So(out, ShouldContainSubstring, "#OFFSET:0.000;")
				So(out, ShouldContainSubstring, "#BPMS:0.000=120.000;")
				So(out, ShouldContainSubstring, "#SAMPLESTART:15.000;")
			})

			Convey("Then the note block names the difficulty and rating", func() {
				So(out, ShouldContainSubstring, "#NOTES:")
				So(out, ShouldContainSubstring, "     dance-single:")
				So(out, ShouldContainSubstring, "     easy:")
				So(out, ShouldContainSubstring, "     2:")
				So(out, ShouldContainSubstring, "     0,0,0,0,0:")
			})

			Convey("Then the grid lines hold the tap columns", func() {
				So(out, ShouldContainSubstring, "1000\n0100\n0010\n0000;")
			})
		})

		Convey("When the chart has no notes", func() {
			out := enc.Encode(chartFor(profile.Easy, nil))

			Convey("Then a placeholder measure is rendered instead of failing", func() {
				So(out, ShouldContainSubstring, "0000\n,\n0000;")
			})
		})
	})
}

func TestModernEncoder(t *testing.T) {
	Convey("Given charts for several difficulties", t, func() {
		charts := []*model.Chart{
			chartFor(profile.Easy, []model.StepEvent{tap(0, model.Left)}),
			chartFor(profile.Expert, []model.StepEvent{tap(0, model.Right)}),
		}
		enc := notation.NewModernEncoder()

		Convey("When encoded", func() {
			out, err := enc.Encode(charts)
			So(err, ShouldBeNil)

			Convey("Then the global header uses six-decimal numbers", func() {
				So(out, ShouldStartWith, "#VERSION:0.83;")
				So(out, ShouldContainSubstring, "#OFFSET:0.000000;")
				So(out, ShouldContainSubstring, "#BPMS:0.000=120.000000;")
				// The genre directive is always empty for engine
				// compatibility, whatever the metadata says.
				So(out, ShouldContainSubstring, "#GENRE:;")
				So(out, ShouldNotContainSubstring, "Techno")
				So(out, ShouldContainSubstring, "#TIMESIGNATURES:0.000=4=4;")
				So(out, ShouldContainSubstring, "#TICKCOUNTS:0.000=4;")
				So(out, ShouldContainSubstring, "#COMBOS:0.000=1;")
				So(out, ShouldContainSubstring, "#SPEEDS:0.000=1.000=0.000=0;")
				So(out, ShouldContainSubstring, "#SCROLLS:0.000=1.000;")
			})

			Convey("Then one note section is emitted per difficulty", func() {
				So(out, ShouldContainSubstring, "//---------------easy-----------------")
				So(out, ShouldContainSubstring, "//---------------expert-----------------")
				So(strings.Count(out, "#NOTEDATA:;"), ShouldEqual, 2)
			})

			Convey("Then tiers map to their display names", func() {
				So(out, ShouldContainSubstring, "#DIFFICULTY:Easy;")
				So(out, ShouldContainSubstring, "#DIFFICULTY:Challenge;")
				So(out, ShouldContainSubstring, "#DESCRIPTION:Easy;")
				So(out, ShouldContainSubstring, "#DESCRIPTION:Expert;")
				So(out, ShouldContainSubstring, "#METER:2;")
				So(out, ShouldContainSubstring, "#METER:8;")
			})
		})

		Convey("When a chart has no notes", func() {
			out, err := enc.Encode([]*model.Chart{chartFor(profile.Medium, nil)})
			So(err, ShouldBeNil)

			Convey("Then one empty measure of four blank lines is emitted", func() {
				So(out, ShouldContainSubstring, "#NOTES:\n0000\n0000\n0000\n0000;")
			})
		})

		Convey("When no charts are given", func() {
			_, err := enc.Encode(nil)

			Convey("Then encoding fails with ErrEmptyChartSet", func() {
				So(err, ShouldNotBeNil)
				So(errors.Is(err, notation.ErrEmptyChartSet), ShouldBeTrue)
			})
		})
	})
}

func TestMeasureCountAsymmetry(t *testing.T) {
	Convey("Given a chart with notes only in measures 0 and 5", t, func() {
		notes := []model.StepEvent{
			tap(0, model.Left),
			tap(20, model.Up),
		}
		legacy := notation.NewLegacyEncoder().Encode(chartFor(profile.Easy, notes))
		modern, err := notation.NewModernEncoder().Encode([]*model.Chart{chartFor(profile.Easy, notes)})
		So(err, ShouldBeNil)

		Convey("Then the legacy body skips the empty measures", func() {
			legacyBody := legacy[strings.Index(legacy, "#NOTES:"):]
			So(strings.Count(legacyBody, ",\n"), ShouldEqual, 1)
		})

		Convey("Then the modern body emits all six measures", func() {
			modernBody := modern[strings.Index(modern, "#NOTES:"):]
			So(strings.Count(modernBody, ",\n"), ShouldEqual, 5)
		})
	})
}

func TestWriteFile(t *testing.T) {
	Convey("Given a destination in a directory that does not exist yet", t, func() {
		dir := t.TempDir()
		path := filepath.Join(dir, "songs", "test", "out.ssc")
		charts := []*model.Chart{chartFor(profile.Medium, []model.StepEvent{tap(0, model.Up)})}

		Convey("When the modern encoder writes the file", func() {
			err := notation.NewModernEncoder().WriteFile(charts, path)
			So(err, ShouldBeNil)

			Convey("Then parent directories are created and content matches Encode", func() {
				raw, readErr := os.ReadFile(path)
				So(readErr, ShouldBeNil)
				want, _ := notation.NewModernEncoder().Encode(charts)
				So(string(raw), ShouldEqual, want)
			})
		})

		Convey("When the legacy encoder writes the file", func() {
			smPath := filepath.Join(dir, "songs", "test", "out.sm")
			err := notation.NewLegacyEncoder().WriteFile(charts[0], smPath)
			So(err, ShouldBeNil)

			raw, readErr := os.ReadFile(smPath)
			So(readErr, ShouldBeNil)
			So(string(raw), ShouldEqual, notation.NewLegacyEncoder().Encode(charts[0]))
		})
	})
}
