package builder_test

import (
	"context"
	"errors"
	"testing"

	builder "github.com/okian/stepforge/internal/app"
	"github.com/okian/stepforge/internal/domain/model"
	"github.com/okian/stepforge/internal/domain/profile"
	"github.com/okian/stepforge/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMain(m *testing.M) {
	_ = logger.Init()
	m.Run()
}

func analysisFixture() *model.AudioAnalysis {
	beats := make([]float64, 120)
	for i := range beats {
		beats[i] = float64(i) * 0.5
	}
	return &model.AudioAnalysis{
		TempoBPM:        120,
		BeatTimes:       beats,
		DurationSeconds: 60,
		Confidence:      0.92,
		Meta: model.Metadata{
			Title:          "Fixture",
			Artist:         "Nobody",
			SourceFilename: "fixture.mp3",
		},
	}
}

func TestBuild(t *testing.T) {
	Convey("Given a builder and a valid analysis", t, func() {
		b := builder.New(builder.WithSeed(42))
		ctx := context.Background()

		Convey("When building one tier", func() {
			chart, err := b.Build(ctx, analysisFixture(), profile.Hard)
			So(err, ShouldBeNil)

			Convey("Then the chart carries profile, timing, and stats", func() {
				So(chart.Profile.Tier, ShouldEqual, profile.Hard)
				So(chart.Timing.BPMAtZero, ShouldEqual, 120.0)
				So(chart.Timing.OffsetSeconds, ShouldEqual, 0.0)
				So(chart.Derived.BeatCount, ShouldEqual, 120)
				So(chart.Derived.StepCount, ShouldEqual, len(chart.Notes))
				So(chart.Derived.StepDensity, ShouldAlmostEqual,
					float64(len(chart.Notes))/120.0, 1e-12)
				So(chart.RunID, ShouldNotBeEmpty)
			})
		})

		Convey("When the analysis is malformed", func() {
			bad := analysisFixture()
			bad.TempoBPM = -1
			_, err := b.Build(ctx, bad, profile.Easy)

			Convey("Then it is rejected before sequencing", func() {
				So(errors.Is(err, model.ErrInvalidInput), ShouldBeTrue)
			})
		})
	})
}

func TestBuildAll(t *testing.T) {
	Convey("Given a builder over all tiers", t, func() {
		b := builder.New(builder.WithSeed(42))
		ctx := context.Background()

		Convey("When building all difficulties", func() {
			charts, err := b.BuildAll(ctx, analysisFixture())
			So(err, ShouldBeNil)

			Convey("Then one chart per tier comes back in order", func() {
				So(len(charts), ShouldEqual, 4)
				for i, tier := range profile.Tiers {
					So(charts[i].Profile.Tier, ShouldEqual, tier)
				}
			})

			Convey("Then all charts share one run ID", func() {
				for _, c := range charts[1:] {
					So(c.RunID, ShouldEqual, charts[0].RunID)
				}
			})

			Convey("Then harder tiers keep more steps", func() {
				So(charts[3].Derived.StepCount, ShouldBeGreaterThan, charts[0].Derived.StepCount)
			})

			Convey("And a second run reproduces the same charts", func() {
				again, err := builder.New(builder.WithSeed(42)).BuildAll(ctx, analysisFixture())
				So(err, ShouldBeNil)
				for i := range charts {
					So(len(again[i].Notes), ShouldEqual, len(charts[i].Notes))
					for j := range charts[i].Notes {
						So(again[i].Notes[j].TimeSeconds, ShouldEqual, charts[i].Notes[j].TimeSeconds)
						So(again[i].Notes[j].Pattern, ShouldResemble, charts[i].Notes[j].Pattern)
					}
				}
			})
		})

		Convey("When tier generation is capped to one at a time", func() {
			capped := builder.New(builder.WithSeed(42), builder.WithConcurrency(1))
			charts, err := capped.BuildAll(ctx, analysisFixture())
			So(err, ShouldBeNil)

			Convey("Then the result matches an unbounded run exactly", func() {
				unbounded, err := builder.New(builder.WithSeed(42)).BuildAll(ctx, analysisFixture())
				So(err, ShouldBeNil)
				So(len(charts), ShouldEqual, len(unbounded))
				for i := range charts {
					So(charts[i].Profile.Tier, ShouldEqual, unbounded[i].Profile.Tier)
					So(len(charts[i].Notes), ShouldEqual, len(unbounded[i].Notes))
					for j := range charts[i].Notes {
						So(charts[i].Notes[j].TimeSeconds, ShouldEqual, unbounded[i].Notes[j].TimeSeconds)
						So(charts[i].Notes[j].Pattern, ShouldResemble, unbounded[i].Notes[j].Pattern)
					}
				}
			})
		})

		Convey("When tiers are restricted", func() {
			b := builder.New(builder.WithTiers([]profile.Tier{profile.Medium}))
			charts, err := b.BuildAll(ctx, analysisFixture())
			So(err, ShouldBeNil)
			So(len(charts), ShouldEqual, 1)
			So(charts[0].Profile.Tier, ShouldEqual, profile.Medium)
		})

		Convey("When metadata overrides are set", func() {
			b := builder.New(
				builder.WithTitleOverride("Override"),
				builder.WithArtistOverride("Someone"),
				builder.WithCredit("TestCredit"),
			)
			charts, err := b.BuildAll(ctx, analysisFixture())
			So(err, ShouldBeNil)
			So(charts[0].Meta.Title, ShouldEqual, "Override")
			So(charts[0].Meta.Artist, ShouldEqual, "Someone")
			So(charts[0].Credit, ShouldEqual, "TestCredit")
		})

		Convey("When the analysis has no beats", func() {
			empty := &model.AudioAnalysis{TempoBPM: 100}
			charts, err := b.BuildAll(ctx, empty)

			Convey("Then empty charts come back without error", func() {
				So(err, ShouldBeNil)
				So(len(charts), ShouldEqual, 4)
				for _, c := range charts {
					So(c.Notes, ShouldBeEmpty)
					So(c.Derived.StepDensity, ShouldEqual, 0.0)
				}
			})
		})
	})
}
