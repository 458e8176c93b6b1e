// Package builder provides the chart building service that assembles
// metadata, timing, and sequenced notes into per-difficulty charts.
package builder

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/okian/stepforge/internal/domain/model"
	"github.com/okian/stepforge/internal/domain/profile"
	"github.com/okian/stepforge/internal/domain/sequencer"
	"github.com/okian/stepforge/pkg/logger"
	"github.com/okian/stepforge/pkg/metrics"
)

// defaultCredit is stamped into chart metadata and emitted by both
// notation formats.
const defaultCredit = "StepForge"

// Builder builds charts from audio analyses. Each difficulty run owns
// its own sequencer (random stream and direction state), so BuildAll
// can generate tiers concurrently. All tiers of one run share the same
// seed value; their outputs are reproducible but correlated.
type Builder struct {
	seed           int64
	tiers          []profile.Tier
	credit         string
	titleOverride  string
	artistOverride string
	concurrency    int
	logger         logger.Logger
}

// Option applies a configuration option to the Builder.
type Option func(*Builder)

// WithSeed sets the shared per-run sequencing seed.
func WithSeed(seed int64) Option {
	return func(b *Builder) {
		b.seed = seed
	}
}

// WithTiers restricts which difficulty tiers BuildAll generates.
func WithTiers(tiers []profile.Tier) Option {
	return func(b *Builder) {
		if len(tiers) > 0 {
			b.tiers = tiers
		}
	}
}

// WithCredit sets the credit string carried into chart metadata.
func WithCredit(credit string) Option {
	return func(b *Builder) {
		if credit != "" {
			b.credit = credit
		}
	}
}

// WithTitleOverride replaces the analysis title on built charts.
func WithTitleOverride(title string) Option {
	return func(b *Builder) {
		b.titleOverride = title
	}
}

// WithArtistOverride replaces the analysis artist on built charts.
func WithArtistOverride(artist string) Option {
	return func(b *Builder) {
		b.artistOverride = artist
	}
}

// WithConcurrency caps how many tiers BuildAll sequences at once.
// Zero or a negative value leaves tier generation unbounded.
func WithConcurrency(n int) Option {
	return func(b *Builder) {
		b.concurrency = n
	}
}

// WithLogger sets a custom logger for the builder.
func WithLogger(l logger.Logger) Option {
	return func(b *Builder) {
		if l != nil {
			b.logger = l
		}
	}
}

// New constructs a Builder with default configuration.
func New(opts ...Option) *Builder {
	b := &Builder{
		seed:   sequencer.DefaultSeed,
		tiers:  profile.Tiers[:],
		credit: defaultCredit,
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.logger == nil {
		b.logger = logger.Get()
	}
	return b
}

// Build generates the chart for a single tier. The analysis is
// validated before any sequencing; past validation the build cannot
// fail.
func (b *Builder) Build(ctx context.Context, analysis *model.AudioAnalysis, tier profile.Tier) (*model.Chart, error) {
	if err := analysis.Validate(); err != nil {
		return nil, err
	}
	return b.build(ctx, analysis, tier, uuid.NewString()), nil
}

// BuildAll generates charts for every configured tier, concurrently,
// preserving tier order in the result. All charts of one call share a
// generation run ID.
func (b *Builder) BuildAll(ctx context.Context, analysis *model.AudioAnalysis) ([]*model.Chart, error) {
	if err := analysis.Validate(); err != nil {
		return nil, err
	}

	runID := uuid.NewString()
	charts := make([]*model.Chart, len(b.tiers))

	var sem chan struct{}
	if b.concurrency > 0 {
		sem = make(chan struct{}, b.concurrency)
	}

	var wg sync.WaitGroup
	for i, tier := range b.tiers {
		wg.Add(1)
		go func(i int, tier profile.Tier) {
			defer wg.Done()
			if sem != nil {
				sem <- struct{}{}
				defer func() { <-sem }()
			}
			charts[i] = b.build(ctx, analysis, tier, runID)
		}(i, tier)
	}
	wg.Wait()

	return charts, nil
}

// build runs one validated difficulty generation.
func (b *Builder) build(ctx context.Context, analysis *model.AudioAnalysis, tier profile.Tier, runID string) *model.Chart {
	start := time.Now()
	prof := profile.For(tier)

	seq := sequencer.New(prof, sequencer.WithSeed(b.seed))
	notes := seq.Sequence(analysis.BeatTimes, analysis.TempoBPM)

	meta := analysis.Meta.Normalized()
	if b.titleOverride != "" {
		meta.Title = b.titleOverride
	}
	if b.artistOverride != "" {
		meta.Artist = b.artistOverride
	}

	density := 0.0
	if len(analysis.BeatTimes) > 0 {
		density = float64(len(notes)) / float64(len(analysis.BeatTimes))
	}

	chart := &model.Chart{
		RunID: runID,
		Meta:  meta,
		Timing: model.Timing{
			BPMAtZero:     analysis.TempoBPM,
			OffsetSeconds: 0,
		},
		Profile: prof,
		Credit:  b.credit,
		Notes:   notes,
		Derived: model.Derived{
			BeatCount:   len(analysis.BeatTimes),
			StepCount:   len(notes),
			StepDensity: density,
		},
	}

	elapsed := time.Since(start)
	metrics.RecordChartGenerated(string(prof.Tier))
	metrics.ObserveSequenceDuration(elapsed.Seconds())
	for _, n := range notes {
		metrics.RecordStepEvent(string(prof.Tier), n.Kind.String())
	}

	b.logger.Info(ctx, "chart generated",
		logger.String("run_id", runID),
		logger.String("tier", string(prof.Tier)),
		logger.Int("beats", len(analysis.BeatTimes)),
		logger.Int("steps", len(notes)),
		logger.Float64("density", density),
		logger.Duration("elapsed", elapsed),
	)
	return chart
}
