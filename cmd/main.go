package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/okian/stepforge/internal/adapters/analysisfile"
	builder "github.com/okian/stepforge/internal/app"
	"github.com/okian/stepforge/internal/config"
	"github.com/okian/stepforge/internal/domain/model"
	"github.com/okian/stepforge/internal/domain/profile"
	"github.com/okian/stepforge/internal/notation"
	"github.com/okian/stepforge/pkg/logger"
	"github.com/okian/stepforge/pkg/metrics"
)

// Metrics server timeout constants.
const (
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 5 * time.Second
)

func main() {
	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return
	}
	defer func() {
		_ = logger.Sync()
	}()

	log := logger.Get()

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		os.Exit(1)
	}

	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	// Optional metrics exposure while the run is in progress.
	var metricsSrv *http.Server
	if cfg.MetricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", metrics.Handler())
		metricsSrv = &http.Server{
			Addr:              cfg.MetricsAddr,
			Handler:           mux,
			ReadHeaderTimeout: readHeaderTimeout,
		}
		go func() {
			log.Info(ctx, "serving metrics", logger.String("addr", cfg.MetricsAddr))
			if err := metricsSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Error(ctx, "metrics server failed", logger.Error(err))
			}
		}()
	}

	exitCode := run(ctx, cfg, log)

	if metricsSrv != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = metricsSrv.Shutdown(shutdownCtx)
	}

	os.Exit(exitCode)
}

// run executes one generation: load the analysis, build charts for the
// configured tiers, write the configured formats.
func run(ctx context.Context, cfg *config.Config, log logger.Logger) int {
	analysisPath := cfg.AnalysisPath
	if len(os.Args) > 1 {
		analysisPath = os.Args[1]
	}
	if analysisPath == "" {
		log.Error(ctx, "no analysis file given; pass a path argument or set STEPFORGE_ANALYSIS_PATH")
		return 1
	}

	analysis, err := analysisfile.Load(ctx, analysisPath)
	if err != nil {
		log.Error(ctx, "failed to load analysis", logger.String("path", analysisPath), logger.Error(err))
		return 1
	}
	log.Info(ctx, "analysis loaded",
		logger.String("title", analysis.Meta.Title),
		logger.Float64("bpm", analysis.TempoBPM),
		logger.Int("beats", len(analysis.BeatTimes)),
		logger.Float64("confidence", analysis.Confidence),
	)

	tiers := make([]profile.Tier, 0, len(cfg.Tiers))
	for _, t := range cfg.Tiers {
		tiers = append(tiers, profile.Tier(t))
	}

	b := builder.New(
		builder.WithLogger(log),
		builder.WithSeed(cfg.Seed),
		builder.WithTiers(tiers),
		builder.WithCredit(cfg.Credit),
		builder.WithTitleOverride(cfg.TitleOverride),
		builder.WithArtistOverride(cfg.ArtistOverride),
		builder.WithConcurrency(cfg.Concurrency),
	)

	charts, err := b.BuildAll(ctx, analysis)
	if err != nil {
		log.Error(ctx, "chart generation failed", logger.Error(err))
		return 1
	}

	stem := outputStem(analysis)
	for _, format := range cfg.Formats {
		if err := writeFormat(ctx, cfg.OutputDir, stem, format, charts, log); err != nil {
			return 1
		}
	}
	return 0
}

// writeFormat writes all charts in one notation format.
func writeFormat(ctx context.Context, outputDir, stem, format string, charts []*model.Chart, log logger.Logger) error {
	start := time.Now()
	var err error

	switch format {
	case "ssc":
		path := filepath.Join(outputDir, stem+".ssc")
		err = notation.NewModernEncoder().WriteFile(charts, path)
		if err == nil {
			log.Info(ctx, "chart file written", logger.String("path", path))
		}
	case "sm":
		enc := notation.NewLegacyEncoder()
		for _, chart := range charts {
			path := filepath.Join(outputDir, stem+"-"+string(chart.Profile.Tier)+".sm")
			if err = enc.WriteFile(chart, path); err != nil {
				break
			}
			log.Info(ctx, "chart file written", logger.String("path", path))
		}
	}

	metrics.ObserveEncodeDuration(format, time.Since(start).Seconds())
	if err != nil {
		metrics.RecordEncodeError(format)
		log.Error(ctx, "failed to write chart file", logger.String("format", format), logger.Error(err))
	}
	return err
}

// outputStem derives the output file name from the source audio name,
// falling back to the chart title.
func outputStem(analysis *model.AudioAnalysis) string {
	name := analysis.Meta.SourceFilename
	if name == "" {
		name = analysis.Meta.Normalized().Title
	}
	base := filepath.Base(name)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	if stem == "" || stem == "." {
		return "chart"
	}
	return stem
}
