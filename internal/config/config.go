// Package config defines process configuration structures and loading hooks.
//
// Conventions:
// - Provide New() initializer to build a Config with defaults.
// - Load(ctx) layers defaults, an optional YAML file, and env vars.
// - External errors are wrapped via this package's sentinel kinds.
package config

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// AnalysisPath points at the audio analysis JSON record produced by
	// the external beat analysis service.
	AnalysisPath string `koanf:"analysis_path"`

	// OutputDir receives the written chart files.
	OutputDir string `koanf:"output_dir"`

	// Formats selects the notation formats to emit: "sm", "ssc".
	Formats []string `koanf:"formats"`

	// Tiers selects the difficulty tiers to generate.
	Tiers []string `koanf:"tiers"`

	// Seed is the shared sequencing seed for a generation run. Every
	// tier is seeded with this same value.
	Seed int64 `koanf:"seed"`

	// TitleOverride and ArtistOverride replace analysis metadata when set.
	TitleOverride  string `koanf:"title_override"`
	ArtistOverride string `koanf:"artist_override"`

	// Credit is stamped into generated charts.
	Credit string `koanf:"credit"`

	// Concurrency caps how many difficulty tiers are sequenced at once.
	// Zero leaves tier generation unbounded.
	Concurrency int `koanf:"concurrency"`

	// MetricsAddr exposes Prometheus metrics while generating when
	// non-empty, e.g. ":9090". Empty disables the listener.
	MetricsAddr string `koanf:"metrics_addr"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:    "info",
		OutputDir:   "output",
		Formats:     []string{"ssc"},
		Tiers:       []string{"easy", "medium", "hard", "expert"},
		Seed:        42,
		Credit:      "StepForge",
		Concurrency: 0,
		MetricsAddr: "",
	}
}
