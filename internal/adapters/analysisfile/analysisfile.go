// Package analysisfile reads audio analysis records from disk.
//
// The external beat analysis service writes its result as a JSON
// document; this adapter is the only place that format is parsed.
package analysisfile

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/okian/stepforge/internal/domain/model"
)

// Load reads and validates an AudioAnalysis record from a JSON file.
func Load(ctx context.Context, path string) (*model.AudioAnalysis, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("load analysis: %w", ctx.Err())
	default:
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %w", ErrReadAnalysis, path, err)
	}

	var analysis model.AudioAnalysis
	if err := json.Unmarshal(raw, &analysis); err != nil {
		return nil, fmt.Errorf("%w %q: %w", ErrDecodeAnalysis, path, err)
	}

	if err := analysis.Validate(); err != nil {
		return nil, err
	}
	return &analysis, nil
}
