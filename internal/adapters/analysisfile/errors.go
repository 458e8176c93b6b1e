package analysisfile

import "errors"

// Sentinel kinds for analysis loading errors.
var (
	ErrReadAnalysis   = errors.New("read analysis file")
	ErrDecodeAnalysis = errors.New("decode analysis file")
)
