package notation

import (
	"fmt"
	"os"
	"path/filepath"
)

// File permission constants for written artifacts.
const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// writeArtifact writes fully composed content to path in one write,
// creating missing parent directories first. There are no partial
// writes: content is always composed in memory before this call.
func writeArtifact(path, content string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, dirPerm); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(content), filePerm); err != nil {
		return fmt.Errorf("write chart file: %w", err)
	}
	return nil
}
