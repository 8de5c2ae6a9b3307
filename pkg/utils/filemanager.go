// =============================================================================
// Gift Aid Schedule Builder - File Utilities
// =============================================================================
//
// Shared file helpers used when assembling a run's output directory: copying
// the schedule template and the verbatim input copies, and simple existence
// checks for the pre-flight validation of configured paths.
//
// =============================================================================

package utils

import (
	"fmt"
	"io"
	"os"
)

// CopyFile copies a file from src to dst, creating or truncating dst. The
// destination is synced before returning so a crash right after a run
// completes cannot leave a half-written audit copy behind.
func CopyFile(src, dst string) error {
	sourceFile, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", src, err)
	}
	defer sourceFile.Close()

	destFile, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", dst, err)
	}
	defer destFile.Close()

	if _, err := io.Copy(destFile, sourceFile); err != nil {
		return fmt.Errorf("failed to copy %s to %s: %w", src, dst, err)
	}
	return destFile.Sync()
}

// FileExists checks if a file exists.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}
