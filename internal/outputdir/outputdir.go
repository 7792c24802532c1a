// Package outputdir implements the output-directory cleanup phase:
// best-effort removal with a busy-retry fallback for mounted volumes.
package outputdir

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"syscall"
)

// Clean best-effort-removes dir. If removal fails because the directory
// itself is busy (typical of a mounted volume), it falls back to
// removing the directory's immediate children instead. Any other error
// fails the run.
func Clean(dir string) error {
	if dir == "" {
		return nil
	}
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return nil
	}

	err := os.RemoveAll(dir)
	if err == nil {
		return nil
	}
	if !isBusy(err) {
		return fmt.Errorf("outputdir: remove %s: %w", dir, err)
	}

	entries, readErr := os.ReadDir(dir)
	if readErr != nil {
		return fmt.Errorf("outputdir: list children of busy dir %s: %w", dir, readErr)
	}
	for _, e := range entries {
		if rmErr := os.RemoveAll(filepath.Join(dir, e.Name())); rmErr != nil {
			return fmt.Errorf("outputdir: remove child %s: %w", e.Name(), rmErr)
		}
	}
	return nil
}

// CleanAll removes outputDirs for every project the caller did not
// filter out, stopping at the first hard failure.
func CleanAll(outputDirs []string) error {
	for _, dir := range outputDirs {
		if err := Clean(dir); err != nil {
			return err
		}
	}
	return nil
}

// isBusy reports whether err looks like "device or resource busy", the
// condition a removal of a mounted-over directory typically surfaces.
func isBusy(err error) bool {
	return errors.Is(err, syscall.EBUSY)
}
