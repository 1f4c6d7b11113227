package file

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"

	"harvester/internal/domain/consts"
	"harvester/internal/utils/logging"
)

// WriteLinesAtomic replaces path with lines, one per line.
//
// Data goes to a temp file in the same directory, is synced, then renamed over
// the target. A crash leaves either the old or the new file, never a mix.
func WriteLinesAtomic(path string, lines []string, perm os.FileMode) (err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, consts.PermsGenericDir); err != nil {
		return fmt.Errorf("failed to create directory %q: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, consts.TempTag+filepath.Base(path)+"_*")
	if err != nil {
		return fmt.Errorf("failed to create temp file in %q: %w", dir, err)
	}
	tmpPath := tmp.Name()

	defer func() {
		if err != nil {
			_ = tmp.Close()
			if rmErr := os.Remove(tmpPath); rmErr != nil && !os.IsNotExist(rmErr) {
				logging.E("Failed to remove temp file %q: %v", tmpPath, rmErr)
			}
		}
	}()

	w := bufio.NewWriter(tmp)
	for _, line := range lines {
		if _, err := w.WriteString(line + "\n"); err != nil {
			return fmt.Errorf("failed to write %q: %w", tmpPath, err)
		}
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("failed to flush %q: %w", tmpPath, err)
	}
	if err := tmp.Chmod(perm); err != nil {
		return fmt.Errorf("failed to set permissions on %q: %w", tmpPath, err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("failed to sync %q: %w", tmpPath, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close %q: %w", tmpPath, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to move %q to %q: %w", tmpPath, path, err)
	}

	syncDir(dir)
	return nil
}

// AppendText appends text to path, creating it if needed.
func AppendText(path, text string) error {
	if err := os.MkdirAll(filepath.Dir(path), consts.PermsGenericDir); err != nil {
		return fmt.Errorf("failed to create directory for %q: %w", path, err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, consts.PermsLogFile)
	if err != nil {
		return fmt.Errorf("failed to open %q: %w", path, err)
	}
	if _, err := f.WriteString(text); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to append to %q: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close %q: %w", path, err)
	}
	return nil
}

// syncDir flushes a directory entry after a rename. Not supported everywhere.
func syncDir(dir string) {
	d, err := os.Open(dir)
	if err != nil {
		return
	}
	if err := d.Sync(); err != nil {
		logging.D(3, "Directory sync of %q not supported: %v", dir, err)
	}
	_ = d.Close()
}
