// Package fileutil holds small filesystem helpers shared by the report
// writers.
package fileutil

import (
	"fmt"
	"os"
	"path/filepath"
)

// WriteFileAtomic replaces filename with data in a single step: the bytes
// are staged in a temp file beside the target and swapped in with a
// rename, so a concurrent reader sees the old contents or the new, never
// a torn write.
func WriteFileAtomic(filename string, data []byte, perm os.FileMode) error {
	tmpPath, err := stageTemp(filename, data)
	if err != nil {
		return err
	}

	if err := os.Chmod(tmpPath, perm); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("chmod %s: %w", tmpPath, err)
	}
	if err := os.Rename(tmpPath, filename); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("rename %s: %w", tmpPath, err)
	}
	return nil
}

// stageTemp writes data to an fsynced temp file in filename's directory.
// The temp file has to share the target's filesystem or the final rename
// stops being atomic.
func stageTemp(filename string, data []byte) (string, error) {
	f, err := os.CreateTemp(filepath.Dir(filename), filepath.Base(filename)+".tmp.*")
	if err != nil {
		return "", fmt.Errorf("create temp for %s: %w", filename, err)
	}

	discard := func(cause string, err error) (string, error) {
		f.Close()
		os.Remove(f.Name())
		return "", fmt.Errorf("%s %s: %w", cause, f.Name(), err)
	}
	if _, err := f.Write(data); err != nil {
		return discard("write", err)
	}
	if err := f.Sync(); err != nil {
		return discard("sync", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("close %s: %w", f.Name(), err)
	}
	return f.Name(), nil
}
