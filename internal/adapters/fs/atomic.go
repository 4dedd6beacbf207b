package fs

import (
	"os"
	"path/filepath"

	"go.trai.ch/vpm/internal/core/domain"
)

// WriteFileAtomic writes data to a file atomically by writing to a temp file and renaming it.
// pattern is the os.CreateTemp name pattern for the temp file.
func WriteFileAtomic(path string, data []byte, pattern string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
		return err
	}

	tmpFile, err := os.CreateTemp(dir, pattern)
	if err != nil {
		return err
	}
	tmpName := tmpFile.Name()

	// Clean up temp file on error
	defer func() {
		if _, statErr := os.Stat(tmpName); statErr == nil {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmpFile.Write(data); err != nil {
		_ = tmpFile.Close()
		return err
	}

	if err := tmpFile.Close(); err != nil {
		return err
	}

	if err := os.Chmod(tmpName, domain.FilePerm); err != nil {
		return err
	}

	return os.Rename(tmpName, path)
}
