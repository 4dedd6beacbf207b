package fs

import (
	"io"
	"os"
	"path/filepath"

	"go.trai.ch/vpm/internal/core/domain"
	"go.trai.ch/zerr"
)

// CopyDir copies every file below src into dst, creating directories as needed.
// File modes are preserved; existing files in dst are overwritten.
func (w *Walker) CopyDir(src, dst string, ignores []string) error {
	if err := os.MkdirAll(dst, domain.DirPerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrInstallFailed.Error()), "path", dst)
	}

	for path := range w.WalkFiles(src, ignores) {
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return zerr.Wrap(err, domain.ErrInstallFailed.Error())
		}
		if err := copyFile(path, filepath.Join(dst, rel)); err != nil {
			return zerr.With(zerr.Wrap(err, domain.ErrInstallFailed.Error()), "file", rel)
		}
	}
	return nil
}

func copyFile(src, dst string) error {
	info, err := os.Stat(src)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(dst), domain.DirPerm); err != nil {
		return err
	}

	//nolint:gosec // Source paths come from walking a configured package folder
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer func() { _ = in.Close() }()

	//nolint:gosec // Destination is inside the project's Packages folder
	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}
