package files

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/samber/lo"

	apperrors "vocal-separator/internal/app/errors"
)

// EnsureDir creates dir and its parents if they do not exist.
func EnsureDir(dir string) error {
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return apperrors.Wrapf(err, "failed to create directory %s", dir)
	}
	return nil
}

// Exists reports whether path names an existing regular file.
func Exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// FindStemFile returns the first path whose base name contains stem,
// compared case-insensitively. audio-separator names its outputs
// <input>_(<Stem>)_<model>.<ext>, so "vocals" matches the vocal track.
func FindStemFile(paths []string, stem string) (string, error) {
	needle := strings.ToLower(stem)
	found, ok := lo.Find(paths, func(p string) bool {
		return strings.Contains(strings.ToLower(filepath.Base(p)), needle)
	})
	if !ok {
		return "", apperrors.Detail(apperrors.ErrStemNotFound, "%s", stem)
	}
	return found, nil
}

// CopyFile copies src to dst, replacing dst.
func CopyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return apperrors.Wrap(err, apperrors.ErrFileReadFailed.Error())
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return apperrors.Wrap(err, apperrors.ErrFileWriteFailed.Error())
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return apperrors.Wrap(err, apperrors.ErrFileWriteFailed.Error())
	}
	return out.Close()
}
