// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package transform

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"syscall"
)

// sameFile reports whether a and b name the same existing file.
func sameFile(a, b string) bool {
	ai, err := os.Stat(a)
	if err != nil {
		return false
	}
	bi, err := os.Stat(b)
	if err != nil {
		return false
	}
	return os.SameFile(ai, bi)
}

// copyFile copies src to dst through a temporary file in dst's directory and
// renames it into place, so dst is either the old file or a complete copy.
// The source mode bits are kept.
func copyFile(src, dst string) (err error) {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("%w: opening %s: %w", ErrFilesystem, src, err)
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return fmt.Errorf("%w: stat %s: %w", ErrFilesystem, src, err)
	}
	if info.IsDir() {
		return fmt.Errorf("%w: %s is a directory", ErrFilesystem, src)
	}

	tmp, err := os.CreateTemp(filepath.Dir(dst), "."+filepath.Base(dst)+".*.part")
	if err != nil {
		return fmt.Errorf("%w: creating temporary file for %s: %w", ErrFilesystem, dst, err)
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	if _, err = io.Copy(tmp, in); err != nil {
		return fmt.Errorf("%w: copying %s to %s: %w", ErrFilesystem, src, dst, err)
	}
	if err = tmp.Chmod(info.Mode().Perm()); err != nil {
		return fmt.Errorf("%w: setting mode on %s: %w", ErrFilesystem, dst, err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("%w: writing %s: %w", ErrFilesystem, dst, err)
	}
	if err = os.Rename(tmp.Name(), dst); err != nil {
		return fmt.Errorf("%w: renaming into %s: %w", ErrFilesystem, dst, err)
	}
	return nil
}

// resolveDest follows dst when it is an existing symlink, so a copy updates
// the file the link points to instead of replacing the link. Anything else,
// including a dangling link, is returned unchanged.
func resolveDest(dst string) string {
	info, err := os.Lstat(dst)
	if err != nil || info.Mode()&os.ModeSymlink == 0 {
		return dst
	}
	target, err := filepath.EvalSymlinks(dst)
	if err != nil {
		return dst
	}
	return target
}

// moveFile renames src to dst, falling back to copy and remove when the two
// are on different filesystems. The source is only removed after the copy
// is complete.
func moveFile(src, dst string) error {
	err := os.Rename(src, dst)
	if err == nil {
		return nil
	}
	if !errors.Is(err, syscall.EXDEV) {
		return fmt.Errorf("%w: moving %s to %s: %w", ErrFilesystem, src, dst, err)
	}

	if err := copyFile(src, dst); err != nil {
		return err
	}
	return removeSource(src)
}

func removeSource(src string) error {
	if err := os.Remove(src); err != nil {
		return fmt.Errorf("%w: removing source %s: %w", ErrFilesystem, src, err)
	}
	return nil
}
