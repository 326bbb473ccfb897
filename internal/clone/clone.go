// Package clone copies a builder's source tree into a new directory so it can
// be customized without touching the original.
package clone

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	ferrors "git.home.luguber.info/inful/kssbuilder/internal/foundation/errors"
)

var (
	// ErrDestinationExists is returned when the clone target is already present.
	ErrDestinationExists = errors.New("destination already exists")
	// ErrDestinationInsideSource is returned when the clone target lies within
	// the tree being copied.
	ErrDestinationInsideSource = errors.New("destination is inside the source directory")
)

// Filter reports whether the entry at rel (slash separated, relative to the
// source root) should be skipped. Skipping a directory skips its contents.
type Filter func(rel string, d fs.DirEntry) bool

// Options configures CopyDirectory.
type Options struct {
	// Exclude skips matching entries. nil copies everything.
	Exclude Filter
}

// HiddenOrDependency skips dot-files, dot-directories, and node_modules at any depth.
func HiddenOrDependency(rel string, _ fs.DirEntry) bool {
	for _, part := range strings.Split(rel, "/") {
		if strings.HasPrefix(part, ".") || part == "node_modules" {
			return true
		}
	}
	return false
}

// CopyDirectory copies src into dst, which must not exist yet. Nothing is
// written when dst is already present.
func CopyDirectory(ctx context.Context, src, dst string, opts Options) error {
	if _, err := os.Stat(dst); err == nil {
		return ferrors.AlreadyExistsError("this folder already exists").
			WithCause(ErrDestinationExists).
			WithContext("path", dst).
			Build()
	} else if !errors.Is(err, fs.ErrNotExist) {
		return err
	}

	srcInfo, err := os.Stat(src)
	if err != nil {
		return ferrors.FileSystemError("cannot read builder source").
			WithCause(err).
			WithContext("path", src).
			Build()
	}
	if !srcInfo.IsDir() {
		return ferrors.ValidationError("builder source is not a directory").
			WithContext("path", src).
			Build()
	}
	if inside, err := within(src, dst); err != nil {
		return err
	} else if inside {
		return ferrors.ValidationError("cannot copy a builder into a subdirectory of itself").
			WithCause(ErrDestinationInsideSource).
			WithContext("source", src).
			WithContext("path", dst).
			Build()
	}

	return filepath.WalkDir(src, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)
		if rel == "." {
			return os.MkdirAll(target, srcInfo.Mode().Perm())
		}
		if opts.Exclude != nil && opts.Exclude(filepath.ToSlash(rel), d) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return err
		}
		switch {
		case d.IsDir():
			return os.MkdirAll(target, info.Mode().Perm())
		case info.Mode().IsRegular():
			return copyFile(path, target, info.Mode().Perm())
		default:
			// Symlinks and special files are not part of a builder's sources.
			return nil
		}
	})
}

// within reports whether dst is src or lies below it.
func within(src, dst string) (bool, error) {
	absSrc, err := filepath.Abs(src)
	if err != nil {
		return false, err
	}
	absDst, err := filepath.Abs(dst)
	if err != nil {
		return false, err
	}
	rel, err := filepath.Rel(absSrc, absDst)
	if err != nil {
		// Different volumes.
		return false, nil
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)), nil
}

func copyFile(src, dst string, perm fs.FileMode) error {
	srcFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer func() {
		_ = srcFile.Close()
	}()

	dstFile, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, perm)
	if err != nil {
		return err
	}
	if _, err := io.Copy(dstFile, srcFile); err != nil {
		_ = dstFile.Close()
		return err
	}
	return dstFile.Close()
}
