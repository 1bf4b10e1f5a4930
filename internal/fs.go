package internal

import (
	"context"
	"errors"
	"fmt"
	"io"
	iofs "io/fs"
	"iter"
	"os"
	"path/filepath"
	"strings"

	"github.com/mholt/archives"
	"github.com/sirupsen/logrus"
)

const maxArchiveFiles = 10000 // zip-bomb protection

var ErrRootUnusable = errors.New("root directory is unusable") // sentinel error

// IsArchive by extension. O(1) map lookup
var archiveExt = map[string]struct{}{
	".zip": {}, ".tar": {}, ".gz": {}, ".bz2": {}, ".xz": {},
	".rar": {}, ".br": {}, ".lz4": {}, ".lz": {}, ".mz": {},
	".sz": {}, ".s2": {}, ".zz": {}, ".zst": {}, ".7z": {},
	".tgz": {},
}

// Task describes a unit of work: one file on disk or one archive. innerPath
// names an entry when the task is reported from inside an archive.
type Task struct {
	path      string
	innerPath string
	isArchive bool
}

// DisplayPath is the path printed next to a match.
func (t Task) DisplayPath() string {
	if t.innerPath == "" || t.innerPath == "." {
		return t.path
	}
	return t.path + string(os.PathSeparator) + filepath.FromSlash(t.innerPath)
}

// SkipFunc receives entries the walker could not read.
type SkipFunc func(path string, err error)

// CheckRoot fails if root cannot serve as a traversal starting point.
func CheckRoot(root string) error {
	st, err := os.Stat(root)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRootUnusable, err)
	}
	if !st.IsDir() {
		return fmt.Errorf("%w: %s is not a directory", ErrRootUnusable, root)
	}
	f, err := os.Open(root)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRootUnusable, err)
	}
	defer f.Close()
	if _, err := f.ReadDir(1); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: %v", ErrRootUnusable, err)
	}
	return nil
}

// Walk lazily yields regular files under root. Symlinks are not followed.
// Unreadable entries go to onSkip (if set) and the walk continues.
// maxDepth 0 means unlimited.
func Walk(ctx context.Context, root string, maxDepth int, onSkip SkipFunc) iter.Seq[string] {
	// a symlinked root is walked through, its children are not
	if st, err := os.Lstat(root); err == nil && st.Mode()&os.ModeSymlink != 0 {
		root += string(os.PathSeparator)
	}
	return func(yield func(string) bool) {
		stopped := errors.New("walk stopped")
		_ = WalkWithDepth(ctx, root, maxDepth, func(path string, d os.DirEntry, err error) error {
			if err != nil {
				if onSkip != nil {
					onSkip(path, err)
				}
				if d != nil && d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
			if !d.Type().IsRegular() {
				return nil
			}
			if !yield(path) {
				return stopped
			}
			return nil
		})
	}
}

// WalkWithDepth uses WalkDir and cuts branches by depth.
func WalkWithDepth(ctx context.Context, root string, maxDepth int, fn func(path string, d os.DirEntry, err error) error) error {
	return filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err != nil {
			return fn(path, d, err)
		}
		if maxDepth > 0 {
			rel, _ := filepath.Rel(root, path)
			if rel != "." && depthCount(rel) > maxDepth {
				if d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
		}
		return fn(path, d, nil)
	})
}

// AllowedExt reports whether path passes the extension filter. A nil set
// allows everything; files without an extension never pass an active filter.
func AllowedExt(path string, set map[string]struct{}) bool {
	if set == nil {
		return true
	}
	ext := strings.TrimPrefix(filepath.Ext(filepath.Base(path)), ".")
	if ext == "" {
		return false
	}
	_, ok := set[strings.ToLower(ext)]
	return ok
}

// WalkArchive opens an archive once and visits every regular entry that
// passes the extension filter. A single compressed file (notes.txt.gz) has
// one entry "." and is filtered by its name without the compression suffix.
// Entries that cannot be read go to onSkip.
func WalkArchive(ctx context.Context, path string, extSet map[string]struct{}, onSkip SkipFunc, visit func(fsys iofs.FS, t Task) bool) {
	if onSkip == nil {
		onSkip = func(string, error) {}
	}
	fsys, err := archives.FileSystem(ctx, path, nil)
	if err != nil {
		onSkip(path, err)
		return
	}
	if closer, ok := fsys.(io.Closer); ok {
		defer closer.Close()
	}

	count := 0
	stopped := errors.New("archive walk stopped")
	_ = iofs.WalkDir(fsys, ".", func(inner string, d iofs.DirEntry, err error) error {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		t := Task{path: path, innerPath: inner, isArchive: true}
		if err != nil {
			onSkip(t.DisplayPath(), err)
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if count >= maxArchiveFiles {
			logrus.Warnf("Archive %s truncated: too many files (>= %d)", path, maxArchiveFiles)
			return errors.New("archive file limit reached")
		}
		name := inner
		if inner == "." {
			name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		}
		if !AllowedExt(name, extSet) {
			return nil
		}
		count++
		if !visit(fsys, t) {
			return stopped
		}
		return nil
	})
}

func depthCount(rel string) int {
	if rel == "" {
		return 0
	}
	return strings.Count(rel, string(os.PathSeparator)) + 1
}

func IsArchive(path string) bool {
	_, ok := archiveExt[strings.ToLower(filepath.Ext(path))]
	return ok
}
