package internal

import (
	"context"
	"fmt"
	iofs "io/fs"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/sirupsen/logrus"
)

// FileScanner runs the walk -> filter -> scan pipeline.
type FileScanner struct {
	stats *AppStats
}

func NewFileScanner(stats *AppStats) *FileScanner {
	if stats == nil {
		stats = &AppStats{}
	}
	return &FileScanner{stats: stats}
}

// Scan searches opts.Root and hands every matching line to onMatch.
// onMatch is called concurrently from workers; lines of one file arrive in order.
// Only setup problems are returned: a bad pattern or an unusable root fail
// before any file is read. Per-file errors are skipped.
func (fs *FileScanner) Scan(ctx context.Context, opts ScanOptions, onMatch func(MatchResult)) error {
	opts.Prepare()
	matcher, err := NewMatcher(opts.Pattern, opts.Regex)
	if err != nil {
		return err
	}
	decode, err := LookupDecoder(opts.Encoding)
	if err != nil {
		return err
	}
	if err := CheckRoot(opts.Root); err != nil {
		return err
	}
	fs.stats.Start()
	defer fs.stats.Log()

	var wg sync.WaitGroup
	pool, err := ants.NewPoolWithFunc(opts.Threads, func(i interface{}) {
		defer wg.Done()
		t := i.(Task)
		fs.stats.FilesScanned.Add(1)
		if t.isArchive {
			fs.scanArchive(ctx, t.path, opts.extSet, matcher, decode, onMatch)
		} else {
			fs.scanRegularFile(t.path, matcher, decode, onMatch)
		}
	})
	if err != nil {
		return fmt.Errorf("pool: %w", err)
	}
	defer pool.Release()

	submit := func(t Task) bool {
		if ctx.Err() != nil {
			return false
		}
		fs.stats.FilesFound.Add(1)
		wg.Add(1)
		if err := pool.Invoke(t); err != nil {
			wg.Done()
			logrus.WithError(err).WithField("file", t.DisplayPath()).Error("submit task")
		}
		return true
	}

	logrus.WithFields(logrus.Fields{"root": opts.Root, "pattern": matcher.Desc(), "threads": opts.Threads}).Debug("Search started")
	for path := range Walk(ctx, opts.Root, opts.Depth, fs.skip) {
		if opts.Archives && IsArchive(path) {
			if !submit(Task{path: path, isArchive: true}) {
				break
			}
			continue
		}
		if !AllowedExt(path, opts.extSet) {
			continue
		}
		if !submit(Task{path: path}) {
			break
		}
	}

	wg.Wait()
	return ctx.Err()
}

func (fs *FileScanner) skip(path string, err error) {
	fs.stats.Skipped.Add(1)
	logrus.WithFields(logrus.Fields{"file": path, "err": err}).Debug("Skip")
}

func (fs *FileScanner) scanRegularFile(path string, m Matcher, decode Decoder, onMatch func(MatchResult)) {
	if err := ScanFile(path, m, decode, onMatch); err != nil {
		fs.skip(path, err)
	}
}

// scanArchive opens the archive once and scans its entries in order on the
// current worker.
// TODO: tar-based formats still stream up to each entry on Open; switch to a
// single archives.Extractor pass for them.
func (fs *FileScanner) scanArchive(ctx context.Context, path string, extSet map[string]struct{}, m Matcher, decode Decoder, onMatch func(MatchResult)) {
	WalkArchive(ctx, path, extSet, fs.skip, func(fsys iofs.FS, t Task) bool {
		f, err := fsys.Open(t.innerPath)
		if err != nil {
			fs.skip(t.DisplayPath(), err)
			return true
		}
		defer f.Close()
		if err := ScanReader(f, t.DisplayPath(), m, decode, onMatch); err != nil {
			fs.skip(t.DisplayPath(), err)
		}
		return ctx.Err() == nil
	})
}
