package internal

import (
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"
)

// AppStats atomic counters for totals
type AppStats struct {
	start        time.Time
	FilesFound   atomic.Int64
	FilesScanned atomic.Int64
	Skipped      atomic.Int64
	Matches      atomic.Int64
}

func (s *AppStats) Start() {
	s.start = time.Now()
}

func (s *AppStats) Elapsed() time.Duration {
	return time.Since(s.start)
}

// Log writes the run summary at debug level.
func (s *AppStats) Log() {
	logrus.WithFields(logrus.Fields{
		"found":   s.FilesFound.Load(),
		"scanned": s.FilesScanned.Load(),
		"skipped": s.Skipped.Load(),
		"matches": s.Matches.Load(),
		"elapsed": s.Elapsed(),
	}).Debug("Search finished")
}
