package internal

import (
	"io"
	"iter"
	"os"
	"strings"
)

// MatchResult is one matching line.
type MatchResult struct {
	Path       string
	LineNumber int // 1-based
	Line       string
}

// ScanFile reads the whole file, decodes it and emits every matching line in
// order. Any read or decode error is returned before anything is emitted.
func ScanFile(path string, m Matcher, decode Decoder, emit func(MatchResult)) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return scanBytes(path, data, m, decode, emit)
}

// ScanReader is ScanFile for an already opened stream (archive entries).
func ScanReader(r io.Reader, displayPath string, m Matcher, decode Decoder, emit func(MatchResult)) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	return scanBytes(displayPath, data, m, decode, emit)
}

func scanBytes(path string, data []byte, m Matcher, decode Decoder, emit func(MatchResult)) error {
	text, err := decode(data)
	if err != nil {
		return err
	}
	lineNum := 0
	for line := range lines(text) {
		lineNum++
		if m.Match(line) {
			emit(MatchResult{Path: path, LineNumber: lineNum, Line: line})
		}
	}
	return nil
}

// lines splits on '\n' and drops one trailing '\r' per line. A final newline
// does not start an extra empty line.
func lines(text string) iter.Seq[string] {
	return func(yield func(string) bool) {
		for len(text) > 0 {
			var line string
			if i := strings.IndexByte(text, '\n'); i >= 0 {
				line, text = text[:i], text[i+1:]
			} else {
				line, text = text, ""
			}
			if !yield(strings.TrimSuffix(line, "\r")) {
				return
			}
		}
	}
}
