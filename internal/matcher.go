package internal

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

var ErrInvalidPattern = errors.New("invalid pattern") // sentinel error

// Matcher - fast interface for line match. Implementations are immutable
// after construction and safe for concurrent use.
type Matcher interface {
	Match(string) bool
	Desc() string // for logs
}

type RegexMatcher struct{ re *regexp.Regexp }

func (m *RegexMatcher) Match(s string) bool { return m.re.MatchString(s) }
func (m *RegexMatcher) Desc() string        { return "re:" + m.re.String() }

// LiteralMatcher is a case-sensitive substring test.
type LiteralMatcher struct{ s string }

func (m *LiteralMatcher) Match(s string) bool { return strings.Contains(s, m.s) }
func (m *LiteralMatcher) Desc() string        { return m.s }

// NewMatcher builds the matcher for a pattern. Regex mode reports a match
// anywhere in the line; anchors bind to the line boundaries.
func NewMatcher(pattern string, useRegex bool) (Matcher, error) {
	if !useRegex {
		return &LiteralMatcher{s: pattern}, nil
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %v", ErrInvalidPattern, pattern, err)
	}
	return &RegexMatcher{re: re}, nil
}
