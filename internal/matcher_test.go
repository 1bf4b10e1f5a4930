package internal

import (
	"errors"
	"testing"
)

func TestLiteralMatcher_CaseSensitiveSubstring(t *testing.T) {
	m, err := NewMatcher("TODO", false)
	if err != nil {
		t.Fatalf("NewMatcher: %v", err)
	}
	if !m.Match("// TODO: fix") {
		t.Error("literal should match substring")
	}
	if m.Match("// TOD O: fix") {
		t.Error("literal should not match broken word")
	}
	if m.Match("// todo: fix") {
		t.Error("literal must be case-sensitive")
	}
}

func TestLiteralMatcher_RegexMetaIsLiteral(t *testing.T) {
	m, _ := NewMatcher("a.c", false)
	if m.Match("abc") {
		t.Error("'.' must not act as wildcard in literal mode")
	}
	if !m.Match("xa.cx") {
		t.Error("literal dot should match")
	}
}

func TestRegexMatcher_AnchorsToLineStart(t *testing.T) {
	m, err := NewMatcher("^func ", true)
	if err != nil {
		t.Fatalf("NewMatcher: %v", err)
	}
	if !m.Match("func main() {") {
		t.Error("should match at line start")
	}
	if m.Match("  func main() {") {
		t.Error("^ must anchor to the true start of the line")
	}
}

func TestRegexMatcher_PartialMatch(t *testing.T) {
	m, _ := NewMatcher(`id=\d{3}`, true)
	if !m.Match("user id=123 logged in") {
		t.Error("regex should match anywhere in the line")
	}
	if m.Match("id=12x") {
		t.Error("regex matched wrong input")
	}
	if m.Desc() != `re:id=\d{3}` {
		t.Errorf("unexpected desc: %q", m.Desc())
	}
}

func TestNewMatcher_InvalidRegex(t *testing.T) {
	_, err := NewMatcher("func(", true)
	if !errors.Is(err, ErrInvalidPattern) {
		t.Fatalf("expected ErrInvalidPattern, got %v", err)
	}
	// the same text is a fine literal
	if _, err := NewMatcher("func(", false); err != nil {
		t.Fatalf("literal mode must not compile: %v", err)
	}
}
