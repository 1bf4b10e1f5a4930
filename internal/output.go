package internal

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// Color modes for match output.
const (
	ColorNever  = "never"
	ColorAlways = "always"
	ColorAuto   = "auto"
)

// Printer serializes match lines onto a single writer. Each result is one
// write, so lines from concurrent files never tear.
type Printer struct {
	mu    sync.Mutex
	w     io.Writer
	path  *color.Color
	line  *color.Color
	stats *AppStats
}

// NewPrinter returns a printer for w. Coloring is decided once, up front.
func NewPrinter(w io.Writer, colorMode string, stats *AppStats) (*Printer, error) {
	p := &Printer{w: w, stats: stats}
	switch colorMode {
	case "", ColorNever:
	case ColorAlways:
		p.enableColor()
	case ColorAuto:
		if f, ok := w.(*os.File); ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())) {
			p.enableColor()
		}
	default:
		return nil, fmt.Errorf("unknown color mode %q (want auto, always or never)", colorMode)
	}
	return p, nil
}

func (p *Printer) enableColor() {
	p.path = color.New(color.FgMagenta)
	p.path.EnableColor()
	p.line = color.New(color.FgGreen)
	p.line.EnableColor()
}

// Print writes "path:line: text".
func (p *Printer) Print(res MatchResult) {
	var s string
	if p.path != nil {
		s = fmt.Sprintf("%s:%s: %s\n", p.path.Sprint(res.Path), p.line.Sprint(res.LineNumber), res.Line)
	} else {
		s = fmt.Sprintf("%s:%d: %s\n", res.Path, res.LineNumber, res.Line)
	}
	p.mu.Lock()
	_, _ = io.WriteString(p.w, s)
	p.mu.Unlock()
	if p.stats != nil {
		p.stats.Matches.Add(1)
	}
}
