package internal

import (
	"errors"
	"fmt"
	"runtime"
	"strings"

	"github.com/hashicorp/go-multierror"
)

// ScanOptions - public options from CLI.
type ScanOptions struct {
	Pattern    string
	Root       string
	Regex      bool
	Extensions []string
	Threads    int
	Depth      int
	Archives   bool
	Encoding   string

	extSet map[string]struct{}
}

// Validate checks invariants and reports every violation at once.
func (o *ScanOptions) Validate() error {
	var result *multierror.Error
	if o.Pattern == "" {
		result = multierror.Append(result, errors.New("pattern is required"))
	}
	if o.Threads < 0 {
		result = multierror.Append(result, fmt.Errorf("threads must be >= 0, got %d", o.Threads))
	}
	if o.Depth < 0 {
		result = multierror.Append(result, fmt.Errorf("depth must be >= 0, got %d", o.Depth))
	}
	if _, err := LookupDecoder(o.Encoding); err != nil {
		result = multierror.Append(result, err)
	}
	return result.ErrorOrNil()
}

// Prepare builds the extension set and sensible defaults.
func (o *ScanOptions) Prepare() {
	o.extSet = ExtensionSet(o.Extensions)
	if o.Threads <= 0 {
		o.Threads = max(32, runtime.GOMAXPROCS(0)*4)
	}
	if o.Root == "" {
		o.Root = "."
	}
}

// ExtensionSet normalizes raw extension values (comma separated, optional
// leading dot, any case) into a lowercase lookup set. Nil means no filter.
func ExtensionSet(raw []string) map[string]struct{} {
	var m map[string]struct{}
	for _, item := range raw {
		for _, v := range strings.Split(item, ",") {
			v = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(v), "."))
			if v == "" {
				continue
			}
			if m == nil {
				m = make(map[string]struct{})
			}
			m[v] = struct{}{}
		}
	}
	return m
}
