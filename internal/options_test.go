package internal

import (
	"strings"
	"testing"
)

func TestScanOptions_Validate(t *testing.T) {
	o := ScanOptions{}
	if err := o.Validate(); err == nil {
		t.Fatal("expected error when pattern empty")
	}
	o = ScanOptions{Pattern: "x", Threads: -1, Depth: -2, Encoding: "no-such-charset"}
	err := o.Validate()
	if err == nil {
		t.Fatal("expected errors")
	}
	for _, want := range []string{"threads", "depth", "no-such-charset"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q does not mention %q", err, want)
		}
	}
	o = ScanOptions{Pattern: "x", Encoding: "latin1"}
	if err := o.Validate(); err != nil {
		t.Fatalf("unexpected: %v", err)
	}
}

func TestScanOptions_Prepare(t *testing.T) {
	o := ScanOptions{Pattern: "x", Extensions: []string{"Go, .RS", "", "md"}}
	o.Prepare()
	if o.Threads <= 0 {
		t.Fatal("threads default must be positive")
	}
	if o.Root != "." {
		t.Fatalf("root must default to cwd, got %q", o.Root)
	}
	for _, e := range []string{"go", "rs", "md"} {
		if _, ok := o.extSet[e]; !ok {
			t.Errorf("missing ext %q in %v", e, o.extSet)
		}
	}
	if len(o.extSet) != 3 {
		t.Errorf("unexpected set: %v", o.extSet)
	}
}

func TestExtensionSet_EmptyMeansNoFilter(t *testing.T) {
	if ExtensionSet(nil) != nil {
		t.Fatal("nil input must give nil set")
	}
	if ExtensionSet([]string{" , "}) != nil {
		t.Fatal("blank entries must give nil set")
	}
}
