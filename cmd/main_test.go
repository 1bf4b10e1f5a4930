package main

import (
	"SearchText/internal"
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

// runApp runs the CLI in-process and returns stdout and the exit code.
func runApp(t *testing.T, args ...string) (string, int) {
	t.Helper()
	var out bytes.Buffer
	app := newApp()
	app.Writer = &out
	app.ErrWriter = io.Discard
	app.ExitErrHandler = func(*cli.Context, error) {}

	err := app.Run(append([]string{"searchtext"}, args...))
	if err == nil {
		return out.String(), 0
	}
	var ec cli.ExitCoder
	if errors.As(err, &ec) {
		return out.String(), ec.ExitCode()
	}
	return out.String(), 1
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "searchtext.yaml")
	require.NoError(t, os.WriteFile(p, []byte(body), 0644))
	return p
}

// mergedWith runs the flag parser only and returns the merged options.
func mergedWith(t *testing.T, cfg internal.FileConfig, args ...string) internal.ScanOptions {
	t.Helper()
	var got internal.ScanOptions
	app := newApp()
	app.Action = func(c *cli.Context) error {
		got = mergeOptions(c, cfg)
		return nil
	}
	require.NoError(t, app.Run(append([]string{"searchtext"}, args...)))
	return got
}

func TestMergeOptions_ConfigFillsUnsetFlags(t *testing.T) {
	cfg := internal.FileConfig{Pattern: "TODO", Dir: "src", Regex: true, Extensions: []string{"go"}, Threads: 8, Encoding: "latin1"}
	got := mergedWith(t, cfg)
	assert.Equal(t, "TODO", got.Pattern)
	assert.Equal(t, "src", got.Root)
	assert.True(t, got.Regex)
	assert.Equal(t, []string{"go"}, got.Extensions)
	assert.Equal(t, 8, got.Threads)
	assert.Equal(t, "latin1", got.Encoding)
}

func TestMergeOptions_FlagsWin(t *testing.T) {
	cfg := internal.FileConfig{Pattern: "TODO", Dir: "src", Regex: true, Extensions: []string{"go"}, Threads: 8, Archives: true}
	got := mergedWith(t, cfg, "-p", "FIXME", "-d", "lib", "--regex=false", "-e", "rs,md", "--threads", "2", "--archives=false")
	assert.Equal(t, "FIXME", got.Pattern)
	assert.Equal(t, "lib", got.Root)
	assert.False(t, got.Regex)
	assert.Equal(t, []string{"rs", "md"}, got.Extensions)
	assert.Equal(t, 2, got.Threads)
	assert.False(t, got.Archives)
}

func TestMergeOptions_Defaults(t *testing.T) {
	got := mergedWith(t, internal.FileConfig{}, "-p", "x")
	assert.Equal(t, "", got.Root)
	assert.False(t, got.Regex)
	assert.Equal(t, "utf-8", got.Encoding)
	assert.Nil(t, got.Extensions)
}

func TestRun_OutputAndExitCodes(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "main.go")
	require.NoError(t, os.WriteFile(file, []byte("package main\n// TODO: fix\n"), 0644))

	out, code := runApp(t, "-p", "TODO", "-d", dir)
	assert.Equal(t, 0, code)
	assert.Equal(t, file+":2: // TODO: fix\n", out)

	out, code = runApp(t, "-p", "nothing-here", "-d", dir)
	assert.Equal(t, 0, code, "no matches is still success")
	assert.Empty(t, out)

	_, code = runApp(t, "-p", "(", "-r", "-d", dir)
	assert.Equal(t, 2, code, "invalid regex")

	_, code = runApp(t, "-p", "x", "-d", filepath.Join(dir, "missing"))
	assert.Equal(t, 2, code, "missing root")

	_, code = runApp(t, "-d", dir)
	assert.Equal(t, 2, code, "missing pattern")

	_, code = runApp(t, "-p", "x", "-d", dir, "--config", filepath.Join(dir, "missing.yaml"))
	assert.Equal(t, 2, code, "missing config file")
}

func TestRun_FlagOverridesConfigRegex(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "a.txt")
	require.NoError(t, os.WriteFile(file, []byte("abc\n"), 0644))
	cfg := writeConfig(t, "pattern: a.c\nregex: true\n")

	out, code := runApp(t, "--config", cfg, "-d", dir)
	assert.Equal(t, 0, code)
	assert.Equal(t, file+":1: abc\n", out)

	out, code = runApp(t, "--config", cfg, "-d", dir, "--regex=false")
	assert.Equal(t, 0, code)
	assert.Empty(t, out, "literal a.c must not match abc")
}
