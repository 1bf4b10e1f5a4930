package main

import (
	"SearchText/internal"
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		logrus.Fatal(err)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:      "searchtext",
		Usage:     "Recursively search all files in a directory for given content",
		UsageText: "searchtext --pattern TODO --dir ./src [--regex] [--ext go,rs]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "pattern",
				Aliases: []string{"p"},
				Usage:   "Text pattern to search for, e.g. TODO",
			},
			&cli.StringFlag{
				Name:    "dir",
				Aliases: []string{"d"},
				Usage:   "Directory to search (default: current directory)",
			},
			&cli.BoolFlag{
				Name:    "regex",
				Aliases: []string{"r"},
				Usage:   "Treat pattern as a regular expression",
			},
			&cli.StringSliceFlag{
				Name:    "ext",
				Aliases: []string{"e"},
				Usage:   "Only scan these extensions (comma separated, e.g. go,rs). Use without dot.",
			},
			&cli.IntFlag{
				Name:  "threads",
				Usage: "Max concurrent file workers (default scales with CPU)",
			},
			&cli.IntFlag{
				Name:  "depth",
				Usage: "Max directory depth (0 - unlimited)",
			},
			&cli.BoolFlag{
				Name:  "archives",
				Usage: "Also scan files inside archives (.zip,.tar,.gz,.7z,...)",
			},
			&cli.StringFlag{
				Name:  "encoding",
				Usage: "Text encoding of scanned files (utf-8, latin1, utf-16le, shift_jis, ...)",
				Value: "utf-8",
			},
			&cli.StringFlag{
				Name:  "color",
				Usage: "Colorize match output: auto, always, never",
				Value: internal.ColorNever,
			},
			&cli.DurationFlag{
				Name:  "timeout",
				Usage: "Global timeout for the search (e.g. 10m, 1h)",
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "Log skipped entries and a run summary to stderr",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "Log level: debug, info, warn, error",
				Value: "warn",
			},
			&cli.StringFlag{
				Name:  "logfile",
				Usage: "Write logs into file instead of stderr",
			},
			&cli.StringFlag{
				Name:  "config",
				Usage: "YAML file with default values for the flags above",
			},
		},
		Action: run,
	}
}

func run(c *cli.Context) error {
	var cfg internal.FileConfig
	if path := c.String("config"); path != "" {
		loaded, err := internal.LoadConfig(path)
		if err != nil {
			return cli.Exit(err.Error(), 2)
		}
		cfg = *loaded
	}

	logLevel := pickString(c, "log-level", cfg.LogLevel)
	if c.Bool("verbose") {
		logLevel = "debug"
	}
	internal.InitLogger(pickString(c, "logfile", cfg.LogFile), logLevel)

	opts := mergeOptions(c, cfg)
	if err := opts.Validate(); err != nil {
		return cli.Exit(err.Error(), 2)
	}
	opts.Prepare()

	var stats internal.AppStats
	printer, err := internal.NewPrinter(c.App.Writer, pickString(c, "color", cfg.Color), &stats)
	if err != nil {
		return cli.Exit(err.Error(), 2)
	}

	// ctx with timeout + OS signals
	base := context.Background()
	var cancel context.CancelFunc
	if t := c.Duration("timeout"); t > 0 {
		base, cancel = context.WithTimeout(base, t)
	} else {
		base, cancel = context.WithCancel(base)
	}
	defer cancel()
	ctx, stop := signal.NotifyContext(base, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	err = internal.NewFileScanner(&stats).Scan(ctx, opts, printer.Print)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, internal.ErrInvalidPattern), errors.Is(err, internal.ErrRootUnusable):
		return cli.Exit(err.Error(), 2)
	case ctx.Err() != nil:
		logrus.Warn("Search cancelled")
		return cli.Exit("", 130)
	default:
		logrus.WithError(err).Error("Search failed")
		return cli.Exit(err.Error(), 1)
	}
}

// mergeOptions builds scan options from flags, falling back to the config file.
func mergeOptions(c *cli.Context, cfg internal.FileConfig) internal.ScanOptions {
	opts := internal.ScanOptions{
		Pattern:    pickString(c, "pattern", cfg.Pattern),
		Root:       pickString(c, "dir", cfg.Dir),
		Regex:      pickBool(c, "regex", cfg.Regex),
		Extensions: cfg.Extensions,
		Threads:    pickInt(c, "threads", cfg.Threads),
		Depth:      pickInt(c, "depth", cfg.Depth),
		Archives:   pickBool(c, "archives", cfg.Archives),
		Encoding:   pickString(c, "encoding", cfg.Encoding),
	}
	if c.IsSet("ext") {
		opts.Extensions = c.StringSlice("ext")
	}
	return opts
}

// pick* return the flag value when set on the command line, then the config
// file value, then the flag default.
func pickString(c *cli.Context, name, fromConfig string) string {
	if !c.IsSet(name) && fromConfig != "" {
		return fromConfig
	}
	return c.String(name)
}

func pickInt(c *cli.Context, name string, fromConfig int) int {
	if !c.IsSet(name) && fromConfig != 0 {
		return fromConfig
	}
	return c.Int(name)
}

func pickBool(c *cli.Context, name string, fromConfig bool) bool {
	if !c.IsSet(name) {
		return fromConfig || c.Bool(name)
	}
	return c.Bool(name)
}
