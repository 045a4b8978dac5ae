package main

import (
	"errors"
	"fmt"
	"io"

	flag "github.com/spf13/pflag"

	"github.com/alnah/go-gmi/internal/config"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// classifyFlags holds classifier option flags.
type classifyFlags struct {
	imageExts       []string
	caseInsensitive bool
	extSearch       string
}

// linesFlags holds all flags for the lines command.
type linesFlags struct {
	common   commonFlags
	format   string
	output   string
	workers  int
	summary  bool
	watch    bool
	classify classifyFlags
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show debug diagnostics")
}

// addClassifyFlags adds classifier option flags to a FlagSet.
func addClassifyFlags(fs *flag.FlagSet, f *classifyFlags) {
	fs.StringSliceVar(&f.imageExts, "image-ext", nil, "image extension without dot (repeatable, replaces defaults)")
	fs.BoolVar(&f.caseInsensitive, "case-insensitive-images", false, "match image extensions ignoring case")
	fs.StringVar(&f.extSearch, "ext-search", "", "where the link extension starts: last or first dot")
}

// newLinesFlagSet registers every lines flag into f.
// Shared by parseLinesFlags and the completion generator.
func newLinesFlagSet(f *linesFlags) *flag.FlagSet {
	fs := flag.NewFlagSet("lines", flag.ContinueOnError)

	fs.StringVarP(&f.format, "format", "f", "", "listing format: text, yaml, json")
	fs.StringVarP(&f.output, "output", "o", "", "write listings to this directory instead of stdout")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")
	fs.BoolVar(&f.summary, "summary", false, "print per-type counts instead of lines")
	fs.BoolVar(&f.watch, "watch", false, "re-classify files when they change")

	addCommonFlags(fs, &f.common)
	addClassifyFlags(fs, &f.classify)

	return fs
}

// parseLinesFlags parses lines flags and returns positional arguments.
// Usage and parse errors are written to w.
func parseLinesFlags(args []string, w io.Writer) (*linesFlags, []string, error) {
	f := &linesFlags{}
	fs := newLinesFlagSet(f)
	fs.SetOutput(w)
	fs.Usage = func() { printLinesUsage(w) }

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, nil, err
		}
		return nil, nil, fmt.Errorf("%w: %v", ErrInvalidFlags, err)
	}

	return f, fs.Args(), nil
}

// mergeFlags overrides config values with explicitly set flags (CLI wins).
func mergeFlags(f *linesFlags, cfg *config.Config) {
	if f.format != "" {
		cfg.Output.Format = f.format
	}
	if f.output != "" {
		cfg.Output.DefaultDir = f.output
	}
	if f.workers != 0 {
		cfg.Workers = f.workers
	}
	if len(f.classify.imageExts) > 0 {
		cfg.Classify.ImageExtensions = f.classify.imageExts
	}
	if f.classify.caseInsensitive {
		cfg.Classify.CaseInsensitiveImages = true
	}
	if f.classify.extSearch != "" {
		cfg.Classify.ExtensionSearch = f.classify.extSearch
	}
}
