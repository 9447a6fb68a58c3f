package main

import (
	"io"

	flag "github.com/spf13/pflag"

	"github.com/alnah/go-mdsite/internal/config"
)

// defaultOutputDir is used when neither flags, env nor config name one.
const defaultOutputDir = "dist"

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// markdownFlags holds rendering flags.
type markdownFlags struct {
	unsafeHTML     bool
	sanitize       bool
	tocPlaceholder string
	highlightStyle string
}

// assetFlags holds template and asset flags.
type assetFlags struct {
	template  string // Name or directory path of the template set
	assetPath string // Override asset directory
}

// discoveryFlags holds document discovery flags.
type discoveryFlags struct {
	exclude  []string
	maxDepth int
}

// buildFlags holds all flags for the build command.
type buildFlags struct {
	common    commonFlags
	output    string
	workers   int
	markdown  markdownFlags
	assets    assetFlags
	discovery discoveryFlags

	// set reports whether a flag was given on the command line.
	set func(name string) bool
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show detailed timing")
}

// addMarkdownFlags adds rendering flags to a FlagSet.
func addMarkdownFlags(fs *flag.FlagSet, f *markdownFlags) {
	fs.BoolVar(&f.unsafeHTML, "unsafe-html", false, "pass raw HTML in markdown through")
	fs.BoolVar(&f.sanitize, "sanitize", false, "strip untrusted markup from pages")
	fs.StringVar(&f.tocPlaceholder, "toc-placeholder", "", "paragraph replaced by a table of contents (default \"[TOC]\")")
	fs.StringVar(&f.highlightStyle, "highlight-style", "", "chroma style for code blocks (default \"github\")")
}

// addAssetFlags adds asset-related flags to a FlagSet.
func addAssetFlags(fs *flag.FlagSet, f *assetFlags) {
	fs.StringVar(&f.template, "template", "", "template set name or directory path")
	fs.StringVar(&f.assetPath, "asset-path", "", "custom asset directory")
}

// addDiscoveryFlags adds discovery flags to a FlagSet.
func addDiscoveryFlags(fs *flag.FlagSet, f *discoveryFlags) {
	fs.StringSliceVar(&f.exclude, "exclude", nil, "directory name to skip (repeatable)")
	fs.IntVar(&f.maxDepth, "max-depth", 0, "directory levels to enter (0 = unlimited)")
}

// parseBuildFlags parses build command flags and returns positional args.
func parseBuildFlags(args []string, stderr io.Writer) (*buildFlags, []string, error) {
	fs := flag.NewFlagSet("build", flag.ContinueOnError)
	fs.SetOutput(stderr)
	f := &buildFlags{set: fs.Changed}

	fs.StringVarP(&f.output, "output", "o", "", "output directory (default \"dist\")")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")

	addCommonFlags(fs, &f.common)
	addMarkdownFlags(fs, &f.markdown)
	addAssetFlags(fs, &f.assets)
	addDiscoveryFlags(fs, &f.discovery)

	fs.Usage = func() { printBuildUsage(stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	return f, fs.Args(), nil
}

// mergeFlags applies the flags given on the command line to cfg (CLI wins).
// Flags left at their defaults never override env or config values.
func mergeFlags(f *buildFlags, cfg *config.Config) {
	if f.set("output") {
		cfg.Output.DefaultDir = f.output
	}
	if f.set("workers") {
		cfg.Build.Workers = f.workers
	}
	if f.set("unsafe-html") {
		cfg.Markdown.UnsafeHTML = f.markdown.unsafeHTML
	}
	if f.set("sanitize") {
		cfg.Markdown.Sanitize = f.markdown.sanitize
	}
	if f.set("toc-placeholder") {
		cfg.Markdown.TOCPlaceholder = f.markdown.tocPlaceholder
	}
	if f.set("highlight-style") {
		cfg.Markdown.HighlightStyle = f.markdown.highlightStyle
	}
	if f.set("template") {
		cfg.Assets.TemplateSet = f.assets.template
	}
	if f.set("asset-path") {
		cfg.Assets.BasePath = f.assets.assetPath
	}
	if f.set("exclude") {
		cfg.Input.Exclude = f.discovery.exclude
	}
	if f.set("max-depth") {
		cfg.Input.MaxDepth = f.discovery.maxDepth
	}
}
