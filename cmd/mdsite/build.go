package main

import (
	"context"
	"errors"
	"fmt"

	flag "github.com/spf13/pflag"

	mdsite "github.com/alnah/go-mdsite"
	"github.com/alnah/go-mdsite/internal/config"
)

// Sentinel errors for CLI operations.
var (
	ErrNoInput            = errors.New("no input specified")
	ErrInvalidWorkerCount = errors.New("invalid worker count")
)

// runBuild builds the site described by flags, env and config.
func runBuild(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseBuildFlags(args, env.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return err
	}
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUsage, err)
	}
	if len(positional) > 1 {
		return fmt.Errorf("%w: build takes at most one input directory, got %d", ErrUsage, len(positional))
	}
	if err := validateWorkers(flags.workers); err != nil {
		return err
	}

	warnUnknownEnvVars(env)
	envCfg := loadEnvConfig(env)

	cfg, err := loadConfig(flags.common.config, envCfg.ConfigPath)
	if err != nil {
		return err
	}
	applyEnvConfig(envCfg, cfg)
	mergeFlags(flags, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	source, err := resolveInputDir(positional, cfg)
	if err != nil {
		return err
	}
	output := resolveOutputDir(cfg)

	builder, err := mdsite.NewBuilder(builderOptions(cfg, env)...)
	if err != nil {
		return err
	}

	verbose := flags.common.verbose && !flags.common.quiet
	report, err := builder.BuildSite(ctx, mdsite.Site{
		SourceDir: source,
		OutputDir: output,
		Exclude:   cfg.Input.Exclude,
		MaxDepth:  cfg.Input.MaxDepth,
		Workers:   cfg.Build.Workers,
	})
	if err != nil {
		return err
	}

	if verbose {
		fmt.Fprintf(env.Stderr, "Workers: %d\n", report.Workers)
	}
	printReport(report, flags.common.quiet, verbose, env)
	return report.Err()
}

// loadConfig loads the config named by --config, else MDSITE_CONFIG.
// Without either, the built-in defaults apply.
func loadConfig(flagName, envName string) (*config.Config, error) {
	name := flagName
	if name == "" {
		name = envName
	}
	if name == "" {
		return config.DefaultConfig(), nil
	}
	cfg, err := config.LoadConfig(name)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// builderOptions maps the merged configuration to Builder options.
func builderOptions(cfg *config.Config, env *Environment) []mdsite.Option {
	return []mdsite.Option{
		mdsite.WithAssetPath(cfg.Assets.BasePath),
		mdsite.WithTemplateSet(cfg.Assets.TemplateSet),
		mdsite.WithHighlightStyle(cfg.Markdown.HighlightStyle),
		mdsite.WithTOCPlaceholder(cfg.Markdown.TOCPlaceholder),
		mdsite.WithUnsafeHTML(cfg.Markdown.UnsafeHTML),
		mdsite.WithSanitize(cfg.Markdown.Sanitize),
		mdsite.WithNow(env.Now),
	}
}

// resolveInputDir picks the positional argument, else input.defaultDir.
func resolveInputDir(args []string, cfg *config.Config) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	if cfg.Input.DefaultDir != "" {
		return cfg.Input.DefaultDir, nil
	}
	return "", ErrNoInput
}

// resolveOutputDir returns output.defaultDir, else "dist".
func resolveOutputDir(cfg *config.Config) string {
	if cfg.Output.DefaultDir != "" {
		return cfg.Output.DefaultDir
	}
	return defaultOutputDir
}

// validateWorkers checks that the worker count is within valid bounds.
func validateWorkers(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: %d (must be >= 0, 0 means auto)", ErrInvalidWorkerCount, n)
	}
	if n > mdsite.MaxWorkers {
		return fmt.Errorf("%w: %d (maximum is %d)", ErrInvalidWorkerCount, n, mdsite.MaxWorkers)
	}
	return nil
}
