package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alnah/go-mdsite/internal/config"
)

// envPrefix marks the environment variables read by mdsite.
const envPrefix = "MDSITE_"

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath     string // MDSITE_CONFIG: config file name or path
	InputDir       string // MDSITE_INPUT_DIR: default source directory
	OutputDir      string // MDSITE_OUTPUT_DIR: default output directory
	Template       string // MDSITE_TEMPLATE: template set name or path
	AssetPath      string // MDSITE_ASSET_PATH: custom asset directory
	HighlightStyle string // MDSITE_HIGHLIGHT_STYLE: chroma style
	Workers        int    // MDSITE_WORKERS: parallel workers
}

// knownEnvVars lists valid MDSITE_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"MDSITE_CONFIG":          true,
	"MDSITE_INPUT_DIR":       true,
	"MDSITE_OUTPUT_DIR":      true,
	"MDSITE_TEMPLATE":        true,
	"MDSITE_ASSET_PATH":      true,
	"MDSITE_HIGHLIGHT_STYLE": true,
	"MDSITE_WORKERS":         true,
}

// loadEnvConfig reads configuration from environment variables.
// An unparsable MDSITE_WORKERS is ignored.
func loadEnvConfig(env *Environment) *envConfig {
	cfg := &envConfig{
		ConfigPath:     env.Getenv("MDSITE_CONFIG"),
		InputDir:       env.Getenv("MDSITE_INPUT_DIR"),
		OutputDir:      env.Getenv("MDSITE_OUTPUT_DIR"),
		Template:       env.Getenv("MDSITE_TEMPLATE"),
		AssetPath:      env.Getenv("MDSITE_ASSET_PATH"),
		HighlightStyle: env.Getenv("MDSITE_HIGHLIGHT_STYLE"),
	}

	if workers := env.Getenv("MDSITE_WORKERS"); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil && w > 0 {
			cfg.Workers = w
		}
	}

	return cfg
}

// warnUnknownEnvVars prints a warning for each unrecognized MDSITE_* variable.
// Helps catch typos like MDSITE_OUTPUT instead of MDSITE_OUTPUT_DIR.
func warnUnknownEnvVars(env *Environment) {
	for _, kv := range env.Environ() {
		if !strings.HasPrefix(kv, envPrefix) {
			continue
		}
		name, _, _ := strings.Cut(kv, "=")
		if !knownEnvVars[name] {
			fmt.Fprintf(env.Stderr, "warning: unknown environment variable %s (typo?)\n", name)
		}
	}
}

// applyEnvConfig overrides config file values with set environment variables.
// CLI flags are applied afterwards by mergeFlags, giving:
// CLI flags > env vars > config file > defaults.
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.InputDir != "" {
		cfg.Input.DefaultDir = env.InputDir
	}
	if env.OutputDir != "" {
		cfg.Output.DefaultDir = env.OutputDir
	}
	if env.Template != "" {
		cfg.Assets.TemplateSet = env.Template
	}
	if env.AssetPath != "" {
		cfg.Assets.BasePath = env.AssetPath
	}
	if env.HighlightStyle != "" {
		cfg.Markdown.HighlightStyle = env.HighlightStyle
	}
	if env.Workers > 0 {
		cfg.Build.Workers = env.Workers
	}
}
