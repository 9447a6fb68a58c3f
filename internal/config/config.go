// Package config loads and validates site build configuration files.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-mdsite/internal/fileutil"
	"github.com/alnah/go-mdsite/internal/hints"
	"github.com/alnah/go-mdsite/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// Field limits.
const (
	MaxPathLength        = 4096
	MaxNameLength        = 100 // template set, highlight style
	MaxPlaceholderLength = 50
	MaxExcludeEntries    = 100
	MaxWorkers           = 64
	MaxDepthLimit        = 64
)

// Config holds all configuration for a site build.
type Config struct {
	Input    InputConfig    `yaml:"input"`
	Output   OutputConfig   `yaml:"output"`
	Assets   AssetsConfig   `yaml:"assets"`
	Markdown MarkdownConfig `yaml:"markdown"`
	Build    BuildConfig    `yaml:"build"`
}

// InputConfig defines input source options.
type InputConfig struct {
	DefaultDir string   `yaml:"defaultDir"` // Source root (empty = must specify)
	Exclude    []string `yaml:"exclude"`    // Directory names skipped during discovery
	MaxDepth   int      `yaml:"maxDepth"`   // 0 = unlimited
}

// OutputConfig defines output destination options.
type OutputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Output root (empty = "dist")
}

// AssetsConfig defines asset loading options.
type AssetsConfig struct {
	BasePath    string `yaml:"basePath"`    // Empty = use embedded assets
	TemplateSet string `yaml:"templateSet"` // Empty = "default"
}

// MarkdownConfig defines rendering options.
type MarkdownConfig struct {
	UnsafeHTML     bool   `yaml:"unsafeHTML"`     // Pass raw HTML through
	Sanitize       bool   `yaml:"sanitize"`       // Strip untrusted markup from pages
	TOCPlaceholder string `yaml:"tocPlaceholder"` // Empty = "[TOC]"
	HighlightStyle string `yaml:"highlightStyle"` // Chroma style, empty = "github"
}

// BuildConfig defines build execution options.
type BuildConfig struct {
	Workers int `yaml:"workers"` // 0 = one per CPU
}

// Validate checks field lengths and ranges.
// Called automatically by LoadConfig, but available for consumers
// who construct Config manually.
func (c *Config) Validate() error {
	fields := []struct {
		name  string
		value string
		max   int
	}{
		{"input.defaultDir", c.Input.DefaultDir, MaxPathLength},
		{"output.defaultDir", c.Output.DefaultDir, MaxPathLength},
		{"assets.basePath", c.Assets.BasePath, MaxPathLength},
		{"assets.templateSet", c.Assets.TemplateSet, MaxNameLength},
		{"markdown.tocPlaceholder", c.Markdown.TOCPlaceholder, MaxPlaceholderLength},
		{"markdown.highlightStyle", c.Markdown.HighlightStyle, MaxNameLength},
	}
	for _, f := range fields {
		if err := validateFieldLength(f.name, f.value, f.max); err != nil {
			return err
		}
	}

	if len(c.Input.Exclude) > MaxExcludeEntries {
		return fmt.Errorf("%w: input.exclude: %d entries (max %d)", ErrInvalidValue, len(c.Input.Exclude), MaxExcludeEntries)
	}
	for i, name := range c.Input.Exclude {
		field := fmt.Sprintf("input.exclude[%d]", i)
		if name == "" || strings.ContainsAny(name, "/\\") {
			return fmt.Errorf("%w: %s: %q must be a directory name", ErrInvalidValue, field, name)
		}
		if err := validateFieldLength(field, name, MaxNameLength); err != nil {
			return err
		}
	}

	if c.Input.MaxDepth < 0 || c.Input.MaxDepth > MaxDepthLimit {
		return fmt.Errorf("%w: input.maxDepth: must be between 0 and %d, got %d", ErrInvalidValue, MaxDepthLimit, c.Input.MaxDepth)
	}
	if c.Build.Workers < 0 || c.Build.Workers > MaxWorkers {
		return fmt.Errorf("%w: build.workers: must be between 0 and %d, got %d", ErrInvalidValue, MaxWorkers, c.Build.Workers)
	}
	if c.Markdown.TOCPlaceholder != "" && strings.TrimSpace(c.Markdown.TOCPlaceholder) == "" {
		return fmt.Errorf("%w: markdown.tocPlaceholder: must not be blank", ErrInvalidValue)
	}

	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// DefaultConfig returns a configuration where every option takes its built-in default.
func DefaultConfig() *Config {
	return &Config{}
}

// NotFoundError reports the locations searched for a named config.
type NotFoundError struct {
	Name  string
	Tried []string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%v: %s (tried %s)", ErrConfigNotFound, e.Name, strings.Join(e.Tried, ", "))
}

// Unwrap makes errors.Is(err, ErrConfigNotFound) hold.
func (e *NotFoundError) Unwrap() error { return ErrConfigNotFound }

// Hint suggests where a config could be created.
func (e *NotFoundError) Hint() string { return hints.ForConfigNotFound(e.Tried) }

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's searched as NAME.yaml and NAME.yml in the current
// directory, then in the user config directory under go-mdsite/.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	configPath := nameOrPath
	if !fileutil.IsFilePath(nameOrPath) {
		var err error
		if configPath, err = resolveConfigPath(nameOrPath); err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &NotFoundError{Name: nameOrPath, Tried: []string{configPath}}
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := yamlutil.UnmarshalStrict(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrConfigParse, configPath, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// resolveConfigPath searches for a config file by name in standard locations.
func resolveConfigPath(name string) (string, error) {
	extensions := []string{".yaml", ".yml"}
	tried := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		localPath := name + ext
		if fileutil.FileExists(localPath) {
			return localPath, nil
		}
		tried = append(tried, localPath)
	}

	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			userPath := filepath.Join(userConfigDir, hints.ConfigDirName, name+ext)
			if fileutil.FileExists(userPath) {
				return userPath, nil
			}
			tried = append(tried, userPath)
		}
	}

	return "", &NotFoundError{Name: name, Tried: tried}
}
