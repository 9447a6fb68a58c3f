package main

import (
	"errors"
	"os"

	mdsite "github.com/alnah/go-mdsite"
	"github.com/alnah/go-mdsite/internal/config"
)

// Exit codes for the mdsite CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Site built, every page written
	ExitGeneral = 1 // General error, including failed pages
	ExitUsage   = 2 // Invalid flags, config, or templates
	ExitIO      = 3 // Source missing, permission denied
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Failed pages are reported one by one; the run itself is a general failure.
	if errors.Is(err, mdsite.ErrPagesFailed) {
		return ExitGeneral
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, ErrUsage) ||
		errors.Is(err, ErrUnknownCommand) ||
		errors.Is(err, ErrInvalidWorkerCount) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, mdsite.ErrStyleNotFound) ||
		errors.Is(err, mdsite.ErrTemplateSetNotFound) ||
		errors.Is(err, mdsite.ErrIncompleteTemplateSet) ||
		errors.Is(err, mdsite.ErrInvalidTemplate) ||
		errors.Is(err, mdsite.ErrInvalidAssetPath) ||
		errors.Is(err, mdsite.ErrInvalidHighlightStyle) {
		return ExitUsage
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrNoInput) ||
		errors.Is(err, mdsite.ErrInvalidSourceDir) ||
		errors.Is(err, mdsite.ErrNoDocuments) ||
		errors.Is(err, mdsite.ErrWritePage) {
		return ExitIO
	}

	return ExitGeneral
}
