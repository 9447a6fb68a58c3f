package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	mdsite "github.com/alnah/go-mdsite"
	"github.com/alnah/go-mdsite/internal/assets"
	"github.com/alnah/go-mdsite/internal/hints"
)

// printReport outputs per-page results using the environment's writers.
// Failures are always printed; quiet hides everything else.
func printReport(report *mdsite.Report, quiet, verbose bool, env *Environment) {
	for _, p := range report.Pages {
		if p.Err != nil {
			fmt.Fprintf(env.Stderr, "FAILED %s: %v%s\n", p.Source, p.Err, hintFor(p.Err))
			continue
		}

		if quiet {
			continue
		}

		if verbose {
			fmt.Fprintf(env.Stdout, "%s -> %s (%v)\n", p.Source, p.Output, p.Duration.Round(time.Millisecond))
			if len(p.Missing) > 0 {
				fmt.Fprintf(env.Stdout, "  missing template keys: %s\n", strings.Join(p.Missing, ", "))
			}
		} else {
			fmt.Fprintf(env.Stdout, "Created %s\n", p.Output)
		}
	}

	if !quiet && len(report.Pages) > 1 {
		fmt.Fprintf(env.Stdout, "\n%d succeeded, %d failed", report.Succeeded(), report.Failed())
		if verbose {
			fmt.Fprintf(env.Stdout, " in %v", report.Duration.Round(time.Millisecond))
		}
		fmt.Fprintln(env.Stdout)
	}
}

// hinter is implemented by errors that carry their own hint.
type hinter interface {
	Hint() string
}

// hintFor returns an actionable "\n  hint: ..." suffix for err, or "".
func hintFor(err error) string {
	var h hinter
	if errors.As(err, &h) {
		return h.Hint()
	}

	switch {
	case errors.Is(err, mdsite.ErrFrontMatter):
		return hints.ForFrontMatter()
	case errors.Is(err, mdsite.ErrUnresolvableEmbed):
		return hints.ForUnresolvableEmbed()
	case errors.Is(err, mdsite.ErrWritePage):
		return hints.ForOutputDirectory()
	case errors.Is(err, mdsite.ErrTemplateSetNotFound):
		return hints.ForTemplateSetNotFound(assets.NewEmbeddedLoader().TemplateSetNames())
	case errors.Is(err, mdsite.ErrIncompleteTemplateSet):
		return hints.ForIncompleteTemplateSet()
	}
	return ""
}
