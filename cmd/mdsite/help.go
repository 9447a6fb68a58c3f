package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mdsite <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  build      Build a static HTML site from markdown files")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'mdsite help <command>' for details on a specific command.")
}

// printBuildUsage prints usage for the build command.
func printBuildUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mdsite build [input] [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Render every .md and .markdown file under input into an HTML page,")
	fmt.Fprintln(w, "mirroring the directory layout in the output directory.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  input    Source directory (optional if config has input.defaultDir)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -o, --output <dir>          Output directory (default \"dist\")")
	fmt.Fprintln(w, "  -c, --config <name>         Config file name or path")
	fmt.Fprintln(w, "  -w, --workers <n>           Parallel workers (0 = auto)")
	fmt.Fprintln(w, "      --exclude <name>        Directory name to skip (repeatable)")
	fmt.Fprintln(w, "      --max-depth <n>         Directory levels to enter (0 = unlimited)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Rendering:")
	fmt.Fprintln(w, "      --template <s>          Template set name or directory path")
	fmt.Fprintln(w, "      --asset-path <dir>      Custom styles/ and templates/ directory")
	fmt.Fprintln(w, "      --highlight-style <s>   Chroma style for code blocks (default \"github\")")
	fmt.Fprintln(w, "      --toc-placeholder <s>   Paragraph replaced by a table of contents (default \"[TOC]\")")
	fmt.Fprintln(w, "      --unsafe-html           Pass raw HTML in markdown through")
	fmt.Fprintln(w, "      --sanitize              Strip untrusted markup from pages")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet                 Only show errors")
	fmt.Fprintln(w, "  -v, --verbose               Show timing and missing template keys")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  MDSITE_CONFIG, MDSITE_INPUT_DIR, MDSITE_OUTPUT_DIR, MDSITE_TEMPLATE,")
	fmt.Fprintln(w, "  MDSITE_ASSET_PATH, MDSITE_HIGHLIGHT_STYLE, MDSITE_WORKERS")
	fmt.Fprintln(w, "  Precedence: flags > environment > config file > defaults")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Front matter dates:")
	fmt.Fprintln(w, "  date: auto              Today as YYYY-MM-DD")
	fmt.Fprintln(w, "  date: auto:FORMAT       Tokens: YYYY, YY, MMMM, MMM, MM, M, DD, D")
	fmt.Fprintln(w, "                          Presets (case-insensitive): iso, european, us, long")
	fmt.Fprintln(w, "                          Use [text] to escape literals: [Date]: YYYY")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) error {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return nil
	}

	switch args[0] {
	case "build":
		printBuildUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: mdsite version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: mdsite help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		printUsage(env.Stderr)
		return fmt.Errorf("%w: %s", ErrUnknownCommand, args[0])
	}
	return nil
}
