package main

import (
	"context"
	"errors"
	"fmt"

	flag "github.com/spf13/pflag"
)

// Sentinel errors for command dispatch.
var (
	ErrUsage          = errors.New("usage error")
	ErrUnknownCommand = errors.New("unknown command")
)

// run dispatches args (including the program name) and returns the exit code.
// Errors are printed to env.Stderr with a hint when one applies.
func run(ctx context.Context, args []string, env *Environment) int {
	err := dispatch(ctx, args[1:], env)
	if errors.Is(err, flag.ErrHelp) {
		return ExitSuccess
	}
	if err != nil && err != ErrUsage {
		fmt.Fprintf(env.Stderr, "error: %v%s\n", err, hintFor(err))
	}
	return exitCodeFor(err)
}

func dispatch(ctx context.Context, args []string, env *Environment) error {
	if len(args) == 0 {
		printUsage(env.Stderr)
		return ErrUsage
	}

	switch args[0] {
	case "build":
		return runBuild(ctx, args[1:], env)
	case "version", "--version":
		fmt.Fprintf(env.Stdout, "mdsite %s\n", Version)
		return nil
	case "help", "-h", "--help":
		return runHelp(args[1:], env)
	default:
		printUsage(env.Stderr)
		return fmt.Errorf("%w: %s", ErrUnknownCommand, args[0])
	}
}
