package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/eds-tools/eds-go/pkg/inspect"
)

// InspectOptions configures the inspect command.
type InspectOptions struct {
	ConfigPath string
	Commands   string // semicolon separated, run instead of the interactive loop
	File       string
}

// RunInspect runs the inspect command.
func RunInspect(args []string, stdout, stderr io.Writer) int {
	opts, err := parseInspectArgs(args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			printInspectUsage(stdout)
			return exitSuccess
		}
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitCommandError
	}

	if opts.File == "" {
		fmt.Fprintln(stderr, "Error: no file specified")
		printInspectUsage(stderr)
		return exitCommandError
	}

	env, err := newEnvironment(opts.ConfigPath, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitCommandError
	}
	defer env.Close()

	f, err := env.parser.ParseFile(opts.File)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitValidation
	}

	shell := inspect.NewShell(f, stdout)

	if opts.Commands != "" {
		for _, line := range strings.Split(opts.Commands, ";") {
			if !shell.Execute(line) {
				break
			}
		}
		return exitSuccess
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := shell.Run(ctx); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitCommandError
	}
	return exitSuccess
}

func parseInspectArgs(args []string) (InspectOptions, error) {
	fs := flag.NewFlagSet("inspect", flag.ContinueOnError)
	opts := InspectOptions{}

	fs.StringVar(&opts.ConfigPath, "config", "", "Config file (YAML or TOML)")
	fs.StringVar(&opts.Commands, "c", "", "Run these commands (separated by ';') and exit")

	fs.Usage = func() {}

	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	if fs.NArg() > 0 {
		opts.File = fs.Arg(0)
	}
	return opts, nil
}

func printInspectUsage(w io.Writer) {
	fmt.Fprintln(w, `
Usage: eds inspect [options] <file>

Options:
  -config FILE   Load settings from a YAML or TOML file
  -c COMMANDS    Run shell commands separated by ';' and exit
                 (e.g. -c "info; get 0x1018.1")

Without -c an interactive shell is started. Type 'help' for its commands.`)
}
