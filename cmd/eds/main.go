// eds is a CLI tool for loading, validating and inspecting CANopen
// electronic data sheets.
package main

import (
	"fmt"
	"os"

	"github.com/eds-tools/eds-go/cmd/eds/commands"
)

const (
	exitSuccess      = 0
	exitCommandError = 1
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(exitCommandError)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	var exitCode int
	switch cmd {
	case "validate":
		exitCode = commands.RunValidate(args, os.Stdout, os.Stderr)
	case "show":
		exitCode = commands.RunShow(args, os.Stdout, os.Stderr)
	case "inspect":
		exitCode = commands.RunInspect(args, os.Stdout, os.Stderr)
	case "trace":
		exitCode = commands.RunTrace(args, os.Stdout, os.Stderr)
	case "help", "-h", "--help":
		printUsage()
		exitCode = exitSuccess
	case "version", "-v", "--version":
		fmt.Println("eds version 0.1.0")
		exitCode = exitSuccess
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		printUsage()
		exitCode = exitCommandError
	}

	os.Exit(exitCode)
}

func printUsage() {
	fmt.Println(`eds - CANopen electronic data sheet tool

Usage:
  eds <command> [options] [files...]

Commands:
  validate   Load data sheets and check them against lint rules
  show       Display the headers and object lists of a data sheet
  inspect    Browse the object dictionary of a data sheet interactively
  trace      View a load trace written with trace_file / EDS_TRACE_FILE

Options:
  -h, --help     Show this help message
  -v, --version  Show version information

Environment:
  EDS_LOG_LEVEL   debug, info, warn or error
  EDS_LOG_FORMAT  text or json
  EDS_TRACE_FILE  write a CBOR load trace to this file
  EDS_JOBS        number of files validated at once

Examples:
  eds validate drive.eds
  eds validate -strict -json *.eds
  eds show -format yaml drive.eds
  eds inspect drive.eds
  eds trace -stage resolve load.etrace

For command-specific help, run:
  eds <command> -help`)
}
