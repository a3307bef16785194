package commands

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"

	"golang.org/x/sync/errgroup"

	"github.com/eds-tools/eds-go/pkg/eds"
	"github.com/eds-tools/eds-go/pkg/lint"
	"github.com/eds-tools/eds-go/pkg/lint/rules"
)

// ValidateOptions configures the validate command.
type ValidateOptions struct {
	ConfigPath string
	Strict     bool
	JSON       bool
	Verbose    bool
	Jobs       int
	Files      []string
}

// RunValidate runs the validate command.
func RunValidate(args []string, stdout, stderr io.Writer) int {
	opts, err := parseValidateArgs(args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			printValidateUsage(stdout)
			return exitSuccess
		}
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitCommandError
	}

	if len(opts.Files) == 0 {
		fmt.Fprintln(stderr, "Error: no files specified")
		printValidateUsage(stderr)
		return exitCommandError
	}

	env, err := newEnvironment(opts.ConfigPath, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitCommandError
	}
	defer env.Close()

	if opts.Strict {
		env.cfg.Lint.Strict = true
	}
	jobs := env.cfg.Jobs
	if opts.Jobs > 0 {
		jobs = opts.Jobs
	}

	registry := rules.NewDefaultRegistry()
	env.cfg.ApplySeverities(registry)

	validator := lint.NewValidator(registry)
	validator.Logger = env.logger
	validator.Trace = env.trace
	lintOpts := env.cfg.LintOptions()

	// Files are loaded concurrently; results keep argument order.
	results := make([]*ValidationOutput, len(opts.Files))
	var g errgroup.Group
	g.SetLimit(jobs)
	for i, file := range opts.Files {
		i, file := i, file
		g.Go(func() error {
			results[i] = validateFile(file, env.parser, validator, lintOpts)
			return nil
		})
	}
	_ = g.Wait()

	hasErrors := false
	for _, result := range results {
		if !result.Valid {
			hasErrors = true
		}
		if !opts.JSON {
			printValidationResult(stdout, result, opts.Verbose)
		}
	}

	if opts.JSON {
		output, _ := json.MarshalIndent(results, "", "  ")
		fmt.Fprintln(stdout, string(output))
	}

	if hasErrors {
		return exitValidation
	}
	return exitSuccess
}

// ValidationOutput represents the validation result for a file.
type ValidationOutput struct {
	File     string        `json:"file"`
	Valid    bool          `json:"valid"`
	Objects  int           `json:"objects,omitempty"`
	Errors   []IssueOutput `json:"errors,omitempty"`
	Warnings []IssueOutput `json:"warnings,omitempty"`
	Infos    []IssueOutput `json:"infos,omitempty"`
	Device   *DeviceOutput `json:"device,omitempty"`
}

// IssueOutput represents a validation issue.
type IssueOutput struct {
	Code       string   `json:"code"`
	Message    string   `json:"message"`
	Line       int      `json:"line,omitempty"`
	Objects    []string `json:"objects,omitempty"`
	Suggestion string   `json:"suggestion,omitempty"`
}

// DeviceOutput represents device metadata.
type DeviceOutput struct {
	Vendor   string `json:"vendor,omitempty" yaml:"vendor,omitempty"`
	Product  string `json:"product,omitempty" yaml:"product,omitempty"`
	Revision string `json:"revision,omitempty" yaml:"revision,omitempty"`
	Version  string `json:"eds_version,omitempty" yaml:"eds_version,omitempty"`
}

func validateFile(path string, parser *eds.Parser, validator *lint.Validator, opts lint.Options) *ValidationOutput {
	output := &ValidationOutput{File: path, Valid: true}

	f, err := parser.ParseFile(path)
	if err != nil {
		output.Valid = false
		output.Errors = append(output.Errors, parseIssue(err))
		return output
	}

	output.Objects = f.Dictionary.Len()
	output.Device = &DeviceOutput{
		Vendor:   f.DeviceInfo.VendorName,
		Product:  f.DeviceInfo.ProductName,
		Revision: fmt.Sprintf("0x%08X", f.DeviceInfo.RevisionNumber),
		Version:  f.FileInfo.EDSVersion.String(),
	}

	result := validator.Validate(f, opts)
	output.Valid = result.Valid
	output.Errors = append(output.Errors, issuesOf(result.Errors)...)
	output.Warnings = issuesOf(result.Warnings)
	output.Infos = issuesOf(result.Infos)
	return output
}

func parseIssue(err error) IssueOutput {
	issue := IssueOutput{Code: "PARSE", Message: err.Error()}
	var e *eds.Error
	if errors.As(err, &e) {
		issue.Line = e.Line
		if e.Address != nil {
			issue.Objects = []string{e.Address.String()}
		}
	}
	return issue
}

func issuesOf(violations []lint.Violation) []IssueOutput {
	if len(violations) == 0 {
		return nil
	}
	out := make([]IssueOutput, len(violations))
	for i, v := range violations {
		out[i] = IssueOutput{
			Code:       v.RuleID,
			Message:    v.Message,
			Suggestion: v.Suggestion,
		}
		for _, a := range v.Addresses {
			out[i].Objects = append(out[i].Objects, a.String())
		}
	}
	return out
}

func printValidationResult(w io.Writer, result *ValidationOutput, verbose bool) {
	if result.Valid && len(result.Warnings) == 0 {
		fmt.Fprintf(w, "%s: OK\n", result.File)
	} else if result.Valid {
		fmt.Fprintf(w, "%s: OK (with %d warnings)\n", result.File, len(result.Warnings))
	} else {
		fmt.Fprintf(w, "%s: FAILED (%d errors, %d warnings)\n", result.File, len(result.Errors), len(result.Warnings))
	}

	for _, e := range result.Errors {
		fmt.Fprintf(w, "  ERROR [%s]: %s\n", e.Code, e.Message)
		printIssueDetails(w, e)
	}

	// Warnings are listed on failure or on request; infos only on request.
	if verbose || !result.Valid {
		for _, warn := range result.Warnings {
			fmt.Fprintf(w, "  WARNING [%s]: %s\n", warn.Code, warn.Message)
			printIssueDetails(w, warn)
		}
	}
	if verbose {
		for _, info := range result.Infos {
			fmt.Fprintf(w, "  INFO [%s]: %s\n", info.Code, info.Message)
		}
	}
}

func printIssueDetails(w io.Writer, issue IssueOutput) {
	if issue.Suggestion != "" {
		fmt.Fprintf(w, "    Suggestion: %s\n", issue.Suggestion)
	}
}

func parseValidateArgs(args []string) (ValidateOptions, error) {
	fs := flag.NewFlagSet("validate", flag.ContinueOnError)
	opts := ValidateOptions{}

	fs.StringVar(&opts.ConfigPath, "config", "", "Config file (YAML or TOML)")
	fs.BoolVar(&opts.Strict, "strict", false, "Fail on warnings as well as errors")
	fs.BoolVar(&opts.JSON, "json", false, "Output results as JSON")
	fs.BoolVar(&opts.Verbose, "verbose", false, "Show all warnings and infos")
	fs.BoolVar(&opts.Verbose, "v", false, "Show all warnings and infos (shorthand)")
	fs.IntVar(&opts.Jobs, "j", 0, "Number of files validated at once")

	fs.Usage = func() {}

	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	if opts.Jobs < 0 {
		return opts, fmt.Errorf("-j must not be negative, got %d", opts.Jobs)
	}

	opts.Files = fs.Args()
	return opts, nil
}

func printValidateUsage(w io.Writer) {
	fmt.Fprintln(w, `
Usage: eds validate [options] <files...>

Options:
  -config FILE   Load settings from a YAML or TOML file
  -strict        Fail on warnings as well as errors
  -json          Output results as JSON
  -v, -verbose   Show all warnings and infos
  -j N           Validate up to N files at once (default: config jobs)

Exit codes:
  0  All files loaded and passed the lint rules
  1  Command error (bad flags, unreadable config)
  2  At least one file failed to load or to validate`)
}
