package commands

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/eds-tools/eds-go/pkg/log"
)

// TraceOptions configures the trace command.
type TraceOptions struct {
	Stage    string
	Category string
	LoadID   string
	Source   string
	Stats    bool
	File     string
}

// RunTrace runs the trace command.
func RunTrace(args []string, stdout, stderr io.Writer) int {
	opts, err := parseTraceArgs(args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			printTraceUsage(stdout)
			return exitSuccess
		}
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitCommandError
	}

	if opts.File == "" {
		fmt.Fprintln(stderr, "Error: no trace file specified")
		printTraceUsage(stderr)
		return exitCommandError
	}

	filter, err := buildTraceFilter(opts)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitCommandError
	}

	if opts.Stats {
		err = runTraceStats(opts.File, filter, stdout)
	} else {
		err = runTraceView(opts.File, filter, stdout)
	}
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitCommandError
	}
	return exitSuccess
}

func buildTraceFilter(opts TraceOptions) (log.Filter, error) {
	filter := log.Filter{
		LoadID: opts.LoadID,
		Source: opts.Source,
	}

	if opts.Stage != "" {
		s, ok := log.ParseStage(opts.Stage)
		if !ok {
			return filter, fmt.Errorf("invalid stage: %s (must be read, header, resolve, assemble, or lint)", opts.Stage)
		}
		filter.Stage = &s
	}

	if opts.Category != "" {
		c, ok := log.ParseCategory(opts.Category)
		if !ok {
			return filter, fmt.Errorf("invalid category: %s (must be file, object, list, violation, or error)", opts.Category)
		}
		filter.Category = &c
	}
	return filter, nil
}

// eachEvent calls fn for every event in path that matches filter.
func eachEvent(path string, filter log.Filter, fn func(log.Event)) error {
	reader, err := log.NewFilteredReader(path, filter)
	if err != nil {
		return fmt.Errorf("failed to open trace file: %w", err)
	}
	defer reader.Close()

	err = reader.Each(func(event log.Event) error {
		fn(event)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to read event: %w", err)
	}
	return nil
}

func runTraceView(path string, filter log.Filter, w io.Writer) error {
	return eachEvent(path, filter, func(event log.Event) {
		formatEvent(w, event)
	})
}

// formatEvent writes a human-readable representation of the event to w.
func formatEvent(w io.Writer, event log.Event) {
	// Header line: timestamp [load:id] STAGE CATEGORY [section]
	ts := event.Timestamp.UTC().Format("2006-01-02T15:04:05.000000Z")
	fmt.Fprintf(w, "%s [load:%s] %-8s %s", ts, shortenLoadID(event.LoadID), event.Stage, event.Category)
	if event.Section != "" {
		fmt.Fprintf(w, " [%s]", event.Section)
	}
	fmt.Fprintln(w)

	if event.Source != "" {
		fmt.Fprintf(w, "  Source: %s\n", event.Source)
	}

	switch {
	case event.File != nil:
		formatFileDetails(w, event.File)
	case event.Object != nil:
		formatObjectDetails(w, event.Object)
	case event.List != nil:
		fmt.Fprintf(w, "  List: %s (%d declared, %d resolved)\n", event.List.Name, event.List.Declared, event.List.Resolved)
	case event.Violation != nil:
		formatViolationDetails(w, event.Violation)
	case event.Error != nil:
		formatErrorDetails(w, event.Error)
	}

	fmt.Fprintln(w)
}

// shortenLoadID returns the first 8 characters of the load ID.
func shortenLoadID(id string) string {
	if len(id) >= 8 {
		return id[:8]
	}
	return id
}

func formatFileDetails(w io.Writer, f *log.FileEvent) {
	fmt.Fprintf(w, "  Sections: %d\n", f.Sections)
	if f.Size > 0 {
		fmt.Fprintf(w, "  Size: %d bytes\n", f.Size)
	}
	if f.Objects > 0 {
		fmt.Fprintf(w, "  Objects: %d\n", f.Objects)
	}
	if f.Duration > 0 {
		fmt.Fprintf(w, "  Duration: %s\n", formatDuration(f.Duration))
	}
}

func formatObjectDetails(w io.Writer, o *log.ObjectEvent) {
	fmt.Fprintf(w, "  Object: 0x%04X.%02X %q\n", o.Index, o.Subindex, o.Name)
	fmt.Fprintf(w, "  Shape: %s (object type 0x%X)", o.Shape, o.ObjectType)
	if o.DataType != nil {
		fmt.Fprintf(w, "  DataType: 0x%04X", *o.DataType)
	}
	fmt.Fprintln(w)
	if o.Entries > 0 {
		fmt.Fprintf(w, "  Entries: %d\n", o.Entries)
	}
	if len(o.Skipped) > 0 {
		subs := make([]string, len(o.Skipped))
		for i, s := range o.Skipped {
			subs[i] = fmt.Sprintf("%d", s)
		}
		fmt.Fprintf(w, "  Skipped: %s\n", strings.Join(subs, ", "))
	}
}

func formatViolationDetails(w io.Writer, v *log.ViolationEvent) {
	fmt.Fprintf(w, "  Rule: %s (%s)\n", v.RuleID, v.Severity)
	fmt.Fprintf(w, "  Message: %s\n", v.Message)
	if v.Index != nil {
		fmt.Fprintf(w, "  Object: 0x%04X\n", *v.Index)
	}
}

func formatErrorDetails(w io.Writer, e *log.ErrorEventData) {
	fmt.Fprintf(w, "  Stage: %s\n", e.Stage)
	fmt.Fprintf(w, "  Message: %s\n", e.Message)
	if e.Kind != "" {
		fmt.Fprintf(w, "  Kind: %s\n", e.Kind)
	}
	if e.Context != "" {
		fmt.Fprintf(w, "  Context: %s\n", e.Context)
	}
}

// formatDuration formats a duration for display.
func formatDuration(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%.3fus", float64(d.Nanoseconds())/1000)
	}
	if d < time.Second {
		return fmt.Sprintf("%.3fms", float64(d.Microseconds())/1000)
	}
	return fmt.Sprintf("%.3fs", d.Seconds())
}

// TraceStats holds aggregate statistics about a trace file.
type TraceStats struct {
	TotalEvents      int
	Loads            int
	Failed           int
	Violations       int
	EventsByStage    map[log.Stage]int
	EventsByCategory map[log.Category]int
}

func runTraceStats(path string, filter log.Filter, w io.Writer) error {
	stats := &TraceStats{
		EventsByStage:    make(map[log.Stage]int),
		EventsByCategory: make(map[log.Category]int),
	}
	loads := make(map[string]bool)

	err := eachEvent(path, filter, func(event log.Event) {
		stats.TotalEvents++
		stats.EventsByStage[event.Stage]++
		stats.EventsByCategory[event.Category]++
		if event.LoadID != "" {
			loads[event.LoadID] = true
		}
		if event.Error != nil {
			stats.Failed++
		}
		if event.Violation != nil {
			stats.Violations++
		}
	})
	if err != nil {
		return err
	}
	stats.Loads = len(loads)

	printTraceStats(w, stats)
	return nil
}

func printTraceStats(w io.Writer, stats *TraceStats) {
	fmt.Fprintln(w, "=== Load Trace Statistics ===")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Total Events: %d\n", stats.TotalEvents)
	fmt.Fprintf(w, "Loads:        %d (%d failed)\n", stats.Loads, stats.Failed)
	fmt.Fprintf(w, "Violations:   %d\n", stats.Violations)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Events by Stage:")
	for s := log.StageRead; s <= log.StageLint; s++ {
		if n := stats.EventsByStage[s]; n > 0 {
			fmt.Fprintf(w, "  %-10s %d\n", s, n)
		}
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Events by Category:")
	for c := log.CategoryFile; c <= log.CategoryError; c++ {
		if n := stats.EventsByCategory[c]; n > 0 {
			fmt.Fprintf(w, "  %-10s %d\n", c, n)
		}
	}
}

func parseTraceArgs(args []string) (TraceOptions, error) {
	fs := flag.NewFlagSet("trace", flag.ContinueOnError)
	opts := TraceOptions{}

	fs.StringVar(&opts.Stage, "stage", "", "Only show events of this stage")
	fs.StringVar(&opts.Category, "category", "", "Only show events of this category")
	fs.StringVar(&opts.LoadID, "load", "", "Only show events of this load ID")
	fs.StringVar(&opts.Source, "source", "", "Only show events of this source file")
	fs.BoolVar(&opts.Stats, "stats", false, "Print statistics instead of events")

	fs.Usage = func() {}

	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	if fs.NArg() > 0 {
		opts.File = fs.Arg(0)
	}
	return opts, nil
}

func printTraceUsage(w io.Writer) {
	fmt.Fprintln(w, `
Usage: eds trace [options] <file.etrace>

Options:
  -stage STAGE     read, header, resolve, assemble, lint
  -category CAT    file, object, list, violation, error
  -load ID         Only show one load
  -source FILE     Only show loads of one data sheet
  -stats           Print statistics instead of events`)
}
