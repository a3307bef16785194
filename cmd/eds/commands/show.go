package commands

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/eds-tools/eds-go/pkg/eds"
	"github.com/eds-tools/eds-go/pkg/inspect"
)

// ShowOptions configures the show command.
type ShowOptions struct {
	ConfigPath string
	Format     string // text, json, yaml
	List       string // mandatory, optional, manufacturer or empty for all
	File       string
}

// ShowOutput represents a loaded data sheet for display.
type ShowOutput struct {
	File        string        `json:"file,omitempty" yaml:"file,omitempty"`
	FileName    string        `json:"file_name,omitempty" yaml:"file_name,omitempty"`
	Version     string        `json:"version,omitempty" yaml:"version,omitempty"`
	Description string        `json:"description,omitempty" yaml:"description,omitempty"`
	Device      *DeviceOutput `json:"device,omitempty" yaml:"device,omitempty"`
	BaudRates   []uint16      `json:"baud_rates,omitempty" yaml:"baud_rates,omitempty"`
	RXPDOs      uint16        `json:"rx_pdos" yaml:"rx_pdos"`
	TXPDOs      uint16        `json:"tx_pdos" yaml:"tx_pdos"`
	Lists       []ListOutput  `json:"lists" yaml:"lists"`
}

// ListOutput represents one object list.
type ListOutput struct {
	Name    string         `json:"name" yaml:"name"`
	Objects []ObjectOutput `json:"objects" yaml:"objects"`
}

// ObjectOutput represents a single top-level object.
type ObjectOutput struct {
	Address string `json:"address" yaml:"address"`
	Name    string `json:"name" yaml:"name"`
	Shape   string `json:"shape" yaml:"shape"`
	Type    string `json:"type,omitempty" yaml:"type,omitempty"`
	Access  string `json:"access,omitempty" yaml:"access,omitempty"`
}

// RunShow runs the show command.
func RunShow(args []string, stdout, stderr io.Writer) int {
	opts, err := parseShowArgs(args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			printShowUsage(stdout)
			return exitSuccess
		}
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitCommandError
	}

	if opts.File == "" {
		fmt.Fprintln(stderr, "Error: no file specified")
		printShowUsage(stderr)
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

	insp := inspect.NewInspector(f)
	lists, err := insp.ListObjects(opts.List)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitCommandError
	}

	output := buildShowOutput(insp.Summarize(), lists)
	output.File = opts.File

	switch opts.Format {
	case "json":
		data, _ := json.MarshalIndent(output, "", "  ")
		fmt.Fprintln(stdout, string(data))
	case "yaml":
		data, _ := yaml.Marshal(output)
		fmt.Fprint(stdout, string(data))
	default:
		printShowText(stdout, insp, lists)
	}

	return exitSuccess
}

func buildShowOutput(s *inspect.Summary, lists map[eds.ObjectList][]inspect.ObjectRow) ShowOutput {
	output := ShowOutput{
		FileName:    s.FileName,
		Version:     s.Version,
		Description: s.Description,
		Device: &DeviceOutput{
			Vendor:   s.Vendor,
			Product:  s.Product,
			Revision: fmt.Sprintf("0x%08X", s.Revision),
		},
		BaudRates: s.BaudRates,
		RXPDOs:    s.RXPDOs,
		TXPDOs:    s.TXPDOs,
	}

	// Keep the canonical list order; maps would not.
	for _, l := range eds.ObjectLists() {
		rows, ok := lists[l]
		if !ok {
			continue
		}
		lo := ListOutput{Name: string(l), Objects: make([]ObjectOutput, len(rows))}
		for i, row := range rows {
			lo.Objects[i] = ObjectOutput{
				Address: row.Address.String(),
				Name:    row.Name,
				Shape:   row.Shape,
				Type:    row.Type,
				Access:  row.Access,
			}
		}
		output.Lists = append(output.Lists, lo)
	}
	return output
}

func printShowText(w io.Writer, insp *inspect.Inspector, lists map[eds.ObjectList][]inspect.ObjectRow) {
	f := inspect.NewFormatter()
	fmt.Fprint(w, insp.FormatSummary(insp.Summarize(), f))

	for _, l := range eds.ObjectLists() {
		rows, ok := lists[l]
		if !ok {
			continue
		}
		fmt.Fprintf(w, "\n%s (%d):\n", l, len(rows))
		fmt.Fprint(w, f.FormatObjectTable(rows))
	}
}

func parseShowArgs(args []string) (ShowOptions, error) {
	fs := flag.NewFlagSet("show", flag.ContinueOnError)
	opts := ShowOptions{}

	fs.StringVar(&opts.ConfigPath, "config", "", "Config file (YAML or TOML)")
	fs.StringVar(&opts.Format, "format", "text", "Output format (text, json, yaml)")
	fs.StringVar(&opts.List, "list", "", "Only show this object list")

	fs.Usage = func() {}

	if err := fs.Parse(args); err != nil {
		return opts, err
	}

	switch opts.Format {
	case "text", "json", "yaml":
	default:
		return opts, fmt.Errorf("unknown format %q (want text, json or yaml)", opts.Format)
	}

	if fs.NArg() > 0 {
		opts.File = fs.Arg(0)
	}
	return opts, nil
}

func printShowUsage(w io.Writer) {
	fmt.Fprintln(w, `
Usage: eds show [options] <file>

Options:
  -config FILE    Load settings from a YAML or TOML file
  -format FORMAT  Output format: text, json, yaml (default: text)
  -list NAME      Only show one list: mandatory, optional, manufacturer`)
}
