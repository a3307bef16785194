package inspect

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"

	"github.com/eds-tools/eds-go/pkg/eds"
)

// Shell is an interactive command loop over an Inspector.
type Shell struct {
	inspector *Inspector
	formatter *Formatter
	out       io.Writer
}

// NewShell creates a shell for file that writes its output to out.
func NewShell(file *eds.File, out io.Writer) *Shell {
	return &Shell{
		inspector: NewInspector(file),
		formatter: NewFormatter(),
		out:       out,
	}
}

// Run starts the interactive command loop on the terminal. It returns when
// the user quits, input ends, or ctx is cancelled.
func (s *Shell) Run(ctx context.Context) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "eds> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
		AutoComplete:    s.completer(),
	})
	if err != nil {
		return fmt.Errorf("failed to create readline: %w", err)
	}
	defer rl.Close()

	s.out = rl.Stdout()
	s.printHelp()

	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		line, err := rl.Readline()
		if err != nil {
			if errors.Is(err, readline.ErrInterrupt) {
				continue
			}
			// EOF
			return nil
		}
		if !s.Execute(line) {
			return nil
		}
	}
}

func (s *Shell) completer() *readline.PrefixCompleter {
	lists := make([]readline.PrefixCompleterInterface, 0, 3)
	for _, l := range eds.ObjectLists() {
		lists = append(lists, readline.PcItem(l.Short()))
	}
	names := make([]readline.PrefixCompleterInterface, 0, len(objectNames))
	for _, n := range ObjectNames() {
		names = append(names, readline.PcItem(n))
	}
	return readline.NewPrefixCompleter(
		readline.PcItem("get", names...),
		readline.PcItem("list", lists...),
		readline.PcItem("info"),
		readline.PcItem("names"),
		readline.PcItem("help"),
		readline.PcItem("quit"),
	)
}

// Execute runs one command line. It returns false when the shell should exit.
func (s *Shell) Execute(line string) bool {
	input := strings.TrimSpace(line)
	if input == "" {
		return true
	}

	parts := strings.Fields(input)
	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	switch cmd {
	case "help", "?":
		s.printHelp()

	case "get", "g":
		s.cmdGet(args)

	case "list", "ls", "l":
		s.cmdList(args)

	case "info", "i":
		fmt.Fprint(s.out, s.inspector.FormatSummary(s.inspector.Summarize(), s.formatter))

	case "names":
		s.cmdNames()

	case "quit", "exit", "q":
		fmt.Fprintln(s.out, "Exiting...")
		return false

	default:
		fmt.Fprintf(s.out, "Unknown command: %s (type 'help' for commands)\n", cmd)
	}
	return true
}

func (s *Shell) printHelp() {
	fmt.Fprintln(s.out, `
Data sheet commands:
  get <path>     - Show an object or sub-entry
  list [list]    - List objects (mandatory, optional, manufacturer)
  info           - Show file and device information
  names          - Show well-known object names
  help           - Show this help
  quit           - Exit

Paths: 0x1018, 1018, 0x1018.2, 1018sub2, identity, identity.1`)
}

func (s *Shell) cmdGet(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(s.out, "Usage: get <path>")
		fmt.Fprintln(s.out, "  Example: get 0x1018.1")
		return
	}

	path, err := ParsePath(args[0])
	if err != nil {
		fmt.Fprintf(s.out, "Invalid path: %v\n", err)
		return
	}

	info, err := s.inspector.Get(path)
	if err != nil {
		fmt.Fprintf(s.out, "Error: %v\n", err)
		return
	}
	fmt.Fprint(s.out, s.inspector.FormatInfo(info, s.formatter))
}

func (s *Shell) cmdList(args []string) {
	name := ""
	if len(args) > 0 {
		name = args[0]
	}
	lists, err := s.inspector.ListObjects(name)
	if err != nil {
		fmt.Fprintf(s.out, "Error: %v\n", err)
		return
	}
	for _, l := range eds.ObjectLists() {
		rows, ok := lists[l]
		if !ok {
			continue
		}
		fmt.Fprintf(s.out, "%s (%d):\n", l, len(rows))
		fmt.Fprint(s.out, s.formatter.FormatObjectTable(rows))
	}
}

func (s *Shell) cmdNames() {
	for _, n := range ObjectNames() {
		fmt.Fprintf(s.out, "  %-16s 0x%04X\n", n, objectNames[n])
	}
}
