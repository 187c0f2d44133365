package commands

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"sort"
	"strings"
)

const prefix = "cmd "

// Command is a subcommand with its own flags and a Run function.
// Flags are defined on FlagSet; Run is called after Parse and can read flag state and
// FlagSet.Args() for positional arguments.
type Command struct {
	Name    string
	Help    string
	FlagSet *flag.FlagSet
	Run     func() error
}

// Registry holds subcommands by name. Add commands with Register; run with Execute.
type Registry struct {
	cmds map[string]*Command
}

// NewRegistry returns an empty command registry.
func NewRegistry() *Registry {
	return &Registry{cmds: make(map[string]*Command)}
}

// NewFlagSet returns a FlagSet for a subcommand that reports errors instead of exiting and
// prints nothing.
func NewFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

// Register adds a subcommand. name is the first token after "cmd" (e.g. "grid").
// fs is that command's FlagSet; run is called after fs.Parse(args[1:]) succeeds.
func (r *Registry) Register(name, help string, fs *flag.FlagSet, run func() error) {
	r.cmds[name] = &Command{Name: name, Help: help, FlagSet: fs, Run: run}
}

// Names returns the registered subcommand names in lexical order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.cmds))
	for n := range r.cmds {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Help returns the help line of a subcommand.
func (r *Registry) Help(name string) (string, bool) {
	c, ok := r.cmds[name]
	if !ok {
		return "", false
	}
	return c.Help, true
}

// Parse interprets line as a terminal line. If line starts with "cmd " (case-sensitive),
// the rest is tokenized and returned with ok true. Otherwise nil, false.
// Tokens are separated by spaces; double quotes group a token that contains spaces.
func Parse(line string) (args []string, ok bool) {
	if !strings.HasPrefix(line, prefix) {
		return nil, false
	}
	return tokenize(strings.TrimSpace(line[len(prefix):])), true
}

func tokenize(s string) []string {
	var (
		out    []string
		cur    strings.Builder
		quoted bool
		inTok  bool
	)
	for _, r := range s {
		switch {
		case r == '"':
			quoted = !quoted
			inTok = true
		case !quoted && (r == ' ' || r == '\t'):
			if inTok {
				out = append(out, cur.String())
				cur.Reset()
				inTok = false
			}
		default:
			cur.WriteRune(r)
			inTok = true
		}
	}
	if inTok {
		out = append(out, cur.String())
	}
	return out
}

// Execute runs the subcommand in args[0] with args[1:] as flag/positional arguments.
// Returns an error for unknown command, parse error, or from Run().
func (r *Registry) Execute(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("missing subcommand")
	}
	name := args[0]
	cmd, ok := r.cmds[name]
	if !ok {
		return fmt.Errorf("unknown command: %s", name)
	}
	if err := cmd.FlagSet.Parse(args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return fmt.Errorf("%s: %s", name, cmd.Help)
		}
		return fmt.Errorf("%s: %w", name, err)
	}
	return cmd.Run()
}
