package commands

import (
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/fatih/color"
	"github.com/josephlewis42/minish/core/vos"
	getopt "github.com/pborman/getopt/v2"
)

// ErrMissingOperand is reported when a builtin gets fewer arguments than it
// requires.
var ErrMissingOperand = errors.New("missing operand")

// BuiltinFunc is the body of a builtin. It gets a SimpleCommand built from
// its registry entry so it can add flags before calling Run.
type BuiltinFunc func(cmd *SimpleCommand, virtOS vos.VOS) int

// Builtin is a command implemented by the shell itself.
type Builtin struct {
	// Name the builtin is invoked by.
	Name string
	// MinArgs is the number of operands required after the name.
	MinArgs int
	// Use holds a one line usage string.
	Use string
	// Short holds a one line description of the builtin.
	Short string

	Main BuiltinFunc
}

// allBuiltins is filled by init() functions and never modified afterwards.
var allBuiltins = make(map[string]*Builtin)

func addBuiltin(b *Builtin) {
	if _, ok := allBuiltins[b.Name]; ok {
		panic(fmt.Sprintf("builtin %q registered twice", b.Name))
	}
	allBuiltins[b.Name] = b
}

// Lookup finds the builtin with the given name.
func Lookup(name string) (*Builtin, bool) {
	b, ok := allBuiltins[name]
	return b, ok
}

// ListBuiltins returns all builtins sorted by name.
func ListBuiltins() []*Builtin {
	var out []*Builtin
	for _, b := range allBuiltins {
		out = append(out, b)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].Name < out[j].Name
	})
	return out
}

// CheckArity reports an error wrapping ErrMissingOperand if argv, which
// includes the builtin name, doesn't hold enough operands. Asking for help
// always passes.
func (b *Builtin) CheckArity(argv []string) error {
	for _, arg := range argv[1:] {
		if arg == "-h" || arg == "--help" {
			return nil
		}
	}

	if got := len(argv) - 1; got < b.MinArgs {
		return fmt.Errorf("%s: %w (want %d, got %d)", b.Name, ErrMissingOperand, b.MinArgs, got)
	}
	return nil
}

// Command creates a fresh SimpleCommand for one invocation.
func (b *Builtin) Command() *SimpleCommand {
	return &SimpleCommand{
		Use:     b.Use,
		Short:   b.Short,
		MinArgs: b.MinArgs,
	}
}

// Invoke runs the builtin, it's a vos.ProcessFunc.
func (b *Builtin) Invoke(virtOS vos.VOS) int {
	return b.Main(b.Command(), virtOS)
}

// PrintUsageError writes the missing operand diagnostic for the builtin.
func (b *Builtin) PrintUsageError(w io.Writer) {
	fmt.Fprintf(w, "%s: %s\n", b.Name, ErrMissingOperand)
	fmt.Fprintf(w, "usage: %s\n", b.Use)
}

type SimpleCommand struct {
	// Use holds a one line usage string
	Use string
	// Short holds a sone line description of the command.
	Short string
	// MinArgs is the number of operands left after flag parsing that the
	// callback requires.
	MinArgs int
	// ShowHelp sets whether help is displayed or not.
	// If this is non-nil when Run() is called, then the default help flag isn't
	// added.
	ShowHelp *bool
	// RawArgs disables flag parsing so operands like "-3" reach the callback,
	// only a leading -h or --help is still honored.
	RawArgs bool

	flags *getopt.Set
}

// Flags gets the command's flag set.
func (s *SimpleCommand) Flags() *getopt.Set {
	if s.flags == nil {
		s.flags = getopt.New()
	}

	return s.flags
}

// PrintHelp writes help for the command to the given writer.
func (s *SimpleCommand) PrintHelp(w io.Writer) {
	fmt.Fprint(w, "usage: ")
	fmt.Fprintln(w, s.Use)
	fmt.Fprintln(w, s.Short)
	if s.RawArgs {
		return
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	s.Flags().PrintOptions(w)
}

// LogProgramError writes err to stderr prefixed with the program name.
func (s *SimpleCommand) LogProgramError(virtOS vos.VOS, err error) {
	fmt.Fprintf(virtOS.Stderr(), "%s: %v\n", programName(virtOS), err)
}

// Run the command, if flag parsing was succcessful and enough operands remain
// call the callback with the operands.
func (s *SimpleCommand) Run(virtOS vos.VOS, callback func(args []string) int) int {
	if s.RawArgs {
		return s.runRaw(virtOS, callback)
	}

	opts := s.Flags()

	// Add help flag if not overridden.
	if s.ShowHelp == nil {
		s.ShowHelp = opts.BoolLong("help", 'h', "show this help and exit")
	}

	if err := opts.Getopt(virtOS.Args(), nil); err != nil {
		fmt.Fprintf(virtOS.Stderr(), "error: %s\n\n", err)

		s.PrintHelp(virtOS.Stdout())
		return 1
	}

	if *s.ShowHelp {
		s.PrintHelp(virtOS.Stdout())
		return 0
	}

	return s.runOperands(virtOS, opts.Args(), callback)
}

func (s *SimpleCommand) runRaw(virtOS vos.VOS, callback func(args []string) int) int {
	var args []string
	if all := virtOS.Args(); len(all) > 1 {
		args = all[1:]
	}

	if len(args) > 0 && (args[0] == "-h" || args[0] == "--help") {
		s.PrintHelp(virtOS.Stdout())
		return 0
	}

	return s.runOperands(virtOS, args, callback)
}

func (s *SimpleCommand) runOperands(virtOS vos.VOS, args []string, callback func(args []string) int) int {
	if len(args) < s.MinArgs {
		fmt.Fprintf(virtOS.Stderr(), "%s: %s\n", programName(virtOS), ErrMissingOperand)
		fmt.Fprintf(virtOS.Stderr(), "usage: %s\n", s.Use)
		return 1
	}

	return callback(args)
}

func programName(virtOS vos.VOS) string {
	if args := virtOS.Args(); len(args) > 0 {
		return args[0]
	}
	return "minish"
}

var (
	ColorBoldGreen = color.New(color.FgGreen, color.Bold)
	ColorBoldCyan  = color.New(color.FgCyan, color.Bold)
)
