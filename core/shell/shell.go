package shell

import (
	"errors"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/fatih/color"
	"github.com/josephlewis42/minish/commands"
	"github.com/josephlewis42/minish/core/config"
	"github.com/josephlewis42/minish/core/logger"
	"github.com/josephlewis42/minish/core/proc"
	"github.com/josephlewis42/minish/core/vos"
	"github.com/spf13/afero"
)

const (
	DefaultPrompt = "minish> "
	ExitCommand   = "exit"

	// StatusUsage is the status of a line that couldn't be run because it
	// was malformed.
	StatusUsage = 2
)

var bannerRule = strings.Repeat("=", 64)

// Shell reads lines, runs builtins in process and launches everything else
// on the host.
type Shell struct {
	Config *config.Configuration
	Files  vos.VIO
	Input  vos.LineReader
	// Fs is used by builtins and for redirection targets.
	Fs       vos.VFS
	Launcher *proc.Launcher

	events     logger.EventRecorder
	tokenizer  *Tokenizer
	lastStatus int
}

// New creates a shell running against the host filesystem. A nil input
// reads plain lines from files' stdin and a nil events discards events.
func New(cfg *config.Configuration, files vos.VIO, input vos.LineReader, events logger.EventRecorder) *Shell {
	if cfg == nil {
		cfg = &config.Configuration{}
	}
	if files == nil {
		files = vos.NewNullIO()
	}
	if input == nil {
		input = vos.NewStreamLineReader(files.Stdin())
	}
	if events == nil {
		events = &logger.NopEventRecorder{}
	}

	hostFs := afero.NewOsFs()
	return &Shell{
		Config:    cfg,
		Files:     files,
		Input:     input,
		Fs:        hostFs,
		Launcher:  proc.NewLauncher(hostFs, files, events),
		events:    events,
		tokenizer: &Tokenizer{MaxLineLength: cfg.MaxLineLength},
	}
}

// LastStatus returns the exit status of the most recent line.
func (s *Shell) LastStatus() int {
	return s.lastStatus
}

func (s *Shell) prompt() string {
	if s.Config.Prompt == "" {
		return DefaultPrompt
	}
	return s.Config.Prompt
}

// Run reads and runs lines until exit or end of input.
func (s *Shell) Run() int {
	if s.Config.Banner {
		s.printBanner()
	}

	for {
		line, err := s.Input.ReadLine(s.prompt())
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			log.Printf("Error reading input: %v", err)
			break
		}

		if quit := s.RunLine(line); quit {
			break
		}
	}

	fmt.Fprintln(s.Files.Stdout(), "Thanks for using minish! Goodbye!")
	return 0
}

func (s *Shell) printBanner() {
	w := s.Files.Stdout()
	fmt.Fprintln(w, bannerRule)
	color.New(color.FgGreen, color.Bold).Fprintf(w, "%40s\n", "Mini Shell (minish)")
	fmt.Fprintln(w, bannerRule)
	fmt.Fprintln(w, "Type 'help' to list the builtins and 'exit' to quit.")
}

// RunLine runs a single line of input, it returns true if the shell should
// quit.
func (s *Shell) RunLine(line string) (quit bool) {
	tokens, err := s.tokenizer.Tokenize(line)
	switch {
	case errors.Is(err, ErrEmptyLine):
		return false
	case err != nil:
		s.events.Record(&logger.InvalidInvocation{Error: err.Error()})
		s.reportError(err)
		s.lastStatus = StatusUsage
		return false
	}

	if tokens[0] == ExitCommand {
		return true
	}

	s.lastStatus = s.Dispatch(tokens)
	return false
}

// Dispatch runs a tokenized command and returns its exit status. Builtins
// always run in the shell's process and never reach the launcher directly.
func (s *Shell) Dispatch(tokens []string) int {
	if builtin, ok := commands.Lookup(tokens[0]); ok {
		return s.runBuiltin(builtin, tokens)
	}

	return s.runProgram(tokens)
}

func (s *Shell) runBuiltin(builtin *commands.Builtin, argv []string) int {
	if err := builtin.CheckArity(argv); err != nil {
		s.events.Record(&logger.InvalidInvocation{Command: argv, Error: err.Error()})
		builtin.PrintUsageError(s.Files.Stderr())
		return StatusUsage
	}

	s.events.Record(&logger.RunCommand{Command: argv, Builtin: true})
	return builtin.Invoke(vos.NewProc(argv, &vos.ProcAttr{
		Fs:     s.Fs,
		Files:  s.Files,
		Input:  s.Input,
		Runner: s.Launcher,
		Config: s.Config,
	}))
}

func (s *Shell) runProgram(tokens []string) int {
	plan, err := proc.Scan(tokens)
	if err != nil {
		s.events.Record(&logger.InvalidInvocation{Command: tokens, Error: err.Error()})
		s.reportError(err)
		return StatusUsage
	}

	s.events.Record(&logger.RunCommand{Command: tokens})
	res, err := s.Launcher.Launch(plan)

	var execErr *proc.ExecError
	switch {
	case errors.As(err, &execErr):
		s.events.Record(&logger.UnknownCommand{Command: tokens, ErrorMessage: err.Error()})
		s.reportError(err)
		return execErr.ExitCode
	case err != nil:
		s.reportError(err)
		return 1
	case res.Background:
		return 0
	default:
		return res.ExitCode
	}
}

func (s *Shell) reportError(err error) {
	fmt.Fprintf(s.Files.Stderr(), "minish: %v\n", err)
}
