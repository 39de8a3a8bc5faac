package vos

import (
	"errors"
	"io"

	"github.com/josephlewis42/minish/core/config"
	"github.com/spf13/afero"
)

// VFS is the filesystem builtins and redirections operate on.
type VFS = afero.Fs

// VIO holds the standard streams of a process.
type VIO interface {
	Stdin() io.ReadCloser
	Stdout() io.WriteCloser
	Stderr() io.WriteCloser
}

// LineReader reads one line of interactive input at a time.
type LineReader interface {
	// ReadLine returns the next line without its terminator, or io.EOF once
	// input is closed.
	ReadLine(prompt string) (string, error)
}

// Runner runs a program in the foreground and returns its exit code.
type Runner interface {
	Run(argv []string) (int, error)
}

// VOS provides the slice of the host a builtin is allowed to touch.
type VOS interface {
	VFS
	VIO
	LineReader
	Runner

	// Args holds the command line arguments, including the command as Args[0].
	Args() []string
	// Config returns the shell configuration.
	Config() *config.Configuration
}

// ErrNoRunner is returned when a process has no way to start programs.
var ErrNoRunner = errors.New("cannot run programs here")

// ProcAttr holds everything needed to build a Proc.
type ProcAttr struct {
	Fs     VFS
	Files  VIO
	Input  LineReader
	Runner Runner
	Config *config.Configuration
}

// Proc is the VOS handed to a single builtin invocation.
type Proc struct {
	VFS
	VIO

	input  LineReader
	runner Runner
	config *config.Configuration

	// ProcArgs holds command line arguments, including the command as Args[0].
	ProcArgs []string
}

var _ VOS = (*Proc)(nil)

// NewProc creates a process view for argv. Missing attributes are replaced
// with inert defaults.
func NewProc(argv []string, attr *ProcAttr) *Proc {
	if attr == nil {
		attr = &ProcAttr{}
	}

	out := &Proc{
		VFS:      attr.Fs,
		VIO:      attr.Files,
		input:    attr.Input,
		runner:   attr.Runner,
		config:   attr.Config,
		ProcArgs: argv,
	}

	if out.VFS == nil {
		out.VFS = afero.NewMemMapFs()
	}
	if out.VIO == nil {
		out.VIO = NewNullIO()
	}
	if out.input == nil {
		out.input = NewStreamLineReader(out.VIO.Stdin())
	}
	if out.config == nil {
		out.config = &config.Configuration{}
	}

	return out
}

// Args implements VOS.Args.
func (p *Proc) Args() []string {
	return p.ProcArgs
}

// Config implements VOS.Config.
func (p *Proc) Config() *config.Configuration {
	return p.config
}

// ReadLine implements VOS.ReadLine.
func (p *Proc) ReadLine(prompt string) (string, error) {
	return p.input.ReadLine(prompt)
}

// Run implements VOS.Run.
func (p *Proc) Run(argv []string) (int, error) {
	if p.runner == nil {
		return -1, ErrNoRunner
	}
	return p.runner.Run(argv)
}

// ProcessFunc is a builtin that can be run against a VOS, it returns the
// exit status.
type ProcessFunc func(VOS) int
