package vostest

import (
	"bytes"
	"io"

	"github.com/josephlewis42/minish/core/config"
	"github.com/josephlewis42/minish/core/vos"
	"github.com/spf13/afero"
)

// Cmd is similar to exec.Cmd but runs a builtin against an in-memory
// filesystem.
type Cmd struct {
	// Process function
	Process vos.ProcessFunc
	// Process arguments, the first argument should be the process name.
	Argv []string
	// Fs is the filesystem the process sees, it's created by Command so tests
	// can seed it before calling Run.
	Fs afero.Fs

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	// Runner runs external programs, nil rejects them.
	Runner vos.Runner
	// Config defaults to the zero configuration.
	Config *config.Configuration

	ExitStatus int
}

func Command(process vos.ProcessFunc, name string, arg ...string) *Cmd {
	return &Cmd{
		Process: process,
		Argv:    append([]string{name}, arg...),
		Fs:      afero.NewMemMapFs(),
	}
}

func (c *Cmd) CombinedOutput() ([]byte, error) {
	// stdout, stderr
	buf := &bytes.Buffer{}
	c.Stdout = buf
	c.Stderr = buf

	err := c.Run()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Output runs the command and returns only its standard output.
func (c *Cmd) Output() ([]byte, error) {
	buf := &bytes.Buffer{}
	c.Stdout = buf

	err := c.Run()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Run starts the comand and waits for it to complete.
func (c *Cmd) Run() error {
	proc := vos.NewProc(c.Argv, &vos.ProcAttr{
		Fs:     c.Fs,
		Files:  vos.NewVIOAdapter(c.Stdin, c.Stdout, c.Stderr),
		Runner: c.Runner,
		Config: c.Config,
	})

	c.ExitStatus = c.Process(proc)
	return nil
}
