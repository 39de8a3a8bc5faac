package proc

import (
	"errors"
	"fmt"
	"io/fs"
	"os/exec"
	"strings"
)

// Exit statuses used when a program never ran, matching POSIX shells.
const (
	StatusNotExecutable = 126
	StatusNotFound      = 127
)

// ExecError is returned when the program named by Argv[0] couldn't be
// found or executed.
type ExecError struct {
	Argv     []string
	ExitCode int
	Err      error
}

func (e *ExecError) Error() string {
	if e.ExitCode == StatusNotFound {
		return fmt.Sprintf("%s: command not found", e.Argv[0])
	}
	return fmt.Sprintf("%s: %v", e.Argv[0], e.Err)
}

func (e *ExecError) Unwrap() error {
	return e.Err
}

// SpawnError is returned when the OS refused to create the process.
type SpawnError struct {
	Argv []string
	Err  error
}

func (e *SpawnError) Error() string {
	return fmt.Sprintf("couldn't start %s: %v", strings.Join(e.Argv, " "), e.Err)
}

func (e *SpawnError) Unwrap() error {
	return e.Err
}

// classifyStartError turns the error from exec.Cmd.Start into an ExecError
// or a SpawnError.
func classifyStartError(argv []string, err error) error {
	var execErr *exec.Error
	switch {
	case errors.As(err, &execErr), errors.Is(err, fs.ErrNotExist):
		return &ExecError{Argv: argv, ExitCode: StatusNotFound, Err: err}
	case errors.Is(err, fs.ErrPermission):
		return &ExecError{Argv: argv, ExitCode: StatusNotExecutable, Err: err}
	default:
		return &SpawnError{Argv: argv, Err: err}
	}
}
