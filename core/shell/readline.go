package shell

import (
	"github.com/abiosoft/readline"
	"github.com/josephlewis42/minish/core/vos"
)

// ReadlineInput reads lines with terminal line editing.
type ReadlineInput struct {
	Readline *readline.Instance
}

var _ vos.LineReader = (*ReadlineInput)(nil)

// NewReadlineInput creates a line editor over the given streams. Terminal
// detection is left to readline's defaults.
func NewReadlineInput(files vos.VIO) (*ReadlineInput, error) {
	cfg := &readline.Config{
		Stdin:  readline.NewCancelableStdin(files.Stdin()),
		Stdout: files.Stdout(),
		Stderr: files.Stderr(),
	}

	if err := cfg.Init(); err != nil {
		return nil, err
	}

	rl, err := readline.NewEx(cfg)
	if err != nil {
		return nil, err
	}

	return &ReadlineInput{Readline: rl}, nil
}

// ReadLine implements vos.LineReader. An interrupt discards the partial line
// and prompts again.
func (r *ReadlineInput) ReadLine(prompt string) (string, error) {
	for {
		r.Readline.SetPrompt(prompt)
		line, err := r.Readline.Readline()
		if err == readline.ErrInterrupt {
			continue
		}
		return line, err
	}
}

// Close releases the terminal.
func (r *ReadlineInput) Close() error {
	return r.Readline.Close()
}
