package proc

import (
	"errors"
	"fmt"
)

// Operators recognized after the command name.
const (
	OpInput      = "<"
	OpOutput     = ">"
	OpBackground = "&"
)

var (
	// ErrMissingCommand is returned when there's nothing to run.
	ErrMissingCommand = errors.New("missing command")
	// ErrMissingTarget is returned when a redirection operator isn't
	// followed by a file name.
	ErrMissingTarget = errors.New("syntax error: missing file name")
)

// Plan describes how to launch one external program.
type Plan struct {
	// Argv is passed to the program, Argv[0] is the program name. It never
	// contains operator tokens.
	Argv []string
	// Input, if set, is bound to the program's stdin.
	Input string
	// Output, if set, is truncated and bound to the program's stdout.
	Output string
	// Background programs are started without waiting for them to exit.
	Background bool
}

func isOperator(token string) bool {
	switch token {
	case OpInput, OpOutput, OpBackground:
		return true
	default:
		return false
	}
}

// Scan builds a launch plan from a tokenized command line in a single pass.
// Operators may appear anywhere after the command name; a later < or >
// replaces an earlier one.
func Scan(tokens []string) (*Plan, error) {
	if len(tokens) == 0 {
		return nil, ErrMissingCommand
	}

	plan := &Plan{Argv: []string{tokens[0]}}
	for i := 1; i < len(tokens); i++ {
		switch tok := tokens[i]; tok {
		case OpInput, OpOutput:
			if i+1 >= len(tokens) || isOperator(tokens[i+1]) {
				return nil, fmt.Errorf("%w after %q", ErrMissingTarget, tok)
			}
			i++
			if tok == OpInput {
				plan.Input = tokens[i]
			} else {
				plan.Output = tokens[i]
			}
		case OpBackground:
			plan.Background = true
		default:
			plan.Argv = append(plan.Argv, tok)
		}
	}

	return plan, nil
}
