package commands

import (
	"fmt"
	"io/fs"

	"github.com/josephlewis42/minish/core/vos"
)

const (
	ModeRead  fs.FileMode = 0444
	ModeWrite fs.FileMode = 0222
	ModeExec  fs.FileMode = 0111
)

// ParsePermissions converts a string of r, w and x letters into a mode that
// grants each of them to the owner, group and others. Repeated letters are
// allowed, any other letter is an error.
func ParsePermissions(letters string) (fs.FileMode, error) {
	var mode fs.FileMode
	for _, letter := range letters {
		switch letter {
		case 'r':
			mode |= ModeRead
		case 'w':
			mode |= ModeWrite
		case 'x':
			mode |= ModeExec
		default:
			return 0, fmt.Errorf("invalid permission %q, want r, w or x", letter)
		}
	}
	return mode, nil
}

// Chmod replaces the permissions of a file.
func Chmod(cmd *SimpleCommand, virtOS vos.VOS) int {
	return cmd.Run(virtOS, func(args []string) int {
		letters, path := args[0], args[1]

		mode, err := ParsePermissions(letters)
		if err != nil {
			cmd.LogProgramError(virtOS, err)
			return 1
		}

		if err := virtOS.Chmod(path, mode); err != nil {
			cmd.LogProgramError(virtOS, fmt.Errorf("failed to change permissions: %w", err))
			return 1
		}

		fmt.Fprintf(virtOS.Stdout(), "Permissions changed for %s\n", path)
		return 0
	})
}

func init() {
	addBuiltin(&Builtin{
		Name:    "chmod",
		MinArgs: 2,
		Use:     "chmod PERMISSIONS FILE",
		Short:   "Set FILE's permissions from a combination of r, w and x for everyone.",
		Main:    Chmod,
	})
}
