package commands

import (
	"fmt"
	"io/fs"

	"github.com/josephlewis42/minish/core/vos"
)

// DirMode is the permission new directories are created with.
const DirMode fs.FileMode = 0755

// CreateDir creates a directory.
func CreateDir(cmd *SimpleCommand, virtOS vos.VOS) int {
	makeParents := cmd.Flags().BoolLong("parents", 'p', "make parents if needed")

	return cmd.Run(virtOS, func(args []string) int {
		op := virtOS.Mkdir
		if *makeParents {
			op = virtOS.MkdirAll
		}

		dir := args[0]
		if err := op(dir, DirMode); err != nil {
			cmd.LogProgramError(virtOS, fmt.Errorf("failed to create directory: %w", err))
			return 1
		}

		fmt.Fprintf(virtOS.Stdout(), "Directory created: %s\n", dir)
		return 0
	})
}

func init() {
	addBuiltin(&Builtin{
		Name:    "createdir",
		MinArgs: 1,
		Use:     "createdir [-p] DIRECTORY",
		Short:   "Create DIRECTORY with mode 0755.",
		Main:    CreateDir,
	})
}
