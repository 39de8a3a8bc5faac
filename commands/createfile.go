package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/josephlewis42/minish/core/vos"
	"github.com/spf13/afero"
)

// CreateFile creates an empty file if it doesn't already exist.
func CreateFile(cmd *SimpleCommand, virtOS vos.VOS) int {
	return cmd.Run(virtOS, func(args []string) int {
		return createFile(cmd, virtOS, args[0])
	})
}

// CreateFileIn creates an empty file inside a directory.
func CreateFileIn(cmd *SimpleCommand, virtOS vos.VOS) int {
	return cmd.Run(virtOS, func(args []string) int {
		return createFile(cmd, virtOS, filepath.Join(args[0], args[1]))
	})
}

func createFile(cmd *SimpleCommand, virtOS vos.VOS, path string) int {
	exists, err := afero.Exists(virtOS, path)
	switch {
	case err != nil:
		cmd.LogProgramError(virtOS, err)
		return 1
	case exists:
		fmt.Fprintf(virtOS.Stdout(), "File exists: %s\n", path)
		return 0
	}

	fd, err := virtOS.OpenFile(path, os.O_WRONLY|os.O_CREATE, 0644)
	if err != nil {
		cmd.LogProgramError(virtOS, fmt.Errorf("failed to create file: %w", err))
		return 1
	}
	fd.Close()

	fmt.Fprintf(virtOS.Stdout(), "File created: %s\n", path)
	return 0
}

func init() {
	addBuiltin(&Builtin{
		Name:    "createfile",
		MinArgs: 1,
		Use:     "createfile FILE",
		Short:   "Create an empty FILE if it doesn't exist.",
		Main:    CreateFile,
	})

	addBuiltin(&Builtin{
		Name:    "createfilein",
		MinArgs: 2,
		Use:     "createfilein DIRECTORY FILE",
		Short:   "Create an empty FILE inside DIRECTORY.",
		Main:    CreateFileIn,
	})
}
