package commands

import (
	"io"

	"github.com/josephlewis42/minish/core/vos"
)

// OpenFile prints the contents of a readable file.
func OpenFile(cmd *SimpleCommand, virtOS vos.VOS) int {
	return cmd.Run(virtOS, func(args []string) int {
		path := args[0]
		if err := vos.CheckAccess(virtOS, path, vos.CanRead); err != nil {
			cmd.LogProgramError(virtOS, err)
			return 1
		}

		fd, err := virtOS.Open(path)
		if err != nil {
			cmd.LogProgramError(virtOS, err)
			return 1
		}
		defer fd.Close()

		if _, err := io.Copy(virtOS.Stdout(), fd); err != nil {
			cmd.LogProgramError(virtOS, err)
			return 1
		}
		return 0
	})
}

func init() {
	addBuiltin(&Builtin{
		Name:    "openfile",
		MinArgs: 1,
		Use:     "openfile FILE",
		Short:   "Print the contents of FILE.",
		Main:    OpenFile,
	})
}
