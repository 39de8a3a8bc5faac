package commands

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/josephlewis42/minish/core/vos"
)

// WriteFileTerminator ends interactive input to writefile.
const WriteFileTerminator = "done"

// WriteFile appends lines read from the shell's input to a file until the
// terminator or end of input.
func WriteFile(cmd *SimpleCommand, virtOS vos.VOS) int {
	return cmd.Run(virtOS, func(args []string) int {
		path := args[0]

		fd, err := virtOS.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0644)
		if err != nil {
			cmd.LogProgramError(virtOS, err)
			return 1
		}
		defer fd.Close()

		w := virtOS.Stdout()
		fmt.Fprintf(w, "Type your lines (type '%s' to finish):\n", WriteFileTerminator)
		for {
			line, err := virtOS.ReadLine("> ")
			if errors.Is(err, io.EOF) {
				break
			}
			if err != nil {
				cmd.LogProgramError(virtOS, err)
				return 1
			}

			if strings.TrimSpace(line) == WriteFileTerminator {
				break
			}

			if _, err := fmt.Fprintln(fd, line); err != nil {
				cmd.LogProgramError(virtOS, err)
				return 1
			}
		}

		fmt.Fprintf(w, "Finished writing to %s\n", path)
		return 0
	})
}

func init() {
	addBuiltin(&Builtin{
		Name:    "writefile",
		MinArgs: 1,
		Use:     "writefile FILE",
		Short:   "Append lines you type to FILE until you enter 'done'.",
		Main:    WriteFile,
	})
}
