package commands

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/josephlewis42/minish/core/vos"
)

// Search prints the lines of a file that contain a term, numbered from 1.
func Search(cmd *SimpleCommand, virtOS vos.VOS) int {
	ignoreCase := cmd.Flags().Bool('i', "Match without regard to case.")

	return cmd.Run(virtOS, func(args []string) int {
		path, term := args[0], args[1]
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

		match := strings.Contains
		if *ignoreCase {
			match = func(s, substr string) bool {
				return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
			}
		}

		w := virtOS.Stdout()
		found := false
		scanner := bufio.NewScanner(fd)
		for lineNo := 1; scanner.Scan(); lineNo++ {
			line := scanner.Text()
			if match(line, term) {
				fmt.Fprintf(w, "Line %d: %s\n", lineNo, line)
				found = true
			}
		}
		if err := scanner.Err(); err != nil {
			cmd.LogProgramError(virtOS, err)
			return 1
		}

		if !found {
			fmt.Fprintf(w, "No matches found for '%s' in %s.\n", term, path)
		}
		return 0
	})
}

func init() {
	addBuiltin(&Builtin{
		Name:    "search",
		MinArgs: 2,
		Use:     "search [-i] FILE TERM",
		Short:   "Print the numbered lines of FILE containing TERM.",
		Main:    Search,
	})
}
