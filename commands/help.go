package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/josephlewis42/minish/core/vos"
)

// Help prints the builtin menu, or the usage of a single builtin.
func Help(cmd *SimpleCommand, virtOS vos.VOS) int {
	return cmd.Run(virtOS, func(args []string) int {
		w := virtOS.Stdout()

		if len(args) > 0 {
			b, ok := Lookup(args[0])
			if !ok {
				cmd.LogProgramError(virtOS, fmt.Errorf("no builtin named %q", args[0]))
				return 1
			}

			fmt.Fprintf(w, "usage: %s\n", b.Use)
			fmt.Fprintln(w, b.Short)
			return 0
		}

		ColorBoldGreen.Fprintln(w, "Builtins:")
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		for _, b := range ListBuiltins() {
			fmt.Fprintf(tw, "  %s\t%s\n", ColorBoldCyan.Sprint(b.Use), b.Short)
		}
		fmt.Fprintf(tw, "  %s\t%s\n", ColorBoldCyan.Sprint("exit"), "Exit the shell.")
		tw.Flush()

		fmt.Fprintln(w)
		ColorBoldGreen.Fprintln(w, "Programs:")
		fmt.Fprintln(w, "  Anything else is run as a program found on your PATH.")
		tw = tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprintf(tw, "  %s\t%s\n", ColorBoldCyan.Sprint("< FILE"), "Read the program's input from FILE.")
		fmt.Fprintf(tw, "  %s\t%s\n", ColorBoldCyan.Sprint("> FILE"), "Write the program's output to FILE, replacing it.")
		fmt.Fprintf(tw, "  %s\t%s\n", ColorBoldCyan.Sprint("&"), "Run the program in the background.")
		tw.Flush()

		return 0
	})
}

func init() {
	addBuiltin(&Builtin{
		Name:  "help",
		Use:   "help [BUILTIN]",
		Short: "Show the builtins or the usage of one.",
		Main:  Help,
	})
}
