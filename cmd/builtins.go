package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/josephlewis42/minish/commands"
	"github.com/spf13/cobra"
)

// builtinsCmd lists the builtins and their arity.
var builtinsCmd = &cobra.Command{
	Use:   "builtins",
	Short: "Show the builtin commands of the shell.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "NAME\tMIN ARGS\tUSAGE")
		for _, b := range commands.ListBuiltins() {
			fmt.Fprintf(w, "%s\t%d\t%s\n", b.Name, b.MinArgs, b.Use)
		}

		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(builtinsCmd)
}
