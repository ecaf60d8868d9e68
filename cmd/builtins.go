package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dead10ck/rowsh/commands"
)

// builtinsCmd lists the shell's builtin commands.
var builtinsCmd = &cobra.Command{
	Use:   "builtins",
	Short: "Show the builtin commands of the shell.",
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, c := range commands.ListCommands() {
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", c.Name(), c.Usage())
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(builtinsCmd)
}
