package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/dead10ck/rowsh/core"
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Start an interactive session.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		engine, stack, err := newEngine()
		if err != nil {
			return err
		}

		shell, err := core.NewShell(engine, stack, cfg, os.Stdin, os.Stdout, os.Stderr)
		if err != nil {
			return err
		}
		return shell.Run()
	},
}

func init() {
	rootCmd.AddCommand(replCmd)
}
