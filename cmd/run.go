package cmd

import (
	"fmt"
	"io/ioutil"

	"github.com/spf13/cobra"

	"github.com/dead10ck/rowsh/core"
)

var commandLine string

var runCmd = &cobra.Command{
	Use:   "run [SCRIPT]",
	Short: "Run a script file, or a single pipeline with -c.",
	RunE: func(cmd *cobra.Command, args []string) error {
		engine, stack, err := newEngine()
		if err != nil {
			return err
		}

		script := commandLine
		switch {
		case script != "" && len(args) > 0:
			return fmt.Errorf("pass either a script file or -c, not both")
		case script == "" && len(args) != 1:
			return fmt.Errorf("expected exactly one script file")
		case script == "":
			contents, err := ioutil.ReadFile(args[0])
			if err != nil {
				return err
			}
			script = string(contents)
		}

		return core.RunScript(engine, stack, script, cmd.OutOrStdout())
	},
}

func init() {
	runCmd.Flags().StringVarP(&commandLine, "command", "c", "", "pipeline to run")
	rootCmd.AddCommand(runCmd)
}
