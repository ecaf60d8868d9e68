package cmd

import (
	"os"
	"os/signal"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/dead10ck/rowsh/core"
	"github.com/dead10ck/rowsh/core/config"
	"github.com/dead10ck/rowsh/core/logger"
)

var cfgPath string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "rowsh",
	Short: "A structured-data shell",
	Long:  `A shell whose pipelines carry typed, tabular records instead of raw text.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "config path (default: built-in config)")
}

func loadConfig() (*config.Configuration, error) {
	if cfgPath == "" {
		return config.Default(), nil
	}
	return config.Load(afero.NewOsFs(), cfgPath)
}

// newEngine builds engine state over the host filesystem, with
// diagnostics on stderr and SIGINT wired to the shared interrupt.
func newEngine() (*core.EngineState, *core.Stack, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}

	engine, err := core.NewEngineState(afero.NewOsFs(), logger.New(os.Stderr), cfg)
	if err != nil {
		return nil, nil, err
	}

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt)
	go func() {
		for range sigs {
			engine.Interrupt().Set()
		}
	}()

	return engine, core.NewStack(), nil
}
