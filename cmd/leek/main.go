package main

import (
	"fmt"
	"os"

	"github.com/dhamidi/leek/config"
	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"

	_ "github.com/tliron/commonlog/simple"
)

const version = "0.1.0"

// cfg is loaded from leek.toml before any command runs.
var cfg = config.DefaultConfig()

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var verbose int

	rootCmd := &cobra.Command{
		Use:           "leek",
		Short:         "A lossless LeekScript parser",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			commonlog.Configure(verbose, nil)

			wd, err := os.Getwd()
			if err != nil {
				return fmt.Errorf("get working directory: %w", err)
			}
			loaded, path, err := config.FindAndLoad(wd)
			if err != nil {
				return err
			}
			if path != "" {
				commonlog.GetLogger("leek").Debugf("using %s", path)
			}
			cfg = loaded
			return nil
		},
	}
	rootCmd.PersistentFlags().CountVarP(&verbose, "verbose", "v", "increase log verbosity (repeatable)")

	rootCmd.AddCommand(newParseCmd())
	rootCmd.AddCommand(newDumpCmd())
	rootCmd.AddCommand(newCheckCmd())
	rootCmd.AddCommand(newSymbolsCmd())
	rootCmd.AddCommand(newLSPCmd())

	return rootCmd
}
