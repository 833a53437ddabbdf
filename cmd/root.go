package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/VoxDroid/lnchr/internal/logging"
)

var (
	storeFlag     string
	logLevelFlag  string
	logFormatFlag string
)

var rootCmd = &cobra.Command{
	Use:           "lnchr",
	Short:         "lnchr launches saved lists of files and programs with delays",
	Long:          "lnchr keeps named lists of files and programs and opens them in order, waiting a per-item delay before each one",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		cfg, err := settings()
		if err != nil {
			return err
		}
		logging.Init(cfg.LogLevel, cfg.LogFormat)
		return nil
	},
	Run: func(cmd *cobra.Command, _ []string) {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), "lnchr: run 'lnchr --help' to see available commands")
	},
}

// Execute executes the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, "error:", describeError(err))
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&storeFlag, "store", "", "Registry store file (*.json for a JSON document, SQLite otherwise)")
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&logFormatFlag, "log-format", "", "Log format: text or json")
}
