// Package cli wires the pipeline stages into one binary. Each subcommand is
// a standalone batch job: read input files, transform, write output files,
// exit.
package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/lorehaven/fablemap/internal/config"
	"github.com/lorehaven/fablemap/internal/logging"
)

var (
	cfgFile string
	debug   bool
	cfg     *config.Config
)

var rootCmd = &cobra.Command{
	Use:           "fablemap",
	Short:         "Build entity co-occurrence graphs from a fantasy novel corpus",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logging.SetDebug(debug)
		var err error
		cfg, err = config.Load(cfgFile)
		return err
	},
}

// Execute runs the CLI. Errors have already been handled per-stage; anything
// that reaches here aborts the run.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		logging.Error("command failed", "err", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (TOML)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
}
