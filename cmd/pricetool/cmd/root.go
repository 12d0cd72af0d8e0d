// Package cmd provides the CLI commands for pricetool.
package cmd

import (
	"fmt"
	"os"

	"geo-pricing-service/internal/config"
	"geo-pricing-service/internal/platform/logging"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// env carries what every subcommand needs once flags are parsed.
type env struct {
	cfg    config.Config
	logger *zap.Logger
}

// NewRootCmd builds the command tree. Each call returns fresh flag state.
func NewRootCmd() *cobra.Command {
	var verbose bool
	e := &env{}

	root := &cobra.Command{
		Use:   "pricetool",
		Short: "Localize marketing-page prices from the command line",
		Long: `pricetool runs the same price localization pipeline as the server,
against HTML files on disk.

Examples:
  pricetool localize site/index.html --country BD -o out.html
  pricetool localize site/index.html --tz Europe/Paris
  pricetool rate EUR
  pricetool round 244877.5
  pricetool inspect site/index.html`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := config.Load()
			if err != nil {
				return err
			}
			if verbose {
				cfg.Logging.Level = "debug"
			}
			cfg.Logging.Format = "console"

			logger, err := logging.New(cfg.Logging)
			if err != nil {
				return err
			}
			e.cfg, e.logger = cfg, logger
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if e.logger != nil {
				_ = e.logger.Sync()
			}
		},
	}

	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(newLocalizeCmd(e))
	root.AddCommand(newRateCmd(e))
	root.AddCommand(newRoundCmd())
	root.AddCommand(newInspectCmd(e))

	return root
}

// Execute runs the CLI
func Execute() error {
	root := NewRootCmd()
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return err
	}
	return nil
}
