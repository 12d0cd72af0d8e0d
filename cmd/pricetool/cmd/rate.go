package cmd

import (
	"fmt"
	"strings"

	"geo-pricing-service/internal/app"
	"geo-pricing-service/internal/domain"

	"github.com/spf13/cobra"
)

func newRateCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "rate <CURRENCY>",
		Short: "Print the live USD exchange rate for a currency",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pipeline, err := app.Build(e.cfg, e.logger, nil)
			if err != nil {
				return err
			}

			cur := domain.CurrencyCode(strings.ToUpper(strings.TrimSpace(args[0])))
			rate, err := pipeline.Rates.Rate(cmd.Context(), cur)
			if err != nil {
				return fmt.Errorf("rate %s: %w", cur, err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "1 USD = %s %s\n", rate, cur)
			return nil
		},
	}
}
