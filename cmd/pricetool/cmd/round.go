package cmd

import (
	"fmt"

	"geo-pricing-service/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func newRoundCmd() *cobra.Command {
	var rate string

	c := &cobra.Command{
		Use:   "round <amount>",
		Short: "Show how the rounding policy treats an amount",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := decimal.NewFromString(args[0])
			if err != nil {
				return fmt.Errorf("amount %q: %w", args[0], err)
			}
			if rate != "" {
				r, err := decimal.NewFromString(rate)
				if err != nil {
					return fmt.Errorf("rate %q: %w", rate, err)
				}
				raw = raw.Mul(r)
			}

			bucket := "ceil"
			if g := domain.BucketFor(raw); g > 0 {
				bucket = fmt.Sprintf("nearest %d", g)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "raw=%s bucket=%q rounded=%d\n", raw, bucket, domain.RoundDisplay(raw))
			return nil
		},
	}

	c.Flags().StringVar(&rate, "rate", "", "multiply the amount by this rate first")
	return c
}
