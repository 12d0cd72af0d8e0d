package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"geo-pricing-service/internal/adapters/page"

	"github.com/spf13/cobra"
)

type inspectReport struct {
	page.Contract
	Amounts []string `json:"amounts"`
}

func newInspectCmd(e *env) *cobra.Command {
	var strict bool

	c := &cobra.Command{
		Use:   "inspect <page.html>",
		Short: "Report the price elements and script hooks a page exposes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("inspect: %w", err)
			}
			defer f.Close()

			doc, err := page.Parse(f, e.logger)
			if err != nil {
				return err
			}

			report := inspectReport{Contract: doc.Inspect()}
			for _, p := range doc.Prices() {
				report.Amounts = append(report.Amounts, p.USD.String()+p.Period.Suffix())
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			if err := enc.Encode(report); err != nil {
				return err
			}

			if strict && !report.Complete() {
				return errors.New("page is missing menu toggle, nav links or year element")
			}
			return nil
		},
	}

	c.Flags().BoolVar(&strict, "strict", false, "fail when a script hook is missing")
	return c
}
