package cmd

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"time"

	"geo-pricing-service/internal/adapters/page"
	"geo-pricing-service/internal/adapters/rates"
	"geo-pricing-service/internal/app"
	"geo-pricing-service/internal/domain"
	"geo-pricing-service/internal/ports"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

type localizeOptions struct {
	output  string
	country string
	tz      string
	ip      string
	rate    string
	year    int
}

func newLocalizeCmd(e *env) *cobra.Command {
	opts := &localizeOptions{}

	c := &cobra.Command{
		Use:   "localize <page.html>",
		Short: "Rewrite a page's dynamic prices for a visitor",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLocalize(cmd, e, opts, args[0])
		},
	}

	c.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default stdout)")
	c.Flags().StringVar(&opts.country, "country", "", "country override, skips detection")
	c.Flags().StringVar(&opts.tz, "tz", os.Getenv("TZ"), "visitor timezone for the timezone strategy")
	c.Flags().StringVar(&opts.ip, "ip", "", "visitor IP (default: this machine's public address)")
	c.Flags().StringVar(&opts.rate, "rate", "", "fixed USD rate instead of the live source (needs --country)")
	c.Flags().IntVar(&opts.year, "year", 0, "year for an empty #year element (default current year)")

	return c
}

func runLocalize(cmd *cobra.Command, e *env, opts *localizeOptions, path string) error {
	var override ports.RateProvider
	if opts.rate != "" {
		rp, err := fixedRate(e, opts)
		if err != nil {
			return err
		}
		override = rp
	}

	pipeline, err := app.Build(e.cfg, e.logger, override)
	if err != nil {
		return err
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("localize: %w", err)
	}
	defer f.Close()

	doc, err := page.Parse(f, e.logger)
	if err != nil {
		return fmt.Errorf("localize %q: %w", path, err)
	}

	year := opts.year
	if year == 0 {
		year = time.Now().Year()
	}
	doc.FillYear(year)

	visitor := domain.Visitor{IP: opts.ip, TimeZone: opts.tz}
	out := pipeline.Converter.NewSession(doc).Run(cmd.Context(), visitor, opts.country)

	var buf bytes.Buffer
	if err := doc.Render(&buf); err != nil {
		return err
	}

	var w io.Writer = cmd.OutOrStdout()
	if opts.output != "" {
		if err := os.WriteFile(opts.output, buf.Bytes(), 0o644); err != nil {
			return fmt.Errorf("localize: write %q: %w", opts.output, err)
		}
		w = io.Discard
	}
	if _, err := w.Write(buf.Bytes()); err != nil {
		return err
	}

	fmt.Fprintf(cmd.ErrOrStderr(), "state=%s country=%s resolved_by=%s currency=%s rate=%s prices=%d\n",
		out.State, out.Country, out.ResolvedBy, out.Currency, out.Rate, len(doc.Prices()))
	return nil
}

// fixedRate binds the --rate value to the currency of the --country override.
func fixedRate(e *env, opts *localizeOptions) (ports.RateProvider, error) {
	if opts.country == "" {
		return nil, fmt.Errorf("--rate requires --country")
	}

	r, err := decimal.NewFromString(opts.rate)
	if err != nil || !r.IsPositive() {
		return nil, fmt.Errorf("--rate %q must be a positive number", opts.rate)
	}

	cat, err := app.LoadCatalog(e.cfg)
	if err != nil {
		return nil, err
	}

	country, _ := domain.NormalizeCountry(opts.country)
	cur, _ := cat.CurrencyFor(country)
	return rates.NewStaticProvider(domain.RateTable{cur: r}), nil
}
