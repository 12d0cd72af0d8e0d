package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Recurring-billing tag carried by a price element.
type BillingPeriod int

const (
	PeriodNone BillingPeriod = iota
	PeriodMonthly
)

// Suffix returns the markup text appended after the amount ("/mo").
func (p BillingPeriod) Suffix() string {
	if p == PeriodMonthly {
		return "/mo"
	}
	return ""
}

func (p BillingPeriod) String() string {
	if p == PeriodMonthly {
		return "monthly"
	}
	return "none"
}

// ParsePeriod maps an authored period tag ("mo", "month", "monthly", "/mo")
// to a BillingPeriod.
func ParsePeriod(s string) BillingPeriod {
	switch strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), "/")) {
	case "mo", "month", "monthly":
		return PeriodMonthly
	default:
		return PeriodNone
	}
}

// MaxUSD bounds authored amounts. Any catalog currency times this stays far
// below MaxDisplay.
var MaxUSD = decimal.NewFromInt(1_000_000_000)

var ErrInvalidUSD = errors.New("invalid usd amount")

// ParseUSD reads an authored amount. Negative values and values above MaxUSD
// are rejected.
func ParseUSD(s string) (decimal.Decimal, error) {
	usd, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w %q", ErrInvalidUSD, s)
	}
	if usd.IsNegative() || usd.GreaterThan(MaxUSD) {
		return decimal.Zero, fmt.Errorf("%w %q: must be between 0 and %s", ErrInvalidUSD, s, MaxUSD)
	}
	return usd, nil
}

// A priced node on a page.
// USD is the canonical authored amount; Period is fixed when the page is
// loaded and never re-derived from rendered output.
type PriceElement struct {
	Index  int
	USD    decimal.Decimal
	Period BillingPeriod
}

// Rendered content for one PriceElement.
type PriceDisplay struct {
	Text   string
	Period BillingPeriod
}

// String joins the amount text and the period suffix.
func (d PriceDisplay) String() string {
	return d.Text + d.Period.Suffix()
}
