package ports

import (
	"context"
	"errors"

	"geo-pricing-service/internal/domain"

	"github.com/shopspring/decimal"
)

// ErrRateUnavailable reports that no usable USD rate exists for a currency,
// either because the source failed or because the currency is absent.
var ErrRateUnavailable = errors.New("exchange rate unavailable")

// Contract for retrieving USD-based exchange rates.
type RateProvider interface {
	// Return the multiplier converting one USD into cur.
	Rate(ctx context.Context, cur domain.CurrencyCode) (decimal.Decimal, error)
}
