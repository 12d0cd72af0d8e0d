package rates

import (
	"context"

	"geo-pricing-service/internal/domain"

	"github.com/shopspring/decimal"
)

// StaticProvider serves a fixed table. Used for offline runs and tests.
type StaticProvider struct {
	table domain.RateTable
}

func NewStaticProvider(table domain.RateTable) *StaticProvider {
	return &StaticProvider{table: table}
}

func (p *StaticProvider) Rate(ctx context.Context, cur domain.CurrencyCode) (decimal.Decimal, error) {
	if err := ctx.Err(); err != nil {
		return decimal.Zero, err
	}
	return lookup(p.table, cur)
}
