// Package rates adapts public exchange-rate sources to ports.RateProvider.
package rates

import (
	"context"
	"fmt"
	"strings"

	"geo-pricing-service/internal/adapters/remote"
	"geo-pricing-service/internal/domain"
	"geo-pricing-service/internal/platform/obs"
	"geo-pricing-service/internal/ports"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

type latestResponse struct {
	Result   string                     `json:"result"`
	BaseCode string                     `json:"base_code"`
	Rates    map[string]decimal.Decimal `json:"rates"`
}

// OpenERAPIProvider reads the USD table of open.er-api.com.
//
// Every call fetches a fresh table. Callers that arrive while a fetch is in
// flight share its result; nothing is kept once it completes.
type OpenERAPIProvider struct {
	client *remote.Client
	url    string
	logger *zap.Logger
	flight singleflight.Group
}

func NewOpenERAPIProvider(client *remote.Client, url string, logger *zap.Logger) *OpenERAPIProvider {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OpenERAPIProvider{client: client, url: url, logger: logger}
}

// Rate returns the USD→cur multiplier, or an error wrapping
// ports.ErrRateUnavailable.
func (p *OpenERAPIProvider) Rate(ctx context.Context, cur domain.CurrencyCode) (decimal.Decimal, error) {
	table, err := p.Table(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	return lookup(table, cur)
}

// Table returns the whole fetched table.
func (p *OpenERAPIProvider) Table(ctx context.Context) (domain.RateTable, error) {
	// The shared fetch must outlive any single caller; the client timeout bounds it.
	ch := p.flight.DoChan(p.url, func() (any, error) {
		return p.fetch(context.WithoutCancel(ctx))
	})

	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("fetch rates: %w", ctx.Err())
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(domain.RateTable), nil
	}
}

func (p *OpenERAPIProvider) fetch(ctx context.Context) (_ domain.RateTable, err error) {
	defer obs.Time(ctx, p.logger, "rates.fetch")(&err)

	var decoded latestResponse
	if err := p.client.GetJSON(ctx, p.url, &decoded); err != nil {
		return nil, fmt.Errorf("fetch rates: %w: %w", ports.ErrRateUnavailable, err)
	}

	if decoded.Result != "" && decoded.Result != "success" {
		return nil, fmt.Errorf("fetch rates: result %q: %w", decoded.Result, ports.ErrRateUnavailable)
	}
	if base := strings.ToUpper(decoded.BaseCode); base != "" && base != string(domain.USD) {
		return nil, fmt.Errorf("fetch rates: base %q is not USD: %w", decoded.BaseCode, ports.ErrRateUnavailable)
	}

	table := make(domain.RateTable, len(decoded.Rates))
	for code, rate := range decoded.Rates {
		table[domain.CurrencyCode(strings.ToUpper(code))] = rate
	}

	p.logger.Debug("rates fetched", zap.Int("currencies", len(table)))
	return table, nil
}

func lookup(table domain.RateTable, cur domain.CurrencyCode) (decimal.Decimal, error) {
	rate, ok := table[cur]
	if !ok {
		return decimal.Zero, fmt.Errorf("no rate for %s: %w", cur, ports.ErrRateUnavailable)
	}
	if !rate.IsPositive() {
		return decimal.Zero, fmt.Errorf("rate for %s is %s: %w", cur, rate, ports.ErrRateUnavailable)
	}
	return rate, nil
}
