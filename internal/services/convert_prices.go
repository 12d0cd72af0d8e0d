package services

import (
	"context"
	"sync"

	"geo-pricing-service/internal/catalog"
	"geo-pricing-service/internal/domain"
	"geo-pricing-service/internal/platform/obs"
	"geo-pricing-service/internal/ports"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// State is the terminal state of one conversion run.
type State string

const (
	// Prices now show a foreign currency.
	StateRendered State = "rendered"
	// Prices show USD as authored; the country had no catalog entry or is the US.
	StateUSDReset State = "usd_reset"
	// The rate could not be obtained; the board was not touched.
	StateAborted State = "aborted"
	// A newer run on the same session started; this run did not touch the board.
	StateSuperseded State = "superseded"
)

type Outcome struct {
	State      State
	Country    domain.CountryCode
	ResolvedBy string
	Currency   domain.CurrencyCode
	Rate       decimal.Decimal
}

// Converter sequences location → currency → rate → rendering. It holds no
// per-page state and is safe for concurrent use across sessions.
type Converter struct {
	resolver *LocationResolver
	catalog  *catalog.Catalog
	rates    ports.RateProvider
	logger   *zap.Logger
}

// Strategies reports the location strategy order.
func (c *Converter) Strategies() []string { return c.resolver.Strategies() }

// Countries is the number of countries with a non-USD currency.
func (c *Converter) Countries() int { return c.catalog.Countries() }

func NewConverter(resolver *LocationResolver, cat *catalog.Catalog, rates ports.RateProvider, logger *zap.Logger) *Converter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Converter{resolver: resolver, catalog: cat, rates: rates, logger: logger}
}

// Session binds the converter to one board. Overlapping runs on a session
// are resolved cancel-and-supersede: starting a run cancels the one in
// flight, and only the latest run may write to the board.
type Session struct {
	conv  *Converter
	board ports.PriceBoard

	mu     sync.Mutex
	gen    uint64
	cancel context.CancelFunc
}

func (c *Converter) NewSession(board ports.PriceBoard) *Session {
	return &Session{conv: c, board: board}
}

// Run converts every price on the board for visitor. A non-empty override
// is a country code that bypasses detection. Failures degrade to leaving or
// resetting USD prices and are reported only through the outcome and logs.
func (s *Session) Run(ctx context.Context, visitor domain.Visitor, override string) Outcome {
	runCtx, gen := s.begin(ctx)
	defer s.end(gen)

	c := s.conv
	res := c.resolver.Resolve(runCtx, visitor, override)
	out := Outcome{Country: res.Country, ResolvedBy: res.ResolvedBy, Currency: domain.USD}

	if s.stale(gen) {
		return c.finish(ctx, out, StateSuperseded)
	}

	cur, ok := c.catalog.CurrencyFor(res.Country)
	if !ok {
		out.Rate = decimal.NewFromInt(1)
		return c.finish(ctx, out, s.commit(ctx, gen, USDConversion(c.catalog.FormatFor(domain.USD)), StateUSDReset))
	}
	out.Currency = cur

	rate, err := c.rates.Rate(runCtx, cur)
	if err != nil {
		if s.stale(gen) {
			return c.finish(ctx, out, StateSuperseded)
		}
		c.logger.Warn("rate unavailable, keeping USD prices",
			zap.String("req_id", obs.RequestID(ctx)),
			zap.String("currency", string(cur)),
			zap.Error(err),
		)
		return c.finish(ctx, out, StateAborted)
	}
	out.Rate = rate

	conv := Conversion{Currency: cur, Rate: rate, Format: c.catalog.FormatFor(cur)}
	return c.finish(ctx, out, s.commit(ctx, gen, conv, StateRendered))
}

func (s *Session) begin(ctx context.Context) (context.Context, uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cancel != nil {
		s.cancel()
	}
	s.gen++

	runCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	return runCtx, s.gen
}

func (s *Session) end(gen uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.gen == gen && s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}

func (s *Session) stale(gen uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gen != gen
}

// commit renders under the session lock so a superseded run can never
// interleave writes with the latest one.
func (s *Session) commit(ctx context.Context, gen uint64, conv Conversion, state State) State {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.gen != gen {
		return StateSuperseded
	}

	if err := RenderPrices(s.board, conv); err != nil {
		s.conv.logger.Error("render prices failed",
			zap.String("req_id", obs.RequestID(ctx)),
			zap.String("currency", string(conv.Currency)),
			zap.Error(err),
		)
		return StateAborted
	}
	return state
}

func (c *Converter) finish(ctx context.Context, out Outcome, state State) Outcome {
	out.State = state
	c.logger.Info("conversion finished",
		zap.String("req_id", obs.RequestID(ctx)),
		zap.String("state", string(out.State)),
		zap.String("country", string(out.Country)),
		zap.String("resolved_by", out.ResolvedBy),
		zap.String("currency", string(out.Currency)),
		zap.String("rate", out.Rate.String()),
	)
	return out
}
