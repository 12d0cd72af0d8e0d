package services

import (
	"context"
	"strings"

	"geo-pricing-service/internal/domain"
	"geo-pricing-service/internal/platform/obs"
	"geo-pricing-service/internal/ports"

	"go.uber.org/zap"
)

const (
	ResolvedByOverride = "override"
	ResolvedByFallback = "fallback"
)

// Resolution is the country chosen for a visitor and the strategy that chose it.
type Resolution struct {
	Country    domain.CountryCode
	ResolvedBy string
}

// LocationResolver folds an ordered list of detection strategies: the
// first one with an answer wins, and the fallback country is used when
// none has one. Strategy failures are never returned to the caller.
type LocationResolver struct {
	detectors []ports.CountryDetector
	fallback  domain.CountryCode
	logger    *zap.Logger
}

func NewLocationResolver(detectors []ports.CountryDetector, fallback domain.CountryCode, logger *zap.Logger) *LocationResolver {
	if fallback == "" {
		fallback = domain.CountryUS
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LocationResolver{detectors: detectors, fallback: fallback, logger: logger}
}

// Strategies lists detector names in the order they are tried.
func (r *LocationResolver) Strategies() []string {
	names := make([]string, 0, len(r.detectors))
	for _, d := range r.detectors {
		names = append(names, d.Name())
	}
	return names
}

// Resolve returns the visitor's country. A non-empty override skips
// detection entirely; it is normalized but not validated, so an unknown
// code simply misses the catalog later.
func (r *LocationResolver) Resolve(ctx context.Context, visitor domain.Visitor, override string) Resolution {
	if strings.TrimSpace(override) != "" {
		code, _ := domain.NormalizeCountry(override)
		return Resolution{Country: code, ResolvedBy: ResolvedByOverride}
	}

	for _, d := range r.detectors {
		code, err := r.detect(ctx, d, visitor)
		if err != nil {
			r.logger.Debug("location strategy had no answer",
				zap.String("strategy", d.Name()),
				zap.String("req_id", obs.RequestID(ctx)),
				zap.Error(err),
			)
			continue
		}
		return Resolution{Country: code, ResolvedBy: d.Name()}
	}

	return Resolution{Country: r.fallback, ResolvedBy: ResolvedByFallback}
}

func (r *LocationResolver) detect(ctx context.Context, d ports.CountryDetector, visitor domain.Visitor) (_ domain.CountryCode, err error) {
	defer obs.Time(ctx, r.logger, "detect."+d.Name())(&err)

	if err := ctx.Err(); err != nil {
		return "", err
	}

	code, err := d.DetectCountry(ctx, visitor)
	if err != nil {
		return "", err
	}

	norm, ok := domain.NormalizeCountry(string(code))
	if !ok {
		return "", ports.ErrNoCountry
	}
	return norm, nil
}
