package ports

import (
	"context"
	"errors"

	"geo-pricing-service/internal/domain"
)

// ErrNoCountry reports that a detection strategy produced no result.
var ErrNoCountry = errors.New("no country detected")

// Contract for one strategy in the location fallback chain.
type CountryDetector interface {
	// Name identifies the strategy in logs and outcomes.
	Name() string
	// Return the visitor's country, or an error when this strategy has no answer.
	DetectCountry(ctx context.Context, visitor domain.Visitor) (domain.CountryCode, error)
}
