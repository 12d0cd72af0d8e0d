package geo

import (
	"context"
	"sync/atomic"

	"geo-pricing-service/internal/domain"
)

// MockDetector returns a fixed answer and counts calls.
type MockDetector struct {
	ID      string
	Country domain.CountryCode
	Err     error
	calls   atomic.Int32
}

func NewMockDetector(id string, country domain.CountryCode, err error) *MockDetector {
	return &MockDetector{ID: id, Country: country, Err: err}
}

func (m *MockDetector) Name() string { return m.ID }

func (m *MockDetector) DetectCountry(ctx context.Context, visitor domain.Visitor) (domain.CountryCode, error) {
	m.calls.Add(1)
	if m.Err != nil {
		return "", m.Err
	}
	return m.Country, nil
}

// Calls reports how many times DetectCountry ran.
func (m *MockDetector) Calls() int { return int(m.calls.Load()) }
