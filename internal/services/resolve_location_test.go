package services

import (
	"context"
	"errors"
	"testing"

	"geo-pricing-service/internal/adapters/geo"
	"geo-pricing-service/internal/domain"
	"geo-pricing-service/internal/ports"

	"github.com/stretchr/testify/assert"
)

func TestResolveOverrideSkipsDetection(t *testing.T) {
	ip := geo.NewMockDetector("ip", "BD", nil)
	r := NewLocationResolver([]ports.CountryDetector{ip}, "", nil)

	got := r.Resolve(context.Background(), domain.Visitor{IP: "1.2.3.4"}, " fr ")

	assert.Equal(t, Resolution{Country: "FR", ResolvedBy: ResolvedByOverride}, got)
	assert.Equal(t, 0, ip.Calls())
}

func TestResolveFallsThroughStrategies(t *testing.T) {
	ip := geo.NewMockDetector("ip", "", errors.New("connection refused"))
	tz := geo.NewMockDetector("timezone", "AU", nil)
	never := geo.NewMockDetector("never", "JP", nil)
	r := NewLocationResolver([]ports.CountryDetector{ip, tz, never}, "", nil)

	got := r.Resolve(context.Background(), domain.Visitor{}, "")

	assert.Equal(t, Resolution{Country: "AU", ResolvedBy: "timezone"}, got)
	assert.Equal(t, 1, ip.Calls())
	assert.Equal(t, 0, never.Calls())
}

func TestResolveSkipsInvalidCodes(t *testing.T) {
	bad := geo.NewMockDetector("bad", "Bangladesh", nil)
	good := geo.NewMockDetector("good", "bd", nil)
	r := NewLocationResolver([]ports.CountryDetector{bad, good}, "", nil)

	got := r.Resolve(context.Background(), domain.Visitor{}, "")
	assert.Equal(t, Resolution{Country: "BD", ResolvedBy: "good"}, got)
}

func TestResolveDefaultsToUS(t *testing.T) {
	a := geo.NewMockDetector("a", "", ports.ErrNoCountry)
	b := geo.NewMockDetector("b", "", errors.New("timeout"))
	r := NewLocationResolver([]ports.CountryDetector{a, b}, "", nil)

	got := r.Resolve(context.Background(), domain.Visitor{}, "")
	assert.Equal(t, Resolution{Country: "US", ResolvedBy: ResolvedByFallback}, got)

	got = NewLocationResolver(nil, "GB", nil).Resolve(context.Background(), domain.Visitor{}, "")
	assert.Equal(t, domain.CountryCode("GB"), got.Country)
}

func TestResolveRealTimeZoneChain(t *testing.T) {
	ip := geo.NewMockDetector("country_is", "", ports.ErrNoCountry)
	r := NewLocationResolver([]ports.CountryDetector{ip, geo.NewTimeZoneDetector(nil)}, "", nil)

	got := r.Resolve(context.Background(), domain.Visitor{TimeZone: "Asia/Dhaka"}, "")
	assert.Equal(t, Resolution{Country: "BD", ResolvedBy: "timezone"}, got)
}

func TestResolveCanceledContextFallsBack(t *testing.T) {
	ip := geo.NewMockDetector("ip", "BD", nil)
	r := NewLocationResolver([]ports.CountryDetector{ip}, "", nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	got := r.Resolve(ctx, domain.Visitor{}, "")
	assert.Equal(t, ResolvedByFallback, got.ResolvedBy)
	assert.Equal(t, 0, ip.Calls())
}

func TestStrategiesKeepOrder(t *testing.T) {
	r := NewLocationResolver([]ports.CountryDetector{
		geo.NewMockDetector("country_is", "", nil),
		geo.NewMockDetector("timezone", "", nil),
	}, "", nil)

	assert.Equal(t, []string{"country_is", "timezone"}, r.Strategies())
	assert.Empty(t, NewLocationResolver(nil, "", nil).Strategies())
}
