package geo

import (
	"context"
	"fmt"
	"strings"

	"geo-pricing-service/internal/adapters/remote"
	"geo-pricing-service/internal/domain"
	"geo-pricing-service/internal/ports"
)

type countryIsResponse struct {
	IP      string `json:"ip"`
	Country string `json:"country"`
}

// CountryIsDetector geolocates a visitor IP with api.country.is.
type CountryIsDetector struct {
	client  *remote.Client
	baseURL string
}

func NewCountryIsDetector(client *remote.Client, baseURL string) *CountryIsDetector {
	return &CountryIsDetector{client: client, baseURL: strings.TrimRight(baseURL, "/")}
}

func (d *CountryIsDetector) Name() string { return "country_is" }

func (d *CountryIsDetector) DetectCountry(ctx context.Context, visitor domain.Visitor) (domain.CountryCode, error) {
	path, err := lookupPath(visitor.IP)
	if err != nil {
		return "", err
	}

	var decoded countryIsResponse
	if err := d.client.GetJSON(ctx, d.baseURL+"/"+path, &decoded); err != nil {
		return "", fmt.Errorf("country.is lookup: %w", err)
	}

	code, ok := domain.NormalizeCountry(decoded.Country)
	if !ok {
		return "", fmt.Errorf("country.is returned %q: %w", decoded.Country, ports.ErrNoCountry)
	}

	return code, nil
}
