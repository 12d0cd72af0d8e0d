package geo

import (
	"context"
	"fmt"
	"strings"

	"geo-pricing-service/internal/adapters/remote"
	"geo-pricing-service/internal/domain"
	"geo-pricing-service/internal/ports"
)

type ipapiResponse struct {
	CountryCode string `json:"country_code"`
	Error       bool   `json:"error"`
	Reason      string `json:"reason"`
}

// IPAPIDetector geolocates a visitor IP with ipapi.co. It is the second
// IP endpoint in the default chain.
type IPAPIDetector struct {
	client  *remote.Client
	baseURL string
}

func NewIPAPIDetector(client *remote.Client, baseURL string) *IPAPIDetector {
	return &IPAPIDetector{client: client, baseURL: strings.TrimRight(baseURL, "/")}
}

func (d *IPAPIDetector) Name() string { return "ipapi" }

func (d *IPAPIDetector) DetectCountry(ctx context.Context, visitor domain.Visitor) (domain.CountryCode, error) {
	path, err := lookupPath(visitor.IP)
	if err != nil {
		return "", err
	}

	endpoint := d.baseURL + "/json/"
	if path != "" {
		endpoint = d.baseURL + "/" + path + "/json/"
	}

	var decoded ipapiResponse
	if err := d.client.GetJSON(ctx, endpoint, &decoded); err != nil {
		return "", fmt.Errorf("ipapi lookup: %w", err)
	}

	// ipapi reports quota and lookup failures in a 200 body.
	if decoded.Error {
		return "", fmt.Errorf("ipapi error %q: %w", decoded.Reason, ports.ErrNoCountry)
	}

	code, ok := domain.NormalizeCountry(decoded.CountryCode)
	if !ok {
		return "", fmt.Errorf("ipapi returned %q: %w", decoded.CountryCode, ports.ErrNoCountry)
	}

	return code, nil
}
