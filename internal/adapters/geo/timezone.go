package geo

import (
	"context"
	"fmt"
	"strings"

	"geo-pricing-service/internal/domain"
	"geo-pricing-service/internal/ports"
)

// A zone rule matches an IANA timezone exactly, or by prefix when Zone ends in "/".
type ZoneRule struct {
	Zone    string
	Country domain.CountryCode
}

// DefaultZoneRules is checked in order; the first match wins.
var DefaultZoneRules = []ZoneRule{
	{Zone: "Asia/Dhaka", Country: "BD"},
	{Zone: "Europe/London", Country: "GB"},
	{Zone: "Australia/", Country: "AU"},
	{Zone: "Asia/Tokyo", Country: "JP"},
	{Zone: "Asia/Seoul", Country: "KR"},
	{Zone: "America/Mexico_City", Country: "MX"},
	{Zone: "Asia/Shanghai", Country: "CN"},
	{Zone: "America/Toronto", Country: "CA"},
	{Zone: "America/Vancouver", Country: "CA"},
	{Zone: "Europe/Berlin", Country: "DE"},
	{Zone: "Europe/Paris", Country: "FR"},
	{Zone: "Europe/Rome", Country: "IT"},
	{Zone: "Europe/Madrid", Country: "ES"},
	{Zone: "Europe/Amsterdam", Country: "NL"},
	{Zone: "Europe/Brussels", Country: "BE"},
	{Zone: "Europe/Vienna", Country: "AT"},
	{Zone: "Europe/Dublin", Country: "IE"},
}

// TimeZoneDetector maps the visitor's reported timezone to a country.
// It needs no network and never blocks.
type TimeZoneDetector struct {
	rules []ZoneRule
}

func NewTimeZoneDetector(rules []ZoneRule) *TimeZoneDetector {
	if rules == nil {
		rules = DefaultZoneRules
	}
	return &TimeZoneDetector{rules: rules}
}

func (d *TimeZoneDetector) Name() string { return "timezone" }

func (d *TimeZoneDetector) DetectCountry(_ context.Context, visitor domain.Visitor) (domain.CountryCode, error) {
	tz := strings.TrimSpace(visitor.TimeZone)
	if tz == "" {
		return "", fmt.Errorf("timezone unknown: %w", ports.ErrNoCountry)
	}

	for _, r := range d.rules {
		if strings.HasSuffix(r.Zone, "/") {
			if strings.HasPrefix(tz, r.Zone) {
				return r.Country, nil
			}
			continue
		}
		if tz == r.Zone {
			return r.Country, nil
		}
	}

	return "", fmt.Errorf("timezone %q has no rule: %w", tz, ports.ErrNoCountry)
}
