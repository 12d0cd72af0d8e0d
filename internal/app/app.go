// Package app assembles the conversion pipeline from configuration. Both
// binaries share it so the server and the CLI localize identically.
package app

import (
	"fmt"

	"geo-pricing-service/internal/adapters/geo"
	"geo-pricing-service/internal/adapters/rates"
	"geo-pricing-service/internal/adapters/remote"
	"geo-pricing-service/internal/catalog"
	"geo-pricing-service/internal/config"
	"geo-pricing-service/internal/domain"
	"geo-pricing-service/internal/ports"
	"geo-pricing-service/internal/services"

	"go.uber.org/zap"
)

// Pipeline holds the wired components. Rates is exposed for the CLI's
// rate command.
type Pipeline struct {
	Converter *services.Converter
	Rates     *rates.OpenERAPIProvider
	Catalog   *catalog.Catalog
}

// Build wires detectors, catalog and rate source per cfg. A non-nil
// rateOverride replaces the live rate source.
func Build(cfg config.Config, logger *zap.Logger, rateOverride ports.RateProvider) (*Pipeline, error) {
	cat, err := LoadCatalog(cfg)
	if err != nil {
		return nil, fmt.Errorf("build pipeline: %w", err)
	}

	detectors, err := Detectors(cfg)
	if err != nil {
		return nil, fmt.Errorf("build pipeline: %w", err)
	}

	live := rates.NewOpenERAPIProvider(remote.NewClient(cfg.RatesTimeout), cfg.RatesURL, logger)
	var rp ports.RateProvider = live
	if rateOverride != nil {
		rp = rateOverride
	}

	resolver := services.NewLocationResolver(detectors, domain.CountryCode(cfg.FallbackCountry), logger)

	return &Pipeline{
		Converter: services.NewConverter(resolver, cat, rp, logger),
		Rates:     live,
		Catalog:   cat,
	}, nil
}

// LoadCatalog returns the built-in catalog, merged with CATALOG_PATH when set.
func LoadCatalog(cfg config.Config) (*catalog.Catalog, error) {
	if cfg.CatalogPath == "" {
		return catalog.Default(), nil
	}
	return catalog.LoadFile(cfg.CatalogPath)
}

// Detectors returns the location strategies in configured order.
func Detectors(cfg config.Config) ([]ports.CountryDetector, error) {
	geoClient := remote.NewClient(cfg.GeoTimeout)

	out := make([]ports.CountryDetector, 0, len(cfg.LocationStrategies))
	for _, name := range cfg.LocationStrategies {
		switch name {
		case config.StrategyCountryIs:
			out = append(out, geo.NewCountryIsDetector(geoClient, cfg.CountryIsURL))
		case config.StrategyIPAPI:
			out = append(out, geo.NewIPAPIDetector(geoClient, cfg.IPAPIURL))
		case config.StrategyTimeZone:
			out = append(out, geo.NewTimeZoneDetector(nil))
		default:
			return nil, fmt.Errorf("unknown location strategy %q", name)
		}
	}
	return out, nil
}
