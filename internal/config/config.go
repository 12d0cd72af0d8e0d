// Package config loads service settings from the environment.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"geo-pricing-service/internal/domain"
	"geo-pricing-service/internal/platform/logging"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Strategy names accepted in LOCATION_STRATEGIES.
const (
	StrategyCountryIs = "country_is"
	StrategyIPAPI     = "ipapi"
	StrategyTimeZone  = "timezone"
)

type Config struct {
	Port    string `env:"PORT" envDefault:"8080"`
	SiteDir string `env:"SITE_DIR" envDefault:"site"`

	// Optional YAML merged over the built-in currency catalog.
	CatalogPath string `env:"CATALOG_PATH"`

	LocationStrategies []string      `env:"LOCATION_STRATEGIES" envSeparator:"," envDefault:"country_is,ipapi,timezone"`
	FallbackCountry    string        `env:"FALLBACK_COUNTRY" envDefault:"US"`
	GeoTimeout         time.Duration `env:"GEO_TIMEOUT" envDefault:"3s"`
	CountryIsURL       string        `env:"COUNTRY_IS_URL" envDefault:"https://api.country.is"`
	IPAPIURL           string        `env:"IPAPI_URL" envDefault:"https://ipapi.co"`

	RatesURL     string        `env:"RATES_URL" envDefault:"https://open.er-api.com/v6/latest/USD"`
	RatesTimeout time.Duration `env:"RATES_TIMEOUT" envDefault:"5s"`

	Logging logging.Config
}

// Load reads an optional .env file, then parses the environment.
// The bool result reports whether a .env file was found.
func Load() (Config, bool, error) {
	found := godotenv.Load() == nil

	cfg, err := Parse()
	return cfg, found, err
}

// Parse reads Config from the process environment and validates it.
func Parse() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if strings.TrimSpace(c.Port) == "" {
		return errors.New("config: PORT must be non-empty")
	}

	fallback, ok := domain.NormalizeCountry(c.FallbackCountry)
	if !ok {
		return fmt.Errorf("config: FALLBACK_COUNTRY %q is not a two-letter code", c.FallbackCountry)
	}
	c.FallbackCountry = string(fallback)

	strategies := make([]string, 0, len(c.LocationStrategies))
	for _, s := range c.LocationStrategies {
		s = strings.ToLower(strings.TrimSpace(s))
		switch s {
		case "":
			continue
		case StrategyCountryIs, StrategyIPAPI, StrategyTimeZone:
			strategies = append(strategies, s)
		default:
			return fmt.Errorf("config: unknown location strategy %q", s)
		}
	}
	c.LocationStrategies = strategies

	if c.GeoTimeout <= 0 || c.RatesTimeout <= 0 {
		return errors.New("config: timeouts must be positive")
	}

	return nil
}
