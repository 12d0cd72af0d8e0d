// Package catalog holds the static country → currency and currency → display
// format tables. Lookups never fail: a miss is a valid answer meaning "stay in USD"
// or "use the generic format".
package catalog

import (
	"fmt"
	"os"
	"strings"

	"geo-pricing-service/internal/domain"

	"gopkg.in/yaml.v3"
)

// Catalog is read-only after construction and safe for concurrent use.
type Catalog struct {
	countries map[domain.CountryCode]domain.CurrencyCode
	formats   map[domain.CurrencyCode]domain.FormatSpec
}

var defaultCountries = map[domain.CountryCode]domain.CurrencyCode{
	"BD": "BDT",
	"GB": "GBP",
	"CA": "CAD",
	"JP": "JPY",
	"KR": "KRW",
	"CN": "CNY",
	"MX": "MXN",
	"AU": "AUD",
	"IN": "INR",
	"SG": "SGD",
	"AE": "AED",
	"CH": "CHF",
	"NZ": "NZD",
	// Eurozone
	"DE": "EUR", "FR": "EUR", "IT": "EUR", "ES": "EUR",
	"NL": "EUR", "BE": "EUR", "AT": "EUR", "IE": "EUR",
	"PT": "EUR", "FI": "EUR", "GR": "EUR", "LU": "EUR",
}

var defaultFormats = map[domain.CurrencyCode]domain.FormatSpec{
	"USD": domain.USDFormat,
	"EUR": {Symbol: "€", Position: domain.SymbolBefore},
	"GBP": {Symbol: "£", Position: domain.SymbolBefore},
	"BDT": {Symbol: "৳", Position: domain.SymbolAfter},
	"CAD": {Symbol: "CA$", Position: domain.SymbolBefore},
	"AUD": {Symbol: "AU$", Position: domain.SymbolBefore},
	"JPY": {Symbol: "¥", Position: domain.SymbolBefore},
	"KRW": {Symbol: "₩", Position: domain.SymbolBefore},
	"CNY": {Symbol: "¥", Position: domain.SymbolBefore},
	"MXN": {Symbol: "MX$", Position: domain.SymbolBefore},
	"INR": {Symbol: "₹", Position: domain.SymbolBefore},
}

// Default returns the built-in tables.
func Default() *Catalog {
	c := &Catalog{
		countries: make(map[domain.CountryCode]domain.CurrencyCode, len(defaultCountries)),
		formats:   make(map[domain.CurrencyCode]domain.FormatSpec, len(defaultFormats)),
	}
	for k, v := range defaultCountries {
		c.countries[k] = v
	}
	for k, v := range defaultFormats {
		c.formats[k] = v
	}
	return c
}

// CurrencyFor reports the display currency of a country. The US and every
// country without an entry resolve to (USD, false).
func (c *Catalog) CurrencyFor(country domain.CountryCode) (domain.CurrencyCode, bool) {
	cur, ok := c.countries[country]
	if !ok || cur == domain.USD {
		return domain.USD, false
	}
	return cur, true
}

// FormatFor returns the display format of a currency, or the generic
// "<CODE> " prefix format when it has no entry.
func (c *Catalog) FormatFor(cur domain.CurrencyCode) domain.FormatSpec {
	if f, ok := c.formats[cur]; ok {
		return f
	}
	return domain.FallbackFormat(cur)
}

// Countries returns the number of countries eligible for conversion.
func (c *Catalog) Countries() int {
	n := 0
	for _, cur := range c.countries {
		if cur != domain.USD {
			n++
		}
	}
	return n
}

type overrideFile struct {
	Countries map[string]string `yaml:"countries"`
	Formats   map[string]struct {
		Symbol   string `yaml:"symbol"`
		Position string `yaml:"position"`
	} `yaml:"formats"`
}

// LoadFile returns the default catalog with the entries of a YAML file
// merged over it. Mapping a country to USD removes it from conversion.
//
//	countries:
//	  SE: SEK
//	formats:
//	  SEK: {symbol: " kr", position: after}
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load catalog: read %q: %w", path, err)
	}
	return Parse(data)
}

// Parse is LoadFile for an in-memory document.
func Parse(data []byte) (*Catalog, error) {
	var f overrideFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("load catalog: parse yaml: %w", err)
	}

	c := Default()
	for k, v := range f.Countries {
		country, ok := domain.NormalizeCountry(k)
		if !ok {
			return nil, fmt.Errorf("load catalog: invalid country code %q", k)
		}
		cur := domain.CurrencyCode(strings.ToUpper(strings.TrimSpace(v)))
		if len(cur) != 3 {
			return nil, fmt.Errorf("load catalog: invalid currency %q for %s", v, country)
		}
		c.countries[country] = cur
	}

	for k, v := range f.Formats {
		cur := domain.CurrencyCode(strings.ToUpper(strings.TrimSpace(k)))
		if len(cur) != 3 {
			return nil, fmt.Errorf("load catalog: invalid currency %q", k)
		}
		if v.Symbol == "" {
			return nil, fmt.Errorf("load catalog: empty symbol for %s", cur)
		}
		c.formats[cur] = domain.FormatSpec{
			Symbol:   v.Symbol,
			Position: domain.ParseSymbolPosition(v.Position),
		}
	}

	return c, nil
}
