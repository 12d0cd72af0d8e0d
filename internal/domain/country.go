package domain

import "strings"

// Two-letter, upper-case country code (e.g. "BD").
// The zero value means the country is unresolved.
type CountryCode string

const CountryUS CountryCode = "US"

// NormalizeCountry trims and upper-cases s. It reports false when the result
// is not exactly two ASCII letters.
func NormalizeCountry(s string) (CountryCode, bool) {
	c := strings.ToUpper(strings.TrimSpace(s))
	if len(c) != 2 {
		return CountryCode(c), false
	}
	for i := 0; i < len(c); i++ {
		if c[i] < 'A' || c[i] > 'Z' {
			return CountryCode(c), false
		}
	}
	return CountryCode(c), true
}

// Request-side facts used to guess where a visitor is.
// Either field may be empty.
type Visitor struct {
	IP       string
	TimeZone string
}
