package domain

import "github.com/shopspring/decimal"

// Three-letter currency code (e.g. "EUR").
type CurrencyCode string

// USD is the authored currency of every price; resolving to it means no conversion.
const USD CurrencyCode = "USD"

type SymbolPosition int

const (
	SymbolBefore SymbolPosition = iota
	SymbolAfter
)

func (p SymbolPosition) String() string {
	if p == SymbolAfter {
		return "after"
	}
	return "before"
}

// ParseSymbolPosition accepts "before" and "after"; anything else is "before".
func ParseSymbolPosition(s string) SymbolPosition {
	if s == "after" {
		return SymbolAfter
	}
	return SymbolBefore
}

// How an amount in a currency is decorated for display.
type FormatSpec struct {
	Symbol   string
	Position SymbolPosition
}

// FallbackFormat is used for currencies without a catalog entry: "CHF 120".
func FallbackFormat(code CurrencyCode) FormatSpec {
	return FormatSpec{Symbol: string(code) + " ", Position: SymbolBefore}
}

// USD-based multipliers keyed by target currency.
// Tables are fetched per conversion and never retained.
type RateTable map[CurrencyCode]decimal.Decimal
