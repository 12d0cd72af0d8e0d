package domain

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// USDFormat is how authored prices read: "$1,999".
var USDFormat = FormatSpec{Symbol: "$", Position: SymbolBefore}

// Format groups thousands English-style, keeps at most two fraction digits,
// and places the symbol: "€45", "245,000৳".
func (f FormatSpec) Format(amount decimal.Decimal) string {
	// message.Printer is not safe for concurrent use.
	p := message.NewPrinter(language.English)

	var formatted string
	if amount.IsInteger() {
		formatted = p.Sprint(number.Decimal(amount.IntPart()))
	} else {
		formatted = p.Sprint(number.Decimal(amount.Round(2).InexactFloat64(), number.MaxFractionDigits(2)))
	}

	if f.Position == SymbolAfter {
		return formatted + f.Symbol
	}
	return f.Symbol + formatted
}
