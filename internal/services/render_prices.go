package services

import (
	"fmt"

	"geo-pricing-service/internal/domain"
	"geo-pricing-service/internal/ports"

	"github.com/shopspring/decimal"
)

// Conversion is everything the renderer needs to display one currency.
type Conversion struct {
	Currency domain.CurrencyCode
	Rate     decimal.Decimal
	Format   domain.FormatSpec
}

// USDConversion shows prices exactly as authored.
func USDConversion(format domain.FormatSpec) Conversion {
	return Conversion{Currency: domain.USD, Rate: decimal.NewFromInt(1), Format: format}
}

// Display computes the content of one element. Foreign currencies go through
// the rounding policy; USD shows the stored amount unrounded.
func (c Conversion) Display(elem domain.PriceElement) domain.PriceDisplay {
	amount := elem.USD
	if c.Currency != domain.USD {
		amount = decimal.NewFromInt(domain.RoundDisplay(elem.USD.Mul(c.Rate)))
	}
	return domain.PriceDisplay{
		Text:   c.Format.Format(amount),
		Period: elem.Period,
	}
}

// RenderPrices overwrites every price element on board. It stops at the
// first write error.
func RenderPrices(board ports.PriceBoard, c Conversion) error {
	for _, elem := range board.Prices() {
		if err := board.SetDisplay(elem.Index, c.Display(elem)); err != nil {
			return fmt.Errorf("render prices: element %d: %w", elem.Index, err)
		}
	}
	return nil
}
