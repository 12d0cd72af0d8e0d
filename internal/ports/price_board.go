package ports

import "geo-pricing-service/internal/domain"

// Port: the set of price-bearing nodes on a page.
// Implementations own the markup; the conversion pipeline only reads
// canonical amounts and writes whole displays back.
type PriceBoard interface {
	// Return every dynamic price element, in document order.
	Prices() []domain.PriceElement
	// Overwrite the content of the element at index.
	SetDisplay(index int, display domain.PriceDisplay) error
}
