package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// A magnitude range snapped to a fixed granularity.
// Amounts strictly above Above fall into the bucket.
type Bucket struct {
	Above       int64
	Granularity int64
}

// Buckets is ordered largest first. Amounts at or below the last threshold
// are rounded up to the next whole unit.
var Buckets = []Bucket{
	{Above: 100_000, Granularity: 5_000},
	{Above: 10_000, Granularity: 1_000},
	{Above: 1_000, Granularity: 50},
	{Above: 100, Granularity: 10},
	{Above: 30, Granularity: 5},
}

// MaxDisplay caps RoundDisplay. It is on the coarsest grid, so re-rounding
// a capped value is stable.
const MaxDisplay int64 = 1_000_000_000_000_000

// BucketFor returns the snapping granularity for raw, or 0 when raw falls
// into the round-up bucket.
func BucketFor(raw decimal.Decimal) int64 {
	for _, b := range Buckets {
		if raw.GreaterThan(decimal.NewFromInt(b.Above)) {
			return b.Granularity
		}
	}
	return 0
}

// RoundDisplay maps a raw converted price to a clean display price.
//
// Large amounts snap to a granularity proportional to their magnitude so
// that 146,400 shows as 145,000; small amounts are rounded up so no
// fractional unit is shown. Negative input yields 0 and anything above
// MaxDisplay yields MaxDisplay.
func RoundDisplay(raw decimal.Decimal) int64 {
	if raw.Sign() <= 0 {
		return 0
	}
	if raw.GreaterThanOrEqual(decimal.NewFromInt(MaxDisplay)) {
		return MaxDisplay
	}

	g := BucketFor(raw)
	if g == 0 {
		return raw.Ceil().IntPart()
	}

	step := decimal.NewFromInt(g)
	return raw.Div(step).Round(0).Mul(step).IntPart()
}

// validateBuckets checks that thresholds descend and that every
// granularity is a multiple of the next finer one. Re-rounding a display
// price is only stable while the second property holds.
func validateBuckets(buckets []Bucket) error {
	for i := 1; i < len(buckets); i++ {
		prev, cur := buckets[i-1], buckets[i]
		if cur.Above >= prev.Above {
			return fmt.Errorf("bucket %d: threshold %d not below %d", i, cur.Above, prev.Above)
		}
		if cur.Granularity <= 0 || prev.Granularity%cur.Granularity != 0 {
			return fmt.Errorf("bucket %d: granularity %d does not divide %d", i, cur.Granularity, prev.Granularity)
		}
	}
	return nil
}
