package stats

import (
	"sort"

	"github.com/shopspring/decimal"
)

var two = decimal.NewFromInt(2)

// Aggregate is the summary of one bucket of prices.
// A zero Count means there was no data and every other field is nil.
type Aggregate struct {
	Count  int              `json:"count"`
	Min    *decimal.Decimal `json:"min"`
	Max    *decimal.Decimal `json:"max"`
	Avg    *decimal.Decimal `json:"avg"`
	Median *decimal.Decimal `json:"median"`
}

// Median returns the median of prices, or nil when prices is empty.
// The input slice is not modified.
func Median(prices []decimal.Decimal) *decimal.Decimal {
	if len(prices) == 0 {
		return nil
	}

	sorted := make([]decimal.Decimal, len(prices))
	copy(sorted, prices)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].LessThan(sorted[j])
	})

	n := len(sorted)
	var median decimal.Decimal
	if n%2 == 1 {
		median = sorted[n/2]
	} else {
		median = sorted[n/2-1].Add(sorted[n/2]).Div(two)
	}
	return &median
}

// Summarize computes count, min, max, mean and median over prices.
func Summarize(prices []decimal.Decimal) Aggregate {
	if len(prices) == 0 {
		return Aggregate{}
	}

	min, max := prices[0], prices[0]
	sum := decimal.Zero
	for _, p := range prices {
		if p.LessThan(min) {
			min = p
		}
		if p.GreaterThan(max) {
			max = p
		}
		sum = sum.Add(p)
	}
	avg := sum.Div(decimal.NewFromInt(int64(len(prices))))

	return Aggregate{
		Count:  len(prices),
		Min:    &min,
		Max:    &max,
		Avg:    &avg,
		Median: Median(prices),
	}
}
