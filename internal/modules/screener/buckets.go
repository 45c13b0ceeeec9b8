package screener

import "math"

// bucketRange is a half-open interval [Lo, Hi). A degenerate range where
// Lo == Hi matches that exact value only, which is how the "0% or None"
// dividend bucket works.
type bucketRange struct {
	Label string
	Lo    float64
	Hi    float64
}

func (b bucketRange) contains(v float64) bool {
	if b.Lo == b.Hi {
		return v == b.Lo
	}
	return v >= b.Lo && v < b.Hi
}

const inf = math.MaxFloat64

var bucketTables = map[Field][]bucketRange{
	FieldMarketCap: {
		{Label: "Mega Cap (200B+)", Lo: 200e9, Hi: inf},
		{Label: "Large Cap (10B-200B)", Lo: 10e9, Hi: 200e9},
		{Label: "Mid Cap (2B-10B)", Lo: 2e9, Hi: 10e9},
		{Label: "Small Cap (300M-2B)", Lo: 300e6, Hi: 2e9},
		{Label: "Micro Cap (<300M)", Lo: 0, Hi: 300e6},
	},
	FieldDividendYield: {
		{Label: "High (4%+)", Lo: 4, Hi: inf},
		{Label: "Medium (2-4%)", Lo: 2, Hi: 4},
		{Label: "Low (0-2%)", Lo: 0, Hi: 2},
		{Label: "0% or None", Lo: 0, Hi: 0},
	},
	FieldPrice: {
		{Label: "Over $500", Lo: 500, Hi: inf},
		{Label: "$100-$500", Lo: 100, Hi: 500},
		{Label: "$20-$100", Lo: 20, Hi: 100},
		{Label: "Under $20", Lo: 0, Hi: 20},
	},
	FieldPriceToBook: {
		{Label: "Under 1 (Below Book)", Lo: 0, Hi: 1},
		{Label: "1-3", Lo: 1, Hi: 3},
		{Label: "3-10", Lo: 3, Hi: 10},
		{Label: "Over 10", Lo: 10, Hi: inf},
	},
	FieldDebtToEquity: {
		{Label: "Low (<0.5)", Lo: 0, Hi: 0.5},
		{Label: "Moderate (0.5-1.5)", Lo: 0.5, Hi: 1.5},
		{Label: "High (1.5+)", Lo: 1.5, Hi: inf},
	},
	FieldReturnOnEquity: {
		{Label: "Excellent (20%+)", Lo: 20, Hi: inf},
		{Label: "Good (10-20%)", Lo: 10, Hi: 20},
		{Label: "Weak (<10%)", Lo: -inf, Hi: 10},
	},
	FieldRevenueGrowth: {
		{Label: "Hyper (40%+)", Lo: 40, Hi: inf},
		{Label: "Strong (20-40%)", Lo: 20, Hi: 40},
		{Label: "Moderate (5-20%)", Lo: 5, Hi: 20},
		{Label: "Slow (<5%)", Lo: -inf, Hi: 5},
	},
	FieldRSI14: {
		{Label: "Overbought (70+)", Lo: 70, Hi: inf},
		{Label: "Neutral (30-70)", Lo: 30, Hi: 70},
		{Label: "Oversold (<30)", Lo: -inf, Hi: 30},
	},
}

// BucketLabels returns the labels defined for a field, nil when the
// field has no bucket table.
func BucketLabels(field Field) []string {
	table, ok := bucketTables[field]
	if !ok {
		return nil
	}
	labels := make([]string, 0, len(table))
	for _, b := range table {
		labels = append(labels, b.Label)
	}
	return labels
}

func lookupBucket(field Field, label string) (bucketRange, bool) {
	for _, b := range bucketTables[field] {
		if b.Label == label {
			return b, true
		}
	}
	return bucketRange{}, false
}
