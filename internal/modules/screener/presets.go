package screener

import "fmt"

// Preset is a named, ready-made filter combination.
type Preset struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`

	constraints []Constraint
}

func f64(v float64) *float64 { return &v }

// init validates every preset table against the field registry so a
// table mistake fails at startup, not on first use.
func init() {
	for _, p := range presets {
		if _, err := NewFilterSet(p.constraints...); err != nil {
			panic(fmt.Sprintf("invalid preset %q: %v", p.ID, err))
		}
	}
}

// presets are kept in display order. Each is validated once at startup
// through FilterSet construction, so a table mistake fails fast.
var presets = []Preset{
	{
		ID:          "high-growth",
		Name:        "High Growth",
		Description: "Revenue growing over 25% with strong earnings momentum",
		constraints: []Constraint{
			Range{Key: FieldRevenueGrowth, Min: f64(25)},
			Range{Key: FieldEarningsGrowth, Min: f64(15)},
		},
	},
	{
		ID:          "undervalued",
		Name:        "Undervalued",
		Description: "Low P/E and trading near book value",
		constraints: []Constraint{
			Range{Key: FieldPERatio, Min: f64(0), Max: f64(15)},
			Range{Key: FieldPriceToBook, Min: f64(0), Max: f64(2)},
		},
	},
	{
		ID:          "momentum",
		Name:        "Momentum",
		Description: "Strong recent moves with healthy RSI",
		constraints: []Constraint{
			Range{Key: FieldChangePercent, Min: f64(2)},
			Range{Key: FieldRSI14, Min: f64(50), Max: f64(70)},
		},
	},
	{
		ID:          "dividend-aristocrats",
		Name:        "Dividend Aristocrats",
		Description: "Reliable payers yielding 3% or more with manageable debt",
		constraints: []Constraint{
			Range{Key: FieldDividendYield, Min: f64(3)},
			Range{Key: FieldDebtToEquity, Max: f64(1.5)},
		},
	},
	{
		ID:          "small-cap-growth",
		Name:        "Small Cap Growth",
		Description: "Small caps growing revenue over 20%",
		constraints: []Constraint{
			Bucket{Key: FieldMarketCap, Label: "Small Cap (300M-2B)"},
			Range{Key: FieldRevenueGrowth, Min: f64(20)},
		},
	},
	{
		ID:          "deep-value",
		Name:        "Deep Value",
		Description: "Below book value with single-digit P/E",
		constraints: []Constraint{
			Range{Key: FieldPERatio, Min: f64(0), Max: f64(10)},
			Bucket{Key: FieldPriceToBook, Label: "Under 1 (Below Book)"},
		},
	},
	{
		ID:          "quality-growth",
		Name:        "Quality Growth",
		Description: "High return on equity, growing, without balance-sheet strain",
		constraints: []Constraint{
			Range{Key: FieldReturnOnEquity, Min: f64(15)},
			Range{Key: FieldRevenueGrowth, Min: f64(10)},
			Range{Key: FieldDebtToEquity, Max: f64(1)},
		},
	},
}

// Presets returns the preset catalogue in display order.
func Presets() []Preset {
	out := make([]Preset, len(presets))
	copy(out, presets)
	return out
}

// PresetFilters resolves a preset ID into a validated filter set.
func PresetFilters(id string) (*FilterSet, error) {
	for _, p := range presets {
		if p.ID == id {
			return NewFilterSet(p.constraints...)
		}
	}
	return nil, fmt.Errorf("unknown preset %q", id)
}
