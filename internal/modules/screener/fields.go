// Package screener implements the filtering, sorting and pagination core
// of the stock-screening dashboard.
package screener

import (
	"github.com/stockai/screener/internal/domain"
)

// Field identifies a filterable/sortable attribute of a stock record.
type Field string

const (
	FieldSymbol         Field = "symbol"
	FieldName           Field = "name"
	FieldSector         Field = "sector"
	FieldPrice          Field = "price"
	FieldChangePercent  Field = "change_percent"
	FieldMarketCap      Field = "market_cap"
	FieldPERatio        Field = "pe_ratio"
	FieldPEGRatio       Field = "peg_ratio"
	FieldPriceToBook    Field = "price_to_book"
	FieldDebtToEquity   Field = "debt_to_equity"
	FieldReturnOnEquity Field = "return_on_equity"
	FieldRevenueGrowth  Field = "revenue_growth"
	FieldEarningsGrowth Field = "earnings_growth"
	FieldDividendYield  Field = "dividend_yield"
	FieldRSI14          Field = "rsi_14"
	FieldSignal         Field = "ai_signal"
)

// fieldSpec describes how constraints and comparators access one field.
// Exactly one of numeric/text is set; signal additionally carries a
// severity rank used instead of lexicographic order.
type fieldSpec struct {
	Label    string
	Category string
	Numeric  func(r *domain.StockRecord) (float64, bool)
	Text     func(r *domain.StockRecord) string
	IsSignal bool
}

func optional(v *float64) (float64, bool) {
	if v == nil {
		return 0, false
	}
	return *v, true
}

// fieldRegistry is the single declarative table behind the predicate
// engine: adding a filterable field is a data change here, not a new
// code path in the evaluator.
var fieldRegistry = map[Field]fieldSpec{
	FieldSymbol: {
		Label:    "Symbol",
		Category: "classification",
		Text:     func(r *domain.StockRecord) string { return r.Symbol },
	},
	FieldName: {
		Label:    "Name",
		Category: "classification",
		Text:     func(r *domain.StockRecord) string { return r.Name },
	},
	FieldSector: {
		Label:    "Sector",
		Category: "classification",
		Text:     func(r *domain.StockRecord) string { return r.Sector },
	},
	FieldPrice: {
		Label:    "Price",
		Category: "technical",
		Numeric:  func(r *domain.StockRecord) (float64, bool) { return r.Price, true },
	},
	FieldChangePercent: {
		Label:    "Change %",
		Category: "technical",
		Numeric:  func(r *domain.StockRecord) (float64, bool) { return r.ChangePercent, true },
	},
	FieldMarketCap: {
		Label:    "Market Cap",
		Category: "valuation",
		Numeric:  func(r *domain.StockRecord) (float64, bool) { return optional(r.MarketCap) },
	},
	FieldPERatio: {
		Label:    "P/E Ratio",
		Category: "valuation",
		Numeric:  func(r *domain.StockRecord) (float64, bool) { return optional(r.PERatio) },
	},
	FieldPEGRatio: {
		Label:    "PEG Ratio",
		Category: "valuation",
		Numeric:  func(r *domain.StockRecord) (float64, bool) { return optional(r.PEGRatio) },
	},
	FieldPriceToBook: {
		Label:    "Price/Book",
		Category: "valuation",
		Numeric:  func(r *domain.StockRecord) (float64, bool) { return optional(r.PriceToBook) },
	},
	FieldDebtToEquity: {
		Label:    "Debt/Equity",
		Category: "liquidity",
		Numeric:  func(r *domain.StockRecord) (float64, bool) { return optional(r.DebtToEquity) },
	},
	FieldReturnOnEquity: {
		Label:    "Return on Equity",
		Category: "profitability",
		Numeric:  func(r *domain.StockRecord) (float64, bool) { return optional(r.ReturnOnEquity) },
	},
	FieldRevenueGrowth: {
		Label:    "Revenue Growth",
		Category: "growth",
		Numeric:  func(r *domain.StockRecord) (float64, bool) { return optional(r.RevenueGrowth) },
	},
	FieldEarningsGrowth: {
		Label:    "Earnings Growth",
		Category: "growth",
		Numeric:  func(r *domain.StockRecord) (float64, bool) { return optional(r.EarningsGrowth) },
	},
	FieldDividendYield: {
		Label:    "Dividend Yield",
		Category: "dividend",
		Numeric:  func(r *domain.StockRecord) (float64, bool) { return optional(r.DividendYield) },
	},
	FieldRSI14: {
		Label:    "RSI (14)",
		Category: "technical",
		Numeric: func(r *domain.StockRecord) (float64, bool) {
			if r.RSI14 == nil {
				return 0, false
			}
			return float64(*r.RSI14), true
		},
	},
	FieldSignal: {
		Label:    "AI Signal",
		Category: "classification",
		Text:     func(r *domain.StockRecord) string { return string(r.Signal) },
		IsSignal: true,
	},
}

// FieldInfo describes one registered field for API consumers.
type FieldInfo struct {
	Key      Field    `json:"key"`
	Label    string   `json:"label"`
	Category string   `json:"category"`
	Numeric  bool     `json:"numeric"`
	Buckets  []string `json:"buckets,omitempty"`
}

// Fields returns the registered field catalogue grouped by category,
// with bucket labels where a bucket table exists.
func Fields() map[string][]FieldInfo {
	out := make(map[string][]FieldInfo)
	for key, spec := range fieldRegistry {
		info := FieldInfo{
			Key:      key,
			Label:    spec.Label,
			Category: spec.Category,
			Numeric:  spec.Numeric != nil,
			Buckets:  BucketLabels(key),
		}
		out[spec.Category] = append(out[spec.Category], info)
	}
	return out
}

// KnownField reports whether key is in the registry.
func KnownField(key Field) bool {
	_, ok := fieldRegistry[key]
	return ok
}
