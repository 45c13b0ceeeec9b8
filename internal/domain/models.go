// Package domain provides core domain models and types.
package domain

// Signal represents a categorical recommendation tier for a stock
type Signal string

const (
	SignalStrongBuy Signal = "Strong Buy"
	SignalBuy       Signal = "Buy"
	SignalHold      Signal = "Hold"
	SignalNeutral   Signal = "Neutral"
	SignalSell      Signal = "Sell"
	// SignalNone means "not yet computed"
	SignalNone Signal = ""
)

// signalRanks is the canonical severity table used for ordering.
// Hold ranks above Neutral: Hold is an affirmative recommendation,
// Neutral is the absence of one.
var signalRanks = map[Signal]int{
	SignalStrongBuy: 4,
	SignalBuy:       3,
	SignalHold:      2,
	SignalNeutral:   1,
	SignalSell:      0,
}

// Rank returns the severity rank of a signal. Unknown or absent
// signals rank below every known tier.
func (s Signal) Rank() int {
	if rank, ok := signalRanks[s]; ok {
		return rank
	}
	return -1
}

// Valid reports whether s is one of the known signal tiers.
func (s Signal) Valid() bool {
	_, ok := signalRanks[s]
	return ok
}

// Sectors is the fixed sector taxonomy for the dataset.
var Sectors = []string{
	"Technology",
	"Healthcare",
	"Financial Services",
	"Consumer Cyclical",
	"Consumer Defensive",
	"Industrials",
	"Energy",
	"Basic Materials",
	"Communication Services",
}

// StockRecord represents one row of the dataset.
// Optional metrics are pointers; nil means the upstream source did not
// supply the value (e.g. P/E for non-earning companies).
type StockRecord struct {
	Symbol         string   `json:"symbol"`
	Name           string   `json:"name"`
	Price          float64  `json:"price"`
	ChangeAbsolute float64  `json:"change"`
	ChangePercent  float64  `json:"change_percent"`
	MarketCap      *float64 `json:"market_cap,omitempty"`
	PERatio        *float64 `json:"pe_ratio,omitempty"`
	PEGRatio       *float64 `json:"peg_ratio,omitempty"`
	PriceToBook    *float64 `json:"price_to_book,omitempty"`
	DebtToEquity   *float64 `json:"debt_to_equity,omitempty"`
	ReturnOnEquity *float64 `json:"return_on_equity,omitempty"`
	RevenueGrowth  *float64 `json:"revenue_growth,omitempty"`
	EarningsGrowth *float64 `json:"earnings_growth,omitempty"`
	DividendYield  *float64 `json:"dividend_yield,omitempty"`
	RSI14          *int     `json:"rsi_14,omitempty"`
	Sector         string   `json:"sector,omitempty"`
	Signal         Signal   `json:"ai_signal,omitempty"`
	// SignalAuthoritative marks a signal supplied by the upstream
	// source; derivation never overwrites it.
	SignalAuthoritative bool `json:"-"`
}
