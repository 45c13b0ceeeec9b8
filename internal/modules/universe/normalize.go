package universe

import (
	"errors"
	"strconv"
	"strings"

	"github.com/stockai/screener/internal/domain"
)

// ErrMissingSymbol rejects payload rows that cannot be identified.
var ErrMissingSymbol = errors.New("record has no symbol")

// numericKeys maps every accepted spelling of a numeric payload key to
// its setter. Upstream services disagree on casing, so both snake_case
// and camelCase spellings are accepted.
var numericKeys = map[string]func(*domain.StockRecord, float64){
	"price":            func(r *domain.StockRecord, v float64) { r.Price = v },
	"change":           func(r *domain.StockRecord, v float64) { r.ChangeAbsolute = v },
	"change_percent":   func(r *domain.StockRecord, v float64) { r.ChangePercent = v },
	"changepercent":    func(r *domain.StockRecord, v float64) { r.ChangePercent = v },
	"market_cap":       func(r *domain.StockRecord, v float64) { r.MarketCap = &v },
	"marketcap":        func(r *domain.StockRecord, v float64) { r.MarketCap = &v },
	"pe_ratio":         func(r *domain.StockRecord, v float64) { r.PERatio = &v },
	"peratio":          func(r *domain.StockRecord, v float64) { r.PERatio = &v },
	"peg_ratio":        func(r *domain.StockRecord, v float64) { r.PEGRatio = &v },
	"pegratio":         func(r *domain.StockRecord, v float64) { r.PEGRatio = &v },
	"price_to_book":    func(r *domain.StockRecord, v float64) { r.PriceToBook = &v },
	"pricetobook":      func(r *domain.StockRecord, v float64) { r.PriceToBook = &v },
	"debt_to_equity":   func(r *domain.StockRecord, v float64) { r.DebtToEquity = &v },
	"debttoequity":     func(r *domain.StockRecord, v float64) { r.DebtToEquity = &v },
	"return_on_equity": func(r *domain.StockRecord, v float64) { r.ReturnOnEquity = &v },
	"returnonequity":   func(r *domain.StockRecord, v float64) { r.ReturnOnEquity = &v },
	"revenue_growth":   func(r *domain.StockRecord, v float64) { r.RevenueGrowth = &v },
	"revenuegrowth":    func(r *domain.StockRecord, v float64) { r.RevenueGrowth = &v },
	"earnings_growth":  func(r *domain.StockRecord, v float64) { r.EarningsGrowth = &v },
	"earningsgrowth":   func(r *domain.StockRecord, v float64) { r.EarningsGrowth = &v },
	"dividend_yield":   func(r *domain.StockRecord, v float64) { r.DividendYield = &v },
	"dividendyield":    func(r *domain.StockRecord, v float64) { r.DividendYield = &v },
	"rsi":              setRSI,
	"rsi_14":           setRSI,
}

func setRSI(r *domain.StockRecord, v float64) {
	rsi := int(v)
	r.RSI14 = &rsi
}

// Normalize converts one loosely-typed payload row into a StockRecord.
// Numeric values arriving as strings or ints are coerced, unknown keys
// are ignored, and a missing signal is derived from the day's change.
func Normalize(raw map[string]interface{}) (domain.StockRecord, error) {
	var r domain.StockRecord

	for key, value := range raw {
		key = strings.ToLower(key)
		switch key {
		case "symbol", "ticker":
			if s, ok := value.(string); ok {
				r.Symbol = strings.ToUpper(strings.TrimSpace(s))
			}
		case "name", "company_name", "companyname":
			if s, ok := value.(string); ok {
				r.Name = s
			}
		case "sector":
			if s, ok := value.(string); ok {
				r.Sector = s
			}
		case "signal", "ai_signal", "aisignal":
			if s, ok := value.(string); ok && domain.Signal(s).Valid() {
				r.Signal = domain.Signal(s)
				r.SignalAuthoritative = true
			}
		default:
			set, ok := numericKeys[key]
			if !ok {
				continue
			}
			if v, ok := toFloat(value); ok {
				set(&r, v)
			}
		}
	}

	if r.Symbol == "" {
		return domain.StockRecord{}, ErrMissingSymbol
	}
	if r.Name == "" {
		r.Name = r.Symbol
	}
	domain.FillSignal(&r)
	return r, nil
}

// NormalizeAll converts a batch, dropping rows that fail. The count of
// dropped rows is returned so callers can log it.
func NormalizeAll(rows []map[string]interface{}) ([]domain.StockRecord, int) {
	out := make([]domain.StockRecord, 0, len(rows))
	dropped := 0
	for _, row := range rows {
		r, err := Normalize(row)
		if err != nil {
			dropped++
			continue
		}
		out = append(out, r)
	}
	return out, dropped
}

func toFloat(value interface{}) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case string:
		s := strings.TrimSpace(strings.TrimSuffix(strings.ReplaceAll(v, ",", ""), "%"))
		if s == "" || strings.EqualFold(s, "n/a") || s == "-" {
			return 0, false
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}
