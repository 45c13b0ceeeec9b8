package screener

import (
	"gonum.org/v1/gonum/stat"

	"github.com/stockai/screener/internal/domain"
)

// Summary holds aggregate statistics over a filtered result set. Means
// are computed over records that carry the underlying value; counts say
// how many did.
type Summary struct {
	Total           int                   `json:"total"`
	Advancers       int                   `json:"advancers"`
	Decliners       int                   `json:"decliners"`
	MeanChange      float64               `json:"mean_change_percent"`
	MeanPE          *float64              `json:"mean_pe_ratio,omitempty"`
	MeanDividend    *float64              `json:"mean_dividend_yield,omitempty"`
	TotalMarketCap  float64               `json:"total_market_cap"`
	SignalBreakdown map[domain.Signal]int `json:"signal_breakdown"`
}

// Summarize computes the aggregate view of a result set.
func Summarize(records []domain.StockRecord) Summary {
	s := Summary{
		Total:           len(records),
		SignalBreakdown: make(map[domain.Signal]int),
	}
	changes := make([]float64, 0, len(records))
	var pes, divs []float64
	for i := range records {
		r := &records[i]
		changes = append(changes, r.ChangePercent)
		if r.ChangePercent > 0 {
			s.Advancers++
		} else if r.ChangePercent < 0 {
			s.Decliners++
		}
		if r.PERatio != nil {
			pes = append(pes, *r.PERatio)
		}
		if r.DividendYield != nil {
			divs = append(divs, *r.DividendYield)
		}
		if r.MarketCap != nil {
			s.TotalMarketCap += *r.MarketCap
		}
		if r.Signal != domain.SignalNone {
			s.SignalBreakdown[r.Signal]++
		}
	}
	if len(changes) > 0 {
		s.MeanChange = stat.Mean(changes, nil)
	}
	if len(pes) > 0 {
		m := stat.Mean(pes, nil)
		s.MeanPE = &m
	}
	if len(divs) > 0 {
		m := stat.Mean(divs, nil)
		s.MeanDividend = &m
	}
	return s
}
