package screener

import (
	"sort"

	"github.com/stockai/screener/internal/domain"
)

// relevanceScore ranks a matching record by how comfortably it clears
// the numeric filters, with a bonus for a bullish signal. A record
// sitting exactly on a bound scores zero for that constraint, one deep
// inside it approaches one.
func relevanceScore(f *FilterSet, r *domain.StockRecord) float64 {
	var score float64
	for _, c := range f.Constraints() {
		rng, ok := c.(Range)
		if !ok {
			continue
		}
		spec := fieldRegistry[rng.Key]
		v, present := spec.Numeric(r)
		if !present {
			continue
		}
		switch {
		case rng.Min != nil && rng.Max != nil:
			width := *rng.Max - *rng.Min
			if width > 0 {
				// Distance from the nearer bound, normalized.
				lo := v - *rng.Min
				hi := *rng.Max - v
				d := lo
				if hi < d {
					d = hi
				}
				score += 2 * d / width
			}
		case rng.Min != nil:
			if *rng.Min != 0 {
				score += (v - *rng.Min) / abs(*rng.Min)
			} else {
				score += v
			}
		case rng.Max != nil:
			if *rng.Max != 0 {
				score += (*rng.Max - v) / abs(*rng.Max)
			}
		}
	}
	score += float64(r.Signal.Rank()) * 0.5
	return score
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

// sortByRelevance orders records best-match first. Ties keep incoming
// order.
func sortByRelevance(records []domain.StockRecord, f *FilterSet) {
	scores := make([]float64, len(records))
	for i := range records {
		scores[i] = relevanceScore(f, &records[i])
	}
	idx := make([]int, len(records))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return scores[idx[a]] > scores[idx[b]]
	})
	out := make([]domain.StockRecord, len(records))
	for i, j := range idx {
		out[i] = records[j]
	}
	copy(records, out)
}
