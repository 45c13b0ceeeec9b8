package screener

import (
	"fmt"
	"math"
	"sort"

	"github.com/stockai/screener/internal/domain"
)

// Direction is a sort order.
type Direction string

const (
	Ascending  Direction = "asc"
	Descending Direction = "desc"
)

// Toggle flips the direction.
func (d Direction) Toggle() Direction {
	if d == Ascending {
		return Descending
	}
	return Ascending
}

// SortSpec names the active sort key and direction.
type SortSpec struct {
	Key       Field     `json:"key"`
	Direction Direction `json:"direction"`
}

// Validate checks the key against the registry and the direction
// against the two legal values.
func (s SortSpec) Validate() error {
	if !KnownField(s.Key) {
		return fmt.Errorf("unknown sort key %q", s.Key)
	}
	if s.Direction != Ascending && s.Direction != Descending {
		return fmt.Errorf("unknown sort direction %q", s.Direction)
	}
	return nil
}

// sortValue maps a record to a comparable key for the given field.
// Missing numerics rank below every present value; direction is
// applied after ranking.
func sortValue(spec fieldSpec, r *domain.StockRecord) (num float64, text string, numeric bool) {
	if spec.IsSignal {
		return float64(r.Signal.Rank()), "", true
	}
	if spec.Numeric != nil {
		v, ok := spec.Numeric(r)
		if !ok {
			return -math.MaxFloat64, "", true
		}
		return v, "", true
	}
	return 0, spec.Text(r), false
}

// Sort orders records in place by the spec. Equal keys keep their
// incoming order.
func Sort(records []domain.StockRecord, s SortSpec) error {
	if err := s.Validate(); err != nil {
		return err
	}
	spec := fieldRegistry[s.Key]
	sort.SliceStable(records, func(i, j int) bool {
		ni, ti, numeric := sortValue(spec, &records[i])
		nj, tj, _ := sortValue(spec, &records[j])
		if s.Direction == Descending {
			ni, nj = nj, ni
			ti, tj = tj, ti
		}
		if numeric {
			return ni < nj
		}
		return ti < tj
	})
	return nil
}
