package screener

import (
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/stockai/screener/internal/domain"
)

// RecordSource supplies the working universe of stock records.
type RecordSource interface {
	Snapshot() []domain.StockRecord
}

// Request describes one screening pass over the universe.
type Request struct {
	Filters  *FilterSet
	Sort     *SortSpec
	Page     int
	PageSize int
}

// Result is the screened, ordered, paginated outcome plus aggregates
// over the full match set (not just the visible page).
type Result struct {
	Page    Page    `json:"page"`
	Summary Summary `json:"summary"`
}

// Service runs the filter, order, paginate pipeline against a record
// source. The source is read on every call so refreshed universes are
// picked up without coordination.
type Service struct {
	source   RecordSource
	pageSize int
	logger   zerolog.Logger
}

// NewService creates the screening service. pageSize is the fallback
// when a request does not name one.
func NewService(source RecordSource, pageSize int) *Service {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &Service{
		source:   source,
		pageSize: pageSize,
		logger:   log.With().Str("component", "screener").Logger(),
	}
}

// Screen applies the request to the current universe snapshot. With a
// nil Sort, filtered results come back best-match first and unfiltered
// results keep source order.
func (s *Service) Screen(req Request) (Result, error) {
	if req.Sort != nil {
		if err := req.Sort.Validate(); err != nil {
			return Result{}, err
		}
	}

	records := s.source.Snapshot()
	total := len(records)

	if !req.Filters.Empty() {
		matched := records[:0:0]
		for i := range records {
			if req.Filters.Matches(&records[i]) {
				matched = append(matched, records[i])
			}
		}
		records = matched
	}

	switch {
	case req.Sort != nil:
		if err := Sort(records, *req.Sort); err != nil {
			return Result{}, err
		}
	case !req.Filters.Empty():
		sortByRelevance(records, req.Filters)
	}

	size := req.PageSize
	if size <= 0 {
		size = s.pageSize
	}

	s.logger.Debug().
		Int("universe", total).
		Int("matched", len(records)).
		Int("page", req.Page).
		Msg("Screen pass complete")

	return Result{
		Page:    Paginate(records, req.Page, size),
		Summary: Summarize(records),
	}, nil
}
