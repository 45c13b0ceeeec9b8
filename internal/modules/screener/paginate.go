package screener

import "github.com/stockai/screener/internal/domain"

// DefaultPageSize matches the dashboard's table height.
const DefaultPageSize = 20

// Page is one window of a result set plus the bookkeeping the UI needs
// to render pagination controls.
type Page struct {
	Records    []domain.StockRecord `json:"records"`
	Number     int                  `json:"page"`
	Size       int                  `json:"page_size"`
	TotalItems int                  `json:"total_items"`
	TotalPages int                  `json:"total_pages"`
}

// Paginate slices records into the 1-based page of the given size.
// Pages beyond the end come back empty rather than erroring, and a
// non-positive page or size falls back to page 1 of the default size.
func Paginate(records []domain.StockRecord, page, size int) Page {
	if size <= 0 {
		size = DefaultPageSize
	}
	if page <= 0 {
		page = 1
	}
	total := len(records)
	// ceil(total/size), so an empty result set reports zero pages.
	totalPages := total / size
	if total%size != 0 {
		totalPages++
	}
	start := (page - 1) * size
	if start > total {
		start = total
	}
	end := start + size
	if end > total {
		end = total
	}
	out := make([]domain.StockRecord, end-start)
	copy(out, records[start:end])
	return Page{
		Records:    out,
		Number:     page,
		Size:       size,
		TotalItems: total,
		TotalPages: totalPages,
	}
}
