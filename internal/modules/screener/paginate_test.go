package screener

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/stockai/screener/internal/domain"
)

func makeRecords(n int) []domain.StockRecord {
	out := make([]domain.StockRecord, n)
	for i := range out {
		out[i] = rec(fmt.Sprintf("S%03d", i), nil)
	}
	return out
}

func TestPaginateFullAndPartialPages(t *testing.T) {
	records := makeRecords(45)

	p1 := Paginate(records, 1, 20)
	assert.Len(t, p1.Records, 20)
	assert.Equal(t, 45, p1.TotalItems)
	assert.Equal(t, 3, p1.TotalPages)
	assert.Equal(t, "S000", p1.Records[0].Symbol)

	p3 := Paginate(records, 3, 20)
	assert.Len(t, p3.Records, 5)
	assert.Equal(t, "S040", p3.Records[0].Symbol)
}

func TestPaginateBeyondRangeIsEmpty(t *testing.T) {
	records := makeRecords(45)

	p4 := Paginate(records, 4, 20)
	assert.Empty(t, p4.Records)
	assert.Equal(t, 4, p4.Number)
	assert.Equal(t, 3, p4.TotalPages)
}

func TestPaginateEmptySet(t *testing.T) {
	p := Paginate(nil, 1, 20)
	assert.Empty(t, p.Records)
	assert.Equal(t, 0, p.TotalItems)
	assert.Equal(t, 0, p.TotalPages, "total pages is ceil(total/size)")
}

func TestPaginateDefaults(t *testing.T) {
	records := makeRecords(30)

	p := Paginate(records, 0, 0)
	assert.Equal(t, 1, p.Number)
	assert.Equal(t, DefaultPageSize, p.Size)
	assert.Len(t, p.Records, 20)
}

func TestPaginateCopiesWindow(t *testing.T) {
	records := makeRecords(5)
	p := Paginate(records, 1, 3)

	p.Records[0].Symbol = "MUTATED"
	assert.Equal(t, "S000", records[0].Symbol)
}
