package screener

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/stockai/screener/internal/domain"
)

func TestViewStateInitial(t *testing.T) {
	v := NewViewState()
	assert.Nil(t, v.Filters)
	assert.Nil(t, v.Sort)
	assert.Equal(t, 1, v.Page)
}

func TestToggleSortNewKeyStartsDescending(t *testing.T) {
	v := NewViewState().WithPage(3).ToggleSort(FieldMarketCap)

	assert.Equal(t, FieldMarketCap, v.Sort.Key)
	assert.Equal(t, Descending, v.Sort.Direction)
	assert.Equal(t, 1, v.Page, "sorting rewinds to page 1")
}

func TestToggleSortSameKeyFlipsDirection(t *testing.T) {
	v := NewViewState().ToggleSort(FieldPrice).ToggleSort(FieldPrice)
	assert.Equal(t, Ascending, v.Sort.Direction)

	v = v.ToggleSort(FieldPrice)
	assert.Equal(t, Descending, v.Sort.Direction)
}

func TestToggleSortSwitchingKeysResetsDirection(t *testing.T) {
	v := NewViewState().ToggleSort(FieldPrice).ToggleSort(FieldPrice)
	assert.Equal(t, Ascending, v.Sort.Direction)

	v = v.ToggleSort(FieldPERatio)
	assert.Equal(t, FieldPERatio, v.Sort.Key)
	assert.Equal(t, Descending, v.Sort.Direction)
}

func TestWithFiltersRewindsPageAndKeepsSort(t *testing.T) {
	fs, err := NewFilterSet(Equals{Key: FieldSector, Value: "Energy"})
	assert.NoError(t, err)

	v := NewViewState().ToggleSort(FieldPrice).WithPage(5).WithFilters(fs)
	assert.Equal(t, 1, v.Page)
	assert.NotNil(t, v.Sort)
	assert.Same(t, fs, v.Filters)
}

func TestUpdateFilterAddsAndOverwrites(t *testing.T) {
	v, err := NewViewState().WithPage(4).UpdateFilter(Equals{Key: FieldSector, Value: "Energy"})
	assert.NoError(t, err)
	assert.Equal(t, 1, v.Page, "filter changes rewind to page 1")
	assert.Len(t, v.Filters.Constraints(), 1)

	v, err = v.UpdateFilter(Range{Key: FieldPERatio, Max: f64(20)})
	assert.NoError(t, err)
	assert.Len(t, v.Filters.Constraints(), 2)

	// Same key overwrites rather than stacking.
	v, err = v.UpdateFilter(Equals{Key: FieldSector, Value: "Technology"})
	assert.NoError(t, err)
	assert.Len(t, v.Filters.Constraints(), 2)

	r := rec("A", func(r *domain.StockRecord) {
		r.Sector = "Technology"
		r.PERatio = f64(15)
	})
	assert.True(t, v.Filters.Matches(&r))
}

func TestUpdateFilterRejectsUnknownFieldUnchanged(t *testing.T) {
	v, err := NewViewState().UpdateFilter(Equals{Key: FieldSector, Value: "Energy"})
	assert.NoError(t, err)

	after, err := v.UpdateFilter(Range{Key: "swagger", Min: f64(1)})
	assert.Error(t, err)
	assert.Equal(t, v, after, "a rejected update leaves the state untouched")
}

func TestRemoveFilterDropsOneKey(t *testing.T) {
	v, err := NewViewState().UpdateFilter(Equals{Key: FieldSector, Value: "Energy"})
	assert.NoError(t, err)
	v, err = v.UpdateFilter(Range{Key: FieldPERatio, Max: f64(20)})
	assert.NoError(t, err)

	v = v.WithPage(3).RemoveFilter(FieldSector)
	assert.Equal(t, 1, v.Page)
	assert.Len(t, v.Filters.Constraints(), 1)
	assert.Equal(t, FieldPERatio, v.Filters.Constraints()[0].Field())
}

func TestClearFiltersKeepsSort(t *testing.T) {
	fs, err := NewFilterSet(Equals{Key: FieldSector, Value: "Energy"})
	assert.NoError(t, err)

	v := NewViewState().WithFilters(fs).ToggleSort(FieldPrice).ClearFilters()
	assert.Nil(t, v.Filters)
	assert.NotNil(t, v.Sort)
	assert.Equal(t, 1, v.Page)
}

func TestTransitionsDoNotMutateReceiver(t *testing.T) {
	base := NewViewState()
	_ = base.ToggleSort(FieldPrice)
	_ = base.WithPage(7)

	assert.Nil(t, base.Sort)
	assert.Equal(t, 1, base.Page)
}
