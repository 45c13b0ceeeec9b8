package screener

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/stockai/screener/internal/domain"
)

func rec(symbol string, mutate func(*domain.StockRecord)) domain.StockRecord {
	r := domain.StockRecord{
		Symbol: symbol,
		Name:   symbol + " Inc.",
		Sector: "Technology",
		Price:  100,
	}
	if mutate != nil {
		mutate(&r)
	}
	return r
}

func TestRangeFilter(t *testing.T) {
	fs, err := NewFilterSet(Range{Key: FieldPERatio, Min: f64(10), Max: f64(20)})
	assert.NoError(t, err)

	inside := rec("A", func(r *domain.StockRecord) { r.PERatio = f64(15) })
	onMin := rec("B", func(r *domain.StockRecord) { r.PERatio = f64(10) })
	onMax := rec("C", func(r *domain.StockRecord) { r.PERatio = f64(20) })
	outside := rec("D", func(r *domain.StockRecord) { r.PERatio = f64(25) })
	missing := rec("E", nil)

	assert.True(t, fs.Matches(&inside))
	assert.True(t, fs.Matches(&onMin), "bounds are inclusive")
	assert.True(t, fs.Matches(&onMax), "bounds are inclusive")
	assert.False(t, fs.Matches(&outside))
	assert.False(t, fs.Matches(&missing), "missing values never satisfy a bounded range")
}

func TestRangeFilterInvertedBounds(t *testing.T) {
	// Min above Max is well formed but cannot match anything.
	fs, err := NewFilterSet(Range{Key: FieldPrice, Min: f64(500), Max: f64(100)})
	assert.NoError(t, err)

	r := rec("A", func(r *domain.StockRecord) { r.Price = 300 })
	assert.False(t, fs.Matches(&r))
}

func TestRangeFilterOneSided(t *testing.T) {
	fs, err := NewFilterSet(Range{Key: FieldDividendYield, Min: f64(3)})
	assert.NoError(t, err)

	high := rec("A", func(r *domain.StockRecord) { r.DividendYield = f64(4.2) })
	low := rec("B", func(r *domain.StockRecord) { r.DividendYield = f64(1.1) })

	assert.True(t, fs.Matches(&high))
	assert.False(t, fs.Matches(&low))
}

func TestEqualsFilter(t *testing.T) {
	fs, err := NewFilterSet(Equals{Key: FieldSector, Value: "Healthcare"})
	assert.NoError(t, err)

	health := rec("A", func(r *domain.StockRecord) { r.Sector = "Healthcare" })
	tech := rec("B", nil)

	assert.True(t, fs.Matches(&health))
	assert.False(t, fs.Matches(&tech))
}

func TestEqualsAnySentinelPassesEverything(t *testing.T) {
	fs, err := NewFilterSet(Equals{Key: FieldSector, Value: AnyValue})
	assert.NoError(t, err)

	r := rec("A", nil)
	assert.True(t, fs.Matches(&r))
}

func TestSignalFilterValidation(t *testing.T) {
	_, err := NewFilterSet(Equals{Key: FieldSignal, Value: "Strong Buy"})
	assert.NoError(t, err)

	_, err = NewFilterSet(Equals{Key: FieldSignal, Value: "Mega Buy"})
	assert.Error(t, err)
}

func TestBucketFilter(t *testing.T) {
	fs, err := NewFilterSet(Bucket{Key: FieldMarketCap, Label: "Small Cap (300M-2B)"})
	assert.NoError(t, err)

	small := rec("A", func(r *domain.StockRecord) { r.MarketCap = f64(1.5e9) })
	large := rec("B", func(r *domain.StockRecord) { r.MarketCap = f64(50e9) })
	upperEdge := rec("C", func(r *domain.StockRecord) { r.MarketCap = f64(2e9) })
	missing := rec("D", nil)

	assert.True(t, fs.Matches(&small))
	assert.False(t, fs.Matches(&large))
	assert.False(t, fs.Matches(&upperEdge), "upper bound is exclusive")
	assert.False(t, fs.Matches(&missing))
}

func TestDividendNoneBucketIsExactZero(t *testing.T) {
	fs, err := NewFilterSet(Bucket{Key: FieldDividendYield, Label: "0% or None"})
	assert.NoError(t, err)

	zero := rec("A", func(r *domain.StockRecord) { r.DividendYield = f64(0) })
	tiny := rec("B", func(r *domain.StockRecord) { r.DividendYield = f64(0.1) })

	assert.True(t, fs.Matches(&zero))
	assert.False(t, fs.Matches(&tiny))
}

func TestTickerListFilter(t *testing.T) {
	fs, err := NewFilterSet(NewTickerList([]string{"aapl", " MSFT "}))
	assert.NoError(t, err)

	aapl := rec("AAPL", nil)
	nvda := rec("NVDA", nil)

	assert.True(t, fs.Matches(&aapl), "symbols compare case-insensitively")
	assert.False(t, fs.Matches(&nvda))
}

func TestEmptyTickerListPassesEverything(t *testing.T) {
	fs, err := NewFilterSet(NewTickerList(nil))
	assert.NoError(t, err)

	r := rec("A", nil)
	assert.True(t, fs.Matches(&r))
}

func TestFilterSetConjunction(t *testing.T) {
	fs, err := NewFilterSet(
		Equals{Key: FieldSector, Value: "Technology"},
		Range{Key: FieldPERatio, Max: f64(30)},
	)
	assert.NoError(t, err)

	both := rec("A", func(r *domain.StockRecord) { r.PERatio = f64(25) })
	oneOnly := rec("B", func(r *domain.StockRecord) { r.PERatio = f64(45) })

	assert.True(t, fs.Matches(&both))
	assert.False(t, fs.Matches(&oneOnly))
}

func TestFilterSetKeysAreUnique(t *testing.T) {
	// A later constraint on the same field overwrites the earlier one.
	fs, err := NewFilterSet(
		Range{Key: FieldPERatio, Max: f64(10)},
		Range{Key: FieldPERatio, Min: f64(20)},
	)
	assert.NoError(t, err)
	assert.Len(t, fs.Constraints(), 1)

	high := rec("A", func(r *domain.StockRecord) { r.PERatio = f64(25) })
	low := rec("B", func(r *domain.StockRecord) { r.PERatio = f64(5) })
	assert.True(t, fs.Matches(&high), "only the last constraint per key applies")
	assert.False(t, fs.Matches(&low))
}

func TestWithConstraintOverwritesSameKey(t *testing.T) {
	fs, err := NewFilterSet(
		Equals{Key: FieldSector, Value: "Energy"},
		Range{Key: FieldPrice, Min: f64(100)},
	)
	assert.NoError(t, err)

	fs, err = fs.WithConstraint(Equals{Key: FieldSector, Value: "Technology"})
	assert.NoError(t, err)
	assert.Len(t, fs.Constraints(), 2)

	tech := rec("A", func(r *domain.StockRecord) { r.Price = 200 })
	assert.True(t, fs.Matches(&tech))

	_, err = fs.WithConstraint(Range{Key: "conviction", Min: f64(1)})
	assert.Error(t, err, "mutation validates like construction")
}

func TestWithoutFieldRemovesOneKey(t *testing.T) {
	fs, err := NewFilterSet(
		Equals{Key: FieldSector, Value: "Technology"},
		Range{Key: FieldPERatio, Max: f64(30)},
	)
	assert.NoError(t, err)

	fs = fs.WithoutField(FieldPERatio)
	assert.Len(t, fs.Constraints(), 1)

	pricey := rec("A", func(r *domain.StockRecord) { r.PERatio = f64(90) })
	assert.True(t, fs.Matches(&pricey))
}

func TestFilterSetFailsClosed(t *testing.T) {
	_, err := NewFilterSet(Range{Key: "book_value_yield", Min: f64(1)})
	assert.Error(t, err, "unknown fields reject the whole set")

	_, err = NewFilterSet(Range{Key: FieldSector, Min: f64(1)})
	assert.Error(t, err, "text fields do not take range filters")

	_, err = NewFilterSet(Range{Key: FieldPrice})
	assert.Error(t, err, "a range needs at least one bound")

	_, err = NewFilterSet(Bucket{Key: FieldMarketCap, Label: "Colossal Cap"})
	assert.Error(t, err)
}
