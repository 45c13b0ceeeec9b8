package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeriveSignal_Thresholds(t *testing.T) {
	assert.Equal(t, SignalStrongBuy, DeriveSignal(4.15))
	assert.Equal(t, SignalStrongBuy, DeriveSignal(3.01))
	assert.Equal(t, SignalBuy, DeriveSignal(3.0))
	assert.Equal(t, SignalBuy, DeriveSignal(1.2))
	assert.Equal(t, SignalHold, DeriveSignal(1.0))
	assert.Equal(t, SignalHold, DeriveSignal(0.5))
	assert.Equal(t, SignalNeutral, DeriveSignal(0))
	assert.Equal(t, SignalNeutral, DeriveSignal(-3.45))
}

func TestDeriveSignal_Monotonic(t *testing.T) {
	// Higher change percent never yields a strictly lower-ranked signal.
	inputs := []float64{-50, -10, -3.45, -0.01, 0, 0.3, 0.99, 1, 1.01, 2, 3, 3.01, 10, 50}

	prevRank := -1
	for _, cp := range inputs {
		rank := DeriveSignal(cp).Rank()
		assert.GreaterOrEqual(t, rank, prevRank, "rank regressed at changePercent=%v", cp)
		prevRank = rank
	}
}

func TestFillSignal_DerivesWhenMissing(t *testing.T) {
	record := &StockRecord{Symbol: "NVDA", ChangePercent: 4.15}
	FillSignal(record)
	assert.Equal(t, SignalStrongBuy, record.Signal)
}

func TestFillSignal_NeverOverridesAuthoritative(t *testing.T) {
	record := &StockRecord{
		Symbol:              "TSLA",
		ChangePercent:       4.15, // would derive Strong Buy
		Signal:              SignalSell,
		SignalAuthoritative: true,
	}
	FillSignal(record)
	assert.Equal(t, SignalSell, record.Signal)
}

func TestFillSignal_LeavesExistingDerivedSignal(t *testing.T) {
	record := &StockRecord{Symbol: "AAPL", ChangePercent: 1.2, Signal: SignalBuy}
	FillSignal(record)
	assert.Equal(t, SignalBuy, record.Signal)
}

func TestSignalRank_Ordering(t *testing.T) {
	assert.Greater(t, SignalStrongBuy.Rank(), SignalBuy.Rank())
	assert.Greater(t, SignalBuy.Rank(), SignalHold.Rank())
	assert.Greater(t, SignalHold.Rank(), SignalNeutral.Rank())
	assert.Greater(t, SignalNeutral.Rank(), SignalSell.Rank())
	assert.Equal(t, -1, SignalNone.Rank())
	assert.Equal(t, -1, Signal("Bogus").Rank())
}

func TestSignalValid(t *testing.T) {
	assert.True(t, SignalHold.Valid())
	assert.False(t, SignalNone.Valid())
	assert.False(t, Signal("Maybe").Valid())
}
