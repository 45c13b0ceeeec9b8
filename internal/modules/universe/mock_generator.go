package universe

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/markcheno/go-talib"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/stockai/screener/internal/domain"
)

// wellKnown seeds the front of the generated universe so demo sessions
// show familiar names.
var wellKnown = []struct {
	symbol string
	name   string
	sector string
}{
	{"AAPL", "Apple Inc.", "Technology"},
	{"MSFT", "Microsoft Corporation", "Technology"},
	{"NVDA", "NVIDIA Corporation", "Technology"},
	{"GOOGL", "Alphabet Inc.", "Communication Services"},
	{"AMZN", "Amazon.com Inc.", "Consumer Cyclical"},
	{"TSLA", "Tesla Inc.", "Consumer Cyclical"},
	{"JPM", "JPMorgan Chase & Co.", "Financial Services"},
	{"JNJ", "Johnson & Johnson", "Healthcare"},
	{"XOM", "Exxon Mobil Corporation", "Energy"},
	{"KO", "The Coca-Cola Company", "Consumer Defensive"},
	{"PG", "Procter & Gamble Co.", "Consumer Defensive"},
	{"UNH", "UnitedHealth Group", "Healthcare"},
}

// MockGenerator produces a deterministic synthetic universe. The same
// seed and size always yield the same records, which keeps demo
// environments and tests reproducible.
type MockGenerator struct {
	seed   int64
	size   int
	logger zerolog.Logger
}

// NewMockGenerator creates a generator for a universe of size records.
func NewMockGenerator(seed int64, size int) *MockGenerator {
	return &MockGenerator{
		seed:   seed,
		size:   size,
		logger: log.With().Str("component", "mock_generator").Logger(),
	}
}

// Generate builds the universe. Roughly one record in ten omits each
// optional fundamental so the missing-value paths stay exercised.
func (g *MockGenerator) Generate() []domain.StockRecord {
	rng := rand.New(rand.NewSource(g.seed))
	records := make([]domain.StockRecord, 0, g.size)

	for i := 0; i < g.size; i++ {
		var symbol, name, sector string
		if i < len(wellKnown) {
			symbol = wellKnown[i].symbol
			name = wellKnown[i].name
			sector = wellKnown[i].sector
		} else {
			symbol = syntheticSymbol(rng, i)
			name = symbol + " Holdings"
			sector = domain.Sectors[rng.Intn(len(domain.Sectors))]
		}

		price := round2(math.Exp(rng.Float64()*4.6) + 5) // roughly $5 to $500
		changePct := round2(rng.NormFloat64() * 2.2)

		r := domain.StockRecord{
			Symbol:         symbol,
			Name:           name,
			Sector:         sector,
			Price:          price,
			ChangePercent:  changePct,
			ChangeAbsolute: round2(price * changePct / 100),
		}

		if rng.Float64() > 0.1 {
			r.MarketCap = fptr(math.Exp(rng.Float64()*9+17) * 10) // ~250M up past 1T
		}
		if rng.Float64() > 0.1 {
			r.PERatio = fptr(round2(rng.Float64()*75 + 4))
		}
		if rng.Float64() > 0.15 {
			r.PEGRatio = fptr(round2(rng.Float64()*4 + 0.2))
		}
		if rng.Float64() > 0.1 {
			r.PriceToBook = fptr(round2(rng.Float64()*14 + 0.3))
		}
		if rng.Float64() > 0.1 {
			r.DebtToEquity = fptr(round2(rng.Float64() * 2.5))
		}
		if rng.Float64() > 0.1 {
			r.ReturnOnEquity = fptr(round2(rng.Float64()*40 - 5))
		}
		if rng.Float64() > 0.1 {
			r.RevenueGrowth = fptr(round2(rng.Float64()*60 - 10))
		}
		if rng.Float64() > 0.15 {
			r.EarningsGrowth = fptr(round2(rng.Float64()*70 - 20))
		}
		if rng.Float64() > 0.3 {
			r.DividendYield = fptr(round2(rng.Float64() * 6))
		} else {
			r.DividendYield = fptr(0)
		}
		if rng.Float64() > 0.1 {
			rsi := rsiFromSyntheticCloses(rng, price)
			r.RSI14 = &rsi
		}

		domain.FillSignal(&r)
		records = append(records, r)
	}

	g.logger.Info().
		Int64("seed", g.seed).
		Int("size", len(records)).
		Msg("Generated mock universe")
	return records
}

// rsiFromSyntheticCloses walks a short random price path ending at the
// current price and takes the last RSI(14) reading off it.
func rsiFromSyntheticCloses(rng *rand.Rand, price float64) int {
	const bars = 40
	closes := make([]float64, bars)
	closes[bars-1] = price
	for i := bars - 2; i >= 0; i-- {
		closes[i] = closes[i+1] * (1 + rng.NormFloat64()*0.02)
		if closes[i] < 0.01 {
			closes[i] = 0.01
		}
	}
	rsi := talib.Rsi(closes, 14)
	v := rsi[len(rsi)-1]
	if math.IsNaN(v) {
		return 50
	}
	return int(math.Round(v))
}

func syntheticSymbol(rng *rand.Rand, i int) string {
	letters := []byte{
		byte('A' + rng.Intn(26)),
		byte('A' + rng.Intn(26)),
		byte('A' + rng.Intn(26)),
	}
	return fmt.Sprintf("%s%d", letters, i%10)
}

func fptr(v float64) *float64 { return &v }

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
