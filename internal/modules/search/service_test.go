package search

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/stockai/screener/internal/clientdata"
	"github.com/stockai/screener/internal/clients/interpreter"
	"github.com/stockai/screener/internal/domain"
	"github.com/stockai/screener/internal/modules/screener"
)

type stubInterpreter struct {
	resp    *interpreter.Response
	err     error
	release chan struct{}
}

func (s *stubInterpreter) Interpret(ctx context.Context, query string) (*interpreter.Response, error) {
	if s.release != nil {
		select {
		case <-s.release:
		case <-ctx.Done():
			return nil, &interpreter.Error{Kind: interpreter.KindNetwork, Err: ctx.Err()}
		}
	}
	return s.resp, s.err
}

func f64(v float64) *float64 { return &v }

func TestInterpretRejectsBlankQuery(t *testing.T) {
	svc := NewService(&stubInterpreter{}, nil)

	_, err := svc.Interpret(context.Background(), "   ")
	assert.ErrorIs(t, err, ErrEmptyQuery)
}

func TestInterpretTranslatesFiltersAndResults(t *testing.T) {
	svc := NewService(&stubInterpreter{
		resp: &interpreter.Response{
			Interpretation: "Technology under 20x earnings",
			Filters: []interpreter.FilterClause{
				{Field: "sector", Value: "Technology"},
				{Field: "pe_ratio", Max: f64(20)},
			},
			Results: []map[string]interface{}{
				{"symbol": "intc", "price": 30.5, "change_percent": 1.2},
				{"price": 10.0},
			},
		},
	}, nil)

	out, err := svc.Interpret(context.Background(), "cheap tech")
	assert.NoError(t, err)
	assert.NotEmpty(t, out.RequestID)
	assert.Equal(t, "Technology under 20x earnings", out.Interpretation)

	match := domain.StockRecord{Sector: "Technology", PERatio: f64(15)}
	assert.True(t, out.Filters.Matches(&match))

	if assert.Len(t, out.Records, 1, "malformed result rows are dropped") {
		assert.Equal(t, "INTC", out.Records[0].Symbol)
		assert.Equal(t, domain.SignalBuy, out.Records[0].Signal, "normalization fills missing signals")
	}

	assert.Same(t, out, svc.Last())
}

func TestInterpretInvalidClauseFailsClosed(t *testing.T) {
	svc := NewService(&stubInterpreter{
		resp: &interpreter.Response{
			Interpretation: "nonsense",
			Filters:        []interpreter.FilterClause{{Field: "vibes", Min: f64(1)}},
		},
	}, nil)

	_, err := svc.Interpret(context.Background(), "good vibes only")
	assert.Error(t, err)
	assert.Equal(t, interpreter.KindInvalidResponse, interpreter.KindOf(err))
	assert.Nil(t, svc.Last(), "failed interpretations never replace the last good outcome")
}

func TestInterpretKeepsLastOutcomeOnFailure(t *testing.T) {
	stub := &stubInterpreter{resp: &interpreter.Response{Interpretation: "first"}}
	svc := NewService(stub, nil)

	first, err := svc.Interpret(context.Background(), "first query")
	assert.NoError(t, err)

	stub.resp = nil
	stub.err = &interpreter.Error{Kind: interpreter.KindTimeout, Err: errors.New("deadline")}

	_, err = svc.Interpret(context.Background(), "second query")
	assert.Error(t, err)
	assert.Same(t, first, svc.Last())
}

func TestInterpretFallsBackToCachedResultsWhenUpstreamDown(t *testing.T) {
	stub := &stubInterpreter{
		resp: &interpreter.Response{
			Interpretation: "Chip makers",
			Results: []map[string]interface{}{
				{"symbol": "AMD", "price": 160.0, "change_percent": 2.5},
			},
		},
	}
	svc := NewService(stub, clientdata.NewCache())

	first, err := svc.Interpret(context.Background(), "chip makers")
	assert.NoError(t, err)
	assert.Len(t, first.Records, 1)

	// Upstream goes down. The same query serves the cached snapshot.
	stub.resp = nil
	stub.err = &interpreter.Error{Kind: interpreter.KindNetwork, Err: errors.New("refused")}

	out, err := svc.Interpret(context.Background(), "Chip Makers ")
	assert.NoError(t, err)
	assert.Equal(t, "Chip makers", out.Interpretation)
	assert.Equal(t, "AMD", out.Records[0].Symbol)
	assert.NotEqual(t, first.RequestID, out.RequestID)

	// A query never seen before still fails.
	_, err = svc.Interpret(context.Background(), "biotech small caps")
	assert.Error(t, err)
	assert.Equal(t, interpreter.KindNetwork, interpreter.KindOf(err))
}

func TestNewerQuerySupersedesInFlightOne(t *testing.T) {
	release := make(chan struct{})
	stub := &stubInterpreter{
		resp:    &interpreter.Response{Interpretation: "slow answer"},
		release: release,
	}
	svc := NewService(stub, nil)

	firstDone := make(chan error, 1)
	go func() {
		_, err := svc.Interpret(context.Background(), "slow query")
		firstDone <- err
	}()

	// Wait for the first call to be in flight, then replace it.
	time.Sleep(20 * time.Millisecond)
	stubSecond := *stub
	stubSecond.release = nil
	svc.client = &stubSecond

	out, err := svc.Interpret(context.Background(), "fast query")
	assert.NoError(t, err)
	assert.Equal(t, "slow answer", out.Interpretation)

	close(release)
	assert.ErrorIs(t, <-firstDone, ErrSuperseded)
	assert.Same(t, out, svc.Last())
}

func TestTranslateEmptyClauseRejected(t *testing.T) {
	_, err := translateFilters([]interpreter.FilterClause{{Field: "price"}})
	assert.Error(t, err)
}

func TestTranslateBuildsScreenerConstraints(t *testing.T) {
	fs, err := translateFilters([]interpreter.FilterClause{
		{Field: "Market_Cap", Min: f64(1e10)},
	})
	assert.NoError(t, err)

	big := domain.StockRecord{MarketCap: f64(5e10)}
	small := domain.StockRecord{MarketCap: f64(1e9)}
	assert.True(t, fs.Matches(&big))
	assert.False(t, fs.Matches(&small))
	assert.Equal(t, screener.FieldMarketCap, fs.Constraints()[0].Field())
}
