// Package search turns free-text screening prompts into validated
// filter sets via the external interpretation service.
package search

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/stockai/screener/internal/clientdata"
	"github.com/stockai/screener/internal/clients/interpreter"
	"github.com/stockai/screener/internal/domain"
	"github.com/stockai/screener/internal/modules/screener"
	"github.com/stockai/screener/internal/modules/universe"
)

// ErrEmptyQuery rejects blank prompts before they reach the service.
var ErrEmptyQuery = errors.New("query is empty")

// ErrSuperseded marks an interpretation that finished after a newer
// one was started. Its outcome must be discarded, not rendered.
var ErrSuperseded = errors.New("interpretation superseded by a newer query")

// Interpreter is the slice of the interpreter client this service
// needs.
type Interpreter interface {
	Interpret(ctx context.Context, query string) (*interpreter.Response, error)
}

// Outcome is a finished interpretation ready for the screening
// pipeline.
type Outcome struct {
	RequestID      string
	Query          string
	Interpretation string
	Filters        *screener.FilterSet
	Records        []domain.StockRecord
}

// Service serializes natural-language interpretations. Starting a new
// query cancels the in-flight one, and late responses from cancelled
// queries are dropped so the view never regresses to an older prompt.
type Service struct {
	client Interpreter
	cache  *clientdata.Cache
	logger zerolog.Logger

	mu         sync.Mutex
	generation uint64
	cancel     context.CancelFunc
	last       *Outcome
}

// cachedResults is the snapshot stored per query so an upstream outage
// can still serve the last interpreted rows.
type cachedResults struct {
	Interpretation string
	Records        []domain.StockRecord
}

// NewService creates the search service. cache is optional, nil
// disables the result-snapshot fallback.
func NewService(client Interpreter, cache *clientdata.Cache) *Service {
	return &Service{
		client: client,
		cache:  cache,
		logger: log.With().Str("component", "search").Logger(),
	}
}

// Interpret runs one prompt through the interpretation service. On
// failure the previous outcome is kept so callers can fall back to the
// last good view.
func (s *Service) Interpret(ctx context.Context, query string) (*Outcome, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrEmptyQuery
	}

	requestID := uuid.New().String()

	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
	}
	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.generation++
	gen := s.generation
	s.mu.Unlock()

	logger := s.logger.With().Str("request_id", requestID).Logger()
	logger.Info().Str("query", query).Msg("Interpreting query")

	resp, err := s.client.Interpret(ctx, query)

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.generation {
		logger.Debug().Msg("Discarding superseded interpretation")
		return nil, ErrSuperseded
	}
	if err != nil {
		// Upstream failed. A stale snapshot for this exact query is
		// better than no rows at all.
		if kind := interpreter.KindOf(err); kind == interpreter.KindNetwork || kind == interpreter.KindTimeout {
			if stale := s.staleResults(query); stale != nil {
				logger.Warn().Err(err).Msg("Interpreter unavailable, serving cached results")
				outcome := &Outcome{
					RequestID:      requestID,
					Query:          query,
					Interpretation: stale.Interpretation,
					Records:        stale.Records,
				}
				s.last = outcome
				return outcome, nil
			}
		}
		logger.Warn().Err(err).Msg("Interpretation failed")
		return nil, err
	}

	filters, err := translateFilters(resp.Filters)
	if err != nil {
		logger.Warn().Err(err).Msg("Interpretation produced invalid filters")
		return nil, &interpreter.Error{Kind: interpreter.KindInvalidResponse, Err: err}
	}

	records, dropped := universe.NormalizeAll(resp.Results)
	if dropped > 0 {
		logger.Warn().Int("dropped", dropped).Msg("Dropped malformed interpreted results")
	}

	outcome := &Outcome{
		RequestID:      requestID,
		Query:          query,
		Interpretation: resp.Interpretation,
		Filters:        filters,
		Records:        records,
	}
	s.last = outcome

	if s.cache != nil && len(records) > 0 {
		snapshot := cachedResults{Interpretation: resp.Interpretation, Records: records}
		if err := s.cache.Store(clientdata.BucketInterpretedResults, cacheKey(query), snapshot, clientdata.TTLInterpretedResults); err != nil {
			logger.Warn().Err(err).Msg("Failed to cache interpreted results")
		}
	}

	logger.Info().
		Int("filters", len(resp.Filters)).
		Int("results", len(records)).
		Msg("Interpretation complete")
	return outcome, nil
}

func cacheKey(query string) string {
	return strings.ToLower(strings.TrimSpace(query))
}

// staleResults returns the cached snapshot for a query regardless of
// freshness, nil when absent or caching is disabled.
func (s *Service) staleResults(query string) *cachedResults {
	if s.cache == nil {
		return nil
	}
	var stale cachedResults
	found, err := s.cache.Get(clientdata.BucketInterpretedResults, cacheKey(query), &stale)
	if err != nil || !found {
		return nil
	}
	return &stale
}

// Last returns the most recent successful outcome, nil if none.
func (s *Service) Last() *Outcome {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last
}

// translateFilters builds a validated filter set from interpreter
// clauses. Validation fails closed: one bad clause rejects the set.
func translateFilters(clauses []interpreter.FilterClause) (*screener.FilterSet, error) {
	constraints := make([]screener.Constraint, 0, len(clauses))
	for _, cl := range clauses {
		field := screener.Field(strings.ToLower(strings.TrimSpace(cl.Field)))
		switch {
		case cl.Min != nil || cl.Max != nil:
			constraints = append(constraints, screener.Range{Key: field, Min: cl.Min, Max: cl.Max})
		case cl.Value != "":
			constraints = append(constraints, screener.Equals{Key: field, Value: cl.Value})
		default:
			return nil, fmt.Errorf("filter clause for %q has neither bounds nor value", cl.Field)
		}
	}
	return screener.NewFilterSet(constraints...)
}
