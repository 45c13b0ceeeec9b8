// Package interpreter talks to the natural-language interpretation
// service that turns free-text screening prompts into structured
// filters.
package interpreter

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/stockai/screener/internal/clientdata"
)

// ErrorKind classifies interpreter failures so handlers can map them
// to distinct status codes.
type ErrorKind string

const (
	KindNetwork         ErrorKind = "network_error"
	KindInvalidResponse ErrorKind = "invalid_response"
	KindTimeout         ErrorKind = "timeout"
)

// Error is a classified interpreter failure.
type Error struct {
	Kind ErrorKind
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("interpreter %s: %v", e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf extracts the error kind, empty for non-interpreter errors.
func KindOf(err error) ErrorKind {
	var ie *Error
	if errors.As(err, &ie) {
		return ie.Kind
	}
	return ""
}

// FilterClause is one structured filter the service derived from the
// prompt.
type FilterClause struct {
	Field string   `json:"field"`
	Min   *float64 `json:"min,omitempty"`
	Max   *float64 `json:"max,omitempty"`
	Value string   `json:"value,omitempty"`
}

// Response is the interpretation payload. Results may be empty when
// the service only translated the prompt without running it.
type Response struct {
	Interpretation string                   `json:"interpretation"`
	Filters        []FilterClause           `json:"filters"`
	Results        []map[string]interface{} `json:"results"`
}

// Client for the interpretation service.
type Client struct {
	baseURL string
	client  *http.Client
	timeout time.Duration
	log     zerolog.Logger
	cache   *clientdata.Cache
}

// NewClient creates an interpreter client. cache is optional, nil
// disables caching.
func NewClient(baseURL string, timeout time.Duration, cache *clientdata.Cache) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
		timeout: timeout,
		log:     log.With().Str("client", "interpreter").Logger(),
		cache:   cache,
	}
}

// Interpret posts the prompt and returns the structured interpretation.
// Identical prompts are served from cache while fresh.
func (c *Client) Interpret(ctx context.Context, query string) (*Response, error) {
	cacheKey := strings.ToLower(strings.TrimSpace(query))

	if c.cache != nil {
		var cached Response
		found, err := c.cache.GetIfFresh(clientdata.BucketInterpretations, cacheKey, &cached)
		if err == nil && found {
			c.log.Debug().Str("query", cacheKey).Msg("Cache hit")
			return &cached, nil
		}
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	body, err := json.Marshal(map[string]string{"query": query})
	if err != nil {
		return nil, &Error{Kind: KindInvalidResponse, Err: err}
	}

	url := c.baseURL + "/interpret"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, &Error{Kind: KindNetwork, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	c.log.Debug().Str("url", url).Msg("Interpreting query")

	resp, err := c.client.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, &Error{Kind: KindTimeout, Err: err}
		}
		return nil, &Error{Kind: KindNetwork, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &Error{Kind: KindInvalidResponse, Err: fmt.Errorf("service returned status %d", resp.StatusCode)}
	}

	var out Response
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, &Error{Kind: KindInvalidResponse, Err: fmt.Errorf("failed to parse response: %w", err)}
	}
	if out.Interpretation == "" {
		return nil, &Error{Kind: KindInvalidResponse, Err: errors.New("response has no interpretation")}
	}
	if out.Filters == nil {
		out.Filters = []FilterClause{}
	}
	if out.Results == nil {
		out.Results = []map[string]interface{}{}
	}

	if c.cache != nil {
		if err := c.cache.Store(clientdata.BucketInterpretations, cacheKey, out, clientdata.TTLInterpretation); err != nil {
			c.log.Warn().Err(err).Msg("Failed to cache interpretation")
		}
	}
	return &out, nil
}
