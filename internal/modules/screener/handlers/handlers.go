// Package handlers exposes the screener over HTTP.
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/stockai/screener/internal/clients/interpreter"
	"github.com/stockai/screener/internal/domain"
	"github.com/stockai/screener/internal/modules/screener"
	"github.com/stockai/screener/internal/modules/search"
	"github.com/stockai/screener/internal/scheduler"
)

// Handlers serves the screener API routes.
type Handlers struct {
	svc     *screener.Service
	search  *search.Service
	refresh scheduler.Job
	log     zerolog.Logger
}

// New creates the handlers. refresh may be nil when manual refresh is
// disabled.
func New(svc *screener.Service, searchSvc *search.Service, refresh scheduler.Job) *Handlers {
	return &Handlers{
		svc:     svc,
		search:  searchSvc,
		refresh: refresh,
		log:     log.With().Str("component", "screener_handlers").Logger(),
	}
}

// filterPayload is one filter clause in a query request. Exactly one
// of min/max, value, bucket or tickers should be set per clause.
type filterPayload struct {
	Field   string   `json:"field"`
	Min     *float64 `json:"min,omitempty"`
	Max     *float64 `json:"max,omitempty"`
	Value   string   `json:"value,omitempty"`
	Bucket  string   `json:"bucket,omitempty"`
	Tickers []string `json:"tickers,omitempty"`
}

type queryRequest struct {
	Filters  []filterPayload    `json:"filters"`
	Preset   string             `json:"preset,omitempty"`
	Sort     *screener.SortSpec `json:"sort,omitempty"`
	Page     int                `json:"page"`
	PageSize int                `json:"page_size"`
}

// HandleListStocks serves the table view with query-string filters.
// GET /api/screener/stocks
func (h *Handlers) HandleListStocks(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var constraints []screener.Constraint
	if sector := q.Get("sector"); sector != "" {
		constraints = append(constraints, screener.Equals{Key: screener.FieldSector, Value: sector})
	}
	if signal := q.Get("signal"); signal != "" {
		constraints = append(constraints, screener.Equals{Key: screener.FieldSignal, Value: signal})
	}
	if tickers := q.Get("tickers"); tickers != "" {
		constraints = append(constraints, screener.NewTickerList(strings.Split(tickers, ",")))
	}

	var filters *screener.FilterSet
	var err error
	if preset := q.Get("preset"); preset != "" {
		filters, err = screener.PresetFilters(preset)
	} else {
		filters, err = screener.NewFilterSet(constraints...)
	}
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err)
		return
	}

	var sortSpec *screener.SortSpec
	if key := q.Get("sort"); key != "" {
		dir := screener.Direction(q.Get("direction"))
		if dir == "" {
			dir = screener.Descending
		}
		sortSpec = &screener.SortSpec{Key: screener.Field(key), Direction: dir}
	}

	result, err := h.svc.Screen(screener.Request{
		Filters:  filters,
		Sort:     sortSpec,
		Page:     intParam(q.Get("page"), 1),
		PageSize: intParam(q.Get("page_size"), 0),
	})
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err)
		return
	}
	h.writeJSON(w, result)
}

// HandleQuery serves structured filter queries.
// POST /api/screener/query
func (h *Handlers) HandleQuery(w http.ResponseWriter, r *http.Request) {
	var req queryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, err)
		return
	}

	var filters *screener.FilterSet
	var err error
	if req.Preset != "" {
		filters, err = screener.PresetFilters(req.Preset)
	} else {
		filters, err = buildFilters(req.Filters)
	}
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err)
		return
	}

	result, err := h.svc.Screen(screener.Request{
		Filters:  filters,
		Sort:     req.Sort,
		Page:     req.Page,
		PageSize: req.PageSize,
	})
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err)
		return
	}
	h.writeJSON(w, result)
}

// HandlePresets lists the preset catalogue.
// GET /api/screener/presets
func (h *Handlers) HandlePresets(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, map[string]interface{}{"presets": screener.Presets()})
}

// HandleFilters lists the filterable fields grouped by category.
// GET /api/screener/filters
func (h *Handlers) HandleFilters(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, map[string]interface{}{
		"fields":  screener.Fields(),
		"signals": []domain.Signal{domain.SignalStrongBuy, domain.SignalBuy, domain.SignalHold, domain.SignalNeutral, domain.SignalSell},
		"sectors": domain.Sectors,
	})
}

// HandleNaturalLanguage interprets a free-text prompt and screens with
// the result. When the interpretation service returns its own result
// rows those are served, otherwise the derived filters run against the
// local universe.
// POST /api/screener/natural-language
func (h *Handlers) HandleNaturalLanguage(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Query    string `json:"query"`
		Page     int    `json:"page"`
		PageSize int    `json:"page_size"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, err)
		return
	}

	outcome, err := h.search.Interpret(r.Context(), req.Query)
	if err != nil {
		h.writeInterpretError(w, err)
		return
	}

	var result screener.Result
	if len(outcome.Records) > 0 {
		result = screener.Result{
			Page:    screener.Paginate(outcome.Records, req.Page, req.PageSize),
			Summary: screener.Summarize(outcome.Records),
		}
	} else {
		result, err = h.svc.Screen(screener.Request{
			Filters:  outcome.Filters,
			Page:     req.Page,
			PageSize: req.PageSize,
		})
		if err != nil {
			h.writeError(w, http.StatusBadRequest, err)
			return
		}
	}

	h.writeJSON(w, map[string]interface{}{
		"request_id":     outcome.RequestID,
		"interpretation": outcome.Interpretation,
		"result":         result,
	})
}

// HandleRefresh regenerates the universe immediately.
// POST /api/universe/refresh
func (h *Handlers) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	if h.refresh == nil {
		h.writeError(w, http.StatusServiceUnavailable, errors.New("refresh job not configured"))
		return
	}
	if err := h.refresh.Run(); err != nil {
		h.writeError(w, http.StatusInternalServerError, err)
		return
	}
	h.writeJSON(w, map[string]string{"status": "ok"})
}

func buildFilters(payloads []filterPayload) (*screener.FilterSet, error) {
	constraints := make([]screener.Constraint, 0, len(payloads))
	for _, p := range payloads {
		field := screener.Field(strings.ToLower(strings.TrimSpace(p.Field)))
		switch {
		case len(p.Tickers) > 0:
			constraints = append(constraints, screener.NewTickerList(p.Tickers))
		case p.Bucket != "":
			constraints = append(constraints, screener.Bucket{Key: field, Label: p.Bucket})
		case p.Min != nil || p.Max != nil:
			constraints = append(constraints, screener.Range{Key: field, Min: p.Min, Max: p.Max})
		default:
			constraints = append(constraints, screener.Equals{Key: field, Value: p.Value})
		}
	}
	return screener.NewFilterSet(constraints...)
}

// writeInterpretError maps interpreter failures onto status codes:
// client mistakes are 400, upstream faults 502 and slow upstreams 504.
func (h *Handlers) writeInterpretError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, search.ErrEmptyQuery):
		h.writeError(w, http.StatusBadRequest, err)
	case errors.Is(err, search.ErrSuperseded):
		h.writeError(w, http.StatusConflict, err)
	default:
		switch interpreter.KindOf(err) {
		case interpreter.KindTimeout:
			h.writeError(w, http.StatusGatewayTimeout, err)
		case interpreter.KindNetwork, interpreter.KindInvalidResponse:
			h.writeError(w, http.StatusBadGateway, err)
		default:
			h.writeError(w, http.StatusInternalServerError, err)
		}
	}
}

func intParam(raw string, fallback int) int {
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}

func (h *Handlers) writeJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode JSON response")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

func (h *Handlers) writeError(w http.ResponseWriter, status int, err error) {
	h.log.Warn().Err(err).Int("status", status).Msg("Request failed")
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
}
