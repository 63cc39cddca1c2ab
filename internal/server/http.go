// Package server exposes the query engine and lifecycle tracker to external
// callers: an HTTP JSON API for direct consumers and an MCP tool server for
// the LLM tool-calling layer.
package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/sells-group/prospector-cli/internal/contacts"
	"github.com/sells-group/prospector-cli/internal/model"
	"github.com/sells-group/prospector-cli/internal/query"
	"github.com/sells-group/prospector-cli/internal/search"
	"github.com/sells-group/prospector-cli/internal/tracker"
)

// API bundles the contact snapshot cache and lifecycle tracker behind the
// HTTP surface. All query routes are read-only against the cached snapshot.
type API struct {
	cache   *contacts.Cache
	tracker *tracker.Tracker
}

// NewAPI creates the API over the given cache and tracker.
func NewAPI(cache *contacts.Cache, trk *tracker.Tracker) *API {
	return &API{cache: cache, tracker: trk}
}

// Router builds the chi router with all v1 routes registered.
func (a *API) Router(allowedOrigins []string) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/v1", func(r chi.Router) {
		r.Post("/contacts/query", a.handleQuery)
		r.Post("/contacts/search", a.handleSearch)
		r.Get("/contacts/{key}", a.handleDetails)
		r.Get("/stats", a.handleStats)
		r.Post("/contacts/{id}/state", a.handleUpdateState)
		r.Post("/contacts/{id}/interactions", a.handleInteraction)
		r.Get("/contacts/{id}/history", a.handleHistory)
		r.Post("/admin/reload", a.handleReload)
	})

	return r
}

func (a *API) handleQuery(w http.ResponseWriter, r *http.Request) {
	var filter model.ContactFilter
	if err := json.NewDecoder(r.Body).Decode(&filter); err != nil {
		writeError(w, &model.ValidationError{Field: "body", Message: "invalid JSON"})
		return
	}

	snap, err := a.cache.Get(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	result, err := query.Run(snap.Records(), &filter)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (a *API) handleSearch(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Query           string `json:"query"`
		TopK            int    `json:"topK"`
		MinQualityScore *int   `json:"minQualityScore"`
		IsExecutive     *bool  `json:"isExecutive"`
		Country         string `json:"country"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, &model.ValidationError{Field: "body", Message: "invalid JSON"})
		return
	}
	if req.Query == "" {
		writeError(w, &model.ValidationError{Field: "query", Message: "must not be empty"})
		return
	}
	if req.TopK <= 0 {
		req.TopK = 20
	}

	pre := &model.ContactFilter{
		MinQualityScore: req.MinQualityScore,
		IsExecutive:     req.IsExecutive,
		Country:         req.Country,
	}
	if err := pre.Validate(); err != nil {
		writeError(w, err)
		return
	}

	snap, err := a.cache.Get(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	result := search.Rank(query.Filter(snap.Records(), pre), req.Query, req.TopK)

	// Project matches with the summary preset plus the relevance score.
	projection := &model.ContactFilter{FieldPreset: model.PresetSummary}
	out := make([]map[string]any, 0, len(result.Matches))
	for _, m := range result.Matches {
		fields := query.Project(&m.Record, projection)
		fields["relevance"] = m.Relevance
		out = append(out, fields)
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"contacts": out,
		"total":    len(out),
		"query":    result.Query,
		"tokens":   result.Tokens,
	})
}

func (a *API) handleDetails(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")

	snap, err := a.cache.Get(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	record, ok := snap.Lookup(key)
	if !ok {
		writeError(w, &model.NotFoundError{Kind: "contact", Key: key})
		return
	}
	writeJSON(w, http.StatusOK, record)
}

func (a *API) handleStats(w http.ResponseWriter, r *http.Request) {
	groupBy := r.URL.Query().Get("groupBy")

	snap, err := a.cache.Get(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, query.ComputeStats(snap.Records(), groupBy))
}

func (a *API) handleUpdateState(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req struct {
		NewState  model.ContactState `json:"newState"`
		Note      string             `json:"note"`
		Metadata  map[string]any     `json:"metadata"`
		Timestamp time.Time          `json:"timestamp"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, &model.ValidationError{Field: "body", Message: "invalid JSON"})
		return
	}

	result, err := a.tracker.UpdateState(r.Context(), id, req.NewState, req.Note, req.Metadata, req.Timestamp)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (a *API) handleInteraction(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var in model.Interaction
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, &model.ValidationError{Field: "body", Message: "invalid JSON"})
		return
	}

	result, err := a.tracker.RecordInteraction(r.Context(), id, in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (a *API) handleHistory(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	q := r.URL.Query()
	includeInteractions := q.Get("interactions") != "false"
	includeStateHistory := q.Get("stateHistory") != "false"

	history, err := a.tracker.GetHistory(r.Context(), id, includeInteractions, includeStateHistory)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, history)
}

func (a *API) handleReload(w http.ResponseWriter, r *http.Request) {
	snap, err := a.cache.Reload(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "reloaded",
		"records": snap.Len(),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.L().Error("server: encode response", zap.Error(err))
	}
}

// writeError maps the error taxonomy to HTTP statuses: validation → 400,
// not found → 404, everything else → 500. A failed request never returns
// partial results.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError

	var ve *model.ValidationError
	var nfe *model.NotFoundError
	switch {
	case errors.As(err, &ve):
		status = http.StatusBadRequest
	case errors.As(err, &nfe):
		status = http.StatusNotFound
	default:
		zap.L().Error("server: request failed", zap.Error(err))
	}

	writeJSON(w, status, map[string]string{"error": err.Error()})
}
