package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/prospector-cli/internal/contacts"
	"github.com/sells-group/prospector-cli/internal/model"
	"github.com/sells-group/prospector-cli/internal/tracker"
)

// staticLoader serves a fixed record set.
type staticLoader struct {
	records []model.ContactRecord
}

func (l *staticLoader) Load(ctx context.Context) ([]model.ContactRecord, error) {
	return l.records, nil
}

// memTrackerStore keeps the tracking document in memory.
type memTrackerStore struct {
	ts *model.TrackingStore
}

func (m *memTrackerStore) Load(ctx context.Context) (*model.TrackingStore, error) {
	if m.ts == nil {
		m.ts = model.NewTrackingStore()
	}
	return m.ts, nil
}

func (m *memTrackerStore) Save(ctx context.Context, ts *model.TrackingStore) error {
	m.ts = ts
	return nil
}

func (m *memTrackerStore) Close() error { return nil }

func testServer(t *testing.T) *httptest.Server {
	t.Helper()

	cache := contacts.NewCache(&staticLoader{records: []model.ContactRecord{
		{
			ID: "c-1", Email: "ana@acme.io", FirstName: "Ana", Title: "CEO",
			CompanyName: "Acme", Industry: "Fintech", Country: "Germany",
			Keywords: []string{"fintech"}, QualityScore: 85, IsExecutive: true,
			ContactState: model.StateNotContacted, Stage: "Cold",
			EmailStatus: model.EmailStatusVerified, Lists: []string{},
		},
		{
			ID: "c-2", Email: "bob@beta.co", FirstName: "Bob", Title: "Analyst",
			CompanyName: "Beta", Industry: "Insurance", Country: "France",
			QualityScore: 40, ContactState: model.StateSent, Stage: "Warm",
			EmailStatus: model.EmailStatusUnverified, Lists: []string{},
		},
	}})
	trk := tracker.New(&memTrackerStore{}, cache)

	srv := httptest.NewServer(NewAPI(cache, trk).Router([]string{"*"}))
	t.Cleanup(srv.Close)
	return srv
}

func postJSON(t *testing.T, url string, body any) *http.Response {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)
	resp, err := http.Post(url, "application/json", bytes.NewReader(data))
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer resp.Body.Close()
	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func TestHealth(t *testing.T) {
	srv := testServer(t)

	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", decodeBody(t, resp)["status"])
}

func TestQueryEndpoint(t *testing.T) {
	srv := testServer(t)

	resp := postJSON(t, srv.URL+"/v1/contacts/query", map[string]any{
		"where": []map[string]any{
			{"field": "industry", "operator": "equals", "value": "Fintech"},
		},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, float64(1), body["total"])
	list := body["contacts"].([]any)
	require.Len(t, list, 1)
	first := list[0].(map[string]any)
	assert.Equal(t, "c-1", first["id"])
	assert.Equal(t, "NOT_CONTACTED", first["contactState"], "summary preset by default")
}

func TestQueryEndpointValidation(t *testing.T) {
	srv := testServer(t)

	resp := postJSON(t, srv.URL+"/v1/contacts/query", map[string]any{"limit": -5})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, decodeBody(t, resp), "error")
}

func TestQueryEndpointBadJSON(t *testing.T) {
	srv := testServer(t)

	resp, err := http.Post(srv.URL+"/v1/contacts/query", "application/json",
		bytes.NewReader([]byte("{nope")))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestSearchEndpoint(t *testing.T) {
	srv := testServer(t)

	resp := postJSON(t, srv.URL+"/v1/contacts/search", map[string]any{"query": "fintech"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, float64(1), body["total"])
	first := body["contacts"].([]any)[0].(map[string]any)
	assert.Equal(t, "c-1", first["id"])
	assert.Equal(t, float64(1), first["relevance"])
}

func TestSearchEndpointFilters(t *testing.T) {
	srv := testServer(t)

	// Both records match one token each without filters.
	resp := postJSON(t, srv.URL+"/v1/contacts/search", map[string]any{"query": "fintech insurance"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(2), decodeBody(t, resp)["total"])

	tests := []struct {
		name string
		body map[string]any
		want string
	}{
		{"min quality score", map[string]any{"query": "fintech insurance", "minQualityScore": 50}, "c-1"},
		{"non executives", map[string]any{"query": "fintech insurance", "isExecutive": false}, "c-2"},
		{"country", map[string]any{"query": "fintech insurance", "country": "France"}, "c-2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := postJSON(t, srv.URL+"/v1/contacts/search", tt.body)
			require.Equal(t, http.StatusOK, resp.StatusCode)

			body := decodeBody(t, resp)
			assert.Equal(t, float64(1), body["total"])
			first := body["contacts"].([]any)[0].(map[string]any)
			assert.Equal(t, tt.want, first["id"])
		})
	}
}

func TestSearchEndpointFilterValidation(t *testing.T) {
	srv := testServer(t)

	resp := postJSON(t, srv.URL+"/v1/contacts/search", map[string]any{
		"query": "fintech", "minQualityScore": 101,
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestSearchEndpointEmptyQuery(t *testing.T) {
	srv := testServer(t)

	resp := postJSON(t, srv.URL+"/v1/contacts/search", map[string]any{"query": ""})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestDetailsEndpoint(t *testing.T) {
	srv := testServer(t)

	resp, err := http.Get(srv.URL + "/v1/contacts/c-1")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ana@acme.io", decodeBody(t, resp)["email"])

	// Email works as a lookup key too.
	resp, err = http.Get(srv.URL + "/v1/contacts/bob@beta.co")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "c-2", decodeBody(t, resp)["id"])

	resp, err = http.Get(srv.URL + "/v1/contacts/missing")
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestStatsEndpoint(t *testing.T) {
	srv := testServer(t)

	resp, err := http.Get(srv.URL + "/v1/stats?groupBy=industry")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, float64(2), body["total"])
	breakdown := body["breakdown"].(map[string]any)
	assert.Equal(t, float64(1), breakdown["Fintech"])
}

func TestStateAndHistoryEndpoints(t *testing.T) {
	srv := testServer(t)

	resp := postJSON(t, srv.URL+"/v1/contacts/c-1/state", map[string]any{
		"newState": "SENT",
		"note":     "intro email",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, "NOT_CONTACTED", body["previousState"])
	assert.Equal(t, "SENT", body["newState"])

	resp, err := http.Get(srv.URL + "/v1/contacts/c-1/history")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	history := decodeBody(t, resp)
	assert.Equal(t, true, history["found"])
	assert.Equal(t, "SENT", history["currentState"])

	// stateHistory can be omitted.
	resp, err = http.Get(srv.URL + "/v1/contacts/c-1/history?stateHistory=false")
	require.NoError(t, err)
	history = decodeBody(t, resp)
	assert.NotContains(t, history, "stateHistory")
}

func TestStateEndpointMissingContact(t *testing.T) {
	srv := testServer(t)

	resp := postJSON(t, srv.URL+"/v1/contacts/missing-id/state", map[string]any{
		"newState": "SENT",
	})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestStateEndpointInvalidState(t *testing.T) {
	srv := testServer(t)

	resp := postJSON(t, srv.URL+"/v1/contacts/c-1/state", map[string]any{
		"newState": "GHOSTED",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestInteractionEndpoint(t *testing.T) {
	srv := testServer(t)

	resp := postJSON(t, srv.URL+"/v1/contacts/c-1/interactions", map[string]any{
		"type":     "email_sent",
		"newState": "SENT",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.NotEmpty(t, body["interactionId"])
	assert.Equal(t, "SENT", body["currentState"])
}

func TestHistoryEndpointUntracked(t *testing.T) {
	srv := testServer(t)

	resp, err := http.Get(srv.URL + "/v1/contacts/c-2/history")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, false, body["found"])
	assert.Equal(t, "UNKNOWN", body["currentState"])
	assert.Equal(t, float64(0), body["totalInteractions"])
}

func TestReloadEndpoint(t *testing.T) {
	srv := testServer(t)

	resp := postJSON(t, srv.URL+"/v1/admin/reload", map[string]any{})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, "reloaded", body["status"])
	assert.Equal(t, float64(2), body["records"])
}
