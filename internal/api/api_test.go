package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/servicekit/internal/api"
	"github.com/dmitrymomot/servicekit/pkg/agentstats"
	"github.com/dmitrymomot/servicekit/pkg/requestid"
	"github.com/dmitrymomot/servicekit/pkg/serviceerror"
	"github.com/dmitrymomot/servicekit/pkg/useragent"
)

type agentBody struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

type userAgentBody struct {
	Primary       agentBody   `json:"primary"`
	Informational []agentBody `json:"informational"`
	NodeID        string      `json:"nodeId"`
	Formatted     string      `json:"formatted"`
}

func do(t *testing.T, h http.Handler, method, path, body, ua string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	if ua != "" {
		req.Header.Set(useragent.HeaderName, ua)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeData[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var env struct {
		Data T `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return env.Data
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) serviceerror.SerializableError {
	t.Helper()
	var body serviceerror.SerializableError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), rec.Body.String())
	assert.NotEmpty(t, body.ErrorInstanceID)
	return body
}

func newRouter(store agentstats.Store, checks ...func(context.Context) error) http.Handler {
	return api.NewRouter(api.Deps{Store: store, ReadinessChecks: checks})
}

func TestParse(t *testing.T) {
	t.Parallel()
	h := newRouter(agentstats.NewMemoryStore())

	t.Run("lenient", func(t *testing.T) {
		rec := do(t, h, http.MethodPost, "/v1/user-agents/parse", `{"userAgent":"junk svc/1.2.3 (nodeId:n1) proxy/2.0 bad/x"}`, "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))

		got := decodeData[userAgentBody](t, rec)
		assert.Equal(t, agentBody{"svc", "1.2.3"}, got.Primary)
		assert.Equal(t, []agentBody{{"proxy", "2.0"}}, got.Informational)
		assert.Equal(t, "n1", got.NodeID)
		assert.Equal(t, "svc/1.2.3 (nodeId:n1) proxy/2.0", got.Formatted)
	})

	t.Run("lenient fallback", func(t *testing.T) {
		rec := do(t, h, http.MethodPost, "/v1/user-agents/parse", `{"userAgent":"foo|1.2.3"}`, "")
		require.Equal(t, http.StatusOK, rec.Code)
		got := decodeData[userAgentBody](t, rec)
		assert.Equal(t, "unknown/0.0.0", got.Formatted)
		assert.Empty(t, got.Informational)
	})

	t.Run("strict success", func(t *testing.T) {
		rec := do(t, h, http.MethodPost, "/v1/user-agents/parse", `{"userAgent":"svc/latest","strict":true}`, "")
		require.Equal(t, http.StatusOK, rec.Code)
		got := decodeData[userAgentBody](t, rec)
		assert.Equal(t, agentBody{"svc", "0.0.0"}, got.Primary)
		assert.Equal(t, "svc/0.0.0", got.Formatted)
	})

	t.Run("strict failure", func(t *testing.T) {
		rec := do(t, h, http.MethodPost, "/v1/user-agents/parse", `{"userAgent":"foo|1.2.3","strict":true}`, "")
		require.Equal(t, http.StatusBadRequest, rec.Code)
		body := decodeError(t, rec)
		assert.Equal(t, serviceerror.InvalidArgument, body.ErrorCode)
		assert.Equal(t, "Default:InvalidArgument", body.ErrorName)
		assert.Equal(t, "foo|1.2.3", body.Parameters["userAgent"])
	})

	t.Run("malformed body", func(t *testing.T) {
		for _, payload := range []string{`{`, `{"userAgent":1}`, `{"ua":"svc/1.0"}`} {
			rec := do(t, h, http.MethodPost, "/v1/user-agents/parse", payload, "")
			require.Equal(t, http.StatusBadRequest, rec.Code, payload)
			assert.Equal(t, "malformed request body", decodeError(t, rec).Parameters["reason"])
		}
	})

	t.Run("body too large", func(t *testing.T) {
		payload := `{"userAgent":"` + strings.Repeat("a", 70<<10) + `"}`
		rec := do(t, h, http.MethodPost, "/v1/user-agents/parse", payload, "")
		require.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
		assert.Equal(t, "Api:RequestBodyTooLarge", decodeError(t, rec).ErrorName)
	})
}

func TestFormat(t *testing.T) {
	t.Parallel()
	h := newRouter(agentstats.NewMemoryStore())

	tests := []struct {
		name     string
		body     string
		expected string
	}{
		{"primary only", `{"primary":{"name":"svc","version":"1.0.0"}}`, "svc/1.0.0"},
		{"full", `{"primary":{"name":"svc","version":"1.0.0"},"nodeId":"node-1","informational":[{"name":"proxy","version":"2.0"}]}`, "svc/1.0.0 (nodeId:node-1) proxy/2.0"},
		{"invalid version defaults", `{"primary":{"name":"svc","version":"1 0 0"}}`, "svc/0.0.0"},
		{"missing version defaults", `{"primary":{"name":"svc"}}`, "svc/0.0.0"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := do(t, h, http.MethodPost, "/v1/user-agents/format", tc.body, "")
			require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
			got := decodeData[struct {
				Formatted string `json:"formatted"`
			}](t, rec)
			assert.Equal(t, tc.expected, got.Formatted)
		})
	}

	invalid := []struct {
		name  string
		body  string
		field string
	}{
		{"bad primary name", `{"primary":{"name":"bad name","version":"1.0"}}`, "primary.name"},
		{"empty primary name", `{"primary":{"version":"1.0"}}`, "primary.name"},
		{"bad node id", `{"primary":{"name":"svc","version":"1.0"},"nodeId":".node"}`, "nodeId"},
		{"bad informational", `{"primary":{"name":"svc","version":"1.0"},"informational":[{"name":"ok","version":"1.0"},{"name":"x$","version":"1.0"}]}`, "informational[1].name"},
	}
	for _, tc := range invalid {
		t.Run(tc.name, func(t *testing.T) {
			rec := do(t, h, http.MethodPost, "/v1/user-agents/format", tc.body, "")
			require.Equal(t, http.StatusBadRequest, rec.Code)
			body := decodeError(t, rec)
			assert.Equal(t, "Default:InvalidArgument", body.ErrorName)
			assert.Equal(t, tc.field, body.Parameters["field"])
		})
	}
}

func TestSelf(t *testing.T) {
	t.Parallel()
	h := newRouter(agentstats.NewMemoryStore())

	rec := do(t, h, http.MethodGet, "/v1/user-agents/self", "", "web/3.1.0 (nodeId:pod-7) gateway/1.2")
	require.Equal(t, http.StatusOK, rec.Code)
	got := decodeData[userAgentBody](t, rec)
	assert.Equal(t, "web/3.1.0 (nodeId:pod-7) gateway/1.2", got.Formatted)
	assert.Equal(t, "pod-7", got.NodeID)

	rec = do(t, h, http.MethodGet, "/v1/user-agents/self", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "unknown/0.0.0", decodeData[userAgentBody](t, rec).Formatted)
}

func TestAgents(t *testing.T) {
	t.Parallel()
	store := agentstats.NewMemoryStore()
	h := newRouter(store)

	do(t, h, http.MethodGet, "/v1/user-agents/self", "", "billing/1.0.0 gateway/2.0")
	do(t, h, http.MethodGet, "/v1/user-agents/self", "", "billing/1.0.0 (nodeId:n2)")
	do(t, h, http.MethodGet, "/healthz", "", "kube-probe/1.30")

	rec := do(t, h, http.MethodGet, "/v1/agents", "", "ops/0.1")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []agentstats.Entry{
		{Agent: "billing/1.0.0", Count: 2},
		{Agent: "ops/0.1", Count: 1},
	}, decodeData[[]agentstats.Entry](t, rec), "probes are not counted")

	rec = do(t, h, http.MethodDelete, "/v1/agents", "", "ops/0.1")
	require.Equal(t, http.StatusNoContent, rec.Code)
	entries, err := store.Snapshot(context.Background())
	require.NoError(t, err)
	assert.Empty(t, entries)
}

type brokenStore struct{ agentstats.Store }

func (brokenStore) Record(context.Context, useragent.UserAgent) error {
	return errors.New("connection refused")
}

func (brokenStore) Snapshot(context.Context) ([]agentstats.Entry, error) {
	return nil, errors.New("connection refused")
}

func TestAgents_StoreFailure(t *testing.T) {
	t.Parallel()
	h := newRouter(brokenStore{})

	rec := do(t, h, http.MethodGet, "/v1/user-agents/self", "", "svc/1.0")
	assert.Equal(t, http.StatusOK, rec.Code, "record failures do not fail requests")

	rec = do(t, h, http.MethodGet, "/v1/agents", "", "svc/1.0")
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	body := decodeError(t, rec)
	assert.Equal(t, "Default:Internal", body.ErrorName)
	assert.NotContains(t, rec.Body.String(), "connection refused")
}

func TestProbes(t *testing.T) {
	t.Parallel()

	rec := do(t, newRouter(agentstats.NewMemoryStore()), http.MethodGet, "/healthz", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ALIVE", rec.Body.String())

	ready := newRouter(agentstats.NewMemoryStore(), func(context.Context) error { return nil })
	rec = do(t, ready, http.MethodGet, "/readyz", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "READY", rec.Body.String())

	notReady := newRouter(agentstats.NewMemoryStore(), func(context.Context) error { return errors.New("redis down") })
	rec = do(t, notReady, http.MethodGet, "/readyz", "", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "NOT_READY", rec.Body.String())
}

func TestMetrics(t *testing.T) {
	t.Parallel()
	store := agentstats.NewMemoryStore()
	reg := prometheus.NewRegistry()
	reg.MustRegister(agentstats.NewCollector(store, "test", nil))
	h := api.NewRouter(api.Deps{Store: store, Metrics: reg})

	do(t, h, http.MethodGet, "/v1/user-agents/self", "", "billing/1.0.0")
	rec := do(t, h, http.MethodGet, "/metrics", "", "prometheus/2.53.0")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `test_agent_requests_total{agent="billing/1.0.0"} 1`)
	assert.NotContains(t, rec.Body.String(), "prometheus/2.53.0", "scrapes are not counted")

	rec = do(t, newRouter(store), http.MethodGet, "/metrics", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code, "metrics are opt-in")
}

func TestRouting(t *testing.T) {
	t.Parallel()
	h := newRouter(agentstats.NewMemoryStore())

	t.Run("not found", func(t *testing.T) {
		rec := do(t, h, http.MethodGet, "/v2/nothing", "", "")
		require.Equal(t, http.StatusNotFound, rec.Code)
		body := decodeError(t, rec)
		assert.Equal(t, "Default:NotFound", body.ErrorName)
		assert.Equal(t, "/v2/nothing", body.Parameters["path"])
	})

	t.Run("method not allowed", func(t *testing.T) {
		rec := do(t, h, http.MethodGet, "/v1/user-agents/parse", "", "")
		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Api:MethodNotAllowed", decodeError(t, rec).ErrorName)
	})

	t.Run("request id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
		req.Header.Set(requestid.Header, "trace-123")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, "trace-123", rec.Header().Get(requestid.Header))

		rec = do(t, h, http.MethodGet, "/healthz", "", "")
		assert.NotEmpty(t, rec.Header().Get(requestid.Header))
	})
}

func TestServerHeader(t *testing.T) {
	t.Parallel()
	self, err := useragent.NewWithNodeID(useragent.MustAgent("agentd", "1.4.0"), "host-1")
	require.NoError(t, err)
	h := api.NewRouter(api.Deps{Store: agentstats.NewMemoryStore(), Self: self})

	for _, path := range []string{"/healthz", "/v1/user-agents/self", "/missing"} {
		rec := do(t, h, http.MethodGet, path, "", "svc/1.0")
		assert.Equal(t, "agentd/1.4.0 (nodeId:host-1)", rec.Header().Get("Server"), path)
	}

	rec := do(t, newRouter(agentstats.NewMemoryStore()), http.MethodGet, "/healthz", "", "")
	assert.Empty(t, rec.Header().Get("Server"))
}
