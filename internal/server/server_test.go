package server_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/Sumatoshi-tech/rolenav/internal/config"
	"github.com/Sumatoshi-tech/rolenav/internal/observability"
	"github.com/Sumatoshi-tech/rolenav/internal/server"
	"github.com/Sumatoshi-tech/rolenav/pkg/atree"
	"github.com/Sumatoshi-tech/rolenav/pkg/snapshot"
)

// fixture: panel(0){heading(1), panel(2){heading(3)}}.
func testServer(t *testing.T) http.Handler {
	t.Helper()

	tree, err := atree.BuildCounting(&snapshot.Node{
		Role: "panel",
		Children: []*snapshot.Node{
			{Role: "heading"},
			{Role: "panel", Children: []*snapshot.Node{
				{Role: "heading"},
			}},
		},
	})
	require.NoError(t, err)

	cfg := config.Config{
		Engine: config.EngineConfig{Workers: 2, Layout: config.LayoutCounting},
	}

	logger := observability.NewLogger(io.Discard, "info", "text")
	tracer := noop.NewTracerProvider().Tracer("test")

	return server.New(tree, cfg, logger, tracer).Handler()
}

func postQuery(t *testing.T, handler http.Handler, req server.QueryRequest) (int, server.QueryResponse) {
	t.Helper()

	body, err := json.Marshal(req)
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/query", bytes.NewReader(body)))

	var resp server.QueryResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	return rec.Code, resp
}

func TestHandleQuery_HowMany(t *testing.T) {
	t.Parallel()

	handler := testServer(t)

	for _, method := range []string{"", "seq", "roleset", "par", "par-roleset"} {
		code, resp := postQuery(t, handler, server.QueryRequest{
			Op:     "how_many",
			Role:   "heading",
			Method: method,
		})

		require.Equal(t, http.StatusOK, code, "method %q", method)
		require.NotNil(t, resp.Count, "method %q", method)
		assert.Equal(t, 2, *resp.Count, "method %q", method)
		assert.Empty(t, resp.Error)
	}
}

func TestHandleQuery_FindFirst(t *testing.T) {
	t.Parallel()

	handler := testServer(t)

	for _, method := range []string{"", "seq", "roleset", "stack", "par", "par-roleset"} {
		code, resp := postQuery(t, handler, server.QueryRequest{
			Op:     "find_first",
			Role:   "heading",
			Method: method,
		})

		require.Equal(t, http.StatusOK, code, "method %q", method)
		require.NotNil(t, resp.Node, "method %q", method)
		require.NotNil(t, resp.Found, "method %q", method)
		assert.True(t, *resp.Found, "method %q", method)
		assert.Equal(t, 1, *resp.Node, "method %q", method)
	}
}

func TestHandleQuery_FindFirst_Absent(t *testing.T) {
	t.Parallel()

	code, resp := postQuery(t, testServer(t), server.QueryRequest{Op: "find_first", Role: "slider"})

	require.Equal(t, http.StatusOK, code)
	require.NotNil(t, resp.Found)
	assert.False(t, *resp.Found)
}

func TestHandleQuery_Roleless(t *testing.T) {
	t.Parallel()

	handler := testServer(t)

	code, resp := postQuery(t, handler, server.QueryRequest{Op: "max_depth"})
	require.Equal(t, http.StatusOK, code)
	require.NotNil(t, resp.Depth)
	assert.Equal(t, 2, *resp.Depth)

	code, resp = postQuery(t, handler, server.QueryRequest{Op: "unique_roles", Method: "par"})
	require.Equal(t, http.StatusOK, code)
	assert.ElementsMatch(t, []string{"panel", "heading"}, resp.Roles)

	code, resp = postQuery(t, handler, server.QueryRequest{Op: "leaf_count"})
	require.Equal(t, http.StatusOK, code)
	require.NotNil(t, resp.Count)
	assert.Equal(t, 2, *resp.Count)
}

func TestHandleQuery_BadRequests(t *testing.T) {
	t.Parallel()

	handler := testServer(t)

	tests := []struct {
		name string
		req  server.QueryRequest
	}{
		{name: "unknown_op", req: server.QueryRequest{Op: "count_all"}},
		{name: "unknown_role", req: server.QueryRequest{Op: "how_many", Role: "hologram"}},
		{name: "stack_on_how_many", req: server.QueryRequest{Op: "how_many", Role: "panel", Method: "stack"}},
		{name: "roleset_on_max_depth", req: server.QueryRequest{Op: "max_depth", Method: "roleset"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			code, resp := postQuery(t, handler, tt.req)

			assert.Equal(t, http.StatusBadRequest, code)
			assert.NotEmpty(t, resp.Error)
		})
	}
}

func TestHandleQuery_MethodAndBodyGuards(t *testing.T) {
	t.Parallel()

	handler := testServer(t)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/query", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/query", bytes.NewReader([]byte("{"))))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleStats(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	testServer(t).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/stats", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var resp server.StatsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.Equal(t, 4, resp.Nodes)
	assert.Equal(t, 2, resp.Leaves)
	assert.Equal(t, 2, resp.MaxDepth)
	assert.Equal(t, 2, resp.MaxChildren)
	assert.Equal(t, map[string]int{"panel": 2, "heading": 2}, resp.PerRole)
}

func TestHealthzAndMetrics(t *testing.T) {
	t.Parallel()

	handler := testServer(t)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())

	// A query first, so the scrape has something to show.
	_, _ = postQuery(t, handler, server.QueryRequest{Op: "how_many", Role: "panel"})

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `rolenav_queries_total{op="how_many",status="ok"} 1`)
	assert.Contains(t, rec.Body.String(), "rolenav_tree_nodes 4")
}
