package rpc

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YutaGoto/imasparql-mcp-server/internal/engine"
	"github.com/YutaGoto/imasparql-mcp-server/internal/graph"
	"github.com/YutaGoto/imasparql-mcp-server/internal/metrics"
	"github.com/YutaGoto/imasparql-mcp-server/internal/sparql"
)

const yayoi = sparql.DetailNamespace + "Takatsuki_Yayoi"

type stubSelecter struct {
	rows  []graph.Binding
	err   error
	calls int
}

func (s *stubSelecter) Select(ctx context.Context, query string) ([]graph.Binding, error) {
	s.calls++
	return s.rows, s.err
}

func newTestServer(sel engine.Selecter) (*Server, *metrics.Metrics) {
	m := metrics.New()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	q := engine.New(sel, engine.WithMetrics(m), engine.WithAllowedIRIPrefixes([]string{sparql.DetailNamespace}))
	return NewServer(q, m, logger), m
}

func post(t *testing.T, s *Server, body string) (int, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/mcp", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return rec.Code, out
}

func TestCall_Success(t *testing.T) {
	sel := &stubSelecter{rows: []graph.Binding{
		{"s": {Type: "uri", Value: yayoi}, "label": {Type: "literal", Value: "Yayoi Takatsuki"}},
	}}
	s, _ := newTestServer(sel)

	code, out := post(t, s, `{"jsonrpc":"2.0","id":7,"method":"search_entities","params":{"q":"Yayoi"}}`)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "2.0", out["jsonrpc"])
	assert.Equal(t, float64(7), out["id"])
	assert.NotContains(t, out, "error")

	results, ok := out["result"].([]any)
	require.True(t, ok, "result should be a list")
	require.Len(t, results, 1)
	first := results[0].(map[string]any)
	assert.Equal(t, yayoi, first["id"])
	assert.Equal(t, "Yayoi Takatsuki", first["title"])
}

func TestCall_StringIDAndEmptyResult(t *testing.T) {
	s, _ := newTestServer(&stubSelecter{})

	code, out := post(t, s, `{"id":"abc","method":"get_unit_members","params":{"id":"`+yayoi+`"}}`)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "abc", out["id"])
	assert.Equal(t, []any{}, out["result"])
}

func TestCall_UnsupportedMethod(t *testing.T) {
	sel := &stubSelecter{}
	s, _ := newTestServer(sel)

	for _, body := range []string{
		`{"id":1,"method":"drop_all","params":{}}`,
		`{"id":1,"params":{}}`,
	} {
		code, out := post(t, s, body)
		assert.Equal(t, http.StatusBadRequest, code)
		assert.Equal(t, map[string]any{"error": "Unsupported method"}, out)
	}
	assert.Zero(t, sel.calls)
}

func TestCall_InvalidBody(t *testing.T) {
	s, _ := newTestServer(&stubSelecter{})

	code, out := post(t, s, `{"id":1,"method":`)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Invalid request body", out["error"])
}

func TestCall_EngineFailures(t *testing.T) {
	tests := []struct {
		name string
		sel  *stubSelecter
		body string
		want string
	}{
		{
			name: "missing parameter",
			sel:  &stubSelecter{},
			body: `{"id":2,"method":"get_entity_details","params":{}}`,
			want: "missing id",
		},
		{
			name: "identifier outside allowed namespace",
			sel:  &stubSelecter{},
			body: `{"id":2,"method":"get_entity_details","params":{"id":"https://example.org/x"}}`,
			want: "invalid id: must start with " + sparql.DetailNamespace,
		},
		{
			name: "upstream error",
			sel:  &stubSelecter{err: &graph.UpstreamError{StatusCode: 503}},
			body: `{"id":2,"method":"get_entity_details","params":{"id":"` + yayoi + `"}}`,
			want: "SPARQL error 503",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := newTestServer(tt.sel)

			code, out := post(t, s, tt.body)
			assert.Equal(t, http.StatusInternalServerError, code)
			assert.Equal(t, "2.0", out["jsonrpc"])
			assert.Equal(t, float64(2), out["id"])
			assert.Equal(t, tt.want, out["error"])
			assert.NotContains(t, out, "result")
		})
	}
}

func TestHealthAndMetrics(t *testing.T) {
	s, _ := newTestServer(&stubSelecter{})
	post(t, s, `{"id":1,"method":"search_clothes","params":{"q":"dress"}}`)

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())

	rec = httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `imasparql_engine_calls_total{intent="search_clothes",outcome="ok"} 1`)
}
