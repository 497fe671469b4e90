package mcp

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YutaGoto/imasparql-mcp-server/internal/engine"
	"github.com/YutaGoto/imasparql-mcp-server/internal/graph"
	"github.com/YutaGoto/imasparql-mcp-server/internal/normalize"
	"github.com/YutaGoto/imasparql-mcp-server/internal/sparql"
)

const yayoi = sparql.DetailNamespace + "Takatsuki_Yayoi"

type mockQuerier struct {
	summaries []normalize.Summary
	details   normalize.Details
	refs      []normalize.Ref
	err       error

	lastSearch  sparql.SearchEntitiesParams
	lastDetails sparql.GetEntityDetailsParams
	lastByName  sparql.GetUnitMembersByNameParams
}

func (m *mockQuerier) SearchEntities(ctx context.Context, p sparql.SearchEntitiesParams) ([]normalize.Summary, error) {
	m.lastSearch = p
	return m.summaries, m.err
}

func (m *mockQuerier) GetEntity(ctx context.Context, p sparql.GetEntityParams) (normalize.EntityContext, error) {
	return normalize.EntityContext{}, m.err
}

func (m *mockQuerier) GetEntityDetails(ctx context.Context, p sparql.GetEntityDetailsParams) (normalize.Details, error) {
	m.lastDetails = p
	return m.details, m.err
}

func (m *mockQuerier) GetEntityRelations(ctx context.Context, p sparql.GetEntityRelationsParams) ([]normalize.Ref, error) {
	return m.refs, m.err
}

func (m *mockQuerier) GetUnitMembers(ctx context.Context, p sparql.GetUnitMembersParams) ([]normalize.Ref, error) {
	return m.refs, m.err
}

func (m *mockQuerier) GetUnitMembersByName(ctx context.Context, p sparql.GetUnitMembersByNameParams) ([]normalize.UnitMember, error) {
	m.lastByName = p
	return nil, m.err
}

func (m *mockQuerier) SearchClothes(ctx context.Context, p sparql.SearchClothesParams) ([]normalize.Summary, error) {
	return m.summaries, m.err
}

func (m *mockQuerier) GetIdolClothes(ctx context.Context, p sparql.GetIdolClothesParams) ([]normalize.Clothes, error) {
	return nil, m.err
}

type countingSelecter struct {
	calls int
}

func (c *countingSelecter) Select(ctx context.Context, query string) ([]graph.Binding, error) {
	c.calls++
	return nil, nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func resultText(t *testing.T, result *sdk.CallToolResult) string {
	t.Helper()
	require.NotNil(t, result)
	require.Len(t, result.Content, 1)
	text, ok := result.Content[0].(*sdk.TextContent)
	require.True(t, ok, "content should be TextContent")
	return text.Text
}

func callRequest(t *testing.T, name string, args any) *sdk.CallToolRequest {
	t.Helper()
	raw, err := json.Marshal(args)
	require.NoError(t, err)
	return &sdk.CallToolRequest{Params: &sdk.CallToolParamsRaw{Name: name, Arguments: raw}}
}

func TestSearchEntities(t *testing.T) {
	mock := &mockQuerier{summaries: []normalize.Summary{{ID: yayoi, Title: "Yayoi Takatsuki", Snippet: "Yayoi Takatsuki"}}}
	server := NewServer(mock, testLogger(), "test")

	req := callRequest(t, engine.IntentSearchEntities, map[string]any{"q": "yayoi", "limit": 5})
	result, err := server.handleCall(engine.IntentSearchEntities)(context.Background(), req)
	require.NoError(t, err)
	assert.False(t, result.IsError)
	assert.Equal(t, "yayoi", mock.lastSearch.Q)
	require.NotNil(t, mock.lastSearch.Limit)
	assert.Equal(t, 5.0, *mock.lastSearch.Limit)

	want := "[\n  {\n    \"id\": \"" + yayoi + "\",\n    \"title\": \"Yayoi Takatsuki\",\n    \"snippet\": \"Yayoi Takatsuki\"\n  }\n]"
	assert.Equal(t, want, resultText(t, result))
}

func TestGetEntityDetails(t *testing.T) {
	mock := &mockQuerier{details: normalize.Details{"cv": []string{"A", "B"}, "height": "158"}}
	server := NewServer(mock, testLogger(), "test")

	req := callRequest(t, engine.IntentGetEntityDetails, map[string]any{"id": yayoi})
	result, err := server.handleCall(engine.IntentGetEntityDetails)(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, yayoi, mock.lastDetails.ID)

	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &got))
	assert.Equal(t, []any{"A", "B"}, got["cv"])
	assert.Equal(t, "158", got["height"])
}

func TestToolErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"validation", &engine.ValidationError{Field: "name"}, "Error: missing name"},
		{"upstream", &graph.UpstreamError{StatusCode: 503}, "Error: SPARQL error 503"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := NewServer(&mockQuerier{err: tt.err}, testLogger(), "test")

			req := callRequest(t, engine.IntentGetUnitMembersByName, map[string]any{"name": "ribbon"})
			result, err := server.handleCall(engine.IntentGetUnitMembersByName)(context.Background(), req)
			require.NoError(t, err)
			assert.True(t, result.IsError)
			assert.Equal(t, tt.want, resultText(t, result))
		})
	}
}

func TestInputSchemas(t *testing.T) {
	for _, intent := range engine.Intents {
		schema, err := inputSchema(intent.Name)
		require.NoError(t, err, intent.Name)
		assert.Equal(t, "object", schema.Type, intent.Name)
	}

	schema, err := inputSchema(engine.IntentGetEntity)
	require.NoError(t, err)
	assert.Equal(t, []string{"uri"}, schema.Required)

	_, err = inputSchema("drop_all")
	assert.Error(t, err)
}

func TestServerWithInMemoryTransport(t *testing.T) {
	mock := &mockQuerier{refs: []normalize.Ref{{ID: sparql.DetailNamespace + "Unit", Name: "Unit"}}}
	server := NewServer(mock, testLogger(), "0.1.0-test")

	serverTransport, clientTransport := sdk.NewInMemoryTransports()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- server.Run(ctx, serverTransport)
	}()

	client := sdk.NewClient(&sdk.Implementation{Name: "test-client", Version: "1.0.0"}, nil)
	session, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)
	defer session.Close()

	assert.Equal(t, "imasparql", session.InitializeResult().ServerInfo.Name)

	t.Run("tools/list matches intents", func(t *testing.T) {
		result, err := session.ListTools(ctx, nil)
		require.NoError(t, err)

		names := make([]string, 0, len(result.Tools))
		for _, tool := range result.Tools {
			names = append(names, tool.Name)
			assert.NotEmpty(t, tool.Description)
			assert.NotNil(t, tool.InputSchema)
		}
		want := make([]string, 0, len(engine.Intents))
		for _, intent := range engine.Intents {
			want = append(want, intent.Name)
		}
		assert.ElementsMatch(t, want, names)
	})

	t.Run("tools/call returns json text", func(t *testing.T) {
		result, err := session.CallTool(ctx, &sdk.CallToolParams{
			Name:      engine.IntentGetUnitMembers,
			Arguments: map[string]any{"id": sparql.DetailNamespace + "Unit"},
		})
		require.NoError(t, err)
		assert.False(t, result.IsError)

		var refs []normalize.Ref
		require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &refs))
		assert.Equal(t, mock.refs, refs)
	})

	t.Run("tools/call with fractional limit", func(t *testing.T) {
		result, err := session.CallTool(ctx, &sdk.CallToolParams{
			Name:      engine.IntentSearchEntities,
			Arguments: map[string]any{"q": "yayoi", "limit": 5.5},
		})
		require.NoError(t, err)
		assert.False(t, result.IsError)
		require.NotNil(t, mock.lastSearch.Limit)
		assert.Equal(t, 5.5, *mock.lastSearch.Limit)
	})

	t.Run("tools/call reports engine errors", func(t *testing.T) {
		mock.err = &engine.ValidationError{Field: "id", Reason: "not an absolute iri"}
		defer func() { mock.err = nil }()

		result, err := session.CallTool(ctx, &sdk.CallToolParams{
			Name:      engine.IntentGetIdolClothes,
			Arguments: map[string]any{"id": "Takatsuki_Yayoi"},
		})
		require.NoError(t, err)
		assert.True(t, result.IsError)
		assert.Equal(t, "Error: invalid id: not an absolute iri", resultText(t, result))
	})

	require.NoError(t, session.Close())
}

func TestMissingArgumentsOverTransport(t *testing.T) {
	sel := &countingSelecter{}
	server := NewServer(engine.New(sel), testLogger(), "0.1.0-test")

	serverTransport, clientTransport := sdk.NewInMemoryTransports()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	go func() {
		_ = server.Run(ctx, serverTransport)
	}()

	client := sdk.NewClient(&sdk.Implementation{Name: "test-client", Version: "1.0.0"}, nil)
	session, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)
	defer session.Close()

	tests := []struct {
		tool string
		want string
	}{
		{engine.IntentGetEntity, "Error: missing uri"},
		{engine.IntentGetEntityDetails, "Error: missing id"},
		{engine.IntentGetEntityRelations, "Error: missing id"},
		{engine.IntentGetUnitMembers, "Error: missing id"},
		{engine.IntentGetUnitMembersByName, "Error: missing name"},
		{engine.IntentGetIdolClothes, "Error: missing id"},
	}
	for _, tt := range tests {
		t.Run(tt.tool, func(t *testing.T) {
			result, err := session.CallTool(ctx, &sdk.CallToolParams{
				Name:      tt.tool,
				Arguments: map[string]any{},
			})
			require.NoError(t, err)
			assert.True(t, result.IsError)
			assert.Equal(t, tt.want, resultText(t, result))
		})
	}
	assert.Zero(t, sel.calls)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcdefg...", truncate("abcdefghijklmnop", 10))
}
