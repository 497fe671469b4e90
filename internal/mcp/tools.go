package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/jsonschema-go/jsonschema"
	sdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/YutaGoto/imasparql-mcp-server/internal/engine"
	"github.com/YutaGoto/imasparql-mcp-server/internal/sparql"
)

type schemaFunc func(*jsonschema.ForOptions) (*jsonschema.Schema, error)

// inputSchemas advertises each intent's parameter struct. Required fields stay
// required in the schema, but arguments are checked by the engine so a missing
// field comes back as a tool error rather than a protocol error.
var inputSchemas = map[string]schemaFunc{
	engine.IntentSearchEntities:       jsonschema.For[sparql.SearchEntitiesParams],
	engine.IntentGetEntity:            jsonschema.For[sparql.GetEntityParams],
	engine.IntentGetEntityDetails:     jsonschema.For[sparql.GetEntityDetailsParams],
	engine.IntentGetEntityRelations:   jsonschema.For[sparql.GetEntityRelationsParams],
	engine.IntentGetUnitMembers:       jsonschema.For[sparql.GetUnitMembersParams],
	engine.IntentGetUnitMembersByName: jsonschema.For[sparql.GetUnitMembersByNameParams],
	engine.IntentSearchClothes:        jsonschema.For[sparql.SearchClothesParams],
	engine.IntentGetIdolClothes:       jsonschema.For[sparql.GetIdolClothesParams],
}

func (s *Server) registerTools() {
	for _, intent := range engine.Intents {
		schema, err := inputSchema(intent.Name)
		if err != nil {
			panic(err)
		}
		s.mcp.AddTool(&sdk.Tool{
			Name:        intent.Name,
			Description: intent.Description,
			InputSchema: schema,
		}, s.handleCall(intent.Name))
	}
}

func inputSchema(method string) (*jsonschema.Schema, error) {
	build, ok := inputSchemas[method]
	if !ok {
		return nil, fmt.Errorf("no input schema for tool %q", method)
	}
	schema, err := build(nil)
	if err != nil {
		return nil, fmt.Errorf("inferring input schema for tool %q: %w", method, err)
	}
	return schema, nil
}

// handleCall decodes the raw arguments into the intent's parameters and runs
// it on the engine.
func (s *Server) handleCall(method string) sdk.ToolHandler {
	return func(ctx context.Context, req *sdk.CallToolRequest) (*sdk.CallToolResult, error) {
		var args json.RawMessage
		if req != nil && req.Params != nil {
			args = req.Params.Arguments
		}
		return respond(engine.Dispatch(ctx, s.engine, method, args))
	}
}

// respond renders an engine result as indented JSON text. Engine errors
// become tool errors so the caller sees the message.
func respond(out any, err error) (*sdk.CallToolResult, error) {
	if err != nil {
		return errorResult(err.Error()), nil
	}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return errorResult(err.Error()), nil
	}
	return textResult(string(data)), nil
}

func errorResult(msg string) *sdk.CallToolResult {
	return &sdk.CallToolResult{
		Content: []sdk.Content{&sdk.TextContent{Text: "Error: " + msg}},
		IsError: true,
	}
}

func textResult(text string) *sdk.CallToolResult {
	return &sdk.CallToolResult{
		Content: []sdk.Content{&sdk.TextContent{Text: text}},
	}
}
