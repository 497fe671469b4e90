package engine

import (
	"bytes"
	"context"
	"encoding/json"
)

const (
	IntentSearchEntities       = "search_entities"
	IntentGetEntity            = "get_entity"
	IntentGetEntityDetails     = "get_entity_details"
	IntentGetEntityRelations   = "get_entity_relations"
	IntentGetUnitMembers       = "get_unit_members"
	IntentGetUnitMembersByName = "get_unit_members_by_name"
	IntentSearchClothes        = "search_clothes"
	IntentGetIdolClothes       = "get_idol_clothes"
)

type Intent struct {
	Name        string
	Description string
}

// Intents lists every operation in the order adapters advertise them.
var Intents = []Intent{
	{IntentSearchEntities, "Search idols and staff by keyword, brand, height and weight. Results are ordered and paginated."},
	{IntentGetEntity, "Fetch name, label and context snippets for one entity by IRI."},
	{IntentGetEntityDetails, "Fetch the detailed profile fields of one entity (height, weight, birthday, cv, hobby and so on) keyed by field name."},
	{IntentGetEntityRelations, "List the units an entity belongs to."},
	{IntentGetUnitMembers, "List members of a unit identified by IRI."},
	{IntentGetUnitMembersByName, "Find units whose name contains a keyword and list their members."},
	{IntentSearchClothes, "Search costumes by keyword."},
	{IntentGetIdolClothes, "List costumes owned by one idol identified by IRI."},
}

// Dispatch decodes raw into the parameter type of method and invokes it on q.
// Empty or null params decode to the zero value so that required fields are
// reported by validation.
func Dispatch(ctx context.Context, q Querier, method string, raw json.RawMessage) (any, error) {
	switch method {
	case IntentSearchEntities:
		return call(ctx, raw, q.SearchEntities)
	case IntentGetEntity:
		return call(ctx, raw, q.GetEntity)
	case IntentGetEntityDetails:
		return call(ctx, raw, q.GetEntityDetails)
	case IntentGetEntityRelations:
		return call(ctx, raw, q.GetEntityRelations)
	case IntentGetUnitMembers:
		return call(ctx, raw, q.GetUnitMembers)
	case IntentGetUnitMembersByName:
		return call(ctx, raw, q.GetUnitMembersByName)
	case IntentSearchClothes:
		return call(ctx, raw, q.SearchClothes)
	case IntentGetIdolClothes:
		return call(ctx, raw, q.GetIdolClothes)
	default:
		return nil, ErrUnknownIntent
	}
}

// Known reports whether method names a dispatchable intent.
func Known(method string) bool {
	for _, in := range Intents {
		if in.Name == method {
			return true
		}
	}
	return false
}

func call[P, R any](ctx context.Context, raw json.RawMessage, fn func(context.Context, P) (R, error)) (any, error) {
	var params P
	if trimmed := bytes.TrimSpace(raw); len(trimmed) > 0 && !bytes.Equal(trimmed, []byte("null")) {
		if err := json.Unmarshal(trimmed, &params); err != nil {
			return nil, &ValidationError{Field: "params", Reason: err.Error()}
		}
	}
	return fn(ctx, params)
}
