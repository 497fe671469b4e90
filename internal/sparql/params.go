package sparql

// Parameter objects, one per intent. The json and jsonschema tags define the
// wire contract shared by every adapter; validate tags are enforced by the
// engine before a query is built.

type SearchEntitiesParams struct {
	Q         string   `json:"q,omitempty" jsonschema:"search keyword matched against name, label and kana reading"`
	Brand     string   `json:"brand,omitempty" jsonschema:"brand filter, e.g. 765AS, CinderellaGirls, MillionLive"`
	MinHeight *float64 `json:"minHeight,omitempty" jsonschema:"minimum height in cm"`
	MaxHeight *float64 `json:"maxHeight,omitempty" jsonschema:"maximum height in cm"`
	MinWeight *float64 `json:"minWeight,omitempty" jsonschema:"minimum weight in kg"`
	MaxWeight *float64 `json:"maxWeight,omitempty" jsonschema:"maximum weight in kg"`
	SortBy    string   `json:"sortBy,omitempty" jsonschema:"sort key: name, height, weight or birthDate"`
	SortOrder string   `json:"sortOrder,omitempty" jsonschema:"sort order: asc or desc"`
	Limit     *float64 `json:"limit,omitempty" jsonschema:"maximum number of results (default 50, fractions are truncated)"`
	Offset    *float64 `json:"offset,omitempty" jsonschema:"number of results to skip (default 0, fractions are truncated)"`
}

type GetEntityParams struct {
	URI string `json:"uri" jsonschema:"IRI of the entity" validate:"required,iri"`
}

type GetEntityDetailsParams struct {
	ID string `json:"id" jsonschema:"IRI of the entity" validate:"required,iri"`
}

type GetEntityRelationsParams struct {
	ID string `json:"id" jsonschema:"IRI of the entity" validate:"required,iri"`
}

type GetUnitMembersParams struct {
	ID string `json:"id" jsonschema:"IRI of the unit" validate:"required,iri"`
}

type GetUnitMembersByNameParams struct {
	Name string `json:"name" jsonschema:"unit name, partial match" validate:"required"`
}

type SearchClothesParams struct {
	Q      string   `json:"q,omitempty" jsonschema:"keyword matched against clothes name and description"`
	Limit  *float64 `json:"limit,omitempty" jsonschema:"maximum number of results (default 50, fractions are truncated)"`
	Offset *float64 `json:"offset,omitempty" jsonschema:"number of results to skip (default 0, fractions are truncated)"`
}

type GetIdolClothesParams struct {
	ID string `json:"id" jsonschema:"IRI of the idol" validate:"required,iri"`
}
