package normalize

import (
	"strings"

	"github.com/YutaGoto/imasparql-mcp-server/internal/graph"
)

type fieldMapping struct {
	Suffix string
	Field  string
}

// fieldMappings resolve a property IRI to its canonical field by suffix.
// Order matters: the first matching suffix wins.
var fieldMappings = []fieldMapping{
	{"label", "name"},
	{"nameKana", "kana"},
	{"height", "height"},
	{"weight", "weight"},
	{"gender", "gender"},
	{"age", "age"},
	{"BloodType", "bloodType"},
	{"Brand", "brand"},
	{"Bust", "bust"},
	{"Waist", "waist"},
	{"Hip", "hip"},
	{"Handedness", "handedness"},
	{"Hobby", "hobby"},
	{"birthPlace", "birthPlace"},
	{"birthDate", "birthDate"},
	{"Constellation", "constellation"},
	{"SchoolGrade", "schoolGrade"},
	{"Color", "color"},
	{"cv", "cv"},
	{"Whose", "whose"},
	{"description", "description"},
	{"name", "name"},
}

// FieldName returns the canonical field for a property IRI, or the IRI
// itself when no suffix matches.
func FieldName(property string) string {
	for _, m := range fieldMappings {
		if strings.HasSuffix(property, m.Suffix) {
			return m.Field
		}
	}
	return property
}

// EntityDetails folds (?p, ?o) rows into a Details map. Values accumulate in
// row order; fields seen exactly once are collapsed to a scalar afterwards.
func EntityDetails(rows []graph.Binding) Details {
	acc := make(map[string][]string)
	for _, b := range rows {
		if !b.Has("p") {
			continue
		}
		key := FieldName(b.Value("p"))
		acc[key] = append(acc[key], b.Value("o"))
	}

	out := make(Details, len(acc))
	for key, values := range acc {
		if len(values) == 1 {
			out[key] = values[0]
			continue
		}
		out[key] = values
	}
	return out
}
