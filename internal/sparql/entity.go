package sparql

import (
	"fmt"
	"strings"
)

// EntityVariables are projected by BuildGetEntity, each bound through its own
// OPTIONAL pattern.
var EntityVariables = []struct {
	Name      string
	Predicate string
}{
	{"label", "rdfs:label"},
	{"type", "rdf:type"},
	{"nameKana", "imas:nameKana"},
	{"name", "schema:name"},
	{"height", "schema:height"},
	{"weight", "schema:weight"},
	{"gender", "schema:gender"},
	{"age", "foaf:age"},
	{"blood", "imas:BloodType"},
	{"brand", "imas:Brand"},
	{"bust", "imas:Bust"},
	{"waist", "imas:Waist"},
	{"hip", "imas:Hip"},
	{"handedness", "imas:Handedness"},
	{"hobby", "imas:Hobby"},
	{"birthPlace", "schema:birthPlace"},
	{"birthDate", "schema:birthDate"},
	{"constellation", "imas:Constellation"},
	{"grade", "imas:SchoolGrade"},
	{"color", "imas:Color"},
	{"cv", "imas:cv"},
	{"whose", "imas:Whose"},
	{"description", "schema:description"},
}

func BuildGetEntity(p GetEntityParams) string {
	var b strings.Builder
	b.WriteString(prologue(prefixRDFS, prefixRDF, prefixIMAS, prefixSchema, prefixFOAF))
	b.WriteString("SELECT")
	for _, v := range EntityVariables {
		b.WriteString(" ?" + v.Name)
	}
	b.WriteString("\nWHERE {\n")
	fmt.Fprintf(&b, "  VALUES ?s { %s }\n", IRI(p.URI))
	for _, v := range EntityVariables {
		fmt.Fprintf(&b, "  OPTIONAL { ?s %s ?%s }\n", v.Predicate, v.Name)
	}
	b.WriteString("}\n")
	return b.String()
}

// DetailPredicates are the properties fetched by BuildGetEntityDetails.
var DetailPredicates = []string{
	"rdfs:label",
	"imas:nameKana",
	"schema:height", "schema:weight", "schema:gender",
	"foaf:age",
	"imas:BloodType", "imas:Brand",
	"imas:Bust", "imas:Waist", "imas:Hip",
	"imas:Handedness", "imas:Hobby",
	"schema:birthPlace", "schema:birthDate",
	"imas:Constellation", "imas:SchoolGrade", "imas:Color",
	"imas:cv",
	"imas:Whose", "schema:description", "schema:name",
}

func BuildGetEntityDetails(p GetEntityDetailsParams) string {
	var b strings.Builder
	b.WriteString(prologue(prefixRDFS, prefixSchema, prefixIMAS, prefixFOAF))
	b.WriteString("SELECT ?p ?o WHERE {\n  VALUES ?p {\n")
	for _, pred := range DetailPredicates {
		fmt.Fprintf(&b, "    %s\n", pred)
	}
	b.WriteString("  }\n")
	fmt.Fprintf(&b, "  %s ?p ?o .\n}\n", IRI(p.ID))
	return b.String()
}

func BuildGetEntityRelations(p GetEntityRelationsParams) string {
	return prologue(prefixRDFS, prefixSchema) + fmt.Sprintf(`SELECT DISTINCT ?unit ?unitLabel
WHERE {
  %s schema:memberOf ?unit .
  OPTIONAL { ?unit rdfs:label ?unitLabel . }
}
`, IRI(p.ID))
}
