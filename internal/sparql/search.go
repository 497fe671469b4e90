package sparql

import (
	"fmt"
	"strconv"
	"strings"
)

// contains renders a case-insensitive substring test of variable against term.
func contains(variable, term string) string {
	return fmt.Sprintf("CONTAINS(LCASE(STR(%s)), LCASE(%s))", variable, Literal(term))
}

func numericBound(variable, op string, v *float64) string {
	if v == nil {
		return ""
	}
	return fmt.Sprintf("  FILTER(xsd:integer(%s) %s %s)\n", variable, op, strconv.FormatFloat(*v, 'f', -1, 64))
}

// BuildSearchEntities matches idols and staff whose label, name or kana
// reading contains p.Q. The type test applies to the whole OR-group.
func BuildSearchEntities(p SearchEntitiesParams) string {
	var b strings.Builder
	b.WriteString(prologue(prefixRDFS, prefixRDF, prefixSchema, prefixIMAS, prefixXSD))
	b.WriteString(`SELECT DISTINCT ?s ?label ?sname ?kana ?brand ?height ?weight ?birthDate
WHERE {
  ?s rdfs:label ?label .
  ?s rdf:type ?type .
  ?s a imas:Idol .
  OPTIONAL { ?s schema:name ?sname }
  OPTIONAL { ?s imas:nameKana ?kana }
  OPTIONAL { ?s imas:Brand ?brand }
  OPTIONAL { ?s schema:height ?height }
  OPTIONAL { ?s schema:weight ?weight }
  OPTIONAL { ?s schema:birthDate ?birthDate }
`)
	fmt.Fprintf(&b, "  FILTER (regex(str(?type), 'Idol$|Staff$') && (%s || %s || %s))\n",
		contains("?label", p.Q), contains("?sname", p.Q), contains("?kana", p.Q))
	if p.Brand != "" {
		fmt.Fprintf(&b, "  FILTER(STR(?brand) = %s)\n", Literal(p.Brand))
	}
	b.WriteString(numericBound("?height", ">=", p.MinHeight))
	b.WriteString(numericBound("?height", "<=", p.MaxHeight))
	b.WriteString(numericBound("?weight", ">=", p.MinWeight))
	b.WriteString(numericBound("?weight", "<=", p.MaxWeight))
	b.WriteString("}\n")
	b.WriteString(orderBy(p.SortBy, p.SortOrder))
	b.WriteString(pageClause(p.Limit, p.Offset))
	return b.String()
}

func BuildSearchClothes(p SearchClothesParams) string {
	var b strings.Builder
	b.WriteString(prologue(prefixRDFS, prefixIMAS, prefixSchema))
	b.WriteString(`SELECT DISTINCT ?s ?label ?description ?whose
WHERE {
  ?s a imas:Clothes ;
     rdfs:label ?label .
  OPTIONAL { ?s schema:description ?description }
  OPTIONAL { ?s imas:Whose ?whose }
`)
	fmt.Fprintf(&b, "  FILTER (%s || %s)\n", contains("?label", p.Q), contains("?description", p.Q))
	b.WriteString("}\n")
	b.WriteString(pageClause(p.Limit, p.Offset))
	return b.String()
}
