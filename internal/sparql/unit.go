package sparql

import "fmt"

func BuildGetUnitMembers(p GetUnitMembersParams) string {
	return prologue(prefixRDFS, prefixSchema, prefixIMAS) + fmt.Sprintf(`SELECT DISTINCT ?member ?memberLabel
WHERE {
  ?member schema:memberOf %s .
  ?member rdfs:label ?memberLabel .
  ?member a imas:Idol .
}
`, IRI(p.ID))
}

func BuildGetUnitMembersByName(p GetUnitMembersByNameParams) string {
	return prologue(prefixRDFS, prefixSchema, prefixIMAS) + fmt.Sprintf(`SELECT DISTINCT ?member ?memberLabel ?unit ?unitLabel
WHERE {
  ?unit a imas:Unit ;
        rdfs:label ?unitLabel .
  FILTER (%s)
  ?member schema:memberOf ?unit ;
          rdfs:label ?memberLabel ;
          a imas:Idol .
}
`, contains("?unitLabel", p.Name))
}

func BuildGetIdolClothes(p GetIdolClothesParams) string {
	return prologue(prefixRDFS, prefixIMAS, prefixSchema) + fmt.Sprintf(`SELECT DISTINCT ?s ?label ?description
WHERE {
  ?s a imas:Clothes ;
     imas:Whose %s ;
     rdfs:label ?label .
  OPTIONAL { ?s schema:description ?description }
}
`, IRI(p.ID))
}
