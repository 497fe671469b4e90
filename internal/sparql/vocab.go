package sparql

import (
	"fmt"
	"strings"
)

// Namespaces used by the im@sparql dataset.
const (
	NamespaceRDF    = "http://www.w3.org/1999/02/22-rdf-syntax-ns#"
	NamespaceRDFS   = "http://www.w3.org/2000/01/rdf-schema#"
	NamespaceSchema = "http://schema.org/"
	NamespaceFOAF   = "http://xmlns.com/foaf/0.1/"
	NamespaceXSD    = "http://www.w3.org/2001/XMLSchema#"
	NamespaceIMAS   = "https://sparql.crssnky.xyz/imasrdf/URIs/imas-schema.ttl#"

	// DetailNamespace is where idol, unit and clothes resources live.
	DetailNamespace = "https://sparql.crssnky.xyz/imasrdf/RDFs/detail/"
)

type prefix struct {
	name string
	iri  string
}

var (
	prefixRDF    = prefix{"rdf", NamespaceRDF}
	prefixRDFS   = prefix{"rdfs", NamespaceRDFS}
	prefixSchema = prefix{"schema", NamespaceSchema}
	prefixFOAF   = prefix{"foaf", NamespaceFOAF}
	prefixXSD    = prefix{"xsd", NamespaceXSD}
	prefixIMAS   = prefix{"imas", NamespaceIMAS}
)

func prologue(prefixes ...prefix) string {
	var b strings.Builder
	for _, p := range prefixes {
		fmt.Fprintf(&b, "PREFIX %s: <%s>\n", p.name, p.iri)
	}
	return b.String()
}
