package graph

// Response is a SPARQL 1.1 query results document, or the raw body for
// non-JSON accept types.
type Response struct {
	Head    Head    `json:"head"`
	Results Results `json:"results"`
	Boolean *bool   `json:"boolean,omitempty"`

	ContentType string `json:"-"`
	Text        string `json:"-"`
}

type Head struct {
	Vars []string `json:"vars"`
}

type Results struct {
	Bindings []Binding `json:"bindings"`
}

// Binding maps a projected variable to its value. Variables left unbound by
// an OPTIONAL pattern are absent.
type Binding map[string]Term

type Term struct {
	Type     string `json:"type"`
	Value    string `json:"value"`
	Lang     string `json:"xml:lang,omitempty"`
	Datatype string `json:"datatype,omitempty"`
}

// Value returns the bound value of name, or "" when unbound.
func (b Binding) Value(name string) string {
	return b[name].Value
}

func (b Binding) Has(name string) bool {
	_, ok := b[name]
	return ok
}
