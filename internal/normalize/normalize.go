// Package normalize maps SPARQL binding rows onto the stable output shapes
// returned by the engine. Every function is pure and tolerates unbound
// variables.
package normalize

import (
	"strings"

	"github.com/YutaGoto/imasparql-mcp-server/internal/graph"
)

const (
	NoName  = "(no name)"
	NoLabel = "(no label)"

	snippetSeparator = " / "
)

type Summary struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Snippet string `json:"snippet"`
}

type EntityContext struct {
	Context []ContextItem `json:"context"`
}

type ContextItem struct {
	ID       string            `json:"id"`
	Title    string            `json:"title"`
	Text     string            `json:"text"`
	Metadata map[string]string `json:"metadata"`
}

// Details maps a canonical field name to a string, or to a []string when the
// property was bound more than once.
type Details map[string]any

type Ref struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type UnitMember struct {
	Unit string `json:"unit"`
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Clothes struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func labeled(label, value string) string {
	if value == "" {
		return ""
	}
	return label + value
}

func joinSnippet(parts ...string) string {
	kept := parts[:0]
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, snippetSeparator)
}

// SearchEntities builds one summary per row of a search_entities result.
func SearchEntities(rows []graph.Binding) []Summary {
	out := make([]Summary, 0, len(rows))
	for _, b := range rows {
		out = append(out, Summary{
			ID:    b.Value("s"),
			Title: firstNonEmpty(b.Value("label"), b.Value("sname"), NoName),
			Snippet: joinSnippet(
				b.Value("label"),
				b.Value("sname"),
				b.Value("kana"),
				b.Value("brand"),
				labeled("身長:", b.Value("height")),
				labeled("体重:", b.Value("weight")),
				labeled("誕生日:", b.Value("birthDate")),
			),
		})
	}
	return out
}

func SearchClothes(rows []graph.Binding) []Summary {
	out := make([]Summary, 0, len(rows))
	for _, b := range rows {
		out = append(out, Summary{
			ID:    b.Value("s"),
			Title: firstNonEmpty(b.Value("label"), NoName),
			Snippet: joinSnippet(
				b.Value("description"),
				labeled("所有者: ", lastSegment(b.Value("whose"))),
			),
		})
	}
	return out
}

func lastSegment(iri string) string {
	if i := strings.LastIndex(iri, "/"); i >= 0 {
		return iri[i+1:]
	}
	return iri
}

// Entity wraps the first row of a get_entity result. An empty result still
// yields a single context item.
func Entity(id string, rows []graph.Binding) EntityContext {
	var row graph.Binding
	if len(rows) > 0 {
		row = rows[0]
	}

	metadata := make(map[string]string, len(row))
	for name, term := range row {
		metadata[name] = term.Value
	}

	return EntityContext{Context: []ContextItem{{
		ID:       id,
		Title:    firstNonEmpty(row.Value("label"), NoLabel),
		Text:     row.Value("label") + " (" + row.Value("nameKana") + ")",
		Metadata: metadata,
	}}}
}

func Relations(rows []graph.Binding) []Ref {
	out := make([]Ref, 0, len(rows))
	for _, b := range rows {
		out = append(out, Ref{
			ID:   b.Value("unit"),
			Name: firstNonEmpty(b.Value("unitLabel"), NoLabel),
		})
	}
	return out
}

func UnitMembers(rows []graph.Binding) []Ref {
	out := make([]Ref, 0, len(rows))
	for _, b := range rows {
		out = append(out, Ref{ID: b.Value("member"), Name: b.Value("memberLabel")})
	}
	return out
}

func UnitMembersByName(rows []graph.Binding) []UnitMember {
	out := make([]UnitMember, 0, len(rows))
	for _, b := range rows {
		out = append(out, UnitMember{
			Unit: b.Value("unitLabel"),
			ID:   b.Value("member"),
			Name: b.Value("memberLabel"),
		})
	}
	return out
}

func IdolClothes(rows []graph.Binding) []Clothes {
	out := make([]Clothes, 0, len(rows))
	for _, b := range rows {
		out = append(out, Clothes{
			ID:          b.Value("s"),
			Name:        firstNonEmpty(b.Value("label"), NoName),
			Description: b.Value("description"),
		})
	}
	return out
}
