package sparql

import (
	"fmt"
	"net/url"
	"strings"
)

var literalEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

// EscapeLiteral prefixes every double quote and backslash with a backslash
// so s can sit inside a double-quoted SPARQL string.
func EscapeLiteral(s string) string {
	return literalEscaper.Replace(s)
}

// Literal renders s as a double-quoted SPARQL string literal.
func Literal(s string) string {
	return `"` + EscapeLiteral(s) + `"`
}

// IRI renders an already checked identifier as an IRI reference.
func IRI(s string) string {
	return "<" + s + ">"
}

const iriForbidden = "<>\"{}|^`\\"

// CheckIRI reports whether s is safe to embed with IRI. It must be an
// absolute IRI free of characters an IRIREF cannot hold and, when allowed is
// non-empty, start with one of the allowed prefixes.
func CheckIRI(s string, allowed []string) error {
	if s == "" {
		return fmt.Errorf("empty iri")
	}
	for _, r := range s {
		if r <= 0x20 || r == 0x7f || strings.ContainsRune(iriForbidden, r) {
			return fmt.Errorf("illegal character %q", r)
		}
	}
	u, err := url.Parse(s)
	if err != nil || !u.IsAbs() {
		return fmt.Errorf("not an absolute iri")
	}
	if len(allowed) == 0 {
		return nil
	}
	for _, p := range allowed {
		if strings.HasPrefix(s, p) && len(s) > len(p) {
			return nil
		}
	}
	return fmt.Errorf("must start with %s", strings.Join(allowed, " or "))
}
