package sparql

import (
	"fmt"
	"math"
	"strings"
)

const (
	DefaultLimit = 50
	MaxLimit     = 1000
)

// Page resolves optional pagination inputs to bounded integers. Fractional
// values are truncated toward zero; NaN is ignored.
func Page(limit, offset *float64) (int, int) {
	l, o := DefaultLimit, 0
	if limit != nil && !math.IsNaN(*limit) {
		l = int(min(max(math.Trunc(*limit), 0), MaxLimit))
	}
	if offset != nil && !math.IsNaN(*offset) {
		o = int(min(max(math.Trunc(*offset), 0), math.MaxInt32))
	}
	return l, o
}

func pageClause(limit, offset *float64) string {
	l, o := Page(limit, offset)
	return fmt.Sprintf("LIMIT %d\nOFFSET %d\n", l, o)
}

type sortKey struct {
	variable string
	numeric  bool
}

var sortKeys = map[string]sortKey{
	"name":      {variable: "?label"},
	"height":    {variable: "?height", numeric: true},
	"weight":    {variable: "?weight", numeric: true},
	"birthDate": {variable: "?birthDate"},
}

// orderBy returns an ORDER BY clause for an allow-listed key, or "" for any
// other key.
func orderBy(sortBy, sortOrder string) string {
	key, ok := sortKeys[sortBy]
	if !ok {
		return ""
	}
	dir := "ASC"
	if strings.EqualFold(strings.TrimSpace(sortOrder), "desc") {
		dir = "DESC"
	}
	expr := key.variable
	if key.numeric {
		expr = "xsd:integer(" + expr + ")"
	}
	return fmt.Sprintf("ORDER BY %s(%s)\n", dir, expr)
}
