package engine

import (
	"errors"
	"fmt"

	"github.com/YutaGoto/imasparql-mcp-server/internal/graph"
)

var ErrUnknownIntent = errors.New("unsupported method")

// ValidationError names a missing or malformed parameter. It is returned
// before any query is sent.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Reason == "" {
		return "missing " + e.Field
	}
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

func outcome(err error) string {
	var upstream *graph.UpstreamError
	switch {
	case err == nil:
		return "ok"
	case IsValidation(err):
		return "invalid"
	case graph.IsTransport(err):
		return "transport_error"
	case errors.As(err, &upstream):
		return "upstream_error"
	default:
		return "error"
	}
}
