package graph

import (
	"errors"
	"fmt"
)

// TransportError reports that the request never produced an HTTP response.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("sparql transport: %v", e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// UpstreamError reports a non-2xx response from the endpoint.
type UpstreamError struct {
	StatusCode int
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("SPARQL error %d", e.StatusCode)
}

func IsTransport(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}

// StatusCode returns the upstream status carried by err, or 0.
func StatusCode(err error) int {
	var ue *UpstreamError
	if errors.As(err, &ue) {
		return ue.StatusCode
	}
	return 0
}
