package carts

import (
	"errors"
	"fmt"
)

// ErrUpstreamUnavailable is returned without contacting the demo API while
// the circuit breaker is open.
var ErrUpstreamUnavailable = errors.New("carts upstream unavailable")

// NetworkError reports a transport failure, a non-2xx response or an
// unreadable body from the demo API.
type NetworkError struct {
	Op         string
	StatusCode int
	Err        error
}

func (e *NetworkError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: upstream returned status %d", e.Op, e.StatusCode)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }
