package homegate

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingSecret means the signer has no HMAC key to sign with.
	ErrMissingSecret = errors.New("homegate: signing secret is not configured")

	// ErrClockUnavailable means the injected clock produced no usable time.
	// Signatures are minute-bucketed, so a broken clock makes every request
	// fail authorization anyway.
	ErrClockUnavailable = errors.New("homegate: clock is unavailable")
)

// InvalidQueryError reports a search request that failed local validation
// before any network traffic happened. Field names the offending field using
// its wire name, for example "query.location.radius".
type InvalidQueryError struct {
	Field  string
	Reason string
}

func (e *InvalidQueryError) Error() string {
	return fmt.Sprintf("homegate: invalid query field %s: %s", e.Field, e.Reason)
}

// TransportError wraps a network-level failure. The request never produced
// an HTTP response.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("homegate: transport failed: %s", e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// HTTPError is a non-2xx response from the backend. Body carries the raw
// payload for diagnosis; it is not interpreted further.
type HTTPError struct {
	StatusCode int
	Body       []byte
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("homegate: server sent http error: %d, %s", e.StatusCode, e.Body)
}

// SchemaError is a 2xx response whose body does not match the known result
// shape. Path points at the offending value, for example
// "results[3].listing.id".
type SchemaError struct {
	Path string
	Err  error
}

func (e *SchemaError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("homegate: unexpected response shape at %s: %s", e.Path, e.Err)
	}
	return fmt.Sprintf("homegate: unexpected response shape at %s", e.Path)
}

func (e *SchemaError) Unwrap() error {
	return e.Err
}
