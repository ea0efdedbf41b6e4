package contract

import (
	"errors"
	"fmt"
)

var (
	ErrUpstream   = errors.New("upstream request failed")
	ErrValidation = errors.New("validation failed")
)

// UpstreamError reports a non-2xx response from the places API. BodySnippet
// is truncated before it reaches the error so logs and messages stay small.
type UpstreamError struct {
	Endpoint    string
	Status      int
	BodySnippet string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream %s returned status %d: %s", e.Endpoint, e.Status, e.BodySnippet)
}

func (e *UpstreamError) Unwrap() error {
	return ErrUpstream
}
