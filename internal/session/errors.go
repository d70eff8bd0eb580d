package session

import (
	"errors"
	"fmt"
)

// Operations reported in UpstreamError.
const (
	OpListSecrets    = "list secrets"
	OpGetSecretValue = "get secret value"
)

// ErrMalformedListing is wrapped when the store returns summaries without an id.
var ErrMalformedListing = errors.New("malformed secret listing")

// UpstreamError wraps a failed or malformed secret store call. The store's own
// error (provider.TransportError, provider.NotFoundError) stays reachable via errors.As.
type UpstreamError struct {
	Op  string
	ID  string
	Err error
}

func (e *UpstreamError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("failed to %s for %s: %v", e.Op, e.ID, e.Err)
	}
	return fmt.Sprintf("failed to %s: %v", e.Op, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// UnknownFieldError is returned when a key is not part of the session's value.
type UnknownFieldError struct {
	ID  string
	Key string
}

func (e *UnknownFieldError) Error() string {
	return fmt.Sprintf("secret %s has no field %q", e.ID, e.Key)
}

// IsUnknownField reports whether err wraps an UnknownFieldError
func IsUnknownField(err error) bool {
	var uf *UnknownFieldError
	return errors.As(err, &uf)
}
