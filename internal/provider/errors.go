package provider

import (
	"errors"
	"fmt"
)

// TransportError reports a failed call to the secret store: process, network or auth.
type TransportError struct {
	Provider string
	Op       string // "list-secrets", "get-secret-value"
	ID       string // empty for list operations
	Err      error
}

func (e *TransportError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("%s %s failed for %s: %v", e.Provider, e.Op, e.ID, e.Err)
	}
	return fmt.Sprintf("%s %s failed: %v", e.Provider, e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// NotFoundError reports an id the store does not know.
type NotFoundError struct {
	Provider string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("secret not found in %s: %s", e.Provider, e.ID)
}

// IsNotFound reports whether err wraps a NotFoundError
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// IsTransport reports whether err wraps a TransportError
func IsTransport(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}
