package domain

import (
	"errors"
	"fmt"
)

var (
	ErrCatalogUnavailable = errors.New("catalog unavailable")
	ErrProductNotFound    = errors.New("product not found")
	ErrUnknownEmailType   = errors.New("unknown email type")
	ErrEmptyTemplate      = errors.New("resolved template has empty subject or body")
)

// ValidationError marks missing or empty required input. Handlers map it to 400.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("missing required field: %s", e.Field)
}

// TransportError wraps a mail delivery failure. The underlying message is safe
// to expose in the error response body.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("mail delivery failed: %v", e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
