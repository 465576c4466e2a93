package domain

import (
	"errors"
	"fmt"
)

// ErrEmptyInvoice means no submittable line items remain after blank
// rows are dropped. It is raised before any network call.
var ErrEmptyInvoice = errors.New("invoice has no line items")

// ValidationError reports a client-side validation failure. Requests
// that fail validation are never sent to the backend.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// invalid builds a ValidationError for a field
func invalid(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}
