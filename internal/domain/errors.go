package domain

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownField     = errors.New("unknown listing field")
	ErrUnknownCategory  = errors.New("unknown category")
	ErrUnknownStatus    = errors.New("unknown order status")
	ErrInvalidPrice     = errors.New("invalid price")
	ErrSubmitInProgress = errors.New("listing submission already in progress")
	ErrRejectedStatus   = errors.New("marketplace backend rejected the request")
	ErrFormClosed       = errors.New("listing form is closed")
)

// ValidationError is a local check that blocked an action before any network call.
type ValidationError struct {
	Field   ListingField
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed for %s: %s", e.Field, e.Message)
}

// APIError is a backend reply with success:false.
type APIError struct {
	Op      string
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s: backend reported failure", e.Op)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Message)
}

// TransportError is a failure to reach the backend or to read its reply.
// Status is set when the backend answered with a non-2xx code.
type TransportError struct {
	Op     string
	Status int
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }
