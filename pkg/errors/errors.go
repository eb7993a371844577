package errors

import (
	"fmt"
)

// ErrNotFound is returned when a resource is not found
type ErrNotFound struct {
	Resource string
	ID       string
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// ErrValidation is returned when validation fails
type ErrValidation struct {
	Message string
	Fields  map[string]string
}

func (e *ErrValidation) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "validation failed"
}

// ErrProvider is returned when a payment-provider call fails. Code and Message
// are normalized at the adapter boundary; provider SDK types never cross it.
type ErrProvider struct {
	Code    string
	Message string
}

func (e *ErrProvider) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("payment provider error (%s): %s", e.Code, e.Message)
	}
	return fmt.Sprintf("payment provider error: %s", e.Message)
}
