package returns

import (
	"errors"
	"fmt"
)

var (
	ErrValidation         = errors.New("validation error")
	ErrNotFound           = errors.New("not found")
	ErrNotCustomer        = errors.New("contractor must be a customer")
	ErrInvalidDifferences = errors.New("differences are not valid")
)

// ValidationError is returned by BuildRequest for any malformed input.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

func fieldRequired(field string) error {
	return &ValidationError{Field: field, Message: field + " field is required"}
}

func notPositiveInt(field string) error {
	return &ValidationError{Field: field, Message: field + " must be a positive integer"}
}

func notString(field string) error {
	return &ValidationError{Field: field, Message: field + " must be a string"}
}

// DomainError is a business-rule violation found after the input was accepted.
type DomainError struct {
	Op      string
	Kind    error
	Message string
	Err     error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Message)
}

func (e *DomainError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return e.Kind
}

func (e *DomainError) Is(target error) bool {
	if e.Kind != nil && errors.Is(e.Kind, target) {
		return true
	}
	return e.Err != nil && errors.Is(e.Err, target)
}

func NewDomainError(op string, kind error, msg string) *DomainError {
	return &DomainError{Op: op, Kind: kind, Message: msg}
}
