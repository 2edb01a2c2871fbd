package amortization

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidPrincipal = errors.New("principal must be greater than zero")
	ErrInvalidRate      = errors.New("annual rate must be greater than zero")
	ErrInvalidTenure    = errors.New("tenure must be at least one year")
	ErrInvalidMode      = errors.New("unknown interest mode")
	ErrPaymentNotFinite = errors.New("installment is too large to represent")
)

// ValidationError names the loan parameter that was rejected.
type ValidationError struct {
	Field string
	Value any
	Err   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s (%v): %v", e.Field, e.Value, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// IsValidation reports whether err was caused by rejected loan input.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
