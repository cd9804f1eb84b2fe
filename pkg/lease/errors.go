package lease

import (
	"errors"
	"fmt"

	"github.com/iwvelando/lease-amortization/pkg/constants"
)

var (
	// ErrInvalidTerm indicates a lease term outside 1..MaxTermMonths months.
	ErrInvalidTerm = fmt.Errorf("lease term must be between 1 and %d months", constants.MaxTermMonths)

	// ErrInvalidRent indicates a negative rent.
	ErrInvalidRent = errors.New("monthly rent must not be negative")

	// ErrInvalidDirectCosts indicates negative initial direct costs.
	ErrInvalidDirectCosts = errors.New("initial direct costs must not be negative")

	// ErrNonNumericInput indicates a value that could not be read as a finite number.
	ErrNonNumericInput = errors.New("value is not a finite number")

	// ErrNonFiniteResult indicates the calculation overflowed or divided by zero.
	ErrNonFiniteResult = errors.New("calculation produced a non-finite result")
)

// ValidationError ties a rejected input to the field it came from.
type ValidationError struct {
	Field string
	Value string
	Err   error
}

func (e *ValidationError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("%s: %v", e.Field, e.Err)
	}
	return fmt.Sprintf("%s %q: %v", e.Field, e.Value, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// IsValidationError reports whether err was caused by rejected input rather
// than by the calculation itself.
func IsValidationError(err error) bool {
	var vErr *ValidationError
	return errors.As(err, &vErr)
}

func invalid(field string, value any, err error) error {
	return &ValidationError{Field: field, Value: fmt.Sprint(value), Err: err}
}
