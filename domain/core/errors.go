package core

import (
	"errors"
	"fmt"
	"strings"
)

// Domain errors - centralized error definitions
var (
	// Data validity errors: these abort an imputation run as a whole
	ErrDataValidity     = errors.New("data validity failure")
	ErrEmptyTable       = fmt.Errorf("%w: table has no rows or no columns", ErrDataValidity)
	ErrDuplicateColumn  = fmt.Errorf("%w: duplicate column name", ErrDataValidity)
	ErrNonNumericColumn = fmt.Errorf("%w: continuous column holds non-numeric values", ErrDataValidity)
)

// Error constructors with context
func NewDuplicateColumnError(name string) error {
	return fmt.Errorf("%w: %q", ErrDuplicateColumn, name)
}

func NewNonNumericColumnError(names []string) error {
	return fmt.Errorf("%w: %s", ErrNonNumericColumn, strings.Join(names, ", "))
}

// IsDataValidityError reports whether err aborts the whole run rather than
// degrading to a per-column fallback.
func IsDataValidityError(err error) bool {
	return errors.Is(err, ErrDataValidity)
}
