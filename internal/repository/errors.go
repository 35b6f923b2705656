package repository

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a requested entity doesn't exist.
	ErrNotFound = errors.New("not found")
)

// DataAccessError wraps a failed repository fetch. Calculators propagate it
// as-is with no partial results and no retries; retry policy belongs to the
// store or transport underneath.
type DataAccessError struct {
	Op  string
	Err error
}

func (e *DataAccessError) Error() string {
	return fmt.Sprintf("data access: %s: %v", e.Op, e.Err)
}

func (e *DataAccessError) Unwrap() error {
	return e.Err
}

// NewDataAccessError wraps err with the name of the failed operation.
func NewDataAccessError(op string, err error) error {
	return &DataAccessError{Op: op, Err: err}
}

// IsDataAccess reports whether err is (or wraps) a DataAccessError.
func IsDataAccess(err error) bool {
	var dae *DataAccessError
	return errors.As(err, &dae)
}
