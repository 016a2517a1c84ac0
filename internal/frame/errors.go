// Package frame
package frame

import (
	"errors"
	"fmt"
)

var (
	ErrMissingColumn = errors.New("missing column")
	ErrColumnExists  = errors.New("column already exists")
	ErrRowMismatch   = errors.New("column length does not match table rows")
	ErrBadStart      = errors.New("column start offset out of range")
	ErrUnordered     = errors.New("index must be strictly increasing")
	ErrKindMismatch  = errors.New("column kind mismatch")
	ErrEmptyName     = errors.New("column name cannot be empty")
)

// MissingColumnError reports a column name that is not present in the table.
type MissingColumnError struct {
	Name string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("missing column %q", e.Name)
}

// Is lets errors.Is(err, ErrMissingColumn) match.
func (e *MissingColumnError) Is(target error) bool {
	return target == ErrMissingColumn
}
