package repository

import (
	"fmt"

	"gorm.io/gorm"
)

// ErrNotFound is returned when a referenced entity does not exist.
// It aliases the GORM sentinel so callers can use errors.Is either way.
var ErrNotFound = gorm.ErrRecordNotFound

// ValidationError reports malformed or missing required input to a
// mutating operation. The operation is aborted and nothing is written.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return e.Message
}
