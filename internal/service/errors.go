package service

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Error kinds surfaced to the handlers. Validation failures are raised before
// any write is attempted; not-found aborts the whole transactional unit.
var (
	ErrNotFound  = errors.New("document not found")
	ErrForbidden = errors.New("operation not allowed for this role")
)

// ValidationError carries a user-facing message for a rejected input.
type ValidationError string

func (e ValidationError) Error() string { return string(e) }

func validationf(format string, args ...interface{}) error {
	return ValidationError(fmt.Sprintf(format, args...))
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var v ValidationError
	return errors.As(err, &v)
}

// Actor identifies the authenticated user invoking a workflow operation.
// Roles are re-checked here at the service boundary, not only in the HTTP
// middleware.
type Actor struct {
	ID   uuid.UUID
	Role string
}

func (a Actor) require(role string) error {
	if a.Role != role {
		return ErrForbidden
	}
	return nil
}
