package service

import (
	"errors"
	"fmt"
)

// Domain errors. Handlers map them to HTTP statuses with errors.Is;
// anything else is an internal failure.
var (
	ErrUnauthenticated    = errors.New("authentication required")
	ErrInvalidToken       = errors.New("invalid token")
	ErrForbidden          = errors.New("access denied")
	ErrNotFound           = errors.New("not found")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInvalidResetCode   = errors.New("invalid or expired code")
	ErrValidation         = errors.New("validation failed")
)

// validationError wraps ErrValidation with a caller-facing reason.
func validationError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}
