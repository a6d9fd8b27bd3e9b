package application

import "errors"

var (
	// ErrEmailTaken is returned when registration targets an email that
	// already has an account, whether caught by the fast-path lookup or
	// by the store's unique constraint.
	ErrEmailTaken = errors.New("email already in use")

	// ErrInvalidCredentials covers both an unknown email and a wrong
	// password so login failures never reveal whether an account exists.
	ErrInvalidCredentials = errors.New("invalid credentials")

	ErrAccountNotFound = errors.New("account not found")

	// ErrInvalidVerifyToken is returned for a verification token that is
	// unknown, expired, or already consumed.
	ErrInvalidVerifyToken = errors.New("invalid or expired token")
)

// ValidationError rejects malformed registration input with the fixed
// user-facing message for the rule that failed.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func validationErr(msg string) error { return &ValidationError{Message: msg} }
