// Package apperr defines the error kinds shared across services,
// repositories and handlers. Callers discriminate kinds with errors.As
// so a not-found is never conflated with a denied access.
package apperr

import "fmt"

type (
	// UserAlreadyExistsError is returned when registering an email that
	// is already taken.
	UserAlreadyExistsError struct {
		Email string
	}

	// UserNotFoundError is returned when no user exists for an email.
	UserNotFoundError struct {
		Email string
	}

	// IncorrectPasswordError is returned when login credentials do not
	// verify against the stored hash.
	IncorrectPasswordError struct {
		Email string
	}

	// LinkNotFoundError is returned when no link exists for an id.
	LinkNotFoundError struct {
		ID string
	}

	// AuthorizationError is returned when a caller is denied access to
	// a resource that exists.
	AuthorizationError struct {
		Msg string
	}

	// ValidationError is returned by the request boundary for malformed
	// input. The core services never produce it.
	ValidationError struct {
		Msg string
	}

	// DatabaseError wraps any repository failure.
	DatabaseError struct {
		Err error
	}

	// ServerError wraps internal faults: hashing, token signing and
	// analysis-collaborator failures.
	ServerError struct {
		Op  string
		Err error
	}
)

func (e UserAlreadyExistsError) Error() string {
	return fmt.Sprintf("user %s already exists", e.Email)
}

func (e UserNotFoundError) Error() string {
	return fmt.Sprintf("user %s not found", e.Email)
}

func (e IncorrectPasswordError) Error() string {
	return fmt.Sprintf("incorrect password for user %s", e.Email)
}

func (e LinkNotFoundError) Error() string {
	return fmt.Sprintf("link %s not found", e.ID)
}

func (e AuthorizationError) Error() string {
	if e.Msg == "" {
		return "an authorization error occurred"
	}
	return e.Msg
}

func (e ValidationError) Error() string {
	if e.Msg == "" {
		return "invalid request"
	}
	return e.Msg
}

func (e DatabaseError) Error() string {
	return fmt.Sprintf("database error: %v", e.Err)
}

func (e DatabaseError) Unwrap() error { return e.Err }

func (e ServerError) Error() string {
	return fmt.Sprintf("server error: %s: %v", e.Op, e.Err)
}

func (e ServerError) Unwrap() error { return e.Err }
