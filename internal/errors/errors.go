package errors

import (
	"errors"
	"fmt"
)

// Common error types for the download portal
var (
	// Configuration errors
	ErrConfiguration = errors.New("missing configuration")

	// Login flow errors
	ErrInvalidState = errors.New("invalid state")
	ErrUpstream     = errors.New("upstream provider error")

	// Access errors
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrForbidden       = errors.New("forbidden")

	// Token errors
	ErrInvalidToken = errors.New("invalid token")

	// Session errors
	ErrSessionNotFound = errors.New("session not found")

	// General errors
	ErrNotFound = errors.New("not found")
	ErrInternal = errors.New("internal error")
)

// Wrapf wraps an error with context using fmt.Errorf
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}

// Is reports whether any error in err's chain matches target
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
