package models

import "fmt"

// ValidationError marks a request missing required fields. Mapped to 400.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// AuthError carries the directory failure reason shown to the user.
// Mapped to 401.
type AuthError struct {
	Reason string
	Err    error
}

func (e *AuthError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Reason, e.Err)
	}
	return e.Reason
}

func (e *AuthError) Unwrap() error {
	return e.Err
}

// PersistenceError wraps a failed storage statement. Mapped to 500; no
// partial-state cleanup is attempted beyond the transaction rollback.
type PersistenceError struct {
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence failure: %v", e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// NotificationError wraps a failed mail dispatch. The order is already
// durable when it occurs, so callers downgrade it to a success response
// with a degraded message instead of surfacing it.
type NotificationError struct {
	Err error
}

func (e *NotificationError) Error() string {
	return fmt.Sprintf("notification failure: %v", e.Err)
}

func (e *NotificationError) Unwrap() error {
	return e.Err
}

// ConfigurationError marks a catalog file that does not match the
// expected layout, e.g. a missing header column.
type ConfigurationError struct {
	Message string
}

func (e *ConfigurationError) Error() string {
	return e.Message
}
