// Package util provides utility functions and types shared across routemux.
//
// # Error Conventions
//
// This project follows a standardized error pattern across all packages:
//
//   - Sentinel errors (errors.New) for well-known, stable conditions
//     that callers check with errors.Is(). Example: ErrDuplicateRoute.
//   - Structured error types for context-rich errors that carry
//     additional fields (e.g., ConfigError, DuplicateRouteError). Each
//     type implements Error(), Unwrap() (if wrapping), and Is().
//   - fmt.Errorf with %w for ad-hoc wrapping that adds context to an
//     existing error without introducing a new type.
//
// All custom error types must implement:
//
//	Error() string           – human-readable message
//	Unwrap() error           – if the type wraps another error
//	Is(target error) bool    – for errors.Is() compatibility
package util

import (
	"errors"
	"fmt"
)

// Common sentinel errors.
var (
	ErrNotFound         = errors.New("not found")
	ErrInvalidInput     = errors.New("invalid input")
	ErrDuplicateRoute   = errors.New("duplicate route")
	ErrConflictingDispo = errors.New("conflicting content disposition")
	ErrConfigInvalid    = errors.New("invalid configuration")
)

// ConfigError represents a configuration-related error.
type ConfigError struct {
	Field   string
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("config error at %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("config error: %s", e.Message)
}

// Unwrap returns the underlying error.
func (e *ConfigError) Unwrap() error {
	return e.Cause
}

// Is checks if the error matches the target.
func (e *ConfigError) Is(target error) bool {
	if target == ErrConfigInvalid {
		return true
	}
	_, ok := target.(*ConfigError)
	return ok || errors.Is(e.Cause, target)
}

// NewConfigError creates a new ConfigError.
func NewConfigError(field, message string) *ConfigError {
	return &ConfigError{Field: field, Message: message}
}

// NewConfigErrorWithCause creates a new ConfigError with a cause.
func NewConfigErrorWithCause(field, message string, cause error) *ConfigError {
	return &ConfigError{Field: field, Message: message, Cause: cause}
}

// ValidationError represents a validation failure.
type ValidationError struct {
	Fields  map[string]string
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return fmt.Sprintf("validation error: %s", e.Message)
	}
	return fmt.Sprintf("validation error: %s (fields: %v)", e.Message, e.Fields)
}

// Is checks if the error matches the target.
func (e *ValidationError) Is(target error) bool {
	if target == ErrConfigInvalid {
		return true
	}
	_, ok := target.(*ValidationError)
	return ok
}

// NewValidationError creates a new ValidationError.
func NewValidationError(message string) *ValidationError {
	return &ValidationError{Message: message, Fields: make(map[string]string)}
}

// AddField adds a field error.
func (e *ValidationError) AddField(field, message string) {
	if e.Fields == nil {
		e.Fields = make(map[string]string)
	}
	e.Fields[field] = message
}

// DuplicateRouteError reports a (path, queryKey) collision at registration.
type DuplicateRouteError struct {
	Path     string
	QueryKey string
}

// Error implements the error interface.
func (e *DuplicateRouteError) Error() string {
	if e.QueryKey == "" {
		return fmt.Sprintf("duplicate route: path %q already registered", e.Path)
	}
	return fmt.Sprintf("duplicate route: path %q with key %q already registered", e.Path, e.QueryKey)
}

// Is checks if the error matches the target.
func (e *DuplicateRouteError) Is(target error) bool {
	if target == ErrDuplicateRoute {
		return true
	}
	_, ok := target.(*DuplicateRouteError)
	return ok
}

// NewDuplicateRouteError creates a new DuplicateRouteError.
func NewDuplicateRouteError(path, queryKey string) *DuplicateRouteError {
	return &DuplicateRouteError{Path: path, QueryKey: queryKey}
}

// ConflictingDispositionError reports that both a filename and an explicit
// Content-Disposition were configured for the same route.
type ConflictingDispositionError struct {
	Path     string
	QueryKey string
}

// Error implements the error interface.
func (e *ConflictingDispositionError) Error() string {
	return fmt.Sprintf("route %q: filename and content_disposition are mutually exclusive", e.Path)
}

// Is checks if the error matches the target.
func (e *ConflictingDispositionError) Is(target error) bool {
	if target == ErrConflictingDispo {
		return true
	}
	_, ok := target.(*ConflictingDispositionError)
	return ok
}

// NewConflictingDispositionError creates a new ConflictingDispositionError.
func NewConflictingDispositionError(path, queryKey string) *ConflictingDispositionError {
	return &ConflictingDispositionError{Path: path, QueryKey: queryKey}
}

// WrapError wraps an error with additional context.
func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}
