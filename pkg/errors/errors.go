// Package errors provides custom error types for roster.
// These errors enable programmatic error checking and keep fatal failures
// (a registry that cannot be decoded, a missing argument) distinguishable
// from the recoverable conditions that are only reported.
package errors

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
)

// New returns an error that formats as the given text.
// It's an alias for the standard library errors.New for convenience.
var New = errors.New

// Is and As forward to the standard library so callers need one import.
var (
	Is = errors.Is
	As = errors.As
)

// Common sentinel errors
var (
	// ErrNotFound indicates that a requested resource was not found
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates that provided input was invalid
	ErrInvalidInput = errors.New("invalid input")

	// ErrDecode indicates that a document could not be decoded by any strategy
	ErrDecode = errors.New("decode failed")
)

// NotFoundError represents an error when a resource is not found.
// Err keeps the underlying cause, usually fs.ErrNotExist.
type NotFoundError struct {
	Resource string
	ID       string
	Err      error
}

// Error implements the error interface
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
}

// Is implements errors.Is support
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// Unwrap implements errors.Unwrap
func (e *NotFoundError) Unwrap() error {
	return e.Err
}

// NewNotFoundError creates a new NotFoundError
func NewNotFoundError(resource, id string, err error) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id, Err: err}
}

// ValidationError represents a validation failure
type ValidationError struct {
	Field   string
	Value   any
	Message string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for field %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

// Is implements errors.Is support
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewValidationError creates a new ValidationError
func NewValidationError(field string, value any, message string) *ValidationError {
	return &ValidationError{Field: field, Value: value, Message: message}
}

// ConfigError represents a configuration error
type ConfigError struct {
	Component string
	Message   string
	Err       error
}

// Error implements the error interface
func (e *ConfigError) Error() string {
	if e.Component != "" {
		return fmt.Sprintf("configuration error in %s: %s", e.Component, e.Message)
	}
	return fmt.Sprintf("configuration error: %s", e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ConfigError) Unwrap() error {
	return e.Err
}

// NewConfigError creates a new ConfigError
func NewConfigError(component, message string, err error) *ConfigError {
	return &ConfigError{
		Component: component,
		Message:   message,
		Err:       err,
	}
}

// ParseError represents an error when parsing data formats
type ParseError struct {
	Format  string // "json", "yaml", "toml"
	File    string
	Message string
	Err     error
}

// Error implements the error interface
func (e *ParseError) Error() string {
	if e.File != "" {
		return fmt.Sprintf("parse error in %s file %s: %s", e.Format, e.File, e.Message)
	}
	return fmt.Sprintf("%s parse error: %s", e.Format, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ParseError) Unwrap() error {
	return e.Err
}

// NewParseError creates a new ParseError
func NewParseError(format, file string, message string, err error) *ParseError {
	return &ParseError{
		Format:  format,
		File:    file,
		Message: message,
		Err:     err,
	}
}

// DecodeError is returned when every decode strategy rejected a document.
// Attempts holds one ParseError per strategy in the order they were tried.
type DecodeError struct {
	File     string
	Attempts []*ParseError
}

// Error implements the error interface
func (e *DecodeError) Error() string {
	names := make([]string, 0, len(e.Attempts))
	for _, a := range e.Attempts {
		names = append(names, fmt.Sprintf("%s: %s", a.Format, a.Message))
	}
	target := "document"
	if e.File != "" {
		target = e.File
	}
	return fmt.Sprintf("unable to decode %s with any strategy (%s)", target, strings.Join(names, "; "))
}

// Strategies returns the names of the attempted strategies in order.
func (e *DecodeError) Strategies() []string {
	names := make([]string, 0, len(e.Attempts))
	for _, a := range e.Attempts {
		names = append(names, a.Format)
	}
	return names
}

// Is implements errors.Is support
func (e *DecodeError) Is(target error) bool {
	return target == ErrDecode
}

// Unwrap exposes every attempt to errors.Is and errors.As
func (e *DecodeError) Unwrap() []error {
	errs := make([]error, 0, len(e.Attempts))
	for _, a := range e.Attempts {
		errs = append(errs, a)
	}
	return errs
}

// IOError represents an error during I/O operations
type IOError struct {
	Operation string // "read", "write", "rename", "mkdir", "walk", "lock"
	Path      string
	Message   string
	Err       error
}

// Error implements the error interface
func (e *IOError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("IO error during %s of %s: %s", e.Operation, e.Path, e.Message)
	}
	return fmt.Sprintf("IO error during %s: %s", e.Operation, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *IOError) Unwrap() error {
	return e.Err
}

// NewIOError creates a new IOError
func NewIOError(operation, path string, err error) *IOError {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &IOError{
		Operation: operation,
		Path:      path,
		Message:   message,
		Err:       err,
	}
}

// Helper functions for error checking

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsNotExist checks if an error reports a missing file
func IsNotExist(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}

// IsDecodeError checks if an error is a fatal decode failure
func IsDecodeError(err error) bool {
	return errors.Is(err, ErrDecode)
}

// Helper wrapping functions for common patterns

// WrapValidation wraps an error as a ValidationError
func WrapValidation(field string, err error) error {
	if err == nil {
		return nil
	}
	return &ValidationError{Field: field, Message: err.Error()}
}

// WrapIO wraps an error as an IOError
func WrapIO(operation, path string, err error) error {
	if err == nil {
		return nil
	}
	return NewIOError(operation, path, err)
}

// WrapParse wraps an error as a ParseError
func WrapParse(format, file string, err error) error {
	if err == nil {
		return nil
	}
	return NewParseError(format, file, err.Error(), err)
}
