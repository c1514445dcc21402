// Package errors provides custom error types for the bizdir tooling.
// These errors enable programmatic error checking at the CLI boundary
// and keep per-resource failures distinguishable from configuration
// or ingestion problems.
package errors

import (
	"errors"
	"fmt"
)

// New returns an error that formats as the given text.
// It's an alias for the standard library errors.New for convenience.
var New = errors.New

// Is reports whether any error in err's tree matches target.
var Is = errors.Is

// As finds the first error in err's tree that matches target.
var As = errors.As

// Common sentinel errors for the bizdir system.
var (
	// ErrNotFound indicates that a requested resource was not found
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates that a resource already exists
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates that provided input was invalid
	ErrInvalidInput = errors.New("invalid input")

	// ErrNoSourceRecords indicates that ingestion produced zero usable rows
	ErrNoSourceRecords = errors.New("no source records found")

	// ErrEmptyTaxonomy indicates the store returned no taxonomy entries
	ErrEmptyTaxonomy = errors.New("taxonomy snapshot is empty")
)

// NotFoundError represents an error when a resource is not found.
type NotFoundError struct {
	Resource string
	ID       string
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
}

// Is implements errors.Is support.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// NewNotFoundError creates a new NotFoundError.
func NewNotFoundError(resource, id string) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}

// ConfigError represents a configuration error.
type ConfigError struct {
	Component string
	Message   string
	Err       error
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("config error in %s: %s: %v", e.Component, e.Message, e.Err)
	}
	return fmt.Sprintf("config error in %s: %s", e.Component, e.Message)
}

// Unwrap implements errors.Unwrap.
func (e *ConfigError) Unwrap() error {
	return e.Err
}

// NewConfigError creates a new ConfigError.
func NewConfigError(component, message string, err error) *ConfigError {
	return &ConfigError{Component: component, Message: message, Err: err}
}

// IngestError represents a failure reading a source bundle or sheet.
type IngestError struct {
	Source  string
	Message string
	Err     error
}

// Error implements the error interface.
func (e *IngestError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("ingest error in %s: %s: %v", e.Source, e.Message, e.Err)
	}
	return fmt.Sprintf("ingest error in %s: %s", e.Source, e.Message)
}

// Unwrap implements errors.Unwrap.
func (e *IngestError) Unwrap() error {
	return e.Err
}

// NewIngestError creates a new IngestError.
func NewIngestError(source, message string, err error) *IngestError {
	return &IngestError{Source: source, Message: message, Err: err}
}

// StoreError represents a failure talking to the canonical store.
type StoreError struct {
	Operation string
	Err       error
}

// Error implements the error interface.
func (e *StoreError) Error() string {
	return fmt.Sprintf("store error during %s: %v", e.Operation, e.Err)
}

// Unwrap implements errors.Unwrap.
func (e *StoreError) Unwrap() error {
	return e.Err
}

// NewStoreError creates a new StoreError.
func NewStoreError(operation string, err error) *StoreError {
	return &StoreError{Operation: operation, Err: err}
}

// WrapResource wraps an error with resource context for better error messages.
func WrapResource(err error, resource, id string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s %s: %w", resource, id, err)
}
