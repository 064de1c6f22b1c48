/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package errors

import (
	"errors"
	"fmt"
)

// Common sentinel errors
var (
	// ErrNotFound is returned when an entity is not found
	ErrNotFound = errors.New("entity not found")

	// ErrAlreadyExists is returned when attempting to create an entity that already exists
	ErrAlreadyExists = errors.New("entity already exists")

	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = errors.New("invalid input")

	// ErrNoIndexMap is returned when no index map is found for a type
	ErrNoIndexMap = errors.New("no index map found for type")

	// ErrPersistence is returned when the persistence context fails to register an entity
	ErrPersistence = errors.New("persistence failed")

	// ErrUnknownAssociation is returned when a factory does not declare the requested association
	ErrUnknownAssociation = errors.New("unknown association")

	// ErrNotImplemented is returned when a factory is missing a required override
	ErrNotImplemented = errors.New("not implemented")

	// ErrNoSession is returned when an operation needs a persistence context and none was supplied
	ErrNoSession = errors.New("no active session")
)

// NotFoundError represents an error when an entity is not found
type NotFoundError struct {
	Type string
	Key  string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with key %q not found", e.Type, e.Key)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// AlreadyExistsError represents an error when an entity already exists
type AlreadyExistsError struct {
	Type string
	Key  string
}

func (e *AlreadyExistsError) Error() string {
	return fmt.Sprintf("%s with key %q already exists", e.Type, e.Key)
}

func (e *AlreadyExistsError) Is(target error) bool {
	return target == ErrAlreadyExists
}

// ValidationError represents an input validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for field %q: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// PersistenceError is returned when a session cannot register an entity.
// Err carries the backend cause, if any.
type PersistenceError struct {
	Kind string
	Op   string
	Err  error
}

func (e *PersistenceError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s %s: persistence failed", e.Kind, e.Op)
	}
	return fmt.Sprintf("%s %s: persistence failed: %v", e.Kind, e.Op, e.Err)
}

func (e *PersistenceError) Is(target error) bool {
	return target == ErrPersistence
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// UnknownAssociationError represents a lookup of an association the factory does not declare
type UnknownAssociationError struct {
	Kind string
	Name string
}

func (e *UnknownAssociationError) Error() string {
	return fmt.Sprintf("%s has no association named %q", e.Kind, e.Name)
}

func (e *UnknownAssociationError) Is(target error) bool {
	return target == ErrUnknownAssociation
}

// NotImplementedError signals a factory definition that was never specialized
type NotImplementedError struct {
	Kind   string
	Method string
}

func (e *NotImplementedError) Error() string {
	if e.Kind == "" {
		return fmt.Sprintf("%s is not implemented", e.Method)
	}
	return fmt.Sprintf("%s: %s is not implemented", e.Kind, e.Method)
}

func (e *NotImplementedError) Is(target error) bool {
	return target == ErrNotImplemented
}

// Helper functions for creating errors

// NewNotFoundError creates a new NotFoundError
func NewNotFoundError(entityType, key string) error {
	return &NotFoundError{Type: entityType, Key: key}
}

// NewAlreadyExistsError creates a new AlreadyExistsError
func NewAlreadyExistsError(entityType, key string) error {
	return &AlreadyExistsError{Type: entityType, Key: key}
}

// NewValidationError creates a new ValidationError
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// NewPersistenceError creates a new PersistenceError wrapping cause
func NewPersistenceError(kind, op string, cause error) error {
	return &PersistenceError{Kind: kind, Op: op, Err: cause}
}

// NewUnknownAssociationError creates a new UnknownAssociationError
func NewUnknownAssociationError(kind, name string) error {
	return &UnknownAssociationError{Kind: kind, Name: name}
}

// NewNotImplementedError creates a new NotImplementedError
func NewNotImplementedError(kind, method string) error {
	return &NotImplementedError{Kind: kind, Method: method}
}

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsAlreadyExists checks if an error is an already exists error
func IsAlreadyExists(err error) bool {
	return errors.Is(err, ErrAlreadyExists)
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsPersistence checks if an error is a persistence error
func IsPersistence(err error) bool {
	return errors.Is(err, ErrPersistence)
}

// IsUnknownAssociation checks if an error is an unknown association error
func IsUnknownAssociation(err error) bool {
	return errors.Is(err, ErrUnknownAssociation)
}

// IsNotImplemented checks if an error is a not implemented error
func IsNotImplemented(err error) bool {
	return errors.Is(err, ErrNotImplemented)
}
