// Package errs holds the typed errors shared by the storage gateway, the
// services and the HTTP layer. Each type matches its sentinel through
// errors.Is so callers can branch without type assertions.
package errs

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound          = errors.New("not found")
	ErrConflict          = errors.New("conflict")
	ErrValidation        = errors.New("validation failed")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrInvalidField      = errors.New("invalid field")
	ErrDanglingReference = errors.New("dangling reference")
)

// NotFoundError reports a missing entity.
type NotFoundError struct {
	Entity string
	ID     any
}

func (e *NotFoundError) Error() string {
	if e.ID == nil {
		return fmt.Sprintf("%s not found", e.Entity)
	}
	return fmt.Sprintf("%s %v not found", e.Entity, e.ID)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// ConflictError reports a unique constraint hit, e.g. an email already in use.
type ConflictError struct {
	Field string
	Value string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s %q already in use", e.Field, e.Value)
}

func (e *ConflictError) Is(target error) bool { return target == ErrConflict }

type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// UnauthorizedError is returned when the caller is authenticated but not
// allowed to touch the resource.
type UnauthorizedError struct {
	Reason string
}

func (e *UnauthorizedError) Error() string {
	if e.Reason == "" {
		return "not allowed"
	}
	return e.Reason
}

func (e *UnauthorizedError) Is(target error) bool { return target == ErrUnauthorized }

// InvalidFieldError is returned for an orderBy name outside the allow-list.
type InvalidFieldError struct {
	Field string
}

func (e *InvalidFieldError) Error() string {
	return fmt.Sprintf("cannot order by %q", e.Field)
}

func (e *InvalidFieldError) Is(target error) bool { return target == ErrInvalidField }

// DanglingReferenceError marks a row whose foreign key points nowhere.
type DanglingReferenceError struct {
	Entity   string
	ID       int64
	Relation string
}

func (e *DanglingReferenceError) Error() string {
	return fmt.Sprintf("%s %d references a missing %s", e.Entity, e.ID, e.Relation)
}

func (e *DanglingReferenceError) Is(target error) bool { return target == ErrDanglingReference }

func NotFound(entity string, id any) error { return &NotFoundError{Entity: entity, ID: id} }

func Invalid(field, msg string) error { return &ValidationError{Field: field, Message: msg} }

func Forbidden(reason string) error { return &UnauthorizedError{Reason: reason} }
