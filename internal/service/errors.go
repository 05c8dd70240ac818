package service

import (
	"errors"
	"fmt"
	"strings"
)

// Error kinds. Handlers map these to HTTP statuses; anything else is a
// store error.
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrForbidden    = errors.New("forbidden")
	ErrValidation   = errors.New("validation error")
	ErrUnauthorized = errors.New("unauthorized")
)

// Error is a classified service error with a client-facing message.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Kind
}

func notFound(format string, args ...interface{}) error {
	return &Error{Kind: ErrNotFound, Message: fmt.Sprintf(format, args...)}
}

func conflict(format string, args ...interface{}) error {
	return &Error{Kind: ErrConflict, Message: fmt.Sprintf(format, args...)}
}

func forbidden(format string, args ...interface{}) error {
	return &Error{Kind: ErrForbidden, Message: fmt.Sprintf(format, args...)}
}

func invalid(format string, args ...interface{}) error {
	return &Error{Kind: ErrValidation, Message: fmt.Sprintf(format, args...)}
}

func unauthorized(format string, args ...interface{}) error {
	return &Error{Kind: ErrUnauthorized, Message: fmt.Sprintf(format, args...)}
}

// MissingReferencesError names every tag and ingredient id of a recipe
// body that does not exist.
type MissingReferencesError struct {
	Tags        []uint
	Ingredients []uint
}

func (e *MissingReferencesError) Error() string {
	var parts []string
	if len(e.Tags) > 0 {
		parts = append(parts, "tags not found: "+joinIDs(e.Tags))
	}
	if len(e.Ingredients) > 0 {
		parts = append(parts, "ingredients not found: "+joinIDs(e.Ingredients))
	}
	return strings.Join(parts, "; ")
}

func (e *MissingReferencesError) Unwrap() error {
	return ErrNotFound
}

func joinIDs(ids []uint) string {
	s := make([]string, len(ids))
	for i, id := range ids {
		s[i] = fmt.Sprint(id)
	}
	return strings.Join(s, ", ")
}
