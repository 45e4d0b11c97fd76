package entity

import (
	"errors"
	"fmt"
)

// Sentinel errors for repository operations.
var (
	// ErrNotFound indicates a referenced entity, government, or relation
	// target does not exist.
	ErrNotFound = errors.New("not found")
	// ErrConflict indicates a duplicate relation edge or an already-recorded
	// supporter.
	ErrConflict = errors.New("conflict")
	// ErrSelfLink indicates a relation whose source and target are the same
	// entity. Self-loops are forbidden for every relation kind.
	ErrSelfLink = errors.New("self-referencing relation")
	// ErrValidation is the sentinel wrapped by every *ValidationError.
	ErrValidation = errors.New("validation failed")
)

// ValidationCategory classifies a validation failure for programmatic handling.
type ValidationCategory string

const (
	// CatKind indicates an unrecognized entity kind.
	CatKind ValidationCategory = "bad_kind"
	// CatTitle indicates a missing or over-length title.
	CatTitle ValidationCategory = "bad_title"
	// CatBody indicates an over-length body.
	CatBody ValidationCategory = "bad_body"
	// CatPriority indicates a malformed or out-of-range priority.
	CatPriority ValidationCategory = "bad_priority"
	// CatStatus indicates a status outside the kind's enum.
	CatStatus ValidationCategory = "bad_status"
	// CatLocation indicates an out-of-bounds or over-length location field.
	CatLocation ValidationCategory = "bad_location"
	// CatRelation indicates an unknown relation kind or a type-pair mismatch.
	CatRelation ValidationCategory = "bad_relation"
	// CatSupport indicates a support operation against a non-idea entity.
	CatSupport ValidationCategory = "bad_support"
)

// ValidationError records a field-level constraint violation.
type ValidationError struct {
	Category ValidationCategory
	Field    string
	Msg      string
}

// Error returns a human-readable description naming the offending field.
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return e.Field + ": " + e.Msg
	}
	return e.Msg
}

// Unwrap returns ErrValidation for use with errors.Is.
func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

func validationf(cat ValidationCategory, field, format string, args ...any) *ValidationError {
	return &ValidationError{Category: cat, Field: field, Msg: fmt.Sprintf(format, args...)}
}
