package services

import (
	"fmt"
	"strings"
)

// NotFoundError signals that the addressed business key has no record.
type NotFoundError struct {
	ConnID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("the connection with connection_id: `%s` was not found", e.ConnID)
}

// IdentityMismatchError signals that a patch payload's embedded business key
// disagrees with the addressed key.
type IdentityMismatchError struct {
	Addressed string
	Embedded  string
}

func (e *IdentityMismatchError) Error() string {
	return "the connection_id in the request body does not match the URL parameter"
}

// IdentityFormatError signals that one or more business keys fail the
// identity character-class constraint. For batches, Indices holds the
// zero-based position of every offending candidate.
type IdentityFormatError struct {
	Indices []int
	Values  []string
}

func (e *IdentityFormatError) Error() string {
	if len(e.Indices) > 0 {
		positions := make([]string, len(e.Indices))
		for i, idx := range e.Indices {
			positions[i] = fmt.Sprintf("%d", idx)
		}
		return fmt.Sprintf("connection_id must match %s: invalid at index(es) %s",
			ConnIDPattern, strings.Join(positions, ", "))
	}
	return fmt.Sprintf("connection_id %q must match %s", strings.Join(e.Values, ", "), ConnIDPattern)
}

// ConflictError signals a write against an existing business key without
// overwrite. Err carries the storage-level conflict detail verbatim when the
// unique constraint fired; it is nil when the pre-check caught the duplicate.
type ConflictError struct {
	ConnID string
	Err    error
}

func (e *ConflictError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("the connection with connection_id: `%s` already exists: %v", e.ConnID, e.Err)
	}
	return fmt.Sprintf("the connection with connection_id: `%s` already exists", e.ConnID)
}

func (e *ConflictError) Unwrap() error {
	return e.Err
}

// FieldMaskError signals an update mask naming an attribute that is not a
// declared mutable field of the connection record.
type FieldMaskError struct {
	Field string
}

func (e *FieldMaskError) Error() string {
	return fmt.Sprintf("update_mask contains unknown field %q", e.Field)
}
