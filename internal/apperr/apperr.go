package apperr

import (
	"fmt"
	"strings"
)

// FieldError is a single validation violation, keyed by the JSON path of the
// offending field (e.g. "items[2].price").
type FieldError struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

// ValidationError carries every violated field from one request, not just the
// first one found.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Path+" "+f.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// NotFoundError means the operation referenced a bill id that does not exist.
type NotFoundError struct {
	Resource string
	ID       uint
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Resource, e.ID)
}

func BillNotFound(id uint) *NotFoundError {
	return &NotFoundError{Resource: "bill", ID: id}
}

// StoreError wraps an underlying persistence failure (connectivity, constraint
// violation). The wrapped error is for server-side logs, never for clients.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store: %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

func Store(op string, err error) *StoreError {
	return &StoreError{Op: op, Err: err}
}
