package services

import (
	"errors"
	"sort"
	"strings"
)

// Service-level errors
var (
	ErrPropertyNotFound = errors.New("property not found")
	ErrDocumentNotFound = errors.New("document not found")
	ErrPhotoNotFound    = errors.New("photo not found")
	ErrInvalidAction    = errors.New("invalid action")
	ErrInvalidForm      = errors.New("unknown form")
)

// ValidationError carries the per-field messages of a rejected form. Fields maps the
// form field name to the message shown under it.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return "validation failed: " + strings.Join(names, ", ")
}

func newValidationError(fields map[string]string) error {
	if len(fields) == 0 {
		return nil
	}
	return &ValidationError{Fields: fields}
}
