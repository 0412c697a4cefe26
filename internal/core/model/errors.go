package model

import (
	"errors"
	"fmt"
)

// Error taxonomy surfaced to callers. Nothing here is fatal; every failure
// is scoped to the request that triggered it.

// ValidationError reports a malformed or missing entity field.
type ValidationError struct {
	Field  string
	Reason string
}

func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// ParseError reports page text that is not HTML markup at all.
type ParseError struct {
	Reason string
}

func (e *ParseError) Error() string {
	return "cannot parse page: " + e.Reason
}

// InjectionError reports that no safe insertion point exists in a page.
type InjectionError struct {
	Reason string
}

func (e *InjectionError) Error() string {
	return "cannot inject markup: " + e.Reason
}

// Source lookup failures. ErrNoSources is the empty-result case;
// ErrServiceUnavailable wraps transport failures from the remote suggestion
// service. Callers that want to retry should retry only the latter.
var (
	ErrNoSources          = errors.New("no candidate sources found")
	ErrServiceUnavailable = errors.New("source lookup service unavailable")
)
