package adapter

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
)

var (
	ErrBadRequest          = errors.New("bad request")
	ErrUnauthorized        = errors.New("client unauthorized")
	ErrNotFound            = errors.New("not found")
	ErrTooManyRequests     = errors.New("too many requests")
	ErrInternalServerError = errors.New("internal server error")
	ErrServiceUnavailable  = errors.New("service unavailable")
	ErrGatewayTimeout      = errors.New("gateway timeout")

	ErrInvalidAddress  = errors.New("invalid adapter http address")
	ErrDecodingPayload = errors.New("error decoding response payload")
)

// ValidationError is returned when the server rejected a note form. Fields
// holds the messages keyed by form field name.
type ValidationError struct {
	Fields map[string][]string
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, field := range slices.Sorted(maps.Keys(e.Fields)) {
		parts = append(parts, fmt.Sprintf("%s: %s", field, strings.Join(e.Fields[field], ", ")))
	}

	return "validation failed: " + strings.Join(parts, "; ")
}

// Unwrap makes a ValidationError match ErrBadRequest.
func (e *ValidationError) Unwrap() error {
	return ErrBadRequest
}
