package validators

import (
	"errors"
	"sort"
	"strings"
)

// FieldErrors carries human-readable validation messages keyed by the form
// field name they belong to. It is returned as an error by [NoteValidator]
// and rendered as the "errors" object of a 400 response.
type FieldErrors map[string][]string

// Error implements the error interface. Fields are listed in sorted order.
func (f FieldErrors) Error() string {
	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	messages := make([]string, 0, len(keys))
	for _, k := range keys {
		messages = append(messages, strings.Join(f[k], ", "))
	}

	return "validation failed: " + strings.Join(messages, "; ")
}

// Add appends a message to the given field.
func (f FieldErrors) Add(field, message string) {
	f[field] = append(f[field], message)
}

// AsFieldErrors extracts FieldErrors from err, if any.
func AsFieldErrors(err error) (FieldErrors, bool) {
	var fieldErrs FieldErrors
	if errors.As(err, &fieldErrs) {
		return fieldErrs, true
	}
	return nil, false
}
