package errors

import (
	"errors"
	"strings"
)

// Multi aggregates several errors into one. Validation collects every
// violation rather than stopping at the first, so callers can report all
// of them together.
type Multi struct {
	Errors []error
}

// Error implements the error interface
func (m *Multi) Error() string {
	if len(m.Errors) == 1 {
		return m.Errors[0].Error()
	}
	var b strings.Builder
	b.WriteString("multiple errors occurred:")
	for _, err := range m.Errors {
		b.WriteString("\n  - ")
		b.WriteString(err.Error())
	}
	return b.String()
}

// Unwrap exposes the aggregated errors to errors.Is and errors.As
func (m *Multi) Unwrap() []error {
	return m.Errors
}

// Append adds non-nil errors to the aggregate
func (m *Multi) Append(errs ...error) {
	for _, err := range errs {
		if err != nil {
			m.Errors = append(m.Errors, err)
		}
	}
}

// ErrOrNil returns the aggregate as an error, or nil when empty
func (m *Multi) ErrOrNil() error {
	if len(m.Errors) == 0 {
		return nil
	}
	return m
}

// AsMulti extracts a Multi from an error chain
func AsMulti(err error) (*Multi, bool) {
	var multi *Multi
	ok := errors.As(err, &multi)
	return multi, ok
}
