package coerce

import (
	"fmt"

	"audience-sync/core/schema"
)

// Error reports a remote or row value that does not fit the declared type.
type Error struct {
	Field string
	Type  schema.ValueType
	Raw   any
	Err   error
}

func (e *Error) Error() string {
	return fmt.Sprintf("field %s: cannot convert %#v to %s: %v", e.Field, e.Raw, e.Type, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newError(f schema.Field, raw any, err error) *Error {
	return &Error{Field: f.LogicalName, Type: f.Type, Raw: raw, Err: err}
}
