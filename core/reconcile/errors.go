package reconcile

import (
	"errors"

	"audience-sync/core/coerce"
	"audience-sync/core/transport"
)

// ErrConfiguration marks errors raised while wiring a connector.
// Configuration errors wrap it so Classify can recognise them.
var ErrConfiguration = errors.New("configuration error")

// Class groups errors by how the executor and callers treat them.
type Class int

const (
	ClassInternal Class = iota
	ClassCoercion
	ClassNotFound
	ClassTransport
	ClassConfiguration
)

func (c Class) String() string {
	switch c {
	case ClassCoercion:
		return "coercion"
	case ClassNotFound:
		return "not_found"
	case ClassTransport:
		return "transport"
	case ClassConfiguration:
		return "configuration"
	default:
		return "internal"
	}
}

// Classify returns the class of err.
func Classify(err error) Class {
	var cerr *coerce.Error
	var terr *transport.Error
	switch {
	case err == nil:
		return ClassInternal
	case errors.Is(err, ErrConfiguration):
		return ClassConfiguration
	case errors.As(err, &cerr):
		return ClassCoercion
	case transport.IsNotFound(err):
		return ClassNotFound
	case errors.As(err, &terr):
		return ClassTransport
	default:
		return ClassInternal
	}
}

// FailureMessage renders err for the operator log. Transport errors carry the
// response body on a second line.
func FailureMessage(err error) string {
	msg := err.Error()
	if body := transport.BodyOf(err); body != "" {
		msg += "\n" + body
	}
	return msg
}
