package openapi

import (
	"errors"
	"fmt"
)

var (
	// ErrUndeclaredRoute is returned when a method and route are not in the
	// client's schema.
	ErrUndeclaredRoute = errors.New("openapi: undeclared route")
	// ErrMissingParam is matched by every *MissingParamError.
	ErrMissingParam = errors.New("openapi: missing parameter")
	// ErrMalformedTemplate is returned for path templates with an unclosed
	// or empty placeholder.
	ErrMalformedTemplate = errors.New("openapi: malformed path template")
	// ErrInvalidValidStatus is returned for an unknown validation policy.
	ErrInvalidValidStatus = errors.New("openapi: invalid valid status policy")
	// ErrInvalidResponseType is returned for an unknown response type.
	ErrInvalidResponseType = errors.New("openapi: invalid response type")
	// ErrInvalidOperation is returned when a schema operation fails
	// registration checks.
	ErrInvalidOperation = errors.New("openapi: invalid operation")
)

// MissingParamError reports a placeholder or required query parameter
// with no value.
type MissingParamError struct {
	Name     string
	In       string
	Template string
}

func (e *MissingParamError) Error() string {
	return fmt.Sprintf("openapi: missing %s parameter %q for %s", e.In, e.Name, e.Template)
}

// Is matches ErrMissingParam.
func (e *MissingParamError) Is(target error) bool {
	return target == ErrMissingParam
}

// DecodeError reports a response body that does not decode into the
// expected Go type.
type DecodeError struct {
	StatusCode  int
	ContentType string
	Target      string
	Err         error
}

func (e *DecodeError) Error() string {
	ct := e.ContentType
	if ct == "" {
		ct = "untyped"
	}
	return fmt.Sprintf("openapi: decode %s body (status %d) into %s: %v", ct, e.StatusCode, e.Target, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }
