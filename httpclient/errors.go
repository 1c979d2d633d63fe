package httpclient

import (
	"context"
	"errors"
	"fmt"
	"net"
)

// ErrorCode classifies transport failures.
type ErrorCode string

const (
	// ErrCodeNetwork indicates the request never produced a response.
	ErrCodeNetwork ErrorCode = "ERR_NETWORK"
	// ErrCodeTimeout indicates the request or connection timed out.
	ErrCodeTimeout ErrorCode = "ETIMEDOUT"
	// ErrCodeCanceled indicates the caller canceled the context.
	ErrCodeCanceled ErrorCode = "ERR_CANCELED"
	// ErrCodeBadRequest indicates a 4xx status rejected by the validator.
	ErrCodeBadRequest ErrorCode = "ERR_BAD_REQUEST"
	// ErrCodeBadResponse indicates any other status rejected by the validator.
	ErrCodeBadResponse ErrorCode = "ERR_BAD_RESPONSE"
)

func (c ErrorCode) String() string { return string(c) }

// Error is a transport failure. Response is set when the failure is a
// rejected status and nil when no response was received.
type Error struct {
	// StatusCode is the HTTP status code (0 without a response).
	StatusCode int
	// Code classifies the error.
	Code ErrorCode
	// Message describes the error.
	Message string
	// Response is the received response, if any.
	Response *Response
	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("httpclient: %s (HTTP %d): %s", e.Code, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("httpclient: %s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// NewStatusError creates the error for a response whose status the
// validator rejected.
func NewStatusError(resp *Response) *Error {
	code := ErrCodeBadResponse
	if resp.StatusCode >= 400 && resp.StatusCode < 500 {
		code = ErrCodeBadRequest
	}
	return &Error{
		StatusCode: resp.StatusCode,
		Code:       code,
		Message:    fmt.Sprintf("Request failed with status code %d", resp.StatusCode),
		Response:   resp,
	}
}

// NewTransportError classifies an error returned while sending a request
// or reading its response.
func NewTransportError(err error) *Error {
	code := ErrCodeNetwork
	var netErr net.Error
	switch {
	case errors.Is(err, context.Canceled):
		code = ErrCodeCanceled
	case errors.Is(err, context.DeadlineExceeded):
		code = ErrCodeTimeout
	case errors.As(err, &netErr) && netErr.Timeout():
		code = ErrCodeTimeout
	}
	return &Error{
		Code:    code,
		Message: err.Error(),
		Err:     err,
	}
}

// AsError returns the *Error in err's chain.
func AsError(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// IsTimeout checks if an error is a timeout error.
func IsTimeout(err error) bool {
	e, ok := AsError(err)
	return ok && e.Code == ErrCodeTimeout
}

// IsCanceled checks if an error is a cancellation.
func IsCanceled(err error) bool {
	e, ok := AsError(err)
	return ok && e.Code == ErrCodeCanceled
}

// IsNetwork checks if an error is a network failure.
func IsNetwork(err error) bool {
	e, ok := AsError(err)
	return ok && e.Code == ErrCodeNetwork
}

// IsStatus checks if an error is a rejected status.
func IsStatus(err error) bool {
	e, ok := AsError(err)
	return ok && e.Response != nil
}
