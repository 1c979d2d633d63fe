package errors

// ErrorCode is a machine-readable error code.
type ErrorCode string

const (
	// ErrCodeBadRequest indicates the request could not be served as sent.
	ErrCodeBadRequest ErrorCode = "BAD_REQUEST"
	// ErrCodeInvalidInput indicates a request or config value failed validation.
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
	// ErrCodeNotFound indicates no route matched.
	ErrCodeNotFound ErrorCode = "NOT_FOUND"
	// ErrCodeInternal indicates an internal server error.
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)
