// Package errors provides the application error type used by the demo
// server handlers. An AppError carries a machine-readable code, the HTTP
// status it maps to and a message, and renders to the wire body
// {"statusCode": ..., "message": ...}.
package errors
