// Package server provides the HTTP server used by the demo binaries: a Gin
// engine behind an h2c handler so HTTP/1.1 and cleartext HTTP/2 share one
// port.
//
// # Middleware
//
// ApplyMiddleware installs the server/middleware stack around every route:
//
//   - Recovery: panic recovery answering a 500 error body
//   - RequestID: X-Request-Id generation and propagation
//   - CORS: cross-origin headers and preflight handling
//   - BodySizeLimit: request body size limits
//   - RequestLogger: one log line per request, level by status
//
// # Endpoints
//
// RegisterDefaultEndpoints adds the server/endpoint handlers:
//
//   - /health: health check aggregation
//   - /info: build and version information
//   - /metrics: runtime memory and goroutine statistics
package server
