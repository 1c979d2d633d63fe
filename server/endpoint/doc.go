// Package endpoint provides the default Gin handlers mounted by
// server.RegisterDefaultEndpoints.
package endpoint
