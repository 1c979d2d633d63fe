// Package version reports build information for the demo binaries.
//
// Values are injected at link time and fall back to the VCS stamps Go
// records in the binary:
//
//	go build -ldflags "-X github.com/Denwa799/openapi-example/version.Version=1.0.0" ./cmd/demo-server
package version
