// Package logger provides structured logging for the openapi-example
// binaries and libraries using zerolog.
//
// It supports JSON and console output, level configuration, and
// component-scoped loggers carrying structured fields.
//
// # Configuration
//
//	logging:
//	  level: "debug"
//	  format: "json"
//
// # Usage
//
//	log := logger.NewDefault("demo-client").WithComponent("fetchers")
//	log.Info("call completed", logger.Fields("route", "/text", "status", 200))
package logger
