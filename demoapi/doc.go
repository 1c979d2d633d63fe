// Package demoapi is the contract of the demo service: its routes, wire
// types and OpenAPI schema, and typed fetchers built on an openapi.Client.
//
// Both the demo server and the demo client use Schema, so the document
// served on /api-json and the routes the client accepts stay in sync.
package demoapi
