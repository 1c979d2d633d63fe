// Package demoserver is the demo service: GET /text, /json and /xml each
// answer a success body, a 400 or a 500 as chosen by a Scenario, and the
// service publishes its OpenAPI document on /api-json and /api-yaml.
package demoserver
