package demoapi

import (
	"encoding/xml"
	"net/http"

	"github.com/Denwa799/openapi-example/openapi"
)

// Demo routes.
const (
	PathText = "/text"
	PathJSON = "/json"
	PathXML  = "/xml"
)

// Paths lists the demo routes in display order.
var Paths = []string{PathText, PathJSON, PathXML}

// Successful bodies and error messages returned by the demo service.
const (
	TextBody           = "text plain"
	JSONData           = "data"
	XMLBody            = "<example>This is an example response</example>"
	MessageBadRequest  = "Error"
	MessageServerError = "Server error"
)

// DefaultBaseURL is where the demo server listens by default.
const DefaultBaseURL = "http://localhost:3000"

// JSONPayload is the success body of GET /json.
type JSONPayload struct {
	Data string `json:"data"`
}

// XMLExample is the success body of GET /xml.
type XMLExample struct {
	XMLName xml.Name `xml:"example" json:"-"`
	Text    string   `xml:",chardata" json:"text"`
}

// ErrorBody is the body of every 4xx and 5xx response.
type ErrorBody struct {
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
}

// Schema returns the demo service schema.
func Schema() *openapi.Schema {
	withErrors := func(ops ...openapi.Operation) []openapi.Operation {
		errContent := map[string]openapi.MediaType{
			"application/json": {Schema: openapi.SchemaFor[ErrorBody]()},
		}
		for i := range ops {
			ops[i].Responses["400"] = openapi.ResponseSpec{Description: "Bad request", Content: errContent}
			ops[i].Responses["5XX"] = openapi.ResponseSpec{Description: "Server error", Content: errContent}
		}
		return ops
	}

	return openapi.NewSchema("openapi-example", "1.0.0").MustRegister(withErrors(
		openapi.Operation{
			Method:      http.MethodGet,
			Path:        PathText,
			OperationID: "text",
			Tags:        []string{"text"},
			Responses: map[string]openapi.ResponseSpec{
				"200": {Content: map[string]openapi.MediaType{
					"text/plain": {Schema: openapi.StringSchema()},
				}},
			},
		},
		openapi.Operation{
			Method:      http.MethodGet,
			Path:        PathJSON,
			OperationID: "json",
			Tags:        []string{"json"},
			Responses: map[string]openapi.ResponseSpec{
				"200": {Content: map[string]openapi.MediaType{
					"application/json": {Schema: openapi.SchemaFor[JSONPayload]()},
				}},
			},
		},
		openapi.Operation{
			Method:      http.MethodGet,
			Path:        PathXML,
			OperationID: "xml",
			Tags:        []string{"xml"},
			Responses: map[string]openapi.ResponseSpec{
				"200": {Content: map[string]openapi.MediaType{
					"application/xml": {Schema: openapi.StringSchema(), Example: XMLBody},
				}},
			},
		},
	)...)
}
