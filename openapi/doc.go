// Package openapi is a typed HTTP client driven by a runtime OpenAPI
// schema.
//
// A Schema registers the operations of an API (method, path template,
// parameters, responses by status). A Client checks calls against it,
// fills {name} placeholders from path parameters and sends the request
// through a Transport, normally an *httpclient.Adapter. Each call returns a
// Result whose Data or Error is decoded into the Go types given as type
// parameters:
//
//	res, err := openapi.Get[string, ErrorBody](ctx, client, "/users/{id}",
//	    openapi.WithParam("id", 5))
//	switch {
//	case err != nil:
//	    // undeclared route, missing parameter, decode failure, or a
//	    // transport error under the native policy
//	case res.Status.Code == http.StatusOK:
//	    fmt.Println(*res.Data)
//	default:
//	    fmt.Println(res.Status, res.Error)
//	}
//
// # Status validation
//
// Under ValidStatusAll, the default, every HTTP status resolves into a
// Result and transport failures become a Result carrying the transport
// code. Under ValidStatusNative the transport's 2xx rule applies and its
// errors are returned unchanged.
package openapi
