// Package httpclient is the HTTP transport behind the typed OpenAPI client.
//
// An Adapter sends one request per Do call, with no retries, and returns
// the buffered response or a classified *Error. Statuses are checked by the
// request's ValidateStatus; without one only 2xx passes, and a rejected
// status yields an *Error that still carries the response.
//
//	adapter, err := httpclient.New(httpclient.Config{
//	    BaseURL: "http://localhost:3000",
//	    Timeout: 10 * time.Second,
//	    Auth:    httpclient.BearerAuth("token"),
//	})
//
//	resp, err := adapter.Do(ctx, httpclient.Request{Method: http.MethodGet, Path: "/json"})
//	var herr *httpclient.Error
//	if errors.As(err, &herr) && herr.Response != nil {
//	    // herr.Response.StatusCode, herr.Response.Body
//	}
//
// Every request runs in an OpenTelemetry client span whose context is
// injected into the outgoing headers.
package httpclient
