package openapi

import (
	"errors"

	"github.com/Denwa799/openapi-example/httpclient"
)

var errNoResponse = errors.New("openapi: transport returned neither a response nor an error")

// normalize maps a transport outcome to a Result. Under ValidStatusAll a
// *httpclient.Error becomes a Result carrying its code; every other error
// is returned unchanged.
func normalize[D, E any](resp *httpclient.Response, err error, c *call) (*Result[D, E], error) {
	if err != nil {
		var terr *httpclient.Error
		if c.policy != ValidStatusAll || !errors.As(err, &terr) {
			return nil, err
		}
		res := &Result[D, E]{Status: Status{Code: terr.StatusCode, Transport: terr.Code}}
		if terr.Response != nil {
			res.Status.Code = terr.Response.StatusCode
			res.Response = terr.Response
			res.Error = decodeErrorBody[E](terr.Response, c)
		}
		return res, nil
	}
	if resp == nil {
		return nil, errNoResponse
	}

	res := &Result[D, E]{Status: Status{Code: resp.StatusCode}, Response: resp}
	if resp.StatusCode >= 400 {
		res.Error = decodeErrorBody[E](resp, c)
		return res, nil
	}
	body, derr := decodeBody[D](resp, c.responseType, c.op)
	if derr != nil {
		return nil, derr
	}
	res.Data = body
	return res, nil
}

// decodeErrorBody decodes an error status body into E. A body that does
// not fit E leaves Error nil; the raw bytes stay on Result.Response.
func decodeErrorBody[E any](resp *httpclient.Response, c *call) *E {
	body, err := decodeBody[E](resp, c.responseType, c.op)
	if err != nil {
		return nil
	}
	return body
}
