package openapi

import (
	"fmt"
	"maps"
	"net/url"

	"github.com/Denwa799/openapi-example/httpclient"
)

// CallOption configures one call.
type CallOption func(*callOptions)

type callOptions struct {
	params       map[string]any
	query        url.Values
	responseType ResponseType
	validStatus  ValidStatus
	transport    []httpclient.RequestOption
}

func newCallOptions(opts []CallOption) *callOptions {
	o := &callOptions{params: make(map[string]any), query: url.Values{}}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithParams sets path parameters from a map.
func WithParams(params map[string]any) CallOption {
	return func(o *callOptions) { maps.Copy(o.params, params) }
}

// WithParam sets one path parameter.
func WithParam(name string, value any) CallOption {
	return func(o *callOptions) { o.params[name] = value }
}

// WithQuery adds query parameters.
func WithQuery(q url.Values) CallOption {
	return func(o *callOptions) {
		for k, vs := range q {
			for _, v := range vs {
				o.query.Add(k, v)
			}
		}
	}
}

// WithQueryParam adds one query parameter in its fmt.Sprint form.
func WithQueryParam(key string, value any) CallOption {
	return func(o *callOptions) { o.query.Add(key, fmt.Sprint(value)) }
}

// WithResponseType forces how the response body is decoded.
func WithResponseType(t ResponseType) CallOption {
	return func(o *callOptions) { o.responseType = t }
}

// WithValidStatus overrides the client's validation policy for one call.
func WithValidStatus(v ValidStatus) CallOption {
	return func(o *callOptions) { o.validStatus = v }
}

// WithTransportOptions passes request options to the transport. They are
// applied after the client has built the request and may override it.
func WithTransportOptions(opts ...httpclient.RequestOption) CallOption {
	return func(o *callOptions) { o.transport = append(o.transport, opts...) }
}
