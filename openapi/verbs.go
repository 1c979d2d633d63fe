package openapi

import (
	"context"
	"net/http"
)

// Get calls GET route. D is the success body type and E the error body
// type.
func Get[D, E any](ctx context.Context, c *Client, route string, opts ...CallOption) (*Result[D, E], error) {
	return do[D, E](ctx, c, http.MethodGet, route, nil, opts)
}

// Delete calls DELETE route.
func Delete[D, E any](ctx context.Context, c *Client, route string, opts ...CallOption) (*Result[D, E], error) {
	return do[D, E](ctx, c, http.MethodDelete, route, nil, opts)
}

// Head calls HEAD route. Data holds the zero value of D since HEAD
// responses carry no body.
func Head[D, E any](ctx context.Context, c *Client, route string, opts ...CallOption) (*Result[D, E], error) {
	return do[D, E](ctx, c, http.MethodHead, route, nil, opts)
}

// Options calls OPTIONS route.
func Options[D, E any](ctx context.Context, c *Client, route string, opts ...CallOption) (*Result[D, E], error) {
	return do[D, E](ctx, c, http.MethodOptions, route, nil, opts)
}

// Post calls POST route with body. See httpclient.Request for the body
// encodings.
func Post[D, E any](ctx context.Context, c *Client, route string, body any, opts ...CallOption) (*Result[D, E], error) {
	return do[D, E](ctx, c, http.MethodPost, route, body, opts)
}

// Put calls PUT route with body.
func Put[D, E any](ctx context.Context, c *Client, route string, body any, opts ...CallOption) (*Result[D, E], error) {
	return do[D, E](ctx, c, http.MethodPut, route, body, opts)
}

// Patch calls PATCH route with body.
func Patch[D, E any](ctx context.Context, c *Client, route string, body any, opts ...CallOption) (*Result[D, E], error) {
	return do[D, E](ctx, c, http.MethodPatch, route, body, opts)
}
