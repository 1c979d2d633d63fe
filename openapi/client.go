package openapi

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel/attribute"

	"github.com/Denwa799/openapi-example/httpclient"
	"github.com/Denwa799/openapi-example/logger"
	"github.com/Denwa799/openapi-example/observability"
)

const defaultAccept = "application/json, text/plain, */*"

// Transport sends requests built by a Client. *httpclient.Adapter
// implements it.
type Transport interface {
	Do(ctx context.Context, req httpclient.Request) (*httpclient.Response, error)
	URL(req httpclient.Request) (string, error)
}

// Client dispatches calls described by a Schema through a Transport.
// A Client is immutable after New and safe for concurrent use.
type Client struct {
	transport   Transport
	schema      *Schema
	validStatus ValidStatus
	service     string
	log         *logger.Logger
	metrics     *observability.Metrics
}

// Option configures a Client.
type Option func(*Client)

// WithSchema attaches a schema. Calls to routes it does not declare fail
// with ErrUndeclaredRoute. Without a schema every route is accepted.
func WithSchema(s *Schema) Option {
	return func(c *Client) { c.schema = s }
}

// WithDefaultValidStatus sets the policy used when a call does not pass
// WithValidStatus. The default is ValidStatusAll.
func WithDefaultValidStatus(v ValidStatus) Option {
	return func(c *Client) { c.validStatus = v }
}

// WithLogger sets the client logger.
func WithLogger(l *logger.Logger) Option {
	return func(c *Client) { c.log = l }
}

// WithMetrics records every call through m.
func WithMetrics(m *observability.Metrics) Option {
	return func(c *Client) { c.metrics = m }
}

// WithServiceName sets the service name used in spans and metrics.
func WithServiceName(name string) Option {
	return func(c *Client) { c.service = name }
}

// New creates a Client over t.
func New(t Transport, opts ...Option) (*Client, error) {
	if t == nil {
		return nil, errors.New("openapi: transport is required")
	}
	c := &Client{
		transport:   t,
		validStatus: ValidStatusAll,
		service:     "openapi",
	}
	for _, opt := range opts {
		opt(c)
	}
	if err := c.validStatus.Validate(); err != nil {
		return nil, err
	}
	if c.log == nil {
		c.log = logger.WithComponent("openapi")
	}
	return c, nil
}

// Schema returns the attached schema, or nil.
func (c *Client) Schema() *Schema { return c.schema }

// DefaultValidStatus returns the client-wide policy.
func (c *Client) DefaultValidStatus() ValidStatus { return c.validStatus }

// ResolveURI returns the URI a call to method and route with opts would
// request. Nothing is sent.
func (c *Client) ResolveURI(method, route string, opts ...CallOption) (string, error) {
	call, err := c.prepare(method, route, nil, opts)
	if err != nil {
		return "", err
	}
	return c.transport.URL(call.req)
}

// call is a prepared invocation.
type call struct {
	req          httpclient.Request
	op           *Operation
	policy       ValidStatus
	responseType ResponseType
}

// prepare resolves options and builds the transport request.
func (c *Client) prepare(method, route string, body any, opts []CallOption) (*call, error) {
	o := newCallOptions(opts)
	method = strings.ToUpper(method)

	policy := c.validStatus
	if o.validStatus != "" {
		policy = o.validStatus
	}
	if err := policy.Validate(); err != nil {
		return nil, err
	}
	if err := o.responseType.Validate(); err != nil {
		return nil, err
	}

	var op *Operation
	if c.schema != nil {
		var ok bool
		op, ok = c.schema.Lookup(method, route)
		if !ok {
			return nil, fmt.Errorf("%w: %s %s", ErrUndeclaredRoute, method, route)
		}
		for _, p := range op.Parameters {
			if p.In == InQuery && p.Required && !o.query.Has(p.Name) {
				return nil, &MissingParamError{Name: p.Name, In: InQuery, Template: route}
			}
		}
	}

	path, err := InterpolateParams(route, o.params)
	if err != nil {
		return nil, err
	}

	req := httpclient.Request{
		Method:  method,
		Path:    path,
		Headers: map[string]string{"Accept": accept(o.responseType, op)},
		Body:    body,
	}
	if len(o.query) > 0 {
		req.Query = o.query
	}
	if policy == ValidStatusAll {
		req.ValidateStatus = httpclient.AcceptAllStatuses
	}
	req.Apply(o.transport...)

	return &call{req: req, op: op, policy: policy, responseType: o.responseType}, nil
}

// accept picks the Accept header from the response type, then the schema.
func accept(rt ResponseType, op *Operation) string {
	if a := rt.accept(); a != "" {
		return a
	}
	if op != nil {
		if types := op.ContentTypes(); len(types) > 0 {
			return strings.Join(types, ", ")
		}
	}
	return defaultAccept
}

// do runs one call and normalizes its outcome.
func do[D, E any](ctx context.Context, c *Client, method, route string, body any, opts []CallOption) (*Result[D, E], error) {
	call, err := c.prepare(method, route, body, opts)
	if err != nil {
		return nil, err
	}

	name := call.req.Method + " " + route
	ctx, op := observability.StartOperation(ctx, c.service, name, observability.SpanAPICall, c.metrics,
		attribute.String(observability.AttrRoute, route),
		attribute.String(observability.AttrValidStatus, string(call.policy)),
	)

	resp, sendErr := c.transport.Do(ctx, call.req)
	res, err := normalize[D, E](resp, sendErr, call)

	status := "error"
	var attrs []attribute.KeyValue
	if res != nil {
		status = res.Status.String()
		attrs = append(attrs, attribute.Int(observability.AttrStatusCode, res.Status.Code))
		if res.Status.IsTransport() {
			attrs = append(attrs, attribute.String(observability.AttrTransportCode, string(res.Status.Transport)))
		}
	}
	op.End(ctx, status, err, attrs...)

	fields := logger.Fields(
		logger.FieldOperation, name,
		logger.FieldRoute, route,
		logger.FieldStatus, status,
		logger.FieldDuration, op.Duration().Milliseconds(),
	)
	if err != nil {
		c.log.Debug("call failed", logger.MergeWithError(fields, err))
	} else {
		c.log.Debug("call completed", fields)
	}
	return res, err
}

var _ Transport = (*httpclient.Adapter)(nil)

