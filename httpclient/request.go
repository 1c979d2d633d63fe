package httpclient

import (
	"net/textproto"
	"net/url"
	"time"
)

// Request describes an outbound HTTP request.
type Request struct {
	// Method is the HTTP method.
	Method string
	// Path is appended to the BaseURL. Absolute URLs are used as is.
	Path string
	// Headers override the adapter's default headers.
	Headers map[string]string
	// Query are URL query parameters, merged over any query in Path.
	Query url.Values
	// Body accepts io.Reader, []byte, string, url.Values or any value
	// that will be JSON-encoded.
	Body any
	// Auth overrides the adapter-level auth for this request.
	Auth *AuthConfig
	// Timeout overrides the adapter timeout when positive.
	Timeout time.Duration
	// ValidateStatus decides which statuses are successful. Nil accepts 2xx.
	ValidateStatus func(status int) bool
}

// RequestOption modifies a Request before it is sent.
type RequestOption func(*Request)

// Apply runs opts against the request in order.
func (r *Request) Apply(opts ...RequestOption) {
	for _, opt := range opts {
		opt(r)
	}
}

// WithHeader sets a request header.
func WithHeader(key, value string) RequestOption {
	return func(r *Request) {
		if r.Headers == nil {
			r.Headers = make(map[string]string)
		}
		r.Headers[key] = value
	}
}

// WithQueryParam adds a query parameter value.
func WithQueryParam(key, value string) RequestOption {
	return func(r *Request) {
		if r.Query == nil {
			r.Query = url.Values{}
		}
		r.Query.Add(key, value)
	}
}

// WithRequestAuth overrides the adapter auth for one request.
func WithRequestAuth(auth *AuthConfig) RequestOption {
	return func(r *Request) { r.Auth = auth }
}

// WithTimeout bounds one request.
func WithTimeout(d time.Duration) RequestOption {
	return func(r *Request) { r.Timeout = d }
}

// WithValidateStatus installs a status validator for one request.
func WithValidateStatus(fn func(status int) bool) RequestOption {
	return func(r *Request) { r.ValidateStatus = fn }
}

// DefaultValidateStatus accepts 2xx statuses.
func DefaultValidateStatus(status int) bool {
	return status >= 200 && status < 300
}

// AcceptAllStatuses accepts every status.
func AcceptAllStatuses(int) bool { return true }

// Response is a buffered HTTP response.
type Response struct {
	// StatusCode is the HTTP status code.
	StatusCode int
	// Headers holds the first value of each header under its canonical key.
	Headers map[string]string
	// Body is the raw response body.
	Body []byte
}

// Header returns the named header, matching case-insensitively.
func (r *Response) Header(name string) string {
	return r.Headers[textproto.CanonicalMIMEHeaderKey(name)]
}

// IsSuccess returns true if the status code is 2xx.
func (r *Response) IsSuccess() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// IsError returns true if the status code is 4xx or 5xx.
func (r *Response) IsError() bool {
	return r.StatusCode >= 400
}
