package openapi

import (
	"fmt"

	"github.com/Denwa799/openapi-example/httpclient"
)

// Status identifies the outcome of a call. Code is the HTTP status, or 0
// when no response was received. Transport is set when the transport
// reported a failure and the call was normalized under ValidStatusAll.
type Status struct {
	Code      int
	Transport httpclient.ErrorCode
}

// IsTransport reports whether the status carries a transport error code.
func (s Status) IsTransport() bool { return s.Transport != "" }

func (s Status) String() string {
	switch {
	case s.Transport == "":
		return fmt.Sprintf("%d", s.Code)
	case s.Code == 0:
		return string(s.Transport)
	default:
		return fmt.Sprintf("%s (%d)", s.Transport, s.Code)
	}
}

// Result is the normalized outcome of a call. Data holds the decoded body
// of statuses below 400 and Error holds the decoded body of 4xx and 5xx
// statuses. Both are nil for transport failures without a response.
type Result[D, E any] struct {
	Status   Status
	Data     *D
	Error    *E
	Response *httpclient.Response
}

// IsSuccess reports whether the call produced a 2xx response.
func (r *Result[D, E]) IsSuccess() bool {
	return !r.Status.IsTransport() && r.Status.Code >= 200 && r.Status.Code < 300
}
