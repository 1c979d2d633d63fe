package demoapi

import (
	"context"
	"fmt"
	"net/http"

	"github.com/Denwa799/openapi-example/openapi"
)

// AlternativeOutput is shown instead of the data when a call answers 400.
const AlternativeOutput = "Alternative output"

// Fetcher calls the demo routes with typed results.
type Fetcher struct {
	client *openapi.Client
}

// NewFetcher creates a Fetcher over client.
func NewFetcher(client *openapi.Client) *Fetcher {
	return &Fetcher{client: client}
}

// GetText calls GET /text.
func (f *Fetcher) GetText(ctx context.Context, opts ...openapi.CallOption) (*openapi.Result[string, ErrorBody], error) {
	return openapi.Get[string, ErrorBody](ctx, f.client, PathText, opts...)
}

// GetJSON calls GET /json.
func (f *Fetcher) GetJSON(ctx context.Context, opts ...openapi.CallOption) (*openapi.Result[JSONPayload, ErrorBody], error) {
	return openapi.Get[JSONPayload, ErrorBody](ctx, f.client, PathJSON, opts...)
}

// GetXML calls GET /xml.
func (f *Fetcher) GetXML(ctx context.Context, opts ...openapi.CallOption) (*openapi.Result[XMLExample, ErrorBody], error) {
	return openapi.Get[XMLExample, ErrorBody](ctx, f.client, PathXML, opts...)
}

// Outcome is the display form of one demo call.
type Outcome struct {
	Path   string
	Status openapi.Status
	Text   string
}

// Fetch calls path and renders its result: the data on 200, the
// alternative output on 400 and the error message otherwise.
func (f *Fetcher) Fetch(ctx context.Context, path string, opts ...openapi.CallOption) (Outcome, error) {
	switch path {
	case PathText:
		res, err := f.GetText(ctx, opts...)
		if err != nil {
			return Outcome{}, err
		}
		return render(path, res, func(s *string) string { return *s }), nil
	case PathJSON:
		res, err := f.GetJSON(ctx, opts...)
		if err != nil {
			return Outcome{}, err
		}
		return render(path, res, func(p *JSONPayload) string { return p.Data }), nil
	case PathXML:
		res, err := f.GetXML(ctx, opts...)
		if err != nil {
			return Outcome{}, err
		}
		return render(path, res, func(x *XMLExample) string { return x.Text }), nil
	default:
		return Outcome{}, fmt.Errorf("demoapi: unknown path %q", path)
	}
}

func render[D any](path string, res *openapi.Result[D, ErrorBody], data func(*D) string) Outcome {
	out := Outcome{Path: path, Status: res.Status}
	switch {
	case res.Status.Code == http.StatusOK && res.Data != nil:
		out.Text = data(res.Data)
	case res.Status.Code == http.StatusBadRequest:
		out.Text = AlternativeOutput
	case res.Error != nil:
		out.Text = res.Error.Message
	default:
		out.Text = res.Status.String()
	}
	return out
}
