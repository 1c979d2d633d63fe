package openapi

import (
	"encoding/xml"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/Denwa799/openapi-example/httpclient"
)

type xmlExample struct {
	XMLName xml.Name `xml:"example"`
	Text    string   `xml:",chardata"`
}

func response(status int, contentType, body string) *httpclient.Response {
	r := &httpclient.Response{StatusCode: status, Headers: map[string]string{}, Body: []byte(body)}
	if contentType != "" {
		r.Headers["Content-Type"] = contentType
	}
	return r
}

func TestDecodeBody_Targets(t *testing.T) {
	t.Run("string from text", func(t *testing.T) {
		got, err := decodeBody[string](response(200, "text/plain", "text plain"), ResponseTypeAuto, nil)
		if err != nil || *got != "text plain" {
			t.Errorf("got %q, %v", *got, err)
		}
	})
	t.Run("string from json string", func(t *testing.T) {
		got, err := decodeBody[string](response(200, "application/json", `"quoted"`), ResponseTypeAuto, nil)
		if err != nil || *got != "quoted" {
			t.Errorf("got %q, %v", *got, err)
		}
	})
	t.Run("string from json object", func(t *testing.T) {
		got, err := decodeBody[string](response(200, "application/json", `{"a":1}`), ResponseTypeAuto, nil)
		if err != nil || *got != `{"a":1}` {
			t.Errorf("got %q, %v", *got, err)
		}
	})
	t.Run("bytes", func(t *testing.T) {
		got, err := decodeBody[[]byte](response(200, "application/xml", "<a/>"), ResponseTypeAuto, nil)
		if err != nil || string(*got) != "<a/>" {
			t.Errorf("got %q, %v", *got, err)
		}
	})
	t.Run("any json", func(t *testing.T) {
		got, err := decodeBody[any](response(200, "application/problem+json", `{"n":1}`), ResponseTypeAuto, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if diff := cmp.Diff(map[string]any{"n": 1.0}, *got); diff != "" {
			t.Errorf("mismatch (-want +got):\n%s", diff)
		}
	})
	t.Run("any text", func(t *testing.T) {
		got, err := decodeBody[any](response(200, "text/html", "<p>"), ResponseTypeAuto, nil)
		if err != nil || *got != "<p>" {
			t.Errorf("got %v, %v", *got, err)
		}
	})
	t.Run("xml struct", func(t *testing.T) {
		got, err := decodeBody[xmlExample](response(200, "application/xml; charset=utf-8",
			"<example>This is an example response</example>"), ResponseTypeAuto, nil)
		if err != nil || got.Text != "This is an example response" {
			t.Errorf("got %+v, %v", got, err)
		}
	})
	t.Run("empty body", func(t *testing.T) {
		got, err := decodeBody[payload](response(204, "", ""), ResponseTypeAuto, nil)
		if err != nil || got == nil || *got != (payload{}) {
			t.Errorf("got %+v, %v", got, err)
		}
	})
}

func TestDecodeBody_KindResolution(t *testing.T) {
	op := &Operation{Responses: map[string]ResponseSpec{
		"200": {Content: map[string]MediaType{"application/xml": {}}},
	}}
	body := "<example>hi</example>"

	got, err := decodeBody[xmlExample](response(200, "", body), ResponseTypeAuto, op)
	if err != nil || got.Text != "hi" {
		t.Errorf("schema content type: got %+v, %v", got, err)
	}

	got, err = decodeBody[xmlExample](response(200, "text/plain", body), ResponseTypeXML, nil)
	if err != nil || got.Text != "hi" {
		t.Errorf("forced xml: got %+v, %v", got, err)
	}

	forced, err := decodeBody[any](response(200, "application/json", `{"a":1}`), ResponseTypeText, nil)
	if err != nil || *forced != `{"a":1}` {
		t.Errorf("forced text: got %v, %v", *forced, err)
	}

	p, err := decodeBody[payload](response(200, "", `{"data":"x"}`), ResponseTypeAuto, nil)
	if err != nil || p.Data != "x" {
		t.Errorf("json fallback: got %+v, %v", p, err)
	}
}

func TestDecodeBody_Errors(t *testing.T) {
	tests := []struct {
		name string
		resp *httpclient.Response
		rt   ResponseType
	}{
		{"invalid json", response(200, "application/json", "{"), ResponseTypeAuto},
		{"text into struct", response(200, "text/plain", "text plain"), ResponseTypeAuto},
		{"bytes into struct", response(200, "", "x"), ResponseTypeBytes},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := decodeBody[payload](tt.resp, tt.rt, nil)
			var de *DecodeError
			if !errors.As(err, &de) {
				t.Fatalf("expected *DecodeError, got %v", err)
			}
			if de.StatusCode != 200 || de.Target != "openapi.payload" {
				t.Errorf("decode error = %+v", de)
			}
		})
	}
}

func TestNormalize_SuccessDecodeFailurePropagates(t *testing.T) {
	ft := &fakeTransport{resp: jsonResponse(200, "not json")}
	c := newTestClient(t, ft)

	_, err := Get[payload, testError](t.Context(), c, "/json")
	var de *DecodeError
	if !errors.As(err, &de) {
		t.Errorf("expected *DecodeError, got %v", err)
	}
}

func TestNormalize_UndecodableErrorBody(t *testing.T) {
	gateway := response(502, "text/html", "<html>Bad Gateway</html>")
	tests := []struct {
		name string
		ft   *fakeTransport
		opts []CallOption
		want Status
	}{
		{"status under all", &fakeTransport{resp: gateway}, nil, Status{Code: 502}},
		{
			"rejected by a custom validator",
			&fakeTransport{resp: gateway},
			[]CallOption{WithTransportOptions(httpclient.WithValidateStatus(func(s int) bool { return s < 500 }))},
			Status{Code: 502, Transport: httpclient.ErrCodeBadResponse},
		},
		{
			"transport error carrying the response",
			&fakeTransport{err: httpclient.NewStatusError(gateway)},
			nil,
			Status{Code: 502, Transport: httpclient.ErrCodeBadResponse},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := newTestClient(t, tc.ft)
			res, err := Get[payload, testError](t.Context(), c, "/json", tc.opts...)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if res.Status != tc.want {
				t.Errorf("status = %v, want %v", res.Status, tc.want)
			}
			if res.Error != nil || res.Data != nil {
				t.Errorf("expected no decoded body, got data=%v error=%v", res.Data, res.Error)
			}
			if res.Response == nil || string(res.Response.Body) != "<html>Bad Gateway</html>" {
				t.Errorf("raw response not attached: %+v", res.Response)
			}
		})
	}
}

func TestNormalize_NoResponse(t *testing.T) {
	_, err := normalize[payload, testError](nil, nil, &call{policy: ValidStatusAll})
	if !errors.Is(err, errNoResponse) {
		t.Errorf("expected errNoResponse, got %v", err)
	}
}

func TestStatusString(t *testing.T) {
	tests := map[Status]string{
		{Code: 200}: "200",
		{Code: 400, Transport: httpclient.ErrCodeBadRequest}: "ERR_BAD_REQUEST (400)",
		{Transport: httpclient.ErrCodeTimeout}:              "ETIMEDOUT",
	}
	for s, want := range tests {
		if got := s.String(); got != want {
			t.Errorf("%+v: got %q, want %q", s, got, want)
		}
	}
}
