package openapi

import (
	"bytes"
	"encoding/json"
	"encoding/xml"
	"errors"
	"mime"
	"reflect"
	"slices"
	"strings"

	"github.com/Denwa799/openapi-example/httpclient"
)

type bodyKind string

const (
	kindJSON  bodyKind = "json"
	kindXML   bodyKind = "xml"
	kindText  bodyKind = "text"
	kindBytes bodyKind = "bytes"
)

// decodeBody decodes resp.Body into a new T. Empty bodies give the zero
// value.
func decodeBody[T any](resp *httpclient.Response, rt ResponseType, op *Operation) (*T, error) {
	v := new(T)
	if len(resp.Body) == 0 {
		return v, nil
	}
	kind := kindOf(resp, rt, op)
	fail := func(err error) (*T, error) {
		return nil, &DecodeError{
			StatusCode:  resp.StatusCode,
			ContentType: resp.Header("Content-Type"),
			Target:      reflect.TypeFor[T]().String(),
			Err:         err,
		}
	}

	switch target := any(v).(type) {
	case *[]byte:
		*target = bytes.Clone(resp.Body)
		return v, nil
	case *json.RawMessage:
		*target = bytes.Clone(resp.Body)
		return v, nil
	case *string:
		if kind == kindJSON {
			var s string
			if json.Unmarshal(resp.Body, &s) == nil {
				*target = s
				return v, nil
			}
		}
		*target = string(resp.Body)
		return v, nil
	case *any:
		if kind != kindJSON {
			*target = string(resp.Body)
			return v, nil
		}
		if err := json.Unmarshal(resp.Body, target); err != nil {
			return fail(err)
		}
		return v, nil
	}

	switch kind {
	case kindJSON:
		if err := json.Unmarshal(resp.Body, v); err != nil {
			return fail(err)
		}
	case kindXML:
		if err := xml.Unmarshal(resp.Body, v); err != nil {
			return fail(err)
		}
	default:
		return fail(errors.New(string(kind) + " body needs a string or []byte target"))
	}
	return v, nil
}

// kindOf picks the decoder: the forced response type, then the
// Content-Type header, then the schema's declared content type, then JSON.
func kindOf(resp *httpclient.Response, rt ResponseType, op *Operation) bodyKind {
	switch rt {
	case ResponseTypeJSON:
		return kindJSON
	case ResponseTypeXML:
		return kindXML
	case ResponseTypeText:
		return kindText
	case ResponseTypeBytes:
		return kindBytes
	}
	if k, ok := kindOfMediaType(resp.Header("Content-Type")); ok {
		return k
	}
	if op != nil {
		if spec, ok := op.ResponseFor(resp.StatusCode); ok {
			for _, ct := range sortedKeys(spec.Content) {
				if k, ok := kindOfMediaType(ct); ok {
					return k
				}
			}
		}
	}
	return kindJSON
}

func kindOfMediaType(contentType string) (bodyKind, bool) {
	if contentType == "" {
		return "", false
	}
	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return "", false
	}
	switch {
	case mt == "application/json" || strings.HasSuffix(mt, "+json"):
		return kindJSON, true
	case mt == "application/xml" || mt == "text/xml" || strings.HasSuffix(mt, "+xml"):
		return kindXML, true
	case strings.HasPrefix(mt, "text/"):
		return kindText, true
	case mt == "application/octet-stream":
		return kindBytes, true
	}
	return "", false
}

func sortedKeys(m map[string]MediaType) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
