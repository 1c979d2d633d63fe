package openapi

import "fmt"

// ValidStatus selects how HTTP statuses and transport failures map to
// results.
type ValidStatus string

const (
	// ValidStatusAll resolves every status into a Result and normalizes
	// transport errors into one.
	ValidStatusAll ValidStatus = "all"
	// ValidStatusNative keeps the transport's 2xx rule and returns its
	// errors unchanged.
	ValidStatusNative ValidStatus = "native"
)

// Validate reports whether v is a known policy.
func (v ValidStatus) Validate() error {
	switch v {
	case ValidStatusAll, ValidStatusNative:
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrInvalidValidStatus, string(v))
	}
}

// ParseValidStatus converts a configuration string into a policy.
func ParseValidStatus(s string) (ValidStatus, error) {
	v := ValidStatus(s)
	if err := v.Validate(); err != nil {
		return "", err
	}
	return v, nil
}

// ResponseType forces how response bodies are decoded.
type ResponseType string

const (
	// ResponseTypeAuto decodes by Content-Type, then by the schema.
	ResponseTypeAuto  ResponseType = ""
	ResponseTypeJSON  ResponseType = "json"
	ResponseTypeText  ResponseType = "text"
	ResponseTypeXML   ResponseType = "xml"
	ResponseTypeBytes ResponseType = "bytes"
)

// Validate reports whether t is a known response type.
func (t ResponseType) Validate() error {
	switch t {
	case ResponseTypeAuto, ResponseTypeJSON, ResponseTypeText, ResponseTypeXML, ResponseTypeBytes:
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrInvalidResponseType, string(t))
	}
}

// accept returns the Accept header value for t, or "" for auto.
func (t ResponseType) accept() string {
	switch t {
	case ResponseTypeJSON:
		return "application/json"
	case ResponseTypeText:
		return "text/plain"
	case ResponseTypeXML:
		return "application/xml"
	case ResponseTypeBytes:
		return "application/octet-stream"
	default:
		return ""
	}
}
