package openapi

import (
	"fmt"
	"net/http"
	"regexp"
	"slices"
	"sort"
	"strconv"
	"strings"
)

// Parameter describes a path or query parameter.
type Parameter struct {
	Name        string      `json:"name" yaml:"name"`
	In          string      `json:"in" yaml:"in"`
	Description string      `json:"description,omitempty" yaml:"description,omitempty"`
	Required    bool        `json:"required,omitempty" yaml:"required,omitempty"`
	Schema      *JSONSchema `json:"schema,omitempty" yaml:"schema,omitempty"`
}

// Parameter locations.
const (
	InPath  = "path"
	InQuery = "query"
)

// MediaType is the schema of one content type.
type MediaType struct {
	Schema  *JSONSchema `json:"schema,omitempty" yaml:"schema,omitempty"`
	Example any         `json:"example,omitempty" yaml:"example,omitempty"`
}

// RequestBody describes an operation's request body.
type RequestBody struct {
	Required bool                 `json:"required,omitempty" yaml:"required,omitempty"`
	Content  map[string]MediaType `json:"content" yaml:"content"`
}

// ResponseSpec describes the response for one status key.
type ResponseSpec struct {
	Description string               `json:"description" yaml:"description"`
	Content     map[string]MediaType `json:"content,omitempty" yaml:"content,omitempty"`
}

// Operation describes one method on one path template. Responses are
// keyed by status code ("200"), class ("4XX") or "default".
type Operation struct {
	Method      string                  `json:"-" yaml:"-"`
	Path        string                  `json:"-" yaml:"-"`
	OperationID string                  `json:"operationId,omitempty" yaml:"operationId,omitempty"`
	Summary     string                  `json:"summary,omitempty" yaml:"summary,omitempty"`
	Tags        []string                `json:"tags,omitempty" yaml:"tags,omitempty"`
	Parameters  []Parameter             `json:"parameters,omitempty" yaml:"parameters,omitempty"`
	RequestBody *RequestBody            `json:"requestBody,omitempty" yaml:"requestBody,omitempty"`
	Responses   map[string]ResponseSpec `json:"responses" yaml:"responses"`
}

// ResponseFor returns the response declared for status: the exact code
// first, then its class, then "default".
func (op *Operation) ResponseFor(status int) (ResponseSpec, bool) {
	if r, ok := op.Responses[strconv.Itoa(status)]; ok {
		return r, true
	}
	if r, ok := op.Responses[fmt.Sprintf("%dXX", status/100)]; ok {
		return r, true
	}
	r, ok := op.Responses["default"]
	return r, ok
}

// ContentTypes returns every response content type of op, sorted.
func (op *Operation) ContentTypes() []string {
	var types []string
	for _, r := range op.Responses {
		for ct := range r.Content {
			if !slices.Contains(types, ct) {
				types = append(types, ct)
			}
		}
	}
	sort.Strings(types)
	return types
}

// Schema is a registry of operations. Register operations before sharing
// the schema; lookups are safe for concurrent use once registration is
// complete.
type Schema struct {
	Title   string
	Version string

	ops   []*Operation
	index map[string]*Operation
}

// NewSchema creates an empty schema.
func NewSchema(title, version string) *Schema {
	return &Schema{
		Title:   title,
		Version: version,
		index:   make(map[string]*Operation),
	}
}

var (
	knownMethods = []string{
		http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch,
		http.MethodDelete, http.MethodHead, http.MethodOptions,
	}
	statusKey = regexp.MustCompile(`^(?:[1-5][0-9][0-9]|[1-5]XX|default)$`)
)

func operationKey(method, path string) string {
	return strings.ToUpper(method) + " " + path
}

// Register validates ops and adds them. Either every operation is added
// or none is.
func (s *Schema) Register(ops ...Operation) error {
	pending := make(map[string]bool, len(ops))
	prepared := make([]*Operation, 0, len(ops))
	for _, op := range ops {
		p, err := prepareOperation(op)
		if err != nil {
			return err
		}
		key := operationKey(p.Method, p.Path)
		if _, dup := s.index[key]; dup || pending[key] {
			return fmt.Errorf("%w: %s registered twice", ErrInvalidOperation, key)
		}
		pending[key] = true
		prepared = append(prepared, p)
	}

	for _, p := range prepared {
		s.ops = append(s.ops, p)
		s.index[operationKey(p.Method, p.Path)] = p
	}
	return nil
}

// MustRegister is Register that panics on error.
func (s *Schema) MustRegister(ops ...Operation) *Schema {
	if err := s.Register(ops...); err != nil {
		panic(err)
	}
	return s
}

// Lookup returns the operation registered for method and path template.
// The returned operation must not be modified.
func (s *Schema) Lookup(method, path string) (*Operation, bool) {
	op, ok := s.index[operationKey(method, path)]
	return op, ok
}

// Operations returns copies of the registered operations sorted by path
// and method.
func (s *Schema) Operations() []Operation {
	out := make([]Operation, len(s.ops))
	for i, op := range s.ops {
		out[i] = *op
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Path != out[j].Path {
			return out[i].Path < out[j].Path
		}
		return slices.Index(knownMethods, out[i].Method) < slices.Index(knownMethods, out[j].Method)
	})
	return out
}

// prepareOperation validates op and returns a normalized copy.
func prepareOperation(op Operation) (*Operation, error) {
	op.Method = strings.ToUpper(op.Method)
	where := op.Method + " " + op.Path
	invalid := func(format string, args ...any) error {
		return fmt.Errorf("%w: %s: %s", ErrInvalidOperation, where, fmt.Sprintf(format, args...))
	}

	if !slices.Contains(knownMethods, op.Method) {
		return nil, invalid("unknown method")
	}
	if !strings.HasPrefix(op.Path, "/") {
		return nil, invalid("path must start with /")
	}
	names, err := Placeholders(op.Path)
	if err != nil {
		return nil, invalid("%v", err)
	}

	params := make([]Parameter, len(op.Parameters))
	copy(params, op.Parameters)
	seen := make(map[string]bool, len(params))
	var pathParams []string
	for i := range params {
		p := &params[i]
		if p.Name == "" {
			return nil, invalid("parameter without a name")
		}
		if seen[p.In+":"+p.Name] {
			return nil, invalid("parameter %q declared twice", p.Name)
		}
		seen[p.In+":"+p.Name] = true
		switch p.In {
		case InPath:
			p.Required = true
			pathParams = append(pathParams, p.Name)
		case InQuery:
		default:
			return nil, invalid("parameter %q has unsupported location %q", p.Name, p.In)
		}
		if p.Schema == nil {
			p.Schema = StringSchema()
		}
	}
	for _, n := range names {
		if !slices.Contains(pathParams, n) {
			return nil, invalid("placeholder {%s} has no path parameter", n)
		}
	}
	for _, n := range pathParams {
		if !slices.Contains(names, n) {
			return nil, invalid("path parameter %q has no placeholder", n)
		}
	}
	op.Parameters = params

	if len(op.Responses) == 0 {
		return nil, invalid("at least one response is required")
	}
	responses := make(map[string]ResponseSpec, len(op.Responses))
	for key, r := range op.Responses {
		if !statusKey.MatchString(key) {
			return nil, invalid("bad response key %q", key)
		}
		if r.Description == "" {
			r.Description = describeStatus(key)
		}
		responses[key] = r
	}
	op.Responses = responses
	op.Tags = slices.Clone(op.Tags)
	return &op, nil
}

// describeStatus returns a default description for a response key.
func describeStatus(key string) string {
	if code, err := strconv.Atoi(key); err == nil {
		if text := http.StatusText(code); text != "" {
			return text
		}
	}
	switch key {
	case "default":
		return "Default response"
	case "1XX":
		return "Informational"
	case "2XX":
		return "Success"
	case "3XX":
		return "Redirection"
	case "4XX":
		return "Client error"
	case "5XX":
		return "Server error"
	}
	return "Response " + key
}
