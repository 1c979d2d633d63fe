package openapi

import (
	"encoding/json"
	"reflect"
	"strings"
	"time"
)

// JSONSchema is the subset of JSON Schema used in OpenAPI 3.1 documents.
type JSONSchema struct {
	Type                 string                 `json:"type,omitempty" yaml:"type,omitempty"`
	Format               string                 `json:"format,omitempty" yaml:"format,omitempty"`
	Description          string                 `json:"description,omitempty" yaml:"description,omitempty"`
	Properties           map[string]*JSONSchema `json:"properties,omitempty" yaml:"properties,omitempty"`
	Required             []string               `json:"required,omitempty" yaml:"required,omitempty"`
	Items                *JSONSchema            `json:"items,omitempty" yaml:"items,omitempty"`
	AdditionalProperties *JSONSchema            `json:"additionalProperties,omitempty" yaml:"additionalProperties,omitempty"`
	Enum                 []any                  `json:"enum,omitempty" yaml:"enum,omitempty"`
	Example              any                    `json:"example,omitempty" yaml:"example,omitempty"`
}

// StringSchema returns {"type": "string"}.
func StringSchema() *JSONSchema {
	return &JSONSchema{Type: "string"}
}

// SchemaFor derives a JSON schema from T. Struct fields are named by
// their json tags and are required unless tagged omitempty or declared
// as pointers. Fields of untagged embedded structs are promoted like
// encoding/json does. A struct reached again inside itself is emitted as
// a bare object.
func SchemaFor[T any]() *JSONSchema {
	b := schemaBuilder{active: make(map[reflect.Type]bool)}
	return b.schema(reflect.TypeFor[T]())
}

// schemaBuilder tracks the struct types on the current path.
type schemaBuilder struct {
	active map[reflect.Type]bool
}

func (b *schemaBuilder) schema(t reflect.Type) *JSONSchema {
	if t.Kind() == reflect.Pointer {
		return b.schema(t.Elem())
	}

	switch t {
	case reflect.TypeFor[time.Time]():
		return &JSONSchema{Type: "string", Format: "date-time"}
	case reflect.TypeFor[time.Duration]():
		return &JSONSchema{Type: "string", Format: "duration"}
	case reflect.TypeFor[json.RawMessage]():
		return &JSONSchema{}
	}

	switch t.Kind() {
	case reflect.String:
		return &JSONSchema{Type: "string"}
	case reflect.Bool:
		return &JSONSchema{Type: "boolean"}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return &JSONSchema{Type: "integer"}
	case reflect.Float32, reflect.Float64:
		return &JSONSchema{Type: "number"}
	case reflect.Slice:
		if t.Elem().Kind() == reflect.Uint8 {
			return &JSONSchema{Type: "string", Format: "binary"}
		}
		return &JSONSchema{Type: "array", Items: b.schema(t.Elem())}
	case reflect.Array:
		return &JSONSchema{Type: "array", Items: b.schema(t.Elem())}
	case reflect.Map:
		if t.Key().Kind() != reflect.String {
			return &JSONSchema{Type: "object"}
		}
		return &JSONSchema{Type: "object", AdditionalProperties: b.schema(t.Elem())}
	case reflect.Struct:
		if b.active[t] {
			return &JSONSchema{Type: "object"}
		}
		b.active[t] = true
		defer delete(b.active, t)
		schema := &JSONSchema{Type: "object", Properties: make(map[string]*JSONSchema)}
		b.addFields(schema, t, false)
		return schema
	default:
		return &JSONSchema{}
	}
}

// addFields adds the JSON fields of struct t to schema. Names already
// present win over promoted ones. optional marks fields promoted through
// an embedded pointer, which may be absent.
func (b *schemaBuilder) addFields(schema *JSONSchema, t reflect.Type, optional bool) {
	var embedded []reflect.StructField
	for i := range t.NumField() {
		f := t.Field(i)
		name, opts, tagged := jsonField(f)
		if name == "-" {
			continue
		}
		if f.Anonymous && !tagged && indirect(f.Type).Kind() == reflect.Struct {
			embedded = append(embedded, f)
			continue
		}
		if !f.IsExported() {
			continue
		}
		if _, dup := schema.Properties[name]; dup {
			continue
		}

		prop := b.schema(f.Type)
		if doc := f.Tag.Get("doc"); doc != "" {
			prop.Description = doc
		}
		schema.Properties[name] = prop

		if !optional && !strings.Contains(opts, "omitempty") && f.Type.Kind() != reflect.Pointer {
			schema.Required = append(schema.Required, name)
		}
	}

	for _, f := range embedded {
		et := indirect(f.Type)
		if b.active[et] {
			continue
		}
		b.active[et] = true
		b.addFields(schema, et, optional || f.Type.Kind() == reflect.Pointer)
		delete(b.active, et)
	}
}

func indirect(t reflect.Type) reflect.Type {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t
}

// jsonField returns the JSON name of a struct field, its tag options and
// whether the tag named the field.
func jsonField(f reflect.StructField) (string, string, bool) {
	name, opts, _ := strings.Cut(f.Tag.Get("json"), ",")
	if name == "" {
		return f.Name, opts, false
	}
	return name, opts, true
}
