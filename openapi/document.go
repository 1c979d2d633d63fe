package openapi

import (
	"encoding/json"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

// Document is an OpenAPI 3.1 document.
type Document struct {
	OpenAPI string              `json:"openapi" yaml:"openapi"`
	Info    Info                `json:"info" yaml:"info"`
	Paths   map[string]PathItem `json:"paths" yaml:"paths"`
}

// Info holds API metadata.
type Info struct {
	Title   string `json:"title" yaml:"title"`
	Version string `json:"version" yaml:"version"`
}

// PathItem maps lower-case HTTP methods to operations.
type PathItem map[string]Operation

// Document renders the registered operations as an OpenAPI document.
func (s *Schema) Document() Document {
	doc := Document{
		OpenAPI: "3.1.0",
		Info:    Info{Title: s.Title, Version: s.Version},
		Paths:   make(map[string]PathItem),
	}
	for _, op := range s.Operations() {
		item := doc.Paths[op.Path]
		if item == nil {
			item = make(PathItem)
			doc.Paths[op.Path] = item
		}
		item[strings.ToLower(op.Method)] = op
	}
	return doc
}

// WriteJSON writes the document as indented JSON to w.
func (s *Schema) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(s.Document())
}

// WriteYAML writes the document as YAML to w.
func (s *Schema) WriteYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(s.Document()); err != nil {
		return err
	}
	return enc.Close()
}
