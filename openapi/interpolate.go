package openapi

import (
	"fmt"
	"net/url"
	"strings"
)

// InterpolateParams replaces every {name} placeholder in template with the
// path-escaped string form of params[name]. Parameters not named by the
// template are ignored. A placeholder without a value, or with a nil
// value, yields a *MissingParamError.
func InterpolateParams(template string, params map[string]any) (string, error) {
	var b strings.Builder
	b.Grow(len(template))
	err := scanTemplate(template, func(literal string) {
		b.WriteString(literal)
	}, func(name string) error {
		v, ok := params[name]
		if !ok || v == nil {
			return &MissingParamError{Name: name, In: "path", Template: template}
		}
		b.WriteString(url.PathEscape(fmt.Sprint(v)))
		return nil
	})
	if err != nil {
		return "", err
	}
	return b.String(), nil
}

// Placeholders returns the placeholder names of template in order.
func Placeholders(template string) ([]string, error) {
	var names []string
	err := scanTemplate(template, func(string) {}, func(name string) error {
		names = append(names, name)
		return nil
	})
	return names, err
}

// scanTemplate walks template, passing literal runs to literal and
// placeholder names to param.
func scanTemplate(template string, literal func(string), param func(string) error) error {
	rest := template
	for {
		open := strings.IndexByte(rest, '{')
		if open < 0 {
			literal(rest)
			return nil
		}
		literal(rest[:open])
		rest = rest[open+1:]

		end := strings.IndexByte(rest, '}')
		if end < 0 {
			return fmt.Errorf("%w: unclosed '{' in %q", ErrMalformedTemplate, template)
		}
		name := rest[:end]
		if name == "" || strings.ContainsAny(name, "{/") {
			return fmt.Errorf("%w: bad placeholder %q in %q", ErrMalformedTemplate, name, template)
		}
		if err := param(name); err != nil {
			return err
		}
		rest = rest[end+1:]
	}
}
