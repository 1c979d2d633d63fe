// Package validation checks configuration structs and request input.
//
// Struct tags are checked with the go-playground validator, using json or
// mapstructure tag names in messages:
//
//	type Config struct {
//	    BaseURL string `mapstructure:"base_url" validate:"required,url"`
//	}
//	err := validation.Validate(cfg)
//
// Imperative checks collect errors with a Validator:
//
//	v := validation.New()
//	v.OneOf("format", format, []string{"json", "yaml"})
//	err := v.Validate()
package validation
