package main

import (
	"github.com/Denwa799/openapi-example/config"
	"github.com/Denwa799/openapi-example/demoapi"
	"github.com/Denwa799/openapi-example/httpclient"
	"github.com/Denwa799/openapi-example/observability"
	"github.com/Denwa799/openapi-example/openapi"
	"github.com/Denwa799/openapi-example/validation"
)

const (
	serviceName = "demo-client"
	maxCalls    = 10000
)

// Config is the demo-client configuration file layout.
type Config struct {
	config.ServiceConfig `yaml:",inline" mapstructure:",squash"`

	Client        httpclient.Config    `yaml:"client" mapstructure:"client"`
	ValidStatus   string               `yaml:"valid_status" mapstructure:"valid_status"`
	Calls         int                  `yaml:"calls" mapstructure:"calls"`
	Observability observability.Config `yaml:"observability" mapstructure:"observability"`
}

// ApplyDefaults fills unset fields.
func (c *Config) ApplyDefaults() {
	if c.Name == "" {
		c.Name = serviceName
	}
	c.ServiceConfig.ApplyDefaults()
	if c.Client.Name == "" {
		c.Client.Name = serviceName
	}
	if c.Client.BaseURL == "" {
		c.Client.BaseURL = demoapi.DefaultBaseURL
	}
	c.Client.ApplyDefaults()
	if c.ValidStatus == "" {
		c.ValidStatus = string(openapi.ValidStatusAll)
	}
	if c.Calls <= 0 {
		c.Calls = 1
	}
	if c.Observability.ServiceName == "" {
		c.Observability.ServiceName = c.Name
	}
	if c.Observability.Environment == "" {
		c.Observability.Environment = c.Environment
	}
	c.Observability.ApplyDefaults()
}

// Validate checks every section.
func (c *Config) Validate() error {
	if err := c.ServiceConfig.Validate(); err != nil {
		return err
	}
	if err := c.Client.Validate(); err != nil {
		return err
	}
	if err := c.Observability.Validate(); err != nil {
		return err
	}
	return validation.New().
		Range("calls", c.Calls, 1, maxCalls).
		OneOf("valid_status", c.ValidStatus, []string{string(openapi.ValidStatusAll), string(openapi.ValidStatusNative)}).
		Validate()
}

func loadConfig(path string) (*Config, error) {
	cfg := &Config{}
	var opts []config.LoaderOption
	if path != "" {
		opts = append(opts, config.WithConfigFile(path))
	}
	if err := config.LoadConfig(serviceName, cfg, opts...); err != nil {
		return nil, err
	}
	return cfg, nil
}
