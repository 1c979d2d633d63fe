package demoserver

import (
	"fmt"

	"github.com/Denwa799/openapi-example/validation"
)

// Scenario modes.
const (
	ModeRandom      = "random"
	ModeSuccess     = "success"
	ModeBadRequest  = "bad_request"
	ModeServerError = "server_error"
)

// Config selects how the demo routes answer.
type Config struct {
	// Mode is random, success, bad_request or server_error.
	Mode string `yaml:"mode" mapstructure:"mode" validate:"oneof=random success bad_request server_error"`
	// Seed seeds the random mode. Zero seeds from the clock.
	Seed uint64 `yaml:"seed" mapstructure:"seed"`
}

// ApplyDefaults fills in zero-value fields.
func (c *Config) ApplyDefaults() {
	if c.Mode == "" {
		c.Mode = ModeRandom
	}
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if err := validation.Validate(c); err != nil {
		return fmt.Errorf("demo: %w", err)
	}
	return nil
}

// NewScenario builds the scenario selected by cfg.
func NewScenario(cfg Config) (Scenario, error) {
	switch cfg.Mode {
	case ModeRandom, "":
		return NewRandomScenario(cfg.Seed), nil
	case ModeSuccess:
		return FixedScenario(OutcomeSuccess), nil
	case ModeBadRequest:
		return FixedScenario(OutcomeBadRequest), nil
	case ModeServerError:
		return FixedScenario(OutcomeServerError), nil
	default:
		return nil, fmt.Errorf("demo: unknown mode %q", cfg.Mode)
	}
}
