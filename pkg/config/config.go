// Package config holds the runtime configuration for a pipeline run.
package config

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

const (
	DefaultBaseURL     = "https://www.aziro.com"
	DefaultContactURL  = "https://www.aziro.com/contact-us/"
	DefaultDatabaseURL = "file://pagewalk_output"
	DefaultStepTimeout = 30 * time.Second
	DefaultSettleDelay = 2 * time.Second
)

// Config is the explicit configuration passed into the run controller at
// construction. There is no process-wide mutable state.
type Config struct {
	BaseURL     string        `json:"base_url"     validate:"required,url"`
	ContactURL  string        `json:"contact_url"  validate:"required,url"`
	DatabaseURL string        `json:"database_url" validate:"required"`
	StepTimeout time.Duration `json:"step_timeout" validate:"gt=0"`
	SettleDelay time.Duration `json:"settle_delay" validate:"gte=0"`
	LogLevel    string        `json:"log_level"    validate:"oneof=debug info warn error"`
}

// Default returns the configuration used when no overrides are given.
func Default() Config {
	return Config{
		BaseURL:     DefaultBaseURL,
		ContactURL:  DefaultContactURL,
		DatabaseURL: DefaultDatabaseURL,
		StepTimeout: DefaultStepTimeout,
		SettleDelay: DefaultSettleDelay,
		LogLevel:    "info",
	}
}

// Validate checks the configuration against its struct tags.
func (c Config) Validate() error {
	validate := validator.New(validator.WithRequiredStructEnabled())

	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	return nil
}

// Target returns the target identifiers stamped into each session.
func (c Config) Target() map[string]string {
	return map[string]string{
		"base_url":    c.BaseURL,
		"contact_url": c.ContactURL,
	}
}
