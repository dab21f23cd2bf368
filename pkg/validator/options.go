package validator

import (
	"log/slog"
)

// RuleOption customizes the error reported by a rule.
type RuleOption func(*ruleConfig)

type ruleConfig struct {
	displayName string
	message     string
}

// WithDisplayName sets the name used in the error message in place of the
// field name.
func WithDisplayName(name string) RuleOption {
	return func(c *ruleConfig) {
		if name != "" {
			c.displayName = name
		}
	}
}

// WithMessage replaces the default message format. The format receives the
// same arguments as the default, starting with the display name.
func WithMessage(format string) RuleOption {
	return func(c *ruleConfig) {
		if format != "" {
			c.message = format
		}
	}
}

func newRuleConfig(field, message string, opts []RuleOption) ruleConfig {
	c := ruleConfig{displayName: field, message: message}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// ValidateOption configures Validate and RuleSet.Validate.
type ValidateOption func(*validateConfig)

type validateConfig struct {
	registry *Registry
	log      *slog.Logger
}

// WithRegistry resolves rule names against r instead of DefaultRegistry.
func WithRegistry(r *Registry) ValidateOption {
	return func(c *validateConfig) {
		if r != nil {
			c.registry = r
		}
	}
}

// WithLogger logs every failed rule at debug level.
func WithLogger(l *slog.Logger) ValidateOption {
	return func(c *validateConfig) {
		c.log = l
	}
}

func newValidateConfig(opts []ValidateOption) validateConfig {
	c := validateConfig{registry: DefaultRegistry}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}
