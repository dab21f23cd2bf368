package validator

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/reflectkit/pkg/reflection"
)

// RuleSet declares validation rules outside the validated type, keyed by
// property path. It is usually loaded from YAML:
//
//	name: booking
//	fields:
//	  - path: Guests
//	    rules:
//	      - name: empty
//	  - path: Stay.Nights
//	    display: Number of nights
//	    rules:
//	      - name: notinrange
//	        params: [7, 13]
//	        message: "%s must not be a week-long stay (%v-%v)"
type RuleSet struct {
	Name   string       `yaml:"name"`
	Fields []FieldRules `yaml:"fields"`
}

// FieldRules lists the rules applied to the value at Path.
type FieldRules struct {
	Path    string     `yaml:"path"`
	Display string     `yaml:"display,omitempty"`
	Rules   []RuleSpec `yaml:"rules"`
}

// RuleSpec names a registered rule with its parameters and optional message.
type RuleSpec struct {
	Name    string   `yaml:"name"`
	Params  []string `yaml:"params,omitempty"`
	Message string   `yaml:"message,omitempty"`
}

// ParseRuleSet decodes a YAML rule set and checks that every field has a path
// and every rule a name.
func ParseRuleSet(data []byte) (*RuleSet, error) {
	var rs RuleSet
	if err := yaml.Unmarshal(data, &rs); err != nil {
		return nil, errors.Join(ErrFailedToParseRuleSet, err)
	}

	for i, f := range rs.Fields {
		if f.Path == "" {
			return nil, fmt.Errorf("%w: field %d has no path", ErrInvalidRuleSet, i)
		}
		for j, r := range f.Rules {
			if r.Name == "" {
				return nil, fmt.Errorf("%w: rule %d of %s has no name", ErrInvalidRuleSet, j, f.Path)
			}
		}
	}
	return &rs, nil
}

// LoadRuleSet reads and parses the rule set file at path.
func LoadRuleSet(path string) (*RuleSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rule set %s: %w", path, err)
	}
	return ParseRuleSet(data)
}

// Validate applies the rule set to obj. Values are looked up with
// reflection.PropertyValue, so obj may be a struct or a decoded document
// (map[string]any); a path that does not resolve validates a nil value.
func (rs *RuleSet) Validate(obj any, opts ...ValidateOption) error {
	if rs == nil {
		return nil
	}
	cfg := newValidateConfig(opts)

	var (
		rules []Rule
		errs  []error
	)
	for _, f := range rs.Fields {
		value := reflection.PropertyValue(obj, f.Path)
		for _, spec := range f.Rules {
			ruleOpts := []RuleOption{WithDisplayName(f.Display), WithMessage(spec.Message)}
			rule, err := cfg.registry.Build(spec.Name, f.Path, value, spec.Params, ruleOpts...)
			if err != nil {
				errs = append(errs, fmt.Errorf("field %s: %w", f.Path, err))
				continue
			}
			rules = append(rules, rule)
		}
	}
	if err := errors.Join(errs...); err != nil {
		return err
	}
	return apply(cfg, rules)
}
