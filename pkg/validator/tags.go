package validator

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/dmitrymomot/reflectkit/pkg/logger"
	"github.com/dmitrymomot/reflectkit/pkg/reflection"
)

const (
	tagValidate = "validate"
	tagDisplay  = "display"
)

// Validate checks obj against the rules declared in its struct tags:
//
//	type Booking struct {
//	    Guests  []string `validate:"empty"`
//	    Nights  int      `validate:"notinrange=7,13" display:"Number of nights"`
//	    Address Address
//	}
//
// Rules are separated by ";" and their parameters by ",". The display tag
// names the field in messages. Nested structs are validated too, with their
// fields reported as "Address.City".
//
// Failed rules are returned as ValidationErrors. Malformed tags and unknown
// rules are returned as plain errors before any rule runs.
func Validate(obj any, opts ...ValidateOption) error {
	cfg := newValidateConfig(opts)

	v := reflect.ValueOf(obj)
	for v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface {
		if v.IsNil() {
			return ErrInvalidTarget
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return ErrInvalidTarget
	}

	rules, err := structRules(cfg.registry, v, "", map[visit]bool{})
	if err != nil {
		return err
	}
	return apply(cfg, rules)
}

// visit identifies a struct already walked by structRules. A struct and its
// first field share an address, so the type is part of the key.
type visit struct {
	addr uintptr
	typ  reflect.Type
}

func structRules(reg *Registry, v reflect.Value, prefix string, seen map[visit]bool) ([]Rule, error) {
	// Only values reached through a pointer can form a cycle, and those are
	// always addressable.
	if v.CanAddr() {
		key := visit{v.Addr().Pointer(), v.Type()}
		if seen[key] {
			return nil, nil
		}
		seen[key] = true
	}

	var (
		rules []Rule
		errs  []error
	)

	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}
		fv := v.Field(i)
		name := prefix + sf.Name

		if tag, ok := sf.Tag.Lookup(tagValidate); ok && tag != "-" {
			fieldRules, err := tagRules(reg, name, sf.Tag.Get(tagDisplay), tag, fv.Interface())
			if err != nil {
				errs = append(errs, err)
			}
			rules = append(rules, fieldRules...)
		}

		if nested, ok := nestedStruct(fv); ok {
			nestedRules, err := structRules(reg, nested, name+".", seen)
			if err != nil {
				errs = append(errs, err)
			}
			rules = append(rules, nestedRules...)
		}
	}
	return rules, errors.Join(errs...)
}

// tagRules builds the rules listed in a validate tag.
func tagRules(reg *Registry, field, display, tag string, value any) ([]Rule, error) {
	var opts []RuleOption
	if display != "" {
		opts = append(opts, WithDisplayName(display))
	}

	var rules []Rule
	for _, def := range strings.Split(tag, ";") {
		def = strings.TrimSpace(def)
		if def == "" {
			continue
		}
		name, params := parseRuleDef(def)
		rule, err := reg.Build(name, field, value, params, opts...)
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", field, err)
		}
		rules = append(rules, rule)
	}
	return rules, nil
}

// parseRuleDef splits "notinrange=1,10" into its name and parameters.
func parseRuleDef(def string) (string, []string) {
	name, raw, found := strings.Cut(def, "=")
	name = strings.TrimSpace(name)
	if !found {
		return name, nil
	}
	params := strings.Split(raw, ",")
	for i := range params {
		params[i] = strings.TrimSpace(params[i])
	}
	return name, params
}

// nestedStruct returns the struct held by fv when it should be validated
// field by field. Simple struct types such as time.Time are not descended into.
func nestedStruct(fv reflect.Value) (reflect.Value, bool) {
	if fv.Kind() == reflect.Pointer {
		if fv.IsNil() {
			return reflect.Value{}, false
		}
		fv = fv.Elem()
	}
	if fv.Kind() != reflect.Struct || reflection.IsSimpleType(fv.Type()) {
		return reflect.Value{}, false
	}
	return fv, true
}

// apply runs rules and logs the failures.
func apply(cfg validateConfig, rules []Rule) error {
	err := Apply(rules...)
	if err == nil || cfg.log == nil {
		return err
	}
	for _, verr := range ExtractValidationErrors(err) {
		cfg.log.Debug("validation failed",
			logger.Field(verr.Field),
			logger.Rule(verr.TranslationKey),
			logger.Reason(errors.New(verr.Message)),
		)
	}
	return err
}
