package validator

import (
	"fmt"
	"reflect"

	"github.com/dmitrymomot/reflectkit/pkg/reflection"
)

const emptyMessage = "%s is not empty"

// Empty validates that value holds no elements. Nil values pass, slices,
// arrays, maps, strings and channels pass only when they have no elements,
// and any other value passes. Pointers are followed.
//
// The default message is "%s is not empty", receiving the display name.
func Empty(field string, value any, opts ...RuleOption) Rule {
	cfg := newRuleConfig(field, emptyMessage, opts)
	return Rule{
		Check: func() bool {
			return isEmpty(value)
		},
		Error: ValidationError{
			Field:          field,
			Message:        fmt.Sprintf(cfg.message, cfg.displayName),
			TranslationKey: "validation.empty",
			TranslationValues: map[string]any{
				"field": cfg.displayName,
			},
		},
	}
}

func isEmpty(value any) bool {
	if value == nil {
		return true
	}
	v := reflect.ValueOf(value)
	for v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface {
		if v.IsNil() {
			return true
		}
		v = v.Elem()
	}
	if !reflection.IsEnumerable(v.Type()) {
		return true
	}
	return v.Len() == 0
}
