package validator

import (
	"cmp"
	"fmt"
	"reflect"

	"github.com/dmitrymomot/reflectkit/pkg/reflection"
)

const notInRangeMessage = "%s is between %v and %v"

// NotInRange validates that value lies outside [min, max]. The bounds are
// converted to value's type with reflection.Parse before comparing, so
// NotInRange("age", age, "18", "65") compares integers. The bounds are
// inclusive: a value equal to min or max fails.
//
// A nil value, bounds that cannot be converted and values that have no
// ordering all pass.
//
// The default message is "%s is between %v and %v", receiving the display
// name, min and max.
func NotInRange(field string, value, min, max any, opts ...RuleOption) Rule {
	cfg := newRuleConfig(field, notInRangeMessage, opts)
	return Rule{
		Check: func() bool {
			return !inRange(value, min, max)
		},
		Error: ValidationError{
			Field:          field,
			Message:        fmt.Sprintf(cfg.message, cfg.displayName, min, max),
			TranslationKey: "validation.not_in_range",
			TranslationValues: map[string]any{
				"field": cfg.displayName,
				"min":   min,
				"max":   max,
			},
		},
	}
}

// inRange reports whether min <= value <= max once both bounds are converted
// to value's type. Anything that cannot be compared is not in range.
func inRange(value, min, max any) bool {
	if value == nil {
		return false
	}
	v := reflect.ValueOf(value)
	for v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface {
		if v.IsNil() {
			return false
		}
		v = v.Elem()
	}
	if !v.CanInterface() {
		return false
	}
	value = v.Interface()

	lo := reflection.Parse(min, v.Type(), "")
	hi := reflection.Parse(max, v.Type(), "")
	if lo == nil || hi == nil {
		return false
	}

	upper, ok := compare(hi, value)
	if !ok {
		return false
	}
	lower, ok := compare(value, lo)
	if !ok {
		return false
	}
	return upper >= 0 && lower >= 0
}

// compare orders two values of the same type. Ordered kinds are compared
// directly; other types are compared through a Compare method, as declared by
// time.Time.
func compare(a, b any) (int, bool) {
	av, bv := reflect.ValueOf(a), reflect.ValueOf(b)
	if av.Type() != bv.Type() {
		return 0, false
	}

	switch av.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return cmp.Compare(av.Int(), bv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return cmp.Compare(av.Uint(), bv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return cmp.Compare(av.Float(), bv.Float()), true
	case reflect.String:
		return cmp.Compare(av.String(), bv.String()), true
	}

	if n, ok := reflection.CallMethod("Compare", a, b).(int); ok {
		return n, true
	}
	return 0, false
}
