package reflection

import (
	"reflect"
	"time"

	"github.com/google/uuid"
)

var (
	timeType     = reflect.TypeOf(time.Time{})
	durationType = reflect.TypeOf(time.Duration(0))
	uuidType     = reflect.TypeOf(uuid.UUID{})
	stringType   = reflect.TypeOf("")
)

// IsSimpleType reports whether t is a built-in value type eligible for a
// direct-value shallow copy: booleans, numbers, strings, time.Time,
// time.Duration and uuid.UUID. Pointers to and slices of simple types are
// simple as well.
func IsSimpleType(t reflect.Type) bool {
	if t == nil {
		return false
	}
	switch t {
	case timeType, durationType, uuidType:
		return true
	}

	switch t.Kind() {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64,
		reflect.Complex64, reflect.Complex128,
		reflect.String:
		return true
	case reflect.Pointer, reflect.Slice:
		return IsSimpleType(t.Elem())
	default:
		return false
	}
}

func isFloat(t reflect.Type) bool {
	k := t.Kind()
	return k == reflect.Float32 || k == reflect.Float64
}

func isInteger(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return true
	default:
		return false
	}
}
