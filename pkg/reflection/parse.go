package reflection

import (
	"encoding"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// floatFormat is forced whenever a conversion crosses into or out of a
// floating point type, so "3.7" never reaches an integer parser.
const floatFormat = "%.0f"

// typeParsers handles target types that need more than a kind switch.
var typeParsers = map[reflect.Type]func(s string) (any, error){
	timeType:     parseTime,
	durationType: parseDuration,
	uuidType:     parseUUID,
}

// kindParsers converts a string into a value of the given type by its kind.
var kindParsers = map[reflect.Kind]func(s string, out reflect.Type) (reflect.Value, error){
	reflect.Bool:       parseBool,
	reflect.Int:        parseInt,
	reflect.Int8:       parseInt,
	reflect.Int16:      parseInt,
	reflect.Int32:      parseInt,
	reflect.Int64:      parseInt,
	reflect.Uint:       parseUint,
	reflect.Uint8:      parseUint,
	reflect.Uint16:     parseUint,
	reflect.Uint32:     parseUint,
	reflect.Uint64:     parseUint,
	reflect.Uintptr:    parseUint,
	reflect.Float32:    parseFloat,
	reflect.Float64:    parseFloat,
	reflect.Complex64:  parseComplex,
	reflect.Complex128: parseComplex,
}

var textUnmarshalerType = reflect.TypeOf((*encoding.TextUnmarshaler)(nil)).Elem()

// Parse converts input into a value of type out and returns nil when that is
// not possible.
//
// Input is returned unchanged when its type is out, is assignable to out, or
// reaches out through its ancestor chain (see BaseType). A string target gets
// the input rendered with format. Any other target receives the rendered
// input parsed by a fixed set of parsers: time.Time, time.Duration, uuid.UUID,
// encoding.TextUnmarshaler implementations and the built-in kinds. When the
// conversion involves a floating point type on either side the format is
// forced to "%.0f".
//
// Format is a fmt verb such as "%.2f". String inputs ignore it. For time.Time
// inputs a format without a '%' is used as a time layout.
func Parse(input any, out reflect.Type, format string) any {
	if input == nil || out == nil {
		return nil
	}

	in := reflect.TypeOf(input)
	if in == out || in.AssignableTo(out) {
		return input
	}
	if v, ok := ancestorValue(reflect.ValueOf(input), out); ok {
		return v.Interface()
	}

	if out.Kind() == reflect.String {
		s := formatValue(input, format)
		return reflect.ValueOf(s).Convert(out).Interface()
	}

	v, err := parseString(formatValue(input, discoverFormat(in, out, format)), out)
	if err != nil {
		return nil
	}
	return v.Interface()
}

// ParseAs is the generic form of Parse.
func ParseAs[T any](input any, format string) (T, bool) {
	v, ok := Parse(input, TypeOf[T](), format).(T)
	return v, ok
}

// discoverFormat picks the format used to render a value before parsing it
// into another type.
func discoverFormat(in, out reflect.Type, format string) string {
	if in == out || in.Kind() == reflect.String || out.Kind() == reflect.String {
		return format
	}
	if isFloat(in) || isFloat(out) {
		return floatFormat
	}
	return format
}

// formatValue renders v as a string using format. Strings are returned as is.
func formatValue(v any, format string) string {
	if t, ok := v.(time.Time); ok {
		switch {
		case format == "":
			return t.Format(time.RFC3339Nano)
		case !strings.Contains(format, "%"):
			return t.Format(format)
		}
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.String {
		return rv.String()
	}
	if format == "" {
		if isFloat(rv.Type()) {
			return strconv.FormatFloat(rv.Float(), 'f', -1, rv.Type().Bits())
		}
		return fmt.Sprint(v)
	}

	if isFloatVerb(format) && isInteger(rv.Kind()) {
		if rv.CanInt() {
			return fmt.Sprintf(format, float64(rv.Int()))
		}
		return fmt.Sprintf(format, float64(rv.Uint()))
	}
	return fmt.Sprintf(format, v)
}

func isFloatVerb(format string) bool {
	if format == "" {
		return false
	}
	switch format[len(format)-1] {
	case 'e', 'E', 'f', 'F', 'g', 'G':
		return true
	default:
		return false
	}
}

// parseString converts s into a value of type out.
func parseString(s string, out reflect.Type) (reflect.Value, error) {
	if p, ok := typeParsers[out]; ok {
		v, err := p(strings.TrimSpace(s))
		if err != nil {
			return reflect.Value{}, err
		}
		return reflect.ValueOf(v), nil
	}

	if reflect.PointerTo(out).Implements(textUnmarshalerType) {
		ptr := reflect.New(out)
		if err := ptr.Interface().(encoding.TextUnmarshaler).UnmarshalText([]byte(s)); err != nil {
			return reflect.Value{}, err
		}
		return ptr.Elem(), nil
	}

	if out.Kind() == reflect.Pointer {
		return parsePointer(s, out)
	}
	if p, ok := kindParsers[out.Kind()]; ok {
		return p(strings.TrimSpace(s), out)
	}
	return reflect.Value{}, fmt.Errorf("%w: cannot parse into %s", ErrTypeMismatch, out)
}

// ancestorValue walks v's ancestor chain looking for a value of type out.
func ancestorValue(v reflect.Value, out reflect.Type) (reflect.Value, bool) {
	for v.IsValid() {
		if v.Type() == out {
			return v, true
		}
		switch v.Kind() {
		case reflect.Pointer:
			if v.IsNil() {
				return reflect.Value{}, false
			}
			v = v.Elem()
		case reflect.Struct:
			base := BaseType(v.Type())
			if base == nil {
				return reflect.Value{}, false
			}
			v = v.Field(embeddedIndex(v.Type()))
		default:
			return reflect.Value{}, false
		}
	}
	return reflect.Value{}, false
}

func embeddedIndex(t reflect.Type) int {
	for i := 0; i < t.NumField(); i++ {
		if t.Field(i).Anonymous {
			return i
		}
	}
	return -1
}

func parseTime(s string) (any, error) {
	var lastErr error
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, time.DateTime, time.DateOnly} {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return nil, lastErr
}

func parseUUID(s string) (any, error) {
	return uuid.Parse(s)
}

// parseDuration accepts "1h30m" style strings and bare integers as nanoseconds.
func parseDuration(s string) (any, error) {
	d, err := time.ParseDuration(s)
	if err == nil {
		return d, nil
	}
	if n, nerr := strconv.ParseInt(s, 10, 64); nerr == nil {
		return time.Duration(n), nil
	}
	return nil, err
}

func parseBool(s string, out reflect.Type) (reflect.Value, error) {
	b, err := strconv.ParseBool(s)
	if err != nil {
		return reflect.Value{}, err
	}
	v := reflect.New(out).Elem()
	v.SetBool(b)
	return v, nil
}

func parseInt(s string, out reflect.Type) (reflect.Value, error) {
	n, err := strconv.ParseInt(s, 10, out.Bits())
	if err != nil {
		return reflect.Value{}, err
	}
	v := reflect.New(out).Elem()
	v.SetInt(n)
	return v, nil
}

func parseUint(s string, out reflect.Type) (reflect.Value, error) {
	n, err := strconv.ParseUint(s, 10, out.Bits())
	if err != nil {
		return reflect.Value{}, err
	}
	v := reflect.New(out).Elem()
	v.SetUint(n)
	return v, nil
}

func parseFloat(s string, out reflect.Type) (reflect.Value, error) {
	f, err := strconv.ParseFloat(s, out.Bits())
	if err != nil {
		return reflect.Value{}, err
	}
	v := reflect.New(out).Elem()
	v.SetFloat(f)
	return v, nil
}

func parseComplex(s string, out reflect.Type) (reflect.Value, error) {
	c, err := strconv.ParseComplex(s, out.Bits())
	if err != nil {
		return reflect.Value{}, err
	}
	v := reflect.New(out).Elem()
	v.SetComplex(c)
	return v, nil
}

func parsePointer(s string, out reflect.Type) (reflect.Value, error) {
	elem, err := parseString(s, out.Elem())
	if err != nil {
		return reflect.Value{}, err
	}
	ptr := reflect.New(out.Elem())
	ptr.Elem().Set(elem)
	return ptr, nil
}
