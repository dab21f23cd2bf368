package reflection

import (
	"fmt"
	"reflect"
	"strings"
)

// converter turns a value of one type into another; ok is false when the
// dynamic value cannot be converted.
type converter func(v reflect.Value) (out reflect.Value, ok bool)

// Getter compiles a dotted property path on C into a function returning the
// value at that path as D. The path is resolved once; the returned function
// only walks field indexes. A nil pointer along the way yields D's zero value.
func Getter[C, D any](path string) (func(C) D, error) {
	fields, err := compilePath(TypeOf[C](), path)
	if err != nil {
		return nil, err
	}
	return getter[C, D](fields)
}

// Setter compiles a dotted property path on C into a function assigning a D to
// the field at that path. Nil pointers along the path are allocated.
func Setter[C, D any](path string) (func(*C, D), error) {
	fields, err := compilePath(TypeOf[C](), path)
	if err != nil {
		return nil, err
	}
	return setter[C, D](fields)
}

// FieldGetter builds a getter for a field obtained from C's type, e.g. with
// Property. The field must be declared on C and be of type D.
func FieldGetter[C, D any](field reflect.StructField) (func(C) D, error) {
	f, err := checkField[C, D](field)
	if err != nil {
		return nil, err
	}
	return getter[C, D]([]reflect.StructField{f})
}

// FieldSetter builds a setter for a field obtained from C's type.
func FieldSetter[C, D any](field reflect.StructField) (func(*C, D), error) {
	f, err := checkField[C, D](field)
	if err != nil {
		return nil, err
	}
	return setter[C, D]([]reflect.StructField{f})
}

func getter[C, D any](fields []reflect.StructField) (func(C) D, error) {
	leaf := fields[len(fields)-1].Type
	conv, err := newConverter(leaf, TypeOf[D]())
	if err != nil {
		return nil, err
	}
	// An interface D reports a nil leaf as an untyped nil, like PropertyValue.
	untypedNil := TypeOf[D]().Kind() == reflect.Interface

	return func(c C) D {
		var out D
		v := reflect.ValueOf(&c).Elem()
		for _, f := range fields {
			for v.Kind() == reflect.Pointer {
				if v.IsNil() {
					return out
				}
				v = v.Elem()
			}
			fv, err := v.FieldByIndexErr(f.Index)
			if err != nil {
				return out
			}
			v = fv
		}
		if untypedNil && isNil(v) {
			return out
		}
		if cv, ok := conv(v); ok {
			reflect.ValueOf(&out).Elem().Set(cv)
		}
		return out
	}, nil
}

func setter[C, D any](fields []reflect.StructField) (func(*C, D), error) {
	leaf := fields[len(fields)-1].Type
	conv, err := newConverter(TypeOf[D](), leaf)
	if err != nil {
		return nil, err
	}

	return func(c *C, d D) {
		if c == nil {
			return
		}
		v := reflect.ValueOf(c).Elem()
		for _, f := range fields {
			var ok bool
			if v, ok = allocWalk(v, f.Index); !ok {
				return
			}
		}
		if !v.CanSet() {
			return
		}
		if cv, ok := conv(reflect.ValueOf(&d).Elem()); ok {
			v.Set(cv)
		}
	}, nil
}

// allocWalk follows index from v, allocating nil pointers on the way.
func allocWalk(v reflect.Value, index []int) (reflect.Value, bool) {
	for _, i := range index {
		for v.Kind() == reflect.Pointer {
			if v.IsNil() {
				if !v.CanSet() {
					return reflect.Value{}, false
				}
				v.Set(reflect.New(v.Type().Elem()))
			}
			v = v.Elem()
		}
		v = v.Field(i)
	}
	return v, true
}

// compilePath resolves every segment of path starting at root.
func compilePath(root reflect.Type, path string) ([]reflect.StructField, error) {
	if path == "" {
		return nil, ErrEmptyPath
	}

	names := strings.Split(path, pathSeparator)
	fields := make([]reflect.StructField, 0, len(names))
	cur := root
	for _, name := range names {
		f, ok := lookupField(cur, name)
		if !ok {
			return nil, fmt.Errorf("%w: %q on %s", ErrPropertyNotFound, name, TypeName(cur))
		}
		fields = append(fields, f)
		cur = f.Type
	}
	return fields, nil
}

func checkField[C, D any](field reflect.StructField) (reflect.StructField, error) {
	ok, err := IsTypeOf(field.Type, TypeOf[D]())
	if err != nil {
		return reflect.StructField{}, err
	}
	if !ok {
		return reflect.StructField{}, fmt.Errorf("%w: field %s is %s, not %s",
			ErrTypeMismatch, field.Name, TypeName(field.Type), TypeName(TypeOf[D]()))
	}

	declared, found := lookupField(TypeOf[C](), field.Name)
	if !found || declared.Type != field.Type || !sameIndex(declared.Index, field.Index) {
		return reflect.StructField{}, fmt.Errorf("%w: field %s is not declared on %s",
			ErrPropertyNotFound, field.Name, TypeName(TypeOf[C]()))
	}
	return declared, nil
}

func sameIndex(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// newConverter returns a converter from one static type to another, or
// ErrTypeMismatch when no value of from could ever be converted.
func newConverter(from, to reflect.Type) (converter, error) {
	switch {
	case from == to:
		return func(v reflect.Value) (reflect.Value, bool) { return v, true }, nil
	case from.AssignableTo(to):
		return func(v reflect.Value) (reflect.Value, bool) {
			out := reflect.New(to).Elem()
			out.Set(v)
			return out, true
		}, nil
	case from.Kind() == reflect.Interface:
		return func(v reflect.Value) (reflect.Value, bool) {
			if v.IsNil() {
				return reflect.Zero(to), true
			}
			e := v.Elem()
			switch {
			case e.Type().AssignableTo(to):
				out := reflect.New(to).Elem()
				out.Set(e)
				return out, true
			case convertible(e.Type(), to):
				return e.Convert(to), true
			default:
				return reflect.Value{}, false
			}
		}, nil
	case convertible(from, to):
		return func(v reflect.Value) (reflect.Value, bool) { return v.Convert(to), true }, nil
	default:
		return nil, fmt.Errorf("%w: cannot convert %s to %s", ErrTypeMismatch, TypeName(from), TypeName(to))
	}
}
