package reflection

import (
	"fmt"
	"reflect"
	"strings"
)

// pathSeparator separates the segments of a property path ("Order.Customer.Name").
const pathSeparator = "."

// Property resolves a dotted property path against t and returns the struct
// field named by the last segment. Pointers are followed transparently and
// promoted fields of embedded structs resolve like their own fields.
func Property(t reflect.Type, path string) (reflect.StructField, bool) {
	if t == nil || path == "" {
		return reflect.StructField{}, false
	}

	var field reflect.StructField
	cur := t
	for _, name := range strings.Split(path, pathSeparator) {
		f, ok := lookupField(cur, name)
		if !ok {
			return reflect.StructField{}, false
		}
		field, cur = f, f.Type
	}
	return field, true
}

// PropertyOf resolves a dotted property path against T.
func PropertyOf[T any](path string) (reflect.StructField, bool) {
	return Property(TypeOf[T](), path)
}

// PropertyValue walks the property path on obj and returns the value found at
// its end. It returns nil when obj is nil, the path is empty, a segment does
// not resolve, or a value along the way is nil. Maps keyed by strings are
// walked by key, so decoded documents resolve like structs.
func PropertyValue(obj any, path string) any {
	if obj == nil || path == "" {
		return nil
	}

	v := reflect.ValueOf(obj)
	for _, name := range strings.Split(path, pathSeparator) {
		next, ok := step(v, name)
		if !ok || isNil(next) {
			return nil
		}
		v = next
	}
	if !v.CanInterface() {
		return nil
	}
	return v.Interface()
}

// PropertyType returns the declared type of the field at the end of path, or
// the dynamic type of the value found there when the path runs through maps or
// interfaces. It returns nil when the path does not resolve.
func PropertyType(obj any, path string) reflect.Type {
	if obj == nil || path == "" {
		return nil
	}
	if f, ok := Property(reflect.TypeOf(obj), path); ok {
		return f.Type
	}
	if v := PropertyValue(obj, path); v != nil {
		return reflect.TypeOf(v)
	}
	return nil
}

// PropertyTypeOf returns the declared type of the field at the end of path on T.
func PropertyTypeOf[T any](path string) reflect.Type {
	if f, ok := PropertyOf[T](path); ok {
		return f.Type
	}
	return nil
}

// PropertyParent returns the value holding the last segment of path together
// with that segment's field. When obj is a pointer the parent is returned as a
// pointer so it can be written through.
func PropertyParent(obj any, path string) (any, reflect.StructField, bool) {
	if obj == nil || path == "" {
		return nil, reflect.StructField{}, false
	}

	names := strings.Split(path, pathSeparator)
	v := reflect.ValueOf(obj)
	for _, name := range names[:len(names)-1] {
		next, ok := step(v, name)
		if !ok || isNil(next) {
			return nil, reflect.StructField{}, false
		}
		v = next
	}

	field, ok := lookupField(v.Type(), names[len(names)-1])
	if !ok {
		return nil, reflect.StructField{}, false
	}

	parent := v
	if parent.Kind() != reflect.Pointer && parent.CanAddr() {
		parent = parent.Addr()
	}
	if !parent.CanInterface() {
		return nil, reflect.StructField{}, false
	}
	return parent.Interface(), field, true
}

// SetValue converts src with Parse, using format, and assigns it to the field
// at path on dst. dst must be a non-nil pointer. It reports whether the value
// was assigned; unresolved paths, nil intermediate values and failed
// conversions leave dst untouched.
func SetValue(src, dst any, path, format string) bool {
	if dst == nil || path == "" {
		return false
	}
	v := reflect.ValueOf(dst)
	if v.Kind() != reflect.Pointer || v.IsNil() {
		return false
	}

	names := strings.Split(path, pathSeparator)
	for _, name := range names[:len(names)-1] {
		next, ok := step(v, name)
		if !ok || isNil(next) {
			return false
		}
		v = next
	}

	for v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface {
		if v.IsNil() {
			return false
		}
		v = v.Elem()
	}
	field, ok := lookupField(v.Type(), names[len(names)-1])
	if !ok {
		return false
	}
	fv, err := v.FieldByIndexErr(field.Index)
	if err != nil {
		return false
	}
	return assign(fv, src, format)
}

// SetFieldValue converts src with Parse and assigns it to field on dst, which
// must be a non-nil pointer to a struct declaring field.
func SetFieldValue(src, dst any, field reflect.StructField, format string) bool {
	if dst == nil || len(field.Index) == 0 {
		return false
	}
	v := reflect.ValueOf(dst)
	if v.Kind() != reflect.Pointer || v.IsNil() {
		return false
	}
	v = v.Elem()
	if v.Kind() != reflect.Struct {
		return false
	}

	declared, ok := v.Type().FieldByName(field.Name)
	if !ok || declared.Type != field.Type {
		return false
	}
	fv, err := v.FieldByIndexErr(declared.Index)
	if err != nil {
		return false
	}
	return assign(fv, src, format)
}

// PropertyName returns the dotted path of the field fieldPtr points to inside
// the struct root points to.
//
//	var o Order
//	name, _ := reflection.PropertyName(&o, &o.Customer.Name) // "Customer.Name"
func PropertyName(root, fieldPtr any) (string, error) {
	if root == nil || fieldPtr == nil {
		return "", ErrNilObject
	}
	rv := reflect.ValueOf(root)
	if rv.Kind() != reflect.Pointer || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
		return "", fmt.Errorf("%w: root must be a non-nil pointer to struct", ErrNotStruct)
	}
	fp := reflect.ValueOf(fieldPtr)
	if fp.Kind() != reflect.Pointer || fp.IsNil() {
		return "", fmt.Errorf("%w: field must be a non-nil pointer", ErrNilObject)
	}

	name, ok := findField(rv.Elem(), fp.Pointer(), fp.Type().Elem(), "", map[visit]bool{})
	if !ok {
		return "", ErrFieldNotInRoot
	}
	return name, nil
}

// visit identifies a struct value already searched by findField. A struct and
// its first field share an address, so the type is part of the key.
type visit struct {
	addr uintptr
	typ  reflect.Type
}

func findField(v reflect.Value, addr uintptr, typ reflect.Type, prefix string, seen map[visit]bool) (string, bool) {
	key := visit{v.Addr().Pointer(), v.Type()}
	if seen[key] {
		return "", false
	}
	seen[key] = true

	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}
		fv := v.Field(i)
		name := prefix + sf.Name
		if fv.Addr().Pointer() == addr && fv.Type() == typ {
			return name, true
		}

		inner := fv
		if inner.Kind() == reflect.Pointer && !inner.IsNil() {
			inner = inner.Elem()
		}
		if inner.Kind() == reflect.Struct {
			if found, ok := findField(inner, addr, typ, name+pathSeparator, seen); ok {
				return found, true
			}
		}
	}
	return "", false
}

// lookupField finds the exported field name on t, following pointers.
func lookupField(t reflect.Type, name string) (reflect.StructField, bool) {
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil || t.Kind() != reflect.Struct || name == "" {
		return reflect.StructField{}, false
	}
	f, ok := t.FieldByName(name)
	if !ok || !f.IsExported() {
		return reflect.StructField{}, false
	}
	return f, true
}

// step moves from v to its member called name.
func step(v reflect.Value, name string) (reflect.Value, bool) {
	for v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface {
		if v.IsNil() {
			return reflect.Value{}, false
		}
		v = v.Elem()
	}

	switch v.Kind() {
	case reflect.Struct:
		f, ok := lookupField(v.Type(), name)
		if !ok {
			return reflect.Value{}, false
		}
		fv, err := v.FieldByIndexErr(f.Index)
		if err != nil {
			return reflect.Value{}, false
		}
		return fv, true
	case reflect.Map:
		if v.Type().Key().Kind() != reflect.String {
			return reflect.Value{}, false
		}
		mv := v.MapIndex(reflect.ValueOf(name).Convert(v.Type().Key()))
		return mv, mv.IsValid()
	default:
		return reflect.Value{}, false
	}
}

func isNil(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Invalid:
		return true
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return v.IsNil()
	default:
		return false
	}
}

// assign parses src into fv's type and stores it. A nil src stores the zero value.
func assign(fv reflect.Value, src any, format string) bool {
	if !fv.CanSet() {
		return false
	}
	if src == nil {
		fv.Set(reflect.Zero(fv.Type()))
		return true
	}

	parsed := Parse(src, fv.Type(), format)
	if parsed == nil {
		return false
	}
	pv := reflect.ValueOf(parsed)
	switch {
	case pv.Type().AssignableTo(fv.Type()):
		fv.Set(pv)
	case convertible(pv.Type(), fv.Type()):
		fv.Set(pv.Convert(fv.Type()))
	default:
		return false
	}
	return true
}

// convertible reports whether from converts to to without reinterpreting
// integers as runes.
func convertible(from, to reflect.Type) bool {
	if to.Kind() == reflect.String && isInteger(from.Kind()) {
		return false
	}
	return from.ConvertibleTo(to)
}
