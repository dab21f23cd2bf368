package reflection

import "reflect"

// CallMethod invokes the exported method name on obj and returns its first
// result. A method whose parameters accept args is preferred; otherwise a
// method of that name taking no arguments is called. Methods with pointer
// receivers are reachable from a value obj through a copy. It returns nil
// when name is empty, obj is nil, no method matches, or the method returns
// nothing.
func CallMethod(name string, obj any, args ...any) any {
	if name == "" || obj == nil {
		return nil
	}

	m := methodByName(reflect.ValueOf(obj), name)
	if !m.IsValid() {
		return nil
	}

	mt := m.Type()
	if len(args) > 0 && acceptsArgs(mt, args) {
		in := make([]reflect.Value, len(args))
		for i, arg := range args {
			in[i] = reflect.ValueOf(arg)
		}
		return firstResult(m.Call(in))
	}
	if mt.NumIn() == 0 {
		return firstResult(m.Call(nil))
	}
	return nil
}

func methodByName(v reflect.Value, name string) reflect.Value {
	if m := v.MethodByName(name); m.IsValid() {
		return m
	}
	if v.Kind() == reflect.Pointer {
		return reflect.Value{}
	}
	ptr := reflect.New(v.Type())
	ptr.Elem().Set(v)
	return ptr.MethodByName(name)
}

func acceptsArgs(mt reflect.Type, args []any) bool {
	if mt.IsVariadic() || mt.NumIn() != len(args) {
		return false
	}
	for i, arg := range args {
		if arg == nil || !reflect.TypeOf(arg).AssignableTo(mt.In(i)) {
			return false
		}
	}
	return true
}

func firstResult(out []reflect.Value) any {
	if len(out) == 0 || isNil(out[0]) {
		return nil
	}
	return out[0].Interface()
}
