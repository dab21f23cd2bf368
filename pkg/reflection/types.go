package reflection

import (
	"reflect"
	"strings"
)

// TypeOf returns the reflect.Type of T, including interface types.
func TypeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// BaseType returns the immediate ancestor of t: the element type of a pointer,
// or the type of the first embedded field of a struct. It returns nil when t
// has no ancestor.
func BaseType(t reflect.Type) reflect.Type {
	if t == nil {
		return nil
	}
	switch t.Kind() {
	case reflect.Pointer:
		return t.Elem()
	case reflect.Struct:
		for i := 0; i < t.NumField(); i++ {
			if f := t.Field(i); f.Anonymous {
				return f.Type
			}
		}
	}
	return nil
}

// IsOfType reports whether the dynamic type of obj is, embeds or implements target.
// A nil obj or target is rejected.
func IsOfType(obj any, target reflect.Type) (bool, error) {
	if obj == nil {
		return false, ErrNilObject
	}
	return IsTypeOf(reflect.TypeOf(obj), target)
}

// IsTypeOf reports whether t or one of its ancestors equals target, implements
// target (when target is an interface) or shares target's name.
func IsTypeOf(t, target reflect.Type) (bool, error) {
	if t == nil || target == nil {
		return false, ErrNilType
	}
	for cur := t; cur != nil; cur = BaseType(cur) {
		if cur == target || implements(cur, target) {
			return true, nil
		}
		if target.Kind() == reflect.Interface && target.Name() != "" && strings.EqualFold(cur.Name(), target.Name()) {
			return true, nil
		}
	}
	return false, nil
}

// IsOfInterface reports whether t or one of its ancestors matches the interface
// name. An ancestor matches when it is an interface named name (compared
// case-insensitively; a struct embedding that interface reaches it through
// BaseType) or when name is a substring of its fully qualified name. The
// substring fallback is loose: "Repository" matches "store.UserRepository".
func IsOfInterface(t reflect.Type, name string) bool {
	if name == "" {
		return false
	}
	for cur := t; cur != nil; cur = BaseType(cur) {
		if cur.Kind() == reflect.Interface && strings.EqualFold(cur.Name(), name) {
			return true
		}
		if strings.Contains(FullName(cur), name) {
			return true
		}
	}
	return false
}

// FullName returns the package-qualified name of t ("pkg/path.Name"), or its
// string form for unnamed types.
func FullName(t reflect.Type) string {
	if t == nil {
		return ""
	}
	if t.Name() == "" || t.PkgPath() == "" {
		return t.String()
	}
	return t.PkgPath() + "." + t.Name()
}

// IsEnumerable reports whether values of t can be ranged over as a collection.
func IsEnumerable(t reflect.Type) bool {
	if t == nil {
		return false
	}
	switch t.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map, reflect.String, reflect.Chan:
		return true
	default:
		return false
	}
}

// TypeName returns a short display name for t. Type arguments of generic types
// are rendered with their short names as well, e.g. "Box[int,Item]".
func TypeName(t reflect.Type) string {
	if t == nil {
		return ""
	}
	name := t.Name()
	if name == "" {
		return t.String()
	}
	open := strings.IndexByte(name, '[')
	if open < 0 {
		return name
	}

	args := splitTypeArgs(name[open+1 : len(name)-1])
	for i, arg := range args {
		args[i] = shortTypeName(arg)
	}
	return name[:open] + "[" + strings.Join(args, ",") + "]"
}

func implements(t, target reflect.Type) bool {
	if target.Kind() != reflect.Interface {
		return false
	}
	if t.Implements(target) {
		return true
	}
	return t.Kind() != reflect.Pointer && t.Kind() != reflect.Interface && reflect.PointerTo(t).Implements(target)
}

// splitTypeArgs splits a generic argument list on top-level commas.
func splitTypeArgs(s string) []string {
	var (
		args  []string
		depth int
		start int
	)
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '[':
			depth++
		case ']':
			depth--
		case ',':
			if depth == 0 {
				args = append(args, s[start:i])
				start = i + 1
			}
		}
	}
	return append(args, s[start:])
}

// shortTypeName strips package paths from a type string such as
// "github.com/acme/store.Item" or "[]*example.com/x.Y".
func shortTypeName(s string) string {
	prefix := ""
	for len(s) > 0 && (s[0] == '*' || s[0] == '[') {
		if s[0] == '*' {
			prefix += "*"
			s = s[1:]
			continue
		}
		end := strings.IndexByte(s, ']')
		if end < 0 {
			break
		}
		prefix += s[:end+1]
		s = s[end+1:]
	}

	if strings.HasPrefix(s, "map[") {
		if end := matchingBracket(s, len("map")); end > 0 {
			return prefix + "map[" + shortTypeName(s[len("map["):end]) + "]" + shortTypeName(s[end+1:])
		}
	}

	if open := strings.IndexByte(s, '['); open >= 0 && strings.HasSuffix(s, "]") {
		head := shortTypeName(s[:open])
		args := splitTypeArgs(s[open+1 : len(s)-1])
		for i, arg := range args {
			args[i] = shortTypeName(arg)
		}
		return prefix + head + "[" + strings.Join(args, ",") + "]"
	}
	if dot := strings.LastIndexByte(s, '.'); dot >= 0 {
		s = s[dot+1:]
	}
	return prefix + s
}

// matchingBracket returns the index of the ']' closing the '[' at open.
func matchingBracket(s string, open int) int {
	depth := 0
	for i := open; i < len(s); i++ {
		switch s[i] {
		case '[':
			depth++
		case ']':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}
