package logger

import (
	"log/slog"
	"reflect"
	"strconv"
)

// Group creates a slog group attribute from the provided attributes.
func Group(name string, attrs ...slog.Attr) slog.Attr {
	return slog.Attr{Key: name, Value: slog.GroupValue(attrs...)}
}

// Errors groups multiple non-nil errors under the key "errors".
// If all errors are nil, it returns an empty Attr.
func Errors(errs ...error) slog.Attr {
	as := make([]slog.Attr, 0, len(errs))
	for i, err := range errs {
		if err != nil {
			as = append(as, slog.Any(strconv.Itoa(i), err))
		}
	}
	if len(as) == 0 {
		return slog.Attr{}
	}
	return slog.Attr{Key: "errors", Value: slog.GroupValue(as...)}
}

// Error creates an attribute for a single error under the key "error".
// If err is nil, it returns an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// Field records a struct field name under the key "field".
func Field(name string) slog.Attr {
	return slog.String("field", name)
}

// Path records a dotted property path under the key "path".
func Path(path string) slog.Attr {
	return slog.String("path", path)
}

// Type records a type under the key "type". A nil type yields an empty Attr.
func Type(t reflect.Type) slog.Attr {
	if t == nil {
		return slog.Attr{}
	}
	return slog.String("type", t.String())
}

// Reason records why an operation was skipped under the key "reason".
func Reason(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.String("reason", err.Error())
}

// Assembly records an assembly name under the key "assembly".
func Assembly(name string) slog.Attr {
	return slog.String("assembly", name)
}

// Rule records a validation rule name under the key "rule".
func Rule(name string) slog.Attr {
	return slog.String("rule", name)
}

// Component records the component name under the key "component".
func Component(name string) slog.Attr {
	return slog.String("component", name)
}
