package reflection

import (
	"errors"
	"fmt"
	"log/slog"
	"reflect"

	"github.com/dmitrymomot/reflectkit/pkg/logger"
)

// FieldResult describes what happened to one source field during a copy.
type FieldResult struct {
	Name   string
	Copied bool
	// Reason is set for skipped fields and wraps one of ErrNotSettable,
	// ErrNotSimpleType, ErrFieldMissing, ErrTypeMismatch or ErrCopyPanicked.
	Reason error
}

// CopyReport lists the outcome for every field of the source struct, in
// declaration order.
type CopyReport []FieldResult

// Copied returns the names of fields that were copied.
func (r CopyReport) Copied() []string {
	var names []string
	for _, res := range r {
		if res.Copied {
			names = append(names, res.Name)
		}
	}
	return names
}

// Skipped returns the results of fields that were not copied.
func (r CopyReport) Skipped() []FieldResult {
	var skipped []FieldResult
	for _, res := range r {
		if !res.Copied {
			skipped = append(skipped, res)
		}
	}
	return skipped
}

// Result returns the outcome for the named field.
func (r CopyReport) Result(name string) (FieldResult, bool) {
	for _, res := range r {
		if res.Name == name {
			return res, true
		}
	}
	return FieldResult{}, false
}

// CopyOption configures a shallow copy.
type CopyOption func(*copyOptions)

type copyOptions struct {
	log *slog.Logger
}

// WithLogger logs skipped fields at debug level.
func WithLogger(l *slog.Logger) CopyOption {
	return func(o *copyOptions) {
		o.log = l
	}
}

// ShallowCopy creates a new value of obj's type and copies every exported
// field across. With simpleOnly set, only fields of simple types (see
// IsSimpleType) are copied. A pointer obj yields a pointer to the copy.
//
// The copy is best-effort: a field that cannot be copied is skipped and
// recorded in the report, never aborting the rest. Nil or non-struct input
// yields a nil result.
func ShallowCopy(obj any, simpleOnly bool, opts ...CopyOption) (any, CopyReport) {
	if obj == nil {
		return nil, nil
	}
	return ShallowCopyAs(reflect.TypeOf(obj), obj, simpleOnly, opts...)
}

// ShallowCopyAs creates a new value of type dst, which may differ from obj's
// type, and copies every exported field that exists by name on both sides.
// dst may be a struct type or a pointer to one; the result has the same shape.
func ShallowCopyAs(dst reflect.Type, obj any, simpleOnly bool, opts ...CopyOption) (any, CopyReport) {
	if dst == nil || obj == nil {
		return nil, nil
	}

	o := &copyOptions{}
	for _, opt := range opts {
		opt(o)
	}
	log := logger.OrDiscard(o.log)

	src := reflect.ValueOf(obj)
	for src.Kind() == reflect.Pointer {
		if src.IsNil() {
			return nil, nil
		}
		src = src.Elem()
	}
	if src.Kind() != reflect.Struct {
		return nil, nil
	}

	dstElem, asPointer := dst, false
	if dst.Kind() == reflect.Pointer {
		dstElem, asPointer = dst.Elem(), true
	}
	if dstElem.Kind() != reflect.Struct {
		return nil, nil
	}

	out := reflect.New(dstElem)
	target := out.Elem()
	srcType := src.Type()

	report := make(CopyReport, 0, srcType.NumField())
	for i := 0; i < srcType.NumField(); i++ {
		res := copyField(target, src, i, simpleOnly)
		if !res.Copied {
			log.Debug("field skipped",
				logger.Field(res.Name),
				logger.Type(dstElem),
				logger.Reason(res.Reason),
			)
		}
		report = append(report, res)
	}

	if asPointer {
		return out.Interface(), report
	}
	return target.Interface(), report
}

// ShallowCopyOf is the generic form of ShallowCopy. A nil pointer src yields
// T's zero value.
func ShallowCopyOf[T any](src T, simpleOnly bool, opts ...CopyOption) (T, CopyReport) {
	v, report := ShallowCopyAs(TypeOf[T](), src, simpleOnly, opts...)
	out, _ := v.(T)
	return out, report
}

// copyField copies field i of src into the same-named field of target.
func copyField(target, src reflect.Value, i int, simpleOnly bool) (res FieldResult) {
	sf := src.Type().Field(i)
	res.Name = sf.Name

	defer func() {
		if r := recover(); r != nil {
			res = FieldResult{Name: sf.Name, Reason: fmt.Errorf("%w: %v", ErrCopyPanicked, r)}
		}
	}()

	if !sf.IsExported() {
		res.Reason = ErrNotSettable
		return res
	}
	if simpleOnly && !IsSimpleType(sf.Type) {
		res.Reason = fmt.Errorf("%w: %s", ErrNotSimpleType, TypeName(sf.Type))
		return res
	}

	df, ok := lookupField(target.Type(), sf.Name)
	if !ok {
		res.Reason = ErrFieldMissing
		return res
	}
	dv, err := target.FieldByIndexErr(df.Index)
	if err != nil {
		res.Reason = errors.Join(ErrNotSettable, err)
		return res
	}
	if !dv.CanSet() {
		res.Reason = ErrNotSettable
		return res
	}

	sv := src.Field(i)
	switch {
	case sv.Type().AssignableTo(dv.Type()):
		dv.Set(sv)
	case convertible(sv.Type(), dv.Type()):
		dv.Set(sv.Convert(dv.Type()))
	default:
		res.Reason = fmt.Errorf("%w: %s to %s", ErrTypeMismatch, TypeName(sv.Type()), TypeName(dv.Type()))
		return res
	}

	res.Copied = true
	return res
}
