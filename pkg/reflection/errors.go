package reflection

import "errors"

// Package-specific errors. Most lookups in this package report failure through
// nil or false results; these errors are returned only where a caller supplied
// an argument that can never be valid.
var (
	// ErrNilObject is returned when a required object argument is nil.
	ErrNilObject = errors.New("object is nil")

	// ErrNilType is returned when a required type argument is nil.
	ErrNilType = errors.New("type is nil")

	// ErrEmptyPath is returned when an accessor is requested for an empty property path.
	ErrEmptyPath = errors.New("property path is empty")

	// ErrPropertyNotFound is returned when a path segment does not name an exported field.
	ErrPropertyNotFound = errors.New("property not found")

	// ErrTypeMismatch is returned when a value cannot be assigned or converted to the requested type.
	ErrTypeMismatch = errors.New("type mismatch")

	// ErrNotSettable is returned when a field cannot be written.
	ErrNotSettable = errors.New("field is not settable")

	// ErrNotSimpleType is recorded when a copy is restricted to simple types and the field is not one.
	ErrNotSimpleType = errors.New("not a simple type")

	// ErrFieldMissing is recorded when the copy destination has no field with the source field's name.
	ErrFieldMissing = errors.New("field missing on destination")

	// ErrCopyPanicked is recorded when assigning a field panicked and the panic was recovered.
	ErrCopyPanicked = errors.New("field copy panicked")

	// ErrNotStruct is returned when a struct (or pointer to struct) was required.
	ErrNotStruct = errors.New("not a struct")

	// ErrFieldNotInRoot is returned when a field pointer does not point inside the root struct.
	ErrFieldNotInRoot = errors.New("field does not belong to root")

	// ErrInvalidPlugin is returned when a plugin does not export a usable assembly symbol.
	ErrInvalidPlugin = errors.New("plugin does not export an assembly")
)
