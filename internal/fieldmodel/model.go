package fieldmodel

import (
	"view-generator/internal/dsl"
)

// Field is the resolved extraction of one view field.
type Field struct {
	Name  string
	Mode  dsl.Mode
	Arm   string
	Guard string
	// SourceType is the type declared on the source struct.
	SourceType string
	// Bound is the type the pattern binds before any conversion.
	Bound string
	// Assert is the type a variant field is asserted to.
	Assert string
	// Owned, Shared and Exclusive are the representation types.
	Owned     string
	Shared    string
	Exclusive string
	// Convert is true when an explicit annotation changes Bound into Owned.
	Convert bool
	// PassThrough is true when Owned is already a pointer.
	PassThrough bool
	// GuardRefs are the free identifiers the guard references.
	GuardRefs []string
	// Qualifiers are the import names referenced by types and the guard.
	Qualifiers []string
}

// Addressable reports whether the bound value lives inside the source, so
// borrowed representations can point at it directly. Variant payloads are
// copies made by the type assertion.
func (f *Field) Addressable() bool {
	return f.Mode != dsl.ModeVariant
}

// Stripped is the owned type without its outer pointer.
func (f *Field) Stripped() string {
	if f.PassThrough {
		return f.Owned[1:]
	}

	return f.Owned
}

// GuardType is the type the guard sees its field as: the shared
// representation in every conversion.
func (f *Field) GuardType() string {
	return f.Shared
}
