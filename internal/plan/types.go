package plan

import (
	"view-generator/internal/diagnostic"
	"view-generator/internal/fieldmodel"
	"view-generator/internal/schema"
)

// Plan is the final output of assembly.
// It contains everything needed for code generation.
type Plan struct {
	// Source is the struct the views project from.
	Source *schema.Source
	// Views are the view descriptors in declaration order.
	Views []*ViewDescriptor
	// Compat is the compatibility table, one row per distinct field name in
	// first-appearance order.
	Compat []CompatRow
	// Accessors are the tagged union's field accessors, in Compat order.
	Accessors []Accessor
	// UnionParams are the type parameters of the tagged union.
	UnionParams []schema.TypeParam
	// VariantAnnotations are copied onto the tagged union.
	VariantAnnotations []string
	// Diagnostics contains all warnings and errors from assembly.
	Diagnostics diagnostic.Diagnostics
}

// ViewDescriptor is one resolved view.
type ViewDescriptor struct {
	Name string
	// Params are the required type parameters in source order.
	Params []schema.TypeParam
	Fields []*fieldmodel.Field
	// Owned, Ref and Mut are annotation blocks for each representation.
	Owned []string
	Ref   []string
	Mut   []string
	Span  diagnostic.Span
}

// Field returns the field called name.
func (v *ViewDescriptor) Field(name string) (*fieldmodel.Field, bool) {
	for _, f := range v.Fields {
		if f.Name == name {
			return f, true
		}
	}

	return nil, false
}

// CompatRow records how one field name appears across views.
type CompatRow struct {
	Field string
	// Views lists the views including the field, in declaration order.
	Views []string
	// InAll is true when every view includes the field.
	InAll bool
	// Identical is true when owned type and mode agree in every including view.
	Identical bool
}

// Accessor is one field accessor on the tagged union.
type Accessor struct {
	Field string
	// Direct accessors return *Type from every arm; others return
	// (*Type, bool).
	Direct bool
	// Type is the owned type with its outer pointer removed.
	Type string
	// Arms lists the views that hold the field.
	Arms []AccessorArm
}

// AccessorArm is one view an accessor reads from.
type AccessorArm struct {
	View string
	// PassThrough is true when the view already stores a pointer.
	PassThrough bool
}
