package dsl

import "view-generator/internal/diagnostic"

// File is a parsed declaration body.
type File struct {
	Name      string
	Fragments []*Fragment
	Views     []*View
	// Variant holds annotations for the tagged union.
	Variant []Annotation
}

// Fragment is a named, reusable list of field specs.
type Fragment struct {
	Name   string
	Fields []*FieldSpec
	Span   diagnostic.Span
}

// View is one declared projection.
type View struct {
	Name   string
	Params []Param
	Items  []Item
	Owned  []Annotation
	Ref    []Annotation
	Mut    []Annotation
	Span   diagnostic.Span
}

// Param is a type parameter name declared on a view.
type Param struct {
	Name string
	Span diagnostic.Span
}

// Item is either a fragment spread or an inline field spec.
type Item struct {
	// Spread is the fragment name for "..name" items.
	Spread string
	Field  *FieldSpec
	Span   diagnostic.Span
}

// IsSpread reports whether the item splices a fragment.
func (i Item) IsSpread() bool {
	return i.Spread != ""
}

// FieldSpec is one extraction rule.
type FieldSpec struct {
	// Name is the source field, also the name the guard sees.
	Name string
	Mode Mode
	// Arm is the variant arm type name, possibly package qualified.
	Arm string
	// Type is the explicit type annotation, canonicalized, or "".
	Type  string
	Guard string
	Span  diagnostic.Span
	// TypeSpan and GuardSpan locate the annotation and guard text.
	TypeSpan  diagnostic.Span
	GuardSpan diagnostic.Span
}

// Same reports whether two specs describe the same extraction.
func (f *FieldSpec) Same(other *FieldSpec) bool {
	return f.Name == other.Name &&
		f.Mode == other.Mode &&
		f.Arm == other.Arm &&
		f.Type == other.Type &&
		f.Guard == other.Guard
}

// Target selects the generated item an annotation attaches to.
type Target int

const (
	TargetOwned Target = iota
	TargetRef
	TargetMut
	TargetVariant
)

// Annotation is a verbatim block attached to a generated item.
type Annotation struct {
	Target Target
	Text   string
	Span   diagnostic.Span
}
