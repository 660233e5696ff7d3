package expand

import (
	"fmt"

	"view-generator/internal/diagnostic"
	"view-generator/internal/dsl"
)

// View is a declared view with its fragments spliced in.
type View struct {
	Decl   *dsl.View
	Fields []*dsl.FieldSpec
}

// Resolve expands every view of f in declaration order. Spreads are
// replaced by the fragment's fields at their position; a field repeated
// with an identical spec keeps its first position; a field repeated with
// any difference, including only its guard, is an error.
func Resolve(f *dsl.File) ([]View, *diagnostic.Diagnostics) {
	diags := &diagnostic.Diagnostics{}

	fragments := make(map[string]*dsl.Fragment, len(f.Fragments))
	for _, frag := range f.Fragments {
		fragments[frag.Name] = frag
	}

	views := make([]View, 0, len(f.Views))

	for _, decl := range f.Views {
		var fields []*dsl.FieldSpec

		seen := map[string]*dsl.FieldSpec{}

		add := func(spec *dsl.FieldSpec) {
			first, ok := seen[spec.Name]
			if !ok {
				seen[spec.Name] = spec
				fields = append(fields, spec)

				return
			}

			if first.Same(spec) {
				return
			}

			diags.AddError(spec.Span, diagnostic.CodeDuplicateField,
				fmt.Sprintf("field %s is included twice with different %s", spec.Name, difference(first, spec)),
				decl.Name, spec.Name)
		}

		for _, item := range decl.Items {
			if !item.IsSpread() {
				add(item.Field)
				continue
			}

			frag, ok := fragments[item.Spread]
			if !ok {
				diags.AddError(item.Span, diagnostic.CodeUndeclaredFragment,
					fmt.Sprintf("view %s includes undeclared fragment %s", decl.Name, item.Spread), decl.Name, "")

				continue
			}

			for _, spec := range frag.Fields {
				add(spec)
			}
		}

		views = append(views, View{Decl: decl, Fields: fields})
	}

	if diags.HasErrors() {
		return nil, diags
	}

	return views, diags
}

func difference(a, b *dsl.FieldSpec) string {
	switch {
	case a.Mode != b.Mode:
		return fmt.Sprintf("patterns (%s and %s)", a.Mode, b.Mode)
	case a.Arm != b.Arm:
		return fmt.Sprintf("variant arms (%s and %s)", a.Arm, b.Arm)
	case a.Type != b.Type:
		return fmt.Sprintf("types (%q and %q)", a.Type, b.Type)
	default:
		return fmt.Sprintf("guards (%q and %q)", a.Guard, b.Guard)
	}
}
