package dsl

import (
	"fmt"

	"view-generator/internal/diagnostic"
	"view-generator/internal/match"
	"view-generator/internal/schema"
)

const maxSuggestions = 3

// Check validates names in f against src: every spread must name a declared
// fragment, every field must exist on src, and explicit type annotations for
// one field must agree across the whole body.
func Check(f *File, src *schema.Source) *diagnostic.Diagnostics {
	diags := &diagnostic.Diagnostics{}

	if len(f.Views) == 0 {
		diags.AddError(diagnostic.Span{}, diagnostic.CodeNoViews, "declaration body declares no views", "", "")
	}

	fragmentNames := make([]string, 0, len(f.Fragments))
	fragments := make(map[string]bool, len(f.Fragments))

	for _, frag := range f.Fragments {
		fragmentNames = append(fragmentNames, frag.Name)
		fragments[frag.Name] = true
	}

	annotated := typeTable{diags: diags, seen: map[string]*FieldSpec{}}

	for _, frag := range f.Fragments {
		for _, field := range frag.Fields {
			checkField(diags, src, frag.Name, field)
			annotated.observe(frag.Name, field)
		}
	}

	for _, view := range f.Views {
		for _, item := range view.Items {
			if item.IsSpread() {
				if !fragments[item.Spread] {
					diags.AddError(item.Span, diagnostic.CodeUndeclaredFragment,
						fmt.Sprintf("view %s includes undeclared fragment %s", view.Name, item.Spread),
						view.Name, "", match.Suggest(item.Spread, fragmentNames, maxSuggestions)...)
				}

				continue
			}

			checkField(diags, src, view.Name, item.Field)
			annotated.observe(view.Name, item.Field)
		}
	}

	return diags
}

func checkField(diags *diagnostic.Diagnostics, src *schema.Source, owner string, field *FieldSpec) {
	if _, ok := src.Field(field.Name); ok {
		return
	}

	diags.AddError(field.Span, diagnostic.CodeUnknownField,
		fmt.Sprintf("field %s does not exist on %s", field.Name, src.Name),
		owner, field.Name, match.Suggest(field.Name, src.FieldNames(), maxSuggestions)...)
}

// typeTable records the first explicit type annotation seen per field.
type typeTable struct {
	diags *diagnostic.Diagnostics
	seen  map[string]*FieldSpec
}

func (t *typeTable) observe(owner string, field *FieldSpec) {
	if field.Type == "" {
		return
	}

	first, ok := t.seen[field.Name]
	if !ok {
		t.seen[field.Name] = field
		return
	}

	if first.Type != field.Type {
		t.diags.AddError(field.TypeSpan, diagnostic.CodeTypeConflict,
			fmt.Sprintf("field %s is annotated as %s here but as %s elsewhere", field.Name, field.Type, first.Type),
			owner, field.Name)
	}
}
