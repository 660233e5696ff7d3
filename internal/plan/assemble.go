package plan

import (
	"fmt"
	"slices"

	"view-generator/internal/diagnostic"
	"view-generator/internal/dsl"
	"view-generator/internal/expand"
	"view-generator/internal/fieldmodel"
	"view-generator/internal/schema"
)

// Assemble builds the plan for the expanded views of file. The returned
// plan is nil when any error was reported.
func Assemble(src *schema.Source, file *dsl.File, views []expand.View) (*Plan, *diagnostic.Diagnostics) {
	a := &assembler{
		src:   src,
		diags: &diagnostic.Diagnostics{},
		plan:  &Plan{Source: src},
	}

	builder := fieldmodel.NewBuilder(src, a.diags)

	for _, v := range views {
		a.plan.Views = append(a.plan.Views, a.describe(builder, v))
	}

	if a.diags.HasErrors() {
		return nil, a.diags
	}

	for _, ann := range file.Variant {
		a.plan.VariantAnnotations = append(a.plan.VariantAnnotations, ann.Text)
	}

	a.unionParams()
	a.compatibility()
	a.checkNames()

	if a.diags.HasErrors() {
		return nil, a.diags
	}

	a.plan.Diagnostics = *a.diags

	return a.plan, a.diags
}

type assembler struct {
	src   *schema.Source
	diags *diagnostic.Diagnostics
	plan  *Plan
}

func (a *assembler) describe(builder *fieldmodel.Builder, v expand.View) *ViewDescriptor {
	decl := v.Decl
	desc := &ViewDescriptor{
		Name:  decl.Name,
		Owned: annotationTexts(decl.Owned),
		Ref:   annotationTexts(decl.Ref),
		Mut:   annotationTexts(decl.Mut),
		Span:  decl.Span,
	}

	for _, spec := range v.Fields {
		if f := builder.Build(decl.Name, spec); f != nil {
			desc.Fields = append(desc.Fields, f)
		}
	}

	if len(v.Fields) == 0 {
		a.diags.AddWarning(decl.Span, diagnostic.CodeEmptyView,
			fmt.Sprintf("view %s has no fields and always converts", decl.Name), decl.Name, "")
	}

	desc.Params = a.requiredParams(decl, desc.Fields)

	return desc
}

// requiredParams is the union of the declared parameters and those the
// field types mention, in source order.
func (a *assembler) requiredParams(decl *dsl.View, fields []*fieldmodel.Field) []schema.TypeParam {
	need := map[string]bool{}

	for _, p := range decl.Params {
		if _, ok := a.src.TypeParam(p.Name); !ok {
			a.diags.AddError(p.Span, diagnostic.CodeUnknownParam,
				fmt.Sprintf("view %s declares type parameter %s, which %s does not have", decl.Name, p.Name, a.src.Name),
				decl.Name, "")

			continue
		}

		need[p.Name] = true
	}

	for _, f := range fields {
		for _, t := range []string{f.Owned, f.Assert} {
			for _, tp := range a.src.ReferencedParams(t) {
				need[tp.Name] = true
			}
		}
	}

	var params []schema.TypeParam

	for _, tp := range a.src.TypeParams {
		if need[tp.Name] {
			params = append(params, tp)
		}
	}

	return params
}

func (a *assembler) unionParams() {
	need := map[string]bool{}

	for _, v := range a.plan.Views {
		for _, tp := range v.Params {
			need[tp.Name] = true
		}
	}

	for _, tp := range a.src.TypeParams {
		if need[tp.Name] {
			a.plan.UnionParams = append(a.plan.UnionParams, tp)
		}
	}
}

// compatibility fills the compatibility table and derives one accessor per
// distinct field name.
func (a *assembler) compatibility() {
	var order []string

	rows := map[string]*CompatRow{}

	for _, v := range a.plan.Views {
		for _, f := range v.Fields {
			row, ok := rows[f.Name]
			if !ok {
				row = &CompatRow{Field: f.Name, Identical: true}
				rows[f.Name] = row
				order = append(order, f.Name)
			}

			if len(row.Views) > 0 {
				first, _ := a.viewByName(row.Views[0]).Field(f.Name)
				if first.Owned != f.Owned || first.Mode != f.Mode {
					row.Identical = false
				}
			}

			row.Views = append(row.Views, v.Name)
		}
	}

	for _, name := range order {
		row := rows[name]
		row.InAll = len(row.Views) == len(a.plan.Views)
		a.plan.Compat = append(a.plan.Compat, *row)

		if acc, ok := a.accessor(row); ok {
			a.plan.Accessors = append(a.plan.Accessors, acc)
		}
	}
}

func (a *assembler) accessor(row *CompatRow) (Accessor, bool) {
	acc := Accessor{Field: row.Field, Direct: row.InAll && row.Identical}

	for _, viewName := range row.Views {
		view := a.viewByName(viewName)
		f, _ := view.Field(row.Field)

		if acc.Type == "" {
			acc.Type = f.Stripped()
		} else if acc.Type != f.Stripped() {
			a.diags.AddError(view.Span, diagnostic.CodeIncompatibleType,
				fmt.Sprintf("field %s is %s in view %s but %s in view %s; the union accessor needs one type",
					row.Field, f.Stripped(), viewName, acc.Type, row.Views[0]),
				viewName, row.Field)

			return Accessor{}, false
		}

		acc.Arms = append(acc.Arms, AccessorArm{View: viewName, PassThrough: f.PassThrough})
	}

	return acc, true
}

func (a *assembler) viewByName(name string) *ViewDescriptor {
	for _, v := range a.plan.Views {
		if v.Name == name {
			return v
		}
	}

	return nil
}

func annotationTexts(anns []dsl.Annotation) []string {
	if len(anns) == 0 {
		return nil
	}

	out := make([]string, 0, len(anns))
	for _, ann := range anns {
		out = append(out, ann.Text)
	}

	return out
}

// contains reports whether name is one of names.
func contains(names []string, name string) bool {
	return slices.Contains(names, name)
}
