package plan

import (
	"fmt"

	"view-generator/internal/diagnostic"
)

// checkNames rejects generated identifiers that would clash with each
// other, with the source package, or with the fields they sit beside.
func (a *assembler) checkNames() {
	src := a.src
	fieldNames := src.FieldNames()

	declared := map[string]string{}
	declare := func(name, what string, span diagnostic.Span, view string) {
		if prev, ok := declared[name]; ok {
			a.diags.AddError(span, diagnostic.CodeNameCollision,
				fmt.Sprintf("%s %s collides with %s", what, name, prev), view, "")

			return
		}

		if name == src.Name || src.IsSymbol(name) {
			a.diags.AddError(span, diagnostic.CodeNameCollision,
				fmt.Sprintf("%s %s collides with a declaration in package %s", what, name, src.Package), view, "")

			return
		}

		declared[name] = what + " " + name
	}

	union := UnionName(src.Name)
	declare(union, "union type", diagnostic.Span{}, "")
	declare(KindName(src.Name), "union kind type", diagnostic.Span{}, "")

	for _, v := range a.plan.Views {
		declare(v.Name, "view type", v.Span, v.Name)
		declare(RefName(v.Name), "shared view type", v.Span, v.Name)
		declare(MutName(v.Name), "exclusive view type", v.Span, v.Name)
		declare(KindConst(src.Name, v.Name), "union kind constant", v.Span, v.Name)
		declare(ConstructorName(src.Name, v.Name), "union constructor", v.Span, v.Name)

		for _, method := range []string{IntoName(v.Name), AsRefName(v.Name), AsMutName(v.Name)} {
			if contains(fieldNames, method) {
				a.diags.AddError(v.Span, diagnostic.CodeNameCollision,
					fmt.Sprintf("method %s.%s collides with field %s", src.Name, method, method), v.Name, method)
			}
		}

		for _, f := range v.Fields {
			switch f.Name {
			case AsRefMethod, AsMutMethod:
				a.diags.AddError(v.Span, diagnostic.CodeNameCollision,
					fmt.Sprintf("field %s collides with method %s.%s", f.Name, v.Name, f.Name), v.Name, f.Name)
			case ReleaseMethod, LeaseField:
				a.diags.AddError(v.Span, diagnostic.CodeNameCollision,
					fmt.Sprintf("field %s collides with %s.%s", f.Name, RefName(v.Name), f.Name), v.Name, f.Name)
			}
		}

		a.checkGuardLocals(v)
	}

	members := map[string]string{KindMethod: "method " + KindMethod, UnionValue: "field " + UnionValue}
	for _, v := range a.plan.Views {
		members[v.Name] = "arm accessor " + v.Name
	}

	for _, acc := range a.plan.Accessors {
		if prev, ok := members[acc.Field]; ok {
			a.diags.AddError(diagnostic.Span{}, diagnostic.CodeNameCollision,
				fmt.Sprintf("accessor %s.%s collides with %s", union, acc.Field, prev), "", acc.Field)
		}
	}
}

// checkGuardLocals rejects guards that reference a package identifier the
// generated conversion shadows with a local.
func (a *assembler) checkGuardLocals(v *ViewDescriptor) {
	locals := map[string]bool{SourceReceiver: true, LeaseField: true, OkLocal: true}
	for _, f := range v.Fields {
		locals[Local(f.Name)] = true
		locals[AssertLocal(f.Name)] = true
	}

	for _, f := range v.Fields {
		for _, ref := range f.GuardRefs {
			if ref != f.Name && locals[ref] {
				a.diags.AddError(v.Span, diagnostic.CodeNameCollision,
					fmt.Sprintf("guard of %s references %s, which generated code declares as a local", f.Name, ref),
					v.Name, f.Name)
			}
		}
	}
}
