package fieldmodel

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"go/types"
	"slices"
	"strings"

	"view-generator/internal/diagnostic"
	"view-generator/internal/dsl"
	"view-generator/internal/match"
	"view-generator/internal/schema"
)

// Builder derives field models for the views of one source.
type Builder struct {
	src   *schema.Source
	diags *diagnostic.Diagnostics
}

// NewBuilder creates a Builder reporting into diags.
func NewBuilder(src *schema.Source, diags *diagnostic.Diagnostics) *Builder {
	return &Builder{src: src, diags: diags}
}

// Build resolves spec as a field of view. It returns nil after reporting
// an error.
func (b *Builder) Build(view string, spec *dsl.FieldSpec) *Field {
	sf, ok := b.src.Field(spec.Name)
	if !ok {
		b.diags.AddError(spec.Span, diagnostic.CodeUnknownField,
			fmt.Sprintf("field %s does not exist on %s", spec.Name, b.src.Name), view, spec.Name)

		return nil
	}

	f := &Field{
		Name:       spec.Name,
		Mode:       spec.Mode,
		Arm:        spec.Arm,
		Guard:      spec.Guard,
		SourceType: sf.Type,
	}

	if !b.bind(view, spec, sf, f) {
		return nil
	}

	f.Owned = f.Bound
	if spec.Type != "" && spec.Mode != dsl.ModeVariant && spec.Type != f.Bound {
		f.Owned = spec.Type
		f.Convert = true

		if !b.convertible(f.Bound, f.Owned) {
			b.diags.Errorf(spec.TypeSpan, diagnostic.CodeModeMismatch, view, spec.Name,
				"%s binds %s, which cannot be viewed as %s: borrowed views point into the source, so both types need the same underlying type",
				spec.Name, f.Bound, f.Owned)

			return nil
		}
	}

	f.PassThrough = schema.IsPointer(f.Owned)
	if f.PassThrough {
		f.Shared = f.Owned
		f.Exclusive = f.Owned
	} else {
		f.Shared = schema.Pointer(f.Owned)
		f.Exclusive = schema.Pointer(f.Owned)
	}

	qualifiers := map[string]bool{}
	for _, t := range []string{f.Owned, f.Assert} {
		for _, q := range schema.Qualifiers(t) {
			qualifiers[q] = true
		}
	}

	if spec.Guard != "" {
		if !b.guard(view, spec, f, qualifiers) {
			return nil
		}
	}

	for q := range qualifiers {
		f.Qualifiers = append(f.Qualifiers, q)
	}

	slices.Sort(f.Qualifiers)

	return f
}

// convertible reports whether *from converts to *to, which every
// borrowed representation of a converted field relies on. Both must be
// pointers or both not, and share an underlying type.
func (b *Builder) convertible(from, to string) bool {
	if schema.IsPointer(from) != schema.IsPointer(to) {
		return false
	}

	from, to = schema.Elem(from), schema.Elem(to)

	fu, ok := b.src.UnderlyingOf(from)
	if !ok {
		return false
	}

	tu, ok := b.src.UnderlyingOf(to)

	return ok && fu == tu
}

// bind classifies the pattern against the declared field type and sets
// Bound, plus Assert for variants.
func (b *Builder) bind(view string, spec *dsl.FieldSpec, sf schema.Field, f *Field) bool {
	mismatch := func(format string, args ...any) bool {
		b.diags.Errorf(spec.Span, diagnostic.CodeModeMismatch, view, spec.Name, format, args...)
		return false
	}

	switch spec.Mode {
	case dsl.ModePlain:
		f.Bound = sf.Type

	case dsl.ModeOptional:
		if !schema.IsPointer(sf.Type) {
			return mismatch("Some(%s) needs a pointer field, %s is %s", spec.Name, spec.Name, sf.Type)
		}

		f.Bound = schema.Elem(sf.Type)

	case dsl.ModeOk, dsl.ModeErr:
		arg, ok := b.src.ResultArg(sf.Type)
		if !ok {
			return mismatch("%s(%s) needs a %s.Result field, %s is %s",
				spec.Mode.Pattern(), spec.Name, b.src.RuntimeName(), spec.Name, sf.Type)
		}

		f.Bound = arg
		if spec.Mode == dsl.ModeErr {
			f.Bound = "error"
		}

	case dsl.ModeVariant:
		if !b.src.IsInterface(sf) {
			return mismatch("%s(%s) needs an interface field, %s is %s", spec.Arm, spec.Name, spec.Name, sf.Type)
		}

		assert := spec.Type
		if assert == "" {
			inferred, ok := b.inferArm(sf, spec.Arm)
			if !ok {
				b.diags.Errorf(spec.Span, diagnostic.CodeUnresolvedInner, view, spec.Name,
					"cannot infer the payload type of %s(%s); write %s(%s: T)", spec.Arm, spec.Name, spec.Arm, spec.Name)

				return false
			}

			assert = inferred
		}

		f.Assert = assert
		f.Bound = assert
	}

	return true
}

// inferArm finds the type to assert for arm when exactly one of Arm and
// *Arm implements the field's interface. Arms from other packages and
// interfaces declared elsewhere are never inferred.
func (b *Builder) inferArm(sf schema.Field, arm string) (string, bool) {
	if strings.Contains(arm, ".") {
		return "", false
	}

	decl, ok := b.src.Decls[arm]
	if !ok {
		return "", false
	}

	iface, ok := b.src.Decls[sf.Type]
	if !ok || iface.Kind != schema.DeclInterface {
		return "", false
	}

	value := slices.Contains(decl.Implements, sf.Type)
	ptr := slices.Contains(decl.PtrImplements, sf.Type)

	switch {
	case value && !ptr:
		return arm, true
	case ptr && !value:
		return schema.Pointer(arm), true
	default:
		return "", false
	}
}

// guard validates the identifiers of the guard expression.
func (b *Builder) guard(view string, spec *dsl.FieldSpec, f *Field, qualifiers map[string]bool) bool {
	expr, err := parser.ParseExpr(spec.Guard)
	if err != nil {
		b.diags.Errorf(spec.GuardSpan, diagnostic.CodeInvalidGuard, view, spec.Name, "guard is not a valid Go expression: %v", err)
		return false
	}

	refs := freeIdents(expr)
	valid := true

	for _, name := range refs {
		switch {
		case name == spec.Name:
		case b.src.ImportPath(name) != "":
			qualifiers[name] = true
		case b.src.IsSymbol(name), types.Universe.Lookup(name) != nil:
		default:
			candidates := append([]string{spec.Name}, symbolNames(b.src)...)
			b.diags.AddError(spec.GuardSpan, diagnostic.CodeUnknownIdentifier,
				fmt.Sprintf("guard of %s references unknown identifier %s", spec.Name, name),
				view, spec.Name, match.Suggest(name, candidates, 3)...)

			valid = false
		}
	}

	f.GuardRefs = refs

	return valid
}

// freeIdents returns the identifiers expr references, sorted. Names declared
// by function literals inside expr, and the field names keying struct
// literals, are not references.
func freeIdents(expr ast.Expr) []string {
	locals := map[string]bool{}

	ast.Inspect(expr, func(n ast.Node) bool {
		switch n := n.(type) {
		case *ast.FuncLit:
			for _, list := range []*ast.FieldList{n.Type.Params, n.Type.Results} {
				if list == nil {
					continue
				}

				for _, field := range list.List {
					for _, name := range field.Names {
						locals[name.Name] = true
					}
				}
			}
		case *ast.AssignStmt:
			if n.Tok == token.DEFINE {
				for _, lhs := range n.Lhs {
					if id, ok := lhs.(*ast.Ident); ok {
						locals[id.Name] = true
					}
				}
			}
		case *ast.RangeStmt:
			if n.Tok == token.DEFINE {
				for _, e := range []ast.Expr{n.Key, n.Value} {
					if id, ok := e.(*ast.Ident); ok {
						locals[id.Name] = true
					}
				}
			}
		case *ast.ValueSpec:
			for _, name := range n.Names {
				locals[name.Name] = true
			}
		}

		return true
	})

	refs := map[string]bool{}

	var visit func(n ast.Node) bool

	visit = func(n ast.Node) bool {
		switch n := n.(type) {
		case *ast.SelectorExpr:
			ast.Inspect(n.X, visit)
			return false
		case *ast.CompositeLit:
			if n.Type != nil {
				ast.Inspect(n.Type, visit)
			}

			// Identifier keys name fields only in struct literals; map,
			// slice and array keys are expressions.
			_, isMap := n.Type.(*ast.MapType)
			_, isArray := n.Type.(*ast.ArrayType)
			fieldKeys := !isMap && !isArray

			for _, elt := range n.Elts {
				kv, ok := elt.(*ast.KeyValueExpr)
				if !ok {
					ast.Inspect(elt, visit)
					continue
				}

				if _, ident := kv.Key.(*ast.Ident); !ident || !fieldKeys {
					ast.Inspect(kv.Key, visit)
				}

				ast.Inspect(kv.Value, visit)
			}

			return false
		case *ast.BranchStmt:
			return false
		case *ast.LabeledStmt:
			ast.Inspect(n.Stmt, visit)
			return false
		case *ast.Ident:
			if n.Name != "_" && !locals[n.Name] {
				refs[n.Name] = true
			}
		}

		return true
	}

	ast.Inspect(expr, visit)

	out := make([]string, 0, len(refs))
	for name := range refs {
		out = append(out, name)
	}

	slices.Sort(out)

	return out
}

func symbolNames(src *schema.Source) []string {
	names := make([]string, 0, len(src.Symbols))
	for name := range src.Symbols {
		names = append(names, name)
	}

	slices.Sort(names)

	return names
}
