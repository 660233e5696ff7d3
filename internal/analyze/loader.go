package analyze

import (
	"bytes"
	"errors"
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"go/types"
	"path/filepath"
	"slices"
	"strconv"

	"go.uber.org/zap"
	"golang.org/x/tools/go/packages"

	"view-generator/internal/common"
	"view-generator/internal/schema"
)

// LoadMode specifies what information to load from packages.
const LoadMode = packages.NeedName |
	packages.NeedFiles |
	packages.NeedSyntax |
	packages.NeedTypes |
	packages.NeedTypesInfo |
	packages.NeedImports

// Analyzer loads Go packages and describes source structs.
type Analyzer struct {
	// Dir is the directory patterns are resolved in; the working directory
	// when empty.
	Dir string
	Log *zap.Logger
}

// NewAnalyzer creates a new Analyzer.
func NewAnalyzer(dir string, log *zap.Logger) *Analyzer {
	if log == nil {
		log = zap.NewNop()
	}

	return &Analyzer{Dir: dir, Log: log}
}

// Loaded is a source struct together with where it was declared.
type Loaded struct {
	Source *schema.Source
	// Dir is the directory of the package.
	Dir string
	// File is the file declaring the struct.
	File string
}

// LoadSource loads the package matching pattern and describes the struct
// typeName. Files carrying the generated header are reduced to their
// package clause, so stale output never influences the description and
// its declarations are not seen as taken names.
func (a *Analyzer) LoadSource(pattern, typeName string) (*Loaded, error) {
	cfg := &packages.Config{
		Mode:      LoadMode,
		Dir:       a.Dir,
		ParseFile: parseSkippingGenerated,
	}

	pkgs, err := packages.Load(cfg, pattern)
	if err != nil {
		return nil, fmt.Errorf("failed to load packages: %w", err)
	}

	switch len(pkgs) {
	case 0:
		return nil, fmt.Errorf("pattern %s matched no packages", pattern)
	case 1:
	default:
		return nil, fmt.Errorf("pattern %s matched %d packages, want one", pattern, len(pkgs))
	}

	pkg := pkgs[0]

	// Type errors are expected while generated code is missing or stale;
	// anything else means the package cannot be described.
	var errs []error
	for _, e := range pkg.Errors {
		if e.Kind == packages.TypeError {
			a.Log.Debug("ignoring type error", zap.String("error", e.Error()))
			continue
		}

		errs = append(errs, e)
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("package errors: %w", errors.Join(errs...))
	}

	if pkg.Types == nil {
		return nil, fmt.Errorf("package %s has no type information", pkg.PkgPath)
	}

	return a.describe(pkg, typeName)
}

func parseSkippingGenerated(fset *token.FileSet, filename string, src []byte) (*ast.File, error) {
	mode := parser.AllErrors | parser.ParseComments
	if bytes.HasPrefix(src, []byte(schema.GeneratedHeader)) {
		mode = parser.PackageClauseOnly
	}

	return parser.ParseFile(fset, filename, src, mode)
}

func (a *Analyzer) describe(pkg *packages.Package, typeName string) (*Loaded, error) {
	obj, ok := pkg.Types.Scope().Lookup(typeName).(*types.TypeName)
	if !ok {
		return nil, fmt.Errorf("type %s not found in %s", typeName, pkg.PkgPath)
	}

	st, ok := obj.Type().Underlying().(*types.Struct)
	if !ok {
		return nil, fmt.Errorf("type %s is not a struct", typeName)
	}

	file, spec := findTypeSpec(pkg, obj)
	if spec == nil {
		return nil, fmt.Errorf("declaration of %s not found in %s", typeName, pkg.PkgPath)
	}

	imports := fileImports(pkg, file)

	src := &schema.Source{
		Name:       typeName,
		Package:    pkg.Name,
		PkgPath:    pkg.PkgPath,
		Imports:    imports,
		Decls:      decls(pkg.Types),
		Symbols:    symbols(pkg.Types),
		Underlying: underlying(pkg.Types, imports),
	}

	if spec.TypeParams != nil {
		for _, field := range spec.TypeParams.List {
			for _, name := range field.Names {
				src.TypeParams = append(src.TypeParams, schema.TypeParam{
					Name:       name.Name,
					Constraint: types.ExprString(field.Type),
				})
			}
		}
	}

	src.Fields = structFields(pkg, spec, st)

	filename := pkg.Fset.Position(file.Pos()).Filename

	a.Log.Debug("described source",
		zap.String("type", typeName),
		zap.String("package", pkg.PkgPath),
		zap.Int("fields", len(src.Fields)),
		zap.Int("decls", len(src.Decls)))

	return &Loaded{Source: src, Dir: filepath.Dir(filename), File: filename}, nil
}

func findTypeSpec(pkg *packages.Package, obj *types.TypeName) (*ast.File, *ast.TypeSpec) {
	for _, file := range pkg.Syntax {
		if obj.Pos() < file.Pos() || obj.Pos() >= file.End() {
			continue
		}

		for _, decl := range file.Decls {
			gd, ok := decl.(*ast.GenDecl)
			if !ok || gd.Tok != token.TYPE {
				continue
			}

			for _, s := range gd.Specs {
				if ts, ok := s.(*ast.TypeSpec); ok && ts.Name.Pos() == obj.Pos() {
					return file, ts
				}
			}
		}
	}

	return nil, nil
}

// structFields keeps the field types as written, so they read the same way
// in generated code placed in the same package.
func structFields(pkg *packages.Package, spec *ast.TypeSpec, st *types.Struct) []schema.Field {
	syntax, _ := spec.Type.(*ast.StructType)

	exprs := map[string]ast.Expr{}
	if syntax != nil {
		for _, field := range syntax.Fields.List {
			for _, name := range field.Names {
				exprs[name.Name] = field.Type
			}

			if len(field.Names) == 0 {
				exprs[embeddedName(field.Type)] = field.Type
			}
		}
	}

	fields := make([]schema.Field, 0, st.NumFields())

	for i := range st.NumFields() {
		v := st.Field(i)

		typ := types.TypeString(v.Type(), types.RelativeTo(pkg.Types))
		if expr, ok := exprs[v.Name()]; ok {
			typ = types.ExprString(expr)
		}

		fields = append(fields, schema.Field{
			Name:      v.Name(),
			Type:      typ,
			Interface: types.IsInterface(v.Type()),
		})
	}

	return fields
}

func embeddedName(expr ast.Expr) string {
	switch e := expr.(type) {
	case *ast.Ident:
		return e.Name
	case *ast.StarExpr:
		return embeddedName(e.X)
	case *ast.SelectorExpr:
		return e.Sel.Name
	case *ast.IndexExpr:
		return embeddedName(e.X)
	case *ast.IndexListExpr:
		return embeddedName(e.X)
	}

	return ""
}

func fileImports(pkg *packages.Package, file *ast.File) []schema.Import {
	var out []schema.Import

	for _, spec := range file.Imports {
		path, err := strconv.Unquote(spec.Path.Value)
		if err != nil {
			continue
		}

		name := common.AssumedName(path)
		for _, imported := range pkg.Types.Imports() {
			if imported.Path() == path {
				name = imported.Name()
			}
		}

		if spec.Name != nil {
			name = spec.Name.Name
		}

		if name == "_" || name == "." {
			continue
		}

		out = append(out, schema.Import{Name: name, Path: path})
	}

	return out
}

// decls records every named type of the package and, for each, the
// package interfaces it and its pointer implement.
func decls(pkg *types.Package) map[string]schema.Decl {
	scope := pkg.Scope()
	out := map[string]schema.Decl{}

	var ifaces []*types.TypeName

	for _, name := range scope.Names() {
		tn, ok := scope.Lookup(name).(*types.TypeName)
		if !ok {
			continue
		}

		kind := schema.DeclOther

		switch tn.Type().Underlying().(type) {
		case *types.Struct:
			kind = schema.DeclStruct
		case *types.Interface:
			kind = schema.DeclInterface

			if !isGeneric(tn) {
				ifaces = append(ifaces, tn)
			}
		}

		out[name] = schema.Decl{Name: name, Kind: kind}
	}

	for name, d := range out {
		tn := scope.Lookup(name).(*types.TypeName)
		if isGeneric(tn) || d.Kind == schema.DeclInterface {
			continue
		}

		for _, iface := range ifaces {
			it, _ := iface.Type().Underlying().(*types.Interface)

			value := types.Implements(tn.Type(), it)
			ptr := types.Implements(types.NewPointer(tn.Type()), it)

			switch {
			case value:
				d.Implements = append(d.Implements, iface.Name())
			case ptr:
				d.PtrImplements = append(d.PtrImplements, iface.Name())
			}
		}

		slices.Sort(d.Implements)
		slices.Sort(d.PtrImplements)
		out[name] = d
	}

	return out
}

// underlying maps the non-generic named types of the package, and the
// exported ones of the packages the declaring file imports, to their
// underlying type written as that file would write it.
func underlying(pkg *types.Package, imports []schema.Import) map[string]string {
	names := make(map[string]string, len(imports))
	for _, imp := range imports {
		names[imp.Path] = imp.Name
	}

	qualifier := func(p *types.Package) string {
		if p == pkg {
			return ""
		}

		if name, ok := names[p.Path()]; ok {
			return name
		}

		return p.Name()
	}

	out := map[string]string{}

	record := func(scope *types.Scope, prefix string, exportedOnly bool) {
		for _, name := range scope.Names() {
			tn, ok := scope.Lookup(name).(*types.TypeName)
			if !ok || isGeneric(tn) || (exportedOnly && !tn.Exported()) {
				continue
			}

			out[prefix+name] = types.TypeString(tn.Type().Underlying(), qualifier)
		}
	}

	record(pkg.Scope(), "", false)

	for _, imported := range pkg.Imports() {
		if name, ok := names[imported.Path()]; ok {
			record(imported.Scope(), name+".", true)
		}
	}

	return out
}

func isGeneric(tn *types.TypeName) bool {
	named, ok := tn.Type().(*types.Named)
	return ok && named.TypeParams().Len() > 0
}

// symbols returns the package-level identifiers guards may reference.
func symbols(pkg *types.Package) map[string]bool {
	scope := pkg.Scope()
	out := make(map[string]bool, scope.Len())

	for _, name := range scope.Names() {
		out[name] = true
	}

	return out
}
