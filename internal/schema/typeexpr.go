package schema

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/types"
	"slices"
	"strings"
)

// ParseType parses a Go type expression.
func ParseType(expr string) (ast.Expr, error) {
	e, err := parser.ParseExpr(expr)
	if err != nil {
		return nil, fmt.Errorf("parsing type %q: %w", expr, err)
	}

	if !isTypeExpr(e) {
		return nil, fmt.Errorf("%q is not a type", expr)
	}

	return e, nil
}

// Canonical returns expr reformatted the way go/types prints expressions.
func Canonical(expr string) (string, error) {
	e, err := ParseType(expr)
	if err != nil {
		return "", err
	}

	return types.ExprString(e), nil
}

// IsPointer reports whether t is a pointer type.
func IsPointer(t string) bool {
	return strings.HasPrefix(t, "*")
}

// Elem removes one level of pointer from t.
func Elem(t string) string {
	return strings.TrimPrefix(t, "*")
}

// Pointer returns the pointer type to t.
func Pointer(t string) string {
	return "*" + t
}

// Strip removes the outer pointer of t, if any.
func Strip(t string) string {
	return Elem(t)
}

var basicTypes = map[string]string{
	"bool": "bool", "string": "string", "uintptr": "uintptr",
	"int": "int", "int8": "int8", "int16": "int16", "int32": "int32", "int64": "int64",
	"uint": "uint", "uint8": "uint8", "uint16": "uint16", "uint32": "uint32", "uint64": "uint64",
	"float32": "float32", "float64": "float64", "complex64": "complex64", "complex128": "complex128",
	"byte": "uint8", "rune": "int32",
}

// UnderlyingOf returns the underlying type of t. Type literals such as
// "[]int" are their own underlying type. It reports false for a named
// type with no record in Underlying, e.g. a type parameter.
func (s *Source) UnderlyingOf(t string) (string, bool) {
	if u, ok := basicTypes[t]; ok {
		return u, true
	}

	if u, ok := s.Underlying[t]; ok {
		if b, ok := basicTypes[u]; ok {
			return b, true
		}

		return u, true
	}

	e, err := ParseType(t)
	if err != nil {
		return "", false
	}

	switch e.(type) {
	case *ast.Ident, *ast.SelectorExpr, *ast.IndexExpr, *ast.IndexListExpr, *ast.ParenExpr:
		return "", false
	}

	return t, true
}

// ResultArg returns T when t is the runtime Result[T] type.
func (s *Source) ResultArg(t string) (string, bool) {
	e, err := ParseType(t)
	if err != nil {
		return "", false
	}

	idx, ok := e.(*ast.IndexExpr)
	if !ok {
		return "", false
	}

	sel, ok := idx.X.(*ast.SelectorExpr)
	if !ok || sel.Sel.Name != "Result" {
		return "", false
	}

	pkg, ok := sel.X.(*ast.Ident)
	if !ok || s.ImportPath(pkg.Name) != RuntimePath {
		return "", false
	}

	return types.ExprString(idx.Index), true
}

// Qualifiers returns the package identifiers referenced by t, sorted.
func Qualifiers(t string) []string {
	e, err := ParseType(t)
	if err != nil {
		return nil
	}

	return qualifiersOf(e)
}

// Idents returns the unqualified identifiers referenced by t, sorted.
func Idents(t string) []string {
	e, err := ParseType(t)
	if err != nil {
		return nil
	}

	seen := map[string]bool{}

	ast.Inspect(e, func(n ast.Node) bool {
		switch n := n.(type) {
		case *ast.SelectorExpr:
			return false
		case *ast.Field:
			// Names in func signatures and struct fields are not references.
			if n.Type != nil {
				ast.Inspect(n.Type, func(m ast.Node) bool {
					if id, ok := m.(*ast.Ident); ok {
						seen[id.Name] = true
					}

					_, isSel := m.(*ast.SelectorExpr)

					return !isSel
				})
			}

			return false
		case *ast.Ident:
			seen[n.Name] = true
		}

		return true
	})

	return sortedKeys(seen)
}

// ReferencedParams returns the source type parameters t mentions, in
// declaration order.
func (s *Source) ReferencedParams(t string) []TypeParam {
	idents := Idents(t)

	var out []TypeParam

	for _, tp := range s.TypeParams {
		if slices.Contains(idents, tp.Name) {
			out = append(out, tp)
		}
	}

	return out
}

func qualifiersOf(n ast.Node) []string {
	seen := map[string]bool{}

	ast.Inspect(n, func(n ast.Node) bool {
		if sel, ok := n.(*ast.SelectorExpr); ok {
			if id, ok := sel.X.(*ast.Ident); ok {
				seen[id.Name] = true
				return false
			}
		}

		return true
	})

	return sortedKeys(seen)
}

// QualifiersOf returns the package identifiers referenced by any expression.
func QualifiersOf(e ast.Expr) []string {
	return qualifiersOf(e)
}

func isTypeExpr(e ast.Expr) bool {
	switch e := e.(type) {
	case *ast.Ident, *ast.ArrayType, *ast.MapType, *ast.ChanType,
		*ast.FuncType, *ast.InterfaceType, *ast.StructType:
		return true
	case *ast.StarExpr:
		return isTypeExpr(e.X)
	case *ast.SelectorExpr:
		_, ok := e.X.(*ast.Ident)
		return ok
	case *ast.IndexExpr:
		return isTypeExpr(e.X) && isTypeExpr(e.Index)
	case *ast.IndexListExpr:
		if !isTypeExpr(e.X) {
			return false
		}

		for _, idx := range e.Indices {
			if !isTypeExpr(idx) {
				return false
			}
		}

		return true
	case *ast.ParenExpr:
		return isTypeExpr(e.X)
	default:
		return false
	}
}

func sortedKeys(m map[string]bool) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}

	slices.Sort(keys)

	return keys
}
