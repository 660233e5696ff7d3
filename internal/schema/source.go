package schema

import (
	"slices"
	"strings"
)

// RuntimePath is the import path of the runtime package generated code uses.
const RuntimePath = "view-generator/viewrt"

// GeneratedHeader is the first line of every generated file.
const GeneratedHeader = "// Code generated by view-generator. DO NOT EDIT."

// Source is the struct every view of one declaration projects from.
type Source struct {
	// Name is the struct type name.
	Name string
	// Package is the package name.
	Package string
	// PkgPath is the full import path of the package.
	PkgPath string
	// TypeParams are the struct's type parameters in declaration order.
	TypeParams []TypeParam
	// Fields are the struct fields in declaration order.
	Fields []Field
	// Imports are the imports of the declaring file.
	Imports []Import
	// Decls are named types declared in the same package, by name.
	Decls map[string]Decl
	// Symbols are package-level identifiers visible to guard expressions.
	Symbols map[string]bool
	// Underlying maps the named types of the package and of the file's
	// imports, written as the file refers to them ("Celsius",
	// "time.Duration"), to their underlying type.
	Underlying map[string]string
}

// Field is one struct field.
type Field struct {
	Name string
	Type string
	// Interface is true when the field's type is an interface type.
	Interface bool
}

// TypeParam is one type parameter of the source struct.
type TypeParam struct {
	Name       string
	Constraint string
}

// Import is one import of the declaring file.
// Name is the identifier the file refers to the package by.
type Import struct {
	Name string
	Path string
}

// DeclKind classifies a package-level type declaration.
type DeclKind int

const (
	DeclOther DeclKind = iota
	DeclStruct
	DeclInterface
)

// Decl is a package-level named type.
type Decl struct {
	Name string
	Kind DeclKind
	// Implements lists the package interfaces the value type implements.
	Implements []string
	// PtrImplements lists the package interfaces only the pointer type implements.
	PtrImplements []string
}

// Field returns the field called name.
func (s *Source) Field(name string) (Field, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}

	return Field{}, false
}

// FieldNames returns the field names in declaration order.
func (s *Source) FieldNames() []string {
	names := make([]string, 0, len(s.Fields))
	for _, f := range s.Fields {
		names = append(names, f.Name)
	}

	return names
}

// FieldIndex returns the declaration index of the field, or -1.
func (s *Source) FieldIndex(name string) int {
	return slices.IndexFunc(s.Fields, func(f Field) bool { return f.Name == name })
}

// TypeParam returns the type parameter called name.
func (s *Source) TypeParam(name string) (TypeParam, bool) {
	for _, tp := range s.TypeParams {
		if tp.Name == name {
			return tp, true
		}
	}

	return TypeParam{}, false
}

// ImportPath returns the path imported under name, or "".
func (s *Source) ImportPath(name string) string {
	for _, imp := range s.Imports {
		if imp.Name == name {
			return imp.Path
		}
	}

	return ""
}

// Import returns the import registered under name.
func (s *Source) Import(name string) (Import, bool) {
	for _, imp := range s.Imports {
		if imp.Name == name {
			return imp, true
		}
	}

	return Import{}, false
}

// RuntimeName returns the identifier the declaring file uses for the runtime
// package, or "viewrt" when it does not import it.
func (s *Source) RuntimeName() string {
	for _, imp := range s.Imports {
		if imp.Path == RuntimePath {
			return imp.Name
		}
	}

	return "viewrt"
}

// IsInterface reports whether f holds an interface value.
func (s *Source) IsInterface(f Field) bool {
	if f.Interface || f.Type == "any" || strings.HasPrefix(f.Type, "interface{") {
		return true
	}

	d, ok := s.Decls[f.Type]

	return ok && d.Kind == DeclInterface
}

// IsSymbol reports whether name is a package-level identifier of the
// source package.
func (s *Source) IsSymbol(name string) bool {
	if s.Symbols[name] {
		return true
	}

	_, ok := s.Decls[name]

	return ok
}

// ParamList renders type parameters as "[K comparable, V any]", or "".
func ParamList(params []TypeParam) string {
	if len(params) == 0 {
		return ""
	}

	parts := make([]string, 0, len(params))
	for _, p := range params {
		parts = append(parts, p.Name+" "+p.Constraint)
	}

	return "[" + strings.Join(parts, ", ") + "]"
}

// ArgList renders type parameters as type arguments "[K, V]", or "".
func ArgList(params []TypeParam) string {
	if len(params) == 0 {
		return ""
	}

	names := make([]string, 0, len(params))
	for _, p := range params {
		names = append(names, p.Name)
	}

	return "[" + strings.Join(names, ", ") + "]"
}
