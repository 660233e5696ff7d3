package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSource() *Source {
	return &Source{
		Name:       "Search",
		Package:    "search",
		PkgPath:    "example.com/search",
		TypeParams: []TypeParam{{Name: "K", Constraint: "comparable"}, {Name: "V", Constraint: "any"}},
		Fields: []Field{
			{Name: "Query", Type: "*string"},
			{Name: "Limit", Type: "int"},
			{Name: "Vector", Type: "viewrt.Result[[]byte]"},
			{Name: "Shape", Type: "Shape"},
			{Name: "Index", Type: "map[K]V"},
			{Name: "Budget", Type: "time.Duration"},
		},
		Imports: []Import{
			{Name: "viewrt", Path: RuntimePath},
			{Name: "time", Path: "time"},
		},
		Decls: map[string]Decl{
			"Shape":  {Name: "Shape", Kind: DeclInterface},
			"Circle": {Name: "Circle", Kind: DeclStruct, Implements: []string{"Shape"}},
		},
		Symbols: map[string]bool{"validRatio": true},
		Underlying: map[string]string{
			"Celsius":       "float64",
			"Runes":         "[]rune",
			"time.Duration": "int64",
		},
	}
}

func TestSource_Field(t *testing.T) {
	s := testSource()

	f, ok := s.Field("Limit")
	require.True(t, ok)
	assert.Equal(t, "int", f.Type)

	_, ok = s.Field("Missing")
	assert.False(t, ok)

	assert.Equal(t, 3, s.FieldIndex("Shape"))
	assert.Equal(t, -1, s.FieldIndex("Missing"))
	assert.Equal(t, []string{"Query", "Limit", "Vector", "Shape", "Index", "Budget"}, s.FieldNames())
}

func TestSource_IsInterface(t *testing.T) {
	s := testSource()

	shape, _ := s.Field("Shape")
	limit, _ := s.Field("Limit")

	assert.True(t, s.IsInterface(shape))
	assert.False(t, s.IsInterface(limit))
	assert.True(t, s.IsInterface(Field{Name: "X", Type: "any"}))
	assert.True(t, s.IsInterface(Field{Name: "X", Type: "io.Reader", Interface: true}))
}

func TestSource_ImportsAndSymbols(t *testing.T) {
	s := testSource()

	assert.Equal(t, "time", s.ImportPath("time"))
	assert.Empty(t, s.ImportPath("fmt"))
	assert.Equal(t, "viewrt", s.RuntimeName())
	assert.True(t, s.IsSymbol("validRatio"))
	assert.True(t, s.IsSymbol("Circle"))
	assert.False(t, s.IsSymbol("nope"))

	s.Imports[0].Name = "rt"
	assert.Equal(t, "rt", s.RuntimeName())
}

func TestParamList(t *testing.T) {
	s := testSource()

	assert.Equal(t, "[K comparable, V any]", ParamList(s.TypeParams))
	assert.Equal(t, "[K, V]", ArgList(s.TypeParams))
	assert.Empty(t, ParamList(nil))
	assert.Empty(t, ArgList(nil))
}
