package dsl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"view-generator/internal/diagnostic"
	"view-generator/internal/schema"
)

func searchSource() *schema.Source {
	return &schema.Source{
		Name:    "Search",
		Package: "search",
		Fields: []schema.Field{
			{Name: "Query", Type: "*string"},
			{Name: "Offset", Type: "int"},
			{Name: "Limit", Type: "int"},
			{Name: "WordsLimit", Type: "int"},
		},
	}
}

func mustParse(t *testing.T, src string) *File {
	t.Helper()

	file, diags := Parse("test.views", []byte(src))
	require.False(t, diags.HasErrors(), diags.Err())

	return file
}

func TestCheck_Valid(t *testing.T) {
	file := mustParse(t, `
		fragment all { Offset, Limit }
		view KeywordSearch { ..all, Some(Query), WordsLimit: int }
	`)

	diags := Check(file, searchSource())
	assert.False(t, diags.HasErrors(), diags.Err())
}

func TestCheck_UndeclaredFragment(t *testing.T) {
	file := mustParse(t, `
		fragment keyword { Some(Query) }
		view V { ..keywords }
	`)

	diags := Check(file, searchSource())
	require.True(t, diags.HasErrors())
	assert.Equal(t, []string{diagnostic.CodeUndeclaredFragment}, diags.Codes())
	assert.Equal(t, []string{"keyword"}, diags.Errors[0].Suggestions)
	assert.Equal(t, "V", diags.Errors[0].View)
}

func TestCheck_UnknownField(t *testing.T) {
	file := mustParse(t, `
		fragment f { Ofset }
		view V { ..f, Some(Qeury) }
	`)

	diags := Check(file, searchSource())
	require.Len(t, diags.Errors, 2)

	assert.Equal(t, diagnostic.CodeUnknownField, diags.Errors[0].Code)
	assert.Equal(t, "f", diags.Errors[0].View)
	assert.Equal(t, []string{"Offset"}, diags.Errors[0].Suggestions)

	assert.Equal(t, diagnostic.CodeUnknownField, diags.Errors[1].Code)
	assert.Equal(t, "Query", diags.Errors[1].Suggestions[0])
}

func TestCheck_TypeAnnotationConflict(t *testing.T) {
	file := mustParse(t, `
		fragment f { Offset: int64 }
		view A { ..f }
		view B { Offset: uint }
		view C { Offset: int64 }
	`)

	diags := Check(file, searchSource())
	require.Len(t, diags.Errors, 1)
	assert.Equal(t, diagnostic.CodeTypeConflict, diags.Errors[0].Code)
	assert.Equal(t, "B", diags.Errors[0].View)
	assert.Contains(t, diags.Errors[0].Message, "uint")
}

func TestCheck_NoViews(t *testing.T) {
	file := mustParse(t, `fragment f { Offset }`)

	diags := Check(file, searchSource())
	assert.Equal(t, []string{diagnostic.CodeNoViews}, diags.Codes())
}
