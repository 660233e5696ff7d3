package expand

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"view-generator/internal/diagnostic"
	"view-generator/internal/dsl"
)

func parse(t *testing.T, src string) *dsl.File {
	t.Helper()

	file, diags := dsl.Parse("test.views", []byte(src))
	require.False(t, diags.HasErrors(), diags.Err())

	return file
}

func names(fields []*dsl.FieldSpec) []string {
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		out = append(out, f.Name)
	}

	return out
}

func TestResolve_SplicesInOrder(t *testing.T) {
	file := parse(t, `
		fragment all { Offset, Limit }
		fragment keyword { Some(Query), WordsLimit }
		view KeywordSearch { Id, ..all, Ratio, ..keyword }
		view Bare { Id }
	`)

	views, diags := Resolve(file)
	require.False(t, diags.HasErrors(), diags.Err())
	require.Len(t, views, 2)

	assert.Equal(t, "KeywordSearch", views[0].Decl.Name)
	assert.Equal(t, []string{"Id", "Offset", "Limit", "Ratio", "Query", "WordsLimit"}, names(views[0].Fields))
	assert.Equal(t, []string{"Id"}, names(views[1].Fields))
}

func TestResolve_CollapsesIdenticalDuplicates(t *testing.T) {
	file := parse(t, `
		fragment a { Offset, Some(Query) if ok(Query) }
		fragment b { Limit, Some(Query) if ok(Query), Offset }
		view V { ..a, ..b, Limit }
	`)

	views, diags := Resolve(file)
	require.False(t, diags.HasErrors(), diags.Err())
	assert.Equal(t, []string{"Offset", "Query", "Limit"}, names(views[0].Fields))
	assert.Equal(t, "ok(Query)", views[0].Fields[1].Guard)
}

func TestResolve_Conflicts(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		message string
	}{
		{
			"mode",
			`fragment a { Query } view V { ..a, Some(Query) }`,
			"patterns (plain and some)",
		},
		{
			"type",
			`view V { Offset: int64, Offset }`,
			`types ("int64" and "")`,
		},
		{
			"arm",
			`view V { Circle(Shape), Square(Shape) }`,
			"variant arms (Circle and Square)",
		},
		{
			"guard only",
			`fragment a { Some(Query) if ok(Query) } fragment b { Some(Query) if long(Query) } view V { ..a, ..b }`,
			`guards ("ok(Query)" and "long(Query)")`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			views, diags := Resolve(parse(t, tt.src))
			assert.Nil(t, views)
			require.Len(t, diags.Errors, 1)
			assert.Equal(t, diagnostic.CodeDuplicateField, diags.Errors[0].Code)
			assert.Equal(t, "V", diags.Errors[0].View)
			assert.Contains(t, diags.Errors[0].Message, tt.message)
		})
	}
}

func TestResolve_UndeclaredFragment(t *testing.T) {
	views, diags := Resolve(parse(t, `view V { ..missing }`))
	assert.Nil(t, views)
	assert.Equal(t, []string{diagnostic.CodeUndeclaredFragment}, diags.Codes())
}
