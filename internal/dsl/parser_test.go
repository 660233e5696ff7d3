package dsl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"view-generator/internal/diagnostic"
)

const searchViews = `
// Views over Search.
@variant "//easyjson:json"

fragment all {
	Offset,
	Limit,
}

fragment keyword { Some(Query), WordsLimit }

/* semantic search needs a full embedding */
fragment semantic {
	Ok(Vector) if len(*Vector) == 768,
}

@owned "// KeywordSearch is a plain keyword query."
@ref ` + "`// KeywordSearchRef borrows a Search.\n// It must be released.`" + `
view KeywordSearch {
	..all,
	..keyword,
}

view HybridSearch[T] {
	..all,
	..keyword,
	..semantic,
	Some(Ratio: float32) if validRatio(*Ratio, func(x float32) bool { return x < 1 }),
	Circle(Shape),
	geo.Square(Area: *geo.Square),
	Label: Name,
}
`

func TestParse_Search(t *testing.T) {
	file, diags := Parse("search.views", []byte(searchViews))
	require.False(t, diags.HasErrors(), diags.Err())
	require.NotNil(t, file)

	require.Len(t, file.Fragments, 3)
	assert.Equal(t, "all", file.Fragments[0].Name)
	assert.Equal(t, []string{"Offset", "Limit"}, fieldNames(file.Fragments[0].Fields))

	keyword := file.Fragments[1]
	require.Len(t, keyword.Fields, 2)
	assert.Equal(t, ModeOptional, keyword.Fields[0].Mode)
	assert.Equal(t, "Query", keyword.Fields[0].Name)
	assert.Equal(t, ModePlain, keyword.Fields[1].Mode)

	vector := file.Fragments[2].Fields[0]
	assert.Equal(t, ModeOk, vector.Mode)
	assert.Equal(t, "len(*Vector) == 768", vector.Guard)

	require.Len(t, file.Views, 2)

	ks := file.Views[0]
	assert.Equal(t, "KeywordSearch", ks.Name)
	require.Len(t, ks.Items, 2)
	assert.Equal(t, "all", ks.Items[0].Spread)
	assert.Equal(t, "keyword", ks.Items[1].Spread)
	require.Len(t, ks.Owned, 1)
	assert.Equal(t, "// KeywordSearch is a plain keyword query.", ks.Owned[0].Text)
	require.Len(t, ks.Ref, 1)
	assert.Equal(t, "// KeywordSearchRef borrows a Search.\n// It must be released.", ks.Ref[0].Text)
	assert.Empty(t, ks.Mut)

	hs := file.Views[1]
	assert.Equal(t, []Param{{Name: "T", Span: hs.Params[0].Span}}, hs.Params)
	require.Len(t, hs.Items, 7)

	ratio := hs.Items[3].Field
	assert.Equal(t, ModeOptional, ratio.Mode)
	assert.Equal(t, "Ratio", ratio.Name)
	assert.Equal(t, "float32", ratio.Type)
	assert.Equal(t, "validRatio(*Ratio, func(x float32) bool { return x < 1 })", ratio.Guard)

	circle := hs.Items[4].Field
	assert.Equal(t, ModeVariant, circle.Mode)
	assert.Equal(t, "Circle", circle.Arm)
	assert.Equal(t, "Shape", circle.Name)

	square := hs.Items[5].Field
	assert.Equal(t, "geo.Square", square.Arm)
	assert.Equal(t, "Area", square.Name)
	assert.Equal(t, "*geo.Square", square.Type)

	label := hs.Items[6].Field
	assert.Equal(t, ModePlain, label.Mode)
	assert.Equal(t, "Label", label.Name)
	assert.Equal(t, "Name", label.Type)

	require.Len(t, file.Variant, 1)
	assert.Equal(t, "//easyjson:json", file.Variant[0].Text)
}

func TestParse_Spans(t *testing.T) {
	src := []byte("view V { Id, Some(Name) if ok(Name) }")

	file, diags := Parse("v.views", src)
	require.False(t, diags.HasErrors(), diags.Err())

	name := file.Views[0].Items[1].Field
	assert.Equal(t, "Some(Name)", string(src[name.Span.Offset:name.Span.End()]))
	assert.Equal(t, "ok(Name)", string(src[name.GuardSpan.Offset:name.GuardSpan.End()]))
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		code string
	}{
		{"missing brace", "view V { Id ", diagnostic.CodeSyntax},
		{"missing comma", "view V { Id Name }", diagnostic.CodeSyntax},
		{"unknown keyword", "struct V { Id }", diagnostic.CodeSyntax},
		{"bad annotation target", `@doc "x" view V { Id }`, diagnostic.CodeSyntax},
		{"dangling annotation", `view V { Id } @owned "// x"`, diagnostic.CodeDanglingAnnotation},
		{"annotation on fragment", `@owned "// x" fragment f { Id }`, diagnostic.CodeDanglingAnnotation},
		{"nested spread", "fragment a { Id } fragment b { ..a }", diagnostic.CodeNestedSpread},
		{"invalid type", "view V { Id: 1 + 2 }", diagnostic.CodeInvalidType},
		{"invalid guard", "view V { Some(Id) if x +* }", diagnostic.CodeInvalidGuard},
		{"empty guard", "view V { Some(Id) if }", diagnostic.CodeSyntax},
		{"duplicate fragment", "fragment a { Id } fragment a { Name } view V { ..a }", diagnostic.CodeDuplicateFragment},
		{"duplicate view", "view V { Id } view V { Name }", diagnostic.CodeDuplicateView},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			file, diags := Parse("bad.views", []byte(tt.src))
			assert.Nil(t, file)
			require.True(t, diags.HasErrors())
			assert.Equal(t, tt.code, diags.Errors[0].Code, diags.Err())
		})
	}
}

func TestParse_TrailingCommaAndComments(t *testing.T) {
	src := `view V {
		Id, // the key
		/* inline */ Name,
	}`

	file, diags := Parse("v.views", []byte(src))
	require.False(t, diags.HasErrors(), diags.Err())
	assert.Equal(t, []string{"Id", "Name"}, itemNames(file.Views[0].Items))
}

func TestMode_String(t *testing.T) {
	assert.Equal(t, "plain", ModePlain.String())
	assert.Equal(t, "variant", ModeVariant.String())
	assert.Equal(t, "some", ModeOptional.String())
	assert.Equal(t, "ok", ModeOk.String())
	assert.Equal(t, "err", ModeErr.String())
	assert.Equal(t, "Mode(9)", Mode(9).String())
	assert.Equal(t, "Some", ModeOptional.Pattern())
	assert.Empty(t, ModeVariant.Pattern())
}

func fieldNames(fields []*FieldSpec) []string {
	names := make([]string, 0, len(fields))
	for _, f := range fields {
		names = append(names, f.Name)
	}

	return names
}

func itemNames(items []Item) []string {
	names := make([]string, 0, len(items))
	for _, it := range items {
		if it.IsSpread() {
			names = append(names, ".."+it.Spread)
			continue
		}

		names = append(names, it.Field.Name)
	}

	return names
}
