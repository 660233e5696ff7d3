package analyze

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"view-generator/internal/schema"
)

func loadDrawing(t *testing.T) *Loaded {
	t.Helper()

	loaded, err := NewAnalyzer("", nil).LoadSource("./testdata/shapes", "Drawing")
	require.NoError(t, err)

	return loaded
}

func TestAnalyzer_LoadSource(t *testing.T) {
	src := loadDrawing(t).Source

	assert.Equal(t, "Drawing", src.Name)
	assert.Equal(t, "shapes", src.Package)
	assert.Equal(t, "view-generator/internal/analyze/testdata/shapes", src.PkgPath)
	assert.Equal(t, []schema.TypeParam{{Name: "T", Constraint: "any"}}, src.TypeParams)
}

func TestAnalyzer_LoadSource_Fields(t *testing.T) {
	src := loadDrawing(t).Source

	assert.Equal(t, []schema.Field{
		{Name: "Name", Type: "*string"},
		{Name: "Shape", Type: "Shape", Interface: true},
		{Name: "Result", Type: "rt.Result[T]"},
		{Name: "Timeout", Type: "time.Duration"},
		{Name: "Tags", Type: "map[string]T"},
		{Name: "Labeled", Type: "Labeled"},
	}, src.Fields)
}

func TestAnalyzer_LoadSource_Imports(t *testing.T) {
	src := loadDrawing(t).Source

	assert.Equal(t, []schema.Import{
		{Name: "time", Path: "time"},
		{Name: "rt", Path: schema.RuntimePath},
	}, src.Imports)
	assert.Equal(t, "rt", src.RuntimeName())

	arg, ok := src.ResultArg("rt.Result[T]")
	assert.True(t, ok)
	assert.Equal(t, "T", arg)
}

func TestAnalyzer_LoadSource_Decls(t *testing.T) {
	src := loadDrawing(t).Source

	assert.Equal(t, schema.DeclInterface, src.Decls["Shape"].Kind)
	assert.Equal(t, []string{"Shape"}, src.Decls["Circle"].Implements)
	assert.Empty(t, src.Decls["Circle"].PtrImplements)
	assert.Equal(t, []string{"Shape"}, src.Decls["Square"].PtrImplements)
	assert.Empty(t, src.Decls["Labeled"].Implements)
}

func TestAnalyzer_LoadSource_Underlying(t *testing.T) {
	src := loadDrawing(t).Source

	assert.Equal(t, "float64", src.Underlying["Meters"])
	assert.Equal(t, "struct{Label string}", src.Underlying["Labeled"])
	assert.Equal(t, "int64", src.Underlying["time.Duration"])
	assert.NotContains(t, src.Underlying, "Drawing")
	assert.NotContains(t, src.Underlying, "rt.Result")

	u, ok := src.UnderlyingOf("Meters")
	require.True(t, ok)
	assert.Equal(t, "float64", u)
}

func TestAnalyzer_LoadSource_SkipsGeneratedFiles(t *testing.T) {
	loaded := loadDrawing(t)

	assert.True(t, loaded.Source.IsSymbol("validName"))
	assert.True(t, loaded.Source.IsSymbol("maxTags"))
	assert.False(t, loaded.Source.IsSymbol("DrawingRef"))
	assert.Contains(t, loaded.File, "shapes.go")
}

func TestAnalyzer_LoadSource_Errors(t *testing.T) {
	a := NewAnalyzer("", nil)

	_, err := a.LoadSource("./testdata/shapes", "Missing")
	assert.ErrorContains(t, err, "not found")

	_, err = a.LoadSource("./testdata/shapes", "Shape")
	assert.ErrorContains(t, err, "not a struct")
}
