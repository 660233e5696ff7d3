package diagnostic

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiagnostics_AddErrorAndErr(t *testing.T) {
	var d Diagnostics
	assert.True(t, d.IsValid())
	require.NoError(t, d.Err())

	d.AddError(Span{Offset: 3, Len: 2}, CodeUnknownField, "field Nme does not exist", "Summary", "Nme", "Name")
	d.AddWarning(Span{}, CodeEmptyView, "view Empty has no fields", "Empty", "")

	assert.True(t, d.HasErrors())
	assert.Equal(t, []string{CodeUnknownField}, d.Codes())

	err := d.Err()
	require.Error(t, err)
	assert.Equal(t,
		"Summary.Nme: [unknown_field] field Nme does not exist (did you mean Name?)",
		err.Error())
}

func TestDiagnostics_Merge(t *testing.T) {
	var a, b Diagnostics
	a.Errorf(Span{}, CodeSyntax, "", "", "expected %q", "}")
	b.AddInfo("note", "ok", "", "")
	b.Errorf(Span{}, CodeDuplicateView, "V", "", "view %s declared twice", "V")

	a.Merge(&b)
	a.Merge(nil)

	assert.Len(t, a.Errors, 2)
	assert.Len(t, a.Infos, 1)
	assert.Equal(t, `expected "}"`, a.Errors[0].Message)
}

func TestSeverity_String(t *testing.T) {
	assert.Equal(t, "info", SeverityInfo.String())
	assert.Equal(t, "warning", SeverityWarning.String())
	assert.Equal(t, "error", SeverityError.String())
	assert.Equal(t, "Severity(9)", Severity(9).String())
}

func TestDiagnostics_ErrJoinsErrors(t *testing.T) {
	var d Diagnostics
	d.AddError(Span{}, CodeNoViews, "no views declared", "", "")
	d.AddError(Span{}, CodeDuplicateView, "view V declared twice", "V", "")

	assert.Equal(t, "[no_views] no views declared\nV: [duplicate_view] view V declared twice", d.Err().Error())
}

func TestPosition(t *testing.T) {
	src := []byte("view A {\n  Id,\n  Nme\n}")

	tests := []struct {
		offset int
		line   int
		col    int
	}{
		{0, 1, 1},
		{5, 1, 6},
		{9, 2, 1},
		{11, 2, 3},
		{17, 3, 3},
		{100, 4, 2},
	}

	for _, tt := range tests {
		line, col := Position(src, tt.offset)
		assert.Equal(t, tt.line, line, "offset %d", tt.offset)
		assert.Equal(t, tt.col, col, "offset %d", tt.offset)
	}
}

func TestDiagnostic_Format_WithSource(t *testing.T) {
	src := []byte("view A {\n  Id,\n  Nme\n}")

	d := Diagnostic{
		Severity:    SeverityError,
		Code:        CodeUnknownField,
		Message:     "field Nme does not exist on Search",
		Span:        Span{Offset: 17, Len: 3},
		Suggestions: []string{"Name"},
	}

	out := d.Format(RenderOptions{File: "search.views", Source: src, NoColor: true})

	assert.Equal(t,
		"search.views:3:3: error[unknown_field]: field Nme does not exist on Search\n"+
			"    |   Nme\n"+
			"    |   ^^^\n"+
			"    = did you mean: Name?\n",
		out)
}

func TestDiagnostics_Render_Order(t *testing.T) {
	var d Diagnostics
	d.AddWarning(Span{}, CodeEmptyView, "empty", "", "")
	d.AddError(Span{}, CodeNoViews, "none", "", "")

	var sb strings.Builder
	d.Render(&sb, RenderOptions{NoColor: true})

	assert.Equal(t, "error[no_views]: none\nwarning[empty_view]: empty\n", sb.String())
}
