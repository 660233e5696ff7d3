package compiler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"view-generator/internal/diagnostic"
	"view-generator/internal/gen"
	"view-generator/internal/schema"
)

func input(body string) Input {
	return Input{
		Source: &schema.Source{
			Name:    "Pair",
			Package: "pair",
			Fields: []schema.Field{
				{Name: "A", Type: "int"},
				{Name: "B", Type: "*string"},
			},
			Imports: []schema.Import{{Name: "viewrt", Path: schema.RuntimePath}},
			Symbols: map[string]bool{},
		},
		Name: "pair.views",
		Body: []byte(body),
	}
}

func TestCompile_Success(t *testing.T) {
	res, err := Compile(input(`view Both { A, Some(B) } view OnlyA { A }`), Options{
		Generator: gen.DefaultGeneratorConfig(),
	})
	require.NoError(t, err)

	require.NotNil(t, res.Plan)
	require.NotNil(t, res.File)
	assert.Equal(t, "pair_views.go", res.File.Filename)
	assert.Contains(t, string(res.File.Content), "func (src Pair) IntoBoth() (Both, bool) {")
	assert.Empty(t, res.Failed)
}

func TestCompile_SkipGenerate(t *testing.T) {
	res, err := Compile(input(`view OnlyA { A }`), Options{SkipGenerate: true})
	require.NoError(t, err)
	assert.NotNil(t, res.Plan)
	assert.Nil(t, res.File)
}

func TestCompile_StopsAtFailingStage(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		stage Stage
		code  string
	}{
		{"syntax", `view { A }`, StageParse, diagnostic.CodeSyntax},
		{"unknown field", `view V { C }`, StageCheck, diagnostic.CodeUnknownField},
		{"undeclared fragment", `view V { ..missing }`, StageCheck, diagnostic.CodeUndeclaredFragment},
		{"conflicting field", `fragment f { Some(B) } view V { ..f, B }`, StageExpand, diagnostic.CodeDuplicateField},
		{"mode mismatch", `view V { Some(A) }`, StageAssemble, diagnostic.CodeModeMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Compile(input(tt.body), Options{})
			require.ErrorIs(t, err, ErrInvalid)

			assert.Equal(t, tt.stage, res.Failed)
			assert.Nil(t, res.Plan)
			assert.Nil(t, res.File)
			require.NotEmpty(t, res.Diagnostics.Errors)
			assert.Equal(t, tt.code, res.Diagnostics.Errors[0].Code)
		})
	}
}

func TestCompile_KeepsWarnings(t *testing.T) {
	res, err := Compile(input(`view Empty {} view OnlyA { A }`), Options{SkipGenerate: true})
	require.NoError(t, err)
	require.Len(t, res.Diagnostics.Warnings, 1)
	assert.Equal(t, diagnostic.CodeEmptyView, res.Diagnostics.Warnings[0].Code)
}

func TestCompile_LogsStages(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)

	_, err := Compile(input(`view OnlyA { A }`), Options{Logger: zap.New(core)})
	require.NoError(t, err)

	var messages []string
	for _, entry := range logs.All() {
		messages = append(messages, entry.Message)
	}

	assert.Equal(t, []string{"parsed", "assembled", "generated"}, messages)
	assert.Equal(t, "Pair", logs.All()[0].ContextMap()["source"])
}
