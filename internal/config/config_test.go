package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "viewgen.yaml"), []byte(content), 0o644))

	return dir
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("", t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_File(t *testing.T) {
	dir := writeConfig(t, `
output:
  suffix: _gen.go
  comments: false
log:
  level: debug
schemas:
  - package: ./search
    type: Search
    views: search/search.views
  - package: ./pair
    type: Pair
    body: "view OnlyA { A }"
    output: gen/pair
`)

	cfg, err := Load("", dir)
	require.NoError(t, err)

	assert.Equal(t, "_gen.go", cfg.Output.Suffix)
	assert.False(t, cfg.Output.Comments)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, []SchemaJob{
		{Package: "./search", Type: "Search", Views: "search/search.views"},
		{Package: "./pair", Type: "Pair", Body: "view OnlyA { A }", Output: "gen/pair"},
	}, cfg.Schemas)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("VIEWGEN_LOG_LEVEL", "warn")
	t.Setenv("VIEWGEN_RENDER_NO_COLOR", "true")

	cfg, err := Load("", writeConfig(t, "log:\n  level: debug\n"))
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.True(t, cfg.Render.NoColor)
}

func TestLoad_ExplicitPathMustExist(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"), "")
	assert.Error(t, err)
}

func TestLoad_Validation(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"suffix", "output:\n  suffix: .txt\n"},
		{"missing type", "schemas:\n  - package: ./a\n    views: a.views\n"},
		{"missing body", "schemas:\n  - package: ./a\n    type: A\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load("", writeConfig(t, tt.content))
			assert.Error(t, err)
		})
	}
}
