package gen

import (
	"bytes"
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/tools/imports"

	"view-generator/internal/plan"
	"view-generator/internal/schema"
)

// Header is the first line of every generated file.
const Header = schema.GeneratedHeader

// GeneratorConfig holds configuration for code generation.
type GeneratorConfig struct {
	// OutputDir is the directory where generated files are written.
	OutputDir string
	// Suffix is appended to the snake-cased source name to form the file name.
	Suffix string
	// GenerateComments enables default doc comments on items without
	// annotations.
	GenerateComments bool
}

// DefaultGeneratorConfig returns the default generator configuration.
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		OutputDir:        ".",
		Suffix:           "_views.go",
		GenerateComments: true,
	}
}

// Generator generates Go code from an assembled plan.
type Generator struct {
	config GeneratorConfig
}

// NewGenerator creates a new Generator with the given configuration.
func NewGenerator(config GeneratorConfig) *Generator {
	if config.Suffix == "" {
		config.Suffix = DefaultGeneratorConfig().Suffix
	}

	return &Generator{config: config}
}

// GeneratedFile represents a generated Go source file.
type GeneratedFile struct {
	// Filename is the name of the file (e.g., "search_views.go").
	Filename string
	// Content is the formatted Go source code.
	Content []byte
}

// Generate renders the plan into one Go file.
func (g *Generator) Generate(p *plan.Plan) (*GeneratedFile, error) {
	if p == nil || len(p.Views) == 0 {
		return nil, fmt.Errorf("generating views: empty plan")
	}

	data := g.templateData(p)
	filename := FileName(p.Source.Name, g.config.Suffix)

	var buf bytes.Buffer
	if err := fileTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("executing template: %w", err)
	}

	formatted, err := imports.Process(filename, buf.Bytes(), &imports.Options{
		FormatOnly: true,
		Comments:   true,
		TabIndent:  true,
		TabWidth:   8,
	})
	if err != nil {
		if g.config.OutputDir != "" {
			_ = writeDebugUnformatted(g.config.OutputDir, filename, buf.Bytes())
		}

		return &GeneratedFile{
			Filename: filename,
			Content:  buf.Bytes(),
		}, fmt.Errorf("formatting code: %w", err)
	}

	return &GeneratedFile{
		Filename: filename,
		Content:  formatted,
	}, nil
}

func (g *Generator) templateData(p *plan.Plan) *templateData {
	src := p.Source
	e := &emitter{
		src:      src,
		runtime:  src.RuntimeName(),
		comments: g.config.GenerateComments,
	}

	data := &templateData{
		PackageName: src.Package,
		Imports:     collectImports(p),
	}

	for _, v := range p.Views {
		data.Views = append(data.Views, e.view(v))
	}

	data.Union = e.union(p)

	return data
}

// FileName derives the output file name for a source type.
func FileName(source, suffix string) string {
	return snakeCase(source) + suffix
}

func snakeCase(name string) string {
	var b strings.Builder

	runes := []rune(name)
	for i, r := range runes {
		if unicode.IsUpper(r) {
			prevLower := i > 0 && !unicode.IsUpper(runes[i-1])
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])

			if i > 0 && (prevLower || nextLower) && runes[i-1] != '_' {
				b.WriteByte('_')
			}

			r = unicode.ToLower(r)
		}

		b.WriteRune(r)
	}

	return b.String()
}

// emitter renders the declarations of one plan.
type emitter struct {
	src      *schema.Source
	runtime  string
	comments bool
}
