package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"view-generator/internal/analyze"
	"view-generator/internal/compiler"
	"view-generator/internal/config"
	"view-generator/internal/diagnostic"
	"view-generator/internal/gen"
)

// jobFlags selects a single schema from the command line instead of the
// config file.
type jobFlags struct {
	pkg    string
	typ    string
	views  string
	body   string
	output string
}

func (f *jobFlags) register(cmd *cobra.Command, withOutput bool) {
	flags := cmd.Flags()
	flags.StringVarP(&f.pkg, "package", "p", ".", "package pattern declaring the source struct")
	flags.StringVarP(&f.typ, "type", "t", "", "source struct name")
	flags.StringVar(&f.views, "views", "", "declaration file")
	flags.StringVar(&f.body, "body", "", "inline declaration body")

	if withOutput {
		flags.StringVarP(&f.output, "output", "o", "", "output directory (default: the package directory)")
	}
}

// jobs returns the schema jobs to run: the one named by flags, or every
// job of the config file.
func (a *app) jobs(f *jobFlags) ([]config.SchemaJob, error) {
	if f.typ != "" {
		job := config.SchemaJob{Package: f.pkg, Type: f.typ, Views: f.views, Body: f.body, Output: f.output}
		if job.Views == "" && job.Body == "" {
			return nil, errors.New("one of --views or --body is required")
		}

		return []config.SchemaJob{job}, nil
	}

	if len(a.cfg.Schemas) == 0 {
		return nil, errors.New("no schemas: pass --type or list schemas in viewgen.yaml")
	}

	return a.cfg.Schemas, nil
}

// compiled is the outcome of one job.
type compiled struct {
	job    config.SchemaJob
	loaded *analyze.Loaded
	result *compiler.Result
}

// compile loads the job's source struct and compiles its body. Diagnostics
// are rendered to w whether or not compilation succeeded.
func (a *app) compile(job config.SchemaJob, skipGenerate bool, w io.Writer) (*compiled, error) {
	log := a.log.With(zap.String("type", job.Type), zap.String("package", job.Package))

	loaded, err := analyze.NewAnalyzer("", log).LoadSource(job.Package, job.Type)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", job.Type, err)
	}

	name, body := "<inline>", []byte(job.Body)
	if job.Views != "" {
		name = job.Views

		body, err = os.ReadFile(job.Views)
		if err != nil {
			return nil, fmt.Errorf("reading declarations: %w", err)
		}
	}

	outDir := job.Output
	if outDir == "" {
		outDir = loaded.Dir
	}

	res, err := compiler.Compile(compiler.Input{Source: loaded.Source, Name: name, Body: body}, compiler.Options{
		Generator: gen.GeneratorConfig{
			OutputDir:        outDir,
			Suffix:           a.cfg.Output.Suffix,
			GenerateComments: a.cfg.Output.Comments,
		},
		SkipGenerate: skipGenerate,
		Logger:       log,
	})

	if res != nil {
		res.Diagnostics.Render(w, diagnostic.RenderOptions{File: name, Source: body, NoColor: a.noColor})
	}

	if err != nil {
		return nil, fmt.Errorf("%s: %w", job.Type, err)
	}

	job.Output = outDir

	return &compiled{job: job, loaded: loaded, result: res}, nil
}
