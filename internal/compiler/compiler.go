// Package compiler runs the view compilation pipeline: parse, check,
// expand, assemble and generate. Each stage reports into one diagnostic
// set and the pipeline stops after the first stage that reports an error,
// so no code is produced for an invalid body.
package compiler

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"view-generator/internal/diagnostic"
	"view-generator/internal/dsl"
	"view-generator/internal/expand"
	"view-generator/internal/gen"
	"view-generator/internal/plan"
	"view-generator/internal/schema"
)

// ErrInvalid is returned when the declaration body has errors. The
// diagnostics are in the Result.
var ErrInvalid = errors.New("invalid view declarations")

// Stage names a pipeline stage.
type Stage string

const (
	StageParse    Stage = "parse"
	StageCheck    Stage = "check"
	StageExpand   Stage = "expand"
	StageAssemble Stage = "assemble"
	StageGenerate Stage = "generate"
)

// Options configures one compilation.
type Options struct {
	Generator gen.GeneratorConfig
	// SkipGenerate stops after assembly.
	SkipGenerate bool
	Logger       *zap.Logger
}

// Input is one declaration body attached to a source struct.
type Input struct {
	Source *schema.Source
	// Name is used in diagnostics, usually the .views file path.
	Name string
	Body []byte
}

// Result is the outcome of a compilation.
type Result struct {
	Plan        *plan.Plan
	File        *gen.GeneratedFile
	Diagnostics *diagnostic.Diagnostics
	// Failed is the stage that reported errors, or "".
	Failed Stage
}

// Compile runs every stage over in. The error wraps ErrInvalid when the
// body has errors, and is a plain error when generation itself fails.
func Compile(in Input, opts Options) (*Result, error) {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	log = log.With(zap.String("source", in.Source.Name), zap.String("file", in.Name))
	res := &Result{Diagnostics: &diagnostic.Diagnostics{}}

	fail := func(stage Stage) (*Result, error) {
		res.Failed = stage
		log.Debug("stage failed", zap.String("stage", string(stage)), zap.Int("errors", len(res.Diagnostics.Errors)))

		return res, fmt.Errorf("%s: %w", stage, ErrInvalid)
	}

	file, diags := dsl.Parse(in.Name, in.Body)
	res.Diagnostics.Merge(diags)

	if diags.HasErrors() {
		return fail(StageParse)
	}

	log.Debug("parsed", zap.Int("fragments", len(file.Fragments)), zap.Int("views", len(file.Views)))

	res.Diagnostics.Merge(dsl.Check(file, in.Source))
	if res.Diagnostics.HasErrors() {
		return fail(StageCheck)
	}

	views, diags := expand.Resolve(file)
	res.Diagnostics.Merge(diags)

	if diags.HasErrors() {
		return fail(StageExpand)
	}

	p, diags := plan.Assemble(in.Source, file, views)
	res.Diagnostics.Merge(diags)

	if diags.HasErrors() {
		return fail(StageAssemble)
	}

	res.Plan = p
	log.Debug("assembled", zap.Int("views", len(p.Views)), zap.Int("accessors", len(p.Accessors)),
		zap.Int("warnings", len(res.Diagnostics.Warnings)))

	if opts.SkipGenerate {
		return res, nil
	}

	generated, err := gen.NewGenerator(opts.Generator).Generate(p)
	if err != nil {
		res.Failed = StageGenerate
		return res, fmt.Errorf("generating %s: %w", in.Source.Name, err)
	}

	res.File = generated
	log.Debug("generated", zap.String("output", generated.Filename), zap.Int("bytes", len(generated.Content)))

	return res, nil
}
