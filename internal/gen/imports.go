package gen

import (
	"sort"

	"view-generator/internal/common"
	"view-generator/internal/plan"
	"view-generator/internal/schema"
)

// collectImports returns the imports the generated file references: the
// runtime package plus every import the field types and guards qualify.
func collectImports(p *plan.Plan) []importSpec {
	src := p.Source
	used := map[string]importSpec{}

	add := func(name, path string) {
		spec := importSpec{Path: path}
		if common.NeedsAlias(name, path) {
			spec.Alias = name
		}

		used[path] = spec
	}

	add(src.RuntimeName(), schema.RuntimePath)

	for _, v := range p.Views {
		for _, f := range v.Fields {
			for _, q := range f.Qualifiers {
				if imp, ok := src.Import(q); ok {
					add(imp.Name, imp.Path)
				}
			}
		}
	}

	specs := make([]importSpec, 0, len(used))
	for _, spec := range used {
		specs = append(specs, spec)
	}

	sort.Slice(specs, func(i, j int) bool {
		return specs[i].Path < specs[j].Path
	})

	return specs
}
